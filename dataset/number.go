package dataset

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads a plain numeric cell. A lone comma is a decimal comma
// ("3,5"); when both separators appear the later one is the decimal point.
// Repeated separators of one kind are thousands marks.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, false
	}

	dots, commas := strings.Count(s, "."), strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// number is ParseNumber with 0 for unusable cells.
func number(s string) float64 {
	v, _ := ParseNumber(s)
	return v
}

// year reads a birth year; anything that is not a positive whole year → 0.
func year(s string) int {
	v, ok := ParseNumber(s)
	if !ok || v <= 0 || v != math.Trunc(v) || v > 9999 {
		return 0
	}
	return int(v)
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
