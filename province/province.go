package province

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// PROVINCE NORMALIZER — Free-form province names → canonical join keys
// ============================================================================
// The survey, the profile dataset, the regional indicator table and the map
// boundary file all spell provinces differently ("DKI", "Jakarta",
// "D.K.I. JAKARTA", "Nangrou Aceh Darusalam", "West Java"). Every join goes
// through Normalize so the three datasets meet on one name.
//
// Resolution order:
//   1. Clean: fold diacritics, uppercase, punctuation → spaces, fixed
//      word substitutions (KEP → KEPULAUAN, DAERAH ISTIMEWA → DI, ...)
//   2. Alias table lookup (space-insensitive)
//   3. Boundary-file names, space-insensitive
//   4. Levenshtein fallback when exactly one canonical name is close
//   5. Unresolved → the cleaned input
//
// A Normalizer is immutable after New and safe for concurrent use.
// ============================================================================

// DefaultMaxDistance is the largest edit distance accepted by the fuzzy step.
const DefaultMaxDistance = 2

// maxFuzzyRatio bounds distance relative to name length so short codes
// ("NTB", "NTT") never fuzz into each other.
const maxFuzzyRatio = 0.2

// Option configures a Normalizer.
type Option func(*config)

type config struct {
	boundary    []string
	maxDistance int
}

// WithBoundaryNames registers the province names used by an external
// boundary dataset so BoundaryKey can return its spelling.
func WithBoundaryNames(names []string) Option {
	return func(c *config) {
		c.boundary = append(c.boundary, names...)
	}
}

// WithMaxDistance sets the fuzzy-match edit distance. 0 disables fuzzy matching.
func WithMaxDistance(d int) Option {
	return func(c *config) {
		c.maxDistance = d
	}
}

// Normalizer resolves province names against the canonical set.
type Normalizer struct {
	index       map[string]string // compact cleaned key → canonical name
	fuzzyKeys   []string          // sorted keys of index, for deterministic fuzzy scans
	boundary    map[string]string // canonical name → boundary spelling
	orphans     map[string]string // compact key → boundary spelling with no canonical match
	maxDistance int
}

// New builds a Normalizer from the built-in alias table.
func New(opts ...Option) *Normalizer {
	cfg := &config{maxDistance: DefaultMaxDistance}
	for _, opt := range opts {
		opt(cfg)
	}

	n := &Normalizer{
		index:       make(map[string]string),
		boundary:    make(map[string]string),
		orphans:     make(map[string]string),
		maxDistance: cfg.maxDistance,
	}

	for _, p := range canonicalProvinces {
		n.index[compact(Clean(p.name))] = p.name
		for _, v := range p.variants {
			n.index[compact(Clean(v))] = p.name
		}
	}

	n.fuzzyKeys = make([]string, 0, len(n.index))
	for k := range n.index {
		n.fuzzyKeys = append(n.fuzzyKeys, k)
	}
	sort.Strings(n.fuzzyKeys)

	for _, b := range cfg.boundary {
		if strings.TrimSpace(b) == "" {
			continue
		}
		if canonical, ok := n.Resolve(b); ok {
			if _, taken := n.boundary[canonical]; !taken {
				n.boundary[canonical] = b
			}
			continue
		}
		key := compact(Clean(b))
		if _, taken := n.orphans[key]; !taken {
			n.orphans[key] = b
		}
	}

	return n
}

// Normalize returns the canonical province name for name, or the cleaned
// input when no canonical name matches. Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(name string) string {
	if canonical, ok := n.Resolve(name); ok {
		return canonical
	}
	return Clean(name)
}

// Resolve is Normalize with an explicit miss.
func (n *Normalizer) Resolve(name string) (string, bool) {
	cleaned := Clean(name)
	if cleaned == "" {
		return "", false
	}
	key := compact(cleaned)

	if canonical, ok := n.index[key]; ok {
		return canonical, true
	}
	return n.fuzzy(key)
}

// BoundaryKey returns the boundary-file spelling for name's province.
func (n *Normalizer) BoundaryKey(name string) (string, bool) {
	if canonical, ok := n.Resolve(name); ok {
		b, found := n.boundary[canonical]
		return b, found
	}
	b, ok := n.orphans[compact(Clean(name))]
	return b, ok
}

// fuzzy accepts the closest alias key when it is within the distance and
// ratio limits and no other canonical province is equally close.
func (n *Normalizer) fuzzy(key string) (string, bool) {
	if n.maxDistance <= 0 || len(key) < 4 {
		return "", false
	}

	best := ""
	bestDist := n.maxDistance + 1
	ambiguous := false

	for _, candidate := range n.fuzzyKeys {
		if abs(len(candidate)-len(key)) > n.maxDistance {
			continue
		}
		d := levenshtein.ComputeDistance(key, candidate)
		if d > n.maxDistance || float64(d)/float64(maxLen(key, candidate)) > maxFuzzyRatio {
			continue
		}
		switch {
		case d < bestDist:
			best, bestDist, ambiguous = n.index[candidate], d, false
		case d == bestDist && n.index[candidate] != best:
			ambiguous = true
		}
	}

	if best == "" || ambiguous {
		return "", false
	}
	return best, true
}

// ============================================================================
// PACKAGE-LEVEL HELPERS
// ============================================================================

var std = New()

// Normalize resolves name with the built-in alias table and no boundary names.
func Normalize(name string) string {
	return std.Normalize(name)
}

// Canonical returns the 38 canonical province names.
func Canonical() []string {
	names := make([]string, len(canonicalProvinces))
	for i, p := range canonicalProvinces {
		names[i] = p.name
	}
	return names
}

// IsCanonical reports whether name is exactly one of the canonical names.
func IsCanonical(name string) bool {
	for _, p := range canonicalProvinces {
		if p.name == name {
			return true
		}
	}
	return false
}

// ============================================================================
// CLEANING
// ============================================================================

var substitutions = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`^(PROVINSI|PROPINSI|PROVINCE OF|PROVINCE|PROV)\s+`), ""},
	{regexp.MustCompile(`\s+(PROVINSI|PROVINCE)$`), ""},
	{regexp.MustCompile(`\bD I\b`), "DI"},
	{regexp.MustCompile(`\bD K I\b`), "DKI"},
	{regexp.MustCompile(`\bDAERAH ISTIMEWA\b`), "DI"},
	{regexp.MustCompile(`\bSPECIAL REGION OF\b`), "DI"},
	{regexp.MustCompile(`\bDAERAH KHUSUS IBUKOTA\b`), "DKI"},
	{regexp.MustCompile(`\bKEP\b`), "KEPULAUAN"},
	{regexp.MustCompile(`\bKEPUALAUAN\b`), "KEPULAUAN"},
	{regexp.MustCompile(`\b(NANGROE|NANGROU|NANGGROU)\b`), "NANGGROE"},
	{regexp.MustCompile(`\bDARUSALAM\b`), "DARUSSALAM"},
	{regexp.MustCompile(`\bNUSATENGGARA\b`), "NUSA TENGGARA"},
	{regexp.MustCompile(`\bSUMATRA\b`), "SUMATERA"},
	{regexp.MustCompile(`\bIRIAN JAYA BARAT\b`), "PAPUA BARAT"},
	{regexp.MustCompile(`\bIRIAN JAYA\b`), "PAPUA"},
	{regexp.MustCompile(`\bJAKARTA RAYA\b`), "JAKARTA"},
}

// maxCleanPasses bounds the fixpoint loop in Clean.
const maxCleanPasses = 8

// Clean folds a raw name into the comparison form: no diacritics,
// uppercase, punctuation as single spaces, known spelling variants
// rewritten. Clean is idempotent.
func Clean(name string) string {
	s := name
	for i := 0; i < maxCleanPasses; i++ {
		next := cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

func cleanPass(s string) string {
	s = strings.ToUpper(foldDiacritics(s))
	s = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '_', '-', '/', '(', ')', '\'', '"':
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	for _, sub := range substitutions {
		s = sub.re.ReplaceAllString(s, sub.repl)
	}
	return strings.Join(strings.Fields(s), " ")
}

// foldDiacritics strips combining marks: "Sulawési" → "Sulawesi".
// The transformer chain is stateful, so it is built per call.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxLen(a, b string) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
