package province

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// ErrNoBoundaryNames is returned when a boundary file has no feature with a
// recognizable province name property.
var ErrNoBoundaryNames = errors.New("province: no boundary names found")

// nameProperties are checked in order on each feature.
var nameProperties = []string{"Propinsi", "provinsi", "PROVINSI", "name", "NAME", "Nama"}

// LoadBoundaryNames reads a GeoJSON FeatureCollection and returns the
// province name of every feature, in file order, without duplicates.
func LoadBoundaryNames(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse boundary file: %w", err)
	}

	seen := make(map[string]bool, len(fc.Features))
	names := make([]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		name := featureName(f)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, ErrNoBoundaryNames
	}
	return names, nil
}

func featureName(f *geojson.Feature) string {
	if f == nil {
		return ""
	}
	for _, key := range nameProperties {
		if v, ok := f.Properties[key].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
