package province

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Aliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"DKI Jakarta", "DKI Jakarta"},
		{"Jakarta", "DKI Jakarta"},
		{"DKI", "DKI Jakarta"},
		{"D.K.I. JAKARTA", "DKI Jakarta"},
		{"  dki   jakarta ", "DKI Jakarta"},
		{"Nangrou Aceh Darusalam", "Aceh"},
		{"Nangroe Aceh Darussalam", "Aceh"},
		{"NAD", "Aceh"},
		{"Kepualauan Bangka Belitung", "Kepulauan Bangka Belitung"},
		{"Kep. Bangka Belitung", "Kepulauan Bangka Belitung"},
		{"KEP. RIAU", "Kepulauan Riau"},
		{"D.I. Yogyakarta", "DI Yogyakarta"},
		{"Daerah Istimewa Yogyakarta", "DI Yogyakarta"},
		{"Special Region of Yogyakarta", "DI Yogyakarta"},
		{"DIY", "DI Yogyakarta"},
		{"West Java", "Jawa Barat"},
		{"Southeast Sulawesi", "Sulawesi Tenggara"},
		{"Highland Papua", "Papua Pegunungan"},
		{"Riau Islands", "Kepulauan Riau"},
		{"Sulawési Selatan", "Sulawesi Selatan"},
		{"Provinsi Jawa Timur", "Jawa Timur"},
		{"North Sumatra", "Sumatera Utara"},
		{"Irian Jaya Barat", "Papua Barat"},
		{"NusaTenggara Timur", "Nusa Tenggara Timur"},
		{"NTB", "Nusa Tenggara Barat"},
		{"NTT", "Nusa Tenggara Timur"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_FuzzyFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Kalimantan Barat", Normalize("Kalimantan Barrat"))
	assert.Equal(t, "Sulawesi Tengah", Normalize("Sulawesi Tenga"))

	strict := New(WithMaxDistance(0))
	assert.Equal(t, "KALIMANTAN BARRAT", strict.Normalize("Kalimantan Barrat"))
}

func TestNormalize_Unresolved(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ATLANTIS", Normalize("atlantis"))
	assert.Equal(t, "NTX", Normalize("ntx"), "short codes never fuzz")
	assert.Equal(t, "", Normalize("  ...  "))

	_, ok := New().Resolve("atlantis")
	assert.False(t, ok)
	_, ok = New().Resolve("")
	assert.False(t, ok)
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"atlantis", "D.I. Yogyakarta", "Kalimantan Barrat", "  ", "Prov. Kep. Riau", "Daerah Khusus Ibukota Jakarta"}
	for _, p := range canonicalProvinces {
		inputs = append(inputs, p.name)
		inputs = append(inputs, p.variants...)
	}

	n := New()
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), in)
	}
}

func TestNormalize_CanonicalNamesMapToThemselves(t *testing.T) {
	t.Parallel()

	names := Canonical()
	require.Len(t, names, 38)
	for _, name := range names {
		assert.Equal(t, name, Normalize(name))
		assert.True(t, IsCanonical(name))
	}
	assert.False(t, IsCanonical("Jakarta"))
}

func TestBoundaryKey(t *testing.T) {
	t.Parallel()

	n := New(WithBoundaryNames([]string{
		"DI. ACEH",
		"PROBANTEN",
		"NUSATENGGARA BARAT",
		"DAERAH ISTIMEWA YOGYAKARTA",
		"Atlantis Raya",
		"",
	}))

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Nangroe Aceh Darussalam", "DI. ACEH", true},
		{"Aceh", "DI. ACEH", true},
		{"Banten", "PROBANTEN", true},
		{"NTB", "NUSATENGGARA BARAT", true},
		{"Yogyakarta", "DAERAH ISTIMEWA YOGYAKARTA", true},
		{"atlantis raya", "Atlantis Raya", true},
		{"Bali", "", false},
		{"nowhere", "", false},
	}
	for _, tt := range tests {
		got, ok := n.BoundaryKey(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "KEPULAUAN RIAU", Clean("Kep.Riau"))
	assert.Equal(t, "DI YOGYAKARTA", Clean("D.I.  Yogyakarta"))
	assert.Equal(t, "SUMATERA BARAT", Clean("Sumatra_Barat"))
	assert.Equal(t, Clean("Kep.Riau"), Clean(Clean("Kep.Riau")))
}

func TestLoadBoundaryNames(t *testing.T) {
	t.Parallel()

	geo := `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [95.3, 5.5]}, "properties": {"Propinsi": "DI. ACEH"}},
	    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [106.8, -6.2]}, "properties": {"name": "DKI JAKARTA"}},
	    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [106.8, -6.2]}, "properties": {"NAME": "DKI JAKARTA"}},
	    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"kode": 11}}
	  ]
	}`

	names, err := LoadBoundaryNames(strings.NewReader(geo))
	require.NoError(t, err)
	assert.Equal(t, []string{"DI. ACEH", "DKI JAKARTA"}, names)
}

func TestLoadBoundaryNames_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadBoundaryNames(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrNoBoundaryNames)

	_, err = LoadBoundaryNames(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func FuzzNormalize(f *testing.F) {
	for _, s := range []string{"DKI Jakarta", "Kep. Riau", "D.I. Yogyakarta", "Sulawési", "\xff", "ŉ", "prov prov prov"} {
		f.Add(s)
	}

	n := New()
	f.Fuzz(func(t *testing.T, input string) {
		once := n.Normalize(input)
		if twice := n.Normalize(once); twice != once {
			t.Fatalf("not idempotent: %q → %q → %q", input, once, twice)
		}
	})
}
