package domain

import (
	"strings"
	"unicode"
)

// canonicalUnits lists the 17 Metro Manila LGUs in alphabetical order. The
// slice position of each name is its lgu_id feature value; any trained
// classifier depends on this exact ordering.
var canonicalUnits = []string{
	"Caloocan",
	"Las Piñas",
	"Makati",
	"Malabon",
	"Mandaluyong",
	"Manila",
	"Marikina",
	"Muntinlupa",
	"Navotas",
	"Parañaque",
	"Pasay",
	"Pasig",
	"Pateros",
	"Quezon City",
	"San Juan",
	"Taguig",
	"Valenzuela",
}

// unitVariants maps known lower-cased variant spellings, including the
// documented mojibake forms from latin-1 round trips, to canonical names.
// Checked before any generic title-casing.
var unitVariants = map[string]string{
	"las pinas":   "Las Piñas",
	"las piñas":   "Las Piñas",
	"las piã±as":  "Las Piñas",
	"paranaque":   "Parañaque",
	"parañaque":   "Parañaque",
	"paraã±aque":  "Parañaque",
	"quezon city": "Quezon City",
	"san juan":    "San Juan",
}

// NormalizeUnitName canonicalizes a raw unit name. Known variants map to
// their canonical form; anything else is returned trimmed and title-cased as
// a soft failure, for the caller to check against the canonical set. The
// function is idempotent: a canonical name normalizes to itself.
func NormalizeUnitName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := unitVariants[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return titleCase(trimmed)
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest, matching how upstream suspension lists spell names.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// UnitTable is the versioned unit-to-index lookup shared with a trained
// classifier artifact. It is passed into the feature builder as configuration
// rather than read as global state; changing the mapping requires a new
// version released alongside the retrained artifact.
type UnitTable struct {
	version string
	names   []string
	index   map[string]int
}

// DefaultUnitTable returns the v1 table covering the 17 Metro Manila LGUs.
func DefaultUnitTable() *UnitTable {
	t := &UnitTable{
		version: "v1",
		names:   canonicalUnits,
		index:   make(map[string]int, len(canonicalUnits)),
	}
	for i, name := range canonicalUnits {
		t.index[name] = i
	}
	return t
}

// Version identifies the mapping revision.
func (t *UnitTable) Version() string { return t.version }

// Names returns the canonical unit names in index order. Callers must not
// mutate the returned slice.
func (t *UnitTable) Names() []string { return t.names }

// Index returns the categorical index for a canonical unit name.
func (t *UnitTable) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Contains reports whether name is in the canonical set.
func (t *UnitTable) Contains(name string) bool {
	_, ok := t.index[name]
	return ok
}
