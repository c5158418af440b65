package rules

import (
	"maps"
	"slices"
)

// Preset identifiers.
const (
	Standard  = "Standard"
	B45S5     = "B45/S5"
	HighLife  = "B36/S23"
	CarterBay = "B6/S567"
)

// Presets maps a preset identifier to its rule. It is built once and must not
// be modified.
var Presets = map[string]Rule{
	Standard:  Conway,
	B45S5:     MustNew([]int{4, 5}, []int{5}),
	HighLife:  MustNew([]int{3, 6}, []int{2, 3}),
	CarterBay: MustNew([]int{6}, []int{5, 6, 7}),
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Rule, bool) {
	r, ok := Presets[name]
	return r, ok
}

// Names returns the sorted preset identifiers.
func Names() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// Resolve returns the preset named s, or parses s as B/S notation.
func Resolve(s string) (Rule, error) {
	if r, ok := Lookup(s); ok {
		return r, nil
	}
	return Parse(s)
}
