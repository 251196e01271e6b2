package catalog

import (
	"maps"
	"slices"
)

// pathFor returns the raw path of the field for a flavor. Safe on nil.
func (f *Field) pathFor(flavor string) (string, bool) {
	if f == nil {
		return "", false
	}

	p, ok := f.Paths[flavor]

	return p, ok && p != ""
}

func flavorIDs(flavors map[string]*Flavor) []string {
	return slices.Sorted(maps.Keys(flavors))
}

func fieldNames(fields map[string]*Field) []string {
	return slices.Sorted(maps.Keys(fields))
}
