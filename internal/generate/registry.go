package generate

import (
	"sort"

	"archviz/internal/dataset"
)

// Generator produces a dataset from fixed parameters.
type Generator interface {
	Generate() *dataset.Dataset
	WithDedup(on bool) Generator
}

// Variant is a named generator together with its conventional output file.
type Variant struct {
	Name        string
	Description string
	OutputFile  string
	New         func() Generator
}

var variants = map[string]Variant{
	"basic": {
		Name:        "basic",
		Description: "50x30 two-storey block with roof",
		OutputFile:  "building_structure.xlsx",
		New:         func() Generator { return BasicBuilding() },
	},
	"realistic": {
		Name:        "realistic",
		Description: "100x80 five-floor office with roof, duplicates kept",
		OutputFile:  "realistic_building.xlsx",
		New:         func() Generator { return RealisticBuilding() },
	},
	"proper": {
		Name:        "proper",
		Description: "100x80 office, six identical levels, duplicates removed",
		OutputFile:  "proper_building.xlsx",
		New:         func() Generator { return ProperBuilding() },
	},
	"rotunda": {
		Name:        "rotunda",
		Description: "domed rotunda with oculus and portico",
		OutputFile:  "real_pantheon_style.xlsx",
		New:         func() Generator { return DefaultRotunda() },
	},
}

// Lookup returns the named variant.
func Lookup(name string) (Variant, bool) {
	v, ok := variants[name]
	return v, ok
}

// Names lists the registered variants in sorted order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
