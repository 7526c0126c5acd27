// Package dataset holds labeled point sets and their tabular file formats.
package dataset

import (
	"fmt"
	"strings"

	"archviz/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// Column names of the shared tabular schema.
const (
	ColumnX    = "x"
	ColumnY    = "y"
	ColumnZ    = "z"
	ColumnType = "type"
)

// schemaOrder is the canonical column order used when writing.
var schemaOrder = []string{ColumnX, ColumnY, ColumnZ, ColumnType}

// SchemaError reports required coordinate columns missing from a dataset.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset must contain 'x' and 'y' columns (missing: %s)", strings.Join(e.Missing, ", "))
}

// Dataset is an ordered sequence of points plus the columns the source provided.
// Points are never modified in place; transforms return a new Dataset.
type Dataset struct {
	Columns []string
	Points  []geometry.Point
}

// FromPoints wraps generated points in a dataset carrying the full x, y, z, type schema.
func FromPoints(points []geometry.Point) *Dataset {
	return &Dataset{
		Columns: append([]string(nil), schemaOrder...),
		Points:  points,
	}
}

// Len returns the number of points.
func (d *Dataset) Len() int {
	return len(d.Points)
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// HasZ reports whether a vertical coordinate is present.
func (d *Dataset) HasZ() bool { return d.HasColumn(ColumnZ) }

// HasType reports whether points carry category labels.
func (d *Dataset) HasType() bool { return d.HasColumn(ColumnType) }

// Validate checks that the required coordinate columns are present.
func (d *Dataset) Validate() error {
	var missing []string
	for _, c := range []string{ColumnX, ColumnY} {
		if !d.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Scaled returns a copy with every coordinate multiplied by factor.
func (d *Dataset) Scaled(factor float64) *Dataset {
	points := make([]geometry.Point, len(d.Points))
	for i, p := range d.Points {
		points[i] = p.Scale(factor)
	}
	return &Dataset{Columns: append([]string(nil), d.Columns...), Points: points}
}

// Dedup returns a copy without exact duplicate rows, keeping first occurrences.
func (d *Dataset) Dedup() *Dataset {
	seen := make(map[geometry.Point]struct{}, len(d.Points))
	points := make([]geometry.Point, 0, len(d.Points))
	for _, p := range d.Points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}
	return &Dataset{Columns: append([]string(nil), d.Columns...), Points: points}
}

// Categories returns the distinct type labels in first-seen order.
func (d *Dataset) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, p := range d.Points {
		if !seen[p.Type] {
			seen[p.Type] = true
			cats = append(cats, p.Type)
		}
	}
	return cats
}

// CountByType returns the number of points per type label.
func (d *Dataset) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, p := range d.Points {
		counts[p.Type]++
	}
	return counts
}

// Column extracts one coordinate column.
func (d *Dataset) Column(name string) []float64 {
	vals := make([]float64, len(d.Points))
	for i, p := range d.Points {
		switch name {
		case ColumnX:
			vals[i] = p.X
		case ColumnY:
			vals[i] = p.Y
		case ColumnZ:
			vals[i] = p.Z
		}
	}
	return vals
}

// Bounds returns the coordinate ranges of the dataset.
func (d *Dataset) Bounds() geometry.Box3 {
	if len(d.Points) == 0 {
		return geometry.Box3{}
	}
	xs, ys, zs := d.Column(ColumnX), d.Column(ColumnY), d.Column(ColumnZ)
	return geometry.Box3{
		MinX: floats.Min(xs), MaxX: floats.Max(xs),
		MinY: floats.Min(ys), MaxY: floats.Max(ys),
		MinZ: floats.Min(zs), MaxZ: floats.Max(zs),
	}
}
