package generate

import (
	"archviz/pkg/geometry"
)

// Category labels emitted by the generators.
const (
	TypeOuter       = "outer"
	TypeColumn      = "column"
	TypeHall        = "hall"
	TypeStairs      = "stairs"
	TypeEntrance    = "entrance"
	TypeOuterWall   = "outer-wall"
	TypeInnerWall   = "inner-wall"
	TypeDome        = "dome"
	TypeOculus      = "oculus"
	TypePorticoRoof = "portico-roof"
	TypeFloor       = "floor"
	TypeNiche       = "niche"
)

// inclusive samples [lo, hi] at step, ending on hi whenever step divides the span.
func inclusive(lo, hi, step float64) []float64 {
	return geometry.Range(lo, hi+step/2, step)
}

// PerimeterWall samples the four edges of the width x length rectangle at elevation z.
// Corners appear once per edge that meets them.
func PerimeterWall(width, length, step, z float64) []geometry.Point {
	var pts []geometry.Point
	for _, x := range []float64{0, width} {
		for _, y := range inclusive(0, length, step) {
			pts = append(pts, geometry.NewPoint(x, y, z, TypeOuter))
		}
	}
	for _, y := range []float64{0, length} {
		for _, x := range inclusive(0, width, step) {
			pts = append(pts, geometry.NewPoint(x, y, z, TypeOuter))
		}
	}
	return pts
}

// ColumnGrid places structural columns on a regular interior grid.
func ColumnGrid(width, length, spacing, z float64) []geometry.Point {
	var pts []geometry.Point
	for _, x := range geometry.Range(spacing, width, spacing) {
		for _, y := range geometry.Range(spacing, length, spacing) {
			pts = append(pts, geometry.NewPoint(x, y, z, TypeColumn))
		}
	}
	return pts
}

// Fill covers a half-open plan rectangle with a regular grid of labeled points.
func Fill(area geometry.Rect, step, z float64, typ string) []geometry.Point {
	var pts []geometry.Point
	for _, x := range geometry.Range(area.MinX, area.MaxX, step) {
		for _, y := range geometry.Range(area.MinY, area.MaxY, step) {
			pts = append(pts, geometry.NewPoint(x, y, z, typ))
		}
	}
	return pts
}

// Markers lifts discrete plan positions to elevation z.
func Markers(at []geometry.Point2D, z float64, typ string) []geometry.Point {
	pts := make([]geometry.Point, len(at))
	for i, p := range at {
		pts[i] = p.At(z, typ)
	}
	return pts
}

// Stack places a vertical run of points at a plan position, one per elevation.
func Stack(at geometry.Point2D, zs []float64, typ string) []geometry.Point {
	pts := make([]geometry.Point, len(zs))
	for i, z := range zs {
		pts[i] = at.At(z, typ)
	}
	return pts
}
