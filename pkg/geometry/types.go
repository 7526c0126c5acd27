// Package geometry provides the coordinate types shared by the generators and the visualizer.
package geometry

import (
	"math"
)

// Point is a labeled coordinate. Z defaults to 0 for planar data.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Type string  `json:"type"`
}

// NewPoint creates a new Point.
func NewPoint(x, y, z float64, typ string) Point {
	return Point{X: x, Y: y, Z: z, Type: typ}
}

// Scale returns the point with every coordinate multiplied by factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor, Z: p.Z * factor, Type: p.Type}
}

// Finite reports whether all coordinates are finite numbers.
func (p Point) Finite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

// Point2D represents a plan position.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// At lifts the plan position to elevation z with the given label.
func (p Point2D) At(z float64, typ string) Point {
	return Point{X: p.X, Y: p.Y, Z: z, Type: typ}
}

// Rect is a half-open plan rectangle [MinX, MaxX) x [MinY, MaxY).
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// NewRect creates a new Rect.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Box3 is an axis-aligned 3D bounding box.
type Box3 struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
