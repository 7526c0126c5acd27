package generate

import (
	"math"

	"archviz/internal/dataset"
	"archviz/pkg/geometry"
)

// Rotunda is a domed round hall with an oculus and a columned portico.
type Rotunda struct {
	Radius        float64 // inner wall radius
	WallThickness float64
	WallHeight    float64
	WallSegments  int
	WallLevels    int

	DomeHeight       float64
	DomeAzimuthSteps int
	DomeElevSteps    int
	// Curvature is the exponent applied to the dome profile; values below 1
	// keep the shell wide for longer before it closes in at the top.
	Curvature float64

	OculusRadius   float64
	OculusSegments int

	PorticoWidth   float64
	PorticoDepth   float64
	PorticoColumns int
	ColumnHeight   float64
	ColumnLevels   int
	RoofColumns    int
	RoofRows       int

	EntranceWidth  float64
	EntranceHeight float64
	EntranceCols   int
	EntranceRows   int

	FloorInset    float64
	FloorRings    int
	FloorSegments int

	Niches      int
	NicheBottom float64
	NicheTop    float64
	NicheLevels int

	Dedup bool
}

// DefaultRotunda returns a rotunda proportioned after the Roman Pantheon,
// scaled so the dome fits the same coordinate range as the plan.
func DefaultRotunda() Rotunda {
	return Rotunda{
		Radius:        21.5,
		WallThickness: 2,
		WallHeight:    8,
		WallSegments:  128,
		WallLevels:    9,

		DomeHeight:       12,
		DomeAzimuthSteps: 64,
		DomeElevSteps:    32,
		Curvature:        0.7,

		OculusRadius:   4.5,
		OculusSegments: 32,

		PorticoWidth:   15,
		PorticoDepth:   8,
		PorticoColumns: 16,
		ColumnHeight:   6,
		ColumnLevels:   7,
		RoofColumns:    20,
		RoofRows:       10,

		EntranceWidth:  6,
		EntranceHeight: 6,
		EntranceCols:   8,
		EntranceRows:   7,

		FloorInset:    1,
		FloorRings:    20,
		FloorSegments: 64,

		Niches:      8,
		NicheBottom: 1,
		NicheTop:    4,
		NicheLevels: 4,
	}
}

// Generate assembles every element of the rotunda.
func (r Rotunda) Generate() *dataset.Dataset {
	var pts []geometry.Point
	pts = append(pts, r.Walls()...)
	pts = append(pts, r.Dome()...)
	pts = append(pts, r.Oculus()...)
	pts = append(pts, r.Portico()...)
	pts = append(pts, r.Entrance()...)
	pts = append(pts, r.Floor()...)
	pts = append(pts, r.NichePoints()...)

	ds := dataset.FromPoints(pts)
	if r.Dedup {
		ds = ds.Dedup()
	}
	return ds
}

// WithDedup returns a copy with the duplicate policy replaced.
func (r Rotunda) WithDedup(on bool) Generator {
	r.Dedup = on
	return r
}

// Walls samples the inner and outer drum rings at every wall level.
func (r Rotunda) Walls() []geometry.Point {
	origin := geometry.Point2D{}
	outer := geometry.Ring(origin, r.Radius+r.WallThickness, r.WallSegments)
	inner := geometry.Ring(origin, r.Radius, r.WallSegments)
	levels := geometry.Linspace(0, r.WallHeight, r.WallLevels)

	pts := make([]geometry.Point, 0, 2*len(outer)*len(levels))
	for i := range outer {
		for _, z := range levels {
			pts = append(pts,
				outer[i].At(z, TypeOuterWall),
				inner[i].At(z, TypeInnerWall),
			)
		}
	}
	return pts
}

// DomePoint maps an azimuth and an elevation angle in [0, π/2] onto the shell.
// Elevation 0 is the base ring on top of the wall, π/2 the apex.
func (r Rotunda) DomePoint(azimuth, elevation float64) geometry.Point {
	polar := math.Pi/2 - elevation
	profile := math.Pow(math.Max(0, math.Sin(polar)), r.Curvature)
	return geometry.Point{
		X:    r.Radius * math.Cos(azimuth) * profile,
		Y:    r.Radius * math.Sin(azimuth) * profile,
		Z:    r.WallHeight + r.DomeHeight*math.Sin(elevation),
		Type: TypeDome,
	}
}

// Dome sweeps azimuth over a full turn and elevation over a quarter turn.
func (r Rotunda) Dome() []geometry.Point {
	var pts []geometry.Point
	for _, az := range geometry.Angles(r.DomeAzimuthSteps) {
		for _, el := range geometry.Linspace(0, math.Pi/2, r.DomeElevSteps) {
			pts = append(pts, r.DomePoint(az, el))
		}
	}
	return pts
}

// Oculus is the open ring at the dome apex.
func (r Rotunda) Oculus() []geometry.Point {
	z := r.WallHeight + r.DomeHeight
	ring := geometry.Ring(geometry.Point2D{}, r.OculusRadius, r.OculusSegments)
	return Markers(ring, z, TypeOculus)
}

// Portico places a row of columns in front of the drum and a flat roof over them.
func (r Rotunda) Portico() []geometry.Point {
	front := r.Radius + r.WallThickness
	var pts []geometry.Point

	xs := geometry.Linspace(-r.PorticoWidth/2, r.PorticoWidth/2, r.PorticoColumns)
	zs := geometry.Linspace(0, r.ColumnHeight, r.ColumnLevels)
	for _, x := range xs {
		pts = append(pts, Stack(geometry.NewPoint2D(x, front+2), zs, TypeColumn)...)
	}

	for _, x := range geometry.Linspace(-r.PorticoWidth/2, r.PorticoWidth/2, r.RoofColumns) {
		for _, y := range geometry.Linspace(front, front+r.PorticoDepth, r.RoofRows) {
			pts = append(pts, geometry.NewPoint(x, y, r.ColumnHeight, TypePorticoRoof))
		}
	}
	return pts
}

// Entrance is a vertical grid in the plane of the inner wall facing the portico.
func (r Rotunda) Entrance() []geometry.Point {
	var pts []geometry.Point
	zs := geometry.Linspace(0, r.EntranceHeight, r.EntranceRows)
	for _, x := range geometry.Linspace(-r.EntranceWidth/2, r.EntranceWidth/2, r.EntranceCols) {
		pts = append(pts, Stack(geometry.NewPoint2D(x, r.Radius), zs, TypeEntrance)...)
	}
	return pts
}

// Floor fills the interior disc with concentric rings.
func (r Rotunda) Floor() []geometry.Point {
	var pts []geometry.Point
	for _, radius := range geometry.Linspace(0, r.Radius-r.FloorInset, r.FloorRings) {
		ring := geometry.Ring(geometry.Point2D{}, radius, r.FloorSegments)
		pts = append(pts, Markers(ring, 0, TypeFloor)...)
	}
	return pts
}

// NichePoints stacks small vertical runs at evenly spaced angles just inside the wall.
func (r Rotunda) NichePoints() []geometry.Point {
	var pts []geometry.Point
	zs := geometry.Linspace(r.NicheBottom, r.NicheTop, r.NicheLevels)
	for _, at := range geometry.Ring(geometry.Point2D{}, r.Radius-1, r.Niches) {
		pts = append(pts, Stack(at, zs, TypeNiche)...)
	}
	return pts
}
