// Package generate builds synthetic architectural point clouds.
//
// Every generator is a value type holding its geometric parameters; Generate
// is a pure function of those parameters and returns a fresh dataset.
package generate

import (
	"archviz/internal/dataset"
	"archviz/pkg/geometry"
)

// Level describes what is sampled at one floor elevation of a rectangular building.
type Level struct {
	Z         float64
	WallStep  float64
	Hall      geometry.Rect
	HallStep  float64
	Stairs    []geometry.Rect
	StairStep float64
	Entrances []geometry.Point2D
}

// Building is a rectangular multi-floor structure.
type Building struct {
	Width         float64
	Length        float64
	ColumnSpacing float64
	Levels        []Level

	// Dedup removes exact duplicate rows (shared wall corners, overlapping
	// entrances) from the output.
	Dedup bool
}

// Generate produces walls, columns, hall, stairs and entrances for every level.
func (b Building) Generate() *dataset.Dataset {
	var pts []geometry.Point
	for _, lv := range b.Levels {
		pts = append(pts, b.level(lv)...)
	}
	ds := dataset.FromPoints(pts)
	if b.Dedup {
		ds = ds.Dedup()
	}
	return ds
}

// WithDedup returns a copy with the duplicate policy replaced.
func (b Building) WithDedup(on bool) Generator {
	b.Dedup = on
	return b
}

func (b Building) level(lv Level) []geometry.Point {
	pts := PerimeterWall(b.Width, b.Length, lv.WallStep, lv.Z)
	pts = append(pts, ColumnGrid(b.Width, b.Length, b.ColumnSpacing, lv.Z)...)
	if !lv.Hall.Empty() {
		pts = append(pts, Fill(lv.Hall, lv.HallStep, lv.Z, TypeHall)...)
	}
	for _, s := range lv.Stairs {
		pts = append(pts, Fill(s, lv.StairStep, lv.Z, TypeStairs)...)
	}
	return append(pts, Markers(lv.Entrances, lv.Z, TypeEntrance)...)
}

// BasicBuilding is a small 50 x 30 two-storey block with a lighter roof level.
func BasicBuilding() Building {
	floor := func(z float64) Level {
		return Level{
			Z:         z,
			WallStep:  5,
			Hall:      geometry.NewRect(15, 15, 36, 26),
			HallStep:  5,
			Stairs:    []geometry.Rect{geometry.NewRect(45, 5, 48, 8)},
			StairStep: 1,
			Entrances: []geometry.Point2D{{X: 25, Y: 0}, {X: 25, Y: 30}},
		}
	}
	return Building{
		Width:         50,
		Length:        30,
		ColumnSpacing: 10,
		Levels: []Level{
			floor(0),
			floor(3),
			{
				Z:        6,
				WallStep: 10,
				Hall:     geometry.NewRect(20, 15, 31, 26),
				HallStep: 5,
			},
		},
	}
}

const (
	officeWidth       = 100
	officeLength      = 80
	officeFloorHeight = 3.5
)

func officeFloor(z, stairStep float64) Level {
	return Level{
		Z:        z,
		WallStep: 2,
		Hall:     geometry.NewRect(20, 20, officeWidth-20, officeLength-20),
		HallStep: 3,
		Stairs: []geometry.Rect{
			geometry.NewRect(85, 10, 95, 20),
			geometry.NewRect(5, 60, 15, 70),
		},
		StairStep: stairStep,
		Entrances: []geometry.Point2D{
			{X: officeWidth / 2, Y: 0},
			{X: officeWidth / 2, Y: officeLength},
			{X: 0, Y: officeLength / 2},
			{X: officeWidth, Y: officeLength / 2},
		},
	}
}

// RealisticBuilding is a 100 x 80 five-floor office with a sparser roof level.
// Duplicates are kept.
func RealisticBuilding() Building {
	b := Building{Width: officeWidth, Length: officeLength, ColumnSpacing: 10}
	for i := 0; i < 5; i++ {
		b.Levels = append(b.Levels, officeFloor(float64(i)*officeFloorHeight, 1))
	}
	b.Levels = append(b.Levels, Level{
		Z:        5 * officeFloorHeight,
		WallStep: 5,
		Hall:     geometry.NewRect(30, 30, officeWidth-30, officeLength-30),
		HallStep: 5,
	})
	return b
}

// ProperBuilding repeats the office floor plan on six levels, roof included,
// with coarser stairs and exact-row dedup.
func ProperBuilding() Building {
	b := Building{Width: officeWidth, Length: officeLength, ColumnSpacing: 10, Dedup: true}
	for i := 0; i <= 5; i++ {
		b.Levels = append(b.Levels, officeFloor(float64(i)*officeFloorHeight, 2))
	}
	return b
}
