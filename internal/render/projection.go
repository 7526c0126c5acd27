package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// View is the camera orientation of a 3D plot, in degrees.
type View struct {
	Elevation float64
	Azimuth   float64
}

// DefaultView looks down at 25° from the 45° diagonal.
var DefaultView = View{Elevation: 25, Azimuth: 45}

// Projector maps data coordinates onto the 2D drawing plane of a 3D plot.
// Data is first normalised into the aspect box, centred on the origin, then
// rotated so the camera looks along the screen's depth axis.
type Projector struct {
	lim    limits
	aspect [3]float64
	turn   r3.Rotation
	tilt   r3.Rotation
}

func newProjector(lim limits, aspect [3]float64, v View) Projector {
	az := v.Azimuth * math.Pi / 180
	el := v.Elevation * math.Pi / 180
	return Projector{
		lim:    lim,
		aspect: aspect,
		turn:   r3.NewRotation(-(math.Pi/2 + az), r3.Vec{Z: 1}),
		tilt:   r3.NewRotation(-(math.Pi/2 - el), r3.Vec{X: 1}),
	}
}

func normalise(v float64, axis [2]float64, length float64) float64 {
	span := axis[1] - axis[0]
	if span <= 0 {
		return 0
	}
	return ((v-axis[0])/span - 0.5) * length
}

// Project returns the screen position of a data point.
func (p Projector) Project(x, y, z float64) (float64, float64) {
	v := r3.Vec{
		X: normalise(x, p.lim.x, p.aspect[0]),
		Y: normalise(y, p.lim.y, p.aspect[1]),
		Z: normalise(z, p.lim.z, p.aspect[2]),
	}
	v = p.tilt.Rotate(p.turn.Rotate(v))
	return v.X, v.Y
}
