package render

import (
	"math"

	"archviz/pkg/geometry"
)

const (
	maxTicks       = 20
	minZStretch    = 3.0
	maxZStretch    = 8.0
	stretchPercent = 0.1
)

// TickStep returns the gridline spacing for an axis reaching axisMax,
// keeping the count near maxTicks.
func TickStep(axisMax float64) float64 {
	return math.Max(1, math.Floor(axisMax/maxTicks))
}

// AxisLimits returns the displayed range for data spanning [lo, hi].
// Axes start at 0 unless the data goes negative.
func AxisLimits(lo, hi float64) (float64, float64) {
	return math.Min(0, math.Floor(lo)), hi
}

// Ticks returns tick positions for an axis shown over [lo, hi].
func Ticks(lo, hi float64) []float64 {
	step := TickStep(hi - lo)
	return geometry.Range(lo, math.Trunc(hi)+step, step)
}

// ZStretch is the factor applied to the vertical axis so low, wide
// structures do not render flat. It grows with the height-to-footprint
// ratio and is clamped to [3, 8].
func ZStretch(zRange, horizontalRange float64) float64 {
	if horizontalRange <= 0 {
		return minZStretch
	}
	f := zRange / (horizontalRange * stretchPercent)
	return math.Max(minZStretch, math.Min(maxZStretch, f))
}

// BoxAspect returns the relative display lengths of the x, y and z axes.
// The horizontal axes are always 1:1.
func BoxAspect(xRange, yRange, zRange float64) [3]float64 {
	h := math.Max(xRange, yRange)
	if h <= 0 {
		return [3]float64{1, 1, 1}
	}
	return [3]float64{1, 1, zRange / h * ZStretch(zRange, h)}
}

// limits is the displayed 3D box.
type limits struct {
	x, y, z [2]float64
}

func newLimits(b geometry.Box3) limits {
	var l limits
	l.x[0], l.x[1] = AxisLimits(b.MinX, b.MaxX)
	l.y[0], l.y[1] = AxisLimits(b.MinY, b.MaxY)
	l.z[0], l.z[1] = AxisLimits(b.MinZ, b.MaxZ)
	return l
}

func (l limits) spans() (float64, float64, float64) {
	return l.x[1] - l.x[0], l.y[1] - l.y[0], l.z[1] - l.z[0]
}
