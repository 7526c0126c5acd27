package geometry

import "math"

// Range returns lo, lo+step, ... for every value strictly below hi.
// A non-positive step or any non-finite bound yields nil.
func Range(lo, hi, step float64) []float64 {
	if step <= 0 || hi <= lo || !isFinite(lo) || !isFinite(hi) || !isFinite(step) {
		return nil
	}
	count := math.Ceil((hi - lo) / step)
	if !isFinite(count) || count > math.MaxInt32 {
		return nil
	}
	n := int(count)
	vals := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := lo + float64(i)*step
		if v >= hi {
			break
		}
		vals = append(vals, v)
	}
	return vals
}

// Linspace returns n evenly spaced values over [lo, hi], both ends included.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	// Pin the end so callers can compare against hi exactly.
	vals[n-1] = hi
	return vals
}

// Angles returns n evenly spaced angles over [0, 2π).
func Angles(n int) []float64 {
	if n <= 0 {
		return nil
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return vals
}

// Ring generates n evenly-spaced plan points around a circle.
func Ring(center Point2D, radius float64, n int) []Point2D {
	angles := Angles(n)
	points := make([]Point2D, len(angles))
	for i, a := range angles {
		points[i] = Point2D{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return points
}
