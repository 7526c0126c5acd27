package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"archviz/internal/dataset"
	"archviz/pkg/colorutil"
	"archviz/pkg/geometry"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	pointAlpha = 0.8
	gridAlpha  = 0.3
)

// series is one scatter group drawn in a single color.
type series struct {
	name   string
	color  color.RGBA
	points []geometry.Point
}

// groupSeries splits the dataset by category in first-seen order.
// Untyped data becomes a single unnamed blue series.
func groupSeries(ds *dataset.Dataset) []series {
	if !ds.HasType() {
		return []series{{color: colorutil.Blue, points: ds.Points}}
	}
	cats := ds.Categories()
	colors := colorutil.CategoryColors(cats)
	idx := make(map[string]int, len(cats))
	out := make([]series, len(cats))
	for i, c := range cats {
		idx[c] = i
		out[i] = series{name: c, color: colors[i]}
	}
	for _, p := range ds.Points {
		s := &out[idx[p.Type]]
		s.points = append(s.points, p)
	}
	return out
}

// LabelSampled reports whether the point at ordinal i within its category is annotated.
func LabelSampled(i, every int) bool {
	if every <= 1 {
		return true
	}
	return i%every == 0
}

func newScatter(xys plotter.XYs, c color.RGBA) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = colorutil.WithAlpha(c, pointAlpha)
	s.GlyphStyle.Radius = vg.Points(2.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	return s, nil
}

func newLabels(xys plotter.XYs, texts []string, size vg.Length, offset vg.Point) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Font.Size = size
		l.TextStyle[i].Color = colorutil.WithAlpha(colorutil.Black, pointAlpha)
	}
	l.Offset = offset
	return l, nil
}

func newSegment(x0, y0, x1, y1 float64, c color.Color, width vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	return l, nil
}

// fitEqual widens the shorter data range so one unit spans the same
// distance on both axes of a w x h canvas, with a small margin.
func fitEqual(p *plot.Plot, w, h vg.Length) {
	dx := p.X.Max - p.X.Min
	dy := p.Y.Max - p.Y.Min
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	ratio := float64(w / h)
	cx := (p.X.Max + p.X.Min) / 2
	cy := (p.Y.Max + p.Y.Min) / 2
	if dx/dy < ratio {
		dx = dy * ratio
	} else {
		dy = dx / ratio
	}
	dx *= 1.05
	dy *= 1.05
	p.X.Min, p.X.Max = cx-dx/2, cx+dx/2
	p.Y.Min, p.Y.Max = cy-dy/2, cy+dy/2
}

// constantTicks keeps the ticks inside [lo, hi] and labels them as integers.
func constantTicks(vals []float64, lo, hi float64) plot.ConstantTicks {
	var ticks []plot.Tick
	for _, v := range vals {
		if v < lo || v > hi {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: tickLabel(v)})
	}
	return ticks
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coordLabel2D(p geometry.Point) string {
	return fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y)
}

func coordLabel3D(p geometry.Point) string {
	return fmt.Sprintf("(%.0f,%.0f,%.0f)", p.X, p.Y, p.Z)
}

// plan2D renders a planar scatter with every point annotated.
func plan2D(ds *dataset.Dataset, w, h vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Building plan coordinates"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = colorutil.WithAlpha(colorutil.Gray, gridAlpha)
	grid.Horizontal.Color = colorutil.WithAlpha(colorutil.Gray, gridAlpha)
	p.Add(grid)

	for _, s := range groupSeries(ds) {
		xys := make(plotter.XYs, len(s.points))
		texts := make([]string, len(s.points))
		for i, pt := range s.points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
			texts[i] = coordLabel2D(pt)
		}
		sc, err := newScatter(xys, s.color)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.name, err)
		}
		p.Add(sc)
		if s.name != "" {
			p.Legend.Add(s.name, sc)
		}
		lbl, err := newLabels(xys, texts, vg.Points(8), vg.Point{X: vg.Points(5), Y: vg.Points(5)})
		if err != nil {
			return nil, fmt.Errorf("labels %q: %w", s.name, err)
		}
		p.Add(lbl)
	}

	b := ds.Bounds()
	xlo, xhi := AxisLimits(b.MinX, b.MaxX)
	ylo, yhi := AxisLimits(b.MinY, b.MaxY)
	p.X.Min, p.X.Max = xlo, xhi
	p.Y.Min, p.Y.Max = ylo, yhi
	fitEqual(p, w, h)
	p.X.Tick.Marker = constantTicks(Ticks(xlo, xhi), p.X.Min, p.X.Max)
	p.Y.Tick.Marker = constantTicks(Ticks(ylo, yhi), p.Y.Min, p.Y.Max)
	return p, nil
}

// perspective3D renders a projected 3D scatter inside a gridded axis box.
func perspective3D(ds *dataset.Dataset, w, h vg.Length, view View, labelEvery int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Building 3D coordinates"
	p.HideAxes()
	p.Legend.Top = true

	lim := newLimits(ds.Bounds())
	xr, yr, zr := lim.spans()
	proj := newProjector(lim, BoxAspect(xr, yr, zr), view)

	if err := addAxisBox(p, proj, lim); err != nil {
		return nil, err
	}

	for _, s := range groupSeries(ds) {
		xys := make(plotter.XYs, len(s.points))
		var (
			lxys  plotter.XYs
			texts []string
		)
		for i, pt := range s.points {
			x, y := proj.Project(pt.X, pt.Y, pt.Z)
			xys[i] = plotter.XY{X: x, Y: y}
			if LabelSampled(i, labelEvery) {
				lxys = append(lxys, xys[i])
				texts = append(texts, coordLabel3D(pt))
			}
		}
		sc, err := newScatter(xys, s.color)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.name, err)
		}
		p.Add(sc)
		if s.name != "" {
			p.Legend.Add(s.name, sc)
		}
		if len(lxys) == 0 {
			continue
		}
		lbl, err := newLabels(lxys, texts, vg.Points(6), vg.Point{})
		if err != nil {
			return nil, fmt.Errorf("labels %q: %w", s.name, err)
		}
		p.Add(lbl)
	}

	fitEqual(p, w, h)
	return p, nil
}

// addAxisBox draws the box edges, the gridlines on the floor and the two
// back walls, tick labels and axis titles.
func addAxisBox(p *plot.Plot, proj Projector, lim limits) error {
	x0, x1 := lim.x[0], lim.x[1]
	y0, y1 := lim.y[0], lim.y[1]
	z0, z1 := lim.z[0], lim.z[1]

	seg := func(a, b [3]float64, c color.Color, width vg.Length) error {
		ax, ay := proj.Project(a[0], a[1], a[2])
		bx, by := proj.Project(b[0], b[1], b[2])
		l, err := newSegment(ax, ay, bx, by, c, width)
		if err != nil {
			return err
		}
		p.Add(l)
		return nil
	}

	gridColor := colorutil.WithAlpha(colorutil.Gray, gridAlpha)
	xTicks, yTicks, zTicks := Ticks(x0, x1), Ticks(y0, y1), Ticks(z0, z1)

	var grid [][2][3]float64
	for _, t := range xTicks {
		grid = append(grid, [2][3]float64{{t, y0, z0}, {t, y1, z0}}, [2][3]float64{{t, y0, z0}, {t, y0, z1}})
	}
	for _, t := range yTicks {
		grid = append(grid, [2][3]float64{{x0, t, z0}, {x1, t, z0}}, [2][3]float64{{x0, t, z0}, {x0, t, z1}})
	}
	for _, t := range zTicks {
		grid = append(grid, [2][3]float64{{x0, y0, t}, {x1, y0, t}}, [2][3]float64{{x0, y0, t}, {x0, y1, t}})
	}
	for _, g := range grid {
		if err := seg(g[0], g[1], gridColor, vg.Points(0.5)); err != nil {
			return err
		}
	}

	corners := [8][3]float64{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		if err := seg(corners[e[0]], corners[e[1]], colorutil.LightGray, vg.Points(0.75)); err != nil {
			return err
		}
	}

	var (
		xys   plotter.XYs
		texts []string
	)
	mark := func(x, y, z float64, text string) {
		px, py := proj.Project(x, y, z)
		xys = append(xys, plotter.XY{X: px, Y: py})
		texts = append(texts, text)
	}
	for _, t := range xTicks {
		if t <= x1 {
			mark(t, y1, z0, tickLabel(t))
		}
	}
	for _, t := range yTicks {
		if t <= y1 {
			mark(x1, t, z0, tickLabel(t))
		}
	}
	for _, t := range zTicks {
		if t <= z1 {
			mark(x1, y0, t, tickLabel(t))
		}
	}
	mark((x0+x1)/2, y1+0.12*math.Max(y1-y0, 1), z0, "X")
	mark(x1+0.12*math.Max(x1-x0, 1), (y0+y1)/2, z0, "Y")
	mark(x1, y0-0.08*math.Max(y1-y0, 1), (z0+z1)/2, "Z (floor)")

	lbl, err := newLabels(xys, texts, vg.Points(7), vg.Point{})
	if err != nil {
		return err
	}
	p.Add(lbl)
	return nil
}
