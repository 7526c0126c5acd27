package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"archviz/internal/dataset"
	"archviz/pkg/colorutil"
	"archviz/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{10, 1},
		{17.5, 1},
		{50, 2},
		{100, 5},
		{1000, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TickStep(tt.max), "max=%v", tt.max)
	}
}

func TestTicks(t *testing.T) {
	ticks := Ticks(0, 100)
	require.Len(t, ticks, 21)
	assert.Equal(t, 0.0, ticks[0])
	assert.Equal(t, 100.0, ticks[20])

	ticks = Ticks(0, 17.5)
	assert.Equal(t, 17.0, ticks[len(ticks)-1])

	lo, hi := AxisLimits(-23.5, 23.5)
	assert.Equal(t, -24.0, lo)
	ticks = Ticks(lo, hi)
	assert.Equal(t, -24.0, ticks[0])
	assert.Equal(t, 2.0, ticks[1]-ticks[0])
	assert.LessOrEqual(t, len(ticks), 2*maxTicks)

	lo, hi = AxisLimits(3, 40)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 40.0, hi)
}

func TestTicksNonFinite(t *testing.T) {
	for _, hi := range []float64{math.NaN(), math.Inf(1)} {
		assert.NotPanics(t, func() {
			assert.Empty(t, Ticks(AxisLimits(0, hi)))
		}, "hi=%v", hi)
	}
	assert.NotPanics(t, func() {
		assert.Empty(t, Ticks(AxisLimits(-1.7e308, 1.7e308)))
	})
}

func TestZStretchBounds(t *testing.T) {
	assert.Equal(t, 3.0, ZStretch(17.5, 100))
	assert.Equal(t, 8.0, ZStretch(100, 10))
	assert.Equal(t, 5.0, ZStretch(50, 100))
	assert.Equal(t, 3.0, ZStretch(5, 0))

	for _, zr := range []float64{0, 1, 10, 30, 60, 1000} {
		f := ZStretch(zr, 50)
		assert.GreaterOrEqual(t, f, 3.0)
		assert.LessOrEqual(t, f, 8.0)
	}
}

func TestBoxAspect(t *testing.T) {
	a := BoxAspect(100, 80, 17.5)
	assert.Equal(t, 1.0, a[0])
	assert.Equal(t, 1.0, a[1])
	assert.InDelta(t, 0.525, a[2], 1e-12)

	assert.Equal(t, [3]float64{1, 1, 1}, BoxAspect(0, 0, 5))
}

func TestProjectorHorizontalAxesEqual(t *testing.T) {
	lim := newLimits(geometry.Box3{MaxX: 100, MaxY: 40, MaxZ: 10})
	xr, yr, zr := lim.spans()
	top := newProjector(lim, BoxAspect(xr, yr, zr), View{Elevation: 90})

	ox, oy := top.Project(0, 0, 0)
	ax, ay := top.Project(100, 0, 0)
	bx, by := top.Project(0, 40, 0)
	assert.InDelta(t, 1, math.Hypot(ax-ox, ay-oy), 1e-9)
	assert.InDelta(t, 1, math.Hypot(bx-ox, by-oy), 1e-9)
}

func TestProjectorUpIsUp(t *testing.T) {
	lim := newLimits(geometry.Box3{MaxX: 10, MaxY: 10, MaxZ: 10})
	proj := newProjector(lim, [3]float64{1, 1, 1}, DefaultView)
	_, low := proj.Project(5, 5, 0)
	_, high := proj.Project(5, 5, 10)
	assert.Greater(t, high, low)
}

func TestGroupSeries(t *testing.T) {
	ds := dataset.FromPoints([]geometry.Point{
		geometry.NewPoint(0, 0, 0, "B"),
		geometry.NewPoint(1, 0, 0, "A"),
		geometry.NewPoint(2, 0, 0, "B"),
	})
	got := groupSeries(ds)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].name)
	assert.Equal(t, colorutil.Palette[0], got[0].color)
	assert.Len(t, got[0].points, 2)
	assert.Equal(t, colorutil.Palette[1], got[1].color)

	untyped := &dataset.Dataset{Columns: []string{"x", "y"}, Points: ds.Points}
	one := groupSeries(untyped)
	require.Len(t, one, 1)
	assert.Equal(t, colorutil.Blue, one[0].color)
	assert.Empty(t, one[0].name)
}

func TestLabelSampled(t *testing.T) {
	var picked []int
	for i := 0; i < 12; i++ {
		if LabelSampled(i, 5) {
			picked = append(picked, i)
		}
	}
	assert.Equal(t, []int{0, 5, 10}, picked)
	assert.True(t, LabelSampled(3, 1))
}

func threeRows() *dataset.Dataset {
	return dataset.FromPoints([]geometry.Point{
		geometry.NewPoint(0, 0, 0, "A"),
		geometry.NewPoint(1, 0, 0, "A"),
		geometry.NewPoint(0, 1, 1, "B"),
	})
}

func TestRenderEndToEnd(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Scale = 2
	opts.OutputDir = dir

	res, err := Render(threeRows(), opts)
	require.NoError(t, err)
	assert.True(t, res.ThreeD)
	assert.FileExists(t, res.ImagePath)
	assert.FileExists(t, res.SpreadsheetPath)
	assert.Equal(t, filepath.Join(dir, ImageFile), res.ImagePath)

	back, err := dataset.Read(res.SpreadsheetPath)
	require.NoError(t, err)
	require.Equal(t, 3, back.Len())
	want := [][3]float64{{0, 0, 0}, {2, 0, 0}, {0, 2, 2}}
	for i, p := range back.Points {
		assert.Equal(t, want[i], [3]float64{p.X, p.Y, p.Z})
	}
	assert.Equal(t, back.Points, res.Dataset.Points)
}

func TestRenderEmbedsPicture(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	res, err := Render(threeRows(), opts)
	require.NoError(t, err)

	f, err := excelize.OpenFile(res.SpreadsheetPath)
	require.NoError(t, err)
	defer f.Close()

	pics, err := f.GetPictures(dataset.SheetName, ImageAnchor)
	require.NoError(t, err)
	require.Len(t, pics, 1)

	img, err := png.Decode(bytes.NewReader(pics[0].File))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(thumbWidth, thumbHeight), img.Bounds().Size())

	caption, err := f.GetCellValue(dataset.SheetName, CaptionCell)
	require.NoError(t, err)
	assert.Equal(t, "Visualization", caption)
}

func TestRenderPlanar(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{dataset.ColumnX, dataset.ColumnY},
		Points: []geometry.Point{
			{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0},
		},
	}
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	res, err := Render(ds, opts)
	require.NoError(t, err)
	assert.False(t, res.ThreeD)
	assert.FileExists(t, res.ImagePath)
}

func TestRenderSchemaErrorWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ds := &dataset.Dataset{
		Columns: []string{dataset.ColumnX, dataset.ColumnZ},
		Points:  []geometry.Point{{X: 1, Z: 2}},
	}
	opts := DefaultOptions()
	opts.OutputDir = dir

	_, err := Render(ds, opts)
	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderRequiresOutputDir(t *testing.T) {
	_, err := Render(threeRows(), Options{})
	assert.ErrorIs(t, err, ErrNoOutputDir)
}

type fixedDir string

func (d fixedDir) Resolve(string) (string, error) { return string(d), nil }

func TestRenderFileUsesResolver(t *testing.T) {
	in := t.TempDir()
	input := filepath.Join(in, "points.csv")
	require.NoError(t, dataset.Write(input, threeRows()))

	out := filepath.Join(t.TempDir(), "resolved")
	res, err := RenderFile(input, DefaultOptions(), fixedDir(out))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, SpreadsheetFile), res.SpreadsheetPath)
	assert.FileExists(t, res.SpreadsheetPath)
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	b, err := Thumbnail(src, 8, 6)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 6), img.Bounds().Size())
}

func TestRenderFileSkipsNonFiniteRows(t *testing.T) {
	in := t.TempDir()
	input := filepath.Join(in, "points.csv")
	content := "x,y,z,type\n0,0,0,A\ninf,0,0,A\n1,0,NaN,B\n0,1,1,B\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	res, err := RenderFile(input, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Dataset.Len())
	assert.FileExists(t, res.ImagePath)
}
