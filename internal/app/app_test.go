package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"archviz/internal/config"
	"archviz/internal/dataset"
	"archviz/internal/outdir"
	"archviz/internal/render"
	"archviz/internal/viewer"
	"archviz/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	ds := dataset.FromPoints([]geometry.Point{
		geometry.NewPoint(0, 0, 0, "A"),
		geometry.NewPoint(1, 0, 0, "A"),
		geometry.NewPoint(0, 1, 1, "B"),
	})
	require.NoError(t, dataset.Write(path, ds))
	return path
}

func quietConfig() *config.Config {
	c := config.Default()
	c.Viewer.Enabled = false
	return c
}

type recorder struct {
	got []viewer.Payload
	err error
}

func (r *recorder) Send(_ context.Context, p viewer.Payload) error {
	r.got = append(r.got, p)
	return r.err
}

type fakePublisher struct {
	files []string
}

func (f *fakePublisher) Upload(_ context.Context, _ time.Time, files ...string) ([]string, error) {
	f.files = append(f.files, files...)
	return files, nil
}

func run(t *testing.T, env Env, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env.Stdout, env.Stderr = &stdout, &stderr
	code := Run(context.Background(), args, env)
	return code, stdout.String(), stderr.String()
}

func TestParseScale(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 1, false},
		{"   ", 1, false},
		{" 2.5 ", 2.5, false},
		{"0", 0, false},
		{"2", 2, false},
		{"0.5", 0.5, false},
		{"abc", 1, true},
		{"NaN", 1, true},
		{"+Inf", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScale(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunMissingInput(t *testing.T) {
	code, stdout, stderr := run(t, Env{Config: quietConfig()})
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage: archviz")
	assert.Contains(t, stderr, ErrUsage.Error())
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := run(t, Env{Config: quietConfig()}, "-version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "archviz")
}

func TestRunWritesNextToInput(t *testing.T) {
	input := writeInput(t)
	code, stdout, _ := run(t, Env{Config: quietConfig(), Resolver: outdir.Development{}}, input, "2")
	require.Equal(t, 0, code)

	dir := filepath.Dir(input)
	image := filepath.Join(dir, render.ImageFile)
	sheet := filepath.Join(dir, render.SpreadsheetFile)
	assert.Contains(t, stdout, "Saved image: "+image+"\n")
	assert.Contains(t, stdout, "Saved excel: "+sheet+"\n")
	assert.FileExists(t, image)

	out, err := dataset.Read(sheet)
	require.NoError(t, err)
	require.Len(t, out.Points, 3)
	assert.Equal(t, geometry.NewPoint(2, 0, 0, "A"), out.Points[1])
	assert.Equal(t, geometry.NewPoint(0, 2, 2, "B"), out.Points[2])
}

func TestRunMissingScaleMatchesExplicitOne(t *testing.T) {
	input := writeInput(t)
	implicit := t.TempDir()
	explicit := t.TempDir()

	code, _, _ := run(t, Env{Config: quietConfig()}, "-out", implicit, input)
	require.Equal(t, 0, code)
	code, _, _ = run(t, Env{Config: quietConfig()}, "-out", explicit, input, "1.0")
	require.Equal(t, 0, code)

	a, err := dataset.Read(filepath.Join(implicit, render.SpreadsheetFile))
	require.NoError(t, err)
	b, err := dataset.Read(filepath.Join(explicit, render.SpreadsheetFile))
	require.NoError(t, err)
	assert.Equal(t, a.Points, b.Points)
}

func TestRunInvalidScaleWarnsAndUsesOne(t *testing.T) {
	input := writeInput(t)
	dir := t.TempDir()

	code, _, stderr := run(t, Env{Config: quietConfig()}, "-out", dir, input, "big")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "Warning")
	assert.Contains(t, stderr, `"big"`)

	out, err := dataset.Read(filepath.Join(dir, render.SpreadsheetFile))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(1, 0, 0, "A"), out.Points[1])
}

func TestRunSchemaError(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(input, []byte("x,z\n1,2\n"), 0o644))
	dir := filepath.Join(t.TempDir(), "out")

	code, stdout, stderr := run(t, Env{Config: quietConfig()}, "-out", dir, input)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Invalid input")
	assert.NoDirExists(t, dir)
}

func TestRunSendsScaledPointsToViewer(t *testing.T) {
	input := writeInput(t)
	dir := t.TempDir()
	rec := &recorder{}
	cfg := config.Default()

	code, _, stderr := run(t, Env{Config: cfg, Sender: rec}, "-out", dir, input, "3")
	require.Equal(t, 0, code)
	require.Len(t, rec.got, 1)
	assert.Equal(t, 3, rec.got[0].TotalCount)
	assert.Equal(t, viewer.Point{X: 0, Y: 3, Z: 3, Type: "B"}, rec.got[0].Points[2])
	assert.Contains(t, stderr, "Sent 3 points")
	assert.NoFileExists(t, filepath.Join(dir, viewer.FallbackFile))
}

func TestRunViewerFallback(t *testing.T) {
	input := writeInput(t)
	dir := t.TempDir()
	rec := &recorder{err: errors.New("connection refused")}
	pub := &fakePublisher{}
	cfg := config.Default()
	cfg.Publish = config.Publish{Enabled: true, Endpoint: "localhost:9000", Bucket: "plots"}

	code, _, stderr := run(t, Env{Config: cfg, Sender: rec, Publisher: pub}, "-out", dir, input)
	require.Equal(t, 0, code)

	fallback := filepath.Join(dir, viewer.FallbackFile)
	assert.FileExists(t, fallback)
	assert.Contains(t, stderr, "Viewer unavailable")
	p, err := viewer.LoadPayload(fallback)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalCount)

	assert.Equal(t, []string{
		filepath.Join(dir, render.ImageFile),
		filepath.Join(dir, render.SpreadsheetFile),
		fallback,
	}, pub.files)
	assert.Contains(t, stderr, "Published 3 files to plots")
}

func TestRunNoViewerFlag(t *testing.T) {
	input := writeInput(t)
	rec := &recorder{}
	code, _, _ := run(t, Env{Config: config.Default(), Sender: rec}, "-no-viewer", "-out", t.TempDir(), input)
	require.Equal(t, 0, code)
	assert.Empty(t, rec.got)
}

func TestRunZeroScaleIsHonoured(t *testing.T) {
	input := writeInput(t)
	dir := t.TempDir()

	code, _, stderr := run(t, Env{Config: quietConfig()}, "-out", dir, input, "0")
	require.Equal(t, 0, code)
	assert.NotContains(t, stderr, "Warning")

	out, err := dataset.Read(filepath.Join(dir, render.SpreadsheetFile))
	require.NoError(t, err)
	require.Len(t, out.Points, 3)
	for _, p := range out.Points {
		assert.Equal(t, [3]float64{0, 0, 0}, [3]float64{p.X, p.Y, p.Z})
	}
}

func TestRunBlankScaleIsOmitted(t *testing.T) {
	input := writeInput(t)
	dir := t.TempDir()

	code, _, stderr := run(t, Env{Config: quietConfig()}, "-out", dir, input, "  ")
	require.Equal(t, 0, code)
	assert.NotContains(t, stderr, "Warning")

	out, err := dataset.Read(filepath.Join(dir, render.SpreadsheetFile))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(1, 0, 0, "A"), out.Points[1])
}

func TestRunUsesInjectedLogger(t *testing.T) {
	input := writeInput(t)
	var logs bytes.Buffer
	env := Env{Config: quietConfig(), Logger: log.New(&logs, "viz: ", 0)}

	code, _, stderr := run(t, env, "-out", t.TempDir(), input, "big")
	require.Equal(t, 0, code)
	assert.Contains(t, logs.String(), "viz: Warning")
	assert.NotContains(t, stderr, "Warning")
}

func TestRunWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archviz", "config.yaml")
	cfg := quietConfig()
	cfg.Render.LabelEvery = 7

	code, stdout, _ := run(t, Env{Config: cfg}, "-config", path, "-write-config")
	require.Equal(t, 0, code)
	assert.Equal(t, "Saved config: "+path+"\n", stdout)

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, got.Viewer.Enabled)
	assert.Equal(t, 7, got.Render.LabelEvery)
	assert.Equal(t, path, got.Path())
}

func TestRunWriteConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  label_every: 3\n"), 0o644))

	code, stdout, _ := run(t, Env{}, "-config", path, "-write-config")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, path)

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Render.LabelEvery)
	assert.Equal(t, config.Default().Viewer, got.Viewer)
}
