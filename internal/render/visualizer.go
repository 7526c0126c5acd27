// Package render draws point datasets as 2D or 3D scatter plots and exports
// the image embedded in a spreadsheet next to the scaled data.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"archviz/internal/dataset"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Output file names written into the output directory.
const (
	ImageFile       = "coords_plot.png"
	SpreadsheetFile = "coords_with_plot.xlsx"
)

// ErrNoOutputDir is returned when Render is called without a destination.
var ErrNoOutputDir = errors.New("output directory not set")

// Options controls a render.
type Options struct {
	// Scale multiplies every coordinate before drawing. DefaultOptions sets 1.
	Scale     float64
	OutputDir string

	// LabelEvery annotates every n-th point of each category in 3D plots.
	LabelEvery int
	View       View

	// Canvas sizes in inches.
	Width3D, Height3D float64
	Width2D, Height2D float64
}

// DefaultOptions returns the standard canvas sizes and labelling.
func DefaultOptions() Options {
	return Options{
		Scale:      1,
		LabelEvery: 5,
		View:       DefaultView,
		Width3D:    14,
		Height3D:   10,
		Width2D:    12,
		Height2D:   10,
	}
}

// Result describes the artifacts of a render.
type Result struct {
	ImagePath       string
	SpreadsheetPath string
	// Dataset is the scaled data that was drawn and exported.
	Dataset *dataset.Dataset
	ThreeD  bool
}

// Resolver picks a default output directory for an input file.
type Resolver interface {
	Resolve(inputPath string) (string, error)
}

// RenderFile reads a dataset and renders it. An empty opts.OutputDir is
// filled in by resolve.
func RenderFile(inputPath string, opts Options, resolve Resolver) (*Result, error) {
	ds, err := dataset.Read(inputPath)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		if resolve == nil {
			return nil, ErrNoOutputDir
		}
		dir, err := resolve.Resolve(inputPath)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
		opts.OutputDir = dir
	}
	return Render(ds, opts)
}

// Render scales ds, draws it and writes the image and spreadsheet into
// opts.OutputDir. A dataset lacking x or y fails with *dataset.SchemaError
// before anything is written.
func Render(ds *dataset.Dataset, opts Options) (*Result, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, ErrNoOutputDir
	}
	opts = withDefaults(opts)

	scaled := ds.Scaled(opts.Scale)

	var (
		p    *plot.Plot
		w, h vg.Length
		err  error
	)
	threeD := scaled.HasZ()
	if threeD {
		w, h = vg.Length(opts.Width3D)*vg.Inch, vg.Length(opts.Height3D)*vg.Inch
		p, err = perspective3D(scaled, w, h, opts.View, opts.LabelEvery)
	} else {
		w, h = vg.Length(opts.Width2D)*vg.Inch, vg.Length(opts.Height2D)*vg.Inch
		p, err = plan2D(scaled, w, h)
	}
	if err != nil {
		return nil, fmt.Errorf("build plot: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, err
	}
	res := &Result{
		ImagePath:       filepath.Join(opts.OutputDir, ImageFile),
		SpreadsheetPath: filepath.Join(opts.OutputDir, SpreadsheetFile),
		Dataset:         scaled,
		ThreeD:          threeD,
	}
	if err := p.Save(w, h, res.ImagePath); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	if err := writeSpreadsheet(res.SpreadsheetPath, scaled, res.ImagePath); err != nil {
		return nil, err
	}
	return res, nil
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.LabelEvery <= 0 {
		opts.LabelEvery = def.LabelEvery
	}
	if opts.View == (View{}) {
		opts.View = def.View
	}
	if opts.Width3D <= 0 || opts.Height3D <= 0 {
		opts.Width3D, opts.Height3D = def.Width3D, def.Height3D
	}
	if opts.Width2D <= 0 || opts.Height2D <= 0 {
		opts.Width2D, opts.Height2D = def.Width2D, def.Height2D
	}
	return opts
}
