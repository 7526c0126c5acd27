// Package app implements the archviz visualizer command line.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"archviz/internal/config"
	"archviz/internal/dataset"
	"archviz/internal/outdir"
	"archviz/internal/publish"
	"archviz/internal/render"
	"archviz/internal/version"
	"archviz/internal/viewer"
)

// Name is the program name shown in usage messages.
const Name = "archviz"

// ErrUsage is reported when the input file argument is missing.
var ErrUsage = errors.New("missing input file")

// Publisher uploads finished artifacts.
type Publisher interface {
	Upload(ctx context.Context, run time.Time, files ...string) ([]string, error)
}

// Env carries the collaborators of a run. Zero fields are filled from the
// config file and the process environment.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives diagnostics. Nil logs to Stderr.
	Logger *log.Logger

	Config    *config.Config
	Resolver  outdir.Resolver
	Sender    viewer.Sender
	Publisher Publisher
	Now       func() time.Time
}

// ParseScale converts the optional scale argument. A blank string is 1.
// Anything that is not a finite number is an error and the caller should
// continue with 1.
func ParseScale(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1, fmt.Errorf("invalid scale %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, fmt.Errorf("invalid scale %q", s)
	}
	return v, nil
}

// Run executes the visualizer with args (excluding the program name) and
// returns the process exit code.
func Run(ctx context.Context, args []string, env Env) int {
	logger := env.Logger
	if logger == nil {
		logger = log.New(env.Stderr, "", log.LstdFlags|log.Lshortfile)
	}

	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	configPath := fs.String("config", "", "Path to config file (default: user config dir)")
	outDir := fs.String("out", "", "Output directory (default: next to the input, or Downloads when packaged)")
	noViewer := fs.Bool("no-viewer", false, "Do not contact the 3D viewer")
	writeConfig := fs.Bool("write-config", false, "Write the effective config file and exit")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(env.Stderr, "Usage: %s [flags] <input_file> [scale]\n", Name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		fmt.Fprintf(env.Stdout, "%s %s\n", Name, version.String())
		return 0
	}
	if *writeConfig {
		cfg, err := loadConfig(env, *configPath)
		if err != nil {
			logger.Printf("Failed to load config: %v", err)
			return 1
		}
		path := *configPath
		if path == "" {
			path = cfg.Path()
		}
		if path == "" {
			path = config.DefaultPath()
		}
		if err := cfg.Save(path); err != nil {
			logger.Printf("Failed to write config: %v", err)
			return 1
		}
		fmt.Fprintf(env.Stdout, "Saved config: %s\n", cfg.Path())
		return 0
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(env.Stderr, "Error: %v\n", ErrUsage)
		fs.Usage()
		return 1
	}
	input := fs.Arg(0)

	cfg, err := loadConfig(env, *configPath)
	if err != nil {
		logger.Printf("Failed to load config: %v", err)
		return 1
	}

	scale, err := ParseScale(fs.Arg(1))
	if err != nil {
		logger.Printf("Warning: %v, using 1.0", err)
	}

	resolver := env.Resolver
	if resolver == nil {
		resolver = outdir.Default()
	}
	now := env.Now
	if now == nil {
		now = time.Now
	}
	started := now()

	opts := render.DefaultOptions()
	opts.Scale = scale
	opts.OutputDir = *outDir
	opts.LabelEvery = cfg.Render.LabelEvery
	opts.Width3D, opts.Height3D = cfg.Render.Width3D, cfg.Render.Height3D
	opts.Width2D, opts.Height2D = cfg.Render.Width2D, cfg.Render.Height2D

	res, err := render.RenderFile(input, opts, resolver)
	if err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Printf("Invalid input %s: %v", input, err)
		} else {
			logger.Printf("Failed to render %s: %v", input, err)
		}
		return 1
	}
	fmt.Fprintf(env.Stdout, "Saved image: %s\n", res.ImagePath)
	fmt.Fprintf(env.Stdout, "Saved excel: %s\n", res.SpreadsheetPath)

	artifacts := []string{res.ImagePath, res.SpreadsheetPath}
	if cfg.Viewer.Enabled && !*noViewer {
		if path := notifyViewer(ctx, logger, cfg, env.Sender, res); path != "" {
			artifacts = append(artifacts, path)
		}
	}

	if cfg.Publish.Enabled {
		publishArtifacts(ctx, logger, cfg, env.Publisher, started, artifacts)
	}
	return 0
}

func loadConfig(env Env, path string) (*config.Config, error) {
	if env.Config != nil {
		return env.Config, nil
	}
	return config.Load(path)
}

// notifyViewer pushes the scaled points to the viewer and returns the
// fallback file path, if one was written.
func notifyViewer(ctx context.Context, logger *log.Logger, cfg *config.Config, s viewer.Sender, res *render.Result) string {
	if s == nil {
		s = viewer.NewClient(cfg.Viewer.Endpoint, cfg.Viewer.Timeout)
	}
	d := viewer.Deliver(ctx, s, viewer.NewPayload(res.Dataset), filepath.Dir(res.ImagePath))
	switch {
	case d.Sent:
		logger.Printf("Sent %d points to viewer", d.Count)
	case d.FallbackPath != "":
		logger.Printf("Viewer unavailable (%v), wrote %s", d.SendErr, d.FallbackPath)
	case d.WriteErr != nil:
		logger.Printf("Viewer unavailable (%v), fallback failed: %v", d.SendErr, d.WriteErr)
	}
	return d.FallbackPath
}

func publishArtifacts(ctx context.Context, logger *log.Logger, cfg *config.Config, p Publisher, run time.Time, files []string) {
	if p == nil {
		u, err := publish.New(publish.Options{
			Endpoint:  cfg.Publish.Endpoint,
			Region:    cfg.Publish.Region,
			Bucket:    cfg.Publish.Bucket,
			Prefix:    cfg.Publish.Prefix,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			Secure:    cfg.Publish.Secure,
		})
		if err != nil {
			logger.Printf("Publish skipped: %v", err)
			return
		}
		p = u
	}
	keys, err := p.Upload(ctx, run, files...)
	if err != nil {
		logger.Printf("Publish failed after %d of %d files: %v", len(keys), len(files), err)
		return
	}
	logger.Printf("Published %d files to %s", len(keys), cfg.Publish.Bucket)
}
