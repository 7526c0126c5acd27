// Package outdir chooses where render artifacts go when no directory is given.
package outdir

import (
	"os"
	"path/filepath"
	"time"

	"archviz/internal/version"
)

// FolderPrefix names the per-run folder created for packaged builds.
const FolderPrefix = "BuildingVisualizer_"

// PackagedEnv forces packaged behaviour when set to "1".
const PackagedEnv = "ARCHVIZ_PACKAGED"

// Resolver picks a default output directory for an input file.
type Resolver interface {
	Resolve(inputPath string) (string, error)
}

// Development writes next to the input file.
type Development struct{}

// Resolve returns the input file's directory.
func (Development) Resolve(inputPath string) (string, error) {
	dir := filepath.Dir(inputPath)
	if dir == "" {
		dir = "."
	}
	return dir, nil
}

// Packaged writes into a timestamped folder under the downloads directory.
type Packaged struct {
	// Downloads overrides the detected downloads directory.
	Downloads string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Resolve returns <downloads>/BuildingVisualizer_YYYYMMDD_HHMMSS.
func (p Packaged) Resolve(string) (string, error) {
	base := p.Downloads
	if base == "" {
		d, err := DownloadsDir()
		if err != nil {
			return "", err
		}
		base = d
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return filepath.Join(base, FolderPrefix+now().Format("20060102_150405")), nil
}

// DownloadsDir returns the user's downloads folder, honouring XDG_DOWNLOAD_DIR.
func DownloadsDir() (string, error) {
	if d := os.Getenv("XDG_DOWNLOAD_DIR"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}

// IsPackaged reports whether this binary is a distributed build.
func IsPackaged() bool {
	return version.Packaged == "true" || os.Getenv(PackagedEnv) == "1"
}

// Default returns the resolver matching how the program was built.
func Default() Resolver {
	if IsPackaged() {
		return Packaged{}
	}
	return Development{}
}
