package tpxo

import (
	"os"
	"path/filepath"
)

const (
	// EnvDatasetPath is the environment variable consulted when Open is
	// called with an empty path.
	EnvDatasetPath = "TPXO_NCFILE"

	// DatasetFilename is the file name the TPXO authors distribute.
	DatasetFilename = "h_tpxo9.v1.nc"
)

// resolvePath applies the dataset resolution order: explicit argument,
// then the TPXO_NCFILE environment variable, then the per-user data
// directory default.
func resolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvDatasetPath); env != "" {
		return env
	}
	return DefaultDatasetPath()
}

// DefaultDatasetPath returns the conventional per-user location of the
// atlas: $XDG_DATA_HOME/tpxo/h_tpxo9.v1.nc, falling back to
// ~/.local/share/tpxo/h_tpxo9.v1.nc.
func DefaultDatasetPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "tpxo", DatasetFilename)
}
