package tpxo_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/SanderHulst/adcircpy/tpxo"
)

// TestOpenMissingDataset checks the fail-fast contract: a nonexistent path
// (with no environment override) fails at Open with the attempted path and
// both remediation mechanisms in the message.
func TestOpenMissingDataset(t *testing.T) {
	t.Setenv(tpxo.EnvDatasetPath, "")
	path := filepath.Join(t.TempDir(), "nope", tpxo.DatasetFilename)

	_, err := tpxo.Open(path)
	if !errors.Is(err, tpxo.ErrDatasetNotFound) {
		t.Fatalf("Open = %v, want ErrDatasetNotFound", err)
	}
	msg := err.Error()
	for _, want := range []string{path, "tpxo.net", tpxo.EnvDatasetPath, tpxo.DatasetFilename} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
}

// TestOpenEnvVarResolution checks that an empty path falls back to the
// TPXO_NCFILE environment variable.
func TestOpenEnvVarResolution(t *testing.T) {
	path := writeAtlas(t, seq(0, 1, 4), seq(40, 1, 4))
	t.Setenv(tpxo.EnvDatasetPath, path)

	atlas, err := tpxo.Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	if atlas.Path() != path {
		t.Errorf("Path() = %q, want %q", atlas.Path(), path)
	}
}

// TestOpenExplicitPathWinsOverEnv checks the resolution order.
func TestOpenExplicitPathWinsOverEnv(t *testing.T) {
	explicit := writeAtlas(t, seq(0, 1, 4), seq(40, 1, 4))
	t.Setenv(tpxo.EnvDatasetPath, filepath.Join(t.TempDir(), "unused.nc"))

	atlas, err := tpxo.Open(explicit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if atlas.Path() != explicit {
		t.Errorf("Path() = %q, want %q", atlas.Path(), explicit)
	}
}

// TestOpenMissingVariable checks that a file without the expected TPXO
// variables is rejected with the variable named.
func TestOpenMissingVariable(t *testing.T) {
	nx, ny := 4, 4
	lonGrid := make([][]float64, nx)
	latGrid := make([][]float64, nx)
	for ix := range lonGrid {
		lonGrid[ix] = make([]float64, ny)
		latGrid[ix] = make([]float64, ny)
		for iy := range lonGrid[ix] {
			lonGrid[ix][iy] = float64(ix)
			latGrid[ix][iy] = 40 + float64(iy)
		}
	}
	path := filepath.Join(t.TempDir(), "partial.nc")
	writeVars(t, path, map[string]api.Variable{
		"lon_z": {Values: lonGrid, Dimensions: []string{"nx", "ny"}},
		"lat_z": {Values: latGrid, Dimensions: []string{"nx", "ny"}},
	})

	_, err := tpxo.Open(path)
	if err == nil || !strings.Contains(err.Error(), "ha") {
		t.Fatalf("Open = %v, want error naming the ha variable", err)
	}
}

// TestOpenTooFewLayers checks that a truncated constituent dimension is
// rejected at Open rather than indexing out of range on first query.
func TestOpenTooFewLayers(t *testing.T) {
	nx, ny, nc := 4, 4, 3
	lonGrid := make([][]float64, nx)
	latGrid := make([][]float64, nx)
	for ix := range lonGrid {
		lonGrid[ix] = make([]float64, ny)
		latGrid[ix] = make([]float64, ny)
		for iy := range lonGrid[ix] {
			lonGrid[ix][iy] = float64(ix)
			latGrid[ix][iy] = 40 + float64(iy)
		}
	}
	cube := make([][][]float64, nc)
	for c := range cube {
		cube[c] = make([][]float64, nx)
		for ix := range cube[c] {
			cube[c][ix] = make([]float64, ny)
		}
	}
	path := filepath.Join(t.TempDir(), "short.nc")
	writeVars(t, path, map[string]api.Variable{
		"lon_z": {Values: lonGrid, Dimensions: []string{"nx", "ny"}},
		"lat_z": {Values: latGrid, Dimensions: []string{"nx", "ny"}},
		"ha":    {Values: cube, Dimensions: []string{"nc", "nx", "ny"}},
		"hp":    {Values: cube, Dimensions: []string{"nc", "nx", "ny"}},
	})

	_, err := tpxo.Open(path)
	if err == nil || !strings.Contains(err.Error(), "constituent layers") {
		t.Fatalf("Open = %v, want constituent-layer count error", err)
	}
}

// TestOpenFloat32Atlas checks float32-typed variables are widened; the real
// atlas stores single precision.
func TestOpenFloat32Atlas(t *testing.T) {
	nx, ny := 5, 4
	nc := len(tpxo.Catalog())
	lonGrid := make([][]float32, nx)
	latGrid := make([][]float32, nx)
	for ix := range lonGrid {
		lonGrid[ix] = make([]float32, ny)
		latGrid[ix] = make([]float32, ny)
		for iy := range lonGrid[ix] {
			lonGrid[ix][iy] = float32(ix)
			latGrid[ix][iy] = 40 + float32(iy)
		}
	}
	amp := make([][][]float32, nc)
	for c := range amp {
		amp[c] = make([][]float32, nx)
		for ix := range amp[c] {
			amp[c][ix] = make([]float32, ny)
			for iy := range amp[c][ix] {
				amp[c][ix][iy] = float32(ampValue(c, ix, iy))
			}
		}
	}
	path := filepath.Join(t.TempDir(), "f32.nc")
	writeVars(t, path, map[string]api.Variable{
		"lon_z": {Values: lonGrid, Dimensions: []string{"nx", "ny"}},
		"lat_z": {Values: latGrid, Dimensions: []string{"nx", "ny"}},
		"ha":    {Values: amp, Dimensions: []string{"nc", "nx", "ny"}},
		"hp":    {Values: amp, Dimensions: []string{"nc", "nx", "ny"}},
	})

	atlas, err := tpxo.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := atlas.GetAmplitude("K1", [][]float64{{2, 41}})
	if err != nil {
		t.Fatalf("GetAmplitude: %v", err)
	}
	if want := ampValue(4, 2, 1); !closeEnough(got[0], want) {
		t.Errorf("got %.4f, want %.4f", got[0], want)
	}
}

// TestOpenNonMonotonicAxis checks that a scrambled axis is rejected.
func TestOpenNonMonotonicAxis(t *testing.T) {
	nx, ny := 4, 4
	nc := len(tpxo.Catalog())
	lonGrid := make([][]float64, nx)
	latGrid := make([][]float64, nx)
	lonAxis := []float64{0, 2, 1, 3} // out of order
	for ix := range lonGrid {
		lonGrid[ix] = make([]float64, ny)
		latGrid[ix] = make([]float64, ny)
		for iy := range lonGrid[ix] {
			lonGrid[ix][iy] = lonAxis[ix]
			latGrid[ix][iy] = 40 + float64(iy)
		}
	}
	cube := make([][][]float64, nc)
	for c := range cube {
		cube[c] = make([][]float64, nx)
		for ix := range cube[c] {
			cube[c][ix] = make([]float64, ny)
		}
	}
	path := filepath.Join(t.TempDir(), "scrambled.nc")
	writeVars(t, path, map[string]api.Variable{
		"lon_z": {Values: lonGrid, Dimensions: []string{"nx", "ny"}},
		"lat_z": {Values: latGrid, Dimensions: []string{"nx", "ny"}},
		"ha":    {Values: cube, Dimensions: []string{"nc", "nx", "ny"}},
		"hp":    {Values: cube, Dimensions: []string{"nc", "nx", "ny"}},
	})

	_, err := tpxo.Open(path)
	if err == nil || !strings.Contains(err.Error(), "not strictly increasing") {
		t.Fatalf("Open = %v, want monotonicity error", err)
	}
}
