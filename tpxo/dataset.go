package tpxo

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// TPXO netCDF variable names.
const (
	varLonZ      = "lon_z"
	varLatZ      = "lat_z"
	varAmplitude = "ha"
	varPhase     = "hp"
)

// atlasData is the decoded content of a TPXO netCDF file: the two axis
// vectors plus, per constituent, the amplitude and phase grids flattened
// longitude-major (flat index = lonIdx*len(lats) + latIdx).
type atlasData struct {
	lons, lats []float64
	amp, phase [][]float64
}

// readAtlasData opens the netCDF file at path and reads lon_z, lat_z, ha
// and hp fully into memory. The file handle is closed before returning, so
// the result shares no state with the file.
func readAtlasData(path string) (*atlasData, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer nc.Close()

	// lon_z and lat_z are stored as 2-D (nx × ny) coordinate grids; the
	// axes are the first column of lon_z and the first row of lat_z.
	lonGrid, err := readMatrix(nc, varLonZ)
	if err != nil {
		return nil, err
	}
	latGrid, err := readMatrix(nc, varLatZ)
	if err != nil {
		return nil, err
	}
	lons := matrixColumn(lonGrid, 0)
	lats := latGrid[0]

	if err := checkAxis(varLonZ, lons); err != nil {
		return nil, err
	}
	if err := checkAxis(varLatZ, lats); err != nil {
		return nil, err
	}

	amp, err := readConstituentGrids(nc, varAmplitude, len(lons), len(lats))
	if err != nil {
		return nil, err
	}
	phase, err := readConstituentGrids(nc, varPhase, len(lons), len(lats))
	if err != nil {
		return nil, err
	}

	return &atlasData{lons: lons, lats: lats, amp: amp, phase: phase}, nil
}

// readMatrix reads a 2-D float variable as float64.
func readMatrix(nc api.Group, name string) ([][]float64, error) {
	vr, err := nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	m, ok := toMatrix(vr.Values)
	if !ok {
		return nil, fmt.Errorf("variable %s: expected 2-D float array, got %T", name, vr.Values)
	}
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("variable %s: empty array", name)
	}
	return m, nil
}

// readConstituentGrids reads a 3-D float variable indexed
// [constituent][lon][lat] and flattens each constituent layer
// longitude-major. The file must carry at least one layer per catalog
// entry and every layer must match the nx × ny axis shape.
func readConstituentGrids(nc api.Group, name string, nx, ny int) ([][]float64, error) {
	vr, err := nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	cube, ok := toCube(vr.Values)
	if !ok {
		return nil, fmt.Errorf("variable %s: expected 3-D float array, got %T", name, vr.Values)
	}
	if len(cube) < len(constituents) {
		return nil, fmt.Errorf("variable %s: %d constituent layers, want %d", name, len(cube), len(constituents))
	}

	grids := make([][]float64, len(constituents))
	for c := range grids {
		layer := cube[c]
		if len(layer) != nx {
			return nil, fmt.Errorf("variable %s: layer %d has %d rows, want %d", name, c, len(layer), nx)
		}
		flat := make([]float64, 0, nx*ny)
		for ix, col := range layer {
			if len(col) != ny {
				return nil, fmt.Errorf("variable %s: layer %d row %d has %d values, want %d", name, c, ix, len(col), ny)
			}
			flat = append(flat, col...)
		}
		grids[c] = flat
	}
	return grids, nil
}

// checkAxis verifies an axis is long enough to define a grid spacing and
// strictly increasing, which the bounding-box arithmetic relies on.
func checkAxis(name string, axis []float64) error {
	if len(axis) < 2 {
		return fmt.Errorf("axis %s: need at least 2 points, got %d", name, len(axis))
	}
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return fmt.Errorf("axis %s: not strictly increasing at index %d (%.6f after %.6f)",
				name, i, axis[i], axis[i-1])
		}
	}
	return nil
}

func matrixColumn(m [][]float64, j int) []float64 {
	col := make([]float64, len(m))
	for i, row := range m {
		col[i] = row[j]
	}
	return col
}

// toMatrix converts a netCDF 2-D value to [][]float64. The atlas may store
// coordinates as either float32 or float64.
func toMatrix(v interface{}) ([][]float64, bool) {
	switch m := v.(type) {
	case [][]float64:
		return m, true
	case [][]float32:
		out := make([][]float64, len(m))
		for i, row := range m {
			out[i] = widen(row)
		}
		return out, true
	}
	return nil, false
}

// toCube converts a netCDF 3-D value to [][][]float64.
func toCube(v interface{}) ([][][]float64, bool) {
	switch c := v.(type) {
	case [][][]float64:
		return c, true
	case [][][]float32:
		out := make([][][]float64, len(c))
		for i, layer := range c {
			rows := make([][]float64, len(layer))
			for j, row := range layer {
				rows[j] = widen(row)
			}
			out[i] = rows
		}
		return out, true
	}
	return nil, false
}

func widen(row []float32) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = float64(v)
	}
	return out
}
