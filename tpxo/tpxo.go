// Package tpxo reads the TPXO9 global tidal atlas and interpolates harmonic
// constituent amplitude and phase onto arbitrary (longitude, latitude)
// points by nearest-neighbour lookup.
//
// TPXO: https://www.tpxo.net/global
// Egbert & Erofeeva, "Efficient inverse modeling of barotropic ocean
// tides", J. Atmos. Oceanic Technol. 19.2 (2002): 183-204.
package tpxo

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/geom/index/rtree"
)

// Atlas is an opened TPXO dataset. All data is read at Open; an Atlas is
// immutable afterwards, so concurrent Get calls are safe.
type Atlas struct {
	path       string
	lons, lats []float64
	amp, phase [][]float64
	dx, dy     float64
	tree       *rtree.Rtree
}

// Open loads the TPXO netCDF file at path. An empty path triggers the
// resolution order: the TPXO_NCFILE environment variable, then the
// per-user default location (see DefaultDatasetPath). A missing file is
// reported immediately, wrapping ErrDatasetNotFound.
func Open(path string) (*Atlas, error) {
	path = resolvePath(path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: no TPXO file at %q; "+
			"new users must register at https://www.tpxo.net and request the "+
			"TPXO9 NetCDF file (%s), then either copy or symlink it to %q "+
			"or set the %s environment variable to its location",
			ErrDatasetNotFound, path, DatasetFilename, DefaultDatasetPath(), EnvDatasetPath)
	}

	data, err := readAtlasData(path)
	if err != nil {
		return nil, err
	}

	return &Atlas{
		path:  path,
		lons:  data.lons,
		lats:  data.lats,
		amp:   data.amp,
		phase: data.phase,
		dx:    meanSpacing(data.lons),
		dy:    meanSpacing(data.lats),
		tree:  buildIndex(data.lons, data.lats),
	}, nil
}

// Path returns the resolved dataset path the atlas was loaded from.
func (a *Atlas) Path() string { return a.path }

// GetAmplitude interpolates the amplitude grid of the named constituent
// onto vertices, a sequence of (longitude, latitude) pairs. Longitudes may
// use either the [-180, 180] or the [0, 360] convention. The result has
// one value per vertex, in input order.
func (a *Atlas) GetAmplitude(constituent string, vertices [][]float64) ([]float64, error) {
	return a.lookup(a.amp, constituent, vertices)
}

// GetPhase interpolates the phase grid of the named constituent onto
// vertices. Same contract as GetAmplitude.
func (a *Atlas) GetPhase(constituent string, vertices [][]float64) ([]float64, error) {
	return a.lookup(a.phase, constituent, vertices)
}

func (a *Atlas) lookup(grids [][]float64, constituent string, vertices [][]float64) ([]float64, error) {
	c, ok := constituentIndex[constituent]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstituent, constituent)
	}
	qlon, qlat, err := splitVertices(vertices)
	if err != nil {
		return nil, err
	}
	return a.interpolate(grids[c], qlon, qlat)
}

// splitVertices validates the vertex sequence and splits it into parallel
// longitude and latitude slices, normalizing negative longitudes into the
// dataset's [0, 360) convention.
func splitVertices(vertices [][]float64) (qlon, qlat []float64, err error) {
	if len(vertices) == 0 {
		return nil, nil, fmt.Errorf("%w: empty vertex sequence", ErrInvalidVertices)
	}
	qlon = make([]float64, len(vertices))
	qlat = make([]float64, len(vertices))
	for i, v := range vertices {
		if len(v) != 2 {
			return nil, nil, fmt.Errorf("%w: vertex %d has %d coordinates, want 2", ErrInvalidVertices, i, len(v))
		}
		if !finite(v[0]) || !finite(v[1]) {
			return nil, nil, fmt.Errorf("%w: vertex %d is not finite (%v, %v)", ErrInvalidVertices, i, v[0], v[1])
		}
		qlon[i] = normalizeLon(v[0])
		qlat[i] = v[1]
	}
	return qlon, qlat, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
