package tpxo

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"gonum.org/v1/gonum/floats"
)

// gridNode is one grid point in the spatial index. idx is the flat index
// into the per-constituent value slices (lonIdx*len(lats) + latIdx).
type gridNode struct {
	geom.Point
	idx int
}

// buildIndex inserts every grid node into an R-tree. Built once per atlas;
// queries prune against it with SearchIntersect.
func buildIndex(lons, lats []float64) *rtree.Rtree {
	tree := rtree.NewTree(25, 50)
	ny := len(lats)
	for ix, lon := range lons {
		for iy, lat := range lats {
			tree.Insert(gridNode{
				Point: geom.Point{X: lon, Y: lat},
				idx:   ix*ny + iy,
			})
		}
	}
	return tree
}

// normalizeLon maps a negative longitude into the dataset's [0, 360)
// convention. Non-negative longitudes pass through unchanged.
func normalizeLon(lon float64) float64 {
	if lon < 0 {
		return lon + 360
	}
	return lon
}

// meanSpacing returns the mean of the successive differences along an axis.
func meanSpacing(axis []float64) float64 {
	sum := 0.0
	for i := 1; i < len(axis); i++ {
		sum += axis[i] - axis[i-1]
	}
	return sum / float64(len(axis)-1)
}

// interpolate assigns each query point the value of its nearest grid node,
// Euclidean in (lon, lat) space. Candidates are first restricted to the
// joint bounding box of the query points padded by 2 grid-spacing units on
// each side. When two candidates are exactly equidistant the one with the
// lower flat grid index wins, which is the scan order of the value slice.
func (a *Atlas) interpolate(vals []float64, qlon, qlat []float64) ([]float64, error) {
	bounds := &geom.Bounds{
		Min: geom.Point{
			X: floats.Min(qlon) - 2*a.dx,
			Y: floats.Min(qlat) - 2*a.dy,
		},
		Max: geom.Point{
			X: floats.Max(qlon) + 2*a.dx,
			Y: floats.Max(qlat) + 2*a.dy,
		},
	}

	hits := a.tree.SearchIntersect(bounds)
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: bounds lon [%.4f, %.4f] lat [%.4f, %.4f]",
			ErrNoCandidates, bounds.Min.X, bounds.Max.X, bounds.Min.Y, bounds.Max.Y)
	}
	cands := make([]gridNode, len(hits))
	for i, h := range hits {
		cands[i] = h.(gridNode)
	}

	out := make([]float64, len(qlon))
	for i := range qlon {
		best := cands[0]
		bestD := distSq(best.Point, qlon[i], qlat[i])
		for _, c := range cands[1:] {
			d := distSq(c.Point, qlon[i], qlat[i])
			if d < bestD || (d == bestD && c.idx < best.idx) {
				best, bestD = c, d
			}
		}
		out[i] = vals[best.idx]
	}
	return out, nil
}

func distSq(p geom.Point, lon, lat float64) float64 {
	dx := p.X - lon
	dy := p.Y - lat
	return dx*dx + dy*dy
}
