package histogram

import (
	"github.com/pkg/errors"

	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/sterrors"
	"github.com/grailbio/stark/stobject"
)

// CellHistogram is the built histogram: one spatial.Cell plus an
// object count per grid cell, indexed by cellId (spec.md §4.1). It is
// immutable once returned by Build or Merge, matching the
// builder-then-freeze idiom spatial.CellBuilder establishes.
type CellHistogram struct {
	Grid   Grid
	cells  []spatial.Cell
	counts []uint64
}

// Build folds objs into a fresh histogram over g. Any object whose
// centroid falls outside g.Universe fails the whole build with a
// DomainError (spec.md §8 scenario 2), matching the "fail fast on an
// out-of-universe coordinate" behavior of the grailbio sharder this is
// grounded on (encoding/pam/sharder.go's block-boundary fold).
func Build(g Grid, objs []stobject.STObject, pointsOnly bool) (*CellHistogram, error) {
	builders := make([]*spatial.CellBuilder, g.NumCells())
	for cy := 0; cy < g.NumYCells; cy++ {
		for cx := 0; cx < g.NumXCells; cx++ {
			id := uint64(cy)*uint64(g.NumXCells) + uint64(cx)
			builders[id] = spatial.NewCellBuilder(id, g.CellRange(cx, cy), pointsOnly)
		}
	}
	for i, o := range objs {
		c := o.Geom.Centroid()
		id, err := g.CellID(c.X, c.Y)
		if err != nil {
			return nil, errors.Wrapf(err, "histogram.Build: object %d", i)
		}
		builders[id].Add(o.Geom.Envelope())
	}
	return fromBuilders(g, builders), nil
}

func fromBuilders(g Grid, builders []*spatial.CellBuilder) *CellHistogram {
	cells := make([]spatial.Cell, len(builders))
	counts := make([]uint64, len(builders))
	for i, b := range builders {
		cells[i] = b.Build()
		counts[i] = b.Count()
	}
	return &CellHistogram{Grid: g, cells: cells, counts: counts}
}

// Merge combines two histograms over the same grid, associatively and
// commutatively (spec.md §4.1). It returns a ConfigError if the grids
// don't match.
func Merge(a, b *CellHistogram) (*CellHistogram, error) {
	if a.Grid != b.Grid {
		return nil, sterrors.Configf("histogram.Merge", "grid mismatch: %+v vs %+v", a.Grid, b.Grid)
	}
	cells := make([]spatial.Cell, len(a.cells))
	counts := make([]uint64, len(a.cells))
	for i := range a.cells {
		counts[i] = a.counts[i] + b.counts[i]
		rng := a.cells[i].Range
		extent := rng
		hasExtent := a.counts[i] > 0 || b.counts[i] > 0
		if hasExtent {
			extent = a.cells[i].Extent.Extend(b.cells[i].Extent)
		}
		cells[i] = spatial.Cell{ID: a.cells[i].ID, Range: rng, Extent: extent}
	}
	return &CellHistogram{Grid: a.Grid, cells: cells, counts: counts}, nil
}

// Cell returns the spatial.Cell at cellId.
func (h *CellHistogram) Cell(cellID uint64) spatial.Cell { return h.cells[cellID] }

// Count returns the object count at cellId.
func (h *CellHistogram) Count(cellID uint64) uint64 { return h.counts[cellID] }

// NumCells returns the number of cells in the histogram.
func (h *CellHistogram) NumCells() int { return len(h.cells) }

// TotalCount returns the sum of all per-cell counts.
func (h *CellHistogram) TotalCount() uint64 {
	var total uint64
	for _, c := range h.counts {
		total += c
	}
	return total
}

// CountInRange sums the counts of every cell entirely contained in
// rng; used by the BSP partitioner's cost function (spec.md §4.3),
// which only ever asks about axis-aligned unions of whole grid cells.
func (h *CellHistogram) CountInRange(rng spatial.NRectRange) uint64 {
	var total uint64
	for i, c := range h.cells {
		if rng.ContainsRange(c.Range) {
			total += h.counts[i]
		}
	}
	return total
}
