package partition

import (
	"github.com/grailbio/stark/histogram"
	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/stobject"
)

// GridPartitioner implements spec.md §4.2: getPartition(key) =
// cellId(centroid(key.geom)), one partition per grid cell.
type GridPartitioner struct {
	grid histogram.Grid
	hist *histogram.CellHistogram // optional; nil means extent==bounds, isEmpty unknown (reports false)
}

// NewGridPartitioner builds a GridPartitioner over g. hist, if
// non-nil, must have been built over the same grid and supplies
// per-cell extent and occupancy; pass nil when no sample histogram is
// available yet.
func NewGridPartitioner(g histogram.Grid, hist *histogram.CellHistogram) *GridPartitioner {
	return &GridPartitioner{grid: g, hist: hist}
}

var _ Partitioner = (*GridPartitioner)(nil)

func (p *GridPartitioner) NumPartitions() int { return p.grid.NumCells() }

func (p *GridPartitioner) GetPartitionID(obj stobject.STObject) (int, error) {
	c := obj.Geom.Centroid()
	id, err := p.grid.CellID(c.X, c.Y)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (p *GridPartitioner) cellXY(id int) (cx, cy int) {
	cx = id % p.grid.NumXCells
	cy = id / p.grid.NumXCells
	return cx, cy
}

func (p *GridPartitioner) PartitionBounds(id int) spatial.NRectRange {
	cx, cy := p.cellXY(id)
	return p.grid.CellRange(cx, cy)
}

func (p *GridPartitioner) PartitionExtent(id int) spatial.NRectRange {
	if p.hist == nil {
		return p.PartitionBounds(id)
	}
	return p.hist.Cell(uint64(id)).Extent
}

func (p *GridPartitioner) IsEmpty(id int) bool {
	if p.hist == nil {
		return false
	}
	return p.hist.Count(uint64(id)) == 0
}
