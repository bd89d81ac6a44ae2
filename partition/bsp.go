package partition

import (
	"github.com/grailbio/base/log"

	"github.com/grailbio/stark/histogram"
	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/sterrors"
	"github.com/grailbio/stark/stobject"
)

// BSPPartitioner implements spec.md §4.3: a cost-based recursive
// binary split of the universe, driven by a CellHistogram, that keeps
// per-partition cost near maxCost while keeping partitions as few and
// as large as possible.
//
// The work queue is a plain slice used FIFO (append/pop-front),
// matching the teacher's iterative shard-boundary accumulation in
// pam.GenerateReadShards rather than a recursive call stack.
type BSPPartitioner struct {
	grid       histogram.Grid
	hist       *histogram.CellHistogram
	pointsOnly bool
	partitions []Partition
	cellToPart []int // cellId -> partition index
}

// rectWork is one rectangular block of grid cells awaiting a cost
// check, expressed in cell-index coordinates (right-open).
type rectWork struct {
	cxLo, cxHi int
	cyLo, cyHi int
}

func (w rectWork) numCellsX() int { return w.cxHi - w.cxLo }
func (w rectWork) numCellsY() int { return w.cyHi - w.cyLo }

// BuildBSP runs the cost-based split (spec.md §4.3) over h, emitting
// partitions whose cost stays at or below maxCost wherever a single
// cell doesn't already exceed it alone.
//
// The minimum splittable size is one histogram cell per dimension
// (the grid's own cell side; the BSP always operates on whole
// histogram cells): a block with numCellsX()<=1 && numCellsY()<=1
// cannot be split further regardless of cost.
func BuildBSP(g histogram.Grid, h *histogram.CellHistogram, maxCost uint64, pointsOnly bool, numCellThreshold int) (*BSPPartitioner, error) {
	if maxCost == 0 {
		return nil, sterrors.Configf("partition.BuildBSP", "maxCost must be > 0")
	}
	if h.Grid != g {
		return nil, sterrors.Configf("partition.BuildBSP", "histogram grid does not match g")
	}

	nonEmpty := 0
	for id := 0; id < g.NumCells(); id++ {
		if h.Count(uint64(id)) > 0 {
			nonEmpty++
		}
	}

	var blocks [][]uint64 // each block is the explicit cell id list for one emitted partition

	if nonEmpty <= numCellThreshold {
		// Step 1: emit each non-empty cell as its own partition.
		for id := 0; id < g.NumCells(); id++ {
			if h.Count(uint64(id)) > 0 {
				blocks = append(blocks, []uint64{uint64(id)})
			}
		}
	} else {
		blocks = splitUniverse(g, h, maxCost)
	}

	bsp := fromBlocks(g, h, pointsOnly, blocks)
	if log.At(log.Debug) {
		log.Debug.Printf("partition.BuildBSP: %d non-empty cells, maxCost=%d -> %d partitions", nonEmpty, maxCost, bsp.NumPartitions())
	}
	return bsp, nil
}

// splitUniverse runs the iterative work-queue split (spec.md §4.3
// steps 2-3) and returns the list of emitted partitions as explicit
// cell-id sets. A single "leftover" accumulator collects every
// zero-cost region absorbed during splitting (spec.md: "the non-empty
// side absorbs the empty range so the union still equals P"), emitted
// as one final partition at the end if non-empty.
func splitUniverse(g histogram.Grid, h *histogram.CellHistogram, maxCost uint64) [][]uint64 {
	queue := []rectWork{{0, g.NumXCells, 0, g.NumYCells}}
	var emitted [][]uint64
	var leftover []uint64

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		cells := cellsOf(g, p)
		cost := costOf(h, cells)
		unsplittable := p.numCellsX() <= 1 && p.numCellsY() <= 1
		if cost <= maxCost || unsplittable {
			emitted = append(emitted, cells)
			continue
		}

		dim, boundary, ok := bestSplit(g, h, p)
		if !ok {
			// No candidate boundary exists (shouldn't happen given
			// !unsplittable, but fall back to emitting P whole).
			emitted = append(emitted, cells)
			continue
		}
		p1, p2 := splitAt(p, dim, boundary)
		c1 := costOf(h, cellsOf(g, p1))
		c2 := costOf(h, cellsOf(g, p2))

		switch {
		case c1 == 0:
			leftover = append(leftover, cellsOf(g, p1)...)
			queue = append(queue, p2)
		case c2 == 0:
			leftover = append(leftover, cellsOf(g, p2)...)
			queue = append(queue, p1)
		default:
			queue = append(queue, p1, p2)
		}
	}

	if len(leftover) > 0 {
		emitted = append(emitted, leftover)
	}
	return emitted
}

// cellsOf enumerates the cell ids covered by a rectangular work item.
func cellsOf(g histogram.Grid, p rectWork) []uint64 {
	cells := make([]uint64, 0, p.numCellsX()*p.numCellsY())
	for cy := p.cyLo; cy < p.cyHi; cy++ {
		for cx := p.cxLo; cx < p.cxHi; cx++ {
			cells = append(cells, uint64(cy)*uint64(g.NumXCells)+uint64(cx))
		}
	}
	return cells
}

// bestSplit finds the (dim, boundary) interior cell-index boundary
// minimizing |cost(P1)-cost(P2)|, ties broken lexicographically by
// (dim, boundary), per spec.md §4.3's cost-based split.
func bestSplit(g histogram.Grid, h *histogram.CellHistogram, p rectWork) (dim int, boundary int, ok bool) {
	bestScore := int64(-1)
	for d := 0; d < 2; d++ {
		n := p.numCellsX()
		if d == 1 {
			n = p.numCellsY()
		}
		if n <= 1 {
			continue
		}
		for i := 1; i < n; i++ {
			p1, p2 := splitAt(p, d, i)
			c1 := int64(costOf(h, cellsOf(g, p1)))
			c2 := int64(costOf(h, cellsOf(g, p2)))
			score := c1 - c2
			if score < 0 {
				score = -score
			}
			if !ok || score < bestScore {
				ok = true
				bestScore = score
				dim, boundary = d, i
			}
		}
	}
	return dim, boundary, ok
}

// splitAt splits p along dimension d at the i-th interior cell
// boundary (cell-index units, not coordinate units): p1 gets the first
// i cells in dimension d, p2 gets the rest.
func splitAt(p rectWork, d, i int) (p1, p2 rectWork) {
	p1, p2 = p, p
	if d == 0 {
		p1.cxHi = p.cxLo + i
		p2.cxLo = p.cxLo + i
	} else {
		p1.cyHi = p.cyLo + i
		p2.cyLo = p.cyLo + i
	}
	return p1, p2
}

func fromBlocks(g histogram.Grid, h *histogram.CellHistogram, pointsOnly bool, blocks [][]uint64) *BSPPartitioner {
	partitions := make([]Partition, len(blocks))
	cellToPart := make([]int, g.NumCells())
	for id := range cellToPart {
		cellToPart[id] = -1
	}
	for idx, cells := range blocks {
		bounds := envelopeOfCells(g, cells)
		partitions[idx] = Partition{
			ID:      idx,
			CellIDs: cells,
			Bounds:  bounds,
			Extent:  extentOf(h, cells, bounds, pointsOnly),
			Cost:    costOf(h, cells),
		}
		for _, id := range cells {
			cellToPart[id] = idx
		}
	}
	return &BSPPartitioner{grid: g, hist: h, pointsOnly: pointsOnly, partitions: partitions, cellToPart: cellToPart}
}

func envelopeOfCells(g histogram.Grid, cells []uint64) spatial.NRectRange {
	var envelope spatial.NRectRange
	for i, id := range cells {
		cx := int(id) % g.NumXCells
		cy := int(id) / g.NumXCells
		r := g.CellRange(cx, cy)
		if i == 0 {
			envelope = r
			continue
		}
		envelope = envelope.Extend(r)
	}
	return envelope
}

var _ Partitioner = (*BSPPartitioner)(nil)

func (p *BSPPartitioner) NumPartitions() int { return len(p.partitions) }

func (p *BSPPartitioner) GetPartitionID(obj stobject.STObject) (int, error) {
	c := obj.Geom.Centroid()
	cellID, err := p.grid.CellID(c.X, c.Y)
	if err != nil {
		return 0, err
	}
	id := p.cellToPart[cellID]
	if id < 0 {
		return 0, sterrors.Domainf("partition.BSPPartitioner.GetPartitionID", "cell %d belongs to no partition", cellID)
	}
	return id, nil
}

func (p *BSPPartitioner) PartitionBounds(id int) spatial.NRectRange { return p.partitions[id].Bounds }
func (p *BSPPartitioner) PartitionExtent(id int) spatial.NRectRange { return p.partitions[id].Extent }
func (p *BSPPartitioner) IsEmpty(id int) bool                       { return p.partitions[id].Cost == 0 }

// Partitions returns the full emitted partition list, useful for
// manifest writing and tests.
func (p *BSPPartitioner) Partitions() []Partition { return p.partitions }
