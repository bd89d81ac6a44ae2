// Package histogram implements the cell histogram (spec.md §4.1): a
// uniform grid over a bounded universe with a per-cell object count
// and accumulated extent. It also owns the shared grid math (cell
// sizing, cellId computation) that both the grid partitioner and the
// BSP partitioner build on, per spec.md §9's "shared helpers become
// free functions taking universe + histogram" design note.
package histogram

import (
	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/sterrors"
)

// Universe is the bounded region known to contain all data. MaxX/MaxY
// are the caller-stated maxima; the right-open adjustment (+EPS) is
// applied internally wherever a spatial.NRectRange is derived for
// range-query purposes (Bounds, CellRange's last-cell edge), per
// spec.md §6. The domain check a point must pass to belong to the
// universe at all (Grid.CellXY) uses the unpadded [Min, Max) rectangle
// instead: EPS exists to let a full-coverage range query match a
// grid's last-cell boundary exactly, not to admit points beyond the
// stated universe.
type Universe struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Validate checks the universe is well-formed.
func (u Universe) Validate() error {
	if u.MinX >= u.MaxX || u.MinY >= u.MaxY {
		return sterrors.Configf("histogram.Universe.Validate", "degenerate universe %+v", u)
	}
	return nil
}

// Bounds returns u as a right-open spatial.NRectRange, padded by EPS on
// the max sides so it matches the last cell's outer edge exactly (see
// CellRange).
func (u Universe) Bounds() spatial.NRectRange {
	r, _ := spatial.NewRect(
		spatial.NPoint{u.MinX, u.MinY},
		spatial.NPoint{u.MaxX + spatial.EPS, u.MaxY + spatial.EPS},
	)
	return r
}

// strictBounds returns u as the true right-open [Min, Max) rectangle,
// with no EPS padding: a point at or beyond MaxX/MaxY is out of
// domain. Used by CellXY's domain check (spec.md §8 scenario 2).
func (u Universe) strictBounds() spatial.NRectRange {
	r, _ := spatial.NewRect(
		spatial.NPoint{u.MinX, u.MinY},
		spatial.NPoint{u.MaxX, u.MaxY},
	)
	return r
}

// Grid describes a uniform partitioning of a Universe into
// numXCells x numYCells equal-sized cells of side (xLen, yLen).
type Grid struct {
	Universe             Universe
	XLen, YLen           float64
	NumXCells, NumYCells int
}

// NewGridBySide builds a Grid with the given fixed cell side lengths.
func NewGridBySide(u Universe, xLen, yLen float64) (Grid, error) {
	if err := u.Validate(); err != nil {
		return Grid{}, err
	}
	if xLen <= 0 || yLen <= 0 {
		return Grid{}, sterrors.Configf("histogram.NewGridBySide", "cell side must be > 0, got (%v,%v)", xLen, yLen)
	}
	nx := numCellsInDim(u.MaxX-u.MinX, xLen)
	ny := numCellsInDim(u.MaxY-u.MinY, yLen)
	return Grid{Universe: u, XLen: xLen, YLen: yLen, NumXCells: nx, NumYCells: ny}, nil
}

// NewGridByPointsPerDim builds a Grid targeting roughly pointsPerDim
// cells along each axis.
func NewGridByPointsPerDim(u Universe, pointsPerDim int) (Grid, error) {
	if err := u.Validate(); err != nil {
		return Grid{}, err
	}
	if pointsPerDim <= 0 {
		return Grid{}, sterrors.Configf("histogram.NewGridByPointsPerDim", "pointsPerDim must be > 0, got %d", pointsPerDim)
	}
	xLen := (u.MaxX - u.MinX) / float64(pointsPerDim)
	yLen := (u.MaxY - u.MinY) / float64(pointsPerDim)
	return Grid{Universe: u, XLen: xLen, YLen: yLen, NumXCells: pointsPerDim, NumYCells: pointsPerDim}, nil
}

func numCellsInDim(span, side float64) int {
	n := int(span / side)
	// Guard against floating point truncation leaving a sliver uncovered.
	if float64(n)*side < span-1e-9 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// NumCells returns the total cell count (numXCells * numYCells).
func (g Grid) NumCells() int { return g.NumXCells * g.NumYCells }

// CellXY returns the (cx, cy) grid coordinates for a point, failing
// with a DomainError if the point lies outside the universe.
func (g Grid) CellXY(x, y float64) (cx, cy int, err error) {
	bounds := g.Universe.strictBounds()
	if !bounds.Contains(spatial.NPoint{x, y}) {
		return 0, 0, sterrors.Domainf("histogram.Grid.CellXY", "(%v,%v) outside universe %+v", x, y, g.Universe)
	}
	cx = int((x - g.Universe.MinX) / g.XLen)
	cy = int((y - g.Universe.MinY) / g.YLen)
	if cx >= g.NumXCells {
		cx = g.NumXCells - 1
	}
	if cy >= g.NumYCells {
		cy = g.NumYCells - 1
	}
	return cx, cy, nil
}

// CellID computes cellId = cy*numXCells + cx for a point, per
// spec.md §4.1/§8 scenario 2.
func (g Grid) CellID(x, y float64) (uint64, error) {
	cx, cy, err := g.CellXY(x, y)
	if err != nil {
		return 0, err
	}
	return uint64(cy)*uint64(g.NumXCells) + uint64(cx), nil
}

// CellRange returns the range [ll, ur) of the cell at grid coordinates
// (cx, cy), right-open, clipped to the universe on the outer edges.
func (g Grid) CellRange(cx, cy int) spatial.NRectRange {
	llx := g.Universe.MinX + float64(cx)*g.XLen
	lly := g.Universe.MinY + float64(cy)*g.YLen
	urx := llx + g.XLen
	ury := lly + g.YLen
	if cx == g.NumXCells-1 {
		urx = g.Universe.MaxX + spatial.EPS
	}
	if cy == g.NumYCells-1 {
		ury = g.Universe.MaxY + spatial.EPS
	}
	r, _ := spatial.NewRect(spatial.NPoint{llx, lly}, spatial.NPoint{urx, ury})
	return r
}
