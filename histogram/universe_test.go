package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/stark/sterrors"
)

func TestGridCellID(t *testing.T) {
	// Scenario 2 from spec.md §8: a 10x10 universe split into 1x1 cells,
	// cellId = cy*numXCells + cx.
	u := Universe{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	g, err := NewGridBySide(u, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 10, g.NumXCells)
	assert.Equal(t, 10, g.NumYCells)

	id, err := g.CellID(3, 4)
	assert.NoError(t, err)
	assert.Equal(t, uint64(4*10+3), id)

	// Right-open: the upper boundary of the universe is out of range.
	_, err = g.CellID(10, 5)
	assert.True(t, sterrors.Is(err, sterrors.Domain))

	_, err = g.CellID(-1, 5)
	assert.True(t, sterrors.Is(err, sterrors.Domain))
}

func TestGridCellIDUpperEdgeOfLastCell(t *testing.T) {
	u := Universe{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	g, err := NewGridBySide(u, 3, 3)
	assert.NoError(t, err)
	// 10/3 truncates to 3 cells of side 3 plus a sliver; numCellsInDim
	// rounds up so the universe is always fully covered.
	assert.Equal(t, 4, g.NumXCells)

	id, err := g.CellID(9.99, 9.99)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3*4+3), id)
}

func TestGridCellRangeCoversUniverse(t *testing.T) {
	u := Universe{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	g, err := NewGridBySide(u, 1, 1)
	assert.NoError(t, err)
	last := g.CellRange(9, 9)
	assert.True(t, last.Contains([]float64{9.999999, 9.999999}))
}
