package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(t *testing.T, ll, ur []float64) NRectRange {
	t.Helper()
	r, err := NewRect(NPoint(ll), NPoint(ur))
	require.NoError(t, err)
	return r
}

func TestNewRectRejectsInvertedDims(t *testing.T) {
	_, err := NewRect(NPoint{1, 0}, NPoint{0, 1})
	require.Error(t, err)
}

func TestContainsRightOpen(t *testing.T) {
	r := rect(t, []float64{0, 0}, []float64{10, 10})
	assert.True(t, r.Contains(NPoint{0, 0}))
	assert.True(t, r.Contains(NPoint{9.999, 9.999}))
	assert.False(t, r.Contains(NPoint{10, 5}))
	assert.False(t, r.Contains(NPoint{5, 10}))
}

func TestIntersectsRightOpenAdjacent(t *testing.T) {
	a := rect(t, []float64{0, 0}, []float64{5, 5})
	b := rect(t, []float64{5, 0}, []float64{10, 5})
	// Adjacent ranges sharing only the boundary plane do not intersect
	// under the right-open convention.
	assert.False(t, a.Intersects(b))

	c := rect(t, []float64{4.999, 0}, []float64{10, 5})
	assert.True(t, a.Intersects(c))
}

func TestContainsRange(t *testing.T) {
	outer := rect(t, []float64{0, 0}, []float64{10, 10})
	inner := rect(t, []float64{2, 2}, []float64{8, 8})
	assert.True(t, outer.ContainsRange(inner))
	assert.False(t, inner.ContainsRange(outer))
}

func TestExtend(t *testing.T) {
	a := rect(t, []float64{0, 0}, []float64{5, 5})
	b := rect(t, []float64{3, -2}, []float64{10, 4})
	ext := a.Extend(b)
	assert.Equal(t, NPoint{0, -2}, ext.LL)
	assert.Equal(t, NPoint{10, 5}, ext.UR)
}

func TestDiffSplitsAlongDimension(t *testing.T) {
	r := rect(t, []float64{0, 0}, []float64{10, 10})
	lo, hi := r.Diff(0, 4)
	assert.Equal(t, NPoint{0, 0}, lo.LL)
	assert.Equal(t, NPoint{4, 10}, lo.UR)
	assert.Equal(t, NPoint{4, 0}, hi.LL)
	assert.Equal(t, NPoint{10, 10}, hi.UR)

	union := lo.Extend(hi)
	assert.True(t, union.Equal(r))
}

func TestVolumeAndLengths(t *testing.T) {
	r := rect(t, []float64{0, 0}, []float64{4, 3})
	assert.Equal(t, []float64{4, 3}, r.Lengths())
	assert.Equal(t, 12.0, r.Volume())
}

func TestInflate(t *testing.T) {
	r := rect(t, []float64{5, 5}, []float64{6, 6})
	inf := r.Inflate(2)
	assert.Equal(t, NPoint{3, 3}, inf.LL)
	assert.Equal(t, NPoint{8, 8}, inf.UR)
}

func TestNPointCompareOrdersByDimensionThenLength(t *testing.T) {
	a := NPoint{1, 5}
	b := NPoint{1, 6}
	c := NPoint{2, 0}

	assert.True(t, a.LT(b))
	assert.True(t, a.LE(b))
	assert.True(t, b.LT(c))
	assert.True(t, c.GT(a))
	assert.True(t, c.GE(a))
	assert.Equal(t, 0, a.Compare(NPoint{1, 5}))
	assert.False(t, a.LT(a))
	assert.True(t, a.LE(a))
}

func TestNRectRangeCompareOrdersByLLThenUR(t *testing.T) {
	a := rect(t, []float64{0, 0}, []float64{5, 5})
	b := rect(t, []float64{0, 0}, []float64{6, 6})
	c := rect(t, []float64{1, 0}, []float64{2, 2})

	assert.True(t, a.LT(b))
	assert.True(t, a.LE(b))
	assert.True(t, b.LT(c))
	assert.True(t, c.GT(a))
	assert.True(t, c.GE(a))
	assert.Equal(t, 0, a.Compare(rect(t, []float64{0, 0}, []float64{5, 5})))
	assert.False(t, a.LT(a))
	assert.True(t, a.LE(a))
}
