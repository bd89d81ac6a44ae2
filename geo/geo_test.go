package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointEnvelopeAndCentroid(t *testing.T) {
	p := NewPoint(3.5, 2.1)
	env := p.Envelope()
	assert.True(t, env.Contains(env.LL))
	c := p.Centroid()
	assert.Equal(t, 3.5, c.X)
	assert.Equal(t, 2.1, c.Y)
}

func TestPolygonRequiresThreeVertices(t *testing.T) {
	_, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.Error(t, err)
}

func TestIntersectsIsSymmetric(t *testing.T) {
	a, err := NewPolygon([]Point{{X: -73, Y: 40.5}, {X: -70, Y: 40.5}, {X: -72, Y: 41}})
	require.NoError(t, err)
	b, err := NewPolygon([]Point{{X: -73, Y: 40.5}, {X: -70, Y: 40.5}, {X: -72, Y: 41}})
	require.NoError(t, err)
	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
}

func TestDisjointPolygonAndPointDoNotIntersect(t *testing.T) {
	poly, err := NewPolygon([]Point{{X: -73, Y: 40.5}, {X: -70, Y: 40.5}, {X: -72, Y: 41}})
	require.NoError(t, err)
	pt := NewPoint(25, 20)
	assert.False(t, poly.Intersects(pt))
	assert.False(t, pt.Intersects(poly))
}

func TestPointSelfIntersectsOnlyWhenEqual(t *testing.T) {
	a := NewPoint(25, 20)
	b := NewPoint(25, 20)
	c := NewPoint(1, 1)
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
}

func TestContainsImpliesCoveredByAndIntersects(t *testing.T) {
	outer, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	require.NoError(t, err)
	inner, err := NewPolygon([]Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}})
	require.NoError(t, err)

	require.True(t, outer.Contains(inner))
	assert.True(t, inner.CoveredBy(outer))
	assert.True(t, outer.Intersects(inner))
}

func TestDistanceZeroWhenOverlapping(t *testing.T) {
	a, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}})
	require.NoError(t, err)
	b, err := NewPolygon([]Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.Distance(b))
}

func TestDistanceBetweenDisjointPoints(t *testing.T) {
	a := NewPoint(0, 0)
	b := NewPoint(3, 4)
	assert.Equal(t, 5.0, a.Distance(b))
}

