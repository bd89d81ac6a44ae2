package stobject

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/stark/geo"
	"github.com/grailbio/stark/temporal"
)

func TestTemporalComposition(t *testing.T) {
	// Scenario 5 from spec.md §8.
	a := NewWithTime(geo.NewPoint(0, 0), temporal.NewInterval(10, 20))
	b := NewWithTime(geo.NewPoint(0, 0), temporal.NewInterval(15, 25))
	c := New(geo.NewPoint(0, 0))

	assert.True(t, Holds(Intersects, a, b, 0, nil))
	assert.False(t, Holds(Intersects, a, c, 0, nil))

	c2 := New(geo.NewPoint(0, 0))
	assert.True(t, Holds(Intersects, c, c2, 0, nil))
}

func TestContainsImpliesCoveredBy(t *testing.T) {
	outer, err := geo.NewPolygon([]geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	assert.NoError(t, err)
	inner, err := geo.NewPolygon([]geo.Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}})
	assert.NoError(t, err)
	a := New(outer)
	b := New(inner)

	assert.True(t, Holds(Contains, a, b, 0, nil))
	assert.True(t, Holds(CoveredBy, b, a, 0, nil))
}

func TestWithinDistancePredicate(t *testing.T) {
	a := New(geo.NewPoint(0, 0))
	b := New(geo.NewPoint(3, 4))
	assert.True(t, Holds(WithinDistance, a, b, 5, nil))
	assert.False(t, Holds(WithinDistance, a, b, 4, nil))
}
