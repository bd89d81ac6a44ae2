package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/stark/geo"
	"github.com/grailbio/stark/stobject"
)

func TestIntersectsJoinNoCrossMatches(t *testing.T) {
	// Scenario 3 from spec.md §8.
	poly, err := geo.NewPolygon([]geo.Point{{X: -73, Y: 40.5}, {X: -70, Y: 40.5}, {X: -72, Y: 41}})
	assert.NoError(t, err)
	pt := geo.NewPoint(25, 20)

	left := []stobject.STObject{stobject.New(poly), stobject.New(pt)}
	right := []stobject.STObject{stobject.New(poly), stobject.New(pt)}

	pairs := Join(left, right, stobject.Intersects, 0, nil, nil)

	assert.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.True(t, p.Left.Geom.Equal(p.Right.Geom))
	}
}

func TestJoinWithArbitraryPredicate(t *testing.T) {
	a := stobject.New(geo.NewPoint(0, 0))
	b := stobject.New(geo.NewPoint(0, 0))
	c := stobject.New(geo.NewPoint(100, 100))

	pairs := Join([]stobject.STObject{a}, []stobject.STObject{b, c}, 0, 0, nil, func(x, y stobject.STObject) bool {
		return x.Geom.Equal(y.Geom)
	})
	assert.Len(t, pairs, 1)
}
