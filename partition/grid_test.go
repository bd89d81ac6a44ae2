package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/stark/geo"
	"github.com/grailbio/stark/histogram"
	"github.com/grailbio/stark/stobject"
)

func TestGridPartitionerAssignsCellId(t *testing.T) {
	// Scenario 2 from spec.md §8.
	u := histogram.Universe{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	g, err := histogram.NewGridBySide(u, 1, 1)
	assert.NoError(t, err)
	gp := NewGridPartitioner(g, nil)

	obj := stobject.New(geo.NewPoint(3.5, 2.1))
	id, err := gp.GetPartitionID(obj)
	assert.NoError(t, err)
	assert.Equal(t, 23, id)

	_, err = gp.GetPartitionID(stobject.New(geo.NewPoint(10, 10)))
	assert.Error(t, err)
}

func TestGridPartitionerIsEmptyTracksHistogram(t *testing.T) {
	u := histogram.Universe{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	g, err := histogram.NewGridBySide(u, 1, 1)
	assert.NoError(t, err)

	h, err := histogram.Build(g, []stobject.STObject{stobject.New(geo.NewPoint(0.5, 0.5))}, true)
	assert.NoError(t, err)
	gp := NewGridPartitioner(g, h)

	id, err := gp.GetPartitionID(stobject.New(geo.NewPoint(0.5, 0.5)))
	assert.NoError(t, err)
	assert.False(t, gp.IsEmpty(id))

	emptyID, err := gp.GetPartitionID(stobject.New(geo.NewPoint(9.5, 9.5)))
	assert.NoError(t, err)
	assert.True(t, gp.IsEmpty(emptyID))
}
