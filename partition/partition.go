// Package partition implements the grid and BSP partitioners of
// spec.md §4.2/§4.3: strategies for assigning an STObject to one of a
// fixed set of partitions over a bounded universe, each partition
// carrying a bounds rectangle, an accumulated extent, and an emptiness
// flag the runtime uses to skip empty partitions. Emptiness comes from
// the histogram's cell counts; partition assignments made through
// GetPartitionID are not recorded.
//
// Per spec.md §9's "Inheritance of partitioners" design note, grid and
// BSP partitioners share one interface instead of a class hierarchy;
// the histogram math they both need lives in the histogram package.
package partition

import (
	"github.com/grailbio/stark/histogram"
	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/stobject"
)

// Partitioner is the minimal contract spec.md §6 requires of a
// spatial partitioner: assign keys to partition ids, and report each
// partition's bounds/extent/occupancy. Manifest writing
// (spec.md §6's writePartitionManifest) is deliberately not part of
// this interface — manifest.Write is a free function that serializes a
// caller-built list of manifest.Entry values (envelope, temporal
// range, part file name) and does not take a Partitioner, keeping this
// interface focused on partition assignment alone.
type Partitioner interface {
	// NumPartitions returns the number of partitions.
	NumPartitions() int
	// GetPartitionID returns the partition obj belongs to.
	GetPartitionID(obj stobject.STObject) (int, error)
	// PartitionBounds returns the nominal spatial bounds of partition id.
	PartitionBounds(id int) spatial.NRectRange
	// PartitionExtent returns the accumulated extent of objects known to
	// belong to partition id (equal to bounds when extent tracking is
	// disabled, e.g. pointsOnly histograms).
	PartitionExtent(id int) spatial.NRectRange
	// IsEmpty reports whether partition id holds no objects according
	// to the histogram the partitioner was built from. Calls to
	// GetPartitionID do not change it.
	IsEmpty(id int) bool
}

// Partition is one partition emitted by BSPPartitioner: its histogram
// cells, bounds, extent, and cost. BSPPartitioner answers the
// per-partition half of the Partitioner interface from these fields.
type Partition struct {
	ID      int
	CellIDs []uint64
	Bounds  spatial.NRectRange
	Extent  spatial.NRectRange
	Cost    uint64
}

// extentOf computes the bounds-extended envelope of a set of histogram
// cells, honoring pointsOnly (extent == bounds, no per-cell extend).
func extentOf(h *histogram.CellHistogram, cellIDs []uint64, bounds spatial.NRectRange, pointsOnly bool) spatial.NRectRange {
	if pointsOnly || h == nil {
		return bounds
	}
	extent := bounds
	for _, id := range cellIDs {
		extent = extent.Extend(h.Cell(id).Extent)
	}
	return extent
}

func costOf(h *histogram.CellHistogram, cellIDs []uint64) uint64 {
	if h == nil {
		return 0
	}
	var total uint64
	for _, id := range cellIDs {
		total += h.Count(id)
	}
	return total
}
