package ops

import (
	"github.com/grailbio/stark/partition"
	"github.com/grailbio/stark/stobject"
)

// Pair is one matched (left, right) result of Join.
type Pair struct {
	Left  stobject.STObject
	Right stobject.STObject
}

// Join implements spec.md §4.6's per-pair compute step: for every
// element of left, evaluate predicate p against every element of
// right (or an arbitrary pred if predFn is non-nil), emitting a Pair
// for every match. Result equals the filter of the full cartesian
// product by p; order follows left's iteration order, then right's.
func Join(left, right []stobject.STObject, p stobject.Predicate, maxDist float64, distFn DistFn, predFn func(a, b stobject.STObject) bool) []Pair {
	eval := predFn
	if eval == nil {
		eval = func(a, b stobject.STObject) bool {
			return stobject.Holds(p, a, b, maxDist, distFnAdapter(distFn))
		}
	}
	var out []Pair
	for _, l := range left {
		for _, r := range right {
			if eval(l, r) {
				out = append(out, Pair{Left: l, Right: r})
			}
		}
	}
	return out
}

// PartitionPair is one surviving (leftId, rightIds) pairing from
// PairPartitions.
type PartitionPair struct {
	LeftID   int
	RightIDs []int
}

// PairPartitions implements spec.md §4.6's partition pairing step.
// When oneToMany is false, it enumerates every cartesian (lP, rP) pair
// whose extents intersect (right-open aware), one RightID per
// PartitionPair. When oneToMany is true, it groups all matching right
// partitions under each left partition, one PartitionPair per lP.
func PairPartitions(left, right partition.Partitioner, oneToMany bool) []PartitionPair {
	var out []PartitionPair
	for lID := 0; lID < left.NumPartitions(); lID++ {
		if left.IsEmpty(lID) {
			continue
		}
		lExtent := left.PartitionExtent(lID)
		var rightIDs []int
		for rID := 0; rID < right.NumPartitions(); rID++ {
			if right.IsEmpty(rID) {
				continue
			}
			if lExtent.Intersects(right.PartitionExtent(rID)) {
				rightIDs = append(rightIDs, rID)
			}
		}
		if len(rightIDs) == 0 {
			continue
		}
		if oneToMany {
			out = append(out, PartitionPair{LeftID: lID, RightIDs: rightIDs})
			continue
		}
		for _, rID := range rightIDs {
			out = append(out, PartitionPair{LeftID: lID, RightIDs: []int{rID}})
		}
	}
	return out
}
