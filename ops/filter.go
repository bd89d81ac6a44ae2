// Package ops implements the partition-pruning spatial operators of
// spec.md §4.5–§4.8: filter, join, k-NN, and skyline. Each operator
// separates partition-level pruning (using a partition.Partitioner's
// extents) from the exact per-element predicate evaluation
// (stobject.Holds), matching spec.md §4's "partitioner pruning + index
// lookup" control-flow description.
package ops

import (
	"github.com/grailbio/stark/geo"
	"github.com/grailbio/stark/partition"
	"github.com/grailbio/stark/rtree"
	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/stobject"
)

// DistFn computes the distance between two geometries; nil means "use
// geo.Geometry.Distance".
type DistFn func(a, b geo.Geometry) float64

// SurvivingPartitions returns the ids of partitions whose extent is
// compatible with qEnvelope under predicate p, per spec.md §4.5's
// pruning table. maxDist is only consulted for WithinDistance.
func SurvivingPartitions(pner partition.Partitioner, p stobject.Predicate, qEnvelope spatial.NRectRange, maxDist float64) []int {
	var ids []int
	for id := 0; id < pner.NumPartitions(); id++ {
		if pner.IsEmpty(id) {
			continue
		}
		extent := pner.PartitionExtent(id)
		if partitionSurvives(p, extent, qEnvelope, maxDist) {
			ids = append(ids, id)
		}
	}
	return ids
}

func partitionSurvives(p stobject.Predicate, extent, qEnvelope spatial.NRectRange, maxDist float64) bool {
	switch p {
	case stobject.Intersects, stobject.WithinDistance:
		q := qEnvelope
		if p == stobject.WithinDistance {
			q = qEnvelope.Inflate(maxDist)
		}
		return extent.Intersects(q)
	case stobject.Contains, stobject.Covers:
		return extent.Intersects(qEnvelope)
	case stobject.ContainedBy, stobject.CoveredBy:
		return qEnvelope.ContainsRange(extent) || extent.Intersects(qEnvelope)
	default:
		return true
	}
}

// ScanFilter evaluates predicate p between q and every element of
// candidates, returning the elements for which it holds. It is the
// "iterate all elements" path of spec.md §4.5 when a partition carries
// no live index.
func ScanFilter(candidates []stobject.STObject, p stobject.Predicate, q stobject.STObject, maxDist float64, distFn DistFn) []stobject.STObject {
	var out []stobject.STObject
	for _, c := range candidates {
		if stobject.Holds(p, c, q, maxDist, distFnAdapter(distFn)) {
			out = append(out, c)
		}
	}
	return out
}

// IndexFilter probes idx (already built) for candidates whose MBR
// intersects q's envelope (inflated by maxDist for WithinDistance),
// then applies the exact predicate — the "probe the R-tree for
// candidates" path of spec.md §4.5. payload->STObject must be provided
// since the index stores arbitrary payloads (spec.md §4.4).
func IndexFilter(idx *rtree.Index, payloadToObj func(interface{}) stobject.STObject, p stobject.Predicate, q stobject.STObject, maxDist float64, distFn DistFn) ([]stobject.STObject, error) {
	env := q.Geom.Envelope()
	if p == stobject.WithinDistance {
		env = env.Inflate(maxDist)
	}
	hits, err := idx.Query(env)
	if err != nil {
		return nil, err
	}
	var out []stobject.STObject
	for _, h := range hits {
		obj := payloadToObj(h)
		if stobject.Holds(p, obj, q, maxDist, distFnAdapter(distFn)) {
			out = append(out, obj)
		}
	}
	return out, nil
}

func distFnAdapter(f DistFn) func(a, b geo.Geometry) float64 {
	if f == nil {
		return nil
	}
	return f
}
