package ops

import (
	"math"

	"github.com/grailbio/stark/spatial"
)

// Dominates is a caller-supplied strict dominance predicate
// (spec.md's dominates(a,b): bool), used by every Skyline flavor.
type Dominates[T any] func(a, b T) bool

// Skyline stores the non-dominated points seen so far (spec.md §4.8):
// inserting a new point removes every stored point it dominates, and
// is itself skipped if any stored point dominates it.
type Skyline[T any] struct {
	dominates Dominates[T]
	points    []T
}

// NewSkyline creates an empty accumulator using dominates to compare
// points.
func NewSkyline[T any](dominates Dominates[T]) *Skyline[T] {
	return &Skyline[T]{dominates: dominates}
}

// Points returns the current non-dominated set.
func (s *Skyline[T]) Points() []T { return s.points }

// Insert folds p into the skyline.
func (s *Skyline[T]) Insert(p T) {
	kept := s.points[:0:0]
	for _, q := range s.points {
		if s.dominates(p, q) {
			continue // q is dominated by the new point; drop it
		}
		if s.dominates(q, p) {
			return // p is dominated by an existing point; skip it
		}
		kept = append(kept, q)
	}
	s.points = append(kept, p)
}

// Merge folds other's points into s and returns s. Associative and
// commutative up to dominance equivalence (spec.md §5), since the
// result only depends on the set of points inserted, not the order of
// the two accumulators' internal histories.
func (s *Skyline[T]) Merge(other *Skyline[T]) *Skyline[T] {
	for _, p := range other.points {
		s.Insert(p)
	}
	return s
}

// SkylineAgg implements spec.md §4.8's "skylineAgg" flavor: fold the
// whole dataset into one Skyline accumulator.
func SkylineAgg[T any](items []T, dominates Dominates[T]) *Skyline[T] {
	s := NewSkyline(dominates)
	for _, p := range items {
		s.Insert(p)
	}
	return s
}

// DistancePoint is the (sDist, tDist) projection spec.md §4.8's
// BBS-style flavor computes per element before grid-partitioning the
// 2-D distance space.
type DistancePoint struct {
	SDist, TDist float64
}

// bbsItem pairs a source value with its projected distance point.
type bbsItem[T any] struct {
	value T
	dist  DistancePoint
}

// distanceDominates is the natural dominance order over DistancePoint:
// a dominates b iff a is no worse in both dimensions and strictly
// better in at least one (standard skyline dominance).
func distanceDominates(a, b DistancePoint) bool {
	return a.SDist <= b.SDist && a.TDist <= b.TDist && (a.SDist < b.SDist || a.TDist < b.TDist)
}

// SkylineBBS implements spec.md §4.8's BBS-style flavor: project every
// item to a (sDist, tDist) point via distFn, grid-partition the 2-D
// distance space, compute a local skyline per grid partition, prune
// partitions whose every point is dominated by an earlier partition's
// max corner, then merge survivors into one global skyline.
func SkylineBBS[T any](items []T, distFn func(T) DistancePoint, gridCellsPerDim int) []T {
	if len(items) == 0 {
		return nil
	}
	projected := make([]bbsItem[T], len(items))
	maxS, maxT := 0.0, 0.0
	for i, v := range items {
		d := distFn(v)
		projected[i] = bbsItem[T]{value: v, dist: d}
		if d.SDist > maxS {
			maxS = d.SDist
		}
		if d.TDist > maxT {
			maxT = d.TDist
		}
	}
	if gridCellsPerDim <= 0 {
		gridCellsPerDim = 1
	}
	sStep := (maxS + spatial.EPS) / float64(gridCellsPerDim)
	tStep := (maxT + spatial.EPS) / float64(gridCellsPerDim)
	if sStep <= 0 {
		sStep = 1
	}
	if tStep <= 0 {
		tStep = 1
	}

	buckets := make(map[bucketKey][]bbsItem[T])
	bucketMinCorner := make(map[bucketKey]DistancePoint)
	bucketMaxCorner := make(map[bucketKey]DistancePoint)
	for _, it := range projected {
		cs := int(it.dist.SDist / sStep)
		ct := int(it.dist.TDist / tStep)
		key := bucketKey{cs, ct}
		buckets[key] = append(buckets[key], it)
		bucketMinCorner[key] = DistancePoint{SDist: float64(cs) * sStep, TDist: float64(ct) * tStep}
		bucketMaxCorner[key] = DistancePoint{SDist: float64(cs+1) * sStep, TDist: float64(ct+1) * tStep}
	}

	// Process buckets nearest the origin first so an earlier bucket's
	// max corner — a real upper bound on every point it contains — can
	// prune a later bucket whose min corner (its own lower bound) it
	// already dominates (spec.md §4.8's "pruning against an earlier
	// partition's max-corner").
	keys := make([]bucketKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sortBucketKeys(keys)

	global := NewSkyline(func(a, b bbsItem[T]) bool { return distanceDominates(a.dist, b.dist) })
	var prunedMaxCorner *DistancePoint
	for _, key := range keys {
		minCorner := bucketMinCorner[key]
		if prunedMaxCorner != nil && distanceDominates(*prunedMaxCorner, minCorner) {
			continue // every point in this bucket is no closer than an already-surviving partition's worst point
		}
		local := NewSkyline(func(a, b bbsItem[T]) bool { return distanceDominates(a.dist, b.dist) })
		for _, it := range buckets[key] {
			local.Insert(it)
		}
		for _, it := range local.Points() {
			global.Insert(it)
		}
		maxCorner := bucketMaxCorner[key]
		prunedMaxCorner = &maxCorner
	}

	out := make([]T, len(global.Points()))
	for i, it := range global.Points() {
		out[i] = it.value
	}
	return out
}

// bucketKey indexes the 2-D distance-space grid SkylineBBS partitions
// the dataset into.
type bucketKey struct{ cs, ct int }

func sortBucketKeys(keys []bucketKey) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, b := keys[j-1], keys[j]
			if a.cs+a.ct <= b.cs+b.ct {
				break
			}
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

// SkylineAngular implements spec.md §4.8's angular flavor: partition
// points by angle around ref into ppd sectors, compute a per-sector
// skyline, then merge across sectors into one global skyline.
// firstQuadrantOnly restricts angle computation to [0, pi/2], matching
// the "first-quadrant only when requested" option.
func SkylineAngular[T any](items []T, center func(T) (x, y float64), dominates Dominates[T], ppd int, firstQuadrantOnly bool) []T {
	if ppd <= 0 {
		ppd = 1
	}
	maxAngle := 2 * 3.141592653589793
	if firstQuadrantOnly {
		maxAngle = 3.141592653589793 / 2
	}
	sectorWidth := maxAngle / float64(ppd)

	sectors := make([]*Skyline[T], ppd)
	for i := range sectors {
		sectors[i] = NewSkyline(dominates)
	}
	for _, v := range items {
		x, y := center(v)
		angle := angleOf(x, y)
		if firstQuadrantOnly && (x < 0 || y < 0) {
			continue
		}
		sector := int(angle / sectorWidth)
		if sector >= ppd {
			sector = ppd - 1
		}
		if sector < 0 {
			sector = 0
		}
		sectors[sector].Insert(v)
	}

	global := NewSkyline(dominates)
	for _, s := range sectors {
		global.Merge(s)
	}
	return global.Points()
}

func angleOf(x, y float64) float64 {
	a := math.Atan2(y, x)
	if a < 0 {
		a += 2 * 3.141592653589793
	}
	return a
}
