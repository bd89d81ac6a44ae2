// Package rtree implements the bulk-built spatial index of spec.md
// §4.4: insert/build/query/kNN/withinDistance over a Mutable->Built
// state machine, backed by github.com/dhconnelly/rtreego's STR-style
// tree (the same library and wrapping style as the s57 chart index in
// the example corpus: Insert during construction, SearchIntersect for
// range queries).
package rtree

import (
	"github.com/dhconnelly/rtreego"

	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/sterrors"
)

// DefaultMinChildren/DefaultMaxChildren pick the node fanout ("order")
// spec.md §4.4 parameterizes, defaulting to 10 as the spec's default
// order would imply for a min/max pair (min ~= max/2).
const (
	DefaultMinChildren = 5
	DefaultMaxChildren = 10
)

// entry adapts a payload + envelope into rtreego.Spatial.
type entry struct {
	rect    rtreego.Rect
	payload interface{}
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// Index wraps *rtreego.Rtree with the Mutable->Built state machine
// spec.md §4.4 requires: Insert is only valid before Build; Query,
// KNN, and WithinDistance are only valid after. Unlike
// markduplicates.duplicateIndex's startedRemoving guard (which
// log.Fatalf's on misuse), misuse here returns a UsageError, since
// index misuse must surface to the caller rather than crash the
// process (spec.md §7).
type Index struct {
	dim                      int
	minChildren, maxChildren int
	pending                  []rtreego.Spatial
	tree                     *rtreego.Rtree
	built                    bool
}

// NewIndex creates a Mutable index with the given node fanout bounds.
func NewIndex(minChildren, maxChildren int) *Index {
	if minChildren <= 0 {
		minChildren = DefaultMinChildren
	}
	if maxChildren <= 0 {
		maxChildren = DefaultMaxChildren
	}
	return &Index{dim: 2, minChildren: minChildren, maxChildren: maxChildren}
}

func toRect(r spatial.NRectRange) (rtreego.Rect, error) {
	lengths := make([]float64, r.Dim())
	for i, l := range r.Lengths() {
		lengths[i] = l
		if lengths[i] <= 0 {
			// rtreego.Rect requires strictly positive side lengths; widen a
			// degenerate (point) envelope by spatial.EPS so points index.
			lengths[i] = spatial.EPS
		}
	}
	return rtreego.NewRect(rtreego.Point([]float64(r.LL)), lengths)
}

// Insert adds payload with bounding envelope env to the index. Valid
// only in the Mutable state; fails with UsageError once Build has run.
func (idx *Index) Insert(env spatial.NRectRange, payload interface{}) error {
	if idx.built {
		return sterrors.Usagef("rtree.Index.Insert", "cannot insert after Build")
	}
	rect, err := toRect(env)
	if err != nil {
		return sterrors.WrapGeometry(err, "rtree.Index.Insert", "invalid envelope")
	}
	idx.pending = append(idx.pending, &entry{rect: rect, payload: payload})
	return nil
}

// Build bulk-loads the pending entries via rtreego's STR packing and
// freezes the index. Build is idempotent: calling it again is a no-op
// once already built.
func (idx *Index) Build() error {
	if idx.built {
		return nil
	}
	idx.tree = rtreego.NewTree(idx.dim, idx.minChildren, idx.maxChildren, idx.pending...)
	idx.built = true
	idx.pending = nil
	return nil
}

// Len returns the number of indexed entries (valid in either state).
func (idx *Index) Len() int {
	if idx.built {
		return idx.tree.Size()
	}
	return len(idx.pending)
}

// Query returns the candidate payloads whose envelope intersects env.
// Per spec.md §4.4, this is a candidate set; callers must apply the
// exact predicate themselves.
func (idx *Index) Query(env spatial.NRectRange) ([]interface{}, error) {
	if !idx.built {
		return nil, sterrors.Usagef("rtree.Index.Query", "index not built")
	}
	rect, err := toRect(env)
	if err != nil {
		return nil, sterrors.WrapGeometry(err, "rtree.Index.Query", "invalid envelope")
	}
	hits := idx.tree.SearchIntersect(rect)
	out := make([]interface{}, len(hits))
	for i, h := range hits {
		out[i] = h.(*entry).payload
	}
	return out, nil
}

// KNN returns up to k payloads in non-decreasing distance from p,
// using rtreego's best-first MINDIST search.
func (idx *Index) KNN(p spatial.NPoint, k int) ([]interface{}, error) {
	if !idx.built {
		return nil, sterrors.Usagef("rtree.Index.KNN", "index not built")
	}
	if k <= 0 {
		return nil, sterrors.Configf("rtree.Index.KNN", "k must be > 0, got %d", k)
	}
	hits := idx.tree.NearestNeighbors(k, rtreego.Point([]float64(p)))
	out := make([]interface{}, 0, len(hits))
	for _, h := range hits {
		if h == nil {
			continue
		}
		out = append(out, h.(*entry).payload)
	}
	return out, nil
}

// WithinDistance returns payloads whose exact distance to geom (as
// computed by distFn over the payload) is <= maxDist. It prunes
// candidates by inflating env (geom's envelope) by maxDist and running
// an intersection search, then applies distFn exactly — an
// approximation of spec.md §4.4's node-level MINDIST pruning, trading
// a slightly larger candidate set for rtreego's tested STR index
// instead of a hand-rolled MINDIST walk.
func (idx *Index) WithinDistance(env spatial.NRectRange, maxDist float64, distFn func(payload interface{}) float64) ([]interface{}, error) {
	if !idx.built {
		return nil, sterrors.Usagef("rtree.Index.WithinDistance", "index not built")
	}
	candidates, err := idx.Query(env.Inflate(maxDist))
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(candidates))
	for _, c := range candidates {
		if distFn(c) <= maxDist {
			out = append(out, c)
		}
	}
	return out, nil
}
