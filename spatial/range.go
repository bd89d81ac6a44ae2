// Package spatial implements the n-dimensional point and axis-aligned
// range types that the partitioner, histogram, and index packages build
// on: NPoint, NRectRange, and Cell. NRectRange follows the same
// comparison idiom as biopb.Coord/biopb.CoordRange in the teacher
// corpus (Compare/LT/LE, half-open Contains/Intersects), generalized
// from a single ordinal coordinate to n float64 dimensions.
package spatial

import (
	"fmt"
	"math"

	"github.com/grailbio/stark/sterrors"
)

// EPS is the right-open adjustment applied to a universe's stated max
// bounds, per spec.md §6: "the universe's max bounds are stored as
// max + EPS". Cell and partition intervals are [ll, ur) per dimension.
const EPS = 1e-6

// NPoint is a point in n-dimensional space. n is 2 in every case this
// module exercises, but the type itself is dimension-agnostic.
type NPoint []float64

// Dim returns the number of dimensions.
func (p NPoint) Dim() int { return len(p) }

// Equal reports whether p and q have identical coordinates.
func (p NPoint) Equal(q NPoint) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p.
func (p NPoint) Clone() NPoint {
	q := make(NPoint, len(p))
	copy(q, p)
	return q
}

// Compare returns (negative, 0, positive) if (p<q, p=q, p>q)
// respectively, comparing dimensions in order (dimension 0 is most
// significant) the same way biopb.Coord.Compare orders by RefId, then
// Pos, then Seq.
func (p NPoint) Compare(q NPoint) int {
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	for i := 0; i < n; i++ {
		if p[i] != q[i] {
			if p[i] < q[i] {
				return -1
			}
			return 1
		}
	}
	return len(p) - len(q)
}

// LT returns true iff p < q.
func (p NPoint) LT(q NPoint) bool { return p.Compare(q) < 0 }

// LE returns true iff p <= q.
func (p NPoint) LE(q NPoint) bool { return p.Compare(q) <= 0 }

// GE returns true iff p >= q.
func (p NPoint) GE(q NPoint) bool { return p.Compare(q) >= 0 }

// GT returns true iff p > q.
func (p NPoint) GT(q NPoint) bool { return p.Compare(q) > 0 }

func (p NPoint) String() string {
	return fmt.Sprintf("%v", []float64(p))
}

// NRectRange is an axis-aligned n-dimensional range, right-open on the
// max side of every dimension: a point x belongs to the range iff
// LL[i] <= x[i] < UR[i] for every dimension i. Invariant: LL[i] <= UR[i]
// for every dimension.
type NRectRange struct {
	LL NPoint
	UR NPoint
}

// NewRect builds a range from ll/ur, validating the LL<=UR invariant.
func NewRect(ll, ur NPoint) (NRectRange, error) {
	if len(ll) != len(ur) {
		return NRectRange{}, sterrors.Domainf("spatial.NewRect", "dimension mismatch: ll has %d, ur has %d", len(ll), len(ur))
	}
	for i := range ll {
		if ll[i] > ur[i] {
			return NRectRange{}, sterrors.Domainf("spatial.NewRect", "dimension %d: ll=%v > ur=%v", i, ll[i], ur[i])
		}
	}
	return NRectRange{LL: ll.Clone(), UR: ur.Clone()}, nil
}

// Dim returns the number of dimensions.
func (r NRectRange) Dim() int { return len(r.LL) }

// Lengths returns UR[i]-LL[i] for every dimension.
func (r NRectRange) Lengths() []float64 {
	out := make([]float64, r.Dim())
	for i := range out {
		out[i] = r.UR[i] - r.LL[i]
	}
	return out
}

// Volume returns the product of the range's per-dimension lengths.
func (r NRectRange) Volume() float64 {
	v := 1.0
	for _, l := range r.Lengths() {
		v *= l
	}
	return v
}

// Contains reports whether p is inside r under the right-open
// convention: LL[i] <= p[i] < UR[i] for every dimension.
func (r NRectRange) Contains(p NPoint) bool {
	if len(p) != r.Dim() {
		return false
	}
	for i := range p {
		if p[i] < r.LL[i] || p[i] >= r.UR[i] {
			return false
		}
	}
	return true
}

// ContainsRange reports whether (r ∩ other) == other, i.e. other is
// entirely inside r.
func (r NRectRange) ContainsRange(other NRectRange) bool {
	if r.Dim() != other.Dim() {
		return false
	}
	for i := 0; i < r.Dim(); i++ {
		if other.LL[i] < r.LL[i] || other.UR[i] > r.UR[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether (r ∩ other) != ∅, right-open aware: two
// ranges that only touch at a shared max boundary do not intersect.
func (r NRectRange) Intersects(other NRectRange) bool {
	if r.Dim() != other.Dim() {
		return false
	}
	for i := 0; i < r.Dim(); i++ {
		if r.LL[i] >= other.UR[i] || other.LL[i] >= r.UR[i] {
			return false
		}
	}
	return true
}

// Extend returns the smallest range containing both r and other.
func (r NRectRange) Extend(other NRectRange) NRectRange {
	if r.Dim() == 0 {
		return other
	}
	if other.Dim() == 0 {
		return r
	}
	ll := make(NPoint, r.Dim())
	ur := make(NPoint, r.Dim())
	for i := 0; i < r.Dim(); i++ {
		ll[i] = math.Min(r.LL[i], other.LL[i])
		ur[i] = math.Max(r.UR[i], other.UR[i])
	}
	return NRectRange{LL: ll, UR: ur}
}

// Diff splits r along dimension dim at boundary, returning the low
// part [LL, boundary) and high part [boundary, UR) as two ranges. The
// boundary is not validated: if it equals LL[dim] or UR[dim], one of
// the returned ranges has zero length on that dimension; if it lies
// outside [LL[dim], UR[dim]], one range has negative length there and
// the other reaches past r.
func (r NRectRange) Diff(dim int, boundary float64) (lo, hi NRectRange) {
	lo = r
	hi = r
	loUR := r.UR.Clone()
	loUR[dim] = boundary
	lo = NRectRange{LL: r.LL.Clone(), UR: loUR}
	hiLL := r.LL.Clone()
	hiLL[dim] = boundary
	hi = NRectRange{LL: hiLL, UR: r.UR.Clone()}
	return lo, hi
}

// Empty reports whether r has zero or negative volume on any dimension.
func (r NRectRange) Empty() bool {
	for i := 0; i < r.Dim(); i++ {
		if r.UR[i] <= r.LL[i] {
			return true
		}
	}
	return false
}

// Equal reports structural equality of r and other.
func (r NRectRange) Equal(other NRectRange) bool {
	return r.LL.Equal(other.LL) && r.UR.Equal(other.UR)
}

// Compare orders ranges by LL, then by UR, the same two-field
// lexicographic scheme biopb.CoordRange's Start/Limit pair would use
// if it exposed Compare directly (CoordRange only exposes the derived
// EQ/Intersects/Contains predicates; Compare here additionally gives
// NRectRange a total order for sorting partitions deterministically).
func (r NRectRange) Compare(other NRectRange) int {
	if c := r.LL.Compare(other.LL); c != 0 {
		return c
	}
	return r.UR.Compare(other.UR)
}

// LT returns true iff r < other.
func (r NRectRange) LT(other NRectRange) bool { return r.Compare(other) < 0 }

// LE returns true iff r <= other.
func (r NRectRange) LE(other NRectRange) bool { return r.Compare(other) <= 0 }

// GE returns true iff r >= other.
func (r NRectRange) GE(other NRectRange) bool { return r.Compare(other) >= 0 }

// GT returns true iff r > other.
func (r NRectRange) GT(other NRectRange) bool { return r.Compare(other) > 0 }

func (r NRectRange) String() string {
	return fmt.Sprintf("[%v, %v)", []float64(r.LL), []float64(r.UR))
}

// Inflate returns r grown by d in every direction of every dimension,
// used by WITHIN_DISTANCE pruning (spec.md §4.5) to loosen an extent
// or query envelope by a search radius before testing intersection.
func (r NRectRange) Inflate(d float64) NRectRange {
	ll := make(NPoint, r.Dim())
	ur := make(NPoint, r.Dim())
	for i := 0; i < r.Dim(); i++ {
		ll[i] = r.LL[i] - d
		ur[i] = r.UR[i] + d
	}
	return NRectRange{LL: ll, UR: ur}
}
