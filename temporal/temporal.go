// Package temporal implements the temporal expression half of STObject
// (spec.md §3): an Instant or an Interval with a possibly-open end,
// supporting the interval algebra intersects/contains/< that the
// spatio-temporal predicate composition rule needs. The half-open,
// "open end denotes +∞" convention mirrors the right-open interval
// idiom used throughout github.com/grailbio/bio/interval
// (endpoint_index.go's PosType intervals), generalized from genomic
// coordinates to epoch-millisecond instants.
package temporal

import (
	"fmt"
	"math"
)

// Unbounded is the sentinel end value meaning "+∞" (spec.md §3: "an
// open end denotes +∞").
const Unbounded = math.MaxInt64

// Expr is either an Instant or an Interval. The zero value is not a
// valid Expr; use NewInstant or NewInterval.
type Expr struct {
	isInterval bool
	instant    int64
	start      int64
	end        int64 // Unbounded means open-ended
}

// NewInstant returns a point-in-time expression.
func NewInstant(t int64) Expr {
	return Expr{isInterval: false, instant: t}
}

// NewInterval returns a half-open interval [start, end). Pass
// Unbounded for end to denote an open-ended interval.
func NewInterval(start, end int64) Expr {
	return Expr{isInterval: true, start: start, end: end}
}

// IsInstant reports whether e is an Instant.
func (e Expr) IsInstant() bool { return !e.isInterval }

// Bounds returns the half-open [start, end) range e occupies; an
// Instant at t occupies [t, t+1).
func (e Expr) Bounds() (start, end int64) {
	if !e.isInterval {
		return e.instant, e.instant + 1
	}
	return e.start, e.end
}

func (e Expr) String() string {
	if !e.isInterval {
		return fmt.Sprintf("Instant(%d)", e.instant)
	}
	if e.end == Unbounded {
		return fmt.Sprintf("Interval(%d, +inf)", e.start)
	}
	return fmt.Sprintf("Interval(%d, %d)", e.start, e.end)
}

// Intersects reports whether e and other share any instant.
func (e Expr) Intersects(other Expr) bool {
	aStart, aEnd := e.Bounds()
	bStart, bEnd := other.Bounds()
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether other's occupied range is a subset of e's.
func (e Expr) Contains(other Expr) bool {
	aStart, aEnd := e.Bounds()
	bStart, bEnd := other.Bounds()
	return aStart <= bStart && bEnd <= aEnd
}

// Before reports whether e entirely precedes other (e's range ends at
// or before other's range begins); this is the "<" operator of
// spec.md §3's interval algebra.
func (e Expr) Before(other Expr) bool {
	_, aEnd := e.Bounds()
	bStart, _ := other.Bounds()
	if aEnd == Unbounded {
		return false
	}
	return aEnd <= bStart
}

// Equal reports structural equality.
func (e Expr) Equal(other Expr) bool {
	return e.isInterval == other.isInterval && e.instant == other.instant &&
		e.start == other.start && e.end == other.end
}
