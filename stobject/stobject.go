// Package stobject implements STObject (spec.md §3): a geometry paired
// with an optional temporal expression, and the binary predicate
// composition rule that combines a spatial predicate with the
// temporal one. The composition rule ("if exactly one side has time,
// the temporal predicate yields false") is the one piece of domain
// logic every downstream operator (filter, join, kNN, skyline) relies
// on, so it lives in one place rather than being re-derived per
// operator.
package stobject

import (
	"github.com/grailbio/stark/geo"
	"github.com/grailbio/stark/temporal"
)

// STObject pairs a geometry with an optional temporal expression.
type STObject struct {
	Geom geo.Geometry
	Time *temporal.Expr // nil means "no temporal component"
}

// New builds a purely spatial STObject.
func New(g geo.Geometry) STObject {
	return STObject{Geom: g}
}

// NewWithTime builds an STObject with a temporal component.
func NewWithTime(g geo.Geometry, t temporal.Expr) STObject {
	return STObject{Geom: g, Time: &t}
}

// Predicate is a tagged spatial (+ optional distance) predicate kind,
// per spec.md §4.5/§9's "predicates are a tagged variant" design note.
type Predicate uint8

const (
	Intersects Predicate = iota
	Contains
	ContainedBy
	Covers
	CoveredBy
	WithinDistance
)

func (p Predicate) String() string {
	switch p {
	case Intersects:
		return "INTERSECTS"
	case Contains:
		return "CONTAINS"
	case ContainedBy:
		return "CONTAINEDBY"
	case Covers:
		return "COVERS"
	case CoveredBy:
		return "COVEREDBY"
	case WithinDistance:
		return "WITHIN_DISTANCE"
	default:
		return "UNKNOWN"
	}
}

// spatialHolds evaluates the spatial half of predicate p between a and
// b's geometries. maxDist/distFn are only consulted for WithinDistance.
func spatialHolds(p Predicate, a, b geo.Geometry, maxDist float64, distFn func(a, b geo.Geometry) float64) bool {
	switch p {
	case Intersects:
		return a.Intersects(b)
	case Contains:
		return a.Contains(b)
	case ContainedBy:
		return a.ContainedBy(b)
	case Covers:
		return a.Covers(b)
	case CoveredBy:
		return a.CoveredBy(b)
	case WithinDistance:
		d := distFn
		if d == nil {
			d = func(x, y geo.Geometry) float64 { return x.Distance(y) }
		}
		return d(a, b) <= maxDist
	default:
		return false
	}
}

// Holds evaluates predicate p between a and b per spec.md §3's
// composition rule: P(a,b) holds iff P_spatial(a.geom, b.geom) AND
// (both a.Time and b.Time are absent, OR both present and
// a.Time P_temporal b.Time). If exactly one side has time, the
// temporal half (and hence Holds) is false for every predicate. The
// temporal half is containment for Contains/Covers (a.Time contains
// b.Time) and ContainedBy/CoveredBy (b.Time contains a.Time), and
// intersection for Intersects and WithinDistance.
func Holds(p Predicate, a, b STObject, maxDist float64, distFn func(a, b geo.Geometry) float64) bool {
	if !spatialHolds(p, a.Geom, b.Geom, maxDist, distFn) {
		return false
	}
	return temporalHolds(p, a, b)
}

func temporalHolds(p Predicate, a, b STObject) bool {
	if a.Time == nil && b.Time == nil {
		return true
	}
	if a.Time == nil || b.Time == nil {
		return false
	}
	switch p {
	case Contains:
		return a.Time.Contains(*b.Time)
	case ContainedBy:
		return b.Time.Contains(*a.Time)
	case Covers:
		return a.Time.Contains(*b.Time)
	case CoveredBy:
		return b.Time.Contains(*a.Time)
	default:
		return a.Time.Intersects(*b.Time)
	}
}
