// Package geo is the thin geometry façade spec.md §1/§3 calls for: a
// minimal planar geometry kernel (point and simple polygon, envelope,
// centroid, the intersects/contains/covers/coveredBy predicate family,
// and Euclidean distance) standing in for the full WKT-parsing
// predicate library the real system would depend on. spec.md treats
// that library as an external black-box collaborator ("the core calls
// these as black-box predicates"); this package is the minimal
// concrete instance the rest of the module can call and test against.
package geo

import (
	"fmt"
	"math"

	"github.com/grailbio/stark/spatial"
	"github.com/grailbio/stark/sterrors"
)

// Kind tags which concrete shape a Geometry value holds.
type Kind uint8

const (
	// KindPoint is a single (X, Y) location.
	KindPoint Kind = iota
	// KindPolygon is a simple closed ring, given as a sequence of vertices
	// (first and last need not be repeated; Geometry normalizes that).
	KindPolygon
)

// Point is a single planar coordinate.
type Point struct {
	X, Y float64
}

func (p Point) String() string { return fmt.Sprintf("(%g %g)", p.X, p.Y) }

func (p Point) distanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Geometry is the opaque spatial value the rest of this module treats
// as a black box: envelope(), predicates, distance(), centroid(),
// coordinates(). Equality is structural on coordinates (spec.md §3).
type Geometry struct {
	kind   Kind
	points []Point // for KindPolygon, a closed ring: points[0] == points[len-1]
}

// NewPoint builds a point geometry.
func NewPoint(x, y float64) Geometry {
	return Geometry{kind: KindPoint, points: []Point{{X: x, Y: y}}}
}

// NewPolygon builds a simple polygon geometry from ring vertices. The
// ring is closed automatically if the caller didn't repeat the first
// vertex. Fewer than 3 vertices, or a non-finite coordinate, is a
// GeometryError; vertices are not checked for being distinct.
func NewPolygon(vertices []Point) (Geometry, error) {
	if len(vertices) < 3 {
		return Geometry{}, sterrors.Geometryf("geo.NewPolygon", "need at least 3 vertices, got %d", len(vertices))
	}
	ring := make([]Point, len(vertices))
	copy(ring, vertices)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	for _, v := range ring {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return Geometry{}, sterrors.Geometryf("geo.NewPolygon", "non-finite coordinate %v", v)
		}
	}
	return Geometry{kind: KindPolygon, points: ring}, nil
}

// Kind returns the geometry's shape tag.
func (g Geometry) Kind() Kind { return g.kind }

// Coordinates returns the geometry's defining points, in order. For a
// polygon this is the closed ring.
func (g Geometry) Coordinates() []Point {
	out := make([]Point, len(g.points))
	copy(out, g.points)
	return out
}

// Equal reports structural equality on coordinates (spec.md §3).
func (g Geometry) Equal(other Geometry) bool {
	if g.kind != other.kind || len(g.points) != len(other.points) {
		return false
	}
	for i := range g.points {
		if g.points[i] != other.points[i] {
			return false
		}
	}
	return true
}

// Envelope returns the geometry's minimum bounding rectangle.
func (g Geometry) Envelope() spatial.NRectRange {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range g.points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if g.kind == KindPoint {
		// A point's envelope is degenerate; nudge the max corner so
		// right-open range semantics (spatial.NRectRange) still contain it.
		maxX = math.Nextafter(maxX, math.Inf(1))
		maxY = math.Nextafter(maxY, math.Inf(1))
	}
	ll := spatial.NPoint{minX, minY}
	ur := spatial.NPoint{maxX, maxY}
	rect, err := spatial.NewRect(ll, ur)
	if err != nil {
		// Degenerate geometries (duplicate points) can yield ll==ur on a
		// dimension; that's a legal, if thin, rectangle once nudged.
		ur[0] = math.Nextafter(ll[0], math.Inf(1))
		if ur[0] <= ll[0] {
			ur[0] = ll[0] + spatial.EPS
		}
		ur[1] = math.Nextafter(ll[1], math.Inf(1))
		if ur[1] <= ll[1] {
			ur[1] = ll[1] + spatial.EPS
		}
		rect, _ = spatial.NewRect(ll, ur)
	}
	return rect
}

// Centroid returns the arithmetic mean of the geometry's vertices. For
// a polygon this is the vertex centroid, not the area centroid — an
// adequate approximation for grid/histogram bucketing (spec.md §4.1,
// §4.2), which is the only place this module calls Centroid.
func (g Geometry) Centroid() Point {
	n := len(g.points)
	if g.kind == KindPolygon {
		n-- // don't double-count the closing vertex
	}
	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += g.points[i].X
		sy += g.points[i].Y
	}
	return Point{X: sx / float64(n), Y: sy / float64(n)}
}

func (g Geometry) String() string {
	switch g.kind {
	case KindPoint:
		return fmt.Sprintf("POINT%s", g.points[0])
	default:
		return fmt.Sprintf("POLYGON(%v)", g.points)
	}
}
