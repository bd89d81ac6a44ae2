package geo

import "math"

// Intersects reports whether g and other share at least one point.
func (g Geometry) Intersects(other Geometry) bool {
	switch {
	case g.kind == KindPoint && other.kind == KindPoint:
		return g.points[0] == other.points[0]
	case g.kind == KindPoint && other.kind == KindPolygon:
		return pointInOrOnPolygon(g.points[0], other.points)
	case g.kind == KindPolygon && other.kind == KindPoint:
		return pointInOrOnPolygon(other.points[0], g.points)
	default:
		return polygonsIntersect(g.points, other.points)
	}
}

// Contains reports whether every point of other lies within g's
// interior or boundary, and g is not equal to a lower-dimensional
// other unless other's single point literally coincides (spec.md §3:
// "a.contains(b) ⇒ b.coveredBy(a)").
func (g Geometry) Contains(other Geometry) bool {
	switch {
	case g.kind == KindPoint:
		return other.kind == KindPoint && g.points[0] == other.points[0]
	case other.kind == KindPoint:
		return pointInOrOnPolygon(other.points[0], g.points)
	default:
		return polygonContainsPolygon(g.points, other.points)
	}
}

// Covers is Contains but additionally true when other's boundary
// touches g's boundary from the inside; for this module's simple
// polygon-in-polygon test the two predicates coincide because
// pointInOrOnPolygon already treats the boundary as contained.
func (g Geometry) Covers(other Geometry) bool {
	return g.Contains(other)
}

// CoveredBy reports whether other covers g.
func (g Geometry) CoveredBy(other Geometry) bool {
	return other.Covers(g)
}

// ContainedBy reports whether other contains g.
func (g Geometry) ContainedBy(other Geometry) bool {
	return other.Contains(g)
}

// Distance returns the Euclidean distance between the closest points
// of g and other (0 if they overlap).
func (g Geometry) Distance(other Geometry) float64 {
	switch {
	case g.kind == KindPoint && other.kind == KindPoint:
		return g.points[0].distanceTo(other.points[0])
	case g.kind == KindPoint && other.kind == KindPolygon:
		return pointToPolygonDistance(g.points[0], other.points)
	case g.kind == KindPolygon && other.kind == KindPoint:
		return pointToPolygonDistance(other.points[0], g.points)
	default:
		if polygonsIntersect(g.points, other.points) {
			return 0
		}
		best := math.Inf(1)
		for i := 0; i+1 < len(g.points); i++ {
			for j := 0; j+1 < len(other.points); j++ {
				d := segmentDistance(g.points[i], g.points[i+1], other.points[j], other.points[j+1])
				if d < best {
					best = d
				}
			}
		}
		return best
	}
}

// pointInOrOnPolygon reports whether p is inside ring or on its
// boundary, using the standard even-odd ray-casting rule for the
// interior test plus an explicit on-segment check for the boundary.
func pointInOrOnPolygon(p Point, ring []Point) bool {
	for i := 0; i+1 < len(ring); i++ {
		if onSegment(ring[i], ring[i+1], p) {
			return true
		}
	}
	inside := false
	for i, j := 0, len(ring)-2; i+1 < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > 1e-9 {
		return false
	}
	if p.X < math.Min(a.X, b.X)-1e-9 || p.X > math.Max(a.X, b.X)+1e-9 {
		return false
	}
	if p.Y < math.Min(a.Y, b.Y)-1e-9 || p.Y > math.Max(a.Y, b.Y)+1e-9 {
		return false
	}
	return true
}

func segmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := cross3(p3, p4, p1)
	d2 := cross3(p3, p4, p2)
	d3 := cross3(p1, p2, p3)
	d4 := cross3(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func cross3(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// polygonsIntersect reports whether two simple polygon rings share
// any boundary crossing, or one fully contains the other.
func polygonsIntersect(a, b []Point) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	if len(b) > 0 && pointInOrOnPolygon(b[0], a) {
		return true
	}
	if len(a) > 0 && pointInOrOnPolygon(a[0], b) {
		return true
	}
	return false
}

// polygonContainsPolygon reports whether every vertex of inner lies
// inside-or-on outer, and no edge of inner crosses outside of it.
func polygonContainsPolygon(outer, inner []Point) bool {
	for i := 0; i+1 < len(inner); i++ {
		if !pointInOrOnPolygon(inner[i], outer) {
			return false
		}
	}
	for i := 0; i+1 < len(outer); i++ {
		for j := 0; j+1 < len(inner); j++ {
			if properCrossing(outer[i], outer[i+1], inner[j], inner[j+1]) {
				return false
			}
		}
	}
	return true
}

// properCrossing reports a segment intersection that is not merely a
// touch at an endpoint/boundary (used to rule out inner "poking
// through" outer's boundary while still having all vertices inside).
func properCrossing(p1, p2, p3, p4 Point) bool {
	d1 := cross3(p3, p4, p1)
	d2 := cross3(p3, p4, p2)
	d3 := cross3(p1, p2, p3)
	d4 := cross3(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func pointToPolygonDistance(p Point, ring []Point) float64 {
	if pointInOrOnPolygon(p, ring) {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(ring); i++ {
		d := pointSegmentDistance(p, ring[i], ring[i+1])
		if d < best {
			best = d
		}
	}
	return best
}

func pointSegmentDistance(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	wx, wy := p.X-a.X, p.Y-a.Y
	lenSq := vx*vx + vy*vy
	if lenSq == 0 {
		return p.distanceTo(a)
	}
	t := (wx*vx + wy*vy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{X: a.X + t*vx, Y: a.Y + t*vy}
	return p.distanceTo(proj)
}

func segmentDistance(p1, p2, p3, p4 Point) float64 {
	if segmentsIntersect(p1, p2, p3, p4) {
		return 0
	}
	d := pointSegmentDistance(p1, p3, p4)
	if v := pointSegmentDistance(p2, p3, p4); v < d {
		d = v
	}
	if v := pointSegmentDistance(p3, p1, p2); v < d {
		d = v
	}
	if v := pointSegmentDistance(p4, p1, p2); v < d {
		d = v
	}
	return d
}
