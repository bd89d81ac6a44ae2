package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point2D struct {
	X, Y float64
}

// dominates2D is the classic "smaller in both dims, strictly smaller
// in at least one" minimization order used across these tests.
func dominates2D(a, b point2D) bool {
	return a.X <= b.X && a.Y <= b.Y && (a.X < b.X || a.Y < b.Y)
}

func TestSkylineInsertDropsDominatedAndSkipsDominated(t *testing.T) {
	s := NewSkyline(dominates2D)
	s.Insert(point2D{2, 2})
	s.Insert(point2D{1, 1}) // dominates (2,2); should evict it
	assert.Equal(t, []point2D{{1, 1}}, s.Points())

	s.Insert(point2D{5, 5}) // dominated by (1,1); should be skipped
	assert.Equal(t, []point2D{{1, 1}}, s.Points())

	s.Insert(point2D{0, 3}) // incomparable with (1,1); both kept
	assert.ElementsMatch(t, []point2D{{1, 1}, {0, 3}}, s.Points())
}

func TestSkylineAggMatchesKnownFrontier(t *testing.T) {
	pts := []point2D{{1, 5}, {4, 2}, {3, 3}, {5, 1}, {4, 4}, {2, 6}}
	got := SkylineAgg(pts, dominates2D).Points()

	// (4,4) is dominated by (3,3); (2,6) is dominated by (1,5). The
	// remaining four are mutually incomparable.
	assert.ElementsMatch(t, []point2D{{1, 5}, {4, 2}, {3, 3}, {5, 1}}, got)
}

func TestSkylineMergeIsCommutative(t *testing.T) {
	a := NewSkyline(dominates2D)
	a.Insert(point2D{1, 5})
	a.Insert(point2D{4, 2})

	b := NewSkyline(dominates2D)
	b.Insert(point2D{3, 3})
	b.Insert(point2D{10, 10}) // dominated by (3,3)

	ab := NewSkyline(dominates2D)
	ab.Insert(point2D{1, 5})
	ab.Insert(point2D{4, 2})
	merged1 := ab.Merge(b)

	ba := NewSkyline(dominates2D)
	ba.Insert(point2D{3, 3})
	ba.Insert(point2D{10, 10})
	merged2 := ba.Merge(a)

	assert.ElementsMatch(t, merged1.Points(), merged2.Points())
	assert.ElementsMatch(t, []point2D{{1, 5}, {4, 2}, {3, 3}}, merged1.Points())
}

func TestSkylineBBSMatchesBruteForceSkylineAgg(t *testing.T) {
	pts := []point2D{
		{1, 5}, {4, 2}, {3, 3}, {5, 1}, {4, 4}, {2, 6},
		{0.5, 9}, {9, 0.5}, {6, 6}, {2, 2},
	}
	distFn := func(p point2D) DistancePoint { return DistancePoint{SDist: p.X, TDist: p.Y} }

	brute := SkylineAgg(pts, dominates2D).Points()
	bbs := SkylineBBS(pts, distFn, 3)

	assert.ElementsMatch(t, brute, bbs)
}

func TestSkylineBBSEmptyInput(t *testing.T) {
	var pts []point2D
	got := SkylineBBS(pts, func(p point2D) DistancePoint { return DistancePoint{p.X, p.Y} }, 4)
	assert.Empty(t, got)
}

func TestSkylineAngularCoversAllSectorsAndMatchesBruteForce(t *testing.T) {
	pts := []point2D{
		{1, 5}, {4, 2}, {3, 3}, {5, 1}, {4, 4}, {2, 6},
		{-1, -5}, {-4, -2}, {-3, 3}, {5, -1},
	}
	center := func(p point2D) (float64, float64) { return p.X, p.Y }

	brute := SkylineAgg(pts, dominates2D).Points()
	angular := SkylineAngular(pts, center, dominates2D, 8, false)

	assert.ElementsMatch(t, brute, angular)
}

func TestSkylineAngularFirstQuadrantOnlyDropsOtherQuadrants(t *testing.T) {
	pts := []point2D{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	center := func(p point2D) (float64, float64) { return p.X, p.Y }

	got := SkylineAngular(pts, center, dominates2D, 4, true)
	assert.Equal(t, []point2D{{1, 1}}, got)
}
