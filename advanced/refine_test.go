package advanced_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/osuushi/normals/advanced"
	"github.com/osuushi/normals/index"
	"github.com/osuushi/normals/internal/fixture"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRefineOrientation_Alternating(t *testing.T) {
	points := linePoints(8)
	idx := index.NewKDTree(points)
	normals := make([]Vector, len(points))
	for i := range normals {
		normals[i] = Vector{0, 1}
		if i%2 == 1 {
			normals[i] = Vector{0, -1}
		}
	}
	before := append([]Vector(nil), normals...)

	advanced.RefineOrientation[float64](idx, 3, normals)

	for i, n := range normals {
		assert.GreaterOrEqual(t, n.Dot(before[i]), 0.0, "point %d", i)
		assert.Equal(t, 0.0, n.X, "point %d", i)
		assert.Equal(t, 1.0, math.Abs(n.Y), "point %d", i)
	}
}

func TestRefineOrientation_Tilted(t *testing.T) {
	points := linePoints(8)
	idx := index.NewKDTree(points)
	up := Vector{0.6, 0.8}
	normals := make([]Vector, len(points))
	for i := range normals {
		normals[i] = up
	}
	normals[3] = up.Neg()
	before := append([]Vector(nil), normals...)

	advanced.RefineOrientation[float64](idx, 3, normals)

	// Every point but the odd one out is re-estimated from collinear neighbors
	// that agree with it. The odd one out has no agreeing neighbors but itself.
	expected := make([]Vector, len(points))
	for i := range expected {
		expected[i] = Vector{0, 1}
	}
	expected[3] = Vector{0, -1}
	assert.Equal(t, expected, normals)

	// Wherever a point's own sign is the majority among its neighbors, the
	// refined normal agrees with that majority.
	for i, n := range normals {
		majority, ok := majorityNormal(idx, 3, before, i)
		if ok && majority.Dot(before[i]) >= 0 {
			assert.GreaterOrEqual(t, n.Dot(majority), 0.0, "point %d", i)
		}
	}
}

func TestRefineOrientation_ConsistentIsFixedPoint(t *testing.T) {
	points := fixture.Load("circle")
	idx := index.NewKDTree(points)
	normals := advanced.EstimateNormals[float64](idx, 3)
	for i, n := range normals {
		outward := Vector{points[i].X - 50, points[i].Y - 50}
		normals[i] = n.OrientLike(outward)
	}
	before := append([]Vector(nil), normals...)

	advanced.RefineOrientation[float64](idx, 3, normals)
	assert.Equal(t, before, normals)
}

func TestRefineOrientation_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := randomCloud(rng, 250)
	idx := index.NewKDTree(points)
	initial := advanced.EstimateNormals[float64](idx, 6)
	for i := range initial {
		if rng.Intn(2) == 0 {
			initial[i] = initial[i].Neg()
		}
	}

	sequential := append([]Vector(nil), initial...)
	advanced.RefineOrientation[float64](idx, 6, sequential)

	for _, workers := range []int{2, 5, 64} {
		parallel := append([]Vector(nil), initial...)
		advanced.RefineOrientationWithOptions[float64](idx, 6, parallel, advanced.Options{Workers: workers})
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}

	// Visiting points in reverse must not matter either
	reversed := reverseIndex(points)
	reversedNormals := make([]Vector, len(initial))
	for i := range initial {
		reversedNormals[len(initial)-1-i] = initial[i]
	}
	advanced.RefineOrientation[float64](reversed, 6, reversedNormals)
	for i := range sequential {
		assert.Equal(t, sequential[i], reversedNormals[len(initial)-1-i], "point %d", i)
	}
}

func TestRefineOrientation_CoincidentPoints(t *testing.T) {
	// The second point finds the first as its only neighbor, which disagrees
	// with it, so it falls back to itself.
	points := []Point{{0, 0}, {0, 0}}
	normals := []Vector{{0, 1}, {0, -1}}
	advanced.RefineOrientation[float64](index.NewBruteForce(points), 1, normals)
	assert.Equal(t, []Vector{{0, 1}, {0, -1}}, normals)
}

func TestRefineOrientation_Preconditions(t *testing.T) {
	idx := index.NewBruteForce(linePoints(4))

	err := catch(func() {
		advanced.RefineOrientation[float64](idx, 0, make([]Vector, 4))
	})
	assert.True(t, errors.Is(err, advanced.ErrNonPositiveK))

	err = catch(func() {
		advanced.RefineOrientation[float64](idx, 2, make([]Vector, 3))
	})
	assert.True(t, errors.Is(err, advanced.ErrLengthMismatch))

	// Nothing to refine is not an error
	err = catch(func() {
		advanced.RefineOrientation[float64](index.NewBruteForce[float64](nil), 2, nil)
	})
	assert.NoError(t, err)
}

// Helpers

func linePoints(n int) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{float64(i), 0}
	}
	return points
}

// The sum of the neighbors' normals, if it isn't zero. Its sign is the
// majority sign for normals that are all (anti)parallel.
func majorityNormal(idx advanced.SpatialIndex[float64], k int, normals []Vector, i int) (Vector, bool) {
	var sum Vector
	for _, j := range idx.FindKNearestNeighbors(idx.Points()[i], k) {
		sum.X += normals[j].X
		sum.Y += normals[j].Y
	}
	return sum, sum.Norm() > 1e-12
}

// Numbers the points in reverse but answers queries with the original
// neighborhoods, so that only the visiting order changes.
type reversedIndex struct {
	inner *index.BruteForce[float64]
	n     int
}

func reverseIndex(points []Point) reversedIndex {
	return reversedIndex{index.NewBruteForce(points), len(points)}
}

func (r reversedIndex) Size() int { return r.n }

func (r reversedIndex) Points() []Point {
	points := r.inner.Points()
	reversed := make([]Point, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}
	return reversed
}

func (r reversedIndex) FindKNearestNeighbors(query Point, k int) []int {
	result := r.inner.FindKNearestNeighbors(query, k)
	for i, j := range result {
		result[i] = r.n - 1 - j
	}
	return result
}
