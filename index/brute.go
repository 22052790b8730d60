package index

import (
	"sort"

	"github.com/osuushi/normals/advanced"
	"golang.org/x/exp/constraints"
)

// BruteForce answers nearest neighbor queries by scanning every point. It is
// the reference the k-d tree is tested against, and is perfectly adequate for
// small clouds.
type BruteForce[T constraints.Float] struct {
	points []advanced.Point[T]
}

// The points slice is borrowed, not copied. Don't modify it while the index is
// in use.
func NewBruteForce[T constraints.Float](points []advanced.Point[T]) *BruteForce[T] {
	return &BruteForce[T]{points: points}
}

func (b *BruteForce[T]) Size() int {
	return len(b.points)
}

func (b *BruteForce[T]) Points() []advanced.Point[T] {
	return b.points
}

func (b *BruteForce[T]) FindKNearestNeighbors(query advanced.Point[T], k int) []int {
	candidates := make([]neighbor, len(b.points))
	for i, p := range b.points {
		candidates[i] = neighbor{index: i, dist: squaredDistance(query, p)}
	}
	sortNeighbors(candidates)
	if k < len(candidates) {
		candidates = candidates[:k]
	}
	return neighborIndexes(candidates)
}

type neighbor struct {
	index int
	dist  float64
}

// Order by distance, then by index so that ties are reproducible.
func sortNeighbors(neighbors []neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].dist != neighbors[j].dist {
			return neighbors[i].dist < neighbors[j].dist
		}
		return neighbors[i].index < neighbors[j].index
	})
}

func neighborIndexes(neighbors []neighbor) []int {
	result := make([]int, len(neighbors))
	for i, n := range neighbors {
		result[i] = n.index
	}
	return result
}

// Distances are always compared in float64, whatever T is, so both indexes
// rank points identically.
func squaredDistance[T constraints.Float](a, b advanced.Point[T]) float64 {
	dx := float64(a.X) - float64(b.X)
	dy := float64(a.Y) - float64(b.Y)
	return dx*dx + dy*dy
}
