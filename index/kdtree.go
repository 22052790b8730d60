package index

import (
	"math"

	"github.com/osuushi/normals/advanced"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// KDTree is a SpatialIndex backed by gonum's k-d tree.
//
// gonum doesn't promise anything about the order of equidistant points, so a
// query runs in two steps: find the k nearest to learn the distance of the
// k-th, then collect everything within that distance and sort by (distance,
// index). That way points tied at the boundary are resolved the same way
// BruteForce resolves them.
type KDTree[T constraints.Float] struct {
	points []advanced.Point[T]
	tree   *kdtree.Tree
}

// The points slice is borrowed, not copied. Don't modify it while the index is
// in use.
func NewKDTree[T constraints.Float](points []advanced.Point[T]) *KDTree[T] {
	nodes := make(treePoints, len(points))
	for i, p := range points {
		nodes[i] = treePoint{x: float64(p.X), y: float64(p.Y), index: i}
	}
	result := &KDTree[T]{points: points}
	if len(nodes) > 0 {
		result.tree = kdtree.New(nodes, false)
	}
	return result
}

func (t *KDTree[T]) Size() int {
	return len(t.points)
}

func (t *KDTree[T]) Points() []advanced.Point[T] {
	return t.points
}

func (t *KDTree[T]) FindKNearestNeighbors(query advanced.Point[T], k int) []int {
	if t.tree == nil || k <= 0 {
		return nil
	}
	q := treePoint{x: float64(query.X), y: float64(query.Y), index: -1}

	nearest := kdtree.NewNKeeper(k)
	t.tree.NearestSet(nearest, q)
	radius := 0.0
	for _, c := range nearest.Heap {
		if c.Comparable != nil && c.Dist > radius {
			radius = c.Dist
		}
	}

	// Widen the search radius by one ulp so that pruning never discards a
	// point lying exactly on the boundary, then filter on the exact radius.
	within := kdtree.NewDistKeeper(math.Nextafter(radius, math.Inf(1)))
	t.tree.NearestSet(within, q)
	candidates := make([]neighbor, 0, len(within.Heap))
	for _, c := range within.Heap {
		// Skip the keeper's sentinel
		if c.Comparable == nil || c.Dist > radius {
			continue
		}
		candidates = append(candidates, neighbor{index: c.Comparable.(treePoint).index, dist: c.Dist})
	}

	sortNeighbors(candidates)
	if k < len(candidates) {
		candidates = candidates[:k]
	}
	return neighborIndexes(candidates)
}

// treePoint is a point as the k-d tree sees it. The index ties it back to the
// caller's slice.
type treePoint struct {
	x, y  float64
	index int
}

func (p treePoint) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return p.x
	}
	return p.y
}

func (p treePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coord(d) - c.(treePoint).coord(d)
}

func (p treePoint) Dims() int {
	return 2
}

// Squared Euclidean distance, as gonum expects.
func (p treePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(treePoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

type treePoints []treePoint

func (p treePoints) Index(i int) kdtree.Comparable { return p[i] }
func (p treePoints) Len() int                      { return len(p) }
func (p treePoints) Pivot(d kdtree.Dim) int {
	return plane{treePoints: p, Dim: d}.Pivot()
}
func (p treePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension for partitioning.
type plane struct {
	kdtree.Dim
	treePoints
}

func (p plane) Less(i, j int) bool {
	return p.treePoints[i].coord(p.Dim) < p.treePoints[j].coord(p.Dim)
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.treePoints = p.treePoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.treePoints[i], p.treePoints[j] = p.treePoints[j], p.treePoints[i]
}

var (
	_ advanced.SpatialIndex[float64] = (*KDTree[float64])(nil)
	_ advanced.SpatialIndex[float32] = (*BruteForce[float32])(nil)
)
