package advanced

import "golang.org/x/exp/constraints"

// SpatialIndex is the nearest neighbor structure the estimators query. It is
// never modified by this package.
//
// FindKNearestNeighbors returns the indexes (into Points()) of up to k stored
// points ordered by non-decreasing distance from query, breaking ties by lower
// index. A query equal to a stored point finds that point at distance zero.
// Implementations used with Options.Workers > 1 must allow concurrent queries.
type SpatialIndex[T constraints.Float] interface {
	Size() int
	Points() []Point[T]
	FindKNearestNeighbors(query Point[T], k int) []int
}

// Estimate a normal for every indexed point from its k nearest neighbors
// (including itself). k is clamped to the size of the index. Signs are
// arbitrary.
func EstimateNormals[T constraints.Float](index SpatialIndex[T], k int) []Vector[T] {
	return EstimateNormalsWithOptions(index, k, Options{})
}

// Like EstimateNormals, but scheduled according to opts.
func EstimateNormalsWithOptions[T constraints.Float](index SpatialIndex[T], k int, opts Options) []Vector[T] {
	if index.Size() == 0 {
		fatalf(ErrEmptyIndex, "cannot estimate normals")
	}
	normals := make([]Vector[T], index.Size())
	EstimateNormalsInto(index, k, normals, opts)
	return normals
}

// Like EstimateNormalsWithOptions, but writes into dst, which must have one
// slot per indexed point. dst is not retained.
func EstimateNormalsInto[T constraints.Float](index SpatialIndex[T], k int, dst []Vector[T], opts Options) {
	n := index.Size()
	if n == 0 {
		fatalf(ErrEmptyIndex, "cannot estimate normals")
	}
	if k <= 0 {
		fatalf(ErrNonPositiveK, "got k=%d", k)
	}
	if len(dst) != n {
		fatalf(ErrLengthMismatch, "%d normals for %d points", len(dst), n)
	}
	k = min(k, n)

	points := index.Points()
	forEachPoint(n, opts.Workers, func() func(int) {
		neighborPoints := make([]Point[T], 0, k)
		return func(i int) {
			neighborPoints = neighborPoints[:0]
			for _, j := range index.FindKNearestNeighbors(points[i], k) {
				neighborPoints = append(neighborPoints, points[j])
			}
			dst[i] = EstimateNormal(neighborPoints)
		}
	})
}
