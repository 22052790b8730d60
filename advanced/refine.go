package advanced

import "golang.org/x/exp/constraints"

// Re-estimate every normal using only those of its k nearest neighbors whose
// normal agrees in sign with its own, then orient the result like the normal
// it replaces. normals is overwritten in place.
//
// This is a single sweep. All sign tests read a snapshot taken before the
// sweep starts, so the result does not depend on visiting order (or on
// Options.Workers). A point whose filtered neighborhood comes back empty, which
// only happens if the index omits the query point itself, is estimated from
// itself alone.
func RefineOrientation[T constraints.Float](index SpatialIndex[T], k int, normals []Vector[T]) {
	RefineOrientationWithOptions(index, k, normals, Options{})
}

// Like RefineOrientation, but scheduled according to opts.
func RefineOrientationWithOptions[T constraints.Float](index SpatialIndex[T], k int, normals []Vector[T], opts Options) {
	n := index.Size()
	if k <= 0 {
		fatalf(ErrNonPositiveK, "got k=%d", k)
	}
	if len(normals) != n {
		fatalf(ErrLengthMismatch, "%d normals for %d points", len(normals), n)
	}
	if n == 0 {
		return
	}
	k = min(k, n)

	points := index.Points()
	snapshot := make([]Vector[T], n)
	copy(snapshot, normals)

	forEachPoint(n, opts.Workers, func() func(int) {
		neighborPoints := make([]Point[T], 0, k)
		return func(i int) {
			own := snapshot[i]
			neighborPoints = neighborPoints[:0]
			for _, j := range index.FindKNearestNeighbors(points[i], k) {
				if own.Dot(snapshot[j]) >= 0 {
					neighborPoints = append(neighborPoints, points[j])
				}
			}
			if len(neighborPoints) == 0 {
				neighborPoints = append(neighborPoints, points[i])
			}
			normals[i] = EstimateNormal(neighborPoints).OrientLike(own)
		}
	})
}
