package advanced

import "golang.org/x/exp/constraints"

// Estimate a normal by weighted PCA. The result is unit length and its sign is
// arbitrary. If the weights sum to zero the result is (0, 1).
//
// Panics with a PreconditionError if points is empty or the weights don't
// match the points one to one.
func EstimateWeightedNormal[T constraints.Float](points []Point[T], weights []T) Vector[T] {
	cov, ok := WeightedCovariance(points, weights)
	if !ok {
		return DegenerateNormal[T]()
	}
	return MinorEigenvector(cov.A, cov.B, cov.C)
}

// Estimate a normal by PCA, weighting every point equally.
func EstimateNormal[T constraints.Float](points []Point[T]) Vector[T] {
	if len(points) == 0 {
		fatalf(ErrEmptyPointSet, "cannot estimate normal")
	}
	return EstimateWeightedNormal(points, uniformWeights[T](len(points)))
}
