package advanced

import "golang.org/x/exp/constraints"

// Covariance holds the weighted centroid and the upper triangle of the
// symmetric 2x2 covariance matrix
//
//	[ A  B ]
//	[ B  C ]
//
// normalized by the total weight.
type Covariance[T constraints.Float] struct {
	Centroid    Point[T]
	A, B, C     T
	TotalWeight T
}

// Compute the weighted covariance of points. The second result is false when
// the total weight is zero, in which case the covariance is meaningless and
// only TotalWeight is set.
func WeightedCovariance[T constraints.Float](points []Point[T], weights []T) (Covariance[T], bool) {
	if len(points) == 0 {
		fatalf(ErrEmptyPointSet, "cannot compute covariance")
	}
	if len(points) != len(weights) {
		fatalf(ErrLengthMismatch, "%d points, %d weights", len(points), len(weights))
	}

	var sum, cx, cy T
	for i, p := range points {
		w := weights[i]
		cx += w * p.X
		cy += w * p.Y
		sum += w
	}
	if sum == 0 {
		return Covariance[T]{}, false
	}

	t := 1 / sum
	centroid := Point[T]{cx * t, cy * t}

	var a, b, c T
	for i, p := range points {
		x := p.X - centroid.X
		y := p.Y - centroid.Y
		w := weights[i]
		a += w * x * x
		b += w * x * y
		c += w * y * y
	}

	return Covariance[T]{
		Centroid:    centroid,
		A:           a * t,
		B:           b * t,
		C:           c * t,
		TotalWeight: sum,
	}, true
}

func uniformWeights[T constraints.Float](n int) []T {
	weights := make([]T, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}
