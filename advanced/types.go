package advanced

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Point[T constraints.Float] struct {
	X T
	Y T
}

// Normals are vectors, not points. They are unit length except for the
// degenerate sentinel, which is also unit length but carries no information.
type Vector[T constraints.Float] struct {
	X T
	Y T
}

// The sentinel normal for neighborhoods with no directional information.
func DegenerateNormal[T constraints.Float]() Vector[T] {
	return Vector[T]{0, 1}
}

func (v Vector[T]) Dot(other Vector[T]) T {
	return v.X*other.X + v.Y*other.Y
}

func (v Vector[T]) Neg() Vector[T] {
	return Vector[T]{-v.X, -v.Y}
}

func (v Vector[T]) Norm() T {
	return sqrt(v.X*v.X + v.Y*v.Y)
}

// Flip v if needed so that it does not point away from reference.
func (v Vector[T]) OrientLike(reference Vector[T]) Vector[T] {
	if v.Dot(reference) < 0 {
		return v.Neg()
	}
	return v
}

func sqrt[T constraints.Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

func abs[T constraints.Float](x T) T {
	return T(math.Abs(float64(x)))
}
