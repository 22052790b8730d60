package advanced

import "golang.org/x/exp/constraints"

// Find the unit eigenvector of the symmetric matrix [[a, b], [b, c]] that
// belongs to the smaller eigenvalue. This is a rotation angle problem:
//
//	[ a  b ]  =  [ cs  -sn ] [ rt1   0  ] [  cs  sn ]
//	[ b  c ]     [ sn   cs ] [  0   rt2 ] [ -sn  cs ]
//
// The branches pick whichever ratio has the larger denominator, so that
// neither a tiny b nor a tiny a-c loses precision to cancellation. Don't
// "simplify" them into a single formula.
//
// The zero matrix lands in the b == 0 branch and yields (0, 1), the same
// sentinel used for zero total weight.
func MinorEigenvector[T constraints.Float](a, b, c T) Vector[T] {
	df := a - c
	rt := sqrt(df*df + b*b*4)

	var cs, sn T
	if df > 0 {
		cs = df + rt
	} else {
		cs = df - rt
	}

	if abs(cs) > abs(b)*2 {
		t := -b * 2 / cs
		sn = 1 / sqrt(t*t+1)
		cs = t * sn
	} else if abs(b) == 0 {
		cs = 1
		sn = 0
	} else {
		t := -cs / b / 2
		cs = 1 / sqrt(t*t+1)
		sn = t * cs
	}

	// The rotation above is for the major axis when a > c
	if df > 0 {
		cs, sn = -sn, cs
	}

	// Adding to zero turns a -0 component into +0, so axis aligned normals
	// (and the zero matrix sentinel) come out exactly as (0, ±1) or (±1, 0).
	return Vector[T]{0 - sn, 0 + cs}
}
