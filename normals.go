// PCA normal estimation for planar point clouds.
//
// Normals are fitted to each point's k nearest neighbors by weighted principal
// component analysis: the normal is the eigenvector of the neighborhood's
// covariance with the smaller eigenvalue. Estimated normals have arbitrary
// sign. An optional refinement pass re-estimates each normal from the
// neighbors whose normals agree with it in sign, which makes signs locally
// consistent (but not globally so).
//
// This package works in float64 and returns errors. The advanced package has
// the same operations for any float type, panicking on bad input instead.
package normals

import (
	"github.com/osuushi/normals/advanced"
	"github.com/osuushi/normals/index"
)

type Point = advanced.Point[float64]
type Vector = advanced.Vector[float64]
type SpatialIndex = advanced.SpatialIndex[float64]
type Options = advanced.Options

// Errors reported for bad input. Check with errors.Is.
var (
	ErrEmptyPointSet  = advanced.ErrEmptyPointSet
	ErrLengthMismatch = advanced.ErrLengthMismatch
	ErrNonPositiveK   = advanced.ErrNonPositiveK
	ErrEmptyIndex     = advanced.ErrEmptyIndex
)

// Estimate the normal of a set of points with per-point weights. Fails if
// points is empty or the lengths differ. A zero total weight gives (0, 1).
func EstimateWeightedNormal(points []Point, weights []float64) (result Vector, err error) {
	defer recoverInto(&err)
	return advanced.EstimateWeightedNormal(points, weights), nil
}

// Estimate the normal of a set of equally weighted points.
func EstimateNormal(points []Point) (result Vector, err error) {
	defer recoverInto(&err)
	return advanced.EstimateNormal(points), nil
}

// Estimate a normal for every point in the index from its k nearest
// neighbors. Fails if the index is empty or k is not positive. Signs are
// arbitrary.
func EstimateNormals(idx SpatialIndex, k int) (result []Vector, err error) {
	return EstimateNormalsWithOptions(idx, k, Options{})
}

// Like EstimateNormals, but split across opts.Workers goroutines. The result
// is the same.
func EstimateNormalsWithOptions(idx SpatialIndex, k int, opts Options) (result []Vector, err error) {
	defer recoverInto(&err)
	return advanced.EstimateNormalsWithOptions(idx, k, opts), nil
}

// Make the signs of normals locally consistent with one refinement sweep. See
// advanced.RefineOrientation. Fails if k is not positive or normals doesn't
// have one entry per indexed point.
func RefineOrientation(idx SpatialIndex, k int, normals []Vector) error {
	return RefineOrientationWithOptions(idx, k, normals, Options{})
}

// Like RefineOrientation, but split across opts.Workers goroutines. The
// result is the same.
func RefineOrientationWithOptions(idx SpatialIndex, k int, normals []Vector, opts Options) (err error) {
	defer recoverInto(&err)
	advanced.RefineOrientationWithOptions(idx, k, normals, opts)
	return nil
}

// Build a k-d tree over points and estimate their normals.
func EstimateNormalsFromPoints(points []Point, k int) ([]Vector, error) {
	return EstimateNormals(index.NewKDTree(points), k)
}

// Build a k-d tree over points and refine the orientation of normals, which
// the caller already has, once. normals is overwritten in place.
func RefineOrientationFromPoints(points []Point, k int, normals []Vector) error {
	return RefineOrientation(index.NewKDTree(points), k, normals)
}

// Build a k-d tree over points, estimate their normals, and refine their
// orientation once. Use RefineOrientationFromPoints to refine normals you
// already have instead.
func OrientationAwareEstimateNormals(points []Point, k int) ([]Vector, error) {
	idx := index.NewKDTree(points)
	normals, err := EstimateNormals(idx, k)
	if err != nil {
		return nil, err
	}
	if err := RefineOrientation(idx, k, normals); err != nil {
		return nil, err
	}
	return normals, nil
}

func recoverInto(err *error) {
	if recoveredErr := advanced.HandleEstimatePanicRecover(recover()); recoveredErr != nil {
		*err = recoveredErr
	}
}
