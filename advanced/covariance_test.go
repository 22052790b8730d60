package advanced

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedCovariance(t *testing.T) {
	points := []Point[float64]{{0, 0}, {2, 0}, {0, 4}, {2, 4}}

	t.Run("uniform", func(t *testing.T) {
		cov, ok := WeightedCovariance(points, []float64{1, 1, 1, 1})
		require.True(t, ok)
		assert.Equal(t, Point[float64]{1, 2}, cov.Centroid)
		assert.Equal(t, 1.0, cov.A)
		assert.Equal(t, 0.0, cov.B)
		assert.Equal(t, 4.0, cov.C)
		assert.Equal(t, 4.0, cov.TotalWeight)
	})

	t.Run("scaling weights changes nothing", func(t *testing.T) {
		cov, ok := WeightedCovariance(points, []float64{0.5, 0.5, 0.5, 0.5})
		require.True(t, ok)
		assert.Equal(t, Point[float64]{1, 2}, cov.Centroid)
		assert.Equal(t, 1.0, cov.A)
		assert.Equal(t, 4.0, cov.C)
		assert.Equal(t, 2.0, cov.TotalWeight)
	})

	t.Run("weighted", func(t *testing.T) {
		// Only the two points on the diagonal count
		cov, ok := WeightedCovariance(points, []float64{1, 0, 0, 1})
		require.True(t, ok)
		assert.Equal(t, Point[float64]{1, 2}, cov.Centroid)
		assert.Equal(t, 1.0, cov.A)
		assert.Equal(t, 2.0, cov.B)
		assert.Equal(t, 4.0, cov.C)
	})

	t.Run("zero total weight", func(t *testing.T) {
		_, ok := WeightedCovariance(points, []float64{0, 0, 0, 0})
		assert.False(t, ok)
	})
}

func TestWeightedCovariance_Preconditions(t *testing.T) {
	err := catch(func() {
		WeightedCovariance[float64](nil, nil)
	})
	assert.True(t, errors.Is(err, ErrEmptyPointSet))

	err = catch(func() {
		WeightedCovariance([]Point[float64]{{1, 1}, {2, 2}}, []float64{1})
	})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	assert.Contains(t, err.Error(), "2 points, 1 weights")
}
