package svm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// line builds a noiseless linear dataset y = 2x + 1.
func line() (*mat.Dense, *mat.Dense) {
	n := 10
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := float64(i)
		X.Set(i, 0, x)
		y.Set(i, 0, 2*x+1)
	}
	return X, y
}

func TestSVRLinearFit(t *testing.T) {
	X, y := line()

	reg := NewSVR(WithSVRC(10), WithSVRMaxIter(5000))
	require.NoError(t, reg.Fit(X, y))
	require.True(t, reg.IsFitted())

	pred, err := reg.Predict(X)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.InDelta(t, y.At(i, 0), pred.At(i, 0), 1.0, "sample %d", i)
	}

	r2, err := reg.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, r2, 0.9)
}

func TestSVRDeterministicFit(t *testing.T) {
	X, y := line()

	a := NewSVR(WithSVRC(10))
	b := a.Clone().(*SVR)
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	predA, err := a.Predict(X)
	require.NoError(t, err)
	predB, err := b.Predict(X)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.Equal(t, predA.At(i, 0), predB.At(i, 0), "sample %d", i)
	}
}

func TestSVRRBFTrend(t *testing.T) {
	X, y := line()

	reg := NewSVR(WithSVRKernel(KernelRBF), WithSVRC(10))
	require.NoError(t, reg.Fit(X, y))

	pred, err := reg.Predict(X)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.False(t, math.IsNaN(pred.At(i, 0)))
		require.False(t, math.IsInf(pred.At(i, 0), 0))
	}
	assert.Greater(t, pred.At(9, 0), pred.At(0, 0), "predictions should follow the increasing trend")
}

func TestSVRCloneIsUnfitted(t *testing.T) {
	X, y := line()

	reg := NewSVR(WithSVRC(5), WithEpsilon(0.2))
	require.NoError(t, reg.Fit(X, y))

	clone := reg.Clone().(*SVR)
	assert.False(t, clone.IsFitted())
	assert.Equal(t, 5.0, clone.C())
	assert.Equal(t, 0.2, clone.epsilon)
}

func TestSVRNotFitted(t *testing.T) {
	_, err := NewSVR().Predict(mat.NewDense(1, 1, []float64{0}))
	require.Error(t, err)

	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}

func TestSVRPredictDimensionMismatch(t *testing.T) {
	X, y := line()

	reg := NewSVR()
	require.NoError(t, reg.Fit(X, y))

	_, err := reg.Predict(mat.NewDense(2, 3, nil))
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestSVRFeatureWeights(t *testing.T) {
	// Feature 0 drives the target, feature 1 is constant.
	n := 10
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := float64(i)
		X.Set(i, 0, x)
		X.Set(i, 1, 0)
		y.Set(i, 0, 3*x)
	}

	reg := NewSVR(WithSVRC(10), WithSVRMaxIter(5000))
	require.NoError(t, reg.Fit(X, y))

	weights, err := reg.FeatureWeights()
	require.NoError(t, err)
	require.Len(t, weights, 2)
	assert.Greater(t, weights[0], weights[1])
}
