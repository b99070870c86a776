package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/dataset"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// failingPredictor always reports a shape mismatch.
type failingPredictor struct{}

func (failingPredictor) Predict(X mat.Matrix) (mat.Matrix, error) {
	_, c := X.Dims()
	return nil, errors.NewDimensionError("stub.Predict", 2, c+1, 1)
}

// regressionSplit builds a split whose first feature column equals the
// target, so colPredictor is a perfect regressor.
func regressionSplit() *dataset.Split {
	build := func(n int) (*mat.Dense, *mat.VecDense) {
		X := mat.NewDense(n, 2, nil)
		y := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			v := float64(i) + 1
			X.Set(i, 0, v)
			X.Set(i, 1, -v)
			y.SetVec(i, v)
		}
		return X, y
	}
	XTrain, yTrain := build(8)
	XTest, yTest := build(5)
	return &dataset.Split{
		XTrain: XTrain, YTrain: yTrain,
		XTest: XTest, YTest: yTest,
		LabelName: "target",
	}
}

func TestEvaluateClassification(t *testing.T) {
	split := classificationSplit(8)
	pred := &colPredictor{}

	record, err := Evaluate(pred, split, DefaultClassifierConfig())
	require.NoError(t, err)

	assert.Equal(t, Classification, record.Task)
	assert.Equal(t, 1.0, record.TestAccuracy)
	assert.Equal(t, 1.0, record.TestF1)

	// Regression fields stay zero-valued for a classification run.
	assert.Zero(t, record.TestRMSE)
	assert.Zero(t, record.TrainCI)
}

func TestEvaluateRegression(t *testing.T) {
	split := regressionSplit()
	pred := &colPredictor{}

	record, err := Evaluate(pred, split, DefaultRegressorConfig())
	require.NoError(t, err)

	assert.Equal(t, Regression, record.Task)
	assert.InDelta(t, 0.0, record.TrainRMSE, 1e-12)
	assert.InDelta(t, 0.0, record.TestRMSE, 1e-12)
	assert.InDelta(t, 1.0, record.TrainR2, 1e-12)
	assert.InDelta(t, 1.0, record.TestR2, 1e-12)
	assert.InDelta(t, 1.0, record.TrainCI, 1e-12)
	assert.InDelta(t, 1.0, record.TestCI, 1e-12)
}

func TestEvaluateIsReproducible(t *testing.T) {
	split := regressionSplit()
	pred := &colPredictor{}
	cfg := DefaultRegressorConfig()

	first, err := Evaluate(pred, split, cfg)
	require.NoError(t, err)
	second, err := Evaluate(pred, split, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluateWrapsPredictionFailure(t *testing.T) {
	split := classificationSplit(8)

	_, err := Evaluate(failingPredictor{}, split, DefaultClassifierConfig())
	require.Error(t, err)

	var failure *errors.PredictionFailureError
	require.True(t, errors.As(err, &failure))

	// The underlying shape mismatch stays reachable through Unwrap.
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
