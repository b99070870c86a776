package workflow

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/dataset"
	"github.com/YuminosukeSato/svmlab/modelselection"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// separableSplit builds a linearly separable classification split.
func separableSplit(trainRows int) *dataset.Split {
	build := func(n int) (*mat.Dense, *mat.VecDense) {
		X := mat.NewDense(n, 2, nil)
		y := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			offset := 0.1 * float64(i%5)
			if i%2 == 0 {
				X.Set(i, 0, -2-offset)
				X.Set(i, 1, -1+offset)
			} else {
				X.Set(i, 0, 2+offset)
				X.Set(i, 1, 1-offset)
				y.SetVec(i, 1)
			}
		}
		return X, y
	}
	XTrain, yTrain := build(trainRows)
	XTest, yTest := build(8)
	return &dataset.Split{
		XTrain: XTrain, YTrain: yTrain,
		XTest: XTest, YTest: yTest,
		FeatureNames: []string{"x1", "x2"},
		LabelName:    "class",
	}
}

func TestRunnerCrossValidationRun(t *testing.T) {
	runner := NewRunner(quietLogger())

	cfg := DefaultClassifierConfig()
	cfg.KFold = 4

	result, err := runner.Run(cfg, separableSplit(20))
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	require.NotNil(t, result.Train)
	require.NotNil(t, result.Eval)

	assert.GreaterOrEqual(t, result.Train.BestFold, 0)
	assert.Less(t, result.Train.BestFold, 4)
	assert.False(t, math.IsNaN(result.Train.ValMetrics[modelselection.ScoringROCAUC]))

	assert.Greater(t, result.Eval.TestAccuracy, 0.8)
	assert.Equal(t, result.Eval.TestAccuracy, result.Log["test_acc"])
	assert.NotContains(t, result.Log, "features_sorted_by_importance")
}

func TestRunnerEliminationRun(t *testing.T) {
	runner := NewRunner(quietLogger())

	cfg := DefaultClassifierConfig()
	cfg.RFE = true

	result, err := runner.Run(cfg, separableSplit(20))
	require.NoError(t, err)

	assert.True(t, math.IsNaN(result.Train.ValMetrics[modelselection.ScoringROCAUC]))
	assert.Equal(t, -1, result.Train.BestFold)

	ranking, ok := result.Log["features_sorted_by_importance"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"x1", "x2"}, ranking)
}

func TestRunnerRegressionRun(t *testing.T) {
	runner := NewRunner(quietLogger())

	cfg := DefaultRegressorConfig()
	cfg.C = 10
	cfg.KFold = 4

	split := regressionSplitLarge(20)
	result, err := runner.Run(cfg, split)
	require.NoError(t, err)

	assert.Contains(t, result.Log, "train_ci")
	assert.Contains(t, result.Log, "test_r2")
	assert.NotContains(t, result.Log, "test_f1")

	weight, ok := result.Log["class_weight"].(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(weight))
}

// regressionSplitLarge builds a noiseless linear regression split.
func regressionSplitLarge(trainRows int) *dataset.Split {
	build := func(n int) (*mat.Dense, *mat.VecDense) {
		X := mat.NewDense(n, 1, nil)
		y := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			x := float64(i)
			X.Set(i, 0, x)
			y.SetVec(i, 2*x+1)
		}
		return X, y
	}
	XTrain, yTrain := build(trainRows)
	XTest, yTest := build(10)
	return &dataset.Split{
		XTrain: XTrain, YTrain: yTrain,
		XTest: XTest, YTest: yTest,
		LabelName: "target",
	}
}

func TestRunnerInsufficientData(t *testing.T) {
	runner := NewRunner(quietLogger())

	cfg := DefaultClassifierConfig()
	cfg.KFold = 30

	_, err := runner.Run(cfg, separableSplit(20))
	require.Error(t, err)

	var insufficient *errors.InsufficientDataError
	assert.True(t, errors.As(err, &insufficient))
}

func TestRunnerInvalidSplit(t *testing.T) {
	runner := NewRunner(quietLogger())

	split := separableSplit(20)
	split.XTest = nil

	_, err := runner.Run(DefaultClassifierConfig(), split)
	require.Error(t, err)
}

func TestRunnerInvalidConfiguration(t *testing.T) {
	runner := NewRunner(quietLogger())

	cfg := DefaultClassifierConfig()
	cfg.Kernel = "poly"

	_, err := runner.Run(cfg, separableSplit(20))
	require.Error(t, err)

	var invalid *errors.InvalidConfigurationError
	assert.True(t, errors.As(err, &invalid))
}
