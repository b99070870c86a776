package modelselection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
	"github.com/YuminosukeSato/svmlab/svm"
)

// separable builds a linearly separable two-class dataset: class 0 around
// x=-2, class 1 around x=+2, with a second mildly informative feature.
func separable(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		offset := 0.1 * float64(i%5)
		if i%2 == 0 {
			X.Set(i, 0, -2-offset)
			X.Set(i, 1, -1+offset)
			y.SetVec(i, 0)
		} else {
			X.Set(i, 0, 2+offset)
			X.Set(i, 1, 1-offset)
			y.SetVec(i, 1)
		}
	}
	return X, y
}

func TestCrossValidateShapes(t *testing.T) {
	X, y := separable(20)

	result, err := CrossValidate(
		svm.NewSVC(),
		X, y,
		[]string{ScoringAccuracy, ScoringROCAUC},
		NewKFold(4, false, 0),
		CVOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, 4, result.NumFolds())
	require.Len(t, result.Estimators, 4)
	for i, est := range result.Estimators {
		require.NotNil(t, est, "fold %d", i)
	}

	for _, name := range []string{ScoringAccuracy, ScoringROCAUC} {
		require.Len(t, result.TrainScores[name], 4, name)
		require.Len(t, result.TestScores[name], 4, name)
		for i, score := range result.TestScores[name] {
			assert.GreaterOrEqual(t, score, 0.0, "%s fold %d", name, i)
			assert.LessOrEqual(t, score, 1.0, "%s fold %d", name, i)
		}
	}

	// A cleanly separable dataset should cross-validate well.
	assert.Greater(t, result.MeanTestScore(ScoringAccuracy), 0.8)
	assert.Greater(t, result.MeanTestScore(ScoringROCAUC), 0.8)
}

func TestCrossValidateParallelMatchesSequential(t *testing.T) {
	X, y := separable(20)
	scoring := []string{ScoringAccuracy, ScoringROCAUC}
	splitter := NewKFold(4, false, 0)

	seq, err := CrossValidate(svm.NewSVC(), X, y, scoring, splitter, CVOptions{})
	require.NoError(t, err)
	par, err := CrossValidate(svm.NewSVC(), X, y, scoring, splitter, CVOptions{Parallel: true})
	require.NoError(t, err)

	assert.Equal(t, seq.TrainScores, par.TrainScores)
	assert.Equal(t, seq.TestScores, par.TestScores)
}

func TestCrossValidateNonZeroOneLabels(t *testing.T) {
	X, y := separable(20)
	// Encode the classes as 1 and 2; ranking metrics must not depend on a
	// particular label encoding.
	for i := 0; i < y.Len(); i++ {
		y.SetVec(i, y.AtVec(i)+1)
	}

	result, err := CrossValidate(
		svm.NewSVC(),
		X, y,
		[]string{ScoringROCAUC, ScoringAccuracy},
		NewKFold(4, false, 0),
		CVOptions{},
	)
	require.NoError(t, err)

	assert.Greater(t, result.MeanTestScore(ScoringROCAUC), 0.8)
	assert.Greater(t, result.MeanTestScore(ScoringAccuracy), 0.8)
}

func TestCrossValidateUnknownScoring(t *testing.T) {
	X, y := separable(8)

	_, err := CrossValidate(svm.NewSVC(), X, y, []string{"f_beta"}, NewKFold(2, false, 0), CVOptions{})
	require.Error(t, err)

	var invalid *errors.InvalidConfigurationError
	assert.True(t, errors.As(err, &invalid))
}

func TestCrossValidateEmptyScoring(t *testing.T) {
	X, y := separable(8)

	_, err := CrossValidate(svm.NewSVC(), X, y, nil, NewKFold(2, false, 0), CVOptions{})
	require.Error(t, err)
}

func TestCrossValidateTooFewRows(t *testing.T) {
	X, y := separable(4)

	_, err := CrossValidate(svm.NewSVC(), X, y, []string{ScoringAccuracy}, NewKFold(5, false, 0), CVOptions{})
	require.Error(t, err)

	var insufficient *errors.InsufficientDataError
	assert.True(t, errors.As(err, &insufficient))
}

func TestBestFoldArgmax(t *testing.T) {
	cv := &CVResult{
		TestScores: map[string][]float64{
			ScoringROCAUC: {0.7, 0.95, 0.8, 0.95},
		},
	}
	// Argmax with ties broken by first occurrence.
	assert.Equal(t, 1, cv.BestFold(ScoringROCAUC))

	cv = &CVResult{
		TestScores: map[string][]float64{
			ScoringNegRMSE: {-1.5, -0.3, -0.9},
		},
	}
	// Negated error metric: the fold with the smallest error wins.
	assert.Equal(t, 1, cv.BestFold(ScoringNegRMSE))
}
