package modelselection

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// CVResult maps each scoring identifier to its per-fold train and
// validation score arrays and keeps the fitted estimator of every fold.
// Index i of every slice refers to fold i in split order.
type CVResult struct {
	TrainScores map[string][]float64
	TestScores  map[string][]float64
	Estimators  []model.Estimator
}

// NumFolds returns the number of folds the result was computed over.
func (cv *CVResult) NumFolds() int {
	return len(cv.Estimators)
}

// MeanTrainScore returns the mean train score of a metric across folds.
func (cv *CVResult) MeanTrainScore(name string) float64 {
	return meanOf(cv.TrainScores[name])
}

// MeanTestScore returns the mean validation score of a metric across folds.
func (cv *CVResult) MeanTestScore(name string) float64 {
	return meanOf(cv.TestScores[name])
}

// BestFold returns the index of the fold whose validation score on the
// given metric is maximal. Ties are broken by first occurrence in fold
// order.
func (cv *CVResult) BestFold(name string) int {
	scores := cv.TestScores[name]
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// BestEstimator returns the fitted model of the best fold under the given
// metric.
func (cv *CVResult) BestEstimator(name string) model.Estimator {
	return cv.Estimators[cv.BestFold(name)]
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// CVOptions tunes CrossValidate.
type CVOptions struct {
	// Parallel fits the folds concurrently. Fold fitting is independent,
	// and scores land in per-fold slots, so the result is identical to a
	// sequential run.
	Parallel bool
}

// CrossValidate fits a clone of the estimator on each of the splitter's
// folds and scores every named metric on both the fold's training subset
// and its held-out validation subset.
func CrossValidate(est model.Estimator, X mat.Matrix, y *mat.VecDense, scoring []string, splitter *KFold, opts CVOptions) (*CVResult, error) {
	if len(scoring) == 0 {
		return nil, errors.NewInvalidConfigurationError("scoring", "at least one scoring identifier is required", scoring)
	}
	scorers := make([]Scorer, len(scoring))
	for i, name := range scoring {
		scorer, err := GetScorer(name)
		if err != nil {
			return nil, err
		}
		scorers[i] = scorer
	}

	folds, err := splitter.Split(X)
	if err != nil {
		return nil, err
	}

	result := &CVResult{
		TrainScores: make(map[string][]float64, len(scoring)),
		TestScores:  make(map[string][]float64, len(scoring)),
		Estimators:  make([]model.Estimator, len(folds)),
	}
	for _, name := range scoring {
		result.TrainScores[name] = make([]float64, len(folds))
		result.TestScores[name] = make([]float64, len(folds))
	}

	fitFold := func(foldIdx int) error {
		fold := folds[foldIdx]
		trainX, trainY := extractSubset(X, y, fold.TrainIndices)
		valX, valY := extractSubset(X, y, fold.TestIndices)

		foldEst := est.Clone()
		if err := foldEst.Fit(trainX, trainY); err != nil {
			return errors.Wrapf(err, "fold %d training failed", foldIdx)
		}
		result.Estimators[foldIdx] = foldEst

		for _, scorer := range scorers {
			trainScore, err := scorer.Score(foldEst, trainX, trainY)
			if err != nil {
				return errors.Wrapf(err, "fold %d train scoring (%s) failed", foldIdx, scorer.Name)
			}
			valScore, err := scorer.Score(foldEst, valX, valY)
			if err != nil {
				return errors.Wrapf(err, "fold %d validation scoring (%s) failed", foldIdx, scorer.Name)
			}
			result.TrainScores[scorer.Name][foldIdx] = trainScore
			result.TestScores[scorer.Name][foldIdx] = valScore
		}
		return nil
	}

	if opts.Parallel {
		var g errgroup.Group
		for foldIdx := range folds {
			g.Go(func() error { return fitFold(foldIdx) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for foldIdx := range folds {
			if err := fitFold(foldIdx); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
