package modelselection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// RFECV chooses the feature count for recursive elimination by
// cross-validation: for every candidate count it runs RFE inside each fold
// and scores the held-out subset, then refits a final RFE on the full data
// with the count whose mean validation score is maximal. Ties prefer the
// smaller count.
type RFECV struct {
	model.BaseEstimator

	Estimator           model.Estimator
	Scoring             string
	Splitter            *KFold
	MinFeaturesToSelect int
	Step                int

	// FeatureCounts and MeanScores record the cross-validation curve,
	// aligned index by index, from the full feature count down to
	// MinFeaturesToSelect.
	FeatureCounts []int
	MeanScores    []float64

	nFeaturesSelected int
	inner             *RFE
}

// NewRFECV creates an RFECV wrapper. The minimum feature count defaults
// to 1 and the elimination step to 1.
func NewRFECV(est model.Estimator, scoring string, splitter *KFold) *RFECV {
	return &RFECV{
		Estimator:           est,
		Scoring:             scoring,
		Splitter:            splitter,
		MinFeaturesToSelect: 1,
		Step:                1,
	}
}

// Fit runs the feature-count search and fits the final eliminator.
func (r *RFECV) Fit(X mat.Matrix, y *mat.VecDense) error {
	_, nFeatures := X.Dims()

	if r.MinFeaturesToSelect < 1 || r.MinFeaturesToSelect > nFeatures {
		return errors.NewInvalidConfigurationError("min_features_to_select", "must be between 1 and the feature count", r.MinFeaturesToSelect)
	}
	if r.Step < 1 {
		return errors.NewInvalidConfigurationError("rfe_step", "must be at least 1", r.Step)
	}
	scorer, err := GetScorer(r.Scoring)
	if err != nil {
		return err
	}

	folds, err := r.Splitter.Split(X)
	if err != nil {
		return err
	}

	r.FeatureCounts = r.FeatureCounts[:0]
	r.MeanScores = r.MeanScores[:0]

	bestCount := 0
	bestScore := 0.0
	for count := nFeatures; ; {
		mean, err := r.scoreCount(X, y, folds, scorer, count)
		if err != nil {
			return err
		}
		r.FeatureCounts = append(r.FeatureCounts, count)
		r.MeanScores = append(r.MeanScores, mean)

		// >= so that, scanning from large counts down, ties resolve to
		// the smallest count.
		if bestCount == 0 || mean >= bestScore {
			bestCount = count
			bestScore = mean
		}

		if count == r.MinFeaturesToSelect {
			break
		}
		// The last step clamps to the minimum so the lower bound of the
		// search is always evaluated.
		count -= r.Step
		if count < r.MinFeaturesToSelect {
			count = r.MinFeaturesToSelect
		}
	}

	r.inner = NewRFE(r.Estimator, bestCount, r.Step)
	if err := r.inner.Fit(X, y); err != nil {
		return err
	}

	r.nFeaturesSelected = bestCount
	r.SetFitted()
	return nil
}

// scoreCount cross-validates one candidate feature count.
func (r *RFECV) scoreCount(X mat.Matrix, y *mat.VecDense, folds []CVFold, scorer Scorer, count int) (float64, error) {
	scores := make([]float64, len(folds))
	for foldIdx, fold := range folds {
		trainX, trainY := extractSubset(X, y, fold.TrainIndices)
		valX, valY := extractSubset(X, y, fold.TestIndices)

		rfe := NewRFE(r.Estimator, count, r.Step)
		if err := rfe.Fit(trainX, trainY); err != nil {
			return 0, errors.Wrapf(err, "fold %d elimination to %d features failed", foldIdx, count)
		}

		valScore, err := scorer.Score(rfe.FittedEstimator(), selectColumns(valX, rfe.SelectedFeatures()), valY)
		if err != nil {
			return 0, errors.Wrapf(err, "fold %d scoring (%s) failed", foldIdx, scorer.Name)
		}
		scores[foldIdx] = valScore
	}
	return meanOf(scores), nil
}

// Predict delegates to the final eliminator.
func (r *RFECV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("RFECV", "Predict")
	}
	return r.inner.Predict(X)
}

// NFeaturesSelected returns the chosen feature count.
func (r *RFECV) NFeaturesSelected() int {
	return r.nFeaturesSelected
}

// Support reports, per input feature, whether it survived elimination.
func (r *RFECV) Support() []bool {
	return r.inner.Support()
}

// Ranking reports the elimination ranking of the final eliminator.
func (r *RFECV) Ranking() []int {
	return r.inner.Ranking()
}

// OrderedFeatures lists feature indices from most to least important.
func (r *RFECV) OrderedFeatures() []int {
	return r.inner.OrderedFeatures()
}

// SelectedFeatures returns the selected feature indices in column order.
func (r *RFECV) SelectedFeatures() []int {
	return r.inner.SelectedFeatures()
}

// FittedEstimator returns the estimator fitted on the selected subset.
func (r *RFECV) FittedEstimator() model.Estimator {
	return r.inner.FittedEstimator()
}
