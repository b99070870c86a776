package workflow

import (
	"math"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/dataset"
	"github.com/YuminosukeSato/svmlab/modelselection"
)

// TrainResult is the outcome of the training strategy: the selected model
// plus the metrics the strategy produced. Metric maps are keyed by scoring
// identifier; in elimination mode every value is a NaN sentinel because no
// held-out fold evaluation occurs.
type TrainResult struct {
	// Selected is the single model chosen as best: the fitted
	// feature-elimination selector in Mode A, the best-fold estimator in
	// Mode B.
	Selected model.Predictor

	// TrainMetrics and ValMetrics hold the mean train and validation
	// score across folds for each scoring identifier.
	TrainMetrics map[string]float64
	ValMetrics   map[string]float64

	// FoldTrainScores and FoldValScores keep the per-fold arrays behind
	// the means, for verbose reporting. Nil in Mode A.
	FoldTrainScores map[string][]float64
	FoldValScores   map[string][]float64

	// BestFold is the index of the winning fold in Mode B, -1 in Mode A.
	BestFold int

	// RankedFeatures lists feature names from most to least important.
	// Only set in Mode A.
	RankedFeatures []string
}

// scorings returns the two metrics a task cross-validates, primary first.
// The primary metric drives best-fold selection.
func scorings(task TaskKind) []string {
	if task == Classification {
		return []string{modelselection.ScoringROCAUC, modelselection.ScoringAccuracy}
	}
	return []string{modelselection.ScoringNegRMSE, modelselection.ScoringR2}
}

// PrimaryMetric returns the scoring identifier best-fold selection uses
// for a task: ROC-AUC for classification, negated RMSE for regression.
// Both are greater-is-better, so selection is a plain argmax either way.
func PrimaryMetric(task TaskKind) string {
	return scorings(task)[0]
}

// Train runs the configured training strategy on the training split.
//
// Mode A (cfg.RFE) wraps the estimator in recursive feature elimination:
// classification eliminates down to the configured feature count,
// regression searches the count by cross-validation under negated RMSE.
// The fitted selector becomes the selected model and all fold metrics are
// NaN sentinels.
//
// Mode B cross-validates over cfg.KFold folds, records per-fold train and
// validation scores for both task metrics, and selects the fold whose
// validation score on the primary metric is maximal, first occurrence
// winning ties.
func Train(backend LearningBackend, est model.Estimator, split *dataset.Split, cfg Config) (*TrainResult, error) {
	names := scorings(cfg.Task)

	if cfg.RFE {
		var (
			selector modelselection.Selector
			err      error
		)
		if cfg.Task == Classification {
			selector, err = backend.RFE(est, split.XTrain, split.YTrain, cfg.NFeaturesToSelect, cfg.RFEStep)
		} else {
			selector, err = backend.RFECV(est, split.XTrain, split.YTrain, modelselection.ScoringNegRMSE, cfg.KFold, cfg.RFEStep)
		}
		if err != nil {
			return nil, err
		}

		sentinels := func() map[string]float64 {
			m := make(map[string]float64, len(names))
			for _, name := range names {
				m[name] = math.NaN()
			}
			return m
		}
		return &TrainResult{
			Selected:       selector,
			TrainMetrics:   sentinels(),
			ValMetrics:     sentinels(),
			BestFold:       -1,
			RankedFeatures: rankFeatures(selector, split.Names()),
		}, nil
	}

	result, err := backend.CrossValidate(est, split.XTrain, split.YTrain, names, cfg.KFold, cfg.ParallelCV)
	if err != nil {
		return nil, err
	}

	trainMeans := make(map[string]float64, len(names))
	valMeans := make(map[string]float64, len(names))
	for _, name := range names {
		trainMeans[name] = result.MeanTrainScore(name)
		valMeans[name] = result.MeanTestScore(name)
	}

	best := result.BestFold(PrimaryMetric(cfg.Task))
	return &TrainResult{
		Selected:        result.Estimators[best],
		TrainMetrics:    trainMeans,
		ValMetrics:      valMeans,
		FoldTrainScores: result.TrainScores,
		FoldValScores:   result.TestScores,
		BestFold:        best,
	}, nil
}

// rankFeatures maps the selector's importance ordering to feature names.
func rankFeatures(selector modelselection.Selector, names []string) []string {
	ordered := selector.OrderedFeatures()
	ranked := make([]string, 0, len(ordered))
	for _, idx := range ordered {
		if idx < len(names) {
			ranked = append(ranked, names[idx])
		}
	}
	return ranked
}
