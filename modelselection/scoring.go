package modelselection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/metrics"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// Scoring metric identifiers. All scorers are oriented so that greater is
// better; regression error is exposed only as its negation so that argmax
// selection is correct for every metric.
const (
	ScoringAccuracy = "accuracy"
	ScoringROCAUC   = "roc_auc"
	ScoringNegRMSE  = "neg_root_mean_squared_error"
	ScoringR2       = "r2"
)

// ScoreFunc evaluates a fitted estimator on a feature matrix and labels.
type ScoreFunc func(est model.Estimator, X mat.Matrix, y *mat.VecDense) (float64, error)

// Scorer is a named, greater-is-better scoring metric.
type Scorer struct {
	Name  string
	Score ScoreFunc
}

// GetScorer resolves a scoring identifier.
func GetScorer(name string) (Scorer, error) {
	switch name {
	case ScoringAccuracy:
		return Scorer{Name: name, Score: scoreAccuracy}, nil
	case ScoringROCAUC:
		return Scorer{Name: name, Score: scoreROCAUC}, nil
	case ScoringNegRMSE:
		return Scorer{Name: name, Score: scoreNegRMSE}, nil
	case ScoringR2:
		return Scorer{Name: name, Score: scoreR2}, nil
	}
	return Scorer{}, errors.NewInvalidConfigurationError("scoring", "unknown scoring identifier", name)
}

func scoreAccuracy(est model.Estimator, X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := est.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// scoreROCAUC ranks samples by the estimator's continuous output: the
// decision function when available, otherwise the positive-class
// probability column.
func scoreROCAUC(est model.Estimator, X mat.Matrix, y *mat.VecDense) (float64, error) {
	if scorer, ok := est.(model.DecisionScorer); ok {
		dec, err := scorer.DecisionFunction(X)
		if err != nil {
			return 0, err
		}
		return metrics.AUC(y, dec)
	}

	if prob, ok := est.(model.ProbabilityPredictor); ok {
		proba, err := prob.PredictProba(X)
		if err != nil {
			return 0, err
		}
		r, c := proba.Dims()
		scores := mat.NewVecDense(r, nil)
		for i := 0; i < r; i++ {
			scores.SetVec(i, proba.At(i, c-1))
		}
		return metrics.AUC(y, scores)
	}

	return 0, errors.NewValueError("roc_auc", "estimator exposes neither a decision function nor probabilities")
}

func scoreNegRMSE(est model.Estimator, X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := est.Predict(X)
	if err != nil {
		return 0, err
	}
	rmse, err := metrics.RMSEMatrix(y, pred)
	if err != nil {
		return 0, err
	}
	return -rmse, nil
}

func scoreR2(est model.Estimator, X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := est.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}
