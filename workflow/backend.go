package workflow

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/modelselection"
)

// LearningBackend abstracts the delegated model-selection routines so the
// workflow can run against a deterministic fake in tests. The default
// implementation delegates to the modelselection package.
type LearningBackend interface {
	// CrossValidate fits the estimator on each of k folds and scores the
	// named metrics on both fold subsets.
	CrossValidate(est model.Estimator, X mat.Matrix, y *mat.VecDense, scoring []string, k int, parallel bool) (*modelselection.CVResult, error)

	// RFE eliminates features down to a fixed count and returns the
	// fitted selector.
	RFE(est model.Estimator, X mat.Matrix, y *mat.VecDense, nFeaturesToSelect, step int) (modelselection.Selector, error)

	// RFECV chooses the feature count by cross-validation under the named
	// scoring metric and returns the fitted selector.
	RFECV(est model.Estimator, X mat.Matrix, y *mat.VecDense, scoring string, k, step int) (modelselection.Selector, error)
}

type defaultBackend struct{}

// NewBackend returns the backend backed by the modelselection package.
func NewBackend() LearningBackend {
	return defaultBackend{}
}

func (defaultBackend) CrossValidate(est model.Estimator, X mat.Matrix, y *mat.VecDense, scoring []string, k int, parallel bool) (*modelselection.CVResult, error) {
	return modelselection.CrossValidate(est, X, y, scoring, modelselection.NewKFold(k, false, 0), modelselection.CVOptions{Parallel: parallel})
}

func (defaultBackend) RFE(est model.Estimator, X mat.Matrix, y *mat.VecDense, nFeaturesToSelect, step int) (modelselection.Selector, error) {
	rfe := modelselection.NewRFE(est, nFeaturesToSelect, step)
	if err := rfe.Fit(X, y); err != nil {
		return nil, err
	}
	return rfe, nil
}

func (defaultBackend) RFECV(est model.Estimator, X mat.Matrix, y *mat.VecDense, scoring string, k, step int) (modelselection.Selector, error) {
	rfecv := modelselection.NewRFECV(est, scoring, modelselection.NewKFold(k, false, 0))
	rfecv.Step = step
	if err := rfecv.Fit(X, y); err != nil {
		return nil, err
	}
	return rfecv, nil
}
