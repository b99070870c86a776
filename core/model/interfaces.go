package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for trainable models.
type Fitter interface {
	// Fit trains the model on X (n_samples x n_features) and y (n_samples x 1).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce point predictions.
type Predictor interface {
	// Predict returns predictions as an n_samples x 1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Cloner produces a fresh, unfitted copy with identical hyperparameters.
// Cross-validation and feature elimination refit clones so the original
// estimator passed in by the caller is never mutated.
type Cloner interface {
	Clone() Estimator
}

// Estimator is the minimal surface the model-selection machinery needs.
type Estimator interface {
	Fitter
	Predictor
	Cloner
}

// ProbabilityPredictor is implemented by classifiers that can emit
// per-class probability estimates.
type ProbabilityPredictor interface {
	// PredictProba returns an n_samples x n_classes matrix of probabilities,
	// columns ordered like Classes().
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// DecisionScorer is implemented by classifiers that expose a continuous
// decision value per sample. Ranking metrics such as ROC-AUC prefer these
// raw scores over thresholded labels.
type DecisionScorer interface {
	DecisionFunction(X mat.Matrix) (*mat.VecDense, error)
}

// Classifier combines the capabilities of a binary classifier.
type Classifier interface {
	Estimator
	ProbabilityPredictor
	DecisionScorer

	// Classes returns the sorted class labels seen during fitting.
	Classes() []float64
}

// FeatureWeighter is implemented by estimators whose fitted parameters
// induce a per-feature importance, e.g. |coefficient| for linear kernels.
// Recursive feature elimination requires this capability.
type FeatureWeighter interface {
	// FeatureWeights returns one non-negative importance per input feature.
	FeatureWeights() ([]float64, error)
}
