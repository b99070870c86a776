// Package model defines the capability interfaces shared by the svmlab
// estimators and the fitted-state bookkeeping they embed.
package model

// EstimatorState tracks whether a model has been fitted.
type EstimatorState int

const (
	// NotFitted means Fit has not completed on this model yet.
	NotFitted EstimatorState = iota
	// Fitted means the model holds learned parameters.
	Fitted
)

// BaseEstimator is embedded by every estimator to track its fit state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
