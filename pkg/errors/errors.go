// Package errors provides the error taxonomy for the svmlab training
// workflow. Every failure the workflow can surface maps onto one of three
// caller-visible conditions (invalid configuration, insufficient data,
// prediction failure) plus a small set of model-layer errors shared by the
// estimators. All constructors attach a stack trace via cockroachdb/errors,
// and each type implements zerolog's ObjectMarshaler for structured output.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Workflow error taxonomy
//
// ===========================================================================

// InvalidConfigurationError is returned when a hyperparameter configuration
// cannot be turned into an estimator: unknown kernel identifier, unknown
// class-weighting keyword, non-positive regularization strength, bad fold
// count, or a mode combination the workflow does not support.
type InvalidConfigurationError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("svmlab: invalid configuration: parameter '%s': %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured configuration failure to a zerolog event.
func (e *InvalidConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Interface("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "InvalidConfigurationError")
}

// NewInvalidConfigurationError creates a new InvalidConfigurationError with a stack trace.
func NewInvalidConfigurationError(param, reason string, value interface{}) error {
	err := &InvalidConfigurationError{Param: param, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// InsufficientDataError is returned when cross-validation is requested with
// more folds than there are training rows. It propagates to the caller
// unmodified; the workflow never retries with a smaller K.
type InsufficientDataError struct {
	Op    string
	Rows  int
	Folds int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("svmlab: %s: %d-fold cross-validation requires at least %d rows, got %d", e.Op, e.Folds, e.Folds, e.Rows)
}

// MarshalZerologObject adds the structured data-shortage information to a zerolog event.
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("folds", e.Folds).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError creates a new InsufficientDataError with a stack trace.
func NewInsufficientDataError(op string, rows, folds int) error {
	err := &InsufficientDataError{Op: op, Rows: rows, Folds: folds}
	return errors.WithStack(err)
}

// PredictionFailureError is returned when the selected model cannot produce
// predictions on a feature matrix, typically because the column count does
// not match what the model was fitted on.
type PredictionFailureError struct {
	ModelName string
	Stage     string // "train", "validation", "test"
	Err       error
}

func (e *PredictionFailureError) Error() string {
	return fmt.Sprintf("svmlab: %s: prediction failed on %s split: %v", e.ModelName, e.Stage, e.Err)
}

func (e *PredictionFailureError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured prediction failure to a zerolog event.
func (e *PredictionFailureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("stage", e.Stage).
		AnErr("cause", e.Err).
		Str("type", "PredictionFailureError")
}

// NewPredictionFailureError creates a new PredictionFailureError with a stack trace.
func NewPredictionFailureError(modelName, stage string, err error) error {
	predErr := &PredictionFailureError{ModelName: modelName, Stage: stage, Err: err}
	return errors.WithStack(predErr)
}

// ===========================================================================
//
//	Model-layer errors
//
// ===========================================================================

// NotFittedError is returned when Predict, PredictProba or DecisionFunction
// is called on a model before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("svmlab: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured fit-state error to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when the shape of an input matrix or vector
// does not match what an operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("svmlab: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured shape mismatch to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is unusable for reasons
// other than its shape, e.g. non-binary labels passed to a binary metric.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("svmlab: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors passthroughs
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix or vector is passed in.
	ErrEmptyData = New("empty data")
)
