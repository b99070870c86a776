// Package workflow orchestrates a single training run: it builds an
// estimator from an immutable configuration, trains it under one of two
// mutually exclusive strategies (recursive feature elimination or k-fold
// cross-validation with best-fold selection), evaluates the selected model
// on the held-out split, and assembles a flat log record for persistence
// and comparison across runs.
package workflow

import (
	"github.com/YuminosukeSato/svmlab/pkg/errors"
	"github.com/YuminosukeSato/svmlab/svm"
)

// TaskKind selects between the two supported learning tasks. It drives
// both the metric set and the log record schema.
type TaskKind int

const (
	Classification TaskKind = iota
	Regression
)

// String returns the display name of the task.
func (t TaskKind) String() string {
	switch t {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	}
	return "unknown"
}

// Config is the immutable configuration of one training run. It is read
// by the factory and the training strategy and never mutated after the
// run starts.
type Config struct {
	Task  TaskKind
	Model string

	// C is the regularization strength; CGrid is the sweep the dashboard
	// offers for it. The run itself uses only C.
	C     float64
	CGrid []float64

	Kernel      string
	ClassWeight string

	// RFE selects Mode A (recursive feature elimination) instead of
	// Mode B (k-fold cross-validation).
	RFE               bool
	NFeaturesToSelect int
	RFEStep           int

	KFold int

	// ParallelCV fits cross-validation folds concurrently. Off by
	// default so fold order, and the best-fold tie-break, stay
	// deterministic.
	ParallelCV bool
}

// defaultCGrid is the hyperparameter sweep offered for C.
var defaultCGrid = []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 100, 1000, 10000}

// DefaultClassifierConfig returns the configuration the dashboard starts
// a classification run from.
func DefaultClassifierConfig() Config {
	return Config{
		Task:              Classification,
		Model:             "SVC",
		C:                 1,
		CGrid:             append([]float64(nil), defaultCGrid...),
		Kernel:            "linear",
		ClassWeight:       "balanced",
		NFeaturesToSelect: 1,
		RFEStep:           1,
		KFold:             5,
	}
}

// DefaultRegressorConfig returns the configuration the dashboard starts
// a regression run from.
func DefaultRegressorConfig() Config {
	return Config{
		Task:              Regression,
		Model:             "SVR",
		C:                 1,
		CGrid:             append([]float64(nil), defaultCGrid...),
		Kernel:            "linear",
		NFeaturesToSelect: 1,
		RFEStep:           1,
		KFold:             5,
	}
}

// Validate checks the configuration before a run starts. Every violation
// is an InvalidConfigurationError.
func (c Config) Validate() error {
	if c.Task != Classification && c.Task != Regression {
		return errors.NewInvalidConfigurationError("task", "unknown task kind", int(c.Task))
	}
	if c.C <= 0 {
		return errors.NewInvalidConfigurationError("c_param", "must be positive", c.C)
	}
	for _, v := range c.CGrid {
		if v <= 0 {
			return errors.NewInvalidConfigurationError("c_param_list", "sweep values must be positive", v)
		}
	}
	if _, err := svm.ParseKernel(c.Kernel); err != nil {
		return err
	}
	if c.Task == Classification {
		if _, err := svm.ParseClassWeight(c.ClassWeight); err != nil {
			return err
		}
	}
	if c.KFold < 2 {
		return errors.NewInvalidConfigurationError("k_fold", "must be at least 2", c.KFold)
	}
	if c.RFE {
		if c.NFeaturesToSelect < 1 {
			return errors.NewInvalidConfigurationError("n_features_to_select", "must be at least 1", c.NFeaturesToSelect)
		}
		if c.RFEStep < 1 {
			return errors.NewInvalidConfigurationError("rfe_step", "must be at least 1", c.RFEStep)
		}
	}
	return nil
}
