package workflow

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/svmlab/dataset"
	"github.com/YuminosukeSato/svmlab/pkg/log"
)

// RunResult bundles everything one training run produced, keyed by a
// fresh run identifier so log records and plot artifacts can be matched
// up downstream.
type RunResult struct {
	RunID  string
	Config Config
	Train  *TrainResult
	Eval   *EvaluationRecord
	Log    LogRecord
}

// Runner executes training runs end to end. Zero value is not usable;
// construct with NewRunner.
type Runner struct {
	backend LearningBackend
	logger  *slog.Logger
}

// NewRunner creates a runner on the default modelselection backend. A nil
// logger falls back to slog's default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{backend: NewBackend(), logger: logger}
}

// NewRunnerWithBackend creates a runner on a custom backend.
func NewRunnerWithBackend(backend LearningBackend, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{backend: backend, logger: logger}
}

// Run executes one training run: validate and build the estimator, train
// under the configured strategy, evaluate on the held-out split, and
// assemble the log record. Any stage failure aborts the run; partial
// metrics are not reported.
func (r *Runner) Run(cfg Config, split *dataset.Split) (*RunResult, error) {
	runID := uuid.NewString()
	logger := r.logger.With(slog.String("run_id", runID), slog.String("task", cfg.Task.String()))

	if err := split.Validate(); err != nil {
		logger.Error("invalid dataset split", log.ErrAttr(err))
		return nil, err
	}

	est, err := Build(cfg)
	if err != nil {
		logger.Error("estimator construction failed", log.ErrAttr(err))
		return nil, err
	}

	train, err := Train(r.backend, est, split, cfg)
	if err != nil {
		logger.Error("training failed", log.ErrAttr(err))
		return nil, err
	}
	r.logTraining(logger, cfg, train)

	eval, err := Evaluate(train.Selected, split, cfg)
	if err != nil {
		logger.Error("evaluation failed", log.ErrAttr(err))
		return nil, err
	}

	record := Assemble(cfg, split, train, eval)
	logger.Info("run complete",
		slog.String("model", cfg.Model),
		slog.Float64("c_param", cfg.C),
		slog.String("kernel", cfg.Kernel),
	)

	return &RunResult{
		RunID:  runID,
		Config: cfg,
		Train:  train,
		Eval:   eval,
		Log:    record,
	}, nil
}

// logTraining reports the per-mode training summary the dashboard shows:
// the feature ranking in elimination mode, the fold means and the winning
// fold in cross-validation mode.
func (r *Runner) logTraining(logger *slog.Logger, cfg Config, train *TrainResult) {
	if cfg.RFE {
		logger.Info("feature elimination complete",
			slog.Any("features_sorted_by_importance", train.RankedFeatures),
		)
		return
	}

	attrs := []any{
		slog.Int("k_fold", cfg.KFold),
		slog.Int("best_fold", train.BestFold),
	}
	for name, mean := range train.TrainMetrics {
		attrs = append(attrs, slog.Float64("mean_train_"+name, mean))
	}
	for name, mean := range train.ValMetrics {
		attrs = append(attrs, slog.Float64("mean_val_"+name, mean))
	}
	logger.Info("cross-validation complete", attrs...)
}
