package workflow

import (
	"math"

	"github.com/YuminosukeSato/svmlab/dataset"
	"github.com/YuminosukeSato/svmlab/modelselection"
)

// LogRecord is the flat per-run record handed to persistence and the
// reporting layer: one row per run, field names fixed per task kind.
type LogRecord map[string]interface{}

// Assemble packages configuration, training and evaluation metrics into
// the run's log record. Pure function of its inputs; the feature ranking
// is included only when elimination mode produced one.
//
// The regression schema mirrors the dashboard's historical quirks: the
// accuracy columns carry RMSE values, class_weight is a NaN placeholder,
// and the train ROC-AUC column keeps its misspelled name so existing run
// logs stay comparable.
func Assemble(cfg Config, split *dataset.Split, train *TrainResult, eval *EvaluationRecord) LogRecord {
	record := LogRecord{
		"model":          cfg.Model,
		"input_features": split.Names(),
		"label_feature":  split.LabelName,
		"c_param":        cfg.C,
		"kernel":         cfg.Kernel,
	}

	if cfg.Task == Classification {
		record["class_weight"] = cfg.ClassWeight
		record["train_acc"] = train.TrainMetrics[modelselection.ScoringAccuracy]
		record["train_roc_acu"] = train.TrainMetrics[modelselection.ScoringROCAUC]
		record["val_acc"] = train.ValMetrics[modelselection.ScoringAccuracy]
		record["val_roc_auc"] = train.ValMetrics[modelselection.ScoringROCAUC]
		record["test_acc"] = eval.TestAccuracy
		record["test_f1"] = eval.TestF1
	} else {
		record["class_weight"] = math.NaN()
		record["train_acc"] = eval.TrainRMSE
		record["train_r2"] = eval.TrainR2
		record["val_acc"] = train.ValMetrics[modelselection.ScoringNegRMSE]
		record["val_r2"] = train.ValMetrics[modelselection.ScoringR2]
		record["test_acc"] = eval.TestRMSE
		record["test_r2"] = eval.TestR2
		record["train_ci"] = eval.TrainCI
		record["test_ci"] = eval.TestCI
	}

	if train.RankedFeatures != nil {
		record["features_sorted_by_importance"] = train.RankedFeatures
	}
	return record
}
