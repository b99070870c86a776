package workflow

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/dataset"
	"github.com/YuminosukeSato/svmlab/metrics"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// EvaluationRecord holds the held-out metrics of one run. The populated
// fields depend on the task: classification fills TestAccuracy and TestF1,
// regression fills the RMSE, R2 and concordance-index pairs. Immutable
// after Evaluate returns.
type EvaluationRecord struct {
	Task TaskKind

	TestAccuracy float64
	TestF1       float64

	TrainRMSE float64
	TestRMSE  float64
	TrainR2   float64
	TestR2    float64
	TrainCI   float64
	TestCI    float64
}

// Evaluate computes the task's metric set from point predictions of the
// selected model. The model is used read-only; no retraining happens, so
// repeated evaluation of the same model on the same split is reproducible.
func Evaluate(selected model.Predictor, split *dataset.Split, cfg Config) (*EvaluationRecord, error) {
	record := &EvaluationRecord{Task: cfg.Task}

	testPred, err := predict(selected, cfg.Model, "test", split.XTest)
	if err != nil {
		return nil, err
	}

	if cfg.Task == Classification {
		acc, err := metrics.AccuracyMatrix(split.YTest, testPred)
		if err != nil {
			return nil, err
		}
		f1Pred, err := firstColumn(testPred)
		if err != nil {
			return nil, err
		}
		f1, err := metrics.WeightedF1(split.YTest, f1Pred)
		if err != nil {
			return nil, err
		}
		record.TestAccuracy = acc
		record.TestF1 = f1
		return record, nil
	}

	trainPred, err := predict(selected, cfg.Model, "train", split.XTrain)
	if err != nil {
		return nil, err
	}

	if record.TrainRMSE, err = metrics.RMSEMatrix(split.YTrain, trainPred); err != nil {
		return nil, err
	}
	if record.TestRMSE, err = metrics.RMSEMatrix(split.YTest, testPred); err != nil {
		return nil, err
	}
	if record.TrainR2, err = metrics.R2ScoreMatrix(split.YTrain, trainPred); err != nil {
		return nil, err
	}
	if record.TestR2, err = metrics.R2ScoreMatrix(split.YTest, testPred); err != nil {
		return nil, err
	}

	trainCol, err := firstColumn(trainPred)
	if err != nil {
		return nil, err
	}
	testCol, err := firstColumn(testPred)
	if err != nil {
		return nil, err
	}
	if record.TrainCI, err = metrics.ConcordanceIndex(split.YTrain, trainCol); err != nil {
		return nil, err
	}
	if record.TestCI, err = metrics.ConcordanceIndex(split.YTest, testCol); err != nil {
		return nil, err
	}

	return record, nil
}

// predict wraps a prediction failure with the model name and the split it
// failed on.
func predict(selected model.Predictor, modelName, stage string, X mat.Matrix) (mat.Matrix, error) {
	pred, err := selected.Predict(X)
	if err != nil {
		return nil, errors.NewPredictionFailureError(modelName, stage, err)
	}
	return pred, nil
}

// firstColumn views a single-column prediction matrix as a vector.
func firstColumn(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if c < 1 {
		return nil, errors.NewValueError("workflow.Evaluate", "prediction matrix has no columns")
	}
	col := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		col.SetVec(i, m.At(i, 0))
	}
	return col, nil
}
