// Package dataset defines the train/test split container handed to the
// training workflow by the upstream data provider.
package dataset

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// Split holds one training run's data: feature matrices, label vectors and
// the column metadata used in the run log. The provider is expected to have
// already aligned and cleaned the columns; Validate only enforces the shape
// invariants the workflow depends on.
type Split struct {
	XTrain *mat.Dense
	YTrain *mat.VecDense
	XTest  *mat.Dense
	YTest  *mat.VecDense

	// FeatureNames and LabelName label the columns of X and y for the run
	// log and the importance ranking. FeatureNames may be nil, in which
	// case generated names ("f0", "f1", ...) are used.
	FeatureNames []string
	LabelName    string
}

// NumFeatures returns the column count of the training matrix.
func (s *Split) NumFeatures() int {
	if s.XTrain == nil {
		return 0
	}
	_, c := s.XTrain.Dims()
	return c
}

// NumTrainRows returns the row count of the training matrix.
func (s *Split) NumTrainRows() int {
	if s.XTrain == nil {
		return 0
	}
	r, _ := s.XTrain.Dims()
	return r
}

// Validate checks the shape invariants: non-empty splits, matching row
// counts between X and y within each split, a consistent column count
// across splits, and (when provided) one feature name per column.
func (s *Split) Validate() error {
	if s.XTrain == nil || s.YTrain == nil || s.XTest == nil || s.YTest == nil {
		return errors.NewValueError("Split.Validate", "all of XTrain, YTrain, XTest, YTest must be set")
	}

	trainRows, trainCols := s.XTrain.Dims()
	testRows, testCols := s.XTest.Dims()

	if trainRows == 0 || trainCols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Split.Validate: training split")
	}
	if testRows == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Split.Validate: test split")
	}

	if s.YTrain.Len() != trainRows {
		return errors.NewDimensionError("Split.Validate: YTrain", trainRows, s.YTrain.Len(), 0)
	}
	if s.YTest.Len() != testRows {
		return errors.NewDimensionError("Split.Validate: YTest", testRows, s.YTest.Len(), 0)
	}
	if testCols != trainCols {
		return errors.NewDimensionError("Split.Validate: XTest", trainCols, testCols, 1)
	}

	if s.FeatureNames != nil && len(s.FeatureNames) != trainCols {
		return errors.NewDimensionError("Split.Validate: FeatureNames", trainCols, len(s.FeatureNames), 1)
	}

	return nil
}

// Names returns the feature names, generating "f<i>" placeholders when the
// provider did not supply any.
func (s *Split) Names() []string {
	if s.FeatureNames != nil {
		return s.FeatureNames
	}
	names := make([]string, s.NumFeatures())
	for i := range names {
		names[i] = "f" + strconv.Itoa(i)
	}
	return names
}
