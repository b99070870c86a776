package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// Accuracy computes the fraction of exactly matching labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// WeightedF1 computes the F1 score per class and averages the scores
// weighted by each class's support in yTrue. A class whose precision and
// recall are both zero contributes an F1 of zero.
func WeightedF1(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("WeightedF1", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	classes := uniqueValues(yTrue)

	var weighted float64
	for _, cls := range classes {
		var tp, fp, fn, support float64
		for i := 0; i < n; i++ {
			isTrue := yTrue.AtVec(i) == cls
			isPred := yPred.AtVec(i) == cls
			if isTrue {
				support++
			}
			switch {
			case isTrue && isPred:
				tp++
			case !isTrue && isPred:
				fp++
			case isTrue && !isPred:
				fn++
			}
		}

		var f1 float64
		if 2*tp+fp+fn > 0 {
			f1 = 2 * tp / (2*tp + fp + fn)
		}
		weighted += f1 * support / float64(n)
	}

	return weighted, nil
}

// AUC computes the area under the ROC curve for binary labels and
// continuous scores. Labels may take any two distinct values; the larger
// one is the positive class. Tied scores contribute half a concordant
// pair. When only one class is present the metric is undefined and 0.5
// is returned.
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}

	classes := uniqueValues(yTrue)
	if len(classes) > 2 {
		return 0, errors.NewValueError("AUC", "labels must take at most two distinct values")
	}
	if len(classes) < 2 {
		return 0.5, nil
	}
	positive := classes[1]

	var nPos, nNeg int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == positive {
			nPos++
		} else {
			nNeg++
		}
	}

	// Mann-Whitney U statistic over all positive/negative pairs.
	var u float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != positive {
			continue
		}
		si := yScore.AtVec(i)
		for j := 0; j < n; j++ {
			if yTrue.AtVec(j) == positive {
				continue
			}
			sj := yScore.AtVec(j)
			switch {
			case si > sj:
				u += 1
			case si == sj:
				u += 0.5
			}
		}
	}

	return u / float64(nPos*nNeg), nil
}

// AccuracyMatrix computes accuracy on the first column of matrix inputs.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := firstColumn("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := firstColumn("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(tv, pv)
}

// AUCMatrix computes ROC-AUC on the first column of matrix inputs.
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	tv, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	sv, err := firstColumn("AUCMatrix", yScore)
	if err != nil {
		return 0, err
	}
	return AUC(tv, sv)
}

// uniqueValues returns the sorted distinct values of v.
func uniqueValues(v *mat.VecDense) []float64 {
	seen := make(map[float64]struct{})
	for i := 0; i < v.Len(); i++ {
		seen[v.AtVec(i)] = struct{}{}
	}
	values := make([]float64, 0, len(seen))
	for val := range seen {
		values = append(values, val)
	}
	sort.Float64s(values)
	return values
}
