package svm

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/metrics"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// SVC is a binary support-vector classifier. The linear kernel is solved in
// the primal with a deterministic full-batch subgradient method; the RBF
// kernel uses a deterministic kernelized Pegasos pass over the samples.
// Probability estimates come from Platt scaling fitted on the training
// decision values.
type SVC struct {
	model.BaseEstimator

	// Hyperparameters
	c           float64
	kernel      Kernel
	classWeight ClassWeight
	gamma       float64 // 0 selects the "scale" heuristic at fit time
	maxIter     int
	tol         float64

	// Learned parameters
	classes     []float64
	coef        []float64 // linear kernel weight vector
	intercept   float64
	supportX    [][]float64 // rbf kernel retained training rows
	dualCoef    []float64   // rbf kernel dual coefficients
	gammaFitted float64
	plattA      float64
	plattB      float64
	nFeatures   int
}

// SVCOption is a functional option for SVC.
type SVCOption func(*SVC)

// NewSVC creates an untrained support-vector classifier. Defaults follow
// the dashboard configuration: C=1, linear kernel, balanced class weights.
func NewSVC(opts ...SVCOption) *SVC {
	clf := &SVC{
		c:           1.0,
		kernel:      KernelLinear,
		classWeight: ClassWeightBalanced,
		gamma:       0,
		maxIter:     1000,
		tol:         1e-4,
	}
	for _, opt := range opts {
		opt(clf)
	}
	return clf
}

// WithC sets the regularization strength.
func WithC(c float64) SVCOption {
	return func(clf *SVC) { clf.c = c }
}

// WithKernel sets the kernel.
func WithKernel(k Kernel) SVCOption {
	return func(clf *SVC) { clf.kernel = k }
}

// WithClassWeight sets the class-weighting policy.
func WithClassWeight(w ClassWeight) SVCOption {
	return func(clf *SVC) { clf.classWeight = w }
}

// WithGamma sets the RBF kernel width. Zero selects the "scale" heuristic.
func WithGamma(g float64) SVCOption {
	return func(clf *SVC) { clf.gamma = g }
}

// WithMaxIter sets the solver iteration budget.
func WithMaxIter(n int) SVCOption {
	return func(clf *SVC) { clf.maxIter = n }
}

// WithTol sets the solver stopping tolerance.
func WithTol(tol float64) SVCOption {
	return func(clf *SVC) { clf.tol = tol }
}

// Clone returns a fresh unfitted SVC with identical hyperparameters.
func (clf *SVC) Clone() model.Estimator {
	return NewSVC(
		WithC(clf.c),
		WithKernel(clf.kernel),
		WithClassWeight(clf.classWeight),
		WithGamma(clf.gamma),
		WithMaxIter(clf.maxIter),
		WithTol(clf.tol),
	)
}

// Classes returns the sorted class labels seen during fitting.
func (clf *SVC) Classes() []float64 {
	return clf.classes
}

// C returns the regularization strength.
func (clf *SVC) C() float64 { return clf.c }

// Kernel returns the configured kernel.
func (clf *SVC) Kernel() Kernel { return clf.kernel }

// Fit trains the classifier on X (n_samples x n_features) and binary
// labels y (n_samples x 1). Exactly two distinct label values are required.
func (clf *SVC) Fit(X, y mat.Matrix) error {
	n, d, err := validateFit("SVC.Fit", X, y)
	if err != nil {
		return err
	}

	labels := labelColumn(y)
	classes := distinct(labels)
	if len(classes) != 2 {
		return errors.NewValueError("SVC.Fit", "exactly two classes are required for binary classification")
	}
	clf.classes = classes
	clf.nFeatures = d

	// Signed targets: classes[0] -> -1, classes[1] -> +1.
	ys := make([]float64, n)
	var nPos int
	for i, label := range labels {
		if label == classes[1] {
			ys[i] = 1
			nPos++
		} else {
			ys[i] = -1
		}
	}

	weights := clf.sampleWeights(ys, nPos)
	rows := matrixRows(X)

	switch clf.kernel {
	case KernelLinear:
		clf.fitLinear(rows, ys, weights)
	case KernelRBF:
		clf.fitRBF(rows, ys, weights, X)
	default:
		return errors.NewInvalidConfigurationError("kernel", "must be one of: linear, rbf", string(clf.kernel))
	}

	// Calibrate the probability sigmoid on the training decision values.
	decisions := make([]float64, n)
	for i, row := range rows {
		decisions[i] = clf.decisionRow(row)
	}
	clf.plattA, clf.plattB = plattCalibrate(decisions, ys)

	clf.SetFitted()
	return nil
}

// sampleWeights returns the per-sample loss weight under the configured
// class-weighting policy.
func (clf *SVC) sampleWeights(ys []float64, nPos int) []float64 {
	n := len(ys)
	weights := make([]float64, n)
	if clf.classWeight != ClassWeightBalanced {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	nNeg := n - nPos
	wPos := float64(n) / (2 * float64(nPos))
	wNeg := float64(n) / (2 * float64(nNeg))
	for i, yi := range ys {
		if yi > 0 {
			weights[i] = wPos
		} else {
			weights[i] = wNeg
		}
	}
	return weights
}

// fitLinear runs full-batch subgradient descent on the primal hinge-loss
// objective with an augmented bias feature.
func (clf *SVC) fitLinear(rows [][]float64, ys, weights []float64) {
	n := len(rows)
	d := len(rows[0])
	lambda := 1 / (clf.c * float64(n))

	w := make([]float64, d+1)
	grad := make([]float64, d+1)

	for t := 1; t <= clf.maxIter; t++ {
		for j := range grad {
			grad[j] = lambda * w[j]
		}

		for i, row := range rows {
			margin := w[d] // bias feature
			for j, x := range row {
				margin += w[j] * x
			}
			if ys[i]*margin >= 1 {
				continue
			}
			scale := weights[i] * ys[i] / float64(n)
			for j, x := range row {
				grad[j] -= scale * x
			}
			grad[d] -= scale
		}

		eta := 1 / (lambda * float64(t))
		var maxStep float64
		for j := range w {
			step := eta * grad[j]
			w[j] -= step
			if s := math.Abs(step); s > maxStep {
				maxStep = s
			}
		}
		if maxStep < clf.tol {
			break
		}
	}

	clf.coef = w[:d]
	clf.intercept = w[d]
}

// fitRBF runs a deterministic kernelized Pegasos sweep, cycling the samples
// in order so repeated fits of the same data are identical.
func (clf *SVC) fitRBF(rows [][]float64, ys, weights []float64, X mat.Matrix) {
	n := len(rows)
	clf.gammaFitted = clf.gamma
	if clf.gammaFitted == 0 {
		clf.gammaFitted = gammaScale(X)
	}

	K := kernelMatrix(rows, clf.gammaFitted)
	lambda := 1 / (clf.c * float64(n))

	totalIter := clf.maxIter
	if totalIter < 5*n {
		totalIter = 5 * n
	}

	alpha := make([]float64, n)
	for t := 1; t <= totalIter; t++ {
		i := (t - 1) % n
		var sum float64
		for j := 0; j < n; j++ {
			if alpha[j] != 0 {
				sum += alpha[j] * weights[j] * ys[j] * K.At(j, i)
			}
		}
		decision := sum / (lambda * float64(t))
		if ys[i]*decision < 1 {
			alpha[i]++
		}
	}

	clf.supportX = rows
	clf.dualCoef = make([]float64, n)
	norm := lambda * float64(totalIter)
	for j := 0; j < n; j++ {
		clf.dualCoef[j] = alpha[j] * weights[j] * ys[j] / norm
	}
}

// decisionRow evaluates the decision function for a single sample.
func (clf *SVC) decisionRow(row []float64) float64 {
	if clf.kernel == KernelLinear {
		sum := clf.intercept
		for j, x := range row {
			sum += clf.coef[j] * x
		}
		return sum
	}

	var sum float64
	for j, support := range clf.supportX {
		if clf.dualCoef[j] != 0 {
			sum += clf.dualCoef[j] * rbfKernel(support, row, clf.gammaFitted)
		}
	}
	return sum
}

// DecisionFunction returns the signed distance of each sample to the
// separating surface. Positive values vote for Classes()[1].
func (clf *SVC) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !clf.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "DecisionFunction")
	}
	r, c := X.Dims()
	if c != clf.nFeatures {
		return nil, errors.NewDimensionError("SVC.DecisionFunction", clf.nFeatures, c, 1)
	}

	out := mat.NewVecDense(r, nil)
	rows := matrixRows(X)
	for i, row := range rows {
		out.SetVec(i, clf.decisionRow(row))
	}
	return out, nil
}

// Predict returns the predicted class label for each sample as an
// n_samples x 1 matrix.
func (clf *SVC) Predict(X mat.Matrix) (mat.Matrix, error) {
	decisions, err := clf.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r := decisions.Len()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if decisions.AtVec(i) >= 0 {
			out.Set(i, 0, clf.classes[1])
		} else {
			out.Set(i, 0, clf.classes[0])
		}
	}
	return out, nil
}

// PredictProba returns calibrated class probabilities as an
// n_samples x 2 matrix with columns ordered like Classes().
func (clf *SVC) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	decisions, err := clf.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r := decisions.Len()
	out := mat.NewDense(r, 2, nil)
	for i := 0; i < r; i++ {
		pPos := sigmoidPredict(decisions.AtVec(i), clf.plattA, clf.plattB)
		out.Set(i, 0, 1-pPos)
		out.Set(i, 1, pPos)
	}
	return out, nil
}

// FeatureWeights returns |coefficient| per feature. Only defined for the
// linear kernel.
func (clf *SVC) FeatureWeights() ([]float64, error) {
	if !clf.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "FeatureWeights")
	}
	if clf.kernel != KernelLinear {
		return nil, errors.NewValueError("SVC.FeatureWeights", "feature weights are only defined for the linear kernel")
	}

	weights := make([]float64, len(clf.coef))
	for i, c := range clf.coef {
		weights[i] = math.Abs(c)
	}
	return weights, nil
}

// Score returns the accuracy on X, y.
func (clf *SVC) Score(X, y mat.Matrix) (float64, error) {
	pred, err := clf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// distinct returns the sorted distinct values of labels.
func distinct(labels []float64) []float64 {
	seen := make(map[float64]struct{})
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	out := make([]float64, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Float64s(out)
	return out
}
