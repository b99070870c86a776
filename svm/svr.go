package svm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/metrics"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// SVR is a support-vector regressor with epsilon-insensitive loss. The
// solvers mirror SVC: deterministic full-batch subgradient descent for the
// linear kernel, a deterministic kernelized sweep for RBF.
type SVR struct {
	model.BaseEstimator

	// Hyperparameters
	c       float64
	kernel  Kernel
	gamma   float64
	epsilon float64
	maxIter int
	tol     float64

	// Learned parameters
	coef        []float64
	intercept   float64
	supportX    [][]float64
	dualCoef    []float64
	gammaFitted float64
	nFeatures   int
}

// SVROption is a functional option for SVR.
type SVROption func(*SVR)

// NewSVR creates an untrained support-vector regressor. Defaults follow the
// dashboard configuration: C=1, linear kernel, epsilon=0.1.
func NewSVR(opts ...SVROption) *SVR {
	reg := &SVR{
		c:       1.0,
		kernel:  KernelLinear,
		gamma:   0,
		epsilon: 0.1,
		maxIter: 1000,
		tol:     1e-4,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// WithSVRC sets the regularization strength.
func WithSVRC(c float64) SVROption {
	return func(reg *SVR) { reg.c = c }
}

// WithSVRKernel sets the kernel.
func WithSVRKernel(k Kernel) SVROption {
	return func(reg *SVR) { reg.kernel = k }
}

// WithSVRGamma sets the RBF kernel width. Zero selects the "scale" heuristic.
func WithSVRGamma(g float64) SVROption {
	return func(reg *SVR) { reg.gamma = g }
}

// WithEpsilon sets the width of the epsilon-insensitive tube.
func WithEpsilon(eps float64) SVROption {
	return func(reg *SVR) { reg.epsilon = eps }
}

// WithSVRMaxIter sets the solver iteration budget.
func WithSVRMaxIter(n int) SVROption {
	return func(reg *SVR) { reg.maxIter = n }
}

// WithSVRTol sets the solver stopping tolerance.
func WithSVRTol(tol float64) SVROption {
	return func(reg *SVR) { reg.tol = tol }
}

// Clone returns a fresh unfitted SVR with identical hyperparameters.
func (reg *SVR) Clone() model.Estimator {
	return NewSVR(
		WithSVRC(reg.c),
		WithSVRKernel(reg.kernel),
		WithSVRGamma(reg.gamma),
		WithEpsilon(reg.epsilon),
		WithSVRMaxIter(reg.maxIter),
		WithSVRTol(reg.tol),
	)
}

// C returns the regularization strength.
func (reg *SVR) C() float64 { return reg.c }

// Kernel returns the configured kernel.
func (reg *SVR) Kernel() Kernel { return reg.kernel }

// Fit trains the regressor on X (n_samples x n_features) and continuous
// targets y (n_samples x 1).
func (reg *SVR) Fit(X, y mat.Matrix) error {
	_, d, err := validateFit("SVR.Fit", X, y)
	if err != nil {
		return err
	}

	targets := labelColumn(y)
	rows := matrixRows(X)
	reg.nFeatures = d

	switch reg.kernel {
	case KernelLinear:
		reg.fitLinear(rows, targets)
	case KernelRBF:
		reg.fitRBF(rows, targets, X)
	default:
		return errors.NewInvalidConfigurationError("kernel", "must be one of: linear, rbf", string(reg.kernel))
	}

	reg.SetFitted()
	return nil
}

// fitLinear runs full-batch subgradient descent on the epsilon-insensitive
// objective with an augmented bias feature.
func (reg *SVR) fitLinear(rows [][]float64, targets []float64) {
	n := len(rows)
	d := len(rows[0])
	lambda := 1 / (reg.c * float64(n))

	w := make([]float64, d+1)
	grad := make([]float64, d+1)

	for t := 1; t <= reg.maxIter; t++ {
		for j := range grad {
			grad[j] = lambda * w[j]
		}

		for i, row := range rows {
			pred := w[d]
			for j, x := range row {
				pred += w[j] * x
			}
			residual := pred - targets[i]
			if math.Abs(residual) <= reg.epsilon {
				continue
			}
			sign := 1.0
			if residual < 0 {
				sign = -1.0
			}
			scale := sign / float64(n)
			for j, x := range row {
				grad[j] += scale * x
			}
			grad[d] += scale
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
		if maxStep < reg.tol {
			break
		}
	}

	reg.coef = w[:d]
	reg.intercept = w[d]
}

// fitRBF runs a deterministic kernelized subgradient sweep, cycling the
// samples in order.
func (reg *SVR) fitRBF(rows [][]float64, targets []float64, X mat.Matrix) {
	n := len(rows)
	reg.gammaFitted = reg.gamma
	if reg.gammaFitted == 0 {
		reg.gammaFitted = gammaScale(X)
	}

	K := kernelMatrix(rows, reg.gammaFitted)
	lambda := 1 / (reg.c * float64(n))

	totalIter := reg.maxIter
	if totalIter < 5*n {
		totalIter = 5 * n
	}

	alpha := make([]float64, n)
	var bias float64
	for t := 1; t <= totalIter; t++ {
		i := (t - 1) % n
		var sum float64
		for j := 0; j < n; j++ {
			if alpha[j] != 0 {
				sum += alpha[j] * K.At(j, i)
			}
		}
		pred := sum/(lambda*float64(t)) + bias
		residual := pred - targets[i]
		if math.Abs(residual) <= reg.epsilon {
			continue
		}
		if residual > 0 {
			alpha[i]--
			bias -= reg.epsilon * lambda
		} else {
			alpha[i]++
			bias += reg.epsilon * lambda
		}
	}

	reg.supportX = rows
	reg.dualCoef = make([]float64, n)
	norm := lambda * float64(totalIter)
	for j := 0; j < n; j++ {
		reg.dualCoef[j] = alpha[j] / norm
	}
	reg.intercept = bias
}

// predictRow evaluates the regression function for a single sample.
func (reg *SVR) predictRow(row []float64) float64 {
	if reg.kernel == KernelLinear {
		sum := reg.intercept
		for j, x := range row {
			sum += reg.coef[j] * x
		}
		return sum
	}

	sum := reg.intercept
	for j, support := range reg.supportX {
		if reg.dualCoef[j] != 0 {
			sum += reg.dualCoef[j] * rbfKernel(support, row, reg.gammaFitted)
		}
	}
	return sum
}

// Predict returns the predicted target for each sample as an
// n_samples x 1 matrix.
func (reg *SVR) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !reg.IsFitted() {
		return nil, errors.NewNotFittedError("SVR", "Predict")
	}
	r, c := X.Dims()
	if c != reg.nFeatures {
		return nil, errors.NewDimensionError("SVR.Predict", reg.nFeatures, c, 1)
	}

	out := mat.NewDense(r, 1, nil)
	rows := matrixRows(X)
	for i, row := range rows {
		out.Set(i, 0, reg.predictRow(row))
	}
	return out, nil
}

// FeatureWeights returns |coefficient| per feature. Only defined for the
// linear kernel.
func (reg *SVR) FeatureWeights() ([]float64, error) {
	if !reg.IsFitted() {
		return nil, errors.NewNotFittedError("SVR", "FeatureWeights")
	}
	if reg.kernel != KernelLinear {
		return nil, errors.NewValueError("SVR.FeatureWeights", "feature weights are only defined for the linear kernel")
	}

	weights := make([]float64, len(reg.coef))
	for i, c := range reg.coef {
		weights[i] = math.Abs(c)
	}
	return weights, nil
}

// Score returns the coefficient of determination R² on X, y.
func (reg *SVR) Score(X, y mat.Matrix) (float64, error) {
	pred, err := reg.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}
