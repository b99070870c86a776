// Package svm implements support-vector estimators for the training
// workflow: a binary SVC with Platt-scaled probability estimates and an
// epsilon-insensitive SVR, both supporting linear and RBF kernels.
//
// The solvers are deterministic primal subgradient methods (kernelized for
// RBF) in the Pegasos family. They are intentionally simple; the workflow
// treats them through the capability interfaces in core/model and can swap
// in any other implementation.
package svm

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/parallel"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// Kernel identifies the kernel function of an estimator.
type Kernel string

const (
	// KernelLinear is the plain inner product. Required for feature
	// weights and therefore for recursive feature elimination.
	KernelLinear Kernel = "linear"
	// KernelRBF is the Gaussian radial basis function kernel.
	KernelRBF Kernel = "rbf"
)

// ParseKernel validates a kernel identifier.
func ParseKernel(s string) (Kernel, error) {
	switch Kernel(strings.ToLower(s)) {
	case KernelLinear:
		return KernelLinear, nil
	case KernelRBF:
		return KernelRBF, nil
	}
	return "", errors.NewInvalidConfigurationError("kernel", "must be one of: linear, rbf", s)
}

// ClassWeight identifies the class-weighting policy of a classifier.
type ClassWeight string

const (
	// ClassWeightNone weights every sample equally.
	ClassWeightNone ClassWeight = "none"
	// ClassWeightBalanced reweights samples inversely proportional to
	// their class frequency, n_samples / (n_classes * n_class).
	ClassWeightBalanced ClassWeight = "balanced"
)

// ParseClassWeight validates a class-weighting keyword.
func ParseClassWeight(s string) (ClassWeight, error) {
	switch strings.ToLower(s) {
	case "", "none", "uniform":
		return ClassWeightNone, nil
	case "balanced":
		return ClassWeightBalanced, nil
	}
	return "", errors.NewInvalidConfigurationError("class_weight", "must be one of: none, balanced", s)
}

// gammaScale computes the "scale" default for the RBF width:
// 1 / (n_features * Var(X)), with a fallback of 1 / n_features when the
// matrix has no variance.
func gammaScale(X mat.Matrix) float64 {
	r, c := X.Dims()
	n := float64(r * c)

	var mean float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			mean += X.At(i, j)
		}
	}
	mean /= n

	var variance float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := X.At(i, j) - mean
			variance += d * d
		}
	}
	variance /= n

	if variance == 0 {
		return 1 / float64(c)
	}
	return 1 / (float64(c) * variance)
}

// rbfKernel evaluates exp(-gamma * ||x - z||^2).
func rbfKernel(x, z []float64, gamma float64) float64 {
	var sq float64
	for i := range x {
		d := x[i] - z[i]
		sq += d * d
	}
	return math.Exp(-gamma * sq)
}

// matrixRows copies a matrix into a slice of row vectors.
func matrixRows(X mat.Matrix) [][]float64 {
	r, c := X.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		rows[i] = row
	}
	return rows
}

// kernelMatrix computes the Gram matrix of the training rows. Row blocks
// are filled in parallel above the threshold; entries are independent.
func kernelMatrix(rows [][]float64, gamma float64) *mat.Dense {
	n := len(rows)
	K := mat.NewDense(n, n, nil)
	parallel.ParallelizeWithThreshold(n, 64, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j <= i; j++ {
				v := rbfKernel(rows[i], rows[j], gamma)
				K.Set(i, j, v)
				K.Set(j, i, v)
			}
		}
	})
	return K
}

// validateFit checks the common Fit preconditions and returns the data
// dimensions.
func validateFit(op string, X, y mat.Matrix) (nSamples, nFeatures int, err error) {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return 0, 0, errors.Wrap(errors.ErrEmptyData, op)
	}
	if ry != r {
		return 0, 0, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return 0, 0, errors.NewValueError(op, "y must be a column vector")
	}
	return r, c, nil
}

// labelColumn copies the single column of y into a slice.
func labelColumn(y mat.Matrix) []float64 {
	r, _ := y.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = y.At(i, 0)
	}
	return out
}
