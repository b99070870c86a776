// Package modelselection provides the delegated model-selection machinery
// of the training workflow: k-fold splitting, multi-metric cross-validation
// with per-fold fitted estimators, named scorers, and recursive feature
// elimination with and without cross-validated feature-count search.
package modelselection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// CVFold holds the row indices of one cross-validation fold.
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits rows into k consecutive folds. Shuffling is optional and
// seeded; the workflow leaves it off so fold order, and therefore the
// first-occurrence tie-break of best-fold selection, is deterministic.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int
}

// NewKFold creates a k-fold splitter.
func NewKFold(nSplits int, shuffle bool, randomSeed int) *KFold {
	return &KFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// Split generates the folds for a matrix with the given rows. Validation
// folds partition the rows: every row appears in exactly one test set.
// K=N (leave-one-out) is allowed; K>N is an InsufficientData error.
func (kf *KFold) Split(X mat.Matrix) ([]CVFold, error) {
	nSamples, _ := X.Dims()

	if kf.NSplits < 2 {
		return nil, errors.NewInvalidConfigurationError("k_fold", "must be at least 2", kf.NSplits)
	}
	if nSamples < kf.NSplits {
		return nil, errors.NewInsufficientDataError("KFold.Split", nSamples, kf.NSplits)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]CVFold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	offset := 0
	for i := range folds {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[offset:offset+testSize])

		inTest := make(map[int]bool, testSize)
		for _, idx := range test {
			inTest[idx] = true
		}
		train := make([]int, 0, nSamples-testSize)
		for _, idx := range indices {
			if !inTest[idx] {
				train = append(train, idx)
			}
		}

		folds[i] = CVFold{TrainIndices: train, TestIndices: test}
		offset += testSize
	}

	return folds, nil
}

// extractSubset copies the given rows of X and y into fresh containers.
func extractSubset(X mat.Matrix, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	_, cols := X.Dims()
	xSub := mat.NewDense(len(indices), cols, nil)
	ySub := mat.NewVecDense(len(indices), nil)

	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		ySub.SetVec(i, y.AtVec(idx))
	}
	return xSub, ySub
}
