package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// ConcordanceIndex computes the concordance index between actual outcomes
// and predicted risk scores: the probability that, for a random pair of
// observations with different outcomes, the one with the higher predicted
// score also has the higher outcome. Tied predictions count as half
// concordant; pairs with tied outcomes are not permissible and are skipped.
func ConcordanceIndex(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("ConcordanceIndex", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var concordant, permissible float64
	for i := 0; i < n; i++ {
		ti, pi := yTrue.AtVec(i), yPred.AtVec(i)
		for j := i + 1; j < n; j++ {
			tj, pj := yTrue.AtVec(j), yPred.AtVec(j)
			if ti == tj {
				continue
			}
			permissible++
			switch {
			case pi == pj:
				concordant += 0.5
			case (ti > tj) == (pi > pj):
				concordant++
			}
		}
	}

	if permissible == 0 {
		return 0, errors.NewValueError("ConcordanceIndex", "no permissible pairs (all outcomes are equal)")
	}

	return concordant / permissible, nil
}
