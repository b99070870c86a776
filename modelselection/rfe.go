package modelselection

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/svmlab/core/model"
	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// Selector is a fitted feature-elimination wrapper: it predicts through
// its underlying estimator on the surviving feature subset and reports
// which features survived.
type Selector interface {
	model.Predictor

	// Support reports, per input feature, whether it was selected.
	Support() []bool
	// Ranking assigns rank 1 to selected features; eliminated features get
	// increasing ranks the earlier they were dropped.
	Ranking() []int
	// OrderedFeatures lists input feature indices from most to least
	// important.
	OrderedFeatures() []int
}

// RFE performs recursive feature elimination: it repeatedly fits the
// estimator and drops the features with the smallest absolute weights, in
// steps of Step, until NFeaturesToSelect remain. The estimator must
// implement model.FeatureWeighter, which restricts it to linear kernels.
type RFE struct {
	model.BaseEstimator

	Estimator         model.Estimator
	NFeaturesToSelect int
	Step              int

	nFeatures int
	selected  []int   // surviving feature indices, most important first
	rounds    [][]int // eliminated per round, most important first within a round
	fitted    model.Estimator
}

// NewRFE creates an RFE wrapper around an untrained estimator.
func NewRFE(est model.Estimator, nFeaturesToSelect, step int) *RFE {
	return &RFE{
		Estimator:         est,
		NFeaturesToSelect: nFeaturesToSelect,
		Step:              step,
	}
}

// Fit runs the elimination loop and fits the final estimator on the
// selected feature subset.
func (r *RFE) Fit(X mat.Matrix, y *mat.VecDense) error {
	_, nFeatures := X.Dims()

	if r.NFeaturesToSelect < 1 || r.NFeaturesToSelect > nFeatures {
		return errors.NewInvalidConfigurationError("n_features_to_select", "must be between 1 and the feature count", r.NFeaturesToSelect)
	}
	if r.Step < 1 {
		return errors.NewInvalidConfigurationError("rfe_step", "must be at least 1", r.Step)
	}

	remaining := make([]int, nFeatures)
	for i := range remaining {
		remaining[i] = i
	}

	r.nFeatures = nFeatures
	r.rounds = nil

	for len(remaining) > r.NFeaturesToSelect {
		weights, err := r.fitSubset(X, y, remaining)
		if err != nil {
			return err
		}

		// Rank the surviving features by weight, least important first.
		order := argsortAscending(weights)
		drop := min(r.Step, len(remaining)-r.NFeaturesToSelect)

		eliminated := make([]int, drop)
		for i := 0; i < drop; i++ {
			// Record most important first within the round.
			eliminated[drop-1-i] = remaining[order[i]]
		}
		r.rounds = append(r.rounds, eliminated)

		dropped := make(map[int]bool, drop)
		for _, idx := range eliminated {
			dropped[idx] = true
		}
		kept := remaining[:0]
		for _, idx := range remaining {
			if !dropped[idx] {
				kept = append(kept, idx)
			}
		}
		remaining = kept
	}

	weights, err := r.fitSubset(X, y, remaining)
	if err != nil {
		return err
	}

	// Order the survivors by final importance.
	order := argsortAscending(weights)
	r.selected = make([]int, len(remaining))
	for i, localIdx := range order {
		r.selected[len(remaining)-1-i] = remaining[localIdx]
	}

	r.SetFitted()
	return nil
}

// fitSubset fits a clone of the estimator on the given feature columns and
// returns its feature weights. The fitted clone is retained as the final
// estimator; callers that eliminate further simply overwrite it.
func (r *RFE) fitSubset(X mat.Matrix, y *mat.VecDense, cols []int) ([]float64, error) {
	sub := selectColumns(X, cols)
	est := r.Estimator.Clone()
	if err := est.Fit(sub, y); err != nil {
		return nil, err
	}

	weighter, ok := est.(model.FeatureWeighter)
	if !ok {
		return nil, errors.NewValueError("RFE.Fit", "estimator does not expose feature weights")
	}
	weights, err := weighter.FeatureWeights()
	if err != nil {
		return nil, err
	}

	r.fitted = est
	return weights, nil
}

// Predict narrows X to the selected features and delegates to the final
// fitted estimator.
func (r *RFE) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("RFE", "Predict")
	}
	_, c := X.Dims()
	if c != r.nFeatures {
		return nil, errors.NewDimensionError("RFE.Predict", r.nFeatures, c, 1)
	}
	return r.fitted.Predict(selectColumns(X, r.sortedSelected()))
}

// Support reports, per input feature, whether it survived elimination.
func (r *RFE) Support() []bool {
	support := make([]bool, r.nFeatures)
	for _, idx := range r.selected {
		support[idx] = true
	}
	return support
}

// Ranking assigns rank 1 to selected features; features eliminated in the
// same round share a rank, and earlier rounds rank worse.
func (r *RFE) Ranking() []int {
	ranking := make([]int, r.nFeatures)
	for _, idx := range r.selected {
		ranking[idx] = 1
	}
	for roundIdx, round := range r.rounds {
		rank := len(r.rounds) - roundIdx + 1
		for _, idx := range round {
			ranking[idx] = rank
		}
	}
	return ranking
}

// OrderedFeatures lists feature indices from most to least important:
// survivors by final weight, then eliminated features by elimination
// recency.
func (r *RFE) OrderedFeatures() []int {
	ordered := make([]int, 0, r.nFeatures)
	ordered = append(ordered, r.selected...)
	for roundIdx := len(r.rounds) - 1; roundIdx >= 0; roundIdx-- {
		ordered = append(ordered, r.rounds[roundIdx]...)
	}
	return ordered
}

// SelectedFeatures returns the selected feature indices in column order.
func (r *RFE) SelectedFeatures() []int {
	return r.sortedSelected()
}

// FittedEstimator returns the estimator fitted on the selected subset.
func (r *RFE) FittedEstimator() model.Estimator {
	return r.fitted
}

func (r *RFE) sortedSelected() []int {
	out := make([]int, len(r.selected))
	copy(out, r.selected)
	sort.Ints(out)
	return out
}

// argsortAscending returns the indices that sort values ascending,
// breaking ties by index for determinism.
func argsortAscending(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})
	return order
}

// selectColumns copies the given columns of X into a fresh matrix,
// preserving column order as given.
func selectColumns(X mat.Matrix, cols []int) *mat.Dense {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(cols), nil)
	for i := 0; i < r; i++ {
		for j, col := range cols {
			out.Set(i, j, X.At(i, col))
		}
	}
	return out
}
