// Package plots renders the run artifacts the dashboard shows next to the
// run log: a confusion matrix heat map, a feature-importance bar chart,
// and the elimination-curve of cross-validated score against feature
// count.
package plots

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
)

// ConfusionCounts tallies actual-versus-predicted label pairs. Row i,
// column j counts samples of class classes[i] predicted as classes[j].
func ConfusionCounts(yTrue, yPred *mat.VecDense, classes []float64) (*mat.Dense, error) {
	if yTrue.Len() != yPred.Len() {
		return nil, errors.NewDimensionError("plots.ConfusionCounts", yTrue.Len(), yPred.Len(), 0)
	}
	if len(classes) == 0 {
		return nil, errors.NewValueError("plots.ConfusionCounts", "class list must not be empty")
	}

	index := make(map[float64]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}

	counts := mat.NewDense(len(classes), len(classes), nil)
	for i := 0; i < yTrue.Len(); i++ {
		actual, ok := index[yTrue.AtVec(i)]
		if !ok {
			return nil, errors.NewValueError("plots.ConfusionCounts", "actual label outside the class list")
		}
		predicted, ok := index[yPred.AtVec(i)]
		if !ok {
			return nil, errors.NewValueError("plots.ConfusionCounts", "predicted label outside the class list")
		}
		counts.Set(actual, predicted, counts.At(actual, predicted)+1)
	}
	return counts, nil
}

// confusionGrid adapts a count matrix to the heat-map grid interface.
// Rows are laid out bottom-up, so the first class appears at the top.
type confusionGrid struct {
	counts *mat.Dense
}

func (g confusionGrid) Dims() (int, int) {
	r, c := g.counts.Dims()
	return c, r
}

func (g confusionGrid) Z(c, r int) float64 {
	rows, _ := g.counts.Dims()
	return g.counts.At(rows-1-r, c)
}

func (g confusionGrid) X(c int) float64 { return float64(c) }
func (g confusionGrid) Y(r int) float64 { return float64(r) }

// ConfusionMatrixPlot renders a confusion-count matrix as a heat map.
func ConfusionMatrixPlot(counts *mat.Dense) (*plot.Plot, error) {
	r, c := counts.Dims()
	if r == 0 || c == 0 || r != c {
		return nil, errors.NewValueError("plots.ConfusionMatrixPlot", "count matrix must be square and non-empty")
	}

	palette := moreland.SmoothBlueRed().Palette(255)
	heat := plotter.NewHeatMap(confusionGrid{counts: counts}, palette)

	p := plot.New()
	p.Title.Text = "Confusion Matrix"
	p.X.Label.Text = "predicted"
	p.Y.Label.Text = "actual"
	p.Add(heat)
	return p, nil
}

// FeatureImportancePlot renders a bar chart of per-feature importances,
// one bar per feature name in the given order.
func FeatureImportancePlot(names []string, weights []float64) (*plot.Plot, error) {
	if len(names) != len(weights) {
		return nil, errors.NewDimensionError("plots.FeatureImportancePlot", len(names), len(weights), 0)
	}
	if len(names) == 0 {
		return nil, errors.NewValueError("plots.FeatureImportancePlot", "at least one feature is required")
	}

	bars, err := plotter.NewBarChart(plotter.Values(weights), vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "plots: bar chart")
	}

	p := plot.New()
	p.Title.Text = "Variable Importance"
	p.Y.Label.Text = "weight"
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// EliminationCurvePlot renders mean cross-validated score against the
// surviving feature count, the curve RFECV optimizes over.
func EliminationCurvePlot(featureCounts []int, meanScores []float64, scoring string) (*plot.Plot, error) {
	if len(featureCounts) != len(meanScores) {
		return nil, errors.NewDimensionError("plots.EliminationCurvePlot", len(featureCounts), len(meanScores), 0)
	}
	if len(featureCounts) == 0 {
		return nil, errors.NewValueError("plots.EliminationCurvePlot", "at least one point is required")
	}

	points := make(plotter.XYs, len(featureCounts))
	for i := range featureCounts {
		points[i].X = float64(featureCounts[i])
		points[i].Y = meanScores[i]
	}

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, errors.Wrap(err, "plots: elimination curve")
	}

	p := plot.New()
	p.Title.Text = "Feature Elimination"
	p.X.Label.Text = "features kept"
	p.Y.Label.Text = scoring
	p.Add(line, scatter)
	return p, nil
}

// Save writes a plot as an image file; the format follows the path
// extension.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "plots: save")
	}
	return nil
}
