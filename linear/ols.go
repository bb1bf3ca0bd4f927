package linear

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/pkg/errors"
)

// Model is a fitted simple linear model: sales = Intercept + Slope*spend.
// It is a value type; a fitted Model never changes.
type Model struct {
	Intercept float64
	Slope     float64
}

// Predict returns the predicted sales for one spend value.
func (m Model) Predict(spend float64) float64 {
	return m.Intercept + m.Slope*spend
}

// PredictAll predicts every spend value in order.
func (m Model) PredictAll(spends []float64) []float64 {
	out := make([]float64, len(spends))
	for i, x := range spends {
		out[i] = m.Predict(x)
	}
	return out
}

// PredictVec predicts every element of spends.
func (m Model) PredictVec(spends mat.Vector) *mat.VecDense {
	n := spends.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, m.Predict(spends.AtVec(i)))
	}
	return out
}

func (m Model) String() string {
	return fmt.Sprintf("sales = %.4f + %.4f*spend", m.Intercept, m.Slope)
}

// Fit computes the ordinary least squares line through the training samples.
func Fit(train *dataset.Dataset) (Model, error) {
	if train == nil {
		return Model{}, errors.NewValueError("linear.Fit", "dataset is nil")
	}
	return FitXY(train.Spends(), train.Sales())
}

// FitXY computes
//
//	slope     = Σ(xᵢ-x̄)(yᵢ-ȳ) / Σ(xᵢ-x̄)²
//	intercept = ȳ - slope·x̄
//
// in float64 without rescaling. It fails with IllDefinedModel when every x
// is identical, since the slope is then undefined.
func FitXY(x, y []float64) (m Model, err error) {
	defer errors.Recover(&err, "linear.FitXY")

	if len(x) != len(y) {
		return Model{}, errors.NewDimensionError("linear.FitXY", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return Model{}, errors.NewInsufficientDataError("linear.FitXY", 2, 0)
	}
	if err := errors.CheckFinite("spend", x); err != nil {
		return Model{}, err
	}
	if err := errors.CheckFinite("sales", y); err != nil {
		return Model{}, err
	}

	// Compare extremes rather than Σ(x-x̄)², whose rounding can leave a tiny
	// non-zero residue for identical inputs.
	if floats.Min(x) == floats.Max(x) {
		return Model{}, errors.NewIllDefinedError("linear.FitXY", "slope",
			fmt.Sprintf("all %d spend values equal %g (zero variance)", len(x), x[0]))
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	if err := errors.CheckScalar("linear.FitXY slope", slope); err != nil {
		return Model{}, err
	}
	if err := errors.CheckScalar("linear.FitXY intercept", intercept); err != nil {
		return Model{}, err
	}
	return Model{Intercept: intercept, Slope: slope}, nil
}
