package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/linear"
	"github.com/YuminosukeSato/adspend/pkg/errors"
)

func TestR2ScoreErrorKinds(t *testing.T) {
	_, err := R2Score(mat.NewVecDense(4, []float64{5, 5, 5, 5}), mat.NewVecDense(4, []float64{1, 2, 3, 4}))
	assert.Equal(t, errors.KindIllDefinedModel, errors.KindOf(err))

	_, err = R2Score(mat.NewVecDense(1, []float64{5}), mat.NewVecDense(1, []float64{5}))
	assert.Equal(t, errors.KindInsufficientData, errors.KindOf(err))

	_, err = R2Score(mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(3, []float64{1, 2, 3}))
	assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))

	// distinct values whose squared deviations underflow to zero
	r2, err := R2Score(mat.NewVecDense(2, []float64{1e-200, 2e-200}), mat.NewVecDense(2, []float64{1, 1}))
	assert.Equal(t, errors.KindIllDefinedModel, errors.KindOf(err))
	assert.Zero(t, r2)

	// residual sum of squares overflows
	_, err = R2Score(mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(2, []float64{1e200, -1e200}))
	assert.Equal(t, errors.KindIllDefinedModel, errors.KindOf(err))
}

func TestResidualStdError(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{2, 1, 4, 3})

	s, err := ResidualStdError(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135623730951, s, 1e-12) // √(4/2)

	_, err = ResidualStdError(mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(2, []float64{1, 2}))
	assert.Equal(t, errors.KindInsufficientData, errors.KindOf(err))

	var insufficient *errors.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Need)
	assert.Equal(t, 2, insufficient.Got)
}

func TestResiduals(t *testing.T) {
	res, err := Residuals(mat.NewVecDense(3, []float64{10, 20, 30}), mat.NewVecDense(3, []float64{12, 18, 30}))
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 2, 0}, res.RawVector().Data)

	_, err = Residuals(nil, nil)
	assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))
}

func TestEvaluateRegression(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	r, err := EvaluateRegression(yTrue, yPred)
	require.NoError(t, err)
	assert.Equal(t, 4, r.N)
	assert.InDelta(t, 0.25, r.MSE, 1e-12)
	assert.InDelta(t, 0.5, r.RMSE, 1e-12)
	assert.InDelta(t, 0.5, r.MAE, 1e-12)
	assert.InDelta(t, 0.8, r.R2, 1e-12) // 1 - 1/5
}

func TestEvaluate(t *testing.T) {
	t.Run("exact predictions give r2 of one", func(t *testing.T) {
		ds, err := dataset.FromColumns([]float64{10, 20, 30, 40}, []float64{70, 90, 110, 130})
		require.NoError(t, err)

		r, err := Evaluate(ds, linear.Model{Intercept: 50, Slope: 2})
		require.NoError(t, err)
		assert.Equal(t, 1.0, r.R2)
		assert.Equal(t, 0.0, r.MSE)
		assert.Equal(t, 0.0, r.RMSE)
	})

	t.Run("r2 never exceeds one", func(t *testing.T) {
		ds, err := dataset.GenerateSeeded(dataset.DefaultGeneratorConfig(), 7)
		require.NoError(t, err)

		for _, m := range []linear.Model{
			{Intercept: 50, Slope: 2},
			{Intercept: 0, Slope: 0},
			{Intercept: -100, Slope: 5},
		} {
			r, err := Evaluate(ds, m)
			require.NoError(t, err)
			assert.LessOrEqual(t, r.R2, 1.0)
			assert.GreaterOrEqual(t, r.MSE, 0.0)
			assert.InDelta(t, r.RMSE*r.RMSE, r.MSE, 1e-9*r.MSE)
		}
	})

	t.Run("constant sales is ill-defined", func(t *testing.T) {
		ds, err := dataset.FromColumns([]float64{1, 2, 3}, []float64{9, 9, 9})
		require.NoError(t, err)

		_, err = Evaluate(ds, linear.Model{Intercept: 9})
		assert.Equal(t, errors.KindIllDefinedModel, errors.KindOf(err))
	})

	t.Run("tiny sales variance is ill-defined", func(t *testing.T) {
		ds, err := dataset.FromColumns([]float64{1, 2}, []float64{1e-200, 2e-200})
		require.NoError(t, err)

		r, err := Evaluate(ds, linear.Model{})
		assert.Equal(t, errors.KindIllDefinedModel, errors.KindOf(err))
		assert.Equal(t, Regression{}, r)
	})

	t.Run("single sample is insufficient", func(t *testing.T) {
		ds, err := dataset.FromColumns([]float64{1}, []float64{2})
		require.NoError(t, err)

		_, err = Evaluate(ds, linear.Model{})
		assert.Equal(t, errors.KindInsufficientData, errors.KindOf(err))
	})

	t.Run("nil dataset", func(t *testing.T) {
		_, err := Evaluate(nil, linear.Model{})
		assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))
	})
}

func TestEvaluateIsDeterministic(t *testing.T) {
	ds, err := dataset.GenerateSeeded(dataset.DefaultGeneratorConfig(), 42)
	require.NoError(t, err)
	m, err := linear.Fit(ds)
	require.NoError(t, err)

	a, err := Evaluate(ds, m)
	require.NoError(t, err)
	b, err := Evaluate(ds, m)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
