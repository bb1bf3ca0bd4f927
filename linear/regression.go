// Package linear fits simple (one-feature) linear regression models by
// ordinary least squares.
//
// The closed-form fit is available as a pure function:
//
//	m, err := linear.Fit(split.Train)
//	sales := m.Predict(250)
//
// LinearRegression wraps the same fit behind the matrix-oriented
// Fit/Predict estimator interface:
//
//	lr := linear.NewLinearRegression()
//	err := lr.Fit(X, y) // X: n×1 spends, y: n×1 sales
//	predictions, err := lr.Predict(XTest)
package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/core/model"
	adspendErrors "github.com/YuminosukeSato/adspend/pkg/errors"
	"github.com/YuminosukeSato/adspend/pkg/log"
)

// LinearRegression is a single-feature least squares estimator.
type LinearRegression struct {
	State  *model.StateManager
	model  Model
	logger log.Logger
}

var _ model.Estimator = (*LinearRegression)(nil)

// NewLinearRegression creates an untrained estimator that logs through the
// package-wide provider.
func NewLinearRegression() *LinearRegression {
	return NewLinearRegressionWithLogger(log.GetLoggerWithName("linear"))
}

// NewLinearRegressionWithLogger creates an untrained estimator using logger.
func NewLinearRegressionWithLogger(logger log.Logger) *LinearRegression {
	lr := &LinearRegression{State: model.NewStateManager()}
	if logger != nil {
		lr.logger = logger.With(log.ModelNameKey, "LinearRegression")
	}
	return lr
}

// Fit trains the model on an n×1 spend matrix X and an n×1 sales matrix y.
//
// Errors:
//   - InsufficientData: X has no rows
//   - InvalidArgument: X has more than one column, or the row counts differ
//   - IllDefinedModel: every spend value is identical
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer adspendErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if lr.logger != nil {
		lr.logger.Info("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	if r == 0 || c == 0 {
		return adspendErrors.NewInsufficientDataError("LinearRegression.Fit", 2, r)
	}
	if c != 1 {
		return adspendErrors.NewDimensionError("LinearRegression.Fit", 1, c, 1)
	}
	if ry != r {
		return adspendErrors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return adspendErrors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	x := mat.Col(nil, 0, X)
	yv := mat.Col(nil, 0, y)

	m, err := FitXY(x, yv)
	if err != nil {
		if lr.logger != nil {
			lr.logger.Error("Training failed", err, log.OperationKey, log.OperationFit)
		}
		return err
	}

	lr.model = m
	lr.State.MarkFitted(1, r)

	if lr.logger != nil {
		lr.logger.Info("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, time.Since(startTime).Milliseconds(),
			log.SamplesKey, r,
			log.InterceptKey, m.Intercept,
			log.SlopeKey, m.Slope,
		)
	}
	return nil
}

// Predict returns an n×1 matrix of predicted sales for an n×1 spend matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer adspendErrors.Recover(&err, "LinearRegression.Predict")

	if err := lr.State.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if nFeatures, _ := lr.State.Dimensions(); c != nFeatures {
		return nil, adspendErrors.NewDimensionError("LinearRegression.Predict", nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, lr.model.Predict(X.At(i, 0)))
	}

	if lr.logger != nil {
		lr.logger.Debug("Prediction completed",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.PredsKey, r,
		)
	}
	return predictions, nil
}

// Model returns the fitted coefficients.
func (lr *LinearRegression) Model() (Model, error) {
	if err := lr.State.RequireFitted("LinearRegression", "Model"); err != nil {
		return Model{}, err
	}
	return lr.model, nil
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}
