package linear_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/linear"
)

func ExampleFitXY() {
	spend := []float64{10, 20, 30, 40}
	sales := []float64{70, 90, 110, 130}

	m, err := linear.FitXY(spend, sales)
	if err != nil {
		return
	}

	fmt.Printf("intercept=%.1f slope=%.1f\n", m.Intercept, m.Slope)
	fmt.Printf("predict(250)=%.1f\n", m.Predict(250))

	// Output: intercept=50.0 slope=2.0
	// predict(250)=550.0
}

func ExampleLinearRegression() {
	X := mat.NewDense(4, 1, []float64{1.0, 2.0, 3.0, 4.0})
	y := mat.NewDense(4, 1, []float64{3.0, 5.0, 7.0, 9.0})

	lr := linear.NewLinearRegressionWithLogger(nil)
	if err := lr.Fit(X, y); err != nil {
		return
	}

	testX := mat.NewDense(2, 1, []float64{5.0, 6.0})
	predictions, err := lr.Predict(testX)
	if err != nil {
		return
	}

	fmt.Printf("Input: %.1f, Prediction: %.1f\n", testX.At(0, 0), predictions.At(0, 0))
	fmt.Printf("Input: %.1f, Prediction: %.1f\n", testX.At(1, 0), predictions.At(1, 0))

	// Output: Input: 5.0, Prediction: 11.0
	// Input: 6.0, Prediction: 13.0
}
