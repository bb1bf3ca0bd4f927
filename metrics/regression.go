// Package metrics は回帰モデルの評価指標（MSE, RMSE, MAE, R²）を提供する
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/pkg/errors"
)

// Regression は1つのデータ部分集合に対する評価結果
type Regression struct {
	N    int
	MSE  float64 // ≥ 0
	RMSE float64 // = √MSE
	MAE  float64
	R2   float64 // ≤ 1
}

// checkPair は長さの一致と最小サンプル数を検証する
func checkPair(op string, yTrue, yPred *mat.VecDense, need int) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "nil vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	if n < need {
		return 0, errors.NewInsufficientDataError(op, need, n)
	}
	return n, nil
}

// Residuals は残差 yTrue - yPred を返す
func Residuals(yTrue, yPred *mat.VecDense) (*mat.VecDense, error) {
	n, err := checkPair("Residuals", yTrue, yPred, 1)
	if err != nil {
		return nil, err
	}
	res := mat.NewVecDense(n, nil)
	res.SubVec(yTrue, yPred)
	return res, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return mat.Dot(res, res) / float64(res.Len()), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(res.RawVector().Data, 1) / float64(res.Len()), nil
}

// R2Score は決定係数（R²）を計算する。
// サンプルが2件未満なら InsufficientData、yTrue がすべて同じ値なら IllDefinedModel を返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred, 2)
	if err != nil {
		return 0, err
	}

	y := yTrue.RawVector()
	values := make([]float64, n)
	for i := range values {
		values[i] = y.Data[i*y.Inc]
	}
	if floats.Min(values) == floats.Max(values) {
		return 0, errors.NewIllDefinedError("R2Score", "r2",
			"total sum of squares is zero (no variance in yTrue)")
	}

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	yMean := floats.Sum(values) / float64(n)
	for i, v := range values {
		d := v - yMean
		tss += d * d
		r := v - yPred.AtVec(i)
		rss += r * r
	}

	// 値が異なっていても二乗和がアンダーフローすることがある
	if tss == 0 {
		return 0, errors.NewIllDefinedError("R2Score", "r2",
			"total sum of squares underflows to zero")
	}

	// R² = 1 - RSS/TSS
	r2 := 1 - rss/tss
	if err := errors.CheckScalar("R2Score", r2); err != nil {
		return 0, err
	}
	return r2, nil
}

// ResidualStdError は残差標準誤差 √(Σ(y-ŷ)²/(n-2)) を計算する。
// 自由度が正でなければならないため n > 2 が必要。
func ResidualStdError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("ResidualStdError", yTrue, yPred, 3)
	if err != nil {
		return 0, err
	}
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mat.Dot(res, res) / float64(n-2)), nil
}

// EvaluateRegression は MSE, RMSE, MAE, R² をまとめて計算する
func EvaluateRegression(yTrue, yPred *mat.VecDense) (Regression, error) {
	n, err := checkPair("EvaluateRegression", yTrue, yPred, 2)
	if err != nil {
		return Regression{}, err
	}

	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Regression{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Regression{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return Regression{}, err
	}

	return Regression{N: n, MSE: mse, RMSE: math.Sqrt(mse), MAE: mae, R2: r2}, nil
}
