package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/linear"
	"github.com/YuminosukeSato/adspend/pkg/errors"
)

// Evaluate は学習済みモデルをデータセット上で評価する
func Evaluate(ds *dataset.Dataset, m linear.Model) (r Regression, err error) {
	defer errors.Recover(&err, "metrics.Evaluate")

	if ds == nil {
		return Regression{}, errors.NewValueError("metrics.Evaluate", "dataset is nil")
	}
	if ds.Len() < 2 {
		return Regression{}, errors.NewInsufficientDataError("metrics.Evaluate", 2, ds.Len())
	}

	yTrue, yPred := Vectors(ds, m)
	return EvaluateRegression(yTrue, yPred)
}

// Vectors は観測値と予測値をベクトルとして返す
func Vectors(ds *dataset.Dataset, m linear.Model) (yTrue, yPred *mat.VecDense) {
	n := ds.Len()
	if n == 0 {
		return &mat.VecDense{}, &mat.VecDense{}
	}
	yTrue = mat.NewVecDense(n, ds.Sales())
	yPred = m.PredictVec(mat.NewVecDense(n, ds.Spends()))
	return yTrue, yPred
}
