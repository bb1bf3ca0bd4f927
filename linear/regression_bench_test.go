package linear

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/dataset"
)

// createBenchmarkData はベンチマーク用の広告費・売上データを生成する
func createBenchmarkData(b *testing.B, rows int) (*mat.Dense, *mat.VecDense) {
	b.Helper()
	cfg := dataset.DefaultGeneratorConfig()
	cfg.Samples = rows
	ds, err := dataset.GenerateSeeded(cfg, 42)
	if err != nil {
		b.Fatal(err)
	}
	return mat.NewDense(rows, 1, ds.Spends()), mat.NewVecDense(rows, ds.Sales())
}

func BenchmarkFitXY(b *testing.B) {
	sizes := []struct {
		name string
		rows int
	}{
		{"Small_100", 100},
		{"Medium_10000", 10000},
		{"Large_1000000", 1000000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(b, size.rows)
			x := mat.Col(nil, 0, X)
			yv := y.RawVector().Data

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := FitXY(x, yv); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLinearRegressionPredict(b *testing.B) {
	X, y := createBenchmarkData(b, 10000)
	lr := NewLinearRegressionWithLogger(nil)
	if err := lr.Fit(X, y); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lr.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}
