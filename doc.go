// Package adspend fits a simple linear regression of sales on advertising
// spend and reports how well the fitted line explains the data.
//
// The pipeline generates a reproducible synthetic dataset, holds out a test
// set, fits the ordinary least squares line on the training set and evaluates
// MSE, RMSE and R² on both subsets. The command in cmd/adspend prints a
// console report and writes four diagnostic charts.
//
// # Quick Start
//
//	res, err := analysis.Run(analysis.DefaultOptions(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Model) // sales = 50.xx + 2.0x*spend
//	fmt.Printf("test R² = %.4f\n", res.Test.R2)
//
// # Packages
//
//   - dataset: synthetic generation, seeded train/test split, summaries
//   - linear: OLS fit and the LinearRegression estimator
//   - metrics: MSE, RMSE, MAE, R² and residual standard error
//   - analysis: the end-to-end pipeline
//   - report: console report
//   - plotting: gonum/plot charts
//   - internal/config: viper configuration
//   - pkg/errors: error kinds with stack traces
//   - pkg/log: structured logging over slog, zap or zerolog
//
// # Error Handling
//
// Every failure belongs to one of three kinds, checked with errors.KindOf or
// errors.Is against the sentinels:
//
//	if errors.Is(err, errors.ErrIllDefinedModel) {
//	    // all spends identical, or sales have no variance
//	}
package adspend
