// Package analysis runs the advertising regression pipeline end to end:
// generate, split, fit, evaluate.
package analysis

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/linear"
	"github.com/YuminosukeSato/adspend/metrics"
	"github.com/YuminosukeSato/adspend/pkg/errors"
	"github.com/YuminosukeSato/adspend/pkg/log"
)

// Options controls one pipeline run. The data seed and the split seed are
// independent so either draw can be varied on its own.
type Options struct {
	Generator    dataset.GeneratorConfig
	DataSeed     uint64
	TestFraction float64
	SplitSeed    uint64
}

// DefaultOptions reproduces the reference run: 100 samples, seed 42, 80/20 split.
func DefaultOptions() Options {
	return Options{
		Generator:    dataset.DefaultGeneratorConfig(),
		DataSeed:     dataset.DefaultSeed,
		TestFraction: dataset.DefaultTestFraction,
		SplitSeed:    dataset.DefaultSeed,
	}
}

// Result holds everything produced by a run.
type Result struct {
	Dataset *dataset.Dataset
	Split   *dataset.Split
	Model   linear.Model

	Train metrics.Regression
	Test  metrics.Regression

	// Fitted values and residuals on the test subset, in test order.
	TestFitted    []float64
	TestResiduals []float64
}

// Run executes the pipeline. Any stage failure is returned wrapped with the
// stage name; no partial Result is returned.
func Run(opts Options, logger log.Logger) (res *Result, err error) {
	defer errors.Recover(&err, "analysis.Run")

	if logger == nil {
		logger = log.GetLoggerWithName("analysis")
	}
	start := time.Now()

	ds, err := dataset.GenerateSeeded(opts.Generator, opts.DataSeed)
	if err != nil {
		logger.Error("Data generation failed", err, log.OperationKey, log.OperationGenerate)
		return nil, errors.Wrap(err, "generate")
	}
	logger.Info("Dataset generated",
		log.OperationKey, log.OperationGenerate,
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, ds.Len(),
		log.RandomSeedKey, opts.DataSeed,
		log.FingerprintKey, ds.Fingerprint(),
	)

	split, err := dataset.TrainTestSplit(ds, opts.TestFraction, dataset.NewSource(opts.SplitSeed))
	if err != nil {
		logger.Error("Train/test split failed", err, log.OperationKey, log.OperationSplit)
		return nil, errors.Wrap(err, "split")
	}
	logger.Info("Dataset split",
		log.OperationKey, log.OperationSplit,
		log.TrainSamplesKey, split.Train.Len(),
		log.TestSamplesKey, split.Test.Len(),
		log.TestFractionKey, opts.TestFraction,
		log.RandomSeedKey, opts.SplitSeed,
	)

	model, err := fit(split.Train, logger)
	if err != nil {
		return nil, errors.Wrap(err, "fit")
	}

	train, err := metrics.Evaluate(split.Train, model)
	if err != nil {
		logger.Error("Evaluation failed", err, log.OperationKey, log.OperationScore, log.PhaseKey, log.PhaseValidation)
		return nil, errors.Wrap(err, "evaluate train")
	}
	test, err := metrics.Evaluate(split.Test, model)
	if err != nil {
		logger.Error("Evaluation failed", err, log.OperationKey, log.OperationScore, log.PhaseKey, log.PhaseTesting)
		return nil, errors.Wrap(err, "evaluate test")
	}
	for _, s := range []struct {
		phase string
		m     metrics.Regression
	}{{log.PhaseValidation, train}, {log.PhaseTesting, test}} {
		logger.Info("Model evaluated",
			log.OperationKey, log.OperationScore,
			log.PhaseKey, s.phase,
			log.SamplesKey, s.m.N,
			log.MSEKey, s.m.MSE,
			log.RMSEKey, s.m.RMSE,
			log.R2ScoreKey, s.m.R2,
		)
	}

	yTrue, yPred := metrics.Vectors(split.Test, model)
	residuals, err := metrics.Residuals(yTrue, yPred)
	if err != nil {
		return nil, errors.Wrap(err, "residuals")
	}

	logger.Debug("Pipeline completed", log.DurationMsKey, time.Since(start).Milliseconds())

	return &Result{
		Dataset:       ds,
		Split:         split,
		Model:         model,
		Train:         train,
		Test:          test,
		TestFitted:    mat.Col(nil, 0, yPred),
		TestResiduals: mat.Col(nil, 0, residuals),
	}, nil
}

// fit trains the estimator on the n×1 spend matrix of train.
func fit(train *dataset.Dataset, logger log.Logger) (linear.Model, error) {
	n := train.Len()
	if n == 0 {
		return linear.Model{}, errors.NewInsufficientDataError("analysis.fit", 2, 0)
	}
	X := mat.NewDense(n, 1, train.Spends())
	y := mat.NewVecDense(n, train.Sales())

	lr := linear.NewLinearRegressionWithLogger(logger)
	if err := lr.Fit(X, y); err != nil {
		return linear.Model{}, err
	}
	return lr.Model()
}
