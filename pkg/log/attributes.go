// Package log defines standard attribute keys for the regression pipeline.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so log lines from every stage can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "generate", "split", "fit", "predict", "score", "render"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the pipeline.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (always 1 for spend).
	FeaturesKey = "data.features"

	// TrainSamplesKey and TestSamplesKey record split sizes.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// FingerprintKey records the xxhash fingerprint of a dataset.
	FingerprintKey = "data.fingerprint"
)

// Model and Metric Values
const (
	InterceptKey = "model.intercept"
	SlopeKey     = "model.slope"

	MSEKey  = "metrics.mse"
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² coefficient of determination.
	// Range [-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorKindKey carries the pkg/errors Kind of a logged error.
	ErrorKindKey = "error.kind"

	// SuggestionKey provides hints for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	TestFractionKey = "config.test_fraction"

	// OutputPathKey records where an artifact was written.
	OutputPathKey = "output.path"
)

// Standard attribute values.
const (
	OperationGenerate = "generate"
	OperationSplit    = "split"
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationScore    = "score"
	OperationRender   = "render"

	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseTesting       = "testing"
	PhaseInference     = "inference"
	PhaseReporting     = "reporting"
)
