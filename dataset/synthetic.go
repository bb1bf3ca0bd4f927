package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/adspend/pkg/errors"
)

// Defaults of the advertising scenario: spend between $10 and $300, and
// sales = 50 + 2*spend + N(0, 30²).
const (
	DefaultSamples     = 100
	DefaultSpendMin    = 10.0
	DefaultSpendMax    = 300.0
	DefaultIntercept   = 50.0
	DefaultSlope       = 2.0
	DefaultNoiseStdDev = 30.0
	DefaultSeed        = 42
)

// GeneratorConfig describes the synthetic linear process.
type GeneratorConfig struct {
	Samples     int
	SpendMin    float64
	SpendMax    float64
	Intercept   float64
	Slope       float64
	NoiseStdDev float64
}

// DefaultGeneratorConfig returns the advertising scenario defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Samples:     DefaultSamples,
		SpendMin:    DefaultSpendMin,
		SpendMax:    DefaultSpendMax,
		Intercept:   DefaultIntercept,
		Slope:       DefaultSlope,
		NoiseStdDev: DefaultNoiseStdDev,
	}
}

// Validate reports the first invalid field as an InvalidArgument error.
func (c GeneratorConfig) Validate() error {
	switch {
	case c.Samples <= 0:
		return errors.NewValidationError("samples", "must be positive", c.Samples)
	case c.SpendMin <= 0:
		return errors.NewValidationError("spend_min", "spend must be positive", c.SpendMin)
	case c.SpendMin >= c.SpendMax:
		return errors.NewValidationError("spend_max", "must exceed spend_min", c.SpendMax)
	case c.NoiseStdDev < 0:
		return errors.NewValidationError("noise_std", "must not be negative", c.NoiseStdDev)
	}
	return errors.CheckFinite("generator", []float64{c.SpendMin, c.SpendMax, c.Intercept, c.Slope, c.NoiseStdDev})
}

// NewSource returns the PCG source used for a given seed. The same seed
// always yields the same stream.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// Generate draws cfg.Samples spends uniformly from [SpendMin, SpendMax) and
// then one Gaussian noise term per sample, all from src. Spends are drawn
// before any noise so the spend column does not depend on NoiseStdDev.
func Generate(cfg GeneratorConfig, src rand.Source) (ds *Dataset, err error) {
	defer errors.Recover(&err, "dataset.Generate")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.NewValueError("dataset.Generate", "random source is nil")
	}

	spend := distuv.Uniform{Min: cfg.SpendMin, Max: cfg.SpendMax, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: cfg.NoiseStdDev, Src: src}

	samples := make([]Sample, cfg.Samples)
	for i := range samples {
		samples[i].Spend = spend.Rand()
	}
	for i := range samples {
		samples[i].Sales = cfg.Intercept + cfg.Slope*samples[i].Spend + noise.Rand()
	}
	return &Dataset{samples: samples}, nil
}

// GenerateSeeded is Generate with a fresh source for seed.
func GenerateSeeded(cfg GeneratorConfig, seed uint64) (*Dataset, error) {
	return Generate(cfg, NewSource(seed))
}
