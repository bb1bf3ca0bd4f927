// Package config defines the run configuration and loads it from an optional
// YAML file and ADSPEND_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/YuminosukeSato/adspend/analysis"
	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/pkg/errors"
	"github.com/YuminosukeSato/adspend/pkg/log"
	"github.com/YuminosukeSato/adspend/plotting"
	"github.com/YuminosukeSato/adspend/report"
)

const (
	// DefaultConfigName is looked up as adspend.yaml in the working directory.
	DefaultConfigName = "adspend"

	// EnvPrefix maps data.samples to ADSPEND_DATA_SAMPLES and so on.
	EnvPrefix = "ADSPEND"
)

// Logging backends.
const (
	BackendSlog    = "slog"
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
)

// Configuration holds all configuration for adspend.
type Configuration struct {
	Data    DataConfig
	Split   SplitConfig
	Report  ReportConfig
	Plots   PlotsConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// DataConfig parameterises the synthetic generator.
type DataConfig struct {
	Samples   int
	Seed      uint64
	SpendMin  float64 `mapstructure:"spend_min"`
	SpendMax  float64 `mapstructure:"spend_max"`
	Intercept float64
	Slope     float64
	NoiseStd  float64 `mapstructure:"noise_std"`
}

// SplitConfig controls the train/test partition.
type SplitConfig struct {
	TestFraction float64 `mapstructure:"test_fraction"`
	Seed         uint64
}

// ReportConfig controls the console report.
type ReportConfig struct {
	IncludeROI    bool      `mapstructure:"include_roi"`
	ExampleSpends []float64 `mapstructure:"example_spends"`
	ProbeSpend    float64   `mapstructure:"probe_spend"`
}

// PlotsConfig controls chart output.
type PlotsConfig struct {
	Enabled       bool
	HistogramBins int     `mapstructure:"histogram_bins"`
	WidthIn       float64 `mapstructure:"width_in"`
	HeightIn      float64 `mapstructure:"height_in"`

	RegressionWidthIn  float64 `mapstructure:"regression_width_in"`
	RegressionHeightIn float64 `mapstructure:"regression_height_in"`
}

// OutputConfig holds output locations.
type OutputConfig struct {
	Dir string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text/console
	Backend    string // slog, zap, zerolog
	OutputFile string `mapstructure:"output_file"` // zap only
}

func setDefaults(v *viper.Viper) {
	gen := dataset.DefaultGeneratorConfig()
	v.SetDefault("data.samples", gen.Samples)
	v.SetDefault("data.seed", dataset.DefaultSeed)
	v.SetDefault("data.spend_min", gen.SpendMin)
	v.SetDefault("data.spend_max", gen.SpendMax)
	v.SetDefault("data.intercept", gen.Intercept)
	v.SetDefault("data.slope", gen.Slope)
	v.SetDefault("data.noise_std", gen.NoiseStdDev)

	v.SetDefault("split.test_fraction", dataset.DefaultTestFraction)
	v.SetDefault("split.seed", dataset.DefaultSeed)

	rep := report.DefaultOptions()
	v.SetDefault("report.include_roi", rep.IncludeROI)
	v.SetDefault("report.example_spends", rep.ExampleSpends)
	v.SetDefault("report.probe_spend", rep.ProbeSpend)

	plots := plotting.DefaultOptions()
	v.SetDefault("plots.enabled", true)
	v.SetDefault("plots.histogram_bins", plots.HistogramBins)
	v.SetDefault("plots.width_in", plots.WidthIn)
	v.SetDefault("plots.height_in", plots.HeightIn)
	v.SetDefault("plots.regression_width_in", plots.RegressionWidthIn)
	v.SetDefault("plots.regression_height_in", plots.RegressionHeightIn)

	v.SetDefault("output.dir", ".")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.backend", BackendSlog)
	v.SetDefault("logging.output_file", "")
}

// LoadDefault loads adspend.yaml from the working directory if present.
func LoadDefault() (*Configuration, error) {
	return Load("")
}

// Load builds the configuration from defaults, the YAML file at configPath
// (or adspend.yaml in the working directory when configPath is empty and the
// file exists) and ADSPEND_* environment variables, in increasing precedence.
func Load(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", configPath)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "error reading config file")
			}
		}
	}

	var conf Configuration
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrap(err, "unable to decode into struct")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate reports the first impossible value as an InvalidArgument error.
func (c *Configuration) Validate() error {
	if err := c.Generator().Validate(); err != nil {
		return err
	}
	if !(c.Split.TestFraction > 0 && c.Split.TestFraction < 1) {
		return errors.NewValidationError("split.test_fraction", "must be in (0, 1)", c.Split.TestFraction)
	}
	if c.Plots.HistogramBins <= 0 {
		return errors.NewValidationError("plots.histogram_bins", "must be positive", c.Plots.HistogramBins)
	}
	if c.Plots.WidthIn <= 0 || c.Plots.HeightIn <= 0 {
		return errors.NewValidationError("plots.width_in", "chart size must be positive", []float64{c.Plots.WidthIn, c.Plots.HeightIn})
	}
	if c.Plots.RegressionWidthIn <= 0 || c.Plots.RegressionHeightIn <= 0 {
		return errors.NewValidationError("plots.regression_width_in", "chart size must be positive",
			[]float64{c.Plots.RegressionWidthIn, c.Plots.RegressionHeightIn})
	}
	if c.Output.Dir == "" {
		return errors.NewValidationError("output.dir", "must not be empty", c.Output.Dir)
	}
	if _, err := log.ToLogLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "json", "text", "console":
	default:
		return errors.NewValidationError("logging.format", "must be json, text or console", c.Logging.Format)
	}
	switch c.Logging.Backend {
	case BackendSlog, BackendZap, BackendZerolog:
	default:
		return errors.NewValidationError("logging.backend", "must be slog, zap or zerolog", c.Logging.Backend)
	}
	return nil
}

// Generator returns the synthetic data parameters.
func (c *Configuration) Generator() dataset.GeneratorConfig {
	return dataset.GeneratorConfig{
		Samples:     c.Data.Samples,
		SpendMin:    c.Data.SpendMin,
		SpendMax:    c.Data.SpendMax,
		Intercept:   c.Data.Intercept,
		Slope:       c.Data.Slope,
		NoiseStdDev: c.Data.NoiseStd,
	}
}

// AnalysisOptions returns the pipeline options.
func (c *Configuration) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Generator:    c.Generator(),
		DataSeed:     c.Data.Seed,
		TestFraction: c.Split.TestFraction,
		SplitSeed:    c.Split.Seed,
	}
}

// ReportOptions returns the console report options.
func (c *Configuration) ReportOptions() report.Options {
	opts := report.DefaultOptions()
	opts.IncludeROI = c.Report.IncludeROI
	opts.ExampleSpends = c.Report.ExampleSpends
	opts.ProbeSpend = c.Report.ProbeSpend
	opts.ChartsSaved = c.Plots.Enabled
	return opts
}

// PlotOptions returns the chart options.
func (c *Configuration) PlotOptions() plotting.Options {
	return plotting.Options{
		WidthIn:            c.Plots.WidthIn,
		HeightIn:           c.Plots.HeightIn,
		RegressionWidthIn:  c.Plots.RegressionWidthIn,
		RegressionHeightIn: c.Plots.RegressionHeightIn,
		HistogramBins:      c.Plots.HistogramBins,
	}
}
