package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/adspend/analysis"
	"github.com/YuminosukeSato/adspend/pkg/errors"
	"github.com/YuminosukeSato/adspend/plotting"
	"github.com/YuminosukeSato/adspend/report"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adspend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultReproducesReferenceRun(t *testing.T) {
	conf, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, analysis.DefaultOptions(), conf.AnalysisOptions())
	assert.Equal(t, report.DefaultOptions(), conf.ReportOptions())
	assert.Equal(t, plotting.DefaultOptions(), conf.PlotOptions())
	assert.True(t, conf.Plots.Enabled)
	assert.Equal(t, ".", conf.Output.Dir)
	assert.Equal(t, "info", conf.Logging.Level)
	assert.Equal(t, "json", conf.Logging.Format)
	assert.Equal(t, BackendSlog, conf.Logging.Backend)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
data:
  samples: 250
  seed: 7
  noise_std: 10
split:
  test_fraction: 0.25
  seed: 9
report:
  include_roi: false
  example_spends: [25, 75]
plots:
  enabled: false
  histogram_bins: 20
output:
  dir: out
logging:
  level: debug
  backend: zap
  format: console
`)

	conf, err := Load(path)
	require.NoError(t, err)

	opts := conf.AnalysisOptions()
	assert.Equal(t, 250, opts.Generator.Samples)
	assert.Equal(t, uint64(7), opts.DataSeed)
	assert.Equal(t, 10.0, opts.Generator.NoiseStdDev)
	assert.Equal(t, 2.0, opts.Generator.Slope, "unset keys keep their defaults")
	assert.Equal(t, 0.25, opts.TestFraction)
	assert.Equal(t, uint64(9), opts.SplitSeed)

	assert.False(t, conf.ReportOptions().IncludeROI)
	assert.Equal(t, []float64{25, 75}, conf.ReportOptions().ExampleSpends)
	assert.False(t, conf.Plots.Enabled)
	assert.False(t, conf.ReportOptions().ChartsSaved, "no assumption-check section without charts")
	assert.Equal(t, 20, conf.PlotOptions().HistogramBins)
	assert.Equal(t, "out", conf.Output.Dir)
	assert.Equal(t, BackendZap, conf.Logging.Backend)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "data:\n  samples: 250\n")
	t.Setenv("ADSPEND_DATA_SAMPLES", "500")
	t.Setenv("ADSPEND_SPLIT_SEED", "11")
	t.Setenv("ADSPEND_REPORT_INCLUDE_ROI", "false")
	t.Setenv("ADSPEND_LOGGING_BACKEND", "zerolog")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, conf.Data.Samples)
	assert.Equal(t, uint64(11), conf.Split.Seed)
	assert.False(t, conf.Report.IncludeROI)
	assert.Equal(t, BackendZerolog, conf.Logging.Backend)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero samples", "data:\n  samples: 0\n"},
		{"negative samples", "data:\n  samples: -3\n"},
		{"inverted spend range", "data:\n  spend_min: 300\n  spend_max: 10\n"},
		{"negative noise", "data:\n  noise_std: -1\n"},
		{"test fraction of one", "split:\n  test_fraction: 1\n"},
		{"zero histogram bins", "plots:\n  histogram_bins: 0\n"},
		{"zero chart width", "plots:\n  width_in: 0\n"},
		{"negative regression chart height", "plots:\n  regression_height_in: -7\n"},
		{"unknown log level", "logging:\n  level: verbose\n"},
		{"unknown backend", "logging:\n  backend: logrus\n"},
		{"unknown format", "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
