package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/adspend/pkg/errors"
)

func TestGenerate(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	ds, err := GenerateSeeded(cfg, DefaultSeed)
	require.NoError(t, err)
	require.Equal(t, 100, ds.Len())

	for i, s := range ds.Samples() {
		assert.GreaterOrEqual(t, s.Spend, 10.0, "sample %d", i)
		assert.Less(t, s.Spend, 300.0, "sample %d", i)
		assert.False(t, math.IsNaN(s.Sales), "sample %d", i)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	a, err := GenerateSeeded(cfg, 42)
	require.NoError(t, err)
	b, err := GenerateSeeded(cfg, 42)
	require.NoError(t, err)
	c, err := GenerateSeeded(cfg, 43)
	require.NoError(t, err)

	assert.Equal(t, a.Samples(), b.Samples())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestGenerateWithoutNoiseIsExactlyLinear(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.NoiseStdDev = 0

	ds, err := GenerateSeeded(cfg, 7)
	require.NoError(t, err)

	for _, s := range ds.Samples() {
		assert.InDelta(t, 50+2*s.Spend, s.Sales, 1e-12)
	}
}

func TestGenerateSpendsIndependentOfNoise(t *testing.T) {
	quiet := DefaultGeneratorConfig()
	quiet.NoiseStdDev = 0
	noisy := DefaultGeneratorConfig()

	a, err := GenerateSeeded(quiet, 11)
	require.NoError(t, err)
	b, err := GenerateSeeded(noisy, 11)
	require.NoError(t, err)

	assert.Equal(t, a.Spends(), b.Spends())
	assert.NotEqual(t, a.Sales(), b.Sales())
}

func TestGenerateInvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"zero samples", func(c *GeneratorConfig) { c.Samples = 0 }},
		{"negative samples", func(c *GeneratorConfig) { c.Samples = -3 }},
		{"non-positive spend", func(c *GeneratorConfig) { c.SpendMin = 0 }},
		{"inverted range", func(c *GeneratorConfig) { c.SpendMin, c.SpendMax = 300, 10 }},
		{"negative noise", func(c *GeneratorConfig) { c.NoiseStdDev = -1 }},
		{"nan slope", func(c *GeneratorConfig) { c.Slope = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tt.mutate(&cfg)

			ds, err := GenerateSeeded(cfg, 1)
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))
		})
	}

	_, err := Generate(DefaultGeneratorConfig(), nil)
	assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))
}

func TestDatasetAccessors(t *testing.T) {
	ds, err := FromColumns([]float64{1, 2, 3}, []float64{10, 20, 30})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, Sample{Spend: 2, Sales: 20}, ds.At(1))
	assert.Equal(t, []Sample{{1, 10}, {2, 20}}, ds.Head(2))
	assert.Len(t, ds.Head(10), 3)
	assert.Empty(t, ds.Head(-1))

	// Returned slices are copies.
	spends := ds.Spends()
	spends[0] = 99
	assert.Equal(t, 1.0, ds.At(0).Spend)

	sub, err := ds.Subset([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, sub.Spends())

	_, err = ds.Subset([]int{3})
	assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))

	_, err = FromColumns([]float64{1}, []float64{1, 2})
	assert.Equal(t, errors.KindInvalidArgument, errors.KindOf(err))
}

func TestFromSamplesCopies(t *testing.T) {
	src := []Sample{{1, 2}}
	ds := FromSamples(src)
	src[0].Spend = 5

	assert.Equal(t, 1.0, ds.At(0).Spend)
}

func TestDescribe(t *testing.T) {
	ds, err := FromColumns([]float64{5, 1, 4, 2, 3}, []float64{10, 10, 10, 10, 10})
	require.NoError(t, err)

	d, err := ds.Describe()
	require.NoError(t, err)

	assert.Equal(t, 5, d.Spend.Count)
	assert.InDelta(t, 3.0, d.Spend.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), d.Spend.Std, 1e-12)
	assert.Equal(t, 1.0, d.Spend.Min)
	assert.Equal(t, 5.0, d.Spend.Max)
	assert.LessOrEqual(t, d.Spend.Min, d.Spend.Q25)
	assert.LessOrEqual(t, d.Spend.Q25, d.Spend.Median)
	assert.LessOrEqual(t, d.Spend.Median, d.Spend.Q75)
	assert.LessOrEqual(t, d.Spend.Q75, d.Spend.Max)
	assert.Zero(t, d.Sales.Std)

	_, err = FromSamples(nil).Describe()
	assert.Equal(t, errors.KindInsufficientData, errors.KindOf(err))
}
