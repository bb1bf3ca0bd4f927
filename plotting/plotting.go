// Package plotting draws the diagnostic charts of an analysis run with gonum/plot.
package plotting

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/adspend/analysis"
	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/metrics"
	"github.com/YuminosukeSato/adspend/pkg/errors"
	"github.com/YuminosukeSato/adspend/pkg/log"
)

// Chart file names written by Render.
const (
	RawFile        = "sales_vs_advertising_raw.png"
	RegressionFile = "sales_vs_advertising_regression.png"
	ResidualsFile  = "residuals_vs_fitted.png"
	HistogramFile  = "residuals_histogram.png"
)

const (
	// LinePoints is the number of evenly spaced spends the regression line is drawn through.
	LinePoints = 100
	// BandZ scales the residual standard error into an approximate 95% band.
	BandZ = 1.96
)

var (
	pointColor = color.RGBA{B: 200, A: 180}
	lineColor  = color.RGBA{R: 220, A: 255}
	bandColor  = color.RGBA{R: 128, G: 128, B: 128, A: 60}
)

// Options controls chart size and histogram resolution. The regression
// chart has its own size; WidthIn and HeightIn apply to the other three.
type Options struct {
	WidthIn            float64
	HeightIn           float64
	RegressionWidthIn  float64
	RegressionHeightIn float64
	HistogramBins      int
}

// DefaultOptions returns 10×6 inch charts, a 12×7 inch regression chart and a
// 15-bin histogram.
func DefaultOptions() Options {
	return Options{
		WidthIn:            10,
		HeightIn:           6,
		RegressionWidthIn:  12,
		RegressionHeightIn: 7,
		HistogramBins:      15,
	}
}

// size returns the width and height of the named chart.
func (o Options) size(file string) (w, h vg.Length) {
	if file == RegressionFile {
		return vg.Length(o.RegressionWidthIn) * vg.Inch, vg.Length(o.RegressionHeightIn) * vg.Inch
	}
	return vg.Length(o.WidthIn) * vg.Inch, vg.Length(o.HeightIn) * vg.Inch
}

// Render writes the four charts into dir and returns their paths.
func Render(dir string, res *analysis.Result, opts Options) (paths []string, err error) {
	defer errors.Recover(&err, "plotting.Render")

	if res == nil || res.Dataset == nil || res.Split == nil {
		return nil, errors.NewValueError("plotting.Render", "result is incomplete")
	}
	if opts.WidthIn <= 0 || opts.HeightIn <= 0 || opts.RegressionWidthIn <= 0 || opts.RegressionHeightIn <= 0 {
		return nil, errors.NewValidationError("plots.size", "width and height must be positive",
			[]float64{opts.WidthIn, opts.HeightIn, opts.RegressionWidthIn, opts.RegressionHeightIn})
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", dir)
	}

	logger := log.GetLoggerWithName("plotting")

	charts := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{RawFile, func() (*plot.Plot, error) { return RawScatter(res.Dataset) }},
		{RegressionFile, func() (*plot.Plot, error) { return RegressionChart(res) }},
		{ResidualsFile, func() (*plot.Plot, error) { return ResidualsChart(res) }},
		{HistogramFile, func() (*plot.Plot, error) { return ResidualHistogram(res, opts.HistogramBins) }},
	}

	for _, c := range charts {
		p, err := c.build()
		if err != nil {
			return paths, errors.Wrapf(err, "build %s", c.file)
		}
		path := filepath.Join(dir, c.file)
		w, h := opts.size(c.file)
		if err := p.Save(w, h, path); err != nil {
			return paths, errors.Wrapf(err, "save %s", path)
		}
		logger.Debug("Chart saved",
			log.OperationKey, log.OperationRender,
			log.PhaseKey, log.PhaseReporting,
			log.OutputPathKey, path,
		)
		paths = append(paths, path)
	}
	return paths, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func scatter(xs, ys []float64) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = pointColor
	s.GlyphStyle.Radius = vg.Points(3)
	return s, nil
}

// RawScatter plots every sample of ds.
func RawScatter(ds *dataset.Dataset) (*plot.Plot, error) {
	p := newPlot("Sales vs. Advertising Spend", "Advertising Spend ($)", "Sales ($)")
	s, err := scatter(ds.Spends(), ds.Sales())
	if err != nil {
		return nil, err
	}
	p.Add(s)
	return p, nil
}

// RegressionChart plots the test samples, the fitted line across the full
// spend range and, when the test set has more than two samples, a ±1.96·s band
// around the line.
func RegressionChart(res *analysis.Result) (*plot.Plot, error) {
	p := newPlot("Simple Linear Regression: Sales vs. Advertising Spend", "Advertising Spend ($)", "Sales ($)")

	xs := lineSpends(res.Dataset)
	band, ok, err := confidenceBand(res, xs)
	if err != nil {
		return nil, err
	}
	if ok {
		p.Add(band)
		p.Legend.Add("95% Confidence Interval", band)
	}

	s, err := scatter(res.Split.Test.Spends(), res.Split.Test.Sales())
	if err != nil {
		return nil, err
	}
	p.Add(s)
	p.Legend.Add("Actual Sales", s)

	pts := make(plotter.XYs, len(xs))
	for i, x := range xs {
		pts[i].X = x
		pts[i].Y = res.Model.Predict(x)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Regression Line", line)
	p.Legend.Top = true
	p.Legend.Left = true

	return p, nil
}

// lineSpends returns LinePoints evenly spaced spends from the dataset minimum to maximum.
func lineSpends(ds *dataset.Dataset) []float64 {
	spends := ds.Spends()
	return floats.Span(make([]float64, LinePoints), floats.Min(spends), floats.Max(spends))
}

// confidenceBand builds the band polygon. ok is false, with an
// UndefinedMetricWarning emitted, when the residual standard error of the
// test set is undefined.
func confidenceBand(res *analysis.Result, xs []float64) (_ *plotter.Polygon, ok bool, err error) {
	yTrue, yPred := metrics.Vectors(res.Split.Test, res.Model)
	s, err := metrics.ResidualStdError(yTrue, yPred)
	if err != nil {
		if errors.KindOf(err) != errors.KindInsufficientData {
			return nil, false, err
		}
		errors.Warn(errors.NewUndefinedMetricWarning("residual_std_error",
			"fewer than 3 test samples, confidence band omitted", math.NaN()))
		return nil, false, nil
	}

	outline := make(plotter.XYs, 0, 2*len(xs))
	for _, x := range xs {
		outline = append(outline, plotter.XY{X: x, Y: res.Model.Predict(x) + BandZ*s})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		outline = append(outline, plotter.XY{X: xs[i], Y: res.Model.Predict(xs[i]) - BandZ*s})
	}
	poly, err := plotter.NewPolygon(outline)
	if err != nil {
		return nil, false, err
	}
	poly.Color = bandColor
	poly.LineStyle.Width = 0
	return poly, true, nil
}

// ResidualsChart plots test residuals against fitted values with a zero reference line.
func ResidualsChart(res *analysis.Result) (*plot.Plot, error) {
	p := newPlot("Residuals vs. Fitted Values (Check for Linearity & Homoscedasticity)", "Fitted Values", "Residuals")

	s, err := scatter(res.TestFitted, res.TestResiduals)
	if err != nil {
		return nil, err
	}
	p.Add(s)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = lineColor
	p.Add(zero)
	return p, nil
}

// ResidualHistogram plots the distribution of the test residuals.
func ResidualHistogram(res *analysis.Result, bins int) (*plot.Plot, error) {
	if bins <= 0 {
		return nil, errors.NewValidationError("plots.histogram_bins", "must be positive", bins)
	}
	p := newPlot("Histogram of Residuals (Check for Normality)", "Residual Value", "Frequency")

	h, err := plotter.NewHist(plotter.Values(res.TestResiduals), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = pointColor
	p.Add(h)
	return p, nil
}
