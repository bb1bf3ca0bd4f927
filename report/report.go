// Package report renders the console summary of an analysis run: the data
// preview, the fitted equation, train/test metrics, example predictions and a
// plain-language interpretation of the coefficients.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/YuminosukeSato/adspend/analysis"
	"github.com/YuminosukeSato/adspend/dataset"
	"github.com/YuminosukeSato/adspend/pkg/errors"
)

// Options selects the optional parts of the report.
type Options struct {
	// HeadRows is how many leading samples are previewed.
	HeadRows int
	// ExampleSpends are the spends shown under "Example Predictions".
	ExampleSpends []float64
	// ProbeSpend is predicted once more at the end of the report.
	ProbeSpend float64
	// IncludeROI adds the (slope-1)*100 return-on-investment heuristic.
	IncludeROI bool
	// ChartsSaved adds the assumption-check section pointing at the
	// residual charts. Set it only when the charts were written.
	ChartsSaved bool
}

// DefaultOptions mirrors the reference report.
func DefaultOptions() Options {
	return Options{
		HeadRows:      5,
		ExampleSpends: []float64{50, 100, 150, 200},
		ProbeSpend:    250,
		IncludeROI:    true,
		ChartsSaved:   true,
	}
}

// ROI returns the heuristic return on one advertising dollar, in percent.
func ROI(slope float64) float64 {
	return (slope - 1) * 100
}

// printer keeps the first write error so the report body stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Write prints the report for res to w.
func Write(w io.Writer, res *analysis.Result, opts Options) (err error) {
	defer errors.Recover(&err, "report.Write")

	if res == nil || res.Dataset == nil || res.Split == nil {
		return errors.NewValueError("report.Write", "result is incomplete")
	}
	p := &printer{w: w}

	p.printf("Generated dataset sample:\n")
	writeSamples(p, res.Dataset.Head(opts.HeadRows))

	desc, err := res.Dataset.Describe()
	if err != nil {
		return err
	}
	p.printf("\nData statistics:\n")
	writeDescription(p, desc)

	p.printf("\nTraining set size: %d samples\n", res.Split.Train.Len())
	p.printf("Testing set size: %d samples\n", res.Split.Test.Len())

	m := res.Model
	p.printf("\nModel equation: Sales = %.2f + %.2f × Advertising_Spend\n", m.Intercept, m.Slope)

	p.printf("\nModel Evaluation Metrics:\n")
	p.printf("Training set - MSE: %.2f, RMSE: %.2f, R²: %.4f\n", res.Train.MSE, res.Train.RMSE, res.Train.R2)
	p.printf("Testing set  - MSE: %.2f, RMSE: %.2f, R²: %.4f\n", res.Test.MSE, res.Test.RMSE, res.Test.R2)

	if len(opts.ExampleSpends) > 0 {
		p.printf("\nExample Predictions:\n")
		for _, spend := range opts.ExampleSpends {
			p.printf("If Advertising Spend is $%.2f, predicted Sales: $%.2f\n", spend, m.Predict(spend))
		}
	}

	p.printf("\nBusiness Interpretation:\n")
	p.printf("Intercept (β₀): $%.2f - Expected sales with zero advertising\n", m.Intercept)
	p.printf("Coefficient (β₁): %.2f - For every $1 increase in advertising, sales increase by $%.2f\n", m.Slope, m.Slope)
	switch {
	case m.Slope <= 0:
		p.printf("Advertising does not appear to have a positive effect on sales\n")
	case opts.IncludeROI:
		roi := ROI(m.Slope)
		p.printf("ROI: %.2f%% - Every $1 spent on advertising generates $%.2f in sales\n", roi, m.Slope)
		if roi > 0 {
			p.printf("Advertising appears profitable as ROI is positive\n")
		} else {
			p.printf("Advertising does not appear profitable as ROI is negative\n")
		}
	}
	p.printf("R² value: %.4f - This means approximately %.2f%% of the variation in sales\n", res.Test.R2, res.Test.R2*100)
	p.printf("can be explained by the variation in advertising spend.\n")

	if opts.ChartsSaved {
		p.printf("\nRegression Assumptions Check (Basic):\n")
		p.printf("Basic assumption checks completed and saved as images.\n")
		p.printf("Note: For a complete analysis, additional statistical tests would be recommended.\n")
	}

	p.printf("\nPrediction function is ready to use!\n")
	p.printf("Prediction for spend $%.2f: $%.2f\n", opts.ProbeSpend, m.Predict(opts.ProbeSpend))

	return p.err
}

func writeSamples(p *printer, samples []dataset.Sample) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "\tAdvertising_Spend\tSales\t\n")
	for i, s := range samples {
		_, _ = fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t\n", i, s.Spend, s.Sales)
	}
	p.err = tw.Flush()
}

func writeDescription(p *printer, d dataset.Description) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "\tAdvertising_Spend\tSales\t\n")
	rows := []struct {
		name        string
		spend, sale float64
	}{
		{"count", float64(d.Spend.Count), float64(d.Sales.Count)},
		{"mean", d.Spend.Mean, d.Sales.Mean},
		{"std", d.Spend.Std, d.Sales.Std},
		{"min", d.Spend.Min, d.Sales.Min},
		{"25%", d.Spend.Q25, d.Sales.Q25},
		{"50%", d.Spend.Median, d.Sales.Median},
		{"75%", d.Spend.Q75, d.Sales.Q75},
		{"max", d.Spend.Max, d.Sales.Max},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t\n", r.name, r.spend, r.sale)
	}
	p.err = tw.Flush()
}
