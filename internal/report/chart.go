package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ConvergenceChart builds a line chart of the max delta of every sweep, with the tolerance as a flat line.
func ConvergenceChart(history []float32, tolerance float32) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Value iteration convergence",
			Subtitle: fmt.Sprintf("%d sweeps, tolerance %g", len(history), tolerance),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sweep"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "max delta"}),
	)

	sweeps := make([]string, 0, len(history))
	deltas := make([]opts.LineData, 0, len(history))
	limit := make([]opts.LineData, 0, len(history))

	for i, delta := range history {
		sweeps = append(sweeps, strconv.Itoa(i+1))
		deltas = append(deltas, opts.LineData{Value: delta})
		limit = append(limit, opts.LineData{Value: tolerance})
	}

	line.SetXAxis(sweeps).
		AddSeries("max delta", deltas).
		AddSeries("tolerance", limit)

	return line
}

// WriteConvergenceChart renders the convergence chart as an HTML page.
func WriteConvergenceChart(w io.Writer, history []float32, tolerance float32) error {
	page := components.NewPage()
	page.PageTitle = "minithello"
	page.AddCharts(ConvergenceChart(history, tolerance))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}

// SaveConvergenceChart writes the convergence chart to an HTML file.
func SaveConvergenceChart(path string, history []float32, tolerance float32) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating chart file: %w", err)
	}

	if err = WriteConvergenceChart(file, history, tolerance); err != nil {
		file.Close() //nolint: errcheck
		return err
	}

	return file.Close()
}
