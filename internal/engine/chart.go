package engine

import (
	"fmt"
	"image/color"
	"smacross/types"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	strategyColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	buyHoldColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// RenderEquityChart saves a line chart of both equity curves. The image
// format follows the file extension (png, svg, pdf...).
func RenderEquityChart(path string, chart types.EquityChart) error {
	if len(chart.Dates) == 0 {
		return fmt.Errorf("no points to chart for %s", chart.Ticker)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s SMA crossover vs buy & hold", chart.Ticker)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Equity"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	strategy, err := equityLine(chart, chart.Strategy, strategyColor)
	if err != nil {
		return err
	}
	buyHold, err := equityLine(chart, chart.BuyHold, buyHoldColor)
	if err != nil {
		return err
	}
	p.Add(strategy, buyHold)
	p.Legend.Add("Strategy", strategy)
	p.Legend.Add("Buy & Hold", buyHold)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func equityLine(chart types.EquityChart, ys []float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(chart.Dates))
	for i, d := range chart.Dates {
		pts[i].X = float64(d.Unix())
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("equity line: %w", err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	return line, nil
}
