package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"salarylens/internal/salary"
)

const (
	// TakeHomeChartTitle is the title of the hike% vs take-home line chart
	TakeHomeChartTitle = "Hike % vs New In-hand Salary"
	// PayoutChartTitle is the title of the hike% vs combined payout bar chart
	PayoutChartTitle = "Hike % vs May Salary (Incl. Arrear)"
)

// ErrNoProjections is returned when there are no rows to plot
var ErrNoProjections = errors.New("no projection rows to plot")

// ChartRenderer draws projection charts as PNG images.
type ChartRenderer struct {
	width  int
	height int
}

// NewChartRenderer creates a renderer producing width x height images
func NewChartRenderer(width, height int) *ChartRenderer {
	return &ChartRenderer{width: width, height: height}
}

// TakeHome renders the line chart of hike percentage against the new
// monthly take-home.
func (c *ChartRenderer) TakeHome(out io.Writer, rows []salary.Projection) error {
	if len(rows) == 0 {
		return ErrNoProjections
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.HikePercent)
		ys[i] = r.NewTakeHome
	}
	// go-chart needs at least two points for a continuous range
	if len(rows) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      TakeHomeChartTitle,
		Width:      c.width,
		Height:     c.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Hike %",
			ValueFormatter: percentFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "New In-hand",
			ValueFormatter: amountFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "New In-hand",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorBlue,
					DotWidth:    3,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return render(out, ch.Render)
}

// Payout renders the bar chart of hike percentage against the combined
// payout for the month the arrear is paid.
func (c *ChartRenderer) Payout(out io.Writer, rows []salary.Projection) error {
	if len(rows) == 0 {
		return ErrNoProjections
	}

	bars := make([]chart.Value, len(rows))
	yRange := &chart.ContinuousRange{}
	for i, r := range rows {
		bars[i] = chart.Value{
			Value: r.Combined,
			Label: fmt.Sprintf("%d", r.HikePercent),
		}
		yRange.Min = min(yRange.Min, r.Combined)
		yRange.Max = max(yRange.Max, r.Combined*1.05)
	}

	barWidth, spacing := barGeometry(c.width, len(bars))
	bc := chart.BarChart{
		Title:      PayoutChartTitle,
		Width:      c.width,
		Height:     c.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		XAxis:      chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Name:           "May In-hand",
			Range:          yRange,
			ValueFormatter: amountFormatter,
		},
		Bars: bars,
	}

	return render(out, bc.Render)
}

// barGeometry splits the plot width between bars and gaps so every bar fits
func barGeometry(width, n int) (barWidth, spacing int) {
	usable := width - 120
	if usable < n {
		return 1, 0
	}
	slot := usable / n
	barWidth = slot * 2 / 3
	if barWidth < 1 {
		barWidth = 1
	}
	return barWidth, slot - barWidth
}

func render(out io.Writer, fn func(chart.RendererProvider, io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}

func amountFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strings.TrimSuffix(FormatAmount(roundTo(f, 0)), ".00")
	}
	return ""
}
