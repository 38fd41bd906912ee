package web

import (
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"daily-log/internal/services"
)

// lineStyle renders dots connected by a thin line so single-day gaps
// stay visible.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
		DotWidth:    4,
		DotColor:    col,
	}
}

// renderSeriesPNG draws one numeric column over time as a PNG. Callers
// must pass at least two points; the renderer rejects shorter series.
func renderSeriesPNG(w io.Writer, title string, points []services.Point) error {
	times := make([]time.Time, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		times[i] = p.Date
		values[i] = p.Value
	}

	ch := chart.Chart{
		Title:      title,
		Width:      800,
		Height:     320,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 12}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: times,
				YValues: values,
				Style:   lineStyle(chart.ColorBlue),
			},
		},
	}
	return ch.Render(chart.PNG, w)
}
