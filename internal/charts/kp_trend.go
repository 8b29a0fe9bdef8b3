package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// RenderKpTrend draws the recent Kp trend as a PNG from forecast intervals.
// The dots are color-coded by activity zone; the connecting line shows the
// tendency.
func RenderKpTrend(intervals []models.ForecastInterval) ([]byte, error) {
	if len(intervals) < 2 {
		return nil, fmt.Errorf("need at least 2 intervals to draw a trend, got %d", len(intervals))
	}

	xValues := make([]float64, len(intervals))
	yValues := make([]float64, len(intervals))
	ticks := make([]chart.Tick, len(intervals))
	for i, iv := range intervals {
		xValues[i] = float64(i)
		yValues[i] = iv.Kp
		ticks[i] = chart.Tick{
			Value: float64(i),
			Label: fmt.Sprintf("%02d:00", iv.LocalStartHour),
		}
	}

	graph := chart.Chart{
		Title: "Kp index trend (local time)",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Width:  700,
		Height: 350,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 50, Right: 20, Bottom: 40},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Kp",
			Range: &chart.ContinuousRange{Min: 0, Max: 9},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Kp",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
					StrokeWidth: 2,
					DotWidth:    6,
					DotColorProvider: func(_, _ chart.Range, index int, _, y float64) drawing.Color {
						return kpZoneColor(y)
					},
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render Kp trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

// kpZoneColor matches the display scale: green quiet, yellow minor, orange
// moderate storm, red strong and above.
func kpZoneColor(kp float64) drawing.Color {
	switch {
	case kp <= 2:
		return drawing.Color{R: 0, G: 153, B: 51, A: 255}
	case kp <= 4:
		return drawing.Color{R: 255, G: 193, B: 7, A: 255}
	case kp <= 6:
		return drawing.Color{R: 255, G: 87, B: 34, A: 255}
	default:
		return drawing.Color{R: 204, G: 0, B: 0, A: 255}
	}
}
