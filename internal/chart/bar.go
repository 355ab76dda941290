// Package chart renders the chart projection of a dataset as an SVG bar chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/JonMunkholm/csvview/internal/core"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("chart has no data")

const (
	minWidth   = 640
	barWidth   = 24
	barSpacing = 8
	padding    = 80
	maxLabel   = 14
)

// Options control the rendered image.
type Options struct {
	Title  string
	YName  string // value axis caption, usually the y column
	Height int    // default: 400
}

// RenderSVG draws points as a bar chart, one bar per point in order.
// The value axis always includes zero. Nothing is written on error.
func RenderSVG(w io.Writer, points []core.ChartPoint, opts Options) error {
	if len(points) == 0 {
		return ErrNoData
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}

	bars := make([]chart.Value, len(points))
	lo, hi := 0.0, 0.0
	for i, p := range points {
		bars[i] = chart.Value{
			Label: truncate(p.Category, maxLabel),
			Value: p.Value,
			Style: barStyle(p.Value),
		}
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	lo, hi = axisBounds(lo, hi)

	bc := chart.BarChart{
		Title:      opts.Title,
		Width:      max(minWidth, len(bars)*(barWidth+barSpacing)+padding),
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  opts.YName,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks: axisTicks(lo, hi, 6),
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// axisBounds widens [lo, hi] to round values of the span's magnitude.
// lo <= 0 <= hi on entry, and the result keeps zero inside with a non-zero span.
func axisBounds(lo, hi float64) (float64, float64) {
	if hi <= lo {
		hi = lo + 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(hi-lo)))
	if math.IsInf(mag, 0) || mag <= 0 {
		return lo, hi
	}
	return math.Floor(lo/mag) * mag, math.Ceil(hi/mag) * mag
}

// axisTicks picks about n evenly spaced ticks on a 1, 2, 2.5, 5 step.
func axisTicks(lo, hi float64, n int) []chart.Tick {
	if n < 2 || hi <= lo {
		return nil
	}
	mag := math.Pow(10, math.Floor(math.Log10((hi-lo)/float64(n-1))))
	step := mag
	best := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		count := math.Max(math.Ceil((hi-lo)/(c*mag)), 2)
		if score := math.Abs(count - float64(n)); score < best {
			best, step = score, c*mag
		}
	}

	var ticks []chart.Tick
	for v := math.Floor(lo/step) * step; v <= hi+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

// Placeholder writes a minimal SVG carrying msg, shown when no chart can be drawn.
func Placeholder(w io.Writer, msg string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="120" viewBox="0 0 %d 120">`+
			`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#666">%s</text></svg>`,
		minWidth, minWidth, html.EscapeString(msg))
	return err
}

func barStyle(v float64) chart.Style {
	color := drawing.ColorFromHex("8884d8")
	if v < 0 {
		color = drawing.ColorFromHex("d88884")
	}
	return chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
