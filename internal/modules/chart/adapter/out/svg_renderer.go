package out

import (
	"bytes"
	"context"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
	chartout "github.com/Xrenya/activity-tracker/internal/modules/chart/port/out"
	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

const (
	defaultWidth  = 720
	defaultHeight = 420
	maxWidth      = 2400
	barWidth      = 24
	barSpacing    = 8
	stackWidth    = 50
)

type SVGRenderer struct {
	height int
}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{height: defaultHeight}
}

var _ chartout.Renderer = (*SVGRenderer)(nil)

func (r *SVGRenderer) Render(ctx context.Context, fig domain.Figure) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fig.Validate(); err != nil {
		return nil, err
	}
	colors := fig.Colors()
	var buf bytes.Buffer
	var err error
	switch {
	case fig.Empty():
		err = r.emptyChart(fig).Render(chart.SVG, &buf)
	case fig.Kind == domain.KindBar:
		err = r.barChart(fig, colors).Render(chart.SVG, &buf)
	case fig.Kind == domain.KindStackedBar:
		err = r.stackedChart(fig, colors).Render(chart.SVG, &buf)
	default:
		return nil, fmt.Errorf("%w: unknown chart kind %q", apperrors.ErrInvalidInput, fig.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", fig.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *SVGRenderer) barChart(fig domain.Figure, colors map[string]string) chart.BarChart {
	bars := make([]chart.Value, 0, len(fig.Bars))
	for _, b := range fig.Bars {
		bars = append(bars, chart.Value{Label: b.Label, Value: b.Value, Style: fill(colors[b.Series])})
	}
	yAxis := chart.YAxis{
		Name:  fig.YLabel,
		Range: &chart.ContinuousRange{Min: 0, Max: upper(fig)},
	}
	for _, t := range fig.YTicks {
		yAxis.Ticks = append(yAxis.Ticks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	xAxis := chart.Style{FontSize: 8}
	if len(fig.Bars) > 12 {
		xAxis.TextRotationDegrees = 90
	}
	return chart.BarChart{
		Title:      fig.Title,
		Width:      clampWidth(len(fig.Bars) * (barWidth + barSpacing)),
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: background(fig),
		XAxis:      xAxis,
		YAxis:      yAxis,
		Bars:       bars,
	}
}

// emptyChart draws the axes of a figure with no bars. go-chart refuses to
// render a chart without bars, so a single zero-height bar stands in.
func (r *SVGRenderer) emptyChart(fig domain.Figure) chart.BarChart {
	c := r.barChart(fig, nil)
	c.Bars = []chart.Value{{Label: " ", Value: 0}}
	return c
}

func (r *SVGRenderer) stackedChart(fig domain.Figure, colors map[string]string) chart.StackedBarChart {
	stacks := make([]chart.StackedBar, 0, len(fig.Stacks))
	for _, st := range fig.Stacks {
		values := make([]chart.Value, 0, len(st.Bars))
		for _, b := range st.Bars {
			values = append(values, chart.Value{Label: fmt.Sprintf("%s %.2f", b.Label, b.Value), Value: b.Value, Style: fill(colors[b.Series])})
		}
		stacks = append(stacks, chart.StackedBar{Name: st.Label, Width: stackWidth, Values: values})
	}
	return chart.StackedBarChart{
		Title:      fig.Title,
		Width:      clampWidth(len(fig.Stacks) * (stackWidth + 2*barSpacing)),
		Height:     r.height,
		BarSpacing: 2 * barSpacing,
		Background: background(fig),
		XAxis:      chart.Style{FontSize: 8},
		// Stacks are drawn as shares of their track's total; the labels
		// carry the minutes, so the percentage axis is hidden.
		YAxis: chart.Style{Hidden: true},
		Bars:  stacks,
	}
}

// upper keeps the y range non-degenerate; go-chart refuses a zero-height range.
func upper(fig domain.Figure) float64 {
	top := fig.MaxValue()
	for _, t := range fig.YTicks {
		if t.Value > top {
			top = t.Value
		}
	}
	if top <= 0 {
		return 1
	}
	return top
}

func clampWidth(content int) int {
	w := content + 160
	if w < defaultWidth {
		return defaultWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}

func background(fig domain.Figure) chart.Style {
	style := chart.Style{
		Padding: chart.Box{
			Top:    fig.Margin.Top,
			Left:   fig.Margin.Left,
			Right:  fig.Margin.Right,
			Bottom: fig.Margin.Bottom,
		},
	}
	if fig.Background == domain.Background {
		style.FillColor = drawing.ColorWhite
	}
	return style
}

func fill(hex string) chart.Style {
	c := drawing.ColorFromHex(hex)
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}
