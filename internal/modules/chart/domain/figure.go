package domain

import (
	"fmt"

	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

type Kind string

const (
	KindBar        Kind = "bar"
	KindStackedBar Kind = "stacked-bar"
)

const (
	TimelineID           = "timeseries_graph_1"
	TrackTotalsID        = "timeseries_graph_2"
	OverallTotalsID      = "timeseries_graph_3"
	TrackCategoryTotalID = "timeseries_graph_4"

	TimelineTitle           = "Detected activity"
	TrackTotalsTitle        = "Activity index"
	OverallTotalsTitle      = "Overall amount of activities over the selected period"
	TrackCategoryTotalTitle = "Activity index for each tracking id"

	LabelTimestamp      = "Time stamp"
	LabelDetected       = "Detected activity"
	LabelMinutes        = "Minutes"
	LabelTypeOfActivity = "Type of activity"
	LabelTrackingID     = "Tracking id"

	Background = "white"
)

type Margin struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// DefaultMargin is the layout margin every panel uses.
var DefaultMargin = Margin{Left: 20, Right: 40, Top: 50, Bottom: 20}

type Tick struct {
	Value float64
	Label string
}

// Bar is one bar; Series names the category it is coloured by.
type Bar struct {
	Label  string
	Series string
	Value  float64
}

// Stack is one x position of a stacked chart.
type Stack struct {
	Label string
	Bars  []Bar
}

type Figure struct {
	ID          string
	Kind        Kind
	Title       string
	XLabel      string
	YLabel      string
	LegendTitle string
	Margin      Margin
	Background  string
	YTicks      []Tick
	Bars        []Bar
	Stacks      []Stack
}

// Series lists distinct series names in first-appearance order.
func (s Figure) Series() []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(b Bar) {
		if !seen[b.Series] {
			seen[b.Series] = true
			out = append(out, b.Series)
		}
	}
	for _, b := range s.Bars {
		add(b)
	}
	for _, st := range s.Stacks {
		for _, b := range st.Bars {
			add(b)
		}
	}
	return out
}

func (s Figure) MaxValue() float64 {
	top := 0.0
	for _, b := range s.Bars {
		if b.Value > top {
			top = b.Value
		}
	}
	for _, st := range s.Stacks {
		sum := 0.0
		for _, b := range st.Bars {
			sum += b.Value
		}
		if sum > top {
			top = sum
		}
	}
	return top
}

// Empty reports a figure with nothing to draw. It is still a valid figure:
// a filter that matches no rows plots as an empty panel.
func (s Figure) Empty() bool {
	return len(s.Bars) == 0 && len(s.Stacks) == 0
}

func (s Figure) Validate() error {
	switch s.Kind {
	case KindBar:
		if len(s.Stacks) > 0 {
			return fmt.Errorf("%w: bar chart %s has stacks", apperrors.ErrInvalidInput, s.ID)
		}
	case KindStackedBar:
		if len(s.Bars) > 0 {
			return fmt.Errorf("%w: stacked chart %s has loose bars", apperrors.ErrInvalidInput, s.ID)
		}
	default:
		return fmt.Errorf("%w: unknown chart kind %q", apperrors.ErrInvalidInput, s.Kind)
	}
	return nil
}

// Palette holds series colours as hex without the leading "#".
var Palette = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

// Colors maps each series to a palette entry in first-appearance order.
func (s Figure) Colors() map[string]string {
	out := map[string]string{}
	for i, series := range s.Series() {
		out[series] = Palette[i%len(Palette)]
	}
	return out
}
