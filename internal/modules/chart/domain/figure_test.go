package domain_test

import (
	"errors"
	"testing"

	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

func TestEmptyFigureIsValid(t *testing.T) {
	t.Parallel()
	fig := domain.Figure{ID: domain.TrackTotalsID, Kind: domain.KindBar, Title: domain.TrackTotalsTitle}
	if !fig.Empty() {
		t.Fatalf("figure without bars should be empty")
	}
	if err := fig.Validate(); err != nil {
		t.Fatalf("empty figure should validate, got %v", err)
	}
}

func TestValidateChecksShape(t *testing.T) {
	t.Parallel()
	bar := domain.Bar{Label: "walk", Series: "walk", Value: 1}
	cases := []domain.Figure{
		{Kind: domain.KindBar, Stacks: []domain.Stack{{Label: "1", Bars: []domain.Bar{bar}}}, Bars: []domain.Bar{bar}},
		{Kind: domain.KindStackedBar, Bars: []domain.Bar{bar}},
		{Kind: "pie", Bars: []domain.Bar{bar}},
	}
	for i, fig := range cases {
		if err := fig.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestSeriesColorsAndMax(t *testing.T) {
	t.Parallel()
	fig := domain.Figure{
		Kind: domain.KindStackedBar,
		Stacks: []domain.Stack{
			{Label: "1", Bars: []domain.Bar{{Series: "run", Value: 0.5}, {Series: "walk", Value: 1}}},
			{Label: "2", Bars: []domain.Bar{{Series: "walk", Value: 2}}},
		},
	}
	series := fig.Series()
	if len(series) != 2 || series[0] != "run" || series[1] != "walk" {
		t.Fatalf("unexpected series %v", series)
	}
	colors := fig.Colors()
	if colors["run"] != domain.Palette[0] || colors["walk"] != domain.Palette[1] {
		t.Fatalf("unexpected colors %v", colors)
	}
	if fig.MaxValue() != 2 {
		t.Fatalf("max should be the tallest stack, got %v", fig.MaxValue())
	}
}
