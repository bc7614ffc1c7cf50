package service

import (
	activitydto "github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
)

var detectedTicks = []domain.Tick{{Value: 0, Label: "No"}, {Value: 1, Label: "Yes"}}

func base(id, title string, kind domain.Kind) domain.Figure {
	return domain.Figure{
		ID:         id,
		Kind:       kind,
		Title:      title,
		Margin:     domain.DefaultMargin,
		Background: domain.Background,
	}
}

// TimelineFigure plots one bar of height power per detection, coloured by category.
func TimelineFigure(timeline activitydto.TimelineOutput) (domain.Figure, error) {
	fig := base(domain.TimelineID, domain.TimelineTitle, domain.KindBar)
	fig.XLabel = domain.LabelTimestamp
	fig.YLabel = domain.LabelDetected
	fig.LegendTitle = timeline.Category
	fig.YTicks = detectedTicks
	for _, p := range timeline.Points {
		fig.Bars = append(fig.Bars, domain.Bar{Label: p.DateTime, Series: p.Category, Value: float64(p.Power)})
	}
	return fig, fig.Validate()
}

func TrackTotalsFigure(totals activitydto.TotalsOutput) (domain.Figure, error) {
	fig := base(domain.TrackTotalsID, domain.TrackTotalsTitle, domain.KindBar)
	fig.XLabel = domain.LabelTypeOfActivity
	fig.YLabel = domain.LabelMinutes
	fig.LegendTitle = totals.Category
	fig.Bars = totalBars(totals.Totals)
	return fig, fig.Validate()
}

func OverallTotalsFigure(totals activitydto.TotalsOutput) (domain.Figure, error) {
	fig := base(domain.OverallTotalsID, domain.OverallTotalsTitle, domain.KindBar)
	fig.XLabel = totals.Category
	fig.YLabel = domain.LabelMinutes
	fig.LegendTitle = totals.Category
	fig.Bars = totalBars(totals.Totals)
	return fig, fig.Validate()
}

// TrackCategoryTotalsFigure groups consecutive totals of the same track into one stack.
func TrackCategoryTotalsFigure(totals activitydto.TrackTotalsOutput) (domain.Figure, error) {
	fig := base(domain.TrackCategoryTotalID, domain.TrackCategoryTotalTitle, domain.KindStackedBar)
	fig.XLabel = domain.LabelTrackingID
	fig.YLabel = domain.LabelMinutes
	fig.LegendTitle = totals.Category
	for _, t := range totals.Totals {
		bar := domain.Bar{Label: t.Category, Series: t.Category, Value: t.TotalMinutes}
		n := len(fig.Stacks)
		if n > 0 && fig.Stacks[n-1].Label == t.TrackID {
			fig.Stacks[n-1].Bars = append(fig.Stacks[n-1].Bars, bar)
			continue
		}
		fig.Stacks = append(fig.Stacks, domain.Stack{Label: t.TrackID, Bars: []domain.Bar{bar}})
	}
	return fig, fig.Validate()
}

func totalBars(totals []activitydto.CategoryTotalOutput) []domain.Bar {
	bars := make([]domain.Bar, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, domain.Bar{Label: t.Category, Series: t.Category, Value: t.TotalMinutes})
	}
	return bars
}
