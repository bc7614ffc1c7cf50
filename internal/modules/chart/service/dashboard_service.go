package service

import (
	"context"
	"fmt"

	activitydto "github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	activityin "github.com/Xrenya/activity-tracker/internal/modules/activity/port/in"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
	chartout "github.com/Xrenya/activity-tracker/internal/modules/chart/port/out"
	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

// PanelIDs lists the dashboard panels in display order.
var PanelIDs = []string{
	domain.TimelineID,
	domain.TrackTotalsID,
	domain.OverallTotalsID,
	domain.TrackCategoryTotalID,
}

type DashboardService struct {
	activity activityin.Usecase
	renderer chartout.Renderer
}

func NewDashboardService(activity activityin.Usecase, renderer chartout.Renderer) *DashboardService {
	return &DashboardService{activity: activity, renderer: renderer}
}

// Build returns the figure for one panel. The fallback flag is set when the
// filter step failed and the whole table was plotted instead. A filter that
// matches nothing builds an empty figure.
func (s *DashboardService) Build(ctx context.Context, id string, input activitydto.FilterInput) (domain.Figure, bool, error) {
	switch id {
	case domain.TimelineID:
		return s.timeline(ctx, input)
	case domain.TrackTotalsID:
		return s.trackTotals(ctx, input)
	case domain.OverallTotalsID:
		totals, err := s.activity.OverallTotals(ctx, input.Category)
		if err != nil {
			return domain.Figure{}, false, err
		}
		fig, err := OverallTotalsFigure(totals)
		return fig, false, err
	case domain.TrackCategoryTotalID:
		totals, err := s.activity.TrackCategoryTotals(ctx, input.Category)
		if err != nil {
			return domain.Figure{}, false, err
		}
		fig, err := TrackCategoryTotalsFigure(totals)
		return fig, false, err
	default:
		return domain.Figure{}, false, fmt.Errorf("%w: chart %q", apperrors.ErrNotFound, id)
	}
}

func (s *DashboardService) Render(ctx context.Context, fig domain.Figure) ([]byte, error) {
	return s.renderer.Render(ctx, fig)
}

func (s *DashboardService) timeline(ctx context.Context, input activitydto.FilterInput) (domain.Figure, bool, error) {
	timeline, err := s.activity.Timeline(ctx, input)
	if err != nil {
		return domain.Figure{}, false, err
	}
	fig, err := TimelineFigure(timeline)
	return fig, timeline.Fallback, err
}

func (s *DashboardService) trackTotals(ctx context.Context, input activitydto.FilterInput) (domain.Figure, bool, error) {
	totals, err := s.activity.TrackTotals(ctx, input)
	if err != nil {
		return domain.Figure{}, false, err
	}
	fig, err := TrackTotalsFigure(totals)
	return fig, totals.Fallback, err
}
