package in

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
)

type Usecase interface {
	TrackIDs(ctx context.Context) ([]dto.TrackIDOutput, error)
	Timeline(ctx context.Context, input dto.FilterInput) (dto.TimelineOutput, error)
	TrackTotals(ctx context.Context, input dto.FilterInput) (dto.TotalsOutput, error)
	OverallTotals(ctx context.Context, category string) (dto.TotalsOutput, error)
	TrackCategoryTotals(ctx context.Context, category string) (dto.TrackTotalsOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) (dto.ReindexOutput, error)
}
