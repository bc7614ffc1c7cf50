package in

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	activityin "github.com/Xrenya/activity-tracker/internal/modules/activity/port/in"
)

type QueryHandler struct {
	usecase activityin.Usecase
}

func NewQueryHandler(usecase activityin.Usecase) QueryHandler {
	return QueryHandler{usecase: usecase}
}

func (h QueryHandler) TrackIDs(ctx context.Context) ([]dto.TrackIDOutput, error) {
	return h.usecase.TrackIDs(ctx)
}

func (h QueryHandler) Timeline(ctx context.Context, input dto.FilterInput) (dto.TimelineOutput, error) {
	return h.usecase.Timeline(ctx, input)
}

func (h QueryHandler) TrackTotals(ctx context.Context, input dto.FilterInput) (dto.TotalsOutput, error) {
	return h.usecase.TrackTotals(ctx, input)
}

func (h QueryHandler) OverallTotals(ctx context.Context, category string) (dto.TotalsOutput, error) {
	return h.usecase.OverallTotals(ctx, category)
}

func (h QueryHandler) TrackCategoryTotals(ctx context.Context, category string) (dto.TrackTotalsOutput, error) {
	return h.usecase.TrackCategoryTotals(ctx, category)
}

func (h QueryHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h QueryHandler) Reindex(ctx context.Context, category string) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx, dto.ReindexInput{Category: category})
}
