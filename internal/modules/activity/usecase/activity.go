package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	"github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	activityin "github.com/Xrenya/activity-tracker/internal/modules/activity/port/in"
	"github.com/Xrenya/activity-tracker/internal/modules/activity/service"
	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

type Interactor struct {
	svc *service.ActivityService
}

func NewInteractor(svc *service.ActivityService) activityin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) TrackIDs(_ context.Context) ([]dto.TrackIDOutput, error) {
	ids := i.svc.TrackIDs()
	out := make([]dto.TrackIDOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, dto.TrackIDOutput{Value: id.String(), Kind: id.Kind().String()})
	}
	return out, nil
}

func (i *Interactor) Timeline(_ context.Context, input dto.FilterInput) (dto.TimelineOutput, error) {
	column, err := categoryOrDefault(input.Category)
	if err != nil {
		return dto.TimelineOutput{}, err
	}
	view := i.svc.View(toParams(input))
	points := make([]dto.TimelinePointOutput, 0, len(view.Records))
	for _, r := range view.Records {
		points = append(points, dto.TimelinePointOutput{
			DateTime: r.DateTime.Label(),
			Date:     r.Date.Label(),
			Time:     r.Time,
			TrackID:  r.TrackID.String(),
			Category: column.Of(r).Label(),
			Power:    r.Power,
		})
	}
	return dto.TimelineOutput{Category: string(column), Fallback: view.Fallback(), Points: points}, nil
}

func (i *Interactor) TrackTotals(_ context.Context, input dto.FilterInput) (dto.TotalsOutput, error) {
	column, err := categoryOrDefault(input.Category)
	if err != nil {
		return dto.TotalsOutput{}, err
	}
	totals, view, err := i.svc.TrackTotals(toParams(input), column)
	if err != nil {
		return dto.TotalsOutput{}, err
	}
	return dto.TotalsOutput{Category: string(column), Fallback: view.Fallback(), Totals: toTotalOutputs(totals)}, nil
}

func (i *Interactor) OverallTotals(_ context.Context, category string) (dto.TotalsOutput, error) {
	column, err := categoryOrDefault(category)
	if err != nil {
		return dto.TotalsOutput{}, err
	}
	totals, err := i.svc.OverallTotals(column)
	if err != nil {
		return dto.TotalsOutput{}, err
	}
	return dto.TotalsOutput{Category: string(column), Totals: toTotalOutputs(totals)}, nil
}

func (i *Interactor) TrackCategoryTotals(_ context.Context, category string) (dto.TrackTotalsOutput, error) {
	column, err := categoryOrDefault(category)
	if err != nil {
		return dto.TrackTotalsOutput{}, err
	}
	totals, err := i.svc.TrackCategoryTotals(column)
	if err != nil {
		return dto.TrackTotalsOutput{}, err
	}
	out := make([]dto.TrackCategoryTotalOutput, 0, len(totals))
	for _, total := range totals {
		out = append(out, dto.TrackCategoryTotalOutput{
			TrackID:      total.TrackID.String(),
			Category:     total.Category.Label(),
			Null:         !total.Category.Valid,
			TotalMinutes: total.TotalMinutes,
		})
	}
	return dto.TrackTotalsOutput{Category: string(column), Totals: out}, nil
}

func (i *Interactor) Summary(_ context.Context) (dto.SummaryOutput, error) {
	table := i.svc.Table()
	return dto.SummaryOutput{
		Records:       table.Len(),
		TrackIDs:      len(table.TrackIDs()),
		UnmatchedDays: i.svc.UnmatchedDays(),
		TotalMinutes:  domain.TotalMinutes(table.Records()),
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context, input dto.ReindexInput) (dto.ReindexOutput, error) {
	column, err := categoryOrDefault(input.Category)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	n, minutes, err := i.svc.Reindex(ctx, column)
	if err != nil {
		return dto.ReindexOutput{}, fmt.Errorf("reindex: %w", err)
	}
	totals := make([]dto.CategoryTotalOutput, 0, len(minutes))
	for label, total := range minutes {
		totals = append(totals, dto.CategoryTotalOutput{Category: label, Null: label == domain.NullLabel, TotalMinutes: total})
	}
	sort.Slice(totals, func(a, b int) bool {
		if totals[a].Null != totals[b].Null {
			return !totals[a].Null
		}
		return totals[a].Category < totals[b].Category
	})
	return dto.ReindexOutput{Records: n, Category: string(column), Totals: totals}, nil
}

func categoryOrDefault(raw string) (domain.CategoryColumn, error) {
	if raw == "" {
		return domain.DefaultCategory, nil
	}
	column, err := domain.ParseCategoryColumn(raw)
	if err != nil {
		return "", fmt.Errorf("%w: category must be top-1 or top-2", apperrors.ErrInvalidInput)
	}
	return column, nil
}

func toParams(input dto.FilterInput) domain.FilterParams {
	return domain.FilterParams{
		TrackID:  toTrackID(input.TrackID, input.TrackIDKind),
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
		TimeFrom: input.TimeFrom,
		TimeTo:   input.TimeTo,
	}
}

func toTrackID(value, kind string) domain.TrackID {
	switch kind {
	case domain.TrackKindString.String():
		return domain.StringTrackID(value)
	case domain.TrackKindInt.String():
		id := domain.ParseTrackID(value)
		if id.Kind() != domain.TrackKindInt {
			return domain.TrackID{}
		}
		return id
	}
	if value == "" {
		return domain.TrackID{}
	}
	return domain.ParseTrackID(value)
}

func toTotalOutputs(totals []domain.CategoryTotal) []dto.CategoryTotalOutput {
	out := make([]dto.CategoryTotalOutput, 0, len(totals))
	for _, total := range totals {
		out = append(out, dto.CategoryTotalOutput{
			Category:     total.Category.Label(),
			Null:         !total.Category.Valid,
			TotalMinutes: total.TotalMinutes,
		})
	}
	return out
}
