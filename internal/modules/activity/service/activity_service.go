package service

import (
	"context"
	"errors"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	activityout "github.com/Xrenya/activity-tracker/internal/modules/activity/port/out"
)

// ActivityService answers every dashboard query from one read-only table.
type ActivityService struct {
	table     domain.Table
	projector activityout.RecordProjector
}

func NewActivityService(table domain.Table, projector activityout.RecordProjector) *ActivityService {
	return &ActivityService{table: table, projector: projector}
}

func (s *ActivityService) Table() domain.Table {
	return s.table
}

func (s *ActivityService) TrackIDs() []domain.TrackID {
	return s.table.TrackIDs()
}

// View runs the filter step. Only a failed filter is replaced by the whole
// table; bounds that match nothing give an empty view.
func (s *ActivityService) View(params domain.FilterParams) domain.FilterResult {
	return domain.FilterOrFallback(s.table, params)
}

func (s *ActivityService) TrackTotals(params domain.FilterParams, column domain.CategoryColumn) ([]domain.CategoryTotal, domain.FilterResult, error) {
	view := s.View(params)
	totals, err := domain.Aggregate(view.Records, column)
	if err != nil {
		return nil, domain.FilterResult{}, err
	}
	return totals, view, nil
}

func (s *ActivityService) OverallTotals(column domain.CategoryColumn) ([]domain.CategoryTotal, error) {
	return domain.Aggregate(s.table.Records(), column)
}

func (s *ActivityService) TrackCategoryTotals(column domain.CategoryColumn) ([]domain.TrackCategoryTotal, error) {
	return domain.AggregateByTrackAndCategory(s.table.Records(), column)
}

func (s *ActivityService) UnmatchedDays() int {
	n := 0
	for _, r := range s.table.Records() {
		if !r.Date.Valid {
			n++
		}
	}
	return n
}

// Reindex replaces the SQLite projection with the current table and returns
// the per-category minutes computed by the projection itself.
func (s *ActivityService) Reindex(ctx context.Context, column domain.CategoryColumn) (int, map[string]float64, error) {
	if s.projector == nil {
		return 0, nil, errors.New("no record projector configured")
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, nil, err
	}
	if err := s.projector.InsertRecords(ctx, s.table.Records()); err != nil {
		return 0, nil, err
	}
	n, err := s.projector.Count(ctx)
	if err != nil {
		return 0, nil, err
	}
	minutes, err := s.projector.CategoryMinutes(ctx, column)
	if err != nil {
		return 0, nil, err
	}
	return n, minutes, nil
}
