package service

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	activityout "github.com/Xrenya/activity-tracker/internal/modules/activity/port/out"
)

type DatasetService struct {
	source activityout.DatasetSource
}

func NewDatasetService(source activityout.DatasetSource) *DatasetService {
	return &DatasetService{source: source}
}

// Load reads both tables and left-joins events to dates on day id, keeping
// every event once and in file order.
func (s *DatasetService) Load(ctx context.Context) (domain.Table, error) {
	days, err := s.source.ReadDays(ctx)
	if err != nil {
		return domain.Table{}, err
	}
	events, err := s.source.ReadEvents(ctx)
	if err != nil {
		return domain.Table{}, err
	}
	dates := make(map[int]string, len(days))
	for _, day := range days {
		if _, dup := dates[day.DayID]; dup {
			continue
		}
		dates[day.DayID] = day.Date
	}
	records := make([]domain.JoinedRecord, 0, len(events))
	for _, event := range events {
		date := domain.NullString{}
		if d, ok := dates[event.DayID]; ok {
			date = domain.Text(d)
		}
		records = append(records, domain.Join(event, date))
	}
	return domain.NewTable(records), nil
}
