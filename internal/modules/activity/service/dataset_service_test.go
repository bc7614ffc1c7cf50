package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	"github.com/Xrenya/activity-tracker/internal/modules/activity/service"
)

type fakeSource struct {
	days    []domain.DateLookup
	events  []domain.ActivityEvent
	daysErr error
}

func (f *fakeSource) ReadDays(context.Context) ([]domain.DateLookup, error) {
	return f.days, f.daysErr
}

func (f *fakeSource) ReadEvents(context.Context) ([]domain.ActivityEvent, error) {
	return f.events, nil
}

func TestLoadIsLeftJoin(t *testing.T) {
	t.Parallel()
	src := &fakeSource{
		days: []domain.DateLookup{{DayID: 1, Date: "2020-12-05"}, {DayID: 2, Date: "2020-12-06"}},
		events: []domain.ActivityEvent{
			{DayID: 2, Time: "08:00:00", TrackID: domain.IntTrackID(1), Activity: "run;cardio"},
			{DayID: 7, Time: "09:00:00", TrackID: domain.IntTrackID(1), Activity: "walk"},
			{DayID: 1, Time: "10:00:00", TrackID: domain.IntTrackID(2), Activity: "sit"},
		},
	}
	table, err := service.NewDatasetService(src).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != len(src.events) {
		t.Fatalf("every event must appear once, got %d rows", table.Len())
	}
	records := table.Records()
	if records[0].Date != domain.Text("2020-12-06") || records[2].Date != domain.Text("2020-12-05") {
		t.Fatalf("dates not joined by day id: %+v", records)
	}
	if records[1].Date.Valid {
		t.Fatalf("unknown day id should keep a null date")
	}
	for i, r := range records {
		if r.Power != 1 || r.Delta != 13 {
			t.Fatalf("row %d: power/delta not constant", i)
		}
		if r.Top2.Valid != (i == 0) {
			t.Fatalf("row %d: top2 validity should follow the separator", i)
		}
	}
}

func TestLoadKeepsFirstDuplicateDay(t *testing.T) {
	t.Parallel()
	src := &fakeSource{
		days:   []domain.DateLookup{{DayID: 1, Date: "2020-12-05"}, {DayID: 1, Date: "2020-12-09"}},
		events: []domain.ActivityEvent{{DayID: 1, Time: "08:00:00", TrackID: domain.IntTrackID(1), Activity: "run"}},
	}
	table, err := service.NewDatasetService(src).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 1 || table.Records()[0].Date.String != "2020-12-05" {
		t.Fatalf("expected a single row joined to the first date, got %+v", table.Records())
	}
}

func TestLoadPropagatesSourceError(t *testing.T) {
	t.Parallel()
	boom := &domain.DataLoadError{Source: "days.csv", Err: errors.New("boom")}
	_, err := service.NewDatasetService(&fakeSource{daysErr: boom}).Load(context.Background())
	if !domain.IsDataLoadError(err) {
		t.Fatalf("expected data load error, got %v", err)
	}
}
