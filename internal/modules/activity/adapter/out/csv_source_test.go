package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	activityout "github.com/Xrenya/activity-tracker/internal/modules/activity/adapter/out"
	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadDaysAndEvents(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	days := writeFile(t, dir, "days.csv", "1;2020-12-05\n2;2020-12-06\n")
	activities := writeFile(t, dir, "activities.csv",
		"1;08:00:00;cam-a;1;run;cardio\n"+
			"2;09:00:00;cam-b;2;\"walk;slow\"\n"+
			"2;10:00:00;cam-b;2;sit\n")
	src := activityout.NewCSVSource(days, activities)

	lookups, err := src.ReadDays(context.Background())
	if err != nil {
		t.Fatalf("read days: %v", err)
	}
	if len(lookups) != 2 || lookups[0] != (domain.DateLookup{DayID: 1, Date: "2020-12-05"}) {
		t.Fatalf("unexpected days %+v", lookups)
	}

	events, err := src.ReadEvents(context.Background())
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Activity != "run;cardio" {
		t.Fatalf("spilled activity should be re-joined, got %q", events[0].Activity)
	}
	if events[1].Activity != "walk;slow" {
		t.Fatalf("quoted activity should stay whole, got %q", events[1].Activity)
	}
	if events[2].TrackID != domain.IntTrackID(2) {
		t.Fatalf("numeric track column should be typed int, got %+v", events[2].TrackID)
	}
}

func TestReadEventsTypesMixedTrackColumnAsStrings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	activities := writeFile(t, dir, "activities.csv", "1;08:00:00;cam;1;run\n1;08:00:01;cam;ann;run\n")
	events, err := activityout.NewCSVSource(filepath.Join(dir, "days.csv"), activities).ReadEvents(context.Background())
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if events[0].TrackID != domain.StringTrackID("1") || events[1].TrackID != domain.StringTrackID("ann") {
		t.Fatalf("expected string ids, got %+v %+v", events[0].TrackID, events[1].TrackID)
	}
}

func TestReadFailuresAreDataLoadErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cases := map[string]struct {
		days       string
		activities string
		readDays   bool
	}{
		"missing file":       {readDays: true},
		"day column count":   {days: "1;2020-12-01;extra\n", readDays: true},
		"day id not integer": {days: "x;2020-12-01\n", readDays: true},
		"event column count": {activities: "1;08:00:00;cam\n"},
		"event day id":       {activities: "one;08:00:00;cam;1;run\n"},
	}
	for name, tc := range cases {
		daysPath := filepath.Join(dir, name+"-missing-days.csv")
		activitiesPath := filepath.Join(dir, name+"-missing-activities.csv")
		if tc.days != "" {
			daysPath = writeFile(t, dir, name+"-days.csv", tc.days)
		}
		if tc.activities != "" {
			activitiesPath = writeFile(t, dir, name+"-activities.csv", tc.activities)
		}
		src := activityout.NewCSVSource(daysPath, activitiesPath)
		var err error
		if tc.readDays {
			_, err = src.ReadDays(context.Background())
		} else {
			_, err = src.ReadEvents(context.Background())
		}
		if !errors.Is(err, apperrors.ErrDataLoad) {
			t.Fatalf("%s: expected data load error, got %v", name, err)
		}
	}
}

func TestReadDaysReportsLine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	days := writeFile(t, dir, "days.csv", "1;2020-12-01\n2;2020-12-02\nthree;2020-12-03\n")
	_, err := activityout.NewCSVSource(days, "").ReadDays(context.Background())
	var loadErr *domain.DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	if loadErr.Line != 3 {
		t.Fatalf("expected line 3, got %d", loadErr.Line)
	}
}
