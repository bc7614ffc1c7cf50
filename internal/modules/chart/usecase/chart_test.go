package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	activityout "github.com/Xrenya/activity-tracker/internal/modules/activity/adapter/out"
	activitydto "github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	activityservice "github.com/Xrenya/activity-tracker/internal/modules/activity/service"
	activityusecase "github.com/Xrenya/activity-tracker/internal/modules/activity/usecase"
	chartout "github.com/Xrenya/activity-tracker/internal/modules/chart/adapter/out"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/dto"
	chartin "github.com/Xrenya/activity-tracker/internal/modules/chart/port/in"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/service"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/usecase"
	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

func strPtr(s string) *string { return &s }

func newInteractor(t *testing.T) chartin.Usecase {
	t.Helper()
	dir := t.TempDir()
	days := filepath.Join(dir, "days.csv")
	activities := filepath.Join(dir, "activities.csv")
	if err := os.WriteFile(days, []byte("1;2020-12-05\n2;2020-12-06\n"), 0o644); err != nil {
		t.Fatalf("write days: %v", err)
	}
	rows := "1;08:00:00;cam;1;run;cardio\n" +
		"1;09:00:00;cam;1;walk\n" +
		"2;10:00:00;cam;2;walk\n" +
		"2;11:00:00;cam;2;walk\n"
	if err := os.WriteFile(activities, []byte(rows), 0o644); err != nil {
		t.Fatalf("write activities: %v", err)
	}
	table, err := activityservice.NewDatasetService(activityout.NewCSVSource(days, activities)).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	activity := activityusecase.NewInteractor(activityservice.NewActivityService(table, nil))
	return usecase.NewInteractor(service.NewDashboardService(activity, chartout.NewSVGRenderer()))
}

func TestDashboardRendersFourPanels(t *testing.T) {
	t.Parallel()
	out, err := newInteractor(t).Dashboard(context.Background(), dto.DashboardInput{Filter: activitydto.FilterInput{TrackID: "2"}})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if out.Category != "top-1" || len(out.Panels) != 4 {
		t.Fatalf("unexpected dashboard %+v", out)
	}
	wantIDs := []string{domain.TimelineID, domain.TrackTotalsID, domain.OverallTotalsID, domain.TrackCategoryTotalID}
	for i, p := range out.Panels {
		if p.ID != wantIDs[i] || p.Err != nil || len(p.SVG) == 0 {
			t.Fatalf("panel %d unexpected: id=%s err=%v svg=%d", i, p.ID, p.Err, len(p.SVG))
		}
		if p.Fallback {
			t.Fatalf("panel %s should not fall back", p.ID)
		}
	}
	if len(out.Panels[1].Entries) != 1 || out.Panels[1].Entries[0].Series != "walk" || out.Panels[1].Entries[0].Color != "#"+domain.Palette[0] {
		t.Fatalf("unexpected legend %+v", out.Panels[1].Entries)
	}
}

func TestDashboardFallsBackForMistypedTrack(t *testing.T) {
	t.Parallel()
	out, err := newInteractor(t).Dashboard(context.Background(), dto.DashboardInput{Filter: activitydto.FilterInput{TrackID: "1", TrackIDKind: "string"}})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !out.Panels[0].Fallback || !out.Panels[1].Fallback {
		t.Fatalf("filtered panels should fall back to the whole table")
	}
	if out.Panels[0].Err != nil || out.Panels[1].Err != nil {
		t.Fatalf("fallback should not surface errors: %v %v", out.Panels[0].Err, out.Panels[1].Err)
	}
	if len(out.Panels[1].Entries) != 2 {
		t.Fatalf("whole table totals should carry both categories, got %+v", out.Panels[1].Entries)
	}
}

func TestDashboardEmptyPanelsForUnmatchedFilters(t *testing.T) {
	t.Parallel()
	garbage := "garbage"
	cases := map[string]activitydto.FilterInput{
		"unknown track":  {TrackID: "42"},
		"malformed date": {TrackID: "1", DateFrom: &garbage},
		"malformed time": {TrackID: "2", TimeFrom: &garbage},
		"out of range":   {TrackID: "1", DateFrom: strPtr("2021-01-01")},
	}
	for name, filter := range cases {
		out, err := newInteractor(t).Dashboard(context.Background(), dto.DashboardInput{Filter: filter})
		if err != nil {
			t.Fatalf("%s: dashboard: %v", name, err)
		}
		for _, p := range out.Panels[:2] {
			if p.Err != nil || p.Fallback || len(p.Entries) != 0 || len(p.SVG) == 0 {
				t.Fatalf("%s: panel %s should render empty, got err=%v fallback=%v entries=%+v", name, p.ID, p.Err, p.Fallback, p.Entries)
			}
		}
		for _, p := range out.Panels[2:] {
			if p.Err != nil || len(p.Entries) != 2 {
				t.Fatalf("%s: panel %s should plot the whole table, got err=%v entries=%+v", name, p.ID, p.Err, p.Entries)
			}
		}
	}
}

func TestDashboardKeepsPanelErrorsLocal(t *testing.T) {
	t.Parallel()
	out, err := newInteractor(t).Dashboard(context.Background(), dto.DashboardInput{Filter: activitydto.FilterInput{Category: "top-9"}})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	for _, p := range out.Panels {
		if !errors.Is(p.Err, apperrors.ErrInvalidInput) {
			t.Fatalf("panel %s: expected invalid input, got %v", p.ID, p.Err)
		}
	}
}

func TestPanelUnknownID(t *testing.T) {
	t.Parallel()
	if _, err := newInteractor(t).Panel(context.Background(), "nope", dto.DashboardInput{}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
