package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	chartdto "github.com/Xrenya/activity-tracker/internal/modules/chart/dto"
	"github.com/Xrenya/activity-tracker/internal/platform/config"
	"github.com/Xrenya/activity-tracker/internal/platform/logging"
	"github.com/Xrenya/activity-tracker/internal/ui/web"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DaysPath = filepath.Join(dir, "days.csv")
	cfg.ActivitiesPath = filepath.Join(dir, "activities.csv")
	cfg.IndexPath = filepath.Join(dir, "index.db")
	if err := os.WriteFile(cfg.DaysPath, []byte("1;2020-12-05\n"), 0o644); err != nil {
		t.Fatalf("write days: %v", err)
	}
	if err := os.WriteFile(cfg.ActivitiesPath, []byte("1;08:00:00;cam;1;run;cardio\n1;09:00:00;cam;2;walk\n"), 0o644); err != nil {
		t.Fatalf("write activities: %v", err)
	}
	return cfg
}

func TestNewWiresModules(t *testing.T) {
	t.Parallel()
	app, err := New(context.Background(), testConfig(t), logging.Discard(), WithIndex())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	out, err := app.Charts.Dashboard(context.Background(), chartdto.DashboardInput{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(out.Panels) != 4 {
		t.Fatalf("expected four panels, got %d", len(out.Panels))
	}
	reindexed, err := app.Activity.Reindex(context.Background(), "top-1")
	if err != nil || reindexed.Records != 2 {
		t.Fatalf("reindex: %+v (%v)", reindexed, err)
	}
}

func TestNewFailsOnMissingData(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.DaysPath = filepath.Join(t.TempDir(), "missing.csv")
	_, err := New(context.Background(), cfg, logging.Discard())
	if !domain.IsDataLoadError(err) {
		t.Fatalf("expected data load error, got %v", err)
	}
}

func TestServedPage(t *testing.T) {
	t.Parallel()
	app, err := New(context.Background(), testConfig(t), logging.Discard())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv, err := web.NewServer(app.Log, app.Activity, app.Charts)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?track_id=1&category=top-2", nil))
	if rec.Code != http.StatusOK || strings.Count(rec.Body.String(), "<svg") < 4 {
		t.Fatalf("expected four inline charts, got status %d", rec.Code)
	}
}

func TestServedPageWithUnmatchedBounds(t *testing.T) {
	t.Parallel()
	app, err := New(context.Background(), testConfig(t), logging.Discard())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv, err := web.NewServer(app.Log, app.Activity, app.Charts)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	for _, query := range []string{"date_from=garbage", "time_from=garbage", "date_from=2021-01-01"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?track_id=1&"+query, nil))
		body := rec.Body.String()
		if rec.Code != http.StatusOK || strings.Contains(body, "No data to display") {
			t.Fatalf("%s: every panel should render, got status %d", query, rec.Code)
		}
		// Only the two whole-table charts have anything to put in a legend.
		if n := strings.Count(body, `class="legend"`); n != 2 {
			t.Fatalf("%s: expected empty filtered charts, got %d legends", query, n)
		}
		if !strings.Contains(body, "x: Type of activity, y: Minutes") || !strings.Contains(body, "x: Tracking id, y: Minutes") {
			t.Fatalf("%s: axis labels missing", query)
		}
	}
}
