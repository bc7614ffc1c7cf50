package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	activityinadapter "github.com/Xrenya/activity-tracker/internal/modules/activity/adapter/in"
	activityoutadapter "github.com/Xrenya/activity-tracker/internal/modules/activity/adapter/out"
	activityout "github.com/Xrenya/activity-tracker/internal/modules/activity/port/out"
	activityservice "github.com/Xrenya/activity-tracker/internal/modules/activity/service"
	activityusecase "github.com/Xrenya/activity-tracker/internal/modules/activity/usecase"
	chartinadapter "github.com/Xrenya/activity-tracker/internal/modules/chart/adapter/in"
	chartoutadapter "github.com/Xrenya/activity-tracker/internal/modules/chart/adapter/out"
	chartservice "github.com/Xrenya/activity-tracker/internal/modules/chart/service"
	chartusecase "github.com/Xrenya/activity-tracker/internal/modules/chart/usecase"
	"github.com/Xrenya/activity-tracker/internal/platform/config"
	uiapp "github.com/Xrenya/activity-tracker/internal/ui/app"
	"github.com/Xrenya/activity-tracker/internal/ui/web"
)

type App struct {
	Config   config.Config
	Log      hclog.Logger
	Activity activityinadapter.QueryHandler
	Charts   chartinadapter.DashboardHandler

	closers []func() error
}

type options struct {
	index bool
}

type Option func(*options)

// WithIndex opens the SQLite projection at Config.IndexPath.
func WithIndex() Option {
	return func(o *options) { o.index = true }
}

// New loads and joins the dataset once and wires every module around the
// resulting read-only table. A load failure is fatal.
func New(ctx context.Context, cfg config.Config, logger hclog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := activityoutadapter.NewCSVSource(cfg.DaysPath, cfg.ActivitiesPath)
	table, err := activityservice.NewDatasetService(source).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("dataset loaded", "records", table.Len(), "track_ids", len(table.TrackIDs()),
		"days", cfg.DaysPath, "activities", cfg.ActivitiesPath)

	app := &App{Config: cfg, Log: logger}

	var projector activityout.RecordProjector
	if o.index {
		sqlite, err := activityoutadapter.NewSQLiteRecordProjector(cfg.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("new record projector: %w", err)
		}
		projector = sqlite
		app.closers = append(app.closers, sqlite.Close)
	}

	activityUC := activityusecase.NewInteractor(activityservice.NewActivityService(table, projector))
	chartUC := chartusecase.NewInteractor(chartservice.NewDashboardService(activityUC, chartoutadapter.NewSVGRenderer()))

	app.Activity = activityinadapter.NewQueryHandler(activityUC)
	app.Charts = chartinadapter.NewDashboardHandler(chartUC)
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Serve runs the web dashboard until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv, err := web.NewServer(a.Log, a.Activity, a.Charts)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, a.Config.Addr(), a.Config.ShutdownTimeout)
}

func RunTUI(app *App) error {
	program := tea.NewProgram(uiapp.NewModel(app.Activity), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
