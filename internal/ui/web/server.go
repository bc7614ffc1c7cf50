package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	activitydto "github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	chartdto "github.com/Xrenya/activity-tracker/internal/modules/chart/dto"
	"github.com/Xrenya/activity-tracker/internal/platform/clock"
	"github.com/Xrenya/activity-tracker/internal/platform/id"
)

const (
	pageTitle      = "Activity tracker"
	pageHeading    = "Daily activity tracker"
	defaultTrackID = "1"
)

var categories = []string{"top-1", "top-2"}

var captions = map[string]string{
	"timeseries_graph_1": "The predictions were made at each time stamps",
	"timeseries_graph_2": "The approximate amount of minutes has spent on activities by a selected person over the selected period",
	"timeseries_graph_3": "The total number of minutes were spent on particular activity by all detected people",
	"timeseries_graph_4": "The approximate amount of minutes was spent on activities by each person",
}

var funcMap = template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}

type TrackLister interface {
	TrackIDs(ctx context.Context) ([]activitydto.TrackIDOutput, error)
}

type DashboardRenderer interface {
	Dashboard(ctx context.Context, input chartdto.DashboardInput) (chartdto.DashboardOutput, error)
}

type Server struct {
	log       hclog.Logger
	tracks    TrackLister
	dashboard DashboardRenderer
	page      *template.Template
	mux       *http.ServeMux
	clock     clock.Clock
	ids       id.Generator
}

func NewServer(logger hclog.Logger, tracks TrackLister, dashboard DashboardRenderer) (*Server, error) {
	page, err := template.New("page").Funcs(funcMap).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	s := &Server{
		log:       logger.Named("web"),
		tracks:    tracks,
		dashboard: dashboard,
		page:      page,
		mux:       http.NewServeMux(),
		clock:     clock.SystemClock{},
		ids:       id.RandomHex{},
	}
	s.mux.HandleFunc("/", s.handleDashboard)
	return s, nil
}

// Handler exposes the routes so the server can be embedded or tested.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type option struct {
	Value    string
	Selected bool
}

type panelView struct {
	ID       string
	Caption  string
	XLabel   string
	YLabel   string
	SVG      template.HTML
	Legend   string
	Entries  []chartdto.LegendEntry
	Err      string
	Fallback bool
}

type pageData struct {
	Title      string
	Heading    string
	Tracks     []option
	Categories []option
	DateFrom   string
	DateTo     string
	TimeFrom   string
	TimeTo     string
	Panels     []panelView
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	// HEAD is served by the GET path; net/http drops the body.
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	tracks, err := s.tracks.TrackIDs(ctx)
	if err != nil {
		s.log.Error("list track ids", "id", requestID(ctx), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	input := filterInput(q.Get("track_id"), q.Get("category"), tracks)
	input.DateFrom = optional(q.Get("date_from"))
	input.DateTo = optional(q.Get("date_to"))
	input.TimeFrom = optional(q.Get("time_from"))
	input.TimeTo = optional(q.Get("time_to"))

	out, err := s.dashboard.Dashboard(ctx, chartdto.DashboardInput{Filter: input})
	if err != nil {
		s.log.Error("build dashboard", "id", requestID(ctx), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:    pageTitle,
		Heading:  pageHeading,
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		TimeFrom: q.Get("time_from"),
		TimeTo:   q.Get("time_to"),
	}
	for _, t := range tracks {
		data.Tracks = append(data.Tracks, option{Value: t.Value, Selected: t.Value == input.TrackID})
	}
	for _, c := range categories {
		data.Categories = append(data.Categories, option{Value: c, Selected: c == input.Category})
	}
	for _, p := range out.Panels {
		view := panelView{
			ID:       p.ID,
			Caption:  captions[p.ID],
			XLabel:   p.XLabel,
			YLabel:   p.YLabel,
			SVG:      template.HTML(p.SVG),
			Legend:   p.Legend,
			Entries:  p.Entries,
			Fallback: p.Fallback,
		}
		if p.Err != nil {
			s.log.Warn("panel failed", "id", requestID(ctx), "panel", p.ID, "error", p.Err)
			view.Err = "No data to display"
		}
		data.Panels = append(data.Panels, view)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.log.Error("render page", "id", requestID(ctx), "error", err)
	}
}

// filterInput resolves the dropdown values. The track id keeps the kind of
// the matching option so string-typed ids are compared as strings.
func filterInput(trackID, category string, tracks []activitydto.TrackIDOutput) activitydto.FilterInput {
	trackID = strings.TrimSpace(trackID)
	if trackID == "" {
		trackID = defaultTrackID
	}
	in := activitydto.FilterInput{TrackID: trackID, Category: categories[0]}
	for _, c := range categories {
		if c == category {
			in.Category = c
		}
	}
	for _, t := range tracks {
		if t.Value == trackID {
			in.TrackIDKind = t.Kind
			break
		}
	}
	return in
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

func requestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.clock.Now()
		reqID := s.ids.New()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(withRequestID(r.Context(), reqID)))
		s.log.Debug("request", "id", reqID, "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", clock.Since(s.clock, start))
	})
}
