package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	"github.com/Xrenya/activity-tracker/internal/ui/components"
	"github.com/Xrenya/activity-tracker/internal/ui/views/panel"
)

type fakeActivity struct {
	last dto.FilterInput
}

func (f *fakeActivity) TrackIDs(context.Context) ([]dto.TrackIDOutput, error) {
	return []dto.TrackIDOutput{{Value: "1", Kind: "int"}, {Value: "2", Kind: "int"}}, nil
}

func (f *fakeActivity) Timeline(_ context.Context, input dto.FilterInput) (dto.TimelineOutput, error) {
	f.last = input
	return dto.TimelineOutput{Category: input.Category, Points: []dto.TimelinePointOutput{
		{DateTime: "08:00:00 2020-12-05", Category: "run", Power: 1},
	}}, nil
}

func (f *fakeActivity) TrackTotals(context.Context, dto.FilterInput) (dto.TotalsOutput, error) {
	return dto.TotalsOutput{Fallback: true, Totals: []dto.CategoryTotalOutput{{Category: "run", TotalMinutes: 0.5}}}, nil
}

func (f *fakeActivity) OverallTotals(context.Context, string) (dto.TotalsOutput, error) {
	return dto.TotalsOutput{}, errors.New("boom")
}

func (f *fakeActivity) TrackCategoryTotals(context.Context, string) (dto.TrackTotalsOutput, error) {
	return dto.TrackTotalsOutput{Totals: []dto.TrackCategoryTotalOutput{
		{TrackID: "1", Category: "run", TotalMinutes: 0.2},
		{TrackID: "2", Category: "walk", TotalMinutes: 0.4},
	}}, nil
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(&fakeActivity{})
	msg := m.loadTracksCmd()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestTracksLoadedTypesDefaultTrack(t *testing.T) {
	t.Parallel()
	m := loaded(t)
	if m.filter.TrackID != "1" || m.filter.TrackIDKind != "int" || m.filter.Category != "top-1" {
		t.Fatalf("unexpected default filter %+v", m.filter)
	}
}

func TestKeysChangeFilter(t *testing.T) {
	t.Parallel()
	m := loaded(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = next.(Model)
	if m.filter.Category != "top-2" {
		t.Fatalf("c should toggle the category, got %q", m.filter.Category)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(Model)
	if m.filter.TrackID != "2" {
		t.Fatalf("t should advance the track, got %q", m.filter.TrackID)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(Model).activeTab != tabTrackTotals {
		t.Fatalf("tab should move to the next chart")
	}
}

func TestApplyFilterCommands(t *testing.T) {
	t.Parallel()
	m := loaded(t)
	apply := func(m Model, line string) Model {
		t.Helper()
		cmd, err := components.ParseFilterCommand(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		next, _ := m.applyFilter(cmd)
		return next.(Model)
	}
	m = apply(m, "date_from 2020-12-05")
	if m.filter.DateFrom == nil || *m.filter.DateFrom != "2020-12-05" {
		t.Fatalf("date_from not applied: %+v", m.filter)
	}
	m = apply(m, "date_from")
	if m.filter.DateFrom != nil {
		t.Fatalf("date_from without a value should clear the bound")
	}
	m = apply(m, "category top-2")
	if m.filter.Category != "top-2" || m.status != "ready" {
		t.Fatalf("category not applied: %+v (%q)", m.filter, m.status)
	}
	m = apply(m, "reset")
	if m.filter.Category != "top-1" || m.filter.TrackID != "1" {
		t.Fatalf("reset should keep the track and restore top-1: %+v", m.filter)
	}
}

func TestPromptRoutesThroughModel(t *testing.T) {
	t.Parallel()
	m := loaded(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	m = next.(Model)
	if !m.prompt.Visible() {
		t.Fatalf("':' should open the filter prompt")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	next, _ = m.Update(cmd())
	if m = next.(Model); m.prompt.Visible() || m.status != "ready" {
		t.Fatalf("esc should close the prompt, status %q", m.status)
	}
}

func TestPanelCommandsProduceRows(t *testing.T) {
	t.Parallel()
	m := loaded(t)
	timeline := m.timelineCmd(m.filter)().(panel.LoadedMsg)
	if timeline.ID != "timeseries_graph_1" || len(timeline.Rows) != 1 || timeline.Rows[0].Series != "run" {
		t.Fatalf("unexpected timeline rows %+v", timeline)
	}
	totals := m.trackTotalsCmd(m.filter)().(panel.LoadedMsg)
	if !totals.Fallback || totals.Rows[0].Value != 0.5 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	overall := m.overallCmd("top-1")().(panel.LoadedMsg)
	if overall.Err == nil {
		t.Fatalf("overall error should be carried to the panel")
	}
	perTrack := m.perTrackCmd("top-1")().(panel.LoadedMsg)
	if len(perTrack.Rows) != 2 || perTrack.Rows[1].Group != "track 2" {
		t.Fatalf("unexpected per-track rows %+v", perTrack.Rows)
	}

	next, _ := m.Update(perTrack)
	view := next.(Model).panels[tabPerTrack].Content()
	if !strings.Contains(view, "track 1") || !strings.Contains(view, "walk") {
		t.Fatalf("per-track panel not rendered:\n%s", view)
	}
}
