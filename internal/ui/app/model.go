package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	"github.com/Xrenya/activity-tracker/internal/ui/components"
	"github.com/Xrenya/activity-tracker/internal/ui/theme"
	"github.com/Xrenya/activity-tracker/internal/ui/views/panel"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type activityPort interface {
	TrackIDs(ctx context.Context) ([]dto.TrackIDOutput, error)
	Timeline(ctx context.Context, input dto.FilterInput) (dto.TimelineOutput, error)
	TrackTotals(ctx context.Context, input dto.FilterInput) (dto.TotalsOutput, error)
	OverallTotals(ctx context.Context, category string) (dto.TotalsOutput, error)
	TrackCategoryTotals(ctx context.Context, category string) (dto.TrackTotalsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimeline tabID = iota
	tabTrackTotals
	tabOverall
	tabPerTrack
	tabCount
)

var tabLabels = [tabCount]string{
	"Detected activity", "Activity index", "Overall", "Per tracking id",
}

var panelIDs = [tabCount]string{
	"timeseries_graph_1", "timeseries_graph_2", "timeseries_graph_3", "timeseries_graph_4",
}

var categories = []string{"top-1", "top-2"}

const defaultTrackID = "1"

// ─── async messages ───────────────────────────────────────────────────────────

type tracksLoadedMsg struct {
	tracks []dto.TrackIDOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Track    key.Binding
	Category key.Binding
	Filter   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next chart")),
		Track:    key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t/T", "next/prev track")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "top-1/top-2")),
		Filter:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "filters")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Track, k.Category, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Track, k.Category},
		{k.Filter, k.Reset},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the terminal dashboard. It owns the filter state and re-runs every
// panel whenever a control changes.
type Model struct {
	activity activityPort

	panels    [tabCount]panel.Model
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	prompt    components.FilterPrompt

	tracks []dto.TrackIDOutput
	filter dto.FilterInput
	status string
	width  int
	height int
}

func NewModel(activity activityPort) Model {
	return Model{
		activity: activity,
		panels: [tabCount]panel.Model{
			panel.New(panelIDs[tabTimeline], tabLabels[tabTimeline], ""),
			panel.New(panelIDs[tabTrackTotals], tabLabels[tabTrackTotals], "min"),
			panel.New(panelIDs[tabOverall], "Overall amount of activities over the selected period", "min"),
			panel.New(panelIDs[tabPerTrack], "Activity index for each tracking id", "min"),
		},
		activeTab: tabTimeline,
		keys:      defaultKeys(),
		help:      help.New(),
		prompt:    components.NewFilterPrompt(),
		filter:    dto.FilterInput{TrackID: defaultTrackID, Category: categories[0]},
		status:    "loading",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadTracksCmd()}
	for _, p := range m.panels {
		cmds = append(cmds, p.Init())
	}
	return tea.Batch(cmds...)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt.Visible() {
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		cmd := m.propagateSize()
		return m, cmd

	case tracksLoadedMsg:
		if msg.err != nil {
			m.status = "track ids: " + msg.err.Error()
			return m, nil
		}
		m.tracks = msg.tracks
		m.filter.TrackIDKind = m.kindOf(m.filter.TrackID)
		m.status = fmt.Sprintf("%d tracking ids", len(m.tracks))
		cmd := m.reload()
		return m, cmd

	case panel.LoadedMsg:
		var cmds []tea.Cmd
		for i := range m.panels {
			var cmd tea.Cmd
			m.panels[i], cmd = m.panels[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case components.FilterSubmitMsg:
		return m.applyFilter(msg.Command)

	case components.FilterCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "t":
			cmd := m.cycleTrack(1)
			return m, cmd
		case "T":
			cmd := m.cycleTrack(-1)
			return m, cmd
		case "c":
			if m.filter.Category == categories[0] {
				m.filter.Category = categories[1]
			} else {
				m.filter.Category = categories[0]
			}
			cmd := m.reload()
			return m, cmd
		case "r":
			m.filter = dto.FilterInput{TrackID: m.filter.TrackID, TrackIDKind: m.filter.TrackIDKind, Category: categories[0]}
			cmd := m.reload()
			return m, cmd
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.prompt.Open("")
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	for i := range m.panels {
		// spinner ticks go everywhere; keys only reach the visible panel.
		if _, isKey := msg.(tea.KeyMsg); isKey && tabID(i) != m.activeTab {
			continue
		}
		var cmd tea.Cmd
		m.panels[i], cmd = m.panels[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.prompt.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.prompt.View())
	default:
		content = m.panels[m.activeTab].View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "Daily activity tracker  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render("track "+m.filter.TrackID) + "  " + m.filter.Category + "  " + m.boundsLabel() + "  " + m.status
	right := theme.Muted.Render("?:help  tab:chart  :filters  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) boundsLabel() string {
	show := func(v *string) string {
		if v == nil {
			return "·"
		}
		return *v
	}
	return fmt.Sprintf("%s..%s %s..%s", show(m.filter.DateFrom), show(m.filter.DateTo), show(m.filter.TimeFrom), show(m.filter.TimeTo))
}

// ─── filters ──────────────────────────────────────────────────────────────────

// applyFilter changes one field of the current filter and reloads the panels.
func (m Model) applyFilter(cmd components.FilterCommand) (tea.Model, tea.Cmd) {
	switch cmd.Field {
	case components.FieldTrack:
		m.filter.TrackID = *cmd.Value
		m.filter.TrackIDKind = m.kindOf(*cmd.Value)
	case components.FieldCategory:
		m.filter.Category = *cmd.Value
	case components.FieldDateFrom:
		m.filter.DateFrom = cmd.Value
	case components.FieldDateTo:
		m.filter.DateTo = cmd.Value
	case components.FieldTimeFrom:
		m.filter.TimeFrom = cmd.Value
	case components.FieldTimeTo:
		m.filter.TimeTo = cmd.Value
	case components.FieldReset:
		m.filter = dto.FilterInput{TrackID: m.filter.TrackID, TrackIDKind: m.filter.TrackIDKind, Category: categories[0]}
	default:
		m.status = "unknown filter: " + string(cmd.Field)
		return m, nil
	}
	m.status = "ready"
	load := m.reload()
	return m, load
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) kindOf(trackID string) string {
	for _, t := range m.tracks {
		if t.Value == trackID {
			return t.Kind
		}
	}
	return ""
}

func (m *Model) cycleTrack(step int) tea.Cmd {
	if len(m.tracks) == 0 {
		return nil
	}
	idx := 0
	for i, t := range m.tracks {
		if t.Value == m.filter.TrackID {
			idx = (i + step + len(m.tracks)) % len(m.tracks)
			break
		}
	}
	m.filter.TrackID = m.tracks[idx].Value
	m.filter.TrackIDKind = m.tracks[idx].Kind
	return m.reload()
}

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	var cmds []tea.Cmd
	for i := range m.panels {
		var cmd tea.Cmd
		m.panels[i], cmd = m.panels[i].Update(sz)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// reload recomputes every panel from a snapshot of the current filter.
func (m *Model) reload() tea.Cmd {
	filter := m.filter
	cmds := make([]tea.Cmd, 0, 2*tabCount)
	for i := range m.panels {
		cmds = append(cmds, m.panels[i].Loading())
	}
	cmds = append(cmds,
		m.timelineCmd(filter),
		m.trackTotalsCmd(filter),
		m.overallCmd(filter.Category),
		m.perTrackCmd(filter.Category),
	)
	return tea.Batch(cmds...)
}

func (m Model) loadTracksCmd() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.activity.TrackIDs(context.Background())
		return tracksLoadedMsg{tracks: tracks, err: err}
	}
}

func (m Model) timelineCmd(filter dto.FilterInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.activity.Timeline(context.Background(), filter)
		rows := make([]panel.Row, 0, len(out.Points))
		for _, p := range out.Points {
			rows = append(rows, panel.Row{Label: p.DateTime, Series: p.Category, Value: float64(p.Power)})
		}
		return panel.LoadedMsg{ID: panelIDs[tabTimeline], Rows: rows, Fallback: out.Fallback, Err: err}
	}
}

func (m Model) trackTotalsCmd(filter dto.FilterInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.activity.TrackTotals(context.Background(), filter)
		return panel.LoadedMsg{ID: panelIDs[tabTrackTotals], Rows: totalRows(out.Totals), Fallback: out.Fallback, Err: err}
	}
}

func (m Model) overallCmd(category string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.activity.OverallTotals(context.Background(), category)
		return panel.LoadedMsg{ID: panelIDs[tabOverall], Rows: totalRows(out.Totals), Err: err}
	}
}

func (m Model) perTrackCmd(category string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.activity.TrackCategoryTotals(context.Background(), category)
		rows := make([]panel.Row, 0, len(out.Totals))
		for _, t := range out.Totals {
			rows = append(rows, panel.Row{Group: "track " + t.TrackID, Label: t.Category, Series: t.Category, Value: t.TotalMinutes})
		}
		return panel.LoadedMsg{ID: panelIDs[tabPerTrack], Rows: rows, Err: err}
	}
}

func totalRows(totals []dto.CategoryTotalOutput) []panel.Row {
	rows := make([]panel.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, panel.Row{Label: t.Category, Series: t.Category, Value: t.TotalMinutes})
	}
	return rows
}
