package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Xrenya/activity-tracker/internal/ui/theme"
)

// Row is one bar of a text chart. Group is non-empty for per-track rows.
type Row struct {
	Group  string
	Label  string
	Series string
	Value  float64
}

// LoadedMsg carries freshly computed rows for the panel with the given ID.
type LoadedMsg struct {
	ID       string
	Rows     []Row
	Fallback bool
	Err      error
}

type Model struct {
	id       string
	title    string
	unit     string
	rows     []Row
	fallback bool
	err      error
	loading  bool
	body     viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

func New(id, title, unit string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{id: id, title: title, unit: unit, body: vp, spinner: sp, loading: true}
}

func (m Model) ID() string { return m.id }

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

// Loading marks the panel stale until the next LoadedMsg arrives.
func (m *Model) Loading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height
		m.body.SetContent(m.render())
		return m, nil
	case LoadedMsg:
		if msg.ID != m.id {
			return m, nil
		}
		m.loading = false
		m.rows = msg.Rows
		m.fallback = msg.Fallback
		m.err = msg.Err
		m.body.SetContent(m.render())
		m.body.GotoTop()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading "+m.title+"…")
	}
	return m.body.View()
}

// Content returns the rendered chart without the viewport frame.
func (m Model) Content() string { return m.render() }

func (m Model) render() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.title) + "\n")
	if m.fallback {
		sb.WriteString(theme.Muted.Render("showing all records") + "\n")
	}
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(theme.Hot.Render(m.err.Error()))
		return sb.String()
	}
	if len(m.rows) == 0 {
		sb.WriteString(theme.Muted.Render("No data to display"))
		return sb.String()
	}

	labelW, top := 0, 0.0
	for _, r := range m.rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		if r.Value > top {
			top = r.Value
		}
	}
	barW := m.width - labelW - 20
	if barW < 10 {
		barW = 40
	}
	colors := map[string]lipgloss.Color{}
	group := ""
	for _, r := range m.rows {
		if r.Group != "" && r.Group != group {
			group = r.Group
			sb.WriteString(theme.Hot.Render(group) + "\n")
		}
		c, ok := colors[r.Series]
		if !ok {
			c = theme.Series[len(colors)%len(theme.Series)]
			colors[r.Series] = c
		}
		n := 0
		if top > 0 {
			n = int(r.Value / top * float64(barW))
		}
		if n == 0 && r.Value > 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", n))
		sb.WriteString(fmt.Sprintf("%-*s %s %s\n", labelW, r.Label, bar, theme.Muted.Render(m.format(r))))
	}
	return sb.String()
}

func (m Model) format(r Row) string {
	if m.unit == "" {
		return r.Series
	}
	return fmt.Sprintf("%.2f %s", r.Value, m.unit)
}
