package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Xrenya/activity-tracker/internal/ui/theme"
)

// FilterField names the dashboard filter a prompt command changes.
type FilterField string

const (
	FieldTrack    FilterField = "track"
	FieldCategory FilterField = "category"
	FieldDateFrom FilterField = "date_from"
	FieldDateTo   FilterField = "date_to"
	FieldTimeFrom FilterField = "time_from"
	FieldTimeTo   FilterField = "time_to"
	FieldReset    FilterField = "reset"
)

type fieldRule struct {
	field    FilterField
	usage    string
	required bool
	choices  []string
}

var fieldRules = []fieldRule{
	{field: FieldTrack, usage: "track <id>", required: true},
	{field: FieldCategory, usage: "category <top-1|top-2>", required: true, choices: []string{"top-1", "top-2"}},
	{field: FieldDateFrom, usage: "date_from [YYYY-MM-DD]"},
	{field: FieldDateTo, usage: "date_to [YYYY-MM-DD]"},
	{field: FieldTimeFrom, usage: "time_from [HH:MM:SS]"},
	{field: FieldTimeTo, usage: "time_to [HH:MM:SS]"},
	{field: FieldReset, usage: "reset"},
}

// FilterCommand is one parsed prompt line. A nil Value on a bound clears it.
type FilterCommand struct {
	Field FilterField
	Value *string
}

// ParseFilterCommand reads "<field> [value]". Bounds are kept verbatim so a
// malformed date still reaches the filter and matches nothing.
func ParseFilterCommand(input string) (FilterCommand, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return FilterCommand{}, fmt.Errorf("empty command")
	}
	rule, ok := lookupField(parts[0])
	if !ok {
		return FilterCommand{}, fmt.Errorf("unknown filter %q", parts[0])
	}
	cmd := FilterCommand{Field: rule.field}
	if len(parts) > 1 {
		v := parts[1]
		cmd.Value = &v
	}
	if rule.required && cmd.Value == nil {
		return FilterCommand{}, fmt.Errorf("usage: %s", rule.usage)
	}
	if len(rule.choices) > 0 && !contains(rule.choices, *cmd.Value) {
		return FilterCommand{}, fmt.Errorf("usage: %s", rule.usage)
	}
	return cmd, nil
}

func lookupField(name string) (fieldRule, bool) {
	for _, s := range fieldRules {
		if string(s.field) == name {
			return s, true
		}
	}
	return fieldRule{}, false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// FilterSubmitMsg carries a command that parsed cleanly.
type FilterSubmitMsg struct{ Command FilterCommand }

type FilterCancelMsg struct{}

var (
	promptStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
	errStyle   = lipgloss.NewStyle().Foreground(theme.Red)
)

// FilterPrompt is the ":" overlay that edits one filter at a time. A line
// that does not parse keeps the prompt open with the error shown.
type FilterPrompt struct {
	input   textinput.Model
	visible bool
	width   int
	err     string
}

func NewFilterPrompt() FilterPrompt {
	ti := textinput.New()
	ti.Placeholder = "date_from 2020-12-05"
	ti.CharLimit = 64
	return FilterPrompt{input: ti}
}

func (p FilterPrompt) Visible() bool { return p.visible }

// Open shows the prompt seeded with prefill and returns the focus command.
func (p *FilterPrompt) Open(prefill string) tea.Cmd {
	p.visible = true
	p.err = ""
	p.input.SetValue(prefill)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *FilterPrompt) SetWidth(w int) { p.width = w }

func (p *FilterPrompt) close() {
	p.visible = false
	p.err = ""
	p.input.Blur()
}

func (p FilterPrompt) Update(msg tea.Msg) (FilterPrompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return FilterCancelMsg{} }
		case "tab":
			if m := p.matching(); len(m) == 1 {
				p.input.SetValue(string(m[0].field) + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "enter":
			cmd, err := ParseFilterCommand(p.input.Value())
			if err != nil {
				p.err = err.Error()
				return p, nil
			}
			p.close()
			return p, func() tea.Msg { return FilterSubmitMsg{Command: cmd} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return p, cmd
}

// matching lists the fields whose name starts with the typed word.
func (p FilterPrompt) matching() []fieldRule {
	word := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		if s, ok := lookupField(word[:i]); ok {
			return []fieldRule{s}
		}
		return nil
	}
	var out []fieldRule
	for _, s := range fieldRules {
		if strings.HasPrefix(string(s.field), word) {
			out = append(out, s)
		}
	}
	return out
}

func (p FilterPrompt) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Filters") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if p.err != "" {
		sb.WriteString(errStyle.Render(p.err) + "\n")
	}
	if m := p.matching(); len(m) > 0 {
		sb.WriteString("\n")
		for _, s := range m {
			sb.WriteString(usageStyle.Render("  "+s.usage) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return promptStyle.Width(w - 2).Render(sb.String())
}
