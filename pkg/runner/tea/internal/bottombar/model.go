package bottombar

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/diary/pkg/runner/tea/internal/theme"
)

// Model tracks footer/help/status rendering state.
type Model struct {
	mode     string
	status   string
	bindings []key.Binding
	help     help.Model
	styles   theme.FooterTheme
}

// New returns a footer model with sensible defaults.
func New(styles theme.FooterTheme) Model {
	h := help.New()
	h.Styles.ShortKey = styles.Help.Bold(true)
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help
	return Model{help: h, styles: styles}
}

// SetMode updates the mode label.
func (m *Model) SetMode(mode string) {
	m.mode = mode
}

// SetHelp sets the key bindings shown in the help line.
func (m *Model) SetHelp(bindings ...key.Binding) {
	m.bindings = bindings
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.status = status
}

func (m Model) Status() string {
	return m.status
}

// View renders the status line above the help line.
func (m Model) View(width int) string {
	m.help.Width = width
	var parts []string
	if m.mode != "" {
		parts = append(parts, m.styles.Mode.Render("["+strings.ToUpper(m.mode)+"]"))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	status := strings.Join(parts, " ")
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.ShortHelpView(m.bindings))
}
