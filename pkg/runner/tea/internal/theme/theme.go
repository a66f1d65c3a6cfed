package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	List   ListTheme
	Detail DetailTheme
	Form   FormTheme
	Notice NoticeTheme
	Footer FooterTheme
}

type HeaderTheme struct {
	Title lipgloss.Style
	Meta  lipgloss.Style
}

// ListTheme styles the grouped entry list.
type ListTheme struct {
	Day      lipgloss.Style
	Count    lipgloss.Style
	Time     lipgloss.Style
	Entry    lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
	Search   lipgloss.Style
}

type DetailTheme struct {
	Title    lipgloss.Style
	Date     lipgloss.Style
	Body     lipgloss.Style
	Label    lipgloss.Style
	Feedback lipgloss.Style
	Confirm  lipgloss.Style
}

type FormTheme struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
}

// NoticeTheme colours the notification bar by outcome.
type NoticeTheme struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Mode   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		List: ListTheme{
			Day:      lipgloss.NewStyle().Bold(true).Underline(true),
			Count:    lipgloss.NewStyle().Faint(true),
			Time:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Entry:    lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true),
			Empty:    lipgloss.NewStyle().Faint(true).Italic(true),
			Search:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Detail: DetailTheme{
			Title:    lipgloss.NewStyle().Bold(true),
			Date:     lipgloss.NewStyle().Faint(true),
			Body:     lipgloss.NewStyle(),
			Label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Feedback: lipgloss.NewStyle().PaddingLeft(2).Italic(true),
			Confirm:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Form: FormTheme{
			Heading: lipgloss.NewStyle().Bold(true).Underline(true),
			Label:   label,
			Focused: label.Foreground(lipgloss.Color("218")).Bold(true),
		},
		Notice: NoticeTheme{
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Hint:    lipgloss.NewStyle().Faint(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}
