package theme

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header       lipgloss.Style
	Row          lipgloss.Style
	SelectedRow  lipgloss.Style
	LockedFlag   lipgloss.Style
	Empty        lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusError  lipgloss.Style
	Instructions lipgloss.Style
	Page         lipgloss.Style
}

func Dark() Styles {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("#E8EEF0"))

	return Styles{
		Header:       base.Bold(true),
		Row:          base,
		SelectedRow:  lipgloss.NewStyle().Background(lipgloss.Color("#FFFFFF")).Foreground(lipgloss.Color("#000000")),
		LockedFlag:   base.Foreground(lipgloss.Color("#FFB3B8")),
		Empty:        base.Foreground(lipgloss.Color("#82939D")).Italic(true),
		StatusInfo:   base.Foreground(lipgloss.Color("#9FD2FF")),
		StatusError:  base.Foreground(lipgloss.Color("#FFB3B8")).Bold(true),
		Instructions: base.Foreground(lipgloss.Color("#A3B0B8")),
		Page:         base.Foreground(lipgloss.Color("#D9EEF7")),
	}
}
