package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	defaultHeight = 24

	colIndex    = 5
	colUsername = 20
	colFullName = 30
	colLocked   = 10
)

// Rows counted up from the bottom of the screen.
const (
	rowMessage      = 6
	rowInstructions = 3
	rowPage         = 2
	rowPrompt       = 1
)

func (m *model) View() string {
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}

	body := m.tableLines()
	bottom := map[int]string{
		rowMessage:      m.renderStatus(),
		rowInstructions: m.styles.Instructions.Render(m.keys.instructions()),
		rowPage:         m.renderPage(),
		rowPrompt:       m.renderPrompt(),
	}

	if height <= rowMessage {
		lines := append(body, bottom[rowMessage], bottom[rowInstructions], bottom[rowPage], bottom[rowPrompt])
		return strings.Join(lines, "\n")
	}

	screen := make([]string, height)
	copy(screen, body[:min(len(body), height-rowMessage)])
	for offset, line := range bottom {
		screen[height-offset] = line
	}
	return strings.Join(screen, "\n")
}

func (m *model) tableLines() []string {
	lines := []string{m.styles.Header.Render(formatRow("#", "Username", "Full Name", "Locked"))}

	if len(m.accounts) == 0 {
		return append(lines, m.styles.Empty.Render("No regular users found."))
	}

	start, end := m.nav.Bounds()
	for i := start; i < end; i++ {
		a := m.accounts[i]
		if i == m.nav.Selected {
			lines = append(lines, m.styles.SelectedRow.Render(formatRow(strconv.Itoa(i+1), a.Username, a.FullName, yesNo(a.Locked))))
			continue
		}
		lockedStyle := m.styles.Row
		if a.Locked {
			lockedStyle = m.styles.LockedFlag
		}
		lines = append(lines, m.styles.Row.Render(cell(strconv.Itoa(i+1), colIndex)+cell(a.Username, colUsername)+cell(a.FullName, colFullName))+
			lockedStyle.Render(cell(yesNo(a.Locked), colLocked)))
	}
	return lines
}

func (m *model) renderStatus() string {
	if m.status.level == statusErr {
		return m.styles.StatusError.Render(m.status.text)
	}
	return m.styles.StatusInfo.Render(m.status.text)
}

func (m *model) renderPage() string {
	text := fmt.Sprintf("Page %d/%d", m.nav.Page, m.nav.TotalPages())
	if m.inflight {
		text += " " + m.spin.View()
	}
	return m.styles.Page.Render(text)
}

func (m *model) renderPrompt() string {
	if m.prompt == nil {
		return ""
	}
	return m.prompt.View()
}

func formatRow(index, username, fullName, locked string) string {
	return cell(index, colIndex) + cell(username, colUsername) + cell(fullName, colFullName) + cell(locked, colLocked)
}

// cell pads s to width display cells, truncating to keep one cell of gap.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width-1, "…"), width)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
