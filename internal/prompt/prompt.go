// Package prompt captures a single line of text from key events.
//
// A Prompt appends printable runes, removes the last rune on backspace and
// finishes on enter. Cursor movement and editing shortcuts are ignored, so the
// buffer only ever grows or shrinks at its end. There is no cancel key;
// callers decide what an answer means.
package prompt

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MaskChar is echoed in place of each rune of a masked answer.
const MaskChar = '*'

type Prompt struct {
	input     textinput.Model
	label     string
	submitted bool
}

// New returns a focused prompt. A masked prompt echoes MaskChar per rune.
func New(label string, mask bool) *Prompt {
	in := textinput.New()
	in.Prompt = label
	in.Placeholder = ""
	if mask {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = MaskChar
	}
	in.Focus()

	return &Prompt{input: in, label: label}
}

// Update feeds one key event to the prompt and reports whether enter
// finished it. Events after submission are ignored.
func (p *Prompt) Update(msg tea.KeyMsg) bool {
	if p.submitted {
		return true
	}

	switch msg.Type {
	case tea.KeyEnter:
		p.submitted = true
		p.input.Blur()
		return true
	case tea.KeyBackspace:
		if msg.Alt || p.input.Value() == "" {
			return false
		}
	case tea.KeyRunes, tea.KeySpace:
		if msg.Alt || !printable(msg.Runes) {
			return false
		}
	default:
		return false
	}

	p.input, _ = p.input.Update(msg)
	return false
}

func (p *Prompt) Label() string { return p.label }

// Value returns the text typed so far.
func (p *Prompt) Value() string { return p.input.Value() }

func (p *Prompt) Submitted() bool { return p.submitted }

// View renders the label followed by the echoed answer.
func (p *Prompt) View() string {
	return p.input.View()
}

func printable(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
