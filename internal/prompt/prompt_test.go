package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(p *Prompt, s string) {
	for _, r := range s {
		if r == ' ' {
			p.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPromptCollectsText(t *testing.T) {
	p := New("Enter full name: ", false)
	typeText(p, "Ada Lovelace")

	assert.Equal(t, "Ada Lovelace", p.Value())
	assert.False(t, p.Submitted())
	assert.Contains(t, p.View(), "Enter full name: ")
	assert.Contains(t, p.View(), "Ada Lovelace")

	done := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
	assert.True(t, p.Submitted())
	assert.Equal(t, "Ada Lovelace", p.Value())
}

func TestPromptBackspace(t *testing.T) {
	p := New("Enter username: ", false)
	typeText(p, "bobx")
	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "bob", p.Value())

	for i := 0; i < 5; i++ {
		p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	assert.Equal(t, "", p.Value())
}

func TestPromptBackspaceOnEmptyBuffer(t *testing.T) {
	p := New("Enter username: ", false)
	before := p.View()

	done := p.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.False(t, done)
	assert.Equal(t, "", p.Value())
	assert.Equal(t, before, p.View())
}

func TestPromptEmptySubmit(t *testing.T) {
	p := New("Enter username: ", false)
	require.True(t, p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "", p.Value())
}

func TestPromptIgnoresNamedKeys(t *testing.T) {
	p := New("Enter username: ", false)
	typeText(p, "al")

	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown, tea.KeyHome, tea.KeyTab, tea.KeyEsc, tea.KeyCtrlA, tea.KeyDelete} {
		assert.False(t, p.Update(tea.KeyMsg{Type: k}))
	}
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})

	typeText(p, "ice")
	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "alic", p.Value())
}

func TestPromptAltBackspaceIgnored(t *testing.T) {
	p := New("Enter full name: ", false)
	typeText(p, "ab cd")

	assert.False(t, p.Update(tea.KeyMsg{Type: tea.KeyBackspace, Alt: true}))
	assert.Equal(t, "ab cd", p.Value())

	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "ab c", p.Value())
}

func TestPromptMasksInput(t *testing.T) {
	p := New("Enter password: ", true)
	typeText(p, "s3cret")

	assert.Equal(t, "s3cret", p.Value())
	view := p.View()
	assert.NotContains(t, view, "s3cret")
	assert.Contains(t, view, strings.Repeat(string(MaskChar), 5))
}

func TestPromptIgnoresInputAfterSubmit(t *testing.T) {
	p := New("Are you sure? (y/n): ", false)
	typeText(p, "y")
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(p, "zz")
	assert.Equal(t, "y", p.Value())
}
