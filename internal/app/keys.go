package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Add      key.Binding
	Delete   key.Binding
	Lock     key.Binding
	Unlock   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "Navigate")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "Navigate")),
		NextPage: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Change page")),
		PrevPage: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "Change page")),
		Add:      key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("N", "New user")),
		Delete:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("Backspace", "Delete")),
		Lock:     key.NewBinding(key.WithKeys("l", "L"), key.WithHelp("L", "Lock")),
		Unlock:   key.NewBinding(key.WithKeys("u", "U"), key.WithHelp("U", "Unlock")),
		Quit:     key.NewBinding(key.WithKeys("q", "Q"), key.WithHelp("Q", "Quit")),
	}
}

// instructions renders the static help line. Paired bindings share an entry,
// e.g. "↑/↓: Navigate".
func (k keyMap) instructions() string {
	groups := [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevPage, k.NextPage},
		{k.Add},
		{k.Delete},
		{k.Lock},
		{k.Unlock},
		{k.Quit},
	}

	items := make([]string, 0, len(groups))
	for _, g := range groups {
		keys := make([]string, 0, len(g))
		for _, b := range g {
			keys = append(keys, b.Help().Key)
		}
		items = append(items, strings.Join(keys, "/")+": "+g[0].Help().Desc)
	}
	return strings.Join(items, " | ")
}
