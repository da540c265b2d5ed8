package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/markdeck"
)

// Styles maps a Theme to lipgloss styles for the status line.
type Styles struct {
	Status lipgloss.Style
	Title  lipgloss.Style
	Key    lipgloss.Style
	Muted  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t markdeck.Theme) Styles {
	return Styles{
		Status: lipgloss.NewStyle().Foreground(ansiColor(t.Muted)),
		Title:  lipgloss.NewStyle().Foreground(ansiColor(t.Heading)).Bold(true),
		Key:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)),
		Muted:  lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

// helpStyles styles the key legend.
func (s Styles) helpStyles() help.Styles {
	st := help.New().Styles
	st.ShortKey = s.Key
	st.ShortDesc = s.Muted
	st.ShortSeparator = s.Muted
	st.Ellipsis = s.Muted
	return st
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
