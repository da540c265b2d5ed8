package bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/fwojciec/markdeck"
)

// legendKeys is how many keys per action the legend shows.
const legendKeys = 2

// keyMap mirrors a markdeck.KeyMap as bubbles key bindings so the legend can
// be rendered by the help component. Dispatch itself goes through the
// engine.
type keyMap struct {
	bindings []key.Binding
}

var _ help.KeyMap = keyMap{}

func newKeyMap(km markdeck.KeyMap) keyMap {
	var bindings []key.Binding
	for _, a := range markdeck.Actions {
		keys := km.Keys(a)
		if len(keys) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKeys(keys), a.Description()),
		))
	}
	return keyMap{bindings: bindings}
}

func helpKeys(keys []string) string {
	labels := make([]string, 0, legendKeys)
	for _, k := range keys {
		if len(labels) == legendKeys {
			break
		}
		labels = append(labels, markdeck.DisplayKey(k))
	}
	return strings.Join(labels, "/")
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding { return k.bindings }

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.bindings} }
