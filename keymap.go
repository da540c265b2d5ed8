package markdeck

import (
	"strings"
	"unicode/utf8"
)

// DefaultBindings returns the built-in keys for every action. Key
// identifiers use the names Bubble Tea reports for key presses.
func DefaultBindings() map[Action][]string {
	return map[Action][]string{
		ActionNextSlide:     {"l", "right", " ", "pgdown", "n"},
		ActionPreviousSlide: {"h", "left", "pgup", "p"},
		ActionJumpToStart:   {"g", "home"},
		ActionJumpToEnd:     {"G", "end"},
		ActionQuit:          {"q", "ctrl+c", "esc"},
	}
}

// KeyMap resolves key identifiers to actions. The zero value maps every key
// to ActionNone.
type KeyMap struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewKeyMap builds a KeyMap from per-action key lists. Actions that are
// absent from bindings, or whose list holds no usable key, keep their
// default keys. A key claimed by more than one action goes to the action
// listed first in Actions.
func NewKeyMap(bindings map[Action][]string) KeyMap {
	km := KeyMap{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	defaults := DefaultBindings()
	for _, a := range Actions {
		keys := normalizeKeys(bindings[a])
		if len(keys) == 0 {
			keys = normalizeKeys(defaults[a])
		}
		for _, k := range keys {
			if _, taken := km.actions[k]; taken {
				continue
			}
			km.actions[k] = a
			km.keys[a] = append(km.keys[a], k)
		}
	}
	return km
}

// DefaultKeyMap returns a KeyMap holding only the default bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(nil)
}

// Resolve returns the action bound to key, or ActionNone.
func (km KeyMap) Resolve(key string) Action {
	return km.actions[NormalizeKey(key)]
}

// Keys returns the keys bound to a, in configuration order.
func (km KeyMap) Keys(a Action) []string {
	keys := km.keys[a]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

func normalizeKeys(keys []string) []string {
	var out []string
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = NormalizeKey(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

var keyAliases = map[string]string{
	"space":     " ",
	"return":    "enter",
	"escape":    "esc",
	"pageup":    "pgup",
	"page_up":   "pgup",
	"pagedown":  "pgdown",
	"page_down": "pgdown",
	"del":       "delete",
	"backtab":   "shift+tab",
}

// NormalizeKey converts a key identifier to the form Bubble Tea reports for
// key presses. Single characters are case sensitive ("g" and "G" differ).
// Named keys are case insensitive, and the terminal shorthand "C-f" and
// "A-x" (or "M-x") map to "ctrl+f" and "alt+x".
func NormalizeKey(key string) string {
	if key == " " {
		return key
	}
	k := strings.TrimSpace(key)
	if k == "" || utf8.RuneCountInString(k) == 1 {
		return k
	}
	lower := strings.ToLower(k)
	for _, p := range []string{"c-", "ctrl+", "ctrl-"} {
		if strings.HasPrefix(lower, p) && len(k) > len(p) {
			return "ctrl+" + strings.ToLower(namedKey(k[len(p):]))
		}
	}
	for _, p := range []string{"a-", "m-", "alt+", "alt-"} {
		if strings.HasPrefix(lower, p) && len(k) > len(p) {
			return "alt+" + namedKey(k[len(p):])
		}
	}
	return namedKey(k)
}

func namedKey(k string) string {
	if utf8.RuneCountInString(k) == 1 {
		return k
	}
	lower := strings.ToLower(k)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}

// DisplayKey returns a short human label for a normalized key identifier.
func DisplayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return key
}
