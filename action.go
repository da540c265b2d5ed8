package markdeck

import "strings"

// Action is a logical navigation command, decoupled from the key that
// triggers it.
type Action int

const (
	ActionNone Action = iota
	ActionNextSlide
	ActionPreviousSlide
	ActionJumpToStart
	ActionJumpToEnd
	ActionQuit
)

// Actions lists every bindable action in resolution order. When a key is
// bound to more than one action, the earliest one in this list wins.
var Actions = []Action{
	ActionNextSlide,
	ActionPreviousSlide,
	ActionJumpToStart,
	ActionJumpToEnd,
	ActionQuit,
}

// String returns the configuration name of the action.
func (a Action) String() string {
	switch a {
	case ActionNextSlide:
		return "next_slide"
	case ActionPreviousSlide:
		return "previous_slide"
	case ActionJumpToStart:
		return "jump_to_start"
	case ActionJumpToEnd:
		return "jump_to_end"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Description is the short label used in the key legend.
func (a Action) Description() string {
	switch a {
	case ActionNextSlide:
		return "next"
	case ActionPreviousSlide:
		return "prev"
	case ActionJumpToStart:
		return "first"
	case ActionJumpToEnd:
		return "last"
	case ActionQuit:
		return "quit"
	default:
		return ""
	}
}

// ParseAction resolves a configuration name to an Action. Names are case
// insensitive and "-" is accepted in place of "_". The second return value is
// false for names that do not denote a bindable action.
func ParseAction(name string) (Action, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, a := range Actions {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}
