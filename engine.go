package markdeck

// Directive is a sealed interface describing the outcome of one dispatch.
// The unexported marker method prevents external implementations.
type Directive interface {
	directive()
}

// Redraw asks the caller to render Slide, the new current slide.
type Redraw struct {
	Slide Slide
}

func (Redraw) directive() {}

// Quit ends the session.
type Quit struct{}

func (Quit) directive() {}

// NoOp means the state did not change.
type NoOp struct{}

func (NoOp) directive() {}

// Interface compliance checks.
var (
	_ Directive = Redraw{}
	_ Directive = Quit{}
	_ Directive = NoOp{}
)

// Engine holds the navigation state of one viewing session: the deck, the
// key bindings and the current slide index. All movement is clamped to the
// deck bounds; nothing wraps and nothing fails.
//
// Engine is not safe for concurrent use. It is driven from a single event
// loop.
type Engine struct {
	deck   Deck
	keys   KeyMap
	index  int
	exited bool
}

// NewEngine returns an Engine positioned on the first slide. An empty deck
// is given a single empty slide so that Current is always valid.
func NewEngine(deck Deck, keys KeyMap) *Engine {
	if len(deck.Slides) == 0 {
		deck.Slides = []Slide{{}}
	}
	return &Engine{deck: deck, keys: keys}
}

// Current returns the active slide.
func (e *Engine) Current() Slide { return e.deck.Slides[e.index] }

// Index returns the zero-based index of the active slide.
func (e *Engine) Index() int { return e.index }

// Count returns the number of slides in the deck.
func (e *Engine) Count() int { return len(e.deck.Slides) }

// Exited reports whether the session has quit.
func (e *Engine) Exited() bool { return e.exited }

// Deck returns the deck being presented.
func (e *Engine) Deck() Deck { return e.deck }

// Keys returns the key bindings in use.
func (e *Engine) Keys() KeyMap { return e.keys }

// Dispatch resolves key through the bindings and applies the resulting
// action. Unbound keys, and every key after the session has quit, yield
// NoOp.
func (e *Engine) Dispatch(key string) Directive {
	return e.Apply(e.keys.Resolve(key))
}

// Apply performs a logical action directly.
func (e *Engine) Apply(a Action) Directive {
	if e.exited {
		return NoOp{}
	}
	last := len(e.deck.Slides) - 1
	switch a {
	case ActionNextSlide:
		return e.moveTo(min(e.index+1, last))
	case ActionPreviousSlide:
		return e.moveTo(max(e.index-1, 0))
	case ActionJumpToStart:
		return e.moveTo(0)
	case ActionJumpToEnd:
		return e.moveTo(last)
	case ActionQuit:
		e.exited = true
		return Quit{}
	default:
		return NoOp{}
	}
}

// Exit ends the session regardless of key bindings, for interrupts that do
// not arrive as key presses. It returns Quit the first time and NoOp after.
func (e *Engine) Exit() Directive {
	return e.Apply(ActionQuit)
}

func (e *Engine) moveTo(index int) Directive {
	if index == e.index {
		return NoOp{}
	}
	e.index = index
	return Redraw{Slide: e.Current()}
}
