package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/markdeck"
	"github.com/fwojciec/markdeck/goldmark"
	"github.com/muesli/reflow/truncate"
	"go.uber.org/zap"
)

var _ tea.Model = Model{}

const (
	statusHeight = 1
	topPadding   = 1
	// Horizontal margin around the slide body, dropped on narrow terminals.
	margin         = 2
	minMarginWidth = 24
)

// Model is the Bubble Tea model for a markdeck session. It forwards key
// presses to the engine and renders the current slide on every frame, so
// every state change is followed by a full redraw.
type Model struct {
	engine *markdeck.Engine
	theme  markdeck.Theme
	styles Styles
	keys   keyMap
	help   help.Model
	logger *zap.Logger

	width  int
	height int
	ready  bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Model presenting the engine's deck.
func New(engine *markdeck.Engine, theme markdeck.Theme, opts ...Option) Model {
	styles := NewStyles(theme)
	h := help.New()
	h.Styles = styles.helpStyles()

	m := Model{
		engine: engine,
		theme:  theme,
		styles: styles,
		keys:   newKeyMap(engine.Keys()),
		help:   h,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Engine returns the navigation engine.
func (m Model) Engine() *markdeck.Engine { return m.engine }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case InterruptMsg:
		m.engine.Exit()
		m.logger.Debug("interrupted", zap.Int("index", m.engine.Index()))
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	d := m.engine.Dispatch(k)
	m.logger.Debug("dispatch",
		zap.String("key", k),
		zap.Stringer("action", m.engine.Keys().Resolve(k)),
		zap.Int("index", m.engine.Index()),
		zap.String("directive", fmt.Sprintf("%T", d)),
	)
	if _, ok := d.(markdeck.Quit); ok {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.engine.Exited() {
		return ""
	}

	pad := ""
	bodyWidth := m.width
	if m.width >= minMarginWidth {
		pad = strings.Repeat(" ", margin)
		bodyWidth = m.width - 2*margin
	}

	lines := goldmark.Render(m.engine.Current(), bodyWidth, m.theme)
	bodyHeight := max(m.height-statusHeight-topPadding, 0)
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPadding))
	for _, l := range lines {
		b.WriteString(pad + l + "\n")
	}
	b.WriteString(strings.Repeat("\n", bodyHeight-len(lines)))
	b.WriteString(m.statusLine())
	return b.String()
}

// statusLine shows the position in the deck, the deck title when known and
// the key legend, truncated to the terminal width.
func (m Model) statusLine() string {
	pos := fmt.Sprintf("slide %d of %d", m.engine.Index()+1, m.engine.Count())
	parts := []string{m.styles.Status.Render(pos)}
	if title := m.engine.Deck().Meta.Title; title != "" {
		parts = append(parts, goldmark.Inline(title, m.styles.Title, m.theme))
	}
	parts = append(parts, m.help.View(m.keys))
	line := strings.Join(parts, "  ")
	return truncate.StringWithTail(line, uint(max(m.width, 0)), "…")
}
