package bubbletea_test

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/markdeck"
	bt "github.com/fwojciec/markdeck/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestNew(t *testing.T) {
	t.Parallel()

	engine := markdeck.NewEngine(markdeck.Segment(threeSlides), markdeck.DefaultKeyMap())
	m := bt.New(engine, markdeck.DefaultTheme())

	assert.Same(t, engine, m.Engine())
	assert.Nil(t, m.Init())
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("next key advances and redraws", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		m = updateModel(t, m, runeKey("l"))
		assert.Equal(t, 1, m.Engine().Index())

		view := stripANSI(m.View())
		assert.Contains(t, view, "Two")
		assert.Contains(t, view, "• a")
		assert.Contains(t, view, "slide 2 of 3")
	})

	t.Run("arrow keys navigate", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRight})
		assert.Equal(t, 2, m.Engine().Index())
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		assert.Equal(t, 1, m.Engine().Index())
	})

	t.Run("space advances", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.Equal(t, 1, m.Engine().Index())
	})

	t.Run("previous clamps at first slide", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		_, cmd := m.Update(runeKey("h"))
		assert.Nil(t, cmd)
		assert.Equal(t, 0, m.Engine().Index())
	})

	t.Run("jump keys", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		m = updateModel(t, m, runeKey("G"))
		assert.Equal(t, 2, m.Engine().Index())
		m = updateModel(t, m, runeKey("g"))
		assert.Equal(t, 0, m.Engine().Index())
	})

	t.Run("unmapped key does nothing", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		_, cmd := m.Update(runeKey("z"))
		assert.Nil(t, cmd)
		assert.Equal(t, 0, m.Engine().Index())
		assert.False(t, m.Engine().Exited())
	})

	t.Run("quit key quits", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		_, cmd := m.Update(runeKey("q"))
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
		assert.True(t, m.Engine().Exited())
		assert.Empty(t, m.View())
	})

	t.Run("ctrl+c is a default quit key", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})

	t.Run("keys after quit are ignored", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, threeSlides)
		m = updateModel(t, m, runeKey("q"))
		_, cmd := m.Update(runeKey("l"))
		assert.Nil(t, cmd)
		assert.Equal(t, 0, m.Engine().Index())
	})

	t.Run("interrupt quits without a binding", func(t *testing.T) {
		t.Parallel()
		keys := markdeck.NewKeyMap(map[markdeck.Action][]string{markdeck.ActionQuit: {"x"}})
		engine := markdeck.NewEngine(markdeck.Segment(threeSlides), keys)
		m := bt.New(engine, markdeck.DefaultTheme())
		_, cmd := m.Update(bt.InterruptMsg{})
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
		assert.True(t, engine.Exited())
	})

	t.Run("dispatches are logged", func(t *testing.T) {
		t.Parallel()
		core, logs := observer.New(zapcore.DebugLevel)
		engine := markdeck.NewEngine(markdeck.Segment(threeSlides), markdeck.DefaultKeyMap())
		m := bt.New(engine, markdeck.DefaultTheme(), bt.WithLogger(zap.New(core)))
		m = updateModel(t, m, runeKey("l"))
		entries := logs.FilterMessage("dispatch").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "next_slide", entries[0].ContextMap()["action"])
		assert.Equal(t, int64(1), entries[0].ContextMap()["index"])
	})
}

func TestModel_View(t *testing.T) {
	t.Parallel()

	t.Run("fills the terminal height", func(t *testing.T) {
		t.Parallel()
		m := initModelWithSize(t, threeSlides, 60, 20)
		lines := strings.Split(m.View(), "\n")
		assert.Len(t, lines, 20)
		assert.Contains(t, stripANSI(lines[len(lines)-1]), "slide 1 of 3")
	})

	t.Run("lines fit the terminal width", func(t *testing.T) {
		t.Parallel()
		src := "# A title long enough to wrap on a narrow screen\n\n" +
			"Body text that keeps going for quite a few words so it must wrap.\n\n" +
			"- a list item that also needs more than one line at this width\n"
		for _, width := range []int{16, 30, 50} {
			m := initModelWithSize(t, src, width, 30)
			for _, l := range strings.Split(m.View(), "\n") {
				assert.LessOrEqual(t, lipgloss.Width(l), width, "width %d line %q", width, stripANSI(l))
			}
		}
	})

	t.Run("body is clipped to available height", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		b.WriteString("# Long\n\n")
		for range 50 {
			b.WriteString("- item\n")
		}
		m := initModelWithSize(t, b.String(), 40, 10)
		lines := strings.Split(m.View(), "\n")
		assert.Len(t, lines, 10)
		assert.Contains(t, stripANSI(lines[9]), "slide 1 of 1")
	})

	t.Run("empty slide still shows status", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, "")
		assert.Contains(t, stripANSI(m.View()), "slide 1 of 1")
	})
}

func TestStatusLine(t *testing.T) {
	t.Parallel()

	t.Run("shows position and legend", func(t *testing.T) {
		t.Parallel()
		m := initModelWithSize(t, threeSlides, 200, 24)
		status := stripANSI(bt.StatusLine(m))
		assert.Contains(t, status, "slide 1 of 3")
		assert.Contains(t, status, "l/→ next")
		assert.Contains(t, status, "h/← prev")
		assert.Contains(t, status, "q/ctrl+c quit")
	})

	t.Run("shows deck title from front matter", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment(threeSlides)
		deck.Meta.Title = "My Talk"
		m := bt.New(markdeck.NewEngine(deck, markdeck.DefaultKeyMap()), markdeck.DefaultTheme())
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 200, Height: 24})
		assert.Contains(t, stripANSI(bt.StatusLine(m)), "My Talk")
	})

	t.Run("legend reflects custom bindings", func(t *testing.T) {
		t.Parallel()
		keys := markdeck.NewKeyMap(map[markdeck.Action][]string{markdeck.ActionNextSlide: {"j"}})
		m := bt.New(markdeck.NewEngine(markdeck.Segment(threeSlides), keys), markdeck.DefaultTheme())
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 200, Height: 24})
		assert.Contains(t, stripANSI(bt.StatusLine(m)), "j next")
	})

	t.Run("truncated to width", func(t *testing.T) {
		t.Parallel()
		m := initModelWithSize(t, threeSlides, 20, 24)
		status := bt.StatusLine(m)
		assert.LessOrEqual(t, lipgloss.Width(status), 20)
		assert.True(t, strings.HasPrefix(stripANSI(status), "slide 1 of 3"))
	})
}

func TestHelpKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "space", bt.HelpKeys([]string{" "}))
	assert.Equal(t, "l/→", bt.HelpKeys([]string{"l", "right", " "}))
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("navigate and quit", func(t *testing.T) {
		t.Parallel()
		engine := markdeck.NewEngine(markdeck.Segment(threeSlides), markdeck.DefaultKeyMap())
		m := bt.New(engine, markdeck.DefaultTheme())
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("slide 1 of 3"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(runeKey("l"))
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("slide 2 of 3"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(runeKey("q"))
		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		assert.True(t, final.Engine().Exited())
		assert.Equal(t, 1, final.Engine().Index())
	})

	t.Run("cancelled context ends the session", func(t *testing.T) {
		t.Parallel()
		engine := markdeck.NewEngine(markdeck.Segment(threeSlides), markdeck.DefaultKeyMap())
		m := bt.New(engine, markdeck.DefaultTheme())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		final, err := bt.Run(ctx, m,
			tea.WithInput(&bytes.Buffer{}),
			tea.WithOutput(&bytes.Buffer{}),
		)
		require.NoError(t, err)
		assert.True(t, final.Engine().Exited())
	})
}
