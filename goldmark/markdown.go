// Package goldmark renders slides to ANSI-styled terminal lines using
// goldmark for inline markdown and lipgloss for styling.
package goldmark

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/markdeck"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

// Render lays out a slide for a terminal of the given width. The title is
// emphasized (level 1 centered, level 2 left-aligned), paragraphs, list items
// and quotes are word-wrapped, and code blocks are kept verbatim without
// reflow. Every line outside a code block fits within width.
func Render(slide markdeck.Slide, width int, theme markdeck.Theme) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	r := newRenderer(theme)
	return r.render(slide, width)
}

// Inline renders a single line of inline markdown (emphasis, code spans,
// links) to styled text without wrapping. Spans are styled on top of base.
func Inline(source string, base lipgloss.Style, theme markdeck.Theme) string {
	if source == "" {
		return ""
	}
	return newRenderer(theme).inline(source, base)
}
