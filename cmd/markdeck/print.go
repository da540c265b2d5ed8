package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/markdeck"
	"github.com/fwojciec/markdeck/goldmark"
	"github.com/muesli/reflow/truncate"
)

// printDeck writes every slide to w, each followed by a separator line
// carrying its position.
func printDeck(w io.Writer, deck markdeck.Deck, width int, theme markdeck.Theme) error {
	bw := bufio.NewWriter(w)
	n := deck.Count()
	for i, slide := range deck.Slides {
		for _, line := range goldmark.Render(slide, width, theme) {
			fmt.Fprintln(bw, line)
		}
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, separator(i+1, n, width))
		if i < n-1 {
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}

// separator renders "── i/n ────" filled to width.
func separator(i, n, width int) string {
	label := fmt.Sprintf("── %d/%d ", i, n)
	fill := width - len([]rune(label))
	if fill <= 0 {
		return truncate.String(label, uint(max(width, 0)))
	}
	return label + strings.Repeat("─", fill)
}
