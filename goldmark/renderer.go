package goldmark

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/markdeck"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	ruleWidth = 40
	tabWidth  = 4
)

type ansiRenderer struct {
	parser parser.Parser

	plain      lipgloss.Style
	bold       lipgloss.Style
	italic     lipgloss.Style
	title      lipgloss.Style
	subheading lipgloss.Style
	accent     lipgloss.Style
	muted      lipgloss.Style
	code       lipgloss.Style
	quote      lipgloss.Style
	underline  lipgloss.Style
}

func newRenderer(theme markdeck.Theme) *ansiRenderer {
	return &ansiRenderer{
		parser:     goldmark.DefaultParser(),
		plain:      lipgloss.NewStyle(),
		bold:       lipgloss.NewStyle().Bold(true),
		italic:     lipgloss.NewStyle().Italic(true),
		title:      lipgloss.NewStyle().Foreground(ansiColor(theme.Heading)).Bold(true),
		subheading: lipgloss.NewStyle().Foreground(ansiColor(theme.Subheading)).Bold(true),
		accent:     lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)),
		muted:      lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		code:       lipgloss.NewStyle().Foreground(ansiColor(theme.Code)),
		quote:      lipgloss.NewStyle().Foreground(ansiColor(theme.Quote)).Italic(true),
		underline:  lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(slide markdeck.Slide, width int) []string {
	var lines []string
	if slide.HasTitle() {
		lines = append(lines, r.renderTitle(slide, width)...)
	}

	var prev markdeck.ContentBlock
	for _, b := range slide.Blocks {
		if len(lines) > 0 && !(isListItem(prev) && isListItem(b)) {
			lines = append(lines, "")
		}
		if cb, ok := b.(markdeck.CodeBlock); ok {
			lines = append(lines, r.renderCode(cb, width)...)
		} else {
			lines = append(lines, clamp(r.renderBlock(b, width), width)...)
		}
		prev = b
	}
	return lines
}

func isListItem(b markdeck.ContentBlock) bool {
	_, ok := b.(markdeck.ListItem)
	return ok
}

// renderTitle emphasizes the slide title and underlines it with a rule.
// Level 1 titles are centered; level 2 titles are left-aligned.
func (r *ansiRenderer) renderTitle(slide markdeck.Slide, width int) []string {
	lines := wrapText(r.inline(slide.Title, r.title), width)

	widest := 0
	for _, l := range lines {
		widest = max(widest, lipgloss.Width(l))
	}
	rule := r.muted.Render(strings.Repeat("─", min(max(widest, 1), width)))
	lines = append(lines, rule)

	if slide.TitleLevel == 1 {
		for i, l := range lines {
			lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, l)
		}
	}
	return clamp(lines, width)
}

func (r *ansiRenderer) renderBlock(b markdeck.ContentBlock, width int) []string {
	switch b := b.(type) {
	case markdeck.Heading:
		return wrapText(r.inline(b.Text, r.subheading), width)

	case markdeck.Paragraph:
		return wrapText(r.inline(b.Text, r.plain), width)

	case markdeck.ListItem:
		return r.renderListItem(b, width)

	case markdeck.Blockquote:
		bar := r.quote.Render("▌") + " "
		var out []string
		for _, l := range wrapText(r.inline(b.Text, r.quote), width-2) {
			out = append(out, bar+l)
		}
		return out

	case markdeck.ThematicBreak:
		return []string{r.muted.Render(strings.Repeat("─", min(width, ruleWidth)))}
	}
	return nil
}

// renderListItem writes the marker, then aligns continuation lines under the
// first character of the item text.
func (r *ansiRenderer) renderListItem(item markdeck.ListItem, width int) []string {
	marker := "•"
	if item.Ordered {
		marker = strconv.Itoa(item.Number) + "."
	}
	indent := strings.Repeat("  ", item.Depth)
	prefixWidth := uniseg.StringWidth(indent + marker + " ")
	if width-prefixWidth < 10 {
		indent = ""
		prefixWidth = uniseg.StringWidth(marker + " ")
	}
	itemWidth := max(width-prefixWidth, 1)

	lines := wrapText(r.inline(item.Text, r.plain), itemWidth)
	continuation := strings.Repeat(" ", prefixWidth)
	for i, l := range lines {
		if i == 0 {
			lines[i] = indent + r.accent.Render(marker) + " " + l
		} else {
			lines[i] = continuation + l
		}
	}
	return lines
}

// renderCode keeps every line verbatim behind a gutter, padded to the widest
// line so the code color forms a block. Tabs are expanded so widths line up.
func (r *ansiRenderer) renderCode(b markdeck.CodeBlock, width int) []string {
	var out []string
	if b.Language != "" {
		out = append(out, truncate.String(r.muted.Render(b.Language), uint(width)))
	}

	lines := make([]string, len(b.Lines))
	widest := 0
	for i, l := range b.Lines {
		lines[i] = expandTabs(l)
		widest = max(widest, runewidth.StringWidth(lines[i]))
	}

	gutter := r.muted.Render("│") + " "
	for _, l := range lines {
		pad := strings.Repeat(" ", widest-runewidth.StringWidth(l))
		out = append(out, gutter+r.code.Render(l+pad))
	}
	return out
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, c := range s {
		if c == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(c)
		col += runewidth.RuneWidth(c)
	}
	return b.String()
}

// wrapText word-wraps s to width, then hard-wraps words that are longer than
// a full line.
func wrapText(s string, width int) []string {
	width = max(width, 1)
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

// clamp truncates any line that is still wider than width.
func clamp(lines []string, width int) []string {
	for i, l := range lines {
		if lipgloss.Width(l) > width {
			lines[i] = truncate.String(l, uint(width))
		}
	}
	return lines
}

// inline renders source as a single run of inline markdown. Every span is
// styled on top of base, so text after an emphasis or code span keeps the
// block's colour.
func (r *ansiRenderer) inline(source string, base lipgloss.Style) string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = escapeBlockStart(l)
	}
	src := []byte(strings.Join(lines, "\n"))
	doc := r.parser.Parse(text.NewReader(src))

	var parts []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			parts = append(parts, r.collectInline(n, src, base))
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			parts = append(parts, base.Render(rawLines(n, src)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if len(parts) == 0 {
		return base.Render(source)
	}
	return strings.Join(parts, " ")
}

var (
	orderedMarker = regexp.MustCompile(`^\d{1,9}[.)](?:[ \t]|$)`)
	linkReference = regexp.MustCompile(`^\[[^\]]+\]:`)
	atxMarker     = regexp.MustCompile(`^#{1,6}(?:[ \t]|$)`)
)

// escapeBlockStart backslash-escapes a leading marker that goldmark would
// read as a block (heading, list, quote, fence, rule, setext underline, link
// reference), so the line stays literal and only inline markup is interpreted.
func escapeBlockStart(s string) string {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return s
	}
	if orderedMarker.MatchString(s) {
		i := strings.IndexAny(s, ".)")
		return s[:i] + `\` + s[i:]
	}
	switch {
	case atxMarker.MatchString(s),
		linkReference.MatchString(s),
		s[0] == '>',
		strings.HasPrefix(s, "```"),
		strings.HasPrefix(s, "~~~"),
		isRule(s),
		strings.Trim(s, "= \t") == "",
		strings.ContainsRune("-+*", rune(s[0])) && (len(s) == 1 || s[1] == ' ' || s[1] == '\t'):
		return `\` + s
	}
	return s
}

// isRule reports whether s is three or more of one of "-*_", spaces allowed.
func isRule(s string) bool {
	var mark rune
	n := 0
	for _, c := range s {
		switch {
		case c == ' ' || c == '\t':
			continue
		case mark == 0 && (c == '-' || c == '*' || c == '_'):
			mark = c
		case c != mark:
			return false
		}
		n++
	}
	return n >= 3
}

func rawLines(n ast.Node, source []byte) string {
	var parts []string
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.Join(parts, " ")
}

// collectInline recursively collects styled inline text from a node's children.
func (r *ansiRenderer) collectInline(node ast.Node, source []byte, style lipgloss.Style) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, style, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) renderInline(node ast.Node, source []byte, style lipgloss.Style, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.WriteString(style.Render(string(util.UnescapePunctuations(n.Segment.Value(source)))))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.WriteString(style.Render(string(n.Value)))

	case *ast.Emphasis:
		if n.Level == 1 {
			buf.WriteString(r.collectInline(n, source, r.italic.Inherit(style)))
		} else {
			buf.WriteString(r.collectInline(n, source, r.bold.Inherit(style)))
		}

	case *ast.CodeSpan:
		// Backslashes are literal inside code spans.
		var code bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				code.Write(t.Segment.Value(source))
			case *ast.String:
				code.Write(t.Value)
			}
		}
		buf.WriteString(r.code.Inherit(style).Render(code.String()))

	case *ast.Link:
		buf.WriteString(r.collectInline(n, source, r.underline.Inherit(style)))
		buf.WriteString(style.Render(" "))
		buf.WriteString(r.muted.Inherit(style).Render("(" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.underline.Inherit(style).Render(string(n.URL(source))))

	case *ast.Image:
		// Images are not drawn; the alt text stands in for them.
		alt := r.collectInline(n, source, lipgloss.NewStyle())
		buf.WriteString(r.muted.Inherit(style).Render("[" + alt + "]"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.WriteString(style.Render(string(seg.Value(source))))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, style, buf)
		}
	}
}
