package markdeck

import (
	"strconv"
	"strings"
)

// Segment splits a markdown document into slides. Every level 1 or level 2
// heading starts a new slide and becomes its title. Content before the first
// such heading forms an untitled leading slide, which is dropped when empty.
//
// Segment never fails: lines that are not a recognized block start are
// treated as paragraph text. A document without any blocks yields a single
// empty slide.
func Segment(text string) Deck {
	return group(parseBlocks(text))
}

// group folds a flat block sequence into slides.
func group(blocks []ContentBlock) Deck {
	var (
		slides  []Slide
		current Slide
		started bool
	)
	for _, b := range blocks {
		if IsBoundary(b) {
			if started {
				slides = append(slides, current)
			}
			h := b.(Heading)
			current = Slide{Title: h.Text, TitleLevel: h.Level}
			started = true
			continue
		}
		current.Blocks = append(current.Blocks, b)
		started = true
	}
	if started || len(slides) == 0 {
		slides = append(slides, current)
	}
	return Deck{Slides: slides}
}

type parseState int

const (
	stateNone parseState = iota
	stateParagraph
	stateListItem
	stateQuote
	stateFence
)

// blockParser classifies lines into blocks. Text-bearing blocks accumulate
// lines until a blank line or another block start flushes them.
type blockParser struct {
	blocks []ContentBlock
	state  parseState
	lines  []string
	item   ListItem
	fence  string // Opening fence run, e.g. "```" or "~~~~".
	lang   string
}

func parseBlocks(text string) []ContentBlock {
	p := &blockParser{}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		p.feed(line)
	}
	p.flush()
	return p.blocks
}

func (p *blockParser) feed(line string) {
	if p.state == stateFence {
		if closesFence(line, p.fence) {
			p.flush()
			return
		}
		p.lines = append(p.lines, line)
		return
	}

	if strings.TrimSpace(line) == "" {
		p.flush()
		return
	}

	if fence, lang, ok := openFence(line); ok {
		p.flush()
		p.state = stateFence
		p.fence = fence
		p.lang = lang
		return
	}

	if h, ok := parseHeading(line); ok {
		p.flush()
		p.blocks = append(p.blocks, h)
		return
	}

	// Checked before list items so that "* * *" is a rule, not a bullet.
	if isThematicBreak(line) {
		p.flush()
		p.blocks = append(p.blocks, ThematicBreak{})
		return
	}

	if item, ok := parseListItem(line); ok {
		p.flush()
		p.state = stateListItem
		p.item = item
		p.lines = append(p.lines, item.Text)
		return
	}

	if text, ok := parseQuote(line); ok {
		if p.state != stateQuote {
			p.flush()
			p.state = stateQuote
		}
		p.lines = append(p.lines, text)
		return
	}

	// Plain text continues whatever text block is open.
	if p.state == stateNone {
		p.state = stateParagraph
	}
	p.lines = append(p.lines, strings.TrimSpace(line))
}

func (p *blockParser) flush() {
	switch p.state {
	case stateParagraph:
		p.blocks = append(p.blocks, Paragraph{Text: joinLines(p.lines)})
	case stateListItem:
		item := p.item
		item.Text = joinLines(p.lines)
		p.blocks = append(p.blocks, item)
	case stateQuote:
		p.blocks = append(p.blocks, Blockquote{Text: joinLines(p.lines)})
	case stateFence:
		p.blocks = append(p.blocks, CodeBlock{Language: p.lang, Lines: p.lines})
	}
	p.state = stateNone
	p.lines = nil
	p.item = ListItem{}
	p.fence = ""
	p.lang = ""
}

func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

// indentation returns the visual width of the leading whitespace of line
// (tabs advance to the next multiple of four) and the rest of the line.
func indentation(line string) (int, string) {
	width := 0
	for i, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width, line[i:]
		}
	}
	return width, ""
}

func parseHeading(line string) (Heading, bool) {
	indent, rest := indentation(line)
	if indent > 3 {
		return Heading{}, false
	}
	level := 0
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 {
		return Heading{}, false
	}
	rest = rest[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Heading{}, false
	}
	return Heading{Level: level, Text: stripClosingHashes(strings.TrimSpace(rest))}, true
}

// stripClosingHashes removes an optional closing "###" sequence.
func stripClosingHashes(s string) string {
	t := strings.TrimRight(s, "#")
	switch {
	case t == s:
		return s
	case t == "":
		return ""
	case strings.HasSuffix(t, " "), strings.HasSuffix(t, "\t"):
		return strings.TrimSpace(t)
	}
	return s
}

func openFence(line string) (fence, lang string, ok bool) {
	indent, rest := indentation(line)
	if indent > 3 || len(rest) < 3 {
		return "", "", false
	}
	c := rest[0]
	if c != '`' && c != '~' {
		return "", "", false
	}
	n := 0
	for n < len(rest) && rest[n] == c {
		n++
	}
	if n < 3 {
		return "", "", false
	}
	info := strings.Fields(rest[n:])
	if len(info) > 0 {
		lang = info[0]
	}
	return rest[:n], lang, true
}

func closesFence(line, fence string) bool {
	indent, rest := indentation(line)
	if indent > 3 || fence == "" {
		return false
	}
	c := fence[0]
	n := 0
	for n < len(rest) && rest[n] == c {
		n++
	}
	return n >= len(fence) && strings.TrimSpace(rest[n:]) == ""
}

func isThematicBreak(line string) bool {
	indent, rest := indentation(line)
	if indent > 3 || rest == "" {
		return false
	}
	marker := rest[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case marker:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

func parseListItem(line string) (ListItem, bool) {
	indent, rest := indentation(line)
	depth := indent / 2
	if len(rest) >= 2 && strings.IndexByte("-*+", rest[0]) >= 0 && isBlank(rest[1]) {
		return ListItem{Depth: depth, Text: strings.TrimSpace(rest[2:])}, true
	}

	digits := 0
	for digits < len(rest) && digits < 9 && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 || len(rest) < digits+2 {
		return ListItem{}, false
	}
	if (rest[digits] != '.' && rest[digits] != ')') || !isBlank(rest[digits+1]) {
		return ListItem{}, false
	}
	n, err := strconv.Atoi(rest[:digits])
	if err != nil {
		return ListItem{}, false
	}
	return ListItem{
		Ordered: true,
		Number:  n,
		Depth:   depth,
		Text:    strings.TrimSpace(rest[digits+2:]),
	}, true
}

func parseQuote(line string) (string, bool) {
	indent, rest := indentation(line)
	if indent > 3 || !strings.HasPrefix(rest, ">") {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }
