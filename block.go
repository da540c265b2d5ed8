package markdeck

// ContentBlock is a sealed interface representing one block-level element
// of a slide. The unexported marker method prevents external implementations.
type ContentBlock interface {
	contentBlock()
}

// Heading is a markdown heading. Levels 1 and 2 open slides and only ever
// appear as a Slide title; level 3 and deeper stay in the slide body.
type Heading struct {
	Level int
	Text  string
}

func (Heading) contentBlock() {}

// Paragraph is a run of consecutive text lines joined with single spaces.
// Text keeps its inline markdown (emphasis, code spans, links).
type Paragraph struct {
	Text string
}

func (Paragraph) contentBlock() {}

// ListItem is a single bullet or numbered item.
type ListItem struct {
	Ordered bool
	Number  int // Only meaningful when Ordered.
	Depth   int // Nesting level, 0 for top-level items.
	Text    string
}

func (ListItem) contentBlock() {}

// CodeBlock is a fenced code block. Lines are kept verbatim.
type CodeBlock struct {
	Language string
	Lines    []string
}

func (CodeBlock) contentBlock() {}

// Blockquote is a run of consecutive "> " lines.
type Blockquote struct {
	Text string
}

func (Blockquote) contentBlock() {}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

func (ThematicBreak) contentBlock() {}

// Interface compliance checks.
var (
	_ ContentBlock = Heading{}
	_ ContentBlock = Paragraph{}
	_ ContentBlock = ListItem{}
	_ ContentBlock = CodeBlock{}
	_ ContentBlock = Blockquote{}
	_ ContentBlock = ThematicBreak{}
)

// IsBoundary reports whether b starts a new slide.
func IsBoundary(b ContentBlock) bool {
	h, ok := b.(Heading)
	return ok && (h.Level == 1 || h.Level == 2)
}
