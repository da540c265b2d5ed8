package markdeck

// Slide is everything between one boundary heading (inclusive) and the next.
// The boundary heading is lifted into Title and not repeated in Blocks.
type Slide struct {
	Title      string
	TitleLevel int // 0 when the slide has no heading.
	Blocks     []ContentBlock
}

// HasTitle reports whether the slide was opened by a heading.
func (s Slide) HasTitle() bool { return s.TitleLevel > 0 }

// Empty reports whether the slide has neither a title nor body blocks.
func (s Slide) Empty() bool { return !s.HasTitle() && len(s.Blocks) == 0 }

// Metadata holds document-level fields taken from YAML front matter.
type Metadata struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"`
}

// Deck is the ordered list of slides for one document. A Deck produced by
// Segment always holds at least one slide.
type Deck struct {
	Slides []Slide
	Meta   Metadata
}

// Count returns the number of slides.
func (d Deck) Count() int { return len(d.Slides) }
