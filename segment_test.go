package markdeck_test

import (
	"testing"

	"github.com/fwojciec/markdeck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	t.Run("two headings produce two titled slides", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("# A\n\nhello\n\n## B\n\nworld\n")
		require.Equal(t, 2, deck.Count())
		assert.Equal(t, markdeck.Slide{
			Title:      "A",
			TitleLevel: 1,
			Blocks:     []markdeck.ContentBlock{markdeck.Paragraph{Text: "hello"}},
		}, deck.Slides[0])
		assert.Equal(t, markdeck.Slide{
			Title:      "B",
			TitleLevel: 2,
			Blocks:     []markdeck.ContentBlock{markdeck.Paragraph{Text: "world"}},
		}, deck.Slides[1])
	})

	t.Run("document without headings is one untitled slide", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("just text")
		require.Equal(t, 1, deck.Count())
		assert.False(t, deck.Slides[0].HasTitle())
		assert.Equal(t, []markdeck.ContentBlock{markdeck.Paragraph{Text: "just text"}}, deck.Slides[0].Blocks)
	})

	t.Run("empty document yields one empty slide", func(t *testing.T) {
		t.Parallel()
		for _, src := range []string{"", "\n\n", "   \n\t\n"} {
			deck := markdeck.Segment(src)
			require.Equal(t, 1, deck.Count(), "source %q", src)
			assert.True(t, deck.Slides[0].Empty())
		}
	})

	t.Run("content before first heading forms a leading slide", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("Intro content\n\n# Slide 1\nContent")
		require.Equal(t, 2, deck.Count())
		assert.False(t, deck.Slides[0].HasTitle())
		assert.Equal(t, "Slide 1", deck.Slides[1].Title)
	})

	t.Run("blank lines before first heading do not form a slide", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("\n\n\n# Only\n")
		require.Equal(t, 1, deck.Count())
		assert.Equal(t, "Only", deck.Slides[0].Title)
	})

	t.Run("h3 does not split", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("# Slide 1\n### Subsection\nMore content")
		require.Equal(t, 1, deck.Count())
		assert.Equal(t, []markdeck.ContentBlock{
			markdeck.Heading{Level: 3, Text: "Subsection"},
			markdeck.Paragraph{Text: "More content"},
		}, deck.Slides[0].Blocks)
	})

	t.Run("mixed h1 and h2 split slides", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("# Slide 1\nContent\n\n## Slide 2\nMore content\n\n# Slide 3\nFinal")
		assert.Equal(t, 3, deck.Count())
	})

	t.Run("consecutive headings give a title-only slide", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("# Title\n## Next\nbody")
		require.Equal(t, 2, deck.Count())
		assert.Equal(t, "Title", deck.Slides[0].Title)
		assert.Empty(t, deck.Slides[0].Blocks)
		assert.Equal(t, "Next", deck.Slides[1].Title)
	})

	t.Run("headings inside code fences are literal", func(t *testing.T) {
		t.Parallel()
		deck := markdeck.Segment("# Code\n\n```sh\n# not a heading\n## nor this\n```\n")
		require.Equal(t, 1, deck.Count())
		assert.Equal(t, []markdeck.ContentBlock{
			markdeck.CodeBlock{Language: "sh", Lines: []string{"# not a heading", "## nor this"}},
		}, deck.Slides[0].Blocks)
	})

	t.Run("no slide body contains a boundary heading", func(t *testing.T) {
		t.Parallel()
		src := "pre\n# a\n## b\ntext\n### c\n#### d\n# e\n- x\n## f\n> q\n"
		for _, s := range markdeck.Segment(src).Slides {
			for _, b := range s.Blocks {
				assert.False(t, markdeck.IsBoundary(b), "slide %q holds %#v", s.Title, b)
			}
		}
	})

	t.Run("slide count follows boundary headings", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			src  string
			want int
		}{
			{"# a\n## b\n# c", 3},
			{"lead\n# a\n## b", 3},
			{"### only deep\ntext", 1},
			{"#hashtag is text\n# real", 2},
			{"```\n# fenced\n```\n# real", 2},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, markdeck.Segment(tt.src).Count(), "source %q", tt.src)
		}
	})
}

func TestSegment_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []markdeck.ContentBlock
	}{
		{
			name: "paragraph lines join",
			src:  "one\ntwo\n\nthree",
			want: []markdeck.ContentBlock{
				markdeck.Paragraph{Text: "one two"},
				markdeck.Paragraph{Text: "three"},
			},
		},
		{
			name: "unordered list items",
			src:  "- a\n* b\n+ c",
			want: []markdeck.ContentBlock{
				markdeck.ListItem{Text: "a"},
				markdeck.ListItem{Text: "b"},
				markdeck.ListItem{Text: "c"},
			},
		},
		{
			name: "ordered list keeps numbers",
			src:  "1. first\n2) second",
			want: []markdeck.ContentBlock{
				markdeck.ListItem{Ordered: true, Number: 1, Text: "first"},
				markdeck.ListItem{Ordered: true, Number: 2, Text: "second"},
			},
		},
		{
			name: "nested list depth",
			src:  "- top\n  - nested\n\t- tabbed",
			want: []markdeck.ContentBlock{
				markdeck.ListItem{Text: "top"},
				markdeck.ListItem{Depth: 1, Text: "nested"},
				markdeck.ListItem{Depth: 2, Text: "tabbed"},
			},
		},
		{
			name: "list item continuation",
			src:  "- long item\ncontinues here",
			want: []markdeck.ContentBlock{
				markdeck.ListItem{Text: "long item continues here"},
			},
		},
		{
			name: "blockquote lines merge",
			src:  "> quoted\n> still\n>\n> more",
			want: []markdeck.ContentBlock{
				markdeck.Blockquote{Text: "quoted still more"},
			},
		},
		{
			name: "thematic breaks",
			src:  "---\n* * *\n___",
			want: []markdeck.ContentBlock{
				markdeck.ThematicBreak{},
				markdeck.ThematicBreak{},
				markdeck.ThematicBreak{},
			},
		},
		{
			name: "tilde fence with longer closer",
			src:  "~~~go\nfmt.Println()\n~~~~",
			want: []markdeck.ContentBlock{
				markdeck.CodeBlock{Language: "go", Lines: []string{"fmt.Println()"}},
			},
		},
		{
			name: "unterminated fence runs to end",
			src:  "```\na\n\nb",
			want: []markdeck.ContentBlock{
				markdeck.CodeBlock{Lines: []string{"a", "", "b"}},
			},
		},
		{
			name: "code keeps indentation",
			src:  "```\n  indented\n\ttab\n```",
			want: []markdeck.ContentBlock{
				markdeck.CodeBlock{Lines: []string{"  indented", "\ttab"}},
			},
		},
		{
			name: "closing hashes are stripped",
			src:  "### Deep ###",
			want: []markdeck.ContentBlock{
				markdeck.Heading{Level: 3, Text: "Deep"},
			},
		},
		{
			name: "heading interrupts paragraph",
			src:  "text\n### sub",
			want: []markdeck.ContentBlock{
				markdeck.Paragraph{Text: "text"},
				markdeck.Heading{Level: 3, Text: "sub"},
			},
		},
		{
			name: "crlf line endings",
			src:  "line one\r\nline two\r\n",
			want: []markdeck.ContentBlock{
				markdeck.Paragraph{Text: "line one line two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deck := markdeck.Segment(tt.src)
			require.Equal(t, 1, deck.Count())
			assert.Equal(t, tt.want, deck.Slides[0].Blocks)
		})
	}
}

func TestSegment_Idempotent(t *testing.T) {
	t.Parallel()

	src := "intro\n\n# One\n\ntext\n\n## Two\n\n- a\n- b\n\n# Three\n"
	first := markdeck.Segment(src)
	second := markdeck.Segment(src)
	assert.Equal(t, first, second)
}
