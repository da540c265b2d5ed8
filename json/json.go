// Package json serializes segmented decks so other tools can consume the
// slide structure without parsing markdown themselves.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/markdeck"
)

// envelope is the v1 wire format for a deck.
type envelope struct {
	Version int        `json:"version"`
	Meta    metaDTO    `json:"meta"`
	Slides  []slideDTO `json:"slides"`
}

type metaDTO struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Date   string `json:"date,omitempty"`
}

type slideDTO struct {
	Title      string         `json:"title,omitempty"`
	TitleLevel int            `json:"title_level,omitempty"`
	Blocks     []contentBlock `json:"blocks"`
}

// contentBlock is the JSON representation of a ContentBlock with a type discriminator.
type contentBlock struct {
	Type     string   `json:"type"`
	Text     *string  `json:"text,omitempty"`
	Level    *int     `json:"level,omitempty"`
	Ordered  *bool    `json:"ordered,omitempty"`
	Number   *int     `json:"number,omitempty"`
	Depth    *int     `json:"depth,omitempty"`
	Language *string  `json:"language,omitempty"`
	Lines    []string `json:"lines,omitempty"`
}

// MarshalDeck serializes a Deck to JSON in v1 envelope format.
func MarshalDeck(d markdeck.Deck) ([]byte, error) {
	env := envelope{
		Version: 1,
		Meta:    metaDTO(d.Meta),
		Slides:  make([]slideDTO, len(d.Slides)),
	}
	for i, s := range d.Slides {
		blocks, err := marshalContentBlocks(s.Blocks)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		env.Slides[i] = slideDTO{Title: s.Title, TitleLevel: s.TitleLevel, Blocks: blocks}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalDeck deserializes a Deck from JSON in v1 envelope format.
func UnmarshalDeck(data []byte) (markdeck.Deck, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return markdeck.Deck{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return markdeck.Deck{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	slides := make([]markdeck.Slide, len(env.Slides))
	for i, dto := range env.Slides {
		blocks, err := unmarshalContentBlocks(dto.Blocks)
		if err != nil {
			return markdeck.Deck{}, fmt.Errorf("slide %d: %w", i, err)
		}
		slides[i] = markdeck.Slide{Title: dto.Title, TitleLevel: dto.TitleLevel, Blocks: blocks}
	}
	return markdeck.Deck{Slides: slides, Meta: markdeck.Metadata(env.Meta)}, nil
}

// Write writes the deck to w followed by a newline.
func Write(w io.Writer, d markdeck.Deck) error {
	data, err := MarshalDeck(d)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func marshalContentBlocks(blocks []markdeck.ContentBlock) ([]contentBlock, error) {
	result := make([]contentBlock, len(blocks))
	for i, b := range blocks {
		cb, err := marshalContentBlock(b)
		if err != nil {
			return nil, fmt.Errorf("content block %d: %w", i, err)
		}
		result[i] = cb
	}
	return result, nil
}

func marshalContentBlock(b markdeck.ContentBlock) (contentBlock, error) {
	switch v := b.(type) {
	case markdeck.Heading:
		return contentBlock{Type: "heading", Level: &v.Level, Text: &v.Text}, nil
	case markdeck.Paragraph:
		return contentBlock{Type: "paragraph", Text: &v.Text}, nil
	case markdeck.ListItem:
		cb := contentBlock{Type: "list_item", Ordered: &v.Ordered, Depth: &v.Depth, Text: &v.Text}
		if v.Ordered {
			cb.Number = &v.Number
		}
		return cb, nil
	case markdeck.CodeBlock:
		return contentBlock{Type: "code", Language: &v.Language, Lines: v.Lines}, nil
	case markdeck.Blockquote:
		return contentBlock{Type: "blockquote", Text: &v.Text}, nil
	case markdeck.ThematicBreak:
		return contentBlock{Type: "thematic_break"}, nil
	default:
		return contentBlock{}, fmt.Errorf("unknown content block type: %T", b)
	}
}

func unmarshalContentBlocks(dtos []contentBlock) ([]markdeck.ContentBlock, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	result := make([]markdeck.ContentBlock, len(dtos))
	for i, dto := range dtos {
		b, err := unmarshalContentBlock(dto)
		if err != nil {
			return nil, fmt.Errorf("content block %d: %w", i, err)
		}
		result[i] = b
	}
	return result, nil
}

func unmarshalContentBlock(dto contentBlock) (markdeck.ContentBlock, error) {
	text := deref(dto.Text)
	switch dto.Type {
	case "heading":
		return markdeck.Heading{Level: deref(dto.Level), Text: text}, nil
	case "paragraph":
		return markdeck.Paragraph{Text: text}, nil
	case "list_item":
		return markdeck.ListItem{
			Ordered: deref(dto.Ordered),
			Number:  deref(dto.Number),
			Depth:   deref(dto.Depth),
			Text:    text,
		}, nil
	case "code":
		return markdeck.CodeBlock{Language: deref(dto.Language), Lines: dto.Lines}, nil
	case "blockquote":
		return markdeck.Blockquote{Text: text}, nil
	case "thematic_break":
		return markdeck.ThematicBreak{}, nil
	default:
		return nil, fmt.Errorf("unknown content block type: %q", dto.Type)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
