// Package yaml splits YAML front matter from the head of a markdown document.
package yaml

import (
	"fmt"
	"strings"

	"github.com/fwojciec/markdeck"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// knownKeys are the front matter fields markdeck reads.
var knownKeys = map[string]bool{"title": true, "author": true, "date": true}

// Split separates leading front matter from source. Front matter is a block
// that starts with a "---" line on the first line of the document and ends
// with a "---" or "..." line, and whose YAML is a mapping naming at least
// one of title, author or date. When there is no such block, Split returns
// zero Metadata and source unchanged.
//
// Malformed YAML yields an error wrapping markdeck.ErrFrontMatter together
// with the unchanged source, so callers may fall back to presenting the
// whole document.
func Split(source string) (markdeck.Metadata, string, error) {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	first, rest, ok := strings.Cut(normalized, "\n")
	if !ok || strings.TrimRight(first, " \t") != delimiter {
		return markdeck.Metadata{}, source, nil
	}

	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed != delimiter && trimmed != "..." {
			continue
		}
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(strings.Join(lines[:i], "\n")), &doc); err != nil {
			return markdeck.Metadata{}, source, fmt.Errorf("%w: %v", markdeck.ErrFrontMatter, err)
		}
		// Only a mapping with a known key counts as front matter. Anything
		// else is two thematic breaks around ordinary content.
		if len(doc.Content) == 0 || !isFrontMatter(doc.Content[0]) {
			return markdeck.Metadata{}, source, nil
		}
		var meta markdeck.Metadata
		if err := doc.Content[0].Decode(&meta); err != nil {
			return markdeck.Metadata{}, source, fmt.Errorf("%w: %v", markdeck.ErrFrontMatter, err)
		}
		return meta, strings.Join(lines[i+1:], "\n"), nil
	}
	return markdeck.Metadata{}, source, nil
}

// isFrontMatter reports whether n is a mapping with at least one known key.
func isFrontMatter(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(n.Content); i += 2 {
		if knownKeys[n.Content[i].Value] {
			return true
		}
	}
	return false
}

// Parse splits front matter from source and segments the remaining body.
// The front matter error, if any, is returned alongside a deck built from
// the whole document.
func Parse(source string) (markdeck.Deck, error) {
	meta, body, err := Split(source)
	deck := markdeck.Segment(body)
	deck.Meta = meta
	return deck, err
}
