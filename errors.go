package markdeck

import "errors"

// Sentinel errors for startup failures. The segmenter, engine and renderer
// have no failure modes of their own.
var (
	// ErrInvalidConfig indicates a configuration file could not be read or
	// parsed.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoInput indicates no markdown file was given.
	ErrNoInput = errors.New("no input file")

	// ErrFrontMatter indicates the document's YAML front matter is malformed.
	ErrFrontMatter = errors.New("malformed front matter")
)
