package markdeck

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so slides
// automatically match any color scheme. A negative index disables the color.
type Theme struct {
	Heading    int // Slide titles
	Subheading int // Headings inside a slide
	Accent     int // Links, list markers
	Muted      int // Status bar, code gutter, URLs
	Code       int // Code block text
	Quote      int // Blockquotes
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Heading:    5,
		Subheading: 4,
		Accent:     6,
		Muted:      8,
		Code:       2,
		Quote:      3,
	}
}
