package markdeck

// Config is the user configuration for a viewing session.
type Config struct {
	Keys  KeyMap
	Theme Theme
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Keys:  DefaultKeyMap(),
		Theme: DefaultTheme(),
	}
}
