// Package toml loads markdeck configuration from TOML files.
//
// A configuration file looks like:
//
//	[keys]
//	next_slide = ["l", "right", "space"]
//	previous_slide = "h"
//	quit = ["q", "C-c"]
//
//	[theme]
//	heading = 5
//	muted = 8
//
// Actions left out keep their default keys. Unknown tables, keys and action
// names are ignored.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/markdeck"
	"go.uber.org/zap"
)

// DefaultPath returns ~/.config/markdeck/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "markdeck", "config.toml")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

type fileConfig struct {
	Keys map[string]keyList `toml:"keys"`
	// Keymaps is the table name used by earlier releases.
	Keymaps map[string]keyList `toml:"keymaps"`
	Theme   themeConfig        `toml:"theme"`
}

type themeConfig struct {
	Heading    *int `toml:"heading"`
	Subheading *int `toml:"subheading"`
	Accent     *int `toml:"accent"`
	Muted      *int `toml:"muted"`
	Code       *int `toml:"code"`
	Quote      *int `toml:"quote"`
}

// keyList accepts either a single key or an array of keys.
type keyList []string

func (k *keyList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*k = keyList{v}
	case []any:
		keys := make(keyList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("key must be a string, got %T", item)
			}
			keys = append(keys, s)
		}
		*k = keys
	default:
		return fmt.Errorf("keys must be a string or an array of strings, got %T", v)
	}
	return nil
}

// Load reads the configuration at path. A missing file yields the default
// configuration. A file that cannot be read or parsed yields an error
// wrapping markdeck.ErrInvalidConfig.
func Load(path string, logger *zap.Logger) (markdeck.Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("config not found, using defaults", zap.String("path", path))
		return markdeck.DefaultConfig(), nil
	case err != nil:
		return markdeck.Config{}, fmt.Errorf("%w: %v", markdeck.ErrInvalidConfig, err)
	}

	cfg, err := Decode(string(data), logger)
	if err != nil {
		return markdeck.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("config loaded", zap.String("path", path))
	return cfg, nil
}

// Decode parses configuration from TOML text.
func Decode(data string, logger *zap.Logger) (markdeck.Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var fc fileConfig
	md, err := toml.Decode(data, &fc)
	if err != nil {
		return markdeck.Config{}, fmt.Errorf("%w: %v", markdeck.ErrInvalidConfig, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("ignoring unknown config key", zap.String("key", key.String()))
	}
	theme, err := fc.Theme.apply(markdeck.DefaultTheme())
	if err != nil {
		return markdeck.Config{}, fmt.Errorf("%w: %v", markdeck.ErrInvalidConfig, err)
	}
	return markdeck.Config{
		Keys:  markdeck.NewKeyMap(fc.bindings(logger)),
		Theme: theme,
	}, nil
}

// bindings merges both key tables; [keys] wins over the legacy [keymaps].
func (fc fileConfig) bindings(logger *zap.Logger) map[markdeck.Action][]string {
	out := make(map[markdeck.Action][]string)
	for _, table := range []map[string]keyList{fc.Keymaps, fc.Keys} {
		for name, keys := range table {
			action, ok := markdeck.ParseAction(name)
			if !ok {
				logger.Warn("ignoring unknown action", zap.String("action", name))
				continue
			}
			out[action] = keys
		}
	}
	return out
}

func (tc themeConfig) apply(theme markdeck.Theme) (markdeck.Theme, error) {
	fields := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"heading", tc.Heading, &theme.Heading},
		{"subheading", tc.Subheading, &theme.Subheading},
		{"accent", tc.Accent, &theme.Accent},
		{"muted", tc.Muted, &theme.Muted},
		{"code", tc.Code, &theme.Code},
		{"quote", tc.Quote, &theme.Quote},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if *f.src < -1 || *f.src > 255 {
			return markdeck.Theme{}, fmt.Errorf("theme.%s: color %d out of range [-1, 255]", f.name, *f.src)
		}
		*f.dst = *f.src
	}
	return theme, nil
}
