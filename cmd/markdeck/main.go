// Command markdeck presents a markdown file as slides in the terminal.
//
// Usage:
//
//	markdeck [flags] <FILE>
//
// Flags:
//
//	-c, --config string   Path to config file (default ~/.config/markdeck/config.toml)
//	-p, --print           Render every slide to stdout instead of presenting
//	-w, --width int       Output width for --print (0 uses terminal width)
//	    --json            Write the segmented deck as JSON to stdout
//	    --log string      Write debug logs to this file
//	-h, --help            Show help
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/markdeck"
	bt "github.com/fwojciec/markdeck/bubbletea"
	"github.com/fwojciec/markdeck/goldmark"
	mdjson "github.com/fwojciec/markdeck/json"
	mdtoml "github.com/fwojciec/markdeck/toml"
	mdyaml "github.com/fwojciec/markdeck/yaml"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// usageError marks errors caused by bad command line arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "markdeck: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

type options struct {
	configPath string
	print      bool
	width      int
	json       bool
	logPath    string
	file       string
}

// parseFlags returns pflag.ErrHelp when help was requested.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	flags := pflag.NewFlagSet("markdeck", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.configPath, "config", "c", mdtoml.DefaultPath(), "Path to config file")
	flags.BoolVarP(&opts.print, "print", "p", false, "Render every slide to stdout instead of presenting")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width for --print (0 uses terminal width)")
	flags.BoolVar(&opts.json, "json", false, "Write the segmented deck as JSON to stdout")
	flags.StringVar(&opts.logPath, "log", "", "Write debug logs to this file")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: markdeck [flags] <FILE>")
		fmt.Fprintln(stderr, "\nPresent a markdown file as slides. H1 and H2 headings start new slides.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, err
		}
		return opts, usageError{err: err}
	}
	switch flags.NArg() {
	case 1:
		opts.file = flags.Arg(0)
	case 0:
		flags.Usage()
		return opts, usageError{err: markdeck.ErrNoInput}
	default:
		flags.Usage()
		return opts, usageError{err: fmt.Errorf("expected one file, got %d", flags.NArg())}
	}
	if opts.width < 0 {
		return opts, usageError{err: fmt.Errorf("invalid width %d", opts.width)}
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(opts.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := mdtoml.Load(opts.configPath, logger)
	if err != nil {
		return err
	}

	deck, err := loadDeck(opts.file, logger)
	if err != nil {
		return err
	}

	if opts.json {
		return mdjson.Write(stdout, deck)
	}

	if opts.print || !isTerminal(stdout) {
		width := opts.width
		if width == 0 {
			width = terminalWidth(stdout, goldmark.DefaultWidth)
		}
		return printDeck(stdout, deck, width, cfg.Theme)
	}

	// Handle OS signals so the terminal is restored on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := markdeck.NewEngine(deck, cfg.Keys)
	logger.Info("presenting",
		zap.String("file", opts.file),
		zap.Int("slides", engine.Count()),
	)
	if _, err := bt.Run(ctx, bt.New(engine, cfg.Theme, bt.WithLogger(logger))); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	logger.Info("session ended", zap.Int("index", engine.Index()))
	return nil
}

// loadDeck reads and segments the presentation. Malformed front matter is
// logged and the whole file is presented as markdown.
func loadDeck(path string, logger *zap.Logger) (markdeck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return markdeck.Deck{}, fmt.Errorf("reading %s: %w", path, err)
	}
	deck, err := mdyaml.Parse(string(data))
	if err != nil {
		logger.Warn("ignoring front matter", zap.String("file", path), zap.Error(err))
	}
	logger.Debug("deck loaded", zap.String("file", path), zap.Int("slides", deck.Count()))
	return deck, nil
}

// newLogger returns a JSON logger writing to path, or a no-op logger when
// path is empty. The terminal belongs to the TUI so logs never go there.
func newLogger(path string) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return width
	}
	return fallback
}
