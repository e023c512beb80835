package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ryanlewis/tinyfmt"
	"github.com/ryanlewis/tinyfmt/internal/debug"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has resolved configuration.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath  string
	verbose     bool
	debugMode   bool
	debugFile   string
	debugPretty bool
	crlf        bool

	cfg       Config
	logger    *charmlog.Logger
	session   *tinyfmt.DebugSession
	debugOut  *os.File
	cache     *tinyfmt.FormatCache
	formatter *tinyfmt.Formatter
	mu        sync.Mutex
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func newRootCmd(a *app) *cobra.Command {
	stdin, stdout, stderr := a.stdin, a.stdout, a.stderr

	root := &cobra.Command{
		Use:   "tinyfmt",
		Short: "tinyfmt renders minimal printf-style formats",
		Long: `tinyfmt renders format strings with the directives %s, %d, %x and %c,
an optional '0' pad flag and a decimal width, to a character console or
into a fixed-size NUL-terminated buffer.`,
		Version:            version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("tinyfmt %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&a.debugMode, "debug", false, "enable debug tracing (outputs to stderr)")
	flags.StringVar(&a.debugFile, "debug-file", "", "write debug trace to file instead of stderr")
	flags.BoolVar(&a.debugPretty, "debug-pretty", false, "use pretty format for debug trace (default: JSON)")
	flags.BoolVar(&a.crlf, "crlf", false, "translate newlines to CRLF on output")

	root.AddCommand(newPrintfCmd(a))
	root.AddCommand(newSnprintfCmd(a))
	root.AddCommand(newConsoleCmd(a))

	return root
}

// setup loads configuration, applies flag overrides and builds the logger,
// trace session and formatter.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := charmlog.InfoLevel
	if a.verbose {
		level = charmlog.DebugLevel
	}
	a.logger = newLogger(a.stderr, level)
	cmd.SetContext(withLogger(cmd.Context(), a.logger))

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.applyFlags(cmd.Flags()); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "config", a.configPath, "crlf", cfg.Console.CRLF, "cache", cfg.Cache.Size)

	if err := a.setupDebug(); err != nil {
		return err
	}

	a.cache = tinyfmt.NewFormatCache(cfg.Cache.Size)
	a.formatter = tinyfmt.New(
		tinyfmt.WithCache(a.cache),
		tinyfmt.WithDebug(a.session),
		tinyfmt.WithLock(&a.mu),
	)
	return nil
}

func (a *app) setupDebug() error {
	debug.InitFromEnv()
	if a.cfg.Debug.Enabled || a.cfg.Debug.File != "" {
		debug.SetEnabled(true)
	}
	if !debug.Enabled() {
		return nil
	}

	output := a.stderr
	if a.cfg.Debug.File != "" {
		file, err := os.Create(a.cfg.Debug.File)
		if err != nil {
			return fmt.Errorf("failed to create debug file: %w", err)
		}
		a.debugOut = file
		output = file
	}

	a.session = tinyfmt.NewDebugSession(output, a.cfg.Debug.Pretty || debug.PrettyFromEnv())
	if a.session != nil {
		a.logger.Debug("debug session started", "id", a.session.SessionID())
	}
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	var firstErr error
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close debug session: %w", err)
		}
		a.session = nil
	}
	if a.debugOut != nil {
		if err := a.debugOut.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close debug file: %w", err)
		}
		a.debugOut = nil
	}
	if a.cache != nil {
		stats := a.cache.Stats()
		a.logger.Debug("format cache", "size", stats.Size, "hits", stats.Hits, "misses", stats.Misses)
	}
	return firstErr
}

// traceError records a device failure in the debug trace, when one is active.
func (a *app) traceError(command string, err error) {
	a.session.Error("device", err, map[string]interface{}{"command": command})
}

// console returns an output-only console over stdout honoring the CRLF setting.
func (a *app) console(w io.Writer) *tinyfmt.IOConsole {
	return tinyfmt.NewConsole(nil, w, tinyfmt.WithCRLF(a.cfg.Console.CRLF))
}
