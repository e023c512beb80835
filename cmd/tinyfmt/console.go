package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ryanlewis/tinyfmt"
)

func newConsoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run an interactive format console",
		Long: `Read lines from stdin and render each one as FORMAT [ARG...] to stdout.

When stdin is a terminal it is switched to raw mode, characters are echoed
by the console itself and newlines are written as CRLF, as they would be on
a serial line. Quote arguments that contain spaces with double quotes.

Commands:
  help         show this help
  stats        show format cache statistics
  exit, quit   leave the console`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConsole(cmd)
		},
	}
}

func (a *app) runConsole(cmd *cobra.Command) error {
	logger := loggerFromContext(cmd.Context())
	ctx := cmd.Context()

	raw := false
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer func() {
			if err := term.Restore(fd, state); err != nil {
				logger.Warn("failed to restore terminal", "err", err)
			}
		}()
		raw = true
	}
	logger.Debug("console started", "raw", raw, "line_max", a.cfg.Console.LineMax)

	con := tinyfmt.NewConsole(a.stdin, cmd.OutOrStdout(), tinyfmt.WithCRLF(a.cfg.Console.CRLF || raw))
	var echo tinyfmt.CharWriter
	if raw {
		echo = con
	}

	buf := make([]byte, a.cfg.Console.LineMax)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.formatter.Printf(con, "%s", tinyfmt.Str(a.cfg.Console.Prompt))

		n, more := tinyfmt.ReadLine(con, echo, buf)
		if n > 0 {
			if done := a.handleLine(con, string(buf[:n])); done {
				return nil
			}
		}
		if !more {
			a.formatter.Printf(con, "\n")
			break
		}
	}

	err := con.WriteErr()
	if err == nil {
		if rerr := con.ReadErr(); rerr != nil && !errors.Is(rerr, io.EOF) {
			err = rerr
		}
	}
	if err != nil {
		a.traceError("console", err)
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// handleLine runs one console line and reports whether the console should exit.
func (a *app) handleLine(con tinyfmt.CharWriter, line string) bool {
	fields, err := splitFields(line)
	if err != nil {
		a.formatter.Printf(con, "error: %s\n", tinyfmt.Str(err.Error()))
		return false
	}
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "exit", "quit":
		return true
	case "help":
		a.formatter.Printf(con, "%s\n", tinyfmt.Str("FORMAT [ARG...] | stats | exit"))
		return false
	case "stats":
		stats := a.cache.Stats()
		a.formatter.Printf(con, "cache: size=%d hits=%d misses=%d evictions=%d\n",
			tinyfmt.Int(int32(stats.Size)), tinyfmt.Uint(uint32(stats.Hits)),
			tinyfmt.Uint(uint32(stats.Misses)), tinyfmt.Uint(uint32(stats.Evictions)))
		return false
	}

	format := unescape(fields[0])
	compiled := a.cache.Compile(format)
	args, err := compiled.ParseArgs(fields[1:])
	if err != nil {
		a.formatter.Printf(con, "error: %s\n", tinyfmt.Str(err.Error()))
		return false
	}
	a.formatter.Render(con, compiled, args...)
	if !strings.HasSuffix(format, "\n") {
		a.formatter.Printf(con, "\n")
	}
	return false
}
