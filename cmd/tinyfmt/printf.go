package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

func newPrintfCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printf FORMAT [ARG...]",
		Short: "Render a format to stdout",
		Long: `Render FORMAT to stdout one character at a time.

Each ARG is converted to the kind its directive expects: text for %s,
a signed number for %d, an unsigned number for %x and a single character
or character code for %c. Numbers may carry a 0x, 0o or 0b prefix.`,
		Example: `  tinyfmt printf '%d : %3d (%x)\n' 3 7 7
  tinyfmt printf '[%s]%c\n' HELLO U+21`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrintf(cmd, args[0], args[1:])
		},
	}
	// Leading dashes in format arguments such as "-5" must not be read as flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) runPrintf(cmd *cobra.Command, format string, texts []string) error {
	logger := loggerFromContext(cmd.Context())

	format = unescape(format)
	compiled := a.cache.Compile(format)
	args, err := compiled.ParseArgs(texts)
	if err != nil {
		return err
	}
	logger.Debug("printf", "format", format, "directives", compiled.Directives(), "args", len(args))

	bw := bufio.NewWriter(cmd.OutOrStdout())
	con := a.console(bw)
	a.formatter.Render(con, compiled, args...)
	err = con.Err()
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		a.traceError("printf", err)
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
