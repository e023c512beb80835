package renderer

import (
	"time"

	"github.com/ryanlewis/tinyfmt/internal/common"
	"github.com/ryanlewis/tinyfmt/internal/debug"
	"github.com/ryanlewis/tinyfmt/internal/parser"
	"github.com/ryanlewis/tinyfmt/internal/sink"
)

// tokenSource yields format tokens in order.
type tokenSource interface {
	Next() (parser.Token, bool)
}

// tokenList replays pre-parsed tokens.
type tokenList struct {
	tokens []parser.Token
	i      int
}

func (l *tokenList) Next() (parser.Token, bool) {
	if l.i >= len(l.tokens) {
		return parser.Token{}, false
	}
	tok := l.tokens[l.i]
	l.i++
	return tok, true
}

// Render walks format and writes the result to out.
//
// The whole format is always consumed, even when out is a full bounded
// sink, so argument positions stay aligned with their directives.
func Render(out sink.Sink, format string, args []common.Arg, opts *Options) {
	src := parser.NewScanner(format)
	run(out, &src, format, false, args, opts)
}

// RenderTokens is Render over tokens produced by parser.Parse. The output is
// byte-identical to Render on the same format.
func RenderTokens(out sink.Sink, tokens []parser.Token, format string, args []common.Arg, opts *Options) {
	run(out, &tokenList{tokens: tokens}, format, true, args, opts)
}

func run(out sink.Sink, src tokenSource, format string, compiled bool, args []common.Arg, opts *Options) {
	st := formatState{out: out, args: args}
	if b, ok := out.(*sink.Bounded); ok {
		st.bounded = b
	}
	if opts != nil {
		st.debug = opts.Debug
	}

	var startTime time.Time
	if st.debug != nil {
		startTime = time.Now()
		st.call = st.debug.NextCall()
		start := debug.FormatStartData{
			Call:     st.call,
			Format:   format,
			Mode:     modeOf(out),
			ArgCount: len(args),
			Compiled: compiled,
		}
		if st.bounded != nil {
			start.Capacity = st.bounded.Cap()
		}
		st.debug.Emit("format", "Start", start)
	}

	for {
		tok, ok := src.Next()
		if !ok {
			break
		}
		st.offset = tok.Offset
		if !tok.IsDirective {
			st.putString(tok.Literal)
			continue
		}
		st.dispatch(tok.Directive)
	}

	if st.debug != nil {
		end := debug.FormatEndData{
			Call:         st.call,
			BytesWritten: written(out),
			Directives:   st.directives,
			ArgsUsed:     st.next,
			ElapsedUs:    time.Since(startTime).Microseconds(),
		}
		if st.bounded != nil {
			end.Dropped = st.bounded.Dropped()
		}
		st.debug.Emit("format", "End", end)
	}
}

// formatState carries one call's cursor over the argument list. It is itself
// a sink so truncation can be observed at the byte where it happens.
type formatState struct {
	out     sink.Sink
	bounded *sink.Bounded
	args    []common.Arg
	next    int

	debug      *debug.Session
	call       int
	offset     int
	directives int
	truncated  bool
}

func (st *formatState) Put(c byte) {
	st.out.Put(c)
	st.checkTruncate()
}

func (st *formatState) Fill(c byte, n int) {
	if f, ok := st.out.(filler); ok {
		f.Fill(c, n)
	} else {
		for i := 0; i < n; i++ {
			st.out.Put(c)
		}
	}
	st.checkTruncate()
}

func (st *formatState) checkTruncate() {
	if st.debug == nil || st.bounded == nil || st.truncated || st.bounded.Dropped() == 0 {
		return
	}
	st.truncated = true
	st.debug.Emit("format", "Truncate", debug.TruncateData{
		Call:     st.call,
		Offset:   st.offset,
		Position: st.bounded.Len(),
		Capacity: st.bounded.Cap(),
	})
}

// putString copies s up to its first NUL byte.
func (st *formatState) putString(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return
		}
		st.Put(s[i])
	}
}

// take consumes the next argument.
func (st *formatState) take() (common.Arg, bool) {
	if st.next >= len(st.args) {
		return common.Arg{}, false
	}
	a := st.args[st.next]
	st.next++
	return a, true
}

func (st *formatState) dispatch(d parser.Directive) {
	st.directives++

	if st.debug != nil {
		argIndex := -1
		if d.ConsumesArg() && st.next < len(st.args) {
			argIndex = st.next
		}
		st.debug.Emit("format", "Directive", debug.DirectiveData{
			Call:     st.call,
			Offset:   d.Offset,
			Text:     d.String(),
			Kind:     d.Kind.String(),
			Verb:     d.Verb,
			Pad:      d.Pad,
			Width:    d.Width,
			ArgIndex: argIndex,
		})
	}

	if d.Kind == common.KindUnrecognized {
		st.Put('%')
		if d.Verb != 0 {
			st.Put(d.Verb)
		}
		return
	}

	arg, ok := st.take()
	if !ok {
		st.mismatch(d, -1, "MISSING")
		return
	}

	switch d.Kind {
	case common.KindString:
		if arg.Kind != common.ArgString {
			st.mismatch(d, st.next-1, arg.Kind.String())
			return
		}
		st.putString(arg.Str)
	case common.KindDecimal:
		if !arg.Numeric() {
			st.mismatch(d, st.next-1, arg.Kind.String())
			return
		}
		Decimal(st, arg.Int32(), d.Width, d.Pad)
	case common.KindHex:
		if !arg.Numeric() {
			st.mismatch(d, st.next-1, arg.Kind.String())
			return
		}
		Hex(st, arg.Num, d.Width, d.Pad)
	case common.KindChar:
		if !arg.Numeric() {
			st.mismatch(d, st.next-1, arg.Kind.String())
			return
		}
		st.Put(byte(arg.Num))
	}
}

// mismatch renders %!<verb>(<what>) in place of a directive whose argument
// is missing or of the wrong shape.
func (st *formatState) mismatch(d parser.Directive, argIndex int, what string) {
	if st.debug != nil {
		st.debug.Emit("format", "ArgMismatch", debug.ArgMismatchData{
			Call:     st.call,
			Offset:   d.Offset,
			Verb:     d.Verb,
			ArgIndex: argIndex,
			ArgKind:  what,
		})
	}
	st.Put('%')
	st.Put('!')
	st.Put(d.Verb)
	st.Put('(')
	st.putString(what)
	st.Put(')')
}

func modeOf(out sink.Sink) string {
	switch out.(type) {
	case *sink.Bounded:
		return debug.ModeBuffer
	case *sink.Builder:
		return debug.ModeString
	}
	return debug.ModeStream
}

func written(out sink.Sink) int {
	switch s := out.(type) {
	case *sink.Bounded:
		return s.Len()
	case *sink.Builder:
		return len(s.Buf)
	case *sink.Stream:
		return s.Count()
	}
	return -1
}
