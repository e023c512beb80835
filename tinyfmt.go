// Package tinyfmt is a minimal printf-style formatter for character devices.
//
// A format string of literal text and %-directives is rendered with an
// ordered list of tagged arguments, either straight to a character device
// (Printf) or into a fixed caller buffer that is always NUL-terminated
// (Snprintf). Both paths share one parser and one numeric renderer, so they
// produce the same bytes up to the buffer's capacity.
//
// Directive syntax is
//
//	% ['0'] {digit} conv
//
// with conv one of:
//
//	s  text, copied verbatim (width and pad ignored)
//	d  signed 32-bit decimal
//	x  unsigned 32-bit hex, always 0x-prefixed, uppercase digits
//	c  single character (width and pad ignored)
//
// Any other conversion character renders as '%' followed by that character
// and consumes no argument. In particular "%%" renders as two percent signs.
//
// Example:
//
//	con := tinyfmt.NewConsole(os.Stdin, os.Stdout)
//	tinyfmt.Printf(con, "%d : %3d (%x)\n", tinyfmt.Int(3), tinyfmt.Int(7), tinyfmt.Uint(7))
//
//	buf := make([]byte, 16)
//	n := tinyfmt.Snprintf(buf, "[%s]", tinyfmt.Str("HELLO"))
package tinyfmt

import (
	"io"
	"sync"

	"github.com/ryanlewis/tinyfmt/internal/debug"
	"github.com/ryanlewis/tinyfmt/internal/renderer"
	"github.com/ryanlewis/tinyfmt/internal/sink"
)

// Printf renders format through w one character at a time. There is no
// bound on the output length; w may block.
func Printf(w CharWriter, format string, args ...Arg) {
	defaultFormatter.Printf(w, format, args...)
}

// Snprintf renders format into buf and returns the number of content bytes
// written. The capacity is len(buf): at most len(buf)-1 content bytes are
// stored and buf[n] is always the NUL terminator. Output that does not fit
// is dropped silently; compare n with len(buf)-1 to detect truncation.
//
// len(buf) must be at least 1. A zero-length buffer panics.
func Snprintf(buf []byte, format string, args ...Arg) int {
	return defaultFormatter.Snprintf(buf, format, args...)
}

// Sprintf renders format into a new string.
func Sprintf(format string, args ...Arg) string {
	return defaultFormatter.Sprintf(format, args...)
}

var defaultFormatter = New()

// Formatter applies a fixed set of options to every call. A Formatter
// without a lock may be used concurrently only with independent devices
// and buffers.
type Formatter struct {
	opts options
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

// Printf renders format through w. When a lock is configured it is held for
// the whole call, so concurrent messages to a shared device do not interleave.
func (f *Formatter) Printf(w CharWriter, format string, args ...Arg) {
	if f.opts.cache != nil {
		f.Render(w, f.opts.cache.Compile(format), args...)
		return
	}
	f.lock()
	defer f.unlock()
	renderer.Render(sink.NewStream(w), format, args, f.opts.toInternal())
}

// Snprintf renders format into buf; see the package-level Snprintf.
func (f *Formatter) Snprintf(buf []byte, format string, args ...Arg) int {
	if f.opts.cache != nil {
		return f.RenderBuffer(buf, f.opts.cache.Compile(format), args...).N
	}
	out := sink.NewBounded(buf)
	renderer.Render(&out, format, args, f.opts.toInternal())
	return out.Terminate()
}

// Sprintf renders format into a new string.
func (f *Formatter) Sprintf(format string, args ...Arg) string {
	if f.opts.cache != nil {
		compiled := f.opts.cache.Compile(format)
		return renderer.StringTokens(compiled.tokens, compiled.format, args, f.opts.toInternal())
	}
	return renderer.String(format, args, f.opts.toInternal())
}

// Render writes an already compiled format through w, holding the lock and
// tracing like Printf. The cache is not consulted.
func (f *Formatter) Render(w CharWriter, fm *Format, args ...Arg) {
	f.lock()
	defer f.unlock()
	renderer.RenderTokens(sink.NewStream(w), fm.tokens, fm.format, args, f.opts.toInternal())
}

// Result describes one bounded render.
type Result struct {
	// N is the number of content bytes stored; buf[N] holds the terminator
	N int

	// Dropped counts the bytes that did not fit
	Dropped int
}

// Truncated reports whether any output was dropped.
func (r Result) Truncated() bool {
	return r.Dropped > 0
}

// RenderBuffer renders an already compiled format into buf like Snprintf
// and also reports how much output was lost to the capacity.
func (f *Formatter) RenderBuffer(buf []byte, fm *Format, args ...Arg) Result {
	out := sink.NewBounded(buf)
	renderer.RenderTokens(&out, fm.tokens, fm.format, args, f.opts.toInternal())
	return Result{N: out.Terminate(), Dropped: out.Dropped()}
}

func (f *Formatter) lock() {
	if f.opts.lock != nil {
		f.opts.lock.Lock()
	}
}

func (f *Formatter) unlock() {
	if f.opts.lock != nil {
		f.opts.lock.Unlock()
	}
}

// Option configures a Formatter.
type Option func(*options)

type options struct {
	debug *debug.Session
	lock  sync.Locker
	cache *FormatCache
}

func (o *options) toInternal() *renderer.Options {
	if o.debug == nil {
		return nil
	}
	return &renderer.Options{Debug: o.debug}
}

// WithDebug traces every call made through the Formatter to session.
// A nil session disables tracing.
func WithDebug(session *DebugSession) Option {
	return func(opts *options) {
		opts.debug = session
	}
}

// WithLock serialises Printf calls on mu. Use one lock per physical device
// when several goroutines print to it.
func WithLock(mu sync.Locker) Option {
	return func(opts *options) {
		opts.lock = mu
	}
}

// WithCache compiles formats once through c and reuses them on later calls.
func WithCache(c *FormatCache) Option {
	return func(opts *options) {
		opts.cache = c
	}
}

// DebugSession collects trace events for one or more format calls.
type DebugSession = debug.Session

// EnableDebug switches tracing on or off process-wide. NewDebugSession
// returns nil while tracing is off.
func EnableDebug(on bool) {
	debug.SetEnabled(on)
}

// NewDebugSession starts a trace session writing to w, as JSON Lines or, with
// pretty set, in a human-readable layout. It returns nil when debug mode is
// disabled. Close the session to flush it.
func NewDebugSession(w io.Writer, pretty bool) *DebugSession {
	var s debug.Sink
	if pretty {
		s = debug.NewPrettySink(w)
	} else {
		s = debug.NewJSONSink(w)
	}
	return debug.NewSession(s)
}
