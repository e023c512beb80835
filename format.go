package tinyfmt

import (
	"github.com/ryanlewis/tinyfmt/internal/parser"
	"github.com/ryanlewis/tinyfmt/internal/renderer"
	"github.com/ryanlewis/tinyfmt/internal/sink"
)

// Format is a pre-parsed format string. It is immutable and safe for
// concurrent use; rendering it produces exactly the bytes the plain entry
// points produce for the same text.
type Format struct {
	format string
	tokens []parser.Token
	kinds  []Kind
}

// Compile parses format once for repeated rendering.
func Compile(format string) *Format {
	tokens := parser.Parse(format)
	var kinds []Kind
	for _, tok := range tokens {
		if tok.IsDirective && tok.Directive.ConsumesArg() {
			kinds = append(kinds, tok.Directive.Kind)
		}
	}
	return &Format{
		format: format,
		tokens: tokens,
		kinds:  kinds,
	}
}

// String returns the source text.
func (f *Format) String() string {
	return f.format
}

// Kinds returns the kinds of the argument-consuming directives in order.
// The returned slice should not be modified by the caller.
func (f *Format) Kinds() []Kind {
	return f.kinds
}

// Directives returns the number of directives, unrecognized ones included.
func (f *Format) Directives() int {
	n := 0
	for _, tok := range f.tokens {
		if tok.IsDirective {
			n++
		}
	}
	return n
}

// Printf renders the format through w.
func (f *Format) Printf(w CharWriter, args ...Arg) {
	renderer.RenderTokens(sink.NewStream(w), f.tokens, f.format, args, nil)
}

// Snprintf renders the format into buf; see the package-level Snprintf.
func (f *Format) Snprintf(buf []byte, args ...Arg) int {
	out := sink.NewBounded(buf)
	renderer.RenderTokens(&out, f.tokens, f.format, args, nil)
	return out.Terminate()
}

// Sprintf renders the format into a new string.
func (f *Format) Sprintf(args ...Arg) string {
	return renderer.StringTokens(f.tokens, f.format, args, nil)
}

// ParseArgs converts texts against the format's directives; see ParseArgs.
func (f *Format) ParseArgs(texts []string) ([]Arg, error) {
	return parseArgs(f.kinds, texts)
}
