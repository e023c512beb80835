// Package parser implements scanning of tinyfmt format strings.
//
// The mini-language is literal text plus directives of the form
//
//	% ['0'] {digit} conv
//
// where conv is one of s, d, x or c. Any other conversion character yields
// an unrecognized directive that renders literally.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ryanlewis/tinyfmt/internal/common"
)

// MaxWidth is the saturation point for width accumulation.
const MaxWidth = math.MaxInt32

// Directive is one parsed %-specification.
type Directive struct {
	// Kind is derived from Verb
	Kind common.Kind

	// Verb is the conversion character, or 0 when the format ended right
	// after the '%' and its optional pad and width
	Verb byte

	// Pad is common.PadSpace or common.PadZero
	Pad byte

	// Width is the minimum field width (0 when absent)
	Width int

	// Offset is the byte offset of the '%' within the format
	Offset int
}

// ConsumesArg reports whether the directive takes an argument.
func (d Directive) ConsumesArg() bool {
	return d.Kind != common.KindUnrecognized
}

// String reconstructs the directive text. Unrecognized directives come back
// without their pad and width, matching how they render.
func (d Directive) String() string {
	var b strings.Builder
	b.WriteByte('%')
	if d.Kind == common.KindUnrecognized {
		if d.Verb != 0 {
			b.WriteByte(d.Verb)
		}
		return b.String()
	}
	if d.Pad == common.PadZero {
		b.WriteByte('0')
	}
	if d.Width > 0 {
		b.WriteString(strconv.Itoa(d.Width))
	}
	b.WriteByte(d.Verb)
	return b.String()
}

// Token is either a run of literal bytes or a single directive.
type Token struct {
	Literal     string
	Directive   Directive
	IsDirective bool

	// Offset is the byte offset of the token within the format
	Offset int
}

// Scanner walks a format string left to right, yielding tokens.
// The zero value scans an empty format.
type Scanner struct {
	format string
	pos    int
}

// NewScanner returns a scanner over format. Scanning ends at the first NUL
// byte, so a format copied out of a NUL-terminated buffer stops where a C
// caller's would.
func NewScanner(format string) Scanner {
	return Scanner{format: Terminated(format)}
}

// Next returns the next token, or false once the format is exhausted.
func (s *Scanner) Next() (Token, bool) {
	if s.pos >= len(s.format) {
		return Token{}, false
	}
	if s.format[s.pos] != '%' {
		start := s.pos
		end := strings.IndexByte(s.format[start:], '%')
		if end < 0 {
			s.pos = len(s.format)
		} else {
			s.pos = start + end
		}
		return Token{Literal: s.format[start:s.pos], Offset: start}, true
	}

	d, n := ParseDirective(s.format[s.pos:])
	d.Offset = s.pos
	s.pos += n
	return Token{Directive: d, IsDirective: true, Offset: d.Offset}, true
}

// Offset returns the current byte position within the format.
func (s *Scanner) Offset() int {
	return s.pos
}

// ParseDirective parses the directive at the start of text, which must begin
// with '%'. It returns the directive and the number of bytes consumed.
//
// A single leading '0' selects zero padding and is checked before width
// digits are accumulated, so "%05d" is pad '0' width 5 while "%50d" is pad
// ' ' width 50.
func ParseDirective(text string) (Directive, int) {
	d := Directive{Pad: common.PadSpace, Kind: common.KindUnrecognized}
	i := 1

	if i < len(text) && text[i] == '0' {
		d.Pad = common.PadZero
		i++
	}
	for i < len(text) && isDigit(text[i]) {
		d.Width = accumulate(d.Width, text[i])
		i++
	}
	if i >= len(text) {
		return d, i
	}

	d.Verb = text[i]
	d.Kind = common.KindOf(d.Verb)
	return d, i + 1
}

// Parse scans the whole format and returns its tokens.
func Parse(format string) []Token {
	var tokens []Token
	s := NewScanner(format)
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// ArgKinds returns the directive kinds of format in argument order, skipping
// unrecognized directives since they consume nothing.
func ArgKinds(format string) []common.Kind {
	var kinds []common.Kind
	s := NewScanner(format)
	for {
		tok, ok := s.Next()
		if !ok {
			return kinds
		}
		if tok.IsDirective && tok.Directive.ConsumesArg() {
			kinds = append(kinds, tok.Directive.Kind)
		}
	}
}

// Terminated returns s up to, not including, its first NUL byte.
func Terminated(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// accumulate appends a decimal digit to w, saturating at MaxWidth.
func accumulate(w int, digit byte) int {
	d := int(digit - '0')
	if w > (MaxWidth-d)/10 {
		return MaxWidth
	}
	return w*10 + d
}
