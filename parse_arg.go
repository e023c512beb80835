package tinyfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanlewis/tinyfmt/internal/common"
	"github.com/ryanlewis/tinyfmt/internal/parser"
)

// ParseArg converts text to the argument a directive of the given kind
// expects. It is meant for shells and command lines where every argument
// arrives as text.
//
// Accepted forms:
//   - KindString: any text, taken verbatim
//   - KindDecimal: signed decimal, or 0x/0o/0b prefixed; values up to
//     4294967295 are accepted and reinterpreted as signed
//   - KindHex: unsigned decimal or prefixed; negative values are accepted
//     and reinterpreted as unsigned
//   - KindChar: a single byte literal, an escape such as \n or \x41, U+XXXX,
//     0xNN or a decimal code, each at most 255
func ParseArg(kind Kind, text string) (Arg, error) {
	switch kind {
	case common.KindString:
		return Str(text), nil
	case common.KindDecimal:
		if v, err := strconv.ParseInt(text, 0, 32); err == nil {
			return Int(int32(v)), nil
		}
		if v, err := strconv.ParseUint(text, 0, 32); err == nil {
			return Int(int32(uint32(v))), nil
		}
	case common.KindHex:
		if v, err := strconv.ParseUint(text, 0, 32); err == nil {
			return Uint(uint32(v)), nil
		}
		if v, err := strconv.ParseInt(text, 0, 32); err == nil {
			return Uint(uint32(int32(v))), nil
		}
	case common.KindChar:
		if c, ok := parseChar(text); ok {
			return Char(c), nil
		}
	default:
		return Arg{}, fmt.Errorf("%w: %s directive takes no argument", ErrBadArgument, kind)
	}
	return Arg{}, fmt.Errorf("%w: %q is not a valid %s argument", ErrBadArgument, text, kind)
}

// ParseArgs converts texts positionally against the directives of format.
// Surplus texts are an error, as are missing ones.
func ParseArgs(format string, texts []string) ([]Arg, error) {
	return parseArgs(parser.ArgKinds(format), texts)
}

func parseArgs(kinds []Kind, texts []string) ([]Arg, error) {
	if len(texts) != len(kinds) {
		return nil, fmt.Errorf("%w: format takes %d arguments, got %d", ErrBadArgument, len(kinds), len(texts))
	}
	args := make([]Arg, len(texts))
	for i, text := range texts {
		a, err := ParseArg(kinds[i], text)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args[i] = a
	}
	return args, nil
}

func parseChar(s string) (byte, bool) {
	if len(s) == 1 {
		return s[0], true
	}
	if r, ok := parseEscaped(s); ok {
		return r, true
	}
	if r, ok := parseUnicodeNotation(s); ok {
		return r, true
	}
	if r, ok := parseHexadecimal(s); ok {
		return r, true
	}
	if r, ok := parseDecimal(s); ok {
		return r, true
	}
	return 0, false
}

// validateCode checks that a character code fits in one byte.
func validateCode(code int64) (byte, bool) {
	if code < 0 || code > 0xFF {
		return 0, false
	}
	return byte(code), true
}

func parseEscaped(s string) (byte, bool) {
	if !strings.HasPrefix(s, "\\") {
		return 0, false
	}
	v, _, tail, err := strconv.UnquoteChar(s, '\'')
	if err != nil || tail != "" {
		return 0, false
	}
	return validateCode(int64(v))
}

func parseUnicodeNotation(s string) (byte, bool) {
	if strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateCode(code)
		}
	}
	return 0, false
}

func parseHexadecimal(s string) (byte, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateCode(code)
		}
	}
	return 0, false
}

func parseDecimal(s string) (byte, bool) {
	code, err := strconv.ParseInt(s, 10, 32)
	if err == nil {
		return validateCode(code)
	}
	return 0, false
}
