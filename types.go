package tinyfmt

import (
	"fmt"

	"github.com/ryanlewis/tinyfmt/internal/common"
)

// Arg is one formatting argument tagged with its shape. Build it with Str,
// Int, Uint, Char or Of.
//
// Binding rules:
//   - arguments are taken strictly in order by s, d, x and c directives
//   - numeric arguments reinterpret freely: Int under %x shows its
//     two's-complement bits, Uint under %d its signed view, any numeric
//     under %c its low byte
//   - a text argument under d, x or c, or a numeric one under s, renders
//     %!<verb>(<kind>) and is still consumed
//   - a directive with no argument left renders %!<verb>(MISSING)
//   - surplus arguments are ignored
type Arg = common.Arg

// Str returns a text argument for %s. Copying stops at the first NUL byte.
func Str(s string) Arg {
	return Arg{Kind: common.ArgString, Str: s}
}

// Int returns a signed 32-bit argument for %d.
func Int(v int32) Arg {
	return Arg{Kind: common.ArgInt, Num: uint32(v)}
}

// Uint returns an unsigned 32-bit argument for %x.
func Uint(v uint32) Arg {
	return Arg{Kind: common.ArgUint, Num: v}
}

// Char returns a single-character argument for %c.
func Char(c byte) Arg {
	return Arg{Kind: common.ArgChar, Num: uint32(c)}
}

// Of converts a Go value to an Arg. Integer types wider than 32 bits are
// truncated to their low 32 bits, as a C varargs call would pass them.
// Unsupported types panic.
func Of(v interface{}) Arg {
	switch x := v.(type) {
	case Arg:
		return x
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	case byte:
		return Char(x)
	case rune:
		return Int(x)
	case int:
		return Int(int32(x))
	case int8:
		return Int(int32(x))
	case int16:
		return Int(int32(x))
	case int64:
		return Int(int32(x))
	case uint:
		return Uint(uint32(x))
	case uint16:
		return Uint(uint32(x))
	case uint32:
		return Uint(x)
	case uint64:
		return Uint(uint32(x))
	case bool:
		if x {
			return Int(1)
		}
		return Int(0)
	case fmt.Stringer:
		return Str(x.String())
	}
	panic(fmt.Sprintf("tinyfmt: unsupported argument type %T", v))
}

// Args converts each value with Of.
func Args(vals ...interface{}) []Arg {
	args := make([]Arg, len(vals))
	for i, v := range vals {
		args[i] = Of(v)
	}
	return args
}

// Kind classifies a directive by its conversion character.
type Kind = common.Kind

// Directive kinds
const (
	KindUnrecognized = common.KindUnrecognized
	KindString       = common.KindString
	KindDecimal      = common.KindDecimal
	KindHex          = common.KindHex
	KindChar         = common.KindChar
)

// Common errors returned by the tinyfmt package
var (
	// ErrBadArgument is returned when text cannot be converted to the
	// argument kind a directive expects
	ErrBadArgument = common.ErrBadArgument

	// ErrBadConfig is returned when a configuration value is out of range
	ErrBadConfig = common.ErrBadConfig
)
