// Package common provides shared constants and types for internal packages.
// These types are re-exported by the public tinyfmt package.
package common

import "errors"

// Kind classifies a parsed directive by its conversion character.
type Kind uint8

// Directive kinds
const (
	// KindUnrecognized is any conversion character outside s, d, x and c
	KindUnrecognized Kind = iota
	// KindString copies a text argument verbatim (%s)
	KindString
	// KindDecimal renders a signed 32-bit integer (%d)
	KindDecimal
	// KindHex renders an unsigned 32-bit integer as 0x-prefixed uppercase hex (%x)
	KindHex
	// KindChar emits a single character (%c)
	KindChar
)

// String returns the name used in debug events and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDecimal:
		return "signed-decimal"
	case KindHex:
		return "unsigned-hex"
	case KindChar:
		return "char"
	}
	return "unrecognized"
}

// KindOf maps a conversion character to its directive kind.
func KindOf(verb byte) Kind {
	switch verb {
	case 's':
		return KindString
	case 'd':
		return KindDecimal
	case 'x':
		return KindHex
	case 'c':
		return KindChar
	}
	return KindUnrecognized
}

// Pad characters
const (
	PadSpace = ' '
	PadZero  = '0'
)

// Terminator is written after the content in bounded buffer mode.
const Terminator = 0

// Common errors (must match public API in tinyfmt package)
var (
	// ErrBadArgument is returned when a textual argument cannot be converted
	// to the kind its directive expects
	ErrBadArgument = errors.New("bad argument")
	// ErrBadConfig is returned when a configuration value is out of range
	ErrBadConfig = errors.New("bad config")
)
