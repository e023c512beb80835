package common

// ArgKind is the runtime tag carried by an Arg.
type ArgKind uint8

// Argument tags
const (
	ArgString ArgKind = iota
	ArgInt
	ArgUint
	ArgChar
)

// String returns the tag name used in mismatch markers such as %!d(string).
func (k ArgKind) String() string {
	switch k {
	case ArgString:
		return "string"
	case ArgInt:
		return "int"
	case ArgUint:
		return "uint"
	case ArgChar:
		return "char"
	}
	return "unknown"
}

// Arg is one tagged formatting argument. Numeric payloads are stored as
// their 32-bit pattern in Num so that reinterpretation between signed and
// unsigned views is a plain conversion.
type Arg struct {
	Kind ArgKind
	Str  string
	Num  uint32
}

// Int32 returns the payload viewed as a signed 32-bit integer.
func (a Arg) Int32() int32 {
	return int32(a.Num)
}

// Numeric reports whether the argument carries an integer payload.
func (a Arg) Numeric() bool {
	return a.Kind != ArgString
}
