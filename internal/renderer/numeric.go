package renderer

import "github.com/ryanlewis/tinyfmt/internal/sink"

const hexDigits = "0123456789ABCDEF"

// Local digit buffer sizes: ten decimal digits of a 32-bit magnitude fit in
// twelve, eight nibbles cover every 32-bit value.
const (
	decimalDigitsCap = 12
	hexDigitsCap     = 8
)

// filler is implemented by sinks that can emit a run of identical bytes
// without a call per byte.
type filler interface {
	Fill(c byte, n int)
}

// Decimal writes v as signed decimal text.
//
// A negative value emits '-' before any padding and the sign counts against
// width. The magnitude is taken in uint32, so math.MinInt32 renders as
// -2147483648 instead of overflowing. Padding never truncates digits.
func Decimal(out sink.Sink, v int32, width int, pad byte) {
	var digits [decimalDigitsCap]byte

	mag := uint32(v)
	if v < 0 {
		out.Put('-')
		mag = -mag
		width--
	}

	n := 0
	for {
		digits[n] = '0' + byte(mag%10)
		n++
		mag /= 10
		if mag == 0 {
			break
		}
	}

	padN(out, pad, width-n)
	for n > 0 {
		n--
		out.Put(digits[n])
	}
}

// Hex writes v as 0x-prefixed uppercase hexadecimal.
//
// The prefix counts against width and padding is emitted before it, so a
// zero pad lands ahead of the prefix: %08x of 255 gives 00000xFF.
func Hex(out sink.Sink, v uint32, width int, pad byte) {
	var digits [hexDigitsCap]byte

	n := 0
	for {
		digits[n] = hexDigits[v&0xF]
		n++
		v >>= 4
		if v == 0 {
			break
		}
	}

	padN(out, pad, width-(n+2))
	out.Put('0')
	out.Put('x')
	for n > 0 {
		n--
		out.Put(digits[n])
	}
}

// padN emits max(0, n) copies of pad.
func padN(out sink.Sink, pad byte, n int) {
	if n <= 0 {
		return
	}
	if f, ok := out.(filler); ok {
		f.Fill(pad, n)
		return
	}
	for i := 0; i < n; i++ {
		out.Put(pad)
	}
}
