package renderer

import (
	"math"
	"testing"

	"github.com/ryanlewis/tinyfmt/internal/sink"
)

func TestDecimal(t *testing.T) {
	tests := []struct {
		name  string
		v     int32
		width int
		pad   byte
		want  string
	}{
		{"zero", 0, 0, ' ', "0"},
		{"positive", 42, 0, ' ', "42"},
		{"negative", -42, 0, ' ', "-42"},
		{"width", 7, 3, ' ', "  7"},
		{"zero pad", 7, 3, '0', "007"},
		{"negative zero pad", -42, 5, '0', "-0042"},
		{"negative space pad", -42, 5, ' ', "-  42"},
		{"width smaller than digits", 12345, 2, ' ', "12345"},
		{"sign uses width", -1, 2, '0', "-1"},
		{"max", math.MaxInt32, 0, ' ', "2147483647"},
		{"min", math.MinInt32, 0, ' ', "-2147483648"},
		{"min padded", math.MinInt32, 13, '0', "-002147483648"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b sink.Builder
			Decimal(&b, tt.v, tt.width, tt.pad)
			if got := string(b.Buf); got != tt.want {
				t.Errorf("Decimal(%d, %d, %q) = %q, want %q", tt.v, tt.width, tt.pad, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name  string
		v     uint32
		width int
		pad   byte
		want  string
	}{
		{"zero", 0, 0, ' ', "0x0"},
		{"small", 7, 0, ' ', "0x7"},
		{"uppercase", 255, 0, ' ', "0xFF"},
		{"max", math.MaxUint32, 0, ' ', "0xFFFFFFFF"},
		{"deadbeef", 0xDEADBEEF, 0, ' ', "0xDEADBEEF"},
		{"space pad", 255, 8, ' ', "    0xFF"},
		{"zero pad before prefix", 255, 8, '0', "00000xFF"},
		{"prefix counts against width", 255, 4, '0', "0xFF"},
		{"narrow width", 0xABCDE, 2, ' ', "0xABCDE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b sink.Builder
			Hex(&b, tt.v, tt.width, tt.pad)
			if got := string(b.Buf); got != tt.want {
				t.Errorf("Hex(%#x, %d, %q) = %q, want %q", tt.v, tt.width, tt.pad, got, tt.want)
			}
		})
	}
}

func TestNumericBounded(t *testing.T) {
	buf := make([]byte, 6)
	b := sink.NewBounded(buf)
	Decimal(&b, -123456, 10, '0')
	n := b.Terminate()
	if got := string(buf[:n]); got != "-0001" {
		t.Errorf("bounded Decimal = %q, want %q", got, "-0001")
	}
}

func BenchmarkDecimal(b *testing.B) {
	var s sink.Builder
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Buf = s.Buf[:0]
		Decimal(&s, int32(i), 8, '0')
	}
}

func BenchmarkHex(b *testing.B) {
	var s sink.Builder
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Buf = s.Buf[:0]
		Hex(&s, uint32(i), 10, '0')
	}
}
