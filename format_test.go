package tinyfmt

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestCompile(t *testing.T) {
	f := Compile("%s=%05d %% %q (%x)%c")

	if f.String() != "%s=%05d %% %q (%x)%c" {
		t.Errorf("String() = %q", f.String())
	}
	wantKinds := []Kind{KindString, KindDecimal, KindHex, KindChar}
	if !reflect.DeepEqual(f.Kinds(), wantKinds) {
		t.Errorf("Kinds() = %v, want %v", f.Kinds(), wantKinds)
	}
	if f.Directives() != 6 {
		t.Errorf("Directives() = %d, want 6", f.Directives())
	}
}

func TestCompiledMatchesUncompiled(t *testing.T) {
	cases := []struct {
		format string
		args   []Arg
	}{
		{"", nil},
		{"%d : %3d (%x)\n", []Arg{Int(3), Int(7), Uint(7)}},
		{"[%s]", []Arg{Str("HELLO")}},
		{"%05d%08x%c", []Arg{Int(-42), Uint(255), Char('!')}},
		{"%%%q%", nil},
		{"%d %d", []Arg{Str("bad")}},
		{"cut\x00%d", []Arg{Int(1)}},
	}

	for _, tc := range cases {
		f := Compile(tc.format)

		if got, want := f.Sprintf(tc.args...), Sprintf(tc.format, tc.args...); got != want {
			t.Errorf("Sprintf(%q): compiled %q, uncompiled %q", tc.format, got, want)
		}

		dev, ref := &deviceRecorder{}, &deviceRecorder{}
		f.Printf(dev, tc.args...)
		Printf(ref, tc.format, tc.args...)
		if dev.String() != ref.String() {
			t.Errorf("Printf(%q): compiled %q, uncompiled %q", tc.format, dev.String(), ref.String())
		}

		for size := 1; size < 12; size++ {
			a, b := make([]byte, size), make([]byte, size)
			na := f.Snprintf(a, tc.args...)
			nb := Snprintf(b, tc.format, tc.args...)
			if na != nb || !reflect.DeepEqual(a, b) {
				t.Errorf("Snprintf(%q, size %d): compiled %q/%d, uncompiled %q/%d", tc.format, size, a, na, b, nb)
			}
		}
	}
}

func TestFormatParseArgs(t *testing.T) {
	f := Compile("%s %d %x %c")
	args, err := f.ParseArgs([]string{"hi", "-1", "0xff", "A"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if got := f.Sprintf(args...); got != "hi -1 0xFF A" {
		t.Errorf("render = %q", got)
	}

	if _, err := f.ParseArgs([]string{"hi"}); !errors.Is(err, ErrBadArgument) {
		t.Errorf("short ParseArgs() error = %v, want ErrBadArgument", err)
	}
}

func TestFormatParseArgsStopsAtNUL(t *testing.T) {
	f := Compile("%d\x00%s")
	args, err := f.ParseArgs([]string{"7"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if got := f.Sprintf(args...); got != "7" {
		t.Errorf("render = %q", got)
	}
}

func TestFormatterRender(t *testing.T) {
	cache := NewFormatCache(4)
	f := New(WithCache(cache), WithLock(&sync.Mutex{}))

	compiled := cache.Compile("%d/%x")
	dev := &deviceRecorder{}
	f.Render(dev, compiled, Int(-1), Uint(10))
	if dev.String() != "-1/0xA" {
		t.Errorf("Render wrote %q", dev.String())
	}

	buf := make([]byte, 16)
	if res := f.RenderBuffer(buf, compiled, Int(2), Uint(3)); string(buf[:res.N]) != "2/0x3" {
		t.Errorf("RenderBuffer stored %q", buf[:res.N])
	}

	// One miss from Compile above; Render and RenderBuffer never consult the cache.
	if stats := cache.Stats(); stats.Misses != 1 || stats.Hits != 0 {
		t.Errorf("cache stats = %+v, want 1 miss and no hits", stats)
	}
}

func TestFormatterRenderBuffer(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		format      string
		args        []Arg
		want        string
		wantDropped int
	}{
		{"fits", 16, "[%s]", []Arg{Str("HELLO")}, "[HELLO]", 0},
		{"exact fit", 8, "[%s]", []Arg{Str("HELLO")}, "[HELLO]", 0},
		{"truncated", 6, "[%s]", []Arg{Str("HELLO")}, "[HELL", 2},
		{"terminator only", 1, "abc", nil, "", 3},
		{"padding dropped", 4, "%08x", []Arg{Uint(1)}, "000", 5},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			res := f.RenderBuffer(buf, Compile(tt.format), tt.args...)
			if got := string(buf[:res.N]); got != tt.want {
				t.Errorf("stored %q, want %q", got, tt.want)
			}
			if buf[res.N] != 0 {
				t.Errorf("buf[%d] = %q, want NUL terminator", res.N, buf[res.N])
			}
			if res.Dropped != tt.wantDropped {
				t.Errorf("Dropped = %d, want %d", res.Dropped, tt.wantDropped)
			}
			if res.Truncated() != (tt.wantDropped > 0) {
				t.Errorf("Truncated() = %v", res.Truncated())
			}
		})
	}
}

func BenchmarkCompiled(b *testing.B) {
	const format = "%d : %3d (%x)\n"
	args := []Arg{Int(3), Int(7), Uint(7)}
	buf := make([]byte, 32)

	b.Run("Uncompiled", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Snprintf(buf, format, args...)
		}
	})

	b.Run("Compiled", func(b *testing.B) {
		f := Compile(format)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			f.Snprintf(buf, args...)
		}
	})
}
