package tinyfmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		size     int
		want     string
		wantMore bool
		wantEcho string
	}{
		{"line", "hello\nrest", 16, "hello", true, "hello\n"},
		{"carriage return", "hi\r", 16, "hi", true, "hi\n"},
		{"empty line", "\n", 16, "", true, "\n"},
		{"backspace", "abx\bc\n", 16, "abc", true, "abx\b \bc\n"},
		{"delete", "ab\x7f\x7f\x7fz\n", 16, "z", true, "ab\b \b\b \bz\n"},
		{"control ignored", "a\x01\x1bb\n", 16, "ab", true, "ab\n"},
		{"tab kept", "a\tb\n", 16, "a\tb", true, "a\tb\n"},
		{"truncated", "abcdef\n", 4, "abc", true, "abc\n"},
		{"terminator only", "abc\n", 1, "", true, "\n"},
		{"eot", "ab\x04cd\n", 16, "ab", false, "ab"},
		{"eof", "ab", 16, "ab", false, "ab"},
		{"interrupt discards line", "ab\x03cd\n", 16, "", false, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var echo bytes.Buffer
			con := NewConsole(strings.NewReader(tt.input), &echo)
			buf := bytes.Repeat([]byte{'#'}, tt.size)

			n, more := ReadLine(con, con, buf)
			if got := string(buf[:n]); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
			if buf[n] != 0 {
				t.Errorf("buf[%d] = %q, want NUL terminator", n, buf[n])
			}
			if more != tt.wantMore {
				t.Errorf("more = %v, want %v", more, tt.wantMore)
			}
			if echo.String() != tt.wantEcho {
				t.Errorf("echo = %q, want %q", echo.String(), tt.wantEcho)
			}
		})
	}
}

func TestReadLineNoEcho(t *testing.T) {
	con := NewConsole(strings.NewReader("one\ntwo\n"), nil)
	buf := make([]byte, 8)

	for _, want := range []string{"one", "two"} {
		n, more := ReadLine(con, nil, buf)
		if string(buf[:n]) != want || !more {
			t.Errorf("ReadLine = %q, %v, want %q, true", buf[:n], more, want)
		}
	}
	if n, more := ReadLine(con, nil, buf); n != 0 || more {
		t.Errorf("ReadLine at EOF = %d, %v", n, more)
	}
}

func TestReadLineEmptyBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ReadLine with an empty buffer should panic")
		}
	}()
	ReadLine(NewConsole(strings.NewReader("x"), nil), nil, nil)
}
