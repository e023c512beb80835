package tinyfmt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestIOConsoleWrite(t *testing.T) {
	tests := []struct {
		name string
		crlf bool
		want string
	}{
		{"raw newlines", false, "a\nb\n"},
		{"crlf", true, "a\r\nb\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			con := NewConsole(nil, &out, WithCRLF(tt.crlf))
			Printf(con, "%c\n%c\n", Char('a'), Char('b'))
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if con.Err() != nil {
				t.Errorf("Err() = %v", con.Err())
			}
		})
	}
}

func TestIOConsoleRead(t *testing.T) {
	con := NewConsole(strings.NewReader("x\ry"), nil, WithCRLF(true))
	got := []byte{con.ReadChar(), con.ReadChar(), con.ReadChar()}
	if string(got) != "x\ny" {
		t.Errorf("read %q, want %q", got, "x\ny")
	}

	if c := con.ReadChar(); c != 0 {
		t.Errorf("ReadChar at EOF = %q, want 0", c)
	}
	if !errors.Is(con.Err(), io.EOF) {
		t.Errorf("Err() = %v, want io.EOF", con.Err())
	}
}

func TestIOConsoleNoReader(t *testing.T) {
	var out bytes.Buffer
	con := NewConsole(nil, &out)
	if c := con.ReadChar(); c != 0 {
		t.Errorf("ReadChar() = %q, want 0", c)
	}
	if !errors.Is(con.Err(), io.EOF) {
		t.Errorf("Err() = %v, want io.EOF", con.Err())
	}
}

func TestIOConsoleWritesAfterEOF(t *testing.T) {
	var out bytes.Buffer
	con := NewConsole(strings.NewReader("%d 7"), &out)
	buf := make([]byte, 16)

	n, more := ReadLine(con, nil, buf)
	if string(buf[:n]) != "%d 7" || more {
		t.Fatalf("ReadLine = %q, %v", buf[:n], more)
	}
	Printf(con, "line=%s\n", Str(string(buf[:n])))
	if out.String() != "line=%d 7\n" {
		t.Errorf("output after EOF = %q", out.String())
	}
	if !errors.Is(con.Err(), io.EOF) || !errors.Is(con.ReadErr(), io.EOF) {
		t.Errorf("Err() = %v, ReadErr() = %v, want io.EOF", con.Err(), con.ReadErr())
	}
	if con.WriteErr() != nil {
		t.Errorf("WriteErr() = %v", con.WriteErr())
	}
}

func TestIOConsoleReadsAfterWriteError(t *testing.T) {
	con := NewConsole(strings.NewReader("ok\n"), &failingWriter{})
	Printf(con, "> ")

	buf := make([]byte, 8)
	n, more := ReadLine(con, con, buf)
	if string(buf[:n]) != "ok" || !more {
		t.Errorf("ReadLine after write error = %q, %v", buf[:n], more)
	}
	if !errors.Is(con.WriteErr(), errDevice) || !errors.Is(con.Err(), errDevice) {
		t.Errorf("WriteErr() = %v, Err() = %v, want errDevice", con.WriteErr(), con.Err())
	}
	if con.ReadErr() != nil {
		t.Errorf("ReadErr() = %v", con.ReadErr())
	}
}

type failingWriter struct {
	n int
}

var errDevice = errors.New("device unplugged")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errDevice
	}
	w.n--
	return len(p), nil
}

func TestIOConsoleWriteErrorIsSticky(t *testing.T) {
	w := &failingWriter{n: 2}
	con := NewConsole(nil, w)
	Printf(con, "hello")

	if !errors.Is(con.Err(), errDevice) {
		t.Fatalf("Err() = %v, want errDevice", con.Err())
	}
	if w.n != 0 {
		t.Errorf("writer received %d unexpected writes", w.n)
	}
}

func TestCharFuncAdapters(t *testing.T) {
	var out []byte
	w := CharWriterFunc(func(c byte) { out = append(out, c) })
	Printf(w, "%d", Int(12))
	if string(out) != "12" {
		t.Errorf("CharWriterFunc got %q", out)
	}

	src := "ok\n"
	r := CharReaderFunc(func() byte {
		c := src[0]
		src = src[1:]
		return c
	})
	buf := make([]byte, 8)
	n, more := ReadLine(r, nil, buf)
	if string(buf[:n]) != "ok" || !more {
		t.Errorf("ReadLine via CharReaderFunc = %q, %v", buf[:n], more)
	}

	var _ Console = NewConsole(nil, nil)
}
