package tinyfmt

import (
	"io"

	"github.com/ryanlewis/tinyfmt/internal/sink"
)

// CharWriter is a blocking "write one character" device. Printf performs
// one WriteChar per output byte and never buffers.
type CharWriter = sink.CharWriter

// CharReader is a blocking "read one character" device.
type CharReader interface {
	ReadChar() byte
}

// Console is a character device that can both read and write.
type Console interface {
	CharReader
	CharWriter
}

// CharWriterFunc adapts a plain function, such as a UART transmit routine,
// to CharWriter.
type CharWriterFunc func(c byte)

// WriteChar calls f(c).
func (f CharWriterFunc) WriteChar(c byte) {
	f(c)
}

// CharReaderFunc adapts a plain function to CharReader.
type CharReaderFunc func() byte

// ReadChar calls f().
func (f CharReaderFunc) ReadChar() byte {
	return f()
}

// IOConsole is a Console over an io.Reader and io.Writer.
//
// Device errors cannot travel through the character interface, so they are
// kept and reported by Err. The two directions fail independently: after a
// read error reads return 0, after a write error writes are discarded, and
// output still reaches the writer once the reader has hit io.EOF.
type IOConsole struct {
	r    io.Reader
	w    io.Writer
	crlf bool

	rerr  error
	werr  error
	first error

	rbuf [1]byte
	wbuf [2]byte
}

// ConsoleOption configures an IOConsole.
type ConsoleOption func(*IOConsole)

// WithCRLF enables raw-terminal newline translation: '\n' is written as
// "\r\n" and a received '\r' is delivered as '\n'.
func WithCRLF(on bool) ConsoleOption {
	return func(c *IOConsole) {
		c.crlf = on
	}
}

// NewConsole returns a console reading from r and writing to w. Either may
// be nil for a one-directional console; reading a console without a reader
// reports io.EOF.
func NewConsole(r io.Reader, w io.Writer, opts ...ConsoleOption) *IOConsole {
	c := &IOConsole{r: r, w: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadChar blocks until one byte is available.
func (c *IOConsole) ReadChar() byte {
	if c.rerr != nil {
		return 0
	}
	if c.r == nil {
		c.failRead(io.EOF)
		return 0
	}
	if _, err := io.ReadFull(c.r, c.rbuf[:]); err != nil {
		c.failRead(err)
		return 0
	}
	if c.crlf && c.rbuf[0] == '\r' {
		return '\n'
	}
	return c.rbuf[0]
}

// WriteChar blocks until ch has been handed to the writer.
func (c *IOConsole) WriteChar(ch byte) {
	if c.werr != nil || c.w == nil {
		return
	}
	p := c.wbuf[:1]
	if c.crlf && ch == '\n' {
		p = c.wbuf[:2]
		p[0], p[1] = '\r', '\n'
	} else {
		p[0] = ch
	}
	if _, err := c.w.Write(p); err != nil {
		c.werr = err
		c.record(err)
	}
}

func (c *IOConsole) failRead(err error) {
	c.rerr = err
	c.record(err)
}

func (c *IOConsole) record(err error) {
	if c.first == nil {
		c.first = err
	}
}

// Err returns the first read or write error, if any.
func (c *IOConsole) Err() error {
	return c.first
}

// ReadErr returns the read error, io.EOF included.
func (c *IOConsole) ReadErr() error {
	return c.rerr
}

// WriteErr returns the write error that stopped output, if any.
func (c *IOConsole) WriteErr() error {
	return c.werr
}
