// Package sink implements the character destinations the formatter writes to.
//
// A Sink accepts one byte at a time. Stream pushes every byte to an external
// character device, Bounded appends into a fixed caller buffer and silently
// drops what does not fit, Builder grows an in-memory slice.
package sink

import "github.com/ryanlewis/tinyfmt/internal/common"

// Sink is the single capability the parser and renderer depend on.
type Sink interface {
	Put(c byte)
}

// CharWriter is the external "write one character" primitive. Calls may
// block until the device is ready.
type CharWriter interface {
	WriteChar(c byte)
}

// Stream forwards every byte to a CharWriter. It has no internal buffering
// and no length limit.
type Stream struct {
	w CharWriter
	n int
}

// NewStream returns a stream sink over w.
func NewStream(w CharWriter) *Stream {
	return &Stream{w: w}
}

// Put writes c to the underlying device.
func (s *Stream) Put(c byte) {
	s.w.WriteChar(c)
	s.n++
}

// Count returns the number of bytes pushed so far.
func (s *Stream) Count() int {
	return s.n
}

// Bounded appends into a caller-owned buffer whose capacity is len(buf).
// The last slot is always reserved for the terminator.
//
// A zero-length buffer violates the precondition and makes NewBounded panic.
type Bounded struct {
	buf     []byte
	pos     int
	dropped int
}

// NewBounded returns a bounded sink over buf.
func NewBounded(buf []byte) Bounded {
	if len(buf) == 0 {
		panic("sink: bounded buffer needs room for the terminator")
	}
	return Bounded{buf: buf}
}

// Put appends c if a content slot remains, otherwise the byte is dropped.
func (b *Bounded) Put(c byte) {
	if b.pos >= len(b.buf)-1 {
		b.dropped++
		return
	}
	b.buf[b.pos] = c
	b.pos++
}

// Fill appends up to n copies of c and drops the rest.
func (b *Bounded) Fill(c byte, n int) {
	room := len(b.buf) - 1 - b.pos
	if room < 0 {
		room = 0
	}
	if n > room {
		b.dropped += n - room
		n = room
	}
	for i := 0; i < n; i++ {
		b.buf[b.pos+i] = c
	}
	b.pos += n
}

// Full reports whether every content slot has been used.
func (b *Bounded) Full() bool {
	return b.pos >= len(b.buf)-1
}

// Len returns the number of content bytes written so far.
func (b *Bounded) Len() int {
	return b.pos
}

// Cap returns the buffer capacity, terminator slot included.
func (b *Bounded) Cap() int {
	return len(b.buf)
}

// Dropped returns how many bytes were discarded because the buffer was full.
func (b *Bounded) Dropped() int {
	return b.dropped
}

// Terminate writes the terminator at the cursor and returns the content length.
func (b *Bounded) Terminate() int {
	b.buf[b.pos] = common.Terminator
	return b.pos
}

// Builder accumulates bytes in a growable slice.
type Builder struct {
	Buf []byte
}

// Put appends c.
func (b *Builder) Put(c byte) {
	b.Buf = append(b.Buf, c)
}
