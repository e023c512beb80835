package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case FormatStartData:
		s.writeFormatStart(d)
	case DirectiveData:
		s.writeDirective(d)
	case ArgMismatchData:
		s.writeArgMismatch(d)
	case TruncateData:
		s.writeTruncate(d)
	case FormatEndData:
		s.writeFormatEnd(d)
	case ErrorData:
		s.writeError(d)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeFormatStart(d FormatStartData) {
	fmt.Fprintf(s.w, "  call: %d, mode: %s, compiled: %t\n", d.Call, d.Mode, d.Compiled)
	fmt.Fprintf(s.w, "  format: %q, args: %d\n", d.Format, d.ArgCount)
	if d.Mode == ModeBuffer {
		fmt.Fprintf(s.w, "  capacity: %d\n", d.Capacity)
	}
}

func (s *PrettySink) writeDirective(d DirectiveData) {
	fmt.Fprintf(s.w, "  offset: %d, text: %q, kind: %s\n", d.Offset, d.Text, d.Kind)
	fmt.Fprintf(s.w, "  verb: %s, pad: %s, width: %d\n", charStr(d.Verb), charStr(d.Pad), d.Width)
	if d.ArgIndex >= 0 {
		fmt.Fprintf(s.w, "  arg_index: %d\n", d.ArgIndex)
	}
}

func (s *PrettySink) writeArgMismatch(d ArgMismatchData) {
	fmt.Fprintf(s.w, "  offset: %d, verb: %s\n", d.Offset, charStr(d.Verb))
	fmt.Fprintf(s.w, "  arg_index: %d, arg_kind: %s\n", d.ArgIndex, d.ArgKind)
}

func (s *PrettySink) writeTruncate(d TruncateData) {
	fmt.Fprintf(s.w, "  offset: %d, position: %d, capacity: %d\n", d.Offset, d.Position, d.Capacity)
}

func (s *PrettySink) writeFormatEnd(d FormatEndData) {
	fmt.Fprintf(s.w, "  bytes_written: %d, dropped: %d\n", d.BytesWritten, d.Dropped)
	fmt.Fprintf(s.w, "  directives: %d, args_used: %d, elapsed_us: %d\n", d.Directives, d.ArgsUsed, d.ElapsedUs)
}

func (s *PrettySink) writeError(d ErrorData) {
	fmt.Fprintf(s.w, "  %s: %s\n", d.Type, d.Message)
	s.writeMap(d.Context)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.w, "  %s: %d\n", k, d[k])
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

func sortedKeys(d map[string]interface{}) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// charStr formats a byte for display: 'X' (0x58) or NUL for 0.
func charStr(c byte) string {
	if c == 0 {
		return "NUL"
	}
	if c >= 32 && c < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", c, c)
	}
	return fmt.Sprintf("0x%02X", c)
}
