// Package debug provides tracing for tinyfmt's formatting pipeline.
//
// The debug system follows these principles:
//   - Single switch: TINYFMT_DEBUG=1 or --debug enables everything
//   - Zero overhead: a nil Session turns every Emit into a no-op
//   - Session scoped: each session gets a unique ID so interleaved traces can be separated
//   - Machine parsable: JSON Lines by default, pretty format optional
package debug

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// enabled is the global debug flag - set once at startup.
var enabled uint32

// SetEnabled configures debug mode globally.
// This should be called once at program startup.
func SetEnabled(on bool) {
	if on {
		atomic.StoreUint32(&enabled, 1)
	} else {
		atomic.StoreUint32(&enabled, 0)
	}
}

// Enabled returns true if debug mode is active.
func Enabled() bool {
	return atomic.LoadUint32(&enabled) == 1
}

// InitFromEnv initialises debug settings from environment variables.
// Recognised variables:
//   - TINYFMT_DEBUG=1: Enable debug mode
//   - TINYFMT_DEBUG_PRETTY=1: Use pretty output format (see PrettyFromEnv)
func InitFromEnv() {
	if os.Getenv("TINYFMT_DEBUG") == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether TINYFMT_DEBUG_PRETTY=1 is set.
func PrettyFromEnv() bool {
	return os.Getenv("TINYFMT_DEBUG_PRETTY") == "1"
}

// Session represents a debug session spanning one or more format calls.
// Emit is not synchronised; callers that share a session across goroutines
// must serialise their calls.
type Session struct {
	sessionID string
	sink      Sink
	startTime time.Time
	calls     int
}

// NewSession creates a new debug session with the provided sink.
// Returns nil if debug mode is not enabled.
func NewSession(sink Sink) *Session {
	if !Enabled() {
		return nil
	}
	if sink == nil {
		return nil
	}

	s := &Session{
		sessionID: uuid.NewString(),
		sink:      sink,
		startTime: time.Now(),
	}

	s.Emit("session", "Start", map[string]interface{}{
		"version": "1.0",
	})

	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// NextCall returns a sequence number for a new format call within the session.
func (s *Session) NextCall() int {
	if s == nil {
		return 0
	}
	s.calls++
	return s.calls
}

// Emit sends an event to the sink.
// This is a no-op if the session is nil (fast-path for disabled debug).
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}

	evt := Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.sessionID,
		Phase:     phase,
		Event:     event,
		Data:      data,
	}

	// Write errors are intentionally ignored - debug failures should not break normal operation
	//nolint:errcheck // Debug sink errors are non-critical
	s.sink.Write(evt)
}

// Error records a failure outside the formatting pipeline, such as a device
// that stopped accepting output. A nil err is ignored.
func (s *Session) Error(kind string, err error, context map[string]interface{}) {
	if s == nil || err == nil {
		return
	}
	s.Emit("session", "Error", ErrorData{
		Type:    kind,
		Message: err.Error(),
		Context: context,
	})
}

// Close flushes and closes the debug session.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	elapsed := time.Since(s.startTime).Milliseconds()
	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": elapsed,
		"calls":      int64(s.calls),
	})

	return s.sink.Close()
}

// Event is the base envelope for all debug events.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
