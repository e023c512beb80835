// Package renderer turns parsed format tokens and tagged arguments into
// bytes written through a sink.
package renderer

import "github.com/ryanlewis/tinyfmt/internal/debug"

// Options contains rendering options passed from the main package
type Options struct {
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}
