// Package nullsink provides a disabled debug sink.
package nullsink

import (
	"github.com/user/deckshow/pkg/ports"
)

// Sink implements ports.DebugSink by discarding everything.
type Sink struct{}

// New creates a disabled sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false.
func (s *Sink) Enabled() bool {
	return false
}

// SaveFrame discards the frame.
func (s *Sink) SaveFrame(index int, png []byte) error {
	return nil
}

// SaveStepTrace discards the trace.
func (s *Sink) SaveStepTrace(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
