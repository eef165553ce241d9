package mocks

import (
	"sync"

	"github.com/user/deckshow/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Frames    map[int][]byte
	StepTrace []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Frames:  make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveFrame(index int, png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = png
	return nil
}

func (m *DebugSink) SaveStepTrace(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StepTrace = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
