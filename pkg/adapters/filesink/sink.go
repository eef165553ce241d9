// Package filesink saves debug output to a directory.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/user/deckshow/pkg/ports"
)

// Sink implements ports.DebugSink by writing files under a directory.
type Sink struct {
	dir string
	fs  ports.FileSystem
}

// New creates a sink writing under dir.
func New(dir string, fs ports.FileSystem) *Sink {
	return &Sink{dir: dir, fs: fs}
}

// Enabled returns true.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrame saves a raw captured PNG frame.
func (s *Sink) SaveFrame(index int, png []byte) error {
	return s.fs.WriteFile(filepath.Join(s.dir, "frames", fmt.Sprintf("frame_%06d.png", index)), png)
}

// SaveStepTrace saves the recorder's step trace as JSON.
func (s *Sink) SaveStepTrace(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.dir, "steps.json"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
