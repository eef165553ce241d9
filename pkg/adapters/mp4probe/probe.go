// Package mp4probe reads metadata from encoded MP4 files.
package mp4probe

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/deckshow/pkg/ports"
)

// Prober implements ports.VideoProber by parsing the MP4 container.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// DurationMs returns the movie duration in milliseconds from the mvhd box.
func (p *Prober) DurationMs(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open mp4: %w", err)
	}
	defer file.Close()

	mp4File, err := mp4.DecodeFile(file)
	if err != nil {
		return 0, fmt.Errorf("decode mp4: %w", err)
	}
	if mp4File.Moov == nil || mp4File.Moov.Mvhd == nil {
		return 0, fmt.Errorf("mp4 has no movie header")
	}

	mvhd := mp4File.Moov.Mvhd
	if mvhd.Timescale == 0 {
		return 0, fmt.Errorf("mp4 has zero timescale")
	}
	return int(mvhd.Duration * 1000 / uint64(mvhd.Timescale)), nil
}

// Ensure Prober implements ports.VideoProber
var _ ports.VideoProber = (*Prober)(nil)
