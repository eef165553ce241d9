// Package record implements the MP4 recording stage: it replays the deck
// step by step and streams paced PNG frames into an external encoder.
package record

import (
	"math"
	"time"

	"github.com/user/deckshow/pkg/ports"
)

// ExpectedFrames returns how many frames must exist after elapsed wall-clock
// time to keep the stream at fps. At least one frame is always due.
func ExpectedFrames(elapsed time.Duration, fps int) int {
	n := int(elapsed.Milliseconds() * int64(fps) / 1000)
	if n < 1 {
		return 1
	}
	return n
}

// NextCaptureDelay returns how long to sleep before the next capture so frame
// written+1 lands on its slot. Zero means the capture is already overdue.
func NextCaptureDelay(written int, elapsed time.Duration, fps int) time.Duration {
	due := time.Duration(written+1) * time.Second / time.Duration(fps)
	if d := due - elapsed; d > 0 {
		return d
	}
	return 0
}

// InwardRect rounds a bounding box inward to whole pixels so the capture
// never includes sub-pixel bleed from neighboring elements. Returns nil when
// nothing remains.
func InwardRect(b ports.Rect) *ports.Rect {
	x := math.Ceil(b.X)
	y := math.Ceil(b.Y)
	w := math.Floor(b.X+b.Width) - x
	h := math.Floor(b.Y+b.Height) - y
	if w <= 0 || h <= 0 {
		return nil
	}
	return &ports.Rect{X: x, Y: y, Width: w, Height: h}
}

// AdvanceTimeout is the budget for one step transition to take effect,
// derived from the navigation timeout but kept within sane bounds.
func AdvanceTimeout(timeoutMs int) time.Duration {
	d := time.Duration(timeoutMs) * time.Millisecond
	if d < 2*time.Second {
		return 2 * time.Second
	}
	if d > 10*time.Second {
		return 10 * time.Second
	}
	return d
}
