package record

import (
	"testing"
	"time"

	"github.com/user/deckshow/pkg/ports"
)

func TestExpectedFrames(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		fps     int
		want    int
	}{
		{0, 30, 1}, // at least one frame is always due
		{10 * time.Millisecond, 30, 1},
		{time.Second, 30, 30},
		{500 * time.Millisecond, 30, 15},
		{2 * time.Second, 1, 2},
		{999 * time.Millisecond, 1, 1},
	}
	for _, tt := range tests {
		if got := ExpectedFrames(tt.elapsed, tt.fps); got != tt.want {
			t.Errorf("ExpectedFrames(%v, %d) = %d, want %d", tt.elapsed, tt.fps, got, tt.want)
		}
	}
}

func TestNextCaptureDelay(t *testing.T) {
	fps := 10 // 100ms frame interval

	if got := NextCaptureDelay(0, 0, fps); got != 100*time.Millisecond {
		t.Errorf("delay before first frame = %v, want 100ms", got)
	}
	if got := NextCaptureDelay(3, 350*time.Millisecond, fps); got != 50*time.Millisecond {
		t.Errorf("delay = %v, want 50ms", got)
	}
	// Behind schedule: capture immediately.
	if got := NextCaptureDelay(2, time.Second, fps); got != 0 {
		t.Errorf("overdue delay = %v, want 0", got)
	}
}

func TestInwardRect(t *testing.T) {
	got := InwardRect(ports.Rect{X: 10.4, Y: 20.6, Width: 100.2, Height: 50.9})
	if got == nil {
		t.Fatal("expected rect")
	}
	want := ports.Rect{X: 11, Y: 21, Width: 99, Height: 50}
	if *got != want {
		t.Errorf("InwardRect = %+v, want %+v", *got, want)
	}

	if InwardRect(ports.Rect{X: 0.6, Y: 0, Width: 0.5, Height: 10}) != nil {
		t.Error("degenerate rect should collapse to nil")
	}
}

func TestAdvanceTimeout(t *testing.T) {
	if got := AdvanceTimeout(500); got != 2*time.Second {
		t.Errorf("AdvanceTimeout(500) = %v, want 2s", got)
	}
	if got := AdvanceTimeout(5000); got != 5*time.Second {
		t.Errorf("AdvanceTimeout(5000) = %v, want 5s", got)
	}
	if got := AdvanceTimeout(30000); got != 10*time.Second {
		t.Errorf("AdvanceTimeout(30000) = %v, want 10s", got)
	}
}
