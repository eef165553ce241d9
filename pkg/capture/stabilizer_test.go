package capture

import (
	"testing"
	"time"
)

func TestParseCSSTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"300ms", 300 * time.Millisecond},
		{"0.5s", 500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"450", 450 * time.Millisecond},
		{" 120ms ", 120 * time.Millisecond},
		{"oops", 0},
		{"-5s", 0},
	}

	for _, tt := range tests {
		if got := ParseCSSTime(tt.in); got != tt.want {
			t.Errorf("ParseCSSTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampTransition(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		// The 300ms pad applies before clamping.
		{0, 300 * time.Millisecond},
		{200 * time.Millisecond, 500 * time.Millisecond},
		{5 * time.Second, 3 * time.Second},
	}
	for _, tt := range tests {
		if got := ClampTransition(tt.in); got != tt.want {
			t.Errorf("ClampTransition(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
