package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Deck", "My-Deck"},
		{"a/b\\c:d", "a-b-c-d"},
		{"--weird--", "weird"},
		{"v1.2_final", "v1.2_final"},
		{"", ""},
		// Safe dashes next to replaced runs must not survive as "--".
		{"My Deck - Final", "My-Deck-Final"},
		{"a -- b", "a-b"},
		{"pre--post", "pre-post"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeComponent(tt.in), "input %q", tt.in)
	}

	// A fully non-ASCII title leaves nothing after the trim; the filename
	// builder falls back to "deck" in that case.
	assert.Equal(t, "", SanitizeComponent("日本語 タイトル"))
}

func TestBuildVideoFilename(t *testing.T) {
	at := time.Date(2026, 8, 24, 13, 5, 7, 0, time.UTC)
	got := BuildVideoFilename("My Deck", "1-3", 30, 1920, 1080, at, "0f2a9c44-aaaa-bbbb-cccc-000000000000")
	assert.Equal(t, "My-Deck-1-3-30fps-1920x1080-20260824-130507-0f2a9c44.mp4", got)
}

func TestBuildVideoFilename_Defaults(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := BuildVideoFilename("", "", 30, 1280, 720, at, "short")
	assert.Equal(t, "deck-all-30fps-1280x720-20260102-030405-short.mp4", got)
}
