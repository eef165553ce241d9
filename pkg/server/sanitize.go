package server

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w.-]+`)
	dashRuns            = regexp.MustCompile(`-{2,}`)
)

// SanitizeComponent makes a string safe for use inside a filename: every run
// of characters outside [A-Za-z0-9_.-] collapses into one dash, dash runs
// collapse into one dash, and leading or trailing dashes are dropped.
func SanitizeComponent(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// BuildVideoFilename derives the download filename of a video job:
// "<base>-<range>-<fps>fps-<WxH>-<YYYYMMDD-hhmmss>-<job8>.mp4".
func BuildVideoFilename(base, rangeExpr string, fps, width, height int, at time.Time, jobID string) string {
	base = SanitizeComponent(base)
	if base == "" {
		base = "deck"
	}
	rng := SanitizeComponent(rangeExpr)
	if rng == "" {
		rng = "all"
	}
	id := jobID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%dfps-%dx%d-%s-%s.mp4",
		base, rng, fps, width, height, at.Format("20060102-150405"), id)
}
