// Package deck defines the slide deck data model shared by all exporters.
package deck

import (
	"fmt"
	"strings"
)

// Frontmatter keys recognized on slides.
const (
	KeyAuthor    = "author"
	KeyInfo      = "info"
	KeyKeywords  = "keywords"
	KeyHideInToc = "hideInToc"
)

// Slide is an immutable input unit of the deck.
type Slide struct {
	// Index is the 1-based ordinal over the entire deck.
	Index int
	// Title is the slide title ("" when untitled).
	Title string
	// TitleLevel is the heading level of the title (1 when unset).
	TitleLevel int
	// Note is the speaker-notes text.
	Note string
	// Frontmatter carries recognized keys: author, info, keywords, hideInToc.
	Frontmatter map[string]any
}

// HideInToc reports whether the slide is flagged out of the table of contents.
func (s Slide) HideInToc() bool {
	v, ok := s.Frontmatter[KeyHideInToc]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// FrontmatterString returns a string frontmatter value ("" when absent).
func (s Slide) FrontmatterString(key string) string {
	v, ok := s.Frontmatter[key]
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Keywords returns the keywords frontmatter as a list. A scalar string is
// split on commas.
func (s Slide) Keywords() []string {
	v, ok := s.Frontmatter[KeyKeywords]
	if !ok {
		return nil
	}
	switch kw := v.(type) {
	case string:
		if kw == "" {
			return nil
		}
		parts := strings.Split(kw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
		return out
	case []string:
		return kw
	case []any:
		out := make([]string, 0, len(kw))
		for _, item := range kw {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// StepInfo is the in-page playback state.
type StepInfo struct {
	No          int  // Current slide number
	Clicks      int  // Current click index on the slide
	ClicksTotal int  // Total clicks on the slide
	HasNext     bool // Another step exists anywhere in the deck
}

// Key returns the step key of the state.
func (i StepInfo) Key() StepKey {
	return StepKey{No: i.No, Clicks: i.Clicks}
}

// StepKey uniquely identifies a reveal state on a slide.
type StepKey struct {
	No     int
	Clicks int
}

// String renders the key as "<no>.<clicks>".
func (k StepKey) String() string {
	return fmt.Sprintf("%d.%d", k.No, k.Clicks)
}

// AtOrPast reports whether k is at or past other in playback order.
func (k StepKey) AtOrPast(other StepKey) bool {
	if k.No != other.No {
		return k.No > other.No
	}
	return k.Clicks >= other.Clicks
}
