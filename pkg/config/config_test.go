package config

import (
	"testing"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
slides:
  - title: Welcome
    titleLevel: 1
    note: say hi
    frontmatter:
      author: X
      keywords: go, slides
  - title: Details
    titleLevel: 2
  - {}
`)
	slides, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("len = %d, want 3", len(slides))
	}

	first := slides[0]
	if first.Index != 1 || first.Title != "Welcome" || first.Note != "say hi" {
		t.Errorf("first = %+v", first)
	}
	if first.FrontmatterString("author") != "X" {
		t.Errorf("author = %q", first.FrontmatterString("author"))
	}
	if kw := first.Keywords(); len(kw) != 2 || kw[0] != "go" {
		t.Errorf("keywords = %v", kw)
	}

	if slides[1].Index != 2 || slides[1].TitleLevel != 2 {
		t.Errorf("second = %+v", slides[1])
	}
	// An empty entry still occupies its slot with a default title level.
	if slides[2].Index != 3 || slides[2].TitleLevel != 1 {
		t.Errorf("third = %+v", slides[2])
	}
}

func TestParseManifest_Empty(t *testing.T) {
	if _, err := ParseManifest([]byte("slides: []")); err == nil {
		t.Error("expected error for empty manifest")
	}
	if _, err := ParseManifest([]byte("slides: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestPlaceholderSlides(t *testing.T) {
	slides := PlaceholderSlides(3)
	if len(slides) != 3 {
		t.Fatalf("len = %d", len(slides))
	}
	for i, s := range slides {
		if s.Index != i+1 || s.Title != "" || s.TitleLevel != 1 {
			t.Errorf("slide %d = %+v", i, s)
		}
	}
}
