package ports

// DeckMeta is document-level metadata for a packaged deck.
type DeckMeta struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

// DeckSlide is one slide of a packaged deck: a full-bleed background image
// plus optional speaker notes.
type DeckSlide struct {
	PNG   []byte
	Notes string
}

// DeckSpec describes a complete image-per-slide deck.
type DeckSpec struct {
	// LayoutWidth/LayoutHeight are the slide canvas dimensions in CSS pixels.
	// The layout is named "<width>x<height>".
	LayoutWidth  int
	LayoutHeight int
	Meta         DeckMeta
	Slides       []DeckSlide
}

// DeckWriter packages captured slide images into a presentation file.
type DeckWriter interface {
	// Write writes the deck to path.
	Write(path string, spec DeckSpec) error
}
