package pptxwriter

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/deckshow/pkg/ports"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeTestDeck(t *testing.T, spec ports.DeckSpec) map[string][]byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := New().Write(path, spec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer reader.Close()

	entries := make(map[string][]byte)
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		entries[f.Name] = data
	}
	return entries
}

func TestWrite_PackageShape(t *testing.T) {
	spec := ports.DeckSpec{
		LayoutWidth:  800,
		LayoutHeight: 450,
		Meta: ports.DeckMeta{
			Title:    "Q&A <Session>",
			Author:   "X",
			Subject:  "About",
			Keywords: []string{"go", "slides"},
		},
		Slides: []ports.DeckSlide{
			{PNG: testPNG(t, 800, 450)},
			{PNG: testPNG(t, 800, 450), Notes: "say hi\nthen wait"},
		},
	}
	entries := writeTestDeck(t, spec)

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/notesMasters/notesMaster1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/media/image1.png",
		"ppt/media/image2.png",
		"ppt/notesSlides/notesSlide2.xml",
	}
	for _, name := range required {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing package part %s", name)
		}
	}

	if _, ok := entries["ppt/notesSlides/notesSlide1.xml"]; ok {
		t.Error("slide without notes must not get a notes slide")
	}

	layout := string(entries["ppt/slideLayouts/slideLayout1.xml"])
	if !strings.Contains(layout, `name="800x450"`) {
		t.Errorf("layout should be named after the canvas, got %s", layout)
	}

	core := string(entries["docProps/core.xml"])
	if !strings.Contains(core, "Q&amp;A &lt;Session&gt;") {
		t.Errorf("title should be XML-escaped, got %s", core)
	}
	if !strings.Contains(core, "go, slides") {
		t.Errorf("keywords missing from core props: %s", core)
	}

	notes := string(entries["ppt/notesSlides/notesSlide2.xml"])
	if !strings.Contains(notes, "say hi") || !strings.Contains(notes, "then wait") {
		t.Errorf("notes lines missing: %s", notes)
	}
}

func TestWrite_DownscalesOversizedCaptures(t *testing.T) {
	spec := ports.DeckSpec{
		LayoutWidth:  100,
		LayoutHeight: 50,
		Slides: []ports.DeckSlide{
			// 3x the layout width: beyond the embedded resolution cap.
			{PNG: testPNG(t, 300, 150)},
		},
	}
	entries := writeTestDeck(t, spec)

	cfg, err := png.DecodeConfig(bytes.NewReader(entries["ppt/media/image1.png"]))
	if err != nil {
		t.Fatalf("decode embedded image: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("embedded image = %dx%d, want 200x100", cfg.Width, cfg.Height)
	}
}

func TestWrite_RejectsEmptyDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	err := New().Write(path, ports.DeckSpec{LayoutWidth: 800, LayoutHeight: 450})
	if err == nil {
		t.Fatal("expected error for empty deck")
	}
}
