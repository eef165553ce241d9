// Package pptxwriter packages captured slide images into a PPTX file.
//
// The generated package is the minimal Office Open XML shape PowerPoint
// accepts: one slide master, one layout named after the slide canvas, one
// picture-filled slide per capture, and a notes slide wherever speaker notes
// exist.
package pptxwriter

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/user/deckshow/pkg/ports"
)

// emuPerPixel converts 96dpi CSS pixels to English Metric Units.
const emuPerPixel = 9525

// maxScaleFactor caps embedded image resolution relative to the layout size.
// Captures at device scale 2 pass through untouched; anything larger is
// downscaled to keep deck size sane.
const maxScaleFactor = 2

// Writer implements ports.DeckWriter by emitting an OOXML package.
type Writer struct{}

// New creates a new Writer.
func New() *Writer {
	return &Writer{}
}

// Write writes the deck to path.
func (w *Writer) Write(path string, spec ports.DeckSpec) error {
	if len(spec.Slides) == 0 {
		return fmt.Errorf("pptx: deck has no slides")
	}
	if spec.LayoutWidth <= 0 || spec.LayoutHeight <= 0 {
		return fmt.Errorf("pptx: invalid layout %dx%d", spec.LayoutWidth, spec.LayoutHeight)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	archive := zip.NewWriter(file)
	if err := w.writeParts(archive, spec); err != nil {
		_ = archive.Close()
		return err
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("pptx: finalize package: %w", err)
	}
	return nil
}

func (w *Writer) writeParts(archive *zip.Writer, spec ports.DeckSpec) error {
	n := len(spec.Slides)
	cx := spec.LayoutWidth * emuPerPixel
	cy := spec.LayoutHeight * emuPerPixel
	layoutName := fmt.Sprintf("%dx%d", spec.LayoutWidth, spec.LayoutHeight)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypes(spec)},
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", coreProps(spec.Meta)},
		{"docProps/app.xml", appProps(n)},
		{"ppt/presentation.xml", presentation(spec, cx, cy)},
		{"ppt/_rels/presentation.xml.rels", presentationRels(spec)},
		{"ppt/theme/theme1.xml", themeXML("Office Theme")},
		{"ppt/theme/theme2.xml", themeXML("Notes Theme")},
		{"ppt/slideMasters/slideMaster1.xml", slideMaster},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayout(layoutName)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/notesMasters/notesMaster1.xml", notesMaster},
		{"ppt/notesMasters/_rels/notesMaster1.xml.rels", notesMasterRels},
	}
	for _, part := range parts {
		if err := writeEntry(archive, part.name, []byte(part.data)); err != nil {
			return err
		}
	}

	for i, slide := range spec.Slides {
		no := i + 1

		img, err := normalizeImage(slide.PNG, spec.LayoutWidth)
		if err != nil {
			return fmt.Errorf("pptx: slide %d image: %w", no, err)
		}
		if err := writeEntry(archive, fmt.Sprintf("ppt/media/image%d.png", no), img); err != nil {
			return err
		}

		if err := writeEntry(archive, fmt.Sprintf("ppt/slides/slide%d.xml", no),
			[]byte(slideXML(no, cx, cy))); err != nil {
			return err
		}
		if err := writeEntry(archive, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", no),
			[]byte(slideRels(no, slide.Notes != ""))); err != nil {
			return err
		}

		if slide.Notes != "" {
			if err := writeEntry(archive, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", no),
				[]byte(notesSlideXML(slide.Notes))); err != nil {
				return err
			}
			if err := writeEntry(archive, fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", no),
				[]byte(notesSlideRels(no))); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeEntry(archive *zip.Writer, name string, data []byte) error {
	entry, err := archive.Create(name)
	if err != nil {
		return fmt.Errorf("pptx: create %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("pptx: write %s: %w", name, err)
	}
	return nil
}

// normalizeImage downscales a capture whose pixel width exceeds the layout
// by more than maxScaleFactor. Everything else passes through untouched.
func normalizeImage(data []byte, layoutWidth int) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	maxWidth := layoutWidth * maxScaleFactor
	if cfg.Width <= maxWidth {
		return data, nil
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	height := cfg.Height * maxWidth / cfg.Width
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escape(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace(s)
}

// Ensure Writer implements ports.DeckWriter
var _ ports.DeckWriter = (*Writer)(nil)
