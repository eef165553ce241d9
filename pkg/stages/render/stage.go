// Package render implements the vector and raster export stages: PDF, PNG,
// PPTX, and Markdown.
package render

import (
	"context"
	"fmt"

	"github.com/user/deckshow/pkg/capture"
	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
	"github.com/user/deckshow/pkg/ports"
)

// Stage renders a deck into a vector or raster artifact.
type Stage struct {
	fs         ports.FileSystem
	pdfTool    ports.PDFTool
	deckWriter ports.DeckWriter
	progress   ports.Progress
	logger     ports.Logger
}

// New creates a new render stage.
func New(fs ports.FileSystem, pdfTool ports.PDFTool, deckWriter ports.DeckWriter, progress ports.Progress, logger ports.Logger) *Stage {
	return &Stage{
		fs:         fs,
		pdfTool:    pdfTool,
		deckWriter: deckWriter,
		progress:   progress,
		logger:     logger.WithComponent("render"),
	}
}

// Execute renders the requested format.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	drv := capture.NewDriver(input.Page, input.Opts, s.logger)

	var result pipeline.RenderResult
	var err error
	switch input.Opts.Format {
	case export.FormatPDF:
		result, err = s.renderPDF(ctx, drv, input.Opts)
	case export.FormatPNG:
		result, err = s.renderPNG(ctx, drv, input.Opts)
	case export.FormatPPTX:
		result, err = s.renderPPTX(ctx, drv, input.Opts)
	case export.FormatMarkdown:
		result, err = s.renderMarkdown(ctx, drv, input.Opts)
	default:
		return pipeline.RenderResult{}, fmt.Errorf("render stage cannot produce %q", input.Opts.Format)
	}
	if err != nil {
		return pipeline.RenderResult{}, err
	}

	result.Warnings = drv.Warnings()
	return result, nil
}

// printQuery picks the print rendering mode for the current request.
func printQuery(opts export.Options) export.PrintQuery {
	if opts.WithClicks {
		return export.PrintClicks
	}
	return export.PrintPlain
}

// capturedSlide is one captured reveal state of one slide.
type capturedSlide struct {
	Slide  deck.Slide
	Clicks int
	PNG    []byte
}

// captureSlides visits every selected slide (and click state when enabled)
// and screenshots the slide element.
func (s *Stage) captureSlides(ctx context.Context, drv *capture.Driver, opts export.Options) ([]capturedSlide, error) {
	bridge := capture.NewStepBridge(drv.Page())
	var captures []capturedSlide

	for _, no := range opts.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slide, ok := opts.SlideByIndex(no)
		if !ok {
			slide = deck.Slide{Index: no}
		}

		if err := drv.GotoSlide(no, export.PrintPlain, 0); err != nil {
			return nil, err
		}
		clicksTotal := 0
		if opts.WithClicks {
			clicksTotal = bridge.ClicksTotal()
		}

		for clicks := 0; clicks <= clicksTotal; clicks++ {
			if clicks > 0 {
				if err := drv.GotoSlide(no, export.PrintPlain, clicks); err != nil {
					return nil, err
				}
			}
			png, err := s.screenshotSlide(drv, no, opts.OmitBackground)
			if err != nil {
				return nil, err
			}
			captures = append(captures, capturedSlide{Slide: slide, Clicks: clicks, PNG: png})
		}
		s.progress.Advance(1)
	}

	return captures, nil
}

// screenshotSlide captures the slide root element of slide no.
func (s *Stage) screenshotSlide(drv *capture.Driver, no int, omitBackground bool) ([]byte, error) {
	selector := fmt.Sprintf(`[data-slidev-no="%d"]`, no)
	el, err := drv.Page().QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("find slide %d: %w", no, err)
	}
	if el == nil {
		return nil, fmt.Errorf("slide %d element not found", no)
	}
	png, err := el.Screenshot(omitBackground)
	if err != nil {
		return nil, fmt.Errorf("screenshot slide %d: %w", no, err)
	}
	return png, nil
}

// deckMeta derives document metadata from the deck's first slide.
func deckMeta(slides []deck.Slide) (title, author, subject string, keywords []string) {
	if len(slides) == 0 {
		return "", "", "", nil
	}
	head := slides[0]
	return head.Title,
		head.FrontmatterString(deck.KeyAuthor),
		head.FrontmatterString(deck.KeyInfo),
		head.Keywords()
}
