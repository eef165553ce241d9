package render

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/user/deckshow/pkg/capture"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
)

func (s *Stage) renderPNG(ctx context.Context, drv *capture.Driver, opts export.Options) (pipeline.RenderResult, error) {
	// The output directory is recreated so stale images from a previous run
	// never mix with the new set.
	if err := s.fs.RemoveAll(opts.Output); err != nil {
		return pipeline.RenderResult{}, fmt.Errorf("clear %s: %w", opts.Output, err)
	}
	if err := s.fs.MkdirAll(opts.Output); err != nil {
		return pipeline.RenderResult{}, fmt.Errorf("create %s: %w", opts.Output, err)
	}

	s.progress.Start(len(opts.Pages), "Rendering PNGs")
	defer s.progress.Done()

	if opts.PerSlide {
		return s.renderPNGPerSlide(ctx, drv, opts)
	}
	return s.renderPNGOnePiece(ctx, drv, opts)
}

// renderPNGOnePiece screenshots every per-slide container of the print route.
func (s *Stage) renderPNGOnePiece(ctx context.Context, drv *capture.Driver, opts export.Options) (pipeline.RenderResult, error) {
	if err := drv.GotoPrintAll(printQuery(opts)); err != nil {
		return pipeline.RenderResult{}, err
	}
	els, err := drv.Page().QuerySelectorAll(capture.PrintContainerSelector)
	if err != nil {
		return pipeline.RenderResult{}, fmt.Errorf("enumerate print pages: %w", err)
	}
	if len(els) == 0 {
		return pipeline.RenderResult{}, fmt.Errorf("no printable slides found at %s", opts.BaseURL)
	}

	written := 0
	for _, el := range els {
		if err := ctx.Err(); err != nil {
			return pipeline.RenderResult{}, err
		}
		id, err := el.Attribute("id")
		if err != nil || id == "" {
			id = strconv.Itoa(written + 1)
		}
		png, err := el.Screenshot(opts.OmitBackground)
		if err != nil {
			return pipeline.RenderResult{}, fmt.Errorf("screenshot page %s: %w", id, err)
		}
		name := containerPNGName(id, opts.WithClicks)
		if err := s.fs.WriteFile(filepath.Join(opts.Output, name), png); err != nil {
			return pipeline.RenderResult{}, err
		}
		written++
	}
	s.progress.Advance(len(opts.Pages))
	return pipeline.RenderResult{OutputPath: opts.Output, Pages: written}, nil
}

// renderPNGPerSlide navigates each slide individually and writes one image
// per captured state.
func (s *Stage) renderPNGPerSlide(ctx context.Context, drv *capture.Driver, opts export.Options) (pipeline.RenderResult, error) {
	captures, err := s.captureSlides(ctx, drv, opts)
	if err != nil {
		return pipeline.RenderResult{}, err
	}
	for _, c := range captures {
		name := slidePNGName(c.Slide.Index, c.Clicks, opts.WithClicks)
		if err := s.fs.WriteFile(filepath.Join(opts.Output, name), c.PNG); err != nil {
			return pipeline.RenderResult{}, err
		}
	}
	return pipeline.RenderResult{OutputPath: opts.Output, Pages: len(captures)}, nil
}

// containerPNGName names a one-piece capture. Click-aware runs keep the full
// container id "<no>-<clicks>"; plain runs use the slide number alone.
func containerPNGName(id string, withClicks bool) string {
	if withClicks {
		return id + ".png"
	}
	if no, _, ok := parseContainerID(id); ok {
		return strconv.Itoa(no) + ".png"
	}
	return id + ".png"
}

// slidePNGName names a per-slide capture: "01.png", or "01-2.png" with clicks.
func slidePNGName(no, clicks int, withClicks bool) string {
	if withClicks {
		return fmt.Sprintf("%02d-%d.png", no, clicks)
	}
	return fmt.Sprintf("%02d.png", no)
}
