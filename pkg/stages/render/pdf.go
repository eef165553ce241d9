package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/deckshow/pkg/capture"
	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
	"github.com/user/deckshow/pkg/ports"
)

func (s *Stage) renderPDF(ctx context.Context, drv *capture.Driver, opts export.Options) (pipeline.RenderResult, error) {
	s.progress.Start(len(opts.Pages), "Rendering PDF")
	defer s.progress.Done()

	var pageOf map[int]int
	var pages int
	var err error
	if opts.PerSlide {
		pageOf, pages, err = s.renderPDFPerSlide(ctx, drv, opts)
	} else {
		pageOf, pages, err = s.renderPDFOnePiece(ctx, drv, opts)
	}
	if err != nil {
		return pipeline.RenderResult{}, err
	}

	if err := s.finishPDF(opts, pageOf); err != nil {
		return pipeline.RenderResult{}, err
	}
	return pipeline.RenderResult{OutputPath: opts.Output, Pages: pages}, nil
}

// renderPDFOnePiece prints the whole print route in one browser PDF call.
func (s *Stage) renderPDFOnePiece(ctx context.Context, drv *capture.Driver, opts export.Options) (map[int]int, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := drv.GotoPrintAll(printQuery(opts)); err != nil {
		return nil, 0, err
	}

	pageOf, pages, err := s.printPageMap(drv, opts)
	if err != nil {
		return nil, 0, err
	}

	data, err := drv.Page().PDF(ports.PDFOptions{Width: opts.Width, Height: opts.Height})
	if err != nil {
		return nil, 0, fmt.Errorf("print pdf: %w", err)
	}
	if err := s.fs.WriteFile(opts.Output, data); err != nil {
		return nil, 0, fmt.Errorf("write %s: %w", opts.Output, err)
	}
	s.progress.Advance(len(opts.Pages))
	return pageOf, pages, nil
}

// renderPDFPerSlide prints every slide state into its own one-page PDF and
// merges the parts in order.
func (s *Stage) renderPDFPerSlide(ctx context.Context, drv *capture.Driver, opts export.Options) (map[int]int, int, error) {
	bridge := capture.NewStepBridge(drv.Page())
	pageOf := make(map[int]int, len(opts.Pages))

	var parts []string
	defer func() {
		for _, p := range parts {
			_ = s.fs.Remove(p)
		}
	}()

	page := 0
	for _, no := range opts.Pages {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if err := drv.GotoSlide(no, export.PrintPlain, 0); err != nil {
			return nil, 0, err
		}
		clicksTotal := 0
		if opts.WithClicks {
			clicksTotal = bridge.ClicksTotal()
		}

		for clicks := 0; clicks <= clicksTotal; clicks++ {
			if clicks > 0 {
				if err := drv.GotoSlide(no, export.PrintPlain, clicks); err != nil {
					return nil, 0, err
				}
			}
			data, err := drv.Page().PDF(ports.PDFOptions{Width: opts.Width, Height: opts.Height})
			if err != nil {
				return nil, 0, fmt.Errorf("print slide %d: %w", no, err)
			}
			part, err := s.fs.TempFile("deckshow-slide-*.pdf")
			if err != nil {
				return nil, 0, err
			}
			parts = append(parts, part)
			if err := s.fs.WriteFile(part, data); err != nil {
				return nil, 0, err
			}
			page++
			if clicks == 0 {
				pageOf[no] = page
			}
		}
		s.progress.Advance(1)
	}

	if err := s.pdfTool.Merge(parts, opts.Output); err != nil {
		return nil, 0, fmt.Errorf("merge pdf parts: %w", err)
	}
	return pageOf, page, nil
}

// printPageMap derives the slide-to-page mapping from the print route's
// per-slide containers. Container ids carry "<no>-<clicks>"; the first
// container of a slide marks its page.
func (s *Stage) printPageMap(drv *capture.Driver, opts export.Options) (map[int]int, int, error) {
	els, err := drv.Page().QuerySelectorAll(capture.PrintContainerSelector)
	if err != nil {
		return nil, 0, fmt.Errorf("enumerate print pages: %w", err)
	}
	if len(els) == 0 {
		// Older print layouts render without container wrappers. One page
		// per selected slide then.
		pageOf := make(map[int]int, len(opts.Pages))
		for i, no := range opts.Pages {
			pageOf[no] = i + 1
		}
		return pageOf, len(opts.Pages), nil
	}

	pageOf := make(map[int]int, len(opts.Pages))
	for i, el := range els {
		id, err := el.Attribute("id")
		if err != nil {
			continue
		}
		no, _, ok := parseContainerID(id)
		if !ok {
			continue
		}
		if _, seen := pageOf[no]; !seen {
			pageOf[no] = i + 1
		}
	}
	return pageOf, len(els), nil
}

// parseContainerID splits a print container id of the form "<no>-<clicks>".
func parseContainerID(id string) (no, clicks int, ok bool) {
	head, tail, found := strings.Cut(id, "-")
	if !found {
		n, err := strconv.Atoi(id)
		return n, 0, err == nil
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, 0, false
	}
	c, err := strconv.Atoi(tail)
	if err != nil {
		return 0, 0, false
	}
	return n, c, true
}

// finishPDF applies document metadata and, when requested, the outline.
func (s *Stage) finishPDF(opts export.Options, pageOf map[int]int) error {
	title, author, subject, keywords := deckMeta(opts.Slides)
	meta := ports.PDFMeta{
		Title:    title,
		Author:   author,
		Subject:  subject,
		Keywords: keywords,
	}
	if err := s.pdfTool.SetMetadata(opts.Output, meta); err != nil {
		return fmt.Errorf("set pdf metadata: %w", err)
	}

	if !opts.WithTOC {
		return nil
	}
	toc := deck.BuildTOC(slidesInRange(opts), pageOf)
	outline := toOutline(toc)
	if len(outline) == 0 {
		return nil
	}
	if err := s.pdfTool.AddOutline(opts.Output, outline); err != nil {
		return fmt.Errorf("add pdf outline: %w", err)
	}
	return nil
}

// slidesInRange restricts the deck metadata to the selected pages, in order.
func slidesInRange(opts export.Options) []deck.Slide {
	out := make([]deck.Slide, 0, len(opts.Pages))
	for _, no := range opts.Pages {
		if slide, ok := opts.SlideByIndex(no); ok {
			out = append(out, slide)
		}
	}
	return out
}

// toOutline converts the TOC tree into PDF bookmarks. Hidden slides do not
// get a bookmark; their children attach to the grandparent instead.
func toOutline(entries []*deck.TOCEntry) []ports.OutlineEntry {
	var out []ports.OutlineEntry
	for _, e := range entries {
		kids := toOutline(e.Children)
		if e.Hidden {
			out = append(out, kids...)
			continue
		}
		out = append(out, ports.OutlineEntry{Title: e.Title, Page: e.Page, Children: kids})
	}
	return out
}
