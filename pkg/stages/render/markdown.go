package render

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/deckshow/pkg/capture"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
)

// renderMarkdown writes one image per captured state next to the output file
// and a markdown document embedding them, one section per slide.
func (s *Stage) renderMarkdown(ctx context.Context, drv *capture.Driver, opts export.Options) (pipeline.RenderResult, error) {
	s.progress.Start(len(opts.Pages), "Rendering Markdown")
	defer s.progress.Done()

	captures, err := s.captureSlides(ctx, drv, opts)
	if err != nil {
		return pipeline.RenderResult{}, err
	}

	dir := filepath.Dir(opts.Output)
	if err := s.fs.MkdirAll(dir); err != nil {
		return pipeline.RenderResult{}, fmt.Errorf("create %s: %w", dir, err)
	}

	var sections []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			sections = append(sections, strings.Join(current, ""))
			current = nil
		}
	}

	lastNo := -1
	for _, c := range captures {
		if c.Slide.Index != lastNo {
			flush()
			lastNo = c.Slide.Index
		}

		name := slidePNGName(c.Slide.Index, c.Clicks, opts.WithClicks)
		if err := s.fs.WriteFile(filepath.Join(dir, name), c.PNG); err != nil {
			return pipeline.RenderResult{}, err
		}

		title := c.Slide.Title
		if title == "" {
			title = fmt.Sprintf("Slide %d", c.Slide.Index)
		}
		current = append(current, fmt.Sprintf("![%s](./%s)\n", title, name))
		if c.Clicks == slideLastClicks(captures, c.Slide.Index) && c.Slide.Note != "" {
			current = append(current, "\n"+strings.TrimSpace(c.Slide.Note)+"\n")
		}
	}
	flush()

	content := strings.Join(sections, "\n---\n\n")
	if err := s.fs.WriteFile(opts.Output, []byte(content)); err != nil {
		return pipeline.RenderResult{}, err
	}
	return pipeline.RenderResult{OutputPath: opts.Output, Pages: len(captures)}, nil
}

// slideLastClicks returns the highest captured click index of slide no.
func slideLastClicks(captures []capturedSlide, no int) int {
	last := 0
	for _, c := range captures {
		if c.Slide.Index == no && c.Clicks > last {
			last = c.Clicks
		}
	}
	return last
}
