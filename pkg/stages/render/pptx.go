package render

import (
	"context"
	"fmt"

	"github.com/user/deckshow/pkg/capture"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
	"github.com/user/deckshow/pkg/ports"
)

// renderPPTX captures every slide state and packages the images into a
// presentation. Speaker notes attach to each state of their slide.
func (s *Stage) renderPPTX(ctx context.Context, drv *capture.Driver, opts export.Options) (pipeline.RenderResult, error) {
	s.progress.Start(len(opts.Pages), "Rendering PPTX")
	defer s.progress.Done()

	captures, err := s.captureSlides(ctx, drv, opts)
	if err != nil {
		return pipeline.RenderResult{}, err
	}
	if len(captures) == 0 {
		return pipeline.RenderResult{}, fmt.Errorf("no slides captured")
	}

	title, author, subject, keywords := deckMeta(opts.Slides)
	spec := ports.DeckSpec{
		LayoutWidth:  opts.Width,
		LayoutHeight: opts.Height,
		Meta: ports.DeckMeta{
			Title:    title,
			Author:   author,
			Subject:  subject,
			Keywords: keywords,
		},
		Slides: make([]ports.DeckSlide, 0, len(captures)),
	}
	for _, c := range captures {
		spec.Slides = append(spec.Slides, ports.DeckSlide{
			PNG:   c.PNG,
			Notes: c.Slide.Note,
		})
	}

	if err := s.deckWriter.Write(opts.Output, spec); err != nil {
		return pipeline.RenderResult{}, fmt.Errorf("write pptx: %w", err)
	}
	return pipeline.RenderResult{OutputPath: opts.Output, Pages: len(captures)}, nil
}
