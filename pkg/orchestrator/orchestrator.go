// Package orchestrator coordinates the export pipeline stages.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/ideamans/go-l10n"

	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
	"github.com/user/deckshow/pkg/ports"
)

// Config contains all configuration for one export run.
type Config struct {
	// Opts is the fully resolved export request.
	Opts export.Options

	// Headless controls whether the browser renders offscreen.
	Headless bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Headless: true,
	}
}

// Orchestrator coordinates the browser session and the export stages.
type Orchestrator struct {
	browser     ports.Browser
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult]
	recordStage pipeline.Stage[pipeline.RecordInput, pipeline.RecordResult]
	prober      ports.VideoProber
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	browser ports.Browser,
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult],
	recordStage pipeline.Stage[pipeline.RecordInput, pipeline.RecordResult],
	prober ports.VideoProber,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		browser:     browser,
		renderStage: renderStage,
		recordStage: recordStage,
		prober:      prober,
		logger:      logger,
	}
}

// Run executes one export end to end: launch the browser, open a page sized
// for the format, run the stage, and tear everything down.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	opts := config.Opts

	o.logger.Info(l10n.F("Exporting %s from %s", opts.Format, opts.BaseURL))

	err := o.browser.Launch(ctx, ports.BrowserOptions{
		Headless:       config.Headless,
		ExecutablePath: opts.ExecutablePath,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to launch browser: %s", err))
		return RunResult{}, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if cerr := o.browser.Close(); cerr != nil {
			o.logger.Warn(l10n.F("Browser close failed: %s", cerr))
		}
	}()

	page, err := o.browser.NewPage(pageOptions(opts))
	if err != nil {
		return RunResult{}, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if opts.Format == export.FormatMP4 {
		return o.runRecord(ctx, page, opts)
	}
	return o.runRender(ctx, page, opts)
}

func (o *Orchestrator) runRender(ctx context.Context, page ports.Page, opts export.Options) (RunResult, error) {
	result, err := o.renderStage.Execute(ctx, pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		o.logger.Error(l10n.F("Export failed: %s", err))
		return RunResult{}, fmt.Errorf("render stage: %w", err)
	}
	o.logger.Info(l10n.F("Exported %d pages to %s", result.Pages, result.OutputPath))
	return RunResult{
		OutputPath: result.OutputPath,
		Pages:      result.Pages,
		Warnings:   result.Warnings,
	}, nil
}

func (o *Orchestrator) runRecord(ctx context.Context, page ports.Page, opts export.Options) (RunResult, error) {
	result, err := o.recordStage.Execute(ctx, pipeline.RecordInput{Page: page, Opts: opts})
	if err != nil {
		o.logger.Error(l10n.F("Recording failed: %s", err))
		return RunResult{}, fmt.Errorf("record stage: %w", err)
	}

	durationMs := 0
	if o.prober != nil {
		if d, perr := o.prober.DurationMs(result.OutputPath); perr == nil {
			durationMs = d
		} else {
			o.logger.Warn(l10n.F("Could not probe video duration: %s", perr))
		}
	}

	o.logger.Info(l10n.F("Recorded %d frames over %d steps to %s",
		result.Frames, len(result.Steps), result.OutputPath))
	return RunResult{
		OutputPath:      result.OutputPath,
		Frames:          result.Frames,
		Steps:           result.Steps,
		WallClockMs:     result.WallClockMs,
		VideoDurationMs: durationMs,
		Warnings:        result.Warnings,
	}, nil
}

// pageOptions sizes the page for the export. Recording uses the video frame
// size at device scale 1 so pixels map one-to-one onto encoder input; static
// renders use the slide size at the requested scale. One-piece renders stack
// every slide in a single navigation, so the viewport grows to fit them all.
func pageOptions(opts export.Options) ports.PageOptions {
	if opts.Format == export.FormatMP4 {
		return ports.PageOptions{
			Width:       opts.VideoWidth,
			Height:      opts.VideoHeight,
			DeviceScale: 1,
		}
	}
	height := opts.Height
	if onePiece(opts) {
		if n := len(opts.Pages); n > 1 {
			height *= n
		}
	}
	return ports.PageOptions{
		Width:       opts.Width,
		Height:      height,
		DeviceScale: opts.Scale,
	}
}

// onePiece reports whether the render goes through the stacked print route.
func onePiece(opts export.Options) bool {
	if opts.PerSlide {
		return false
	}
	return opts.Format == export.FormatPDF || opts.Format == export.FormatPNG
}

// RunResult contains the results of one export run.
type RunResult struct {
	OutputPath string

	// Pages is the page or image count of a static export.
	Pages int

	// Frames and Steps describe a video export.
	Frames      int
	Steps       []string
	WallClockMs int
	// VideoDurationMs is the encoded duration read back from the file.
	VideoDurationMs int

	// Warnings collects non-fatal stabilization failures. A non-empty list
	// means the artifact may be incomplete.
	Warnings []string
}
