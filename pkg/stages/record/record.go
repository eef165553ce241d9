package record

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/user/deckshow/pkg/capture"
	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/pipeline"
	"github.com/user/deckshow/pkg/ports"
)

// Stage records an animated playback of the deck into an MP4 file.
type Stage struct {
	encoder  ports.FrameEncoder
	sink     ports.DebugSink
	progress ports.Progress
	logger   ports.Logger
}

// New creates a new record stage.
func New(encoder ports.FrameEncoder, sink ports.DebugSink, progress ports.Progress, logger ports.Logger) *Stage {
	return &Stage{
		encoder:  encoder,
		sink:     sink,
		progress: progress,
		logger:   logger.WithComponent("record"),
	}
}

// stepTrace is one recorded step for the debug trace.
type stepTrace struct {
	Step   string `json:"step"`
	AtMs   int64  `json:"atMs"`
	Frames int    `json:"frames"`
}

// Execute replays the selected slides and streams frames to the encoder.
// The total frame count is unknowable up front, so progress is a spinner.
func (s *Stage) Execute(ctx context.Context, input pipeline.RecordInput) (pipeline.RecordResult, error) {
	opts := input.Opts
	if len(opts.Pages) == 0 {
		return pipeline.RecordResult{}, fmt.Errorf("no slides selected")
	}
	drv := capture.NewDriver(input.Page, opts, s.logger)

	if err := s.encoder.Probe(); err != nil {
		return pipeline.RecordResult{}, err
	}

	s.progress.Start(-1, "Recording MP4")
	defer s.progress.Done()

	startNo := opts.Pages[0]
	if err := drv.GotoPlay(startNo, 0); err != nil {
		return pipeline.RecordResult{}, err
	}

	if opts.VideoMotionScale > 1 {
		if err := capture.ApplyMotionDilation(input.Page, opts.VideoMotionScale); err != nil {
			return pipeline.RecordResult{}, err
		}
		defer capture.CleanupMotionDilation(input.Page)
	}

	clip, err := slideClip(input.Page)
	if err != nil {
		return pipeline.RecordResult{}, err
	}

	err = s.encoder.Start(ctx, ports.FrameEncoderOptions{
		FPS:        opts.VideoFPS,
		Speedup:    opts.Speedup(),
		OutputPath: opts.Output,
	})
	if err != nil {
		return pipeline.RecordResult{}, err
	}

	rec := &recorder{
		page:  input.Page,
		enc:   s.encoder,
		sink:  s.sink,
		clip:  clip,
		fps:   opts.VideoFPS,
		start: time.Now(),
	}

	steps, trace, err := s.replay(ctx, drv, rec, opts)
	if err != nil {
		s.encoder.Abort()
		return pipeline.RecordResult{}, err
	}
	if err := s.encoder.Close(); err != nil {
		return pipeline.RecordResult{}, fmt.Errorf("encode mp4: %w", err)
	}

	if s.sink.Enabled() {
		if data, jerr := json.MarshalIndent(trace, "", "  "); jerr == nil {
			_ = s.sink.SaveStepTrace(data)
		}
	}

	result := pipeline.RecordResult{
		OutputPath:  opts.Output,
		Frames:      rec.written,
		Steps:       steps,
		WallClockMs: int(time.Since(rec.start).Milliseconds()),
		Warnings:    drv.Warnings(),
	}
	return result, nil
}

// replay runs the step loop: settle, dwell, advance, ride out the
// transition, until the deck (or the selected range) runs out of steps.
func (s *Stage) replay(ctx context.Context, drv *capture.Driver, rec *recorder, opts export.Options) ([]string, []stepTrace, error) {
	bridge := capture.NewStepBridge(rec.page)
	endNo := opts.Pages[len(opts.Pages)-1]
	dwell := time.Duration(float64(opts.VideoIntervalMs) * opts.Speedup() * float64(time.Millisecond))
	advanceBudget := AdvanceTimeout(opts.TimeoutMs)

	var steps []string
	var trace []stepTrace

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if err := drv.WaitStepSettled(); err != nil {
			return nil, nil, err
		}
		if err := rec.holdFor(dwell); err != nil {
			return nil, nil, err
		}

		info, err := bridge.Info()
		if err != nil {
			return nil, nil, err
		}
		key := info.Key()
		steps = append(steps, key.String())
		trace = append(trace, stepTrace{
			Step:   key.String(),
			AtMs:   time.Since(rec.start).Milliseconds(),
			Frames: rec.written,
		})
		s.progress.Advance(1)
		s.logger.Debug("Recorded step %s (%d frames)", key, rec.written)

		if !info.HasNext {
			break
		}
		if key.AtOrPast(deck.StepKey{No: endNo, Clicks: info.ClicksTotal}) {
			break
		}

		advanced, err := bridge.Next()
		if err != nil {
			return nil, nil, err
		}
		if !advanced {
			return nil, nil, capture.ErrBridgeMissing
		}
		if err := rec.captureUntilKeyChange(bridge, key, advanceBudget); err != nil {
			return nil, nil, err
		}
		// The new step announced itself; keep filming its animation tail.
		if err := rec.holdFor(drv.TransitionBudget()); err != nil {
			return nil, nil, err
		}
	}

	// Closing frame so the last step never ends on a half-drawn screen.
	if err := rec.captureFrame(); err != nil {
		return nil, nil, err
	}
	return steps, trace, nil
}

// slideClip measures the slide content element for frame clipping. A missing
// element means the whole viewport is recorded.
func slideClip(page ports.Page) (*ports.Rect, error) {
	el, err := page.QuerySelector(capture.SlideContentSelector)
	if err != nil {
		return nil, fmt.Errorf("find slide content: %w", err)
	}
	if el == nil {
		return nil, nil
	}
	box, err := el.BoundingBox()
	if err != nil {
		return nil, fmt.Errorf("measure slide content: %w", err)
	}
	if box == nil {
		return nil, nil
	}
	return InwardRect(*box), nil
}

// recorder streams paced frames into the encoder.
type recorder struct {
	page    ports.Page
	enc     ports.FrameEncoder
	sink    ports.DebugSink
	clip    *ports.Rect
	fps     int
	start   time.Time
	written int
}

// captureFrame screenshots the clip region and writes it, duplicating the
// frame as needed to catch the stream up to wall-clock time.
func (r *recorder) captureFrame() error {
	png, err := r.page.Screenshot(ports.ScreenshotOptions{Clip: r.clip})
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	if r.sink.Enabled() {
		_ = r.sink.SaveFrame(r.written, png)
	}
	expected := ExpectedFrames(time.Since(r.start), r.fps)
	for r.written < expected {
		if err := r.enc.WriteFrame(png); err != nil {
			return err
		}
		r.written++
	}
	return nil
}

// pace sleeps until the next frame slot is due.
func (r *recorder) pace() {
	if d := NextCaptureDelay(r.written, time.Since(r.start), r.fps); d > 0 {
		time.Sleep(d)
	}
}

// holdFor keeps filming the current state for d. Always captures at least
// one frame, even for a zero hold.
func (r *recorder) holdFor(d time.Duration) error {
	deadline := time.Now().Add(d)
	for {
		if err := r.captureFrame(); err != nil {
			return err
		}
		if !time.Now().Before(deadline) {
			return nil
		}
		r.pace()
	}
}

// captureUntilKeyChange films continuously until the playback state leaves
// from, erroring out when the step refuses to take effect in time.
func (r *recorder) captureUntilKeyChange(bridge *capture.StepBridge, from deck.StepKey, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := r.captureFrame(); err != nil {
			return err
		}
		info, err := bridge.Info()
		if err != nil {
			return err
		}
		if info.Key() != from {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("Failed to advance from step %s", from)
		}
		r.pace()
	}
}
