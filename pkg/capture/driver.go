// Package capture drives a slide page through navigation, stabilization, and
// step advancement.
package capture

import (
	"fmt"
	"time"

	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/ports"
)

// Page contract selectors.
const (
	slideLoadingSelector  = ".slidev-slide-loading"
	mermaidContainer      = "#mermaid-rendering-container"
	monacoAriaContainer   = ".monaco-aria-container"
	slideshowRoot         = "#slideshow"
	slideContentSelector  = "#slide-content"
	printContainerClass   = ".print-slide-container"
)

// SlideContentSelector is the element whose bounding box clips MP4 frames.
const SlideContentSelector = slideContentSelector

// PrintContainerSelector matches the per-slide wrappers on the print route.
const PrintContainerSelector = printContainerClass

// Driver navigates a page between slide states and enforces quiescence
// before each capture.
type Driver struct {
	page     ports.Page
	opts     export.Options
	logger   ports.Logger
	warnings []string
	failed   bool
}

// NewDriver creates a driver for one page.
func NewDriver(page ports.Page, opts export.Options, logger ports.Logger) *Driver {
	return &Driver{
		page:   page,
		opts:   opts,
		logger: logger.WithComponent("capture"),
	}
}

// Page returns the driven page.
func (d *Driver) Page() ports.Page {
	return d.page
}

// Warnings returns the non-fatal stabilization failures collected so far.
func (d *Driver) Warnings() []string {
	return d.warnings
}

// Failed reports whether a non-fatal stabilization failure occurred. Callers
// turn this into a non-zero process exit after the export finishes.
func (d *Driver) Failed() bool {
	return d.failed
}

func (d *Driver) warn(msg string) {
	d.failed = true
	d.warnings = append(d.warnings, msg)
	d.logger.Warn("%s", msg)
}

// GotoSlide navigates to a single slide, optionally pinned to a click state.
func (d *Driver) GotoSlide(no int, print export.PrintQuery, clicks int) error {
	url := d.opts.PrintSlideURL(no, print, clicks)
	if err := d.navigate(url); err != nil {
		return err
	}
	selector := fmt.Sprintf(`[data-slidev-no="%d"]`, no)
	if err := d.page.WaitForSelector(selector, ports.StateAttached, float64(d.opts.TimeoutMs)); err != nil {
		return fmt.Errorf("wait slide %d: %w", no, err)
	}
	return d.settle()
}

// GotoPrintAll navigates to the print route that stacks all selected slides.
func (d *Driver) GotoPrintAll(print export.PrintQuery) error {
	if err := d.navigate(d.opts.PrintAllURL(print)); err != nil {
		return err
	}
	if err := d.page.WaitForSelector("body", ports.StateAttached, float64(d.opts.TimeoutMs)); err != nil {
		return fmt.Errorf("wait print body: %w", err)
	}
	return d.settle()
}

// GotoPlay navigates to the embedded playback route used by the recorder.
func (d *Driver) GotoPlay(no, clicks int) error {
	url := d.opts.PlayURL(no, clicks)
	if err := d.navigate(url); err != nil {
		return err
	}
	selector := fmt.Sprintf(`[data-slidev-no="%d"]`, no)
	if err := d.page.WaitForSelector(selector, ports.StateAttached, float64(d.opts.TimeoutMs)); err != nil {
		return fmt.Errorf("wait slide %d: %w", no, err)
	}
	return d.settle()
}

func (d *Driver) navigate(url string) error {
	d.logger.Debug("Navigating to %s", url)
	if err := d.page.Goto(url, d.opts.WaitUntil, float64(d.opts.TimeoutMs)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	// Color scheme resets on navigation, so re-assert it every time.
	if err := d.page.EmulateColorScheme(d.opts.Dark); err != nil {
		return fmt.Errorf("set color scheme: %w", err)
	}
	return nil
}

func (d *Driver) settle() error {
	if d.opts.WaitMs > 0 {
		time.Sleep(time.Duration(d.opts.WaitMs) * time.Millisecond)
	}
	return d.WaitStable()
}
