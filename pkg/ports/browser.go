// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// WaitUntil selects the navigation settle condition.
type WaitUntil string

const (
	WaitUntilNetworkIdle      WaitUntil = "networkidle"
	WaitUntilLoad             WaitUntil = "load"
	WaitUntilDOMContentLoaded WaitUntil = "domcontentloaded"
	WaitUntilNone             WaitUntil = "none"
)

// SelectorState is the element state a wait resolves on.
type SelectorState string

const (
	StateAttached SelectorState = "attached"
	StateDetached SelectorState = "detached"
	StateVisible  SelectorState = "visible"
	StateHidden   SelectorState = "hidden"
)

// Rect is a rectangle in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless       bool
	ExecutablePath string // Override browser binary (falls back to installed default)
}

// PageOptions configures a new page's viewport.
type PageOptions struct {
	Width       int
	Height      int
	DeviceScale float64
}

// ScreenshotOptions configures a viewport screenshot.
type ScreenshotOptions struct {
	Clip           *Rect // Capture only this viewport region when set
	OmitBackground bool  // Transparent background for PNG output
}

// PDFOptions configures printing the current page to PDF.
type PDFOptions struct {
	Width  int // Page width in CSS pixels
	Height int // Page height in CSS pixels
}

// Browser abstracts browser automation for slide capture.
type Browser interface {
	// Launch starts the browser with the given options.
	Launch(ctx context.Context, opts BrowserOptions) error

	// NewPage opens a page with the given viewport.
	NewPage(opts PageOptions) (Page, error)

	// Close shuts down the browser and all its pages.
	Close() error
}

// Page abstracts a single browser page.
type Page interface {
	// Goto navigates to url and waits for the given settle condition.
	Goto(url string, waitUntil WaitUntil, timeoutMs float64) error

	// WaitForSelector waits for the first element matching selector to reach state.
	WaitForSelector(selector string, state SelectorState, timeoutMs float64) error

	// Evaluate runs a JavaScript expression in the page and returns its result.
	Evaluate(expression string) (any, error)

	// EmulateColorScheme switches the page's prefers-color-scheme.
	EmulateColorScheme(dark bool) error

	// Screenshot captures the viewport as PNG.
	Screenshot(opts ScreenshotOptions) ([]byte, error)

	// PDF prints the page to a single- or multi-page PDF sized to opts.
	PDF(opts PDFOptions) ([]byte, error)

	// QuerySelector returns the first element matching selector, or nil.
	QuerySelector(selector string) (Element, error)

	// QuerySelectorAll returns all elements matching selector.
	QuerySelectorAll(selector string) ([]Element, error)

	// WaitForFrames waits for all sub-frames to reach their default load state.
	WaitForFrames(timeoutMs float64) error

	// Close closes the page.
	Close() error
}

// Element abstracts a handle to a DOM element.
type Element interface {
	// Attribute returns the value of the named attribute ("" when absent).
	Attribute(name string) (string, error)

	// BoundingBox returns the element's bounding box, or nil when not rendered.
	BoundingBox() (*Rect, error)

	// Screenshot captures the element as PNG.
	Screenshot(omitBackground bool) ([]byte, error)
}
