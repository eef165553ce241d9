package pwbrowser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/user/deckshow/pkg/ports"
)

// Page implements ports.Page over a Playwright page.
type Page struct {
	page playwright.Page
	ctx  playwright.BrowserContext
}

// Goto navigates to url and waits for the given settle condition.
func (p *Page) Goto(url string, waitUntil ports.WaitUntil, timeoutMs float64) error {
	opts := playwright.PageGotoOptions{
		Timeout: playwright.Float(timeoutMs),
	}
	switch waitUntil {
	case ports.WaitUntilNetworkIdle:
		opts.WaitUntil = playwright.WaitUntilStateNetworkidle
	case ports.WaitUntilLoad:
		opts.WaitUntil = playwright.WaitUntilStateLoad
	case ports.WaitUntilDOMContentLoaded:
		opts.WaitUntil = playwright.WaitUntilStateDomcontentloaded
	case ports.WaitUntilNone:
		// Resolve as soon as the navigation is committed.
		opts.WaitUntil = playwright.WaitUntilStateCommit
	}
	if _, err := p.page.Goto(url, opts); err != nil {
		return err
	}
	return nil
}

// WaitForSelector waits for the first element matching selector to reach state.
func (p *Page) WaitForSelector(selector string, state ports.SelectorState, timeoutMs float64) error {
	opts := playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(timeoutMs),
	}
	switch state {
	case ports.StateAttached:
		opts.State = playwright.WaitForSelectorStateAttached
	case ports.StateDetached:
		opts.State = playwright.WaitForSelectorStateDetached
	case ports.StateVisible:
		opts.State = playwright.WaitForSelectorStateVisible
	case ports.StateHidden:
		opts.State = playwright.WaitForSelectorStateHidden
	}
	_, err := p.page.WaitForSelector(selector, opts)
	return err
}

// Evaluate runs a JavaScript expression in the page. Promises are awaited.
func (p *Page) Evaluate(expression string) (any, error) {
	return p.page.Evaluate(expression)
}

// EmulateColorScheme switches the page's prefers-color-scheme.
func (p *Page) EmulateColorScheme(dark bool) error {
	scheme := playwright.ColorSchemeLight
	if dark {
		scheme = playwright.ColorSchemeDark
	}
	return p.page.EmulateMedia(playwright.PageEmulateMediaOptions{
		ColorScheme: scheme,
	})
}

// Screenshot captures the viewport as PNG.
func (p *Page) Screenshot(opts ports.ScreenshotOptions) ([]byte, error) {
	pwOpts := playwright.PageScreenshotOptions{
		Type:           playwright.ScreenshotTypePng,
		OmitBackground: playwright.Bool(opts.OmitBackground),
	}
	if opts.Clip != nil {
		pwOpts.Clip = &playwright.Rect{
			X:      opts.Clip.X,
			Y:      opts.Clip.Y,
			Width:  opts.Clip.Width,
			Height: opts.Clip.Height,
		}
	}
	return p.page.Screenshot(pwOpts)
}

// PDF prints the page to PDF sized to opts.
func (p *Page) PDF(opts ports.PDFOptions) ([]byte, error) {
	return p.page.PDF(playwright.PagePdfOptions{
		Width:           playwright.String(fmt.Sprintf("%dpx", opts.Width)),
		Height:          playwright.String(fmt.Sprintf("%dpx", opts.Height)),
		PrintBackground: playwright.Bool(true),
	})
}

// QuerySelector returns the first element matching selector, or nil.
func (p *Page) QuerySelector(selector string) (ports.Element, error) {
	handle, err := p.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return &element{handle: handle}, nil
}

// QuerySelectorAll returns all elements matching selector.
func (p *Page) QuerySelectorAll(selector string) ([]ports.Element, error) {
	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]ports.Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &element{handle: h})
	}
	return elements, nil
}

// WaitForFrames waits for all sub-frames to reach their default load state.
func (p *Page) WaitForFrames(timeoutMs float64) error {
	for _, frame := range p.page.Frames() {
		if err := frame.WaitForLoadState(playwright.FrameWaitForLoadStateOptions{
			Timeout: playwright.Float(timeoutMs),
		}); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the page and its browser context.
func (p *Page) Close() error {
	if err := p.page.Close(); err != nil {
		return err
	}
	return p.ctx.Close()
}

// element implements ports.Element over a Playwright element handle.
type element struct {
	handle playwright.ElementHandle
}

func (e *element) Attribute(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (e *element) BoundingBox() (*ports.Rect, error) {
	box, err := e.handle.BoundingBox()
	if err != nil || box == nil {
		return nil, err
	}
	return &ports.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *element) Screenshot(omitBackground bool) ([]byte, error) {
	return e.handle.Screenshot(playwright.ElementHandleScreenshotOptions{
		Type:           playwright.ScreenshotTypePng,
		OmitBackground: playwright.Bool(omitBackground),
	})
}

// Ensure Page implements ports.Page
var _ ports.Page = (*Page)(nil)
