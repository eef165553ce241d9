// Package pwbrowser provides a browser implementation using playwright-go.
package pwbrowser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/user/deckshow/pkg/ports"
)

// Browser implements ports.Browser using Playwright's bundled Chromium.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Launch starts the browser with the given options.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
	}); err != nil {
		return fmt.Errorf("install playwright browsers: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	b.pw = pw

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			// Stabilize text rendering across environments
			"--disable-dev-shm-usage",
			"--font-render-hinting=none",
			"--mute-audio",
		},
	}
	if path := ResolveExecutablePath(opts.ExecutablePath); path != "" {
		launchOpts.ExecutablePath = playwright.String(path)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		b.pw = nil
		return fmt.Errorf("launch chromium: %w", err)
	}
	b.browser = browser

	return nil
}

// NewPage opens a page with the given viewport.
func (b *Browser) NewPage(opts ports.PageOptions) (ports.Page, error) {
	if b.browser == nil {
		return nil, fmt.Errorf("browser not launched")
	}

	scale := opts.DeviceScale
	if scale <= 0 {
		scale = 1
	}
	browserCtx, err := b.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Width,
			Height: opts.Height,
		},
		DeviceScaleFactor: playwright.Float(scale),
	})
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	return &Page{page: page, ctx: browserCtx}, nil
}

// Close shuts down the browser and the Playwright driver.
func (b *Browser) Close() error {
	var firstErr error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			firstErr = err
		}
		b.browser = nil
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.pw = nil
	}
	return firstErr
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)
