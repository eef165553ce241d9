// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/user/deckshow/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
type Browser struct {
	LaunchFunc  func(ctx context.Context, opts ports.BrowserOptions) error
	NewPageFunc func(opts ports.PageOptions) (ports.Page, error)
	CloseFunc   func() error
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) NewPage(opts ports.PageOptions) (ports.Page, error) {
	if m.NewPageFunc != nil {
		return m.NewPageFunc(opts)
	}
	return &Page{}, nil
}

func (m *Browser) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Page is a mock implementation of ports.Page.
type Page struct {
	GotoFunc               func(url string, waitUntil ports.WaitUntil, timeoutMs float64) error
	WaitForSelectorFunc    func(selector string, state ports.SelectorState, timeoutMs float64) error
	EvaluateFunc           func(expression string) (any, error)
	EmulateColorSchemeFunc func(dark bool) error
	ScreenshotFunc         func(opts ports.ScreenshotOptions) ([]byte, error)
	PDFFunc                func(opts ports.PDFOptions) ([]byte, error)
	QuerySelectorFunc      func(selector string) (ports.Element, error)
	QuerySelectorAllFunc   func(selector string) ([]ports.Element, error)
	WaitForFramesFunc      func(timeoutMs float64) error
	CloseFunc              func() error
}

func (m *Page) Goto(url string, waitUntil ports.WaitUntil, timeoutMs float64) error {
	if m.GotoFunc != nil {
		return m.GotoFunc(url, waitUntil, timeoutMs)
	}
	return nil
}

func (m *Page) WaitForSelector(selector string, state ports.SelectorState, timeoutMs float64) error {
	if m.WaitForSelectorFunc != nil {
		return m.WaitForSelectorFunc(selector, state, timeoutMs)
	}
	return nil
}

func (m *Page) Evaluate(expression string) (any, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(expression)
	}
	return nil, nil
}

func (m *Page) EmulateColorScheme(dark bool) error {
	if m.EmulateColorSchemeFunc != nil {
		return m.EmulateColorSchemeFunc(dark)
	}
	return nil
}

func (m *Page) Screenshot(opts ports.ScreenshotOptions) ([]byte, error) {
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc(opts)
	}
	return []byte("png"), nil
}

func (m *Page) PDF(opts ports.PDFOptions) ([]byte, error) {
	if m.PDFFunc != nil {
		return m.PDFFunc(opts)
	}
	return []byte("%PDF"), nil
}

func (m *Page) QuerySelector(selector string) (ports.Element, error) {
	if m.QuerySelectorFunc != nil {
		return m.QuerySelectorFunc(selector)
	}
	return &Element{}, nil
}

func (m *Page) QuerySelectorAll(selector string) ([]ports.Element, error) {
	if m.QuerySelectorAllFunc != nil {
		return m.QuerySelectorAllFunc(selector)
	}
	return nil, nil
}

func (m *Page) WaitForFrames(timeoutMs float64) error {
	if m.WaitForFramesFunc != nil {
		return m.WaitForFramesFunc(timeoutMs)
	}
	return nil
}

func (m *Page) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure Page implements ports.Page
var _ ports.Page = (*Page)(nil)

// Element is a mock implementation of ports.Element.
type Element struct {
	AttributeFunc   func(name string) (string, error)
	BoundingBoxFunc func() (*ports.Rect, error)
	ScreenshotFunc  func(omitBackground bool) ([]byte, error)
}

func (m *Element) Attribute(name string) (string, error) {
	if m.AttributeFunc != nil {
		return m.AttributeFunc(name)
	}
	return "", nil
}

func (m *Element) BoundingBox() (*ports.Rect, error) {
	if m.BoundingBoxFunc != nil {
		return m.BoundingBoxFunc()
	}
	return &ports.Rect{Width: 1920, Height: 1080}, nil
}

func (m *Element) Screenshot(omitBackground bool) ([]byte, error) {
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc(omitBackground)
	}
	return []byte("png"), nil
}

// Ensure Element implements ports.Element
var _ ports.Element = (*Element)(nil)
