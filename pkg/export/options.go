// Package export defines export request options and navigation URL building.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/ports"
)

// Format selects the artifact type to produce.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatPNG      Format = "png"
	FormatPPTX     Format = "pptx"
	FormatMarkdown Format = "md"
	FormatMP4      Format = "mp4"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatPNG, FormatPPTX, FormatMarkdown, FormatMP4:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// RouterMode selects how slide numbers appear in navigation URLs.
type RouterMode string

const (
	RouterHash    RouterMode = "hash"
	RouterHistory RouterMode = "history"
)

// Options is a fully resolved export request.
type Options struct {
	Format Format

	// BaseURL is the root URL of the server rendering the deck.
	BaseURL string
	// Slides is the deck metadata, ordered by index.
	Slides []deck.Slide

	// Range is the original range expression ("" selects all slides).
	Range string
	// Pages is the expanded, validated slide number list.
	Pages []int

	Output string

	Width  int
	Height int
	Dark   bool

	RouterMode RouterMode
	WithClicks bool
	PerSlide   bool

	Scale          float64
	OmitBackground bool

	TimeoutMs int
	WaitMs    int
	WaitUntil ports.WaitUntil

	WithTOC        bool
	ExecutablePath string

	// MP4 only.
	VideoIntervalMs  int
	VideoFPS         int
	VideoWidth       int
	VideoHeight      int
	VideoMotionScale float64
}

// Request is a raw export request before defaulting. Optional booleans and
// numbers are pointers so "absent" and "zero" stay distinct.
type Request struct {
	Format         string  `json:"format"`
	Range          string  `json:"range"`
	Output         string  `json:"output"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Dark           bool    `json:"dark"`
	RouterMode     string  `json:"routerMode"`
	WithClicks     *bool   `json:"withClicks"`
	PerSlide       bool    `json:"perSlide"`
	Scale          float64 `json:"scale"`
	OmitBackground bool    `json:"omitBackground"`
	Timeout        int     `json:"timeout"`
	Wait           int     `json:"wait"`
	WaitUntil      string  `json:"waitUntil"`
	WithTOC        bool    `json:"withToc"`
	ExecutablePath string  `json:"executablePath"`

	VideoInterval    *int    `json:"videoInterval"`
	VideoFPS         *int    `json:"videoFps"`
	VideoSize        string  `json:"videoSize"`
	VideoMotionScale float64 `json:"videoMotionScale"`
}

// Resolve applies defaults, expands the range against the deck, and validates
// the request into Options. All input errors surface here, before any browser
// or encoder is touched.
func (r Request) Resolve(baseURL string, slides []deck.Slide) (Options, error) {
	format, err := ParseFormat(r.Format)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Format:         format,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Slides:         slides,
		Range:          r.Range,
		Output:         r.Output,
		Width:          r.Width,
		Height:         r.Height,
		Dark:           r.Dark,
		PerSlide:       r.PerSlide,
		Scale:          r.Scale,
		OmitBackground: r.OmitBackground,
		TimeoutMs:      r.Timeout,
		WaitMs:         r.Wait,
		WithTOC:        r.WithTOC,
		ExecutablePath: r.ExecutablePath,
	}

	if opts.Width <= 0 {
		opts.Width = 1920
	}
	if opts.Height <= 0 {
		opts.Height = 1080
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = 30000
	}

	switch RouterMode(r.RouterMode) {
	case RouterHash, RouterHistory:
		opts.RouterMode = RouterMode(r.RouterMode)
	case "":
		opts.RouterMode = RouterHistory
	default:
		return Options{}, fmt.Errorf("unsupported router mode %q", r.RouterMode)
	}

	switch ports.WaitUntil(r.WaitUntil) {
	case ports.WaitUntilNetworkIdle, ports.WaitUntilLoad, ports.WaitUntilDOMContentLoaded, ports.WaitUntilNone:
		opts.WaitUntil = ports.WaitUntil(r.WaitUntil)
	case "":
		opts.WaitUntil = ports.WaitUntilNetworkIdle
	default:
		return Options{}, fmt.Errorf("unsupported waitUntil %q", r.WaitUntil)
	}

	// Clicks default to on for formats that replay reveal states.
	if r.WithClicks != nil {
		opts.WithClicks = *r.WithClicks
	} else {
		opts.WithClicks = format == FormatPPTX || format == FormatMP4
	}

	pages, err := deck.ParseRange(r.Range, len(slides))
	if err != nil {
		return Options{}, err
	}
	opts.Pages = pages

	if format == FormatMP4 {
		if err := resolveVideo(&opts, r); err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}

func resolveVideo(opts *Options, r Request) error {
	if !opts.WithClicks {
		return fmt.Errorf("mp4 export replays click states: withClicks must not be disabled")
	}
	if !deck.IsContiguous(opts.Pages) {
		return fmt.Errorf("mp4 export requires a contiguous slide range, got %q", r.Range)
	}

	opts.VideoIntervalMs = 2000
	if r.VideoInterval != nil {
		opts.VideoIntervalMs = *r.VideoInterval
	}
	if opts.VideoIntervalMs < 0 {
		return fmt.Errorf("videoInterval must be >= 0, got %d", opts.VideoIntervalMs)
	}

	opts.VideoFPS = 30
	if r.VideoFPS != nil {
		opts.VideoFPS = *r.VideoFPS
	}
	if opts.VideoFPS < 1 || opts.VideoFPS > 60 {
		return fmt.Errorf("videoFps must be between 1 and 60, got %d", opts.VideoFPS)
	}

	opts.VideoWidth, opts.VideoHeight = 1920, 1080
	if r.VideoSize != "" {
		w, h, err := ParseSize(r.VideoSize)
		if err != nil {
			return err
		}
		opts.VideoWidth, opts.VideoHeight = w, h
	}

	opts.VideoMotionScale = r.VideoMotionScale
	if opts.VideoMotionScale == 0 {
		opts.VideoMotionScale = 1
	}
	if opts.VideoMotionScale <= 0 {
		return fmt.Errorf("videoMotionScale must be > 0, got %v", opts.VideoMotionScale)
	}

	return nil
}

// ParseSize parses a "WxH" dimension string.
func ParseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	width, err = strconv.Atoi(strings.TrimSpace(w))
	if err == nil {
		height, err = strconv.Atoi(strings.TrimSpace(h))
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	return width, height, nil
}

// Speedup is the encoder timeline speedup compensating for motion dilation.
func (o Options) Speedup() float64 {
	if o.VideoMotionScale > 1 {
		return o.VideoMotionScale
	}
	return 1
}

// SlideByIndex returns the slide with the given 1-based index.
func (o Options) SlideByIndex(no int) (deck.Slide, bool) {
	for _, s := range o.Slides {
		if s.Index == no {
			return s, true
		}
	}
	return deck.Slide{}, false
}
