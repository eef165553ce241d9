package export

import (
	"fmt"
	"net/url"
	"strconv"
)

// PrintQuery selects the print rendering mode of the slide page.
type PrintQuery string

const (
	PrintOff    PrintQuery = ""
	PrintPlain  PrintQuery = "true"
	PrintClicks PrintQuery = "clicks"
)

// SlideURL builds the navigation URL for one slide. Hash routing carries the
// slide number in the fragment, history routing in the path.
func (o Options) SlideURL(no int, q url.Values) string {
	query := ""
	if len(q) > 0 {
		query = "?" + q.Encode()
	}
	if o.RouterMode == RouterHash {
		return fmt.Sprintf("%s/%s#%d", o.BaseURL, query, no)
	}
	return fmt.Sprintf("%s/%d%s", o.BaseURL, no, query)
}

// PrintSlideURL builds the URL for printing a single slide, optionally pinned
// to a click state.
func (o Options) PrintSlideURL(no int, print PrintQuery, clicks int) string {
	q := url.Values{}
	q.Set("print", string(print))
	if o.Range != "" {
		q.Set("range", o.Range)
	}
	if clicks > 0 {
		q.Set("clicks", strconv.Itoa(clicks))
	}
	return o.SlideURL(no, q)
}

// PrintAllURL builds the URL of the print route that stacks every selected
// slide on one page.
func (o Options) PrintAllURL(print PrintQuery) string {
	q := url.Values{}
	q.Set("print", string(print))
	if o.Range != "" {
		q.Set("range", o.Range)
	}
	query := "?" + q.Encode()
	if o.RouterMode == RouterHash {
		return fmt.Sprintf("%s/%s#/print", o.BaseURL, query)
	}
	return fmt.Sprintf("%s/print%s", o.BaseURL, query)
}

// PlayURL builds the embedded playback URL used by the MP4 recorder.
func (o Options) PlayURL(no, clicks int) string {
	q := url.Values{}
	q.Set("embedded", "true")
	if clicks > 0 {
		q.Set("clicks", strconv.Itoa(clicks))
	}
	return o.SlideURL(no, q)
}
