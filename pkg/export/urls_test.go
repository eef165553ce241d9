package export

import (
	"net/url"
	"testing"
)

func historyOpts() Options {
	return Options{BaseURL: "http://localhost:3030", RouterMode: RouterHistory}
}

func hashOpts() Options {
	return Options{BaseURL: "http://localhost:3030", RouterMode: RouterHash}
}

func TestSlideURL(t *testing.T) {
	if got := historyOpts().SlideURL(5, nil); got != "http://localhost:3030/5" {
		t.Errorf("history SlideURL = %q", got)
	}
	if got := hashOpts().SlideURL(5, nil); got != "http://localhost:3030/#5" {
		t.Errorf("hash SlideURL = %q", got)
	}

	q := url.Values{}
	q.Set("print", "true")
	if got := historyOpts().SlideURL(2, q); got != "http://localhost:3030/2?print=true" {
		t.Errorf("history SlideURL with query = %q", got)
	}
	if got := hashOpts().SlideURL(2, q); got != "http://localhost:3030/?print=true#2" {
		t.Errorf("hash SlideURL with query = %q", got)
	}
}

func TestPrintSlideURL(t *testing.T) {
	opts := historyOpts()
	opts.Range = "1-3"

	got := opts.PrintSlideURL(2, PrintPlain, 0)
	want := "http://localhost:3030/2?print=true&range=1-3"
	if got != want {
		t.Errorf("PrintSlideURL = %q, want %q", got, want)
	}

	got = opts.PrintSlideURL(2, PrintPlain, 3)
	want = "http://localhost:3030/2?clicks=3&print=true&range=1-3"
	if got != want {
		t.Errorf("PrintSlideURL with clicks = %q, want %q", got, want)
	}
}

func TestPrintAllURL(t *testing.T) {
	got := historyOpts().PrintAllURL(PrintClicks)
	if got != "http://localhost:3030/print?print=clicks" {
		t.Errorf("history PrintAllURL = %q", got)
	}
	got = hashOpts().PrintAllURL(PrintPlain)
	if got != "http://localhost:3030/?print=true#/print" {
		t.Errorf("hash PrintAllURL = %q", got)
	}
}

func TestPlayURL(t *testing.T) {
	got := historyOpts().PlayURL(3, 0)
	if got != "http://localhost:3030/3?embedded=true" {
		t.Errorf("PlayURL = %q", got)
	}
	got = historyOpts().PlayURL(3, 2)
	if got != "http://localhost:3030/3?clicks=2&embedded=true" {
		t.Errorf("PlayURL with clicks = %q", got)
	}
}
