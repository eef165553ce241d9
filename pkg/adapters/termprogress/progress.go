// Package termprogress renders export progress on the terminal.
package termprogress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/user/deckshow/pkg/ports"
)

// Reporter implements ports.Progress with a throttled terminal bar. An
// indeterminate total (-1) renders as a spinner.
type Reporter struct {
	bar *progressbar.ProgressBar
}

// New creates a terminal progress reporter.
func New() *Reporter {
	return &Reporter{}
}

// Start begins a progress display with the given total and label.
func (r *Reporter) Start(total int, label string) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Advance adds n completed units.
func (r *Reporter) Advance(n int) {
	if r.bar != nil {
		_ = r.bar.Add(n)
	}
}

// Done finishes the display.
func (r *Reporter) Done() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// Ensure Reporter implements ports.Progress
var _ ports.Progress = (*Reporter)(nil)

// Noop is a silent progress reporter.
type Noop struct{}

// NewNoop creates a progress reporter that does nothing.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Start(total int, label string) {}
func (n *Noop) Advance(count int)             {}
func (n *Noop) Done()                         {}

// Ensure Noop implements ports.Progress
var _ ports.Progress = (*Noop)(nil)
