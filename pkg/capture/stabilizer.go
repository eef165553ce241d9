package capture

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/user/deckshow/pkg/ports"
)

// transitionPad is added to the declared transition duration before clamping.
const transitionPad = 300 * time.Millisecond

const (
	transitionMin = 120 * time.Millisecond
	transitionMax = 3000 * time.Millisecond
)

const waitForScript = `
(async () => {
  const deadline = Date.now() + %TIMEOUT%;
  const failed = [];
  for (const el of Array.from(document.querySelectorAll('[data-waitfor]'))) {
    const sel = el.getAttribute('data-waitfor');
    if (!sel) continue;
    let ok = false;
    while (Date.now() < deadline) {
      const target = el.querySelector(sel);
      if (target && target.offsetParent !== null) { ok = true; break; }
      await new Promise(r => setTimeout(r, 100));
    }
    if (!ok) failed.push(sel);
  }
  return failed;
})()`

const mermaidDrainScript = `
(async () => {
  const container = document.querySelector('` + mermaidContainer + `');
  if (!container) return;
  const deadline = Date.now() + %TIMEOUT%;
  while (Date.now() < deadline && container.childElementCount > 0) {
    await new Promise(r => setTimeout(r, 100));
  }
  container.style.display = 'none';
})()`

const hideMonacoAriaScript = `
for (const el of document.querySelectorAll('` + monacoAriaContainer + `')) {
  el.style.display = 'none';
}`

const transitionActiveScript = `
!!document.querySelector('` + slideshowRoot + ` [class*="-enter-active"], ` +
	slideshowRoot + ` [class*="-leave-active"]')`

const transitionDurationScript = `
getComputedStyle(document.documentElement)
  .getPropertyValue('--slidev-transition-duration').trim()`

const doubleRAFScript = `
new Promise(r => requestAnimationFrame(() => requestAnimationFrame(r)))`

// WaitStable enforces visual quiescence before a capture: loading
// placeholders detached, data-waitfor targets visible, sub-frames loaded,
// Mermaid drained and hidden, Monaco aria containers hidden.
//
// A data-waitfor target that never shows up is a warning, not an abort.
func (d *Driver) WaitStable() error {
	timeout := float64(d.opts.TimeoutMs)

	if err := d.page.WaitForSelector(slideLoadingSelector, ports.StateDetached, timeout); err != nil {
		d.warn(fmt.Sprintf("slide placeholders still loading after %dms: %s", d.opts.TimeoutMs, err))
	}

	result, err := d.page.Evaluate(strings.ReplaceAll(waitForScript, "%TIMEOUT%", strconv.Itoa(d.opts.TimeoutMs)))
	if err != nil {
		return fmt.Errorf("wait data-waitfor targets: %w", err)
	}
	if failed, ok := result.([]any); ok {
		for _, sel := range failed {
			d.warn(fmt.Sprintf("data-waitfor target %v never became visible", sel))
		}
	}

	if err := d.page.WaitForFrames(timeout); err != nil {
		return fmt.Errorf("wait sub-frames: %w", err)
	}

	if _, err := d.page.Evaluate(strings.ReplaceAll(mermaidDrainScript, "%TIMEOUT%", strconv.Itoa(d.opts.TimeoutMs))); err != nil {
		return fmt.Errorf("drain mermaid container: %w", err)
	}

	if _, err := d.page.Evaluate(hideMonacoAriaScript); err != nil {
		return fmt.Errorf("hide editor aria containers: %w", err)
	}

	return nil
}

// TransitionBudget reads the page's declared transition duration and clamps
// it into the window the recorder waits for animation tails.
func (d *Driver) TransitionBudget() time.Duration {
	raw, err := d.page.Evaluate(transitionDurationScript)
	if err != nil {
		return ClampTransition(0)
	}
	s, _ := raw.(string)
	return ClampTransition(ParseCSSTime(s))
}

// WaitStepSettled is the MP4 stabilization variant: WaitStable, then sleep
// out the transition budget, then poll until no enter/leave transition is
// active under the slideshow root, then yield two animation frames.
func (d *Driver) WaitStepSettled() error {
	if err := d.WaitStable(); err != nil {
		return err
	}

	budget := d.TransitionBudget()
	time.Sleep(budget)

	deadline := time.Now().Add(time.Duration(d.opts.TimeoutMs) * time.Millisecond)
	for time.Now().Before(deadline) {
		active, err := d.page.Evaluate(transitionActiveScript)
		if err != nil {
			return fmt.Errorf("poll transitions: %w", err)
		}
		if b, ok := active.(bool); ok && !b {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if _, err := d.page.Evaluate(doubleRAFScript); err != nil {
		return fmt.Errorf("yield animation frames: %w", err)
	}
	return nil
}

// ParseCSSTime parses a CSS time value. Bare numbers are treated as
// milliseconds.
func ParseCSSTime(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	unit := time.Millisecond
	switch {
	case strings.HasSuffix(s, "ms"):
		s = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		s = strings.TrimSuffix(s, "s")
		unit = time.Second
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return time.Duration(v * float64(unit))
}

// ClampTransition pads a transition duration and clamps it into the
// [120ms, 3000ms] capture window.
func ClampTransition(d time.Duration) time.Duration {
	d += transitionPad
	if d < transitionMin {
		return transitionMin
	}
	if d > transitionMax {
		return transitionMax
	}
	return d
}
