package capture

import (
	"fmt"
	"strings"

	"github.com/user/deckshow/pkg/ports"
)

// Animations may start lazily, so the dilation script re-applies the slowed
// playback rate on a 250ms in-page timer. The original rate of each
// animation is recorded once so repeated passes don't compound.
const dilationScript = `
(() => {
  const scale = %SCALE%;
  const root = document.documentElement;
  const raw = getComputedStyle(root).getPropertyValue('--slidev-transition-duration').trim();
  let ms = parseFloat(raw);
  if (!isNaN(ms)) {
    if (raw.endsWith('s') && !raw.endsWith('ms')) ms *= 1000;
    root.style.setProperty('--slidev-transition-duration', (ms * scale) + 'ms');
  }
  const slow = () => {
    for (const anim of document.getAnimations()) {
      if (anim.__deckshow_rate__ === undefined) anim.__deckshow_rate__ = anim.playbackRate;
      anim.playbackRate = anim.__deckshow_rate__ / scale;
    }
  };
  slow();
  const timer = setInterval(slow, 250);
  window.__deckshow_motion_cleanup__ = () => clearInterval(timer);
})()`

const dilationCleanupScript = `
(() => {
  const fn = window.__deckshow_motion_cleanup__;
  if (typeof fn === 'function') fn();
  delete window.__deckshow_motion_cleanup__;
})()`

// ApplyMotionDilation slows in-page transitions and animations by scale.
// The recorder compensates by speeding up the encoded timeline.
func ApplyMotionDilation(page ports.Page, scale float64) error {
	script := strings.ReplaceAll(dilationScript, "%SCALE%", fmt.Sprintf("%g", scale))
	if _, err := page.Evaluate(script); err != nil {
		return fmt.Errorf("apply motion dilation: %w", err)
	}
	return nil
}

// CleanupMotionDilation clears the dilation timer. If the page navigated
// away since ApplyMotionDilation, the timer already died with the page and
// this is a no-op.
func CleanupMotionDilation(page ports.Page) {
	_, _ = page.Evaluate(dilationCleanupScript)
}
