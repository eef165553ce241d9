package capture

import (
	"errors"
	"fmt"

	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/ports"
)

// ErrBridgeMissing is returned when the page exposes neither the export
// bridge nor the legacy navigation object. Fatal for MP4 export.
var ErrBridgeMissing = errors.New("slide playback bridge not found (is the deck served in play mode?)")

// Legacy bridges expose fields as reactive cells ({ value }); the cell()
// helper accepts both shapes without caring which one it got.
const stepInfoScript = `
(() => {
  const cell = (x) => (x && typeof x === 'object' && 'value' in x) ? x.value : x;
  const bridge = window.__slidev_export__;
  if (bridge && typeof bridge.getStepInfo === 'function') {
    const info = bridge.getStepInfo();
    if (!info) return null;
    return {
      no: cell(info.no),
      clicks: cell(info.clicks),
      clicksTotal: cell(info.clicksTotal),
      hasNext: cell(info.hasNext),
    };
  }
  const nav = window.__slidev__ && window.__slidev__.nav;
  if (!nav) return null;
  return {
    no: cell(nav.currentSlideNo),
    clicks: cell(nav.clicks),
    clicksTotal: cell(nav.clicksTotal),
    hasNext: cell(nav.hasNext),
  };
})()`

const nextStepScript = `
(async () => {
  const bridge = window.__slidev_export__;
  if (bridge && typeof bridge.nextStep === 'function') {
    await bridge.nextStep();
    return true;
  }
  const nav = window.__slidev__ && window.__slidev__.nav;
  if (nav && typeof nav.next === 'function') {
    await nav.next();
    return true;
  }
  return false;
})()`

// StepBridge reads and advances the page's playback state through the
// window-level export contract.
type StepBridge struct {
	page ports.Page
}

// NewStepBridge creates a bridge over page.
func NewStepBridge(page ports.Page) *StepBridge {
	return &StepBridge{page: page}
}

// Info reads the current playback state.
func (b *StepBridge) Info() (deck.StepInfo, error) {
	result, err := b.page.Evaluate(stepInfoScript)
	if err != nil {
		return deck.StepInfo{}, fmt.Errorf("read step info: %w", err)
	}
	info, ok := NormalizeStepInfo(result)
	if !ok {
		return deck.StepInfo{}, ErrBridgeMissing
	}
	return info, nil
}

// Next advances one step. It returns false when no bridge is present.
func (b *StepBridge) Next() (bool, error) {
	result, err := b.page.Evaluate(nextStepScript)
	if err != nil {
		return false, fmt.Errorf("advance step: %w", err)
	}
	advanced, _ := result.(bool)
	return advanced, nil
}

// ClicksTotal reads the current slide's total click count, or 0 when no
// bridge is available (static print pages have none).
func (b *StepBridge) ClicksTotal() int {
	info, err := b.Info()
	if err != nil {
		return 0
	}
	return info.ClicksTotal
}

// NormalizeStepInfo converts an evaluated bridge result into a StepInfo.
// JavaScript numbers arrive as float64.
func NormalizeStepInfo(v any) (deck.StepInfo, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return deck.StepInfo{}, false
	}
	no, okNo := asInt(m["no"])
	clicks, okClicks := asInt(m["clicks"])
	if !okNo || !okClicks {
		return deck.StepInfo{}, false
	}
	total, _ := asInt(m["clicksTotal"])
	hasNext, _ := m["hasNext"].(bool)
	return deck.StepInfo{
		No:          no,
		Clicks:      clicks,
		ClicksTotal: total,
		HasNext:     hasNext,
	}, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
