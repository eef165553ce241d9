package capture

import (
	"errors"
	"strings"
	"testing"

	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/mocks"
)

func TestNormalizeStepInfo(t *testing.T) {
	info, ok := NormalizeStepInfo(map[string]any{
		"no":          float64(2),
		"clicks":      float64(1),
		"clicksTotal": float64(3),
		"hasNext":     true,
	})
	if !ok {
		t.Fatal("expected ok")
	}
	want := deck.StepInfo{No: 2, Clicks: 1, ClicksTotal: 3, HasNext: true}
	if info != want {
		t.Errorf("NormalizeStepInfo = %+v, want %+v", info, want)
	}
}

func TestNormalizeStepInfo_Invalid(t *testing.T) {
	if _, ok := NormalizeStepInfo(nil); ok {
		t.Error("nil should not normalize")
	}
	if _, ok := NormalizeStepInfo("nope"); ok {
		t.Error("string should not normalize")
	}
	if _, ok := NormalizeStepInfo(map[string]any{"no": float64(1)}); ok {
		t.Error("missing clicks should not normalize")
	}
}

func TestStepBridge_Info_BridgeMissing(t *testing.T) {
	page := &mocks.Page{
		EvaluateFunc: func(expression string) (any, error) {
			return nil, nil
		},
	}
	_, err := NewStepBridge(page).Info()
	if !errors.Is(err, ErrBridgeMissing) {
		t.Errorf("expected ErrBridgeMissing, got %v", err)
	}
}

func TestStepBridge_Info(t *testing.T) {
	page := &mocks.Page{
		EvaluateFunc: func(expression string) (any, error) {
			if !strings.Contains(expression, "getStepInfo") {
				t.Fatalf("unexpected expression: %s", expression)
			}
			return map[string]any{
				"no":          float64(1),
				"clicks":      float64(0),
				"clicksTotal": float64(2),
				"hasNext":     true,
			}, nil
		},
	}
	info, err := NewStepBridge(page).Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Key().String() != "1.0" {
		t.Errorf("Key = %s, want 1.0", info.Key())
	}
	if info.ClicksTotal != 2 || !info.HasNext {
		t.Errorf("info = %+v", info)
	}
}

func TestStepBridge_Next(t *testing.T) {
	page := &mocks.Page{
		EvaluateFunc: func(expression string) (any, error) {
			return true, nil
		},
	}
	advanced, err := NewStepBridge(page).Next()
	if err != nil || !advanced {
		t.Errorf("Next = %v, %v", advanced, err)
	}

	noBridge := &mocks.Page{
		EvaluateFunc: func(expression string) (any, error) {
			return false, nil
		},
	}
	advanced, err = NewStepBridge(noBridge).Next()
	if err != nil || advanced {
		t.Errorf("Next without bridge = %v, %v", advanced, err)
	}
}
