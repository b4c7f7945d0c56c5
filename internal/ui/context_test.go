package ui

import "testing"

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	vc := GetViewContext()
	vc.UpdateTerminalSize(100, 40)

	if w, h := vc.Size(); w != 100 || h != 40 {
		t.Errorf("Size() = %d,%d; want 100,40", w, h)
	}
	if w, h := vc.Content(); w != 100 || h != 40-HeaderHeight-FooterHeight {
		t.Errorf("Content() = %d,%d", w, h)
	}
}

func TestViewContext_ClampsTinyTerminals(t *testing.T) {
	vc := GetViewContext()
	vc.UpdateTerminalSize(1, 1)

	if w, h := vc.Size(); w != MinTerminalWidth || h != MinTerminalHeight {
		t.Errorf("Size() = %d,%d; want clamped minimums", w, h)
	}
}

func TestViewContext_Inner(t *testing.T) {
	vc := GetViewContext()
	if vc.InnerWidth(10) != 8 || vc.InnerHeight(10) != 8 {
		t.Error("inner size should subtract the border")
	}
	if vc.InnerWidth(1) != 1 {
		t.Error("inner size should never drop below 1")
	}
}
