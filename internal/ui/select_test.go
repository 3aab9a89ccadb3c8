package ui

import (
	"math"
	"testing"

	"github.com/olivier-w/spectr/internal/dsp"
)

func TestIsResetClick(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{5, 3, true},   // small both axes
		{9, 9, true},   // just under threshold
		{10, 3, false}, // wide enough to zoom
		{3, 10, false}, // tall enough to zoom
		{200, 80, false},
		{-5, -3, true}, // direction must not matter
		{0, 0, true},
	}
	for _, tt := range tests {
		if got := isResetClick(tt.w, tt.h); got != tt.want {
			t.Errorf("isResetClick(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestMapSelectionFullViewport(t *testing.T) {
	visT := dsp.NewTimeRange(0, 10)
	visF := dsp.NewFreqRange(0, 22050)

	tr, fr := mapSelection(0, 0, 800, 400, 800, 400, visT, visF)
	if tr.Lo != 0 || tr.Hi != 10 {
		t.Errorf("time range [%v, %v], want [0, 10]", tr.Lo, tr.Hi)
	}
	if fr.Lo != 0 || fr.Hi != 22050 {
		t.Errorf("freq range [%v, %v], want [0, 22050]", fr.Lo, fr.Hi)
	}
}

func TestMapSelectionQuarter(t *testing.T) {
	visT := dsp.NewTimeRange(0, 8)
	visF := dsp.NewFreqRange(0, 4000)

	// Left half in time, top half in frequency.
	tr, fr := mapSelection(0, 0, 400, 200, 800, 400, visT, visF)
	if tr.Lo != 0 || tr.Hi != 4 {
		t.Errorf("time range [%v, %v], want [0, 4]", tr.Lo, tr.Hi)
	}
	if fr.Lo != 2000 || fr.Hi != 4000 {
		t.Errorf("freq range [%v, %v], want [2000, 4000]", fr.Lo, fr.Hi)
	}
}

func TestMapSelectionTopIsHighFrequency(t *testing.T) {
	visT := dsp.NewTimeRange(0, 1)
	visF := dsp.NewFreqRange(0, 1000)

	// A band near the top must map to high frequencies.
	_, fr := mapSelection(0, 0, 800, 40, 800, 400, visT, visF)
	if fr.Hi != 1000 {
		t.Errorf("freq hi = %v, want 1000", fr.Hi)
	}
	if math.Abs(fr.Lo-900) > 1e-9 {
		t.Errorf("freq lo = %v, want 900", fr.Lo)
	}
}

func TestMapSelectionNormalizesInvertedDrag(t *testing.T) {
	visT := dsp.NewTimeRange(0, 10)
	visF := dsp.NewFreqRange(0, 1000)

	// Drag from bottom-right to top-left.
	tr, fr := mapSelection(600, 300, 200, 100, 800, 400, visT, visF)
	if tr.Lo > tr.Hi || fr.Lo > fr.Hi {
		t.Fatalf("inverted ranges: time [%v, %v], freq [%v, %v]", tr.Lo, tr.Hi, fr.Lo, fr.Hi)
	}
	if tr.Lo != 2.5 || tr.Hi != 7.5 {
		t.Errorf("time range [%v, %v], want [2.5, 7.5]", tr.Lo, tr.Hi)
	}
	if fr.Lo != 250 || fr.Hi != 750 {
		t.Errorf("freq range [%v, %v], want [250, 750]", fr.Lo, fr.Hi)
	}
}

func TestMapSelectionStaysInsideVisibleRanges(t *testing.T) {
	visT := dsp.NewTimeRange(2, 6)
	visF := dsp.NewFreqRange(500, 8000)

	tr, fr := mapSelection(100, 50, 700, 350, 800, 400, visT, visF)
	if tr.Lo < visT.Lo || tr.Hi > visT.Hi {
		t.Errorf("time range [%v, %v] escapes visible [2, 6]", tr.Lo, tr.Hi)
	}
	if fr.Lo < visF.Lo || fr.Hi > visF.Hi {
		t.Errorf("freq range [%v, %v] escapes visible [500, 8000]", fr.Lo, fr.Hi)
	}
}
