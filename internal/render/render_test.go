package render

import (
	"errors"
	"math"
	"testing"

	"github.com/olivier-w/spectr/internal/dsp"
)

// makeTable builds a table whose cell values come from fn(frame, bin).
func makeTable(frames, bins int, fn func(f, b int) float64) *dsp.MagnitudeTable {
	t := &dsp.MagnitudeTable{
		Values:    make([]float64, frames*bins),
		NumFrames: frames,
		NumBins:   bins,
	}
	for f := range frames {
		for b := range bins {
			t.Values[f*bins+b] = fn(f, b)
		}
	}
	return t
}

func TestRenderUnavailable(t *testing.T) {
	empty := &dsp.MagnitudeTable{NumFrames: 0, NumBins: 1024}
	if _, _, err := Render(empty, 44100, dsp.FreqRange{}, 10, 10); !errors.Is(err, ErrUnavailable) {
		t.Errorf("zero frames: err = %v, want ErrUnavailable", err)
	}
	noBins := &dsp.MagnitudeTable{NumFrames: 10, NumBins: 0}
	if _, _, err := Render(noBins, 44100, dsp.FreqRange{}, 10, 10); !errors.Is(err, ErrUnavailable) {
		t.Errorf("zero bins: err = %v, want ErrUnavailable", err)
	}
}

func TestRenderResolvesFullFrequencyRange(t *testing.T) {
	table := makeTable(4, 1024, func(f, b int) float64 { return -50 })
	img, fr, err := Render(table, 44100, dsp.FreqRange{}, 64, 32)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fr.Lo != 0 || fr.Hi != 22050 {
		t.Errorf("resolved range [%v, %v], want [0, 22050]", fr.Lo, fr.Hi)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("image size %v, want 64x32", img.Bounds())
	}
}

func TestRenderSubRangeStaysInsideFullExtent(t *testing.T) {
	table := makeTable(4, 1024, func(f, b int) float64 { return -50 })
	_, fr, err := Render(table, 44100, dsp.NewFreqRange(500, 99999), 16, 16)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fr.Lo != 500 || fr.Hi != 22050 {
		t.Errorf("resolved range [%v, %v], want [500, 22050]", fr.Lo, fr.Hi)
	}
	if fr.Lo > fr.Hi {
		t.Error("resolved range is inverted")
	}
}

func TestNormWindowClampsToFixedBounds(t *testing.T) {
	tests := []struct {
		name             string
		fn               func(f, b int) float64
		wantMin, wantMax float64
	}{
		{"inside window", func(f, b int) float64 { return -60 + float64(b%2)*20 }, -60, -40},
		{"below floor", func(f, b int) float64 { return -150 + float64(b%2)*30 }, -100, 0},
		{"above ceiling", func(f, b int) float64 { return 5 + float64(b%2)*5 }, -100, 0},
		{"wide", func(f, b int) float64 { return -200 + float64(b) }, -100, 0},
		{"all non-finite", func(f, b int) float64 { return math.Inf(-1) }, -100, 0},
		{"constant", func(f, b int) float64 { return -30 }, -100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := makeTable(8, 256, tt.fn)
			minVal, maxVal := normWindow(table, 0, 255)
			if minVal != tt.wantMin || maxVal != tt.wantMax {
				t.Errorf("normWindow = [%v, %v], want [%v, %v]", minVal, maxVal, tt.wantMin, tt.wantMax)
			}
			if minVal < -100 || maxVal > 0 {
				t.Error("window escapes fixed bounds")
			}
		})
	}
}

// normWindow samples roughly normSampleFrames frames, not every frame.
func TestNormWindowSamplesSparsely(t *testing.T) {
	// Only frame 1 carries an extreme value; with 1000 frames the sampling
	// stride is 10 and frame 1 must be skipped.
	table := makeTable(1000, 8, func(f, b int) float64 {
		if f == 1 {
			return -99
		}
		return -50
	})
	minVal, maxVal := normWindow(table, 0, 7)
	if minVal != -100 || maxVal != 0 {
		// constant observed data degenerates to the fixed window
		t.Errorf("normWindow = [%v, %v], want degenerate [-100, 0]", minVal, maxVal)
	}
}

func TestRenderTopRowIsHighestFrequency(t *testing.T) {
	// Value grows with bin index, so the top of the image must be brighter
	// than the bottom.
	table := makeTable(4, 1024, func(f, b int) float64 {
		return -100 + 100*float64(b)/1023
	})
	img, _, err := Render(table, 44100, dsp.FreqRange{}, 8, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	top := img.RGBAAt(4, 0)
	bottom := img.RGBAAt(4, 63)
	topSum := int(top.R) + int(top.G) + int(top.B)
	bottomSum := int(bottom.R) + int(bottom.G) + int(bottom.B)
	if topSum <= bottomSum {
		t.Errorf("top pixel %v not brighter than bottom %v", top, bottom)
	}
}

func TestRenderNonFiniteCellsAreBackground(t *testing.T) {
	table := makeTable(4, 256, func(f, b int) float64 {
		if b < 128 {
			return math.Inf(-1)
		}
		return -30 + float64(b%16)
	})
	img, _, err := Render(table, 8000, dsp.FreqRange{}, 16, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Bottom rows map to the -Inf bins and must render as black.
	c := img.RGBAAt(8, 63)
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("non-finite cell rendered as %v, want opaque black", c)
	}
}

func TestRenderSingleRowImage(t *testing.T) {
	table := makeTable(2, 16, func(f, b int) float64 { return -40 })
	if _, _, err := Render(table, 8000, dsp.FreqRange{}, 4, 1); err != nil {
		t.Fatalf("Render with height 1: %v", err)
	}
}
