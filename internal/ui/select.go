package ui

import "github.com/olivier-w/spectr/internal/dsp"

// resetClickSize is the selection size below which a drag counts as a
// "reset" click rather than a zoom, in viewport pixels on each axis.
const resetClickSize = 10

// isResetClick reports whether a selection of the given extent should reset
// the view instead of zooming.
func isResetClick(width, height int) bool {
	if width < 0 {
		width = -width
	}
	if height < 0 {
		height = -height
	}
	return width < resetClickSize && height < resetClickSize
}

// mapSelection converts a pixel-space selection rectangle on a viewport of
// the given size into time and frequency ranges within the visible ones.
// Pixel row 0 is the top of the viewport and maps to the highest frequency.
func mapSelection(x0, y0, x1, y1, viewW, viewH int, visTime dsp.TimeRange, visFreq dsp.FreqRange) (dsp.TimeRange, dsp.FreqRange) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	timeAt := func(x int) float64 {
		return visTime.Lo + float64(x)/float64(viewW)*visTime.Span()
	}
	freqAt := func(y int) float64 {
		return visFreq.Lo + (1-float64(y)/float64(viewH))*visFreq.Span()
	}

	tr := dsp.NewTimeRange(timeAt(x0), timeAt(x1))
	fr := dsp.NewFreqRange(freqAt(y1), freqAt(y0))
	return tr, fr
}
