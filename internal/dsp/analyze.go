package dsp

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// FFTSize is the fixed transform length of every analysis frame.
	FFTSize = 2048
	// HopSize is the advance between frames (75% overlap).
	HopSize = FFTSize / 4
	// BinsPerFrame is the number of Nyquist-limited frequency bins per frame.
	BinsPerFrame = FFTSize / 2
)

// ErrEmptySelection is returned when the resolved time range yields no
// samples to analyze.
var ErrEmptySelection = errors.New("selection contains no samples")

// MagnitudeTable is a dense frame-by-bin table of decibel magnitudes,
// row-major by frame. Not mutated after Analyze returns it.
type MagnitudeTable struct {
	Values    []float64
	NumFrames int
	NumBins   int
}

// At returns the decibel magnitude at the given frame and bin.
func (t *MagnitudeTable) At(frame, bin int) float64 {
	return t.Values[frame*t.NumBins+bin]
}

// Analyze extracts the requested time range from a mono signal and computes
// its short-time Fourier transform. Each frame is Hann-windowed, transformed,
// and recorded as per-bin magnitudes in dB relative to unit amplitude
// (silent bins map to -Inf). The returned range is the portion of the signal
// actually covered, which may be narrower than requested.
func Analyze(samples []float64, sampleRate int, requested TimeRange) (*MagnitudeTable, TimeRange, error) {
	duration := float64(len(samples)) / float64(sampleRate)
	r := requested.Resolve(duration)

	start := int(r.Lo * float64(sampleRate))
	end := int(r.Hi * float64(sampleRate))
	if start < 0 {
		start = 0
	}
	if end > len(samples) {
		end = len(samples)
	}
	if end <= start {
		return nil, TimeRange{}, ErrEmptySelection
	}
	seg := samples[start:end]

	numFrames := (len(seg)-FFTSize)/HopSize + 1
	if numFrames < 1 {
		numFrames = 1
	}

	window := hannWindow(FFTSize)
	frame := make([]float64, FFTSize)
	table := &MagnitudeTable{
		Values:    make([]float64, numFrames*BinsPerFrame),
		NumFrames: numFrames,
		NumBins:   BinsPerFrame,
	}

	for f := range numFrames {
		off := f * HopSize
		n := copy(frame, seg[off:])
		for i := n; i < FFTSize; i++ {
			frame[i] = 0 // zero-pad the tail frame
		}
		for i := range frame {
			frame[i] *= window[i]
		}

		spectrum := fft.FFTReal(frame)
		row := table.Values[f*BinsPerFrame : (f+1)*BinsPerFrame]
		for b := range BinsPerFrame {
			row[b] = toDecibels(cmplx.Abs(spectrum[b]))
		}
	}

	covered := TimeRange{
		Lo:  float64(start) / float64(sampleRate),
		Hi:  float64(end) / float64(sampleRate),
		set: true,
	}
	return table, covered, nil
}

// toDecibels converts a linear magnitude to dB relative to unit amplitude.
// Zero and non-finite magnitudes map to -Inf so the renderer can clamp them.
func toDecibels(mag float64) float64 {
	if mag <= 0 || math.IsInf(mag, 0) || math.IsNaN(mag) {
		return math.Inf(-1)
	}
	return 20 * math.Log10(mag)
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}
