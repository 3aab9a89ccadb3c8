// Package engine turns an audio source into a rendered spectrogram result,
// composing the windowed-FFT analysis and the pixel rendering steps.
package engine

import (
	"image"

	"github.com/olivier-w/spectr/internal/dsp"
	"github.com/olivier-w/spectr/internal/render"
	"github.com/olivier-w/spectr/internal/source"
)

// Source is any provider of a decoded mono signal.
type Source interface {
	PCM() (*source.PCM, error)
}

// Result is one complete generated spectrogram. Immutable once produced.
type Result struct {
	Image      *image.RGBA
	Time       dsp.TimeRange
	Freq       dsp.FreqRange
	Duration   float64
	SampleRate int
}

// Engine computes spectrogram results synchronously. Generate is CPU-bound;
// callers needing responsiveness run it off the interactive path.
type Engine struct{}

// Generate analyzes the requested time range of the source, renders the
// requested frequency range onto a width x height image, and packages the
// result with the resolved ranges and source metadata. Pass zero-value
// ranges for the full extent.
func (Engine) Generate(src Source, timeRange dsp.TimeRange, freqRange dsp.FreqRange, width, height int) (*Result, error) {
	pcm, err := src.PCM()
	if err != nil {
		return nil, err
	}

	table, resolvedTime, err := dsp.Analyze(pcm.Samples, pcm.SampleRate, timeRange)
	if err != nil {
		return nil, err
	}

	img, resolvedFreq, err := render.Render(table, pcm.SampleRate, freqRange, width, height)
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:      img,
		Time:       resolvedTime,
		Freq:       resolvedFreq,
		Duration:   pcm.Duration(),
		SampleRate: pcm.SampleRate,
	}, nil
}
