package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/olivier-w/spectr/internal/dsp"
	"github.com/olivier-w/spectr/internal/render"
	"github.com/olivier-w/spectr/internal/source"
)

type memSource struct {
	pcm *source.PCM
	err error
}

func (m *memSource) PCM() (*source.PCM, error) { return m.pcm, m.err }

func toneSource(freq float64, rate, n int) *memSource {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
	}
	return &memSource{pcm: &source.PCM{Samples: samples, SampleRate: rate}}
}

func TestGenerateFullView(t *testing.T) {
	const rate = 8000
	src := toneSource(440, rate, 4*rate) // 4 seconds

	res, err := Engine{}.Generate(src, dsp.TimeRange{}, dsp.FreqRange{}, 64, 32)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Time.Lo != 0 || res.Time.Hi != 4 {
		t.Errorf("resolved time range [%v, %v], want [0, 4]", res.Time.Lo, res.Time.Hi)
	}
	if res.Freq.Lo != 0 || res.Freq.Hi != rate/2 {
		t.Errorf("resolved freq range [%v, %v], want [0, %d]", res.Freq.Lo, res.Freq.Hi, rate/2)
	}
	if res.Duration != 4 {
		t.Errorf("duration = %v, want 4", res.Duration)
	}
	if res.SampleRate != rate {
		t.Errorf("sample rate = %d, want %d", res.SampleRate, rate)
	}
	if res.Image.Bounds().Dx() != 64 || res.Image.Bounds().Dy() != 32 {
		t.Errorf("image bounds %v, want 64x32", res.Image.Bounds())
	}
}

func TestGenerateSubRangesAreSubsets(t *testing.T) {
	src := toneSource(440, 8000, 4*8000)

	res, err := Engine{}.Generate(src, dsp.NewTimeRange(1, 9), dsp.NewFreqRange(100, 90000), 32, 32)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Time.Lo < 0 || res.Time.Hi > res.Duration || res.Time.Lo > res.Time.Hi {
		t.Errorf("time range [%v, %v] escapes [0, %v]", res.Time.Lo, res.Time.Hi, res.Duration)
	}
	if res.Freq.Lo < 0 || res.Freq.Hi > 4000 || res.Freq.Lo > res.Freq.Hi {
		t.Errorf("freq range [%v, %v] escapes [0, 4000]", res.Freq.Lo, res.Freq.Hi)
	}
	if res.Time.Hi != 4 {
		t.Errorf("time range clipped to %v, want 4", res.Time.Hi)
	}
}

func TestGeneratePropagatesDecodeFailure(t *testing.T) {
	src := &memSource{err: source.ErrDecode}
	if _, err := (Engine{}).Generate(src, dsp.TimeRange{}, dsp.FreqRange{}, 16, 16); !errors.Is(err, source.ErrDecode) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestGeneratePropagatesEmptySelection(t *testing.T) {
	src := toneSource(440, 8000, 8000)
	_, err := Engine{}.Generate(src, dsp.NewTimeRange(0.5, 0.5), dsp.FreqRange{}, 16, 16)
	if !errors.Is(err, dsp.ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}

func TestGeneratePropagatesRenderUnavailable(t *testing.T) {
	src := toneSource(440, 8000, 8000)
	_, err := Engine{}.Generate(src, dsp.TimeRange{}, dsp.FreqRange{}, 0, 0)
	if !errors.Is(err, render.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
