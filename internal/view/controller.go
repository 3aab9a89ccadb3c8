// Package view owns the displayed spectrogram state and sequences the
// asynchronous generation requests behind load, zoom and reset actions.
package view

import (
	"github.com/olivier-w/spectr/internal/dsp"
	"github.com/olivier-w/spectr/internal/engine"
)

// Phase is the visible mode of the viewer.
type Phase uint8

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseDisplaying
	PhaseError
)

// State is a snapshot of what the presentation layer should show. While
// loading, Displayed may still hold the previous result as a fallback image;
// Phase stays authoritative.
type State struct {
	Phase     Phase
	Displayed *engine.Result
	Zoomed    bool
	Err       error
}

// Generator produces spectrogram results. It is an interface so tests can
// count and fake generations.
type Generator interface {
	Generate(src engine.Source, timeRange dsp.TimeRange, freqRange dsp.FreqRange, width, height int) (*engine.Result, error)
}

// Completion carries the outcome of one background generation back to the
// interactive domain.
type Completion struct {
	seq    uint64
	result *engine.Result
	err    error
	cache  bool
	zoomed bool
}

// Controller sequences generation requests and owns the full-view cache.
//
// All methods must be called from a single goroutine (the interactive
// domain); generations run on their own goroutines and report back through
// the Completions channel, which the caller drains and feeds to Apply one
// completion at a time. Every request is tagged with a sequence number and
// completions of superseded requests are discarded on Apply, so the newest
// request wins regardless of finish order.
type Controller struct {
	gen    Generator
	width  int
	height int

	src    engine.Source
	state  State
	cached *engine.Result
	seq    uint64

	completions chan Completion
}

// New creates a Controller rendering into width x height images.
func New(gen Generator, width, height int) *Controller {
	return &Controller{
		gen:         gen,
		width:       width,
		height:      height,
		completions: make(chan Completion, 4),
	}
}

// Load replaces the current source, discards the cached and displayed
// results, and starts a full-view generation.
func (c *Controller) Load(src engine.Source) {
	c.src = src
	c.cached = nil
	c.state = State{Phase: PhaseLoading}
	c.dispatch(dsp.TimeRange{}, dsp.FreqRange{}, true, false)
}

// Zoom starts a generation restricted to the given ranges. A successful zoom
// never touches the full-view cache. Without a loaded source this is a no-op.
func (c *Controller) Zoom(timeRange dsp.TimeRange, freqRange dsp.FreqRange) {
	if c.src == nil {
		return
	}
	c.state = State{Phase: PhaseLoading, Displayed: c.state.Displayed, Zoomed: c.state.Zoomed}
	c.dispatch(timeRange, freqRange, false, true)
}

// ResetZoom redisplays the cached full-view result without recomputation.
// If the cache is gone it behaves like a fresh full-view load of the current
// source. Without a loaded source this is a no-op.
func (c *Controller) ResetZoom() {
	if c.src == nil {
		return
	}
	if c.cached != nil {
		c.state = State{Phase: PhaseDisplaying, Displayed: c.cached}
		return
	}
	c.state = State{Phase: PhaseLoading}
	c.dispatch(dsp.TimeRange{}, dsp.FreqRange{}, true, false)
}

func (c *Controller) dispatch(timeRange dsp.TimeRange, freqRange dsp.FreqRange, cache, zoomed bool) {
	c.seq++
	seq := c.seq
	src := c.src
	go func() {
		result, err := c.gen.Generate(src, timeRange, freqRange, c.width, c.height)
		c.completions <- Completion{seq: seq, result: result, err: err, cache: cache, zoomed: zoomed}
	}()
}

// Completions is the channel on which finished generations arrive.
func (c *Controller) Completions() <-chan Completion { return c.completions }

// Apply folds one completion into the state. Completions of superseded
// requests are dropped without effect.
func (c *Controller) Apply(done Completion) {
	if done.seq != c.seq {
		return
	}
	if done.err != nil {
		c.state = State{Phase: PhaseError, Err: done.err}
		return
	}
	c.state = State{Phase: PhaseDisplaying, Displayed: done.result, Zoomed: done.zoomed}
	if done.cache {
		c.cached = done.result
	}
}

// State returns the current view state snapshot.
func (c *Controller) State() State { return c.state }

// Source returns the currently loaded source, or nil.
func (c *Controller) Source() engine.Source { return c.src }
