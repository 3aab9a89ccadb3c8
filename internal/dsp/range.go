package dsp

// TimeRange is a closed interval of seconds. The zero value means "full
// extent" and resolves lazily against the source duration.
type TimeRange struct {
	Lo, Hi float64
	set    bool
}

// NewTimeRange returns an explicitly requested time range.
func NewTimeRange(lo, hi float64) TimeRange {
	return TimeRange{Lo: lo, Hi: hi, set: true}
}

// IsFull reports whether the range means the full extent.
func (r TimeRange) IsFull() bool { return !r.set }

// Span returns the range width in seconds.
func (r TimeRange) Span() float64 { return r.Hi - r.Lo }

// Resolve clamps the range against [0, duration]. A full range resolves to
// [0, duration]. The result is never inverted.
func (r TimeRange) Resolve(duration float64) TimeRange {
	if !r.set {
		return TimeRange{Lo: 0, Hi: duration, set: true}
	}
	lo := clamp(r.Lo, 0, duration)
	hi := clamp(r.Hi, lo, duration)
	return TimeRange{Lo: lo, Hi: hi, set: true}
}

// FreqRange is a closed interval of Hz. The zero value means "full extent"
// and resolves lazily against the Nyquist frequency.
type FreqRange struct {
	Lo, Hi float64
	set    bool
}

// NewFreqRange returns an explicitly requested frequency range.
func NewFreqRange(lo, hi float64) FreqRange {
	return FreqRange{Lo: lo, Hi: hi, set: true}
}

// IsFull reports whether the range means the full extent.
func (r FreqRange) IsFull() bool { return !r.set }

// Span returns the range width in Hz.
func (r FreqRange) Span() float64 { return r.Hi - r.Lo }

// Resolve clamps the range against [0, nyquist]. A full range resolves to
// [0, nyquist]. The result is never inverted.
func (r FreqRange) Resolve(nyquist float64) FreqRange {
	if !r.set {
		return FreqRange{Lo: 0, Hi: nyquist, set: true}
	}
	lo := clamp(r.Lo, 0, nyquist)
	hi := clamp(r.Hi, lo, nyquist)
	return FreqRange{Lo: lo, Hi: hi, set: true}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
