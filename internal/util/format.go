package util

import "fmt"

// FormatTimestamp formats a position in seconds as mm:ss.cc.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds * 100)
	m := total / 6000
	s := (total / 100) % 60
	c := total % 100
	return fmt.Sprintf("%02d:%02d.%02d", m, s, c)
}

// FormatFrequency formats a frequency in Hz, switching to kHz with one
// decimal above 1000 Hz.
func FormatFrequency(hz float64) string {
	if hz < 0 {
		hz = 0
	}
	if hz >= 1000 {
		return fmt.Sprintf("%.1f kHz", hz/1000)
	}
	return fmt.Sprintf("%.0f Hz", hz)
}
