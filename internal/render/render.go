package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/olivier-w/spectr/internal/dsp"
)

// ErrUnavailable is returned when the magnitude table has nothing to draw.
var ErrUnavailable = errors.New("nothing to render")

// normSampleFrames is roughly how many frames the normalization pass visits.
const normSampleFrames = 100

// Render draws a magnitude table onto a freshly allocated RGBA image of the
// given size. The requested frequency range is resolved against the Nyquist
// frequency and returned; row 0 of the image is the highest frequency. Rows
// are filled in parallel, each writing a disjoint slice of the pixel buffer.
func Render(table *dsp.MagnitudeTable, sampleRate int, requested dsp.FreqRange, outWidth, outHeight int) (*image.RGBA, dsp.FreqRange, error) {
	if table == nil || table.NumFrames == 0 || table.NumBins == 0 || outWidth <= 0 || outHeight <= 0 {
		return nil, dsp.FreqRange{}, ErrUnavailable
	}

	nyquist := float64(sampleRate) / 2
	fr := requested.Resolve(nyquist)

	binHz := nyquist / float64(table.NumBins)
	minBin := clampBin(int(fr.Lo/binHz), table.NumBins)
	maxBin := clampBin(int(fr.Hi/binHz), table.NumBins)
	if maxBin < minBin {
		maxBin = minBin
	}

	minVal, maxVal := normWindow(table, minBin, maxBin)
	lut := colorTable()

	img := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))

	rows := make(chan int)
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers > outHeight {
		workers = outHeight
	}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				fillRow(img, y, table, minBin, maxBin, minVal, maxVal, &lut)
			}
		}()
	}
	for y := range outHeight {
		rows <- y
	}
	close(rows)
	wg.Wait()

	return img, fr, nil
}

// normWindow picks the decibel normalization window by sampling evenly
// spaced frames within the visible bin range, then clamping the observed
// extremes into [dbFloor, dbCeil]. With no finite values the window
// degenerates to the full [dbFloor, dbCeil] and the image renders flat.
func normWindow(table *dsp.MagnitudeTable, minBin, maxBin int) (minVal, maxVal float64) {
	step := table.NumFrames / normSampleFrames
	if step < 1 {
		step = 1
	}

	minVal = math.Inf(1)
	maxVal = math.Inf(-1)
	for f := 0; f < table.NumFrames; f += step {
		for b := minBin; b <= maxBin; b++ {
			v := table.At(f, b)
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}

	if minVal < dbFloor {
		minVal = dbFloor
	}
	if maxVal > dbCeil {
		maxVal = dbCeil
	}
	if minVal >= maxVal {
		return dbFloor, dbCeil
	}
	return minVal, maxVal
}

func fillRow(img *image.RGBA, y int, table *dsp.MagnitudeTable, minBin, maxBin int, minVal, maxVal float64, lut *[256]color.RGBA) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Row 0 is the top of the image and maps to the highest visible bin.
	denom := height - 1
	if denom < 1 {
		denom = 1
	}
	bin := maxBin - int(float64(y)/float64(denom)*float64(maxBin-minBin))
	if bin < minBin {
		bin = minBin
	}
	if bin > maxBin {
		bin = maxBin
	}

	span := maxVal - minVal
	row := img.Pix[y*img.Stride : y*img.Stride+width*4]
	for x := range width {
		frame := x * table.NumFrames / width
		v := table.At(frame, bin)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			v = minVal
		}
		norm := (v - minVal) / span
		if norm < 0 {
			norm = 0
		} else if norm > 1 {
			norm = 1
		}
		c := lut[int(norm*255)]
		off := x * 4
		row[off] = c.R
		row[off+1] = c.G
		row[off+2] = c.B
		row[off+3] = c.A
	}
}

func clampBin(bin, numBins int) int {
	if bin < 0 {
		return 0
	}
	if bin > numBins-1 {
		return numBins - 1
	}
	return bin
}
