package ui

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"
)

// ASCII brightness ramp from darkest to brightest, used when colors are off.
const asciiRamp = " .:-=+*#%@"

// colorMode describes how image cells are rendered.
type colorMode uint8

const (
	colorOff     colorMode = iota // NO_COLOR or dumb terminal
	colorANSI16                   // basic 16-color
	colorANSI256                  // 256-color
	colorTrue                     // 24-bit truecolor
)

var (
	detectOnce sync.Once
	termColor  colorMode
)

// detectColorMode checks terminal capabilities once.
func detectColorMode() colorMode {
	detectOnce.Do(func() {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			termColor = colorOff
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		ct := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(ct, "truecolor"), strings.Contains(ct, "24bit"):
			termColor = colorTrue
		case strings.Contains(term, "256color"):
			termColor = colorANSI256
		case term == "", term == "dumb":
			termColor = colorOff
		default:
			termColor = colorANSI16
		}
	})
	return termColor
}

// imageRenderer converts an RGBA spectrogram into terminal rows.
// In color mode it uses "▀" with fg/bg colors to pack 2 pixel rows per
// terminal row; without color it maps pixels to brightness characters.
type imageRenderer struct {
	mode colorMode
	sb   strings.Builder
}

func newImageRenderer() *imageRenderer {
	return &imageRenderer{mode: detectColorMode()}
}

// render scales the image onto outW x outH terminal cells and returns one
// string per terminal row.
func (r *imageRenderer) render(img *image.RGBA, outW, outH int) []string {
	if img == nil || outW <= 0 || outH <= 0 {
		return nil
	}
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil
	}

	rows := make([]string, 0, outH)
	if r.mode == colorOff {
		for row := range outH {
			rows = append(rows, r.renderASCIIRow(img, srcW, srcH, outW, outH, row))
		}
		return rows
	}
	for row := range outH {
		rows = append(rows, r.renderHalfBlockRow(img, srcW, srcH, outW, outH, row))
	}
	return rows
}

// renderHalfBlockRow draws one terminal row covering 2 source pixel rows:
// fg = top pixel, bg = bottom pixel.
func (r *imageRenderer) renderHalfBlockRow(img *image.RGBA, srcW, srcH, outW, outH, row int) string {
	r.sb.Reset()
	r.sb.Grow(outW * 24)

	pixelRows := outH * 2
	topPixRow := row * 2
	botPixRow := row*2 + 1

	var lastFg, lastBg string
	for col := range outW {
		srcX := col * srcW / outW
		srcY := topPixRow * srcH / pixelRows
		tc := img.RGBAAt(srcX, srcY)

		botSrcY := botPixRow * srcH / pixelRows
		if botSrcY >= srcH {
			botSrcY = srcH - 1
		}
		bc := img.RGBAAt(srcX, botSrcY)

		fg := fgColorSeq(r.mode, tc.R, tc.G, tc.B)
		bg := bgColorSeq(r.mode, bc.R, bc.G, bc.B)
		if fg != lastFg {
			r.sb.WriteString(fg)
			lastFg = fg
		}
		if bg != lastBg {
			r.sb.WriteString(bg)
			lastBg = bg
		}
		r.sb.WriteString("▀")
	}
	r.sb.WriteString(ansiReset)
	return r.sb.String()
}

func (r *imageRenderer) renderASCIIRow(img *image.RGBA, srcW, srcH, outW, outH, row int) string {
	r.sb.Reset()
	r.sb.Grow(outW)
	for col := range outW {
		srcX := col * srcW / outW
		srcY := row * srcH / outH
		c := img.RGBAAt(srcX, srcY)
		r.sb.WriteByte(brightnessChar(luminance(c.R, c.G, c.B)))
	}
	return r.sb.String()
}

// brightnessChar maps a 0-255 luminance to an ASCII character.
func brightnessChar(lum uint8) byte {
	idx := int(lum) * (len(asciiRamp) - 1) / 255
	return asciiRamp[idx]
}

// luminance computes perceived brightness (ITU-R BT.601).
func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

const ansiReset = "\x1b[0m"

// fgColorSeq returns an ANSI foreground color escape for the given RGB.
func fgColorSeq(mode colorMode, r, g, b uint8) string {
	switch mode {
	case colorTrue:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	case colorANSI256:
		return fmt.Sprintf("\x1b[38;5;%dm", ansi256Index(r, g, b))
	case colorANSI16:
		idx := ansi16Index(r, g, b)
		if idx < 8 {
			return fmt.Sprintf("\x1b[%dm", 30+idx)
		}
		return fmt.Sprintf("\x1b[%dm", 90+idx-8)
	default:
		return ""
	}
}

// bgColorSeq returns an ANSI background color escape for the given RGB.
func bgColorSeq(mode colorMode, r, g, b uint8) string {
	switch mode {
	case colorTrue:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	case colorANSI256:
		return fmt.Sprintf("\x1b[48;5;%dm", ansi256Index(r, g, b))
	case colorANSI16:
		idx := ansi16Index(r, g, b)
		if idx < 8 {
			return fmt.Sprintf("\x1b[%dm", 40+idx)
		}
		return fmt.Sprintf("\x1b[%dm", 100+idx-8)
	default:
		return ""
	}
}

func ansi256Index(r, g, b uint8) int {
	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255
	return 16 + 36*ri + 6*gi + bi
}

// ansi16Index maps an RGB value to the nearest ANSI 16 palette slot.
func ansi16Index(r, g, b uint8) int {
	best := 0
	bestDist := 1<<31 - 1
	for i, c := range ansi16Palette {
		dr := int(r) - int(c[0])
		dg := int(g) - int(c[1])
		db := int(b) - int(c[2])
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

var ansi16Palette = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}
