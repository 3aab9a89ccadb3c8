package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// decodeFile detects format by file extension and decodes the whole file
// into a mono signal.
func decodeFile(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return decodeMP3(f)
	case ".wav":
		return decodeWAV(f)
	case ".flac":
		return decodeFLAC(f)
	case ".ogg":
		return decodeOGG(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// decodeMP3 reads the decoder's 16-bit stereo output and averages the
// channel pair per frame.
func decodeMP3(f *os.File) (*PCM, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	// go-mp3 always emits 16-bit LE stereo: 4 bytes per sample frame.
	samples := make([]float64, 0, dec.Length()/4)
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		for i := 0; i+3 < n; i += 4 {
			l := int16(binary.LittleEndian.Uint16(buf[i:]))
			r := int16(binary.LittleEndian.Uint16(buf[i+2:]))
			samples = append(samples, (float64(l)+float64(r))/2/32768.0)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return &PCM{Samples: samples, SampleRate: dec.SampleRate()}, nil
}

func decodeWAV(f *os.File) (*PCM, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("invalid WAV channel count")
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	scale := float64(int64(1) << (bitDepth - 1))
	for i := range frames {
		sum := 0.0
		for ch := range channels {
			v := float64(buf.Data[i*channels+ch])
			if bitDepth == 8 {
				// 8-bit WAV is unsigned
				v -= 128
			}
			sum += v
		}
		samples[i] = sum / float64(channels) / scale
	}

	return &PCM{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}

func decodeFLAC(f *os.File) (*PCM, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	scale := float64(int64(1) << (info.BitsPerSample - 1))
	samples := make([]float64, 0, info.NSamples)

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding FLAC: %w", err)
		}

		nSamples := int(frame.Subframes[0].NSamples)
		for i := range nSamples {
			sum := 0.0
			for ch := range channels {
				sum += float64(frame.Subframes[ch].Samples[i])
			}
			samples = append(samples, sum/float64(channels)/scale)
		}
	}

	return &PCM{Samples: samples, SampleRate: int(info.SampleRate)}, nil
}

func decodeOGG(f *os.File) (*PCM, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}

	channels := reader.Channels()
	samples := make([]float64, 0, reader.Length())
	buf := make([]float32, 4096*channels)
	for {
		n, err := reader.Read(buf)
		// n is always a multiple of the channel count
		for i := 0; i+channels <= n; i += channels {
			sum := 0.0
			for ch := range channels {
				sum += float64(buf[i+ch])
			}
			samples = append(samples, sum/float64(channels))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return &PCM{Samples: samples, SampleRate: reader.SampleRate()}, nil
}
