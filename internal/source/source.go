package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrDecode is the kind of every failure to open or decode an audio file.
var ErrDecode = errors.New("cannot decode audio")

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt returns true if the extension is a supported audio format.
func IsSupportedExt(ext string) bool {
	return audioExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of supported audio formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

// PCM is a fully decoded mono signal. Samples are channel-averaged and
// normalized to [-1, 1].
type PCM struct {
	Samples    []float64
	SampleRate int
}

// SampleCount returns the number of mono samples.
func (p *PCM) SampleCount() int { return len(p.Samples) }

// Duration returns the signal length in seconds.
func (p *PCM) Duration() float64 {
	if p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// Source is an immutable handle to one audio file. The file is decoded at
// most once, on the first PCM call.
type Source struct {
	path  string
	title string

	once sync.Once
	pcm  *PCM
	err  error
}

// Open creates a Source for the given path. The file must exist and carry a
// supported extension; decoding is deferred until PCM is called.
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupportedExt(ext) {
		return nil, fmt.Errorf("unsupported format %s (supported: %s)", ext, SupportedExtsList())
	}
	return &Source{path: path, title: readTitle(path)}, nil
}

// PCM decodes the file into a mono signal. The result is cached; subsequent
// calls return the same PCM. Any failure is reported as ErrDecode.
func (s *Source) PCM() (*PCM, error) {
	s.once.Do(func() {
		pcm, err := decodeFile(s.path)
		if err != nil {
			s.err = fmt.Errorf("%w: %v", ErrDecode, err)
			return
		}
		s.pcm = pcm
	})
	return s.pcm, s.err
}

// Path returns the file path the source was opened with.
func (s *Source) Path() string { return s.path }

// Title returns the display title (ID3v2 tag for MP3, filename otherwise).
func (s *Source) Title() string { return s.title }
