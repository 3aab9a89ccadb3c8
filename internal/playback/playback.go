// Package playback auditions a decoded mono signal through the system
// audio device.
package playback

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/spectr/internal/source"
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

// initOto creates the process-wide audio context at the rate of the first
// played file. One file is loaded per process, so the rate never changes.
func initOto(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Player plays one decoded signal from the start.
type Player struct {
	otoPlayer *oto.Player
}

// New converts the signal to 16-bit PCM and prepares a paused player.
func New(pcm *source.PCM) (*Player, error) {
	ctx, err := initOto(pcm.SampleRate)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, len(pcm.Samples)*2)
	for i, s := range pcm.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(s*32767)))
	}

	p := &Player{otoPlayer: ctx.NewPlayer(bytes.NewReader(raw))}
	p.otoPlayer.SetVolume(0.8)
	return p, nil
}

// Toggle starts or pauses playback.
func (p *Player) Toggle() {
	if p.otoPlayer.IsPlaying() {
		p.otoPlayer.Pause()
	} else {
		p.otoPlayer.Play()
	}
}

// Playing reports whether audio is currently being fed to the device.
func (p *Player) Playing() bool { return p.otoPlayer.IsPlaying() }

// Close releases the player.
func (p *Player) Close() error { return p.otoPlayer.Close() }
