package assets

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

func audioCtx() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(sampleRate)
		}
	})
	return audioContext
}

// Music is a background track. A nil *Music is silent, so a missing track
// costs nothing.
type Music struct {
	player *audio.Player
	volume float64
	muted  bool
}

// LoadMusic decodes an .ogg or .wav track. With loop set the track repeats
// forever.
func LoadMusic(path string, loop bool) (*Music, error) {
	data, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read music %s: %w", path, err)
	}
	ctx := audioCtx()

	var stream io.ReadSeeker
	var length int64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("assets: decode ogg %s: %w", path, err)
		}
		stream, length = s, s.Length()
	case ".wav":
		s, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %s: %w", path, err)
		}
		stream, length = s, s.Length()
	default:
		return nil, fmt.Errorf("assets: unsupported audio format: %s", path)
	}

	if loop {
		stream = audio.NewInfiniteLoop(stream, length)
	}
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("assets: music player %s: %w", path, err)
	}
	return &Music{player: player, volume: 1}, nil
}

func (m *Music) Play() {
	if m == nil {
		return
	}
	m.apply()
	m.player.Play()
}

func (m *Music) Pause() {
	if m == nil {
		return
	}
	m.player.Pause()
}

func (m *Music) SetVolume(v float64) {
	if m == nil {
		return
	}
	m.volume = v
	m.apply()
}

func (m *Music) SetMuted(muted bool) {
	if m == nil {
		return
	}
	m.muted = muted
	m.apply()
}

func (m *Music) Muted() bool { return m != nil && m.muted }

func (m *Music) apply() {
	v := m.volume
	if m.muted {
		v = 0
	}
	m.player.SetVolume(v)
}

func (m *Music) Close() error {
	if m == nil {
		return nil
	}
	return m.player.Close()
}
