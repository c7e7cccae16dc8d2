package component

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SequenceID names one of an entity's animation sequences.
type SequenceID string

const (
	SeqIdle  SequenceID = "idle"
	SeqRun   SequenceID = "run"
	SeqJump  SequenceID = "jump"
	SeqClimb SequenceID = "climb"
	SeqTurn  SequenceID = "turn"
)

// Frame is anything with pixel bounds. *ebiten.Image satisfies it.
type Frame interface {
	Bounds() image.Rectangle
}

// Sequence is an ordered frame list with a fixed time between frames.
type Sequence struct {
	Frames []Frame
	Period time.Duration
}

// FramePeriod converts an fps value to the time each frame stays on screen.
// fps <= 0 falls back to 12.
func FramePeriod(fps int) time.Duration {
	if fps <= 0 {
		fps = 12
	}
	return time.Second / time.Duration(fps)
}

// Sequencer plays one active sequence at a time. Playback is driven by the
// time passed to Advance, never by the number of calls.
type Sequencer struct {
	sequences map[SequenceID]Sequence
	active    SequenceID
	index     int
	last      time.Duration
	current   Frame
}

func NewSequencer(initial SequenceID, sequences map[SequenceID]Sequence, now time.Duration) *Sequencer {
	s := &Sequencer{
		sequences: make(map[SequenceID]Sequence, len(sequences)),
		active:    initial,
		last:      now,
	}
	for id, seq := range sequences {
		s.sequences[id] = seq
	}
	if seq := s.sequences[initial]; len(seq.Frames) > 0 {
		s.current = seq.Frames[0]
	}
	return s
}

// Add registers or replaces a sequence.
func (s *Sequencer) Add(id SequenceID, seq Sequence) {
	if s == nil {
		return
	}
	s.sequences[id] = seq
	if s.current == nil && id == s.active && len(seq.Frames) > 0 {
		s.current = seq.Frames[0]
	}
}

// Select makes id the active sequence. Switching to a different sequence
// rewinds it to frame 0. It reports whether the sequence changed.
func (s *Sequencer) Select(id SequenceID) bool {
	if s == nil || id == s.active {
		return false
	}
	s.active = id
	s.index = 0
	return true
}

// Advance steps the active sequence when more than its period has passed
// since the last step and returns the frame to display. An empty sequence
// keeps showing whatever frame was shown last.
func (s *Sequencer) Advance(now time.Duration) Frame {
	if s == nil {
		return nil
	}
	seq := s.sequences[s.active]
	n := len(seq.Frames)
	if n == 0 {
		return s.current
	}
	if s.index >= n {
		s.index %= n
	}
	period := seq.Period
	if period <= 0 {
		period = FramePeriod(0)
	}
	if now-s.last > period {
		s.last = now
		s.index = (s.index + 1) % n
	}
	s.current = seq.Frames[s.index]
	return s.current
}

func (s *Sequencer) Active() SequenceID {
	if s == nil {
		return ""
	}
	return s.active
}

func (s *Sequencer) Index() int {
	if s == nil {
		return 0
	}
	return s.index
}

func (s *Sequencer) Current() Frame {
	if s == nil {
		return nil
	}
	return s.current
}

// Size returns the pixel size of the current frame.
func (s *Sequencer) Size() (int, int) {
	if s == nil || s.current == nil {
		return 0, 0
	}
	b := s.current.Bounds()
	return b.Dx(), b.Dy()
}

// SliceSheet cuts count frames of frameW x frameH out of a sheet laid out
// left-to-right, top-to-bottom, starting at frame start. count <= 0 reads
// every frame after start.
func SliceSheet(sheet *ebiten.Image, frameW, frameH, start, count int) []*ebiten.Image {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return nil
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	maxFrames := cols*rows - start
	if maxFrames <= 0 {
		return nil
	}
	if count <= 0 || count > maxFrames {
		count = maxFrames
	}
	frames := make([]*ebiten.Image, count)
	for i := 0; i < count; i++ {
		idx := start + i
		sx := (idx % cols) * frameW
		sy := (idx / cols) * frameH
		r := image.Rect(sx, sy, sx+frameW, sy+frameH).Add(bounds.Min)
		frames[i] = sheet.SubImage(r).(*ebiten.Image)
	}
	return frames
}

// Frames converts images to the Frame interface.
func Frames(images []*ebiten.Image) []Frame {
	out := make([]Frame, 0, len(images))
	for _, img := range images {
		if img == nil {
			continue
		}
		out = append(out, img)
	}
	return out
}
