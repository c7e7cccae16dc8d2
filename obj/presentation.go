package obj

import (
	"time"

	"github.com/milk9111/runred/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type PresentationTuning struct {
	FadeDuration   time.Duration
	FadeTo         float64
	DialogFade     time.Duration
	DialogDuration time.Duration
	Line           string
}

func DefaultPresentationTuning() PresentationTuning {
	return PresentationTuning{
		FadeDuration:   1500 * time.Millisecond,
		FadeTo:         0.85,
		DialogFade:     600 * time.Millisecond,
		DialogDuration: 4 * time.Second,
		Line:           "Red made it home.",
	}
}

// Presentation is the end-of-level sequence: fade the world toward black,
// then show a line of dialog for a while. It is one-shot.
type Presentation struct {
	Tuning PresentationTuning

	FadeAlpha   float64
	DialogAlpha float64

	started   bool
	startedAt time.Duration
	fade      *gween.Tween
	dialog    *gween.Tween
	hold      component.Deadline
	finished  bool
}

func NewPresentation(tuning PresentationTuning) *Presentation {
	return &Presentation{Tuning: tuning}
}

// Start begins the sequence. Later calls do nothing.
func (p *Presentation) Start(now time.Duration) {
	if p == nil || p.started {
		return
	}
	p.started = true
	p.startedAt = now
	p.fade = gween.New(0, float32(p.Tuning.FadeTo), seconds(p.Tuning.FadeDuration), ease.InOutQuad)
	p.dialog = gween.New(0, 1, seconds(p.Tuning.DialogFade), ease.OutQuad)
}

// Update recomputes the alphas for now.
func (p *Presentation) Update(now time.Duration) {
	if p == nil || !p.started || p.finished {
		return
	}
	t := seconds(now - p.startedAt)
	a, faded := p.fade.Set(t)
	p.FadeAlpha = float64(a)
	if !faded {
		return
	}

	if !p.hold.Armed() {
		p.hold.Arm(p.startedAt+p.Tuning.FadeDuration, p.Tuning.DialogDuration)
	}
	d, _ := p.dialog.Set(t - seconds(p.Tuning.FadeDuration))
	p.DialogAlpha = float64(d)

	if p.hold.Expired(now) {
		p.finished = true
	}
}

func (p *Presentation) Active() bool   { return p != nil && p.started }
func (p *Presentation) Finished() bool { return p != nil && p.finished }

// Line returns the dialog text, empty until the fade is done.
func (p *Presentation) Line() string {
	if p == nil || !p.hold.Armed() {
		return ""
	}
	return p.Tuning.Line
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
