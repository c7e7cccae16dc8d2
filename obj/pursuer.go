package obj

import (
	"fmt"
	"log"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/component"
)

// PursuitMode selects how the pursuer moves.
type PursuitMode string

const (
	// PursuitAdvance runs toward TargetX at the paced speed and stops there
	// for good.
	PursuitAdvance PursuitMode = "advance"
	// PursuitMirror copies the player's horizontal movement with its own
	// collision, and catches the player on contact.
	PursuitMirror PursuitMode = "mirror"
)

type PursuerTuning struct {
	Mode      PursuitMode
	StartX    float64
	TargetX   float64
	Speed     float64
	FallbackY float64
	Width     int
	Height    int
	Gravity   float64
	// StepTolerance only matters in mirror mode.
	StepTolerance float64
}

func DefaultPursuerTuning() PursuerTuning {
	return PursuerTuning{
		Mode:          PursuitAdvance,
		StartX:        40,
		TargetX:       1600,
		Speed:         6,
		FallbackY:     13 * common.TileSize,
		Width:         64,
		Height:        48,
		Gravity:       0.85,
		StepTolerance: 0.4 * common.TileSize,
	}
}

// Pacer decides the pursuer's speed for a frame from the distance to the
// player (player x minus pursuer x) and the configured base speed.
type Pacer interface {
	Speed(gap, base float64) float64
}

// ConstantPacer always runs at the base speed.
type ConstantPacer struct{}

func (ConstantPacer) Speed(_, base float64) float64 { return base }

const pacerDispatchScript = `
__result := speed(__gap, __base)
`

// ScriptPacer asks a tengo script for the speed. The script must define
// speed := func(gap, base) { ... } returning a number.
type ScriptPacer struct {
	name     string
	compiled *tengo.Compiled
	failed   bool
}

func NewScriptPacer(name string, src []byte) (*ScriptPacer, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + pacerDispatchScript))
	_ = script.Add("__gap", 0.0)
	_ = script.Add("__base", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pursuer: compile %s: %w", name, err)
	}
	return &ScriptPacer{name: name, compiled: compiled}, nil
}

// Speed runs the script. Any script failure falls back to base and is logged
// once.
func (sp *ScriptPacer) Speed(gap, base float64) float64 {
	if sp == nil || sp.compiled == nil {
		return base
	}
	if err := sp.run(gap, base); err != nil {
		if !sp.failed {
			log.Printf("pursuer: script %s: %v", sp.name, err)
			sp.failed = true
		}
		return base
	}
	s, ok := tengo.ToFloat64(sp.compiled.Get("__result").Object())
	if !ok {
		return base
	}
	if s < 0 {
		return 0
	}
	return s
}

func (sp *ScriptPacer) run(gap, base float64) error {
	if err := sp.compiled.Set("__gap", gap); err != nil {
		return err
	}
	if err := sp.compiled.Set("__base", base); err != nil {
		return err
	}
	return sp.compiled.Run()
}

// GroundProbe returns the ground height under x, or fallback.
type GroundProbe func(x, fallback float64) float64

// Pursuer is the antagonist. In advance mode it follows a one-way
// running -> stopped state machine.
type Pursuer struct {
	Body   *component.KinematicBody
	Anim   *component.Sequencer
	Tuning PursuerTuning

	pacer   Pacer
	probe   GroundProbe
	running bool
	moving  bool
}

func NewPursuer(tuning PursuerTuning, pacer Pacer, probe GroundProbe, sequences map[component.SequenceID]component.Sequence, now time.Duration) *Pursuer {
	if pacer == nil {
		pacer = ConstantPacer{}
	}
	p := &Pursuer{
		Body:    component.NewKinematicBody(tuning.StartX, tuning.FallbackY, tuning.Width, tuning.Height, tuning.StepTolerance),
		Anim:    component.NewSequencer(component.SeqIdle, sequences, now),
		Tuning:  tuning,
		pacer:   pacer,
		probe:   probe,
		running: tuning.Mode != PursuitMirror,
	}
	p.syncSize()
	p.snapToGround()
	return p
}

// Running reports whether an advancing pursuer has yet to reach its target.
func (p *Pursuer) Running() bool { return p != nil && p.running }

// Advance moves toward TargetX by speed and snaps to the ground. Once the
// target is reached x never changes again.
func (p *Pursuer) Advance(speed float64) {
	if p == nil {
		return
	}
	p.moving = false
	if p.running {
		if p.Body.X >= p.Tuning.TargetX {
			p.running = false
		} else {
			p.Body.X += speed
			p.moving = speed != 0
			if p.Body.X >= p.Tuning.TargetX {
				p.running = false
			}
		}
	}
	p.snapToGround()
}

// Mirror moves the pursuer by the player's dx through its own collision.
func (p *Pursuer) Mirror(dx, gravity float64, platforms []common.Rect) {
	if p == nil {
		return
	}
	p.moving = dx != 0
	p.Body.ResolveMotion(dx, gravity, platforms)
}

// Update runs one frame of the configured mode and advances the animation.
func (p *Pursuer) Update(now time.Duration, player *Player, world *TileWorld) {
	if p == nil {
		return
	}
	switch p.Tuning.Mode {
	case PursuitMirror:
		var dx float64
		if player != nil {
			dx = player.LastDX
		}
		var platforms []common.Rect
		if world != nil {
			platforms = world.PlatformsNear(p.Body.Rect.Inflate(int(abs(dx))+common.TileSize, int(abs(p.Body.VelocityY))+common.TileSize))
		}
		p.Mirror(dx, p.Tuning.Gravity, platforms)
	default:
		gap := 0.0
		if player != nil {
			gap = player.Body.X - p.Body.X
		}
		p.Advance(p.pacer.Speed(gap, p.Tuning.Speed))
	}

	if p.moving {
		p.Anim.Select(component.SeqRun)
	} else {
		p.Anim.Select(component.SeqIdle)
	}
	p.Anim.Advance(now)
	p.syncSize()
}

// Caught reports whether a mirroring pursuer has reached the player's left
// edge.
func (p *Pursuer) Caught(player common.Rect) bool {
	if p == nil || p.Tuning.Mode != PursuitMirror {
		return false
	}
	r := p.Body.Rect
	return r.Right() >= player.Left() && r.Left() < player.Right()
}

// Reset puts a mirroring pursuer back at its start. An advancing pursuer
// keeps its position and state.
func (p *Pursuer) Reset() {
	if p == nil || p.Tuning.Mode != PursuitMirror {
		return
	}
	p.Body.Teleport(p.Tuning.StartX, p.Tuning.FallbackY)
	p.snapToGround()
}

// SetPacer swaps the pacing strategy, e.g. after a script reload.
func (p *Pursuer) SetPacer(pacer Pacer) {
	if p == nil {
		return
	}
	if pacer == nil {
		pacer = ConstantPacer{}
	}
	p.pacer = pacer
}

func (p *Pursuer) snapToGround() {
	if p.probe != nil && p.Tuning.Mode != PursuitMirror {
		p.Body.Y = p.probe(p.Body.X, p.Tuning.FallbackY)
	}
	p.Body.Anchor()
}

func (p *Pursuer) syncSize() {
	if w, h := p.Anim.Size(); w > 0 && h > 0 {
		p.Body.SetSize(w, h)
	}
}

func (p *Pursuer) Frame() component.Frame {
	if p == nil {
		return nil
	}
	return p.Anim.Current()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
