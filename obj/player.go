package obj

import (
	"math"
	"time"

	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/component"
)

// Capabilities switches the optional parts of the player controller on.
type Capabilities struct {
	Climb    bool
	TurnAnim bool
	Powerups bool
}

func AllCapabilities() Capabilities {
	return Capabilities{Climb: true, TurnAnim: true, Powerups: true}
}

// PlayerTuning holds the player's movement constants.
type PlayerTuning struct {
	SpawnX    float64
	BaselineY float64
	// Width/Height is the collision size used until the first frame is shown.
	Width  int
	Height int

	Speed         float64
	JumpPower     float64
	Gravity       float64
	StepTolerance float64
	ClimbFactor   float64

	SprintMultiplier    float64
	SprintGravityScale  float64
	SprintDuration      time.Duration
	JumpBoostMultiplier float64
	JumpBoostDuration   time.Duration
	TurnDuration        time.Duration
	// VineRegrab is how long a jump off a vine ignores vines.
	VineRegrab time.Duration
}

func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		SpawnX:              100,
		BaselineY:           13 * common.TileSize,
		Width:               40,
		Height:              64,
		Speed:               5,
		JumpPower:           12,
		Gravity:             0.85,
		StepTolerance:       0.4 * common.TileSize,
		ClimbFactor:         0.6,
		SprintMultiplier:    1.8,
		SprintGravityScale:  0.8,
		SprintDuration:      3 * time.Second,
		JumpBoostMultiplier: 1.5,
		JumpBoostDuration:   4 * time.Second,
		TurnDuration:        300 * time.Millisecond,
		VineRegrab:          250 * time.Millisecond,
	}
}

// playerState is a movement mode. Only the ground and vine modes exist; the
// animation sequence is picked separately by priority.
type playerState interface {
	Name() string
	Enter(p *Player)
	Exit(p *Player)
	Move(p *Player, now time.Duration, in Intents, dx float64, world *TileWorld)
}

// setState helper switches states and calls Enter.
func (p *Player) setState(s playerState) {
	if p.state == s {
		return
	}
	if p.state != nil {
		p.state.Exit(p)
	}
	p.state = s
	p.state.Enter(p)
}

type groundState struct{}

func (groundState) Name() string  { return "ground" }
func (groundState) Enter(*Player) {}
func (groundState) Exit(*Player)  {}
func (groundState) Move(p *Player, now time.Duration, in Intents, dx float64, world *TileWorld) {
	if in.JumpPressed {
		p.Body.TryJump(p.jumpPower)
	}
	p.Body.ResolveMotion(dx, p.Tuning.Gravity*p.gravityScale, p.platformsFor(world, dx))
}

type vineState struct{}

func (vineState) Name() string { return "vine" }
func (vineState) Enter(p *Player) {
	p.Body.VelocityY = 0
}
func (vineState) Exit(*Player) {}
func (vineState) Move(p *Player, now time.Duration, in Intents, dx float64, world *TileWorld) {
	platforms := p.platformsFor(world, dx)
	p.Body.ResolveHorizontal(dx, platforms)

	if in.JumpPressed && p.Body.TryJump(p.jumpPower) {
		p.leaveVine(now)
		p.Body.ResolveVertical(p.Tuning.Gravity*p.gravityScale, platforms)
		return
	}

	if dir := in.ClimbY(); dir != 0 {
		p.Body.Climb(dir*p.speed*p.Tuning.ClimbFactor, platforms)
		p.Body.Airborne = false
		return
	}
	// hanging: no gravity, but no footing to jump from either
	p.Body.VelocityY = 0
	p.Body.Airborne = true
}

// singletons for each state to avoid allocating on every transition
var (
	stateGround playerState = &groundState{}
	stateVine   playerState = &vineState{}
)

// Player composes a kinematic body, an animation sequencer, timed buffs and
// the vine climbing mode.
type Player struct {
	Body   *component.KinematicBody
	Anim   *component.Sequencer
	Tuning PlayerTuning
	Caps   Capabilities

	speed        float64
	baseSpeed    float64
	jumpPower    float64
	gravityScale float64

	facingRight bool
	moving      bool
	// LastDX is the horizontal distance actually moved in the last Update.
	LastDX float64

	sprint    component.Deadline
	jumpBoost component.Deadline
	turn      component.Deadline
	vineGrace component.Deadline

	onVine bool
	state  playerState
}

func NewPlayer(tuning PlayerTuning, caps Capabilities, sequences map[component.SequenceID]component.Sequence, now time.Duration) *Player {
	p := &Player{
		Body:         component.NewKinematicBody(tuning.SpawnX, tuning.BaselineY, tuning.Width, tuning.Height, tuning.StepTolerance),
		Anim:         component.NewSequencer(component.SeqIdle, sequences, now),
		Tuning:       tuning,
		Caps:         caps,
		speed:        tuning.Speed,
		baseSpeed:    tuning.Speed,
		jumpPower:    tuning.JumpPower,
		gravityScale: 1,
		facingRight:  true,
		state:        stateGround,
	}
	p.state.Enter(p)
	p.syncSize()
	return p
}

// Update runs one frame: buff expiry, movement, then animation.
func (p *Player) Update(now time.Duration, in Intents, world *TileWorld) {
	if p == nil {
		return
	}
	p.expireBuffs(now)

	dx := in.MoveX() * p.speed
	p.face(now, dx)
	p.moving = dx != 0

	if p.onVine && p.Caps.Climb {
		p.setState(stateVine)
	} else {
		p.setState(stateGround)
	}

	before := p.Body.X
	p.state.Move(p, now, in, dx, world)
	p.LastDX = p.Body.X - before

	p.Anim.Select(p.desiredSequence(now))
	p.Anim.Advance(now)
	p.syncSize()
}

func (p *Player) face(now time.Duration, dx float64) {
	if dx == 0 {
		return
	}
	right := dx > 0
	if right == p.facingRight {
		return
	}
	p.facingRight = right
	if p.Caps.TurnAnim {
		p.turn.Arm(now, p.Tuning.TurnDuration)
	}
}

// desiredSequence picks the animation: turning, then climbing, then
// airborne, then running, then idle.
func (p *Player) desiredSequence(now time.Duration) component.SequenceID {
	switch {
	case p.Caps.TurnAnim && p.turn.IsActive(now):
		return component.SeqTurn
	case p.state == stateVine:
		return component.SeqClimb
	case p.Body.Airborne:
		return component.SeqJump
	case p.moving:
		return component.SeqRun
	}
	return component.SeqIdle
}

// syncSize resizes the body to the current frame, keeping the feet in place.
func (p *Player) syncSize() {
	if w, h := p.Anim.Size(); w > 0 && h > 0 {
		p.Body.SetSize(w, h)
	}
}

// platformsFor returns the platforms near the area the body can reach this
// frame.
func (p *Player) platformsFor(world *TileWorld, dx float64) []common.Rect {
	if world == nil {
		return nil
	}
	reachX := int(math.Abs(dx)) + common.TileSize
	reachY := int(math.Abs(p.Body.VelocityY)+p.Tuning.Gravity*p.gravityScale+p.jumpPower) + common.TileSize
	return world.PlatformsNear(p.Body.Rect.Inflate(reachX, reachY))
}

func (p *Player) expireBuffs(now time.Duration) {
	if p.sprint.Expired(now) {
		p.sprint.Disarm()
		p.speed = p.baseSpeed
		p.gravityScale = 1
	}
	if p.jumpBoost.Expired(now) {
		p.jumpBoost.Disarm()
		p.jumpPower = p.Tuning.JumpPower
	}
}

// ActivateSprint applies the sprint buff. Collecting another sprint while one
// is running restarts the timer without stacking.
func (p *Player) ActivateSprint(now time.Duration) {
	if p == nil || !p.Caps.Powerups {
		return
	}
	p.sprint.Arm(now, p.Tuning.SprintDuration)
	p.speed = p.baseSpeed * p.Tuning.SprintMultiplier
	p.gravityScale = p.Tuning.SprintGravityScale
}

func (p *Player) ActivateJumpBoost(now time.Duration) {
	if p == nil || !p.Caps.Powerups {
		return
	}
	p.jumpBoost.Arm(now, p.Tuning.JumpBoostDuration)
	p.jumpPower = p.Tuning.JumpPower * p.Tuning.JumpBoostMultiplier
}

// Apply activates the buff a pickup grants.
func (p *Player) Apply(kind PickupKind, now time.Duration) {
	switch kind {
	case PickupSprint:
		p.ActivateSprint(now)
	case PickupJumpBoost:
		p.ActivateJumpBoost(now)
	}
}

func (p *Player) SprintActive(now time.Duration) bool    { return p != nil && p.sprint.IsActive(now) }
func (p *Player) JumpBoostActive(now time.Duration) bool { return p != nil && p.jumpBoost.IsActive(now) }

// SprintRemaining and JumpBoostRemaining feed the HUD.
func (p *Player) SprintRemaining(now time.Duration) time.Duration {
	if p == nil {
		return 0
	}
	return p.sprint.Remaining(now)
}

func (p *Player) JumpBoostRemaining(now time.Duration) time.Duration {
	if p == nil {
		return 0
	}
	return p.jumpBoost.Remaining(now)
}

func (p *Player) Speed() float64     { return p.speed }
func (p *Player) BaseSpeed() float64 { return p.baseSpeed }
func (p *Player) JumpPower() float64 { return p.jumpPower }
func (p *Player) GravityScale() float64 {
	return p.gravityScale
}

// SetOnVine records whether the player overlaps a vine. It takes effect on
// the next Update.
func (p *Player) SetOnVine(on bool, now time.Duration) {
	if p == nil {
		return
	}
	if on && p.vineGrace.IsActive(now) {
		on = false
	}
	p.onVine = on
}

func (p *Player) OnVine() bool { return p != nil && p.onVine }

func (p *Player) leaveVine(now time.Duration) {
	p.onVine = false
	p.vineGrace.Arm(now, p.Tuning.VineRegrab)
	p.setState(stateGround)
}

// Respawn puts the player back at the spawn point, standing.
func (p *Player) Respawn() {
	if p == nil {
		return
	}
	p.Body.Teleport(p.Tuning.SpawnX, p.Tuning.BaselineY)
	p.onVine = false
	p.turn.Disarm()
	p.setState(stateGround)
}

// Retune swaps the movement constants. Running buffs keep their deadlines and
// are recomputed from the new base values.
func (p *Player) Retune(t PlayerTuning, now time.Duration) {
	if p == nil {
		return
	}
	p.Tuning = t
	p.baseSpeed = t.Speed
	p.speed = t.Speed
	p.jumpPower = t.JumpPower
	p.gravityScale = 1
	p.Body.StepTolerance = t.StepTolerance
	if p.sprint.IsActive(now) {
		p.speed = t.Speed * t.SprintMultiplier
		p.gravityScale = t.SprintGravityScale
	}
	if p.jumpBoost.IsActive(now) {
		p.jumpPower = t.JumpPower * t.JumpBoostMultiplier
	}
}

// Frame returns the frame to draw.
func (p *Player) Frame() component.Frame {
	if p == nil {
		return nil
	}
	return p.Anim.Current()
}

// FlipX reports whether the frame should be mirrored.
func (p *Player) FlipX() bool { return p != nil && !p.facingRight }

func (p *Player) Mode() string {
	if p == nil || p.state == nil {
		return "nil"
	}
	return p.state.Name()
}
