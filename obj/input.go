package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Intents are the discrete per-frame requests the player acts on.
type Intents struct {
	MoveLeft  bool
	MoveRight bool
	// JumpPressed is true only on the frame the jump key went down.
	JumpPressed bool
	ClimbUp     bool
	ClimbDown   bool

	Pause   bool
	Restart bool
	Mute    bool
}

// MoveX returns -1, 0 or +1.
func (in Intents) MoveX() float64 {
	var x float64
	if in.MoveLeft {
		x--
	}
	if in.MoveRight {
		x++
	}
	return x
}

// ClimbY returns -1 (up), 0 or +1 (down).
func (in Intents) ClimbY() float64 {
	var y float64
	if in.ClimbUp {
		y--
	}
	if in.ClimbDown {
		y++
	}
	return y
}

const stickDeadzone = 0.3

// Input polls the keyboard and the first gamepad into Intents.
type Input struct {
	Intents
}

func NewInput() *Input {
	return &Input{}
}

// Update polls devices for the current frame.
func (i *Input) Update() {
	var in Intents

	in.MoveLeft = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	in.MoveRight = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	in.ClimbUp = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	in.ClimbDown = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.Mute = inpututil.IsKeyJustPressed(ebiten.KeyM)

	// Gamepad: left stick or d-pad for movement, bottom face button to jump
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
			i.Intents = in
			return
		}
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		in.MoveLeft = in.MoveLeft || lx < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
		in.MoveRight = in.MoveRight || lx > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight)
		in.ClimbUp = in.ClimbUp || ly < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop)
		in.ClimbDown = in.ClimbDown || ly > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		in.Pause = in.Pause || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		in.Restart = in.Restart || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	i.Intents = in
}
