package component

import (
	"github.com/milk9111/runred/common"
)

// KinematicBody is the motion primitive shared by the player and the
// pursuer. X/Y is the bottom-center point; Rect is derived from it and from
// the current sprite size.
type KinematicBody struct {
	X, Y      float64
	VelocityY float64
	Airborne  bool
	Rect      common.Rect

	// StepTolerance is the deepest overlap with a platform top that still
	// counts as a ledge the body can walk onto.
	StepTolerance float64
}

func NewKinematicBody(x, y float64, w, h int, stepTolerance float64) *KinematicBody {
	b := &KinematicBody{
		X:             x,
		Y:             y,
		Rect:          common.NewRect(0, 0, w, h),
		StepTolerance: stepTolerance,
	}
	b.Anchor()
	return b
}

// Anchor places Rect so that its bottom-center is (round(X), round(Y)).
func (b *KinematicBody) Anchor() {
	if b == nil {
		return
	}
	b.Rect.SetMidBottom(common.Round(b.X), common.Round(b.Y))
}

// SetSize swaps the rect size for a new sprite frame and re-anchors it so
// the feet stay where they were.
func (b *KinematicBody) SetSize(w, h int) {
	if b == nil || w <= 0 || h <= 0 {
		return
	}
	b.Rect.Width = w
	b.Rect.Height = h
	b.Anchor()
}

// Teleport moves the body and clears vertical motion.
func (b *KinematicBody) Teleport(x, y float64) {
	if b == nil {
		return
	}
	b.X = x
	b.Y = y
	b.VelocityY = 0
	b.Airborne = false
	b.Anchor()
}

func (b *KinematicBody) syncFromRect() {
	b.X = float64(b.Rect.CenterX())
	b.Y = float64(b.Rect.Bottom())
}

// ResolveMotion runs the horizontal pass and then the vertical pass.
func (b *KinematicBody) ResolveMotion(dx, gravity float64, platforms []common.Rect) {
	b.ResolveHorizontal(dx, platforms)
	b.ResolveVertical(gravity, platforms)
}

// ResolveHorizontal moves by dx and pushes the body out of any platform it
// ran into. A platform whose top is within StepTolerance of the body's
// bottom is stepped onto instead of blocking.
func (b *KinematicBody) ResolveHorizontal(dx float64, platforms []common.Rect) {
	if b == nil {
		return
	}
	b.X += dx
	b.Anchor()
	if dx == 0 {
		return
	}
	for _, p := range platforms {
		if !b.Rect.Intersects(p) {
			continue
		}
		depth := float64(b.Rect.Bottom() - p.Top())
		if depth > 0 && depth <= b.StepTolerance && b.canStandOn(p, platforms) {
			b.Rect.SetBottom(p.Top())
			b.VelocityY = 0
			b.Airborne = false
		} else if dx > 0 {
			b.Rect.SetRight(p.Left())
		} else {
			b.Rect.SetLeft(p.Right())
		}
		b.syncFromRect()
	}
}

// canStandOn reports whether the body, raised to stand on p, is clear of
// every other platform.
func (b *KinematicBody) canStandOn(p common.Rect, platforms []common.Rect) bool {
	raised := b.Rect
	raised.SetBottom(p.Top())
	for _, o := range platforms {
		if o != p && raised.Intersects(o) {
			return false
		}
	}
	return true
}

// ResolveVertical integrates gravity and lands on, or bumps into, platforms.
// A body that falls without touching anything is airborne.
func (b *KinematicBody) ResolveVertical(gravity float64, platforms []common.Rect) {
	if b == nil {
		return
	}
	b.VelocityY += gravity
	b.Y += b.VelocityY
	b.Anchor()

	landed := false
	for _, p := range platforms {
		if !b.Rect.Intersects(p) {
			continue
		}
		if b.VelocityY > 0 {
			b.Rect.SetBottom(p.Top())
			b.VelocityY = 0
			b.Airborne = false
			landed = true
		} else if b.VelocityY < 0 {
			b.Rect.SetTop(p.Bottom())
			b.VelocityY = 0
		}
		b.syncFromRect()
	}
	if !landed && b.VelocityY > 0 {
		b.Airborne = true
	}
}

// Climb moves the body vertically by dy with gravity suspended. Platforms
// still stop it: climbing up stops under a ceiling, climbing down stops on a
// floor.
func (b *KinematicBody) Climb(dy float64, platforms []common.Rect) {
	if b == nil {
		return
	}
	b.VelocityY = 0
	b.Y += dy
	b.Anchor()
	for _, p := range platforms {
		if !b.Rect.Intersects(p) {
			continue
		}
		if dy < 0 {
			b.Rect.SetTop(p.Bottom())
		} else if dy > 0 {
			b.Rect.SetBottom(p.Top())
		}
		b.syncFromRect()
	}
}

// TryJump launches the body with the given power if it is on the ground.
// Holding jump in the air does nothing until the body lands again.
func (b *KinematicBody) TryJump(power float64) bool {
	if b == nil || b.Airborne {
		return false
	}
	b.VelocityY = -power
	b.Airborne = true
	return true
}
