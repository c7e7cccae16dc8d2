package component

import (
	"testing"

	"github.com/milk9111/runred/common"
)

const testTile = common.TileSize

func newTestBody() *KinematicBody {
	return NewKinematicBody(100, 300, 40, 60, 0.4*testTile)
}

func TestResolveVerticalLandsExactlyOnPlatform(t *testing.T) {
	floor := common.NewRect(0, 320, 400, testTile)
	cases := []struct {
		name      string
		velocityY float64
	}{
		{"slow", 0},
		{"medium", 12.5},
		{"fast", float64(testTile) - 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTestBody()
			b.Y = 310
			b.Anchor()
			b.VelocityY = c.velocityY
			b.Airborne = true

			for i := 0; i < 20 && b.Airborne; i++ {
				b.ResolveMotion(0, 0.85, []common.Rect{floor})
			}
			if b.Airborne {
				t.Fatalf("body never landed")
			}
			if b.Rect.Bottom() != floor.Top() {
				t.Fatalf("bottom = %d, want %d", b.Rect.Bottom(), floor.Top())
			}
			if b.VelocityY != 0 {
				t.Fatalf("velocity not cleared: %v", b.VelocityY)
			}
		})
	}
}

func TestResolveHorizontalStepTolerance(t *testing.T) {
	cases := []struct {
		name        string
		dx          float64
		platform    common.Rect
		wantBlocked bool
	}{
		{"low_step_right", 5, common.NewRect(122, 290, testTile, testTile), false},
		{"low_step_left", -5, common.NewRect(78-testTile, 290, testTile, testTile), false},
		{"wall_right", 5, common.NewRect(122, 250, testTile, testTile), true},
		{"wall_left", -5, common.NewRect(78-testTile, 250, testTile, testTile), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTestBody()
			b.Airborne = true
			startX := b.X

			b.ResolveHorizontal(c.dx, []common.Rect{c.platform})

			if c.wantBlocked {
				if b.Rect.Intersects(c.platform) {
					t.Fatalf("body still overlaps wall: %+v vs %+v", b.Rect, c.platform)
				}
				if !b.Airborne {
					t.Fatalf("blocking must leave airborne unchanged")
				}
				return
			}
			if b.X != startX+c.dx {
				t.Fatalf("step-up blocked horizontal motion: x = %v, want %v", b.X, startX+c.dx)
			}
			if b.Airborne {
				t.Fatalf("step-up should clear airborne")
			}
			if b.Rect.Bottom() != c.platform.Top() {
				t.Fatalf("bottom = %d, want platform top %d", b.Rect.Bottom(), c.platform.Top())
			}
		})
	}
}

func TestStepUpBlockedByCeiling(t *testing.T) {
	ceiling := common.NewRect(80, 240-testTile, 200, testTile)
	step := common.NewRect(122, 290, testTile, testTile)
	floor := common.NewRect(0, 300, 400, testTile)
	platforms := []common.Rect{ceiling, step, floor}

	b := newTestBody()
	for i := 0; i < 10; i++ {
		b.ResolveMotion(5, 0.85, platforms)
		for _, p := range platforms {
			if b.Rect.Intersects(p) {
				t.Fatalf("frame %d: body %+v overlaps %+v", i, b.Rect, p)
			}
		}
	}
	if b.Rect.Bottom() != floor.Top() {
		t.Fatalf("bottom = %d, want to stay on the floor at %d", b.Rect.Bottom(), floor.Top())
	}
	if b.Rect.Right() != step.Left() {
		t.Fatalf("right = %d, want blocked at %d", b.Rect.Right(), step.Left())
	}
}

func TestResolveVerticalCeiling(t *testing.T) {
	ceiling := common.NewRect(0, 200, 400, testTile)
	b := newTestBody()
	b.Y = 310
	b.Anchor()
	b.TryJump(20)

	b.ResolveVertical(0.85, []common.Rect{ceiling})
	if b.Rect.Top() != ceiling.Bottom() {
		t.Fatalf("top = %d, want %d", b.Rect.Top(), ceiling.Bottom())
	}
	if b.VelocityY != 0 {
		t.Fatalf("velocity not cleared after ceiling hit: %v", b.VelocityY)
	}
}

func TestFreeFallWithoutPlatforms(t *testing.T) {
	b := newTestBody()
	prev := b.Y
	for i := 0; i < 30; i++ {
		b.ResolveMotion(0, 0.85, nil)
		if b.Y <= prev {
			t.Fatalf("frame %d: body stopped falling at %v", i, b.Y)
		}
		prev = b.Y
	}
	if !b.Airborne {
		t.Fatalf("unsupported body should be airborne")
	}
}

func TestTryJumpOncePerGroundContact(t *testing.T) {
	floor := common.NewRect(0, 300, 400, testTile)
	b := newTestBody()

	if !b.TryJump(11) {
		t.Fatalf("grounded body should jump")
	}
	if b.VelocityY != -11 {
		t.Fatalf("velocity = %v, want -11", b.VelocityY)
	}
	for i := 0; i < 5; i++ {
		b.ResolveMotion(0, 0.85, []common.Rect{floor})
		v := b.VelocityY
		if b.TryJump(11) {
			t.Fatalf("frame %d: jumped again while airborne", i)
		}
		if b.VelocityY != v {
			t.Fatalf("frame %d: TryJump changed velocity in the air", i)
		}
	}

	for i := 0; i < 60 && b.Airborne; i++ {
		b.ResolveMotion(0, 0.85, []common.Rect{floor})
	}
	if b.Airborne {
		t.Fatalf("body never landed")
	}
	if !b.TryJump(11) {
		t.Fatalf("landed body should be able to jump again")
	}
}

func TestSetSizeKeepsFeetAnchored(t *testing.T) {
	sizes := [][2]int{{40, 60}, {52, 58}, {33, 71}, {64, 64}, {41, 60}}
	floor := common.NewRect(0, 300, 800, testTile)
	b := newTestBody()
	for i, s := range sizes {
		b.ResolveMotion(3.4, 0.85, []common.Rect{floor})
		b.SetSize(s[0], s[1])
		if b.Rect.Bottom() != common.Round(b.Y) {
			t.Fatalf("step %d: bottom %d != round(y) %d", i, b.Rect.Bottom(), common.Round(b.Y))
		}
		if b.Rect.CenterX() != common.Round(b.X) {
			t.Fatalf("step %d: centerx %d != round(x) %d", i, b.Rect.CenterX(), common.Round(b.X))
		}
	}
}

func TestClimbStopsAtPlatforms(t *testing.T) {
	ceiling := common.NewRect(0, 200, 400, testTile)
	b := newTestBody()
	b.Y = 320
	b.Anchor()
	for i := 0; i < 10; i++ {
		b.Climb(-3, []common.Rect{ceiling})
	}
	if b.Rect.Top() != ceiling.Bottom() {
		t.Fatalf("top = %d, want %d", b.Rect.Top(), ceiling.Bottom())
	}
	if b.VelocityY != 0 {
		t.Fatalf("climbing should not accumulate velocity")
	}
}
