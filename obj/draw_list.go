package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawLayer orders the draw list. Lower layers are drawn first.
type DrawLayer int

const (
	LayerBackground DrawLayer = iota
	LayerWorld
	LayerPickups
	LayerEntities
	LayerHUD
)

// DrawItem is one image to blit at a screen-space top-left position.
type DrawItem struct {
	Layer DrawLayer
	Image *ebiten.Image
	X, Y  float64
	FlipX bool
	Alpha float64
}

// BackgroundLayer is a horizontally repeating image that scrolls at Factor
// times the camera speed.
type BackgroundLayer struct {
	Image  *ebiten.Image
	Factor float64
	Y      float64
}

// Scene is everything BuildDrawList reads.
type Scene struct {
	Backgrounds []BackgroundLayer
	World       *TileWorld
	Player      *Player
	Pursuer     *Pursuer
	Camera      *Camera
	// HUD items are already in screen space.
	HUD []DrawItem
}

// BuildDrawList appends the scene's draw items to dst in layer order:
// background, world, pickups, entities, HUD. Items entirely off screen are
// left out.
func BuildDrawList(s Scene, dst []DrawItem) []DrawItem {
	screenW, _ := s.Camera.ScreenSize()
	visible := func(x float64, w int) bool {
		return screenW <= 0 || (x+float64(w) > 0 && x < float64(screenW))
	}

	for _, bg := range s.Backgrounds {
		if bg.Image == nil {
			continue
		}
		w := float64(bg.Image.Bounds().Dx())
		if w <= 0 {
			continue
		}
		x := math.Mod(s.Camera.Parallax(bg.Factor), w)
		if x > 0 {
			x -= w
		}
		for ; x < float64(screenW); x += w {
			dst = append(dst, DrawItem{Layer: LayerBackground, Image: bg.Image, X: x, Y: bg.Y, Alpha: 1})
		}
	}

	if s.World != nil {
		for _, t := range s.World.Tiles {
			x := s.Camera.ToScreen(float64(t.Rect.X))
			if t.Image == nil || !visible(x, t.Rect.Width) {
				continue
			}
			dst = append(dst, DrawItem{Layer: LayerWorld, Image: t.Image, X: x, Y: float64(t.Rect.Y), Alpha: 1})
		}
		for _, kind := range []PickupKind{PickupSprint, PickupJumpBoost} {
			for _, t := range s.World.Pickups[kind] {
				x := s.Camera.ToScreen(float64(t.Rect.X))
				if t.Image == nil || !visible(x, t.Rect.Width) {
					continue
				}
				dst = append(dst, DrawItem{Layer: LayerPickups, Image: t.Image, X: x, Y: float64(t.Rect.Y), Alpha: 1})
			}
		}
	}

	if s.Pursuer != nil {
		if img, ok := s.Pursuer.Frame().(*ebiten.Image); ok && img != nil {
			r := s.Pursuer.Body.Rect
			dst = append(dst, DrawItem{Layer: LayerEntities, Image: img, X: s.Camera.ToScreen(float64(r.X)), Y: float64(r.Y), Alpha: 1})
		}
	}
	if s.Player != nil {
		if img, ok := s.Player.Frame().(*ebiten.Image); ok && img != nil {
			r := s.Player.Body.Rect
			dst = append(dst, DrawItem{Layer: LayerEntities, Image: img, X: s.Camera.ToScreen(float64(r.X)), Y: float64(r.Y), FlipX: s.Player.FlipX(), Alpha: 1})
		}
	}

	for _, it := range s.HUD {
		if it.Image == nil {
			continue
		}
		it.Layer = LayerHUD
		dst = append(dst, it)
	}
	return dst
}
