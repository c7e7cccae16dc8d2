package obj

// Camera is a one-dimensional horizontal scroll. The view's left edge sits at
// world x == Scroll.
type Camera struct {
	Scroll    float64
	MaxScroll float64

	screenW int
	screenH int
	// centerX is the screen x the player is kept around while scrolling.
	centerX float64
}

// NewCamera creates a camera for the given logical screen size. The scroll
// limit is unbounded until SetWorldBounds is called.
func NewCamera(screenW, screenH int) *Camera {
	c := &Camera{}
	c.SetScreenSize(screenW, screenH)
	return c
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
	c.centerX = float64(w) / 2.0
}

// SetWorldBounds derives MaxScroll from the world width in pixels.
func (c *Camera) SetWorldBounds(w int) {
	if c == nil {
		return
	}
	c.MaxScroll = float64(w - c.screenW)
	if c.MaxScroll < 0 {
		c.MaxScroll = 0
	}
	c.Scroll = clamp(c.Scroll, 0, c.MaxScroll)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Update follows the player. The scroll only moves while the player is past
// the screen center in the direction they are moving.
func (c *Camera) Update(playerX, dx float64) {
	if c == nil {
		return
	}
	screenX := playerX - c.Scroll
	switch {
	case screenX > c.centerX && dx > 0:
		c.Scroll += dx
	case screenX < c.centerX && dx < 0 && c.Scroll > 0:
		c.Scroll += dx
	}
	c.Scroll = clamp(c.Scroll, 0, c.MaxScroll)
}

// ClampPlayer keeps a player of the given half width inside the left edge of
// the frame when the view is at the start of the level.
func (c *Camera) ClampPlayer(x, halfWidth float64) float64 {
	if c == nil || c.Scroll > 0 {
		return x
	}
	if x < halfWidth {
		return halfWidth
	}
	return x
}

func (c *Camera) Reset() {
	if c == nil {
		return
	}
	c.Scroll = 0
}

// ToScreen converts a world x to screen space.
func (c *Camera) ToScreen(worldX float64) float64 {
	if c == nil {
		return worldX
	}
	return worldX - c.Scroll
}

// Parallax returns the screen offset of a background layer that moves at
// factor times the camera speed.
func (c *Camera) Parallax(factor float64) float64 {
	if c == nil {
		return 0
	}
	return -c.Scroll * factor
}

// ScreenSize returns the logical screen size.
func (c *Camera) ScreenSize() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.screenW, c.screenH
}
