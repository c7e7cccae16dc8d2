package common

// Rect is an integer pixel box. X/Y is the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) Left() int    { return r.X }
func (r Rect) Right() int   { return r.X + r.Width }
func (r Rect) Top() int     { return r.Y }
func (r Rect) Bottom() int  { return r.Y + r.Height }
func (r Rect) CenterX() int { return r.X + r.Width/2 }

func (r *Rect) SetLeft(v int)   { r.X = v }
func (r *Rect) SetRight(v int)  { r.X = v - r.Width }
func (r *Rect) SetTop(v int)    { r.Y = v }
func (r *Rect) SetBottom(v int) { r.Y = v - r.Height }

// SetMidBottom places the rect so that its bottom-center point is (x, y).
func (r *Rect) SetMidBottom(x, y int) {
	r.X = x - r.Width/2
	r.Y = y - r.Height
}

// Intersects reports whether the two rects overlap. Touching edges do not count.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Inflate grows the rect by dx/dy on every side.
func (r Rect) Inflate(dx, dy int) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
