package component

import "image"

// Anchor is the point frames are aligned on when they are normalized to a
// shared canvas.
type Anchor string

const (
	AnchorMidBottom Anchor = "midbottom"
	AnchorMidTop    Anchor = "midtop"
	AnchorMidLeft   Anchor = "midleft"
	AnchorMidRight  Anchor = "midright"
	AnchorCenter    Anchor = "center"
)

func anchorPoint(r image.Rectangle, a Anchor) image.Point {
	cx := r.Min.X + r.Dx()/2
	cy := r.Min.Y + r.Dy()/2
	switch a {
	case AnchorMidTop:
		return image.Pt(cx, r.Min.Y)
	case AnchorMidLeft:
		return image.Pt(r.Min.X, cy)
	case AnchorMidRight:
		return image.Pt(r.Max.X, cy)
	case AnchorCenter:
		return image.Pt(cx, cy)
	default:
		return image.Pt(cx, r.Max.Y)
	}
}

// NormalizeOffsets computes the canvas that fits every frame and where each
// frame has to be drawn on it so that all frames share the anchor point.
// Unknown anchors behave like AnchorMidBottom.
func NormalizeOffsets(frames []Frame, a Anchor) (canvas image.Rectangle, offsets []image.Point) {
	if len(frames) == 0 {
		return image.Rectangle{}, nil
	}
	maxW, maxH := 0, 0
	for _, f := range frames {
		b := f.Bounds()
		if b.Dx() > maxW {
			maxW = b.Dx()
		}
		if b.Dy() > maxH {
			maxH = b.Dy()
		}
	}
	canvas = image.Rect(0, 0, maxW, maxH)
	dst := anchorPoint(canvas, a)
	offsets = make([]image.Point, len(frames))
	for i, f := range frames {
		b := f.Bounds()
		src := anchorPoint(b.Sub(b.Min), a)
		offsets[i] = dst.Sub(src)
	}
	return canvas, offsets
}
