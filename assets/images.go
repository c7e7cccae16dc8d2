package assets

import (
	"image"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/component"
	"github.com/milk9111/runred/prefabs"
	"golang.org/x/image/colornames"
)

// Placeholder is a solid w x h image. Missing art is drawn with these so the
// game stays playable without any image files.
func Placeholder(w, h int, c color.Color) *ebiten.Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

// ImageOr loads path, or returns a placeholder of w x h in fallback when it
// cannot be read.
func ImageOr(path string, w, h int, fallback color.Color) *ebiten.Image {
	if path != "" {
		if img, err := LoadImage(path); err == nil {
			return img
		}
	}
	return Placeholder(w, h, fallback)
}

// TileColor picks a placeholder color for a tile index.
type TileColor func(index int) color.Color

// LoadTileAtlas loads the tile images in dir in sorted name order, so atlas
// index i is the i-th file. Indices with no file get a placeholder tile.
func LoadTileAtlas(dir string, count int, colorOf TileColor) []*ebiten.Image {
	names := ListImages(dir)
	if count < len(names) {
		count = len(names)
	}
	atlas := make([]*ebiten.Image, count)
	loaded := 0
	for i := range atlas {
		if i < len(names) {
			img, err := LoadImage(names[i])
			if err == nil {
				atlas[i] = img
				loaded++
				continue
			}
			log.Printf("assets: tile %s: %v", names[i], err)
		}
		c := color.Color(colornames.Magenta)
		if colorOf != nil {
			if tc := colorOf(i); tc != nil {
				c = tc
			}
		}
		atlas[i] = Placeholder(common.TileSize, common.TileSize, c)
	}
	if loaded < count {
		log.Printf("assets: %s: %d of %d tiles are placeholders", dir, count-loaded, count)
	}
	return atlas
}

// LoadSequences builds an entity's animation sequences from its prefab. Every
// frame of every sequence is scaled and then redrawn onto one shared canvas
// aligned on the prefab anchor, so switching sequence never changes the
// entity's size. A sequence whose art is missing gets placeholder frames of
// the collider size.
func LoadSequences(spec prefabs.AnimationSpec, collider prefabs.ColliderSpec) map[component.SequenceID]component.Sequence {
	fallback := spec.Placeholder.ColorOr(colornames.Crimson)

	raw := make(map[component.SequenceID][]*ebiten.Image, len(spec.Defs))
	periods := make(map[component.SequenceID]int, len(spec.Defs))
	var sheet *ebiten.Image
	if spec.Sheet != "" {
		img, err := LoadImage(spec.Sheet)
		if err != nil {
			log.Printf("assets: sheet %s: %v", spec.Sheet, err)
		} else {
			sheet = img
		}
	}

	for name, def := range spec.Defs {
		id := component.SequenceID(name)
		periods[id] = def.FPS
		frames := loadDefFrames(sheet, def, spec.Scale)
		if len(frames) == 0 {
			n := len(def.FileNames())
			if n == 0 {
				n = def.FrameCount
			}
			frames = placeholderFrames(n, collider.Width, collider.Height, fallback)
		}
		raw[id] = frames
	}

	return normalize(raw, periods, component.Anchor(spec.Anchor))
}

func loadDefFrames(sheet *ebiten.Image, def prefabs.AnimationDefSpec, scale float64) []*ebiten.Image {
	var frames []*ebiten.Image
	if sheet != nil && def.FrameW > 0 && def.FrameH > 0 {
		cols := sheet.Bounds().Dx() / def.FrameW
		frames = component.SliceSheet(sheet, def.FrameW, def.FrameH, def.Row*cols+def.ColStart, def.FrameCount)
	}
	names := def.FileNames()
	if len(frames) == 0 && len(names) > 0 {
		for _, name := range names {
			img, err := LoadImage(name)
			if err != nil {
				// A partly drawn sequence is worse than a placeholder one.
				return nil
			}
			frames = append(frames, img)
		}
	}
	if scale > 0 && scale != 1 {
		for i, f := range frames {
			frames[i] = scaled(f, scale)
		}
	}
	return frames
}

func scaled(src *ebiten.Image, scale float64) *ebiten.Image {
	b := src.Bounds()
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	dst := ebiten.NewImage(max(w, 1), max(h, 1))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(src, op)
	return dst
}

// placeholderFrames are solid frames with a lighter band that moves per frame
// so playback is visible.
func placeholderFrames(n, w, h int, c color.Color) []*ebiten.Image {
	if n <= 0 {
		n = 1
	}
	band := color.NRGBA{R: 255, G: 255, B: 255, A: 90}
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		img := Placeholder(w, h, c)
		if n > 1 && h > 0 {
			y := (h * i) / n
			bh := max(h/n, 1)
			img.SubImage(image.Rect(0, y, w, y+bh)).(*ebiten.Image).Fill(band)
		}
		frames[i] = img
	}
	return frames
}

func normalize(raw map[component.SequenceID][]*ebiten.Image, fps map[component.SequenceID]int, anchor component.Anchor) map[component.SequenceID]component.Sequence {
	ids := make([]component.SequenceID, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var all []component.Frame
	for _, id := range ids {
		all = append(all, component.Frames(raw[id])...)
	}
	canvas, offsets := component.NormalizeOffsets(all, anchor)

	out := make(map[component.SequenceID]component.Sequence, len(raw))
	i := 0
	for _, id := range ids {
		seq := component.Sequence{Period: component.FramePeriod(fps[id])}
		for _, f := range raw[id] {
			dst := ebiten.NewImage(canvas.Dx(), canvas.Dy())
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(offsets[i].X), float64(offsets[i].Y))
			dst.DrawImage(f, op)
			seq.Frames = append(seq.Frames, dst)
			i++
		}
		out[id] = seq
	}
	return out
}
