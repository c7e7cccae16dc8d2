package assets

import (
	"image/color"
	"testing"

	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/component"
	"github.com/milk9111/runred/prefabs"
)

func TestLoadSequencesPlaceholdersShareCanvas(t *testing.T) {
	spec := prefabs.AnimationSpec{
		Anchor: "midbottom",
		Defs: map[string]prefabs.AnimationDefSpec{
			"idle": {Pattern: "missing/idle_%d.png", From: 1, To: 4, FPS: 8},
			"run":  {Files: []string{"missing/run.png"}, FPS: 20},
			"jump": {FrameCount: 2},
		},
	}
	seqs := LoadSequences(spec, prefabs.ColliderSpec{Width: 40, Height: 64})

	cases := []struct {
		id         component.SequenceID
		wantFrames int
		wantFPS    int
	}{
		{component.SeqIdle, 4, 8},
		{component.SeqRun, 1, 20},
		{component.SeqJump, 2, 0},
	}
	for _, c := range cases {
		t.Run(string(c.id), func(t *testing.T) {
			seq, ok := seqs[c.id]
			if !ok {
				t.Fatalf("sequence missing")
			}
			if len(seq.Frames) != c.wantFrames {
				t.Fatalf("frames = %d, want %d", len(seq.Frames), c.wantFrames)
			}
			if seq.Period != component.FramePeriod(c.wantFPS) {
				t.Fatalf("period = %v", seq.Period)
			}
			for i, f := range seq.Frames {
				if b := f.Bounds(); b.Dx() != 40 || b.Dy() != 64 {
					t.Fatalf("frame %d bounds = %v", i, b)
				}
			}
		})
	}
}

func TestLoadTileAtlasPadsWithPlaceholders(t *testing.T) {
	var asked []int
	atlas := LoadTileAtlas("no-such-dir", 6, func(i int) color.Color {
		asked = append(asked, i)
		if i == 2 {
			return nil
		}
		return color.White
	})
	if len(atlas) != 6 || len(asked) != 6 {
		t.Fatalf("atlas = %d tiles, asked %d colors", len(atlas), len(asked))
	}
	for i, img := range atlas {
		if img == nil {
			t.Fatalf("tile %d is nil", i)
		}
		if b := img.Bounds(); b.Dx() != common.TileSize || b.Dy() != common.TileSize {
			t.Fatalf("tile %d bounds = %v", i, b)
		}
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"tiles/a.png", "tiles/a.png"},
		{"assets/tiles/a.png", "tiles/a.png"},
		{"/home/me/runred/assets/bg/sky.png", "bg/sky.png"},
		{"/tmp/sky.png", "sky.png"},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestImageOrFallsBack(t *testing.T) {
	img := ImageOr("objects/nope.png", 12, 30, color.Black)
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 30 {
		t.Fatalf("bounds = %v", b)
	}
}
