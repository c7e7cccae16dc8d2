// Command animview plays an entity's animation sequences the way the game
// loads them, so art can be checked without running a level.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/runred/assets"
	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/component"
	"github.com/milk9111/runred/prefabs"
)

const viewSize = 512

type viewer struct {
	name  string
	ids   []component.SequenceID
	seq   *component.Sequencer
	clock common.Clock
	pick  int
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.pick = (v.pick + 1) % len(v.ids)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.pick = (v.pick + len(v.ids) - 1) % len(v.ids)
	}
	v.seq.Select(v.ids[v.pick])
	v.seq.Advance(v.clock.Now())
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	if img, ok := v.seq.Current().(*ebiten.Image); ok && img != nil {
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(viewSize-b.Dx())/2, float64(viewSize-b.Dy())/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}
	w, h := v.seq.Size()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s: %s frame %d  canvas %dx%d\nleft/right to switch", v.name, v.ids[v.pick], v.seq.Index(), w, h))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	entity := flag.String("entity", "player", "player or pursuer")
	flag.Parse()

	var anim prefabs.AnimationSpec
	var collider prefabs.ColliderSpec
	var name string
	switch *entity {
	case "player":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Fatal(err)
		}
		anim, collider, name = spec.Animation, spec.Collider, spec.Name
	case "pursuer":
		spec, err := prefabs.LoadPursuerSpec()
		if err != nil {
			log.Fatal(err)
		}
		anim, collider, name = spec.Animation, spec.Collider, spec.Name
	default:
		log.Fatalf("unknown entity %q", *entity)
	}

	seqs := assets.LoadSequences(anim, collider)
	if len(seqs) == 0 {
		log.Fatalf("%s has no sequences", name)
	}
	ids := make([]component.SequenceID, 0, len(seqs))
	for id := range seqs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	clock := common.NewSystemClock()
	v := &viewer{
		name:  name,
		ids:   ids,
		seq:   component.NewSequencer(ids[0], seqs, clock.Now()),
		clock: clock,
	}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("animview: " + name)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
