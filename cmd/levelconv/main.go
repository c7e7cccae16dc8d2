// Command levelconv converts a CSV or TMX level into the JSON placement list
// the game loads, and reports how the tiles sort into gameplay roles.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/runred/levels"
	"github.com/milk9111/runred/obj"
	"github.com/milk9111/runred/prefabs"
)

func main() {
	in := flag.String("in", "", "input level (.csv, .tmx or .json)")
	out := flag.String("out", "", "output .json path; empty writes to stdout")
	check := flag.Bool("check", false, "print role counts instead of converting")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	placements, err := levels.LoadLevelFromFS(os.DirFS(filepath.Dir(*in)), filepath.Base(*in))
	if err != nil {
		log.Fatal(err)
	}

	if *check {
		if err := report(placements); err != nil {
			log.Fatal(err)
		}
		return
	}

	var buf bytes.Buffer
	if err := levels.EncodeJSON(&buf, placements); err != nil {
		log.Fatal(err)
	}
	if *out == "" {
		_, _ = os.Stdout.Write(buf.Bytes())
		return
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("levelconv: wrote %d placements to %s", len(placements), *out)
}

func report(placements []levels.TilePlacement) error {
	roles, err := prefabs.LoadSpec[obj.TileRoles](prefabs.TilesFile)
	if err != nil {
		return err
	}
	if err := roles.Validate(); err != nil {
		return err
	}

	maxIndex := 0
	for _, p := range placements {
		if p.TileIndex > maxIndex {
			maxIndex = p.TileIndex
		}
	}
	world := obj.NewTileWorld(make([]*ebiten.Image, maxIndex+1), nil, roles, 1)
	world.Build(placements)

	fmt.Printf("placements %d\n", len(placements))
	fmt.Printf("tiles      %d\n", len(world.Tiles))
	fmt.Printf("platforms  %d\n", len(world.Platforms))
	fmt.Printf("hazards    %d\n", len(world.Hazards))
	fmt.Printf("vines      %d\n", len(world.Climbables))
	fmt.Printf("sprint     %d\n", len(world.Pickups[obj.PickupSprint]))
	fmt.Printf("jump boost %d\n", len(world.Pickups[obj.PickupJumpBoost]))
	fmt.Printf("width      %dpx\n", world.Width())
	return nil
}
