package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/runred/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders and state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level file in levels/ (.json, .csv or .tmx; .json optional)")
	variant := flag.String("variant", "", "world variant from prefabs/world.yaml, e.g. chase")
	watch := flag.Bool("watch", false, "reload prefabs, scripts and levels when they change on disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Run Red Run")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Level:   *levelName,
		Variant: *variant,
		Debug:   *debug,
		Watch:   *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
