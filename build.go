package main

import (
	"fmt"
	"image/color"
	"log"
	"sort"
	"strings"

	"github.com/milk9111/runred/assets"
	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/obj"
	"github.com/milk9111/runred/prefabs"
	"golang.org/x/image/colornames"
)

// config is every tuning file the game reads, after a variant was applied.
type config struct {
	tiles   *prefabs.TilesSpec
	player  *prefabs.PlayerSpec
	pursuer *prefabs.PursuerSpec
	world   *prefabs.WorldSpec
	variant string
}

func loadConfig(variant string) (*config, error) {
	tiles, err := prefabs.LoadTilesSpec()
	if err != nil {
		return nil, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	pursuer, err := prefabs.LoadPursuerSpec()
	if err != nil {
		return nil, err
	}
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	cfg := &config{tiles: tiles, player: player, pursuer: pursuer, world: world}
	if err := cfg.applyVariant(variant); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyVariant overlays a named variant from the world spec. An empty name
// keeps the base tuning.
func (c *config) applyVariant(name string) error {
	c.variant = name
	if name == "" {
		return nil
	}
	v, ok := c.world.Variants[name]
	if !ok {
		names := make([]string, 0, len(c.world.Variants))
		for n := range c.world.Variants {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown variant %q (have %s)", name, strings.Join(names, ", "))
	}
	if v.PursuerMode != "" {
		c.pursuer.Mode = v.PursuerMode
	}
	if v.PursuerStart != nil {
		c.pursuer.StartX = *v.PursuerStart
	}
	if v.Capabilities != nil {
		c.player.Capabilities = *v.Capabilities
	}
	return nil
}

// recordKey names the best-time slot for this level and variant.
func (c *config) recordKey() string {
	if c.variant == "" {
		return c.world.Level
	}
	return c.world.Level + "#" + c.variant
}

func tileRoles(s *prefabs.TilesSpec) obj.TileRoles {
	if s == nil {
		return obj.DefaultTileRoles()
	}
	return obj.TileRoles{
		Ground:     append([]int(nil), s.Ground...),
		Step:       obj.IndexRange{Min: s.Step.Min, Max: s.Step.Max},
		Platform:   obj.IndexRange{Min: s.Platform.Min, Max: s.Platform.Max},
		Hazard:     s.Hazard,
		Vines:      obj.IndexRange{Min: s.Vines.Min, Max: s.Vines.Max},
		Sprint:     append([]int(nil), s.Sprint...),
		JumpBoost:  append([]int(nil), s.JumpBoost...),
		StarMarker: s.StarMarker,
		HazardLift: s.HazardLift,
		HazardGrow: s.HazardGrow,
	}
}

func capabilities(s prefabs.CapabilitiesSpec) obj.Capabilities {
	return obj.Capabilities{Climb: s.Climb, TurnAnim: s.TurnAnim, Powerups: s.Powerups}
}

// playerTuning starts from the defaults and takes every value the prefab sets.
func playerTuning(s *prefabs.PlayerSpec) obj.PlayerTuning {
	t := obj.DefaultPlayerTuning()
	if s == nil {
		return t
	}
	setF(&t.SpawnX, s.SpawnX)
	if s.SpawnRow > 0 {
		t.BaselineY = float64(s.SpawnRow * common.TileSize)
	}
	setI(&t.Width, s.Collider.Width)
	setI(&t.Height, s.Collider.Height)
	setF(&t.Speed, s.MoveSpeed)
	setF(&t.JumpPower, s.JumpPower)
	setF(&t.Gravity, s.Gravity)
	if s.StepTolerance > 0 {
		t.StepTolerance = s.StepTolerance * common.TileSize
	}
	setF(&t.ClimbFactor, s.ClimbFactor)
	setF(&t.SprintMultiplier, s.Sprint.Multiplier)
	setF(&t.SprintGravityScale, s.Sprint.GravityScale)
	if s.Sprint.Duration > 0 {
		t.SprintDuration = s.Sprint.Duration
	}
	setF(&t.JumpBoostMultiplier, s.JumpBoost.Multiplier)
	if s.JumpBoost.Duration > 0 {
		t.JumpBoostDuration = s.JumpBoost.Duration
	}
	if s.TurnDuration > 0 {
		t.TurnDuration = s.TurnDuration
	}
	if s.VineRegrab > 0 {
		t.VineRegrab = s.VineRegrab
	}
	return t
}

func pursuerTuning(s *prefabs.PursuerSpec) obj.PursuerTuning {
	t := obj.DefaultPursuerTuning()
	if s == nil {
		return t
	}
	if s.Mode != "" {
		t.Mode = obj.PursuitMode(s.Mode)
	}
	setF(&t.StartX, s.StartX)
	setF(&t.TargetX, s.TargetX)
	setF(&t.Speed, s.Speed)
	setF(&t.Gravity, s.Gravity)
	if s.GroundRow > 0 {
		t.FallbackY = float64(s.GroundRow * common.TileSize)
	}
	setI(&t.Width, s.Collider.Width)
	setI(&t.Height, s.Collider.Height)
	return t
}

func presentationTuning(s prefabs.PresentationSpec) obj.PresentationTuning {
	t := obj.DefaultPresentationTuning()
	if s.FadeDuration > 0 {
		t.FadeDuration = s.FadeDuration
	}
	setF(&t.FadeTo, s.FadeTo)
	if s.DialogFade > 0 {
		t.DialogFade = s.DialogFade
	}
	if s.DialogDuration > 0 {
		t.DialogDuration = s.DialogDuration
	}
	if s.Line != "" {
		t.Line = s.Line
	}
	return t
}

func goalZone(s prefabs.GoalSpec) obj.GoalZone {
	return obj.GoalZone{Min: s.Min, Max: s.Max}
}

// loadPacer compiles the named pacing script. Without a script, or when it
// does not compile, the pursuer runs at a constant pace.
func loadPacer(name string) obj.Pacer {
	if name == "" {
		return obj.ConstantPacer{}
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		log.Printf("pacer: load %s: %v", name, err)
		return obj.ConstantPacer{}
	}
	pacer, err := obj.NewScriptPacer(name, src)
	if err != nil {
		log.Printf("pacer: %v", err)
		return obj.ConstantPacer{}
	}
	return pacer
}

// tileColor gives placeholder tiles a color per role so an unskinned level is
// still readable.
func tileColor(roles obj.TileRoles) assets.TileColor {
	return func(i int) color.Color {
		switch {
		case i == roles.Hazard:
			return colornames.Orangered
		case roles.Vines.Contains(i):
			return colornames.Forestgreen
		case containsIndex(roles.Sprint, i):
			return colornames.Gold
		case containsIndex(roles.JumpBoost, i):
			return colornames.Deepskyblue
		case containsIndex(roles.Ground, i):
			return colornames.Saddlebrown
		case roles.Step.Contains(i), roles.Platform.Contains(i):
			return colornames.Peru
		}
		return colornames.Lightgray
	}
}

func containsIndex(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func setF(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func setI(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
