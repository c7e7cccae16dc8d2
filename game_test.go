package main

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/obj"
	"github.com/milk9111/runred/prefabs"
)

func newTestGame(t *testing.T, variant string) (*Game, *common.ManualClock) {
	t.Helper()
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(variant)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	src := common.NewManualClock(0)
	g := &Game{cfg: cfg, clock: common.NewPausableClock(src), input: obj.NewInput()}
	g.loadArt()
	if err := g.buildScene(0); err != nil {
		t.Fatalf("scene: %v", err)
	}
	return g, src
}

func run(g *Game, src *common.ManualClock, frames int, in obj.Intents) []obj.Outcome {
	outs := make([]obj.Outcome, 0, frames)
	for i := 0; i < frames; i++ {
		outs = append(outs, g.step(src.Advance(time.Second/common.TPS), in))
	}
	return outs
}

func TestGameWalkScrollsAndCollectsSprint(t *testing.T) {
	g, src := newTestGame(t, "")
	run(g, src, 10, obj.Intents{})
	if g.player.Body.Airborne {
		t.Fatalf("player did not settle on the ground at y=%v", g.player.Body.Y)
	}

	var picked bool
	for _, out := range run(g, src, 175, obj.Intents{MoveRight: true}) {
		if out.Pickup == obj.PickupSprint {
			picked = true
		}
		if out.Respawned {
			t.Fatalf("respawned at x=%v", g.player.Body.X)
		}
	}
	if !picked || !g.player.SprintActive(g.clock.Now()) {
		t.Fatalf("sprint pickup not collected, x=%v", g.player.Body.X)
	}
	if g.camera.Scroll <= 0 {
		t.Fatalf("camera did not scroll, x=%v", g.player.Body.X)
	}
	if screenX := g.camera.ToScreen(g.player.Body.X); screenX > common.BaseWidth/2+20 {
		t.Fatalf("player ran off center: screen x %v", screenX)
	}
}

func TestGameClampsAtLeftEdge(t *testing.T) {
	g, src := newTestGame(t, "")
	run(g, src, 60, obj.Intents{MoveLeft: true})
	half := float64(g.player.Body.Rect.Width) / 2
	if g.player.Body.X < half {
		t.Fatalf("x = %v, want >= %v", g.player.Body.X, half)
	}
}

func TestGameChaseVariantCatches(t *testing.T) {
	g, src := newTestGame(t, "chase")
	if g.pursuer.Tuning.Mode != obj.PursuitMirror || g.pursuer.Tuning.StartX != 20 {
		t.Fatalf("pursuer tuning = %+v", g.pursuer.Tuning)
	}
	run(g, src, 5, obj.Intents{})

	g.pursuer.Body.X = g.player.Body.X - 5
	g.pursuer.Body.Anchor()
	out := g.step(src.Advance(time.Second/common.TPS), obj.Intents{})
	if !out.Caught {
		t.Fatalf("outcome = %+v, want caught", out)
	}
	if g.player.Body.X != g.player.Tuning.SpawnX || g.camera.Scroll != 0 {
		t.Fatalf("reset left x=%v scroll=%v", g.player.Body.X, g.camera.Scroll)
	}
}

func TestGameGoalStopsTimerAndRecords(t *testing.T) {
	g, src := newTestGame(t, "")
	run(g, src, 30, obj.Intents{})

	g.player.Body.Teleport(g.cfg.world.Goal.Min+10, g.player.Body.Y)
	out := g.step(src.Advance(time.Second/common.TPS), obj.Intents{})
	if !out.GoalReached || !g.presentation.Active() {
		t.Fatalf("outcome = %+v active=%v", out, g.presentation.Active())
	}
	stopped := g.timer.Elapsed()
	run(g, src, 30, obj.Intents{MoveRight: true})
	if g.timer.Elapsed() != stopped {
		t.Fatalf("timer kept running: %v -> %v", stopped, g.timer.Elapsed())
	}
	if !g.newRecord {
		t.Fatalf("first finish should be a record")
	}
	if best, ok := g.prefs.Best(g.cfg.recordKey()); !ok || best != stopped {
		t.Fatalf("best = %v %v, want %v", best, ok, stopped)
	}
}

func TestGamePauseFreezesClock(t *testing.T) {
	g, src := newTestGame(t, "")
	before := g.clock.Now()
	g.setPaused(true)
	src.Advance(5 * time.Second)
	if g.clock.Now() != before {
		t.Fatalf("clock moved while paused")
	}
	g.setPaused(false)
	src.Advance(time.Second)
	if got := g.clock.Now() - before; got != time.Second {
		t.Fatalf("clock advanced %v after resume, want 1s", got)
	}
}

func TestApplyVariant(t *testing.T) {
	start := 75.0
	newCfg := func() *config {
		return &config{
			player:  &prefabs.PlayerSpec{Capabilities: prefabs.CapabilitiesSpec{Climb: true, Powerups: true}},
			pursuer: &prefabs.PursuerSpec{Mode: "advance", StartX: 40},
			world: &prefabs.WorldSpec{
				Level: "level1.json",
				Variants: map[string]prefabs.VariantSpec{
					"chase":   {PursuerMode: "mirror", PursuerStart: &start},
					"classic": {Capabilities: &prefabs.CapabilitiesSpec{}},
				},
			},
		}
	}

	cases := []struct {
		name     string
		variant  string
		wantErr  bool
		wantMode string
		wantX    float64
		wantCaps bool
		wantKey  string
	}{
		{"base", "", false, "advance", 40, true, "level1.json"},
		{"chase", "chase", false, "mirror", 75, true, "level1.json#chase"},
		{"classic", "classic", false, "advance", 40, false, "level1.json#classic"},
		{"unknown", "speedrun", true, "", 0, false, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := newCfg()
			err := cfg.applyVariant(c.variant)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyVariant: %v", err)
			}
			if cfg.pursuer.Mode != c.wantMode || cfg.pursuer.StartX != c.wantX {
				t.Fatalf("pursuer = %+v", cfg.pursuer)
			}
			if cfg.player.Capabilities.Powerups != c.wantCaps {
				t.Fatalf("caps = %+v", cfg.player.Capabilities)
			}
			if cfg.recordKey() != c.wantKey {
				t.Fatalf("record key = %q, want %q", cfg.recordKey(), c.wantKey)
			}
		})
	}
}

func TestPlayerTuningFromPrefab(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("spec: %v", err)
	}
	got := playerTuning(spec)
	if got.BaselineY != 13*common.TileSize {
		t.Fatalf("baseline = %v", got.BaselineY)
	}
	if want := 0.4 * common.TileSize; math.Abs(got.StepTolerance-want) > 1e-9 {
		t.Fatalf("step tolerance = %v, want %v", got.StepTolerance, want)
	}
	if got.SprintDuration != 3*time.Second || got.VineRegrab != 250*time.Millisecond {
		t.Fatalf("durations = %v / %v", got.SprintDuration, got.VineRegrab)
	}

	empty := playerTuning(&prefabs.PlayerSpec{})
	if empty != obj.DefaultPlayerTuning() {
		t.Fatalf("empty spec should keep the defaults: %+v", empty)
	}
}

func TestLoadPacerFallsBack(t *testing.T) {
	if _, ok := loadPacer("").(obj.ConstantPacer); !ok {
		t.Fatalf("empty script name should give a constant pacer")
	}
	if _, ok := loadPacer("no_such_script").(obj.ConstantPacer); !ok {
		t.Fatalf("missing script should give a constant pacer")
	}
	if _, ok := loadPacer("wolf_pace").(*obj.ScriptPacer); !ok {
		t.Fatalf("embedded script should compile")
	}
}
