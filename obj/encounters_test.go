package obj

import (
	"testing"
	"time"

	"github.com/milk9111/runred/levels"
)

func TestEncountersHazardResetsInPlace(t *testing.T) {
	world := newTestWorld(append(groundPlacements(40), tp(14, 10, 5))...)
	player := newTestPlayer(AllCapabilities(), 0)
	camera := NewCamera(1100, 740)
	camera.SetWorldBounds(40 * ts)
	camera.Scroll = 300
	enc := NewEncounters(world, GoalZone{Min: 6500, Max: 6900}, nil)

	player.Body.Teleport(10*ts+ts/2, 6*ts)
	player.Body.VelocityY = 7
	player.Body.Airborne = true

	out := enc.Resolve(time.Second, player, nil, camera)
	if !out.Respawned || out.Caught {
		t.Fatalf("outcome = %+v, want a hazard respawn", out)
	}
	if player.Body.X != player.Tuning.SpawnX || player.Body.Y != player.Tuning.BaselineY {
		t.Fatalf("position = (%v, %v), want spawn (%v, %v)", player.Body.X, player.Body.Y, player.Tuning.SpawnX, player.Tuning.BaselineY)
	}
	if player.Body.VelocityY != 0 || player.Body.Airborne {
		t.Fatalf("vy = %v airborne = %v after respawn", player.Body.VelocityY, player.Body.Airborne)
	}
	if camera.Scroll != 0 {
		t.Fatalf("scroll = %v, want 0", camera.Scroll)
	}
	if enc.Respawns() != 1 {
		t.Fatalf("respawns = %d", enc.Respawns())
	}
}

func TestEncountersWalkIntoHazard(t *testing.T) {
	world := newTestWorld(append(groundPlacements(40), tp(14, 10, 12))...)
	player := newTestPlayer(AllCapabilities(), 0)
	camera := NewCamera(1100, 740)
	camera.SetWorldBounds(40 * ts)
	enc := NewEncounters(world, GoalZone{}, nil)

	respawned := false
	for i := 1; i <= 200 && !respawned; i++ {
		now := time.Duration(i) * 16 * time.Millisecond
		player.Update(now, Intents{MoveRight: true}, world)
		camera.Update(player.Body.X, player.LastDX)
		respawned = enc.Resolve(now, player, nil, camera).Respawned
	}
	if !respawned {
		t.Fatalf("player walked through the hazard at x=%v", player.Body.X)
	}
	if player.Body.X != player.Tuning.SpawnX || camera.Scroll != 0 {
		t.Fatalf("x = %v scroll = %v after respawn", player.Body.X, camera.Scroll)
	}
}

func TestEncountersGoalLatch(t *testing.T) {
	world := groundWorld(10)
	player := newTestPlayer(AllCapabilities(), 0)
	pres := NewPresentation(DefaultPresentationTuning())
	enc := NewEncounters(world, GoalZone{Min: 6500, Max: 6900}, pres)

	steps := []struct {
		x           float64
		wantReached bool
	}{
		{6000, false},
		{6500, true},
		{6700, false},
		{7000, false},
		{100, false},
		{6600, false},
	}
	for i, s := range steps {
		player.Body.Teleport(s.x, player.Body.Y)
		out := enc.Resolve(time.Duration(i)*time.Second, player, nil, nil)
		if out.GoalReached != s.wantReached {
			t.Fatalf("step %d x=%v: GoalReached = %v, want %v", i, s.x, out.GoalReached, s.wantReached)
		}
		if i >= 1 && !enc.GoalLatched() {
			t.Fatalf("step %d: latch released", i)
		}
	}
	if !pres.Active() {
		t.Fatalf("goal did not start the presentation")
	}
}

func TestEncountersPickups(t *testing.T) {
	world := newTestWorld(append(groundPlacements(10), tp(134, 2, 12), tp(135, 5, 12))...)
	player := newTestPlayer(AllCapabilities(), 0)
	enc := NewEncounters(world, GoalZone{}, nil)

	player.Body.Teleport(2*ts+ts/2, 13*ts)
	out := enc.Resolve(time.Second, player, nil, nil)
	if out.Pickup != PickupSprint || !player.SprintActive(time.Second) {
		t.Fatalf("outcome = %+v sprint=%v", out, player.SprintActive(time.Second))
	}
	if len(world.Pickups[PickupSprint]) != 0 {
		t.Fatalf("sprint pickup not consumed")
	}
	if out := enc.Resolve(time.Second, player, nil, nil); out.Pickup != 0 {
		t.Fatalf("consumed pickup collected twice")
	}

	locked := newTestPlayer(Capabilities{}, 0)
	locked.Body.Teleport(5*ts+ts/2, 13*ts)
	if out := enc.Resolve(time.Second, locked, nil, nil); out.Pickup != 0 {
		t.Fatalf("pickup collected without the capability")
	}
	if len(world.Pickups[PickupJumpBoost]) != 1 {
		t.Fatalf("pickup removed without being applied")
	}
}

func TestEncountersVineAndCaught(t *testing.T) {
	world := newTestWorld(append(groundPlacements(10), tp(121, 4, 12))...)
	player := newTestPlayer(AllCapabilities(), 0)
	enc := NewEncounters(world, GoalZone{}, nil)

	player.Body.Teleport(4*ts+ts/2, 13*ts)
	enc.Resolve(time.Second, player, nil, nil)
	if !player.OnVine() {
		t.Fatalf("overlapping a vine should enable vine mode")
	}
	player.Body.Teleport(8*ts, 13*ts)
	enc.Resolve(time.Second, player, nil, nil)
	if player.OnVine() {
		t.Fatalf("leaving the vine should end vine mode")
	}

	tuning := DefaultPursuerTuning()
	tuning.Mode = PursuitMirror
	tuning.StartX = 20
	wolf := NewPursuer(tuning, nil, nil, nil, 0)
	wolf.Body.Teleport(player.Body.X-10, player.Body.Y)
	out := enc.Resolve(2*time.Second, player, wolf, nil)
	if !out.Caught || !out.Respawned {
		t.Fatalf("outcome = %+v, want caught", out)
	}
	if wolf.Body.X != tuning.StartX || player.Body.X != player.Tuning.SpawnX {
		t.Fatalf("caught reset left wolf=%v player=%v", wolf.Body.X, player.Body.X)
	}
}

func groundPlacements(cols int) []levels.TilePlacement {
	out := make([]levels.TilePlacement, 0, cols)
	for x := 0; x < cols; x++ {
		out = append(out, tp(3, x, 13))
	}
	return out
}
