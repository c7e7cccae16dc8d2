package obj

import (
	"log"
	"time"
)

// GoalZone is the world x interval that ends the level.
type GoalZone struct {
	Min float64
	Max float64
}

func (g GoalZone) Contains(x float64) bool {
	return g.Max >= g.Min && x >= g.Min && x <= g.Max
}

// Outcome reports what happened during one Resolve call.
type Outcome struct {
	Respawned bool
	Caught    bool
	Pickup    PickupKind
	// GoalReached is true only on the frame the goal latched.
	GoalReached bool
}

// Encounters runs the per-frame contact checks after movement.
type Encounters struct {
	World        *TileWorld
	Goal         GoalZone
	Presentation *Presentation

	goalLatched bool
	respawns    int
}

func NewEncounters(world *TileWorld, goal GoalZone, presentation *Presentation) *Encounters {
	return &Encounters{World: world, Goal: goal, Presentation: presentation}
}

// GoalLatched reports whether the goal was ever reached. It never resets.
func (e *Encounters) GoalLatched() bool { return e != nil && e.goalLatched }

// Respawns counts hazard and caught resets.
func (e *Encounters) Respawns() int {
	if e == nil {
		return 0
	}
	return e.respawns
}

// Resolve checks the player against hazards, the pursuer, pickups, the goal
// and vines, in that order. A reset ends the checks for the frame.
func (e *Encounters) Resolve(now time.Duration, player *Player, pursuer *Pursuer, camera *Camera) Outcome {
	var out Outcome
	if e == nil || player == nil {
		return out
	}
	rect := player.Body.Rect

	if e.World.HazardAt(rect) {
		e.reset(player, pursuer, camera)
		out.Respawned = true
		return out
	}
	if pursuer.Caught(rect) {
		e.reset(player, pursuer, camera)
		out.Respawned = true
		out.Caught = true
		return out
	}

	if player.Caps.Powerups {
		if kind, ok := e.World.TakePickup(rect); ok {
			player.Apply(kind, now)
			out.Pickup = kind
			log.Printf("encounters: picked up %s", kind)
		}
	}

	if !e.goalLatched && e.Goal.Contains(player.Body.X) {
		e.goalLatched = true
		out.GoalReached = true
		e.Presentation.Start(now)
	}

	player.SetOnVine(player.Caps.Climb && e.World.ClimbableAt(rect), now)
	return out
}

func (e *Encounters) reset(player *Player, pursuer *Pursuer, camera *Camera) {
	e.respawns++
	player.Respawn()
	pursuer.Reset()
	camera.Reset()
}
