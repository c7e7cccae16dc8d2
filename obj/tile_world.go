package obj

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/levels"
)

// IndexRange is an inclusive tile index range. A range with Max < Min is
// empty.
type IndexRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r IndexRange) Contains(i int) bool {
	return r.Max >= r.Min && i >= r.Min && i <= r.Max
}

// TileRoles maps tile indices to gameplay roles.
type TileRoles struct {
	Ground     []int      `yaml:"ground"`
	Step       IndexRange `yaml:"step"`
	Platform   IndexRange `yaml:"platform"`
	Hazard     int        `yaml:"hazard"`
	Vines      IndexRange `yaml:"vines"`
	Sprint     []int      `yaml:"sprint"`
	JumpBoost  []int      `yaml:"jump_boost"`
	StarMarker string     `yaml:"star_marker"`
	// HazardLift raises a hazard's top and HazardGrow extends its height,
	// both as fractions of a tile.
	HazardLift float64 `yaml:"hazard_lift"`
	HazardGrow float64 `yaml:"hazard_grow"`
}

// DefaultTileRoles is the table the shipped atlas was drawn for.
func DefaultTileRoles() TileRoles {
	return TileRoles{
		Ground:     []int{3, 5},
		Step:       IndexRange{Min: 58, Max: 93},
		Platform:   IndexRange{Min: 129, Max: 133},
		Hazard:     14,
		Vines:      IndexRange{Min: 120, Max: 123},
		Sprint:     []int{134},
		JumpBoost:  []int{135},
		StarMarker: "star",
		HazardLift: 0.025,
		HazardGrow: 0.3,
	}
}

func (tr TileRoles) isPlatform(i int) bool {
	return containsInt(tr.Ground, i) || tr.Step.Contains(i) || tr.Platform.Contains(i)
}

func (tr TileRoles) isHazard(i int) bool { return i == tr.Hazard }

func (tr TileRoles) pickupKind(i int) (PickupKind, bool) {
	switch {
	case containsInt(tr.Sprint, i):
		return PickupSprint, true
	case containsInt(tr.JumpBoost, i):
		return PickupJumpBoost, true
	}
	return 0, false
}

// Validate rejects tables where one index would land in two buckets.
func (tr TileRoles) Validate() error {
	roles := func(i int) []string {
		var r []string
		if tr.isPlatform(i) {
			r = append(r, "platform")
		}
		if tr.isHazard(i) {
			r = append(r, "hazard")
		}
		if tr.Vines.Contains(i) {
			r = append(r, "vine")
		}
		if containsInt(tr.Sprint, i) {
			r = append(r, "sprint")
		}
		if containsInt(tr.JumpBoost, i) {
			r = append(r, "jump_boost")
		}
		return r
	}
	candidates := append([]int{tr.Hazard}, tr.Ground...)
	candidates = append(candidates, tr.Sprint...)
	candidates = append(candidates, tr.JumpBoost...)
	for _, rg := range []IndexRange{tr.Step, tr.Platform, tr.Vines} {
		for i := rg.Min; rg.Contains(i); i++ {
			candidates = append(candidates, i)
		}
	}
	for _, i := range candidates {
		if r := roles(i); len(r) > 1 {
			return fmt.Errorf("tile roles: index %d is in %s", i, strings.Join(r, " and "))
		}
	}
	return nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

type PickupKind int

const (
	PickupSprint PickupKind = iota + 1
	PickupJumpBoost
)

func (k PickupKind) String() string {
	switch k {
	case PickupSprint:
		return "sprint"
	case PickupJumpBoost:
		return "jump_boost"
	}
	return "none"
}

// PlacedTile is a tile image together with its world rect.
type PlacedTile struct {
	Index int
	Image *ebiten.Image
	Rect  common.Rect

	src pickupSource
}

// pickupSource identifies the placement a pickup came from.
type pickupSource struct {
	placement int
	star      bool
}

const (
	categoryPlatform uint = 1 << iota
	categoryHazard
	categoryClimbable
)

// TileWorld sorts placed tiles into the collections gameplay checks against.
type TileWorld struct {
	atlas        []*ebiten.Image
	star         *ebiten.Image
	roles        TileRoles
	ambientScale float64

	placements []levels.TilePlacement
	taken      map[pickupSource]bool

	Tiles      []PlacedTile
	Platforms  []PlacedTile
	Hazards    []PlacedTile
	Climbables []PlacedTile
	Pickups    map[PickupKind][]PlacedTile

	platformRects []common.Rect
	space         *cp.Space
}

// NewTileWorld creates an empty world. star is the image used for
// texture-matched star pickups and may be nil.
func NewTileWorld(atlas []*ebiten.Image, star *ebiten.Image, roles TileRoles, ambientScale float64) *TileWorld {
	if ambientScale <= 0 {
		ambientScale = 1
	}
	return &TileWorld{
		atlas:        atlas,
		star:         star,
		roles:        roles,
		ambientScale: ambientScale,
		Pickups:      map[PickupKind][]PlacedTile{},
		taken:        map[pickupSource]bool{},
	}
}

// Build replaces the world's contents with the given placements. Indices
// outside the atlas are skipped.
func (w *TileWorld) Build(placements []levels.TilePlacement) {
	if w == nil {
		return
	}
	w.placements = append(w.placements[:0], placements...)
	w.taken = map[pickupSource]bool{}
	w.Rebuild()
}

// Rebuild reprocesses the last placements, e.g. after the roles changed.
// Pickups already taken stay taken.
func (w *TileWorld) Rebuild() {
	if w == nil {
		return
	}
	w.Tiles = w.Tiles[:0]
	w.Platforms = w.Platforms[:0]
	w.Hazards = w.Hazards[:0]
	w.Climbables = w.Climbables[:0]
	w.Pickups = map[PickupKind][]PlacedTile{}
	w.platformRects = w.platformRects[:0]

	for i, p := range w.placements {
		w.place(i, p)
	}
	w.buildIndex()
}

func (w *TileWorld) SetRoles(roles TileRoles) {
	if w == nil {
		return
	}
	w.roles = roles
	w.Rebuild()
}

func (w *TileWorld) addPickup(kind PickupKind, t PlacedTile) {
	if w.taken[t.src] {
		return
	}
	w.Pickups[kind] = append(w.Pickups[kind], t)
}

func (w *TileWorld) place(i int, p levels.TilePlacement) {
	px := int(float64(p.GridX) * common.TileSize * w.ambientScale)
	py := p.GridY * common.TileSize

	if w.roles.StarMarker != "" && strings.Contains(strings.ToLower(p.TexturePath), strings.ToLower(w.roles.StarMarker)) {
		sw, sh := common.TileSize, common.TileSize
		if w.star != nil {
			b := w.star.Bounds()
			sw, sh = b.Dx(), b.Dy()
		}
		w.addPickup(PickupSprint, PlacedTile{
			Index: p.TileIndex,
			Image: w.star,
			Rect:  common.NewRect(px, py, sw, sh),
			src:   pickupSource{placement: i, star: true},
		})
	}

	if p.TileIndex < 0 || p.TileIndex >= len(w.atlas) {
		return
	}

	size := int(common.TileSize * p.EffectiveScale())
	tile := PlacedTile{
		Index: p.TileIndex,
		Image: w.atlas[p.TileIndex],
		Rect:  common.NewRect(px, py, size, size),
		src:   pickupSource{placement: i},
	}

	if kind, ok := w.roles.pickupKind(p.TileIndex); ok {
		w.addPickup(kind, tile)
		return
	}

	w.Tiles = append(w.Tiles, tile)
	switch {
	case w.roles.isPlatform(p.TileIndex):
		w.Platforms = append(w.Platforms, tile)
		w.platformRects = append(w.platformRects, tile.Rect)
	case w.roles.isHazard(p.TileIndex):
		kill := tile
		kill.Rect.Y -= int(common.TileSize * w.roles.HazardLift)
		kill.Rect.Height += int(common.TileSize * w.roles.HazardGrow)
		w.Hazards = append(w.Hazards, kill)
	case w.roles.Vines.Contains(p.TileIndex):
		w.Climbables = append(w.Climbables, tile)
	}
}

func rectBB(r common.Rect) cp.BB {
	return cp.BB{L: float64(r.Left()), B: float64(r.Top()), R: float64(r.Right()), T: float64(r.Bottom())}
}

type tileRef struct {
	bucket *[]PlacedTile
	index  int
}

// buildIndex loads every solid, hazard and climbable rect into a static
// chipmunk space so that lookups only test nearby tiles.
func (w *TileWorld) buildIndex() {
	w.space = cp.NewSpace()
	add := func(bucket *[]PlacedTile, category uint) {
		for i, t := range *bucket {
			if t.Rect.Empty() {
				continue
			}
			shape := cp.NewBox2(w.space.StaticBody, rectBB(t.Rect), 0)
			shape.Filter = cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES)
			shape.UserData = tileRef{bucket: bucket, index: i}
			w.space.AddShape(shape)
		}
	}
	add(&w.Platforms, categoryPlatform)
	add(&w.Hazards, categoryHazard)
	add(&w.Climbables, categoryClimbable)
}

// query returns the tiles of a category whose rect overlaps r.
func (w *TileWorld) query(r common.Rect, category uint) []PlacedTile {
	if w == nil || w.space == nil || r.Empty() {
		return nil
	}
	var hits []PlacedTile
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, category)
	w.space.BBQuery(rectBB(r), filter, func(shape *cp.Shape, _ interface{}) {
		ref, ok := shape.UserData.(tileRef)
		if !ok || ref.index >= len(*ref.bucket) {
			return
		}
		t := (*ref.bucket)[ref.index]
		if t.Rect.Intersects(r) {
			hits = append(hits, t)
		}
	}, nil)
	return hits
}

// PlatformRects returns every solid rect.
func (w *TileWorld) PlatformRects() []common.Rect {
	if w == nil {
		return nil
	}
	return w.platformRects
}

// PlatformsNear returns the solid rects overlapping r.
func (w *TileWorld) PlatformsNear(r common.Rect) []common.Rect {
	hits := w.query(r, categoryPlatform)
	out := make([]common.Rect, len(hits))
	for i, t := range hits {
		out[i] = t.Rect
	}
	return out
}

func (w *TileWorld) HazardAt(r common.Rect) bool {
	return len(w.query(r, categoryHazard)) > 0
}

func (w *TileWorld) ClimbableAt(r common.Rect) bool {
	return len(w.query(r, categoryClimbable)) > 0
}

// TakePickup removes and returns the first pickup r overlaps. A taken pickup
// is gone for good.
func (w *TileWorld) TakePickup(r common.Rect) (PickupKind, bool) {
	if w == nil {
		return 0, false
	}
	for _, kind := range []PickupKind{PickupSprint, PickupJumpBoost} {
		list := w.Pickups[kind]
		for i, t := range list {
			if !t.Rect.Intersects(r) {
				continue
			}
			w.Pickups[kind] = append(list[:i:i], list[i+1:]...)
			w.taken[t.src] = true
			return kind, true
		}
	}
	return 0, false
}

// GroundProbe returns the highest platform top under x, or fallback when no
// platform spans x.
func (w *TileWorld) GroundProbe(x, fallback float64) float64 {
	if w == nil {
		return fallback
	}
	best := math.Inf(1)
	for _, r := range w.platformRects {
		if x >= float64(r.Left()) && x < float64(r.Right()) && float64(r.Top()) < best {
			best = float64(r.Top())
		}
	}
	if math.IsInf(best, 1) {
		return fallback
	}
	return best
}

// Width returns the right edge of the right-most tile.
func (w *TileWorld) Width() int {
	if w == nil {
		return 0
	}
	right := 0
	for _, t := range w.Tiles {
		if t.Rect.Right() > right {
			right = t.Rect.Right()
		}
	}
	return right
}
