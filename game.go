package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/runred/assets"
	"github.com/milk9111/runred/common"
	"github.com/milk9111/runred/component"
	"github.com/milk9111/runred/levels"
	"github.com/milk9111/runred/obj"
	"github.com/milk9111/runred/prefabs"
	"github.com/milk9111/runred/settings"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

type Options struct {
	Level   string
	Variant string
	Debug   bool
	Watch   bool
}

type Game struct {
	opts  Options
	cfg   *config
	clock *common.PausableClock

	input        *obj.Input
	world        *obj.TileWorld
	player       *obj.Player
	pursuer      *obj.Pursuer
	camera       *obj.Camera
	encounters   *obj.Encounters
	presentation *obj.Presentation
	timer        obj.RunTimer

	atlas       []*ebiten.Image
	star        *ebiten.Image
	playerSeqs  map[component.SequenceID]component.Sequence
	pursuerSeqs map[component.SequenceID]component.Sequence
	backgrounds []obj.BackgroundLayer
	bgColor     color.Color
	icons       map[obj.PickupKind]*ebiten.Image

	music   *assets.Music
	store   settings.Store
	prefs   settings.Settings
	watcher *prefabs.Watcher

	paused     bool
	pauseUI    *ebitenui.UI
	completeUI *ebitenui.UI
	newRecord  bool
	quit       bool

	face     ebtext.Face
	drawList []obj.DrawItem
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := loadConfig(opts.Variant)
	if err != nil {
		return nil, err
	}
	if opts.Level != "" {
		cfg.world.Level = opts.Level
	}

	g := &Game{
		opts:  opts,
		cfg:   cfg,
		clock: common.NewPausableClock(common.NewSystemClock()),
		input: obj.NewInput(),
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
	}

	if store, err := settings.Open(); err != nil {
		log.Printf("game: %v", err)
	} else {
		g.store = store
	}
	g.prefs = settings.Load(g.store)

	g.loadArt()
	if err := g.buildScene(g.clock.Now()); err != nil {
		return nil, err
	}
	g.startMusic()

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			log.Printf("game: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.completeUI = NewCompleteUI(g)
	return g, nil
}

// loadArt reads every image the scene needs. Missing files become
// placeholders.
func (g *Game) loadArt() {
	ws := g.cfg.world
	roles := tileRoles(g.cfg.tiles)

	g.atlas = assets.LoadTileAtlas(ws.TilesDir, ws.TileCount, tileColor(roles))
	g.star = assets.ImageOr(ws.StarImage, common.TileSize, common.TileSize, colornames.Gold)
	g.playerSeqs = assets.LoadSequences(g.cfg.player.Animation, g.cfg.player.Collider)
	g.pursuerSeqs = assets.LoadSequences(g.cfg.pursuer.Animation, g.cfg.pursuer.Collider)
	g.bgColor = ws.Background.ColorOr(colornames.Skyblue)

	g.backgrounds = g.backgrounds[:0]
	for _, bg := range ws.Backgrounds {
		w, h := bg.Width, bg.Height
		if w <= 0 {
			w = common.BaseWidth
		}
		if h <= 0 {
			h = common.BaseHeight
		}
		img := assets.ImageOr(bg.Image, w, h, bg.Color.ColorOr(color.Transparent))
		g.backgrounds = append(g.backgrounds, obj.BackgroundLayer{Image: img, Factor: bg.Factor, Y: bg.Y})
	}

	g.icons = map[obj.PickupKind]*ebiten.Image{
		obj.PickupSprint:    g.iconFor(roles.Sprint, colornames.Gold),
		obj.PickupJumpBoost: g.iconFor(roles.JumpBoost, colornames.Deepskyblue),
	}
}

func (g *Game) iconFor(indices []int, fallback color.Color) *ebiten.Image {
	for _, i := range indices {
		if i >= 0 && i < len(g.atlas) && g.atlas[i] != nil {
			return g.atlas[i]
		}
	}
	return assets.Placeholder(common.TileSize/2, common.TileSize/2, fallback)
}

// buildScene creates the world and everything in it from the current config.
func (g *Game) buildScene(now time.Duration) error {
	placements, err := levels.Load(g.cfg.world.Level)
	if err != nil {
		return fmt.Errorf("game: level %s (embedded: %s): %w", g.cfg.world.Level, strings.Join(levels.Names(), ", "), err)
	}
	roles := tileRoles(g.cfg.tiles)
	if err := roles.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world = obj.NewTileWorld(g.atlas, g.star, roles, g.cfg.world.AmbientScale)
	g.world.Build(placements)

	g.camera = obj.NewCamera(common.BaseWidth, common.BaseHeight)
	g.camera.SetWorldBounds(g.world.Width())

	g.player = obj.NewPlayer(playerTuning(g.cfg.player), capabilities(g.cfg.player.Capabilities), g.playerSeqs, now)
	g.pursuer = obj.NewPursuer(pursuerTuning(g.cfg.pursuer), loadPacer(g.cfg.pursuer.Script), g.world.GroundProbe, g.pursuerSeqs, now)

	g.presentation = obj.NewPresentation(presentationTuning(g.cfg.world.Presentation))
	g.encounters = obj.NewEncounters(g.world, goalZone(g.cfg.world.Goal), g.presentation)
	g.timer.Restart()
	g.newRecord = false

	log.Printf("game: %s loaded, %d tiles, %dpx wide, pursuer %s", g.cfg.world.Level, len(g.world.Tiles), g.world.Width(), g.pursuer.Tuning.Mode)
	return nil
}

func (g *Game) startMusic() {
	m := g.cfg.world.Music
	if m.File == "" {
		return
	}
	music, err := assets.LoadMusic(m.File, m.Loop)
	if err != nil {
		log.Printf("game: no music: %v", err)
		return
	}
	g.music = music
	vol := m.Volume
	if vol <= 0 {
		vol = 1
	}
	g.music.SetVolume(vol * g.prefs.MusicVolume)
	g.music.SetMuted(g.prefs.Muted)
	g.music.Play()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.input.Update()
	in := g.input.Intents
	if in.Mute {
		g.toggleMute()
	}
	g.applyChanges()

	if g.presentation.Finished() {
		g.completeUI.Update()
		if in.Restart {
			g.restart()
		}
		return nil
	}

	if in.Pause {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if in.Restart {
		g.restart()
	}

	g.step(g.clock.Now(), in)
	return nil
}

// step runs one frame of gameplay.
func (g *Game) step(now time.Duration, in obj.Intents) obj.Outcome {
	if g.presentation.Active() {
		in = obj.Intents{}
	}

	g.player.Update(now, in, g.world)
	g.pursuer.Update(now, g.player, g.world)
	out := g.encounters.Resolve(now, g.player, g.pursuer, g.camera)

	g.camera.Update(g.player.Body.X, g.player.LastDX)
	half := float64(g.player.Body.Rect.Width) / 2
	if x := g.camera.ClampPlayer(g.player.Body.X, half); x != g.player.Body.X {
		g.player.Body.X = x
		g.player.Body.Anchor()
	}

	g.presentation.Update(now)
	g.timer.Update(now)
	if out.GoalReached {
		g.timer.Stop()
		g.finishRun()
	}
	return out
}

func (g *Game) finishRun() {
	elapsed := g.timer.Elapsed()
	g.newRecord = g.prefs.RecordTime(g.cfg.recordKey(), elapsed)
	log.Printf("game: goal reached in %s (record: %v)", obj.FormatElapsed(elapsed), g.newRecord)
	if err := settings.Save(g.store, g.prefs); err != nil {
		log.Printf("game: %v", err)
	}
}

func (g *Game) restart() {
	g.setPaused(false)
	if err := g.buildScene(g.clock.Now()); err != nil {
		log.Printf("game: restart: %v", err)
	}
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.clock.SetPaused(paused)
	if paused {
		g.music.Pause()
	} else {
		g.music.Play()
	}
}

func (g *Game) toggleMute() {
	g.prefs.Muted = !g.prefs.Muted
	g.music.SetMuted(g.prefs.Muted)
	if err := settings.Save(g.store, g.prefs); err != nil {
		log.Printf("game: %v", err)
	}
}

// applyChanges reloads whatever the watcher saw change on disk.
func (g *Game) applyChanges() {
	for _, c := range g.watcher.Poll() {
		log.Printf("game: reload %s %s", c.Kind, c.Path)
		switch c.Kind {
		case prefabs.ChangeSpec:
			g.reloadSpecs()
		case prefabs.ChangeScript:
			g.pursuer.SetPacer(loadPacer(g.cfg.pursuer.Script))
		case prefabs.ChangeLevel:
			if filepath.Base(c.Path) == filepath.Base(g.cfg.world.Level) {
				g.reloadLevel()
			}
		}
	}
}

func (g *Game) reloadSpecs() {
	cfg, err := loadConfig(g.cfg.variant)
	if err != nil {
		log.Printf("game: keep old tuning: %v", err)
		return
	}
	cfg.world.Level = g.cfg.world.Level
	roles := tileRoles(cfg.tiles)
	if err := roles.Validate(); err != nil {
		log.Printf("game: keep old tuning: %v", err)
		return
	}
	g.cfg = cfg
	now := g.clock.Now()

	g.world.SetRoles(roles)
	g.player.Retune(playerTuning(cfg.player), now)
	g.player.Caps = capabilities(cfg.player.Capabilities)

	x := g.pursuer.Body.X
	g.pursuer = obj.NewPursuer(pursuerTuning(cfg.pursuer), loadPacer(cfg.pursuer.Script), g.world.GroundProbe, g.pursuerSeqs, now)
	if g.pursuer.Tuning.Mode == obj.PursuitAdvance && x > g.pursuer.Body.X {
		g.pursuer.Advance(x - g.pursuer.Body.X)
	}

	g.encounters.Goal = goalZone(cfg.world.Goal)
	if !g.presentation.Active() {
		g.presentation.Tuning = presentationTuning(cfg.world.Presentation)
	}
}

func (g *Game) reloadLevel() {
	placements, err := levels.Load(g.cfg.world.Level)
	if err != nil {
		log.Printf("game: keep old level: %v", err)
		return
	}
	g.world.Build(placements)
	g.camera.SetWorldBounds(g.world.Width())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bgColor)

	g.drawList = obj.BuildDrawList(obj.Scene{
		Backgrounds: g.backgrounds,
		World:       g.world,
		Player:      g.player,
		Pursuer:     g.pursuer,
		Camera:      g.camera,
		HUD:         g.hudItems(),
	}, g.drawList[:0])
	for _, it := range g.drawList {
		blit(screen, it)
	}

	g.drawHUDText(screen)
	g.drawPresentation(screen)

	if g.opts.Debug {
		g.drawDebug(screen)
	}
	switch {
	case g.presentation.Finished():
		g.completeUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func blit(screen *ebiten.Image, it obj.DrawItem) {
	op := &ebiten.DrawImageOptions{}
	if it.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(it.Image.Bounds().Dx()), 0)
	}
	op.GeoM.Translate(it.X, it.Y)
	if it.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(it.Alpha))
	}
	screen.DrawImage(it.Image, op)
}

const hudMargin = 12

// hudItems shows an icon per running buff.
func (g *Game) hudItems() []obj.DrawItem {
	now := g.clock.Now()
	var items []obj.DrawItem
	x := float64(hudMargin)
	for _, kind := range []obj.PickupKind{obj.PickupSprint, obj.PickupJumpBoost} {
		var active bool
		switch kind {
		case obj.PickupSprint:
			active = g.player.SprintActive(now)
		case obj.PickupJumpBoost:
			active = g.player.JumpBoostActive(now)
		}
		icon := g.icons[kind]
		if !active || icon == nil {
			continue
		}
		items = append(items, obj.DrawItem{Image: icon, X: x, Y: hudMargin, Alpha: 1})
		x += float64(icon.Bounds().Dx()) + hudMargin
	}
	return items
}

func (g *Game) drawHUDText(screen *ebiten.Image) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(common.BaseWidth-hudMargin, hudMargin)
	op.PrimaryAlign = ebtext.AlignEnd
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, g.timer.String(), g.face, op)

	if best, ok := g.prefs.Best(g.cfg.recordKey()); ok {
		op.GeoM.Translate(0, 16)
		label := "best " + obj.FormatElapsed(best)
		if g.newRecord {
			label = "new best!"
		}
		ebtext.Draw(screen, label, g.face, op)
	}

	now := g.clock.Now()
	left := &ebtext.DrawOptions{}
	left.GeoM.Translate(hudMargin, hudMargin+common.TileSize+4)
	left.ColorScale.ScaleWithColor(color.White)
	if d := g.player.SprintRemaining(now); d > 0 {
		ebtext.Draw(screen, fmt.Sprintf("sprint %.1fs", d.Seconds()), g.face, left)
		left.GeoM.Translate(0, 16)
	}
	if d := g.player.JumpBoostRemaining(now); d > 0 {
		ebtext.Draw(screen, fmt.Sprintf("jump %.1fs", d.Seconds()), g.face, left)
	}
}

func (g *Game) drawPresentation(screen *ebiten.Image) {
	p := g.presentation
	if !p.Active() {
		return
	}
	if p.FadeAlpha > 0 {
		a := uint8(common.Clamp(p.FadeAlpha, 0, 1) * 255)
		vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{A: a}, false)
	}
	if line := p.Line(); line != "" && p.DialogAlpha > 0 {
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(2, 2)
		op.GeoM.Translate(common.BaseWidth/2, common.BaseHeight/2)
		op.PrimaryAlign = ebtext.AlignCenter
		op.SecondaryAlign = ebtext.AlignCenter
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(float32(p.DialogAlpha))
		ebtext.Draw(screen, line, g.face, op)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	outline := func(r common.Rect, c color.Color) {
		x := g.camera.ToScreen(float64(r.X))
		vector.StrokeRect(screen, float32(x), float32(r.Y), float32(r.Width), float32(r.Height), 1, c, false)
	}
	for _, r := range g.world.PlatformRects() {
		outline(r, colornames.Lime)
	}
	for _, t := range g.world.Hazards {
		outline(t.Rect, colornames.Red)
	}
	for _, t := range g.world.Climbables {
		outline(t.Rect, colornames.Green)
	}
	outline(g.player.Body.Rect, colornames.Yellow)
	outline(g.pursuer.Body.Rect, colornames.Orange)

	goalX := g.camera.ToScreen(g.encounters.Goal.Min)
	vector.StrokeLine(screen, float32(goalX), 0, float32(goalX), common.BaseHeight, 2, colornames.White, false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"fps %.1f  mode %s  x %.1f y %.1f vy %.2f  scroll %.1f  respawns %d  pursuer %.1f",
		ebiten.ActualFPS(), g.player.Mode(), g.player.Body.X, g.player.Body.Y, g.player.Body.VelocityY,
		g.camera.Scroll, g.encounters.Respawns(), g.pursuer.Body.X,
	), hudMargin, common.BaseHeight-24)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	_ = g.music.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
