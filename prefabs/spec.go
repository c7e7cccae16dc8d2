package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const (
	TilesFile   = "tiles.yaml"
	PlayerFile  = "player.yaml"
	PursuerFile = "pursuer.yaml"
	WorldFile   = "world.yaml"
)

type RangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// TilesSpec assigns gameplay roles to tile indices.
type TilesSpec struct {
	Ground     []int     `yaml:"ground"`
	Step       RangeSpec `yaml:"step"`
	Platform   RangeSpec `yaml:"platform"`
	Hazard     int       `yaml:"hazard"`
	Vines      RangeSpec `yaml:"vines"`
	Sprint     []int     `yaml:"sprint"`
	JumpBoost  []int     `yaml:"jump_boost"`
	StarMarker string    `yaml:"star_marker"`
	HazardLift float64   `yaml:"hazard_lift"`
	HazardGrow float64   `yaml:"hazard_grow"`
}

func LoadTilesSpec() (*TilesSpec, error) {
	spec, err := LoadSpec[TilesSpec](TilesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CapabilitiesSpec struct {
	Climb    bool `yaml:"climb"`
	TurnAnim bool `yaml:"turn_anim"`
	Powerups bool `yaml:"powerups"`
}

type BuffSpec struct {
	Multiplier   float64       `yaml:"multiplier"`
	GravityScale float64       `yaml:"gravity_scale"`
	Duration     time.Duration `yaml:"duration"`
}

type ColliderSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PlayerSpec struct {
	Name         string           `yaml:"name"`
	Capabilities CapabilitiesSpec `yaml:"capabilities"`
	SpawnX       float64          `yaml:"spawn_x"`
	// SpawnRow is the grid row whose top the player stands on at spawn.
	SpawnRow int `yaml:"spawn_row"`
	// StepTolerance is a fraction of a tile.
	StepTolerance float64       `yaml:"step_tolerance"`
	MoveSpeed     float64       `yaml:"move_speed"`
	JumpPower     float64       `yaml:"jump_power"`
	Gravity       float64       `yaml:"gravity"`
	ClimbFactor   float64       `yaml:"climb_factor"`
	TurnDuration  time.Duration `yaml:"turn_duration"`
	VineRegrab    time.Duration `yaml:"vine_regrab"`
	Sprint        BuffSpec      `yaml:"sprint"`
	JumpBoost     BuffSpec      `yaml:"jump_boost"`
	Collider      ColliderSpec  `yaml:"collider"`
	Animation     AnimationSpec `yaml:"animation"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PursuerSpec struct {
	Name      string  `yaml:"name"`
	Mode      string  `yaml:"mode"`
	StartX    float64 `yaml:"start_x"`
	TargetX   float64 `yaml:"target_x"`
	Speed     float64 `yaml:"speed"`
	Gravity   float64 `yaml:"gravity"`
	GroundRow int     `yaml:"ground_row"`
	// Script names a tengo pacing script under scripts/. Empty means a
	// constant pace.
	Script    string        `yaml:"script"`
	Collider  ColliderSpec  `yaml:"collider"`
	Animation AnimationSpec `yaml:"animation"`
}

func LoadPursuerSpec() (*PursuerSpec, error) {
	spec, err := LoadSpec[PursuerSpec](PursuerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// VariantSpec overrides parts of the world for one way of playing the level.
type VariantSpec struct {
	PursuerMode  string            `yaml:"pursuer_mode"`
	PursuerStart *float64          `yaml:"pursuer_start"`
	Capabilities *CapabilitiesSpec `yaml:"capabilities"`
}

type GoalSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type BackgroundSpec struct {
	Image  string     `yaml:"image"`
	Factor float64    `yaml:"factor"`
	Y      float64    `yaml:"y"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type PresentationSpec struct {
	FadeDuration   time.Duration `yaml:"fade_duration"`
	FadeTo         float64       `yaml:"fade_to"`
	DialogFade     time.Duration `yaml:"dialog_fade"`
	DialogDuration time.Duration `yaml:"dialog_duration"`
	Line           string        `yaml:"line"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

type WorldSpec struct {
	Name         string                 `yaml:"name"`
	Level        string                 `yaml:"level"`
	AmbientScale float64                `yaml:"ambient_scale"`
	TilesDir     string                 `yaml:"tiles_dir"`
	TileCount    int                    `yaml:"tile_count"`
	StarImage    string                 `yaml:"star_image"`
	Background   *YAMLColor             `yaml:"background"`
	Goal         GoalSpec               `yaml:"goal"`
	Backgrounds  []BackgroundSpec       `yaml:"backgrounds"`
	Presentation PresentationSpec       `yaml:"presentation"`
	Music        AudioSpec              `yaml:"music"`
	Variants     map[string]VariantSpec `yaml:"variants"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](WorldFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// AnimationSpec describes an entity's sequences. Frames come from a sheet, or
// from a list of files per sequence.
type AnimationSpec struct {
	Sheet       string                      `yaml:"sheet"`
	Anchor      string                      `yaml:"anchor"`
	Scale       float64                     `yaml:"scale"`
	Placeholder *YAMLColor                  `yaml:"placeholder"`
	Defs        map[string]AnimationDefSpec `yaml:"defs"`
}

type AnimationDefSpec struct {
	Row        int      `yaml:"row"`
	ColStart   int      `yaml:"col_start"`
	FrameCount int      `yaml:"frame_count"`
	FrameW     int      `yaml:"frame_w"`
	FrameH     int      `yaml:"frame_h"`
	FPS        int      `yaml:"fps"`
	Files      []string `yaml:"files"`
	// Pattern is a numbered file name such as red_run_%d.png, expanded for
	// From through To.
	Pattern string `yaml:"pattern"`
	From    int    `yaml:"from"`
	To      int    `yaml:"to"`
}

// FileNames returns Files followed by the expanded Pattern.
func (d AnimationDefSpec) FileNames() []string {
	out := append([]string(nil), d.Files...)
	if d.Pattern == "" {
		return out
	}
	for i := d.From; i <= d.To; i++ {
		out = append(out, fmt.Sprintf(d.Pattern, i))
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the parsed color, or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
