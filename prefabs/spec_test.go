package prefabs

import (
	"image/color"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.TurnDuration != 300*time.Millisecond || player.Sprint.Duration != 3*time.Second {
		t.Fatalf("durations = %v / %v", player.TurnDuration, player.Sprint.Duration)
	}
	if !player.Capabilities.Climb || player.Collider.Width <= 0 {
		t.Fatalf("player spec = %+v", player)
	}
	if got := len(player.Animation.Defs["run"].FileNames()); got != 23 {
		t.Fatalf("run frames = %d, want 23", got)
	}
	for name, def := range player.Animation.Defs {
		want := 12
		if name == "run" {
			want = 24
		}
		if def.FPS != want {
			t.Fatalf("%s fps = %d, want %d", name, def.FPS, want)
		}
	}

	pursuer, err := LoadPursuerSpec()
	if err != nil {
		t.Fatalf("pursuer: %v", err)
	}
	if pursuer.Mode != "advance" || pursuer.TargetX <= pursuer.StartX {
		t.Fatalf("pursuer spec = %+v", pursuer)
	}

	world, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if world.Goal.Max <= world.Goal.Min || len(world.Backgrounds) == 0 {
		t.Fatalf("world spec = %+v", world)
	}
	chase, ok := world.Variants["chase"]
	if !ok || chase.PursuerMode != "mirror" || chase.PursuerStart == nil {
		t.Fatalf("chase variant = %+v", chase)
	}
	if world.Presentation.DialogDuration != 4*time.Second {
		t.Fatalf("dialog duration = %v", world.Presentation.DialogDuration)
	}

	tiles, err := LoadTilesSpec()
	if err != nil {
		t.Fatalf("tiles: %v", err)
	}
	if tiles.Hazard != 14 || tiles.Vines.Min != 120 {
		t.Fatalf("tiles spec = %+v", tiles)
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[TilesSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected an error for a missing spec")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff8000"`, want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: `"10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#gg0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %v, want %v", got.Color, c.want)
			}
		})
	}

	var unset *YAMLColor
	if unset.ColorOr(color.White) != color.White {
		t.Fatalf("nil color should fall back")
	}
}

func TestAnimationDefFileNames(t *testing.T) {
	d := AnimationDefSpec{Files: []string{"a.png"}, Pattern: "run_%d.png", From: 2, To: 4}
	got := d.FileNames()
	want := []string{"a.png", "run_2.png", "run_3.png", "run_4.png"}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
}

func TestScriptPaths(t *testing.T) {
	cases := map[string]string{
		"wolf_pace":                       "scripts/wolf_pace.tengo",
		"wolf_pace.tengo":                 "scripts/wolf_pace.tengo",
		"scripts/wolf_pace.tengo":         "scripts/wolf_pace.tengo",
		"prefabs/scripts/wolf_pace.tengo": "scripts/wolf_pace.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := LoadScript("wolf_pace"); err != nil {
		t.Fatalf("embedded script: %v", err)
	}
}

func TestClassifyChange(t *testing.T) {
	cases := map[string]ChangeKind{
		"prefabs/player.yaml":             ChangeSpec,
		"prefabs/scripts/wolf_pace.tengo": ChangeScript,
		"levels/level1.json":              ChangeLevel,
		"levels/level2.TMX":               ChangeLevel,
		"notes.txt":                       0,
	}
	for in, want := range cases {
		if got := classify(in); got != want {
			t.Fatalf("classify(%q) = %v, want %v", in, got, want)
		}
	}
}
