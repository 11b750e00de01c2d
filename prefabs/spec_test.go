package prefabs

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/milk9111/traversal/movement"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedMovementMatchesDefaults(t *testing.T) {
	spec, err := LoadMovementSpec("")
	if err != nil {
		t.Fatalf("LoadMovementSpec: %v", err)
	}
	if spec.Tunables != movement.DefaultConfig() {
		t.Fatalf("embedded tunables drifted from DefaultConfig:\n%+v\n%+v", spec.Tunables, movement.DefaultConfig())
	}
	if spec.Shape != movement.DefaultShape() {
		t.Fatalf("embedded shape drifted from DefaultShape: %+v", spec.Shape)
	}
}

func TestDecodeMovementSpecPartial(t *testing.T) {
	spec, err := DecodeMovementSpec([]byte(`
name: floaty
tunables:
  jump_power: 20
  ledge:
    over_right: {x: 1, y: 1}
`))
	if err != nil {
		t.Fatalf("DecodeMovementSpec: %v", err)
	}

	want := movement.DefaultConfig()
	want.JumpPower = 20
	want.Ledge.OverRight.X, want.Ledge.OverRight.Y = 1, 1
	if spec.Tunables != want {
		t.Fatalf("tunables = %+v, want %+v", spec.Tunables, want)
	}
	if spec.Name != "floaty" {
		t.Fatalf("name = %q", spec.Name)
	}
}

func TestDecodeMovementSpecUnknownKeys(t *testing.T) {
	cases := []struct {
		name       string
		yaml       string
		path       string
		suggestion string
	}{
		{"typo", "tunables:\n  jump_powr: 3\n", "tunables.jump_powr", "jump_power"},
		{"nested", "tunables:\n  ledge:\n    begin_rigth: {x: 0, y: 0}\n", "tunables.ledge.begin_rigth", "begin_right"},
		{"vector", "shape:\n  size: {x: 1, z: 2}\n", "shape.size.z", "x"},
		{"no_suggestion", "colour_scheme: dark\n", "colour_scheme", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeMovementSpec([]byte(c.yaml))
			var uk *UnknownKeyError
			if !errors.As(err, &uk) {
				t.Fatalf("err = %v, want UnknownKeyError", err)
			}
			if uk.Path != c.path {
				t.Fatalf("path = %q, want %q", uk.Path, c.path)
			}
			if uk.Suggestion != c.suggestion {
				t.Fatalf("suggestion = %q, want %q", uk.Suggestion, c.suggestion)
			}
			if c.suggestion != "" && !strings.Contains(err.Error(), "did you mean") {
				t.Fatalf("message lacks suggestion: %v", err)
			}
		})
	}
}

func TestDecodeMovementSpecReportsAllUnknownKeys(t *testing.T) {
	_, err := DecodeMovementSpec([]byte("tunables:\n  jump_powr: 3\n  dash_sped: 4\n"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	for _, key := range []string{"jump_powr", "dash_sped"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error %q does not mention %s", err, key)
		}
	}
}

func TestDecodeMovementSpecInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"negative_duration", "tunables:\n  coyote_time: -1\n", "coyote_time"},
		{"zero_dash", "tunables:\n  dash_duration: 0\n", "dash_duration"},
		{"dead_zone", "tunables:\n  vertical_dead_zone: 1.5\n", "vertical_dead_zone"},
		{"shape", "shape:\n  size: {x: 0, y: 1}\n", "size"},
		{"syntax", "tunables: [\n", "unmarshal"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeMovementSpec([]byte(c.yaml))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want mention of %q", err, c.want)
			}
		})
	}
}

func TestLoadMovementSpecMissing(t *testing.T) {
	_, err := LoadMovementSpec("does_not_exist.yaml")
	if err == nil || !strings.HasPrefix(err.Error(), "prefabs: load does_not_exist.yaml") {
		t.Fatalf("err = %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#ff0080"`, color.NRGBA{R: 255, G: 0, B: 128, A: 255}, false},
		{`"#ff008040"`, color.NRGBA{R: 255, G: 0, B: 128, A: 64}, false},
		{`orchid`, color.RGBA{R: 0xda, G: 0x70, B: 0xd6, A: 0xff}, false},
		{`"#fff"`, nil, true},
		{`[1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %s", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", c.in, err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %#v, want %#v", got.Color, c.want)
			}
		})
	}
}

func TestPlayerBuildSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatalf("LoadEntityBuildSpec: %v", err)
	}
	if spec.Name != "player" {
		t.Fatalf("name = %q", spec.Name)
	}

	mover, err := DecodeComponentSpec[MoverComponentSpec](spec.Components["mover"])
	if err != nil {
		t.Fatalf("decode mover: %v", err)
	}
	if mover.Tunables != MovementFile || mover.Facing != 1 {
		t.Fatalf("mover = %+v", mover)
	}

	anim, err := DecodeComponentSpec[ClimbAnimationComponentSpec](spec.Components["climb_animation"])
	if err != nil {
		t.Fatalf("decode climb_animation: %v", err)
	}
	if anim.Duration <= 0 || anim.Ease == "" {
		t.Fatalf("climb_animation = %+v", anim)
	}

	box, err := DecodeComponentSpec[BoxRenderComponentSpec](spec.Components["box_render"])
	if err != nil {
		t.Fatalf("decode box_render: %v", err)
	}
	if box.Color == nil || box.GrabColor == nil {
		t.Fatalf("box_render colours missing: %+v", box)
	}

	if _, err := DecodeComponentSpec[CameraComponentSpec](nil); err != nil {
		t.Fatalf("nil component spec should decode to zero: %v", err)
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{cleanPrefabPath, "prefabs/movement.yaml", "movement.yaml"},
		{cleanPrefabPath, "movement.yaml", "movement.yaml"},
		{cleanScriptPath, "prefabs/scripts/climb.tengo", "scripts/climb.tengo"},
		{cleanScriptPath, "scripts/climb.tengo", "scripts/climb.tengo"},
		{cleanScriptPath, "climb", "scripts/climb.tengo"},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEmbeddedScripts(t *testing.T) {
	names := ScriptNames()
	want := map[string]bool{"climb": true, "dash": true, "walk_jump": true}
	found := 0
	for _, n := range names {
		if want[n] {
			found++
		}
	}
	if found != len(want) {
		t.Fatalf("ScriptNames = %v", names)
	}
	if _, err := LoadScript("walk_jump"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}
