package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec lists an entity's components by name; each value is decoded
// by the builder with DecodeComponentSpec.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// MoverComponentSpec points at the tunables file for the controller.
type MoverComponentSpec struct {
	Tunables string  `yaml:"tunables"`
	Facing   float64 `yaml:"facing"`
}

// ClimbAnimationComponentSpec shapes the ledge-climb tween.
type ClimbAnimationComponentSpec struct {
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

type BoxRenderComponentSpec struct {
	Color      *YAMLColor `yaml:"color"`
	GrabColor  *YAMLColor `yaml:"grab_color"`
	DashColor  *YAMLColor `yaml:"dash_color"`
	ClimbColor *YAMLColor `yaml:"climb_color"`
}

type CameraComponentSpec struct {
	Follow float64 `yaml:"follow"`
}

// PhysicsBodyComponentSpec names the file whose shape sizes the collider.
type PhysicsBodyComponentSpec struct {
	Shape string `yaml:"shape"`
}

type DebugOverlayComponentSpec struct {
	Enabled bool `yaml:"enabled"`
}
