package prefabs

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/traversal/movement"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// MovementFile is the default tunables file.
const MovementFile = "movement.yaml"

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

// MovementSpec is the character collider plus movement tunables.
type MovementSpec struct {
	Name     string          `yaml:"name"`
	Shape    movement.Shape  `yaml:"shape"`
	Tunables movement.Config `yaml:"tunables"`
}

// DefaultMovementSpec is what a tunables file overrides. Keys it leaves out keep
// these values.
func DefaultMovementSpec() MovementSpec {
	return MovementSpec{
		Name:     "default",
		Shape:    movement.DefaultShape(),
		Tunables: movement.DefaultConfig(),
	}
}

// LoadMovementSpec loads, checks and validates a tunables file.
func LoadMovementSpec(filename string) (*MovementSpec, error) {
	if filename == "" {
		filename = MovementFile
	}
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := DecodeMovementSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// DecodeMovementSpec rejects unknown keys, then validates the result.
func DecodeMovementSpec(data []byte) (*MovementSpec, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	spec := DefaultMovementSpec()
	if err := checkKeys(&root, &spec); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if err := spec.Tunables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tunables: %w", err)
	}
	if spec.Shape.Size.X <= 0 || spec.Shape.Size.Y <= 0 {
		return nil, fmt.Errorf("invalid shape: size must be positive, got %v", spec.Shape.Size)
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
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
