// Package settings holds the playground and simulator settings: viper-backed
// app configuration and the small piece of user state persisted between runs.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the resolved application configuration.
type Settings struct {
	Level    string `mapstructure:"level"`
	Tunables string `mapstructure:"tunables"`
	Script   string `mapstructure:"script"`
	Debug    bool   `mapstructure:"debug"`
	Watch    bool   `mapstructure:"watch"`

	Window WindowSettings `mapstructure:"window"`
	Sim    SimSettings    `mapstructure:"sim"`
}

type WindowSettings struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type SimSettings struct {
	Ticks   int    `mapstructure:"ticks"`
	Backend string `mapstructure:"backend"`
	Every   int    `mapstructure:"every"`
}

// Load reads configuration from defaults, an optional traversal.yaml (or the
// file at path) and TRAVERSAL_* environment variables, in increasing order of
// precedence.
func Load(path string) (Settings, error) {
	v := viper.New()

	v.SetDefault("level", "playground")
	v.SetDefault("tunables", "movement.yaml")
	v.SetDefault("script", "")
	v.SetDefault("debug", false)
	v.SetDefault("watch", true)
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "traversal")
	v.SetDefault("sim.ticks", 600)
	v.SetDefault("sim.backend", "cp")
	v.SetDefault("sim.every", 25)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("traversal")
	}

	v.SetEnvPrefix("TRAVERSAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("settings: read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("settings: window size must be positive, got %dx%d", s.Window.Width, s.Window.Height))
	}
	switch s.Sim.Backend {
	case "cp", "grid":
	default:
		errs = append(errs, fmt.Errorf("settings: unknown sim backend %q", s.Sim.Backend))
	}
	if s.Sim.Ticks < 0 {
		errs = append(errs, fmt.Errorf("settings: sim ticks must be >= 0, got %d", s.Sim.Ticks))
	}
	return errors.Join(errs...)
}
