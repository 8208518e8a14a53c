package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings holds every tunable of a digging session.
type Settings struct {
	World   WorldSettings   `yaml:"world" toml:"world"`
	Pickaxe PickaxeSettings `yaml:"pickaxe" toml:"pickaxe"`

	// Frames slower than this are logged with their top profiling entries.
	SlowFrameMs int `yaml:"slow_frame_ms" toml:"slow_frame_ms"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid settings")

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		World:       DefaultWorld(),
		Pickaxe:     DefaultPickaxe(),
		SlowFrameMs: 20,
	}
}

// SlowFrame returns the slow-frame threshold as a duration.
func (s Settings) SlowFrame() time.Duration {
	return time.Duration(s.SlowFrameMs) * time.Millisecond
}

// Validate checks the cross-field constraints the session relies on.
func (s Settings) Validate() error {
	if err := s.World.validate(); err != nil {
		return err
	}
	if err := s.Pickaxe.validate(s.World.ChunkSize); err != nil {
		return err
	}
	if s.SlowFrameMs < 0 {
		return fmt.Errorf("%w: slow_frame_ms must not be negative", ErrInvalid)
	}
	return nil
}

// Load reads settings from a YAML (.yaml, .yml) or TOML (.toml) file.
// Fields left out or set to zero keep their defaults, except
// world.load_square_radius, where an explicit 0 selects a single-chunk window.
func Load(path string) (Settings, error) {
	s := Settings{}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}

	// A zero load radius is meaningful, so its presence is tracked apart
	// from the zero-means-default rule of the other fields.
	var radiusSet bool
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		var present struct {
			World struct {
				LoadSquareRadius *int `yaml:"load_square_radius"`
			} `yaml:"world"`
		}
		if err := yaml.Unmarshal(raw, &present); err != nil {
			return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		radiusSet = present.World.LoadSquareRadius != nil
	case ".toml":
		tree, err := toml.LoadBytes(raw)
		if err != nil {
			return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if err := tree.Unmarshal(&s); err != nil {
			return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		radiusSet = tree.Has("world.load_square_radius")
	default:
		return s, fmt.Errorf("config: unsupported settings format %q", ext)
	}

	s.fillDefaults(radiusSet)
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

func (s *Settings) fillDefaults(radiusSet bool) {
	d := Default()
	s.World.fillDefaults(d.World, radiusSet)
	s.Pickaxe.fillDefaults(d.Pickaxe)
	if s.SlowFrameMs == 0 {
		s.SlowFrameMs = d.SlowFrameMs
	}
}
