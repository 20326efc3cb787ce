package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMachine      = 1
	DefaultFrameRate    = 30.0
	DefaultScale        = 0.75
	DefaultFrames       = 300
	DefaultResourcesDir = "resources"
	DefaultDataDir      = "runs"
)

var (
	ErrFrameRate      = errors.New("config: frame rate must be positive")
	ErrStartFrame     = errors.New("config: start frame must not be negative")
	ErrScale          = errors.New("config: scale must be positive")
	ErrFrames         = errors.New("config: frame count must not be negative")
	ErrUnknownMachine = errors.New("config: unknown machine")
)

type Config struct {
	Machine      int            `yaml:"machine"`
	FrameRate    float64        `yaml:"frame_rate"`
	StartFrame   int            `yaml:"start_frame"`
	Scale        float64        `yaml:"scale"`
	Location     LocationConfig `yaml:"location"`
	ResourcesDir string         `yaml:"resources_dir"`
	DataDir      string         `yaml:"data_dir"`
	Frames       int            `yaml:"frames"`
}

// LocationConfig is where the machine origin is drawn, in surface units.
type LocationConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Machine:      DefaultMachine,
		FrameRate:    DefaultFrameRate,
		Scale:        DefaultScale,
		ResourcesDir: DefaultResourcesDir,
		DataDir:      DefaultDataDir,
		Frames:       DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges. When known is non-empty the machine number must
// be one of them.
func (c *Config) Validate(known ...int) error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w, got %g", ErrFrameRate, c.FrameRate)
	}
	if c.StartFrame < 0 {
		return fmt.Errorf("%w, got %d", ErrStartFrame, c.StartFrame)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w, got %g", ErrScale, c.Scale)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w, got %d", ErrFrames, c.Frames)
	}
	if len(known) == 0 {
		return nil
	}
	for _, n := range known {
		if n == c.Machine {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownMachine, c.Machine)
}

// DrawableState returns the per-instance state a host saves with its scene.
func (c *Config) DrawableState() DrawableState {
	return DrawableState{Machine: c.Machine, StartFrame: c.StartFrame, Scale: c.Scale}
}
