package config

import "sort"

var Presets = map[string]*Config{
	"demo": {
		Machine: 1, FrameRate: 30, Scale: 0.75, Frames: 300,
		Location: LocationConfig{X: 400, Y: 600},
	},
	"catapult": {
		Machine: 1, FrameRate: 60, Scale: 1, Frames: 600,
		Location: LocationConfig{X: 500, Y: 650},
	},
	"belt": {
		Machine: 2, FrameRate: 30, Scale: 1, Frames: 240,
		Location: LocationConfig{X: 350, Y: 450},
	},
	"slowmo": {
		Machine: 2, FrameRate: 120, Scale: 1, Frames: 1200,
		Location: LocationConfig{X: 350, Y: 450},
	},
}

// GetPreset returns a copy of the named preset with empty directories
// filled from the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.ResourcesDir == "" {
		cfg.ResourcesDir = DefaultResourcesDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
