package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DrawableState is what a placed machine remembers between sessions.
type DrawableState struct {
	Machine    int     `yaml:"machine"`
	StartFrame int     `yaml:"start_frame"`
	Scale      float64 `yaml:"scale"`
}

func DefaultDrawableState() DrawableState {
	return DrawableState{Machine: DefaultMachine, Scale: DefaultScale}
}

func SaveState(path string, st DrawableState) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState reads a saved state. Keys missing from the file keep their
// defaults.
func LoadState(path string) (DrawableState, error) {
	st := DefaultDrawableState()
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return DefaultDrawableState(), err
	}
	return st, nil
}
