package config

import (
	"fmt"
	"os"

	"github.com/playmatatu/eightball/internal/game"
	"gopkg.in/yaml.v3"
)

// LoadPhysics reads table tunables from a YAML file over game.DefaultParams.
// Keys missing from the file keep their defaults. Search order:
// path -> ./configs/physics.yaml -> defaults.
func LoadPhysics(path string) (game.Params, error) {
	params := game.DefaultParams()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return params, fmt.Errorf("failed to read physics config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return params, fmt.Errorf("failed to parse physics config %s: %w", path, err)
		}
		return params, params.Validate()
	}

	if data, err := os.ReadFile("configs/physics.yaml"); err == nil {
		overlaid := params
		if err := yaml.Unmarshal(data, &overlaid); err == nil && overlaid.Validate() == nil {
			return overlaid, nil
		}
	}

	return params, nil
}
