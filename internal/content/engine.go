package content

import (
	"errors"
	"os"
	"path/filepath"

	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"gopkg.in/yaml.v3"
)

// EngineFile is the optional pack-level settings file
const EngineFile = "engine.yaml"

// EngineSettings are pack-level defaults shipped alongside the content
type EngineSettings struct {
	// Overrides replace registered config defaults, keyed by config key
	Overrides map[string]any `yaml:"overrides"`
}

// readEngineSettings loads dir/engine.yaml. A missing file yields empty settings.
func readEngineSettings(dir string) (*EngineSettings, error) {
	path := filepath.Join(dir, EngineFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &EngineSettings{}, nil
		}
		return nil, battleerr.Wrapf(err, "failed to read %s", path)
	}

	var settings EngineSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "failed to parse "+path)
	}
	for key, value := range settings.Overrides {
		settings.Overrides[key] = normalizeNumber(value)
	}
	return &settings, nil
}

// normalizeNumber widens YAML integers so overrides match JSON-decoded defaults
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return v
}
