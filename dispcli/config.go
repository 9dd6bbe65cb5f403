package dispcli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultConfigPath = ".disposition.yml"
	envPrefix         = "DISPOSITION_"
)

// Config is the project configuration. Zero values leave the built in
// defaults alone.
type Config struct {
	Viewport      string  `koanf:"viewport"`
	LevelOfDetail string  `koanf:"lod"`
	FontSize      float64 `koanf:"font_size"`
	Pad           int64   `koanf:"pad"`
	OmitStyle     bool    `koanf:"omit_style"`
	Watch         bool    `koanf:"watch"`
}

// LoadConfig reads the YAML config at path when it exists and overlays
// DISPOSITION_* environment variables, e.g. DISPOSITION_FONT_SIZE sets
// font_size.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to access config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
