package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/metrics"
	"github.com/kilianp07/flightcast/core/prediction"
	"github.com/kilianp07/flightcast/infra/dataset"
)

// DefaultPath is read when no config file is given. It may be absent.
const DefaultPath = "flightcast.yaml"

// EnvPrefix marks environment overrides, e.g. FLIGHTCAST_MODEL__INTERVAL_WIDTH=0.9.
const EnvPrefix = "FLIGHTCAST_"

type Config struct {
	Data    dataset.Config    `json:"data"`
	Model   prediction.Config `json:"model"`
	Logging LoggingConfig     `json:"logging"`
	Metrics metrics.Config    `json:"metrics"`
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Data.SetDefaults()
	c.Model.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Default returns a configuration with only defaults and env overrides applied.
func Default() (*Config, error) {
	return load("", false)
}

// Load reads path, then environment overrides. An empty path falls back to
// DefaultPath, which is skipped when missing. Any error is a DataError.
func Load(path string) (*Config, error) {
	if path == "" {
		return load(DefaultPath, false)
	}
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := loadFile(k, path, required); err != nil {
			return nil, failure.Data(err, "config %s", path)
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, failure.Data(err, "config env")
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, failure.Data(err, "config decode")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, failure.Data(err, "invalid config")
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return err
	}
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	return k.Load(file.Provider(path), parser)
}

// envKey maps FLIGHTCAST_MODEL__INTERVAL_WIDTH to model.interval_width.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
