package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Dataset  DatasetConfig  `json:"dataset"`
	Analysis AnalysisConfig `json:"analysis"`
	Forecast ForecastConfig `json:"forecast"`
	Charts   ChartsConfig   `json:"charts"`
	Report   ReportConfig   `json:"report"`
}

// Default returns the configuration reproducing the reference dataset run:
// WA registrations from input/ev_data.csv, charts under output/.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Load reads the configuration file at path and applies environment
// overrides. A missing file is not an error: defaults are used so the tool
// runs without any configuration present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("EVINSIGHT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "evinsight_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every unset field across all sections.
func (c *Config) SetDefaults() {
	c.Dataset.SetDefaults()
	c.Analysis.SetDefaults()
	c.Forecast.SetDefaults()
	c.Charts.SetDefaults(c.Dataset.Path)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Dataset.Validate(); err != nil {
		return err
	}
	if err := c.Analysis.Validate(); err != nil {
		return err
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	return c.Charts.Validate()
}
