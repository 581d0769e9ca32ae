/*
Package config loads server configuration from YAML with environment
variable expansion.

PURPOSE:
  One place for everything tunable at deploy time: the listen address,
  database path, CORS origins, and whether metrics are exposed. A
  missing config file is not an error; defaults cover local development.

USAGE:
  cfg, err := config.Load("configs/config.yaml")

  ${ENV_VAR} placeholders in the YAML are expanded from the process
  environment, so secrets stay out of the file.
*/
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int      `yaml:"port"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
	} `yaml:"monitoring"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	Seed struct {
		// Populate default staff, templates, and rates on first run.
		Enabled bool `yaml:"enabled"`
	} `yaml:"seed"`
}

// Load reads the config file at path, expanding ${ENV_VAR} placeholders.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	var cfg Config
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, cfg.ensureDataDir()
	}
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, cfg.ensureDataDir()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"*"}
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/roster.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) ensureDataDir() error {
	return os.MkdirAll(filepath.Dir(c.Database.Path), 0o755)
}
