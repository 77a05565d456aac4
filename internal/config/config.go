package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
)

type Server struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

type Engine struct {
	MaxLength int `yaml:"max_length"`
	MaxDepth  int `yaml:"max_depth"`
}

type Config struct {
	DataDir       string `yaml:"data_dir"`
	DBPath        string `yaml:"db_path"`
	HistoryLimit  int    `yaml:"history_limit"`
	RemoteHistory string `yaml:"remote_history"`
	Sound         bool   `yaml:"sound"`
	Server        Server `yaml:"server"`
	Engine        Engine `yaml:"engine"`
}

func Default() Config {
	return Config{
		DataDir:      "data",
		DBPath:       filepath.Join("data", "procalc.db"),
		HistoryLimit: 20,
		Sound:        true,
		Server: Server{
			Addr:         ":3000",
			MaxBodyBytes: 1 << 20,
		},
		Engine: Engine{
			MaxLength: calc.DefaultLimits.MaxLength,
			MaxDepth:  calc.DefaultLimits.MaxDepth,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.DBPath == "" && c.RemoteHistory == "" {
		return errors.New("one of db_path or remote_history is required")
	}
	if c.Engine.MaxLength < 0 || c.Engine.MaxDepth < 0 {
		return errors.New("engine limits must not be negative")
	}
	return nil
}

// Limits converts the engine section for calc.New.
func (c Config) Limits() calc.Limits {
	return calc.Limits{MaxLength: c.Engine.MaxLength, MaxDepth: c.Engine.MaxDepth}
}

// EnsureDataDir creates the data directory if it does not exist.
func (c Config) EnsureDataDir() error {
	if c.DataDir == "" || c.DataDir == "." {
		return nil
	}
	return os.MkdirAll(c.DataDir, 0755)
}
