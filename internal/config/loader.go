package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/25smoking/aggsynth/internal/core"
	"github.com/25smoking/aggsynth/internal/embedded"
	"github.com/25smoking/aggsynth/internal/graph"
	"gopkg.in/yaml.v3"
)

// DefaultName is the config file looked up under ./config and in the
// embedded defaults.
const DefaultName = "aggsynth.yaml"

// FormatSynthetic builds the graph from GraphConfig.Synthetic instead of a file.
const FormatSynthetic = "synthetic"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ========== Run Config ==========

type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Graph     GraphConfig     `yaml:"graph"`
	Log       LogConfig       `yaml:"log"`
}

type GeneratorConfig struct {
	NoAttributes int     `yaml:"no_attributes"`
	Eps          float64 `yaml:"eps"`
	Normalizer   string  `yaml:"normalizer"`
	MaxAttempts  int     `yaml:"max_attempts"`
	Seed         int64   `yaml:"seed"` // 0 picks a time-based seed
}

type DatasetConfig struct {
	Count    int    `yaml:"count"`
	Output   string `yaml:"output"`
	Force    bool   `yaml:"force"`
	Manifest bool   `yaml:"manifest"`
}

type GraphConfig struct {
	Format    string                 `yaml:"format"` // yaml, sqlite or synthetic
	Path      string                 `yaml:"path"`
	Synthetic graph.SyntheticOptions `yaml:"synthetic"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Core converts the generator section into a core.GeneratorConfig.
func (c GeneratorConfig) Core() (core.GeneratorConfig, error) {
	normalize, err := core.LookupNormalizer(c.Normalizer)
	if err != nil {
		return core.GeneratorConfig{}, err
	}
	return core.GeneratorConfig{
		NoAttributes: c.NoAttributes,
		Eps:          c.Eps,
		Normalize:    normalize,
		MaxAttempts:  c.MaxAttempts,
	}, nil
}

// Validate checks value ranges that the YAML decoder cannot express. Generator
// rules are the ones core.NewGenerator enforces.
func (c *Config) Validate() error {
	gc, err := c.Generator.Core()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := gc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Dataset.Count < 0 {
		return fmt.Errorf("%w: dataset.count must be non-negative", ErrInvalidConfig)
	}
	if c.Dataset.Output == "" {
		return fmt.Errorf("%w: dataset.output is required", ErrInvalidConfig)
	}
	switch c.Graph.Format {
	case FormatSynthetic:
	case graph.FormatYAML, graph.FormatSQLite, "":
		if c.Graph.Path == "" {
			return fmt.Errorf("%w: graph.path is required for format %q", ErrInvalidConfig, c.Graph.Format)
		}
	default:
		return fmt.Errorf("%w: unknown graph.format %q", ErrInvalidConfig, c.Graph.Format)
	}
	return nil
}

// ========== Loader Functions ==========

func loadConfigData(configPath, defaultName string) ([]byte, error) {
	// 1. File system
	if configPath != "" {
		return os.ReadFile(configPath)
	}
	if path := GetConfigPath(defaultName); fileExists(path) {
		return os.ReadFile(path)
	}

	// 2. Embedded default. embed paths always use forward slashes.
	return embedded.Content.ReadFile("config/" + defaultName)
}

// Load reads the run config from configPath, or from ./config/aggsynth.yaml,
// or from the embedded default, in that order. Values missing from a file
// keep the embedded defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := loadConfigData(configPath, DefaultName)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	data, err := embedded.Content.ReadFile("config/" + DefaultName)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}
	return &cfg, nil
}

// GetConfigPath returns the first existing candidate for filename, or the
// ./config path when none exists.
func GetConfigPath(filename string) string {
	candidates := []string{
		filepath.Join("config", filename),
		filepath.Join("..", "config", filename),
	}

	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return candidates[0]
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
