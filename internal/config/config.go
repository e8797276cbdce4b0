// Package config loads finlit settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset. A missing default file is
// not an error.
const DefaultPath = "./finlit.yaml"

// Config is the root configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Engine EngineConfig `yaml:"engine"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig names the input files. Empty paths skip that dataset.
type DataConfig struct {
	SurveyPath   string `yaml:"survey"   env:"FINLIT_SURVEY"`
	ProfilePath  string `yaml:"profile"  env:"FINLIT_PROFILE"`
	RegionalPath string `yaml:"regional" env:"FINLIT_REGIONAL"`
	BoundaryPath string `yaml:"boundary" env:"FINLIT_BOUNDARY"`
}

// EngineConfig holds metric computation settings.
type EngineConfig struct {
	ReferenceYear int     `yaml:"reference_year" env:"FINLIT_REFERENCE_YEAR" env-default:"2025"`
	Scale         float64 `yaml:"scale"          env:"FINLIT_SCALE"          env-default:"4"`
}

// OutputConfig holds the default rendering.
type OutputConfig struct {
	Format string `yaml:"format" env:"FINLIT_FORMAT" env-default:"json"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file path comes from CONFIG_PATH, falling back to DefaultPath.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	return LoadFile(path, explicit)
}

// LoadFile reads path when it exists. When it does not, required decides
// between an error and loading from ENV + defaults only.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
