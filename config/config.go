// Package config holds the settings of the fscsynth tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/fsc-synth/memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root configuration.
type Config struct {
	Memory    MemoryConfig    `yaml:"memory"`
	Random    RandomConfig    `yaml:"random"`
	Enumerate EnumerateConfig `yaml:"enumerate"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// MemoryConfig selects the memory-update restriction applied to controller
// sketches.
type MemoryConfig struct {
	Policy    string `yaml:"policy" validate:"policy"`
	MaxMemory int    `yaml:"max_memory" validate:"min=-1"` // -1 = largest value in the sketch
}

type RandomConfig struct {
	Seed uint64 `yaml:"seed"`
}

// EnumerateConfig bounds assignment enumeration.
type EnumerateConfig struct {
	Limit   int `yaml:"limit" validate:"min=0"` // 0 = no limit
	Workers int `yaml:"workers" validate:"min=1,max=256"`
}

// ExportConfig controls controller graph export.
type ExportConfig struct {
	Route     string `yaml:"route" validate:"required"`
	Render    bool   `yaml:"render"`
	Format    string `yaml:"format" validate:"required,oneof=pdf svg png dot"`
	DotBinary string `yaml:"dot_binary" validate:"required"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Memory: MemoryConfig{
			Policy:    string(memory.PolicyNone),
			MaxMemory: memory.InferMaxMemory,
		},
		Random: RandomConfig{Seed: 33},
		Enumerate: EnumerateConfig{
			Limit:   0,
			Workers: 4,
		},
		Export: ExportConfig{
			Route:     "controller.dot",
			Format:    "pdf",
			DotBinary: "dot",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("policy", validatePolicy)
	return v
}

func validatePolicy(fl validator.FieldLevel) bool {
	_, err := memory.ParsePolicy(fl.Field().String())
	return err == nil
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies FSCSYNTH_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FSCSYNTH_POLICY"); v != "" {
		c.Memory.Policy = v
	}
	if v := os.Getenv("FSCSYNTH_MAX_MEMORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: FSCSYNTH_MAX_MEMORY=%q", ErrInvalidConfig, v)
		}
		c.Memory.MaxMemory = n
	}
	if v := os.Getenv("FSCSYNTH_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: FSCSYNTH_SEED=%q", ErrInvalidConfig, v)
		}
		c.Random.Seed = n
	}
	if v := os.Getenv("FSCSYNTH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FSCSYNTH_EXPORT_ROUTE"); v != "" {
		c.Export.Route = v
	}
	return nil
}

// Validate checks field ranges and the memory policy name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// MemoryPolicy returns the configured policy. The config must be valid.
func (c *Config) MemoryPolicy() memory.Policy {
	p, _ := memory.ParsePolicy(c.Memory.Policy)
	return p
}
