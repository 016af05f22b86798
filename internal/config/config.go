package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yyyoichi/watermark_lf/mark"
)

// EnvStrength overrides the strength read from the config file.
const EnvStrength = "WATERMARK_STRENGTH"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the settings of the lfmark tool.
type Config struct {
	// Strength is kept as text so a bad value surfaces as a *mark.ParseError.
	Strength string `yaml:"strength"`
	Workers  int    `yaml:"workers"` // 0 means one per CPU
	Format   string `yaml:"format"`  // output format; empty infers it from the file name
	Quality  int    `yaml:"jpeg_quality"`
	// CacheDir keeps downloaded source images.
	CacheDir string `yaml:"cache_dir"`

	strength float32
}

func Default() *Config {
	return &Config{
		Strength: "0.01",
		Quality:  95,
		CacheDir: filepath.Join(os.TempDir(), "lfmark_http_cache"),
		strength: mark.DefaultStrength,
	}
}

// Load reads path (when not empty) over the defaults, then applies the environment.
// Variables from envFile are loaded first when the file exists; variables already
// set in the process are not overwritten.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	if v, ok := os.LookupEnv(EnvStrength); ok {
		cfg.Strength = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings and resolves the strength.
func (c *Config) Validate() error {
	strength, err := mark.ParseStrength(c.Strength)
	if err != nil {
		return err
	}
	c.strength = strength
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.CacheDir == "" {
		return fmt.Errorf("%w: cache_dir must not be empty", ErrInvalidConfig)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: jpeg_quality must be within 1..100, got %d", ErrInvalidConfig, c.Quality)
	}
	return nil
}

// StrengthValue returns the parsed strength. It is valid after Validate succeeded.
func (c *Config) StrengthValue() float32 { return c.strength }
