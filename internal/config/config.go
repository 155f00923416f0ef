package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/l3aro/pantry/internal/log"
	"github.com/l3aro/pantry/pkg/apple"
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/cache"
	"github.com/l3aro/pantry/pkg/durian"
	"github.com/l3aro/pantry/pkg/egg"
	"github.com/l3aro/pantry/pkg/graph"
	"github.com/l3aro/pantry/pkg/pantry"
)

// DirName is the name of the per-project and per-user config directory.
const DirName = ".pantry"

// FileName is the config file inside DirName.
const FileName = "config.yaml"

// CacheConfig controls the persisted result cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" env:"PANTRY_CACHE_ENABLED"`
	Path       string `yaml:"path" env:"PANTRY_CACHE_PATH"`
	MaxEntries int    `yaml:"max_entries" env:"PANTRY_CACHE_MAX_ENTRIES"`
}

// Config holds all configuration for pantry
type Config struct {
	// Input is the argument passed to apple when none is given on the command line
	Input int32 `yaml:"input" env:"PANTRY_INPUT"`

	// Overflow selects the arithmetic policy: "wrap" or "checked"
	Overflow arith.Policy `yaml:"overflow" env:"PANTRY_OVERFLOW"`

	// Leaf formulas
	Egg    pantry.Linear `yaml:"egg"`
	Durian pantry.Linear `yaml:"durian"`

	Cache CacheConfig `yaml:"cache"`

	// Logging
	Verbose  bool   `yaml:"verbose" env:"PANTRY_VERBOSE"`
	LogLevel string `yaml:"log_level" env:"PANTRY_LOG_LEVEL"`
	LogJSON  bool   `yaml:"log_json" env:"PANTRY_LOG_JSON"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:    apple.DefaultInput,
		Overflow: arith.PolicyWrap,
		Egg:      egg.Default,
		Durian:   durian.Default,
		Cache: CacheConfig{
			Enabled:    true,
			Path:       filepath.Join(DirName, "cache.msgpack"),
			MaxEntries: cache.DefaultMaxEntries,
		},
		Verbose:  false,
		LogLevel: "info",
		LogJSON:  false,
	}
}

// GlobalConfigFilePath returns the global config file path (~/.pantry/config.yaml)
func GlobalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DirName, FileName)
	}
	return filepath.Join(home, DirName, FileName)
}

// ProjectConfigFilePath returns the project-level config file path (./.pantry/config.yaml)
func ProjectConfigFilePath() string {
	return filepath.Join(DirName, FileName)
}

// Source describes where the effective configuration came from.
type Source struct {
	Path  string // empty when only defaults and env were used
	Scope string // "project", "global", "file" or "defaults"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.pantry/config.yaml)
// 3. Global config (~/.pantry/config.yaml)
// 4. Defaults
func Load() (*Config, Source, error) {
	cfg := DefaultConfig()
	src := Source{Scope: "defaults"}

	globalPath := GlobalConfigFilePath()
	if ok, err := mergeFile(cfg, globalPath); err != nil {
		return nil, src, err
	} else if ok {
		src = Source{Path: globalPath, Scope: "global"}
	}

	projectPath := ProjectConfigFilePath()
	if ok, err := mergeFile(cfg, projectPath); err != nil {
		return nil, src, err
	} else if ok {
		src = Source{Path: projectPath, Scope: "project"}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, src, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, src, err
	}

	return cfg, src, nil
}

// LoadFromFile reads configuration from a specific YAML file path
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFile unmarshals path over cfg. A missing file is not an error.
func mergeFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return true, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PANTRY_INPUT"); v != "" {
		i, err := parseInt32("PANTRY_INPUT", v)
		if err != nil {
			return err
		}
		cfg.Input = i
	}
	if v := os.Getenv("PANTRY_OVERFLOW"); v != "" {
		cfg.Overflow = arith.Policy(v)
	}

	ints := []struct {
		name string
		dst  *int32
	}{
		{"PANTRY_EGG_SCALE", &cfg.Egg.Scale},
		{"PANTRY_EGG_OFFSET", &cfg.Egg.Offset},
		{"PANTRY_DURIAN_SCALE", &cfg.Durian.Scale},
		{"PANTRY_DURIAN_OFFSET", &cfg.Durian.Offset},
	}
	for _, e := range ints {
		if v := os.Getenv(e.name); v != "" {
			i, err := parseInt32(e.name, v)
			if err != nil {
				return err
			}
			*e.dst = i
		}
	}

	if v := os.Getenv("PANTRY_CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("PANTRY_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("PANTRY_CACHE_MAX_ENTRIES"); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PANTRY_CACHE_MAX_ENTRIES %q: %w", v, err)
		}
		cfg.Cache.MaxEntries = i
	}
	if v := os.Getenv("PANTRY_VERBOSE"); v != "" {
		cfg.Verbose = parseBool(v)
	}
	if v := os.Getenv("PANTRY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PANTRY_LOG_JSON"); v != "" {
		cfg.LogJSON = parseBool(v)
	}
	return nil
}

// Validate checks that the configuration has valid required fields and
// normalizes the overflow policy name.
func (c *Config) Validate() error {
	policy, err := arith.ParsePolicy(string(c.Overflow))
	if err != nil {
		return err
	}
	c.Overflow = policy

	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive")
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when the cache is enabled")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Recipe returns the graph recipe described by the config.
func (c *Config) Recipe() graph.Recipe {
	return graph.Recipe{
		Egg:    c.Egg,
		Durian: c.Durian,
		Policy: c.Overflow,
	}
}

// parseInt32 parses an env value as a base-10 int32
func parseInt32(name, s string) (int32, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return int32(i), nil
}

// parseBool accepts the same truthy spellings as the rest of the CLI
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
