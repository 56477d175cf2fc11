// Package config loads the optional YAML settings file and applies
// ROADMAP_* environment overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/roadmap/internal/llm"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	LLM LLMConfig `yaml:"llm"`
	Log LogConfig `yaml:"log"`
	DB  DBConfig  `yaml:"db"`
}

// LLMConfig configures the generation client.
type LLMConfig struct {
	Endpoint         string `yaml:"endpoint"`
	Model            string `yaml:"model"`
	MaxAttempts      int    `yaml:"max_attempts"`
	InitialBackoffMs int    `yaml:"initial_backoff_ms"`
	TimeoutMs        int    `yaml:"timeout_ms"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DBConfig configures the sqlite database.
type DBConfig struct {
	Path string `yaml:"path"`
}

// DataDir returns ~/.roadmap, where the database, log and config live.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".roadmap"), nil
}

// Default returns the built-in configuration rooted at dataDir.
func Default(dataDir string) *Config {
	llmCfg := llm.DefaultConfig()
	return &Config{
		LLM: LLMConfig{
			Endpoint:         llmCfg.Endpoint,
			Model:            llmCfg.Model,
			MaxAttempts:      llmCfg.MaxAttempts,
			InitialBackoffMs: int(llmCfg.InitialBackoff / time.Millisecond),
			TimeoutMs:        int(llmCfg.AttemptTimeout / time.Millisecond),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "roadmap.log"),
		},
		DB: DBConfig{
			Path: filepath.Join(dataDir, "roadmap.db"),
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults(dataDir)
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ROADMAP_LLM_ENDPOINT"); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv("ROADMAP_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	applyPositiveIntEnv(&c.LLM.MaxAttempts, "ROADMAP_LLM_MAX_ATTEMPTS")
	applyPositiveIntEnv(&c.LLM.InitialBackoffMs, "ROADMAP_LLM_INITIAL_BACKOFF_MS")
	applyPositiveIntEnv(&c.LLM.TimeoutMs, "ROADMAP_LLM_TIMEOUT_MS")
	if v := os.Getenv("ROADMAP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ROADMAP_DB"); v != "" {
		c.DB.Path = v
	}
}

func applyPositiveIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}

// fillDefaults replaces values a file left empty or out of range.
func (c *Config) fillDefaults(dataDir string) {
	def := Default(dataDir)
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = def.LLM.Endpoint
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.LLM.MaxAttempts < 1 {
		c.LLM.MaxAttempts = def.LLM.MaxAttempts
	}
	if c.LLM.InitialBackoffMs < 0 {
		c.LLM.InitialBackoffMs = def.LLM.InitialBackoffMs
	}
	if c.LLM.TimeoutMs < 0 {
		c.LLM.TimeoutMs = def.LLM.TimeoutMs
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
	if c.DB.Path == "" {
		c.DB.Path = def.DB.Path
	}
}

// ClientConfig converts the LLM section into the client's settings.
func (c *Config) ClientConfig() llm.Config {
	return llm.Config{
		Endpoint:       c.LLM.Endpoint,
		Model:          c.LLM.Model,
		MaxAttempts:    c.LLM.MaxAttempts,
		InitialBackoff: time.Duration(c.LLM.InitialBackoffMs) * time.Millisecond,
		AttemptTimeout: time.Duration(c.LLM.TimeoutMs) * time.Millisecond,
	}
}
