package main

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the naca configuration file (~/.config/naca456/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	Root       string         `yaml:"root"`
	Executable string         `yaml:"executable"`
	Timeout    *time.Duration `yaml:"timeout"`
	Jobs       *int64         `yaml:"jobs"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string   `yaml:"server_address"`
	RateLimit     *float64 `yaml:"rate_limit"`
}

// flagChecker reports whether a flag was given explicitly.
type flagChecker interface {
	IsSet(name string) bool
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "naca456", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't
// exist or cannot be parsed.
func LoadConfig() Config {
	cfg, err := loadConfigFile(configPath())
	if err != nil {
		return Config{}
	}
	return cfg
}

func loadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyLoggingConfig(c flagChecker, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyEngineConfig applies config file defaults to the engine flags when
// the corresponding CLI flag was not explicitly set.
func applyEngineConfig(c flagChecker, cfg Config) {
	if cfg.Root != "" && !c.IsSet("root") {
		rootDir = cfg.Root
	}
	if cfg.Executable != "" && !c.IsSet("executable") {
		executable = cfg.Executable
	}
	if cfg.Timeout != nil && !c.IsSet("timeout") {
		timeout = *cfg.Timeout
	}
}

func applyBatchConfig(c flagChecker, cfg Config, jobs *int64) {
	if cfg.Jobs != nil && !c.IsSet("jobs") {
		*jobs = *cfg.Jobs
	}
}

func applyServeConfig(c flagChecker, cfg Config, addr *string, rateLimit *float64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.RateLimit != nil && !c.IsSet("rate-limit") {
		*rateLimit = *cfg.RateLimit
	}
}
