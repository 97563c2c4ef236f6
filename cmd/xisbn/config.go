package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML file given with --config. Flags win over
// the file, the file wins over the XISBN_* environment.
type fileConfig struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	UserAgent   string `yaml:"user_agent"`
	Lenient     bool   `yaml:"lenient"`
	AffiliateID string `yaml:"ai"`
	Token       string `yaml:"token"`
	Hash        string `yaml:"hash"`
}

func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if cfg.Timeout != "" {
			if _, err := time.ParseDuration(cfg.Timeout); err != nil {
				return cfg, fmt.Errorf("parse config %s: timeout: %w", path, err)
			}
		}
	}

	if err := cfg.fillFromEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// fillFromEnv sets only the values the file left empty.
func (cfg *fileConfig) fillFromEnv() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("XISBN_BASE_URL")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("XISBN_USER_AGENT")
	}
	if !cfg.Lenient {
		cfg.Lenient = os.Getenv("XISBN_LENIENT") == "true"
	}
	if cfg.Timeout == "" {
		if v := os.Getenv("XISBN_TIMEOUT"); v != "" {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("XISBN_TIMEOUT: %w", err)
			}
			cfg.Timeout = v
		}
	}
	return nil
}
