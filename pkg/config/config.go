// Package config loads runtime configuration from a YAML file and the
// environment, with ENV taking priority over the file and tagged defaults
// backing both.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full runtime configuration.
type Config struct {
	Data struct {
		WordsPath string `yaml:"words_path" env:"CIDIAN_WORDS_PATH" env-default:"data/cedict.json"`
		CharsPath string `yaml:"chars_path" env:"CIDIAN_CHARS_PATH" env-default:"data/characters.json"`
	} `yaml:"data"`

	DB struct {
		Path string `yaml:"path" env:"CIDIAN_DB_PATH" env-default:"cidian.db"`
	} `yaml:"db"`

	Replica struct {
		Path string `yaml:"path" env:"CIDIAN_REPLICA_PATH" env-default:"cidian-replica.json"`
	} `yaml:"replica"`

	Lookup struct {
		CacheSize int `yaml:"cache_size" env:"CIDIAN_LOOKUP_CACHE" env-default:"1024"`
	} `yaml:"lookup"`

	Ingest struct {
		Workers int `yaml:"workers" env:"CIDIAN_INGEST_WORKERS" env-default:"4"`
	} `yaml:"ingest"`

	Log struct {
		Level string `yaml:"level" env:"CIDIAN_LOG_LEVEL" env-default:"info"`
	} `yaml:"log"`
}

// Load reads configuration. The file path comes from CIDIAN_CONFIG
// (fallback "./cidian.yaml"); a missing default file is fine, a missing
// explicit one is an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CIDIAN_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "./cidian.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.Ingest.Workers < 1 {
		cfg.Ingest.Workers = 1
	}
	return &cfg, nil
}
