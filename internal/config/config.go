package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the engine looks for its settings, relative to the working directory.
const DefaultPath = "config/config.yml"

type Config struct {
	App struct {
		Host string `yaml:"host" json:"host"`
		Port int    `yaml:"port" json:"port"`
	} `yaml:"app" json:"app"`

	Upload struct {
		MaxBytes  int64   `yaml:"max_bytes" json:"max_bytes"`
		PerSecond float64 `yaml:"per_second" json:"per_second"`
		Burst     int     `yaml:"burst" json:"burst"`
	} `yaml:"upload" json:"upload"`

	Sorting struct {
		Locale string `yaml:"locale" json:"locale"`
	} `yaml:"sorting" json:"sorting"`

	Logging struct {
		Level  string `yaml:"level" json:"level"`
		Format string `yaml:"format" json:"format"` // text | json
	} `yaml:"logging" json:"logging"`
}

func Default() Config {
	var cfg Config
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 38472
	cfg.Upload.MaxBytes = 10 << 20
	cfg.Upload.PerSecond = 2
	cfg.Upload.Burst = 5
	cfg.Sorting.Locale = "en"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
