package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is everything the CLI can be told through a YAML file. Flags given on
// the command line win over the file.
type Config struct {
	K        int    `yaml:"k"`
	Refine   bool   `yaml:"refine"`
	Index    string `yaml:"index"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		K:        8,
		Index:    "kdtree",
		Workers:  1,
		LogLevel: "info",
	}
}

// Read a YAML file over the defaults. Keys missing from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "parsing config %q", path)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.K <= 0 {
		return errors.Errorf("k must be positive, got %d", c.K)
	}
	if c.Index != "kdtree" && c.Index != "brute" {
		return errors.Errorf("unknown index %q (want kdtree or brute)", c.Index)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}
