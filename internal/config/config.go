// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution  string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Addr         string `yaml:"addr,omitempty" json:"addr,omitempty"`
	Port         int    `yaml:"port,omitempty" json:"port,omitempty"`
	MaxBodyBytes int64  `yaml:"max_body_bytes,omitempty" json:"max_body_bytes,omitempty"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:         "0.0.0.0",
		Port:         8080,
		MaxBodyBytes: 4 << 20,
	}
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
