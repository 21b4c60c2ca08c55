package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultN        = 64
	DefaultAlpha    = 0.0
	DefaultBeta     = 1.5
	DefaultDt       = 0.05
	DefaultDuration = 50.0
	DefaultDx       = 1.0
	DefaultInitAmp  = 0.05
)

type Config struct {
	N          int     `yaml:"n"`
	Alpha      float64 `yaml:"alpha"`
	Beta       float64 `yaml:"beta"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Dx         float64 `yaml:"dx"`
	Seed       int64   `yaml:"seed"`
	InitAmp    float64 `yaml:"init_amp"`
	Integrator string  `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		N:          DefaultN,
		Alpha:      DefaultAlpha,
		Beta:       DefaultBeta,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Dx:         DefaultDx,
		InitAmp:    DefaultInitAmp,
		Integrator: "euler",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects parameters that would produce a degenerate grid, a
// non-terminating loop, or a division by zero in the stencil. Everything
// else (including a dt too large for stability) is allowed through.
func (c *Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("grid size must be positive, got %d", c.N)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %f", c.Duration)
	}
	if c.Dx <= 0 {
		return fmt.Errorf("dx must be positive, got %f", c.Dx)
	}
	if c.InitAmp < 0 {
		return fmt.Errorf("init_amp must be non-negative, got %f", c.InitAmp)
	}
	return nil
}
