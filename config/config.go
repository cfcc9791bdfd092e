package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Config is the main configuration structure
type Config struct {
	// Port name substrings used to find the devices
	GridPort  string `json:"gridPort"`
	SynthPort string `json:"synthPort"`

	// Clock
	BPM          int `json:"bpm"`
	TicksPerBeat int `json:"ticksPerBeat"`

	// Job periods, in ticks
	InputPeriod int `json:"inputPeriod"`
	StepPeriod  int `json:"stepPeriod"`
	NotePeriod  int `json:"notePeriod"`

	// Optional GPL palette for the terminal mirror
	Palette string `json:"palette,omitempty"`
}

// Default returns a config with the reference timing: 120 BPM at 64
// ticks per beat, inputs polled every 4 ticks, step and note flush
// every 32 (an eighth note).
func Default() *Config {
	return &Config{
		GridPort:     "launchpad",
		SynthPort:    "midi through",
		BPM:          120,
		TicksPerBeat: 64,
		InputPeriod:  4,
		StepPeriod:   32,
		NotePeriod:   32,
	}
}

// Validate rejects rates the scheduler cannot turn into a sane tick
// duration, and degenerate job periods.
func (c *Config) Validate() error {
	if c.BPM <= 0 || c.TicksPerBeat <= 0 {
		return fmt.Errorf("bpm and ticksPerBeat must be positive (got %d, %d)", c.BPM, c.TicksPerBeat)
	}
	if c.BPM > math.MaxInt32/c.TicksPerBeat {
		return fmt.Errorf("bpm x ticksPerBeat overflows (got %d x %d)", c.BPM, c.TicksPerBeat)
	}
	for _, p := range []struct {
		name   string
		period int
	}{
		{"inputPeriod", c.InputPeriod},
		{"stepPeriod", c.StepPeriod},
		{"notePeriod", c.NotePeriod},
	} {
		if p.period <= 0 {
			return fmt.Errorf("%s must be positive (got %d)", p.name, p.period)
		}
	}
	if c.GridPort == "" {
		return fmt.Errorf("gridPort must not be empty")
	}
	if c.SynthPort == "" {
		return fmt.Errorf("synthPort must not be empty")
	}
	return nil
}

// Dir returns the config directory path
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lparp"), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads a config file, or returns defaults if it doesn't exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
