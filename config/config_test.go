package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.BPM != 120 {
		t.Errorf("BPM = %d, want 120", cfg.BPM)
	}
	if cfg.TicksPerBeat != 64 {
		t.Errorf("TicksPerBeat = %d, want 64", cfg.TicksPerBeat)
	}
	if cfg.InputPeriod != 4 {
		t.Errorf("InputPeriod = %d, want 4", cfg.InputPeriod)
	}
	if cfg.StepPeriod != 32 {
		t.Errorf("StepPeriod = %d, want 32", cfg.StepPeriod)
	}
	if cfg.NotePeriod != 32 {
		t.Errorf("NotePeriod = %d, want 32", cfg.NotePeriod)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bpm", func(c *Config) { c.BPM = 0 }},
		{"negative bpm", func(c *Config) { c.BPM = -120 }},
		{"zero ticks", func(c *Config) { c.TicksPerBeat = 0 }},
		{"overflowing rate", func(c *Config) { c.BPM = math.MaxInt32; c.TicksPerBeat = 2 }},
		{"zero input period", func(c *Config) { c.InputPeriod = 0 }},
		{"negative step period", func(c *Config) { c.StepPeriod = -1 }},
		{"zero note period", func(c *Config) { c.NotePeriod = 0 }},
		{"empty grid port", func(c *Config) { c.GridPort = "" }},
		{"empty synth port", func(c *Config) { c.SynthPort = "" }},
	}
	for _, c := range cases {
		cfg := Default()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: accepted, want error", c.name)
		}
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BPM != 120 || cfg.GridPort != "launchpad" {
		t.Errorf("missing file did not fall back to defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := Default()
	cfg.BPM = 96
	cfg.GridPort = "launchpad mini"
	cfg.StepPeriod = 16
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip: got %+v, want %+v", got, cfg)
	}
}
