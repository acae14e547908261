package utils

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Rows != 50 || cfg.Cols != 50 {
		t.Fatalf("default grid %dx%d, want 50x50", cfg.Rows, cfg.Cols)
	}
	if cfg.Delay != 100*time.Millisecond {
		t.Fatalf("default delay %v, want 100ms", cfg.Delay)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero rows":        func(c *Config) { c.Rows = 0 },
		"negative cols":    func(c *Config) { c.Cols = -3 },
		"negative delay":   func(c *Config) { c.Delay = -time.Millisecond },
		"no workers":       func(c *Config) { c.Workers = 0 },
		"negative max gen": func(c *Config) { c.MaxGenerations = -1 },
		"density above 1":  func(c *Config) { c.RandomDensity = 1.5 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: got %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"rows": 12, "cols": 20, "workers": 3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Rows != 12 || cfg.Cols != 20 || cfg.Workers != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Delay != DefaultConfig().Delay {
		t.Fatalf("unset delay should keep default, got %v", cfg.Delay)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"rows":`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"rows": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("invalid config: got %v, want ErrInvalidConfig", err)
	}
}

func TestBindOverridesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-rows", "8", "-delay", "5ms", "-interactive", "-pattern", "glider"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 8 || cfg.Delay != 5*time.Millisecond || !cfg.Interactive || cfg.Pattern != "glider" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Cols != 50 {
		t.Fatalf("unbound flag changed cols to %d", cfg.Cols)
	}
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 100*time.Millisecond)
	if s.AveragePopulation != 100 || s.TotalGenerations != 1 || s.ActiveCells != 100 {
		t.Fatalf("first update: %+v", s)
	}
	if s.GenerationsPerSecond < 9.99 || s.GenerationsPerSecond > 10.01 {
		t.Fatalf("rate %v, want 10", s.GenerationsPerSecond)
	}
	s.Update(2, 0, 0)
	if s.AveragePopulation != 90 {
		t.Fatalf("moving average %v, want 90", s.AveragePopulation)
	}

	s.Restart()
	if s.TotalGenerations != 0 || s.AveragePopulation != 0 || s.StartTime.IsZero() {
		t.Fatalf("restart left %+v", s)
	}
}
