package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/sympend/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Steps != 1000 || cfg.Dt != 0.02 || cfg.Horizon != 20 {
		t.Errorf("unexpected step layout: %d x %f over %f", cfg.Steps, cfg.Dt, cfg.Horizon)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Gravity != 9.83 {
		t.Errorf("expected gravity 9.83, got %f", p.Gravity)
	}

	init, err := cfg.InitialState()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(init.Angle1-math.Pi/2) > 1e-15 || math.Abs(init.Angle2-math.Pi/2) > 1e-15 {
		t.Errorf("expected both angles at pi/2, got %+v", init)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	want := GetPreset("asymmetric")

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("angle1_deg: 45\nmass2: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Angle1Deg = 45
	want.Mass2 = 0.5
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("angle1_deg: 120\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base := GetPreset("chaos")

	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}

	want := GetPreset("chaos")
	want.Angle1Deg = 120
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(GetPreset("chaos"), base); diff != "" {
		t.Errorf("base modified (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"negative mass", func(c *Config) { c.Mass1 = -1 }, dynamo.ErrInvalidParameters},
		{"zero length", func(c *Config) { c.Length2 = 0 }, dynamo.ErrInvalidParameters},
		{"nan angle", func(c *Config) { c.Angle1Deg = math.NaN() }, dynamo.ErrInvalidParameters},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrInvalidStep},
		{"negative horizon", func(c *Config) { c.Horizon = -1 }, dynamo.ErrInvalidStep},
		{"steps mismatch", func(c *Config) { c.Steps = 999 }, dynamo.ErrInvalidStep},
		{"single step", func(c *Config) { c.Steps = 1; c.Horizon = 0.02 }, dynamo.ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateDerivesSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Steps = 0

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Steps != 2000 {
		t.Errorf("expected 2000 steps, got %d", cfg.Steps)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gentle")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Angle1Deg != 15 {
		t.Errorf("expected angle1 15, got %f", cfg.Angle1Deg)
	}

	cfg.Angle1Deg = 80
	if GetPreset("gentle").Angle1Deg != 15 {
		t.Error("mutating a returned preset changed the registry")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("not sorted: %v", names)
		}
	}
}
