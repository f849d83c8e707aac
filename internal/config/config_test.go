package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := DefaultSlingConfig()
	if cfg.Physics != def.Physics {
		t.Errorf("physics defaults mismatch: %+v vs %+v", cfg.Physics, def.Physics)
	}
	if cfg.Sling != def.Sling {
		t.Errorf("sling defaults mismatch: %+v vs %+v", cfg.Sling, def.Sling)
	}
	if cfg.Turns != def.Turns {
		t.Errorf("turn defaults mismatch: %+v vs %+v", cfg.Turns, def.Turns)
	}
	if cfg.Damage != def.Damage {
		t.Errorf("damage defaults mismatch: %+v vs %+v", cfg.Damage, def.Damage)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sling.yaml")
	custom := []byte("physics:\n  gravity: 0.8\n  world_width: 640\n")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.8 || cfg.Physics.WorldWidth != 640 {
		t.Errorf("custom values not applied: %+v", cfg.Physics)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sling.yaml")
	partial := []byte("physics:\n  gravity: 0.8\n")
	if err := os.WriteFile(path, partial, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Every field the file does not name keeps its default.
	def := DefaultSlingConfig()
	if cfg.Sling != def.Sling {
		t.Errorf("sling config changed by an unrelated partial file: %+v", cfg.Sling)
	}
	if cfg.Physics.WorldWidth != def.Physics.WorldWidth {
		t.Errorf("world width = %f, expected default %f", cfg.Physics.WorldWidth, def.Physics.WorldWidth)
	}
	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("gravity = %f, expected the file's 0.8", cfg.Physics.Gravity)
	}
}

func TestLoadSanitizesBreakingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sling.yaml")
	broken := []byte("sling:\n  power_divisor: 0\n  grab_radius_factor: -1\nphysics:\n  world_width: 0\n")
	if err := os.WriteFile(path, broken, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := DefaultSlingConfig()
	if cfg.Sling.PowerDivisor != def.Sling.PowerDivisor {
		t.Errorf("zero power divisor survived: %f", cfg.Sling.PowerDivisor)
	}
	if cfg.Sling.GrabRadiusFactor != def.Sling.GrabRadiusFactor {
		t.Errorf("negative grab radius survived: %f", cfg.Sling.GrabRadiusFactor)
	}
	if cfg.Physics.WorldWidth != def.Physics.WorldWidth {
		t.Errorf("zero world width survived: %f", cfg.Physics.WorldWidth)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load("/nonexistent/sling.yaml"); err == nil {
		t.Error("missing explicit config path should be an error")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		scale  float64
	}{
		{DifficultyEasy, 0.75},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 1.5},
		{DifficultyClassic, 1.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSlingConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Damage.HealthScale != tc.scale {
				t.Errorf("HealthScale = %f, expected %f", cfg.Damage.HealthScale, tc.scale)
			}
		})
	}
}
