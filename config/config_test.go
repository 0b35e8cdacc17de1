package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Dissolve.Progress != -7 {
		t.Errorf("progress = %v, want -7", cfg.Dissolve.Progress)
	}
	if cfg.Dissolve.EdgeWidth != 0.8 {
		t.Errorf("edge width = %v, want 0.8", cfg.Dissolve.EdgeWidth)
	}
	if cfg.Device != DeviceDesktop {
		t.Errorf("device = %q, want desktop", cfg.Device)
	}
	if cfg.Derived.Profile.SegmentsTubular != 140 {
		t.Errorf("tubular segments = %d, want 140", cfg.Derived.Profile.SegmentsTubular)
	}
	if cfg.Derived.OscillatorStep != 0.08 {
		t.Errorf("oscillator step = %v, want 0.08 from desktop profile", cfg.Derived.OscillatorStep)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("expected positive DT32, got %v", cfg.Derived.DT32)
	}
}

func TestLoadUserOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("device: mobile\ndissolve:\n  edge_width: 2.5\noscillator:\n  step: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Dissolve.EdgeWidth != 2.5 {
		t.Errorf("edge width = %v, want 2.5", cfg.Dissolve.EdgeWidth)
	}
	// Untouched fields keep their defaults
	if cfg.Dissolve.Frequency != 0.25 {
		t.Errorf("frequency = %v, want default 0.25", cfg.Dissolve.Frequency)
	}
	if cfg.Derived.Profile.SegmentsTubular != 90 {
		t.Errorf("tubular segments = %d, want 90 for mobile", cfg.Derived.Profile.SegmentsTubular)
	}
	// Explicit step wins over the profile
	if cfg.Derived.OscillatorStep != 0.5 {
		t.Errorf("oscillator step = %v, want 0.5", cfg.Derived.OscillatorStep)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero edge width", "dissolve:\n  edge_width: 0\n"},
		{"negative frequency", "dissolve:\n  frequency: -1\n"},
		{"inverted bounds", "oscillator:\n  low: 20\n  high: 10\n"},
		{"unknown policy", "oscillator:\n  disable_policy: rewind\n"},
		{"unknown device", "device: watch\n"},
		{"bad color", "dissolve:\n  edge_color: \"#zzz\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#4d9bff")
	if err != nil {
		t.Fatalf("ParseHexColor error: %v", err)
	}
	if c.B != 1 {
		t.Errorf("blue = %v, want 1", c.B)
	}
	if c.R < 0.30 || c.R > 0.31 {
		t.Errorf("red = %v, want ~0.302", c.R)
	}
}

func TestSetDevice(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetDevice(DeviceMobile); err != nil {
		t.Fatalf("SetDevice error: %v", err)
	}
	if cfg.Derived.Profile.ParticleBaseSize != 40 {
		t.Errorf("base size = %v, want 40", cfg.Derived.Profile.ParticleBaseSize)
	}
	if err := cfg.SetDevice("toaster"); err == nil {
		t.Error("expected error for unknown device")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Dissolve.Amplitude != cfg.Dissolve.Amplitude {
		t.Errorf("amplitude = %v, want %v", back.Dissolve.Amplitude, cfg.Dissolve.Amplitude)
	}
}
