package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Surface.HeightScale != 0.5 {
		t.Errorf("height_scale = %v, want 0.5", cfg.Surface.HeightScale)
	}
	if cfg.Physics.Drag != 0.95 || cfg.Physics.Ease != 0.25 {
		t.Errorf("physics = %+v, want drag 0.95 ease 0.25", cfg.Physics)
	}
	if cfg.Render.BaseGrey != 220 {
		t.Errorf("base_grey = %v, want 220", cfg.Render.BaseGrey)
	}
	if len(cfg.Profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(cfg.Profiles))
	}
}

func TestDerivedProfilesSorted(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := make([]string, 0, len(cfg.Derived.Profiles))
	for _, p := range cfg.Derived.Profiles {
		got = append(got, p.Class)
	}
	if strings.Join(got, ",") != "small,mobile,desktop" {
		t.Errorf("derived order = %v, want small,mobile,desktop", got)
	}
}

func TestLoadUserFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("physics:\n  drag: 0.9\nprofiles:\n  - class: only\n    spacing: 20\n    update_thickness: 100\n    draw_thickness: 100\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Physics.Drag != 0.9 {
		t.Errorf("drag = %v, want 0.9", cfg.Physics.Drag)
	}
	// Fields absent from the file keep their defaults
	if cfg.Physics.Ease != 0.25 {
		t.Errorf("ease = %v, want default 0.25", cfg.Physics.Ease)
	}
	if len(cfg.Profiles) != 1 || cfg.Profiles[0].Class != "only" {
		t.Errorf("profiles = %+v, want single 'only' row", cfg.Profiles)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero height scale", "surface:\n  height_scale: 0\n"},
		{"zero spacing", "profiles:\n  - class: a\n    spacing: 0\n"},
		{"missing class", "profiles:\n  - spacing: 10\n"},
		{"two unbounded rows", "profiles:\n  - class: a\n    spacing: 10\n  - class: b\n    spacing: 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Physics.Ease = 0.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Physics.Ease != 0.5 {
		t.Errorf("ease = %v after roundtrip, want 0.5", back.Physics.Ease)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
