package config

import (
	"errors"
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Input.Path != "obj/head.obj" || cfg.Output.Path != "output.tga" {
		t.Errorf("paths = %q -> %q", cfg.Input.Path, cfg.Output.Path)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 1024 {
		t.Errorf("canvas = %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.LightDir() != math3d.V3(0, 0, -1) {
		t.Errorf("light = %v", cfg.LightDir())
	}
	if cfg.FillMode() != render.FillScanline {
		t.Errorf("fill = %v", cfg.FillMode())
	}
	if !cfg.ViewMatrix().IsIdentity() {
		t.Error("default view should be identity")
	}
	if cfg.Input.Fit || cfg.Output.Preview || cfg.Overlay.Any() {
		t.Error("optional features should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "flatshade.yaml")
	yamlContent := `
input:
  path: models/teapot.glb
  fit: true
output:
  path: out.png
  preview: true
render:
  width: 640
  height: 480
  light: [0, 0, -2]
  fill: edge
view:
  yaw: 30
  pitch: -15
overlay:
  bounds: true
logging:
  level: debug
  log_file: flatshade.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Input.Path != "models/teapot.glb" || !cfg.Input.Fit {
		t.Errorf("input = %+v", cfg.Input)
	}
	if cfg.Output.Path != "out.png" || !cfg.Output.Preview {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Render.Width != 640 || cfg.Render.Height != 480 || cfg.FillMode() != render.FillEdge {
		t.Errorf("render = %+v", cfg.Render)
	}
	// Light is normalized by Validate.
	if cfg.LightDir() != math3d.V3(0, 0, -1) {
		t.Errorf("light = %v", cfg.LightDir())
	}
	if cfg.View.Yaw != 30 || cfg.View.Pitch != -15 || cfg.ViewMatrix().IsIdentity() {
		t.Errorf("view = %+v", cfg.View)
	}
	if !cfg.Overlay.Bounds || cfg.Overlay.Wireframe || !cfg.Overlay.Any() {
		t.Errorf("overlay = %+v", cfg.Overlay)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "flatshade.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "render:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "render:\n  depth: 3\n"},
		{"short light", "render:\n  light: [0, 1]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file rejected: %v", err)
	}
	if cfg.Render.Width != 1024 {
		t.Error("empty file changed defaults")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	err := loadFromFile(Default(), "/nonexistent/path/config.yaml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no input", func(c *Config) { c.Input.Path = "" }},
		{"no output", func(c *Config) { c.Output.Path = "" }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"negative height", func(c *Config) { c.Render.Height = -4 }},
		{"width over tga limit", func(c *Config) { c.Render.Width = MaxCanvasSide + 1 }},
		{"height over tga limit", func(c *Config) { c.Render.Height = 70000 }},
		{"size wrapping int", func(c *Config) { c.Render.Width, c.Render.Height = math.MaxInt, math.MaxInt }},
		{"bad fill", func(c *Config) { c.Render.Fill = "flood" }},
		{"zero light", func(c *Config) { c.Render.Light = [3]float32{} }},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	yamlContent := "render:\n  width: 300\n  height: 200\noutput:\n  path: file.tga\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, flags, err := Load([]string{
		"-config", configPath, "-width", "512", "-output", "flag.png",
		"-fill", "edge", "-debug", "-fit", "-wireframe",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source != configPath || flags.Config != configPath {
		t.Errorf("source = %q", cfg.Source)
	}
	if cfg.Render.Width != 512 || cfg.Render.Height != 200 {
		t.Errorf("canvas = %dx%d, want 512x200", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Output.Path != "flag.png" {
		t.Errorf("output = %q", cfg.Output.Path)
	}
	if cfg.FillMode() != render.FillEdge || cfg.Logging.Level != "debug" {
		t.Errorf("fill/level = %v/%v", cfg.FillMode(), cfg.Logging.Level)
	}
	if !cfg.Input.Fit || !cfg.Overlay.Wireframe || cfg.Overlay.Bounds {
		t.Errorf("fit/overlay = %v/%+v", cfg.Input.Fit, cfg.Overlay)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, _, err := Load([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h error = %v, want ErrHelp", err)
	}
	if _, _, err := Load([]string{"-width", "wide"}); err == nil {
		t.Error("bad flag value accepted")
	}
	if _, _, err := Load([]string{"-config", "/nonexistent/flatshade.yaml"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing config error = %v", err)
	}
	if _, _, err := Load([]string{"-config", os.DevNull, "-fill", "flood"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad fill error = %v, want ErrInvalid", err)
	}

	sizes := [][]string{
		{"-width", "-5"},
		{"-height", "-1"},
		{"-width", "65536"},
		{"-width", "4294967296", "-height", "4294967296"},
	}
	for _, args := range sizes {
		if _, _, err := Load(append([]string{"-config", os.DevNull}, args...)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%v: error = %v, want ErrInvalid", args, err)
		}
	}
	cfg, _, err := Load([]string{"-config", os.DevNull, "-width", "65535", "-height", "1"})
	if err != nil {
		t.Fatalf("largest canvas rejected: %v", err)
	}
	if cfg.Render.Width != MaxCanvasSide {
		t.Errorf("width = %d", cfg.Render.Width)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if got := findConfigFile(); got != "" {
		t.Errorf("found %q in empty dirs", got)
	}

	xdgPath := filepath.Join(ConfigDir(), "config.yaml")
	if err := os.MkdirAll(filepath.Dir(xdgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdgPath, []byte("render:\n  width: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != xdgPath {
		t.Errorf("found %q, want %q", got, xdgPath)
	}

	// The working directory wins.
	if err := os.WriteFile(FileName, []byte("render:\n  width: 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != FileName {
		t.Errorf("found %q, want %q", got, FileName)
	}

	cfg, _, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Width != 32 || cfg.Source != FileName {
		t.Errorf("width = %d from %q", cfg.Render.Width, cfg.Source)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.View.Roll = 45
	cfg.Overlay.Axes = true

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded %+v, want %+v", loaded, cfg)
	}
}
