// Package config handles renderer configuration loading and validation.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/flatshade/internal/logger"
	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/render"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// MaxCanvasSide is the largest canvas width or height; TGA stores sizes
// in 16 bits.
const MaxCanvasSide = 0xFFFF

// Config holds all renderer settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	View    ViewConfig    `yaml:"view"`
	Overlay OverlayConfig `yaml:"overlay"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// InputConfig selects the mesh.
type InputConfig struct {
	Path string `yaml:"path"` // .obj, .gltf or .glb
	Fit  bool   `yaml:"fit"`  // scale the mesh into [-1, +1]
}

// OutputConfig selects where the image goes.
type OutputConfig struct {
	Path    string `yaml:"path"` // format follows the extension
	Preview bool   `yaml:"preview"`
}

// RenderConfig holds canvas and shading settings.
type RenderConfig struct {
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Light  [3]float32 `yaml:"light,flow"`
	Fill   string     `yaml:"fill"` // scanline or edge
}

// ViewConfig rotates the model before projection, in degrees.
type ViewConfig struct {
	Yaw   float32 `yaml:"yaw"`
	Pitch float32 `yaml:"pitch"`
	Roll  float32 `yaml:"roll"`
}

// OverlayConfig draws debug lines over the shaded image.
type OverlayConfig struct {
	Wireframe bool `yaml:"wireframe"`
	Bounds    bool `yaml:"bounds"`
	Axes      bool `yaml:"axes"`
}

// Any reports whether some overlay is enabled.
func (o OverlayConfig) Any() bool {
	return o.Wireframe || o.Bounds || o.Axes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the reference render: obj/head.obj to output.tga at
// 1024x1024, lit head-on.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "obj/head.obj",
		},
		Output: OutputConfig{
			Path: "output.tga",
		},
		Render: RenderConfig{
			Width:  1024,
			Height: 1024,
			Light:  [3]float32{0, 0, -1},
			Fill:   render.FillScanline.String(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and normalizes the light direction in
// place.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("%w: input.path is empty", ErrInvalid)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output.path is empty", ErrInvalid)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 ||
		c.Render.Width > MaxCanvasSide || c.Render.Height > MaxCanvasSide {
		return fmt.Errorf("%w: canvas size %dx%d (each side must be 1..%d)",
			ErrInvalid, c.Render.Width, c.Render.Height, MaxCanvasSide)
	}
	if _, err := render.ParseFillMode(c.Render.Fill); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	l := c.Render.Light
	n, err := math3d.V3(l[0], l[1], l[2]).Normalize()
	if err != nil {
		return fmt.Errorf("%w: light %v: %w", ErrInvalid, l, err)
	}
	c.Render.Light = [3]float32{n.X, n.Y, n.Z}
	return nil
}

// LightDir returns the light direction as a vector.
func (c *Config) LightDir() math3d.Vec3 {
	return math3d.V3(c.Render.Light[0], c.Render.Light[1], c.Render.Light[2])
}

// FillMode returns the parsed fill mode, scanline if unset.
func (c *Config) FillMode() render.FillMode {
	m, _ := render.ParseFillMode(c.Render.Fill)
	return m
}

// ViewMatrix returns the model rotation, identity when all angles are 0.
func (c *Config) ViewMatrix() math3d.Mat4 {
	if c.View == (ViewConfig{}) {
		return math3d.Identity()
	}
	return math3d.EulerDegrees(c.View.Yaw, c.View.Pitch, c.View.Roll)
}
