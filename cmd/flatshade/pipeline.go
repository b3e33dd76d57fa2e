package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/flatshade/internal/config"
	"github.com/taigrr/flatshade/internal/logger"
	"github.com/taigrr/flatshade/pkg/imageio"
	"github.com/taigrr/flatshade/pkg/models"
	"github.com/taigrr/flatshade/pkg/render"
)

// Overlay colors.
var (
	wireColor   = render.RGB(0, 160, 255)
	boundsColor = render.RGB(255, 200, 0)
)

// run loads the mesh, renders one frame and writes it out.
func run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	mesh, err := loadMesh(cfg.Input.Path)
	if err != nil {
		return err
	}
	logger.Info("mesh loaded",
		zap.String("name", mesh.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.TriangleCount()),
	)

	if cfg.Input.Fit {
		mesh.FitUnitCube()
	} else if !mesh.InUnitCube() {
		lo, hi := mesh.GetBounds()
		logger.Warn("mesh extends outside the unit cube, parts may be off canvas (try -fit)",
			zap.Any("min", lo), zap.Any("max", hi))
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("mesh %s: %w", cfg.Input.Path, err)
	}
	box := render.NewAABB(mesh.GetBounds()).Transform(cfg.ViewMatrix())
	logger.Sugar.Debugw("view space bounds", "center", box.Center(), "size", box.Size())

	fb, stats, err := renderFrame(mesh, cfg)
	if err != nil {
		return err
	}
	summary := fb.Summarize()
	logger.Info("frame rendered",
		zap.Stringer("fill", cfg.FillMode()),
		zap.Int("tested", stats.FacesTested),
		zap.Int("culled", stats.FacesCulled),
		zap.Int("degenerate", stats.FacesDegenerate),
		zap.Int("drawn", stats.FacesDrawn),
		zap.Int("fragments", stats.Fragments),
		zap.Int("lit_pixels", summary.Lit),
		zap.Uint8("min_gray", summary.MinGray),
		zap.Uint8("max_gray", summary.MaxGray),
	)

	if cfg.Overlay.Any() {
		if err := drawOverlays(fb, mesh, cfg); err != nil {
			return err
		}
	}

	if err := imageio.Save(cfg.Output.Path, fb); err != nil {
		return fmt.Errorf("save %s: %w", cfg.Output.Path, err)
	}
	logger.Info("image written",
		zap.String("path", cfg.Output.Path),
		zap.Stringer("format", imageio.FormatFromPath(cfg.Output.Path)),
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Duration("elapsed", time.Since(start)),
	)

	if cfg.Output.Preview {
		if err := render.Preview(ctx, fb); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}
	return nil
}

// loadMesh picks the loader by extension. OBJ line rejects are logged
// and skipped.
func loadMesh(path string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		mesh, err := models.LoadGLTF(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil
	}

	res, err := models.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	for _, rej := range res.Rejected {
		logger.Debug("obj line skipped",
			zap.Int("line", rej.Line),
			zap.String("text", rej.Text),
			zap.Error(rej.Err),
		)
	}
	if n := len(res.Rejected); n > 0 {
		logger.Warn("obj lines skipped", zap.Int("count", n), zap.Int("lines", res.Lines))
	}
	return res.Mesh, nil
}

// renderFrame rasterizes mesh into a fresh framebuffer.
func renderFrame(mesh *models.Mesh, cfg *config.Config) (*render.Framebuffer, render.Stats, error) {
	fb := render.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	r := render.NewRasterizer(fb)
	r.Fill = cfg.FillMode()

	if err := r.DrawMesh(mesh, cfg.ViewMatrix(), cfg.LightDir()); err != nil {
		return nil, r.Stats, fmt.Errorf("render %s: %w", cfg.Input.Path, err)
	}
	return fb, r.Stats, nil
}

// drawOverlays draws the enabled debug overlays over the shaded image.
func drawOverlays(fb *render.Framebuffer, mesh *models.Mesh, cfg *config.Config) error {
	w := render.NewWireframe(fb)
	view := cfg.ViewMatrix()

	if cfg.Overlay.Wireframe {
		if err := w.DrawMesh(mesh, view, wireColor); err != nil {
			return fmt.Errorf("wireframe: %w", err)
		}
	}
	if cfg.Overlay.Bounds {
		lo, hi := mesh.GetBounds()
		w.DrawBox(lo, hi, view, boundsColor)
	}
	if cfg.Overlay.Axes {
		w.DrawAxes(0.5, view)
	}
	return nil
}
