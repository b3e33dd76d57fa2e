package render

import (
	"context"
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	xdraw "golang.org/x/image/draw"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows with ▀ (upper half
// block), fg = top pixel and bg = bottom pixel. The top terminal row shows
// the top of the image.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		// Framebuffer row 0 is the bottom of the image.
		topY := fb.Height - 1 - (row-area.Min.Y)*2
		botY := topY - 1
		if topY < 0 {
			break
		}

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			scr.SetCell(col, row, halfBlockCell(fb.GetPixel(x, topY), fb.GetPixel(x, botY)))
		}
	}
}

// halfBlockCell builds the cell for one pair of vertically stacked pixels.
func halfBlockCell(top, bottom color.RGBA) *uv.Cell {
	return &uv.Cell{
		Content: "▀",
		Width:   1,
		Style: uv.Style{
			Fg: rgbaToColor(top),
			Bg: rgbaToColor(bottom),
		},
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Scaled returns a copy of fb resampled to w×h.
func (fb *Framebuffer) Scaled(w, h int) *Framebuffer {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := fb.ToImage()
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}

// FitSize returns the largest size with fb's aspect ratio that fits in
// cols×(2*rows) half-block pixels.
func (fb *Framebuffer) FitSize(cols, rows int) (w, h int) {
	if fb.Width == 0 || fb.Height == 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxH := rows * 2
	w, h = cols, fb.Height*cols/fb.Width
	if h > maxH {
		w, h = fb.Width*maxH/fb.Height, maxH
	}
	return max(w, 1), max(h, 1)
}

// Preview draws fb once into the current terminal, below the cursor.
// It is not interactive: the image is drawn, displayed and the terminal
// released.
func Preview(ctx context.Context, fb *Framebuffer) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Leave a row for the shell prompt.
	w, h := fb.FitSize(cols, rows-1)
	if w == 0 || h == 0 {
		return nil
	}
	scaled := fb.Scaled(w, h)
	cellRows := (h + 1) / 2

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.Resize(w, cellRows)

	scaled.Draw(term, uv.Rect(0, 0, w, cellRows))
	displayErr := term.Display()

	if err := term.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown terminal: %w", err)
	}
	if displayErr != nil {
		return fmt.Errorf("display: %w", displayErr)
	}
	return nil
}
