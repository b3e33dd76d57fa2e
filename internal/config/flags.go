package config

import (
	"flag"
	"io"
)

// Flags holds the parsed command line. Zero values mean "not set".
type Flags struct {
	Config      string
	WriteConfig string
	Debug       bool
	Input       string
	Output      string
	Width       int
	Height      int
	Fill        string
	Fit         bool
	Preview     bool
	Wireframe   bool
	Bounds      bool
}

// ParseFlags parses args, which exclude the program name. -h yields
// flag.ErrHelp.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := newFlagSet(f, io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// Usage writes the flag help to w.
func Usage(w io.Writer) {
	fs := newFlagSet(&Flags{}, w)
	fs.Usage()
}

func newFlagSet(f *Flags, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("flatshade", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.WriteConfig, "write-config", "", "Write the effective config to this path and exit")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Input, "input", "", "Mesh to render (.obj, .gltf, .glb)")
	fs.StringVar(&f.Output, "output", "", "Image to write (.tga, .png, .bmp, .tiff)")
	fs.IntVar(&f.Width, "width", 0, "Canvas width")
	fs.IntVar(&f.Height, "height", 0, "Canvas height")
	fs.StringVar(&f.Fill, "fill", "", "Fill algorithm: scanline or edge")
	fs.BoolVar(&f.Fit, "fit", false, "Scale the mesh into the unit cube")
	fs.BoolVar(&f.Preview, "preview", false, "Show the result in the terminal")
	fs.BoolVar(&f.Wireframe, "wireframe", false, "Overlay the mesh wireframe")
	fs.BoolVar(&f.Bounds, "bounds", false, "Overlay the mesh bounding box")
	return fs
}

// apply overrides cfg with the flags that were set.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Input != "" {
		cfg.Input.Path = f.Input
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
	// Zero means unset; anything else, negative included, goes to Validate.
	if f.Width != 0 {
		cfg.Render.Width = f.Width
	}
	if f.Height != 0 {
		cfg.Render.Height = f.Height
	}
	if f.Fill != "" {
		cfg.Render.Fill = f.Fill
	}
	if f.Fit {
		cfg.Input.Fit = true
	}
	if f.Preview {
		cfg.Output.Preview = true
	}
	if f.Wireframe {
		cfg.Overlay.Wireframe = true
	}
	if f.Bounds {
		cfg.Overlay.Bounds = true
	}
}
