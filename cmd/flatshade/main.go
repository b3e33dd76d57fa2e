// flatshade - flat-shaded software rasterizer
// Renders a triangle mesh orthographically into an image file, one gray
// level per face, with a z-buffer for visibility.
//
// Usage:
//
//	flatshade                      render obj/head.obj to output.tga
//	flatshade -input m.glb -fit    render a glTF model scaled to fit
//	flatshade -output out.png      pick the format by extension
//	flatshade -preview             also show the result in the terminal
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/taigrr/flatshade/internal/config"
	"github.com/taigrr/flatshade/internal/logger"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	cfg, flags, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "flatshade - flat-shaded software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: flatshade [options]\n\nOptions:\n")
		config.Usage(os.Stderr)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Source))
	}

	if flags.WriteConfig != "" {
		if err := cfg.SaveTo(flags.WriteConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("config written", zap.String("path", flags.WriteConfig))
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
