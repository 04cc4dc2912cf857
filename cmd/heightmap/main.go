// Package main is the entry point for the heightmap viewer.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/config"
	"github.com/Faultbox/heightmap-viewer/internal/engine/glhost"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Heightmap Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.Browse() {
		path, err := browseHeightmap()
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Info("no heightmap selected")
			return
		}
		if err != nil {
			logger.Error("file dialog failed", zap.Error(err))
			os.Exit(1)
		}
		cfg.Heightmap.Path = path
	}

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	abs, err := filepath.Abs(cfg.Heightmap.Path)
	if err != nil {
		return err
	}
	opts, err := app.OptionsFromConfig(cfg, osfs.New(filepath.Dir(abs)))
	if err != nil {
		return err
	}
	opts.Path = filepath.Base(abs)
	opts.Logger = logger.Named("app")

	host, err := glhost.New(glhost.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, logger.Named("glhost"))
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer host.Close()

	return app.Run(host, app.NewHeightMapApplication(opts), app.RunOptions{
		Logger:  logger.Named("loop"),
		ShowFPS: cfg.Window.ShowFPS,
	})
}

// browseHeightmap shows a native file dialog. It runs before the window
// exists, so it is safe to call from the main thread.
func browseHeightmap() (string, error) {
	return dialog.File().
		Filter("Bitmap heightmaps", "bmp").
		Filter("All Files", "*").
		Title("Open Heightmap").
		Load()
}
