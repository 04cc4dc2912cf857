package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

// RunOptions controls the frame loop.
type RunOptions struct {
	Logger  *zap.Logger
	ShowFPS bool // log frame rate once per second at info instead of debug
}

// Run starts the application on host and drives update/render/present
// until the host reports quit. Stop is always called after a successful
// Start. The host itself is left open.
func Run(host Host, a Application, opts RunOptions) error {
	log := opts.Logger
	if log == nil {
		log = logger.Named("loop")
	}

	if err := a.Start(host); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer a.Stop(host)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	log.Info("starting render loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if host.PollEvents() {
			log.Info("quit requested")
			return nil
		}

		a.Update(host)
		a.Render(host)
		host.Present()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			lvl := zap.DebugLevel
			if opts.ShowFPS {
				lvl = zap.InfoLevel
			}
			log.Log(lvl, "fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}
