// Command heightgen writes a synthetic 24-bit grayscale heightmap bitmap.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

func main() {
	out := flag.String("out", "HeightMap.bmp", "Output bitmap path")
	width := flag.Int("width", 128, "Columns (multiple of 4)")
	length := flag.Int("length", 128, "Rows")
	seed := flag.Int64("seed", 1, "Noise seed")
	ramp := flag.Bool("ramp", false, "Write a left-to-right ramp instead of noise")
	peak := flag.Int("peak", 255, "Byte value of the highest sample (1-255)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *peak < 1 || *peak > 255 {
		logger.Error("peak out of range", zap.Int("peak", *peak))
		os.Exit(1)
	}
	opts := Options{
		Width:  *width,
		Length: *length,
		Seed:   *seed,
		Ramp:   *ramp,
		Peak:   uint8(*peak),
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("creating output", zap.Error(err))
		os.Exit(1)
	}

	if err := Generate(f, opts); err != nil {
		f.Close()
		os.Remove(*out)
		logger.Error("generating heightmap", zap.Error(err))
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		logger.Error("writing output", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("heightmap written",
		zap.String("path", *out),
		zap.Int("width", opts.Width),
		zap.Int("length", opts.Length),
		zap.Bool("ramp", opts.Ramp))
}
