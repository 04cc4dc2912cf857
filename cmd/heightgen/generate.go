package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/ojrac/opensimplex-go"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/heightmap-viewer/pkg/formats"
)

// ErrBadSize is returned for dimensions the viewer cannot load.
var ErrBadSize = errors.New("unsupported heightmap size")

// Options controls Generate.
type Options struct {
	Width  int
	Length int
	Seed   int64
	Ramp   bool
	Peak   uint8
}

// octaves is a sum series of simplex noise, coarse to fine.
var octaves = []struct {
	amplitude, frequency float64
}{
	{64, 1.0 / 64},
	{16, 1.0 / 32},
	{8, 1.0 / 16},
	{4, 1.0 / 8},
	{1, 1.0 / 4},
}

// Generate writes a width x length grayscale heightmap as a 24-bit bitmap.
// Widths must be multiples of 4 so rows carry no padding.
func Generate(w io.Writer, opts Options) error {
	if opts.Width < 2 || opts.Length < 2 ||
		opts.Width > formats.MaxBitmapDimension || opts.Length > formats.MaxBitmapDimension {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, opts.Width, opts.Length)
	}
	if opts.Width%4 != 0 {
		return fmt.Errorf("%w: width %d is not a multiple of 4", ErrBadSize, opts.Width)
	}
	if opts.Peak == 0 {
		opts.Peak = 255
	}

	var field []float64
	if opts.Ramp {
		field = rampField(opts.Width, opts.Length)
	} else {
		field = noiseField(opts.Width, opts.Length, opts.Seed)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Length))
	for y := 0; y < opts.Length; y++ {
		for x := 0; x < opts.Width; x++ {
			v := uint8(math.Round(field[y*opts.Width+x] * float64(opts.Peak)))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}

	return bmp.Encode(w, img)
}

// rampField rises linearly from 0 at the left column to 1 at the right.
func rampField(width, length int) []float64 {
	field := make([]float64, width*length)
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			field[y*width+x] = float64(x) / float64(width-1)
		}
	}
	return field
}

// noiseField sums the octaves and rescales the result to [0, 1].
func noiseField(width, length int, seed int64) []float64 {
	noises := make([]opensimplex.Noise, len(octaves))
	for i := range octaves {
		noises[i] = opensimplex.New(seed + int64(i))
	}

	field := make([]float64, width*length)
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			var h float64
			for i, o := range octaves {
				h += o.amplitude * noises[i].Eval2(float64(x)*o.frequency, float64(y)*o.frequency)
			}
			field[y*width+x] = h
			lo = math.Min(lo, h)
			hi = math.Max(hi, h)
		}
	}

	span := hi - lo
	for i := range field {
		if span == 0 {
			field[i] = 0
			continue
		}
		field[i] = (field[i] - lo) / span
	}
	return field
}
