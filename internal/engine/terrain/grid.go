package terrain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	billy "gopkg.in/src-d/go-billy.v4"

	"github.com/Faultbox/heightmap-viewer/pkg/formats"
)

// Grid is an immutable width x length array of height samples.
// Row 0 is the visually top row of the source image.
type Grid struct {
	width   int
	length  int
	samples []Sample // row-major: [row*width+col]
}

// NewGrid builds a grid from row-major samples. The slice is copied.
func NewGrid(width, length int, samples []Sample) (*Grid, error) {
	if width <= 0 || length <= 0 || len(samples) != width*length {
		return nil, fmt.Errorf("%w: %dx%d grid with %d samples", ErrDimensionMismatch, width, length, len(samples))
	}
	g := &Grid{
		width:   width,
		length:  length,
		samples: make([]Sample, len(samples)),
	}
	copy(g.samples, samples)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Length returns the number of rows.
func (g *Grid) Length() int { return g.length }

// At returns the sample at (col, row).
func (g *Grid) At(col, row int) (Sample, error) {
	if col < 0 || row < 0 || col >= g.width || row >= g.length {
		return Sample{}, fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfBounds, col, row, g.width, g.length)
	}
	return g.samples[row*g.width+col], nil
}

// HeightRange returns the minimum and maximum sample height.
func (g *Grid) HeightRange() (min, max float32) {
	if len(g.samples) == 0 {
		return 0, 0
	}

	min = g.samples[0].Y
	max = g.samples[0].Y
	for _, s := range g.samples {
		if s.Y < min {
			min = s.Y
		}
		if s.Y > max {
			max = s.Y
		}
	}
	return min, max
}

// DecodeGrid converts bitmap pixels into world-space samples. Zero
// GridSize and HeightDivisor take their defaults.
//
// File rows are bottom-up, so grid row j reads file row length-1-j. The
// first byte of each pixel is the height:
//
//	x = (col - width/2) * GridSize
//	y = byte / HeightDivisor * GridSize
//	z = (length/2 - row) * GridSize
func DecodeGrid(bmp *formats.Bitmap, opts GridOptions) (*Grid, error) {
	width, length := bmp.Width, bmp.Height
	if width <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: %dx%d bitmap", ErrDimensionMismatch, width, length)
	}
	if need := formats.PixelDataSize(width, length); len(bmp.Pixels) < need {
		return nil, fmt.Errorf("%w: %d pixel bytes for %dx%d bitmap, need %d",
			ErrDimensionMismatch, len(bmp.Pixels), width, length, need)
	}

	scale := opts.GridSize
	if scale == 0 {
		scale = DefaultGridOptions().GridSize
	}
	divisor := opts.HeightDivisor
	if divisor == 0 {
		divisor = DefaultGridOptions().HeightDivisor
	}

	g := &Grid{
		width:   width,
		length:  length,
		samples: make([]Sample, width*length),
	}

	for row := 0; row < length; row++ {
		fileRow := length - 1 - row
		for col := 0; col < width; col++ {
			height, ok := bmp.HeightByte(col, fileRow)
			if !ok {
				return nil, fmt.Errorf("%w: pixel (%d, %d)", ErrOutOfBounds, col, fileRow)
			}

			g.samples[row*width+col] = Sample{
				X: float32(col-width/2) * scale,
				Y: float32(height) / divisor * scale,
				Z: float32(length/2-row) * scale,
			}
		}
	}

	return g, nil
}

// LoadGrid reads a heightmap bitmap from fs and decodes it.
// Every open, read or close failure is reported as ErrIO.
func LoadGrid(fs billy.Filesystem, path string, opts GridOptions) (*Grid, error) {
	resolved, err := resolvePath(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	f, err := fs.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrIO, resolved, err)
	}

	maxDim := opts.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultGridOptions().MaxDimension
	}

	bmp, err := formats.DecodeBitmap(f, maxDim)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, resolved, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing %s: %w", ErrIO, resolved, err)
	}

	return DecodeGrid(bmp, opts)
}

// resolvePath returns path if it exists, otherwise the first entry in the
// same directory whose name matches case-insensitively.
func resolvePath(fs billy.Filesystem, path string) (string, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return path, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	dir, base := filepath.Dir(path), filepath.Base(path)
	entries, derr := fs.ReadDir(dir)
	if derr != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), base) {
			return fs.Join(dir, e.Name()), nil
		}
	}
	return "", err
}
