// Package formats provides the fixed-layout bitmap reader used for heightmaps.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Bitmap format errors.
var (
	ErrTruncatedBitmapData     = errors.New("truncated bitmap data")
	ErrInvalidBitmapDimensions = errors.New("invalid bitmap dimensions")
)

// BytesPerPixel is the fixed pixel stride assumed by the reader.
// Declared bit depth and row padding are not consulted.
const BytesPerPixel = 3

// MaxBitmapDimension bounds width and height accepted by ParseBitmap.
const MaxBitmapDimension = 4096

// BitmapFileHeader is the 14-byte file header.
type BitmapFileHeader struct {
	Magic       [2]byte // "BM" for well-formed files; not enforced
	FileSize    uint32
	Reserved1   uint16
	Reserved2   uint16
	PixelOffset uint32 // Offset of the pixel block from the start of the file
}

// BitmapInfoHeader is the 40-byte info header.
type BitmapInfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// BitmapHeader holds both headers in file order.
type BitmapHeader struct {
	File BitmapFileHeader
	Info BitmapInfoHeader
}

// Bitmap is a decoded header plus its raw pixel block.
// Rows are stored bottom-up as they appear in the file.
type Bitmap struct {
	Header BitmapHeader
	Width  int
	Height int
	Pixels []byte // Width*Height*BytesPerPixel bytes
}

// PixelDataSize returns the byte length of a width x height pixel block.
func PixelDataSize(width, height int) int {
	return width * height * BytesPerPixel
}

// Validate checks the declared dimensions before anything is allocated.
func (h *BitmapHeader) Validate(maxDimension int) error {
	w, ht := int(h.Info.Width), int(h.Info.Height)
	if w <= 0 || ht <= 0 || w > maxDimension || ht > maxDimension {
		return fmt.Errorf("%w: %dx%d (max %d)", ErrInvalidBitmapDimensions, w, ht, maxDimension)
	}
	return nil
}

// ReadBitmapHeader reads the file header followed by the info header.
func ReadBitmapHeader(r io.Reader) (*BitmapHeader, error) {
	var h BitmapHeader
	if err := binary.Read(r, binary.LittleEndian, &h.File); err != nil {
		return nil, fmt.Errorf("%w: reading file header", ErrTruncatedBitmapData)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Info); err != nil {
		return nil, fmt.Errorf("%w: reading info header", ErrTruncatedBitmapData)
	}
	return &h, nil
}

// DecodeBitmap reads both headers, seeks to the pixel block and reads exactly
// width*height*3 bytes from it.
func DecodeBitmap(r io.ReadSeeker, maxDimension int) (*Bitmap, error) {
	h, err := ReadBitmapHeader(r)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(maxDimension); err != nil {
		return nil, err
	}

	bmp := &Bitmap{
		Header: *h,
		Width:  int(h.Info.Width),
		Height: int(h.Info.Height),
	}

	if _, err := r.Seek(int64(h.File.PixelOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to pixel data at %d: %w", ErrTruncatedBitmapData, h.File.PixelOffset, err)
	}

	size := PixelDataSize(bmp.Width, bmp.Height)
	bmp.Pixels = make([]byte, size)
	n, err := io.ReadFull(r, bmp.Pixels)
	if err != nil {
		return nil, fmt.Errorf("%w: read %d of %d pixel bytes", ErrTruncatedBitmapData, n, size)
	}

	return bmp, nil
}

// ParseBitmap parses a bitmap from raw bytes.
func ParseBitmap(data []byte) (*Bitmap, error) {
	return DecodeBitmap(bytes.NewReader(data), MaxBitmapDimension)
}

// HeightByte returns the first byte of the pixel at (col, row), where row
// counts bottom-up in file order.
func (b *Bitmap) HeightByte(col, row int) (byte, bool) {
	if col < 0 || row < 0 || col >= b.Width || row >= b.Height {
		return 0, false
	}
	i := (row*b.Width + col) * BytesPerPixel
	if i >= len(b.Pixels) {
		return 0, false
	}
	return b.Pixels[i], true
}
