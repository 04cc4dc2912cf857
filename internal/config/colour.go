package config

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colour is an opaque sRGB colour written as "#rrggbb" or "#rgb".
type Colour string

// Parse decodes the hex string.
func (c Colour) Parse() (colorful.Color, error) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colour %q: %w", string(c), err)
	}
	return col, nil
}

// RGBA8 returns the colour as bytes with full alpha.
func (c Colour) RGBA8() ([4]uint8, error) {
	col, err := c.Parse()
	if err != nil {
		return [4]uint8{}, err
	}
	r, g, b := col.RGB255()
	return [4]uint8{r, g, b, 255}, nil
}

// RGBA returns the colour as floats in [0, 1] with full alpha.
func (c Colour) RGBA() ([4]float32, error) {
	col, err := c.Parse()
	if err != nil {
		return [4]float32{}, err
	}
	col = col.Clamped()
	return [4]float32{float32(col.R), float32(col.G), float32(col.B), 1}, nil
}
