package terrain

import "fmt"

// StripLength is the vertex count of a full strip over a width x length grid.
func StripLength(width, length int) int {
	return 2 * width * (length - 1)
}

// StripRow returns the vertex run joining grid rows r-1 and r, for r in
// [1, length-1].
//
// Odd rows run left to right as (current, previous) pairs; even rows run
// right to left as (previous, current) pairs, so consecutive runs meet at
// the same edge of the grid and the strip never doubles back across it.
func StripRow(g *Grid, r int, order RowOrder) ([]Sample, error) {
	if r < 1 || r >= g.length {
		return nil, fmt.Errorf("%w: strip row %d in %d-row grid", ErrOutOfBounds, r, g.length)
	}

	leftToRight := r%2 == 1
	if order == ZigzagWithLastRowSpecialCase && r == g.length-1 {
		leftToRight = true
	}

	run := make([]Sample, 0, 2*g.width)
	for i := 0; i < g.width; i++ {
		col := i
		if !leftToRight {
			col = g.width - 1 - i
		}

		current, err := g.At(col, r)
		if err != nil {
			return nil, err
		}
		previous, err := g.At(col, r-1)
		if err != nil {
			return nil, err
		}

		if leftToRight {
			run = append(run, current, previous)
		} else {
			run = append(run, previous, current)
		}
	}

	return run, nil
}

// BuildStrip walks every row pair of g and returns the full strip.
func BuildStrip(g *Grid, order RowOrder) ([]Sample, error) {
	if g.width < 2 || g.length < 2 {
		return nil, fmt.Errorf("%w: %dx%d grid has no quads", ErrDimensionMismatch, g.width, g.length)
	}

	want := StripLength(g.width, g.length)
	strip := make([]Sample, 0, want)
	for r := 1; r < g.length; r++ {
		run, err := StripRow(g, r, order)
		if err != nil {
			return nil, err
		}
		strip = append(strip, run...)
	}

	if len(strip) != want {
		return nil, fmt.Errorf("%w: strip has %d vertices, want %d", ErrDimensionMismatch, len(strip), want)
	}
	return strip, nil
}
