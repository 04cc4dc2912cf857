package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// colOf recovers the grid column from a sample of a unit-spaced grid.
func colOf(s Sample, width int) int { return int(s.X) + width/2 }

// rowOf recovers the grid row from a sample of a unit-spaced grid.
func rowOf(s Sample, length int) int { return length/2 - int(s.Z) }

func TestBuildStrip_Length(t *testing.T) {
	for width := 2; width <= 6; width++ {
		for length := 2; length <= 6; length++ {
			strip, err := BuildStrip(flatGrid(t, width, length), Zigzag)
			require.NoError(t, err)
			assert.Len(t, strip, 2*width*(length-1), "%dx%d grid", width, length)
			assert.Equal(t, StripLength(width, length), len(strip))
		}
	}
}

func TestStripRow_Alternates(t *testing.T) {
	const width, length = 4, 5
	g := flatGrid(t, width, length)

	for r := 1; r < length; r++ {
		run, err := StripRow(g, r, Zigzag)
		require.NoError(t, err)
		require.Len(t, run, 2*width)

		for i := 0; i < width; i++ {
			first, second := run[2*i], run[2*i+1]

			wantCol := i
			wantFirstRow, wantSecondRow := r, r-1
			if r%2 == 0 {
				wantCol = width - 1 - i
				wantFirstRow, wantSecondRow = r-1, r
			}

			assert.Equal(t, wantCol, colOf(first, width), "row %d pair %d column", r, i)
			assert.Equal(t, wantCol, colOf(second, width), "row %d pair %d column", r, i)
			assert.Equal(t, wantFirstRow, rowOf(first, length), "row %d pair %d first vertex", r, i)
			assert.Equal(t, wantSecondRow, rowOf(second, length), "row %d pair %d second vertex", r, i)
		}
	}
}

func TestStripRow_ConsecutiveRowsShareAnEdge(t *testing.T) {
	const width, length = 3, 4
	strip, err := BuildStrip(flatGrid(t, width, length), Zigzag)
	require.NoError(t, err)

	// The last vertex of one run and the first of the next sit in the same
	// column, so the strip never jumps across the grid.
	for r := 1; r < length-1; r++ {
		end := strip[2*width*r-1]
		start := strip[2*width*r]
		assert.Equal(t, colOf(end, width), colOf(start, width), "seam after row %d", r)
	}
}

func TestStripRow_LastRowSpecialCase(t *testing.T) {
	const width, length = 3, 3
	g := flatGrid(t, width, length)

	zigzag, err := StripRow(g, 2, Zigzag)
	require.NoError(t, err)
	special, err := StripRow(g, 2, ZigzagWithLastRowSpecialCase)
	require.NoError(t, err)

	assert.Equal(t, width-1, colOf(zigzag[0], width))
	assert.Equal(t, 0, colOf(special[0], width))
	assert.Equal(t, 2, rowOf(special[0], length), "current row comes first")
	assert.Equal(t, 1, rowOf(special[1], length))

	// Rows before the last are unaffected.
	a, err := StripRow(g, 1, Zigzag)
	require.NoError(t, err)
	b, err := StripRow(g, 1, ZigzagWithLastRowSpecialCase)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStripRow_OutOfRange(t *testing.T) {
	g := flatGrid(t, 3, 3)

	for _, r := range []int{0, 3, -1} {
		_, err := StripRow(g, r, Zigzag)
		assert.ErrorIs(t, err, ErrOutOfBounds, "row %d", r)
	}
}

func TestBuildStrip_TooSmall(t *testing.T) {
	tests := []struct {
		name          string
		width, length int
	}{
		{"single column", 1, 4},
		{"single row", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildStrip(flatGrid(t, tt.width, tt.length), Zigzag)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
}

func TestParseRowOrder(t *testing.T) {
	o, err := ParseRowOrder("zigzag")
	require.NoError(t, err)
	assert.Equal(t, Zigzag, o)

	o, err = ParseRowOrder("Zigzag-Last-Row")
	require.NoError(t, err)
	assert.Equal(t, ZigzagWithLastRowSpecialCase, o)

	_, err = ParseRowOrder("spiral")
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	assert.Equal(t, "zigzag-last-row", ZigzagWithLastRowSpecialCase.String())
}
