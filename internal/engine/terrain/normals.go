package terrain

import (
	"fmt"

	"github.com/Faultbox/heightmap-viewer/pkg/math"
)

// degenerateEpsilon is the shortest cross product still treated as a face.
const degenerateEpsilon = 1e-6

// NormalStats counts how each vertex in a strip got its normal.
type NormalStats struct {
	Computed   int // Triangles whose normal was computed
	Degenerate int // Computed triangles that fell back to +Y
	Reused     int // Vertices that kept an earlier triangle's normal
}

// FaceNormal returns the unit normal of the triangle starting at strip
// index start. Even starts use (v0, v1, v2), odd starts (v2, v1, v0),
// since a strip flips winding every triangle. ok is false when the
// triangle is degenerate, in which case +Y is returned.
func FaceNormal(strip []Sample, start int) (n math.Vec3, ok bool, err error) {
	if start < 0 || start+2 >= len(strip) {
		return math.Up, false, fmt.Errorf("%w: triangle at %d in %d-vertex strip", ErrOutOfBounds, start, len(strip))
	}

	a, b, c := strip[start], strip[start+1], strip[start+2]
	if start%2 == 1 {
		a, c = c, a
	}

	n, ok = a.Sub(b).Cross(b.Sub(c)).Normalize(degenerateEpsilon)
	if !ok {
		return math.Up, false, nil
	}
	return n, true, nil
}

// ApplyNormals packs strip into render vertices, computing one face normal
// per group of three vertices and writing it to each vertex of the group.
func ApplyNormals(strip []Sample, color [4]uint8, policy LastTriangle) ([]Vertex, NormalStats, error) {
	var stats NormalStats
	count := len(strip)
	vertices := make([]Vertex, count)
	normal := math.Up
	fresh := 0 // vertices left that belong to the last computed triangle

	for i := 0; i < count; i++ {
		if i%3 == 0 {
			start := -1
			switch {
			case policy == ReusePrevious && i < count-3:
				start = i
			case policy == ComputeFinal && i+2 < count:
				start = i
			case policy == ComputeFinal && count >= 3:
				start = count - 3
			}

			if start >= 0 {
				n, ok, err := FaceNormal(strip, start)
				if err != nil {
					return nil, stats, err
				}
				normal = n
				stats.Computed++
				if !ok {
					stats.Degenerate++
				}
				fresh = 3
			}
		}

		if fresh > 0 {
			fresh--
		} else {
			stats.Reused++
		}

		vertices[i] = Vertex{
			Position: strip[i].Array(),
			Color:    color,
			Normal:   normal.Array(),
		}
	}

	return vertices, stats, nil
}
