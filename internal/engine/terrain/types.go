// Package terrain turns a bitmap heightmap into a lit triangle-strip mesh.
package terrain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/heightmap-viewer/pkg/math"
)

// Terrain errors.
var (
	ErrIO                = errors.New("heightmap i/o error")
	ErrDimensionMismatch = errors.New("grid dimension mismatch")
	ErrOutOfBounds       = errors.New("grid index out of bounds")
	ErrUnknownPolicy     = errors.New("unknown mesh policy")
)

// Sample is one height sample in world units. Y is up.
type Sample = math.Vec3

// Vertex is the packed render vertex uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Color    [4]uint8
	Normal   [3]float32
}

// VertexSize is the byte stride of Vertex.
const VertexSize = 3*4 + 4 + 3*4

// Topology selects how the vertex buffer is assembled into triangles.
type Topology int

const (
	TriangleList Topology = iota
	TriangleStrip
)

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh holds the finished vertex array and what is needed to draw it.
type Mesh struct {
	Vertices []Vertex
	Topology Topology
	Bounds   Bounds
	Normals  NormalStats
}

// RowOrder selects how grid rows are threaded into the strip.
type RowOrder int

const (
	// Zigzag alternates direction every row: odd rows run left to right,
	// even rows right to left.
	Zigzag RowOrder = iota
	// ZigzagWithLastRowSpecialCase is Zigzag except that the final row is
	// always emitted left to right as (current, previous) pairs.
	ZigzagWithLastRowSpecialCase
)

var rowOrderNames = map[RowOrder]string{
	Zigzag:                       "zigzag",
	ZigzagWithLastRowSpecialCase: "zigzag-last-row",
}

func (o RowOrder) String() string {
	if s, ok := rowOrderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("RowOrder(%d)", int(o))
}

// ParseRowOrder parses the config spelling of a RowOrder.
func ParseRowOrder(s string) (RowOrder, error) {
	for o, name := range rowOrderNames {
		if strings.EqualFold(s, name) {
			return o, nil
		}
	}
	return Zigzag, fmt.Errorf("%w: row order %q", ErrUnknownPolicy, s)
}

// LastTriangle selects how vertices past the final computed triangle get
// their normal.
type LastTriangle int

const (
	// ReusePrevious computes triangles only while start < count-3, so the
	// trailing vertices keep the last normal computed.
	ReusePrevious LastTriangle = iota
	// ComputeFinal computes every full triangle and gives any leftover
	// vertices the normal of the strip triangle ending at the last vertex.
	ComputeFinal
)

var lastTriangleNames = map[LastTriangle]string{
	ReusePrevious: "reuse",
	ComputeFinal:  "compute",
}

func (p LastTriangle) String() string {
	if s, ok := lastTriangleNames[p]; ok {
		return s
	}
	return fmt.Sprintf("LastTriangle(%d)", int(p))
}

// ParseLastTriangle parses the config spelling of a LastTriangle policy.
func ParseLastTriangle(s string) (LastTriangle, error) {
	for p, name := range lastTriangleNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return ReusePrevious, fmt.Errorf("%w: last triangle %q", ErrUnknownPolicy, s)
}

// GridOptions controls how bitmap pixels become world-space samples.
type GridOptions struct {
	GridSize      float32 // World units between neighbouring samples
	HeightDivisor float32 // Pixel byte is divided by this before scaling
	MaxDimension  int     // Largest accepted width or length
}

// DefaultGridOptions returns the stock decode settings.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		GridSize:      1.0,
		HeightDivisor: 16,
		MaxDimension:  4096,
	}
}

// MeshOptions controls strip ordering, normals and vertex colour.
type MeshOptions struct {
	RowOrder     RowOrder
	LastTriangle LastTriangle
	Color        [4]uint8
}

// DefaultMeshOptions returns the stock mesh settings.
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		RowOrder:     Zigzag,
		LastTriangle: ReusePrevious,
		Color:        [4]uint8{200, 255, 255, 255},
	}
}
