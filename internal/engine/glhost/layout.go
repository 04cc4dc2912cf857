package glhost

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

type vertexAttrib struct {
	location   uint32
	size       int32
	xtype      uint32
	normalized bool
	offset     uintptr
}

// vertexAttribs matches terrain.Vertex and the inputs of lit.vert.
var vertexAttribs = []vertexAttrib{
	{location: 0, size: 3, xtype: gl.FLOAT, offset: unsafe.Offsetof(terrain.Vertex{}.Position)},
	{location: 1, size: 4, xtype: gl.UNSIGNED_BYTE, normalized: true, offset: unsafe.Offsetof(terrain.Vertex{}.Color)},
	{location: 2, size: 3, xtype: gl.FLOAT, offset: unsafe.Offsetof(terrain.Vertex{}.Normal)},
}
