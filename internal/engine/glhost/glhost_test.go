package glhost

import (
	"testing"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, uintptr(terrain.VertexSize), unsafe.Sizeof(terrain.Vertex{}))

	offsets := make([]uintptr, len(vertexAttribs))
	for i, a := range vertexAttribs {
		offsets[i] = a.offset
		assert.Equal(t, uint32(i), a.location)
	}
	assert.Equal(t, []uintptr{0, 12, 16}, offsets)
	assert.True(t, vertexAttribs[1].normalized, "colour bytes are normalized to [0, 1]")
}

func TestScancode(t *testing.T) {
	sc, ok := scancode(app.KeyQ)
	assert.True(t, ok)
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_Q), sc)

	sc, ok = scancode(app.KeyA)
	assert.True(t, ok)
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_A), sc)

	_, ok = scancode(app.KeyUnknown)
	assert.False(t, ok)
}

func TestDrawMode(t *testing.T) {
	assert.Equal(t, uint32(gl.TRIANGLE_STRIP), drawMode(terrain.TriangleStrip))
	assert.Equal(t, uint32(gl.TRIANGLES), drawMode(terrain.TriangleList))
}

func TestShadersEmbedded(t *testing.T) {
	assert.Contains(t, litVertexSource, "#version 410 core")
	assert.Contains(t, litVertexSource, "uProjection")
	assert.Contains(t, litFragmentSource, "uLightPos")
}
