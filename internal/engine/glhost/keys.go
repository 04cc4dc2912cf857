package glhost

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

var scancodes = map[app.Key]sdl.Scancode{
	app.KeyQ:      sdl.SCANCODE_Q,
	app.KeyA:      sdl.SCANCODE_A,
	app.KeyEscape: sdl.SCANCODE_ESCAPE,
}

// scancode returns the physical key for k, false if it has no mapping.
func scancode(k app.Key) (sdl.Scancode, bool) {
	sc, ok := scancodes[k]
	return sc, ok
}

// drawMode maps a mesh topology to its GL primitive.
func drawMode(t terrain.Topology) uint32 {
	switch t {
	case terrain.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}
