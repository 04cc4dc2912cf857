// Package app contains the heightmap viewer application and the host
// interfaces it renders through.
package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

// Buffer is an opaque handle to an uploaded vertex buffer.
type Buffer uint32

// Key identifies a keyboard key polled through Framework.IsKeyPressed.
type Key int

// Keys used by the viewer.
const (
	KeyUnknown Key = iota
	KeyQ
	KeyA
	KeyEscape
)

// Framework is the rendering host the application draws through.
type Framework interface {
	// CreateVertexBuffer uploads vertices into an immutable GPU buffer.
	CreateVertexBuffer(vertices []terrain.Vertex) (Buffer, error)
	ReleaseBuffer(buf Buffer)

	SetViewMatrix(m mgl32.Mat4)
	SetProjectionMatrix(m mgl32.Mat4)
	EnablePointLight(index int, position, colour mgl32.Vec3)
	Clear(colour mgl32.Vec4)
	DrawUntexturedLit(topology terrain.Topology, buf Buffer, vertexCount int)

	IsKeyPressed(key Key) bool
	// AspectRatio returns the drawable width divided by its height.
	AspectRatio() float32
}

// Host is a Framework that also owns the window and its event loop.
type Host interface {
	Framework

	// PollEvents drains pending window events and reports whether the
	// user asked to quit.
	PollEvents() (quit bool)
	Present()
	Close()
}

// Application is driven by Run once per frame.
type Application interface {
	Start(fw Framework) error
	Update(fw Framework)
	Render(fw Framework)
	Stop(fw Framework)
}
