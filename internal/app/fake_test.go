package app

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

type drawCall struct {
	topology    terrain.Topology
	buffer      Buffer
	vertexCount int
}

// fakeHost records every call made through Framework and Host.
type fakeHost struct {
	calls    []string
	uploaded [][]terrain.Vertex
	released []Buffer
	draws    []drawCall
	keys     map[Key]bool

	view, projection mgl32.Mat4
	lightPos         mgl32.Vec3
	clear            mgl32.Vec4

	uploadErr  error
	nextBuffer Buffer

	framesBeforeQuit int
	polls            int
	presents         int
}

func newFakeHost() *fakeHost {
	return &fakeHost{keys: map[Key]bool{}, nextBuffer: 1}
}

var errUpload = errors.New("out of video memory")

func (f *fakeHost) CreateVertexBuffer(vertices []terrain.Vertex) (Buffer, error) {
	f.calls = append(f.calls, "create")
	if f.uploadErr != nil {
		return 0, f.uploadErr
	}
	f.uploaded = append(f.uploaded, vertices)
	buf := f.nextBuffer
	f.nextBuffer++
	return buf, nil
}

func (f *fakeHost) ReleaseBuffer(buf Buffer) {
	f.calls = append(f.calls, "release")
	f.released = append(f.released, buf)
}

func (f *fakeHost) SetViewMatrix(m mgl32.Mat4) {
	f.calls = append(f.calls, "view")
	f.view = m
}

func (f *fakeHost) SetProjectionMatrix(m mgl32.Mat4) {
	f.calls = append(f.calls, "projection")
	f.projection = m
}

func (f *fakeHost) EnablePointLight(index int, position, colour mgl32.Vec3) {
	f.calls = append(f.calls, "light")
	f.lightPos = position
}

func (f *fakeHost) Clear(colour mgl32.Vec4) {
	f.calls = append(f.calls, "clear")
	f.clear = colour
}

func (f *fakeHost) DrawUntexturedLit(topology terrain.Topology, buf Buffer, vertexCount int) {
	f.calls = append(f.calls, "draw")
	f.draws = append(f.draws, drawCall{topology, buf, vertexCount})
}

func (f *fakeHost) IsKeyPressed(key Key) bool { return f.keys[key] }

func (f *fakeHost) AspectRatio() float32 { return 2 }

func (f *fakeHost) PollEvents() bool {
	f.polls++
	return f.polls > f.framesBeforeQuit
}

func (f *fakeHost) Present() { f.presents++ }

func (f *fakeHost) Close() {}
