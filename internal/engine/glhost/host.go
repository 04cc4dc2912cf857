package glhost

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

// ErrEmptyBuffer is returned when asked to upload no vertices.
var ErrEmptyBuffer = errors.New("empty vertex buffer")

// ambient is added to the point light so unlit slopes stay visible.
var ambient = mgl32.Vec3{0.15, 0.15, 0.15}

type vertexBuffer struct {
	vao uint32
	vbo uint32
}

type pointLight struct {
	enabled  bool
	position mgl32.Vec3
	colour   mgl32.Vec3
}

// Host is an app.Host backed by an SDL2 window and a GL 4.1 context.
type Host struct {
	log     *zap.Logger
	win     *window
	program *litProgram

	buffers map[app.Buffer]vertexBuffer

	view       mgl32.Mat4
	projection mgl32.Mat4
	light      pointLight

	width, height int32
	keys          []uint8
}

var _ app.Host = (*Host)(nil)

// New opens the window, initialises GL and compiles the lit shader.
func New(cfg Config, log *zap.Logger) (*Host, error) {
	if log == nil {
		log = zap.NewNop()
	}

	win, err := openWindow(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		win.close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := newLitProgram()
	if err != nil {
		win.close()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	h := &Host{
		log:        log,
		win:        win,
		program:    program,
		buffers:    make(map[app.Buffer]vertexBuffer),
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		keys:       sdl.GetKeyboardState(),
	}
	h.resize()
	return h, nil
}

// Close deletes every GL object still alive and destroys the window.
func (h *Host) Close() {
	h.log.Info("closing host", zap.Int("live_buffers", len(h.buffers)))
	for id := range h.buffers {
		h.ReleaseBuffer(id)
	}
	h.program.delete()
	h.win.close()
}

// CreateVertexBuffer uploads vertices into a static VBO with its own VAO.
func (h *Host) CreateVertexBuffer(vertices []terrain.Vertex) (app.Buffer, error) {
	if len(vertices) == 0 {
		return 0, ErrEmptyBuffer
	}

	var vb vertexBuffer
	gl.GenVertexArrays(1, &vb.vao)
	gl.BindVertexArray(vb.vao)

	gl.GenBuffers(1, &vb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	stride := int32(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	for _, a := range vertexAttribs {
		gl.VertexAttribPointerWithOffset(a.location, a.size, a.xtype, a.normalized, stride, a.offset)
		gl.EnableVertexAttribArray(a.location)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &vb.vbo)
		gl.DeleteVertexArrays(1, &vb.vao)
		return 0, fmt.Errorf("uploading %d vertices: GL error 0x%x", len(vertices), code)
	}

	id := app.Buffer(vb.vao)
	h.buffers[id] = vb
	h.log.Debug("vertex buffer created",
		zap.Uint32("vao", vb.vao),
		zap.Int("vertices", len(vertices)),
		zap.Int("bytes", len(vertices)*int(stride)))
	return id, nil
}

// ReleaseBuffer deletes a buffer created by CreateVertexBuffer.
func (h *Host) ReleaseBuffer(id app.Buffer) {
	vb, ok := h.buffers[id]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &vb.vbo)
	gl.DeleteVertexArrays(1, &vb.vao)
	delete(h.buffers, id)
}

func (h *Host) SetViewMatrix(m mgl32.Mat4)       { h.view = m }
func (h *Host) SetProjectionMatrix(m mgl32.Mat4) { h.projection = m }

// EnablePointLight sets the single supported light. Other indices are ignored.
func (h *Host) EnablePointLight(index int, position, colour mgl32.Vec3) {
	if index != 0 {
		h.log.Debug("ignoring point light", zap.Int("index", index))
		return
	}
	h.light = pointLight{enabled: true, position: position, colour: colour}
}

// Clear clears colour and depth.
func (h *Host) Clear(colour mgl32.Vec4) {
	gl.ClearColor(colour[0], colour[1], colour[2], colour[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawUntexturedLit draws vertexCount vertices of a buffer with the lit shader.
func (h *Host) DrawUntexturedLit(topology terrain.Topology, id app.Buffer, vertexCount int) {
	vb, ok := h.buffers[id]
	if !ok || vertexCount <= 0 {
		return
	}

	p := h.program
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.locView, 1, false, &h.view[0])
	gl.UniformMatrix4fv(p.locProjection, 1, false, &h.projection[0])
	gl.Uniform3f(p.locAmbient, ambient[0], ambient[1], ambient[2])
	if h.light.enabled {
		gl.Uniform1i(p.locLightOn, 1)
		gl.Uniform3f(p.locLightPos, h.light.position[0], h.light.position[1], h.light.position[2])
		gl.Uniform3f(p.locLightColour, h.light.colour[0], h.light.colour[1], h.light.colour[2])
	} else {
		gl.Uniform1i(p.locLightOn, 0)
	}

	gl.BindVertexArray(vb.vao)
	gl.DrawArrays(drawMode(topology), 0, int32(vertexCount))
	gl.BindVertexArray(0)
}

// IsKeyPressed reports whether k is currently held down.
func (h *Host) IsKeyPressed(k app.Key) bool {
	sc, ok := scancode(k)
	if !ok || int(sc) >= len(h.keys) {
		return false
	}
	return h.keys[sc] != 0
}

// AspectRatio returns the drawable width over height.
func (h *Host) AspectRatio() float32 {
	if h.height == 0 {
		return 1
	}
	return float32(h.width) / float32(h.height)
}

// PollEvents drains SDL events. Window close and ESC request quit.
func (h *Host) PollEvents() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				h.resize()
			}
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				quit = true
			}
		}
	}
	h.keys = sdl.GetKeyboardState()
	return quit
}

// Present swaps the back buffer.
func (h *Host) Present() {
	h.win.swap()
}

func (h *Host) resize() {
	h.width, h.height = h.win.drawableSize()
	gl.Viewport(0, 0, h.width, h.height)
	h.log.Debug("viewport resized", zap.Int32("width", h.width), zap.Int32("height", h.height))
}
