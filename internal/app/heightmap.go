package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	billy "gopkg.in/src-d/go-billy.v4"

	"github.com/Faultbox/heightmap-viewer/internal/config"
	"github.com/Faultbox/heightmap-viewer/internal/engine/camera"
	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

// Options configures a HeightMapApplication.
type Options struct {
	FS   billy.Filesystem
	Path string

	Grid terrain.GridOptions
	Mesh terrain.MeshOptions

	Camera        *camera.OrbitCamera
	LightPosition mgl32.Vec3
	LightColour   mgl32.Vec3
	ClearColour   mgl32.Vec4

	Logger *zap.Logger
}

// DefaultOptions returns the stock viewer settings reading from fs.
func DefaultOptions(fs billy.Filesystem) Options {
	return Options{
		FS:            fs,
		Path:          "HeightMap.bmp",
		Grid:          terrain.DefaultGridOptions(),
		Mesh:          terrain.DefaultMeshOptions(),
		Camera:        camera.NewOrbitCamera(),
		LightPosition: mgl32.Vec3{100, 100, -100},
		LightColour:   mgl32.Vec3{1, 1, 1},
		ClearColour:   mgl32.Vec4{0.2, 0.2, 0.6, 1},
	}
}

// OptionsFromConfig converts a validated config.
func OptionsFromConfig(cfg *config.Config, fs billy.Filesystem) (Options, error) {
	meshOpts, err := cfg.MeshOptions()
	if err != nil {
		return Options{}, err
	}
	light, err := cfg.Light.Colour.RGBA()
	if err != nil {
		return Options{}, err
	}
	background, err := cfg.ClearColour.RGBA()
	if err != nil {
		return Options{}, err
	}

	cam := camera.NewOrbitCamera()
	cam.Distance = cfg.Camera.Distance
	cam.MinDistance = cfg.Camera.MinDistance
	cam.ZoomStep = cfg.Camera.ZoomStep
	cam.RotationStep = cfg.Camera.RotationStep
	cam.FovY = mgl32.DegToRad(cfg.Camera.FovDegrees)
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far

	return Options{
		FS:            fs,
		Path:          cfg.Heightmap.Path,
		Grid:          cfg.GridOptions(),
		Mesh:          meshOpts,
		Camera:        cam,
		LightPosition: mgl32.Vec3(cfg.Light.Position),
		LightColour:   mgl32.Vec3{light[0], light[1], light[2]},
		ClearColour:   mgl32.Vec4(background),
	}, nil
}

// HeightMapApplication loads a heightmap, uploads it as a lit triangle
// strip and orbits the camera around it.
type HeightMapApplication struct {
	opts   Options
	log    *zap.Logger
	camera *camera.OrbitCamera

	buffer      Buffer
	topology    terrain.Topology
	vertexCount int
	started     bool
}

// NewHeightMapApplication creates an application that has not started yet.
func NewHeightMapApplication(opts Options) *HeightMapApplication {
	log := opts.Logger
	if log == nil {
		log = logger.Named("app")
	}
	cam := opts.Camera
	if cam == nil {
		cam = camera.NewOrbitCamera()
	}
	return &HeightMapApplication{
		opts:   opts,
		log:    log,
		camera: cam,
	}
}

// Camera returns the orbit camera driven by Update.
func (a *HeightMapApplication) Camera() *camera.OrbitCamera {
	return a.camera
}

// VertexCount returns the number of uploaded vertices, 0 before Start.
func (a *HeightMapApplication) VertexCount() int {
	return a.vertexCount
}

// Start loads the grid, builds the mesh and uploads it. The host-side
// vertex array is dropped once the buffer exists.
func (a *HeightMapApplication) Start(fw Framework) error {
	if a.started {
		return fmt.Errorf("heightmap application already started")
	}

	grid, err := terrain.LoadGrid(a.opts.FS, a.opts.Path, a.opts.Grid)
	if err != nil {
		return fmt.Errorf("loading heightmap: %w", err)
	}
	lo, hi := grid.HeightRange()
	a.log.Debug("heightmap loaded",
		zap.String("path", a.opts.Path),
		zap.Int("width", grid.Width()),
		zap.Int("length", grid.Length()),
		zap.Float32("min_height", lo),
		zap.Float32("max_height", hi))

	mesh, err := terrain.BuildMesh(grid, a.opts.Mesh)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}
	a.log.Info("mesh built",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Stringer("row_order", a.opts.Mesh.RowOrder),
		zap.Stringer("last_triangle", a.opts.Mesh.LastTriangle),
		zap.Int("normals", mesh.Normals.Computed),
		zap.Int("degenerate", mesh.Normals.Degenerate),
		zap.Int("reused", mesh.Normals.Reused),
		zap.Float32s("bounds_min", mesh.Bounds.Min[:]),
		zap.Float32s("bounds_max", mesh.Bounds.Max[:]))
	if mesh.Normals.Degenerate > 0 {
		a.log.Debug("degenerate triangles use the up vector", zap.Int("count", mesh.Normals.Degenerate))
	}

	buf, err := fw.CreateVertexBuffer(mesh.Vertices)
	if err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}

	a.buffer = buf
	a.topology = mesh.Topology
	a.vertexCount = len(mesh.Vertices)
	a.started = true
	return nil
}

// Update advances the orbit and applies Q/A zoom.
func (a *HeightMapApplication) Update(fw Framework) {
	a.camera.Advance()

	if fw.IsKeyPressed(KeyQ) {
		a.camera.ZoomIn()
	}
	if fw.IsKeyPressed(KeyA) {
		a.camera.ZoomOut()
	}
}

// Render sets up the camera and light, clears and draws the strip.
func (a *HeightMapApplication) Render(fw Framework) {
	fw.SetViewMatrix(a.camera.ViewMatrix())
	fw.SetProjectionMatrix(a.camera.ProjectionMatrix(fw.AspectRatio()))
	fw.EnablePointLight(0, a.opts.LightPosition, a.opts.LightColour)
	fw.Clear(a.opts.ClearColour)

	if !a.started {
		return
	}
	fw.DrawUntexturedLit(a.topology, a.buffer, a.vertexCount)
}

// Stop releases the vertex buffer. Calling it twice is a no-op.
func (a *HeightMapApplication) Stop(fw Framework) {
	if !a.started {
		return
	}
	fw.ReleaseBuffer(a.buffer)
	a.buffer = 0
	a.vertexCount = 0
	a.started = false
}
