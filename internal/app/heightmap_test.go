package app

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/bmp"
	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"

	"github.com/Faultbox/heightmap-viewer/internal/config"
	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

// heightmapFS returns a filesystem holding a width x length HeightMap.bmp
// whose pixel at (x, y) has value 16*(x+y).
func heightmapFS(t *testing.T, width, length int) billy.Filesystem {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, length))
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			v := uint8(16 * (x + y))
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	fs := memfs.New()
	f, err := fs.Create("HeightMap.bmp")
	require.NoError(t, err)
	_, err = f.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return fs
}

func TestStart_UploadsStrip(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 4)))

	require.NoError(t, a.Start(host))

	require.Len(t, host.uploaded, 1)
	assert.Len(t, host.uploaded[0], 2*4*3)
	assert.Equal(t, 24, a.VertexCount())

	for _, v := range host.uploaded[0] {
		assert.Equal(t, [4]uint8{200, 255, 255, 255}, v.Color)
	}
}

func TestStart_LogsMeshSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	opts := DefaultOptions(heightmapFS(t, 4, 4))
	opts.Logger = zap.New(core)
	a := NewHeightMapApplication(opts)

	require.NoError(t, a.Start(newFakeHost()))

	built := logs.FilterMessage("mesh built").All()
	require.Len(t, built, 1)
	fields := built[0].ContextMap()
	assert.EqualValues(t, 24, fields["vertices"])

	// Heights are 16*(x+y)/16 = x+y; grid spans x in [-2, 1], z in [-1, 2].
	assert.Equal(t, []interface{}{float32(-2), float32(0), float32(-1)}, fields["bounds_min"])
	assert.Equal(t, []interface{}{float32(1), float32(6), float32(2)}, fields["bounds_max"])
}

func TestStart_MissingFile(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(memfs.New()))

	err := a.Start(host)
	assert.ErrorIs(t, err, terrain.ErrIO)
	assert.Empty(t, host.calls)

	// Nothing was uploaded, so nothing is drawn or released.
	a.Render(host)
	a.Stop(host)
	assert.Empty(t, host.draws)
	assert.Empty(t, host.released)
}

func TestStart_GridTooSmall(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 1)))

	err := a.Start(host)
	assert.ErrorIs(t, err, terrain.ErrDimensionMismatch)
	assert.Empty(t, host.uploaded)
}

func TestStart_UploadFailure(t *testing.T) {
	host := newFakeHost()
	host.uploadErr = errUpload
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 2)))

	assert.ErrorIs(t, a.Start(host), errUpload)
	assert.Zero(t, a.VertexCount())
}

func TestStart_Twice(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 2)))

	require.NoError(t, a.Start(host))
	assert.Error(t, a.Start(host))
	assert.Len(t, host.uploaded, 1)
}

func TestUpdate_RotatesAndZooms(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(memfs.New()))
	cam := a.Camera()

	a.Update(host)
	assert.InDelta(t, 0.01, float64(cam.Angle), 1e-6)
	assert.Equal(t, float32(50), cam.Distance)

	host.keys[KeyQ] = true
	for i := 0; i < 20; i++ {
		a.Update(host)
	}
	// Zoom-in stops once the distance reaches 20.
	assert.Equal(t, float32(20), cam.Distance)

	host.keys[KeyQ] = false
	host.keys[KeyA] = true
	a.Update(host)
	assert.Equal(t, float32(22), cam.Distance)

	// Both keys held: zoom in then out, net zero.
	host.keys[KeyQ] = true
	a.Update(host)
	assert.Equal(t, float32(22), cam.Distance)
}

func TestRender_Sequence(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 3)))
	require.NoError(t, a.Start(host))
	host.calls = nil

	a.Render(host)

	assert.Equal(t, []string{"view", "projection", "light", "clear", "draw"}, host.calls)
	assert.Equal(t, a.Camera().ViewMatrix(), host.view)
	assert.Equal(t, a.Camera().ProjectionMatrix(2), host.projection)
	assert.Equal(t, mgl32.Vec3{100, 100, -100}, host.lightPos)
	assert.Equal(t, mgl32.Vec4{0.2, 0.2, 0.6, 1}, host.clear)

	require.Len(t, host.draws, 1)
	assert.Equal(t, drawCall{terrain.TriangleStrip, 1, 16}, host.draws[0])
}

func TestStop_ReleasesOnce(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 2)))
	require.NoError(t, a.Start(host))

	a.Stop(host)
	a.Stop(host)

	assert.Equal(t, []Buffer{1}, host.released)
	assert.Zero(t, a.VertexCount())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Heightmap.Path = "maps/island.bmp"
	cfg.Heightmap.GridSize = 2
	cfg.Mesh.LastTriangle = "compute"
	cfg.Camera.Distance = 80
	cfg.Camera.FovDegrees = 60
	cfg.Light.Colour = "#ff0000"

	opts, err := OptionsFromConfig(cfg, memfs.New())
	require.NoError(t, err)

	assert.Equal(t, "maps/island.bmp", opts.Path)
	assert.Equal(t, float32(2), opts.Grid.GridSize)
	assert.Equal(t, terrain.ComputeFinal, opts.Mesh.LastTriangle)
	assert.Equal(t, float32(80), opts.Camera.Distance)
	assert.InDelta(t, float64(mgl32.DegToRad(60)), float64(opts.Camera.FovY), 1e-6)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, opts.LightColour)
	assert.Equal(t, mgl32.Vec3{100, 100, -100}, opts.LightPosition)

	cfg.Mesh.RowOrder = "spiral"
	_, err = OptionsFromConfig(cfg, memfs.New())
	assert.ErrorIs(t, err, terrain.ErrUnknownPolicy)
}
