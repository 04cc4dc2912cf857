// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig    `yaml:"window"`
	Heightmap   HeightmapConfig `yaml:"heightmap"`
	Mesh        MeshConfig      `yaml:"mesh"`
	Camera      CameraConfig    `yaml:"camera"`
	Light       LightConfig     `yaml:"light"`
	ClearColour Colour          `yaml:"clear_colour"`
	Logging     LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ShowFPS    bool   `yaml:"show_fps"`
}

// HeightmapConfig describes the source bitmap and how it is scaled.
type HeightmapConfig struct {
	Path          string  `yaml:"path"`
	GridSize      float32 `yaml:"grid_size"`
	HeightDivisor float32 `yaml:"height_divisor"`
	MaxDimension  int     `yaml:"max_dimension"`
}

// MeshConfig holds strip and normal policies.
type MeshConfig struct {
	RowOrder     string `yaml:"row_order"`     // zigzag | zigzag-last-row
	LastTriangle string `yaml:"last_triangle"` // reuse | compute
	Colour       Colour `yaml:"colour"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance     float32 `yaml:"distance"`
	MinDistance  float32 `yaml:"min_distance"`
	ZoomStep     float32 `yaml:"zoom_step"`
	RotationStep float32 `yaml:"rotation_step"` // radians per update
	FovDegrees   float32 `yaml:"fov_degrees"`
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
}

// LightConfig holds the single point light.
type LightConfig struct {
	Position [3]float32 `yaml:"position"`
	Colour   Colour     `yaml:"colour"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Heightmap",
			Width:      1280,
			Height:     640,
			Fullscreen: false,
			VSync:      true,
		},
		Heightmap: HeightmapConfig{
			Path:          "HeightMap.bmp",
			GridSize:      1.0,
			HeightDivisor: 16,
			MaxDimension:  4096,
		},
		Mesh: MeshConfig{
			RowOrder:     terrain.Zigzag.String(),
			LastTriangle: terrain.ReusePrevious.String(),
			Colour:       "#c8ffff",
		},
		Camera: CameraConfig{
			Distance:     50,
			MinDistance:  20,
			ZoomStep:     2,
			RotationStep: 0.01,
			FovDegrees:   45,
			Near:         1.5,
			Far:          5000,
		},
		Light: LightConfig{
			Position: [3]float32{100, 100, -100},
			Colour:   "#ffffff",
		},
		ClearColour: "#333399",
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// GridOptions converts the heightmap section for the loader.
func (c *Config) GridOptions() terrain.GridOptions {
	return terrain.GridOptions{
		GridSize:      c.Heightmap.GridSize,
		HeightDivisor: c.Heightmap.HeightDivisor,
		MaxDimension:  c.Heightmap.MaxDimension,
	}
}

// MeshOptions converts the mesh section for the mesh builder.
func (c *Config) MeshOptions() (terrain.MeshOptions, error) {
	order, err := terrain.ParseRowOrder(c.Mesh.RowOrder)
	if err != nil {
		return terrain.MeshOptions{}, err
	}
	last, err := terrain.ParseLastTriangle(c.Mesh.LastTriangle)
	if err != nil {
		return terrain.MeshOptions{}, err
	}
	colour, err := c.Mesh.Colour.RGBA8()
	if err != nil {
		return terrain.MeshOptions{}, err
	}
	return terrain.MeshOptions{
		RowOrder:     order,
		LastTriangle: last,
		Color:        colour,
	}, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Heightmap.Path == "" {
		return fmt.Errorf("%w: empty heightmap path", ErrInvalidConfig)
	}
	if c.Heightmap.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size %v", ErrInvalidConfig, c.Heightmap.GridSize)
	}
	if c.Heightmap.HeightDivisor <= 0 {
		return fmt.Errorf("%w: height_divisor %v", ErrInvalidConfig, c.Heightmap.HeightDivisor)
	}
	if c.Heightmap.MaxDimension <= 0 {
		return fmt.Errorf("%w: max_dimension %d", ErrInvalidConfig, c.Heightmap.MaxDimension)
	}
	if _, err := c.MeshOptions(); err != nil {
		return fmt.Errorf("%w: mesh: %w", ErrInvalidConfig, err)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("%w: fov_degrees %v", ErrInvalidConfig, c.Camera.FovDegrees)
	}
	if c.Camera.Distance <= 0 || c.Camera.ZoomStep < 0 {
		return fmt.Errorf("%w: camera distance %v step %v", ErrInvalidConfig, c.Camera.Distance, c.Camera.ZoomStep)
	}
	for name, col := range map[string]Colour{
		"light.colour": c.Light.Colour,
		"clear_colour": c.ClearColour,
	} {
		if _, err := col.Parse(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}
