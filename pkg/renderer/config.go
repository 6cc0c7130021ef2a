package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Config contains canvas, viewport and scheduling settings for a render
type Config struct {
	Width            int     // Canvas width in pixels
	Height           int     // Canvas height in pixels
	ViewportSize     float64 // Side length of the square viewport in world units
	ProjectionPlaneD float64 // Distance from the camera to the projection plane
	MaxDepth         int     // Maximum reflection bounces
	TileSize         int     // Size of each tile for parallel rendering
	NumWorkers       int     // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:            400,
		Height:           400,
		ViewportSize:     1.0,
		ProjectionPlaneD: 1.0,
		MaxDepth:         3,
		TileSize:         64,
		NumWorkers:       0, // Auto-detect CPU count
	}
}

// Validate checks that the configuration describes a renderable canvas
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	if !isPositiveFinite(c.ViewportSize) {
		return fmt.Errorf("viewport size must be positive, got %v", c.ViewportSize)
	}
	if !isPositiveFinite(c.ProjectionPlaneD) {
		return fmt.Errorf("projection plane distance must be positive, got %v", c.ProjectionPlaneD)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// MergeConfig returns base with every non-zero field of override applied on top
func MergeConfig(base, override Config) Config {
	result := base

	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.ViewportSize != 0 {
		result.ViewportSize = override.ViewportSize
	}
	if override.ProjectionPlaneD != 0 {
		result.ProjectionPlaneD = override.ProjectionPlaneD
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.TileSize != 0 {
		result.TileSize = override.TileSize
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}

	return result
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ConfigForScene returns the default config with the scene's render hints applied
func ConfigForScene(s *scene.Scene) Config {
	return MergeConfig(DefaultConfig(), Config{
		Width:    s.Hints.Width,
		Height:   s.Hints.Height,
		MaxDepth: s.Hints.MaxDepth,
	})
}
