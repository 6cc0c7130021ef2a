package renderer

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// CanvasToViewport maps a centered canvas coordinate to a point on the
// projection plane. Canvas y grows downward, viewport y grows upward.
func CanvasToViewport(px, py, canvasWidth, canvasHeight int, viewportSize, d float64) core.Vec3 {
	return core.NewVec3(
		float64(px)*viewportSize/float64(canvasWidth),
		-float64(py)*viewportSize/float64(canvasHeight),
		d,
	)
}

// Camera is a fixed pinhole at the origin looking down +Z
type Camera struct {
	origin       core.Vec3
	width        int
	height       int
	viewportSize float64
	d            float64
}

// NewCamera creates a camera for the canvas and viewport described by config
func NewCamera(config Config) *Camera {
	return &Camera{
		origin:       core.NewVec3(0, 0, 0),
		width:        config.Width,
		height:       config.Height,
		viewportSize: config.ViewportSize,
		d:            config.ProjectionPlaneD,
	}
}

// GetRay returns the primary ray through pixel (x, y), where (0, 0) is the top-left pixel
func (c *Camera) GetRay(x, y int) core.Ray {
	direction := CanvasToViewport(x-c.width/2, y-c.height/2, c.width, c.height, c.viewportSize, c.d)
	return core.NewRay(c.origin, direction)
}
