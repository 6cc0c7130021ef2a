package renderer

import (
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TilesRendered    int           // Number of tiles completed (1 for a sequential pass)
	NumWorkers       int           // Number of workers used
	Elapsed          time.Duration // Wall time for the render
	AverageLuminance float64       // Mean perceptual luminance of the output in [0, 1]
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixelCount := bounds.Dx() * bounds.Dy()
	if pixelCount == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewColor(c.R, c.G, c.B).Luminance()
		}
	}

	return total / float64(pixelCount)
}
