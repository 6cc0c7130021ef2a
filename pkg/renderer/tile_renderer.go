package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of image regions using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene, camera and integrator
func NewTileRenderer(s *scene.Scene, camera *Camera, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		camera:     camera,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders the pixels within bounds into img, one ray per pixel.
// Cancellation is checked between rows. Pixels outside bounds are never written.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, img *image.RGBA, bounds image.Rectangle) error {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, err := tr.integrator.RayColor(tr.camera.GetRay(x, y), tr.scene)
			if err != nil {
				return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			img.SetRGBA(x, y, color.RGBA())
		}
	}
	return nil
}
