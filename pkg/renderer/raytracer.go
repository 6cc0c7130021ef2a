package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Raytracer renders a scene with one primary ray per pixel
type Raytracer struct {
	scene        *scene.Scene
	config       Config
	camera       *Camera
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewRaytracer validates config and creates a raytracer with the integrator
// matching the scene's shading model
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	integratorInst, err := integrator.ForScene(s, config.MaxDepth)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = NewDefaultLogger()
	}

	camera := NewCamera(config)
	return &Raytracer{
		scene:        s,
		config:       config,
		camera:       camera,
		tileRenderer: NewTileRenderer(s, camera, integratorInst),
		logger:       logger,
	}, nil
}

// Config returns the configuration the raytracer was built with
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RenderPass renders the whole image sequentially in row-major order
func (rt *Raytracer) RenderPass(ctx context.Context) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))

	rt.logger.Printf("Rendering %q at %dx%d (sequential, depth %d)...\n",
		rt.scene.Name, rt.config.Width, rt.config.Height, rt.config.MaxDepth)

	if err := rt.tileRenderer.RenderTileBounds(ctx, img, img.Bounds()); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels:      rt.config.Width * rt.config.Height,
		TilesRendered:    1,
		NumWorkers:       1,
		Elapsed:          time.Since(startTime),
		AverageLuminance: CalculateAverageLuminance(img),
	}
	rt.logStats(stats)

	return img, stats, nil
}

// RenderParallel splits the image into tiles and renders them on a worker pool.
// The first tile error cancels the remaining tiles and is returned.
func (rt *Raytracer) RenderParallel(ctx context.Context) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerPool := NewWorkerPool(renderCtx, rt.tileRenderer, img, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %q at %dx%d (%d tiles, %d workers, depth %d)...\n",
		rt.scene.Name, rt.config.Width, rt.config.Height, len(tiles), workerPool.GetNumWorkers(), rt.config.MaxDepth)

	workerPool.Start()
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{NumWorkers: workerPool.GetNumWorkers()}
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
				cancel()
			}
			continue
		}
		stats.TilesRendered++
		stats.TotalPixels += result.Pixels
	}
	workerPool.Stop()

	if err := ctx.Err(); err != nil {
		rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", stats.TilesRendered, len(tiles))
		return nil, stats, err
	}
	if firstErr != nil {
		return nil, stats, firstErr
	}

	stats.Elapsed = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(img)
	rt.logStats(stats)

	return img, stats, nil
}

func (rt *Raytracer) logStats(stats RenderStats) {
	rt.logger.Printf("Render completed in %v (%d pixels, %d tiles, average luminance %.3f)\n",
		stats.Elapsed, stats.TotalPixels, stats.TilesRendered, stats.AverageLuminance)
}
