package server

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneParams
	Depth      int    `json:"depth"`      // Maximum reflection depth, -1 = scene default
	Background string `json:"background"` // Optional #rrggbb background override
	Format     string `json:"format"`     // "png" or "json"
	Sequential bool   `json:"sequential"` // Render on a single goroutine
}

// RenderResponse is the JSON body returned for format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	MaxDepth         int     `json:"maxDepth"`
	TotalPixels      int     `json:"totalPixels"`
	TilesRendered    int     `json:"tilesRendered"`
	NumWorkers       int     `json:"numWorkers"`
	PrimitiveCount   int     `json:"primitiveCount"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// handleRender renders a scene and returns it as a PNG or a JSON document
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()

	var img *image.RGBA
	var stats renderer.RenderStats
	if req.Sequential {
		img, stats, err = pipeline.Raytracer.RenderPass(ctx)
	} else {
		img, stats, err = pipeline.Raytracer.RenderParallel(ctx)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("Render of %q cancelled by client", req.Scene)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	if req.Format == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)
		if err := png.Encode(w, img); err != nil {
			log.Printf("Error encoding PNG response: %v", err)
		}
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	config := pipeline.Raytracer.Config()
	writeJSON(w, http.StatusOK, RenderResponse{
		Scene:     req.Scene,
		ImageData: imageData,
		Stats: Stats{
			Width:            config.Width,
			Height:           config.Height,
			MaxDepth:         config.MaxDepth,
			TotalPixels:      stats.TotalPixels,
			TilesRendered:    stats.TilesRendered,
			NumWorkers:       stats.NumWorkers,
			PrimitiveCount:   pipeline.Scene.GetPrimitiveCount(),
			AverageLuminance: stats.AverageLuminance,
		},
		Console:   drainConsole(consoleChan),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()

	sceneParams, err := parseSceneParams(values)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{
		SceneParams: sceneParams,
		Background:  values.Get("background"),
		Format:      values.Get("format"),
		Sequential:  values.Get("sequential") == "true",
	}

	if req.Depth, err = parseIntParam(values, "depth", -1, 0, maxDepth); err != nil {
		return nil, err
	}

	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	// Performance warning
	if req.Width*req.Height > 1200*1200 {
		log.Printf("Render warning: Large image may render slowly")
	}

	return req, nil
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, config, err := s.prepareScene(req)
	if err != nil {
		return nil, err
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		return nil, err
	}
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
	}, nil
}

// prepareScene resolves the requested scene, applies the background override
// and layers the request's size and depth over the scene's render hints
func (s *Server) prepareScene(req *RenderRequest) (*scene.Scene, renderer.Config, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, renderer.Config{}, err
	}

	if req.Background != "" {
		background, err := core.ParseHexColor(req.Background)
		if err != nil {
			return nil, renderer.Config{}, fmt.Errorf("invalid background: %w", err)
		}
		sceneObj.Background = background
	}

	config := renderer.MergeConfig(renderer.ConfigForScene(sceneObj), renderer.Config{
		Width:  req.Width,
		Height: req.Height,
	})
	if req.Depth >= 0 {
		config.MaxDepth = req.Depth
	}
	return sceneObj, config, nil
}
