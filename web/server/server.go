package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const (
	// DefaultScene is rendered when a request names no scene
	DefaultScene = "default"

	minImageSize = 16
	maxImageSize = 2000
	maxDepth     = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Route is an API endpoint served by the raytracer
type Route struct {
	Pattern     string
	Description string
	handler     http.HandlerFunc
}

// Routes returns the API endpoints in the order they are documented
func (s *Server) Routes() []Route {
	return []Route{
		{"/api/health", "liveness check", s.handleHealth},
		{"/api/scenes", "built-in and JSON scenes, grouped", s.handleScenes},
		{"/api/render", "render a scene as PNG, or JSON with format=json", s.handleRender},
		{"/api/inspect", "sphere, lighting and color under pixel x,y", s.handleInspect},
	}
}

// Handler returns the HTTP routes served by the raytracer
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	for _, route := range s.Routes() {
		mux.HandleFunc(route.Pattern, route.handler)
	}

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting web server on http://localhost%s", addr)
	return httpServer.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes grouped for display
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// SceneParams are the query parameters shared by render and inspect requests
type SceneParams struct {
	Scene  string `json:"scene"`  // Scene ID (e.g., "default", "json:mirror-trio")
	Width  int    `json:"width"`  // Image width, 0 = scene default
	Height int    `json:"height"` // Image height, 0 = scene default
}

// parseSceneParams parses the scene, width and height query parameters
func parseSceneParams(values url.Values) (SceneParams, error) {
	params := SceneParams{Scene: values.Get("scene")}
	if params.Scene == "" {
		params.Scene = DefaultScene
	}

	var err error
	if params.Width, err = parseOptionalIntParam(values, "width", minImageSize, maxImageSize); err != nil {
		return params, err
	}
	if params.Height, err = parseOptionalIntParam(values, "height", minImageSize, maxImageSize); err != nil {
		return params, err
	}
	return params, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseOptionalIntParam is parseIntParam with 0 meaning "not given"
func parseOptionalIntParam(values url.Values, key string, min, max int) (int, error) {
	return parseIntParam(values, key, 0, min, max)
}

// createScene resolves a scene ID through the scene catalogue
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		return nil, fmt.Errorf("unknown scene %q: %w", sceneName, err)
	}
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
