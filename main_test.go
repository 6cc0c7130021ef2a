package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"basic scene", "basic", false},
		{"lights scene", "lights", false},
		{"specular scene", "specular", false},
		{"reflections scene", "reflections", false},
		{"sphere-grid scene", "sphere-grid", false},

		// JSON scenes by name
		{"mirror-trio by name", "mirror-trio", false},
		{"three-spheres by ID", "json:three-spheres", false},

		// JSON scenes by path
		{"direct JSON path", "scenes/mirror-trio.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, s)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if len(s.Spheres) == 0 {
				t.Errorf("Expected scene '%s' to contain spheres", tt.sceneType)
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default")},
		{"JSON scene ID", "json:mirror-trio", filepath.Join("output", "mirror-trio")},
		{"JSON scene path", "scenes/mirror-trio.json", filepath.Join("output", "mirror-trio")},
		{"nested JSON path", "scenes/subdir/my-scene.json", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if outputDir := createOutputDir(tt.sceneType); outputDir != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, outputDir)
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	s := scene.NewSphereGridScene() // Recommends 480x480, depth 3

	tests := []struct {
		name           string
		opts           options
		expectedWidth  int
		expectedHeight int
		expectedDepth  int
	}{
		{"scene defaults", options{depth: -1}, 480, 480, 3},
		{"size override", options{width: 100, height: 50, depth: -1}, 100, 50, 3},
		{"zero depth is honored", options{depth: 0}, 480, 480, 0},
		{"depth override", options{depth: 6}, 480, 480, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := buildConfig(s, tt.opts)
			if config.Width != tt.expectedWidth || config.Height != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, config.Width, config.Height)
			}
			if config.MaxDepth != tt.expectedDepth {
				t.Errorf("Expected depth %d, got %d", tt.expectedDepth, config.MaxDepth)
			}
		})
	}
}

func TestCatalogueScenesRecommendSquareCanvases(t *testing.T) {
	// The viewport is square, so only a square canvas keeps spheres round
	response, err := scene.ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			t.Run(info.ID, func(t *testing.T) {
				s, err := createScene(info.ID)
				if err != nil {
					t.Fatalf("createScene(%q) failed: %v", info.ID, err)
				}
				config := buildConfig(s, options{depth: -1})
				if config.Width != config.Height {
					t.Errorf("Expected a square canvas, got %dx%d", config.Width, config.Height)
				}
			})
		}
	}
}

func TestParseFlags(t *testing.T) {
	var errOut bytes.Buffer
	opts, err := parseFlags([]string{"-scene", "lights", "-width", "64", "-sequential", "-background", "#102030"}, &errOut)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if opts.sceneType != "lights" || opts.width != 64 || !opts.sequential || opts.background != "#102030" {
		t.Errorf("Unexpected options %+v", opts)
	}
	if opts.depth != -1 {
		t.Errorf("Expected unset depth to be -1, got %d", opts.depth)
	}

	if _, err := parseFlags([]string{"-width", "abc"}, &errOut); err == nil {
		t.Error("Expected error for non-numeric width")
	}
}

func TestRun_WritesPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "render.png")
	opts := options{
		sceneType:  "reflections",
		width:      40,
		height:     30,
		depth:      -1,
		output:     output,
		background: "#336699",
	}

	var out bytes.Buffer
	if err := run(context.Background(), opts, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Render saved as") {
		t.Errorf("Expected save message, got %q", out.String())
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != 40 || bounds.Dy() != 30 {
		t.Errorf("Expected 40x30 image, got %v", bounds)
	}

	// The top-left corner misses every sphere and shows the overridden background
	r, g, b, _ := img.At(0, 0).RGBA()
	expected := core.NewColor(0x33, 0x66, 0x99)
	if uint8(r>>8) != expected.R || uint8(g>>8) != expected.G || uint8(b>>8) != expected.B {
		t.Errorf("Expected background %v at corner, got (%d,%d,%d)", expected, r>>8, g>>8, b>>8)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"unknown scene", options{sceneType: "nonexistent", depth: -1}},
		{"bad background", options{sceneType: "basic", depth: -1, background: "blue"}},
		{"negative size", options{sceneType: "basic", depth: -1, width: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.opts, &bytes.Buffer{}); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), options{list: true}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"Built-in Scenes:", "sphere-grid", "json:mirror-trio"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected listing to contain %q, got:\n%s", want, out.String())
		}
	}
}
