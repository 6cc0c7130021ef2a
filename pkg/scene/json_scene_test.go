package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
)

func writeSceneFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestNewJSONScene(t *testing.T) {
	path := writeSceneFile(t, "mirrors.json", `{
  "name": "Mirrors",
  "background": "#102030",
  "width": 320,
  "height": 200,
  "spheres": [
    {"center": [0, -1, 3], "radius": 1, "color": "#ff0000", "specular": 500, "reflective": 0.25},
    {"center": [2, 0, 4], "radius": 1, "color": "#0000ff"}
  ],
  "lights": [
    {"type": "ambient", "intensity": 0.2},
    {"type": "point", "intensity": 0.6, "position": [2, 1, 0], "color": "#ffeedd"},
    {"type": "directional", "intensity": 0.2, "direction": [1, 4, 4]}
  ]
}`)

	s, err := NewJSONScene(path)
	if err != nil {
		t.Fatalf("NewJSONScene() error: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Loaded scene failed validation: %v", err)
	}

	if s.Name != "Mirrors" {
		t.Errorf("Expected name Mirrors, got %q", s.Name)
	}
	if s.Background != core.NewColor(0x10, 0x20, 0x30) {
		t.Errorf("Unexpected background %v", s.Background)
	}
	if s.Shading != ShadingPhong {
		t.Errorf("Expected default phong shading, got %s", s.Shading)
	}
	if s.DisableShadows {
		t.Error("Expected shadows to default to enabled")
	}
	if s.Hints.Width != 320 || s.Hints.Height != 200 || s.Hints.MaxDepth != 0 {
		t.Errorf("Unexpected hints %+v", s.Hints)
	}

	if len(s.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(s.Spheres))
	}
	if r := s.Spheres[0].Material.Reflectivity(); r != 0.25 {
		t.Errorf("Expected reflectivity 0.25, got %f", r)
	}
	if _, ok := s.Spheres[1].Material.SpecularExponent(); ok {
		t.Error("Expected second sphere to be matte")
	}

	if len(s.Lights) != 3 {
		t.Fatalf("Expected 3 lights, got %d", len(s.Lights))
	}
	point, ok := s.Lights[1].(lights.Point)
	if !ok {
		t.Fatalf("Expected second light to be a point light, got %T", s.Lights[1])
	}
	if point.Position != core.NewVec3(2, 1, 0) || point.Color != core.NewColor(0xff, 0xee, 0xdd) {
		t.Errorf("Unexpected point light %+v", point)
	}
	if ambient := s.Lights[0].(lights.Ambient); ambient.Color != core.White {
		t.Errorf("Expected light color to default to white, got %v", ambient.Color)
	}
}

func TestFromSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad background", `{"background": "blue"}`, "background"},
		{"bad sphere color", `{"spheres": [{"center": [0,0,3], "radius": 1, "color": "red"}]}`, "sphere 0"},
		{"bad radius", `{"spheres": [{"center": [0,0,3], "radius": 0, "color": "#ff0000"}]}`, "sphere 0"},
		{"bad reflective", `{"spheres": [{"center": [0,0,3], "radius": 1, "color": "#ff0000", "reflective": 2}]}`, "sphere 0"},
		{"negative intensity", `{"lights": [{"type": "ambient", "intensity": -1}]}`, "light 0"},
		{"bad light color", `{"lights": [{"type": "ambient", "intensity": 1, "color": "#12"}]}`, "light 0"},
		{"zero direction", `{"lights": [{"type": "directional", "intensity": 1, "direction": [0, 0, 0]}]}`, "light 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sceneFile, err := loaders.ParseSceneJSON(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("ParseSceneJSON() error: %v", err)
			}
			_, err = FromSceneFile(sceneFile)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFromSceneFile_ShadowsOff(t *testing.T) {
	sceneFile, err := loaders.ParseSceneJSON(strings.NewReader(`{"shadows": false, "spheres": [], "lights": []}`))
	if err != nil {
		t.Fatalf("ParseSceneJSON() error: %v", err)
	}
	s, err := FromSceneFile(sceneFile)
	if err != nil {
		t.Fatalf("FromSceneFile() error: %v", err)
	}
	if !s.DisableShadows {
		t.Error("Expected shadows to be disabled")
	}
}

func TestFromSceneFile_FlatShading(t *testing.T) {
	sceneFile, err := loaders.ParseSceneJSON(strings.NewReader(`{"shading": "flat", "spheres": [], "lights": []}`))
	if err != nil {
		t.Fatalf("ParseSceneJSON() error: %v", err)
	}
	s, err := FromSceneFile(sceneFile)
	if err != nil {
		t.Fatalf("FromSceneFile() error: %v", err)
	}
	if s.Shading != ShadingFlat {
		t.Errorf("Expected flat shading, got %s", s.Shading)
	}
}
