package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// SceneFile is the on-disk JSON description of a scene
type SceneFile struct {
	// Metadata used by scene discovery
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Background string `json:"background,omitempty"` // #rrggbb, defaults to black
	Shading    string `json:"shading,omitempty"`    // "phong" (default) or "flat"
	Shadows    *bool  `json:"shadows,omitempty"`    // Defaults to true

	// Recommended render settings, zero means use the renderer default
	Width    int `json:"width,omitempty"`
	Height   int `json:"height,omitempty"`
	MaxDepth int `json:"maxDepth,omitempty"`

	Spheres []SphereCfg `json:"spheres"`
	Lights  []LightCfg  `json:"lights"`
}

// SphereCfg describes one sphere. Specular and Reflective are optional.
type SphereCfg struct {
	Center     [3]float64 `json:"center"`
	Radius     float64    `json:"radius"`
	Color      string     `json:"color"`
	Specular   *float64   `json:"specular,omitempty"`
	Reflective *float64   `json:"reflective,omitempty"`
}

// LightCfg describes one light. Position is used by point lights and
// Direction by directional lights.
type LightCfg struct {
	Type      string      `json:"type"` // "ambient", "point" or "directional"
	Intensity float64     `json:"intensity"`
	Color     string      `json:"color,omitempty"`
	Position  *[3]float64 `json:"position,omitempty"`
	Direction *[3]float64 `json:"direction,omitempty"`
}

// ParseSceneJSON decodes a scene description, rejecting unknown fields
func ParseSceneJSON(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var sceneFile SceneFile
	if err := decoder.Decode(&sceneFile); err != nil {
		return nil, fmt.Errorf("failed to decode scene JSON: %w", err)
	}
	if err := sceneFile.check(); err != nil {
		return nil, err
	}
	return &sceneFile, nil
}

// LoadSceneJSON loads and parses a JSON scene file
func LoadSceneJSON(filename string) (*SceneFile, error) {
	// Validate file path for security
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sceneFile, err := ParseSceneJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if sceneFile.Name == "" {
		base := filepath.Base(filename)
		sceneFile.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return sceneFile, nil
}

// check validates structural requirements that JSON decoding cannot express
func (s *SceneFile) check() error {
	switch s.Shading {
	case "", "phong", "flat":
	default:
		return fmt.Errorf("unknown shading %q (want \"phong\" or \"flat\")", s.Shading)
	}
	if s.Width < 0 || s.Height < 0 || s.MaxDepth < 0 {
		return fmt.Errorf("width, height and maxDepth must not be negative")
	}

	for i, light := range s.Lights {
		switch lights.LightType(light.Type) {
		case lights.LightTypeAmbient:
		case lights.LightTypePoint:
			if light.Position == nil {
				return fmt.Errorf("light %d: point light requires \"position\"", i)
			}
		case lights.LightTypeDirectional:
			if light.Direction == nil {
				return fmt.Errorf("light %d: directional light requires \"direction\"", i)
			}
		default:
			return fmt.Errorf("light %d: unknown light type %q", i, light.Type)
		}
	}
	return nil
}

// validateFilePath validates a file path for security issues
func validateFilePath(filename string) error {
	// Check for empty filename
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	// Clean the path to resolve . and .. components
	cleanPath := filepath.ToSlash(filepath.Clean(filename))

	// Only allow files in a scenes/ directory (optionally reached through
	// leading ../ segments) or the temp directory (for tests)
	inTemp := strings.HasPrefix(cleanPath, filepath.ToSlash(os.TempDir()))
	if !inTemp {
		relative := cleanPath
		for strings.HasPrefix(relative, "../") {
			relative = strings.TrimPrefix(relative, "../")
		}
		if !strings.HasPrefix(relative, "scenes/") {
			return fmt.Errorf("file path must be in scenes/ directory")
		}
		if strings.Contains(relative, "..") {
			return fmt.Errorf("invalid file path: directory traversal not allowed")
		}
	}

	// Check file extension (only allow .json files)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}

	// Check for extremely long paths that could cause issues
	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}

// ListSceneFiles returns the JSON scene files in dir, sorted by name
func ListSceneFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	return files, nil
}
