package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

type builtIn struct {
	info   SceneInfo
	create func() *Scene
}

var builtIns = []builtIn{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Reflective spheres on a yellow ground, black background"}, NewDefaultScene},
	{SceneInfo{ID: "basic", Name: "Basic", Description: "Flat sphere colors with no lighting"}, NewBasicScene},
	{SceneInfo{ID: "lights", Name: "Lights", Description: "Ambient, point and directional diffuse lighting, no shadows"}, NewLightsScene},
	{SceneInfo{ID: "specular", Name: "Specular", Description: "Diffuse lighting plus specular highlights, no shadows"}, NewSpecularScene},
	{SceneInfo{ID: "reflections", Name: "Reflections", Description: "Specular highlights plus shadows and mirror reflections"}, NewReflectionsScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "Grid of rainbow-colored partly mirrored spheres"}, NewSphereGridScene},
}

// BuiltInScenes returns metadata for every built-in scene in display order
func BuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtIns))
	for _, b := range builtIns {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// Create builds a scene by built-in ID, "json:<name>" ID, bare JSON scene
// name in scenes/, or path to a .json file
func Create(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	for _, b := range builtIns {
		if b.info.ID == name {
			return b.create(), nil
		}
	}

	path := name
	if strings.HasPrefix(name, "json:") {
		path = strings.TrimPrefix(name, "json:")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".json") {
		found, ok := findSceneFile(path)
		if !ok {
			return nil, fmt.Errorf("unknown scene: %s", name)
		}
		path = found
	}

	s, err := NewJSONScene(path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// findSceneFile looks for <name>.json in the known scenes directories
func findSceneFile(name string) (string, bool) {
	dir, ok := scenesDir()
	if !ok {
		return "", false
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// scenesDir returns the first scenes directory that exists
func scenesDir() (string, bool) {
	// Try different possible paths for scenes directory
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ListJSONScenes scans the scenes directory and returns discovered JSON scenes
func ListJSONScenes() ([]SceneInfo, error) {
	dir, ok := scenesDir()
	if !ok {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := loaders.ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata extracts catalogue metadata from a JSON scene file
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneFile, err := loaders.LoadSceneJSON(filePath)
	if err != nil {
		return SceneInfo{}, err
	}

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("json:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		Description: sceneFile.Description,
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}
	// LoadSceneJSON falls back to the bare filename, prefer the title-cased form then
	if sceneFile.Name != "" && sceneFile.Name != nameWithoutExt {
		sceneInfo.Name = sceneFile.Name
	}
	if sceneFile.Group != "" {
		sceneInfo.Group = sceneFile.Group
	}
	sceneInfo.DisplayName = sceneInfo.Name

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and JSON scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %v", err)
	}

	// Combine all scenes
	allScenes := append(BuiltInScenes(), jsonScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInScenes, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtInGroup,
			Scenes: builtInScenes,
		})
	}

	// Add other groups alphabetically
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-room" -> "Mirror Room"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
