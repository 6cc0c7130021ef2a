package scene

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
)

// NewJSONScene creates a scene from a JSON scene file
func NewJSONScene(filepath string) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneJSON(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return FromSceneFile(sceneFile)
}

// FromSceneFile converts a parsed scene description into a Scene
func FromSceneFile(sceneFile *loaders.SceneFile) (*Scene, error) {
	scene := &Scene{
		Name:       sceneFile.Name,
		Spheres:    make([]*geometry.Sphere, 0, len(sceneFile.Spheres)),
		Lights:     make([]lights.Light, 0, len(sceneFile.Lights)),
		Background: core.Black,
		Shading:    ShadingPhong,
		Hints: RenderHints{
			Width:    sceneFile.Width,
			Height:   sceneFile.Height,
			MaxDepth: sceneFile.MaxDepth,
		},
		DisableShadows: sceneFile.Shadows != nil && !*sceneFile.Shadows,
	}

	if sceneFile.Shading != "" {
		scene.Shading = ShadingModel(sceneFile.Shading)
	}
	if sceneFile.Background != "" {
		background, err := core.ParseHexColor(sceneFile.Background)
		if err != nil {
			return nil, fmt.Errorf("failed to convert background: %w", err)
		}
		scene.Background = background
	}

	for i, sphereCfg := range sceneFile.Spheres {
		material, err := convertMaterial(&sphereCfg)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if err := scene.AddSphere(vec3(sphereCfg.Center), sphereCfg.Radius, material); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	for i, lightCfg := range sceneFile.Lights {
		light, err := convertLight(&lightCfg)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		if err := scene.AddLight(light); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}

	return scene, nil
}

func convertMaterial(cfg *loaders.SphereCfg) (geometry.Material, error) {
	color, err := core.ParseHexColor(cfg.Color)
	if err != nil {
		return geometry.Material{}, err
	}
	material := geometry.Matte(color)
	if cfg.Specular != nil {
		specular := *cfg.Specular
		material.Specular = &specular
	}
	if cfg.Reflective != nil {
		reflective := *cfg.Reflective
		material.Reflective = &reflective
	}
	return material, nil
}

func convertLight(cfg *loaders.LightCfg) (lights.Light, error) {
	color := core.White
	if cfg.Color != "" {
		parsed, err := core.ParseHexColor(cfg.Color)
		if err != nil {
			return nil, err
		}
		color = parsed
	}

	switch lights.LightType(cfg.Type) {
	case lights.LightTypeAmbient:
		return lights.NewAmbient(cfg.Intensity, color), nil
	case lights.LightTypePoint:
		if cfg.Position == nil {
			return nil, fmt.Errorf("point light requires a position")
		}
		return lights.NewPoint(vec3(*cfg.Position), cfg.Intensity, color), nil
	case lights.LightTypeDirectional:
		if cfg.Direction == nil {
			return nil, fmt.Errorf("directional light requires a direction")
		}
		return lights.NewDirectional(vec3(*cfg.Direction), cfg.Intensity, color), nil
	default:
		return nil, fmt.Errorf("unknown light type %q", cfg.Type)
	}
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
