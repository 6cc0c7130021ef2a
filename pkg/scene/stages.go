package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// The built-in scenes share the same four spheres and three lights and differ
// in which material attributes and shading model they enable, mirroring the
// order the features are usually introduced in: flat color, diffuse lighting,
// specular highlights, reflections. Shadows arrive with reflections, so the
// lights and specular stages render without them.

var (
	red    = core.NewColor(255, 0, 0)
	blue   = core.NewColor(0, 0, 255)
	green  = core.NewColor(0, 255, 0)
	yellow = core.NewColor(255, 255, 0)
)

type sphereDef struct {
	center     core.Vec3
	radius     float64
	color      core.Color
	specular   float64
	reflective float64
}

var stageSpheres = []sphereDef{
	{core.NewVec3(0, -1, 3), 1, red, 500, 0.2},
	{core.NewVec3(2, 0, 4), 1, blue, 500, 0.3},
	{core.NewVec3(-2, 0, 4), 1, green, 10, 0.4},
	{core.NewVec3(0, -5001, 0), 5000, yellow, 1000, 0.5}, // ground
}

func stageLights() []lights.Light {
	return []lights.Light{
		lights.NewAmbient(0.2, core.White),
		lights.NewDirectional(core.NewVec3(1, 4, 4), 0.2, core.White),
		lights.NewPoint(core.NewVec3(2, 1, 0), 0.6, core.White),
	}
}

func newStageScene(name string, shading ShadingModel, background core.Color, material func(sphereDef) geometry.Material) *Scene {
	s := &Scene{
		Name:       name,
		Spheres:    make([]*geometry.Sphere, 0, len(stageSpheres)),
		Lights:     make([]lights.Light, 0),
		Background: background,
		Shading:    shading,
		Hints: RenderHints{
			Width:  400,
			Height: 400,
		},
	}

	for _, def := range stageSpheres {
		s.mustAddSphere(def.center, def.radius, material(def))
	}
	return s
}

// NewBasicScene creates the flat-colored scene: no lights, white background
func NewBasicScene() *Scene {
	return newStageScene("basic", ShadingFlat, core.White, func(def sphereDef) geometry.Material {
		return geometry.Matte(def.color)
	})
}

// NewLightsScene creates the diffuse-only, unshadowed scene with ambient,
// point and directional lights
func NewLightsScene() *Scene {
	s := newStageScene("lights", ShadingPhong, core.White, func(def sphereDef) geometry.Material {
		return geometry.Matte(def.color)
	})
	s.Lights = stageLights()
	s.DisableShadows = true
	return s
}

// NewSpecularScene adds specular highlights to the lights scene
func NewSpecularScene() *Scene {
	s := newStageScene("specular", ShadingPhong, core.White, func(def sphereDef) geometry.Material {
		return geometry.Shiny(def.color, def.specular)
	})
	s.Lights = stageLights()
	s.DisableShadows = true
	return s
}

// NewReflectionsScene adds shadows and mirror reflections to the specular scene.
// The background is black so reflected highlights stand out.
func NewReflectionsScene() *Scene {
	s := newStageScene("reflections", ShadingPhong, core.Black, func(def sphereDef) geometry.Material {
		return geometry.Mirror(def.color, def.specular, def.reflective)
	})
	s.Lights = stageLights()
	s.Hints.MaxDepth = 3
	return s
}

// NewDefaultScene creates the default scene, which is the reflections scene
func NewDefaultScene() *Scene {
	s := NewReflectionsScene()
	s.Name = "default"
	return s
}
