package scene

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// ShadingModel selects how surface color is computed
type ShadingModel string

const (
	// ShadingFlat returns each sphere's base color with no lighting
	ShadingFlat ShadingModel = "flat"
	// ShadingPhong applies ambient, diffuse and specular lighting with shadows and reflections
	ShadingPhong ShadingModel = "phong"
)

// Scene contains all the elements needed for rendering.
// A scene is built once and must not be modified while a render is running.
type Scene struct {
	Name       string
	Spheres    []*geometry.Sphere // Objects in the scene, order breaks intersection ties
	Lights     []lights.Light     // Lights in the scene
	Background core.Color         // Color returned by rays that hit nothing
	Shading    ShadingModel
	Hints      RenderHints

	// DisableShadows lets every light reach every surface, as in the early
	// lighting stages
	DisableShadows bool
}

// RenderHints are a scene's recommended render settings. Zero fields mean
// the renderer default applies.
type RenderHints struct {
	Width    int // Image width
	Height   int // Image height
	MaxDepth int // Maximum reflection bounces
}

// Occluders returns the spheres shadow rays are tested against, or nil when
// shadows are disabled
func (s *Scene) Occluders() []*geometry.Sphere {
	if s.DisableShadows {
		return nil
	}
	return s.Spheres
}

// AddSphere validates and appends a sphere
func (s *Scene) AddSphere(center core.Vec3, radius float64, material geometry.Material) error {
	sphere, err := geometry.NewSphere(center, radius, material)
	if err != nil {
		return err
	}
	s.Spheres = append(s.Spheres, sphere)
	return nil
}

// AddLight validates and appends a light
func (s *Scene) AddLight(light lights.Light) error {
	if err := light.Validate(); err != nil {
		return err
	}
	s.Lights = append(s.Lights, light)
	return nil
}

// Validate checks every sphere and light in the scene
func (s *Scene) Validate() error {
	switch s.Shading {
	case ShadingFlat, ShadingPhong:
	default:
		return fmt.Errorf("scene %q: unknown shading model %q", s.Name, s.Shading)
	}
	for i, sphere := range s.Spheres {
		if sphere == nil {
			return fmt.Errorf("scene %q: sphere %d is nil", s.Name, i)
		}
		if _, err := geometry.NewSphere(sphere.Center, sphere.Radius, sphere.Material); err != nil {
			return fmt.Errorf("scene %q: sphere %d: %w", s.Name, i, err)
		}
	}
	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("scene %q: light %d is nil", s.Name, i)
		}
		if err := light.Validate(); err != nil {
			return fmt.Errorf("scene %q: light %d: %w", s.Name, i, err)
		}
	}
	if s.Hints.Width < 0 || s.Hints.Height < 0 || s.Hints.MaxDepth < 0 {
		return fmt.Errorf("scene %q: render hints must not be negative", s.Name)
	}
	return nil
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}
