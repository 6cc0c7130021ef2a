package integrator

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Integrator defines the interface for computing the color seen along a primary ray
type Integrator interface {
	// RayColor returns the color for a ray leaving the camera.
	// Errors are only returned for malformed geometry such as a degenerate ray.
	RayColor(ray core.Ray, s *scene.Scene) (core.Color, error)
}

// ForScene returns the integrator matching the scene's shading model
func ForScene(s *scene.Scene, maxDepth int) (Integrator, error) {
	switch s.Shading {
	case scene.ShadingFlat:
		return NewFlatIntegrator(), nil
	case scene.ShadingPhong:
		return NewPhongIntegrator(maxDepth), nil
	default:
		return nil, fmt.Errorf("no integrator for shading model %q", s.Shading)
	}
}
