package integrator

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// FlatIntegrator returns the base color of the closest sphere with no lighting
type FlatIntegrator struct{}

// NewFlatIntegrator creates a flat-color integrator
func NewFlatIntegrator() *FlatIntegrator {
	return &FlatIntegrator{}
}

// RayColor returns the closest sphere's color, or the scene background on a miss
func (f *FlatIntegrator) RayColor(ray core.Ray, s *scene.Scene) (core.Color, error) {
	sphere, _, err := geometry.ClosestIntersection(ray, PrimaryTMin, math.Inf(1), s.Spheres)
	if err != nil {
		return core.Color{}, err
	}
	if sphere == nil {
		return s.Background, nil
	}
	return sphere.Material.Color, nil
}
