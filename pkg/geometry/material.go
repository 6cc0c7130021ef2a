package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Material describes how a sphere responds to light.
// A nil Specular means the surface is perfectly matte; a nil Reflective means
// the surface does not mirror its surroundings.
type Material struct {
	Color      core.Color
	Specular   *float64
	Reflective *float64
}

// Matte creates a material with no specular highlight and no reflection
func Matte(color core.Color) Material {
	return Material{Color: color}
}

// Shiny creates a material with a specular exponent and no reflection
func Shiny(color core.Color, specular float64) Material {
	return Material{Color: color, Specular: &specular}
}

// Mirror creates a material with a specular exponent and a reflectivity in [0, 1]
func Mirror(color core.Color, specular, reflective float64) Material {
	return Material{Color: color, Specular: &specular, Reflective: &reflective}
}

// SpecularExponent returns the specular exponent and whether one is set
func (m Material) SpecularExponent() (float64, bool) {
	if m.Specular == nil {
		return 0, false
	}
	return *m.Specular, true
}

// Reflectivity returns the reflective coefficient, or 0 when absent
func (m Material) Reflectivity() float64 {
	if m.Reflective == nil {
		return 0
	}
	return *m.Reflective
}

// Validate checks the optional attributes are in range
func (m Material) Validate() error {
	if m.Specular != nil && !(*m.Specular > 0) {
		return fmt.Errorf("specular exponent must be positive, got %v", *m.Specular)
	}
	if m.Reflective != nil && !(*m.Reflective >= 0 && *m.Reflective <= 1) {
		return fmt.Errorf("reflective must be in [0, 1], got %v", *m.Reflective)
	}
	return nil
}
