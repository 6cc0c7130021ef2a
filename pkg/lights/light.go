package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

type LightType string

const (
	LightTypeAmbient     LightType = "ambient"
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light is implemented by exactly three variants: Ambient, Directional and Point.
// The set is closed; shading code switches over the concrete types.
type Light interface {
	Type() LightType
	GetIntensity() float64

	// GetColor returns the light's tint. Shading currently folds only the
	// scalar intensity; the color is carried for tinted lighting later.
	GetColor() core.Color

	Validate() error

	isLight()
}

// Ambient light contributes its intensity to every point regardless of geometry
type Ambient struct {
	Intensity float64
	Color     core.Color
}

// Directional light is infinitely far away. Direction points toward the light
// and is not required to be unit length.
type Directional struct {
	Direction core.Vec3
	Intensity float64
	Color     core.Color
}

// Point light emits from a single position
type Point struct {
	Position  core.Vec3
	Intensity float64
	Color     core.Color
}

// NewAmbient creates an ambient light
func NewAmbient(intensity float64, color core.Color) Ambient {
	return Ambient{Intensity: intensity, Color: color}
}

// NewDirectional creates a directional light shining from direction
func NewDirectional(direction core.Vec3, intensity float64, color core.Color) Directional {
	return Directional{Direction: direction, Intensity: intensity, Color: color}
}

// NewPoint creates a point light at position
func NewPoint(position core.Vec3, intensity float64, color core.Color) Point {
	return Point{Position: position, Intensity: intensity, Color: color}
}

func (a Ambient) Type() LightType       { return LightTypeAmbient }
func (a Ambient) GetIntensity() float64 { return a.Intensity }
func (a Ambient) GetColor() core.Color  { return a.Color }
func (a Ambient) Validate() error       { return validateIntensity(a.Type(), a.Intensity) }
func (Ambient) isLight()                {}

func (d Directional) Type() LightType       { return LightTypeDirectional }
func (d Directional) GetIntensity() float64 { return d.Intensity }
func (d Directional) GetColor() core.Color  { return d.Color }
func (Directional) isLight()                {}

// Validate rejects negative intensities and a zero direction
func (d Directional) Validate() error {
	if err := validateIntensity(d.Type(), d.Intensity); err != nil {
		return err
	}
	if d.Direction.IsZero() {
		return fmt.Errorf("directional light direction must be non-zero")
	}
	return nil
}

func (p Point) Type() LightType       { return LightTypePoint }
func (p Point) GetIntensity() float64 { return p.Intensity }
func (p Point) GetColor() core.Color  { return p.Color }
func (p Point) Validate() error       { return validateIntensity(p.Type(), p.Intensity) }
func (Point) isLight()                {}

func validateIntensity(lightType LightType, intensity float64) error {
	if !(intensity >= 0) || math.IsInf(intensity, 0) {
		return fmt.Errorf("%s light intensity must be a finite value >= 0, got %v", lightType, intensity)
	}
	return nil
}
