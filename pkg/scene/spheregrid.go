package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// oklchToRGB converts OKLCH color values to an 8-bit RGB color
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewColor(uint8(255*r), uint8(255*g), uint8(255*blue))
}

// NewSphereGridScene creates a scene with a grid of colored, partly mirrored
// spheres resting on a large ground sphere in front of the camera
func NewSphereGridScene() *Scene {
	s := &Scene{
		Name:       "sphere-grid",
		Spheres:    make([]*geometry.Sphere, 0),
		Lights:     make([]lights.Light, 0),
		Background: core.Black,
		Shading:    ShadingPhong,
		Hints: RenderHints{
			Width:    480,
			Height:   480,
			MaxDepth: 3,
		},
	}

	// Ground sphere, its top sits at y = -2
	ground := geometry.Mirror(core.NewColor(128, 128, 128), 100, 0.1)
	s.mustAddSphere(core.NewVec3(0, -5002, 0), 5000, ground)

	gridX, gridZ := 8, 6
	spacing := 1.0
	radius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridX; i++ {
		for j := 0; j < gridZ; j++ {
			x := (float64(i) - float64(gridX-1)/2) * spacing
			z := 5 + float64(j)*spacing*1.4
			center := core.NewVec3(x, -2+radius, z)

			// Vary hue across X and chroma across Z
			hue := (float64(i) / float64(gridX-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridZ-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			// Alternate between tight and broad highlights, and vary reflectivity by row
			specular := 50.0
			if (i+j)%2 == 0 {
				specular = 500
			}
			reflective := 0.1 * float64(j%4)

			s.mustAddSphere(center, radius, geometry.Mirror(oklchToRGB(lightness, chroma, hue), specular, reflective))
		}
	}

	s.Lights = append(s.Lights,
		lights.NewAmbient(0.15, core.White),
		lights.NewPoint(core.NewVec3(3, 4, 2), 0.65, core.White),
		lights.NewDirectional(core.NewVec3(-1, 3, -2), 0.2, core.White),
	)

	return s
}

func (s *Scene) mustAddSphere(center core.Vec3, radius float64, material geometry.Material) {
	if err := s.AddSphere(center, radius, material); err != nil {
		panic("scene: invalid built-in sphere: " + err.Error())
	}
}
