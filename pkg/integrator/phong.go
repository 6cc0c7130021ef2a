package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const (
	// ShadowEpsilon offsets secondary rays from the surface they leave
	ShadowEpsilon = 0.001

	// PrimaryTMin starts primary rays at the projection plane
	PrimaryTMin = 1.0

	// DefaultMaxDepth is the default number of reflection bounces
	DefaultMaxDepth = 3
)

// PhongIntegrator shades hits with ambient, diffuse and specular terms, hard
// shadows, and up to MaxDepth mirror reflection bounces
type PhongIntegrator struct {
	MaxDepth int
}

// NewPhongIntegrator creates a Phong integrator. A negative depth is treated as zero.
func NewPhongIntegrator(maxDepth int) *PhongIntegrator {
	return &PhongIntegrator{MaxDepth: max(0, maxDepth)}
}

// RayColor traces a primary ray starting at the projection plane
func (p *PhongIntegrator) RayColor(ray core.Ray, s *scene.Scene) (core.Color, error) {
	return p.Trace(ray, PrimaryTMin, math.Inf(1), s, p.MaxDepth)
}

// Trace returns the color seen along ray within [tMin, tMax], following at
// most depth reflection bounces
func (p *PhongIntegrator) Trace(ray core.Ray, tMin, tMax float64, s *scene.Scene, depth int) (core.Color, error) {
	sphere, t, err := geometry.ClosestIntersection(ray, tMin, tMax, s.Spheres)
	if err != nil {
		return core.Color{}, err
	}
	if sphere == nil {
		return s.Background, nil
	}

	point := ray.At(t)
	normal := sphere.NormalAt(point)
	view := ray.Direction.Negate()

	intensity, err := ComputeLighting(point, normal, view, sphere.Material.Specular, s.Lights, s.Occluders())
	if err != nil {
		return core.Color{}, err
	}
	localColor := sphere.Material.Color.Scale(intensity)

	r := sphere.Material.Reflectivity()
	if depth <= 0 || r <= 0 {
		return localColor, nil
	}

	reflected := core.NewRay(point, Reflect(normal, view))
	reflectedColor, err := p.Trace(reflected, ShadowEpsilon, math.Inf(1), s, depth-1)
	if err != nil {
		return core.Color{}, err
	}

	// Convex blend, Scale already clamps each term
	return localColor.Scale(1 - r).Add(reflectedColor.Scale(r)), nil
}

// ComputeLighting returns the unclamped light intensity arriving at point.
// normal, view and the light directions need not be unit length. Shadow rays
// are tested against occluders only, so nil disables shadows.
func ComputeLighting(point, normal, view core.Vec3, specular *float64, sceneLights []lights.Light, occluders []*geometry.Sphere) (float64, error) {
	intensity := 0.0

	for _, light := range sceneLights {
		switch l := light.(type) {
		case lights.Ambient:
			intensity += l.Intensity

		case lights.Point:
			direction := l.Position.Subtract(point)
			if direction.IsZero() {
				return 0, fmt.Errorf("point light at shading point %v: %w", point, geometry.ErrDegenerateRay)
			}
			// Shadow ray runs at unit speed so t is a distance and the light
			// itself, |L| away, bounds the test
			distance := direction.Length()
			occluded, err := inShadow(point, direction.Multiply(1/distance), distance, occluders)
			if err != nil {
				return 0, fmt.Errorf("point light shadow ray: %w", err)
			}
			if !occluded {
				intensity += diffuseIntensity(normal, direction, l.Intensity)
				intensity += specularIntensity(normal, direction, view, specular, l.Intensity)
			}

		case lights.Directional:
			direction := l.Direction
			occluded, err := inShadow(point, direction, math.Inf(1), occluders)
			if err != nil {
				return 0, fmt.Errorf("directional light shadow ray: %w", err)
			}
			if !occluded {
				intensity += diffuseIntensity(normal, direction, l.Intensity)
				intensity += specularIntensity(normal, direction, view, specular, l.Intensity)
			}

		default:
			return 0, fmt.Errorf("unsupported light type %T", light)
		}
	}

	return intensity, nil
}

// inShadow reports whether any sphere lies along direction within [ShadowEpsilon, tMax]
func inShadow(point, direction core.Vec3, tMax float64, spheres []*geometry.Sphere) (bool, error) {
	occluder, _, err := geometry.ClosestIntersection(core.NewRay(point, direction), ShadowEpsilon, tMax, spheres)
	if err != nil {
		return false, err
	}
	return occluder != nil, nil
}

// diffuseIntensity applies Lambert's law, never returning a negative value
func diffuseIntensity(normal, direction core.Vec3, intensity float64) float64 {
	nDotL := normal.Dot(direction)
	if nDotL <= 0 {
		return 0
	}
	return intensity * nDotL / (normal.Length() * direction.Length())
}

// specularIntensity returns the Phong highlight, or 0 for matte surfaces
func specularIntensity(normal, direction, view core.Vec3, specular *float64, intensity float64) float64 {
	if specular == nil {
		return 0
	}
	nDotL := normal.Dot(direction)
	if nDotL <= 0 {
		return 0
	}

	reflection := normal.Multiply(2 * nDotL).Subtract(direction)
	rDotV := reflection.Dot(view)
	if rDotV <= 0 {
		return 0
	}
	return intensity * math.Pow(rDotV/(reflection.Length()*view.Length()), *specular)
}

// Reflect mirrors v about normal: R = N·2(N·V) − V
func Reflect(normal, v core.Vec3) core.Vec3 {
	return normal.Multiply(2 * normal.Dot(v)).Subtract(v)
}
