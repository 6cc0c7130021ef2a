package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ErrDegenerateRay is returned when a ray with a zero-length direction is intersected
var ErrDegenerateRay = errors.New("degenerate ray: direction has zero length")

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material Material
}

// NewSphere creates a new sphere, validating its geometry and material
func NewSphere(center core.Vec3, radius float64, material Material) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere radius must be positive and finite, got %v", radius)
	}
	if err := material.Validate(); err != nil {
		return nil, fmt.Errorf("sphere at %v: %w", center, err)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}, nil
}

// Intersect solves the ray/sphere quadratic and returns both roots.
// The roots are not ordered. A miss returns (+Inf, +Inf) with a nil error.
func Intersect(ray core.Ray, sphere *Sphere) (t1, t2 float64, err error) {
	// Vector from sphere center to ray origin
	co := ray.Origin.Subtract(sphere.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return math.Inf(1), math.Inf(1), ErrDegenerateRay
	}
	b := 2 * co.Dot(ray.Direction)
	c := co.Dot(co) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return math.Inf(1), math.Inf(1), nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 = (-b + sqrtD) / (2 * a)
	t2 = (-b - sqrtD) / (2 * a)
	return t1, t2, nil
}

// ClosestIntersection finds the nearest sphere hit by the ray with tMin <= t <= tMax.
// Spheres are visited in order and a later root only wins if it is strictly closer,
// so exact ties go to the root evaluated first. A miss returns (nil, +Inf, nil).
func ClosestIntersection(ray core.Ray, tMin, tMax float64, spheres []*Sphere) (*Sphere, float64, error) {
	closestT := math.Inf(1)
	var closestSphere *Sphere

	for i, sphere := range spheres {
		t1, t2, err := Intersect(ray, sphere)
		if err != nil {
			return nil, math.Inf(1), fmt.Errorf("intersecting sphere %d: %w", i, err)
		}
		if t1 >= tMin && t1 <= tMax && t1 < closestT {
			closestT = t1
			closestSphere = sphere
		}
		if t2 >= tMin && t2 <= tMax && t2 < closestT {
			closestT = t2
			closestSphere = sphere
		}
	}

	return closestSphere, closestT, nil
}

// NormalAt returns the outward unit normal at a point on the sphere surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
