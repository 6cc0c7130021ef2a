package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool                   `json:"hit"`
	SphereIndex int                    `json:"sphereIndex"`
	Point       [3]float64             `json:"point"`
	Normal      [3]float64             `json:"normal"`
	Distance    float64                `json:"distance"` // Ray parameter t, in units of the primary ray direction
	Lighting    float64                `json:"lighting"` // Unclamped light intensity at the hit point
	Color       string                 `json:"color"`    // Shaded color as rendered
	Properties  map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the sphere hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Sphere *geometry.Sphere
	Index  int
	Ray    core.Ray
	T      float64
}

// inspectPixel casts the primary ray through a pixel and returns the first sphere hit
func inspectPixel(sceneObj *scene.Scene, config renderer.Config, pixelX, pixelY int) (InspectResult, error) {
	ray := renderer.NewCamera(config).GetRay(pixelX, pixelY)

	sphere, t, err := geometry.ClosestIntersection(ray, integrator.PrimaryTMin, math.Inf(1), sceneObj.Spheres)
	if err != nil {
		return InspectResult{}, err
	}
	if sphere == nil {
		return InspectResult{Hit: false, Ray: ray}, nil
	}

	index := -1
	for i, candidate := range sceneObj.Spheres {
		if candidate == sphere {
			index = i
			break
		}
	}
	return InspectResult{Hit: true, Sphere: sphere, Index: index, Ray: ray, T: t}, nil
}

// extractMaterialInfo describes a sphere's material
func extractMaterialInfo(mat geometry.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color": mat.Color.Hex(),
	}

	materialType := "matte"
	if specular, ok := mat.SpecularExponent(); ok {
		properties["specular"] = specular
		materialType = "shiny"
	}
	if reflective := mat.Reflectivity(); reflective > 0 {
		properties["reflective"] = reflective
		materialType = "mirror"
	}
	return materialType, properties
}

// handleInspect handles ray casting inspection requests. It accepts the same
// scene, size, depth and background parameters as a render so the reported
// color matches the rendered pixel.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, config, err := s.prepareScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := config.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := parseIntParam(values, "x", -1, 0, config.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(values, "y", -1, 0, config.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	result, err := inspectPixel(sceneObj, config, pixelX, pixelY)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Inspection failed: %v", err))
		return
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, SphereIndex: -1, Color: sceneObj.Background.Hex()})
		return
	}

	point := result.Ray.At(result.T)
	normal := result.Sphere.NormalAt(point)
	lighting, err := integrator.ComputeLighting(point, normal, result.Ray.Direction.Negate(),
		result.Sphere.Material.Specular, sceneObj.Lights, sceneObj.Occluders())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Inspection failed: %v", err))
		return
	}

	integratorInst, err := integrator.ForScene(sceneObj, config.MaxDepth)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	shaded, err := integratorInst.RayColor(result.Ray, sceneObj)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Inspection failed: %v", err))
		return
	}

	materialType, materialProps := extractMaterialInfo(result.Sphere.Material)
	materialProps["type"] = materialType

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:         true,
		SphereIndex: result.Index,
		Point:       [3]float64{point.X, point.Y, point.Z},
		Normal:      [3]float64{normal.X, normal.Y, normal.Z},
		Distance:    result.T,
		Lighting:    lighting,
		Color:       shaded.Hex(),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": map[string]interface{}{
				"center": [3]float64{result.Sphere.Center.X, result.Sphere.Center.Y, result.Sphere.Center.Z},
				"radius": result.Sphere.Radius,
			},
		},
	})
}
