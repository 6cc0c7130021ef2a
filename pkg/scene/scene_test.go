package scene

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

func TestStageScenes(t *testing.T) {
	tests := []struct {
		name           string
		scene          *Scene
		shading        ShadingModel
		background     core.Color
		lightCount     int
		wantSpecular   bool
		wantReflective bool
		wantShadows    bool
	}{
		{"basic", NewBasicScene(), ShadingFlat, core.White, 0, false, false, true},
		{"lights", NewLightsScene(), ShadingPhong, core.White, 3, false, false, false},
		{"specular", NewSpecularScene(), ShadingPhong, core.White, 3, true, false, false},
		{"reflections", NewReflectionsScene(), ShadingPhong, core.Black, 3, true, true, true},
		{"default", NewDefaultScene(), ShadingPhong, core.Black, 3, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.scene
			if s.Name != tt.name {
				t.Errorf("Expected name %q, got %q", tt.name, s.Name)
			}
			if err := s.Validate(); err != nil {
				t.Fatalf("Built-in scene failed validation: %v", err)
			}
			if s.Shading != tt.shading {
				t.Errorf("Expected shading %s, got %s", tt.shading, s.Shading)
			}
			if s.Background != tt.background {
				t.Errorf("Expected background %v, got %v", tt.background, s.Background)
			}
			if len(s.Lights) != tt.lightCount {
				t.Errorf("Expected %d lights, got %d", tt.lightCount, len(s.Lights))
			}
			if hasShadows := !s.DisableShadows; hasShadows != tt.wantShadows {
				t.Errorf("Expected shadows=%t", tt.wantShadows)
			}
			if s.GetPrimitiveCount() != 4 {
				t.Errorf("Expected 4 spheres, got %d", s.GetPrimitiveCount())
			}

			for i, sphere := range s.Spheres {
				_, hasSpecular := sphere.Material.SpecularExponent()
				if hasSpecular != tt.wantSpecular {
					t.Errorf("Sphere %d: expected specular=%t", i, tt.wantSpecular)
				}
				if reflective := sphere.Material.Reflectivity() > 0; reflective != tt.wantReflective {
					t.Errorf("Sphere %d: expected reflective=%t", i, tt.wantReflective)
				}
			}
		})
	}
}

func TestStageScenes_SharedGeometry(t *testing.T) {
	s := NewReflectionsScene()

	first := s.Spheres[0]
	if first.Center != core.NewVec3(0, -1, 3) || first.Radius != 1 || first.Material.Color != core.NewColor(255, 0, 0) {
		t.Errorf("Unexpected first sphere: %+v", first)
	}

	ground := s.Spheres[3]
	if ground.Radius != 5000 || ground.Center != core.NewVec3(0, -5001, 0) {
		t.Errorf("Unexpected ground sphere: %+v", ground)
	}

	total := 0.0
	for _, light := range s.Lights {
		total += light.GetIntensity()
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("Expected light intensities to sum to 1, got %f", total)
	}
	if s.Hints.MaxDepth != 3 {
		t.Errorf("Expected recommended depth 3, got %d", s.Hints.MaxDepth)
	}
}

func TestScene_Occluders(t *testing.T) {
	s := NewReflectionsScene()
	if occluders := s.Occluders(); len(occluders) != len(s.Spheres) {
		t.Errorf("Expected every sphere to occlude, got %d of %d", len(occluders), len(s.Spheres))
	}

	s.DisableShadows = true
	if occluders := s.Occluders(); occluders != nil {
		t.Errorf("Expected no occluders with shadows disabled, got %d", len(occluders))
	}
}

func TestStageScenes_AreIndependent(t *testing.T) {
	a := NewReflectionsScene()
	b := NewReflectionsScene()
	a.Spheres[0].Center = core.NewVec3(100, 100, 100)
	if b.Spheres[0].Center == a.Spheres[0].Center {
		t.Error("Expected each constructor call to build its own spheres")
	}
}

func TestSphereGridScene(t *testing.T) {
	s := NewSphereGridScene()
	if err := s.Validate(); err != nil {
		t.Fatalf("Sphere grid failed validation: %v", err)
	}
	if s.GetPrimitiveCount() != 1+8*6 {
		t.Errorf("Expected 49 spheres, got %d", s.GetPrimitiveCount())
	}
	// Every grid sphere sits on top of the ground sphere
	for _, sphere := range s.Spheres[1:] {
		bottom := sphere.Center.Y - sphere.Radius
		if math.Abs(bottom-(-2)) > 1e-9 {
			t.Errorf("Expected sphere bottom at y=-2, got %f", bottom)
		}
		if sphere.Center.Z-sphere.Radius <= 1 {
			t.Errorf("Sphere at %v is not in front of the projection plane", sphere.Center)
		}
	}
}

func TestScene_AddAndValidate(t *testing.T) {
	s := &Scene{Name: "test", Shading: ShadingPhong}

	if err := s.AddSphere(core.NewVec3(0, 0, 3), 1, geometry.Matte(core.White)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.AddSphere(core.NewVec3(0, 0, 3), -1, geometry.Matte(core.White)); err == nil {
		t.Error("Expected error for negative radius")
	}
	if err := s.AddLight(lights.NewAmbient(1, core.White)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.AddLight(lights.NewAmbient(-1, core.White)); err == nil {
		t.Error("Expected error for negative intensity")
	}
	if len(s.Spheres) != 1 || len(s.Lights) != 1 {
		t.Errorf("Expected rejected items not to be added, got %d spheres, %d lights", len(s.Spheres), len(s.Lights))
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestScene_ValidateRejectsBadScenes(t *testing.T) {
	good, _ := geometry.NewSphere(core.NewVec3(0, 0, 3), 1, geometry.Matte(core.White))
	tests := []struct {
		name  string
		scene *Scene
	}{
		{"unknown shading", &Scene{Shading: "toon"}},
		{"empty shading", &Scene{}},
		{"nil sphere", &Scene{Shading: ShadingPhong, Spheres: []*geometry.Sphere{nil}}},
		{"mutated radius", &Scene{Shading: ShadingPhong, Spheres: []*geometry.Sphere{{Center: good.Center, Radius: 0, Material: good.Material}}}},
		{"nil light", &Scene{Shading: ShadingPhong, Lights: []lights.Light{nil}}},
		{"zero directional", &Scene{Shading: ShadingPhong, Lights: []lights.Light{lights.NewDirectional(core.Vec3{}, 1, core.White)}}},
		{"negative hints", &Scene{Shading: ShadingPhong, Hints: RenderHints{MaxDepth: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.scene.Validate(); err == nil {
				t.Error("Expected validation error, got none")
			}
		})
	}
}
