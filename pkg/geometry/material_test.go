package geometry

import (
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestMaterial_OptionalAttributes(t *testing.T) {
	matte := Matte(core.White)
	if _, ok := matte.SpecularExponent(); ok {
		t.Error("Expected matte material to have no specular exponent")
	}
	if r := matte.Reflectivity(); r != 0 {
		t.Errorf("Expected absent reflectivity to read as 0, got %f", r)
	}

	shiny := Shiny(core.White, 500)
	if s, ok := shiny.SpecularExponent(); !ok || s != 500 {
		t.Errorf("Expected specular 500, got %f (set=%t)", s, ok)
	}
	if r := shiny.Reflectivity(); r != 0 {
		t.Errorf("Expected shiny material reflectivity 0, got %f", r)
	}

	mirror := Mirror(core.White, 1000, 0.5)
	if r := mirror.Reflectivity(); r != 0.5 {
		t.Errorf("Expected reflectivity 0.5, got %f", r)
	}
}

func TestMaterial_ConstructorsDoNotAlias(t *testing.T) {
	a := Mirror(core.White, 10, 0.1)
	b := Mirror(core.White, 20, 0.2)
	if *a.Specular == *b.Specular || *a.Reflective == *b.Reflective {
		t.Error("Expected independent attribute storage per material")
	}
}
