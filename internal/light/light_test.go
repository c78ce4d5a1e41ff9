package light

import (
	"math"
	"testing"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/pattern"
	"github.com/virefract/tracer/internal/shape"
)

func TestLightingEyeBetweenLightAndSurface(t *testing.T) {
	obj := shape.NewSphere()
	m := material.Default()
	pos := geom.Point(0, 0, 0)
	eyev := geom.Vector(0, 0, -1)
	normalv := geom.Vector(0, 0, -1)
	l := NewPointLight(geom.Point(0, 0, -10), geom.White)

	got, err := Lighting(m, obj, l, pos, eyev, normalv, false)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	if want := geom.NewColor(1.9, 1.9, 1.9); !got.Equal(want) {
		t.Errorf("Lighting() = %v, want %v", got, want)
	}
}

func TestLightingEyeOffset45Degrees(t *testing.T) {
	obj := shape.NewSphere()
	m := material.Default()
	pos := geom.Point(0, 0, 0)
	eyev := geom.Vector(0, math.Sqrt2/2, -math.Sqrt2/2)
	normalv := geom.Vector(0, 0, -1)
	l := NewPointLight(geom.Point(0, 0, -10), geom.White)

	got, err := Lighting(m, obj, l, pos, eyev, normalv, false)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	if want := geom.White; !got.Equal(want) {
		t.Errorf("Lighting() = %v, want %v", got, want)
	}
}

func TestLightingEyeInPathOfReflection(t *testing.T) {
	obj := shape.NewSphere()
	m := material.Default()
	pos := geom.Point(0, 0, 0)
	eyev := geom.Vector(0, -math.Sqrt2/2, -math.Sqrt2/2)
	normalv := geom.Vector(0, 0, -1)
	l := NewPointLight(geom.Point(0, 10, -10), geom.White)

	got, err := Lighting(m, obj, l, pos, eyev, normalv, false)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	if want := geom.NewColor(1.6364, 1.6364, 1.6364); !got.Equal(want) {
		t.Errorf("Lighting() = %v, want %v", got, want)
	}
}

func TestLightingLightBehindSurface(t *testing.T) {
	obj := shape.NewSphere()
	m := material.Default()
	pos := geom.Point(0, 0, 0)
	eyev := geom.Vector(0, 0, -1)
	normalv := geom.Vector(0, 0, -1)
	l := NewPointLight(geom.Point(0, 0, 10), geom.White)

	got, err := Lighting(m, obj, l, pos, eyev, normalv, false)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	if want := geom.NewColor(0.1, 0.1, 0.1); !got.Equal(want) {
		t.Errorf("Lighting() = %v, want %v", got, want)
	}
}

func TestLightingSurfaceInShadow(t *testing.T) {
	obj := shape.NewSphere()
	m := material.Default()
	pos := geom.Point(0, 0, 0)
	eyev := geom.Vector(0, 0, -1)
	normalv := geom.Vector(0, 0, -1)
	l := NewPointLight(geom.Point(0, 0, -10), geom.White)

	got, err := Lighting(m, obj, l, pos, eyev, normalv, true)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	if want := geom.NewColor(0.1, 0.1, 0.1); !got.Equal(want) {
		t.Errorf("Lighting() in shadow = %v, want ambient-only %v", got, want)
	}
}

func TestLightingWithPatternIgnoresMaterialColor(t *testing.T) {
	obj := shape.NewSphere()
	m := material.Default()
	stripe := pattern.NewStripe(geom.White, geom.Black)
	m.Pattern = &stripe
	m.Ambient = 1
	m.Diffuse = 0
	m.Specular = 0
	eyev := geom.Vector(0, 0, -1)
	normalv := geom.Vector(0, 0, -1)
	l := NewPointLight(geom.Point(0, 0, -10), geom.White)

	c1, err := Lighting(m, obj, l, geom.Point(0.9, 0, 0), eyev, normalv, false)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	c2, err := Lighting(m, obj, l, geom.Point(1.1, 0, 0), eyev, normalv, false)
	if err != nil {
		t.Fatalf("Lighting() error = %v", err)
	}
	if !c1.Equal(geom.Black) || !c2.Equal(geom.White) {
		t.Errorf("Lighting() with stripe pattern = %v, %v, want black, white", c1, c2)
	}
}
