// Package material holds the reflectance parameters a shape's surface
// is lit and shaded with.
package material

import (
	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/pattern"
)

type Material struct {
	Color     geom.Color
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64

	Reflective      float64
	Transparency    float64
	RefractiveIndex float64

	// Pattern, when non-nil, overrides Color per-point via
	// pattern.ColorAtObject.
	Pattern *pattern.Pattern
}

// Default returns the reflectance baseline every new shape starts
// with: white, no reflection, fully opaque, vacuum refraction.
func Default() Material {
	return Material{
		Color:           geom.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200.0,
		Reflective:      0.0,
		Transparency:    0.0,
		RefractiveIndex: 1.0,
	}
}

// Glass returns the common "glass sphere" baseline used to build
// transparent, refractive test objects: Default() with full
// transparency and a refractive index of 1.52. The ambient, diffuse
// and specular terms keep their Default() values.
func Glass() Material {
	m := Default()
	m.Transparency = 1.0
	m.RefractiveIndex = 1.52
	return m
}
