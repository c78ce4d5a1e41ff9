// Package light implements point lights and the Phong reflectance
// model used to shade a single surface point.
package light

import (
	"fmt"
	"math"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/shape"
)

type PointLight struct {
	Position  geom.Tuple
	Intensity geom.Color
}

func NewPointLight(position geom.Tuple, intensity geom.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// SurfaceColor resolves the base color a material presents at point:
// its plain color, or its pattern sampled in object space if one is
// set. Both Lighting and a scene's ambient-fill term read the surface
// through this one path so they never disagree about which color a
// patterned surface shows.
func SurfaceColor(m material.Material, obj *shape.Object, point geom.Tuple) (geom.Color, error) {
	if m.Pattern == nil {
		return m.Color, nil
	}
	inv, err := obj.Transform.Inverse()
	if err != nil {
		return geom.Color{}, fmt.Errorf("object %d: %w", obj.ID, err)
	}
	color, err := m.Pattern.ColorAtObject(inv, point)
	if err != nil {
		return geom.Color{}, fmt.Errorf("object %d: %w", obj.ID, err)
	}
	return color, nil
}

// Lighting evaluates the Phong ambient+diffuse+specular model at
// point, for a single light. inShadow short-circuits straight to the
// ambient term: a point in shadow still receives ambient light, but
// none of the diffuse or specular contribution this light would add.
func Lighting(m material.Material, obj *shape.Object, l PointLight, point, eyev, normalv geom.Tuple, inShadow bool) (geom.Color, error) {
	color, err := SurfaceColor(m, obj, point)
	if err != nil {
		return geom.Color{}, err
	}

	effectiveColor := color.Mul(l.Intensity)
	ambient := effectiveColor.Scale(m.Ambient)
	if inShadow {
		return ambient, nil
	}

	lightv := l.Position.Sub(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)

	diffuse := geom.Black
	specular := geom.Black
	if lightDotNormal >= 0 {
		diffuse = effectiveColor.Scale(m.Diffuse * lightDotNormal)

		reflectv := lightv.Neg().Reflect(normalv)
		reflectDotEye := reflectv.Dot(eyev)
		if reflectDotEye > 0 {
			factor := math.Pow(reflectDotEye, m.Shininess)
			specular = l.Intensity.Scale(m.Specular * factor)
		}
	}

	return ambient.Add(diffuse).Add(specular), nil
}
