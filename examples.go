package tracer

import (
	"math"

	"github.com/virefract/tracer/internal/camera"
	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/light"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/pattern"
	"github.com/virefract/tracer/internal/shape"
	"github.com/virefract/tracer/internal/world"
)

// ExampleScene1 builds the canned scene a CLI driver falls back to
// when it isn't handed a scene file: a glass sphere, a reflective
// sphere, a checkered sphere, and a ground plane, lit by a single
// point light.
func ExampleScene1(widthPx, heightPx int) (*world.World, *camera.Camera) {
	glass := shape.NewSphere()
	glass.SetTransform(geom.Translation(0, 1, -0.75))
	glass.Material = material.Glass()
	glass.Material.Color = geom.NewColor(0.1, 0.1, 0.1)
	glass.Material.Reflective = 0.9

	mirror := shape.NewSphere()
	mirror.SetTransform(geom.Translation(2, 1, -3).Then(geom.Scaling(0.8, 0.8, 0.8)))
	mirror.Material = material.Default()
	mirror.Material.Color = geom.NewColor(0.2, 0.2, 0.8)
	mirror.Material.Reflective = 0.6
	mirror.Material.Diffuse = 0.3

	checkered := shape.NewSphere()
	checkered.SetTransform(geom.Translation(-2, 1, -3))
	checkered.Material = material.Default()
	checkered.Material.Diffuse = 0.8
	checkered.Material.Specular = 0.1
	pat := pattern.NewChecker(geom.NewColor(0.2, 0.8, 0.2), geom.White)
	pat = pat.SetTransform(geom.Scaling(0.3, 0.3, 0.3))
	checkered.Material.Pattern = &pat

	floor := shape.NewPlane()
	floor.Material = material.Default()
	floor.Material.Color = geom.NewColor(0.8, 0.8, 0.8)
	floor.Material.Specular = 0
	floorPattern := pattern.NewRing(geom.NewColor(0.9, 0.9, 0.9), geom.NewColor(0.4, 0.4, 0.4))
	floor.Material.Pattern = &floorPattern

	w := world.New()
	w.Objects = []*shape.Object{floor, checkered, mirror, glass}
	w.Lights = []light.PointLight{
		light.NewPointLight(geom.Point(5, 5, -5), geom.White),
	}

	cam := camera.New(widthPx, heightPx, math.Pi/3)
	cam.SetTransform(geom.ViewTransform(
		geom.Point(0, 1.5, -6),
		geom.Point(0, 1, 0),
		geom.Vector(0, 1, 0),
	))

	return w, cam
}
