// Package world ties shapes and lights together into a scene and
// implements the recursive shading pipeline: intersecting a ray against
// every object, computing the shading record at a hit, and combining
// direct lighting with reflected and refracted contributions.
package world

import (
	"math"
	"sort"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/light"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/shape"
	"github.com/virefract/tracer/internal/xs"
)

type World struct {
	Objects []*shape.Object
	Lights  []light.PointLight

	// Ambient is an optional scene-wide ambient fill color, folded once
	// per shaded point on top of each light's own ambient term. It is
	// the zero Color by default, which leaves ShadeHit's output as the
	// plain per-light Phong sum; a scene description that wants a
	// global ambient wash (the gmlscene render builtin's ambient-light
	// argument) sets it explicitly.
	Ambient geom.Color
}

func New() *World {
	return &World{}
}

// Default builds the canonical two-sphere, one-light scene every
// shading test in this package is checked against.
func Default() *World {
	s1 := shape.NewSphere()
	s1.Material = material.Default()
	s1.Material.Color = geom.NewColor(0.8, 1.0, 0.6)
	s1.Material.Diffuse = 0.7
	s1.Material.Specular = 0.2

	s2 := shape.NewSphere()
	s2.SetTransform(geom.Scaling(0.5, 0.5, 0.5))

	return &World{
		Objects: []*shape.Object{s1, s2},
		Lights:  []light.PointLight{light.NewPointLight(geom.Point(-10, 10, -10), geom.White)},
	}
}

// WarmInverses forces every object and pattern transform's inverse to
// be computed once, up front. internal/camera calls this before
// dispatching render workers so the concurrent hot path only ever
// reads an already-populated cache.
func (w *World) WarmInverses() error {
	for _, o := range w.Objects {
		if err := o.Transform.Warm(); err != nil {
			return err
		}
		if o.Material.Pattern != nil {
			if err := o.Material.Pattern.Transform.Warm(); err != nil {
				return err
			}
		}
	}
	return nil
}

// IntersectWorld intersects ray against every object, retains only the
// intersections ahead of the ray's origin (t > 0), and returns them
// sorted ascending by T. PrepareComputations needs the full ahead-of-
// origin list, not just the hit, so it can walk the nested-refractive-
// container state up to the chosen hit.
func (w *World) IntersectWorld(ray geom.Ray) ([]xs.Intersection, error) {
	var all []xs.Intersection
	for _, o := range w.Objects {
		hits, err := xs.Intersect(o, ray)
		if err != nil {
			return nil, err
		}
		for _, h := range hits {
			if h.T > 0 {
				all = append(all, h)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].T < all[j].T })
	return all, nil
}

const shadowEpsilon = 1e-5

// IsShadowedForLight reports whether point is blocked from l by any
// shadow-casting object in w.
func (w *World) IsShadowedForLight(point geom.Tuple, l light.PointLight) (bool, error) {
	pointToLight := l.Position.Sub(point)
	distance := pointToLight.Magnitude()
	direction := pointToLight.Normalize()

	ray := geom.NewRay(point, direction)
	allXS, err := w.IntersectWorld(ray)
	if err != nil {
		return false, err
	}
	for _, x := range allXS {
		if !x.Object.CastsShadow {
			continue
		}
		if x.T > shadowEpsilon && x.T < distance {
			return true, nil
		}
	}
	return false, nil
}

// Computation is the shading record prepared at a single intersection:
// the point, the eye/normal/reflect vectors, whether the ray originated
// inside the object, and the nested-refractive-media indices n1/n2.
type Computation struct {
	T          float64
	Object     *shape.Object
	Point      geom.Tuple
	OverPoint  geom.Tuple
	UnderPoint geom.Tuple
	EyeV       geom.Tuple
	NormalV    geom.Tuple
	ReflectV   geom.Tuple
	Inside     bool
	N1, N2     float64
}

const computationEpsilon = 1e-11

// PrepareComputations builds the shading record for hit given the ray
// that produced it and the full, ascending-sorted intersection list
// the hit came from. The n1/n2 pair is derived by walking a stack of
// "currently entered" refractive objects from the first intersection
// up to and including hit, exactly tracking which transparent object
// the ray is inside of at each boundary crossing.
func PrepareComputations(hit xs.Intersection, ray geom.Ray, allXS []xs.Intersection) (Computation, error) {
	var c Computation
	c.T = hit.T
	c.Object = hit.Object
	c.Point = ray.Position(hit.T)
	c.EyeV = ray.Direction.Neg()

	normalv, err := hit.Object.NormalAt(c.Point)
	if err != nil {
		return Computation{}, err
	}
	if normalv.Dot(c.EyeV) < 0 {
		c.Inside = true
		normalv = normalv.Neg()
	}
	c.NormalV = normalv
	c.ReflectV = ray.Direction.Reflect(normalv)
	c.OverPoint = c.Point.Add(c.NormalV.Scale(computationEpsilon))
	c.UnderPoint = c.Point.Sub(c.NormalV.Scale(computationEpsilon))

	var containers []*shape.Object
	contains := func(o *shape.Object) int {
		for i, c := range containers {
			if c == o {
				return i
			}
		}
		return -1
	}

	for _, x := range allXS {
		isHit := x == hit
		if isHit {
			if len(containers) == 0 {
				c.N1 = 1.0
			} else {
				c.N1 = containers[len(containers)-1].Material.RefractiveIndex
			}
		}

		if i := contains(x.Object); i >= 0 {
			containers = append(containers[:i], containers[i+1:]...)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			if len(containers) == 0 {
				c.N2 = 1.0
			} else {
				c.N2 = containers[len(containers)-1].Material.RefractiveIndex
			}
			break
		}
	}

	return c, nil
}

// MaxDepth is the default reflection/refraction recursion budget that
// callers pass as ColorAt's depth argument. The recursion itself is
// bounded by whatever depth the caller passes: each reflected or
// refracted ray decrements it, and at zero they return black.
const MaxDepth = 5

// ColorAt fires ray into w and returns the shaded color at whatever it
// hits, or black if nothing is hit. depth bounds the recursive
// reflection/refraction calls shade_hit makes.
func (w *World) ColorAt(ray geom.Ray, depth int) (geom.Color, error) {
	allXS, err := w.IntersectWorld(ray)
	if err != nil {
		return geom.Color{}, err
	}
	hit, ok := xs.Hit(allXS)
	if !ok {
		return geom.Black, nil
	}
	comps, err := PrepareComputations(hit, ray, allXS)
	if err != nil {
		return geom.Color{}, err
	}
	return w.ShadeHit(comps, depth)
}

// ShadeHit combines every light's direct Phong contribution at comps
// with the reflected and refracted contributions, using Schlick to mix
// the latter two when the surface is both reflective and transparent.
func (w *World) ShadeHit(comps Computation, depth int) (geom.Color, error) {
	base, err := light.SurfaceColor(comps.Object.Material, comps.Object, comps.OverPoint)
	if err != nil {
		return geom.Color{}, err
	}
	surface := base.Mul(w.Ambient).Scale(comps.Object.Material.Ambient)
	for _, l := range w.Lights {
		shadowed, err := w.IsShadowedForLight(comps.OverPoint, l)
		if err != nil {
			return geom.Color{}, err
		}
		contribution, err := light.Lighting(comps.Object.Material, comps.Object, l, comps.OverPoint, comps.EyeV, comps.NormalV, shadowed)
		if err != nil {
			return geom.Color{}, err
		}
		surface = surface.Add(contribution)
	}

	reflected, err := w.ReflectedColor(comps, depth)
	if err != nil {
		return geom.Color{}, err
	}
	refracted, err := w.RefractedColor(comps, depth)
	if err != nil {
		return geom.Color{}, err
	}

	m := comps.Object.Material
	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := Schlick(comps)
		return surface.Add(reflected.Scale(reflectance)).Add(refracted.Scale(1 - reflectance)), nil
	}
	return surface.Add(reflected).Add(refracted), nil
}

// ReflectedColor recurses ColorAt along the reflection ray, stopping
// at depth 0 or a non-reflective material.
func (w *World) ReflectedColor(comps Computation, depth int) (geom.Color, error) {
	if depth <= 0 || comps.Object.Material.Reflective == 0 {
		return geom.Black, nil
	}
	reflectRay := geom.NewRay(comps.OverPoint, comps.ReflectV)
	color, err := w.ColorAt(reflectRay, depth-1)
	if err != nil {
		return geom.Color{}, err
	}
	return color.Scale(comps.Object.Material.Reflective), nil
}

// RefractedColor recurses ColorAt along the refraction ray derived via
// Snell's law, returning black on total internal reflection, an opaque
// material, or a depth-zero budget.
func (w *World) RefractedColor(comps Computation, depth int) (geom.Color, error) {
	if depth <= 0 || comps.Object.Material.Transparency == 0 {
		return geom.Black, nil
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return geom.Black, nil
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Scale(nRatio*cosI - cosT).Sub(comps.EyeV.Scale(nRatio))
	refractRay := geom.NewRay(comps.UnderPoint, direction)

	color, err := w.ColorAt(refractRay, depth-1)
	if err != nil {
		return geom.Color{}, err
	}
	return color.Scale(comps.Object.Material.Transparency), nil
}

// Schlick approximates the Fresnel reflectance at comps: the fraction
// of light that reflects rather than refracts at this angle.
func Schlick(comps Computation) float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1.0
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := math.Pow((comps.N1-comps.N2)/(comps.N1+comps.N2), 2)
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
