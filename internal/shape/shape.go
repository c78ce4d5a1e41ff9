// Package shape implements the primitive shape kinds the renderer
// intersects rays against: Sphere, Plane, and Test (a non-rendering
// probe used to exercise the shape pipeline in isolation).
package shape

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/material"
)

type Kind int

const (
	Sphere Kind = iota
	Plane
	Test
)

var nextID int64

// Object is a tagged shape value: one struct for every kind, switched
// on in LocalIntersect/LocalNormalAt. This avoids a Shape interface
// with one implementing type per kind, per the rest of this package's
// guidance to favor closed enums over dynamic dispatch where the
// variant set is small and fixed.
type Object struct {
	ID            int64
	Kind          Kind
	Transform     geom.Cached
	Material      material.Material
	CastsShadow   bool
	savedLocalRay geom.Ray // Test kind only: records the ray LocalIntersect saw.
}

func newObject(k Kind) *Object {
	return &Object{
		ID:          atomic.AddInt64(&nextID, 1),
		Kind:        k,
		Transform:   geom.NewCached(geom.Identity),
		Material:    material.Default(),
		CastsShadow: true,
	}
}

func NewSphere() *Object { return newObject(Sphere) }
func NewPlane() *Object  { return newObject(Plane) }
func NewTest() *Object   { return newObject(Test) }

func (o *Object) SetTransform(m geom.Matrix) {
	o.Transform = geom.NewCached(m)
}

// SavedRay returns the last ray LocalIntersect received, in object
// space. Only meaningful for Kind == Test; it exists so tests can
// introspect how a world-space ray was transformed into object space
// without the shape doing anything with it.
func (o *Object) SavedRay() geom.Ray {
	return o.savedLocalRay
}

// LocalIntersect computes intersection distances against this shape
// in its own object space (the caller is responsible for transforming
// the ray first). Returns the t-values only; internal/xs pairs them
// back up with the *Object.
func (o *Object) LocalIntersect(localRay geom.Ray) []float64 {
	switch o.Kind {
	case Sphere:
		return sphereLocalIntersect(localRay)
	case Plane:
		return planeLocalIntersect(localRay)
	case Test:
		o.savedLocalRay = localRay
		return nil
	default:
		return nil
	}
}

// Intersect transforms worldRay into object space via the cached
// inverse transform and returns the resulting local t-values.
func (o *Object) Intersect(worldRay geom.Ray) ([]float64, error) {
	inv, err := o.Transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", o.ID, err)
	}
	return o.LocalIntersect(worldRay.Transform(inv)), nil
}

func sphereLocalIntersect(r geom.Ray) []float64 {
	sphereToRay := r.Origin.Sub(geom.Point(0, 0, 0))
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	sq := math.Sqrt(discriminant)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	return []float64{t1, t2}
}

const planeEpsilon = 1e-5

func planeLocalIntersect(r geom.Ray) []float64 {
	if math.Abs(r.Direction.Y) < planeEpsilon {
		return nil
	}
	t := -r.Origin.Y / r.Direction.Y
	return []float64{t}
}

// LocalNormalAt computes the surface normal in object space at a
// point already in object space.
func (o *Object) LocalNormalAt(localPoint geom.Tuple) geom.Tuple {
	switch o.Kind {
	case Sphere:
		return localPoint.Sub(geom.Point(0, 0, 0))
	case Plane:
		return geom.Vector(0, 1, 0)
	case Test:
		return geom.Vector(localPoint.X, localPoint.Y, localPoint.Z)
	default:
		return geom.Vector(0, 0, 0)
	}
}

// NormalAt computes the world-space normal at worldPoint: the point is
// brought into object space via the inverse transform, the local
// normal is computed, then carried back to world space via the
// transpose of the inverse (so non-uniform scaling doesn't skew it),
// with w forced back to 0 before normalizing.
func (o *Object) NormalAt(worldPoint geom.Tuple) (geom.Tuple, error) {
	inv, err := o.Transform.Inverse()
	if err != nil {
		return geom.Tuple{}, fmt.Errorf("object %d: %w", o.ID, err)
	}
	localPoint := inv.MulTuple(worldPoint)
	localNormal := o.LocalNormalAt(localPoint)
	worldNormal := inv.Transpose().MulTuple(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize(), nil
}
