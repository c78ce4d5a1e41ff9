// Package xs pairs a shape's intersection distances back up with the
// object hit, and selects which intersection a ray actually stops at.
package xs

import (
	"sort"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/shape"
)

// Intersection is one ray/object hit at parameter T. Object is a
// pointer back into the scene's shape set rather than a copy or an
// index: valid for the lifetime of a single intersect-then-shade
// cycle, never retained past the pixel that produced it.
type Intersection struct {
	T      float64
	Object *shape.Object
}

// Intersect transforms worldRay against obj and wraps the resulting
// t-values with a back-reference to obj.
func Intersect(obj *shape.Object, worldRay geom.Ray) ([]Intersection, error) {
	ts, err := obj.Intersect(worldRay)
	if err != nil {
		return nil, err
	}
	out := make([]Intersection, len(ts))
	for i, t := range ts {
		out[i] = Intersection{T: t, Object: obj}
	}
	return out, nil
}

// Sort orders intersections ascending by T, the order every downstream
// consumer (Hit, the n1/n2 container walk) assumes.
func Sort(xs []Intersection) {
	sort.Slice(xs, func(i, j int) bool { return xs[i].T < xs[j].T })
}

// Hit returns the intersection with the lowest non-negative T, or
// (Intersection{}, false) if every intersection is behind the ray's
// origin. xs does not need to be pre-sorted.
func Hit(xs []Intersection) (Intersection, bool) {
	var best Intersection
	found := false
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !found || x.T < best.T {
			best = x
			found = true
		}
	}
	return best, found
}
