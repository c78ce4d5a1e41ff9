package gmlscene

import (
	"fmt"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/pattern"
	"github.com/virefract/tracer/internal/shape"
)

// SceneNode is a value that ultimately contributes one or more shapes
// to a rendered world: a bare shape, or a union grouping several
// nodes together. translate/scale/rotate on a group recurse into
// every member, so a single transform call reaches every shape the
// group was built from.
type SceneNode interface {
	Value
	Flatten() []*shape.Object
}

// VShape wraps a *shape.Object.
type VShape struct{ Object *shape.Object }

func (VShape) value() {}

func (v VShape) String() string {
	return fmt.Sprintf("Shape(kind=%v, id=%d)", v.Object.Kind, v.Object.ID)
}

func (v VShape) Flatten() []*shape.Object { return []*shape.Object{v.Object} }

func (v VShape) WithTransform(m geom.Matrix) Value {
	clone := *v.Object
	clone.Transform = geom.NewCached(clone.Transform.M.Then(m))
	return VShape{Object: &clone}
}

// WithMaterial returns a copy of v carrying m.
func (v VShape) WithMaterial(m material.Material) VShape {
	clone := *v.Object
	clone.Material = m
	return VShape{Object: &clone}
}

// WithPattern returns a copy of v whose material's pattern is p.
func (v VShape) WithPattern(p *pattern.Pattern) VShape {
	clone := *v.Object
	clone.Material.Pattern = p
	return VShape{Object: &clone}
}

// WithCastsShadow returns a copy of v with CastsShadow set to cast.
func (v VShape) WithCastsShadow(cast bool) VShape {
	clone := *v.Object
	clone.CastsShadow = cast
	return VShape{Object: &clone}
}

// VGroup is a union of scene nodes, transformed and flattened as one.
type VGroup struct{ Nodes []SceneNode }

func (VGroup) value() {}

func (v VGroup) String() string {
	return fmt.Sprintf("Union(%v)", v.Nodes)
}

func (v VGroup) Flatten() []*shape.Object {
	var out []*shape.Object
	for _, n := range v.Nodes {
		out = append(out, n.Flatten()...)
	}
	return out
}

func (v VGroup) WithTransform(m geom.Matrix) Value {
	nodes := make([]SceneNode, len(v.Nodes))
	for i, n := range v.Nodes {
		t, ok := n.(Transformable)
		if !ok {
			nodes[i] = n
			continue
		}
		nodes[i] = t.WithTransform(m).(SceneNode)
	}
	return VGroup{Nodes: nodes}
}
