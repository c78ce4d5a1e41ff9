package gmlscene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/virefract/tracer/internal/camera"
	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/light"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/pattern"
)

// Value is anything that can sit on the evaluator's stack or live in
// its environment. The scalar variants (VInt..VArray) are the
// language's own arithmetic and closure machinery; the rest wrap the
// renderer's domain types so scene files can build and wire them up
// directly on the stack.
type Value interface {
	fmt.Stringer
	value()
}

type VInt int64

func (VInt) value() {}

func (v VInt) String() string { return strconv.FormatInt(int64(v), 10) }

type VReal float64

func (VReal) value() {}

func (v VReal) String() string { return FormatFloat(float64(v)) }

type VBool bool

func (VBool) value() {}

func (v VBool) String() string { return strconv.FormatBool(bool(v)) }

type VString string

func (VString) value() {}

func (v VString) String() string { return strconv.Quote(string(v)) }

type VClosure struct {
	Code TokenList
	Env  map[string]Value
}

func (VClosure) value() {}

func formatMap[V fmt.Stringer](m map[string]V) string {
	var sb strings.Builder
	sb.WriteString("{")
	for k, v := range m {
		if sb.Len() > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v.String())
	}
	sb.WriteString("}")
	return sb.String()
}

func (v VClosure) String() string {
	return fmt.Sprintf("Closure(%v, env=%v)", v.Code, formatMap(v.Env))
}

type VArray struct {
	Elements []Value
}

func (VArray) value() {}

func (a VArray) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// VTuple wraps a geom.Tuple, built on the stack by the point/vector
// builtins.
type VTuple struct{ T geom.Tuple }

func (VTuple) value() {}

func (v VTuple) String() string { return v.T.String() }

// VColor wraps a geom.Color, built on the stack by the color builtin
// (and reused wherever a light or pattern wants an RGB triple).
type VColor struct{ C geom.Color }

func (VColor) value() {}

func (v VColor) String() string {
	return fmt.Sprintf("Color(%v, %v, %v)", v.C.R, v.C.G, v.C.B)
}

// VMaterial wraps a material.Material.
type VMaterial struct{ M material.Material }

func (VMaterial) value() {}

func (v VMaterial) String() string { return fmt.Sprintf("Material(%+v)", v.M) }

// VPattern wraps a *pattern.Pattern and implements Transformable so
// translate/scale/rotate can be applied directly to a pattern value,
// not only to a shape.
type VPattern struct{ P *pattern.Pattern }

func (VPattern) value() {}

func (v VPattern) String() string { return fmt.Sprintf("Pattern(kind=%v)", v.P.Kind) }

func (v VPattern) WithTransform(m geom.Matrix) Value {
	clone := *v.P
	clone.Transform = geom.NewCached(clone.Transform.M.Then(m))
	return VPattern{P: &clone}
}

// VLight wraps a light.PointLight.
type VLight struct{ L light.PointLight }

func (VLight) value() {}

func (v VLight) String() string {
	return fmt.Sprintf("PointLight(pos=%v, intensity=%v)", v.L.Position, v.L.Intensity)
}

// VCamera wraps a *camera.Camera and implements Transformable so a
// view transform can be composed onto it the same way a shape's is.
type VCamera struct{ C *camera.Camera }

func (VCamera) value() {}

func (v VCamera) String() string {
	return fmt.Sprintf("Camera(%dx%d, fov=%v)", v.C.HSize, v.C.VSize, v.C.FieldOfView)
}

func (v VCamera) WithTransform(m geom.Matrix) Value {
	clone := *v.C
	clone.Transform = geom.NewCached(clone.Transform.M.Then(m))
	return VCamera{C: &clone}
}

// Transformable is implemented by every value kind that translate,
// scale, rotatex/y/z and shear can operate on: they pop one of these
// plus the transform's own parameters and push the same kind back
// with the new matrix pre-composed via Matrix.Then.
type Transformable interface {
	Value
	WithTransform(m geom.Matrix) Value
}
