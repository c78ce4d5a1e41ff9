package gmlscene

import (
	"fmt"
	"math"

	"github.com/virefract/tracer/internal/camera"
	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/light"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/pattern"
	"github.com/virefract/tracer/internal/shape"
)

func init() {
	builtins = map[string]*Builtin{}

	registerBuiltin := func(name string, f stateModifier) {
		builtins[name] = &Builtin{Name: name, Func: f}
	}

	registerBuiltin("addi", addi)
	registerBuiltin("apply", apply)

	registerBuiltin("point", point)
	registerBuiltin("vector", vector)
	registerBuiltin("color", color)

	registerBuiltin("sphere", sphereBuiltin)
	registerBuiltin("plane", planeBuiltin)

	registerBuiltin("material", materialBuiltin)
	registerBuiltin("plain", plainPattern)
	registerBuiltin("stripe", stripePattern)
	registerBuiltin("ring", ringPattern)
	registerBuiltin("checker", checkerPattern)
	registerBuiltin("gradient", gradientPattern)
	registerBuiltin("radial-gradient", radialGradientPattern)

	registerBuiltin("translate", translate)
	registerBuiltin("scale", scale)
	registerBuiltin("uscale", uscale)
	registerBuiltin("rotatex", rotatex)
	registerBuiltin("rotatey", rotatey)
	registerBuiltin("rotatez", rotatez)
	registerBuiltin("shear", shear)

	registerBuiltin("set-material", setMaterial)
	registerBuiltin("set-pattern", setPattern)
	registerBuiltin("set-casts-shadow", setCastsShadow)

	registerBuiltin("pointlight", pointlight)
	registerBuiltin("union", union)
	registerBuiltin("camera", cameraBuiltin)
	registerBuiltin("render", render)
}

func addi(e *EvalState) error {
	a, err := popValue[VInt](e)
	if err != nil {
		return err
	}
	b, err := popValue[VInt](e)
	if err != nil {
		return err
	}
	e.push(a + b)
	return nil
}

func apply(e *EvalState) error {
	closure, err := popValue[VClosure](e)
	if err != nil {
		return err
	}
	oldEnv := e.Env
	defer func() { e.Env = oldEnv }()
	e.Env = closure.Env
	return e.Eval(closure.Code)
}

func point(e *EvalState) error {
	x, y, z, err := pop3[VReal](e)
	if err != nil {
		return err
	}
	e.push(VTuple{T: geom.Point(float64(x), float64(y), float64(z))})
	return nil
}

func vector(e *EvalState) error {
	x, y, z, err := pop3[VReal](e)
	if err != nil {
		return err
	}
	e.push(VTuple{T: geom.Vector(float64(x), float64(y), float64(z))})
	return nil
}

func color(e *EvalState) error {
	r, g, b, err := pop3[VReal](e)
	if err != nil {
		return err
	}
	e.push(VColor{C: geom.NewColor(float64(r), float64(g), float64(b))})
	return nil
}

func sphereBuiltin(e *EvalState) error {
	e.push(VShape{Object: shape.NewSphere()})
	return nil
}

func planeBuiltin(e *EvalState) error {
	e.push(VShape{Object: shape.NewPlane()})
	return nil
}

// materialBuiltin pops, in reverse order, refractive-index,
// transparency, reflective, shininess, specular, diffuse, ambient and
// a base color, and pushes the resulting material.Material.
func materialBuiltin(e *EvalState) error {
	refractiveIndex, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	transparency, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	reflective, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	shininess, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	specular, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	diffuse, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	ambient, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	col, err := popValue[VColor](e)
	if err != nil {
		return err
	}
	e.push(VMaterial{M: material.Material{
		Color:           col.C,
		Ambient:         float64(ambient),
		Diffuse:         float64(diffuse),
		Specular:        float64(specular),
		Shininess:       float64(shininess),
		Reflective:      float64(reflective),
		Transparency:    float64(transparency),
		RefractiveIndex: float64(refractiveIndex),
	}})
	return nil
}

func plainPattern(e *EvalState) error {
	c, err := popValue[VColor](e)
	if err != nil {
		return err
	}
	p := pattern.NewPlain(c.C)
	e.push(VPattern{P: &p})
	return nil
}

func twoColorPattern(e *EvalState, build func(a, b geom.Color) pattern.Pattern) error {
	b, err := popValue[VColor](e)
	if err != nil {
		return err
	}
	a, err := popValue[VColor](e)
	if err != nil {
		return err
	}
	p := build(a.C, b.C)
	e.push(VPattern{P: &p})
	return nil
}

func stripePattern(e *EvalState) error {
	return twoColorPattern(e, func(a, b geom.Color) pattern.Pattern { return pattern.NewStripe(a, b) })
}

func ringPattern(e *EvalState) error {
	return twoColorPattern(e, func(a, b geom.Color) pattern.Pattern { return pattern.NewRing(a, b) })
}

func checkerPattern(e *EvalState) error {
	return twoColorPattern(e, pattern.NewChecker)
}

func gradientPattern(e *EvalState) error {
	return twoColorPattern(e, pattern.NewGradient)
}

func radialGradientPattern(e *EvalState) error {
	return twoColorPattern(e, pattern.NewRadialGradient)
}

func popTransformTarget(e *EvalState) (Transformable, error) {
	v, err := e.pop()
	if err != nil {
		return nil, err
	}
	t, ok := v.(Transformable)
	if !ok {
		return nil, fmt.Errorf("type mismatch (evaluating %s): %v (%T) does not carry a transform", TokenGroupDebugString(e.CurrToken), v, v)
	}
	return t, nil
}

func translate(e *EvalState) error {
	x, y, z, err := pop3[VReal](e)
	if err != nil {
		return err
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.Translation(float64(x), float64(y), float64(z))))
	return nil
}

func scale(e *EvalState) error {
	x, y, z, err := pop3[VReal](e)
	if err != nil {
		return err
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.Scaling(float64(x), float64(y), float64(z))))
	return nil
}

func uscale(e *EvalState) error {
	s, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.Scaling(float64(s), float64(s), float64(s))))
	return nil
}

func degreesToRadians(d float64) float64 { return d * math.Pi / 180 }

func rotatex(e *EvalState) error {
	deg, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.RotationX(degreesToRadians(float64(deg)))))
	return nil
}

func rotatey(e *EvalState) error {
	deg, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.RotationY(degreesToRadians(float64(deg)))))
	return nil
}

func rotatez(e *EvalState) error {
	deg, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.RotationZ(degreesToRadians(float64(deg)))))
	return nil
}

// shear pops, in reverse order, zy zx yz yx xz xy and a transform
// target, matching geom.Shearing's parameter order.
func shear(e *EvalState) error {
	var f [6]VReal
	var err error
	for i := 5; i >= 0; i-- {
		if f[i], err = popValue[VReal](e); err != nil {
			return err
		}
	}
	t, err := popTransformTarget(e)
	if err != nil {
		return err
	}
	e.push(t.WithTransform(geom.Shearing(
		float64(f[0]), float64(f[1]), float64(f[2]),
		float64(f[3]), float64(f[4]), float64(f[5]),
	)))
	return nil
}

func setMaterial(e *EvalState) error {
	m, err := popValue[VMaterial](e)
	if err != nil {
		return err
	}
	s, err := popValue[VShape](e)
	if err != nil {
		return err
	}
	e.push(s.WithMaterial(m.M))
	return nil
}

func setPattern(e *EvalState) error {
	p, err := popValue[VPattern](e)
	if err != nil {
		return err
	}
	s, err := popValue[VShape](e)
	if err != nil {
		return err
	}
	e.push(s.WithPattern(p.P))
	return nil
}

func setCastsShadow(e *EvalState) error {
	cast, err := popValue[VBool](e)
	if err != nil {
		return err
	}
	s, err := popValue[VShape](e)
	if err != nil {
		return err
	}
	e.push(s.WithCastsShadow(bool(cast)))
	return nil
}

func pointlight(e *EvalState) error {
	intensity, err := popValue[VColor](e)
	if err != nil {
		return err
	}
	pos, err := popValue[VTuple](e)
	if err != nil {
		return err
	}
	e.push(VLight{L: light.NewPointLight(pos.T, intensity.C)})
	return nil
}

func union(e *EvalState) error {
	b, err := popValue[SceneNode](e)
	if err != nil {
		return err
	}
	a, err := popValue[SceneNode](e)
	if err != nil {
		return err
	}
	e.push(VGroup{Nodes: []SceneNode{a, b}})
	return nil
}

// cameraBuiltin pops, in reverse order, up, to, from, fov, vsize and
// hsize, and pushes a camera.Camera whose transform is the view
// transform from `from` looking at `to` with `up` as the up vector.
func cameraBuiltin(e *EvalState) error {
	up, err := popValue[VTuple](e)
	if err != nil {
		return err
	}
	to, err := popValue[VTuple](e)
	if err != nil {
		return err
	}
	from, err := popValue[VTuple](e)
	if err != nil {
		return err
	}
	fov, err := popValue[VReal](e)
	if err != nil {
		return err
	}
	vsize, err := popValue[VInt](e)
	if err != nil {
		return err
	}
	hsize, err := popValue[VInt](e)
	if err != nil {
		return err
	}
	cam := camera.New(int(hsize), int(vsize), float64(fov))
	cam.SetTransform(geom.ViewTransform(from.T, to.T, up.T))
	e.push(VCamera{C: cam})
	return nil
}

// render pops, in reverse order, an output filename, a recursion
// depth, a camera, the scene to render, an array of lights and an
// ambient light color, and hands the assembled RenderArgs to the
// host's Render callback.
func render(e *EvalState) error {
	file, err := popValue[VString](e)
	if err != nil {
		return err
	}
	depth, err := popValue[VInt](e)
	if err != nil {
		return err
	}
	cam, err := popValue[VCamera](e)
	if err != nil {
		return err
	}
	scene, err := popValue[SceneNode](e)
	if err != nil {
		return err
	}
	lights, err := popValue[VArray](e)
	if err != nil {
		return err
	}
	amb, err := popValue[VColor](e)
	if err != nil {
		return err
	}

	lightValues := make([]light.PointLight, len(lights.Elements))
	for i, l := range lights.Elements {
		vl, ok := l.(VLight)
		if !ok {
			return fmt.Errorf("expected lights array to contain lights, got %T", l)
		}
		lightValues[i] = vl.L
	}

	if e.Render == nil {
		return fmt.Errorf("render function not set")
	}
	return e.Render(&RenderArgs{
		AmbientLight: &amb.C,
		Lights:       lightValues,
		Scene:        scene,
		Camera:       cam.C,
		Depth:        int(depth),
		File:         string(file),
	})
}
