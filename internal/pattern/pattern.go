// Package pattern implements the tagged procedural color patterns a
// Material can carry: stripes, rings, checkers, gradients, a constant
// plain variant, and a test variant that echoes the point as a color.
package pattern

import (
	"math"

	"github.com/virefract/tracer/internal/geom"
)

type Kind int

const (
	Plain Kind = iota
	Stripe
	Ring
	Checker
	Gradient
	RadialGradient
	Test
)

// Pattern is a tagged struct rather than an interface implemented by
// per-kind types: Kind selects which fields are meaningful, avoiding a
// trait-object/closure indirection for what is, at the leaves, a
// handful of closed-form functions of a local-space point.
type Pattern struct {
	Kind Kind

	// Colors holds the palette for Stripe and Ring (indexed mod
	// len(Colors)); Gradient/RadialGradient/Checker use A/B;
	// Plain uses A alone.
	Colors []geom.Color
	A, B   geom.Color

	Transform geom.Cached
}

func newPattern(k Kind) Pattern {
	return Pattern{Kind: k, Transform: geom.NewCached(geom.Identity)}
}

func NewPlain(c geom.Color) Pattern {
	p := newPattern(Plain)
	p.A = c
	return p
}

func NewTest() Pattern {
	return newPattern(Test)
}

func NewStripe(colors ...geom.Color) Pattern {
	p := newPattern(Stripe)
	p.Colors = append([]geom.Color(nil), colors...)
	return p
}

func NewRing(colors ...geom.Color) Pattern {
	p := newPattern(Ring)
	p.Colors = append([]geom.Color(nil), colors...)
	return p
}

func NewGradient(from, to geom.Color) Pattern {
	p := newPattern(Gradient)
	p.A, p.B = from, to
	return p
}

func NewRadialGradient(a, b geom.Color) Pattern {
	p := newPattern(RadialGradient)
	p.A, p.B = a, b
	return p
}

func NewChecker(a, b geom.Color) Pattern {
	p := newPattern(Checker)
	p.A, p.B = a, b
	return p
}

func (p Pattern) SetTransform(m geom.Matrix) Pattern {
	p.Transform = geom.NewCached(m)
	return p
}

// ColorAt evaluates the pattern at a point already in the pattern's
// own local space.
func (p Pattern) ColorAt(point geom.Tuple) geom.Color {
	switch p.Kind {
	case Stripe:
		idx := int(math.Abs(math.Floor(point.X*float64(len(p.Colors))))) % len(p.Colors)
		return p.Colors[idx]
	case Ring:
		distance := math.Sqrt(point.X*point.X + point.Z*point.Z)
		idx := int(math.Floor(distance)) % len(p.Colors)
		if idx < 0 {
			idx += len(p.Colors)
		}
		return p.Colors[idx]
	case Checker:
		sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
		if math.Mod(sum, 2) == 0 {
			return p.A
		}
		return p.B
	case Gradient:
		return p.A.Add(p.B.Sub(p.A).Scale(point.X))
	case RadialGradient:
		fraction := math.Sqrt(
			math.Pow(point.X-math.Floor(point.X), 2) + math.Pow(point.Z-math.Floor(point.Z), 2),
		)
		return p.A.Add(p.B.Sub(p.A).Scale(fraction))
	case Test:
		return geom.NewColor(point.X, point.Y, point.Z)
	default:
		return p.A
	}
}

// ColorAtObject maps a world-space point through the object's inverse
// transform and then this pattern's own inverse transform before
// evaluating ColorAt, so patterns can be scaled/rotated independently
// of the shape they decorate.
func (p Pattern) ColorAtObject(objInverse geom.Matrix, worldPoint geom.Tuple) (geom.Color, error) {
	objPoint := objInverse.MulTuple(worldPoint)
	patInv, err := p.Transform.Inverse()
	if err != nil {
		return geom.Color{}, err
	}
	return p.ColorAt(patInv.MulTuple(objPoint)), nil
}
