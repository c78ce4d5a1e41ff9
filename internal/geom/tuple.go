// Package geom implements the tuple, color, matrix and ray primitives
// the rest of the renderer is built on.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// Tuple is a point (w=1) or a vector (w=0). Arithmetic between tuples
// is only meaningful when the w values obey the point/vector algebra:
// point-point=vector, point+-vector=point, vector+-vector=vector. Add
// and Sub panic with ErrInvalidTupleKind on the two combinations that
// aren't (point+point, vector-point).
type Tuple struct {
	X, Y, Z, W float64
}

func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

func (t Tuple) IsPoint() bool  { return t.W == 1 }
func (t Tuple) IsVector() bool { return t.W == 0 }

func (t Tuple) String() string {
	kind := "vector"
	if t.IsPoint() {
		kind = "point"
	}
	return fmt.Sprintf("%s(%.4f, %.4f, %.4f)", kind, t.X, t.Y, t.Z)
}

// ErrInvalidTupleKind marks arithmetic that violates the point/vector
// algebra: point+point and vector-point have no geometric meaning. It
// signals a malformed call site, not a condition a renderer recovers
// from mid-computation, so Add and Sub panic with it; a render's
// top-level driver recovers the panic to abort with a descriptive
// message instead of a bare stack trace.
var ErrInvalidTupleKind = errors.New("geom: invalid tuple arithmetic")

// Add adds two tuples componentwise, including w. Only point+vector,
// vector+point and vector+vector are well-formed; point+point panics.
func (t Tuple) Add(o Tuple) Tuple {
	if t.W+o.W > 1 {
		panic(fmt.Errorf("%w: point+point (%v + %v)", ErrInvalidTupleKind, t, o))
	}
	return Tuple{t.X + o.X, t.Y + o.Y, t.Z + o.Z, t.W + o.W}
}

// Sub subtracts o from t componentwise, including w. point-point,
// point-vector and vector-vector are well-formed; vector-point panics.
func (t Tuple) Sub(o Tuple) Tuple {
	if t.W-o.W < 0 {
		panic(fmt.Errorf("%w: vector-point (%v - %v)", ErrInvalidTupleKind, t, o))
	}
	return Tuple{t.X - o.X, t.Y - o.Y, t.Z - o.Z, t.W - o.W}
}

func (t Tuple) Neg() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

func (t Tuple) Scale(s float64) Tuple {
	return Tuple{t.X * s, t.Y * s, t.Z * s, t.W * s}
}

func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

func (t Tuple) Normalize() Tuple {
	m := t.Magnitude()
	return Tuple{t.X / m, t.Y / m, t.Z / m, t.W / m}
}

func (t Tuple) Dot(o Tuple) float64 {
	return t.X*o.X + t.Y*o.Y + t.Z*o.Z + t.W*o.W
}

// Cross is only defined for vectors; the w component is dropped.
func (t Tuple) Cross(o Tuple) Tuple {
	return Vector(
		t.Y*o.Z-t.Z*o.Y,
		t.Z*o.X-t.X*o.Z,
		t.X*o.Y-t.Y*o.X,
	)
}

// Reflect reflects this vector around normal n.
func (t Tuple) Reflect(n Tuple) Tuple {
	return t.Sub(n.Scale(2 * t.Dot(n)))
}

const epsilon = 1e-5

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func (t Tuple) Equal(o Tuple) bool {
	return approxEqual(t.X, o.X) && approxEqual(t.Y, o.Y) &&
		approxEqual(t.Z, o.Z) && approxEqual(t.W, o.W)
}

// Color is linear RGB in 64-bit float. It is intentionally a distinct
// type from Tuple: colors have no point/vector discriminant and
// support Hadamard (component-wise) products, which tuples do not.
type Color struct {
	R, G, B float64
}

func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B}
}

func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul is the Hadamard (component-wise) product, used to combine a
// surface color with a light's intensity.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c Color) Equal(o Color) bool {
	return approxEqual(c.R, o.R) && approxEqual(c.G, o.G) && approxEqual(c.B, o.B)
}

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}

// Clamp returns a copy of c with each component clamped to [0,1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Byte clamps each component to [0,1] and truncates it into [0,255],
// the conversion a canvas uses when packing pixels for output.
func (c Color) Byte() (r, g, b uint8) {
	cl := c.Clamp()
	return uint8(cl.R * 255), uint8(cl.G * 255), uint8(cl.B * 255)
}
