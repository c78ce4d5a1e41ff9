package geom

import "math"

func Translation(x, y, z float64) Matrix {
	m := Identity
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

func Scaling(x, y, z float64) Matrix {
	m := Identity
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

func RotationX(r float64) Matrix {
	m := Identity
	c, s := math.Cos(r), math.Sin(r)
	m[1][1], m[1][2] = c, -s
	m[2][1], m[2][2] = s, c
	return m
}

func RotationY(r float64) Matrix {
	m := Identity
	c, s := math.Cos(r), math.Sin(r)
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return m
}

func RotationZ(r float64) Matrix {
	m := Identity
	c, s := math.Cos(r), math.Sin(r)
	m[0][0], m[0][1] = c, -s
	m[1][0], m[1][1] = s, c
	return m
}

// Shearing moves each coordinate in proportion to the other two, in
// the order xy, xz, yx, yz, zx, zy.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	m := Identity
	m[0][1], m[0][2] = xy, xz
	m[1][0], m[1][2] = yx, yz
	m[2][0], m[2][1] = zx, zy
	return m
}

// ViewTransform builds the world-to-camera matrix that places an eye
// at from, looking toward to, with up as the rough upward direction.
// It orients the scene as if the eye were at the origin looking down
// -z, which is what every shape/ray computation assumes.
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Sub(from).Normalize()
	upn := up.Normalize()
	left := forward.Cross(upn)
	trueUp := left.Cross(forward)

	orientation := Matrix{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z))
}
