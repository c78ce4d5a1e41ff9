package geom

import (
	"fmt"
	"sync"
)

// Matrix is a 4x4 matrix of 64-bit floats. The renderer never needs
// general NxN matrices, so this is a fixed-size value type: cheap to
// copy, and its inverse can be cached alongside the value (see Cached)
// instead of behind a process-wide map keyed by content.
type Matrix [4][4]float64

// inverseCache holds the lazily-computed inverse of a Matrix. It is
// not part of Matrix's comparable value (Matrix is still usable as a
// map key / with ==) because it is carried alongside, not inside, the
// value — see Cached.
type inverseCache struct {
	once sync.Once
	inv  Matrix
	ok   bool
}

// Cached pairs a Matrix with a memoized inverse. Object, Pattern and
// Camera each own one of these instead of recomputing inverse(T) on
// every intersection/normal/ray_for_pixel call.
type Cached struct {
	M     Matrix
	cache *inverseCache
}

func NewCached(m Matrix) Cached {
	return Cached{M: m, cache: &inverseCache{}}
}

// Inverse returns the memoized inverse of M, computing it once. A
// render's pre-render warm-up pass (see internal/camera) calls this on
// every Object/Pattern/Camera transform before dispatching workers, so
// that the concurrent render loop only ever hits the already-populated
// cache.
func (c Cached) Inverse() (Matrix, error) {
	c.cache.once.Do(func() {
		inv, err := c.M.Inverse()
		if err == nil {
			c.cache.inv = inv
			c.cache.ok = true
		}
	})
	if !c.cache.ok {
		return Matrix{}, ErrNonInvertible
	}
	return c.cache.inv, nil
}

// Warm forces the inverse to be computed now, used by the render
// warm-up pass.
func (c Cached) Warm() error {
	_, err := c.Inverse()
	return err
}

var Identity = Matrix{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// Mul composes two matrices: (m * o).
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var v float64
			for i := 0; i < 4; i++ {
				v += m[row][i] * o[i][col]
			}
			r[row][col] = v
		}
	}
	return r
}

// Then composes transforms in application order: a.Then(b) means
// "apply a first, then b", which is b*a under matrix left-multiply
// convention.
func (a Matrix) Then(b Matrix) Matrix {
	return b.Mul(a)
}

// MulTuple applies the matrix to a tuple.
func (m Matrix) MulTuple(t Tuple) Tuple {
	v := [4]float64{t.X, t.Y, t.Z, t.W}
	var out [4]float64
	for row := 0; row < 4; row++ {
		var s float64
		for col := 0; col < 4; col++ {
			s += m[row][col] * v[col]
		}
		out[row] = s
	}
	return Tuple{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}

func (m Matrix) Transpose() Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[col][row] = m[row][col]
		}
	}
	return r
}

func (m Matrix) Equal(o Matrix) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !approxEqual(m[row][col], o[row][col]) {
				return false
			}
		}
	}
	return true
}

// submatrix removes the given row and column, returning a (size-1)
// square matrix represented as a slice-of-slices since its dimension
// varies with recursion depth.
func submatrix(m [][]float64, row, col int) [][]float64 {
	n := len(m)
	r := make([][]float64, 0, n-1)
	for i := 0; i < n; i++ {
		if i == row {
			continue
		}
		newRow := make([]float64, 0, n-1)
		for j := 0; j < n; j++ {
			if j == col {
				continue
			}
			newRow = append(newRow, m[i][j])
		}
		r = append(r, newRow)
	}
	return r
}

func determinant(m [][]float64) float64 {
	n := len(m)
	if n == 1 {
		return m[0][0]
	}
	if n == 2 {
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}
	var det float64
	for col := 0; col < n; col++ {
		det += m[0][col] * cofactor(m, 0, col)
	}
	return det
}

func minor(m [][]float64, row, col int) float64 {
	return determinant(submatrix(m, row, col))
}

func cofactor(m [][]float64, row, col int) float64 {
	c := minor(m, row, col)
	if (row+col)%2 != 0 {
		return -c
	}
	return c
}

func (m Matrix) toSlice() [][]float64 {
	s := make([][]float64, 4)
	for i := range s {
		s[i] = append([]float64(nil), m[i][:]...)
	}
	return s
}

func (m Matrix) Determinant() float64 {
	return determinant(m.toSlice())
}

// ErrNonInvertible signals a singular 4x4 was asked to invert. Fatal
// for the render in progress.
var ErrNonInvertible = fmt.Errorf("matrix is not invertible")

// Inverse computes the inverse via cofactor expansion. It is not
// memoized itself — callers that need memoization go through Cached.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, ErrNonInvertible
	}
	s := m.toSlice()
	var inv Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c := cofactor(s, row, col)
			// Transposed assignment: cofactor(row,col) goes to [col][row].
			inv[col][row] = c / det
		}
	}
	return inv, nil
}
