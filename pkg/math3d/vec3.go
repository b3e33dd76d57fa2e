// Package math3d provides the 3D math primitives used by flatshade.
package math3d

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrDegenerateVector is returned when normalizing a vector with no length.
var ErrDegenerateVector = errors.New("degenerate vector")

// Epsilon is the default tolerance for ApproxEqual.
const Epsilon = 1e-5

// Vec3 represents a 3D vector in single precision.
type Vec3 struct {
	X, Y, Z float32
}

// V3 creates a new Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Forward returns the direction pointing into the screen (0, 0, -1).
func Forward() Vec3 {
	return Vec3{0, 0, -1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float32) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector. Components whose
// squares overflow or fall below the normal float32 range are rescaled by
// the largest one first; the result is +Inf only when the length itself
// does not fit.
func (a Vec3) Len() float32 {
	sq := a.X*a.X + a.Y*a.Y + a.Z*a.Z
	if sq >= 0x1p-126 && !math32.IsInf(sq, 1) {
		return math32.Sqrt(sq)
	}
	m := a.maxAbs()
	if m == 0 || math32.IsInf(m, 1) || math32.IsNaN(m) {
		return m
	}
	x, y, z := a.X/m, a.Y/m, a.Z/m
	return m * math32.Sqrt(x*x+y*y+z*z)
}

func (a Vec3) maxAbs() float32 {
	return max(math32.Abs(a.X), math32.Abs(a.Y), math32.Abs(a.Z))
}

// LenSq returns the squared length (faster, no sqrt). Unlike Len it
// overflows for components beyond about 1e19.
func (a Vec3) LenSq() float32 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
// It fails with ErrDegenerateVector when the length is zero or not finite.
func (a Vec3) Normalize() (Vec3, error) {
	l := a.Len()
	if m := a.maxAbs(); math32.IsInf(l, 1) && !math32.IsInf(m, 1) {
		// Finite, but the length overflows: bring the largest component to 1.
		a = Vec3{a.X / m, a.Y / m, a.Z / m}
		l = a.Len()
	}
	if l == 0 || math32.IsInf(l, 0) || math32.IsNaN(l) {
		return Vec3{}, ErrDegenerateVector
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}, nil
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math32.Min(a.X, b.X),
		math32.Min(a.Y, b.Y),
		math32.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math32.Max(a.X, b.X),
		math32.Max(a.Y, b.Y),
		math32.Max(a.Z, b.Z),
	}
}

// ApproxEqual reports whether every component of a and b differs by at
// most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps &&
		math32.Abs(a.Y-b.Y) <= eps &&
		math32.Abs(a.Z-b.Z) <= eps
}
