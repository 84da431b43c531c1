// Package geom holds the 2D geometry shared by the collision resolver and the
// detection pipeline. It has no dependencies on donburi or resolv.
package geom

import "math"

// Vec is a 2D vector in world units (pixels).
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec) Len() float64 { return math.Sqrt(v.LenSq()) }
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec) DistSq(o Vec) float64 { return v.Sub(o).LenSq() }
func (v Vec) Perp() Vec { return Vec{-v.Y, v.X} }
func (v Vec) Abs() Vec { return Vec{math.Abs(v.X), math.Abs(v.Y)} }
func (v Vec) Eq(o Vec, e float64) bool { return math.Abs(v.X-o.X) <= e && math.Abs(v.Y-o.Y) <= e }

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec) Rotate(angle float64) Vec {
	if angle == 0 {
		return v
	}
	s, c := math.Sincos(angle)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Direction returns the normalized direction from a to b.
func Direction(a, b Vec) Vec {
	return b.Sub(a).Normalize()
}

// Clamp constrains value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
