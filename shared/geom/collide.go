package geom

import "math"

// Epsilon is the minimum penetration treated as an overlap by Collide.
const Epsilon = 1e-9

// Broadphase reports whether a and b might overlap: false when the distance
// between their centres exceeds the sum of their bounding radii plus margin.
func Broadphase(a, b Body, margin float64) bool {
	r := a.BoundingRadius() + b.BoundingRadius() + margin
	return a.Center.DistSq(b.Center) <= r*r
}

// Collide returns the minimum translation vector for an overlapping pair.
// The MTV points from a towards b: moving a by -MTV and b by +MTV separates them.
func Collide(a, b Body) (Vec, bool) {
	n, depth := contact(a, b)
	if depth <= Epsilon {
		return Vec{}, false
	}
	return n.Scale(depth), true
}

// Overlaps is the boolean form of Collide used by detection. Touching counts.
func Overlaps(a, b Body) bool {
	_, depth := contact(a, b)
	return depth >= 0
}

// Contains reports whether p lies inside or on b.
func Contains(b Body, p Vec) bool {
	return Overlaps(b, Body{Kind: KindPoint, Center: p})
}

// contact returns the separating normal (a towards b) and the penetration depth.
// A negative depth means the bodies are apart.
//
// Every body is a convex core (a point, a segment or a box) grown by its
// radius. Projecting onto the cores' face axes, plus the directions between
// core vertices when either body is rounded, covers every axis the minimum
// penetration can lie on.
func contact(a, b Body) (Vec, float64) {
	var coreA, coreB [4]Vec
	va, vb := a.core(coreA[:0]), b.core(coreB[:0])
	ra, rb := a.radius(), b.radius()

	var buf [24]Vec
	axes := b.faceAxes(a.faceAxes(buf[:0]))
	if ra+rb > 0 {
		for _, p := range va {
			for _, q := range vb {
				if d := q.Sub(p); !d.IsZero() {
					axes = append(axes, d.Normalize())
				}
			}
		}
	}
	if len(axes) == 0 {
		return circles(a.Center, ra, b.Center, rb)
	}

	best := math.Inf(1)
	var n, chosen Vec
	for _, axis := range axes {
		axis = canonical(axis)
		minA, maxA := project(va, axis)
		minB, maxB := project(vb, axis)
		minA, maxA = minA-ra, maxA+ra
		minB, maxB = minB-rb, maxB+rb

		// b leaves along +axis or along -axis, whichever is shorter.
		overlap, dir := maxA-minB, axis
		if away := maxB - minA; away < overlap {
			overlap, dir = away, axis.Neg()
		}
		if overlap < 0 {
			return dir, overlap
		}
		if overlap < best-tieEpsilon || (overlap <= best+tieEpsilon && before(axis, chosen)) {
			best, n, chosen = overlap, dir, axis
		}
	}
	return n, best
}

// tieEpsilon is the overlap difference below which two axes count as equal.
// Ties go to a fixed axis order so Collide(a, b) mirrors Collide(b, a).
const tieEpsilon = 1e-12

func before(axis, other Vec) bool {
	if math.Abs(axis.X-other.X) > tieEpsilon {
		return axis.X > other.X
	}
	return axis.Y > other.Y
}

// canonical flips an axis into the half plane X > 0 (or X == 0, Y > 0).
func canonical(axis Vec) Vec {
	if axis.X < 0 || (axis.X == 0 && axis.Y < 0) {
		return axis.Neg()
	}
	return axis
}

func project(vs []Vec, axis Vec) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		d := v.Dot(axis)
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	return lo, hi
}

func circles(pa Vec, ra float64, pb Vec, rb float64) (Vec, float64) {
	d := pb.Sub(pa)
	dist := d.Len()
	depth := ra + rb - dist
	if dist == 0 {
		return Vec{1, 0}, depth
	}
	return d.Scale(1 / dist), depth
}
