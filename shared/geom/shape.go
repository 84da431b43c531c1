package geom

import (
	"fmt"
	"math"
)

// Kind tags the geometry of a Shape.
type Kind uint8

const (
	KindPoint Kind = iota
	KindCircle
	KindAABB
	KindOBB
	KindCapsule
)

var kindNames = [...]string{
	KindPoint:   "point",
	KindCircle:  "circle",
	KindAABB:    "aabb",
	KindOBB:     "obb",
	KindCapsule: "capsule",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a config name to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindPoint, fmt.Errorf("unknown shape type %q", name)
}

// Shape is authored geometry, positioned relative to its owner's transform.
type Shape struct {
	Kind     Kind
	Radius   float64 // circle, capsule
	W, H     float64 // aabb, obb
	Length   float64 // capsule segment length
	Rotation float64 // obb, capsule; added to the owner's rotation
	Offset   Vec
}

func Point() Shape           { return Shape{Kind: KindPoint} }
func Circle(r float64) Shape { return Shape{Kind: KindCircle, Radius: r} }
func Box(w, h float64) Shape { return Shape{Kind: KindAABB, W: w, H: h} }

func OrientedBox(w, h, rot float64) Shape {
	return Shape{Kind: KindOBB, W: w, H: h, Rotation: rot}
}
func Capsule(length, r, rot float64) Shape {
	return Shape{Kind: KindCapsule, Length: length, Radius: r, Rotation: rot}
}

// Place puts the shape in world space for an owner at pos with the given rotation.
// The offset rotates with the owner; axis-aligned boxes never rotate.
func (s Shape) Place(pos Vec, rotation float64) Body {
	b := Body{
		Kind:   s.Kind,
		Center: pos.Add(s.Offset.Rotate(rotation)),
		Radius: s.Radius,
	}
	switch s.Kind {
	case KindPoint:
		b.Radius = 0
	case KindAABB:
		b.Half = Vec{s.W / 2, s.H / 2}
	case KindOBB:
		b.Half = Vec{s.W / 2, s.H / 2}
		b.Rotation = rotation + s.Rotation
	case KindCapsule:
		b.HalfLen = s.Length / 2
		b.Rotation = rotation + s.Rotation
	}
	return b
}

// BoundingRadius is the radius of a circle centred on the shape enclosing it.
func (s Shape) BoundingRadius() float64 {
	return s.Place(Vec{}, 0).BoundingRadius()
}

// Body is a Shape placed in world space.
type Body struct {
	Kind     Kind
	Center   Vec
	Radius   float64
	Half     Vec
	Rotation float64
	HalfLen  float64
}

// Segment returns a zero-radius capsule between a and b, used for sight lines.
func Segment(a, b Vec) Body {
	d := b.Sub(a)
	return Body{
		Kind:     KindCapsule,
		Center:   a.Add(d.Scale(0.5)),
		HalfLen:  d.Len() / 2,
		Rotation: math.Atan2(d.Y, d.X),
	}
}

func (b Body) BoundingRadius() float64 {
	switch b.Kind {
	case KindCircle:
		return b.Radius
	case KindAABB, KindOBB:
		return b.Half.Len()
	case KindCapsule:
		return b.HalfLen + b.Radius
	}
	return 0
}

// Bounds returns the world-space axis-aligned extents of the body.
func (b Body) Bounds() (min, max Vec) {
	var ext Vec
	switch b.Kind {
	case KindCircle:
		ext = Vec{b.Radius, b.Radius}
	case KindAABB:
		ext = b.Half
	case KindOBB:
		ax, ay := b.axes()
		ext = Vec{
			math.Abs(ax.X)*b.Half.X + math.Abs(ay.X)*b.Half.Y,
			math.Abs(ax.Y)*b.Half.X + math.Abs(ay.Y)*b.Half.Y,
		}
	case KindCapsule:
		dir, _ := b.axes()
		ext = dir.Scale(b.HalfLen).Abs().Add(Vec{b.Radius, b.Radius})
	}
	return b.Center.Sub(ext), b.Center.Add(ext)
}

func (b Body) axes() (Vec, Vec) {
	if b.Kind == KindAABB || b.Rotation == 0 {
		return Vec{1, 0}, Vec{0, 1}
	}
	ax := Vec{1, 0}.Rotate(b.Rotation)
	return ax, ax.Perp()
}

func (b Body) segment() (Vec, Vec) {
	dir, _ := b.axes()
	h := dir.Scale(b.HalfLen)
	return b.Center.Sub(h), b.Center.Add(h)
}

// core appends the vertices of the body's unrounded core to dst.
func (b Body) core(dst []Vec) []Vec {
	switch b.Kind {
	case KindCapsule:
		p, q := b.segment()
		return append(dst, p, q)
	case KindAABB, KindOBB:
		ax, ay := b.axes()
		x, y := ax.Scale(b.Half.X), ay.Scale(b.Half.Y)
		c := b.Center
		return append(dst, c.Add(x).Add(y), c.Sub(x).Add(y), c.Sub(x).Sub(y), c.Add(x).Sub(y))
	}
	return append(dst, b.Center)
}

// faceAxes appends the core's edge normals to dst. A segment contributes its
// direction as well, so zero-radius segments separate past their ends.
func (b Body) faceAxes(dst []Vec) []Vec {
	switch b.Kind {
	case KindCapsule, KindAABB, KindOBB:
		ax, ay := b.axes()
		return append(dst, ax, ay)
	}
	return dst
}

func (b Body) radius() float64 {
	if b.Kind == KindCircle || b.Kind == KindCapsule {
		return b.Radius
	}
	return 0
}
