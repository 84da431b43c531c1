package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sepTolerance = 1e-6

type pair struct {
	name string
	a, b Body
	mtv  Vec // zero when only separation is checked
}

func pairs() []pair {
	return []pair{
		{"circle circle", Circle(10).Place(V(0, 0), 0), Circle(10).Place(V(15, 0), 0), V(5, 0)},
		{"coincident circles", Circle(10).Place(V(3, 3), 0), Circle(10).Place(V(3, 3), 0), V(20, 0)},
		{"circle box", Circle(5).Place(V(0, 0), 0), Box(20, 20).Place(V(12, 0), 0), V(3, 0)},
		{"circle inside box", Circle(2).Place(V(8, 0), 0), Box(20, 20).Place(V(0, 0), 0), V(-4, 0)},
		{"box circle", Box(20, 20).Place(V(0, 0), 0), Circle(5).Place(V(0, 13), 0), V(0, 2)},
		{"box box", Box(10, 10).Place(V(0, 0), 0), Box(10, 10).Place(V(8, 3), 0), V(2, 0)},
		{"obb box", OrientedBox(10, 10, math.Pi/4).Place(V(0, 0), 0), Box(10, 10).Place(V(10, 0), 0), Vec{}},
		{"obb obb", OrientedBox(20, 4, 0.3).Place(V(0, 0), 0), OrientedBox(20, 4, -0.4).Place(V(2, 3), 0), Vec{}},
		{"capsule box", Capsule(20, 3, 0).Place(V(0, 0), 0), Box(40, 10).Place(V(0, 7), 0), V(0, 1)},
		{"capsule circle", Capsule(20, 3, 0).Place(V(0, 0), 0), Circle(3).Place(V(5, 4), 0), V(0, 2)},
		{"capsule capsule", Capsule(20, 3, 0).Place(V(0, 0), 0), Capsule(20, 3, 0).Place(V(5, 4), 0), V(0, 2)},
		{"deep capsule box", Capsule(200, 5, 0).Place(V(0, 0), 0), Box(40, 60).Place(V(0, 10), 0), V(0, 25)},
		{"centred capsule box", Capsule(200, 5, 0).Place(V(0, 0), 0), Box(40, 60).Place(V(0, 0), 0), Vec{}},
		{"crossing capsules", Capsule(100, 5, 0).Place(V(0, 0), 0), Capsule(100, 5, math.Pi/2).Place(V(0, 10), 0), V(0, 50)},
		{"centred crossing capsules", Capsule(100, 5, 0).Place(V(0, 0), 0), Capsule(100, 5, math.Pi/2).Place(V(0, 0), 0), Vec{}},
		{"rotated capsule obb", Capsule(60, 4, 0.7).Place(V(0, 0), 0), OrientedBox(30, 10, -0.2).Place(V(3, -2), 0), Vec{}},
		{"point circle", Point().Place(V(1, 0), 0), Circle(5).Place(V(0, 0), 0), V(-4, 0)},
		{"point box", Point().Place(V(4, 1), 0), Box(10, 10).Place(V(0, 0), 0), V(-1, 0)},
	}
}

// Pairs whose projections are centred on the chosen axis have no preferred
// side, so swapping them does not flip the push.
var unmirrored = map[string]bool{
	"coincident circles":        true,
	"centred capsule box":       true,
	"centred crossing capsules": true,
}

func depth(a, b Body) float64 {
	_, d := contact(a, b)
	return d
}

func moved(b Body, d Vec) Body {
	b.Center = b.Center.Add(d)
	return b
}

func TestCollideMTV(t *testing.T) {
	for _, p := range pairs() {
		t.Run(p.name, func(t *testing.T) {
			mtv, ok := Collide(p.a, p.b)
			require.True(t, ok)
			if !p.mtv.IsZero() {
				assert.InDelta(t, p.mtv.X, mtv.X, 1e-9)
				assert.InDelta(t, p.mtv.Y, mtv.Y, 1e-9)
			}
		})
	}
}

func TestMTVSeparatesDynamicPair(t *testing.T) {
	for _, p := range pairs() {
		t.Run(p.name, func(t *testing.T) {
			mtv, ok := Collide(p.a, p.b)
			require.True(t, ok)

			half := mtv.Scale(0.5)
			a, b := moved(p.a, half.Neg()), moved(p.b, half)
			assert.LessOrEqual(t, depth(a, b), sepTolerance)
		})
	}
}

func TestMTVSeparatesFromStatic(t *testing.T) {
	for _, p := range pairs() {
		t.Run(p.name, func(t *testing.T) {
			mtv, ok := Collide(p.a, p.b)
			require.True(t, ok)

			// a is static, b takes the whole displacement.
			assert.LessOrEqual(t, depth(p.a, moved(p.b, mtv)), sepTolerance)
			// b is static, a takes it.
			assert.LessOrEqual(t, depth(moved(p.a, mtv.Neg()), p.b), sepTolerance)
		})
	}
}

func TestCollideSymmetric(t *testing.T) {
	for _, p := range pairs() {
		if unmirrored[p.name] {
			continue
		}
		t.Run(p.name, func(t *testing.T) {
			ab, _ := Collide(p.a, p.b)
			ba, _ := Collide(p.b, p.a)
			assert.InDelta(t, ab.X, -ba.X, 1e-6)
			assert.InDelta(t, ab.Y, -ba.Y, 1e-6)
		})
	}
}

func TestDeepCapsuleTakesShortestAxis(t *testing.T) {
	rod := Capsule(200, 5, 0).Place(V(0, 0), 0)
	mtv, ok := Collide(rod, Box(40, 60).Place(V(0, 0), 0))
	require.True(t, ok)
	assert.InDelta(t, 0, mtv.X, 1e-9)
	assert.InDelta(t, 35, math.Abs(mtv.Y), 1e-9)

	cross := Capsule(100, 5, math.Pi/2).Place(V(0, 0), 0)
	mtv, ok = Collide(Capsule(100, 5, 0).Place(V(0, 0), 0), cross)
	require.True(t, ok)
	assert.InDelta(t, 60, mtv.Len(), 1e-9)
}

func TestCapsuleSeparatedPastItsEnd(t *testing.T) {
	rod := Capsule(20, 2, 0).Place(V(0, 0), 0)

	assert.False(t, Overlaps(rod, Circle(3).Place(V(16, 0), 0)))
	assert.True(t, Overlaps(rod, Circle(3).Place(V(14, 0), 0)))
	assert.False(t, Overlaps(Segment(V(0, 0), V(10, 0)), Segment(V(11, 0), V(20, 0))))
}

func TestTouchingOverlapsButDoesNotCollide(t *testing.T) {
	a := Box(10, 10).Place(V(0, 0), 0)
	b := Box(10, 10).Place(V(10, 0), 0)

	assert.True(t, Overlaps(a, b))
	_, ok := Collide(a, b)
	assert.False(t, ok)

	c := Box(10, 10).Place(V(10.5, 0), 0)
	assert.False(t, Overlaps(a, c))
}

func TestContains(t *testing.T) {
	box := Box(40, 40).Place(V(0, 0), 0)
	assert.True(t, Contains(box, V(0, 0)))
	assert.True(t, Contains(box, V(20, 20)))
	assert.False(t, Contains(box, V(21, 0)))

	diamond := OrientedBox(10, 10, math.Pi/4).Place(V(0, 0), 0)
	assert.True(t, Contains(diamond, V(6.9, 0)))
	assert.False(t, Contains(diamond, V(6, 6)))
}

func TestBroadphase(t *testing.T) {
	a := Circle(5).Place(V(0, 0), 0)
	b := Circle(5).Place(V(12, 0), 0)

	assert.False(t, Broadphase(a, b, 0))
	assert.True(t, Broadphase(a, b, 2))
}

func TestSegmentAgainstBox(t *testing.T) {
	wall := Box(10, 100).Place(V(50, 0), 0)

	assert.True(t, Overlaps(Segment(V(0, 0), V(100, 0)), wall))
	assert.False(t, Overlaps(Segment(V(0, 60), V(100, 60)), wall))
	assert.False(t, Overlaps(Segment(V(0, 0), V(40, 0)), wall))
}

func TestPlaceRotatesOffset(t *testing.T) {
	s := Circle(1)
	s.Offset = V(2, 0)

	b := s.Place(V(10, 10), math.Pi/2)
	assert.InDelta(t, 10, b.Center.X, 1e-9)
	assert.InDelta(t, 12, b.Center.Y, 1e-9)

	aabb := Box(4, 2).Place(V(0, 0), 1)
	min, max := aabb.Bounds()
	assert.Equal(t, V(-2, -1), min)
	assert.Equal(t, V(2, 1), max)
}

func TestObbBounds(t *testing.T) {
	b := OrientedBox(10, 10, math.Pi/4).Place(V(0, 0), 0)
	min, max := b.Bounds()
	r := 5 * math.Sqrt2
	assert.InDelta(t, -r, min.X, 1e-9)
	assert.InDelta(t, r, max.Y, 1e-9)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindPoint, KindCircle, KindAABB, KindOBB, KindCapsule} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("star")
	assert.Error(t, err)
}
