package bvol

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/math"
)

func approxEq(a, b float32) bool {
	return math32.Abs(a-b) < 0.0001
}

func approxVec(a, b math.Vec3) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) && approxEq(a.Z, b.Z)
}

// wideFrustum is a 90 degree square frustum from 1 to 10.
func wideFrustum() *Frustum {
	return NewPerspective(math32.Pi/2, 1, 1, 10)
}

func TestSphereNewUnset(t *testing.T) {
	s := NewSphere()
	if s.IsSet() {
		t.Error("new sphere should be unset")
	}
	if s.Radius() != -1 {
		t.Errorf("unset sphere Radius() = %v, want -1", s.Radius())
	}
}

func TestSphereExtendPointUnset(t *testing.T) {
	s := NewSphere()
	p := math.Vec3{X: 3, Y: -4, Z: 5}
	s.ExtendPoint(p)

	if s.Radius() != 0 {
		t.Errorf("Radius() = %v, want 0", s.Radius())
	}
	if s.Center() != p {
		t.Errorf("Center() = %v, want %v", s.Center(), p)
	}
}

func TestSphereExtendPointInside(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 1, Y: 1, Z: 1}, 5)
	s.ExtendPoint(math.Vec3{X: 2, Y: 2, Z: 2})

	if s.Radius() != 5 {
		t.Errorf("Radius() = %v, want unchanged 5", s.Radius())
	}
	if s.Center() != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Center() = %v, want unchanged (1,1,1)", s.Center())
	}
}

func TestSphereExtendPointGrows(t *testing.T) {
	s := NewSphereAt(math.Vec3{}, 1)
	s.ExtendPoint(math.Vec3{X: 3, Y: 0, Z: 0})

	// Far side at (-1,0,0) stays fixed, sphere reaches (3,0,0).
	if !approxEq(s.Radius(), 2) {
		t.Errorf("Radius() = %v, want 2", s.Radius())
	}
	if !approxVec(s.Center(), math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("Center() = %v, want (1,0,0)", s.Center())
	}
}

func TestSphereExtendSphereIdempotent(t *testing.T) {
	a := NewSphereAt(math.Vec3{}, 1)
	b := NewSphereAt(math.Vec3{X: 4, Y: 0, Z: 0}, 1)

	a.ExtendSphere(b)
	r := a.Radius()
	c := a.Center()

	// b is now inside a, so a second merge must not change anything.
	a.ExtendSphere(b)
	if !approxEq(a.Radius(), r) || !approxVec(a.Center(), c) {
		t.Errorf("second ExtendSphere changed result: r=%v c=%v, want r=%v c=%v",
			a.Radius(), a.Center(), r, c)
	}
}

func TestSphereExtendSphereMerge(t *testing.T) {
	a := NewSphereAt(math.Vec3{}, 1)
	b := NewSphereAt(math.Vec3{X: 4, Y: 0, Z: 0}, 1)
	a.ExtendSphere(b)

	// Minimal covering sphere along the axis: radius (4+1+1)/2 = 3,
	// center offset by 3-1 = 2 toward b.
	if !approxEq(a.Radius(), 3) {
		t.Errorf("Radius() = %v, want 3", a.Radius())
	}
	if !approxVec(a.Center(), math.Vec3{X: 2, Y: 0, Z: 0}) {
		t.Errorf("Center() = %v, want (2,0,0)", a.Center())
	}
}

func TestSphereExtendSphereContainment(t *testing.T) {
	big := NewSphereAt(math.Vec3{}, 10)
	small := NewSphereAt(math.Vec3{X: 2, Y: 0, Z: 0}, 1)

	a := big.Clone().(*Sphere)
	a.ExtendSphere(small)
	if a.Radius() != 10 || a.Center() != (math.Vec3{}) {
		t.Errorf("containing sphere changed: r=%v c=%v", a.Radius(), a.Center())
	}

	b := small.Clone().(*Sphere)
	b.ExtendSphere(big)
	if b.Radius() != 10 || b.Center() != (math.Vec3{}) {
		t.Errorf("contained sphere should equal the container: r=%v c=%v", b.Radius(), b.Center())
	}
}

func TestSphereExtendSphereCoincident(t *testing.T) {
	a := NewSphereAt(math.Vec3{X: 1, Y: 1, Z: 1}, 2)
	b := NewSphereAt(math.Vec3{X: 1, Y: 1, Z: 1}, 5)

	a.ExtendSphere(b)
	if a.Radius() != 5 {
		t.Errorf("Radius() = %v, want 5", a.Radius())
	}
	if a.Center() != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Center() = %v, want (1,1,1)", a.Center())
	}
}

func TestSphereExtendUnsetOther(t *testing.T) {
	a := NewSphereAt(math.Vec3{X: 1, Y: 2, Z: 3}, 4)
	a.ExtendSphere(NewSphere())
	if a.Radius() != 4 || a.Center() != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("extending by unset sphere changed state: r=%v c=%v", a.Radius(), a.Center())
	}

	b := NewSphere()
	b.ExtendSphere(a)
	if b.Radius() != 4 || b.Center() != a.Center() {
		t.Errorf("unset sphere should copy the other: r=%v c=%v", b.Radius(), b.Center())
	}
}

func TestSphereMaximize(t *testing.T) {
	s := NewSphere()
	if s.Maximized() {
		t.Error("fresh sphere should not be maximized")
	}

	s.Maximize()
	if !s.Maximized() {
		t.Error("Maximized() should be true after Maximize()")
	}

	// Merging anything into a maximized sphere keeps it maximized.
	s.ExtendSphere(NewSphereAt(math.Vec3{X: 100, Y: 0, Z: 0}, 5))
	s.ExtendPoint(math.Vec3{X: -100, Y: 0, Z: 0})
	if !s.Maximized() {
		t.Error("maximized sphere lost its state through extends")
	}

	// Merging a maximized sphere into a normal one maximizes it.
	a := NewSphereAt(math.Vec3{}, 1)
	a.ExtendSphere(s)
	if !a.Maximized() {
		t.Error("extending by a maximized sphere should maximize")
	}

	// Enclose is a reset and clears the state.
	s.Enclose([]math.Vec3{{X: 1, Y: 1, Z: 1}})
	if s.Maximized() {
		t.Error("Enclose should clear the maximized state")
	}
}

func TestSphereFrustumOutsideNear(t *testing.T) {
	// Entirely behind the near plane.
	s := NewSphereAt(math.Vec3{X: 0, Y: 0, Z: 0.5}, 1)
	if got := s.IntersectFrustum(wideFrustum()); got != Outside {
		t.Errorf("IntersectFrustum() = %v, want outside", got)
	}
}

func TestSphereFrustumInside(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 0, Y: 0, Z: -5}, 1)
	if got := s.IntersectFrustum(wideFrustum()); got != Inside {
		t.Errorf("IntersectFrustum() = %v, want inside", got)
	}
}

func TestSphereFrustumStraddleNear(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 0, Y: 0, Z: -0.5}, 1)
	if got := s.IntersectFrustum(wideFrustum()); got != Partial {
		t.Errorf("IntersectFrustum() = %v, want partial", got)
	}
}

func TestSphereFrustumOutsideFar(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 0, Y: 0, Z: -20}, 1)
	if got := s.IntersectFrustum(wideFrustum()); got != Outside {
		t.Errorf("IntersectFrustum() = %v, want outside", got)
	}
}

func TestSphereFrustumOutsideSide(t *testing.T) {
	// Far off to the left at a depth well inside near/far.
	s := NewSphereAt(math.Vec3{X: -50, Y: 0, Z: -5}, 1)
	if got := s.IntersectFrustum(wideFrustum()); got != Outside {
		t.Errorf("IntersectFrustum() = %v, want outside", got)
	}
}

func TestSphereFrustumDegenerate(t *testing.T) {
	f := wideFrustum()

	s := NewSphere()
	if got := s.IntersectFrustum(f); got != Partial {
		t.Errorf("unset sphere IntersectFrustum() = %v, want partial", got)
	}

	s.Maximize()
	if got := s.IntersectFrustum(f); got != Partial {
		t.Errorf("maximized sphere IntersectFrustum() = %v, want partial", got)
	}
}

func TestSphereEncloseEmpty(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 1, Y: 1, Z: 1}, 5)
	s.Enclose(nil)
	if s.IsSet() {
		t.Error("Enclose(nil) should leave the sphere unset")
	}
}

func TestSphereEncloseSinglePoint(t *testing.T) {
	s := NewSphere()
	p := math.Vec3{X: 7, Y: -2, Z: 3}
	s.Enclose([]math.Vec3{p})

	if s.Radius() != 0 {
		t.Errorf("Radius() = %v, want 0", s.Radius())
	}
	if s.Center() != p {
		t.Errorf("Center() = %v, want %v", s.Center(), p)
	}
}

func TestSphereEncloseCoverage(t *testing.T) {
	points := []math.Vec3{
		{X: -1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: -2, Z: 0}, {X: 0, Y: 3, Z: 0},
		{X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: 1},
		{X: 0.5, Y: 0.5, Z: 0.5},
	}
	s := NewSphere()
	s.Enclose(points)

	for _, p := range points {
		if d := s.Center().Distance(p); d > s.Radius()+fepsilon {
			t.Errorf("point %v not enclosed: distance %v > radius %v", p, d, s.Radius())
		}
	}
}

func TestSphereEncloseOffsetCluster(t *testing.T) {
	// A small cluster far from the origin. The seed radius comes from the
	// extremal span, not from the cluster's distance to the origin, so the
	// result stays tight.
	base := math.Vec3{X: 100, Y: 100, Z: 100}
	var points []math.Vec3
	for _, dx := range []float32{-1, 1} {
		for _, dy := range []float32{-1, 1} {
			for _, dz := range []float32{-1, 1} {
				points = append(points, base.Add(math.Vec3{X: dx, Y: dy, Z: dz}))
			}
		}
	}

	s := NewSphere()
	s.Enclose(points)

	for _, p := range points {
		if d := s.Center().Distance(p); d > s.Radius()+fepsilon {
			t.Errorf("point %v not enclosed", p)
		}
	}
	// Half-diagonal is sqrt(3); allow the incremental merge some slack but
	// nothing near the ~173 a distance-to-origin seed would produce.
	if s.Radius() > 6 {
		t.Errorf("Radius() = %v, want a tight bound (< 6)", s.Radius())
	}
}

func TestSphereOrthoTransformTranslation(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 1, Y: 2, Z: 3}, 4)
	s.OrthoTransform(math.Translate(10, 0, -5))

	if !approxEq(s.Radius(), 4) {
		t.Errorf("Radius() = %v, want unchanged 4", s.Radius())
	}
	if !approxVec(s.Center(), math.Vec3{X: 11, Y: 2, Z: -2}) {
		t.Errorf("Center() = %v, want (11,2,-2)", s.Center())
	}
}

func TestSphereOrthoTransformUniformScale(t *testing.T) {
	s := NewSphereAt(math.Vec3{X: 1, Y: 0, Z: 0}, 2)
	rot := math.QuatFromAxisAngle(math.Vec3{X: 0, Y: 1, Z: 0}, 0.7).ToMat4()
	s.OrthoTransform(rot.Mul(math.Scale(3, 3, 3)))

	if !approxEq(s.Radius(), 6) {
		t.Errorf("Radius() = %v, want 6", s.Radius())
	}
}

func TestSphereTransformNonUniformScale(t *testing.T) {
	s := NewSphereAt(math.Vec3{}, 2)
	s.Transform(math.Scale(1, 3, 1))

	// Worst-case axis scale keeps the sphere conservative.
	if !approxEq(s.Radius(), 6) {
		t.Errorf("Radius() = %v, want 6", s.Radius())
	}
}

func TestSphereTransformSentinels(t *testing.T) {
	s := NewSphere()
	s.Transform(math.Translate(1, 2, 3))
	if s.IsSet() {
		t.Error("transforming an unset sphere should be a no-op")
	}

	s.Maximize()
	s.Transform(math.Scale(2, 2, 2))
	if !s.Maximized() {
		t.Error("transforming a maximized sphere should be a no-op")
	}
}

func TestSphereExtendVolumeDispatch(t *testing.T) {
	// Through the Volume interface both concrete kinds must dispatch.
	s := NewSphere()
	var v Volume = NewSphereAt(math.Vec3{X: 1, Y: 0, Z: 0}, 1)
	s.Extend(v)
	if s.Radius() != 1 || s.Center() != (math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("Extend(sphere) = r%v c%v, want copy of other", s.Radius(), s.Center())
	}

	s2 := NewSphere()
	var b Volume = NewBoxOf(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
	s2.Extend(b)
	for _, c := range b.(*Box).corners() {
		if d := s2.Center().Distance(c); d > s2.Radius()+0.0001 {
			t.Errorf("box corner %v not enclosed by sphere r=%v c=%v", c, s2.Radius(), s2.Center())
		}
	}
}
