package bvol

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/math"
)

// volState is the lifecycle discriminant shared by the volume kinds.
// The reference convention of encoding these states in magic radius
// values (-1, max-float) is kept only at the accessor level.
type volState uint8

const (
	stateUnset volState = iota
	stateFinite
	stateMaximized
)

// Sphere is a bounding sphere: a center point and a radius.
//
// The zero value is ready to use and encloses nothing.
type Sphere struct {
	center math.Vec3
	radius float32
	state  volState
}

// NewSphere returns an unset bounding sphere.
func NewSphere() *Sphere {
	return &Sphere{}
}

// NewSphereAt returns a sphere with the given center and radius.
// A negative radius yields an unset sphere.
func NewSphereAt(center math.Vec3, radius float32) *Sphere {
	if radius < 0 {
		return &Sphere{}
	}
	return &Sphere{center: center, radius: radius, state: stateFinite}
}

// Center returns the center of the sphere.
func (s *Sphere) Center() math.Vec3 {
	return s.center
}

// Radius returns the radius of the sphere. An unset sphere reports -1 and
// a maximized sphere reports the maximum float32, matching the sentinel
// convention callers of the original interface expect.
func (s *Sphere) Radius() float32 {
	switch s.state {
	case stateUnset:
		return -1
	case stateMaximized:
		return math32.MaxFloat32
	}
	return s.radius
}

// SetCenter sets the center of the sphere.
func (s *Sphere) SetCenter(c math.Vec3) {
	s.center = c
}

// SetRadius sets the radius. A negative value resets the sphere to unset.
func (s *Sphere) SetRadius(r float32) {
	if r < 0 {
		*s = Sphere{}
		return
	}
	s.radius = r
	s.state = stateFinite
}

// IsSet reports whether the sphere encloses anything at all.
func (s *Sphere) IsSet() bool {
	return s.state != stateUnset
}

// IntersectFrustum tests the sphere against a canonical-orientation
// frustum. The near and far planes are parallel to the XY plane in that
// orientation, so those two tests reduce to a Z comparison; the four side
// planes need the full dot product.
//
// An unset sphere conservatively reports Partial rather than claiming
// anything about geometry it does not have.
func (s *Sphere) IntersectFrustum(f *Frustum) Intersection {
	if s.state == stateMaximized {
		return Partial
	}
	if s.state == stateUnset {
		return Partial
	}

	code := Inside

	// Distance from the center to the near plane, positive into the
	// frustum. Entirely behind any plane means the sphere is out,
	// regardless of the remaining planes.
	d := -f.ZNear - s.center.Z
	if d < -s.radius {
		return Outside
	}
	if d < s.radius {
		code = Partial
	}

	// Far plane, same logic.
	d = s.center.Z + f.ZFar
	if d < -s.radius {
		return Outside
	}
	if d < s.radius {
		code = Partial
	}

	for _, p := range [4][4]float32{f.TopPlane, f.BotPlane, f.LeftPlane, f.RightPlane} {
		d = p[0]*s.center.X + p[1]*s.center.Y + p[2]*s.center.Z - p[3]
		if d < -s.radius {
			return Outside
		}
		if d < s.radius {
			code = Partial
		}
	}

	return code
}

// Extend grows the sphere to enclose the given volume.
func (s *Sphere) Extend(other Volume) {
	switch o := other.(type) {
	case *Sphere:
		s.ExtendSphere(o)
	case *Box:
		s.ExtendBox(o)
	}
}

// ExtendPoint grows the sphere to enclose the point p.
//
// The merge is exact: the far side of the old sphere stays fixed and the
// sphere grows just enough along the center-to-point ray to reach p.
func (s *Sphere) ExtendPoint(p math.Vec3) {
	if s.state == stateMaximized {
		return
	}
	if s.state == stateUnset {
		s.center = p
		s.radius = 0
		s.state = stateFinite
		return
	}

	n := p.Sub(s.center)
	dn := n.Length()
	if fnearZero(dn) {
		return
	}
	if dn <= s.radius {
		// already enclosed
		return
	}

	cr := (dn + s.radius) / 2
	s.center = s.center.Add(n.Scale((cr - s.radius) / dn))
	s.radius = cr
}

// ExtendSphere grows the sphere to enclose another sphere. The result is
// the minimal sphere covering both along their connecting axis.
func (s *Sphere) ExtendSphere(b *Sphere) {
	if s.state == stateMaximized {
		return
	}
	if b.state == stateMaximized {
		s.Maximize()
		return
	}
	if b.state == stateUnset {
		return
	}
	if s.state == stateUnset {
		*s = *b
		return
	}

	n := b.center.Sub(s.center)
	dn := n.Length()

	// Coincident centers: no axis to grow along, keep the larger radius.
	if fnearZero(dn) {
		if b.radius > s.radius {
			s.radius = b.radius
		}
		return
	}
	if dn+b.radius <= s.radius {
		// b inside us, no change
		return
	}
	if dn+s.radius <= b.radius {
		// we are inside b
		*s = *b
		return
	}

	cr := (dn + s.radius + b.radius) / 2
	s.center = s.center.Add(n.Scale((cr - s.radius) / dn))
	s.radius = cr
}

// ExtendBox grows the sphere to enclose an axis-aligned box by merging in
// each of its corners.
func (s *Sphere) ExtendBox(b *Box) {
	if s.state == stateMaximized {
		return
	}
	if b.state == stateMaximized {
		s.Maximize()
		return
	}
	if b.state == stateUnset {
		return
	}
	for _, c := range b.corners() {
		s.ExtendPoint(c)
	}
}

// Enclose resets the sphere and rebuilds it around the given points.
//
// A single pass finds the extremal points on each axis; the widest pair
// seeds the sphere with its midpoint and half-span. A second pass merges
// every point to guarantee full enclosure, so the total cost is O(n) and
// the result is a valid, though not minimal, bounding sphere.
func (s *Sphere) Enclose(points []math.Vec3) {
	*s = Sphere{}

	if len(points) == 0 {
		return
	}

	minP := [3]math.Vec3{points[0], points[0], points[0]}
	maxP := [3]math.Vec3{points[0], points[0], points[0]}

	for _, p := range points[1:] {
		if p.X < minP[0].X {
			minP[0] = p
		}
		if p.Y < minP[1].Y {
			minP[1] = p
		}
		if p.Z < minP[2].Z {
			minP[2] = p
		}

		if p.X > maxP[0].X {
			maxP[0] = p
		}
		if p.Y > maxP[1].Y {
			maxP[1] = p
		}
		if p.Z > maxP[2].Z {
			maxP[2] = p
		}
	}

	// Pick the axis pair spanning the largest distance.
	span0, span1 := minP[0], maxP[0]
	maxSpanDist := maxP[0].Sub(minP[0]).LengthSq()
	if d := maxP[1].Sub(minP[1]).LengthSq(); d > maxSpanDist {
		span0, span1 = minP[1], maxP[1]
		maxSpanDist = d
	}
	if d := maxP[2].Sub(minP[2]).LengthSq(); d > maxSpanDist {
		span0, span1 = minP[2], maxP[2]
		maxSpanDist = d
	}

	s.center = span0.Add(span1).Div(2)
	s.radius = s.center.Distance(span1)
	s.state = stateFinite

	for _, p := range points {
		s.ExtendPoint(p)
	}
}

// Maximize makes the sphere enclose all space.
func (s *Sphere) Maximize() {
	s.center = math.Vec3{}
	s.radius = math32.MaxFloat32
	s.state = stateMaximized
}

// Maximized reports whether the sphere is maximized.
func (s *Sphere) Maximized() bool {
	return s.state == stateMaximized
}

// OrthoTransform transforms the sphere by a matrix known to be orthogonal.
// The center moves with the transform; uniform scale means any basis
// vector's length gives the radius scale, so the first column is used.
func (s *Sphere) OrthoTransform(m math.Mat4) {
	if s.state != stateFinite {
		return
	}
	s.center = m.TransformVec3(s.center)
	s.radius *= m.Column(0).Length()
}

// Transform transforms the sphere by a general affine matrix. The radius
// scales by the worst-case axis so the sphere still encloses geometry
// squeezed through a non-uniform scale; the bound is conservative, not
// exact.
func (s *Sphere) Transform(m math.Mat4) {
	if s.state != stateFinite {
		return
	}
	s.center = m.TransformVec3(s.center)

	scale := m.Column(0).Length()
	if l := m.Column(1).Length(); l > scale {
		scale = l
	}
	if l := m.Column(2).Length(); l > scale {
		scale = l
	}
	s.radius *= scale
}

// Clone returns an independent copy of the sphere.
func (s *Sphere) Clone() Volume {
	c := *s
	return &c
}
