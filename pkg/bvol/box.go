package bvol

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/math"
)

// Box is an axis-aligned bounding box: a min corner and a max corner.
//
// The zero value is ready to use and encloses nothing.
type Box struct {
	min, max math.Vec3
	state    volState
}

// NewBox returns an unset bounding box.
func NewBox() *Box {
	return &Box{}
}

// NewBoxOf returns a box spanning the two corners. The corners may be
// given in any order; they are normalized componentwise.
func NewBoxOf(a, b math.Vec3) *Box {
	return &Box{min: a.Min(b), max: a.Max(b), state: stateFinite}
}

// MinCorner returns the minimum corner. Only meaningful when IsSet.
func (b *Box) MinCorner() math.Vec3 {
	return b.min
}

// MaxCorner returns the maximum corner. Only meaningful when IsSet.
func (b *Box) MaxCorner() math.Vec3 {
	return b.max
}

// IsSet reports whether the box encloses anything at all.
func (b *Box) IsSet() bool {
	return b.state != stateUnset
}

// corners returns the 8 corners of the box.
func (b *Box) corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: b.min.X, Y: b.min.Y, Z: b.min.Z},
		{X: b.max.X, Y: b.min.Y, Z: b.min.Z},
		{X: b.min.X, Y: b.max.Y, Z: b.min.Z},
		{X: b.max.X, Y: b.max.Y, Z: b.min.Z},
		{X: b.min.X, Y: b.min.Y, Z: b.max.Z},
		{X: b.max.X, Y: b.min.Y, Z: b.max.Z},
		{X: b.min.X, Y: b.max.Y, Z: b.max.Z},
		{X: b.max.X, Y: b.max.Y, Z: b.max.Z},
	}
}

// IntersectFrustum classifies the box against a canonical-orientation
// frustum using the positive/negative vertex trick: per plane, only the
// corner most aligned with the plane normal (p-vertex) and its opposite
// (n-vertex) need testing.
func (b *Box) IntersectFrustum(f *Frustum) Intersection {
	if b.state == stateMaximized {
		return Partial
	}
	if b.state == stateUnset {
		return Partial
	}

	code := Inside

	for _, p := range f.planes() {
		pv, nv := b.pnVertices(p)
		if p[0]*pv.X+p[1]*pv.Y+p[2]*pv.Z-p[3] < 0 {
			// even the most favorable corner is behind the plane
			return Outside
		}
		if p[0]*nv.X+p[1]*nv.Y+p[2]*nv.Z-p[3] < 0 {
			code = Partial
		}
	}

	return code
}

// pnVertices returns the corner furthest along the plane normal and the
// corner furthest against it.
func (b *Box) pnVertices(p [4]float32) (pv, nv math.Vec3) {
	pv, nv = b.min, b.max
	if p[0] >= 0 {
		pv.X, nv.X = b.max.X, b.min.X
	}
	if p[1] >= 0 {
		pv.Y, nv.Y = b.max.Y, b.min.Y
	}
	if p[2] >= 0 {
		pv.Z, nv.Z = b.max.Z, b.min.Z
	}
	return pv, nv
}

// Extend grows the box to enclose the given volume.
func (b *Box) Extend(other Volume) {
	switch o := other.(type) {
	case *Sphere:
		b.ExtendSphere(o)
	case *Box:
		b.ExtendBox(o)
	}
}

// ExtendPoint grows the box to enclose the point p.
func (b *Box) ExtendPoint(p math.Vec3) {
	if b.state == stateMaximized {
		return
	}
	if b.state == stateUnset {
		b.min, b.max = p, p
		b.state = stateFinite
		return
	}
	b.min = b.min.Min(p)
	b.max = b.max.Max(p)
}

// ExtendBox grows the box to enclose another box.
func (b *Box) ExtendBox(o *Box) {
	if b.state == stateMaximized {
		return
	}
	if o.state == stateMaximized {
		b.Maximize()
		return
	}
	if o.state == stateUnset {
		return
	}
	if b.state == stateUnset {
		b.min, b.max = o.min, o.max
		b.state = stateFinite
		return
	}
	b.min = b.min.Min(o.min)
	b.max = b.max.Max(o.max)
}

// ExtendSphere grows the box to enclose a sphere's axis-aligned footprint.
func (b *Box) ExtendSphere(s *Sphere) {
	if b.state == stateMaximized {
		return
	}
	if s.state == stateMaximized {
		b.Maximize()
		return
	}
	if s.state == stateUnset {
		return
	}
	r := math.Vec3{X: s.radius, Y: s.radius, Z: s.radius}
	b.ExtendPoint(s.center.Sub(r))
	b.ExtendPoint(s.center.Add(r))
}

// Enclose resets the box and rebuilds it around the given points in a
// single componentwise min/max pass.
func (b *Box) Enclose(points []math.Vec3) {
	*b = Box{}

	if len(points) == 0 {
		return
	}

	b.min, b.max = points[0], points[0]
	b.state = stateFinite
	for _, p := range points[1:] {
		b.min = b.min.Min(p)
		b.max = b.max.Max(p)
	}
}

// Maximize makes the box enclose all space.
func (b *Box) Maximize() {
	b.min = math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32}
	b.max = math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32}
	b.state = stateMaximized
}

// Maximized reports whether the box is maximized.
func (b *Box) Maximized() bool {
	return b.state == stateMaximized
}

// OrthoTransform transforms the box by a matrix known to be orthogonal.
// A rotated box is no longer axis-aligned, so even the orthogonal case
// transforms the corners and re-fits; only the non-uniform-scale
// guarantee differs from Transform.
func (b *Box) OrthoTransform(m math.Mat4) {
	b.Transform(m)
}

// Transform applies a general affine transform by transforming the 8
// corners and re-fitting the axis-aligned result.
func (b *Box) Transform(m math.Mat4) {
	if b.state != stateFinite {
		return
	}
	corners := b.corners()
	b.min = m.TransformVec3(corners[0])
	b.max = b.min
	for _, c := range corners[1:] {
		tc := m.TransformVec3(c)
		b.min = b.min.Min(tc)
		b.max = b.max.Max(tc)
	}
}

// Clone returns an independent copy of the box.
func (b *Box) Clone() Volume {
	c := *b
	return &c
}
