// Package picking provides ray casting against bounding volumes.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/bvol"
	"github.com/Faultbox/cullkit/pkg/math"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	// Unproject near and far points
	nearWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := math.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}.Normalize()

	return Ray{Origin: origin, Direction: dir}
}

// IntersectVolume tests the ray against any bounding volume. A maximized
// volume always hits at distance 0 (it encloses the ray origin); an unset
// volume never hits.
func (r Ray) IntersectVolume(v bvol.Volume) (t float32, hit bool) {
	if v.Maximized() {
		return 0, true
	}
	switch b := v.(type) {
	case *bvol.Sphere:
		return r.IntersectSphere(b)
	case *bvol.Box:
		return r.IntersectBox(b)
	}
	return 0, false
}

// IntersectSphere tests ray intersection with a bounding sphere.
// Returns the distance to the nearest intersection in front of the
// origin, or the exit distance if the origin is inside the sphere.
func (r Ray) IntersectSphere(s *bvol.Sphere) (t float32, hit bool) {
	if s.Maximized() {
		return 0, true
	}
	if !s.IsSet() {
		return 0, false
	}

	// Solve |O + tD - C|^2 = radius^2 for t.
	oc := r.Origin.Sub(s.Center())
	radius := s.Radius()

	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math32.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	if t1 < 0 {
		// entirely behind the origin
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

// IntersectBox tests ray intersection with an axis-aligned bounding box
// using the slab method. If the ray starts inside the box, returns the
// exit distance.
func (r Ray) IntersectBox(b *bvol.Box) (t float32, hit bool) {
	if b.Maximized() {
		return 0, true
	}
	if !b.IsSet() {
		return 0, false
	}

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	boxMin := [3]float32{b.MinCorner().X, b.MinCorner().Y, b.MinCorner().Z}
	boxMax := [3]float32{b.MaxCorner().X, b.MaxCorner().Y, b.MaxCorner().Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (boxMin[axis] - origin[axis]) / dir[axis]
			t2 := (boxMax[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < boxMin[axis] || origin[axis] > boxMax[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Entry point, or exit point if starting inside.
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
