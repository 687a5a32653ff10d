package bvol

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/math"
)

// Frustum is a view frustum in the canonical looking-down-negative-Z
// orientation: the eye at the origin, the near plane at Z = -ZNear and
// the far plane at Z = -ZFar.
//
// The four side planes are stored as (Nx, Ny, Nz, D) coefficients
// satisfying N·p = D for points on the plane, with normals pointing into
// the frustum. In the canonical orientation the side planes pass through
// the eye, so their D terms are zero, and the near/far tests reduce to Z
// comparisons against the two distances.
type Frustum struct {
	ZNear float32
	ZFar  float32

	TopPlane   [4]float32
	BotPlane   [4]float32
	LeftPlane  [4]float32
	RightPlane [4]float32
}

// NewPerspective builds a canonical frustum from a vertical field of view
// (radians), an aspect ratio (width/height), and the near/far distances.
func NewPerspective(fovy, aspect, near, far float32) *Frustum {
	ty := fovy / 2
	// horizontal half angle from the vertical one and the aspect ratio
	tx := math32.Atan(math32.Tan(ty) * aspect)

	sy, cy := math32.Sincos(ty)
	sx, cx := math32.Sincos(tx)

	return &Frustum{
		ZNear:      near,
		ZFar:       far,
		TopPlane:   [4]float32{0, -cy, -sy, 0},
		BotPlane:   [4]float32{0, cy, -sy, 0},
		LeftPlane:  [4]float32{cx, 0, -sx, 0},
		RightPlane: [4]float32{-cx, 0, -sx, 0},
	}
}

// planes returns all six planes in (Nx, Ny, Nz, D) form, the near and far
// distances expressed as planes like the sides.
func (f *Frustum) planes() [6][4]float32 {
	return [6][4]float32{
		{0, 0, -1, f.ZNear},
		{0, 0, 1, -f.ZFar},
		f.TopPlane,
		f.BotPlane,
		f.LeftPlane,
		f.RightPlane,
	}
}

// Corners returns the 8 corners of the frustum, near rectangle first,
// each rectangle ordered bottom-left, bottom-right, top-right, top-left.
// Useful for debug visualization.
func (f *Frustum) Corners() [8]math.Vec3 {
	// Recover the half angles from the stored plane normals.
	tanY := f.TopPlane[2] / f.TopPlane[1] // -sin/-cos
	tanX := f.RightPlane[2] / f.RightPlane[0]

	var out [8]math.Vec3
	for i, z := range [2]float32{f.ZNear, f.ZFar} {
		hy := z * tanY
		hx := z * tanX
		out[i*4+0] = math.Vec3{X: -hx, Y: -hy, Z: -z}
		out[i*4+1] = math.Vec3{X: hx, Y: -hy, Z: -z}
		out[i*4+2] = math.Vec3{X: hx, Y: hy, Z: -z}
		out[i*4+3] = math.Vec3{X: -hx, Y: hy, Z: -z}
	}
	return out
}
