// Package bvol provides bounding volumes for visibility culling and picking.
//
// Every piece of scene geometry keeps a bounding volume so that a renderer
// can cheaply prune branches that fall outside the view frustum, and so the
// picking code can reject objects a ray cannot hit. Spheres are the primary
// volume (fast to test, fairly loose); axis-aligned boxes give tighter
// bounds for static geometry.
package bvol

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/math"
)

// Intersection is the result of testing a volume against a frustum.
type Intersection int

const (
	// Outside means the tested volume is entirely outside the frustum.
	Outside Intersection = iota
	// Partial means the tested volume straddles the frustum boundary.
	Partial
	// Inside means the tested volume is entirely inside the frustum.
	Inside
)

// String returns a readable name for the intersection result.
func (i Intersection) String() string {
	switch i {
	case Outside:
		return "outside"
	case Partial:
		return "partial"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// Volume is a bounding volume around scene geometry.
//
// A volume starts out unset (encloses nothing), grows through Extend and
// Enclose, and can be maximized to enclose all space. Maximized volumes are
// how nodes that must always render opt out of culling; picking and culling
// code can tell a maximized volume apart from a merely large or unset one
// via Maximized.
//
// IntersectFrustum assumes the frustum is in the canonical
// looking-down-negative-Z orientation, so the volume has to be transformed
// into frustum space first (Transform or OrthoTransform).
type Volume interface {
	// IntersectFrustum tests the volume against a canonical-orientation
	// frustum and reports Inside, Outside, or Partial.
	IntersectFrustum(f *Frustum) Intersection

	// Extend grows the volume to enclose other.
	Extend(other Volume)

	// ExtendPoint grows the volume to enclose a single point.
	ExtendPoint(p math.Vec3)

	// Enclose resets the volume and rebuilds it around exactly the given
	// point set. An empty set leaves the volume unset.
	Enclose(points []math.Vec3)

	// Maximize makes the volume enclose all space.
	Maximize()

	// Maximized reports whether Maximize was called and no reset followed.
	Maximized() bool

	// OrthoTransform applies a transform the caller guarantees to be
	// orthogonal (translation, rotation, uniform scale). The result is
	// undefined for any other transform; call Transform when in doubt.
	OrthoTransform(m math.Mat4)

	// Transform applies a general affine transform. Always safe in place
	// of OrthoTransform, at extra cost.
	Transform(m math.Mat4)

	// Clone returns an independent copy of the volume.
	Clone() Volume
}

// fepsilon is the tolerance for near-zero float comparisons. Exact
// equality would let rounding noise trigger spurious merges.
const fepsilon = 1.0e-6

func fnearZero(v float32) bool {
	return math32.Abs(v) < fepsilon
}
