package viewer

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/internal/config"
	"github.com/Faultbox/cullkit/internal/engine/scene"
	"github.com/Faultbox/cullkit/pkg/math"
)

// GenerateWorld builds a deterministic test scene from the given settings:
// leaf nodes with random point clouds, collected under group nodes so the
// hierarchy exercises merged group bounds during culling.
func GenerateWorld(cfg config.SceneConfig) *scene.Node {
	rng := rand.New(rand.NewSource(cfg.Seed))
	root := scene.NewGroup("world")

	groupSize := cfg.GroupSize
	if groupSize <= 0 {
		groupSize = 16
	}

	var group *scene.Node
	for i := 0; i < cfg.ObjectCount; i++ {
		if i%groupSize == 0 {
			group = scene.NewGroup(fmt.Sprintf("cluster-%d", i/groupSize))
			// Spread clusters over the ground plane
			gx := (rng.Float32() - 0.5) * cfg.WorldSize
			gz := (rng.Float32() - 0.5) * cfg.WorldSize
			group.SetTransform(math.Translate(gx, 0, gz))
			root.AddChild(group)
		}

		kind := scene.SphereBound
		if i%2 == 1 {
			kind = scene.BoxBound
		}

		leaf := scene.NewGeometry(fmt.Sprintf("object-%d", i), kind, blobPoints(rng))
		// Local offset within the cluster, with a random orientation so
		// box bounds get refit through real rotations.
		lx := (rng.Float32() - 0.5) * cfg.WorldSize * 0.15
		ly := rng.Float32() * 10
		lz := (rng.Float32() - 0.5) * cfg.WorldSize * 0.15
		rot := math.QuatFromAxisAngle(randomAxis(rng), rng.Float32()*2*math32.Pi)
		leaf.SetTransform(math.Translate(lx, ly, lz).Mul(rot.ToMat4()))
		group.AddChild(leaf)
	}

	return root
}

// randomAxis returns a uniformly random unit vector.
func randomAxis(rng *rand.Rand) math.Vec3 {
	for {
		v := math.Vec3{
			X: rng.Float32()*2 - 1,
			Y: rng.Float32()*2 - 1,
			Z: rng.Float32()*2 - 1,
		}
		if l := v.LengthSq(); l > 0.001 && l <= 1 {
			return v.Normalize()
		}
	}
}

// blobPoints generates a small random point cloud around the local origin.
func blobPoints(rng *rand.Rand) []math.Vec3 {
	n := 8 + rng.Intn(12)
	size := 0.5 + rng.Float32()*3

	pts := make([]math.Vec3, n)
	for i := range pts {
		pts[i] = math.Vec3{
			X: (rng.Float32() - 0.5) * 2 * size,
			Y: (rng.Float32() - 0.5) * 2 * size,
			Z: (rng.Float32() - 0.5) * 2 * size,
		}
	}
	return pts
}
