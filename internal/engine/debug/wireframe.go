// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/bvol"
	"github.com/Faultbox/cullkit/pkg/math"
)

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// SphereCircleSegments is the segment count per great circle of a sphere wireframe.
const SphereCircleSegments = 32

// BoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BoxWireframeVertices(b *bvol.Box) []float32 {
	mn, mx := b.MinCorner(), b.MaxCorner()
	minX, minY, minZ := mn.X, mn.Y, mn.Z
	maxX, maxY, maxZ := mx.X, mx.Y, mx.Z

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// SphereWireframeVertices creates line vertices for a wireframe bounding
// sphere: three great circles in the XY, XZ and YZ planes, each built
// from SphereCircleSegments line segments.
func SphereWireframeVertices(s *bvol.Sphere) []float32 {
	c := s.Center()
	r := s.Radius()

	verts := make([]float32, 0, 3*SphereCircleSegments*6)
	step := 2 * math32.Pi / SphereCircleSegments

	appendCircle := func(point func(angle float32) math.Vec3) {
		for i := 0; i < SphereCircleSegments; i++ {
			a := point(float32(i) * step)
			b := point(float32(i+1) * step)
			verts = append(verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}

	// XY plane
	appendCircle(func(t float32) math.Vec3 {
		return math.Vec3{X: c.X + r*math32.Cos(t), Y: c.Y + r*math32.Sin(t), Z: c.Z}
	})
	// XZ plane
	appendCircle(func(t float32) math.Vec3 {
		return math.Vec3{X: c.X + r*math32.Cos(t), Y: c.Y, Z: c.Z + r*math32.Sin(t)}
	})
	// YZ plane
	appendCircle(func(t float32) math.Vec3 {
		return math.Vec3{X: c.X, Y: c.Y + r*math32.Cos(t), Z: c.Z + r*math32.Sin(t)}
	})

	return verts
}

// FrustumWireframeVertices creates line vertices for a wireframe view
// frustum. The frustum corners are in eye space; toWorld carries them
// into world space so the wireframe can be drawn alongside scene bounds.
func FrustumWireframeVertices(f *bvol.Frustum, toWorld math.Mat4) []float32 {
	c := f.Corners()
	for i := range c {
		c[i] = toWorld.TransformVec3(c[i])
	}

	// Corners 0-3 are the near plane, 4-7 the far plane, both wound
	// counterclockwise seen from the eye.
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // near
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // far
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // sides
	}

	verts := make([]float32, 0, len(edges)*6)
	for _, e := range edges {
		a, b := c[e[0]], c[e[1]]
		verts = append(verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return verts
}

// VolumeWireframeVertices dispatches on the concrete volume type.
// Unset and maximized volumes produce no geometry.
func VolumeWireframeVertices(v bvol.Volume) []float32 {
	if v.Maximized() {
		return nil
	}
	switch vol := v.(type) {
	case *bvol.Sphere:
		if !vol.IsSet() {
			return nil
		}
		return SphereWireframeVertices(vol)
	case *bvol.Box:
		if !vol.IsSet() {
			return nil
		}
		return BoxWireframeVertices(vol)
	}
	return nil
}
