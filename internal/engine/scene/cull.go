package scene

import (
	"github.com/Faultbox/cullkit/pkg/bvol"
	"github.com/Faultbox/cullkit/pkg/math"
)

// CullResult summarizes one culling traversal.
type CullResult struct {
	// Visible holds the leaf nodes that survived culling, in traversal
	// order.
	Visible []*Node
	// Tested counts frustum tests performed.
	Tested int
	// Culled counts subtrees pruned as outside.
	Culled int
}

// Cull walks the hierarchy rooted at n against a canonical-orientation
// frustum. The view matrix carries volumes from world space into frustum
// (eye) space; each node's volume is additionally transformed by the
// accumulated node transforms before testing.
//
// A subtree classified Outside is pruned without visiting its children;
// one classified Inside is accepted wholesale, skipping the per-child
// tests. Only Partial keeps the walk descending.
func (n *Node) Cull(f *bvol.Frustum, view math.Mat4) *CullResult {
	res := &CullResult{}
	n.cullWalk(f, view, res)
	return res
}

func (n *Node) cullWalk(f *bvol.Frustum, toEye math.Mat4, res *CullResult) {
	m := toEye.Mul(n.transform)

	vol := n.Bounds().Clone()
	vol.Transform(m)

	res.Tested++
	state := vol.IntersectFrustum(f)
	n.cullState = state

	switch state {
	case bvol.Outside:
		res.Culled++
		n.markSubtree(bvol.Outside)
	case bvol.Inside:
		n.markSubtree(bvol.Inside)
		n.collectLeaves(res)
	default:
		if n.IsLeaf() {
			res.Visible = append(res.Visible, n)
			return
		}
		for _, c := range n.children {
			c.cullWalk(f, m, res)
		}
	}
}

// markSubtree records a classification on every descendant, so debug
// views can color nodes that were never individually tested.
func (n *Node) markSubtree(state bvol.Intersection) {
	for _, c := range n.children {
		c.cullState = state
		c.markSubtree(state)
	}
}

func (n *Node) collectLeaves(res *CullResult) {
	if n.IsLeaf() {
		res.Visible = append(res.Visible, n)
		return
	}
	for _, c := range n.children {
		c.collectLeaves(res)
	}
}

// Walk visits every node in the hierarchy depth-first, parents before
// children.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.Walk(visit)
	}
}

// WorldTransforms returns the accumulated transform of every node keyed
// by node, with root treated as world origin. Used by the viewer to
// place volume wireframes.
func (n *Node) WorldTransforms() map[*Node]math.Mat4 {
	out := make(map[*Node]math.Mat4)
	n.worldWalk(math.Identity(), out)
	return out
}

func (n *Node) worldWalk(parent math.Mat4, out map[*Node]math.Mat4) {
	m := parent.Mul(n.transform)
	out[n] = m
	for _, c := range n.children {
		c.worldWalk(m, out)
	}
}
