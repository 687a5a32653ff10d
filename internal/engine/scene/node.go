// Package scene provides a transform hierarchy whose nodes own bounding
// volumes, and a frustum-culling walk over it.
//
// Geometry changes propagate bottom-up: a leaf rebuilds its volume from
// its points, a group merges the volumes of its children transformed into
// the group's space. The renderer walks top-down, testing each node's
// volume against the view frustum and pruning branches proven invisible.
package scene

import (
	"github.com/Faultbox/cullkit/pkg/bvol"
	"github.com/Faultbox/cullkit/pkg/math"
)

// BoundKind selects the bounding volume variant a node carries.
type BoundKind int

const (
	// SphereBound is the default: cheap to merge and to test.
	SphereBound BoundKind = iota
	// BoxBound gives tighter bounds for static axis-heavy geometry.
	BoxBound
)

// Node is an element of the scene hierarchy. Groups aggregate children;
// leaves carry point geometry. Every node owns exactly one bounding
// volume, kept in the node's local coordinate space.
//
// Nodes are not safe for concurrent mutation; the owner serializes
// updates against traversals.
type Node struct {
	name      string
	parent    *Node
	children  []*Node
	transform math.Mat4

	points []math.Vec3

	vol       bvol.Volume
	dirty     bool
	pinned    bool // volume forced maximized, never culled
	cullState bvol.Intersection
}

// NewGroup creates an empty group node. Groups use sphere bounds, which
// merge cheaply as children come and go.
func NewGroup(name string) *Node {
	return &Node{
		name:      name,
		transform: math.Identity(),
		vol:       bvol.NewSphere(),
		dirty:     true,
		cullState: bvol.Partial,
	}
}

// NewGeometry creates a leaf node around a point set with the chosen
// bound variant.
func NewGeometry(name string, kind BoundKind, points []math.Vec3) *Node {
	n := &Node{
		name:      name,
		transform: math.Identity(),
		points:    points,
		dirty:     true,
		cullState: bvol.Partial,
	}
	switch kind {
	case BoxBound:
		n.vol = bvol.NewBox()
	default:
		n.vol = bvol.NewSphere()
	}
	return n
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	return n.children
}

// IsLeaf reports whether the node carries geometry rather than children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// AddChild attaches a child node and invalidates bounds up the chain.
func (n *Node) AddChild(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
	n.invalidate()
}

// Transform returns the node's local transform.
func (n *Node) Transform() math.Mat4 {
	return n.transform
}

// SetTransform replaces the node's local transform. The node's own
// volume stays valid (it lives in local space); ancestors must remerge.
func (n *Node) SetTransform(m math.Mat4) {
	n.transform = m
	if n.parent != nil {
		n.parent.invalidate()
	}
}

// BoundKind reports the variant of the node's bounding volume.
func (n *Node) BoundKind() BoundKind {
	if _, ok := n.vol.(*bvol.Box); ok {
		return BoxBound
	}
	return SphereBound
}

// SetBoundKind swaps the node's bounding volume variant. The new volume
// is rebuilt from geometry on the next Bounds call.
func (n *Node) SetBoundKind(kind BoundKind) {
	if kind == n.BoundKind() {
		return
	}
	if kind == BoxBound {
		n.vol = bvol.NewBox()
	} else {
		n.vol = bvol.NewSphere()
	}
	n.invalidate()
}

// SetPoints replaces a leaf's geometry and invalidates bounds.
func (n *Node) SetPoints(points []math.Vec3) {
	n.points = points
	n.invalidate()
}

// Pin forces the node's volume to maximized so the branch it is on is
// never culled. Picking and culling can still tell this apart from a
// merely large volume through Volume.Maximized.
func (n *Node) Pin() {
	n.pinned = true
	n.invalidate()
}

// invalidate marks this node and all ancestors dirty.
func (n *Node) invalidate() {
	for p := n; p != nil; p = p.parent {
		if p.dirty {
			break
		}
		p.dirty = true
	}
}

// Bounds returns the node's bounding volume in the node's local space,
// recomputing it if geometry or descendants changed.
func (n *Node) Bounds() bvol.Volume {
	if n.dirty {
		n.rebuildBounds()
		n.dirty = false
	}
	return n.vol
}

func (n *Node) rebuildBounds() {
	if n.pinned {
		n.vol.Maximize()
		return
	}
	if n.IsLeaf() {
		n.vol.Enclose(n.points)
		return
	}

	// Reset, then merge each child's volume brought into this node's
	// space by the child transform.
	n.vol.Enclose(nil)
	for _, c := range n.children {
		cv := c.Bounds().Clone()
		cv.Transform(c.transform)
		n.vol.Extend(cv)
	}
}

// CullState returns the node's classification from the most recent Cull.
func (n *Node) CullState() bvol.Intersection {
	return n.cullState
}
