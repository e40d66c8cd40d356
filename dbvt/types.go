// Package dbvt — node arena and tree struct.
package dbvt

import "github.com/suprax-engine/broadphase/vecmath"

// NodeIndex addresses a node within a Tree's arena. NilNode is the reserved
// "no node" sentinel — the arena-indexed analogue of a null pointer in the
// source's raw-pointer graph.
type NodeIndex int32

// NilNode is the reserved sentinel meaning "no node".
const NilNode NodeIndex = -1

type node struct {
	volume vecmath.AABB
	parent NodeIndex
	child  [2]NodeIndex // leaf iff child[1] == NilNode
	data   any
}

func (n *node) isLeaf() bool { return n.child[1] == NilNode }

// Tree is a dynamic bounding-volume tree over arbitrary opaque leaf data.
// It is not safe for concurrent mutation; concurrent read-only traversal
// (CollideTT / CollideTV / RayTest) is safe provided each caller supplies
// its own Stack, per spec.md §5's re-entrancy requirement.
type Tree struct {
	nodes []node
	holes []NodeIndex // released slots available for immediate reuse
	free  NodeIndex   // the one-slot "most recently deleted" cache; NilNode if empty

	root   NodeIndex
	leaves int

	// Lookahead bounds how far up the tree Update may restart reinsertion
	// from, instead of always walking from the root. Exposed for API parity
	// with the source; this port always reinserts from the root, which is
	// always correct and simply forgoes the full performance benefit of a
	// shallower restart point (documented simplification, not a bug).
	Lookahead int

	opath uint32 // rotation counter consumed by OptimizeIncremental
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: NilNode, free: NilNode}
}

// Root returns the tree's root node index, or NilNode if the tree is empty.
func (t *Tree) Root() NodeIndex { return t.root }

// Len returns the number of live leaves in the tree.
func (t *Tree) Len() int { return t.leaves }

// Volume returns the stored volume of a node.
func (t *Tree) Volume(n NodeIndex) vecmath.AABB { return t.nodes[n].volume }

// Data returns the opaque payload stored at a leaf node.
func (t *Tree) Data(n NodeIndex) any { return t.nodes[n].data }

// IsLeaf reports whether n is a leaf node.
func (t *Tree) IsLeaf(n NodeIndex) bool { return t.nodes[n].isLeaf() }

// Parent returns n's parent, or NilNode if n is the root.
func (t *Tree) Parent(n NodeIndex) NodeIndex { return t.nodes[n].parent }

// Child returns n's i-th child (i in {0,1}); NilNode if n is a leaf.
func (t *Tree) Child(n NodeIndex, i int) NodeIndex { return t.nodes[n].child[i] }

func (t *Tree) alloc(vol vecmath.AABB, parent NodeIndex, data any) NodeIndex {
	n := node{volume: vol, parent: parent, child: [2]NodeIndex{NilNode, NilNode}, data: data}
	if t.free != NilNode {
		idx := t.free
		t.free = NilNode
		t.nodes[idx] = n
		return idx
	}
	if l := len(t.holes); l > 0 {
		idx := t.holes[l-1]
		t.holes = t.holes[:l-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return NodeIndex(len(t.nodes) - 1)
}

// release frees a node's slot using the one-slot cache described by
// spec.md §4.2: the most recently released slot is kept ready for instant
// reuse; releasing a second slot before the cache is consumed demotes the
// previous occupant into the general hole pool.
func (t *Tree) release(idx NodeIndex) {
	if t.free != NilNode {
		t.holes = append(t.holes, t.free)
	}
	t.free = idx
}
