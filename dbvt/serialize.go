package dbvt

// Writer receives one callback per node during Write, in pre-order: parent
// is NilNode for the root. isLeaf distinguishes leaves (data meaningful)
// from internal nodes (data always nil).
type Writer func(self, parent NodeIndex, volume interface{}, data any, isLeaf bool)

// Write walks the tree in pre-order, handing every node to w. Grounded on
// DBVT.hpp's IWriter-based Write/Clone serialization; unlike the source,
// which has to reconstruct parent pointers by hand on read-back, this
// arena's node slice already needs no such reconstruction — Clone is a
// plain copy (see Clone below), and Write exists for hosts that need an
// external representation (e.g. a debug dump or a save format).
func (t *Tree) Write(w Writer) {
	if t.root == NilNode {
		return
	}
	var walk func(n NodeIndex)
	walk = func(n NodeIndex) {
		nd := t.nodes[n]
		w(n, nd.parent, nd.volume, nd.data, nd.isLeaf())
		if !nd.isLeaf() {
			walk(nd.child[0])
			walk(nd.child[1])
		}
	}
	walk(t.root)
}

// Clone returns a deep copy of the tree. Because nodes are addressed by
// arena index rather than raw pointer, cloning is a direct slice copy — no
// pointer-fixup pass is required, unlike the source's Clone.
func (t *Tree) Clone() *Tree {
	out := &Tree{
		nodes:     append([]node(nil), t.nodes...),
		holes:     append([]NodeIndex(nil), t.holes...),
		free:      t.free,
		root:      t.root,
		leaves:    t.leaves,
		Lookahead: t.Lookahead,
		opath:     t.opath,
	}
	return out
}
