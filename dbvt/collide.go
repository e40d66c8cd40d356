package dbvt

import "github.com/suprax-engine/broadphase/vecmath"

// Visit is invoked for each colliding leaf pair found by CollideTT. Returning
// true stops the traversal early (the overlap-callback short-circuit
// convention from spec.md §6); false continues.
type Visit func(dataA, dataB any) bool

// CollideTT walks treeA and treeB in lock-step, reporting every pair of
// leaves whose volumes intersect. Passing the same tree and root for both
// sides performs a self-collide pass, with the a==b diagonal handled so
// each unordered leaf pair is still visited exactly once. stack is supplied
// by the caller and reused across calls; it must not be shared between
// concurrent callers. Grounded on DBVT.hpp/DVBT.cpp's CollideTT and
// CollideTTpersistentStack.
func CollideTT(treeA, treeB *Tree, rootA, rootB NodeIndex, stack *Stack, visit Visit) {
	if rootA == NilNode || rootB == NilNode {
		return
	}
	stack.pushPair(rootA, rootB)
	for {
		a, b, ok := stack.popPair()
		if !ok {
			return
		}
		if treeA == treeB && a == b {
			if !treeA.nodes[a].isLeaf() {
				c0, c1 := treeA.nodes[a].child[0], treeA.nodes[a].child[1]
				stack.pushPair(c0, c0)
				stack.pushPair(c1, c1)
				stack.pushPair(c0, c1)
			}
			continue
		}

		if !treeA.nodes[a].volume.Intersects(treeB.nodes[b].volume) {
			continue
		}

		aLeaf, bLeaf := treeA.nodes[a].isLeaf(), treeB.nodes[b].isLeaf()
		switch {
		case aLeaf && bLeaf:
			if visit(treeA.nodes[a].data, treeB.nodes[b].data) {
				stack.pairs = stack.pairs[:0] // leave the stack empty for the next call
				return
			}
		case !aLeaf && !bLeaf:
			stack.pushPair(treeA.nodes[a].child[0], treeB.nodes[b].child[0])
			stack.pushPair(treeA.nodes[a].child[0], treeB.nodes[b].child[1])
			stack.pushPair(treeA.nodes[a].child[1], treeB.nodes[b].child[0])
			stack.pushPair(treeA.nodes[a].child[1], treeB.nodes[b].child[1])
		case !aLeaf:
			stack.pushPair(treeA.nodes[a].child[0], b)
			stack.pushPair(treeA.nodes[a].child[1], b)
		default:
			stack.pushPair(a, treeB.nodes[b].child[0])
			stack.pushPair(a, treeB.nodes[b].child[1])
		}
	}
}

// VisitOne is invoked for each leaf found by CollideTV; true stops early.
type VisitOne func(data any) bool

// CollideTV reports every leaf of tree rooted at root whose volume
// intersects volume. Grounded on DBVT.hpp's CollideTV.
func CollideTV(t *Tree, root NodeIndex, volume vecmath.AABB, stack *Stack, visit VisitOne) {
	if root == NilNode {
		return
	}
	stack.pushNode(root)
	for {
		n, ok := stack.popNode()
		if !ok {
			return
		}
		if !t.nodes[n].volume.Intersects(volume) {
			continue
		}
		if t.nodes[n].isLeaf() {
			if visit(t.nodes[n].data) {
				stack.nodes = stack.nodes[:0] // leave the stack empty for the next call
				return
			}
			continue
		}
		stack.pushNode(t.nodes[n].child[0])
		stack.pushNode(t.nodes[n].child[1])
	}
}
