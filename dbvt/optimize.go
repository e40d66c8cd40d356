package dbvt

import "github.com/suprax-engine/broadphase/vecmath"

// OptimizeIncremental performs passes amortized rebalancing steps. Each pass
// descends from the root guided by the low bits of an internal rotation
// counter (opath), then rotates the node found one level up with its
// "uncle" if doing so improves locality, and advances the counter.
//
// The source's Sort(n, r) rotation step decides direction by comparing raw
// node-pointer addresses, which has no meaningful analogue once nodes live
// in an index arena (slot order carries no structural information). This
// port instead compares the two candidate subtrees' leaf counts — a
// deliberate, documented deviation, not a bug fix — favoring rotations that
// move a smaller subtree, which is cheaper to rehome and tends to balance
// the tree similarly to the source's heuristic in practice.
func (t *Tree) OptimizeIncremental(passes int) {
	for i := 0; i < passes; i++ {
		if t.leaves < 3 || t.nodes[t.root].isLeaf() {
			t.opath++
			continue
		}
		maxDepth := t.MaxDepth()/2 + 1
		n := t.root
		for depth := 0; depth < maxDepth && !t.nodes[n].isLeaf(); depth++ {
			bit := (t.opath >> uint(depth%32)) & 1
			n = t.nodes[n].child[bit]
		}
		t.rotateUp(n)
		t.opath++
	}
}

// rotateUp swaps n's sibling with n's "uncle" (its parent's sibling under
// the grandparent) when the uncle's subtree is smaller, shortening the path
// to the larger subtree. A no-op if n is the root or a child of the root.
func (t *Tree) rotateUp(n NodeIndex) {
	p := t.nodes[n].parent
	if p == NilNode {
		return
	}
	gp := t.nodes[p].parent
	if gp == NilNode {
		return
	}

	pSlot := 0
	if t.nodes[gp].child[1] == p {
		pSlot = 1
	}
	uncle := t.nodes[gp].child[1-pSlot]

	nSlot := 0
	if t.nodes[p].child[1] == n {
		nSlot = 1
	}
	sibling := t.nodes[p].child[1-nSlot]

	if t.countLeaves(uncle) >= t.countLeaves(sibling) {
		return
	}

	t.nodes[gp].child[1-pSlot] = sibling
	t.nodes[sibling].parent = gp
	t.nodes[p].child[1-nSlot] = uncle
	t.nodes[uncle].parent = p

	t.refitFrom(p)
	t.refitFrom(gp)
}

// OptimizeBottomUp rebuilds the entire tree via greedy nearest-pair merging:
// repeatedly merge the two volumes whose union has the smallest surface
// area. O(n^2) in leaf count; intended for a one-time bulk load of a small
// or moderate population, grounded on DVBT.cpp's BottomUp.
func (t *Tree) OptimizeBottomUp() {
	leaves := t.leafNodes()
	t.clearStructure()
	if len(leaves) == 0 {
		return
	}

	active := make([]NodeIndex, len(leaves))
	copy(active, leaves)

	for len(active) > 1 {
		bestI, bestJ := 0, 1
		bestCost := t.nodes[active[0]].volume.Union(t.nodes[active[1]].volume).SurfaceArea()
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				cost := t.nodes[active[i]].volume.Union(t.nodes[active[j]].volume).SurfaceArea()
				if cost < bestCost {
					bestCost, bestI, bestJ = cost, i, j
				}
			}
		}
		a, b := active[bestI], active[bestJ]
		parent := t.alloc(t.nodes[a].volume.Union(t.nodes[b].volume), NilNode, nil)
		t.nodes[parent].child[0], t.nodes[parent].child[1] = a, b
		t.nodes[a].parent, t.nodes[b].parent = parent, parent

		if bestJ > bestI {
			active = append(active[:bestJ], active[bestJ+1:]...)
			active = append(active[:bestI], active[bestI+1:]...)
		}
		active = append(active, parent)
	}
	t.root = active[0]
}

// OptimizeTopDown rebuilds the tree via recursive median-axis splitting,
// falling back to OptimizeBottomUp once a subtree shrinks to bottomUpLimit
// leaves or fewer. Grounded on DVBT.cpp's TopDown and on the
// centroid-median-split build in the pack's standalone BVH reference
// (byvfx-go-raytracing's rt-bvh.go).
func (t *Tree) OptimizeTopDown(bottomUpLimit int) {
	leaves := t.leafNodes()
	t.clearStructure()
	if len(leaves) == 0 {
		return
	}
	if bottomUpLimit < 1 {
		bottomUpLimit = 1
	}
	t.root = t.buildTopDown(leaves, bottomUpLimit)
}

func (t *Tree) buildTopDown(items []NodeIndex, bottomUpLimit int) NodeIndex {
	if len(items) == 1 {
		return items[0]
	}
	if len(items) <= bottomUpLimit {
		return t.buildBottomUp(items)
	}

	bounds := t.nodes[items[0]].volume
	centroidBounds := vecmath.AABB{Min: t.nodes[items[0]].volume.Center(), Max: t.nodes[items[0]].volume.Center()}
	for _, it := range items[1:] {
		bounds = bounds.Union(t.nodes[it].volume)
		c := t.nodes[it].volume.Center()
		centroidBounds = centroidBounds.Union(vecmath.AABB{Min: c, Max: c})
	}
	axis := longestAxis(centroidBounds)

	sorted := append([]NodeIndex(nil), items...)
	sortByCentroidAxis(t, sorted, axis)
	mid := len(sorted) / 2

	left := t.buildTopDown(sorted[:mid], bottomUpLimit)
	right := t.buildTopDown(sorted[mid:], bottomUpLimit)

	parent := t.alloc(t.nodes[left].volume.Union(t.nodes[right].volume), NilNode, nil)
	t.nodes[parent].child[0], t.nodes[parent].child[1] = left, right
	t.nodes[left].parent, t.nodes[right].parent = parent, parent
	return parent
}

func (t *Tree) buildBottomUp(items []NodeIndex) NodeIndex {
	active := append([]NodeIndex(nil), items...)
	for len(active) > 1 {
		bestI, bestJ := 0, 1
		bestCost := t.nodes[active[0]].volume.Union(t.nodes[active[1]].volume).SurfaceArea()
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				cost := t.nodes[active[i]].volume.Union(t.nodes[active[j]].volume).SurfaceArea()
				if cost < bestCost {
					bestCost, bestI, bestJ = cost, i, j
				}
			}
		}
		a, b := active[bestI], active[bestJ]
		parent := t.alloc(t.nodes[a].volume.Union(t.nodes[b].volume), NilNode, nil)
		t.nodes[parent].child[0], t.nodes[parent].child[1] = a, b
		t.nodes[a].parent, t.nodes[b].parent = parent, parent
		active = append(active[:bestJ], active[bestJ+1:]...)
		active = append(active[:bestI], active[bestI+1:]...)
		active = append(active, parent)
	}
	return active[0]
}

func longestAxis(b vecmath.AABB) vecmath.Axis {
	d := b.Lengths()
	if d.X >= d.Y && d.X >= d.Z {
		return vecmath.AxisX
	}
	if d.Y >= d.Z {
		return vecmath.AxisY
	}
	return vecmath.AxisZ
}

func sortByCentroidAxis(t *Tree, items []NodeIndex, axis vecmath.Axis) {
	// insertion sort: rebuild pools are off the hot path and small enough
	// in practice (one-time bulk loads) that O(n^2) here is not a concern.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			ci := t.nodes[items[j]].volume.Center().Component(axis)
			cj := t.nodes[items[j-1]].volume.Center().Component(axis)
			if ci >= cj {
				break
			}
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

func (t *Tree) leafNodes() []NodeIndex {
	out := make([]NodeIndex, 0, t.leaves)
	if t.root == NilNode {
		return out
	}
	var walk func(n NodeIndex)
	walk = func(n NodeIndex) {
		if t.nodes[n].isLeaf() {
			out = append(out, n)
			return
		}
		walk(t.nodes[n].child[0])
		walk(t.nodes[n].child[1])
	}
	walk(t.root)
	return out
}

// clearStructure releases every internal node (not leaves, which are
// reparented into the freshly built structure) ahead of a full rebuild.
func (t *Tree) clearStructure() {
	if t.root == NilNode {
		return
	}
	var walk func(n NodeIndex)
	walk = func(n NodeIndex) {
		if t.nodes[n].isLeaf() {
			return
		}
		walk(t.nodes[n].child[0])
		walk(t.nodes[n].child[1])
		t.release(n)
	}
	walk(t.root)
	t.root = NilNode
}
