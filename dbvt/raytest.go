package dbvt

import "github.com/suprax-engine/broadphase/vecmath"

// Ray is a ray segment from From toward To, pre-decomposed into the
// reciprocal direction and axis-sign bits the slab test needs, so
// RayTest can be called repeatedly without recomputing them. Grounded on
// DBVT.hpp's RayTestInternal, using the portable (non-SIMD) slab test.
type Ray struct {
	From, To vecmath.Vec3
	invDir   vecmath.Vec3
	sign     [vecmath.NumAxes]bool // true if direction component is negative
}

// NewRay precomputes the reciprocal direction and sign bits for a ray
// segment from `from` to `to`.
func NewRay(from, to vecmath.Vec3) Ray {
	d := to.Sub(from)
	r := Ray{From: from, To: to}
	r.invDir = vecmath.Vec3{X: safeInv(d.X), Y: safeInv(d.Y), Z: safeInv(d.Z)}
	r.sign[vecmath.AxisX] = d.X < 0
	r.sign[vecmath.AxisY] = d.Y < 0
	r.sign[vecmath.AxisZ] = d.Z < 0
	return r
}

func safeInv(v float64) float64 {
	if v == 0 {
		return 1e300 // effectively infinite reciprocal; the slab test below still degenerates correctly
	}
	return 1 / v
}

// slabHit reports whether the ray (already clipped to [0,1] parametrically)
// intersects vol at all.
func (r Ray) slabHit(vol vecmath.AABB) bool {
	tMin, tMax := 0.0, 1.0
	bounds := [2]vecmath.Vec3{vol.Min, vol.Max}
	for _, a := range [vecmath.NumAxes]vecmath.Axis{vecmath.AxisX, vecmath.AxisY, vecmath.AxisZ} {
		lo := bounds[0].Component(a)
		hi := bounds[1].Component(a)
		if r.sign[a] {
			lo, hi = hi, lo
		}
		inv := r.invDir.Component(a)
		t0 := (lo - r.From.Component(a)) * inv
		t1 := (hi - r.From.Component(a)) * inv
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

// RayTest walks tree rooted at root, reporting every leaf whose volume the
// ray segment intersects. stack is caller-supplied and reused across calls
// so repeated ray casts (e.g. one per thread from a pre-sized stack pool,
// per spec.md §4.6) stay allocation-free.
func RayTest(t *Tree, root NodeIndex, ray Ray, stack *Stack, visit VisitOne) {
	if root == NilNode {
		return
	}
	stack.pushNode(root)
	for {
		n, ok := stack.popNode()
		if !ok {
			return
		}
		if !ray.slabHit(t.nodes[n].volume) {
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
