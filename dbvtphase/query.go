package dbvtphase

import (
	"github.com/suprax-engine/broadphase/dbvt"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// RayTest walks both sets' trees, reporting every leaf the ray segment
// intersects. Grounded on DbvtBroadPhase.cpp's RayTest, which queries
// Sets[0] then Sets[1] with a thread-local stack; this port takes a fresh
// stack per call, as package sap's RayTest does, so concurrent queries never
// share traversal state.
func (p *Phase) RayTest(from, to vecmath.Vec3, visit proxy.OverlapVisit) {
	ray := dbvt.NewRay(from, to)
	stack := dbvt.NewStack()
	stop := false
	onHit := func(data any) bool {
		if visit(data.(*dbvtProxy).Proxy) {
			stop = true
			return true
		}
		return false
	}
	dbvt.RayTest(p.sets[dynamicSet], p.sets[dynamicSet].Root(), ray, stack, onHit)
	if stop {
		return
	}
	dbvt.RayTest(p.sets[fixedSet], p.sets[fixedSet].Root(), ray, stack, onHit)
}

// AABBTest reports every live proxy whose AABB intersects [min, max].
// Grounded on DbvtBroadPhase.cpp's AABBTest; like RayTest it takes a fresh
// stack per call.
func (p *Phase) AABBTest(min, max vecmath.Vec3, visit proxy.OverlapVisit) {
	query := vecmath.AABB{Min: min, Max: max}
	stack := dbvt.NewStack()
	stop := false
	onHit := func(data any) bool {
		if visit(data.(*dbvtProxy).Proxy) {
			stop = true
			return true
		}
		return false
	}
	dbvt.CollideTV(p.sets[dynamicSet], p.sets[dynamicSet].Root(), query, stack, onHit)
	if stop {
		return
	}
	dbvt.CollideTV(p.sets[fixedSet], p.sets[fixedSet].Root(), query, stack, onHit)
}
