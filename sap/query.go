package sap

import (
	"github.com/suprax-engine/broadphase/dbvt"
	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// CalculateOverlappingPairs flushes any deferred pair-cache compaction. The
// edge sorts performed by CreateProxy/DestroyProxy/SetAABB already keep a
// non-deferred cache (the default Hashed one) live pair-by-pair, so this is
// a no-op unless the engine was built WithPairCache(paircache.NewSorted())
// or similar. Grounded on AxisSweepInternal.hpp's CalculateOverlappingPairs.
func (e *Engine) CalculateOverlappingPairs(dispatcher proxy.Dispatcher) {
	if !e.cache.HasDeferredRemoval() {
		return
	}
	e.cache.ProcessAll(dispatcher, e.deterministic, func(pair *paircache.Pair) bool {
		return !pair.P0.AABB.Intersects(pair.P1.AABB)
	})
}

// RayTest delegates to the embedded DBVT ray accelerator when present, with
// a fresh traversal stack per call; otherwise it walks axis 0's max-edges,
// testing each live proxy's AABB against the ray segment's bounding box —
// an O(n) fallback reserved for correctness checks, per spec.md §4.5.
func (e *Engine) RayTest(from, to vecmath.Vec3, visit proxy.OverlapVisit) {
	if e.rayAccel != nil {
		ray := dbvt.NewRay(from, to)
		dbvt.RayTest(e.rayAccel, e.rayAccel.Root(), ray, dbvt.NewStack(), func(data any) bool {
			return visit(data.(*proxy.Proxy))
		})
		return
	}

	rayBox := vecmath.FromPoints(from, to)
	for _, ed := range e.edges[vecmath.AxisX] {
		if ed.handle == noHandle || !ed.isMax() {
			continue
		}
		p := e.handles[ed.handle].Proxy
		if !p.AABB.Intersects(rayBox) {
			continue
		}
		if visit(p) {
			return
		}
	}
}

// AABBTest reports every live proxy whose AABB intersects [min, max]. Uses
// the ray accelerator's tree as a volume query, with a fresh traversal stack
// per call, when present; otherwise scans axis 0 linearly.
func (e *Engine) AABBTest(min, max vecmath.Vec3, visit proxy.OverlapVisit) {
	query := vecmath.AABB{Min: min, Max: max}
	if e.rayAccel != nil {
		dbvt.CollideTV(e.rayAccel, e.rayAccel.Root(), query, dbvt.NewStack(), func(data any) bool {
			return visit(data.(*proxy.Proxy))
		})
		return
	}

	for _, ed := range e.edges[vecmath.AxisX] {
		if ed.handle == noHandle || !ed.isMax() {
			continue
		}
		p := e.handles[ed.handle].Proxy
		if !p.AABB.Intersects(query) {
			continue
		}
		if visit(p) {
			return
		}
	}
}
