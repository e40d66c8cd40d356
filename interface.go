package broadphase

import (
	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// Interface is the operation set every broad-phase back-end exposes, per
// spec.md §4.7. The external dispatcher only ever sees this contract; it
// never needs to know whether it is driving the SAP engine or the DBVT
// broad-phase.
type Interface interface {
	// CreateProxy inserts a new proxy and returns its stable ID. May create
	// pairs immediately, depending on the back-end's deferred-collide
	// setting.
	CreateProxy(min, max vecmath.Vec3, userData any, group proxy.Group, mask proxy.Mask, dispatcher proxy.Dispatcher) (proxy.ID, error)

	// DestroyProxy removes a proxy, stripping every pair that mentions it
	// via the dispatcher.
	DestroyProxy(id proxy.ID, dispatcher proxy.Dispatcher) error

	// SetAABB updates a proxy's world AABB, idempotent if unchanged.
	SetAABB(id proxy.ID, newMin, newMax vecmath.Vec3, dispatcher proxy.Dispatcher) error

	// GetAABB returns a proxy's current world AABB.
	GetAABB(id proxy.ID) (vecmath.Vec3, vecmath.Vec3, error)

	// RayTest walks the back-end's structure, invoking visit for every leaf
	// the ray segment intersects. Re-entrant.
	RayTest(from, to vecmath.Vec3, visit proxy.OverlapVisit)

	// AABBTest invokes visit for every leaf whose AABB intersects [min, max].
	// Re-entrant.
	AABBTest(min, max vecmath.Vec3, visit proxy.OverlapVisit)

	// CalculateOverlappingPairs flushes deferred work and drops pairs whose
	// proxies no longer overlap.
	CalculateOverlappingPairs(dispatcher proxy.Dispatcher)

	// GetOverlappingPairCache returns the pair cache backing this instance.
	GetOverlappingPairCache() paircache.Cache

	// ResetPool clears all internal state. Only legal when no proxies are
	// live.
	ResetPool(dispatcher proxy.Dispatcher) error

	// Count returns the number of currently live proxies.
	Count() int

	// WorldBounds returns the back-end's bounds: the world AABB the SAP
	// engine was constructed with, or the union of the DBVT broad-phase's
	// two root volumes.
	WorldBounds() (vecmath.Vec3, vecmath.Vec3)
}
