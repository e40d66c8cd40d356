package proxy

import "github.com/suprax-engine/broadphase/vecmath"

// ID stably and uniquely identifies a Proxy for its entire lifetime. Pair
// canonicalization (paircache) and the hashed cache's mixing function both
// rely on IDs being small, dense, non-negative integers.
type ID int32

// Group and Mask implement the collision-filter bitmask pair every Proxy
// carries: two proxies may collide only if each one's Group intersects the
// other's Mask, per spec.md §3 and the source's NeedsBroadPhaseCollision.
type Group uint32
type Mask uint32

// DefaultGroup and DefaultMask collide with everything, the common case for
// a host that doesn't need filtering.
const (
	DefaultGroup Group = 1
	DefaultMask  Mask  = 0xffffffff
)

// Proxy is the broad-phase's handle on an external collidable object: its
// current world AABB, collision filter bits, an opaque user pointer, and a
// stable unique ID. It carries no back-reference into a specific back-end's
// internal structure — each back-end embeds *Proxy in its own handle type
// (sap.Handle, dbvtphase's unexported dbvtProxy) and adds its own
// back-pointers there.
type Proxy struct {
	ID       ID
	AABB     vecmath.AABB
	Group    Group
	Mask     Mask
	UserData any
}

// NeedsCollision applies the default group/mask bitwise filter: a and b may
// collide only if each one's Group bit intersects the other's Mask bit.
// Grounded on OverlappingPair.cpp's NeedsBroadPhaseCollision.
func NeedsCollision(a, b *Proxy) bool {
	return uint32(a.Group)&uint32(b.Mask) != 0 && uint32(b.Group)&uint32(a.Mask) != 0
}

// Allocator hands out stable, dense, monotonically increasing IDs. Each
// back-end owns one Allocator for the proxies it creates.
type Allocator struct {
	next int32
}

// Next returns the next unused ID.
func (a *Allocator) Next() ID {
	id := ID(a.next)
	a.next++
	return id
}
