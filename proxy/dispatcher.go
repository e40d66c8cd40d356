package proxy

import "github.com/suprax-engine/broadphase/vecmath"

// Dispatcher is the external narrow-phase collaborator every broad-phase
// back-end consumes but never implements, per spec.md §6's "Dispatcher hook
// contract". The source's allocate_collision_algorithm(size)/
// free_collision_algorithm(ptr) pair assumes manual memory management; Go
// has no equivalent, so AllocateAlgorithm/FreeAlgorithm instead hand the
// dispatcher an opaque `any` it is free to populate and reclaim however it
// likes (a pooled struct, a map entry, nothing at all).
type Dispatcher interface {
	// NeedsCollision filters out pairs the broad-phase should not even
	// track (e.g. two static bodies, or a disabled pair) before it ever
	// reaches the narrow phase.
	NeedsCollision(a, b *Proxy) bool

	// AllocateAlgorithm and FreeAlgorithm own the per-pair narrow-phase
	// algorithm state's lifecycle.
	AllocateAlgorithm(a, b *Proxy) any
	FreeAlgorithm(a, b *Proxy, algorithm any)

	// NewManifold, ReleaseManifold, and ClearManifold own the per-pair
	// contact manifold's lifecycle.
	NewManifold(a, b *Proxy) any
	ReleaseManifold(manifold any)
	ClearManifold(manifold any)
}

// OverlapVisit is invoked once per proxy found by an AABBTest query.
// Returning true stops the traversal early.
type OverlapVisit func(p *Proxy) bool

// RayCallback extends OverlapVisit with the ray parameters spec.md §6 says
// it carries: the precomputed reciprocal direction, per-axis sign bits, and
// a closest-hit fraction the traversal checks on every node so the
// callback can cancel by lowering LambdaMax. The broad-phase never mutates
// these fields itself.
type RayCallback struct {
	Visit        OverlapVisit
	InvDirection vecmath.Vec3
	Sign         [vecmath.NumAxes]bool
	LambdaMax    float64
}
