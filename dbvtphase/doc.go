// Package dbvtphase implements the DBVT-backed broad-phase: two dynamic
// bounding-volume trees (a "dynamic" set for proxies that moved recently and
// a "fixed" set for proxies that have settled) plus a stage ring that
// promotes settled proxies from one to the other.
//
// What:
//
//   - CreateProxy/DestroyProxy/SetAABB/SetAABBForceUpdate maintain a proxy's
//     leaf in whichever set it currently belongs to.
//   - CalculateOverlappingPairs incrementally rebalances both trees, advances
//     the stage ring (migrating settled proxies dynamic -> fixed), optionally
//     runs the deferred tree-tree collide pass, and sweeps a rotating window
//     of the pair cache to drop pairs whose leaves no longer overlap.
//   - RayTest/AABBTest walk both sets with a traversal stack of their own
//     per call.
//
// Why: a single dynamic tree rebalances every settled (non-moving) leaf on
// every incremental pass for no benefit; splitting moving proxies from
// settled ones lets the fixed set's incremental budget taper toward zero
// once the scene is quiet, which is the DBVT broad-phase's whole reason to
// exist alongside the simpler SAP engine (package sap).
//
// Complexity: CreateProxy/DestroyProxy/SetAABB are O(log n) amortized (one
// dbvt.Tree mutation each); CalculateOverlappingPairs is bounded by its own
// percent-of-leaves optimize budgets and percent-of-pairs cleanup window,
// never a full O(n) pass except when FixedLeft or the pair array demand it.
//
// Errors: see errors.go; ResetPool fails with ErrPoolNotEmpty while proxies
// are live, and the operations that take a proxy ID fail with
// ErrUnknownProxy for an ID that is not live.
//
// Grounded on DBVTBroadPhase.hpp (struct layout, stage-ring fields) and
// DBVTBroadPhase.cpp (Collide, CreateProxy, DestroyProxy, SetAABB,
// SetAABBForceUpdate, PerformDeferredRemoval, ResetPool, RayTest, AABBTest,
// GetBroadPhaseAABB).
package dbvtphase
