// Package dbvt implements a dynamic bounding-volume tree: a binary BVH of
// vecmath.AABB volumes tuned for frequent per-leaf updates rather than a
// one-time build. It backs both the DBVT-based broad-phase (package
// dbvtphase) and SAP's optional ray-cast accelerator (package sap).
//
// What:
//
//   - Insert/Remove/Update(+velocity) maintain the tree incrementally,
//     refitting ancestor volumes only as far up as containment requires.
//   - OptimizeIncremental amortizes rebalancing over many small steps;
//     OptimizeTopDown and OptimizeBottomUp rebuild a subtree from scratch.
//   - CollideTT, CollideTV, and RayTest walk the tree with an explicit,
//     caller-supplied stack so traversal never allocates and is safe to call
//     concurrently from different goroutines against the same (read-only)
//     tree, provided each caller owns its own Stack.
//
// Why:
//
//   - A raw-pointer parent/child graph doesn't translate to Go cleanly or
//     safely; this package uses an arena (Tree.nodes) addressed by 32-bit
//     indices, with NilNode as the reserved "no node" sentinel, per the
//     arena-port guidance this module's design notes settled on.
//
// Complexity: Insert/Remove/Update are O(log n) amortized; CollideTT and
// RayTest are output-sensitive, bounded by O(n) worst case.
//
// Errors: none of the tree mutators can fail in the ordinary sense; the only
// failure mode is allocator exhaustion, which is fatal to the host process,
// matching spec's "none of the DBVT operations can fail in the success
// sense" design note.
package dbvt
