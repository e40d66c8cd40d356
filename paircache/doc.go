// Package paircache implements the broad-phase's overlapping-pair cache in
// three variants: Hashed (the default, chained hash table keyed by a
// Thomas-Wang integer mix), Sorted (a simpler linear-scan variant for small
// populations where ordered iteration matters more than lookup speed), and
// Null (every operation a no-op, for ray-cast accelerator trees that never
// need pair bookkeeping).
//
// What:
//
//   - Pair: a canonicalized (p0.ID < p1.ID), externally-owned narrow-phase
//     algorithm slot plus a scratch word.
//   - Cache: the common interface all three variants satisfy.
//   - Add/Remove/Find/ProcessAll, and the proxy-scoped bulk removal used
//     when a proxy is destroyed.
//
// Why:
//
//   - Hashed's swap-and-pop removal (copy the tail pair into the removed
//     slot, then re-link the tail's own hash-chain entry at its new index)
//     is the single most error-prone piece of this subsystem — see
//     hashed_test.go's bucket-chain-reachability test.
//
// Errors: none of these types can fail; a filter callback that rejects a
// pair simply means Add returns nil, which callers treat as "no pair yet".
package paircache
