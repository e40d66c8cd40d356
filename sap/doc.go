// Package sap implements the Sweep-and-Prune broad-phase engine: three
// per-axis sorted edge arrays whose incremental insertion-sort passes keep
// an overlapping-pair cache live without ever re-testing every pair from
// scratch.
//
// What: add_proxy/remove_proxy/update_proxy maintain each axis's edge array
// in sorted order; four sort primitives (sort_min_down/up, sort_max_down/up)
// do the bubbling and report pair additions or removals as a side effect of
// each edge swap.
//
// Why: a coherent frame-to-frame world (most proxies move a little, not a
// lot) means each axis array is nearly sorted already, so insertion sort's
// near-linear best case dominates — the classic justification for SAP over
// a tree rebuild every frame.
//
// Grounded on AxisSweepInternal.hpp/AxisSweep.hpp (Simon Hobbs' btAxisSweep3,
// via this module's reference material), with two source bugs fixed rather
// than reproduced: SortMinDown/SortMaxDown/SortMaxUp compared an edge's
// Position against a neighbour's Handle field instead of its Position (a
// literal typo), and SortMaxUp additionally misspelled its own local
// variable (handleNect) such that it wrote through an uninitialized
// pointer. Both are ordinary bugs, not a deliberate behavior this port
// preserves.
package sap
