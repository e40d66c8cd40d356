// Package broadphase is a broad-phase collision detection core: two
// interchangeable back-ends — a Sweep-and-Prune engine (package sap) and a
// two-set dynamic bounding-volume tree (package dbvtphase) — behind one
// shared Interface, plus the supporting quantizer, proxy registry, and
// overlapping-pair cache every broad-phase needs regardless of back-end.
//
// What:
//
//   - vecmath   — Vec3/AABB primitives shared by every package below.
//   - quantize  — world-space-to-fixed-point coordinate packing.
//   - dbvt      — the arena-backed dynamic bounding-volume tree both
//     dbvtphase and sap's optional ray accelerator build on.
//   - proxy     — the Proxy handle, collision filter bits, and the
//     Dispatcher hook contract an external narrow phase implements.
//   - paircache — the overlapping-pair cache (hashed, sorted-deterministic,
//     and null variants) both back-ends share.
//   - sap       — the Sweep-and-Prune broad-phase engine.
//   - dbvtphase — the DBVT-backed broad-phase.
//   - broadphase/scheduler — an optional parallel-for/parallel-sum/spin-mutex
//     abstraction for fanning narrow-phase dispatch across workers.
//   - broadphase/metrics   — an opt-in Prometheus collector.
//
// Why two back-ends: Sweep-and-Prune's near-sorted incremental insertion
// sort is the simpler, cache-friendlier choice for small-to-medium scenes
// with coherent motion; the DBVT's dynamic/fixed split amortizes its
// rebalancing cost toward zero once most of a large scene has settled,
// which SAP cannot do without re-sorting every axis array regardless of how
// many proxies actually moved.
//
// This is a library, not a process: no wire formats, no files, no CLI, no
// environment variables — every broad-phase instance is in-process state a
// host owns and serializes its own mutator calls against.
package broadphase
