// Package scheduler provides the optional parallel-work abstraction spec.md
// §5 describes: a broad-phase always produces its pair list sequentially,
// but dispatching the resulting narrow-phase work across pairs is
// embarrassingly parallel, and a host may want to fan that out across
// workers without every back-end reimplementing worker-pool plumbing.
//
// ParallelFor and ParallelSum are grain-sized parallel-for/parallel-reduce
// primitives built on golang.org/x/sync/errgroup and
// golang.org/x/sync/semaphore for bounded concurrency and first-error
// propagation. SpinMutex is a CAS spin lock for the rare case a back-end
// needs to guard a shared resource during a parallel phase (e.g. per-thread
// manifold lists before merge) without paying a full OS mutex's wakeup
// latency, grounded on the bounded-goroutine-slot pattern surveyed from
// other_examples' rt-bvh.go (a channel semaphore there; this package needs a
// mutex, not a counting semaphore, so the same bounded-concurrency idea is
// expressed as a CAS spin loop instead).
package scheduler
