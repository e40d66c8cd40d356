// Package metrics is an opt-in Prometheus collector reporting broad-phase
// health: live proxy count, pair-cache size, and (for the DBVT back-end,
// detected by a Stats() type assertion) dynamic/fixed leaf counts and the
// incremental-update ratio. It is never auto-registered into the default
// registry — a promauto.NewCounterVec-style global would be wrong for a
// library embedded in a host that may run several broad-phase instances —
// so the host constructs a Collector per instance and registers it itself,
// the pattern surveyed from syncthing-syncthing's cmd/ursrv/serve/metrics.go
// adapted from a process-global metric to a per-instance one.
package metrics
