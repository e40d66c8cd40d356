package quantize

import "go.uber.org/zap"

// Option configures a Quantizer at construction, following the functional-
// options convention used across this module's constructors.
type Option func(*Quantizer)

// WithWidth selects the packed-coordinate integer width. Default Width16.
func WithWidth(w Width) Option {
	return func(q *Quantizer) { q.width = w }
}

// WithLogger attaches a structured logger that receives a warning whenever
// Quantize has to clamp an out-of-world coordinate — the "silent
// degradation" hook spec.md §4.1 allows but does not mandate. Nil (the
// default) disables the hook entirely at zero cost.
func WithLogger(l *zap.Logger) Option {
	return func(q *Quantizer) { q.logger = l }
}
