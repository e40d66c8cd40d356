package sap

import (
	"go.uber.org/zap"

	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/quantize"
)

// Option configures an Engine at construction.
type Option func(*config)

type config struct {
	width         quantize.Width
	cache         paircache.Cache
	rayAccel      bool
	deterministic bool
	logger        *zap.Logger
}

// WithPairCache supplies a pair cache other than the default Hashed one —
// e.g. paircache.NewSorted() when deterministic ordering matters more than
// lookup speed, or paircache.NewNull() for a ray-only accelerator instance.
func WithPairCache(c paircache.Cache) Option {
	return func(cfg *config) { cfg.cache = c }
}

// WithQuantizerWidth selects the packed-coordinate width. Default Width16.
func WithQuantizerWidth(w quantize.Width) Option {
	return func(cfg *config) { cfg.width = w }
}

// WithRayAccelerator controls whether the engine embeds a null-pair-cache
// DBVT purely for RayTest/AABBTest. Enabled by default; disabling it falls
// back to the O(n) axis-0 sweep, which spec.md §4.5 reserves for
// correctness checks rather than hot-path use.
func WithRayAccelerator(enabled bool) Option {
	return func(cfg *config) { cfg.rayAccel = enabled }
}

// WithDeterministicPairs makes CalculateOverlappingPairs visit pairs in
// canonical (P0.ID, P1.ID) order, per spec.md §5's ordering guarantee.
func WithDeterministicPairs(enabled bool) Option {
	return func(cfg *config) { cfg.deterministic = enabled }
}

// WithLogger attaches a structured logger, forwarded to the internal
// Quantizer for its out-of-range degradation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) { cfg.logger = l }
}
