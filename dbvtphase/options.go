package dbvtphase

import (
	"go.uber.org/zap"

	"github.com/suprax-engine/broadphase/paircache"
)

// Option configures a Phase at construction.
type Option func(*config)

type config struct {
	cache           paircache.Cache
	stageCount      int
	prediction      float64
	dupdates        int
	fupdates        int
	cupdates        int
	deferredCollide bool
	deterministic   bool
	logger          *zap.Logger
}

// WithPairCache supplies a pair cache other than the default Hashed one.
func WithPairCache(c paircache.Cache) Option {
	return func(cfg *config) { cfg.cache = c }
}

// WithStageCount sets the number of ring stages a proxy cycles through
// before it is considered settled and migrated into the fixed set. Default
// 2, matching the source's DbvtBroadPhase default.
func WithStageCount(n int) Option {
	return func(cfg *config) { cfg.stageCount = n }
}

// WithVelocityPrediction sets the fraction of a moving proxy's half-extent,
// signed along its motion vector, added to its fattened AABB on reinsertion.
// Default 0 (no prediction), matching the source's default Prediction field.
func WithVelocityPrediction(prediction float64) Option {
	return func(cfg *config) { cfg.prediction = prediction }
}

// WithUpdatePercentages sets the three per-frame incremental-work budgets:
// dupdates/fupdates bound OptimizeIncremental passes on the dynamic/fixed
// sets (percent of that set's leaf count), cupdates bounds the cleanup
// pass's rotating window (percent of the pair array). Defaults 0/1/10,
// matching the source's constructor.
func WithUpdatePercentages(dupdates, fupdates, cupdates int) Option {
	return func(cfg *config) { cfg.dupdates, cfg.fupdates, cfg.cupdates = dupdates, fupdates, cupdates }
}

// WithDeferredCollide controls whether CreateProxy/SetAABB run an immediate
// collide-tree-volume pass (false, the default) or leave all pair discovery
// to the next CalculateOverlappingPairs call (true).
func WithDeferredCollide(enabled bool) Option {
	return func(cfg *config) { cfg.deferredCollide = enabled }
}

// WithDeterministicPairs makes CalculateOverlappingPairs's deferred-removal
// compaction pass visit pairs in canonical (P0.ID, P1.ID) order.
func WithDeterministicPairs(enabled bool) Option {
	return func(cfg *config) { cfg.deterministic = enabled }
}

// WithLogger attaches a structured logger used to report each cleanup
// pass's window size and pair count at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) { cfg.logger = l }
}
