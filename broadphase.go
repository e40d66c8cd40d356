package broadphase

import (
	"github.com/suprax-engine/broadphase/dbvtphase"
	"github.com/suprax-engine/broadphase/sap"
	"github.com/suprax-engine/broadphase/vecmath"
)

// NewSAP constructs a Sweep-and-Prune back-end bounded to [worldMin,
// worldMax] with room for maxHandles live proxies, returned as Interface.
// Options are package sap's own (WithPairCache, WithQuantizerWidth,
// WithRayAccelerator, WithDeterministicPairs, WithLogger) — the façade adds
// no option machinery of its own, since the back-end's constructor already
// exposes everything spec.md's ambient stack calls for.
func NewSAP(worldMin, worldMax vecmath.Vec3, maxHandles int32, opts ...sap.Option) (Interface, error) {
	return sap.New(worldMin, worldMax, maxHandles, opts...)
}

// NewDBVT constructs a two-set DBVT broad-phase, returned as Interface.
// Options are package dbvtphase's own (WithPairCache, WithStageCount,
// WithVelocityPrediction, WithUpdatePercentages, WithDeferredCollide,
// WithDeterministicPairs, WithLogger).
func NewDBVT(opts ...dbvtphase.Option) Interface {
	return dbvtphase.New(opts...)
}

var (
	_ Interface = (*sap.Engine)(nil)
	_ Interface = (*dbvtphase.Phase)(nil)
)
