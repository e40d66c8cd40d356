package broadphase_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/suprax-engine/broadphase"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

type fakeDispatcher struct{}

func (fakeDispatcher) NeedsCollision(a, b *proxy.Proxy) bool   { return proxy.NeedsCollision(a, b) }
func (fakeDispatcher) AllocateAlgorithm(a, b *proxy.Proxy) any { return nil }
func (fakeDispatcher) FreeAlgorithm(a, b *proxy.Proxy, x any)  {}
func (fakeDispatcher) NewManifold(a, b *proxy.Proxy) any       { return nil }
func (fakeDispatcher) ReleaseManifold(m any)                   {}
func (fakeDispatcher) ClearManifold(m any)                     {}

var _ proxy.Dispatcher = fakeDispatcher{}

type FacadeSuite struct {
	suite.Suite
	dispatcher fakeDispatcher
}

func TestFacadeSuite(t *testing.T) {
	suite.Run(t, new(FacadeSuite))
}

// backends returns one Interface per back-end, so every scenario below runs
// against both without duplicating its body.
func (s *FacadeSuite) backends() map[string]broadphase.Interface {
	sapEngine, err := broadphase.NewSAP(vecmath.Vec3{X: -100, Y: -100, Z: -100}, vecmath.Vec3{X: 100, Y: 100, Z: 100}, 16)
	s.Require().NoError(err)
	return map[string]broadphase.Interface{
		"sap":  sapEngine,
		"dbvt": broadphase.NewDBVT(),
	}
}

// TestTwoBoxesDiverging mirrors spec.md §8 scenario 1 across both back-ends.
func (s *FacadeSuite) TestTwoBoxesDiverging() {
	for name, bp := range s.backends() {
		s.Run(name, func() {
			a, err := bp.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 10, Y: 10, Z: 10}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
			s.Require().NoError(err)
			_, err = bp.CreateProxy(vecmath.Vec3{X: 5, Y: 5, Z: 5}, vecmath.Vec3{X: 15, Y: 15, Z: 15}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
			s.Require().NoError(err)

			bp.CalculateOverlappingPairs(s.dispatcher)
			require.Equal(s.T(), 1, bp.GetOverlappingPairCache().Count())

			require.NoError(s.T(), bp.SetAABB(a, vecmath.Vec3{X: 20, Y: 5, Z: 5}, vecmath.Vec3{X: 30, Y: 15, Z: 15}, s.dispatcher))
			bp.CalculateOverlappingPairs(s.dispatcher)
			require.Equal(s.T(), 0, bp.GetOverlappingPairCache().Count())
		})
	}
}

// TestTouchingBoxesProduceNoPair mirrors spec.md §8 scenario 2: edges equal
// on exactly one axis must not count as overlap.
func (s *FacadeSuite) TestTouchingBoxesProduceNoPair() {
	for name, bp := range s.backends() {
		s.Run(name, func() {
			_, err := bp.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 10, Y: 10, Z: 10}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
			s.Require().NoError(err)
			_, err = bp.CreateProxy(vecmath.Vec3{X: 10, Y: 0, Z: 0}, vecmath.Vec3{X: 20, Y: 10, Z: 10}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
			s.Require().NoError(err)

			bp.CalculateOverlappingPairs(s.dispatcher)
			require.Equal(s.T(), 0, bp.GetOverlappingPairCache().Count())
		})
	}
}

func (s *FacadeSuite) TestResetPoolRejectsWhileLive() {
	for name, bp := range s.backends() {
		s.Run(name, func() {
			_, err := bp.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, nil, proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
			s.Require().NoError(err)
			require.Error(s.T(), bp.ResetPool(s.dispatcher))
		})
	}
}
