package sap_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/sap"
	"github.com/suprax-engine/broadphase/vecmath"
)

type fakeDispatcher struct{}

func (fakeDispatcher) NeedsCollision(a, b *proxy.Proxy) bool    { return proxy.NeedsCollision(a, b) }
func (fakeDispatcher) AllocateAlgorithm(a, b *proxy.Proxy) any  { return nil }
func (fakeDispatcher) FreeAlgorithm(a, b *proxy.Proxy, x any)   {}
func (fakeDispatcher) NewManifold(a, b *proxy.Proxy) any        { return nil }
func (fakeDispatcher) ReleaseManifold(m any)                    {}
func (fakeDispatcher) ClearManifold(m any)                      {}

var _ proxy.Dispatcher = fakeDispatcher{}

type EngineSuite struct {
	suite.Suite
	dispatcher fakeDispatcher
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) newEngine(opts ...sap.Option) *sap.Engine {
	e, err := sap.New(vecmath.Vec3{X: -100, Y: -100, Z: -100}, vecmath.Vec3{X: 100, Y: 100, Z: 100}, 16, opts...)
	s.Require().NoError(err)
	return e
}

func (s *EngineSuite) TestAddCreatesOverlapPair() {
	e := s.newEngine()
	id0, err := e.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	id1, err := e.CreateProxy(vecmath.Vec3{X: 1, Y: 1, Z: 1}, vecmath.Vec3{X: 3, Y: 3, Z: 3}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	require.Equal(s.T(), 1, e.GetOverlappingPairCache().Count())
	pair := e.GetOverlappingPairCache().Pairs()[0]
	ids := map[proxy.ID]bool{pair.P0.ID: true, pair.P1.ID: true}
	require.True(s.T(), ids[id0] && ids[id1])
}

func (s *EngineSuite) TestDisjointBoxesProduceNoPair() {
	e := s.newEngine()
	_, err := e.CreateProxy(vecmath.Vec3{X: -10, Y: -10, Z: -10}, vecmath.Vec3{X: -8, Y: -8, Z: -8}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = e.CreateProxy(vecmath.Vec3{X: 8, Y: 8, Z: 8}, vecmath.Vec3{X: 10, Y: 10, Z: 10}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	require.Equal(s.T(), 0, e.GetOverlappingPairCache().Count())
}

func (s *EngineSuite) TestSetAABBExpandCreatesPairThenShrinkRemoves() {
	e := s.newEngine()
	a, err := e.CreateProxy(vecmath.Vec3{X: -10, Y: -10, Z: -10}, vecmath.Vec3{X: -8, Y: -8, Z: -8}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = e.CreateProxy(vecmath.Vec3{X: 8, Y: 8, Z: 8}, vecmath.Vec3{X: 10, Y: 10, Z: 10}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	require.Equal(s.T(), 0, e.GetOverlappingPairCache().Count())

	// Grow "a" until it reaches "b".
	require.NoError(s.T(), e.SetAABB(a, vecmath.Vec3{X: 6, Y: 6, Z: 6}, vecmath.Vec3{X: 9, Y: 9, Z: 9}, s.dispatcher))
	require.Equal(s.T(), 1, e.GetOverlappingPairCache().Count())

	// Shrink it away again.
	require.NoError(s.T(), e.SetAABB(a, vecmath.Vec3{X: -10, Y: -10, Z: -10}, vecmath.Vec3{X: -8, Y: -8, Z: -8}, s.dispatcher))
	require.Equal(s.T(), 0, e.GetOverlappingPairCache().Count())
}

func (s *EngineSuite) TestDestroyProxyStripsItsPairs() {
	e := s.newEngine()
	a, err := e.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = e.CreateProxy(vecmath.Vec3{X: 1, Y: 1, Z: 1}, vecmath.Vec3{X: 3, Y: 3, Z: 3}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	require.Equal(s.T(), 1, e.GetOverlappingPairCache().Count())

	require.NoError(s.T(), e.DestroyProxy(a, s.dispatcher))
	require.Equal(s.T(), 0, e.GetOverlappingPairCache().Count())
}

func (s *EngineSuite) TestCapacityExceeded() {
	e := s.newEngine()
	for i := 0; i < 16; i++ {
		_, err := e.CreateProxy(vecmath.Vec3{X: float64(i) * 4, Y: 0, Z: 0}, vecmath.Vec3{X: float64(i)*4 + 1, Y: 1, Z: 1}, nil, proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
		s.Require().NoError(err)
	}
	_, err := e.CreateProxy(vecmath.Vec3{X: 50, Y: 0, Z: 0}, vecmath.Vec3{X: 51, Y: 1, Z: 1}, nil, proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	require.ErrorIs(s.T(), err, sap.ErrCapacityExceeded)
}

func (s *EngineSuite) TestTouchingBoxesDoNotOverlap() {
	e := s.newEngine()
	_, err := e.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = e.CreateProxy(vecmath.Vec3{X: 1, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 1, Z: 1}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	require.Equal(s.T(), 0, e.GetOverlappingPairCache().Count())
}

func (s *EngineSuite) TestRayTestFallbackWithoutAccelerator() {
	e := s.newEngine(sap.WithRayAccelerator(false))
	_, err := e.CreateProxy(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, "hit", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	var hits []any
	e.RayTest(vecmath.Vec3{X: -5, Y: 0, Z: 0}, vecmath.Vec3{X: 5, Y: 0, Z: 0}, func(p *proxy.Proxy) bool {
		hits = append(hits, p.UserData)
		return false
	})
	require.Equal(s.T(), []any{"hit"}, hits)
}

func (s *EngineSuite) TestResetPoolRejectsWhileLive() {
	e := s.newEngine()
	_, err := e.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, nil, proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	require.ErrorIs(s.T(), e.ResetPool(s.dispatcher), sap.ErrPoolNotEmpty)
}
