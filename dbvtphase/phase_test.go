package dbvtphase_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/suprax-engine/broadphase/dbvtphase"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

type fakeDispatcher struct{}

func (fakeDispatcher) NeedsCollision(a, b *proxy.Proxy) bool { return proxy.NeedsCollision(a, b) }
func (fakeDispatcher) AllocateAlgorithm(a, b *proxy.Proxy) any { return nil }
func (fakeDispatcher) FreeAlgorithm(a, b *proxy.Proxy, x any) {}
func (fakeDispatcher) NewManifold(a, b *proxy.Proxy) any { return nil }
func (fakeDispatcher) ReleaseManifold(m any) {}
func (fakeDispatcher) ClearManifold(m any) {}

var _ proxy.Dispatcher = fakeDispatcher{}

type PhaseSuite struct {
	suite.Suite
	dispatcher fakeDispatcher
}

func TestPhaseSuite(t *testing.T) {
	suite.Run(t, new(PhaseSuite))
}

func (s *PhaseSuite) TestCreateOverlapPair() {
	p := dbvtphase.New()
	id0, err := p.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	id1, err := p.CreateProxy(vecmath.Vec3{X: 1, Y: 1, Z: 1}, vecmath.Vec3{X: 3, Y: 3, Z: 3}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	require.Equal(s.T(), 1, p.GetOverlappingPairCache().Count())
	pair := p.GetOverlappingPairCache().Pairs()[0]
	ids := map[proxy.ID]bool{pair.P0.ID: true, pair.P1.ID: true}
	require.True(s.T(), ids[id0] && ids[id1])
}

func (s *PhaseSuite) TestDisjointBoxesProduceNoPair() {
	p := dbvtphase.New()
	_, err := p.CreateProxy(vecmath.Vec3{X: -10, Y: -10, Z: -10}, vecmath.Vec3{X: -8, Y: -8, Z: -8}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = p.CreateProxy(vecmath.Vec3{X: 8, Y: 8, Z: 8}, vecmath.Vec3{X: 10, Y: 10, Z: 10}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	require.Equal(s.T(), 0, p.GetOverlappingPairCache().Count())
}

func (s *PhaseSuite) TestDestroyProxyStripsItsPairs() {
	p := dbvtphase.New()
	a, err := p.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = p.CreateProxy(vecmath.Vec3{X: 1, Y: 1, Z: 1}, vecmath.Vec3{X: 3, Y: 3, Z: 3}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	require.Equal(s.T(), 1, p.GetOverlappingPairCache().Count())

	require.NoError(s.T(), p.DestroyProxy(a, s.dispatcher))
	require.Equal(s.T(), 0, p.GetOverlappingPairCache().Count())
}

func (s *PhaseSuite) TestSetAABBMoveAwayThenCleanupRemovesPair() {
	p := dbvtphase.New()
	a, err := p.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	_, err = p.CreateProxy(vecmath.Vec3{X: 1, Y: 1, Z: 1}, vecmath.Vec3{X: 3, Y: 3, Z: 3}, "b", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	require.Equal(s.T(), 1, p.GetOverlappingPairCache().Count())

	require.NoError(s.T(), p.SetAABB(a, vecmath.Vec3{X: -50, Y: -50, Z: -50}, vecmath.Vec3{X: -48, Y: -48, Z: -48}, s.dispatcher))
	p.CalculateOverlappingPairs(s.dispatcher)
	require.Equal(s.T(), 0, p.GetOverlappingPairCache().Count())
}

// TestStagePromotionToFixedSet mirrors spec.md §8 scenario 3: insert a batch
// of proxies, never call SetAABB, and after stageCount+1 calculate calls
// every one of them has settled into the fixed set.
func (s *PhaseSuite) TestStagePromotionToFixedSet() {
	const stageCount = 2
	const proxyCount = 100
	p := dbvtphase.New(dbvtphase.WithStageCount(stageCount))

	for i := 0; i < proxyCount; i++ {
		x := float64(i)
		_, err := p.CreateProxy(vecmath.Vec3{X: x, Y: 0, Z: 0}, vecmath.Vec3{X: x + 1, Y: 1, Z: 1}, i, proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
		s.Require().NoError(err)
	}
	require.Equal(s.T(), proxyCount, p.Stats().DynamicLeaves)
	require.Equal(s.T(), 0, p.Stats().FixedLeaves)

	for i := 0; i < stageCount+1; i++ {
		p.CalculateOverlappingPairs(s.dispatcher)
	}

	require.Equal(s.T(), 0, p.Stats().DynamicLeaves)
	require.Equal(s.T(), proxyCount, p.Stats().FixedLeaves)
}

func (s *PhaseSuite) TestSetAABBMovesFixedProxyBackToDynamic() {
	p := dbvtphase.New(dbvtphase.WithStageCount(2))
	a, err := p.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	p.CalculateOverlappingPairs(s.dispatcher)
	p.CalculateOverlappingPairs(s.dispatcher)
	require.Equal(s.T(), 1, p.Stats().FixedLeaves)

	require.NoError(s.T(), p.SetAABB(a, vecmath.Vec3{X: 5, Y: 5, Z: 5}, vecmath.Vec3{X: 6, Y: 6, Z: 6}, s.dispatcher))
	require.Equal(s.T(), 1, p.Stats().DynamicLeaves)
	require.Equal(s.T(), 0, p.Stats().FixedLeaves)
}

func (s *PhaseSuite) TestResetPoolRejectsWhileLive() {
	p := dbvtphase.New()
	_, err := p.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, nil, proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)
	require.ErrorIs(s.T(), p.ResetPool(s.dispatcher), dbvtphase.ErrPoolNotEmpty)
}

func (s *PhaseSuite) TestRayTestHitsOverlappingLeaf() {
	p := dbvtphase.New()
	_, err := p.CreateProxy(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, "hit", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	var hits []any
	p.RayTest(vecmath.Vec3{X: -5, Y: 0, Z: 0}, vecmath.Vec3{X: 5, Y: 0, Z: 0}, func(pr *proxy.Proxy) bool {
		hits = append(hits, pr.UserData)
		return false
	})
	require.Equal(s.T(), []any{"hit"}, hits)
}

func (s *PhaseSuite) TestAABBTestFindsProxy() {
	p := dbvtphase.New()
	_, err := p.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1}, "a", proxy.DefaultGroup, proxy.DefaultMask, s.dispatcher)
	s.Require().NoError(err)

	var hits int
	p.AABBTest(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, func(pr *proxy.Proxy) bool {
		hits++
		return false
	})
	require.Equal(s.T(), 1, hits)
}

func (s *PhaseSuite) TestUnknownProxyErrors() {
	p := dbvtphase.New()
	_, _, err := p.GetAABB(proxy.ID(999))
	require.ErrorIs(s.T(), err, dbvtphase.ErrUnknownProxy)
	require.ErrorIs(s.T(), p.SetAABB(proxy.ID(999), vecmath.Vec3{}, vecmath.Vec3{}, s.dispatcher), dbvtphase.ErrUnknownProxy)
	require.ErrorIs(s.T(), p.DestroyProxy(proxy.ID(999), s.dispatcher), dbvtphase.ErrUnknownProxy)
}
