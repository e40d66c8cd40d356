package paircache_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/proxy"
)

type HashedSuite struct {
	suite.Suite
}

func TestHashedSuite(t *testing.T) {
	suite.Run(t, new(HashedSuite))
}

func p(id int32) *proxy.Proxy { return &proxy.Proxy{ID: proxy.ID(id)} }

func (s *HashedSuite) TestAddCanonicalizesAndDedupes() {
	cache := paircache.NewHashed()
	a, b := p(5), p(2)
	pair1 := cache.Add(a, b)
	pair2 := cache.Add(b, a)
	require.Same(s.T(), pair1, pair2)
	require.Equal(s.T(), proxy.ID(2), pair1.P0.ID)
	require.Equal(s.T(), proxy.ID(5), pair1.P1.ID)
	require.Equal(s.T(), 1, cache.Count())
}

func (s *HashedSuite) TestRemoveUnknownPairIsFalse() {
	cache := paircache.NewHashed()
	require.False(s.T(), cache.Remove(p(1), p(2), nil))
}

func (s *HashedSuite) TestDeterministicProcessAllOrder() {
	cache := paircache.NewHashed()
	// Insertion order deliberately scrambled relative to (id0,id1) order.
	cache.Add(p(1), p(3))
	cache.Add(p(2), p(5))
	cache.Add(p(0), p(4))

	var order [][2]int32
	cache.ProcessAll(nil, true, func(pair *paircache.Pair) bool {
		order = append(order, [2]int32{int32(pair.P0.ID), int32(pair.P1.ID)})
		return false
	})
	require.Equal(s.T(), [][2]int32{{0, 4}, {1, 3}, {2, 5}}, order)
}

// TestSwapAndPopPreservesBucketChain adds 20 pairs (the table grows to 32
// buckets) and removes the middle one, added[10]. Swap-and-pop then moves
// the last pair, which shares its bucket chain with another pair, into the
// freed slot, so its chain must be re-linked to the new index. Every
// surviving pair must appear exactly once in Pairs() and still be found
// through its bucket chain by Find, and the victim must be gone — the
// scenario spec.md §8 calls "the most error-prone invariant in the whole
// design".
func (s *HashedSuite) TestSwapAndPopPreservesBucketChain() {
	cache := paircache.NewHashed()
	var proxies []*proxy.Proxy
	for i := int32(0); i < 40; i++ {
		proxies = append(proxies, p(i))
	}
	var added []*paircache.Pair
	for i := 0; i < len(proxies); i += 2 {
		added = append(added, cache.Add(proxies[i], proxies[i+1]))
	}
	require.Len(s.T(), added, 20)

	victim := added[len(added)/2]
	require.True(s.T(), cache.Remove(victim.P0, victim.P1, nil))
	require.Equal(s.T(), 19, cache.Count())

	seen := map[[2]int32]int{}
	for _, pair := range cache.Pairs() {
		key := [2]int32{int32(pair.P0.ID), int32(pair.P1.ID)}
		seen[key]++
	}
	require.Len(s.T(), seen, 19)
	for _, pair := range added {
		key := [2]int32{int32(pair.P0.ID), int32(pair.P1.ID)}
		if pair == victim {
			require.Equal(s.T(), 0, seen[key])
			require.Nil(s.T(), cache.Find(pair.P0, pair.P1))
			continue
		}
		require.Equal(s.T(), 1, seen[key], "pair %v must remain reachable exactly once", key)
		require.Same(s.T(), pair, cache.Find(pair.P0, pair.P1), "pair %v must be found through its bucket chain", key)
	}
}

func (s *HashedSuite) TestRemoveContainingProxy() {
	cache := paircache.NewHashed()
	shared := p(10)
	cache.Add(shared, p(1))
	cache.Add(shared, p(2))
	cache.Add(p(3), p(4))

	cache.RemoveContainingProxy(shared, nil)
	require.Equal(s.T(), 1, cache.Count())
	remaining := cache.Pairs()[0]
	require.NotEqual(s.T(), shared, remaining.P0)
	require.NotEqual(s.T(), shared, remaining.P1)
}

func (s *HashedSuite) TestFilterRejectsPair() {
	cache := paircache.NewHashed()
	cache.SetFilter(func(a, b *proxy.Proxy) bool { return false })
	require.Nil(s.T(), cache.Add(p(1), p(2)))
	require.Equal(s.T(), 0, cache.Count())
}
