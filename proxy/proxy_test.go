package proxy_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/suprax-engine/broadphase/proxy"
)

type ProxySuite struct {
	suite.Suite
}

func TestProxySuite(t *testing.T) {
	suite.Run(t, new(ProxySuite))
}

func (s *ProxySuite) TestAllocatorIsMonotonic() {
	var a proxy.Allocator
	first := a.Next()
	second := a.Next()
	require.Less(s.T(), first, second)
}

func (s *ProxySuite) TestNeedsCollisionRequiresBothDirections() {
	a := &proxy.Proxy{Group: 0b01, Mask: 0b10}
	b := &proxy.Proxy{Group: 0b10, Mask: 0b01}
	require.True(s.T(), proxy.NeedsCollision(a, b))

	c := &proxy.Proxy{Group: 0b01, Mask: 0b01}
	require.False(s.T(), proxy.NeedsCollision(a, c))
}

func (s *ProxySuite) TestDefaultFilterCollidesWithEverything() {
	a := &proxy.Proxy{Group: proxy.DefaultGroup, Mask: proxy.DefaultMask}
	b := &proxy.Proxy{Group: proxy.DefaultGroup, Mask: proxy.DefaultMask}
	require.True(s.T(), proxy.NeedsCollision(a, b))
}
