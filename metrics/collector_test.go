package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/suprax-engine/broadphase"
	"github.com/suprax-engine/broadphase/metrics"
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

// gaugeValue scans a Collector's Collect output for the gauge whose
// fully-qualified name appears in its Desc string.
func gaugeValue(t *testing.T, c prometheus.Collector, name string) (float64, bool) {
	t.Helper()
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)
	for m := range ch {
		if !strings.Contains(m.Desc().String(), name) {
			continue
		}
		var d dto.Metric
		require.NoError(t, m.Write(&d))
		if d.Gauge == nil {
			continue
		}
		return d.Gauge.GetValue(), true
	}
	return 0, false
}

func TestCollectorReportsProxyAndPairCounts(t *testing.T) {
	var dispatcher fakeDispatcher
	bp := broadphase.NewDBVT()
	_, err := bp.CreateProxy(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 2, Y: 2, Z: 2}, "a", proxy.DefaultGroup, proxy.DefaultMask, dispatcher)
	require.NoError(t, err)
	_, err = bp.CreateProxy(vecmath.Vec3{X: 1, Y: 1, Z: 1}, vecmath.Vec3{X: 3, Y: 3, Z: 3}, "b", proxy.DefaultGroup, proxy.DefaultMask, dispatcher)
	require.NoError(t, err)

	c := metrics.NewCollector("world", bp)

	proxyCount, ok := gaugeValue(t, c, "broadphase_proxy_count")
	require.True(t, ok)
	require.Equal(t, 2.0, proxyCount)

	pairCount, ok := gaugeValue(t, c, "broadphase_pair_count")
	require.True(t, ok)
	require.Equal(t, 1.0, pairCount)

	dynLeaves, ok := gaugeValue(t, c, "broadphase_dbvt_dynamic_leaves")
	require.True(t, ok)
	require.Equal(t, 2.0, dynLeaves)
}

func TestCollectorOmitsDBVTGaugesForSAP(t *testing.T) {
	bp, err := broadphase.NewSAP(vecmath.Vec3{X: -10, Y: -10, Z: -10}, vecmath.Vec3{X: 10, Y: 10, Z: 10}, 8)
	require.NoError(t, err)

	c := metrics.NewCollector("sap-world", bp)
	_, ok := gaugeValue(t, c, "broadphase_dbvt_dynamic_leaves")
	require.False(t, ok)
}
