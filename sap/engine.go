package sap

import (
	"github.com/suprax-engine/broadphase/dbvt"
	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/quantize"
	"github.com/suprax-engine/broadphase/vecmath"
)

// Engine is a Sweep-and-Prune broad-phase over a fixed world AABB and a
// fixed maximum live-proxy count. It is not safe for concurrent mutation;
// see spec.md §5's concurrency model.
type Engine struct {
	quantizer *quantize.Quantizer
	cache     paircache.Cache

	edges   [vecmath.NumAxes][]edge
	handles []Handle // index 0 reserved, never assigned to a real proxy
	free    handleIndex
	count   int

	deterministic bool

	rayAccel *dbvt.Tree
	rayLeaf  []dbvt.NodeIndex // parallel to handles; NilNode until populated
	rayStack *dbvt.Stack
}

// New constructs an Engine over worldMin/worldMax supporting up to
// maxHandles simultaneously live proxies.
func New(worldMin, worldMax vecmath.Vec3, maxHandles int32, opts ...Option) (*Engine, error) {
	cfg := config{width: quantize.Width16, rayAccel: true}
	for _, o := range opts {
		o(&cfg)
	}

	var qopts []quantize.Option
	qopts = append(qopts, quantize.WithWidth(cfg.width))
	if cfg.logger != nil {
		qopts = append(qopts, quantize.WithLogger(cfg.logger))
	}
	q, err := quantize.New(worldMin, worldMax, qopts...)
	if err != nil {
		return nil, err
	}

	cache := cfg.cache
	if cache == nil {
		cache = paircache.NewHashed()
	}

	e := &Engine{
		quantizer:     q,
		cache:         cache,
		deterministic: cfg.deterministic,
		handles:       make([]Handle, maxHandles+1),
	}
	for axis := vecmath.Axis(0); axis < vecmath.NumAxes; axis++ {
		e.edges[axis] = []edge{{position: 0, handle: noHandle}, {position: q.Sentinel(), handle: noHandle}}
	}

	// Build the intrusive freelist over handles[1:], 1-based so index 0
	// stays the permanent sentinel owner.
	for i := int32(1); i <= maxHandles; i++ {
		next := handleIndex(0)
		if i < maxHandles {
			next = handleIndex(i + 1)
		}
		e.handles[i].nextFree = next
	}
	if maxHandles > 0 {
		e.free = handleIndex(1)
	}

	if cfg.rayAccel {
		e.rayAccel = dbvt.New()
		e.rayStack = dbvt.NewStack()
		e.rayLeaf = make([]dbvt.NodeIndex, maxHandles+1)
		for i := range e.rayLeaf {
			e.rayLeaf[i] = dbvt.NilNode
		}
	}

	return e, nil
}

// CreateProxy quantizes the given world AABB, allocates a handle, threads
// its three edge pairs into each axis array just inside the sentinel, and
// bubbles them into sorted position. Only the last axis's sort passes
// report pair changes: an overlap isn't real until all three axes agree,
// so reporting it after axis 0 or 1 alone would be premature. Grounded on
// AxisSweepInternal.cpp's AddHandle.
func (e *Engine) CreateProxy(min, max vecmath.Vec3, userData any, group proxy.Group, mask proxy.Mask, dispatcher proxy.Dispatcher) (proxy.ID, error) {
	if e.free == noHandle {
		return proxy.ID(-1), ErrCapacityExceeded
	}
	hi := e.free
	e.free = e.handles[hi].nextFree

	qmin, qmax := e.quantizer.QuantizeMin(min), e.quantizer.QuantizeMax(max)
	e.handles[hi].Proxy = &proxy.Proxy{
		ID:       proxy.ID(hi),
		AABB:     vecmath.AABB{Min: min, Max: max},
		Group:    group,
		Mask:     mask,
		UserData: userData,
	}

	for axis := vecmath.Axis(0); axis < vecmath.NumAxes; axis++ {
		edges := e.edges[axis]
		sentinel := len(edges) - 1
		old := edges[sentinel]
		edges = append(edges, edge{}, edge{})
		edges[sentinel+2] = old
		edges[sentinel] = edge{position: qmin[axis], handle: hi}
		edges[sentinel+1] = edge{position: qmax[axis], handle: hi}
		e.edges[axis] = edges
		e.handles[hi].minEdge[axis] = int32(sentinel)
		e.handles[hi].maxEdge[axis] = int32(sentinel + 1)
	}
	e.count++

	e.sortMinDown(vecmath.AxisX, e.handles[hi].minEdge[vecmath.AxisX], dispatcher, false)
	e.sortMaxDown(vecmath.AxisX, e.handles[hi].maxEdge[vecmath.AxisX], dispatcher, false)
	e.sortMinDown(vecmath.AxisY, e.handles[hi].minEdge[vecmath.AxisY], dispatcher, false)
	e.sortMaxDown(vecmath.AxisY, e.handles[hi].maxEdge[vecmath.AxisY], dispatcher, false)
	e.sortMinDown(vecmath.AxisZ, e.handles[hi].minEdge[vecmath.AxisZ], dispatcher, true)
	e.sortMaxDown(vecmath.AxisZ, e.handles[hi].maxEdge[vecmath.AxisZ], dispatcher, true)

	if e.rayAccel != nil {
		e.rayLeaf[hi] = e.rayAccel.Insert(e.handles[hi].AABB, e.handles[hi].Proxy)
	}

	return proxy.ID(hi), nil
}

// DestroyProxy strips every surviving pair mentioning proxy via the
// dispatcher, bubbles its edges out to the sentinel boundary on every
// axis, and returns the handle to the freelist. Grounded on
// AxisSweepInternal.cpp's RemoveHandle.
func (e *Engine) DestroyProxy(id proxy.ID, dispatcher proxy.Dispatcher) error {
	hi := handleIndex(id)
	if hi <= 0 || int(hi) >= len(e.handles) || e.handles[hi].Proxy == nil {
		return ErrUnknownProxy
	}

	e.cache.RemoveContainingProxy(e.handles[hi].Proxy, dispatcher)

	for axis := vecmath.Axis(0); axis < vecmath.NumAxes; axis++ {
		edges := e.edges[axis]
		last := len(edges) - 1

		maxIdx := e.handles[hi].maxEdge[axis]
		edges[maxIdx].position = e.quantizer.Sentinel()
		e.sortMaxUp(axis, maxIdx, dispatcher, false)

		minIdx := e.handles[hi].minEdge[axis]
		edges[minIdx].position = e.quantizer.Sentinel()
		e.sortMinUp(axis, minIdx, dispatcher, false)

		// Both bubbles park the removed edges immediately before the real
		// sentinel (indices last-2 and last-1, in either order) since a
		// bubble pass halts the instant it meets an equal-or-lesser
		// position and the sentinel's position is never exceeded by a
		// quantized real edge. Drop both and keep the sentinel as the new
		// tail.
		sentinelEdge := edges[last]
		e.edges[axis] = append(edges[:last-2], sentinelEdge)
	}
	e.count--

	if e.rayAccel != nil && e.rayLeaf[hi] != dbvt.NilNode {
		e.rayAccel.Remove(e.rayLeaf[hi])
		e.rayLeaf[hi] = dbvt.NilNode
	}

	e.handles[hi].Proxy = nil
	e.handles[hi].nextFree = e.free
	e.free = hi
	return nil
}

// SetAABB quantizes newMin/newMax and, per axis, expands (sort-down for a
// shrinking min, sort-up for a growing max — these can only add overlaps)
// or shrinks (the opposite pair — these can only remove overlaps) the
// handle's edges into position. Grounded on AxisSweepInternal.cpp's
// UpdateHandle.
func (e *Engine) SetAABB(id proxy.ID, newMin, newMax vecmath.Vec3, dispatcher proxy.Dispatcher) error {
	hi := handleIndex(id)
	if hi <= 0 || int(hi) >= len(e.handles) || e.handles[hi].Proxy == nil {
		return ErrUnknownProxy
	}

	qmin, qmax := e.quantizer.QuantizeMin(newMin), e.quantizer.QuantizeMax(newMax)
	e.handles[hi].AABB = vecmath.AABB{Min: newMin, Max: newMax}

	for axis := vecmath.Axis(0); axis < vecmath.NumAxes; axis++ {
		eMin, eMax := e.handles[hi].minEdge[axis], e.handles[hi].maxEdge[axis]
		edges := e.edges[axis]

		dmin := int64(qmin[axis]) - int64(edges[eMin].position)
		dmax := int64(qmax[axis]) - int64(edges[eMax].position)
		edges[eMin].position = qmin[axis]
		edges[eMax].position = qmax[axis]

		if dmin < 0 {
			e.sortMinDown(axis, eMin, dispatcher, true)
		}
		if dmax > 0 {
			e.sortMaxUp(axis, eMax, dispatcher, true)
		}
		if dmin > 0 {
			e.sortMinUp(axis, eMin, dispatcher, true)
		}
		if dmax < 0 {
			e.sortMaxDown(axis, eMax, dispatcher, true)
		}
	}

	if e.rayAccel != nil && e.rayLeaf[hi] != dbvt.NilNode {
		e.rayAccel.Update(e.rayLeaf[hi], e.handles[hi].AABB)
	}
	return nil
}

// GetAABB returns the proxy's current world AABB.
func (e *Engine) GetAABB(id proxy.ID) (vecmath.Vec3, vecmath.Vec3, error) {
	hi := handleIndex(id)
	if hi <= 0 || int(hi) >= len(e.handles) || e.handles[hi].Proxy == nil {
		return vecmath.Vec3{}, vecmath.Vec3{}, ErrUnknownProxy
	}
	return e.handles[hi].AABB.Min, e.handles[hi].AABB.Max, nil
}

// GetOverlappingPairCache returns the pair cache backing this engine.
func (e *Engine) GetOverlappingPairCache() paircache.Cache { return e.cache }

// WorldBounds returns the world AABB this engine was constructed with.
func (e *Engine) WorldBounds() (vecmath.Vec3, vecmath.Vec3) { return e.quantizer.WorldBounds() }

// ResetPool clears the engine's allocator state for reuse. Only legal when
// no proxies are live.
func (e *Engine) ResetPool(dispatcher proxy.Dispatcher) error {
	if e.count != 0 {
		return ErrPoolNotEmpty
	}
	maxHandles := int32(len(e.handles) - 1)
	for i := int32(1); i <= maxHandles; i++ {
		next := handleIndex(0)
		if i < maxHandles {
			next = handleIndex(i + 1)
		}
		e.handles[i].nextFree = next
	}
	if maxHandles > 0 {
		e.free = handleIndex(1)
	}
	return nil
}

// Count returns the number of currently live proxies.
func (e *Engine) Count() int { return e.count }

func (e *Engine) addPair(a, b handleIndex, dispatcher proxy.Dispatcher) {
	pa, pb := e.handles[a].Proxy, e.handles[b].Proxy
	if dispatcher != nil && !dispatcher.NeedsCollision(pa, pb) {
		return
	}
	e.cache.Add(pa, pb)
}

func (e *Engine) removePair(a, b handleIndex, dispatcher proxy.Dispatcher) {
	e.cache.Remove(e.handles[a].Proxy, e.handles[b].Proxy, dispatcher)
}

// testOverlap2D reports whether handles a and b overlap on the two axes
// other than axis, using each handle's currently recorded edge positions.
func (e *Engine) testOverlap2D(a, b handleIndex, axis vecmath.Axis) bool {
	a0, a1 := otherAxesOf(axis)
	ha, hb := &e.handles[a], &e.handles[b]
	if e.edges[a0][ha.maxEdge[a0]].position < e.edges[a0][hb.minEdge[a0]].position {
		return false
	}
	if e.edges[a0][hb.maxEdge[a0]].position < e.edges[a0][ha.minEdge[a0]].position {
		return false
	}
	if e.edges[a1][ha.maxEdge[a1]].position < e.edges[a1][hb.minEdge[a1]].position {
		return false
	}
	if e.edges[a1][hb.maxEdge[a1]].position < e.edges[a1][ha.minEdge[a1]].position {
		return false
	}
	return true
}

func (e *Engine) setEdgeSlot(h handleIndex, axis vecmath.Axis, isMax bool, idx int32) {
	if isMax {
		e.handles[h].maxEdge[axis] = idx
	} else {
		e.handles[h].minEdge[axis] = idx
	}
}
