package dbvtphase

import (
	"go.uber.org/zap"

	"github.com/suprax-engine/broadphase/dbvt"
	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// dbvtMargin is the fixed padding added to every reinserted leaf volume on
// top of velocity-predicted expansion, matching the source's g_DbvtMargin.
const dbvtMargin = 0.05

// Phase is a DBVT-backed broad-phase over two bounding-volume trees: a
// dynamic set for proxies still moving and a fixed set for proxies that
// have settled. It is not safe for concurrent mutation; see spec.md §5's
// concurrency model.
type Phase struct {
	sets       [2]*dbvt.Tree
	stageRoots []*dbvtProxy // len stageCount+1; index stageCount is the fixed list
	proxies    map[proxy.ID]*dbvtProxy
	alloc      proxy.Allocator
	cache      paircache.Cache

	stageCount      int
	stageCurrent    int
	prediction      float64
	dupdates        int
	fupdates        int
	cupdates        int
	newPairs        int
	fixedLeft       int
	updatesCall     uint64
	updatesDone     uint64
	updatesRatio    float64
	cleanUpID       int
	deferredCollide bool
	needCleanUp     bool
	deterministic   bool

	logger *zap.Logger

	stack *dbvt.Stack // shared persistent stack for tree-tree collide passes
}

// New constructs an empty Phase.
func New(opts ...Option) *Phase {
	cfg := config{stageCount: 2, dupdates: 0, fupdates: 1, cupdates: 10}
	for _, o := range opts {
		o(&cfg)
	}

	cache := cfg.cache
	if cache == nil {
		cache = paircache.NewHashed()
	}

	p := &Phase{
		sets:            [2]*dbvt.Tree{dbvt.New(), dbvt.New()},
		stageRoots:      make([]*dbvtProxy, cfg.stageCount+1),
		proxies:         make(map[proxy.ID]*dbvtProxy),
		cache:           cache,
		stageCount:      cfg.stageCount,
		prediction:      cfg.prediction,
		dupdates:        cfg.dupdates,
		fupdates:        cfg.fupdates,
		cupdates:        cfg.cupdates,
		newPairs:        1,
		deferredCollide: cfg.deferredCollide,
		needCleanUp:     true,
		deterministic:   cfg.deterministic,
		logger:          cfg.logger,
		stack:           dbvt.NewStack(),
	}
	return p
}

// CreateProxy inserts the leaf into the dynamic set, stamps it with the
// current ring stage, and links it into that stage's list. Unless deferred
// collide is set, it immediately collides the new leaf against both sets.
// Grounded on DbvtBroadPhase.cpp's CreateProxy.
func (p *Phase) CreateProxy(min, max vecmath.Vec3, userData any, group proxy.Group, mask proxy.Mask, dispatcher proxy.Dispatcher) (proxy.ID, error) {
	aabb := vecmath.AABB{Min: min, Max: max}
	id := p.alloc.Next()

	dp := &dbvtProxy{
		Proxy: &proxy.Proxy{ID: id, AABB: aabb, Group: group, Mask: mask, UserData: userData},
		stage: p.stageCurrent,
	}
	dp.leaf = p.sets[dynamicSet].Insert(aabb, dp)
	p.listAppend(dp, p.stageCurrent)
	p.proxies[id] = dp

	if !p.deferredCollide {
		p.collideLeafAgainstBothSets(dp, dispatcher)
	}
	return id, nil
}

// DestroyProxy removes the proxy's leaf from whichever set holds it,
// unlinks it from its stage list, strips every pair mentioning it via the
// dispatcher, and forgets it. Grounded on DbvtBroadPhase.cpp's DestroyProxy.
func (p *Phase) DestroyProxy(id proxy.ID, dispatcher proxy.Dispatcher) error {
	dp, ok := p.proxies[id]
	if !ok {
		return ErrUnknownProxy
	}

	if dp.stage == p.stageCount {
		p.sets[fixedSet].Remove(dp.leaf)
	} else {
		p.sets[dynamicSet].Remove(dp.leaf)
	}
	p.listRemove(dp, dp.stage)
	p.cache.RemoveContainingProxy(dp.Proxy, dispatcher)
	delete(p.proxies, id)
	p.needCleanUp = true
	return nil
}

// SetAABB moves a fixed-set proxy back to the dynamic set, or otherwise
// fattens the new AABB by margin and velocity-predicted expansion and
// reinserts only if the old leaf volume no longer contains it. Re-stamps
// the proxy with the current stage either way. Grounded on
// DbvtBroadPhase.cpp's SetAABB.
func (p *Phase) SetAABB(id proxy.ID, newMin, newMax vecmath.Vec3, dispatcher proxy.Dispatcher) error {
	dp, ok := p.proxies[id]
	if !ok {
		return ErrUnknownProxy
	}

	aabb := vecmath.AABB{Min: newMin, Max: newMax}
	docollide := false

	if dp.stage == p.stageCount {
		p.sets[fixedSet].Remove(dp.leaf)
		dp.leaf = p.sets[dynamicSet].Insert(aabb, dp)
		docollide = true
	} else {
		p.updatesCall++
		oldAABB := dp.AABB
		delta := newMin.Sub(oldAABB.Min)
		velocity := oldAABB.Max.Sub(oldAABB.Min).Scale(0.5 * p.prediction)
		if delta.X < 0 {
			velocity.X = -velocity.X
		}
		if delta.Y < 0 {
			velocity.Y = -velocity.Y
		}
		if delta.Z < 0 {
			velocity.Z = -velocity.Z
		}
		margin := vecmath.Vec3{X: dbvtMargin, Y: dbvtMargin, Z: dbvtMargin}

		newLeaf, reinserted := p.sets[dynamicSet].UpdateWithVelocity(dp.leaf, aabb, velocity, margin)
		dp.leaf = newLeaf
		if reinserted {
			p.updatesDone++
			docollide = true
		}
	}

	p.listRemove(dp, dp.stage)
	dp.AABB = aabb
	dp.stage = p.stageCurrent
	p.listAppend(dp, p.stageCurrent)

	if docollide {
		p.needCleanUp = true
		if !p.deferredCollide {
			p.collideLeafAgainstBothSets(dp, dispatcher)
		}
	}
	return nil
}

// SetAABBForceUpdate is identical to SetAABB except it always reinserts the
// dynamic-set leaf (via Tree.Update, not UpdateWithVelocity), bypassing the
// "shrinking AABB skips reinsertion" optimization — useful when a host
// needs to guarantee a refit regardless of containment. Grounded on
// DbvtBroadPhase.cpp's SetAABBForceUpdate.
func (p *Phase) SetAABBForceUpdate(id proxy.ID, newMin, newMax vecmath.Vec3, dispatcher proxy.Dispatcher) error {
	dp, ok := p.proxies[id]
	if !ok {
		return ErrUnknownProxy
	}

	aabb := vecmath.AABB{Min: newMin, Max: newMax}
	if dp.stage == p.stageCount {
		p.sets[fixedSet].Remove(dp.leaf)
		dp.leaf = p.sets[dynamicSet].Insert(aabb, dp)
	} else {
		p.updatesCall++
		dp.leaf = p.sets[dynamicSet].Update(dp.leaf, aabb)
		p.updatesDone++
	}

	p.listRemove(dp, dp.stage)
	dp.AABB = aabb
	dp.stage = p.stageCurrent
	p.listAppend(dp, p.stageCurrent)

	p.needCleanUp = true
	if !p.deferredCollide {
		p.collideLeafAgainstBothSets(dp, dispatcher)
	}
	return nil
}

// GetAABB returns the proxy's current world AABB.
func (p *Phase) GetAABB(id proxy.ID) (vecmath.Vec3, vecmath.Vec3, error) {
	dp, ok := p.proxies[id]
	if !ok {
		return vecmath.Vec3{}, vecmath.Vec3{}, ErrUnknownProxy
	}
	return dp.AABB.Min, dp.AABB.Max, nil
}

// WorldBounds returns the union of both sets' root volumes, or a
// zero-extent box at the origin if both sets are empty. Grounded on
// DbvtBroadPhase.cpp's GetBroadPhaseAABB.
func (p *Phase) WorldBounds() (vecmath.Vec3, vecmath.Vec3) {
	dynRoot, fixRoot := p.sets[dynamicSet].Root(), p.sets[fixedSet].Root()
	switch {
	case dynRoot != dbvt.NilNode && fixRoot != dbvt.NilNode:
		u := p.sets[dynamicSet].Volume(dynRoot).Union(p.sets[fixedSet].Volume(fixRoot))
		return u.Min, u.Max
	case dynRoot != dbvt.NilNode:
		v := p.sets[dynamicSet].Volume(dynRoot)
		return v.Min, v.Max
	case fixRoot != dbvt.NilNode:
		v := p.sets[fixedSet].Volume(fixRoot)
		return v.Min, v.Max
	default:
		return vecmath.Vec3{}, vecmath.Vec3{}
	}
}

// GetOverlappingPairCache returns the pair cache backing this Phase.
func (p *Phase) GetOverlappingPairCache() paircache.Cache { return p.cache }

// Count returns the number of currently live proxies.
func (p *Phase) Count() int { return len(p.proxies) }

// ResetPool clears the Phase's two trees and every counter back to its
// construction-time default. Only legal when no proxies are live, matching
// DbvtBroadPhase.cpp's ResetPool.
func (p *Phase) ResetPool(dispatcher proxy.Dispatcher) error {
	if len(p.proxies) != 0 {
		return ErrPoolNotEmpty
	}
	p.sets[dynamicSet] = dbvt.New()
	p.sets[fixedSet] = dbvt.New()
	p.deferredCollide = false
	p.needCleanUp = true
	p.stageCurrent = 0
	p.fixedLeft = 0
	p.newPairs = 1
	p.updatesCall, p.updatesDone, p.updatesRatio = 0, 0, 0
	p.cleanUpID = 0
	for i := range p.stageRoots {
		p.stageRoots[i] = nil
	}
	return nil
}

// Stats is a point-in-time snapshot of the Phase's internal bookkeeping,
// exposed for diagnostics (and the optional broadphase/metrics collector)
// without coupling either to a specific logging library. Grounded on
// DbvtBroadPhase.cpp's PrintStats, which the source leaves unimplemented.
type Stats struct {
	DynamicLeaves int
	FixedLeaves   int
	PairCount     int
	UpdatesRatio  float64
}

// Stats returns a snapshot of the Phase's current counters.
func (p *Phase) Stats() Stats {
	return Stats{
		DynamicLeaves: p.sets[dynamicSet].Len(),
		FixedLeaves:   p.sets[fixedSet].Len(),
		PairCount:     p.cache.Count(),
		UpdatesRatio:  p.updatesRatio,
	}
}

// collideLeafAgainstBothSets reports every leaf in either set whose volume
// intersects dp's current leaf volume, adding a pair for each (after the
// dispatcher's own filter) via the shared persistent stack. By the time
// this runs, dp's leaf always lives in the dynamic set: CreateProxy inserts
// there directly, and both SetAABB paths reinsert into it before re-stamping
// the proxy's stage. Grounded on DbvtBroadPhase.cpp's DbvtTreeCollider used
// from CreateProxy/SetAABB.
func (p *Phase) collideLeafAgainstBothSets(dp *dbvtProxy, dispatcher proxy.Dispatcher) {
	volume := p.sets[dynamicSet].Volume(dp.leaf)
	p.collideLeaf(dynamicSet, volume, dp, dispatcher)
	p.collideLeaf(fixedSet, volume, dp, dispatcher)
}

func (p *Phase) collideLeaf(set int, volume vecmath.AABB, dp *dbvtProxy, dispatcher proxy.Dispatcher) {
	dbvt.CollideTV(p.sets[set], p.sets[set].Root(), volume, p.stack, func(data any) bool {
		other := data.(*dbvtProxy)
		if other == dp {
			return false
		}
		p.addPair(dp.Proxy, other.Proxy, dispatcher)
		return false
	})
}

func (p *Phase) addPair(a, b *proxy.Proxy, dispatcher proxy.Dispatcher) {
	if dispatcher != nil && !dispatcher.NeedsCollision(a, b) {
		return
	}
	p.cache.Add(a, b)
	p.newPairs++
}
