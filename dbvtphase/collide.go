package dbvtphase

import (
	"go.uber.org/zap"

	"github.com/suprax-engine/broadphase/dbvt"
	"github.com/suprax-engine/broadphase/paircache"
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// budget returns 1 + leaves*percent/100, the fixed "at least one, scaled by
// percent" incremental-work shape every per-frame budget in this package
// uses, matching DbvtBroadPhase.cpp's inline `1 + (leaves * pct) / 100`.
func budget(leaves, percent int) int {
	return 1 + leaves*percent/100
}

// CalculateOverlappingPairs rebalances both sets incrementally, advances
// the stage ring (migrating settled proxies into the fixed set), runs the
// deferred tree-tree collide pass if configured, sweeps a rotating cleanup
// window over the pair cache, and finally flushes any deferred-removal
// compaction. Grounded on DbvtBroadPhase.cpp's CalculateOverlappingPairs
// (Collide + PerformDeferredRemoval).
func (p *Phase) CalculateOverlappingPairs(dispatcher proxy.Dispatcher) {
	p.collide(dispatcher)
	p.performDeferredRemoval(dispatcher)
}

func (p *Phase) collide(dispatcher proxy.Dispatcher) {
	p.sets[dynamicSet].OptimizeIncremental(budget(p.sets[dynamicSet].Len(), p.dupdates))
	if p.fixedLeft > 0 {
		consumed := budget(p.sets[fixedSet].Len(), p.fupdates)
		p.sets[fixedSet].OptimizeIncremental(consumed)
		p.fixedLeft -= consumed
		if p.fixedLeft < 0 {
			p.fixedLeft = 0
		}
	}

	p.advanceStageRing()

	// collide_tree_tree(dynamic_root, dynamic_root) then
	// collide_tree_tree(dynamic_root, fixed_root), per spec.md §4.6 item 3.
	// Both calls are gated on deferredCollide: when collide is not deferred,
	// CreateProxy/SetAABB have already discovered every pair incrementally,
	// so this pass would only rediscover them.
	if p.deferredCollide {
		dynRoot := p.sets[dynamicSet].Root()
		dbvt.CollideTT(p.sets[dynamicSet], p.sets[dynamicSet], dynRoot, dynRoot, p.stack, func(a, b any) bool {
			p.addPair(a.(*dbvtProxy).Proxy, b.(*dbvtProxy).Proxy, dispatcher)
			return false
		})
		dbvt.CollideTT(p.sets[dynamicSet], p.sets[fixedSet], dynRoot, p.sets[fixedSet].Root(), p.stack, func(a, b any) bool {
			p.addPair(a.(*dbvtProxy).Proxy, b.(*dbvtProxy).Proxy, dispatcher)
			return false
		})
	}

	if p.needCleanUp {
		p.cleanup(dispatcher)
	}

	p.newPairs = 1
	p.needCleanUp = false
	if p.updatesCall > 0 {
		p.updatesRatio = float64(p.updatesDone) / float64(p.updatesCall)
	} else {
		p.updatesRatio = 0
	}
	p.updatesDone /= 2
	p.updatesCall /= 2
}

// advanceStageRing moves the ring forward one slot and migrates every
// proxy still threaded into the now-current stage's list — proxies that
// have not moved for a full ring cycle — from the dynamic set into the
// fixed set. Grounded on DbvtBroadPhase.cpp's Collide; the source advances
// the ring with `(StageCurrent+1) & CountOfStage`, a bitwise mask that only
// behaves as a modulo ring when stageCount+1 is a power of two. This port
// uses an explicit modulo so any configured WithStageCount value produces a
// correct ring, matching spec.md §4.6's literal "advances modulo N".
func (p *Phase) advanceStageRing() {
	p.stageCurrent = (p.stageCurrent + 1) % p.stageCount
	current := p.stageRoots[p.stageCurrent]
	if current == nil {
		return
	}

	for current != nil {
		next := current.links[1]
		p.listRemove(current, current.stage)
		p.listAppend(current, p.stageCount)

		p.sets[dynamicSet].Remove(current.leaf)
		current.leaf = p.sets[fixedSet].Insert(current.AABB, current)
		current.stage = p.stageCount

		current = next
	}

	p.fixedLeft = p.sets[fixedSet].Len()
	p.needCleanUp = true
}

// cleanup walks a rotating window of the pair cache (sized to the larger of
// newPairs and cupdates percent of the array) re-testing each pair's two
// leaf volumes and dropping it via the dispatcher if they no longer
// overlap. Grounded on DbvtBroadPhase.cpp's Collide cleanup pass.
func (p *Phase) cleanup(dispatcher proxy.Dispatcher) {
	pairs := p.cache.Pairs()
	n := len(pairs)
	if n == 0 {
		p.cleanUpID = 0
		return
	}

	window := p.newPairs
	if alt := n * p.cupdates / 100; alt > window {
		window = alt
	}
	if window > n {
		window = n
	}

	for i := 0; i < window; i++ {
		pair := pairs[(p.cleanUpID+i)%n]
		dpa, oka := p.proxies[pair.P0.ID]
		dpb, okb := p.proxies[pair.P1.ID]
		if !oka || !okb {
			continue
		}
		if !p.leafVolume(dpa).Intersects(p.leafVolume(dpb)) {
			p.cache.Remove(pair.P0, pair.P1, dispatcher)
		}
	}
	p.cleanUpID = (p.cleanUpID + window) % n

	if p.logger != nil {
		p.logger.Debug("dbvtphase: cleanup pass", zap.Int("window", window), zap.Int("pairs", n))
	}
}

// performDeferredRemoval flushes a deferred-removal pair cache (e.g.
// paircache.NewSorted()) by re-testing every tracked pair's leaf volumes,
// reusing the cache's own ProcessAll pass to drop every pair whose leaves no
// longer overlap. A no-op for the
// default Hashed cache, which has no deferred removal. Grounded on
// DbvtBroadPhase.cpp's PerformDeferredRemoval.
func (p *Phase) performDeferredRemoval(dispatcher proxy.Dispatcher) {
	if !p.cache.HasDeferredRemoval() {
		return
	}
	p.cache.ProcessAll(dispatcher, p.deterministic, func(pair *paircache.Pair) bool {
		dpa, oka := p.proxies[pair.P0.ID]
		dpb, okb := p.proxies[pair.P1.ID]
		if !oka || !okb {
			return true
		}
		return !p.leafVolume(dpa).Intersects(p.leafVolume(dpb))
	})
}

// leafVolume returns the tree-stored (possibly margin/prediction-fattened)
// volume backing dp's leaf, in whichever set currently holds it.
func (p *Phase) leafVolume(dp *dbvtProxy) vecmath.AABB {
	if dp.stage == p.stageCount {
		return p.sets[fixedSet].Volume(dp.leaf)
	}
	return p.sets[dynamicSet].Volume(dp.leaf)
}
