package paircache

import "github.com/suprax-engine/broadphase/proxy"

const initialBuckets = 16

// Hashed is the default overlapping-pair cache: a growable pair array plus
// a chained hash table keyed by mixHash(id0, id1). Grounded on
// OverlappingPair.hpp/.cpp's HashedOverlappingPairCache.
type Hashed struct {
	pairs   []*Pair
	buckets []int32 // bucket head -> index into pairs, or -1
	next    []int32 // parallel chain-link array, same length as pairs
	filter  FilterFunc
}

// NewHashed creates an empty hashed pair cache.
func NewHashed() *Hashed {
	h := &Hashed{buckets: make([]int32, initialBuckets)}
	for i := range h.buckets {
		h.buckets[i] = -1
	}
	return h
}

func (h *Hashed) bucketIndex(hash uint32) int {
	return int(hash) & (len(h.buckets) - 1)
}

// Add canonicalizes (a, b) and either returns the existing pair or, if the
// filter (when set) permits it, appends and chains a new one. Growing the
// pair array past the bucket table's capacity triggers a full rehash.
func (h *Hashed) Add(a, b *proxy.Proxy) *Pair {
	p0, p1 := canonicalize(a, b)
	hash := mixHash(uint32(p0.ID), uint32(p1.ID))
	bi := h.bucketIndex(hash)

	for idx := h.buckets[bi]; idx != -1; idx = h.next[idx] {
		if h.pairs[idx].P0 == p0 && h.pairs[idx].P1 == p1 {
			return h.pairs[idx]
		}
	}

	if h.filter != nil && !h.filter(p0, p1) {
		return nil
	}

	pair := &Pair{P0: p0, P1: p1}
	h.pairs = append(h.pairs, pair)
	h.next = append(h.next, h.buckets[bi])
	h.buckets[bi] = int32(len(h.pairs) - 1)

	if len(h.pairs) > len(h.buckets) {
		h.rehash(len(h.buckets) * 2)
	}
	return pair
}

func (h *Hashed) rehash(size int) {
	h.buckets = make([]int32, size)
	for i := range h.buckets {
		h.buckets[i] = -1
	}
	h.next = make([]int32, len(h.pairs))
	for i, p := range h.pairs {
		hash := mixHash(uint32(p.P0.ID), uint32(p.P1.ID))
		bi := h.bucketIndex(hash)
		h.next[i] = h.buckets[bi]
		h.buckets[bi] = int32(i)
	}
}

// Find returns the tracked pair for (a, b), or nil.
func (h *Hashed) Find(a, b *proxy.Proxy) *Pair {
	p0, p1 := canonicalize(a, b)
	hash := mixHash(uint32(p0.ID), uint32(p1.ID))
	for idx := h.buckets[h.bucketIndex(hash)]; idx != -1; idx = h.next[idx] {
		if h.pairs[idx].P0 == p0 && h.pairs[idx].P1 == p1 {
			return h.pairs[idx]
		}
	}
	return nil
}

// Remove finds and removes the pair for (a, b). This is the most
// error-prone operation in the cache: it must (1) unlink the removed slot
// from its own hash chain, then (2) if the removed slot wasn't the last
// array slot, unlink the *last* pair's chain entry and re-link it at its
// new (the removed) index before shrinking the array — otherwise the moved
// pair becomes unreachable from its bucket. Grounded on
// OverlappingPair.cpp's RemoveOverlappingPair.
func (h *Hashed) Remove(a, b *proxy.Proxy, dispatcher proxy.Dispatcher) bool {
	p0, p1 := canonicalize(a, b)
	hash := mixHash(uint32(p0.ID), uint32(p1.ID))
	bi := h.bucketIndex(hash)

	var prev int32 = -1
	idx := h.buckets[bi]
	for idx != -1 {
		if h.pairs[idx].P0 == p0 && h.pairs[idx].P1 == p1 {
			break
		}
		prev = idx
		idx = h.next[idx]
	}
	if idx == -1 {
		return false
	}

	freeAlgorithm(dispatcher, h.pairs[idx])

	if prev == -1 {
		h.buckets[bi] = h.next[idx]
	} else {
		h.next[prev] = h.next[idx]
	}

	last := int32(len(h.pairs) - 1)
	if idx != last {
		lastPair := h.pairs[last]
		lastHash := mixHash(uint32(lastPair.P0.ID), uint32(lastPair.P1.ID))
		lastBucket := h.bucketIndex(lastHash)

		var lastPrev int32 = -1
		li := h.buckets[lastBucket]
		for li != last {
			lastPrev = li
			li = h.next[li]
		}
		if lastPrev == -1 {
			h.buckets[lastBucket] = idx
		} else {
			h.next[lastPrev] = idx
		}

		h.pairs[idx] = lastPair
		h.next[idx] = h.next[last]
	}

	h.pairs = h.pairs[:last]
	h.next = h.next[:last]
	return true
}

// RemoveContainingProxy removes every pair mentioning p.
func (h *Hashed) RemoveContainingProxy(p *proxy.Proxy, dispatcher proxy.Dispatcher) {
	h.ProcessAll(dispatcher, false, func(pair *Pair) bool {
		return pair.P0 == p || pair.P1 == p
	})
}

// ProcessAll visits a snapshot of the current pairs (sorted if
// deterministic), then removes every pair visit flagged for removal.
func (h *Hashed) ProcessAll(dispatcher proxy.Dispatcher, deterministic bool, visit func(*Pair) bool) {
	snapshot := h.pairs
	if deterministic {
		snapshot = sortDeterministic(h.pairs)
	} else {
		snapshot = append([]*Pair(nil), h.pairs...)
	}

	var toRemove []*Pair
	for _, p := range snapshot {
		if visit(p) {
			toRemove = append(toRemove, p)
		}
	}
	for _, p := range toRemove {
		h.Remove(p.P0, p.P1, dispatcher)
	}
}

// Pairs returns a snapshot of every tracked pair.
func (h *Hashed) Pairs() []*Pair { return append([]*Pair(nil), h.pairs...) }

// Count returns the number of tracked pairs.
func (h *Hashed) Count() int { return len(h.pairs) }

// HasDeferredRemoval is always false for the hashed variant: Remove
// structurally compacts the array immediately via swap-and-pop.
func (h *Hashed) HasDeferredRemoval() bool { return false }

// SetFilter installs the Add-time filter callback.
func (h *Hashed) SetFilter(f FilterFunc) { h.filter = f }

var _ Cache = (*Hashed)(nil)
