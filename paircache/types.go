package paircache

import (
	"sort"

	"github.com/suprax-engine/broadphase/proxy"
)

// Pair is an unordered pair of proxies, canonicalized so the lower-ID proxy
// occupies P0. Algorithm is owned by the external dispatcher and freed via
// its FreeAlgorithm hook; Scratch is a single opaque slot the dispatcher may
// use however it likes (e.g. a cached manifold pointer).
type Pair struct {
	P0, P1    *proxy.Proxy
	Algorithm any
	Scratch   any
}

// FilterFunc decides whether a candidate pair should be tracked at all,
// consulted by Add before allocating a new Pair.
type FilterFunc func(a, b *proxy.Proxy) bool

// Cache is the common interface the hashed, sorted, and null pair-cache
// variants satisfy, consumed by the SAP and DBVT broad-phase back-ends.
type Cache interface {
	// Add canonicalizes (a, b), returning the existing Pair if already
	// tracked, or a new one if the filter (if any) permits it; nil if the
	// filter rejects the pair.
	Add(a, b *proxy.Proxy) *Pair

	// Remove finds and removes the pair, letting dispatcher dispose of its
	// algorithm state. Reports whether a pair was found.
	Remove(a, b *proxy.Proxy, dispatcher proxy.Dispatcher) bool

	// Find returns the tracked pair for (a, b), or nil.
	Find(a, b *proxy.Proxy) *Pair

	// RemoveContainingProxy removes every pair mentioning p.
	RemoveContainingProxy(p *proxy.Proxy, dispatcher proxy.Dispatcher)

	// ProcessAll visits every tracked pair. If deterministic, pairs are
	// visited in (P0.ID, P1.ID) order; otherwise in storage order. visit
	// returning true removes the pair once the pass completes.
	ProcessAll(dispatcher proxy.Dispatcher, deterministic bool, visit func(*Pair) bool)

	// Pairs returns a snapshot of every tracked pair.
	Pairs() []*Pair

	// Count returns the number of tracked pairs.
	Count() int

	// HasDeferredRemoval reports the variant's deferred-removal flag. Remove
	// compacts immediately in every variant; the SAP and DBVT back-ends read
	// the flag to decide whether CalculateOverlappingPairs re-tests every
	// tracked pair and drops the ones that no longer overlap.
	HasDeferredRemoval() bool

	// SetFilter installs (or clears, with nil) the Add-time filter callback.
	SetFilter(f FilterFunc)
}

// canonicalize orders a pair so the lower-ID proxy is first, matching
// spec.md §3's "lower-unique-id proxy occupies slot 0" identity rule.
func canonicalize(a, b *proxy.Proxy) (*proxy.Proxy, *proxy.Proxy) {
	if a.ID > b.ID {
		return b, a
	}
	return a, b
}

// mixHash is the Thomas-Wang integer hash the hashed variant uses to mix a
// canonicalized ID pair into a bucket index, ported verbatim (bit for bit)
// from OverlappingPair.hpp's GetHash.
func mixHash(id0, id1 uint32) uint32 {
	key := id0 | (id1 << 16)
	key += ^(key << 15)
	key ^= key >> 10
	key += key << 3
	key ^= key >> 6
	key += ^(key << 11)
	key ^= key >> 16
	return key
}

// sortDeterministic returns a copy of pairs ordered by (P0.ID, P1.ID), the
// canonical order spec.md §4.3's deterministic-mode ProcessAll requires.
func sortDeterministic(pairs []*Pair) []*Pair {
	out := append([]*Pair(nil), pairs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].P0.ID != out[j].P0.ID {
			return out[i].P0.ID < out[j].P0.ID
		}
		return out[i].P1.ID < out[j].P1.ID
	})
	return out
}

func freeAlgorithm(dispatcher proxy.Dispatcher, p *Pair) {
	if dispatcher != nil && p.Algorithm != nil {
		dispatcher.FreeAlgorithm(p.P0, p.P1, p.Algorithm)
	}
}
