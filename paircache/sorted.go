package paircache

import "github.com/suprax-engine/broadphase/proxy"

// Sorted is a simpler pair cache that skips the hash table entirely,
// trading O(n) lookups for no table-maintenance overhead — appropriate when
// the pair count is small and ordered iteration matters more than lookup
// speed. Removal is always an immediate swap-and-pop, and ProcessAll always
// applies its callback-triggered removals after the pass rather than
// mutating mid-scan. DeferredRemoval defaults to true, matching the source's
// SortedOverlappingPairCache (`_hasDefferedRemoval` defaults true); the flag
// changes neither of those and only tells the broad-phase back-ends to run
// their CalculateOverlappingPairs re-test pass over this cache.
type Sorted struct {
	pairs           []*Pair
	filter          FilterFunc
	deferredRemoval bool
}

// NewSorted creates an empty sorted pair cache.
func NewSorted() *Sorted {
	return &Sorted{deferredRemoval: true}
}

func (s *Sorted) find(p0, p1 *proxy.Proxy) int {
	for i, p := range s.pairs {
		if p.P0 == p0 && p.P1 == p1 {
			return i
		}
	}
	return -1
}

// Add canonicalizes (a, b) and returns the existing pair, or a new one if
// the filter permits it.
func (s *Sorted) Add(a, b *proxy.Proxy) *Pair {
	p0, p1 := canonicalize(a, b)
	if i := s.find(p0, p1); i != -1 {
		return s.pairs[i]
	}
	if s.filter != nil && !s.filter(p0, p1) {
		return nil
	}
	pair := &Pair{P0: p0, P1: p1}
	s.pairs = append(s.pairs, pair)
	return pair
}

// Find returns the tracked pair for (a, b), or nil.
func (s *Sorted) Find(a, b *proxy.Proxy) *Pair {
	p0, p1 := canonicalize(a, b)
	if i := s.find(p0, p1); i != -1 {
		return s.pairs[i]
	}
	return nil
}

// Remove finds and swap-and-pop removes the pair for (a, b).
func (s *Sorted) Remove(a, b *proxy.Proxy, dispatcher proxy.Dispatcher) bool {
	p0, p1 := canonicalize(a, b)
	i := s.find(p0, p1)
	if i == -1 {
		return false
	}
	freeAlgorithm(dispatcher, s.pairs[i])
	last := len(s.pairs) - 1
	s.pairs[i] = s.pairs[last]
	s.pairs = s.pairs[:last]
	return true
}

// RemoveContainingProxy removes every pair mentioning p.
func (s *Sorted) RemoveContainingProxy(p *proxy.Proxy, dispatcher proxy.Dispatcher) {
	s.ProcessAll(dispatcher, false, func(pair *Pair) bool {
		return pair.P0 == p || pair.P1 == p
	})
}

// ProcessAll visits a snapshot of the current pairs (sorted if
// deterministic), then compacts out every pair visit flagged for removal.
func (s *Sorted) ProcessAll(dispatcher proxy.Dispatcher, deterministic bool, visit func(*Pair) bool) {
	var snapshot []*Pair
	if deterministic {
		snapshot = sortDeterministic(s.pairs)
	} else {
		snapshot = append([]*Pair(nil), s.pairs...)
	}

	var toRemove []*Pair
	for _, p := range snapshot {
		if visit(p) {
			toRemove = append(toRemove, p)
		}
	}
	for _, p := range toRemove {
		s.Remove(p.P0, p.P1, dispatcher)
	}
}

// Pairs returns a snapshot of every tracked pair.
func (s *Sorted) Pairs() []*Pair { return append([]*Pair(nil), s.pairs...) }

// Count returns the number of tracked pairs.
func (s *Sorted) Count() int { return len(s.pairs) }

// HasDeferredRemoval reports the deferred-removal policy, true by default.
func (s *Sorted) HasDeferredRemoval() bool { return s.deferredRemoval }

// SetDeferredRemoval overrides the default deferred-removal policy.
func (s *Sorted) SetDeferredRemoval(v bool) { s.deferredRemoval = v }

// SetFilter installs the Add-time filter callback.
func (s *Sorted) SetFilter(f FilterFunc) { s.filter = f }

var _ Cache = (*Sorted)(nil)
