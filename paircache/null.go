package paircache

import "github.com/suprax-engine/broadphase/proxy"

// Null is a pair cache where every operation is a no-op, used by ray-cast
// accelerator DBVT instances (see package sap) that need the Cache interface
// to satisfy a constructor parameter but never actually want pair
// maintenance overhead. Grounded on OverlappingPair.hpp's NullPairCache.
type Null struct{}

// NewNull creates a Null pair cache.
func NewNull() *Null { return &Null{} }

func (Null) Add(a, b *proxy.Proxy) *Pair                                       { return nil }
func (Null) Find(a, b *proxy.Proxy) *Pair                                      { return nil }
func (Null) Remove(a, b *proxy.Proxy, dispatcher proxy.Dispatcher) bool        { return false }
func (Null) RemoveContainingProxy(p *proxy.Proxy, dispatcher proxy.Dispatcher) {}
func (Null) ProcessAll(proxy.Dispatcher, bool, func(*Pair) bool)               {}
func (Null) Pairs() []*Pair                                                    { return nil }
func (Null) Count() int                                                       { return 0 }
func (Null) HasDeferredRemoval() bool                                         { return true }
func (Null) SetFilter(FilterFunc)                                             {}

var _ Cache = Null{}
