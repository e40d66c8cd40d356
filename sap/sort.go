package sap

import (
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// sortMinDown bubbles the min edge at idx leftward while it precedes its
// neighbour, adding a pair each time it steps across a max edge whose
// holder now overlaps on the other two axes. A min edge moving down can
// only ever create overlaps. Grounded on AxisSweepInternal.hpp's
// SortMinDown, fixing the source's `edge->Position < previous->Handle`
// typo (it must compare against previous->Position).
func (e *Engine) sortMinDown(axis vecmath.Axis, idx int32, dispatcher proxy.Dispatcher, updateOverlaps bool) {
	edges := e.edges[axis]
	cur := idx
	h := edges[cur].handle
	for cur > 0 && edges[cur].position < edges[cur-1].position {
		prev := cur - 1
		prevEdge := edges[prev]
		if prevEdge.isMax() {
			if updateOverlaps && e.testOverlap2D(h, prevEdge.handle, axis) {
				e.addPair(h, prevEdge.handle, dispatcher)
			}
			e.setEdgeSlot(prevEdge.handle, axis, true, cur)
		} else {
			e.setEdgeSlot(prevEdge.handle, axis, false, cur)
		}
		e.setEdgeSlot(h, axis, false, prev)
		edges[cur], edges[prev] = edges[prev], edges[cur]
		cur = prev
	}
}

// sortMinUp bubbles the min edge at idx rightward, removing a pair each
// time it steps across a max edge. A min edge moving up can only ever
// destroy overlaps. Grounded on AxisSweepInternal.hpp's SortMinUp.
func (e *Engine) sortMinUp(axis vecmath.Axis, idx int32, dispatcher proxy.Dispatcher, updateOverlaps bool) {
	edges := e.edges[axis]
	cur := idx
	h := edges[cur].handle
	last := int32(len(edges) - 1)
	for cur < last && edges[cur].position > edges[cur+1].position {
		next := cur + 1
		nextEdge := edges[next]
		if nextEdge.isMax() {
			if updateOverlaps && e.testOverlap2D(h, nextEdge.handle, axis) {
				e.removePair(h, nextEdge.handle, dispatcher)
			}
			e.setEdgeSlot(nextEdge.handle, axis, true, cur)
		} else {
			e.setEdgeSlot(nextEdge.handle, axis, false, cur)
		}
		e.setEdgeSlot(h, axis, false, next)
		edges[cur], edges[next] = edges[next], edges[cur]
		cur = next
	}
}

// sortMaxDown bubbles the max edge at idx leftward, removing a pair each
// time it steps across a min edge. A max edge moving down can only ever
// destroy overlaps. Grounded on AxisSweepInternal.hpp's SortMaxDown, fixing
// the same Position-vs-Handle comparison typo sortMinDown fixes.
func (e *Engine) sortMaxDown(axis vecmath.Axis, idx int32, dispatcher proxy.Dispatcher, updateOverlaps bool) {
	edges := e.edges[axis]
	cur := idx
	h := edges[cur].handle
	for cur > 0 && edges[cur].position < edges[cur-1].position {
		prev := cur - 1
		prevEdge := edges[prev]
		if !prevEdge.isMax() {
			if updateOverlaps && e.testOverlap2D(h, prevEdge.handle, axis) {
				e.removePair(h, prevEdge.handle, dispatcher)
			}
			e.setEdgeSlot(prevEdge.handle, axis, false, cur)
		} else {
			e.setEdgeSlot(prevEdge.handle, axis, true, cur)
		}
		e.setEdgeSlot(h, axis, true, prev)
		edges[cur], edges[prev] = edges[prev], edges[cur]
		cur = prev
	}
}

// sortMaxUp bubbles the max edge at idx rightward, adding a pair each time
// it steps across a min edge. A max edge moving up can only ever create
// overlaps. Grounded on AxisSweepInternal.hpp's SortMaxUp, fixing both its
// Position-vs-Handle comparison typo and its `handleNect` misspelled local
// (which wrote through whatever uninitialized pointer that typo resolved
// to — undefined behavior, not a deliberate quirk).
func (e *Engine) sortMaxUp(axis vecmath.Axis, idx int32, dispatcher proxy.Dispatcher, updateOverlaps bool) {
	edges := e.edges[axis]
	cur := idx
	h := edges[cur].handle
	last := int32(len(edges) - 1)
	for cur < last && edges[cur].position > edges[cur+1].position {
		next := cur + 1
		nextEdge := edges[next]
		if !nextEdge.isMax() {
			if updateOverlaps && e.testOverlap2D(h, nextEdge.handle, axis) {
				e.addPair(h, nextEdge.handle, dispatcher)
			}
			e.setEdgeSlot(nextEdge.handle, axis, false, cur)
		} else {
			e.setEdgeSlot(nextEdge.handle, axis, true, cur)
		}
		e.setEdgeSlot(h, axis, true, next)
		edges[cur], edges[next] = edges[next], edges[cur]
		cur = next
	}
}
