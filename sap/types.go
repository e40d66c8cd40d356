package sap

import (
	"github.com/suprax-engine/broadphase/proxy"
	"github.com/suprax-engine/broadphase/vecmath"
)

// handleIndex addresses a slot in Engine.handles. Index 0 is permanently
// reserved as the "no handle" owner of every axis's two sentinel edges —
// it is never assigned to a real proxy, mirroring AxisSweepInternal.hpp's
// reserved handles[0] slot. The sort primitives never read Handle to stop a
// bubble pass: they compare positions within the array bounds, and the
// sentinels' positions (0 and Sentinel) bound every quantized position.
type handleIndex int32

const noHandle handleIndex = 0

// edge is one entry of a per-axis sorted position array. Bit 0 of Position
// is never a real magnitude bit — it is always 0 for a min edge and 1 for
// a max edge (mirroring the quantizer's own packing), so IsMax is a single
// bit test.
type edge struct {
	position uint32
	handle   handleIndex
}

func (e edge) isMax() bool { return e.position&1 == 1 }

// Handle is one live proxy's SAP bookkeeping: its public Proxy plus the
// edge-array slot each axis's min and max edge currently occupies. Other
// back-ends embed *proxy.Proxy directly; this one embeds a pointer so a
// freed slot can be distinguished from a live one with a nil check.
type Handle struct {
	*proxy.Proxy
	minEdge  [vecmath.NumAxes]int32
	maxEdge  [vecmath.NumAxes]int32
	nextFree handleIndex // valid only while this slot is on the freelist
}

// otherAxesOf returns the two axes other than a, in the fixed order the
// source's `(1<<axis)&3` bit trick produces: axis 0 -> (1, 2), axis 1 ->
// (2, 0), axis 2 -> (0, 1).
func otherAxesOf(a vecmath.Axis) (vecmath.Axis, vecmath.Axis) {
	switch a {
	case vecmath.AxisX:
		return vecmath.AxisY, vecmath.AxisZ
	case vecmath.AxisY:
		return vecmath.AxisZ, vecmath.AxisX
	default:
		return vecmath.AxisX, vecmath.AxisY
	}
}
