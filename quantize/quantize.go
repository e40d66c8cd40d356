package quantize

import (
	"math"

	"go.uber.org/zap"

	"github.com/suprax-engine/broadphase/vecmath"
)

// Quantizer maps world-space points to packed integer coordinates for one
// fixed world AABB. It is immutable after construction, per spec.md §5's
// "the quantizer is immutable after construction" resource policy.
type Quantizer struct {
	worldMin, worldMax vecmath.Vec3
	scale              vecmath.Vec3 // (sentinel & mask) per axis / world extent
	width              Width
	sentinel           uint32
	mask               uint32
	logger             *zap.Logger
}

// New builds a Quantizer for the given world AABB. It returns ErrZeroExtent
// if any axis has WorldMin == WorldMax.
func New(worldMin, worldMax vecmath.Vec3, opts ...Option) (*Quantizer, error) {
	q := &Quantizer{worldMin: worldMin, worldMax: worldMax, width: Width16}
	for _, opt := range opts {
		opt(q)
	}
	q.sentinel = q.width.Sentinel()
	q.mask = q.width.Mask()

	extent := worldMax.Sub(worldMin)
	if extent.X == 0 || extent.Y == 0 || extent.Z == 0 {
		return nil, ErrZeroExtent
	}
	ceiling := float64(q.sentinel & q.mask)
	q.scale = vecmath.Vec3{X: ceiling / extent.X, Y: ceiling / extent.Y, Z: ceiling / extent.Z}

	return q, nil
}

// Width reports the configured packed-coordinate width.
func (q *Quantizer) Width() Width { return q.width }

// Sentinel returns the axis sentinel coordinate (reserved, never produced by Quantize).
func (q *Quantizer) Sentinel() uint32 { return q.sentinel }

// Mask returns the width's handle mask (bit 0 clear). The largest coordinate
// a real edge may take is Sentinel() & Mask(), one below Sentinel().
func (q *Quantizer) Mask() uint32 { return q.mask }

// WorldBounds returns the world AABB this Quantizer was constructed with.
func (q *Quantizer) WorldBounds() (vecmath.Vec3, vecmath.Vec3) { return q.worldMin, q.worldMax }

// QuantizeAxis packs a single axis's world coordinate, clamping conservatively:
// a min edge (isMax == false) rounds down to an even coordinate, a max edge
// rounds up to one, so for an in-world value UnquantizeAxis never moves a
// min up or a max down. Bit 0 of the result is 0 for a min edge and 1 for a
// max edge, except that a max edge clamped to the ceiling packs to the even
// ceiling value itself. The result never exceeds Sentinel() & Mask(), one
// below Sentinel(), so it can never collide with the reserved Sentinel()
// value.
func (q *Quantizer) QuantizeAxis(a vecmath.Axis, value float64, isMax bool) uint32 {
	worldLo := q.worldMin.Component(a)
	scale := q.scale.Component(a)
	limit := q.sentinel & q.mask
	ceiling := float64(limit)

	t := (value - worldLo) * scale
	degraded := t < 0 || t > ceiling
	if t < 0 {
		t = 0
	} else if t > ceiling {
		t = ceiling
	}

	var raw uint32
	if isMax {
		raw = uint32(math.Ceil(t)) + 1 // the bit-0 clear below then rounds up to even
	} else {
		raw = uint32(math.Floor(t))
	}
	raw &^= 1 // reserve bit 0 purely as the min/max flag

	packed := raw
	if isMax {
		packed |= 1
	}
	if packed > limit {
		packed = limit
	}

	if degraded && q.logger != nil {
		q.logger.Warn("quantize: world coordinate out of range, clamped",
			zap.Int("axis", int(a)), zap.Float64("value", value), zap.Bool("is_max", isMax))
	}

	return packed
}

// UnquantizeAxis recovers the approximate world coordinate for a single
// packed axis value, ignoring the min/max flag bit.
func (q *Quantizer) UnquantizeAxis(a vecmath.Axis, packed uint32) float64 {
	coord := packed &^ 1
	scale := q.scale.Component(a)
	return q.worldMin.Component(a) + float64(coord)/scale
}

// IsMaxEdge reports whether a packed axis value was produced with isMax == true.
func IsMaxEdge(packed uint32) bool { return packed&1 == 1 }

// QuantizeMin packs every axis of p as a min corner.
func (q *Quantizer) QuantizeMin(p vecmath.Vec3) [vecmath.NumAxes]uint32 {
	return [vecmath.NumAxes]uint32{
		q.QuantizeAxis(vecmath.AxisX, p.X, false),
		q.QuantizeAxis(vecmath.AxisY, p.Y, false),
		q.QuantizeAxis(vecmath.AxisZ, p.Z, false),
	}
}

// QuantizeMax packs every axis of p as a max corner.
func (q *Quantizer) QuantizeMax(p vecmath.Vec3) [vecmath.NumAxes]uint32 {
	return [vecmath.NumAxes]uint32{
		q.QuantizeAxis(vecmath.AxisX, p.X, true),
		q.QuantizeAxis(vecmath.AxisY, p.Y, true),
		q.QuantizeAxis(vecmath.AxisZ, p.Z, true),
	}
}

// Unquantize recovers an approximate world AABB from packed min/max triples.
func (q *Quantizer) Unquantize(min, max [vecmath.NumAxes]uint32) vecmath.AABB {
	return vecmath.AABB{
		Min: vecmath.Vec3{
			X: q.UnquantizeAxis(vecmath.AxisX, min[vecmath.AxisX]),
			Y: q.UnquantizeAxis(vecmath.AxisY, min[vecmath.AxisY]),
			Z: q.UnquantizeAxis(vecmath.AxisZ, min[vecmath.AxisZ]),
		},
		Max: vecmath.Vec3{
			X: q.UnquantizeAxis(vecmath.AxisX, max[vecmath.AxisX]),
			Y: q.UnquantizeAxis(vecmath.AxisY, max[vecmath.AxisY]),
			Z: q.UnquantizeAxis(vecmath.AxisZ, max[vecmath.AxisZ]),
		},
	}
}
