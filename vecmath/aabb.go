package vecmath

// AABB is an axis-aligned bounding box defined by its min and max corners.
// Mutators throughout the broad-phase core never construct an AABB with
// Min > Max on any axis; callers that receive degenerate input clamp it
// themselves (see the quantize package), keeping AABB itself a pure value type.
type AABB struct {
	Min, Max Vec3
}

// FromCenterExtents builds an AABB from its center and per-axis half-extents,
// mirroring the source's DbvtAABBMm::FromCE.
func FromCenterExtents(center, extents Vec3) AABB {
	return AABB{Min: center.Sub(extents), Max: center.Add(extents)}
}

// FromPoints builds the AABB spanning two arbitrary corner points, mirroring
// DbvtAABBMm::FromPoints for a two-point set.
func FromPoints(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// Center returns the AABB's geometric center.
func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Extents returns the AABB's per-axis half-width.
func (b AABB) Extents() Vec3 { return b.Max.Sub(b.Min).Scale(0.5) }

// Lengths returns the AABB's per-axis full width.
func (b AABB) Lengths() Vec3 { return b.Max.Sub(b.Min) }

// SurfaceArea returns the box's surface area, the cost metric the DBVT uses
// to pick an insertion path and to decide rotations during optimization.
func (b AABB) SurfaceArea() float64 {
	d := b.Lengths()
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Contains reports whether b fully contains o on every axis.
func (b AABB) Contains(o AABB) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y && b.Min.Z <= o.Min.Z &&
		b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y && b.Max.Z >= o.Max.Z
}

// Intersects reports whether b and o overlap on every axis using strict
// inequality, so two boxes that merely touch (equal on one axis, disjoint
// on none) are NOT reported as overlapping — spec boundary behavior.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// IntersectsAxes2D tests overlap on exactly the two axes other than skip,
// the shape the SAP sort primitives need when the swept axis is already
// known to overlap by construction.
func (b AABB) IntersectsAxes2D(o AABB, skip Axis) bool {
	for _, a := range [NumAxes]Axis{AxisX, AxisY, AxisZ} {
		if a == skip {
			continue
		}
		if b.Min.Component(a) >= o.Max.Component(a) || b.Max.Component(a) <= o.Min.Component(a) {
			return false
		}
	}
	return true
}

// Expand returns b grown by margin on every axis in both directions,
// mirroring DbvtAABBMm::Expand.
func (b AABB) Expand(margin Vec3) AABB {
	return AABB{Min: b.Min.Sub(margin), Max: b.Max.Add(margin)}
}

// SignedExpand grows b only in the direction each component of d points,
// mirroring DbvtAABBMm::SignedExpand: used to fatten a volume along its
// velocity vector instead of uniformly, so a fast-moving object doesn't pay
// for margin on the side it's leaving.
func (b AABB) SignedExpand(d Vec3) AABB {
	out := b
	if d.X > 0 {
		out.Max.X += d.X
	} else {
		out.Min.X += d.X
	}
	if d.Y > 0 {
		out.Max.Y += d.Y
	} else {
		out.Min.Y += d.Y
	}
	if d.Z > 0 {
		out.Max.Z += d.Z
	} else {
		out.Min.Z += d.Z
	}
	return out
}

// Clamped returns b with Max raised to Min on any axis where it fell below,
// the degenerate-geometry handling spec.md §7 assigns to the quantizer: an
// AABB with min > max is silently clamped rather than rejected.
func (b AABB) Clamped() AABB {
	return AABB{Min: b.Min, Max: b.Max.Max(b.Min)}
}
