// Package quantize implements the affine world-to-grid coordinate mapping
// the SAP engine sorts on. A Quantizer maps a world-space AABB corner to a
// packed integer: the low bit records whether the corner is a min or a max,
// the remaining bits are a conservatively-rounded grid coordinate.
//
// What:
//
//   - Two widths: 16-bit (Width16, up to ~32k live handles) and 32-bit
//     (Width32, up to ~2 billion), selected by an Option at construction.
//   - Quantize always rounds conservatively: a min rounds toward the world
//     minimum, a max rounds toward the world maximum, so a quantized AABB
//     never reports less overlap than the true world-space AABB.
//   - An optional degradation hook fires when a world-space coordinate falls
//     outside the configured world bounds and has to be clamped.
//
// Why:
//
//   - SAP's sort primitives compare small integers instead of floats, which
//     keeps the incremental insertion-sort passes cheap and branch-predictable.
//
// Errors: Quantize never fails; out-of-range input is clamped, matching
// spec's "degenerate geometry is silently clamped" policy. Construction with
// a zero-width axis (WorldMin == WorldMax on some axis) returns ErrZeroExtent.
package quantize
