// Package vecmath provides the 3D vector and axis-aligned bounding box
// primitives shared by every layer of the broad-phase core: quantize, dbvt,
// sap, dbvtphase, and proxy all operate on vecmath.Vec3 and vecmath.AABB.
//
// What:
//
//   - Vec3: a plain XYZ triple with the arithmetic the broad-phase needs.
//   - AABB: a Min/Max corner pair with union, containment, intersection,
//     and the margin/velocity expansion used by the DBVT's predictive update.
//
// Why:
//
//   - Every subsystem (SAP edges, DBVT volumes, quantizer bounds) is built
//     on the same small vector type, so keeping it in one leaf package avoids
//     duplicating float math across five packages.
//
// Complexity: every operation here is O(1).
package vecmath
