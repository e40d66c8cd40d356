// Package proxy defines the broad-phase's externally-referenced handle
// (Proxy), the collision-filter bit test, and the Dispatcher hook contract
// an external narrow-phase dispatcher must satisfy. Every back-end
// (package sap, package dbvtphase) embeds *Proxy in its own handle type,
// the same way the source's btAxisSweep3::Handle and btDbvtProxy both embed
// a common btBroadPhaseProxy base — Go composition stands in for that
// inheritance.
//
// Errors: none; a Proxy is a plain value type with no fallible operations.
package proxy
