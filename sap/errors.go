package sap

import "errors"

// ErrCapacityExceeded is returned by CreateProxy when the engine already
// holds as many live proxies as it was constructed to support.
var ErrCapacityExceeded = errors.New("sap: handle capacity exceeded")

// ErrUnknownProxy is returned when an operation names a proxy ID this
// engine did not allocate (or has already destroyed).
var ErrUnknownProxy = errors.New("sap: unknown proxy id")

// ErrPoolNotEmpty is returned by ResetPool when proxies are still live,
// matching spec.md §7's "only legal when proxy count is zero".
var ErrPoolNotEmpty = errors.New("sap: reset_pool called with live proxies")
