package dbvtphase

import "errors"

// ErrUnknownProxy is returned when an operation names a proxy ID this
// Phase did not allocate (or has already destroyed).
var ErrUnknownProxy = errors.New("dbvtphase: unknown proxy id")

// ErrPoolNotEmpty is returned by ResetPool when proxies are still live,
// matching spec.md §7's "only legal when proxy count is zero".
var ErrPoolNotEmpty = errors.New("dbvtphase: reset_pool called with live proxies")
