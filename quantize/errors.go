package quantize

import "errors"

// ErrZeroExtent is returned by New when the world AABB has zero width on an
// axis, which would make the scale factor undefined.
var ErrZeroExtent = errors.New("quantize: world AABB has zero extent on an axis")
