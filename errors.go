package viewlines

import "errors"

// ErrStaleModel indicates a query ran while the document sits at a newer
// version than the [Collection] has been reconciled to, meaning a change
// event was not delivered. The caller must flush and retry.
var ErrStaleModel = errors.New("model version ahead of collection")

// ErrOutOfRange indicates a line number outside the current input or
// output bounds, for an operation that does not clamp.
var ErrOutOfRange = errors.New("line number out of range")

// ErrHiddenAccess indicates a hidden line was queried directly. This is a
// programming error: the [Collection]'s public API never routes queries to
// hidden lines, so it surfaces as a panic rather than a returned error.
var ErrHiddenAccess = errors.New("hidden line accessed")
