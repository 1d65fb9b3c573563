// Package lineviewport provides a Bubble Tea viewport over the output
// lines of a view-line collection.
//
// The viewport scrolls vertically across output lines, so a wrapped input
// line occupies several scroll steps and hidden ranges occupy none. When
// the viewport is resized, the collection re-wraps to the new width.
package lineviewport
