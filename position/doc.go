// Package position defines line and column positions and ranges within a
// document.
//
// Positions are 1-indexed: the first character of the first line is 1:1.
// This matches the public coordinate space of [go.jacobcolvin.com/viewlines];
// internal offsets elsewhere in the module are 0-indexed.
package position
