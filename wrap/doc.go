// Package wrap decides where a single input line breaks into output rows
// and maps offsets across that decision.
//
// A [LineMapping] is the immutable per-line result: the number of output
// rows, the hanging-indent prefix for continuation rows, and the
// bidirectional map between input rune offsets and (row, offset) pairs.
// A [Factory] produces mappings for a given configuration; it returns nil
// for lines that fit without wrapping.
//
// [NewMonospaceFactory] provides the default implementation for
// fixed-width-cell rendering, charging a configurable column cost for
// full-width (East Asian wide) characters and expanding tabs.
package wrap
