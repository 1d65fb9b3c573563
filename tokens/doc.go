// Package tokens defines the per-line token stream consumed and produced by
// the view-line layer.
//
// A [Token] marks the 0-indexed rune offset where a run of uniformly-typed
// text begins; the run extends to the next token's start, or to the end of
// the line for the last token. [Tokens.Slice] restricts a stream to a
// sub-range of a line and re-bases it for rendering on a wrapped row.
package tokens
