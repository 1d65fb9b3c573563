// Package textmodel provides [Buffer], an in-memory versioned document
// implementing the model contract consumed by
// [go.jacobcolvin.com/viewlines.Collection].
//
// A Buffer stores lines of text, bumps its version on every mutation, and
// anchors decorations whose ranges track edits: a decoration shifts when
// lines are inserted or deleted above it, grows when lines are inserted
// strictly inside it, and shrinks or collapses when a deletion overlaps it.
//
// Token streams come from a pluggable [Tokenizer]; see
// [go.jacobcolvin.com/viewlines/highlight] for a syntax-aware
// implementation.
package textmodel
