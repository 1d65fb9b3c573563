package viewlines

import (
	"go.jacobcolvin.com/viewlines/position"
	"go.jacobcolvin.com/viewlines/tokens"
)

// Model is the document a [Collection] projects. Lines are 1-indexed;
// columns are 1-indexed rune positions.
//
// The model carries a monotonically increasing version identifier, bumped
// on every mutation. The host owning both the model and the collection
// must forward each mutation to the collection's change sinks in version
// order; the collection only verifies freshness.
//
// See [go.jacobcolvin.com/viewlines/textmodel.Buffer] for an
// implementation.
type Model interface {
	// VersionID returns the document's current version.
	VersionID() int

	// LinesContent returns the content of every line, in order.
	LinesContent() []string

	// LineContent returns the content of the given line.
	LineContent(lineNumber int) string

	// LineMinColumn returns the first valid column on the given line,
	// always 1.
	LineMinColumn(lineNumber int) int

	// LineMaxColumn returns one past the last valid column on the given
	// line: the line's rune count + 1.
	LineMaxColumn(lineNumber int) int

	// LineTokens returns the token stream for the given line. When
	// inaccurate is true, the model may return stale tokens rather than
	// re-tokenizing.
	LineTokens(lineNumber int, inaccurate bool) tokens.Tokens

	// DecorationRange returns the current range of a decoration previously
	// allocated with DeltaDecorations, reflecting any edits since. The
	// second result is false if the decoration no longer exists.
	DecorationRange(id string) (position.Range, bool)

	// ValidateRange clamps a range into the document's current bounds.
	ValidateRange(r position.Range) position.Range

	// DeltaDecorations atomically removes the decorations identified by
	// oldIDs and allocates one new decoration per range, returning the new
	// IDs in order. Decoration ranges track subsequent edits.
	DeltaDecorations(oldIDs []string, ranges []position.Range) []string
}
