package textmodel

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"go.jacobcolvin.com/viewlines/position"
	"go.jacobcolvin.com/viewlines/tokens"
)

// Tokenizer produces per-line token streams for a whole document.
// Implementations must return exactly one [tokens.Tokens] per input line.
type Tokenizer interface {
	Tokenize(content string) []tokens.Tokens
}

// Buffer is an in-memory versioned document of lines.
//
// Every mutation bumps the version. Mutating methods return the new
// version so the host can forward the change to downstream consumers in
// order.
//
// Create instances with [NewBuffer].
type Buffer struct {
	lines     []string
	tokenizer Tokenizer

	lineTokens  []tokens.Tokens
	tokensValid bool

	decorations    map[string]*decoration
	nextDecoration int

	versionID int
}

// A decoration anchors an inclusive line interval across edits.
type decoration struct {
	startLine, endLine int
}

// BufferOption configures [Buffer] creation.
type BufferOption func(*Buffer)

// WithTokenizer sets the [Tokenizer] used for line tokens. Without one,
// every line yields a single untyped token.
func WithTokenizer(t Tokenizer) BufferOption {
	return func(b *Buffer) {
		b.tokenizer = t
	}
}

// NewBuffer creates a new [Buffer] from the given content, split at
// newlines. Empty content yields a single empty line, matching editor
// semantics. The initial version is 1.
func NewBuffer(content string, opts ...BufferOption) *Buffer {
	b := &Buffer{
		lines:       splitLines(content),
		decorations: map[string]*decoration{},
		versionID:   1,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// VersionID returns the document's current version.
func (b *Buffer) VersionID() int {
	return b.versionID
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LinesContent returns a copy of every line's content, in order.
func (b *Buffer) LinesContent() []string {
	return slices.Clone(b.lines)
}

// Content returns the whole document joined with newlines.
func (b *Buffer) Content() string {
	return strings.Join(b.lines, "\n")
}

// LineContent returns the content of the given 1-indexed line.
// Panics if lineNumber is out of range.
func (b *Buffer) LineContent(lineNumber int) string {
	return b.lines[lineNumber-1]
}

// LineMinColumn returns the first valid column on the given line.
func (b *Buffer) LineMinColumn(int) int {
	return 1
}

// LineMaxColumn returns one past the last valid column on the given line.
// Panics if lineNumber is out of range.
func (b *Buffer) LineMaxColumn(lineNumber int) int {
	return utf8.RuneCountInString(b.lines[lineNumber-1]) + 1
}

// LineTokens returns the token stream of the given line. When inaccurate
// is true and the cache is merely stale, the stale stream is returned
// rather than re-tokenizing. Panics if lineNumber is out of range.
func (b *Buffer) LineTokens(lineNumber int, inaccurate bool) tokens.Tokens {
	if b.tokenizer == nil {
		return tokens.Tokens{{Start: 0}}
	}

	if !b.tokensValid {
		stale := len(b.lineTokens) > lineNumber-1

		if inaccurate && stale {
			return b.lineTokens[lineNumber-1]
		}

		b.lineTokens = b.tokenizer.Tokenize(b.Content())
		b.tokensValid = true
	}

	if lineNumber-1 >= len(b.lineTokens) {
		return tokens.Tokens{{Start: 0}}
	}

	return b.lineTokens[lineNumber-1]
}

// ValidateRange clamps a range into the document's current bounds.
func (b *Buffer) ValidateRange(r position.Range) position.Range {
	start := b.validatePosition(r.Start)
	end := b.validatePosition(r.End)

	if end.Before(start) {
		end = start
	}

	return position.NewRange(start, end)
}

func (b *Buffer) validatePosition(p position.Position) position.Position {
	line := min(max(p.Line, 1), len(b.lines))
	column := min(max(p.Column, 1), b.LineMaxColumn(line))

	return position.New(line, column)
}

// DeltaDecorations removes the decorations identified by oldIDs and
// allocates one new decoration per range, returning the new IDs in order.
func (b *Buffer) DeltaDecorations(oldIDs []string, ranges []position.Range) []string {
	for _, id := range oldIDs {
		delete(b.decorations, id)
	}

	if len(ranges) == 0 {
		return nil
	}

	ids := make([]string, len(ranges))

	for i, r := range ranges {
		r = b.ValidateRange(r)

		b.nextDecoration++
		id := fmt.Sprintf("deco-%d", b.nextDecoration)

		b.decorations[id] = &decoration{
			startLine: r.Start.Line,
			endLine:   r.End.Line,
		}
		ids[i] = id
	}

	return ids
}

// DecorationRange returns the current line range of a decoration. The
// second result is false if the decoration no longer exists.
func (b *Buffer) DecorationRange(id string) (position.Range, bool) {
	d, ok := b.decorations[id]
	if !ok {
		return position.Range{}, false
	}

	return position.NewRange(
		position.New(d.startLine, 1),
		position.New(d.endLine, 1),
	), true
}

// SetLineContent replaces the content of one line and returns the new
// version. Panics if lineNumber is out of range.
func (b *Buffer) SetLineContent(lineNumber int, text string) int {
	b.lines[lineNumber-1] = text

	return b.bump()
}

// InsertLines inserts the given texts so the first occupies atLineNumber,
// shifting existing lines down, and returns the new version.
// atLineNumber may be LineCount+1 to append.
func (b *Buffer) InsertLines(atLineNumber int, texts ...string) int {
	atLineNumber = min(max(atLineNumber, 1), len(b.lines)+1)

	b.lines = slices.Insert(b.lines, atLineNumber-1, texts...)

	count := len(texts)
	for _, d := range b.decorations {
		switch {
		case atLineNumber <= d.startLine:
			d.startLine += count
			d.endLine += count
		case atLineNumber <= d.endLine:
			// Insertion strictly inside the decoration grows it.
			d.endLine += count
		}
	}

	return b.bump()
}

// DeleteLines removes the inclusive line range [fromLineNumber,
// toLineNumber] and returns the new version. A buffer never becomes empty:
// deleting every line leaves one empty line.
func (b *Buffer) DeleteLines(fromLineNumber, toLineNumber int) int {
	fromLineNumber = min(max(fromLineNumber, 1), len(b.lines))
	toLineNumber = min(max(toLineNumber, fromLineNumber), len(b.lines))

	b.lines = slices.Delete(b.lines, fromLineNumber-1, toLineNumber)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}

	count := toLineNumber - fromLineNumber + 1
	for id, d := range b.decorations {
		// A decoration entirely inside the deleted range has nothing left
		// to anchor to.
		if d.startLine >= fromLineNumber && d.endLine <= toLineNumber {
			delete(b.decorations, id)

			continue
		}

		// A start inside the deleted range moves to the first line after it,
		// so the decoration never takes in a line that preceded it.
		if d.startLine >= fromLineNumber && d.startLine <= toLineNumber {
			d.startLine = fromLineNumber
		} else {
			d.startLine = adjustDeleted(d.startLine, fromLineNumber, toLineNumber, count)
		}

		d.endLine = adjustDeleted(d.endLine, fromLineNumber, toLineNumber, count)
	}

	return b.bump()
}

// adjustDeleted maps a 1-indexed line through the deletion of
// [from, to]. Lines inside the deleted range collapse onto from-1 (or from
// when nothing precedes the range).
func adjustDeleted(line, from, to, count int) int {
	switch {
	case line < from:
		return line
	case line <= to:
		return max(from-1, 1)
	default:
		return line - count
	}
}

// Flush replaces the whole document and returns the new version.
// Decorations are discarded.
func (b *Buffer) Flush(content string) int {
	b.lines = splitLines(content)
	b.decorations = map[string]*decoration{}

	return b.bump()
}

func (b *Buffer) bump() int {
	b.versionID++
	b.tokensValid = false

	return b.versionID
}
