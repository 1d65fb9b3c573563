package viewlines

import (
	"unicode/utf8"

	"go.jacobcolvin.com/viewlines/position"
	"go.jacobcolvin.com/viewlines/tokens"
	"go.jacobcolvin.com/viewlines/wrap"
)

// splitLine projects one input line onto its output rows.
//
// Exactly one splitLine exists per input line. Visibility is its only
// mutable attribute; a text change replaces the splitLine outright. Query
// methods panic with [ErrHiddenAccess] when called on a hidden line: the
// [Collection] never routes queries to hidden lines, so reaching one is a
// bug in the caller.
type splitLine interface {
	isVisible() bool
	setVisible(visible bool)

	// outputLineCount returns the effective number of output rows: 0 when
	// hidden.
	outputLineCount() int

	outputLineContent(model Model, myLineNumber, outputLineIndex int) string
	outputLineMinColumn(model Model, myLineNumber, outputLineIndex int) int
	outputLineMaxColumn(model Model, myLineNumber, outputLineIndex int) int
	outputLineTokens(model Model, myLineNumber, outputLineIndex int, inaccurate bool) tokens.Tokens

	// inputColumnOfOutputPosition maps a column on one of this line's
	// output rows back to an input column.
	inputColumnOfOutputPosition(model Model, myLineNumber, outputLineIndex, outputColumn int) int

	// outputPositionOfInputPosition maps an input column to an output
	// position. deltaLineNumber is the output line number of this input
	// line's first row.
	outputPositionOfInputPosition(deltaLineNumber, inputColumn int) position.Position
}

// newSplitLine builds the projector for one input line: identity when the
// factory decides the line fits, wrapped otherwise.
func newSplitLine(m wrap.LineMapping, visible bool) splitLine {
	if m == nil {
		return &identityLine{visible: visible}
	}

	return newWrappedLine(m, visible)
}

// identityLine projects an unwrapped input line onto a single identical
// output row.
type identityLine struct {
	visible bool
}

var _ splitLine = (*identityLine)(nil)

func (l *identityLine) isVisible() bool {
	return l.visible
}

func (l *identityLine) setVisible(visible bool) {
	l.visible = visible
}

func (l *identityLine) outputLineCount() int {
	if !l.visible {
		return 0
	}

	return 1
}

func (l *identityLine) assertVisible() {
	if !l.visible {
		panic(ErrHiddenAccess)
	}
}

func (l *identityLine) outputLineContent(model Model, myLineNumber, _ int) string {
	l.assertVisible()

	return model.LineContent(myLineNumber)
}

func (l *identityLine) outputLineMinColumn(model Model, myLineNumber, _ int) int {
	l.assertVisible()

	return model.LineMinColumn(myLineNumber)
}

func (l *identityLine) outputLineMaxColumn(model Model, myLineNumber, _ int) int {
	l.assertVisible()

	return model.LineMaxColumn(myLineNumber)
}

func (l *identityLine) outputLineTokens(model Model, myLineNumber, _ int, inaccurate bool) tokens.Tokens {
	l.assertVisible()

	maxColumn := model.LineMaxColumn(myLineNumber)

	return model.LineTokens(myLineNumber, inaccurate).Slice(0, maxColumn-1, 0)
}

func (l *identityLine) inputColumnOfOutputPosition(_ Model, _, _, outputColumn int) int {
	l.assertVisible()

	return outputColumn
}

func (l *identityLine) outputPositionOfInputPosition(deltaLineNumber, inputColumn int) position.Position {
	l.assertVisible()

	return position.New(deltaLineNumber, inputColumn)
}

// wrappedLine projects a wrapped input line onto several output rows,
// prefixing continuation rows with the mapping's hanging indent.
type wrappedLine struct {
	mapping wrap.LineMapping
	indent  string
	// indentLength is the indent's rune count, cached at construction.
	indentLength int
	outputCount  int
	visible      bool
}

var _ splitLine = (*wrappedLine)(nil)

func newWrappedLine(m wrap.LineMapping, visible bool) *wrappedLine {
	indent := m.WrappedLinesIndent()

	return &wrappedLine{
		mapping:      m,
		indent:       indent,
		indentLength: utf8.RuneCountInString(indent),
		outputCount:  m.OutputLineCount(),
		visible:      visible,
	}
}

func (l *wrappedLine) isVisible() bool {
	return l.visible
}

func (l *wrappedLine) setVisible(visible bool) {
	l.visible = visible
}

func (l *wrappedLine) outputLineCount() int {
	if !l.visible {
		return 0
	}

	return l.outputCount
}

func (l *wrappedLine) assertVisible() {
	if !l.visible {
		panic(ErrHiddenAccess)
	}
}

// rowSpan returns the input rune offsets [start, end) covered by the given
// output row.
func (l *wrappedLine) rowSpan(model Model, myLineNumber, outputLineIndex int) (int, int) {
	start := l.mapping.InputOffsetOfOutputPosition(outputLineIndex, 0)

	if outputLineIndex+1 < l.outputCount {
		return start, l.mapping.InputOffsetOfOutputPosition(outputLineIndex+1, 0)
	}

	return start, model.LineMaxColumn(myLineNumber) - 1
}

func (l *wrappedLine) outputLineContent(model Model, myLineNumber, outputLineIndex int) string {
	l.assertVisible()

	start, end := l.rowSpan(model, myLineNumber, outputLineIndex)
	content := string([]rune(model.LineContent(myLineNumber))[start:end])

	if outputLineIndex > 0 {
		content = l.indent + content
	}

	return content
}

func (l *wrappedLine) outputLineMinColumn(_ Model, _, outputLineIndex int) int {
	l.assertVisible()

	if outputLineIndex == 0 {
		return 1
	}

	return l.indentLength + 1
}

func (l *wrappedLine) outputLineMaxColumn(model Model, myLineNumber, outputLineIndex int) int {
	l.assertVisible()

	return utf8.RuneCountInString(l.outputLineContent(model, myLineNumber, outputLineIndex)) + 1
}

func (l *wrappedLine) outputLineTokens(model Model, myLineNumber, outputLineIndex int, inaccurate bool) tokens.Tokens {
	l.assertVisible()

	start, end := l.rowSpan(model, myLineNumber, outputLineIndex)

	delta := 0
	if outputLineIndex > 0 {
		// The indent is visual-only padding; no token spans it.
		delta = l.indentLength
	}

	return model.LineTokens(myLineNumber, inaccurate).Slice(start, end, delta)
}

func (l *wrappedLine) inputColumnOfOutputPosition(_ Model, _, outputLineIndex, outputColumn int) int {
	l.assertVisible()

	adjusted := outputColumn - 1
	if outputLineIndex > 0 {
		// Columns inside the indent clamp to the row's wrap start.
		adjusted = max(0, adjusted-l.indentLength)
	}

	return l.mapping.InputOffsetOfOutputPosition(outputLineIndex, adjusted) + 1
}

func (l *wrappedLine) outputPositionOfInputPosition(deltaLineNumber, inputColumn int) position.Position {
	l.assertVisible()

	p := l.mapping.OutputPositionOfInputOffset(max(0, inputColumn-1))

	offset := p.Offset
	if p.LineIndex > 0 {
		offset += l.indentLength
	}

	return position.New(deltaLineNumber+p.LineIndex, offset+1)
}
