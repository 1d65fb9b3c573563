package viewlines

import (
	"slices"

	"go.jacobcolvin.com/viewlines/position"
	"go.jacobcolvin.com/viewlines/prefixsum"
	"go.jacobcolvin.com/viewlines/tokens"
	"go.jacobcolvin.com/viewlines/wrap"
)

// Collection aggregates one [splitLine] per input line and maintains the
// bidirectional mapping between the document's input space and the rendered
// output space, under soft wrapping and hidden ranges.
//
// All methods must run on the single goroutine owning the document. Each
// public method is a synchronous, run-to-completion step: it either leaves
// the collection consistent with the document or fails before mutating
// observable state.
//
// Queries verify that the document version matches the version the
// collection was last reconciled to and fail with [ErrStaleModel] on
// mismatch; change sinks discard events at or below the reconciled version.
//
// Create instances with [New].
type Collection struct {
	model          Model
	factory        wrap.Factory
	emit           Emitter
	lines          []splitLine
	prefixSums     *prefixsum.Computer
	hiddenRangeIDs []string

	validVersionID int

	tabSize                 int
	wrappingColumn          int
	columnsForFullWidthChar int
	wrappingIndent          wrap.Indent
}

// Option configures [Collection] creation.
type Option func(*Collection)

// WithTabSize sets the tab-stop width in columns (default: 4).
func WithTabSize(tabSize int) Option {
	return func(c *Collection) {
		c.tabSize = tabSize
	}
}

// WithWrappingColumn sets the column at which lines wrap. Values < 1
// disable wrapping (the default).
func WithWrappingColumn(wrappingColumn int) Option {
	return func(c *Collection) {
		c.wrappingColumn = wrappingColumn
	}
}

// WithColumnsForFullWidthChar sets the column cost charged for full-width
// characters (default: 2).
func WithColumnsForFullWidthChar(columns int) Option {
	return func(c *Collection) {
		c.columnsForFullWidthChar = columns
	}
}

// WithWrappingIndent sets the hanging-indent policy for continuation rows
// (default: [wrap.IndentNone]).
func WithWrappingIndent(indent wrap.Indent) Option {
	return func(c *Collection) {
		c.wrappingIndent = indent
	}
}

// WithEmitter sets the [Emitter] receiving view [Event]s. Without one,
// events are discarded.
func WithEmitter(emit Emitter) Option {
	return func(c *Collection) {
		c.emit = emit
	}
}

// New creates a new [Collection] over the given document, reconciled to the
// document's current version. All lines start visible.
func New(model Model, factory wrap.Factory, opts ...Option) *Collection {
	c := &Collection{
		model:                   model,
		factory:                 factory,
		emit:                    func(Event) {},
		tabSize:                 4,
		wrappingColumn:          -1,
		columnsForFullWidthChar: 2,
		wrappingIndent:          wrap.IndentNone,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.constructLines()
	c.validVersionID = model.VersionID()

	return c
}

// Dispose releases the collection's decoration handles. The collection must
// not be used afterwards.
func (c *Collection) Dispose() {
	c.hiddenRangeIDs = c.model.DeltaDecorations(c.hiddenRangeIDs, nil)
}

// constructLines rebuilds every split line from the document. Visibility
// resets to true; the host re-applies hidden areas after the flush it
// observes.
func (c *Collection) constructLines() {
	linesContent := c.model.LinesContent()

	c.lines = make([]splitLine, len(linesContent))
	counts := make([]int, len(linesContent))

	for i, text := range linesContent {
		line := c.createSplitLine(text, true)
		c.lines[i] = line
		counts[i] = line.outputLineCount()
	}

	c.prefixSums = prefixsum.New(counts)
}

func (c *Collection) createSplitLine(text string, visible bool) splitLine {
	m := c.factory.CreateLineMapping(text, c.tabSize, c.wrappingColumn, c.columnsForFullWidthChar, c.wrappingIndent)

	return newSplitLine(m, visible)
}

// SetTabSize updates the tab-stop width. Returns false without doing any
// work when the value is unchanged; otherwise every line is rebuilt,
// visibility resets, and a [FlushedEvent] is published when emit is true.
func (c *Collection) SetTabSize(tabSize int, emit bool) bool {
	if c.tabSize == tabSize {
		return false
	}

	c.tabSize = tabSize
	c.rebuild(emit)

	return true
}

// SetWrappingColumn updates the wrapping column and full-width-char cost
// together. See [Collection.SetTabSize] for rebuild semantics.
func (c *Collection) SetWrappingColumn(wrappingColumn, columnsForFullWidthChar int, emit bool) bool {
	if c.wrappingColumn == wrappingColumn && c.columnsForFullWidthChar == columnsForFullWidthChar {
		return false
	}

	c.wrappingColumn = wrappingColumn
	c.columnsForFullWidthChar = columnsForFullWidthChar
	c.rebuild(emit)

	return true
}

// SetWrappingIndent updates the hanging-indent policy. See
// [Collection.SetTabSize] for rebuild semantics.
func (c *Collection) SetWrappingIndent(indent wrap.Indent, emit bool) bool {
	if c.wrappingIndent == indent {
		return false
	}

	c.wrappingIndent = indent
	c.rebuild(emit)

	return true
}

func (c *Collection) rebuild(emit bool) {
	c.constructLines()

	if emit {
		c.emit(FlushedEvent{})
	}
}

// SetHiddenAreas replaces the set of hidden input-line ranges. Ranges are
// reduced to disjoint whole-line intervals (columns are ignored), anchored
// in the document's decoration store so they track subsequent edits, and
// applied to every line in one pass. One [FlushedEvent] is published after
// the state is fully updated when emit is true.
func (c *Collection) SetHiddenAreas(ranges []position.Range, emit bool) {
	merged := position.NormalizeLineRanges(ranges)

	validated := make([]position.Range, len(merged))
	for i, r := range merged {
		validated[i] = c.model.ValidateRange(r)
	}

	c.hiddenRangeIDs = c.model.DeltaDecorations(c.hiddenRangeIDs, validated)

	cursor := 0
	for i, line := range c.lines {
		lineNumber := i + 1

		for cursor < len(validated) && validated[cursor].End.Line < lineNumber {
			cursor++
		}

		hidden := cursor < len(validated) && validated[cursor].ContainsLine(lineNumber)
		if line.isVisible() == hidden {
			line.setVisible(!hidden)
			c.prefixSums.ChangeValue(i, line.outputLineCount())
		}
	}

	if emit {
		c.emit(FlushedEvent{})
	}
}

// hiddenAt reports whether the given input line currently falls in a hidden
// range, per the decoration store's view of the ranges.
func (c *Collection) hiddenAt(lineNumber int) bool {
	for _, id := range c.hiddenRangeIDs {
		r, ok := c.model.DecorationRange(id)
		if ok && r.ContainsLine(lineNumber) {
			return true
		}
	}

	return false
}

// OnModelFlushed reconciles the collection to a rebuilt document.
// Events at or below the reconciled version are discarded.
func (c *Collection) OnModelFlushed(versionID int) {
	if versionID <= c.validVersionID {
		return
	}

	c.constructLines()
	c.validVersionID = versionID

	c.emit(FlushedEvent{})
}

// OnModelLinesDeleted reconciles the collection with the deletion of the
// inclusive input-line range [fromLineNumber, toLineNumber] and publishes
// the corresponding output-line deletion.
func (c *Collection) OnModelLinesDeleted(versionID, fromLineNumber, toLineNumber int) {
	if versionID <= c.validVersionID {
		return
	}

	outputFrom := 1
	if fromLineNumber > 1 {
		outputFrom = c.prefixSums.AccumulatedValue(fromLineNumber-2) + 1
	}

	outputTo := c.prefixSums.AccumulatedValue(toLineNumber - 1)

	c.lines = slices.Delete(c.lines, fromLineNumber-1, toLineNumber)
	c.prefixSums.RemoveValues(fromLineNumber-1, toLineNumber-fromLineNumber+1)
	c.validVersionID = versionID

	c.emit(LinesDeletedEvent{FromLineNumber: outputFrom, ToLineNumber: outputTo})
}

// OnModelLinesInserted reconciles the collection with the insertion of the
// given line texts starting at input line fromLineNumber. Lines inserted
// inside a hidden range start hidden; insertions contributing no output
// lines publish nothing.
func (c *Collection) OnModelLinesInserted(versionID, fromLineNumber, _ int, texts []string) {
	if versionID <= c.validVersionID {
		return
	}

	hidden := c.hiddenAt(fromLineNumber)

	inserted := make([]splitLine, len(texts))
	counts := make([]int, len(texts))
	total := 0

	for i, text := range texts {
		line := c.createSplitLine(text, !hidden)
		inserted[i] = line
		counts[i] = line.outputLineCount()
		total += counts[i]
	}

	c.lines = slices.Insert(c.lines, fromLineNumber-1, inserted...)
	c.prefixSums.InsertValues(fromLineNumber-1, counts)
	c.validVersionID = versionID

	if total == 0 {
		return
	}

	outputFrom := 1
	if fromLineNumber > 1 {
		outputFrom = c.prefixSums.AccumulatedValue(fromLineNumber-2) + 1
	}

	c.emit(LinesInsertedEvent{FromLineNumber: outputFrom, ToLineNumber: outputFrom + total - 1})
}

// OnModelLineChanged reconciles the collection with a text change on one
// input line, preserving the line's visibility. It publishes one
// [LineChangedEvent] per surviving output row, then an insertion or
// deletion for the difference. The result reports whether the line's
// output row count changed; stale events yield false.
func (c *Collection) OnModelLineChanged(versionID, lineNumber int, newText string) bool {
	if versionID <= c.validVersionID {
		return false
	}

	idx := lineNumber - 1

	old := c.lines[idx]
	line := c.createSplitLine(newText, old.isVisible())
	c.lines[idx] = line

	oldCount := old.outputLineCount()
	newCount := line.outputLineCount()

	c.prefixSums.ChangeValue(idx, newCount)
	c.validVersionID = versionID

	outputFrom := 1
	if lineNumber > 1 {
		outputFrom = c.prefixSums.AccumulatedValue(lineNumber-2) + 1
	}

	changed := min(oldCount, newCount)
	for i := range changed {
		c.emit(LineChangedEvent{LineNumber: outputFrom + i})
	}

	switch {
	case oldCount == newCount:
		return false
	case oldCount > newCount:
		c.emit(LinesDeletedEvent{
			FromLineNumber: outputFrom + newCount,
			ToLineNumber:   outputFrom + oldCount - 1,
		})
	default:
		c.emit(LinesInsertedEvent{
			FromLineNumber: outputFrom + oldCount,
			ToLineNumber:   outputFrom + newCount - 1,
		})
	}

	return true
}

// checkVersion gates queries on freshness.
func (c *Collection) checkVersion() error {
	if c.model.VersionID() != c.validVersionID {
		return ErrStaleModel
	}

	return nil
}

// locate maps a 1-indexed output line number to the owning split line's
// index and the 0-indexed row within it.
func (c *Collection) locate(outputLineNumber int) (lineIndex, remainder int, err error) {
	if err := c.checkVersion(); err != nil {
		return 0, 0, err
	}

	if outputLineNumber < 1 || outputLineNumber > c.prefixSums.TotalValue() {
		return 0, 0, ErrOutOfRange
	}

	lineIndex, remainder = c.prefixSums.IndexOf(outputLineNumber - 1)

	return lineIndex, remainder, nil
}

// InputLineCount returns the number of input lines.
func (c *Collection) InputLineCount() (int, error) {
	if err := c.checkVersion(); err != nil {
		return 0, err
	}

	return len(c.lines), nil
}

// OutputLineCount returns the number of output lines.
func (c *Collection) OutputLineCount() (int, error) {
	if err := c.checkVersion(); err != nil {
		return 0, err
	}

	return c.prefixSums.TotalValue(), nil
}

// OutputLineContent returns the rendered content of the given output line,
// including any hanging indent.
func (c *Collection) OutputLineContent(outputLineNumber int) (string, error) {
	lineIndex, remainder, err := c.locate(outputLineNumber)
	if err != nil {
		return "", err
	}

	return c.lines[lineIndex].outputLineContent(c.model, lineIndex+1, remainder), nil
}

// OutputLineMinColumn returns the first valid column on the given output
// line: 1 on first rows, one past the hanging indent on continuations.
func (c *Collection) OutputLineMinColumn(outputLineNumber int) (int, error) {
	lineIndex, remainder, err := c.locate(outputLineNumber)
	if err != nil {
		return 0, err
	}

	return c.lines[lineIndex].outputLineMinColumn(c.model, lineIndex+1, remainder), nil
}

// OutputLineMaxColumn returns one past the last valid column on the given
// output line.
func (c *Collection) OutputLineMaxColumn(outputLineNumber int) (int, error) {
	lineIndex, remainder, err := c.locate(outputLineNumber)
	if err != nil {
		return 0, err
	}

	return c.lines[lineIndex].outputLineMaxColumn(c.model, lineIndex+1, remainder), nil
}

// OutputLineTokens returns the token stream restricted to the given output
// line, re-based so continuation-row tokens start after the hanging indent.
func (c *Collection) OutputLineTokens(outputLineNumber int, inaccurate bool) (tokens.Tokens, error) {
	lineIndex, remainder, err := c.locate(outputLineNumber)
	if err != nil {
		return nil, err
	}

	return c.lines[lineIndex].outputLineTokens(c.model, lineIndex+1, remainder, inaccurate), nil
}

// InputPositionOfOutputPosition translates an output position to the input
// position it renders. Output line numbers outside the current output
// bounds fail with [ErrOutOfRange]; columns inside a continuation row's
// indent clamp to the row's wrap start.
func (c *Collection) InputPositionOfOutputPosition(outputLineNumber, outputColumn int) (position.Position, error) {
	lineIndex, remainder, err := c.locate(outputLineNumber)
	if err != nil {
		return position.Position{}, err
	}

	column := c.lines[lineIndex].inputColumnOfOutputPosition(c.model, lineIndex+1, remainder, outputColumn)

	return position.New(lineIndex+1, column), nil
}

// OutputPositionOfInputPosition translates an input position to the output
// position rendering it. The input line number is clamped into the
// document. A hidden input line collapses to the end of the nearest
// preceding visible line; with no visible line before it, the translation
// is 1:1.
func (c *Collection) OutputPositionOfInputPosition(inputLineNumber, inputColumn int) (position.Position, error) {
	if err := c.checkVersion(); err != nil {
		return position.Position{}, err
	}

	inputLineNumber = min(max(inputLineNumber, 1), len(c.lines))

	lineIndex := inputLineNumber - 1
	column := inputColumn

	if !c.lines[lineIndex].isVisible() {
		for lineIndex >= 0 && !c.lines[lineIndex].isVisible() {
			lineIndex--
		}

		if lineIndex < 0 {
			return position.New(1, 1), nil
		}

		column = c.model.LineMaxColumn(lineIndex + 1)
	}

	deltaLineNumber := 1
	if lineIndex > 0 {
		deltaLineNumber += c.prefixSums.AccumulatedValue(lineIndex - 1)
	}

	return c.lines[lineIndex].outputPositionOfInputPosition(deltaLineNumber, column), nil
}
