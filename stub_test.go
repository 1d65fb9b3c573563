package viewlines_test

import (
	"go.jacobcolvin.com/viewlines/tokens"
	"go.jacobcolvin.com/viewlines/wrap"
)

// stubFactory wraps every line at fixed input offsets with a fixed indent,
// keeping wrap arithmetic exact in tests.
type stubFactory struct {
	indent string
	breaks []int
}

func (f stubFactory) CreateLineMapping(text string, _, _, _ int, _ wrap.Indent) wrap.LineMapping {
	if len(f.breaks) < 2 {
		return nil
	}

	return &stubMapping{
		indent:       f.indent,
		startOffsets: f.breaks,
		lineLength:   len([]rune(text)),
	}
}

type stubMapping struct {
	indent       string
	startOffsets []int
	lineLength   int
}

func (m *stubMapping) OutputLineCount() int {
	return len(m.startOffsets)
}

func (m *stubMapping) WrappedLinesIndent() string {
	return m.indent
}

func (m *stubMapping) InputOffsetOfOutputPosition(outputLineIndex, outputOffset int) int {
	outputLineIndex = min(max(outputLineIndex, 0), len(m.startOffsets)-1)

	end := m.lineLength
	if outputLineIndex+1 < len(m.startOffsets) {
		end = m.startOffsets[outputLineIndex+1]
	}

	return min(m.startOffsets[outputLineIndex]+max(outputOffset, 0), end)
}

func (m *stubMapping) OutputPositionOfInputOffset(offset int) wrap.OutputPosition {
	offset = min(max(offset, 0), m.lineLength)

	i := len(m.startOffsets) - 1
	for i > 0 && m.startOffsets[i] > offset {
		i--
	}

	return wrap.OutputPosition{LineIndex: i, Offset: offset - m.startOffsets[i]}
}

// fixedTokenizer emits three runs per line at offsets 0, 2, and 6.
type fixedTokenizer struct{}

func (fixedTokenizer) Tokenize(content string) []tokens.Tokens {
	lineCount := 1
	for _, r := range content {
		if r == '\n' {
			lineCount++
		}
	}

	result := make([]tokens.Tokens, lineCount)
	for i := range result {
		result[i] = tokens.Tokens{
			{Start: 0, Type: "A"},
			{Start: 2, Type: "B"},
			{Start: 6, Type: "C"},
		}
	}

	return result
}
