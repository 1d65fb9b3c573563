package wrap

import (
	"github.com/mattn/go-runewidth"
)

const (
	defaultBreakAfter  = " \t})]?|&,;"
	defaultBreakBefore = "{([+"

	fullWidth = 2
)

// MonospaceFactory computes hard-wrap line mappings for fixed-width-cell
// rendering.
//
// A break opportunity exists after any rune in the break-after set and
// before any rune in the break-before set. When a rune would push the row
// past the wrapping column, the row is broken at the latest opportunity in
// the row; if none exists, or if carrying the runes after that opportunity
// onto the next row would leave no room for the overflowing rune, the row
// is broken right before the overflowing rune.
//
// Create instances with [NewMonospaceFactory].
type MonospaceFactory struct {
	breakAfter  map[rune]struct{}
	breakBefore map[rune]struct{}
}

var _ Factory = (*MonospaceFactory)(nil)

// MonospaceOption configures a [MonospaceFactory].
type MonospaceOption func(*MonospaceFactory)

// WithBreakAfter sets the runes after which a row may break.
func WithBreakAfter(runes string) MonospaceOption {
	return func(f *MonospaceFactory) {
		f.breakAfter = runeSet(runes)
	}
}

// WithBreakBefore sets the runes before which a row may break.
func WithBreakBefore(runes string) MonospaceOption {
	return func(f *MonospaceFactory) {
		f.breakBefore = runeSet(runes)
	}
}

// NewMonospaceFactory creates a new [MonospaceFactory].
func NewMonospaceFactory(opts ...MonospaceOption) *MonospaceFactory {
	f := &MonospaceFactory{
		breakAfter:  runeSet(defaultBreakAfter),
		breakBefore: runeSet(defaultBreakBefore),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateLineMapping implements [Factory].
func (f *MonospaceFactory) CreateLineMapping(text string, tabSize, wrappingColumn, columnsForFullWidthChar int, wrappingIndent Indent) LineMapping {
	if wrappingColumn < 1 {
		return nil
	}

	tabSize = max(1, tabSize)
	columnsForFullWidthChar = max(1, columnsForFullWidthChar)

	runes := []rune(text)

	indent := continuationIndent(runes, wrappingIndent)
	indentWidth := visualWidth(indent, tabSize, columnsForFullWidthChar)

	// An indent eating more than half the row leaves too little room for
	// content; abandon it rather than thrash.
	if indentWidth > wrappingColumn/2 {
		indent = ""
		indentWidth = 0
	}

	startOffsets := []int{0}

	var (
		// Visual column within the current row, including the indent on
		// continuation rows.
		col int
		// Rune index where the current row may break, -1 when none.
		breakAt = -1
	)

	rowStart := func() int { return startOffsets[len(startOffsets)-1] }

	for i, r := range runes {
		if _, ok := f.breakBefore[r]; ok && i > rowStart() {
			breakAt = i
		}

		w := runeColumns(r, col, tabSize, columnsForFullWidthChar)

		if col+w > wrappingColumn && i > rowStart() {
			at := i
			if breakAt > rowStart() {
				at = breakAt
			}

			next := indentWidth + visualWidthAt(runes[at:i], indentWidth, tabSize, columnsForFullWidthChar)
			if at < i && next+w > wrappingColumn {
				// Breaking at the opportunity leaves no room for the current
				// rune; hard-break instead.
				at = i
				next = indentWidth
			}

			startOffsets = append(startOffsets, at)
			col = next
			breakAt = -1
		}

		col += runeColumns(r, col, tabSize, columnsForFullWidthChar)

		if _, ok := f.breakAfter[r]; ok {
			breakAt = i + 1
		}
	}

	if len(startOffsets) == 1 {
		return nil
	}

	return &mapping{
		indent:       indent,
		startOffsets: startOffsets,
		lineLength:   len(runes),
	}
}

// continuationIndent derives the hanging-indent prefix from the line's
// leading whitespace and the configured policy.
func continuationIndent(runes []rune, wrappingIndent Indent) string {
	if wrappingIndent == IndentNone {
		return ""
	}

	end := 0
	for end < len(runes) && (runes[end] == ' ' || runes[end] == '\t') {
		end++
	}

	indent := string(runes[:end])
	if wrappingIndent == IndentDeeper {
		indent += "\t"
	}

	return indent
}

// runeColumns returns the column cost of r rendered at the given column.
// Tabs advance to the next tab stop; full-width runes cost
// columnsForFullWidthChar; everything else costs one column.
func runeColumns(r rune, atColumn, tabSize, columnsForFullWidthChar int) int {
	switch {
	case r == '\t':
		return tabSize - atColumn%tabSize
	case runewidth.RuneWidth(r) == fullWidth:
		return columnsForFullWidthChar
	default:
		return 1
	}
}

// visualWidth returns the rendered width of s starting at column 0.
func visualWidth(s string, tabSize, columnsForFullWidthChar int) int {
	return visualWidthAt([]rune(s), 0, tabSize, columnsForFullWidthChar)
}

// visualWidthAt returns the rendered width of runes starting at the given
// column.
func visualWidthAt(runes []rune, atColumn, tabSize, columnsForFullWidthChar int) int {
	width := 0
	for _, r := range runes {
		width += runeColumns(r, atColumn+width, tabSize, columnsForFullWidthChar)
	}

	return width
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}

	return set
}
