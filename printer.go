package viewlines

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"go.jacobcolvin.com/viewlines/tokens"
)

// Printer renders a [Collection]'s output lines as text, with optional
// token styling and an input-line-number gutter.
//
// Token styles are keyed by token-type prefix; the longest configured
// prefix wins. Continuation rows of a wrapped input line repeat the
// hanging indent unstyled and show a blank gutter, so line numbers count
// input lines, not output rows.
//
// Create instances with [NewPrinter].
type Printer struct {
	styles           map[tokens.Type]lipgloss.Style
	lineNumberStyle  lipgloss.Style
	lineNumbers      bool
	inaccurateTokens bool
}

// PrinterOption configures a [Printer].
type PrinterOption func(*Printer)

// WithStyles sets the token styles, keyed by token-type prefix.
func WithStyles(styles map[tokens.Type]lipgloss.Style) PrinterOption {
	return func(p *Printer) {
		p.styles = styles
	}
}

// WithLineNumbers enables the input-line-number gutter.
func WithLineNumbers() PrinterOption {
	return func(p *Printer) {
		p.lineNumbers = true
	}
}

// WithLineNumberStyle sets the style for the gutter.
//
//nolint:gocritic // hugeParam: Copying.
func WithLineNumberStyle(s lipgloss.Style) PrinterOption {
	return func(p *Printer) {
		p.lineNumberStyle = s
	}
}

// WithInaccurateTokens lets the document serve stale token streams rather
// than re-tokenizing during rendering.
func WithInaccurateTokens() PrinterOption {
	return func(p *Printer) {
		p.inaccurateTokens = true
	}
}

// NewPrinter creates a new [Printer].
func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Print renders every output line, joined with newlines.
func (p *Printer) Print(c *Collection) (string, error) {
	count, err := c.OutputLineCount()
	if err != nil {
		return "", err
	}

	return p.PrintSlice(c, 1, count)
}

// PrintSlice renders the inclusive output line range [fromLineNumber,
// toLineNumber], joined with newlines.
func (p *Printer) PrintSlice(c *Collection, fromLineNumber, toLineNumber int) (string, error) {
	var sb strings.Builder

	gutterWidth := 0
	if p.lineNumbers {
		inputCount, err := c.InputLineCount()
		if err != nil {
			return "", err
		}

		gutterWidth = len(fmt.Sprint(inputCount))
	}

	prevInputLine := 0

	for lineNumber := fromLineNumber; lineNumber <= toLineNumber; lineNumber++ {
		if lineNumber > fromLineNumber {
			sb.WriteByte('\n')
		}

		if p.lineNumbers {
			in, err := c.InputPositionOfOutputPosition(lineNumber, 1)
			if err != nil {
				return "", err
			}

			sb.WriteString(p.gutter(in.Line, in.Line == prevInputLine, gutterWidth))
			prevInputLine = in.Line
		}

		rendered, err := p.renderLine(c, lineNumber)
		if err != nil {
			return "", err
		}

		sb.WriteString(rendered)
	}

	return sb.String(), nil
}

// gutter renders one gutter cell: the input line number on an input line's
// first row, blanks on its continuation rows.
func (p *Printer) gutter(inputLine int, continuation bool, width int) string {
	cell := strings.Repeat(" ", width)
	if !continuation {
		cell = fmt.Sprintf("%*d", width, inputLine)
	}

	cell = p.lineNumberStyle.Render(cell)

	// Styled cells may render wider than their text; realign on the raw
	// cell width.
	if pad := width - ansi.StringWidth(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}

	return cell + " | "
}

func (p *Printer) renderLine(c *Collection, lineNumber int) (string, error) {
	content, err := c.OutputLineContent(lineNumber)
	if err != nil {
		return "", err
	}

	if len(p.styles) == 0 {
		return content, nil
	}

	lineTokens, err := c.OutputLineTokens(lineNumber, p.inaccurateTokens)
	if err != nil {
		return "", err
	}

	if len(lineTokens) == 0 {
		return content, nil
	}

	runes := []rune(content)

	var sb strings.Builder

	// Anything before the first token (the hanging indent) stays unstyled.
	prev := 0
	if len(lineTokens) > 0 {
		prev = min(lineTokens[0].Start, len(runes))
	}

	sb.WriteString(string(runes[:prev]))

	for i, tk := range lineTokens {
		start := min(tk.Start, len(runes))

		end := len(runes)
		if i+1 < len(lineTokens) {
			end = min(lineTokens[i+1].Start, len(runes))
		}

		if start >= end {
			continue
		}

		segment := string(runes[start:end])

		if style, ok := p.styleFor(tk.Type); ok {
			segment = style.Render(segment)
		}

		sb.WriteString(segment)
	}

	return sb.String(), nil
}

// styleFor resolves a token type to the style with the longest matching
// prefix.
func (p *Printer) styleFor(t tokens.Type) (lipgloss.Style, bool) {
	var (
		best    lipgloss.Style
		bestLen = -1
	)

	for prefix, style := range p.styles {
		if strings.HasPrefix(string(t), string(prefix)) && len(prefix) > bestLen {
			best = style
			bestLen = len(prefix)
		}
	}

	return best, bestLen >= 0
}
