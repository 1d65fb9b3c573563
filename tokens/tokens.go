package tokens

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies the category of a token, e.g. "Keyword" or
// "LiteralString". The empty type is valid and denotes unstyled text.
type Type string

// Token marks the start of a run of uniformly-typed text on one line.
// Start is the 0-indexed rune offset where the run begins; the run extends
// to the next token's Start within the same [Tokens].
type Token struct {
	Type  Type
	Start int
}

// Tokens is a sequence of [Token]s for a single line, ordered by
// strictly-increasing Start.
type Tokens []Token

// String returns a compact debugging representation.
func (t Tokens) String() string {
	var sb strings.Builder
	for i, tk := range t {
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprintf(&sb, "%d:%s", tk.Start, tk.Type)
	}

	return sb.String()
}

// TypeAt returns the [Type] of the token covering the given 0-indexed rune
// offset. Offsets before the first token, or on an empty stream, yield the
// empty type.
func (t Tokens) TypeAt(offset int) Type {
	i := sort.Search(len(t), func(j int) bool {
		return t[j].Start > offset
	})
	if i == 0 {
		return ""
	}

	return t[i-1].Type
}

// Slice restricts the stream to the half-open rune range [startOff, endOff)
// of the underlying line and shifts the surviving tokens by delta:
//
//   - Tokens whose run lies entirely outside the range are dropped.
//   - A token straddling the start boundary is clipped: its start becomes
//     startOff.
//   - Surviving starts are re-based so the range begins at delta, making the
//     result apply to an output row whose first content column is delta+1.
//
// A delta of 0 with the full line range yields a copy of the stream.
func (t Tokens) Slice(startOff, endOff, delta int) Tokens {
	if len(t) == 0 || endOff <= startOff {
		return nil
	}

	var result Tokens

	for i, tk := range t {
		if tk.Start >= endOff {
			break
		}

		// The run ends where the next token starts.
		if i+1 < len(t) && t[i+1].Start <= startOff {
			continue
		}

		start := max(tk.Start, startOff)
		result = append(result, Token{
			Type:  tk.Type,
			Start: start - startOff + delta,
		})
	}

	return result
}
