package textmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/viewlines/position"
	"go.jacobcolvin.com/viewlines/textmodel"
	"go.jacobcolvin.com/viewlines/tokens"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content   string
		wantLines []string
	}{
		"empty content yields one empty line": {
			content:   "",
			wantLines: []string{""},
		},
		"single line": {
			content:   "hello",
			wantLines: []string{"hello"},
		},
		"multiple lines": {
			content:   "a\nbb\nccc",
			wantLines: []string{"a", "bb", "ccc"},
		},
		"trailing newline yields trailing empty line": {
			content:   "a\n",
			wantLines: []string{"a", ""},
		},
		"crlf normalized": {
			content:   "a\r\nb",
			wantLines: []string{"a", "b"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := textmodel.NewBuffer(tc.content)
			assert.Equal(t, tc.wantLines, b.LinesContent())
			assert.Equal(t, 1, b.VersionID())
		})
	}
}

func TestBuffer_Columns(t *testing.T) {
	t.Parallel()

	b := textmodel.NewBuffer("héllo\n世界")

	assert.Equal(t, 1, b.LineMinColumn(1))
	assert.Equal(t, 6, b.LineMaxColumn(1)) // 5 runes.
	assert.Equal(t, 3, b.LineMaxColumn(2)) // 2 runes.
}

func TestBuffer_Mutations(t *testing.T) {
	t.Parallel()

	t.Run("set line content bumps version", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb")
		v := b.SetLineContent(2, "B")

		assert.Equal(t, 2, v)
		assert.Equal(t, "B", b.LineContent(2))
	})

	t.Run("insert lines", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nd")
		b.InsertLines(2, "b", "c")

		assert.Equal(t, []string{"a", "b", "c", "d"}, b.LinesContent())
	})

	t.Run("append via insert past end", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a")
		b.InsertLines(2, "b")

		assert.Equal(t, []string{"a", "b"}, b.LinesContent())
	})

	t.Run("delete lines", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd")
		b.DeleteLines(2, 3)

		assert.Equal(t, []string{"a", "d"}, b.LinesContent())
	})

	t.Run("delete all leaves one empty line", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb")
		b.DeleteLines(1, 2)

		assert.Equal(t, []string{""}, b.LinesContent())
	})

	t.Run("flush replaces content", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a")
		v := b.Flush("x\ny")

		assert.Equal(t, 2, v)
		assert.Equal(t, []string{"x", "y"}, b.LinesContent())
	})
}

func TestBuffer_ValidateRange(t *testing.T) {
	t.Parallel()

	b := textmodel.NewBuffer("aaa\nbb")

	tcs := map[string]struct {
		input position.Range
		want  position.Range
	}{
		"in bounds unchanged": {
			input: position.NewRange(position.New(1, 1), position.New(2, 2)),
			want:  position.NewRange(position.New(1, 1), position.New(2, 2)),
		},
		"line clamped": {
			input: position.NewRange(position.New(0, 1), position.New(9, 1)),
			want:  position.NewRange(position.New(1, 1), position.New(2, 1)),
		},
		"column clamped to line max": {
			input: position.NewRange(position.New(1, 99), position.New(2, 99)),
			want:  position.NewRange(position.New(1, 4), position.New(2, 3)),
		},
		"inverted collapses to start": {
			input: position.NewRange(position.New(2, 2), position.New(1, 1)),
			want:  position.NewRange(position.New(2, 2), position.New(2, 2)),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, b.ValidateRange(tc.input))
		})
	}
}

func TestBuffer_Decorations(t *testing.T) {
	t.Parallel()

	newRange := func(from, to int) position.Range {
		return position.NewRange(position.New(from, 1), position.New(to, 1))
	}

	t.Run("delta allocates and removes", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")

		ids := b.DeltaDecorations(nil, []position.Range{newRange(2, 3)})
		require.Len(t, ids, 1)

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 2, r.Start.Line)
		assert.Equal(t, 3, r.End.Line)

		ids2 := b.DeltaDecorations(ids, nil)
		assert.Nil(t, ids2)

		_, ok = b.DecorationRange(ids[0])
		assert.False(t, ok)
	})

	t.Run("insert above shifts", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(3, 4)})

		b.InsertLines(1, "x", "y")

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 5, r.Start.Line)
		assert.Equal(t, 6, r.End.Line)
	})

	t.Run("insert inside grows", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(2, 4)})

		b.InsertLines(3, "x")

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 2, r.Start.Line)
		assert.Equal(t, 5, r.End.Line)
	})

	t.Run("insert at start edge shifts rather than grows", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(2, 3)})

		b.InsertLines(2, "x")

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 3, r.Start.Line)
		assert.Equal(t, 4, r.End.Line)
	})

	t.Run("insert below leaves untouched", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(1, 2)})

		b.InsertLines(4, "x")

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 1, r.Start.Line)
		assert.Equal(t, 2, r.End.Line)
	})

	t.Run("delete above shifts up", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(4, 5)})

		b.DeleteLines(1, 2)

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 2, r.Start.Line)
		assert.Equal(t, 3, r.End.Line)
	})

	t.Run("delete overlap clamps", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(3, 5)})

		b.DeleteLines(4, 5)

		r, ok := b.DecorationRange(ids[0])
		require.True(t, ok)
		assert.Equal(t, 3, r.Start.Line)
		assert.Equal(t, 3, r.End.Line)
	})

	t.Run("delete containing range removes decoration", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb\nc\nd\ne")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(3, 4)})

		b.DeleteLines(2, 5)

		_, ok := b.DecorationRange(ids[0])
		assert.False(t, ok)
	})

	t.Run("flush discards decorations", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("a\nb")
		ids := b.DeltaDecorations(nil, []position.Range{newRange(1, 2)})

		b.Flush("z")

		_, ok := b.DecorationRange(ids[0])
		assert.False(t, ok)
	})
}

type staticTokenizer struct {
	result []tokens.Tokens
	calls  int
}

func (s *staticTokenizer) Tokenize(string) []tokens.Tokens {
	s.calls++

	return s.result
}

func TestBuffer_LineTokens(t *testing.T) {
	t.Parallel()

	t.Run("no tokenizer yields one untyped token", func(t *testing.T) {
		t.Parallel()

		b := textmodel.NewBuffer("abc")
		assert.Equal(t, tokens.Tokens{{Start: 0}}, b.LineTokens(1, false))
	})

	t.Run("tokenizer results cached until mutation", func(t *testing.T) {
		t.Parallel()

		tk := &staticTokenizer{result: []tokens.Tokens{{{Start: 0, Type: "A"}}, {{Start: 0, Type: "B"}}}}
		b := textmodel.NewBuffer("a\nb", textmodel.WithTokenizer(tk))

		assert.Equal(t, tokens.Tokens{{Start: 0, Type: "A"}}, b.LineTokens(1, false))
		assert.Equal(t, tokens.Tokens{{Start: 0, Type: "B"}}, b.LineTokens(2, false))
		assert.Equal(t, 1, tk.calls)

		b.SetLineContent(1, "x")
		b.LineTokens(1, false)
		assert.Equal(t, 2, tk.calls)
	})

	t.Run("inaccurate returns stale tokens without retokenizing", func(t *testing.T) {
		t.Parallel()

		tk := &staticTokenizer{result: []tokens.Tokens{{{Start: 0, Type: "A"}}}}
		b := textmodel.NewBuffer("a", textmodel.WithTokenizer(tk))

		b.LineTokens(1, false)
		require.Equal(t, 1, tk.calls)

		b.SetLineContent(1, "changed")

		assert.Equal(t, tokens.Tokens{{Start: 0, Type: "A"}}, b.LineTokens(1, true))
		assert.Equal(t, 1, tk.calls)
	})
}
