package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/viewlines/position"
)

func TestPosition_String(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pos  position.Position
		want string
	}{
		"origin": {
			pos:  position.New(1, 1),
			want: "1:1",
		},
		"line 5 col 15": {
			pos:  position.New(5, 15),
			want: "5:15",
		},
		"large values": {
			pos:  position.New(1000, 500),
			want: "1000:500",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.pos.String()
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPosition_Before(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		p     position.Position
		other position.Position
		want  bool
	}{
		"earlier line": {
			p:     position.New(1, 10),
			other: position.New(2, 1),
			want:  true,
		},
		"later line": {
			p:     position.New(3, 1),
			other: position.New(2, 10),
			want:  false,
		},
		"same line earlier column": {
			p:     position.New(2, 3),
			other: position.New(2, 4),
			want:  true,
		},
		"same position": {
			p:     position.New(2, 3),
			other: position.New(2, 3),
			want:  false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.p.Before(tc.other)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRange_ContainsLine(t *testing.T) {
	t.Parallel()

	r := position.NewRange(position.New(2, 1), position.New(4, 1))

	tcs := map[string]struct {
		line int
		want bool
	}{
		"before start":    {line: 1, want: false},
		"at start":        {line: 2, want: true},
		"inside":          {line: 3, want: true},
		"at end":          {line: 4, want: true},
		"after end":       {line: 5, want: false},
		"far after":       {line: 100, want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, r.ContainsLine(tc.line))
			assert.Equal(t, tc.want, r.ContainsPosition(position.New(tc.line, 1)))
		})
	}
}

func TestRange_TouchesLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		r     position.Range
		other position.Range
		want  bool
	}{
		"identical": {
			r:     position.NewRange(position.New(2, 1), position.New(4, 1)),
			other: position.NewRange(position.New(2, 1), position.New(4, 1)),
			want:  true,
		},
		"overlapping": {
			r:     position.NewRange(position.New(2, 1), position.New(4, 1)),
			other: position.NewRange(position.New(3, 1), position.New(6, 1)),
			want:  true,
		},
		"adjacent": {
			r:     position.NewRange(position.New(2, 1), position.New(4, 1)),
			other: position.NewRange(position.New(5, 1), position.New(6, 1)),
			want:  true,
		},
		"gap of one line": {
			r:     position.NewRange(position.New(2, 1), position.New(4, 1)),
			other: position.NewRange(position.New(6, 1), position.New(7, 1)),
			want:  false,
		},
		"disjoint before": {
			r:     position.NewRange(position.New(10, 1), position.New(12, 1)),
			other: position.NewRange(position.New(2, 1), position.New(4, 1)),
			want:  false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.r.TouchesLines(tc.other))
		})
	}
}

func TestNormalizeLineRanges(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input []position.Range
		want  []position.Range
	}{
		"empty": {
			input: nil,
			want:  nil,
		},
		"single range": {
			input: []position.Range{
				position.NewRange(position.New(2, 5), position.New(3, 7)),
			},
			want: []position.Range{
				position.NewRange(position.New(2, 1), position.New(3, 1)),
			},
		},
		"columns discarded": {
			input: []position.Range{
				position.NewRange(position.New(1, 99), position.New(1, 100)),
			},
			want: []position.Range{
				position.NewRange(position.New(1, 1), position.New(1, 1)),
			},
		},
		"unsorted input is sorted": {
			input: []position.Range{
				position.NewRange(position.New(7, 1), position.New(8, 1)),
				position.NewRange(position.New(1, 1), position.New(2, 1)),
			},
			want: []position.Range{
				position.NewRange(position.New(1, 1), position.New(2, 1)),
				position.NewRange(position.New(7, 1), position.New(8, 1)),
			},
		},
		"overlapping ranges merge": {
			input: []position.Range{
				position.NewRange(position.New(1, 1), position.New(4, 1)),
				position.NewRange(position.New(3, 1), position.New(6, 1)),
			},
			want: []position.Range{
				position.NewRange(position.New(1, 1), position.New(6, 1)),
			},
		},
		"adjacent ranges merge": {
			input: []position.Range{
				position.NewRange(position.New(1, 1), position.New(2, 1)),
				position.NewRange(position.New(3, 1), position.New(4, 1)),
			},
			want: []position.Range{
				position.NewRange(position.New(1, 1), position.New(4, 1)),
			},
		},
		"contained range absorbed": {
			input: []position.Range{
				position.NewRange(position.New(1, 1), position.New(10, 1)),
				position.NewRange(position.New(3, 1), position.New(5, 1)),
			},
			want: []position.Range{
				position.NewRange(position.New(1, 1), position.New(10, 1)),
			},
		},
		"disjoint ranges preserved": {
			input: []position.Range{
				position.NewRange(position.New(1, 1), position.New(2, 1)),
				position.NewRange(position.New(5, 1), position.New(6, 1)),
				position.NewRange(position.New(9, 1), position.New(9, 1)),
			},
			want: []position.Range{
				position.NewRange(position.New(1, 1), position.New(2, 1)),
				position.NewRange(position.New(5, 1), position.New(6, 1)),
				position.NewRange(position.New(9, 1), position.New(9, 1)),
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := position.NormalizeLineRanges(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}
