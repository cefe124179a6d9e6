package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []Entry
		want []Entry
	}{
		{
			name: "empty",
			in:   nil,
			want: []Entry{},
		},
		{
			name: "single",
			in:   []Entry{{"alpha", 3}},
			want: []Entry{{"alpha", 3}},
		},
		{
			name: "already ascending",
			in:   []Entry{{"a", 1}, {"b", 2}, {"c", 3}},
			want: []Entry{{"a", 1}, {"b", 2}, {"c", 3}},
		},
		{
			name: "descending input",
			in:   []Entry{{"a", 3}, {"b", 2}, {"c", 1}},
			want: []Entry{{"c", 1}, {"b", 2}, {"a", 3}},
		},
		{
			name: "ties keep arrival order",
			in:   []Entry{{"x", 10}, {"y", 5}, {"z", 10}},
			want: []Entry{{"y", 5}, {"x", 10}, {"z", 10}},
		},
		{
			name: "all equal",
			in:   []Entry{{"a", 7}, {"b", 7}, {"c", 7}},
			want: []Entry{{"a", 7}, {"b", 7}, {"c", 7}},
		},
		{
			name: "negative scores sort below zero",
			in:   []Entry{{"a", 0}, {"b", -1}, {"c", 4}},
			want: []Entry{{"b", -1}, {"a", 0}, {"c", 4}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Rank(tt.in))
		})
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := []Entry{{"a", 3}, {"b", 1}, {"c", 2}}
	Rank(in)
	assert.Equal(t, []Entry{{"a", 3}, {"b", 1}, {"c", 2}}, in)
}

func TestReversed(t *testing.T) {
	t.Parallel()

	in := []Entry{{"y", 5}, {"x", 10}, {"z", 10}}
	got := Reversed(in)
	assert.Equal(t, []Entry{{"z", 10}, {"x", 10}, {"y", 5}}, got)
	// input untouched
	assert.Equal(t, []Entry{{"y", 5}, {"x", 10}, {"z", 10}}, in)
}

func TestBuildBoard(t *testing.T) {
	t.Parallel()

	totals := []Totals{
		{Username: "first", Total: 8, Science: 5, Media: 3},
		{Username: "second", Total: 12, Science: 2, Media: 10},
		{Username: "third", Total: 8, Science: 8, Media: 0},
	}

	board := BuildBoard(totals)

	require.Len(t, board.Total, 3)
	assert.Equal(t, []Entry{{"second", 12}, {"third", 8}, {"first", 8}}, board.Total)
	assert.Equal(t, []Entry{{"third", 8}, {"first", 5}, {"second", 2}}, board.Science)
	assert.Equal(t, []Entry{{"second", 10}, {"first", 3}, {"third", 0}}, board.Media)
}
