package drawmatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	refs := map[string]Drawing{
		"circle": {{Path: circlePath(Pt(100, 100), 80)}},
		"line":   {{Path: Path{MoveTo(Pt(10, 10)), LineTo(Pt(190, 190))}}},
		"empty":  {},
		"zigzag": {{Path: Path{
			MoveTo(Pt(0, 0)),
			LineTo(Pt(50, 100)),
			LineTo(Pt(100, 0)),
			LineTo(Pt(150, 100)),
		}}},
	}

	for _, workers := range []int{0, 1, 3, 16} {
		opts := DefaultOptions()
		opts.Workers = workers

		got, err := Rank(context.Background(), diagonal(), refs, opts)
		require.NoError(t, err)
		require.Len(t, got, len(refs))

		assert.Equal(t, "line", got[0].Name)
		assert.Equal(t, "empty", got[len(got)-1].Name)
		assert.Equal(t, Unbounded, got[len(got)-1].Distance)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
		}
		for _, m := range got {
			assert.Equal(t, Compare(diagonal(), refs[m.Name], opts), m.Distance, m.Name)
		}
	}
}

func TestRankTiesOrderedByName(t *testing.T) {
	ref := Drawing{{Path: circlePath(Pt(0, 0), 50)}}
	refs := map[string]Drawing{"b": ref, "c": ref, "a": ref}

	got, err := Rank(context.Background(), ref, refs, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []Match{{"a", 0}, {"b", 0}, {"c", 0}}, got)
}

func TestRankEmptyDrawing(t *testing.T) {
	refs := map[string]Drawing{"circle": {{Path: circlePath(Pt(0, 0), 50)}}}

	got, err := Rank(context.Background(), nil, refs, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []Match{{"circle", Unbounded}}, got)

	got, err = Rank(context.Background(), diagonal(), nil, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRankCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	refs := map[string]Drawing{"circle": {{Path: circlePath(Pt(0, 0), 50)}}}
	_, err := Rank(ctx, diagonal(), refs, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
