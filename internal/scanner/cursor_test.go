package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func persistedAt(block uint64, found bool) PersistedFunc {
	return func(context.Context) (uint64, bool, error) { return block, found, nil }
}

func headAt(block uint64) HeadFunc {
	return func(context.Context) (uint64, error) { return block, nil }
}

func mustNotPersisted(t *testing.T) PersistedFunc {
	return func(context.Context) (uint64, bool, error) {
		t.Error("persisted block must not be read when a start block is given")
		return 0, false, nil
	}
}

func mustNotHead(t *testing.T) HeadFunc {
	return func(context.Context) (uint64, error) {
		t.Error("chain head must not be read when an end block is given")
		return 0, nil
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		start     uint64
		end       uint64
		genesis   uint64
		persisted PersistedFunc
		head      HeadFunc
		want      Cursor
		wantDone  bool
	}{
		{
			name:      "resume after persisted block up to head",
			persisted: persistedAt(100, true),
			head:      headAt(500),
			want:      Cursor{Current: 101, Ceiling: 500},
		},
		{
			name:      "explicit range ignores store and chain",
			start:     50,
			end:       200,
			persisted: mustNotPersisted(t),
			head:      mustNotHead(t),
			want:      Cursor{Current: 50, Ceiling: 200},
		},
		{
			name:      "nothing persisted starts at genesis",
			genesis:   2678592,
			persisted: persistedAt(0, false),
			head:      headAt(3000000),
			want:      Cursor{Current: 2678592, Ceiling: 3000000},
		},
		{
			name:      "zero genesis starts at block one",
			persisted: persistedAt(0, false),
			head:      headAt(10),
			want:      Cursor{Current: 1, Ceiling: 10},
		},
		{
			name:      "persisted block zero is a real position",
			persisted: persistedAt(0, true),
			head:      headAt(10),
			want:      Cursor{Current: 1, Ceiling: 10},
		},
		{
			name:      "explicit end with resumed start",
			end:       150,
			persisted: persistedAt(99, true),
			head:      mustNotHead(t),
			want:      Cursor{Current: 100, Ceiling: 150},
		},
		{
			name:      "start beyond ceiling is already done",
			start:     11,
			end:       10,
			persisted: mustNotPersisted(t),
			head:      mustNotHead(t),
			want:      Cursor{Current: 11, Ceiling: 10},
			wantDone:  true,
		},
		{
			name:      "caught up with head",
			persisted: persistedAt(500, true),
			head:      headAt(500),
			want:      Cursor{Current: 501, Ceiling: 500},
			wantDone:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(context.Background(), tt.start, tt.end, tt.genesis, tt.persisted, tt.head)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantDone, got.Done())
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Resolve(ctx, 0, 10, 1,
		func(context.Context) (uint64, bool, error) { return 0, false, errors.New("db down") },
		headAt(10))
	require.ErrorContains(t, err, "failed to read persisted block: db down")

	_, err = Resolve(ctx, 5, 0, 1, persistedAt(0, false),
		func(context.Context) (uint64, error) { return 0, errors.New("rpc down") })
	require.ErrorContains(t, err, "failed to read chain head: rpc down")
}

func TestCursor_Window(t *testing.T) {
	tests := []struct {
		name     string
		cursor   Cursor
		size     uint64
		wantFrom uint64
		wantTo   uint64
	}{
		{name: "single block window", cursor: Cursor{Current: 10, Ceiling: 20}, size: 1, wantFrom: 10, wantTo: 10},
		{name: "zero size means one block", cursor: Cursor{Current: 10, Ceiling: 20}, size: 0, wantFrom: 10, wantTo: 10},
		{name: "full window", cursor: Cursor{Current: 10, Ceiling: 20}, size: 5, wantFrom: 10, wantTo: 14},
		{name: "clamped to ceiling", cursor: Cursor{Current: 18, Ceiling: 20}, size: 5, wantFrom: 18, wantTo: 20},
		{name: "last block", cursor: Cursor{Current: 20, Ceiling: 20}, size: 100, wantFrom: 20, wantTo: 20},
		{
			name:     "no overflow near max",
			cursor:   Cursor{Current: ^uint64(0) - 1, Ceiling: ^uint64(0)},
			size:     10,
			wantFrom: ^uint64(0) - 1,
			wantTo:   ^uint64(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.cursor.Window(tt.size)
			require.Equal(t, tt.wantFrom, from)
			require.Equal(t, tt.wantTo, to)
		})
	}
}

func TestCursor_Advance(t *testing.T) {
	c := Cursor{Current: 10, Ceiling: 12}

	c.Advance(11)
	require.Equal(t, uint64(12), c.Current)
	require.False(t, c.Done())

	// never moves backwards
	c.Advance(5)
	require.Equal(t, uint64(12), c.Current)

	c.Advance(12)
	require.True(t, c.Done())
}
