package scanner

import (
	"context"
	"fmt"
)

// Cursor is the scan position of one run. Current only moves forward and Ceiling is fixed at start.
type Cursor struct {
	Current uint64
	Ceiling uint64
}

// Done reports whether the whole range has been scanned.
func (c Cursor) Done() bool {
	return c.Current > c.Ceiling
}

// Window returns the next inclusive block range of at most size blocks.
func (c Cursor) Window(size uint64) (from, to uint64) {
	if size == 0 {
		size = 1
	}

	from = c.Current
	to = c.Ceiling
	if c.Ceiling-c.Current >= size {
		to = c.Current + size - 1
	}
	return from, to
}

// Advance moves the cursor past a completed window.
func (c *Cursor) Advance(windowEnd uint64) {
	if windowEnd+1 > c.Current {
		c.Current = windowEnd + 1
	}
}

// PersistedFunc returns the highest block already persisted, if any.
type PersistedFunc func(ctx context.Context) (block uint64, found bool, err error)

// HeadFunc returns the current chain head.
type HeadFunc func(ctx context.Context) (uint64, error)

// Resolve computes the run's cursor.
// An explicit start wins, otherwise scanning resumes right after the persisted block, or at genesis
// when nothing is persisted yet. An explicit end wins, otherwise the head is read once.
// A start beyond the ceiling is not an error: the resulting cursor is already Done.
func Resolve(
	ctx context.Context, explicitStart, explicitEnd, genesis uint64, persisted PersistedFunc, head HeadFunc,
) (Cursor, error) {
	var c Cursor

	switch {
	case explicitStart != 0:
		c.Current = explicitStart
	default:
		block, found, err := persisted(ctx)
		if err != nil {
			return Cursor{}, fmt.Errorf("failed to read persisted block: %w", err)
		}
		if found {
			c.Current = block + 1
		} else {
			c.Current = max(genesis, 1)
		}
	}

	if explicitEnd != 0 {
		c.Ceiling = explicitEnd
		return c, nil
	}

	h, err := head(ctx)
	if err != nil {
		return Cursor{}, fmt.Errorf("failed to read chain head: %w", err)
	}
	c.Ceiling = h

	return c, nil
}
