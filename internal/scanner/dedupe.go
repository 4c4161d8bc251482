package scanner

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/pkg/store"
)

// DedupeBuffer accumulates the pending batch of one window and drops records whose key is already
// pending or already persisted. The store's uniqueness constraint stays the real guard: the
// existence check can race with other writers.
type DedupeBuffer struct {
	kind     record.Kind
	existing map[string]struct{}
	pending  map[string]struct{}
	batch    []record.Record
}

// NewDedupeBuffer returns an empty buffer for the kind.
func NewDedupeBuffer(kind record.Kind) *DedupeBuffer {
	return &DedupeBuffer{
		kind:     kind,
		existing: make(map[string]struct{}),
		pending:  make(map[string]struct{}),
	}
}

// Load asks the store, in a single call, which of the candidates' keys already exist.
// Candidates must be stamped.
func (b *DedupeBuffer) Load(ctx context.Context, st store.Store, candidates []record.Record) error {
	if len(candidates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, r := range candidates {
		k := r.GetKey()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	existing, err := st.ExistingKeys(ctx, b.kind, keys)
	if err != nil {
		return fmt.Errorf("failed to check %d keys: %w", len(keys), err)
	}

	for k := range existing {
		b.existing[k] = struct{}{}
	}
	return nil
}

// Admit appends r to the batch unless its key is pending or persisted.
func (b *DedupeBuffer) Admit(r record.Record) bool {
	k := r.GetKey()
	if _, ok := b.existing[k]; ok {
		return false
	}
	if _, ok := b.pending[k]; ok {
		return false
	}

	b.pending[k] = struct{}{}
	b.batch = append(b.batch, r)
	return true
}

// Batch returns the admitted records in admission order.
func (b *DedupeBuffer) Batch() []record.Record {
	return b.batch
}

// Reset clears the buffer for the next window.
func (b *DedupeBuffer) Reset() {
	clear(b.existing)
	clear(b.pending)
	b.batch = nil
}
