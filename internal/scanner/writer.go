package scanner

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/pkg/store"
)

// BatchWriter performs the unordered bulk write of a pending batch.
type BatchWriter struct {
	store store.Store
	kind  record.Kind
	log   *logger.Logger
}

// NewBatchWriter creates a writer for one record kind.
func NewBatchWriter(st store.Store, kind record.Kind, log *logger.Logger) *BatchWriter {
	return &BatchWriter{store: st, kind: kind, log: log.WithComponent("batch-writer")}
}

// WriteAll writes the batch. An empty batch is a no-op.
// Conflicts are expected and only counted. Per-record failures are counted as other errors.
// When the whole call fails, the records the store did not account for are folded into
// OtherErrors and the error is returned.
func (w *BatchWriter) WriteAll(ctx context.Context, batch []record.Record) (store.WriteReport, error) {
	if len(batch) == 0 {
		return store.WriteReport{}, nil
	}

	report, err := w.store.InsertManyUnordered(ctx, w.kind, batch)
	if err != nil {
		if unaccounted := len(batch) - report.Total(); unaccounted > 0 {
			report.OtherErrors += unaccounted
		}
		if len(report.Errors) < store.MaxReportedErrors {
			report.Errors = append(report.Errors, err)
		}
		return report, fmt.Errorf("failed to write %d %s records: %w", len(batch), w.kind, err)
	}

	if report.Conflicts > 0 {
		w.log.Debugw("conflicting keys skipped", "kind", w.kind, "conflicts", report.Conflicts)
	}
	for _, e := range report.Errors {
		w.log.Errorw("record write failed", "kind", w.kind, "error", e)
	}

	return report, nil
}
