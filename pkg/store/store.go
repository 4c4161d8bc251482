package store

import (
	"context"
	"errors"

	"github.com/goran-ethernal/ChainScanner/internal/record"
)

// ErrUnknownKind is returned when an operation names a kind the store has no table for.
var ErrUnknownKind = errors.New("unknown record kind")

// WriteReport is the outcome of an unordered bulk insert.
// Conflicts are records skipped because their key already exists.
// OtherErrors are records that failed for any other reason.
type WriteReport struct {
	Inserted    int
	Conflicts   int
	OtherErrors int

	// Errors holds a sample of the non-conflict failures.
	Errors []error
}

// Add merges another report into r.
func (r *WriteReport) Add(o WriteReport) {
	r.Inserted += o.Inserted
	r.Conflicts += o.Conflicts
	r.OtherErrors += o.OtherErrors

	room := MaxReportedErrors - len(r.Errors)
	if room > 0 {
		r.Errors = append(r.Errors, o.Errors[:min(room, len(o.Errors))]...)
	}
}

// Total returns the number of records the report accounts for.
func (r WriteReport) Total() int {
	return r.Inserted + r.Conflicts + r.OtherErrors
}

// MaxReportedErrors bounds WriteReport.Errors.
const MaxReportedErrors = 10

// RecordError appends err to the report sample, respecting MaxReportedErrors.
func (r *WriteReport) RecordError(err error) {
	r.OtherErrors++
	if len(r.Errors) < MaxReportedErrors {
		r.Errors = append(r.Errors, err)
	}
}

// Store persists records, one table per kind, keyed by their idempotency key.
// It also keeps a resume cursor per scanner name.
type Store interface {
	// FindMaxBlock returns the highest block persisted for the kind. found is false for an empty table.
	FindMaxBlock(ctx context.Context, kind record.Kind) (block uint64, found bool, err error)

	// ExistingKeys returns the subset of keys already persisted for the kind.
	ExistingKeys(ctx context.Context, kind record.Kind, keys []string) (map[string]struct{}, error)

	// InsertManyUnordered inserts every record independently. A failing record never prevents the others.
	// The returned error is reserved for failures that prevented the whole call.
	InsertManyUnordered(ctx context.Context, kind record.Kind, records []record.Record) (WriteReport, error)

	// LoadCursor returns the last completed block of the named scanner.
	LoadCursor(ctx context.Context, name string) (block uint64, found bool, err error)

	// SaveCursor records the last completed block of the named scanner.
	// A block below the saved one leaves the cursor unchanged.
	SaveCursor(ctx context.Context, name string, block uint64) error

	// Close releases the underlying connections.
	Close() error
}
