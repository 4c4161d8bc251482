package scanner

import (
	"github.com/goran-ethernal/ChainScanner/pkg/store"
)

// RunReport summarizes one scanner run.
type RunReport struct {
	Scanner string
	RunID   string

	// First and Ceiling are the resolved range, LastBlock the last completed block (0 if none).
	First     uint64
	Ceiling   uint64
	LastBlock uint64

	// WriteReport accumulates the outcome of every window's write, with a sample of the errors.
	store.WriteReport

	Windows        int
	Logs           int
	DecodeFailures int
	MapFailures    int
	Skipped        int
	Duplicates     int
}

// Degraded reports whether any record failed to persist for a reason other than a key conflict.
func (r RunReport) Degraded() bool {
	return r.OtherErrors > 0
}
