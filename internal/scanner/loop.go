// Package scanner implements the resumable scan pipeline shared by every record kind:
// resolve the range, query a window, decode and map, dedupe, write, advance.
package scanner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
	icommon "github.com/goran-ethernal/ChainScanner/internal/common"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/metrics"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	"github.com/goran-ethernal/ChainScanner/pkg/rpc"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
	"github.com/goran-ethernal/ChainScanner/pkg/store"
	"github.com/google/uuid"
)

// Loop runs one scanner: a single strategy over a single block range, one window at a time.
type Loop struct {
	cfg      config.ScannerConfig
	strategy pkgscanner.Strategy
	src      rpc.Source
	store    store.Store
	writer   *BatchWriter
	buffer   *DedupeBuffer
	runID    string
	log      *logger.Logger

	sharedKind bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithSharedKind marks the loop's record kind as written by other configured scanners too.
// Such a loop resumes only from its own cursor.
func WithSharedKind(shared bool) Option {
	return func(l *Loop) {
		l.sharedKind = shared
	}
}

// New creates a scan loop. The strategy must be a LogStrategy or a BlockStrategy.
func New(
	cfg config.ScannerConfig,
	strategy pkgscanner.Strategy,
	src rpc.Source,
	st store.Store,
	log *logger.Logger,
	opts ...Option,
) (*Loop, error) {
	if strategy == nil {
		return nil, errors.New("strategy is required")
	}
	if src == nil {
		return nil, errors.New("source is required")
	}
	if st == nil {
		return nil, errors.New("store is required")
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	switch strategy.(type) {
	case pkgscanner.LogStrategy, pkgscanner.BlockStrategy:
	default:
		return nil, fmt.Errorf("scanner %s: unsupported strategy %T", cfg.Name, strategy)
	}

	runID := uuid.NewString()
	log = log.WithFields("scanner", cfg.Name, "kind", strategy.Kind(), "run_id", runID)

	l := &Loop{
		cfg:      cfg,
		strategy: strategy,
		src:      src,
		store:    st,
		writer:   NewBatchWriter(st, strategy.Kind(), log.WithComponent(icommon.ComponentBatchWriter)),
		buffer:   NewDedupeBuffer(strategy.Kind()),
		runID:    runID,
		log:      log,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// RunID returns the identifier attached to every log line of this run.
func (l *Loop) RunID() string {
	return l.runID
}

func (l *Loop) genesis() uint64 {
	if l.cfg.GenesisBlock != 0 {
		return l.cfg.GenesisBlock
	}
	return l.strategy.GenesisBlock()
}

// persisted is the resume position: the scanner's saved cursor. Without a cursor it falls back to
// the highest block holding a record of the kind, unless other scanners write that kind too.
func (l *Loop) persisted(ctx context.Context) (uint64, bool, error) {
	cursor, found, err := l.store.LoadCursor(ctx, l.cfg.Name)
	if err != nil || found {
		return cursor, found, err
	}
	if l.sharedKind {
		return 0, false, nil
	}

	return l.store.FindMaxBlock(ctx, l.strategy.Kind())
}

// Run scans from the resolved start to the ceiling fixed at start. It returns when the range is
// done, on the first window-level failure, or when ctx is cancelled between windows.
// The report is valid in every case.
func (l *Loop) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{Scanner: l.cfg.Name, RunID: l.runID}

	cur, err := Resolve(ctx, l.cfg.StartBlock, l.cfg.EndBlock, l.genesis(), l.persisted, l.src.CurrentHeight)
	if err != nil {
		return report, err
	}
	report.First, report.Ceiling = cur.Current, cur.Ceiling

	metrics.ScanCeilingSet(l.cfg.Name, cur.Ceiling)
	l.log.Infow("scan range resolved",
		"from", cur.Current,
		"to", cur.Ceiling,
		"window_size", l.cfg.WindowSize,
	)

	runStart := time.Now()
	for !cur.Done() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		from, to := cur.Window(l.cfg.WindowSize)
		if err := l.scanWindow(ctx, from, to, &report); err != nil {
			return report, fmt.Errorf("scanner %s window %d-%d: %w", l.cfg.Name, from, to, err)
		}

		if err := l.store.SaveCursor(ctx, l.cfg.Name, to); err != nil {
			return report, fmt.Errorf("scanner %s: failed to save cursor at %d: %w", l.cfg.Name, to, err)
		}

		cur.Advance(to)
		report.Windows++
		report.LastBlock = to

		metrics.LastScannedBlockSet(l.cfg.Name, to)
		metrics.BlocksScannedInc(l.cfg.Name, to-from+1)
		if elapsed := time.Since(runStart).Seconds(); elapsed > 0 {
			metrics.ScanRateLog(l.cfg.Name, float64(to-report.First+1)/elapsed)
		}
	}

	l.log.Infow("scan finished",
		"windows", report.Windows,
		"logs", report.Logs,
		"inserted", report.Inserted,
		"conflicts", report.Conflicts,
		"other_errors", report.OtherErrors,
		"decode_failures", report.DecodeFailures,
		"map_failures", report.MapFailures,
		"duration", time.Since(runStart),
	)

	return report, nil
}

// scanWindow collects, dedupes and writes the records of one window.
func (l *Loop) scanWindow(ctx context.Context, from, to uint64, report *RunReport) error {
	start := time.Now()
	defer func() { metrics.WindowDurationLog(l.cfg.Name, time.Since(start)) }()

	var (
		candidates []record.Record
		err        error
	)
	switch s := l.strategy.(type) {
	case pkgscanner.LogStrategy:
		candidates, err = l.collectLogs(ctx, s, from, to, report)
	case pkgscanner.BlockStrategy:
		candidates, err = l.collectBlocks(ctx, s, from, to)
	}
	if err != nil {
		return err
	}

	l.buffer.Reset()
	if err := l.buffer.Load(ctx, l.store, candidates); err != nil {
		return err
	}

	duplicates := 0
	for _, r := range candidates {
		if !l.buffer.Admit(r) {
			duplicates++
		}
	}
	report.Duplicates += duplicates
	metrics.RecordsSkippedInc(l.cfg.Name, metrics.SkipDuplicate, duplicates)

	wr, err := l.writer.WriteAll(ctx, l.buffer.Batch())
	report.WriteReport.Add(wr)
	metrics.RecordsWrittenInc(l.cfg.Name, metrics.OutcomeInserted, wr.Inserted)
	metrics.RecordsWrittenInc(l.cfg.Name, metrics.OutcomeConflict, wr.Conflicts)
	metrics.RecordsWrittenInc(l.cfg.Name, metrics.OutcomeError, wr.OtherErrors)
	if err != nil {
		return err
	}

	if len(candidates) > 0 {
		l.log.Debugw("window written",
			"from", from,
			"to", to,
			"candidates", len(candidates),
			"inserted", wr.Inserted,
			"conflicts", wr.Conflicts,
			"other_errors", wr.OtherErrors,
		)
	}

	return nil
}

type subscribedLog struct {
	sub pkgscanner.Subscription
	log types.Log
}

// fetchLogs runs one filter per subscription and returns the logs in chain order.
func (l *Loop) fetchLogs(
	ctx context.Context, subs []pkgscanner.Subscription, from, to uint64,
) ([]subscribedLog, error) {
	queries := make([]ethereum.FilterQuery, len(subs))
	for i, sub := range subs {
		queries[i] = BuildFilter(sub.Address, sub.Event, from, to)
	}

	var results [][]types.Log
	switch len(queries) {
	case 0:
		return nil, nil
	case 1:
		logs, err := l.src.QueryLogs(ctx, queries[0])
		if err != nil {
			return nil, fmt.Errorf("failed to query logs: %w", err)
		}
		results = [][]types.Log{logs}
	default:
		var err error
		results, err = l.src.BatchQueryLogs(ctx, queries)
		if err != nil {
			return nil, fmt.Errorf("failed to query logs: %w", err)
		}
		if len(results) != len(queries) {
			return nil, fmt.Errorf("sent %d log queries, got %d results", len(queries), len(results))
		}
	}

	var out []subscribedLog
	for i, logs := range results {
		for _, lg := range logs {
			if lg.Removed {
				continue
			}
			out = append(out, subscribedLog{sub: subs[i], log: lg})
		}
	}

	slices.SortStableFunc(out, func(a, b subscribedLog) int {
		if c := cmp.Compare(a.log.BlockNumber, b.log.BlockNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.log.Index, b.log.Index)
	})

	return out, nil
}

// collectLogs decodes and maps the window's logs. Decode and map failures only skip the log.
func (l *Loop) collectLogs(
	ctx context.Context, s pkgscanner.LogStrategy, from, to uint64, report *RunReport,
) ([]record.Record, error) {
	logs, err := l.fetchLogs(ctx, s.Subscriptions(), from, to)
	if err != nil {
		return nil, err
	}

	report.Logs += len(logs)
	metrics.LogsScannedInc(l.cfg.Name, len(logs))
	if len(logs) == 0 {
		return nil, nil
	}

	raw := make([]types.Log, len(logs))
	for i, sl := range logs {
		raw[i] = sl.log
	}

	blocks := make(blockCache)
	if err := blocks.fill(ctx, l.src, raw); err != nil {
		return nil, err
	}

	receipts := make(map[common.Hash][]types.Log)
	records := make([]record.Record, 0, len(logs))

	for _, sl := range logs {
		lg := sl.log
		fields := []any{"block", lg.BlockNumber, "tx", lg.TxHash, "log_index", lg.Index}

		params, err := abi.Decode(sl.sub.Event, lg)
		if err != nil {
			report.DecodeFailures++
			metrics.RecordsSkippedInc(l.cfg.Name, metrics.SkipDecode, 1)
			l.log.Warnw("skipping undecodable log", append(fields, "event", sl.sub.Event.Name, "error", err)...)
			continue
		}

		tx := pkgscanner.TxMeta{Hash: lg.TxHash, LogIndex: lg.Index}
		if s.NeedsReceipt() {
			receipt, ok := receipts[lg.TxHash]
			if !ok {
				receipt, err = l.src.GetTransactionReceipt(ctx, lg.TxHash)
				if err != nil {
					return nil, fmt.Errorf("failed to fetch receipt of %s: %w", lg.TxHash, err)
				}
				receipts[lg.TxHash] = receipt
			}
			tx.Receipt = receipt
		}

		rec, err := s.Map(pkgscanner.LogInput{
			Subscription: sl.sub,
			Log:          lg,
			Params:       params,
			Block:        blocks[lg.BlockHash],
			Tx:           tx,
		})
		switch {
		case errors.Is(err, pkgscanner.ErrUnsupported):
			report.Skipped++
			metrics.RecordsSkippedInc(l.cfg.Name, metrics.SkipUnsupported, 1)
			l.log.Debugw("log not handled by strategy", append(fields, "address", lg.Address)...)
			continue
		case err != nil:
			report.MapFailures++
			metrics.RecordsSkippedInc(l.cfg.Name, metrics.SkipMap, 1)
			l.log.Warnw("skipping unmappable log", append(fields, "error", err)...)
			continue
		}

		record.Stamp(rec)
		records = append(records, rec)
	}

	return records, nil
}

// collectBlocks asks the strategy for the records of every block of the window, in order.
func (l *Loop) collectBlocks(
	ctx context.Context, s pkgscanner.BlockStrategy, from, to uint64,
) ([]record.Record, error) {
	var records []record.Record
	for n := from; n <= to; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recs, err := s.Collect(ctx, l.src, n)
		if err != nil {
			return nil, fmt.Errorf("failed to collect block %d: %w", n, err)
		}
		for _, r := range recs {
			record.Stamp(r)
		}
		records = append(records, recs...)

		if n == to {
			break
		}
	}
	return records, nil
}
