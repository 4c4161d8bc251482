package scanner

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/internal/store/sqlite"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	"github.com/goran-ethernal/ChainScanner/pkg/rpc"
	rpcmocks "github.com/goran-ethernal/ChainScanner/pkg/rpc/mocks"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
	"github.com/goran-ethernal/ChainScanner/pkg/store"
	storemocks "github.com/goran-ethernal/ChainScanner/pkg/store/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testToken    = common.HexToAddress("0xc99a6a985ed2cac1ef41640596c5a5f9f4e19ef5")
	testTransfer = abi.MustParseEventSignature("Transfer(address indexed from, address indexed to, uint256 value)")
)

// transferStrategy maps ERC20 transfers of testToken.
type transferStrategy struct {
	receipts    bool
	unsupported map[uint]bool
	failMap     map[uint]bool
}

func (s *transferStrategy) Kind() record.Kind    { return record.KindTokenTransfer }
func (s *transferStrategy) GenesisBlock() uint64 { return 1 }
func (s *transferStrategy) NeedsReceipt() bool   { return s.receipts }

func (s *transferStrategy) Subscriptions() []pkgscanner.Subscription {
	return []pkgscanner.Subscription{{Address: testToken, Event: testTransfer}}
}

func (s *transferStrategy) Map(in pkgscanner.LogInput) (record.Record, error) {
	if s.unsupported[in.Tx.LogIndex] {
		return nil, pkgscanner.ErrUnsupported
	}
	if s.failMap[in.Tx.LogIndex] {
		return nil, errors.New("no matching transfer")
	}
	if s.receipts && len(in.Tx.Receipt) == 0 {
		return nil, errors.New("receipt missing")
	}

	from, err := in.Params.Address("from")
	if err != nil {
		return nil, err
	}
	to, err := in.Params.Address("to")
	if err != nil {
		return nil, err
	}
	value, err := in.Params.BigInt("value")
	if err != nil {
		return nil, err
	}

	return &record.Transfer{
		From:      from,
		To:        to,
		Token:     in.Subscription.Address,
		TokenName: "WETH",
		Value:     value.String(),
		ERC:       "erc20",
		Block:     in.Block.Number,
		TxHash:    in.Tx.Hash,
		LogIndex:  in.Tx.LogIndex,
		CreatedAt: in.Block.TimestampMillis(),
	}, nil
}

// statsStrategy is a block strategy counting transactions.
type statsStrategy struct{}

func (statsStrategy) Kind() record.Kind    { return record.KindBlockStats }
func (statsStrategy) GenesisBlock() uint64 { return 1 }

func (statsStrategy) Collect(ctx context.Context, src rpc.Source, block uint64) ([]record.Record, error) {
	n, err := src.GetBlockTransactionCount(ctx, block)
	if err != nil {
		return nil, err
	}
	return []record.Record{&record.BlockStats{Block: block, TxCount: n}}, nil
}

func blockHash(n uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(1_000_000 + n))
}

func txHash(block uint64, i uint) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(block*1000 + uint64(i)))
}

func transferLog(block uint64, index uint, value int64) types.Log {
	return types.Log{
		Address: testToken,
		Topics: []common.Hash{
			testTransfer.Topic,
			common.BytesToHash(common.HexToAddress("0x01").Bytes()),
			common.BytesToHash(common.HexToAddress("0x02").Bytes()),
		},
		Data:        common.LeftPadBytes(big.NewInt(value).Bytes(), 32),
		BlockNumber: block,
		BlockHash:   blockHash(block),
		TxHash:      txHash(block, index),
		Index:       index,
	}
}

func malformedLog(block uint64, index uint) types.Log {
	l := transferLog(block, index, 1)
	l.Topics = l.Topics[:2]
	return l
}

// headersFor answers header lookups with a timestamp derived from the block number.
func headersFor(_ context.Context, hashes []common.Hash) ([]rpc.BlockHeader, error) {
	out := make([]rpc.BlockHeader, len(hashes))
	for i, h := range hashes {
		n := h.Big().Uint64() - 1_000_000
		out[i] = rpc.BlockHeader{Number: n, Hash: h, Timestamp: 1_600_000_000 + n}
	}
	return out, nil
}

func scannerConfig(start, end uint64) config.ScannerConfig {
	cfg := config.ScannerConfig{Name: "weth", Kind: string(record.KindTokenTransfer), StartBlock: start, EndBlock: end}
	cfg.ApplyDefaults()
	return cfg
}

func newTestLoop(t *testing.T, cfg config.ScannerConfig, s pkgscanner.Strategy, src rpc.Source, st store.Store) *Loop {
	t.Helper()

	l, err := New(cfg, s, src, st, logger.NewNopLogger())
	require.NoError(t, err)
	require.NotEmpty(t, l.RunID())
	return l
}

func TestNew_Validation(t *testing.T) {
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)
	cfg := scannerConfig(1, 1)

	_, err := New(cfg, nil, src, st, nil)
	require.ErrorContains(t, err, "strategy is required")

	_, err = New(cfg, &transferStrategy{}, nil, st, nil)
	require.ErrorContains(t, err, "source is required")

	_, err = New(cfg, &transferStrategy{}, src, nil, nil)
	require.ErrorContains(t, err, "store is required")
}

func TestLoop_ZeroIterationsWhenStartBeyondCeiling(t *testing.T) {
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	report, err := newTestLoop(t, scannerConfig(11, 10), &transferStrategy{}, src, st).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.Windows)
	require.Equal(t, uint64(11), report.First)
	require.Equal(t, uint64(10), report.Ceiling)
}

func TestLoop_OneIterationWhenStartEqualsCeiling(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	src.EXPECT().QueryLogs(ctx, BuildFilter(testToken, testTransfer, 7, 7)).Return(nil, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(7)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(7, 7), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Windows)
	require.Equal(t, uint64(7), report.LastBlock)
}

func TestLoop_EmptyWindowStillAdvances(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	st.EXPECT().LoadCursor(ctx, "weth").Return(uint64(99), true, nil).Once()
	src.EXPECT().CurrentHeight(ctx).Return(uint64(101), nil).Once()

	src.EXPECT().QueryLogs(ctx, mock.Anything).Return([]types.Log{}, nil).Twice()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(100)).Return(nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(101)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(0, 0), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Windows)
	require.Equal(t, uint64(100), report.First)
	require.Zero(t, report.Logs)
	require.Zero(t, report.Inserted)
}

func TestLoop_PartialConflictTolerance(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	logs := []types.Log{transferLog(5, 0, 10), transferLog(5, 1, 20), transferLog(5, 2, 30)}
	src.EXPECT().QueryLogs(ctx, mock.Anything).Return(logs, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, []common.Hash{blockHash(5)}).RunAndReturn(headersFor).Once()

	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(map[string]struct{}{}, nil).Once()
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.MatchedBy(func(recs []record.Record) bool {
		return len(recs) == 3
	})).Return(store.WriteReport{Inserted: 2, Conflicts: 1}, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(5, 5), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Inserted)
	require.Equal(t, 1, report.Conflicts)
	require.False(t, report.Degraded())
}

func TestLoop_DecodeFailureIsolation(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	logs := []types.Log{transferLog(5, 0, 10), malformedLog(5, 1), transferLog(5, 2, 30)}
	src.EXPECT().QueryLogs(ctx, mock.Anything).Return(logs, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, mock.Anything).RunAndReturn(headersFor).Once()

	var written []record.Record
	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(nil, nil).Once()
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.Anything).
		RunAndReturn(func(_ context.Context, _ record.Kind, recs []record.Record) (store.WriteReport, error) {
			written = recs
			return store.WriteReport{Inserted: len(recs)}, nil
		}).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(5, 5), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, report.Logs)
	require.Equal(t, 2, report.Inserted)
	require.Equal(t, 1, report.DecodeFailures)

	require.Len(t, written, 2)
	first := written[0].(*record.Transfer)
	require.Equal(t, uint(0), first.LogIndex)
	require.Equal(t, "10", first.Value)
	require.Equal(t, int64(1_600_000_005_000), first.CreatedAt)
	require.Equal(t, record.Key(first), first.LogID)
	require.Equal(t, uint(2), written[1].(*record.Transfer).LogIndex)
}

func TestLoop_SkipsUnsupportedAndUnmappable(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	logs := []types.Log{transferLog(5, 0, 10), transferLog(5, 1, 20), transferLog(5, 2, 30)}
	src.EXPECT().QueryLogs(ctx, mock.Anything).Return(logs, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, mock.Anything).RunAndReturn(headersFor).Once()
	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(nil, nil).Once()
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.MatchedBy(func(recs []record.Record) bool {
		return len(recs) == 1
	})).Return(store.WriteReport{Inserted: 1}, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	strategy := &transferStrategy{unsupported: map[uint]bool{0: true}, failMap: map[uint]bool{2: true}}
	report, err := newTestLoop(t, scannerConfig(5, 5), strategy, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, 1, report.MapFailures)
	require.Equal(t, 1, report.Inserted)
	require.False(t, report.Degraded())
}

func TestLoop_DedupesAgainstStoreAndWindow(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	known := transferLog(5, 0, 10)
	dup := transferLog(5, 1, 20)
	logs := []types.Log{known, dup, dup, transferLog(6, 0, 30)}

	src.EXPECT().QueryLogs(ctx, BuildFilter(testToken, testTransfer, 5, 6)).Return(logs, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, []common.Hash{blockHash(5), blockHash(6)}).RunAndReturn(headersFor).Once()

	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.MatchedBy(func(keys []string) bool {
		return len(keys) == 3
	})).RunAndReturn(func(_ context.Context, _ record.Kind, keys []string) (map[string]struct{}, error) {
		return map[string]struct{}{keys[0]: {}}, nil
	}).Once()
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.MatchedBy(func(recs []record.Record) bool {
		return len(recs) == 2
	})).Return(store.WriteReport{Inserted: 2}, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(6)).Return(nil).Once()

	cfg := scannerConfig(5, 6)
	cfg.WindowSize = 10
	report, err := newTestLoop(t, cfg, &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Windows)
	require.Equal(t, 2, report.Duplicates)
	require.Equal(t, 2, report.Inserted)
}

func TestLoop_ReceiptsFetchedOncePerTransaction(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	a := transferLog(5, 0, 10)
	b := transferLog(5, 1, 20)
	b.TxHash = a.TxHash

	src.EXPECT().QueryLogs(ctx, mock.Anything).Return([]types.Log{a, b}, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, mock.Anything).RunAndReturn(headersFor).Once()
	src.EXPECT().GetTransactionReceipt(ctx, a.TxHash).Return([]types.Log{a, b}, nil).Once()
	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(nil, nil).Once()
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.Anything).
		Return(store.WriteReport{Inserted: 2}, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(5, 5), &transferStrategy{receipts: true}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Inserted)
	require.Zero(t, report.MapFailures)
}

func TestLoop_DegradedOnWriteErrors(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	src.EXPECT().QueryLogs(ctx, mock.Anything).Return([]types.Log{transferLog(5, 0, 1), transferLog(5, 1, 2)}, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, mock.Anything).RunAndReturn(headersFor).Once()
	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(nil, nil).Once()
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.Anything).
		Return(store.WriteReport{Inserted: 1, OtherErrors: 1, Errors: []error{errors.New("disk I/O error")}}, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(5, 5), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.True(t, report.Degraded())
	require.Equal(t, 1, report.OtherErrors)
	require.Len(t, report.Errors, 1)
	require.ErrorContains(t, report.Errors[0], "disk I/O error")
}

func TestLoop_WindowErrorsAreFatal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(src *rpcmocks.Source, st *storemocks.Store)
		err   string
	}{
		{
			name: "query failure",
			setup: func(src *rpcmocks.Source, _ *storemocks.Store) {
				src.EXPECT().QueryLogs(ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()
			},
			err: "failed to query logs: connection refused",
		},
		{
			name: "header failure",
			setup: func(src *rpcmocks.Source, _ *storemocks.Store) {
				src.EXPECT().QueryLogs(ctx, mock.Anything).Return([]types.Log{transferLog(5, 0, 1)}, nil).Once()
				src.EXPECT().BatchGetBlocksByHash(ctx, mock.Anything).Return(nil, rpc.ErrNotFound).Once()
			},
			err: "failed to fetch 1 block headers: not found",
		},
		{
			name: "whole write failure",
			setup: func(src *rpcmocks.Source, st *storemocks.Store) {
				src.EXPECT().QueryLogs(ctx, mock.Anything).Return([]types.Log{transferLog(5, 0, 1)}, nil).Once()
				src.EXPECT().BatchGetBlocksByHash(ctx, mock.Anything).RunAndReturn(headersFor).Once()
				st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(nil, nil).Once()
				st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.Anything).
					Return(store.WriteReport{}, errors.New("database is locked")).Once()
			},
			err: "database is locked",
		},
		{
			name: "cursor save failure",
			setup: func(src *rpcmocks.Source, st *storemocks.Store) {
				src.EXPECT().QueryLogs(ctx, mock.Anything).Return(nil, nil).Once()
				st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(errors.New("readonly")).Once()
			},
			err: "failed to save cursor at 5: readonly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rpcmocks.NewSource(t)
			st := storemocks.NewStore(t)
			tt.setup(src, st)

			report, err := newTestLoop(t, scannerConfig(5, 6), &transferStrategy{}, src, st).Run(ctx)
			require.ErrorContains(t, err, tt.err)
			require.Zero(t, report.Windows)
		})
	}
}

func TestLoop_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	src.EXPECT().QueryLogs(mock.Anything, mock.Anything).Return(nil, nil).Once()
	st.EXPECT().SaveCursor(mock.Anything, "weth", uint64(1)).
		RunAndReturn(func(context.Context, string, uint64) error {
			cancel()
			return nil
		}).Once()

	report, err := newTestLoop(t, scannerConfig(1, 100), &transferStrategy{}, src, st).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, report.Windows)
}

func TestLoop_BlockStrategy(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	for n := uint64(1); n <= 3; n++ {
		src.EXPECT().GetBlockTransactionCount(ctx, n).Return(n*2, nil).Once()
	}
	st.EXPECT().ExistingKeys(ctx, record.KindBlockStats, mock.Anything).Return(nil, nil).Twice()
	st.EXPECT().InsertManyUnordered(ctx, record.KindBlockStats, mock.Anything).
		RunAndReturn(func(_ context.Context, _ record.Kind, recs []record.Record) (store.WriteReport, error) {
			for _, r := range recs {
				if r.GetKey() == "" {
					return store.WriteReport{}, fmt.Errorf("record for block %d is not keyed", r.BlockNumber())
				}
			}
			return store.WriteReport{Inserted: len(recs)}, nil
		}).Twice()
	st.EXPECT().SaveCursor(ctx, "stats", uint64(2)).Return(nil).Once()
	st.EXPECT().SaveCursor(ctx, "stats", uint64(3)).Return(nil).Once()

	cfg := config.ScannerConfig{Name: "stats", Kind: string(record.KindBlockStats), StartBlock: 1, EndBlock: 3, WindowSize: 2}
	report, err := newTestLoop(t, cfg, statsStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Windows)
	require.Equal(t, 3, report.Inserted)
}

func TestLoop_MultipleSubscriptionsUseOneBatch(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	second := common.HexToAddress("0xed4a9f48a62fb6fdcfb45bb00c9f61d1a436e58c")
	strategy := &multiStrategy{transferStrategy: transferStrategy{}, extra: second}

	other := transferLog(5, 0, 99)
	other.Address = second

	src.EXPECT().BatchQueryLogs(ctx, []ethereum.FilterQuery{
		BuildFilter(testToken, testTransfer, 5, 5),
		BuildFilter(second, testTransfer, 5, 5),
	}).Return([][]types.Log{{transferLog(5, 1, 10)}, {other}}, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, []common.Hash{blockHash(5)}).RunAndReturn(headersFor).Once()
	st.EXPECT().ExistingKeys(ctx, record.KindTokenTransfer, mock.Anything).Return(nil, nil).Once()

	var written []record.Record
	st.EXPECT().InsertManyUnordered(ctx, record.KindTokenTransfer, mock.Anything).
		RunAndReturn(func(_ context.Context, _ record.Kind, recs []record.Record) (store.WriteReport, error) {
			written = recs
			return store.WriteReport{Inserted: len(recs)}, nil
		}).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	_, err := newTestLoop(t, scannerConfig(5, 5), strategy, src, st).Run(ctx)
	require.NoError(t, err)

	// chain order, not subscription order
	require.Len(t, written, 2)
	require.Equal(t, second, written[0].(*record.Transfer).Token)
	require.Equal(t, testToken, written[1].(*record.Transfer).Token)
}

type multiStrategy struct {
	transferStrategy
	extra common.Address
}

func (s *multiStrategy) Subscriptions() []pkgscanner.Subscription {
	return append(s.transferStrategy.Subscriptions(), pkgscanner.Subscription{Address: s.extra, Event: testTransfer})
}

func TestLoop_IdempotentReplay(t *testing.T) {
	ctx := context.Background()

	dbCfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "replay.db")}
	dbCfg.ApplyDefaults()
	st, err := sqlite.New(dbCfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	src := rpcmocks.NewSource(t)
	logs := []types.Log{transferLog(5, 0, 10), transferLog(5, 1, 20), transferLog(6, 0, 30)}
	src.EXPECT().QueryLogs(mock.Anything, mock.Anything).Return(logs, nil).Times(2)
	src.EXPECT().BatchGetBlocksByHash(mock.Anything, mock.Anything).RunAndReturn(headersFor).Times(2)

	cfg := scannerConfig(5, 6)
	cfg.WindowSize = 2

	first, err := newTestLoop(t, cfg, &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, first.Inserted)

	second, err := newTestLoop(t, cfg, &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Zero(t, second.Inserted)
	require.Equal(t, 3, second.Duplicates)

	var rows int
	require.NoError(t, st.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM token_transfers").Scan(&rows))
	require.Equal(t, 3, rows)

	last, found, err := st.LoadCursor(ctx, "weth")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(6), last)
}

func TestLoop_ResumesFromOwnCursor(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	// a saved cursor is used without consulting the kind's table
	st.EXPECT().LoadCursor(ctx, "weth").Return(uint64(4), true, nil).Once()
	src.EXPECT().CurrentHeight(ctx).Return(uint64(5), nil).Once()
	src.EXPECT().QueryLogs(ctx, BuildFilter(testToken, testTransfer, 5, 5)).Return(nil, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(5)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(0, 0), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(5), report.First)
}

func TestLoop_FallsBackToMaxBlockWithoutCursor(t *testing.T) {
	ctx := context.Background()
	src := rpcmocks.NewSource(t)
	st := storemocks.NewStore(t)

	st.EXPECT().LoadCursor(ctx, "weth").Return(0, false, nil).Once()
	st.EXPECT().FindMaxBlock(ctx, record.KindTokenTransfer).Return(uint64(8), true, nil).Once()
	src.EXPECT().CurrentHeight(ctx).Return(uint64(9), nil).Once()
	src.EXPECT().QueryLogs(ctx, BuildFilter(testToken, testTransfer, 9, 9)).Return(nil, nil).Once()
	st.EXPECT().SaveCursor(ctx, "weth", uint64(9)).Return(nil).Once()

	report, err := newTestLoop(t, scannerConfig(0, 0), &transferStrategy{}, src, st).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(9), report.First)
}

func TestLoop_SharedKindIgnoresOtherScannersRecords(t *testing.T) {
	ctx := context.Background()

	dbCfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "shared.db")}
	dbCfg.ApplyDefaults()
	st, err := sqlite.New(dbCfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	src := rpcmocks.NewSource(t)

	ercCfg := config.ScannerConfig{Name: "erc-transfers", Kind: string(record.KindTokenTransfer), StartBlock: 10, EndBlock: 10}
	ercCfg.ApplyDefaults()
	src.EXPECT().QueryLogs(ctx, BuildFilter(testToken, testTransfer, 10, 10)).
		Return([]types.Log{transferLog(10, 0, 5)}, nil).Once()
	src.EXPECT().BatchGetBlocksByHash(ctx, []common.Hash{blockHash(10)}).RunAndReturn(headersFor).Once()

	erc, err := New(ercCfg, &transferStrategy{}, src, st, logger.NewNopLogger(), WithSharedKind(true))
	require.NoError(t, err)
	first, err := erc.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.Inserted)

	// a second scanner of the same kind that never ran starts at genesis
	axsCfg := config.ScannerConfig{Name: "axs-slp-transfers", Kind: string(record.KindTokenTransfer), WindowSize: 10}
	axsCfg.ApplyDefaults()
	src.EXPECT().CurrentHeight(ctx).Return(uint64(10), nil).Once()
	src.EXPECT().QueryLogs(ctx, BuildFilter(testToken, testTransfer, 1, 10)).Return(nil, nil).Once()

	axs, err := New(axsCfg, &transferStrategy{}, src, st, logger.NewNopLogger(), WithSharedKind(true))
	require.NoError(t, err)
	second, err := axs.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), second.First)
	require.Equal(t, uint64(10), second.Ceiling)
	require.Equal(t, 1, second.Windows)

	last, found, err := st.LoadCursor(ctx, "axs-slp-transfers")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(10), last)
}
