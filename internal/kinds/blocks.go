package kinds

import (
	"context"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	"github.com/goran-ethernal/ChainScanner/pkg/rpc"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
)

// transaction records every transaction of a block.
type transaction struct{}

func newTransaction(config.ScannerConfig, *registry.Registry, *logger.Logger) (pkgscanner.Strategy, error) {
	return transaction{}, nil
}

func (transaction) Kind() record.Kind    { return record.KindTransaction }
func (transaction) GenesisBlock() uint64 { return 1 }

func (transaction) Collect(ctx context.Context, src rpc.Source, block uint64) ([]record.Record, error) {
	b, err := src.GetBlockWithTransactions(ctx, block)
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		out = append(out, &record.Transaction{
			From:      tx.From,
			To:        tx.To,
			Hash:      tx.Hash,
			Block:     b.Number,
			CreatedAt: b.TimestampMillis(),
		})
	}
	return out, nil
}

// blockStats records the transaction count of every block.
type blockStats struct{}

func newBlockStats(config.ScannerConfig, *registry.Registry, *logger.Logger) (pkgscanner.Strategy, error) {
	return blockStats{}, nil
}

func (blockStats) Kind() record.Kind    { return record.KindBlockStats }
func (blockStats) GenesisBlock() uint64 { return 1 }

func (blockStats) Collect(ctx context.Context, src rpc.Source, block uint64) ([]record.Record, error) {
	n, err := src.GetBlockTransactionCount(ctx, block)
	if err != nil {
		return nil, err
	}
	return []record.Record{&record.BlockStats{Block: block, TxCount: n}}, nil
}
