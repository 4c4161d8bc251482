package rpc

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrNotFound is returned when a block or receipt is unknown to the node.
	ErrNotFound = errors.New("not found")
	// ErrTooManyResults is returned when the provider refuses a log query for returning too many results.
	ErrTooManyResults = errors.New("query returned too many results")
)

// BlockHeader is the block metadata the scanner needs.
type BlockHeader struct {
	Number    uint64
	Hash      common.Hash
	Timestamp uint64 // seconds
}

// TimestampMillis returns the block timestamp in milliseconds.
func (h BlockHeader) TimestampMillis() int64 {
	return int64(h.Timestamp) * 1000 //nolint:mnd
}

// BlockTx is a transaction as listed in a block body.
type BlockTx struct {
	Hash common.Hash
	From common.Address
	To   *common.Address
}

// Block is a block header together with its transactions.
type Block struct {
	BlockHeader
	Transactions []BlockTx
}

// Source defines the chain operations consumed by the scanner.
// This abstraction allows for easier testing and alternative implementations.
type Source interface {
	// Close closes the RPC client connection.
	Close()

	// CurrentHeight returns the chain head according to the configured head mode.
	CurrentHeight(ctx context.Context) (uint64, error)

	// QueryLogs retrieves logs matching the given filter query.
	QueryLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// BatchQueryLogs retrieves logs for multiple filter queries in a single batch call.
	BatchQueryLogs(ctx context.Context, queries []ethereum.FilterQuery) ([][]types.Log, error)

	// GetBlockByHash retrieves the header of a block by hash.
	GetBlockByHash(ctx context.Context, hash common.Hash) (BlockHeader, error)

	// BatchGetBlocksByHash retrieves headers for multiple block hashes in a single batch call.
	BatchGetBlocksByHash(ctx context.Context, hashes []common.Hash) ([]BlockHeader, error)

	// GetTransactionReceipt retrieves the logs emitted by a transaction.
	GetTransactionReceipt(ctx context.Context, hash common.Hash) ([]types.Log, error)

	// GetBlockWithTransactions retrieves a block and its transactions by number.
	GetBlockWithTransactions(ctx context.Context, number uint64) (Block, error)

	// GetBlockTransactionCount retrieves the number of transactions in a block.
	GetBlockTransactionCount(ctx context.Context, number uint64) (uint64, error)
}
