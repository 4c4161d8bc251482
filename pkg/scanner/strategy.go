// Package scanner defines the per-kind strategies plugged into the scan loop.
package scanner

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/pkg/rpc"
)

// ErrUnsupported is returned by a strategy for input outside its scope.
// The scan loop skips such logs without treating them as failures.
var ErrUnsupported = errors.New("unsupported by strategy")

// Subscription is one contract event a log strategy wants to receive.
type Subscription struct {
	Address common.Address
	Event   *abi.EventSignature
}

// TxMeta carries the transaction context of a log.
type TxMeta struct {
	Hash     common.Hash
	LogIndex uint
	// Receipt holds every log of the transaction. It is only populated for strategies that need it.
	Receipt []types.Log
}

// LogInput is everything a log strategy gets to build a record.
type LogInput struct {
	Subscription Subscription
	Log          types.Log
	Params       abi.Params
	Block        rpc.BlockHeader
	Tx           TxMeta
}

// Strategy is the part shared by every kind.
type Strategy interface {
	// Kind is the record kind produced, which also selects the store table.
	Kind() record.Kind
	// GenesisBlock is where scanning starts when nothing is persisted yet.
	GenesisBlock() uint64
}

// LogStrategy builds records from decoded contract logs.
type LogStrategy interface {
	Strategy

	// Subscriptions lists the (address, event) pairs queried for every window.
	Subscriptions() []Subscription

	// NeedsReceipt reports whether Map needs the full transaction receipt.
	NeedsReceipt() bool

	// Map turns a decoded log into a record. It returns ErrUnsupported for logs it does not handle.
	Map(in LogInput) (record.Record, error)
}

// BlockStrategy builds records from blocks rather than logs.
type BlockStrategy interface {
	Strategy

	// Collect returns the records of a single block.
	Collect(ctx context.Context, src rpc.Source, block uint64) ([]record.Record, error)
}
