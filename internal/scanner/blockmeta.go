package scanner

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainScanner/pkg/rpc"
)

// blockCache holds the headers of the blocks referenced by one window's logs.
type blockCache map[common.Hash]rpc.BlockHeader

// fill fetches, in one batch, every header referenced by logs that is not cached yet.
func (c blockCache) fill(ctx context.Context, src rpc.Source, logs []types.Log) error {
	var missing []common.Hash
	queued := make(map[common.Hash]struct{})
	for _, l := range logs {
		if _, ok := c[l.BlockHash]; ok {
			continue
		}
		if _, ok := queued[l.BlockHash]; ok {
			continue
		}
		queued[l.BlockHash] = struct{}{}
		missing = append(missing, l.BlockHash)
	}

	if len(missing) == 0 {
		return nil
	}

	headers, err := src.BatchGetBlocksByHash(ctx, missing)
	if err != nil {
		return fmt.Errorf("failed to fetch %d block headers: %w", len(missing), err)
	}
	if len(headers) != len(missing) {
		return fmt.Errorf("requested %d block headers, got %d", len(missing), len(headers))
	}

	for i, h := range headers {
		c[missing[i]] = h
	}
	return nil
}
