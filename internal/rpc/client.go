package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	headtypes "github.com/goran-ethernal/ChainScanner/internal/types"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgrpc "github.com/goran-ethernal/ChainScanner/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.Source interface.
var _ pkgrpc.Source = (*Client)(nil)

const maxBatch = 100

// Client wraps the Ethereum RPC client with the calls needed for scanning.
// Every call is rate limited, bounded by the request timeout and retried with backoff.
// It implements the pkgrpc.Source interface.
type Client struct {
	eth *ethclient.Client
	rpc *rpc.Client

	head    headtypes.HeadMode
	headLag uint64
	timeout time.Duration
	retry   retrier
	limiter *limiter
	log     *logger.Logger
}

// NewClient dials the configured endpoint and verifies connectivity by requesting the chain id.
func NewClient(ctx context.Context, cfg config.SourceConfig, log *logger.Logger) (*Client, error) {
	var (
		rpcClient *rpc.Client
		err       error
	)

	switch cfg.Protocol {
	case config.ProtocolWS:
		rpcClient, err = rpc.DialWebsocket(ctx, cfg.URL, "")
	case config.ProtocolHTTP:
		rpcClient, err = rpc.DialOptions(ctx, cfg.URL, rpc.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout.Duration}))
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", cfg.Protocol)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.URL, err)
	}

	c, err := newClient(rpcClient, cfg, log)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}

	var chainID *hexutil.Big
	if err := c.do(ctx, "eth_chainId", func(ctx context.Context) error {
		return c.rpc.CallContext(ctx, &chainID, "eth_chainId")
	}); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.URL, err)
	}

	c.log.Infow("connected to RPC source",
		"url", cfg.URL,
		"protocol", cfg.Protocol,
		"chain_id", chainID.ToInt(),
		"head", c.head,
		"head_lag", c.headLag,
	)

	return c, nil
}

func newClient(rpcClient *rpc.Client, cfg config.SourceConfig, log *logger.Logger) (*Client, error) {
	head, err := headtypes.ParseHeadMode(cfg.Head)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		eth:     ethclient.NewClient(rpcClient),
		rpc:     rpcClient,
		head:    head,
		headLag: cfg.HeadLag,
		timeout: cfg.RequestTimeout.Duration,
		retry:   newRetrier(cfg.Retry, log),
		limiter: newLimiter(cfg.RequestsPerSecond, cfg.Burst),
		log:     log,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// CurrentHeight returns the head block for the configured head mode minus the configured lag.
func (c *Client) CurrentHeight(ctx context.Context) (uint64, error) {
	var head uint64

	if c.head == headtypes.HeadLatest {
		if err := c.do(ctx, "eth_blockNumber", func(ctx context.Context) error {
			n, err := c.eth.BlockNumber(ctx)
			head = n
			return err
		}); err != nil {
			return 0, err
		}
	} else {
		var h *rpcHeader
		if err := c.do(ctx, "eth_getBlockByNumber", func(ctx context.Context) error {
			return c.rpc.CallContext(ctx, &h, "eth_getBlockByNumber", c.head.BlockNumber().String(), false)
		}); err != nil {
			return 0, err
		}
		if h == nil {
			return 0, fmt.Errorf("%s block: %w", c.head, pkgrpc.ErrNotFound)
		}
		head = uint64(h.Number)
	}

	if head < c.headLag {
		return 0, nil
	}

	return head - c.headLag, nil
}

// QueryLogs retrieves logs matching the given filter query.
func (c *Client) QueryLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log

	err := c.do(ctx, "eth_getLogs", func(ctx context.Context) error {
		var res []types.Log
		if err := c.rpc.CallContext(ctx, &res, "eth_getLogs", toFilterArg(query)); err != nil {
			return err
		}
		logs = res
		return nil
	})
	if err != nil {
		return nil, tooManyResults(err)
	}

	return logs, nil
}

// BatchQueryLogs retrieves logs for multiple filter queries in a single batch call.
func (c *Client) BatchQueryLogs(ctx context.Context, queries []ethereum.FilterQuery) ([][]types.Log, error) {
	results := make([][]types.Log, len(queries))

	for i := 0; i < len(queries); i += maxBatch {
		end := min(i+maxBatch, len(queries))

		batch := make([]rpc.BatchElem, 0, end-i)
		for j := i; j < end; j++ {
			batch = append(batch, rpc.BatchElem{
				Method: "eth_getLogs",
				Args:   []any{toFilterArg(queries[j])},
				Result: &results[j],
			})
		}

		if err := c.batch(ctx, "eth_getLogs", batch); err != nil {
			return nil, tooManyResults(err)
		}
	}

	return results, nil
}

// GetBlockByHash retrieves the header of a block by hash.
func (c *Client) GetBlockByHash(ctx context.Context, hash common.Hash) (pkgrpc.BlockHeader, error) {
	var h *rpcHeader

	if err := c.do(ctx, "eth_getBlockByHash", func(ctx context.Context) error {
		return c.rpc.CallContext(ctx, &h, "eth_getBlockByHash", hash, false)
	}); err != nil {
		return pkgrpc.BlockHeader{}, err
	}
	if h == nil {
		return pkgrpc.BlockHeader{}, fmt.Errorf("block %s: %w", hash.Hex(), pkgrpc.ErrNotFound)
	}

	return h.toHeader(), nil
}

// BatchGetBlocksByHash retrieves headers for multiple block hashes in a single batch call.
func (c *Client) BatchGetBlocksByHash(ctx context.Context, hashes []common.Hash) ([]pkgrpc.BlockHeader, error) {
	headers := make([]pkgrpc.BlockHeader, 0, len(hashes))

	for i := 0; i < len(hashes); i += maxBatch {
		end := min(i+maxBatch, len(hashes))
		chunk := hashes[i:end]

		batch := make([]rpc.BatchElem, len(chunk))
		results := make([]*rpcHeader, len(chunk))

		for j, hash := range chunk {
			batch[j] = rpc.BatchElem{
				Method: "eth_getBlockByHash",
				Args:   []any{hash, false}, // false = don't include transactions
				Result: &results[j],
			}
		}

		if err := c.batch(ctx, "eth_getBlockByHash", batch); err != nil {
			return nil, err
		}

		for j, h := range results {
			if h == nil {
				return nil, fmt.Errorf("block %s: %w", chunk[j].Hex(), pkgrpc.ErrNotFound)
			}
			headers = append(headers, h.toHeader())
		}
	}

	return headers, nil
}

// GetTransactionReceipt retrieves the logs emitted by a transaction.
func (c *Client) GetTransactionReceipt(ctx context.Context, hash common.Hash) ([]types.Log, error) {
	var r *rpcReceipt

	if err := c.do(ctx, "eth_getTransactionReceipt", func(ctx context.Context) error {
		return c.rpc.CallContext(ctx, &r, "eth_getTransactionReceipt", hash)
	}); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("receipt %s: %w", hash.Hex(), pkgrpc.ErrNotFound)
	}

	return r.Logs, nil
}

// GetBlockWithTransactions retrieves a block and its transactions by number.
func (c *Client) GetBlockWithTransactions(ctx context.Context, number uint64) (pkgrpc.Block, error) {
	var b *rpcBlock

	if err := c.do(ctx, "eth_getBlockByNumber", func(ctx context.Context) error {
		return c.rpc.CallContext(ctx, &b, "eth_getBlockByNumber", toBlockNumArg(number), true)
	}); err != nil {
		return pkgrpc.Block{}, err
	}
	if b == nil {
		return pkgrpc.Block{}, fmt.Errorf("block %d: %w", number, pkgrpc.ErrNotFound)
	}

	block := pkgrpc.Block{
		BlockHeader:  b.toHeader(),
		Transactions: make([]pkgrpc.BlockTx, 0, len(b.Transactions)),
	}
	for _, tx := range b.Transactions {
		block.Transactions = append(block.Transactions, pkgrpc.BlockTx{
			Hash: tx.Hash,
			From: tx.From,
			To:   tx.To,
		})
	}

	return block, nil
}

// GetBlockTransactionCount retrieves the number of transactions in a block.
func (c *Client) GetBlockTransactionCount(ctx context.Context, number uint64) (uint64, error) {
	var count *hexutil.Uint

	if err := c.do(ctx, "eth_getBlockTransactionCountByNumber", func(ctx context.Context) error {
		return c.rpc.CallContext(ctx, &count, "eth_getBlockTransactionCountByNumber", toBlockNumArg(number))
	}); err != nil {
		return 0, err
	}
	if count == nil {
		return 0, fmt.Errorf("block %d: %w", number, pkgrpc.ErrNotFound)
	}

	return uint64(*count), nil
}

// do runs a single RPC call with rate limiting, per-call timeout, retries and metrics.
func (c *Client) do(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	RPCMethodInc(method)
	start := time.Now()
	defer func() { RPCMethodDuration(method, time.Since(start)) }()

	err := c.retry.do(ctx, method, func() error {
		if err := c.limiter.wait(ctx); err != nil {
			return err
		}

		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		return fn(callCtx)
	})
	if err != nil {
		RPCMethodError(method, errorType(err))
		c.log.Debugw("rpc call failed", "method", method, "error", err)
	}

	return err
}

// batch sends a batch call and surfaces the first per-element error.
func (c *Client) batch(ctx context.Context, method string, elems []rpc.BatchElem) error {
	return c.do(ctx, method, func(ctx context.Context) error {
		for i := range elems {
			elems[i].Error = nil
		}

		if err := c.rpc.BatchCallContext(ctx, elems); err != nil {
			return err
		}

		// Check for individual errors
		for _, elem := range elems {
			if elem.Error != nil {
				return elem.Error
			}
		}

		return nil
	})
}

// tooManyResults converts a provider "too many results" error into pkgrpc.ErrTooManyResults,
// keeping the suggested block range when the provider sends one.
func tooManyResults(err error) error {
	ok, data := IsTooManyResultsError(err)
	if !ok {
		return err
	}

	if from, to, parsed := ParseSuggestedBlockRange(data); parsed {
		return fmt.Errorf("%w (suggested range %d-%d): %w", pkgrpc.ErrTooManyResults, from, to, err)
	}

	return fmt.Errorf("%w: %w", pkgrpc.ErrTooManyResults, err)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case isTransient(err):
		return "transient"
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return "rpc"
	}

	if strings.Contains(strings.ToLower(err.Error()), "not found") {
		return "not_found"
	}

	return "other"
}

type rpcHeader struct {
	Number    hexutil.Uint64 `json:"number"`
	Hash      common.Hash    `json:"hash"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
}

func (h rpcHeader) toHeader() pkgrpc.BlockHeader {
	return pkgrpc.BlockHeader{
		Number:    uint64(h.Number),
		Hash:      h.Hash,
		Timestamp: uint64(h.Timestamp),
	}
}

type rpcTx struct {
	Hash common.Hash     `json:"hash"`
	From common.Address  `json:"from"`
	To   *common.Address `json:"to"`
}

type rpcBlock struct {
	rpcHeader
	Transactions []rpcTx `json:"transactions"`
}

type rpcReceipt struct {
	Logs []types.Log `json:"logs"`
}

// toFilterArg converts ethereum.FilterQuery to the format expected by eth_getLogs.
func toFilterArg(q ethereum.FilterQuery) any {
	arg := map[string]any{
		"topics": q.Topics,
	}

	if q.BlockHash != nil {
		arg["blockHash"] = *q.BlockHash
	} else {
		if q.FromBlock != nil {
			arg["fromBlock"] = toBlockNumArg(q.FromBlock.Uint64())
		}
		if q.ToBlock != nil {
			arg["toBlock"] = toBlockNumArg(q.ToBlock.Uint64())
		}
	}

	if len(q.Addresses) > 0 {
		if len(q.Addresses) == 1 {
			arg["address"] = q.Addresses[0]
		} else {
			arg["address"] = q.Addresses
		}
	}

	return arg
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
