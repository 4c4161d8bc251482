package kinds

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
)

// tokenTransfer records ERC20 and ERC721 transfers of the registry contracts. The registry's
// ERC kind picks the signature a contract's logs are decoded with.
type tokenTransfer struct {
	contracts *registry.Registry
	subs      []pkgscanner.Subscription
	log       *logger.Logger
}

func newTokenTransfer(
	cfg config.ScannerConfig, contracts *registry.Registry, log *logger.Logger,
) (pkgscanner.Strategy, error) {
	if contracts == nil {
		return nil, errors.New("contract registry is required")
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &tokenTransfer{contracts: contracts, log: log}

	var candidates []registry.Contract
	if len(cfg.Contracts) == 0 {
		candidates = append(contracts.ByKind(registry.ERC20), contracts.ByKind(registry.ERC721)...)
	} else {
		for _, ref := range cfg.Contracts {
			c, ok := resolveContract(contracts, ref)
			if !ok {
				log.Warnw("contract not in registry, its transfers are not scanned", "contract", ref)
				continue
			}
			candidates = append(candidates, c)
		}
	}

	for _, c := range candidates {
		event := transferEvent(c.ERC)
		if event == nil {
			continue
		}
		s.subs = append(s.subs, pkgscanner.Subscription{Address: c.Address, Event: event})
	}

	if len(s.subs) == 0 {
		return nil, fmt.Errorf("scanner %s: no ERC20 or ERC721 contract to scan", cfg.Name)
	}

	return s, nil
}

// resolveContract finds a registry entry by hex address or by display name.
func resolveContract(contracts *registry.Registry, ref string) (registry.Contract, bool) {
	if common.IsHexAddress(ref) {
		return contracts.Lookup(common.HexToAddress(ref))
	}
	return contracts.ByName(ref)
}

func transferEvent(kind registry.ERCKind) *abi.EventSignature {
	switch kind {
	case registry.ERC20:
		return ERC20Transfer
	case registry.ERC721:
		return ERC721Transfer
	default:
		return nil
	}
}

func (s *tokenTransfer) Kind() record.Kind    { return record.KindTokenTransfer }
func (s *tokenTransfer) GenesisBlock() uint64 { return 1 }
func (s *tokenTransfer) NeedsReceipt() bool   { return false }

func (s *tokenTransfer) Subscriptions() []pkgscanner.Subscription {
	return s.subs
}

func (s *tokenTransfer) Map(in pkgscanner.LogInput) (record.Record, error) {
	c, ok := s.contracts.Lookup(in.Log.Address)
	if !ok || transferEvent(c.ERC) != in.Subscription.Event {
		return nil, pkgscanner.ErrUnsupported
	}

	amount := "_value"
	if c.ERC == registry.ERC721 {
		amount = "_tokenId"
	}

	from, to, value, err := transferParams(in.Params, amount)
	if err != nil {
		return nil, err
	}

	t := &record.Transfer{
		From:      from,
		To:        to,
		Token:     c.Address,
		TokenName: c.Name,
		Value:     value,
		ERC:       string(c.ERC),
		Block:     in.Block.Number,
		TxHash:    in.Tx.Hash,
		LogIndex:  in.Tx.LogIndex,
		CreatedAt: in.Block.TimestampMillis(),
	}

	if c.ERC == registry.ERC20 {
		raw, _ := in.Params.BigInt(amount)
		s.log.Debugw("token transfer",
			"token", c.Name,
			"amount", c.FormatAmount(raw),
			"from", from,
			"to", to,
			"block", t.Block,
		)
	}

	return t, nil
}
