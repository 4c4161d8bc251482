package kinds

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
)

// axieTransfer records AXIE token movements. Its key is derived from participants, token and
// block rather than the log position.
type axieTransfer struct {
	token common.Address
	name  string
}

func newAxieTransfer(
	cfg config.ScannerConfig, contracts *registry.Registry, _ *logger.Logger,
) (pkgscanner.Strategy, error) {
	token, err := addressOr(cfg.TokenContract, registry.AxieAddress)
	if err != nil {
		return nil, fmt.Errorf("token_contract: %w", err)
	}

	name := "AXIE"
	if contracts != nil {
		if c, ok := contracts.Lookup(token); ok && c.Name != "" {
			name = c.Name
		}
	}

	return &axieTransfer{token: token, name: name}, nil
}

func (s *axieTransfer) Kind() record.Kind    { return record.KindAxieTransfer }
func (s *axieTransfer) GenesisBlock() uint64 { return AxieGenesisBlock }
func (s *axieTransfer) NeedsReceipt() bool   { return false }

func (s *axieTransfer) Subscriptions() []pkgscanner.Subscription {
	return []pkgscanner.Subscription{{Address: s.token, Event: ERC721Transfer}}
}

func (s *axieTransfer) Map(in pkgscanner.LogInput) (record.Record, error) {
	if in.Log.Address != s.token {
		return nil, pkgscanner.ErrUnsupported
	}

	from, to, tokenID, err := transferParams(in.Params, "_tokenId")
	if err != nil {
		return nil, err
	}

	return &record.Transfer{
		From:      from,
		To:        to,
		Token:     s.token,
		TokenName: s.name,
		Value:     tokenID,
		ERC:       string(registry.ERC721),
		Block:     in.Block.Number,
		TxHash:    in.Tx.Hash,
		LogIndex:  in.Tx.LogIndex,
		CreatedAt: in.Block.TimestampMillis(),
		Variant:   record.KindAxieTransfer,
	}, nil
}
