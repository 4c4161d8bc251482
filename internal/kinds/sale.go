package kinds

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
)

// sale records marketplace sales. The sold axie is not part of the sale event, so it is taken from
// the first AXIE transfer in the same transaction.
type sale struct {
	marketplace common.Address
	axie        common.Address
}

func newSale(cfg config.ScannerConfig, _ *registry.Registry, _ *logger.Logger) (pkgscanner.Strategy, error) {
	marketplace, err := addressOr(cfg.Marketplace, registry.MarketplaceAddress)
	if err != nil {
		return nil, fmt.Errorf("marketplace: %w", err)
	}
	axie, err := addressOr(cfg.TokenContract, registry.AxieAddress)
	if err != nil {
		return nil, fmt.Errorf("token_contract: %w", err)
	}

	return &sale{marketplace: marketplace, axie: axie}, nil
}

func (s *sale) Kind() record.Kind    { return record.KindSale }
func (s *sale) GenesisBlock() uint64 { return AxieGenesisBlock }
func (s *sale) NeedsReceipt() bool   { return true }

func (s *sale) Subscriptions() []pkgscanner.Subscription {
	return []pkgscanner.Subscription{{Address: s.marketplace, Event: AuctionSuccessful}}
}

func (s *sale) Map(in pkgscanner.LogInput) (record.Record, error) {
	if in.Log.Address != s.marketplace {
		return nil, pkgscanner.ErrUnsupported
	}

	seller, err := in.Params.Address("_seller")
	if err != nil {
		return nil, err
	}
	buyer, err := in.Params.Address("_buyer")
	if err != nil {
		return nil, err
	}
	listing, err := in.Params.BigInt("_listingIndex")
	if err != nil {
		return nil, err
	}
	token, err := in.Params.Address("_token")
	if err != nil {
		return nil, err
	}
	price, err := in.Params.BigInt("_totalPrice")
	if err != nil {
		return nil, err
	}

	axieID, err := s.soldAxie(in.Tx)
	if err != nil {
		return nil, err
	}

	return &record.Sale{
		Seller:       seller,
		Buyer:        buyer,
		Token:        token,
		Price:        price.String(),
		AxieID:       axieID,
		ListingIndex: listing.String(),
		Block:        in.Block.Number,
		TxHash:       in.Tx.Hash,
		CreatedAt:    in.Block.TimestampMillis(),
	}, nil
}

func (s *sale) soldAxie(tx pkgscanner.TxMeta) (string, error) {
	for _, l := range tx.Receipt {
		if l.Address != s.axie || len(l.Topics) == 0 || l.Topics[0] != ERC721Transfer.Topic {
			continue
		}

		params, err := abi.Decode(ERC721Transfer, l)
		if err != nil {
			continue
		}
		id, err := params.BigInt("_tokenId")
		if err != nil {
			continue
		}
		return id.String(), nil
	}

	return "", fmt.Errorf("no AXIE transfer in transaction %s", tx.Hash.Hex())
}
