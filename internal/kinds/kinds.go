// Package kinds holds the strategy of every record kind. Importing it registers them all.
package kinds

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
)

// Event signatures of the scanned contracts.
var (
	ERC20Transfer = abi.MustParseEventSignature(
		"Transfer(address indexed _from, address indexed _to, uint256 _value)")
	ERC721Transfer = abi.MustParseEventSignature(
		"Transfer(address indexed _from, address indexed _to, uint256 indexed _tokenId)")
	AuctionSuccessful = abi.MustParseEventSignature(
		"AuctionSuccessful(address _seller, address _buyer, uint256 _listingIndex, address _token, uint256 _totalPrice)")
)

// AxieGenesisBlock is the first block of the Axie marketplace era on Ronin.
const AxieGenesisBlock = 2678592

func init() {
	pkgscanner.Register(string(record.KindTokenTransfer), newTokenTransfer)
	pkgscanner.Register(string(record.KindAxieTransfer), newAxieTransfer)
	pkgscanner.Register(string(record.KindSale), newSale)
	pkgscanner.Register(string(record.KindTransaction), newTransaction)
	pkgscanner.Register(string(record.KindBlockStats), newBlockStats)
}

// addressOr parses an optional configured address, falling back to def.
func addressOr(configured string, def common.Address) (common.Address, error) {
	if configured == "" {
		return def, nil
	}
	if !common.IsHexAddress(configured) {
		return common.Address{}, fmt.Errorf("invalid address '%s'", configured)
	}
	return common.HexToAddress(configured), nil
}

// transferParams reads the parameters shared by both Transfer signatures.
func transferParams(params abi.Params, amount string) (common.Address, common.Address, string, error) {
	from, err := params.Address("_from")
	if err != nil {
		return common.Address{}, common.Address{}, "", err
	}
	to, err := params.Address("_to")
	if err != nil {
		return common.Address{}, common.Address{}, "", err
	}
	v, err := params.BigInt(amount)
	if err != nil {
		return common.Address{}, common.Address{}, "", err
	}
	return from, to, v.String(), nil
}
