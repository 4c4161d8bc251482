package scanner

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainScanner/internal/abi"
)

// BuildFilter returns the log query of one (contract, event) pair over an inclusive block window.
// Only the first topic is constrained.
func BuildFilter(address common.Address, event *abi.EventSignature, from, to uint64) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{address},
		Topics:    [][]common.Hash{{event.Topic}},
	}
}
