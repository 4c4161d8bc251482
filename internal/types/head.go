package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// HeadMode selects which block tag is treated as the chain head when a scan has no explicit end block.
type HeadMode string

const (
	// HeadLatest uses the latest block tag (no finality guarantees)
	HeadLatest HeadMode = "latest"

	// HeadSafe uses the safe block tag
	HeadSafe HeadMode = "safe"

	// HeadFinalized uses the finalized block tag
	HeadFinalized HeadMode = "finalized"
)

// String returns the string representation of HeadMode.
func (m HeadMode) String() string {
	return string(m)
}

// IsValid checks if the HeadMode value is valid.
func (m HeadMode) IsValid() bool {
	switch m {
	case HeadLatest, HeadSafe, HeadFinalized:
		return true
	default:
		return false
	}
}

// BlockNumber returns the JSON-RPC block tag for the mode.
func (m HeadMode) BlockNumber() rpc.BlockNumber {
	switch m {
	case HeadSafe:
		return rpc.SafeBlockNumber
	case HeadFinalized:
		return rpc.FinalizedBlockNumber
	default:
		return rpc.LatestBlockNumber
	}
}

// ParseHeadMode parses a string into a HeadMode. An empty string means latest.
func ParseHeadMode(s string) (HeadMode, error) {
	if s == "" {
		return HeadLatest, nil
	}

	m := HeadMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid head mode: %s (must be one of: latest, safe, finalized)", s)
	}
	return m, nil
}
