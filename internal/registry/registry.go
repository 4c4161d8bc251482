package registry

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
)

// ERCKind is the token standard of a contract.
type ERCKind string

const (
	ERCNone ERCKind = ""
	ERC20   ERCKind = "erc20"
	ERC721  ERCKind = "erc721"
)

// ParseERCKind parses "erc20", "erc721" or an empty string.
func ParseERCKind(s string) (ERCKind, error) {
	switch k := ERCKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ERCNone, ERC20, ERC721:
		return k, nil
	default:
		return "", fmt.Errorf("unknown erc kind %q", s)
	}
}

// Contract is the static metadata of one contract.
type Contract struct {
	Address  common.Address
	Name     string
	Decimals uint8
	ERC      ERCKind
}

// FormatAmount renders a raw integer amount using the contract decimals, e.g. 1500000000000000000 -> "1.5".
func (c Contract) FormatAmount(raw *big.Int) string {
	if raw == nil {
		return "0"
	}
	if c.Decimals == 0 {
		return raw.String()
	}

	neg := raw.Sign() < 0
	digits := new(big.Int).Abs(raw).String()
	d := int(c.Decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}

	whole, frac := digits[:len(digits)-d], strings.TrimRight(digits[len(digits)-d:], "0")
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Registry is a read-only address to contract lookup table. It is safe for concurrent use
// because it is never mutated after construction.
type Registry struct {
	byAddress map[common.Address]Contract
	order     []common.Address
}

// New builds a registry. Duplicate addresses are rejected.
func New(contracts ...Contract) (*Registry, error) {
	r := &Registry{byAddress: make(map[common.Address]Contract, len(contracts))}

	for _, c := range contracts {
		if _, exists := r.byAddress[c.Address]; exists {
			return nil, fmt.Errorf("duplicate registry address %s", c.Address.Hex())
		}
		r.byAddress[c.Address] = c
		r.order = append(r.order, c.Address)
	}

	return r, nil
}

// Merge returns a new registry with overrides applied on top of r. Entries with a known address
// replace the existing entry in place; new addresses are appended.
func (r *Registry) Merge(overrides ...Contract) *Registry {
	merged := &Registry{
		byAddress: make(map[common.Address]Contract, len(r.byAddress)+len(overrides)),
		order:     slices.Clone(r.order),
	}
	for addr, c := range r.byAddress {
		merged.byAddress[addr] = c
	}

	for _, c := range overrides {
		if _, exists := merged.byAddress[c.Address]; !exists {
			merged.order = append(merged.order, c.Address)
		}
		merged.byAddress[c.Address] = c
	}

	return merged
}

// FromConfig returns the built-in registry merged with the configured entries.
func FromConfig(entries []config.ContractConfig) (*Registry, error) {
	overrides := make([]Contract, 0, len(entries))
	for i, e := range entries {
		erc, err := ParseERCKind(e.ERC)
		if err != nil {
			return nil, fmt.Errorf("registry[%d]: %w", i, err)
		}
		if !common.IsHexAddress(e.Address) {
			return nil, fmt.Errorf("registry[%d]: invalid address %q", i, e.Address)
		}

		overrides = append(overrides, Contract{
			Address:  common.HexToAddress(e.Address),
			Name:     e.Name,
			Decimals: e.Decimals,
			ERC:      erc,
		})
	}

	return Ronin().Merge(overrides...), nil
}

// Lookup returns the contract registered at addr.
func (r *Registry) Lookup(addr common.Address) (Contract, bool) {
	c, ok := r.byAddress[addr]
	return c, ok
}

// ByName returns the first contract with the given display name (case-insensitive).
func (r *Registry) ByName(name string) (Contract, bool) {
	for _, addr := range r.order {
		if c := r.byAddress[addr]; strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Contract{}, false
}

// ByKind returns the contracts of one ERC kind in registration order.
func (r *Registry) ByKind(kind ERCKind) []Contract {
	var out []Contract
	for _, addr := range r.order {
		if c := r.byAddress[addr]; c.ERC == kind {
			out = append(out, c)
		}
	}
	return out
}

// All returns every contract in registration order.
func (r *Registry) All() []Contract {
	out := make([]Contract, 0, len(r.order))
	for _, addr := range r.order {
		out = append(out, r.byAddress[addr])
	}
	return out
}

// Len returns the number of contracts.
func (r *Registry) Len() int {
	return len(r.order)
}
