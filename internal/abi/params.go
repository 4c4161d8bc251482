package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Value is one decoded parameter.
type Value struct {
	Param
	Value any
}

// Params are decoded parameters in declaration order.
type Params []Value

// Get returns the value of the named parameter.
func (p Params) Get(name string) (any, bool) {
	for _, v := range p {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// Address returns the named address parameter.
func (p Params) Address(name string) (common.Address, error) {
	v, ok := p.Get(name)
	if !ok {
		return common.Address{}, fmt.Errorf("missing param %s", name)
	}

	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("param %s is %T, not an address", name, v)
	}
	return addr, nil
}

// BigInt returns the named integer parameter.
func (p Params) BigInt(name string) (*big.Int, error) {
	v, ok := p.Get(name)
	if !ok {
		return nil, fmt.Errorf("missing param %s", name)
	}

	i, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("param %s is %T, not an integer", name, v)
	}
	return i, nil
}

// At returns the parameter at position i of the declaration.
func (p Params) At(i int) (Value, error) {
	if i < 0 || i >= len(p) {
		return Value{}, fmt.Errorf("param index %d out of range (%d params)", i, len(p))
	}
	return p[i], nil
}
