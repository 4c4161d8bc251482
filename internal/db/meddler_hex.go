package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("address", HexMeddler[common.Address]{parse: common.HexToAddress})
	meddler.Register("hash", HexMeddler[common.Hash]{parse: common.HexToHash})
}

type hexValue interface {
	common.Address | common.Hash
	Hex() string
}

// HexMeddler stores addresses and hashes as 0x-prefixed hex text.
// Both values and pointers are supported; a nil pointer maps to NULL.
type HexMeddler[T hexValue] struct {
	parse func(string) T
}

func (HexMeddler[T]) PreRead(any) (any, error) {
	return new(sql.NullString), nil
}

func (m HexMeddler[T]) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case **T:
		if !ns.Valid {
			*ptr = nil
			return nil
		}
		v := m.parse(ns.String)
		*ptr = &v
	case *T:
		var zero T
		*ptr = zero
		if ns.Valid {
			*ptr = m.parse(ns.String)
		}
	default:
		return fmt.Errorf("cannot read hex column into %T", fieldAddr)
	}

	return nil
}

func (HexMeddler[T]) PreWrite(field any) (any, error) {
	switch v := field.(type) {
	case *T:
		if v == nil {
			return nil, nil
		}
		return (*v).Hex(), nil
	case T:
		return v.Hex(), nil
	default:
		return nil, fmt.Errorf("cannot write %T as hex column", field)
	}
}
