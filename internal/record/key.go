package record

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const keySeparator = "|"

// Key derives the idempotency key of r: the keccak256 hash, as 0x-prefixed hex, of the record's
// key material joined with "|". Addresses are lower-case hex and numbers are decimal, so the same
// logical event always maps to the same key.
func Key(r Record) string {
	return crypto.Keccak256Hash([]byte(strings.Join(r.KeyMaterial(), keySeparator))).Hex()
}

// Stamp computes the key of r and stores it on the record.
func Stamp(r Record) string {
	k := Key(r)
	r.SetKey(k)
	return k
}

func addr(a common.Address) string {
	return strings.ToLower(a.Hex())
}

func uintStr(v uint64) string {
	return strconv.FormatUint(v, 10)
}
