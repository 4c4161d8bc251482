package record

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies a record variant. Each kind is persisted in its own table.
type Kind string

const (
	KindTokenTransfer Kind = "token_transfer"
	KindAxieTransfer  Kind = "axie_transfer"
	KindSale          Kind = "sale"
	KindTransaction   Kind = "transaction"
	KindBlockStats    Kind = "block_stats"
)

// AllKinds lists every kind in a stable order.
var AllKinds = []Kind{KindTokenTransfer, KindAxieTransfer, KindSale, KindTransaction, KindBlockStats}

var tables = map[Kind]string{
	KindTokenTransfer: "token_transfers",
	KindAxieTransfer:  "axie_transfers",
	KindSale:          "sales",
	KindTransaction:   "transactions",
	KindBlockStats:    "block_stats",
}

// Table returns the table name of the kind.
func (k Kind) Table() string {
	return tables[k]
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := tables[k]; !ok {
		return "", fmt.Errorf("unknown record kind %q", s)
	}
	return k, nil
}

// Record is a domain record ready to be keyed and persisted.
type Record interface {
	Kind() Kind
	BlockNumber() uint64
	// KeyMaterial returns the identifying fields hashed into the idempotency key.
	KeyMaterial() []string
	GetKey() string
	SetKey(key string)
}

// Transfer is an ERC20 or ERC721 transfer. Value holds the amount for ERC20 and the token id for ERC721.
type Transfer struct {
	ID        int64          `meddler:"id,pk"`
	LogID     string         `meddler:"log_id"`
	From      common.Address `meddler:"from_address,address"`
	To        common.Address `meddler:"to_address,address"`
	Token     common.Address `meddler:"token,address"`
	TokenName string         `meddler:"token_name"`
	Value     string         `meddler:"value"`
	ERC       string         `meddler:"erc"`
	Block     uint64         `meddler:"block"`
	TxHash    common.Hash    `meddler:"tx_hash,hash"`
	LogIndex  uint           `meddler:"log_index"`
	CreatedAt int64          `meddler:"created_at"`

	// Variant is KindTokenTransfer or KindAxieTransfer and selects the key material.
	Variant Kind `meddler:"-"`
}

func (t *Transfer) Kind() Kind {
	if t.Variant == "" {
		return KindTokenTransfer
	}
	return t.Variant
}

func (t *Transfer) BlockNumber() uint64 { return t.Block }
func (t *Transfer) GetKey() string      { return t.LogID }
func (t *Transfer) SetKey(key string)   { t.LogID = key }

func (t *Transfer) KeyMaterial() []string {
	if t.Kind() == KindAxieTransfer {
		return []string{addr(t.From), addr(t.To), t.Value, uintStr(t.Block)}
	}
	return []string{t.TxHash.Hex(), uintStr(uint64(t.LogIndex))}
}

// Sale is a marketplace sale correlated with the NFT transfer of the same transaction.
type Sale struct {
	ID           int64          `meddler:"id,pk"`
	LogID        string         `meddler:"log_id"`
	Seller       common.Address `meddler:"seller,address"`
	Buyer        common.Address `meddler:"buyer,address"`
	Token        common.Address `meddler:"token,address"`
	Price        string         `meddler:"price"`
	AxieID       string         `meddler:"axie_id"`
	ListingIndex string         `meddler:"listing_index"`
	Block        uint64         `meddler:"block"`
	TxHash       common.Hash    `meddler:"tx_hash,hash"`
	CreatedAt    int64          `meddler:"created_at"`
}

func (s *Sale) Kind() Kind            { return KindSale }
func (s *Sale) BlockNumber() uint64   { return s.Block }
func (s *Sale) GetKey() string        { return s.LogID }
func (s *Sale) SetKey(key string)     { s.LogID = key }
func (s *Sale) KeyMaterial() []string { return []string{s.TxHash.Hex()} }

// Transaction is a plain chain transaction. To is nil for contract creations.
type Transaction struct {
	ID        int64           `meddler:"id,pk"`
	LogID     string          `meddler:"log_id"`
	From      common.Address  `meddler:"from_address,address"`
	To        *common.Address `meddler:"to_address,address"`
	Hash      common.Hash     `meddler:"hash,hash"`
	Block     uint64          `meddler:"block"`
	CreatedAt int64           `meddler:"created_at"`
}

func (t *Transaction) Kind() Kind            { return KindTransaction }
func (t *Transaction) BlockNumber() uint64   { return t.Block }
func (t *Transaction) GetKey() string        { return t.LogID }
func (t *Transaction) SetKey(key string)     { t.LogID = key }
func (t *Transaction) KeyMaterial() []string { return []string{t.Hash.Hex()} }

// BlockStats is the transaction count of one block.
type BlockStats struct {
	ID      int64  `meddler:"id,pk"`
	LogID   string `meddler:"log_id"`
	Block   uint64 `meddler:"block"`
	TxCount uint64 `meddler:"tx_count"`
}

func (b *BlockStats) Kind() Kind            { return KindBlockStats }
func (b *BlockStats) BlockNumber() uint64   { return b.Block }
func (b *BlockStats) GetKey() string        { return b.LogID }
func (b *BlockStats) SetKey(key string)     { b.LogID = key }
func (b *BlockStats) KeyMaterial() []string { return []string{uintStr(b.Block)} }
