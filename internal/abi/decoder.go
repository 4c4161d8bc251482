package abi

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const wordSize = 32

var (
	// ErrShapeMismatch is matched by decode errors where the topic count, topic0 or data length
	// do not fit the signature.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrTypeMismatch is matched by decode errors where a value cannot be coerced to its declared type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// DecodeError describes why a log could not be decoded against a signature.
type DecodeError struct {
	Kind   error
	Event  string
	Param  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("decode %s: %v: param %s: %s", e.Event, e.Kind, e.Param, e.Reason)
	}
	return fmt.Sprintf("decode %s: %v: %s", e.Event, e.Kind, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func shapeErr(sig *EventSignature, format string, args ...any) error {
	return &DecodeError{Kind: ErrShapeMismatch, Event: sig.Name, Reason: fmt.Sprintf(format, args...)}
}

func typeErr(sig *EventSignature, param, format string, args ...any) error {
	return &DecodeError{Kind: ErrTypeMismatch, Event: sig.Name, Param: param, Reason: fmt.Sprintf(format, args...)}
}

// Decode decodes a raw log against sig. Indexed params are read from topics[1:], the others from data,
// and the result keeps the declaration order of sig. The error is always a *DecodeError.
func Decode(sig *EventSignature, log types.Log) (Params, error) {
	if len(log.Topics) == 0 {
		return nil, shapeErr(sig, "log has no topics")
	}
	if log.Topics[0] != sig.Topic {
		return nil, shapeErr(sig, "topic0 %s does not match %s", log.Topics[0].Hex(), sig.Topic.Hex())
	}
	if len(log.Topics) != sig.ExpectedTopics() {
		return nil, shapeErr(sig, "expected %d topics, got %d", sig.ExpectedTopics(), len(log.Topics))
	}

	dataValues, err := decodeData(sig, log.Data)
	if err != nil {
		return nil, err
	}

	out := make(Params, 0, len(sig.Params))
	topic, data := 1, 0
	for _, p := range sig.Params {
		if p.Indexed {
			v, err := decodeTopic(sig, p, log.Topics[topic])
			if err != nil {
				return nil, err
			}
			out = append(out, Value{Param: p, Value: v})
			topic++
			continue
		}

		out = append(out, Value{Param: p, Value: dataValues[data]})
		data++
	}

	return out, nil
}

func decodeTopic(sig *EventSignature, p Param, topic common.Hash) (any, error) {
	// dynamic indexed values are stored as their keccak hash
	if isDynamic(p.Type) {
		return topic, nil
	}

	return decodeWord(sig, p, topic.Bytes())
}

func decodeData(sig *EventSignature, data []byte) ([]any, error) {
	nonIndexed := sig.NonIndexedParams()

	if !sig.dynamicData {
		if len(data) != wordSize*len(nonIndexed) {
			return nil, shapeErr(sig, "expected %d bytes of data, got %d", wordSize*len(nonIndexed), len(data))
		}

		values := make([]any, len(nonIndexed))
		for i, p := range nonIndexed {
			v, err := decodeWord(sig, p, data[i*wordSize:(i+1)*wordSize])
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}

	if len(data) < wordSize*len(nonIndexed) || len(data)%wordSize != 0 {
		return nil, shapeErr(sig, "data length %d does not fit %d params", len(data), len(nonIndexed))
	}

	values, err := sig.data.UnpackValues(data)
	if err != nil {
		return nil, typeErr(sig, "", "%v", err)
	}
	for i, v := range values {
		values[i] = toBigInt(v)
	}
	return values, nil
}

// toBigInt widens the native integers go-ethereum unpacks for types of 64 bits or less,
// so every integer param is a *big.Int.
func toBigInt(v any) any {
	switch n := v.(type) {
	case uint8:
		return new(big.Int).SetUint64(uint64(n))
	case uint16:
		return new(big.Int).SetUint64(uint64(n))
	case uint32:
		return new(big.Int).SetUint64(uint64(n))
	case uint64:
		return new(big.Int).SetUint64(n)
	case int8:
		return big.NewInt(int64(n))
	case int16:
		return big.NewInt(int64(n))
	case int32:
		return big.NewInt(int64(n))
	case int64:
		return big.NewInt(n)
	}
	return v
}

// decodeWord coerces one 32-byte word into the Go value of an elementary static type,
// rejecting words whose padding or range does not fit the type.
func decodeWord(sig *EventSignature, p Param, word []byte) (any, error) {
	switch {
	case p.Type == "address":
		if !isZero(word[:12]) {
			return nil, typeErr(sig, p.Name, "address word has non-zero padding")
		}
		return common.BytesToAddress(word[12:]), nil

	case p.Type == "bool":
		if !isZero(word[:31]) || word[31] > 1 {
			return nil, typeErr(sig, p.Name, "bool word is not 0 or 1")
		}
		return word[31] == 1, nil

	case strings.HasPrefix(p.Type, "bytes"):
		n, _ := strconv.Atoi(strings.TrimPrefix(p.Type, "bytes"))
		if !isZero(word[n:]) {
			return nil, typeErr(sig, p.Name, "%s word has non-zero padding", p.Type)
		}
		return common.CopyBytes(word[:n]), nil

	case strings.HasPrefix(p.Type, "uint"):
		bits := intBits(p.Type, "uint")
		v := new(big.Int).SetBytes(word)
		if v.BitLen() > bits {
			return nil, typeErr(sig, p.Name, "value %s overflows %s", v, p.Type)
		}
		return v, nil

	case strings.HasPrefix(p.Type, "int"):
		bits := intBits(p.Type, "int")
		v := new(big.Int).SetBytes(word)
		if word[0]&0x80 != 0 {
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), wordSize*8))
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, typeErr(sig, p.Name, "value %s overflows %s", v, p.Type)
		}
		return v, nil
	}

	return nil, typeErr(sig, p.Name, "type %s cannot be read from a single word", p.Type)
}

func intBits(typ, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(typ, prefix))
	if err != nil {
		return wordSize * 8
	}
	return n
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
