package abi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	eventNameRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9_]*$`)
	paramNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	fixedBytes  = regexp.MustCompile(`^bytes([1-9]|[12][0-9]|3[0-2])$`)
	sizedInt    = regexp.MustCompile(`^u?int(8|16|24|32|40|48|56|64|72|80|88|96|104|112|120|128|136|144|152|160|168|176|184|192|200|208|216|224|232|240|248|256)?$`) //nolint:lll
	fixedArray  = regexp.MustCompile(`\[\d+\]$`)
)

// Param is one declared parameter of an event.
type Param struct {
	Name    string
	Type    string
	Indexed bool
}

// EventSignature is an immutable, parsed event declaration together with its topic hash.
// It is safe for concurrent use.
type EventSignature struct {
	Name   string
	Params []Param
	Topic  common.Hash

	// data holds the ABI arguments of the non-indexed params, in declaration order
	data ethabi.Arguments
	// dynamicData is set when a non-indexed param has a dynamically sized encoding
	dynamicData bool
}

// ParseEventSignature parses an event declaration.
// Supported formats:
//   - "Transfer(address,address,uint256)"
//   - "Transfer(address indexed from, address indexed to, uint256 value)"
//   - "Transfer(address from, address to, uint256 value)"
func ParseEventSignature(sig string) (*EventSignature, error) {
	sig = strings.TrimSpace(sig)
	if sig == "" {
		return nil, fmt.Errorf("empty signature")
	}

	openParen := strings.Index(sig, "(")
	if openParen == -1 {
		return nil, fmt.Errorf("invalid signature: missing opening parenthesis")
	}

	name := strings.TrimSpace(sig[:openParen])
	if !eventNameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid event name '%s': must start "+
			"with uppercase letter and contain only alphanumeric characters", name)
	}

	closeParen := strings.LastIndex(sig, ")")
	if closeParen <= openParen || closeParen != len(sig)-1 {
		return nil, fmt.Errorf("invalid signature: malformed parentheses")
	}

	params, err := parseParams(sig[openParen+1 : closeParen])
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}

	return newEventSignature(name, params)
}

// MustParseEventSignature is ParseEventSignature for static declarations. It panics on error.
func MustParseEventSignature(sig string) *EventSignature {
	s, err := ParseEventSignature(sig)
	if err != nil {
		panic(fmt.Sprintf("event signature %q: %v", sig, err))
	}
	return s
}

func newEventSignature(name string, params []Param) (*EventSignature, error) {
	s := &EventSignature{Name: name, Params: params}

	for _, p := range params {
		if p.Indexed {
			continue
		}

		typ, err := ethabi.NewType(canonicalType(p.Type), "", nil)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		if isDynamic(p.Type) {
			s.dynamicData = true
		}
		s.data = append(s.data, ethabi.Argument{Name: p.Name, Type: typ})
	}

	if len(s.IndexedParams()) > maxIndexed {
		return nil, fmt.Errorf("event %s has %d indexed parameters, at most %d allowed",
			name, len(s.IndexedParams()), maxIndexed)
	}

	s.Topic = crypto.Keccak256Hash([]byte(s.Canonical()))
	return s, nil
}

const maxIndexed = 3

func parseParams(paramsStr string) ([]Param, error) {
	paramsStr = strings.TrimSpace(paramsStr)
	if paramsStr == "" {
		return []Param{}, nil
	}

	parts := strings.Split(paramsStr, ",")
	params := make([]Param, 0, len(parts))
	seen := make(map[string]bool)

	for i, part := range parts {
		p, err := parseParam(strings.TrimSpace(part), i)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter '%s': %w", part, err)
		}

		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate parameter name: %s", p.Name)
		}
		seen[p.Name] = true

		params = append(params, p)
	}

	return params, nil
}

// parseParam parses "type", "type name", "type indexed" or "type indexed name".
func parseParam(s string, index int) (Param, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Param{}, fmt.Errorf("empty parameter")
	}

	p := Param{Type: fields[0], Name: "param" + strconv.Itoa(index)}
	if !IsValidType(p.Type) {
		return Param{}, fmt.Errorf("unsupported type: %s", p.Type)
	}

	switch len(fields) {
	case 1:
	case 2: //nolint:mnd
		if fields[1] == "indexed" {
			p.Indexed = true
		} else {
			p.Name = fields[1]
		}
	case 3: //nolint:mnd
		if fields[1] != "indexed" {
			return Param{}, fmt.Errorf("expected 'indexed' keyword, got '%s'", fields[1])
		}
		p.Indexed = true
		p.Name = fields[2]
	default:
		return Param{}, fmt.Errorf("too many parts in parameter definition")
	}

	if !paramNameRe.MatchString(p.Name) {
		return Param{}, fmt.Errorf("invalid parameter name: %s", p.Name)
	}

	return p, nil
}

// IsValidType reports whether typ is an elementary type or an array of one. Tuples are not supported.
func IsValidType(typ string) bool {
	switch typ {
	case "address", "bool", "string", "bytes":
		return true
	}

	if fixedBytes.MatchString(typ) || sizedInt.MatchString(typ) {
		return true
	}

	if base, ok := strings.CutSuffix(typ, "[]"); ok {
		return IsValidType(base)
	}

	if fixedArray.MatchString(typ) {
		return IsValidType(fixedArray.ReplaceAllString(typ, ""))
	}

	return false
}

func isDynamic(typ string) bool {
	return typ == "string" || typ == "bytes" || strings.Contains(typ, "[")
}

// Canonical returns the signature used for the topic hash, e.g. "Transfer(address,address,uint256)".
// Type aliases are normalized (uint -> uint256, int -> int256).
func (e *EventSignature) Canonical() string {
	types := make([]string, len(e.Params))
	for i, p := range e.Params {
		types[i] = canonicalType(p.Type)
	}

	return e.Name + "(" + strings.Join(types, ",") + ")"
}

func canonicalType(typ string) string {
	for _, alias := range []string{"uint", "int"} {
		if rest, ok := strings.CutPrefix(typ, alias); ok && (rest == "" || rest[0] == '[') {
			return alias + "256" + rest
		}
	}
	return typ
}

// String returns the full declaration including indexed markers and names.
func (e *EventSignature) String() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		if p.Indexed {
			parts[i] = p.Type + " indexed " + p.Name
		} else {
			parts[i] = p.Type + " " + p.Name
		}
	}

	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// IndexedParams returns only the indexed parameters.
func (e *EventSignature) IndexedParams() []Param {
	var indexed []Param
	for _, p := range e.Params {
		if p.Indexed {
			indexed = append(indexed, p)
		}
	}
	return indexed
}

// NonIndexedParams returns only the non-indexed parameters.
func (e *EventSignature) NonIndexedParams() []Param {
	var nonIndexed []Param
	for _, p := range e.Params {
		if !p.Indexed {
			nonIndexed = append(nonIndexed, p)
		}
	}
	return nonIndexed
}

// ExpectedTopics is the topic count of a matching log: the signature topic plus one per indexed param.
func (e *EventSignature) ExpectedTopics() int {
	return 1 + len(e.IndexedParams())
}
