package chain

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
)

// EncodingBase64 is the only account data encoding requested by this client.
const EncodingBase64 = "base64"

// Account is one account as returned by the ledger.
type Account struct {
	Pubkey   string
	Owner    string
	Lamports uint64
	Data     AccountData
}

// AccountData is the wire form of account bytes: [payload, encoding].
type AccountData []string

// Bytes decodes the payload.
func (d AccountData) Bytes() ([]byte, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("account data is empty")
	}
	if len(d) > 1 && d[1] != EncodingBase64 {
		return nil, fmt.Errorf("unsupported account data encoding %q", d[1])
	}
	raw, err := base64.StdEncoding.DecodeString(d[0])
	if err != nil {
		return nil, fmt.Errorf("decode base64 account data: %w", err)
	}
	return raw, nil
}

// Memcmp selects accounts whose bytes at Offset equal the base-58 string Bytes.
type Memcmp struct {
	Offset int    `json:"offset"`
	Bytes  string `json:"bytes"`
}

// NewMemcmp builds a filter from raw bytes.
func NewMemcmp(offset int, raw []byte) Memcmp {
	return Memcmp{Offset: offset, Bytes: base58.Encode(raw)}
}

type filter struct {
	Memcmp Memcmp `json:"memcmp"`
}

type accountQuery struct {
	Encoding string   `json:"encoding"`
	Filters  []filter `json:"filters,omitempty"`
}

type accountValue struct {
	Data       AccountData `json:"data"`
	Owner      string      `json:"owner"`
	Lamports   uint64      `json:"lamports"`
	Executable bool        `json:"executable"`
}

type accountInfoResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value *accountValue `json:"value"`
}

type programAccountResult struct {
	Pubkey  string       `json:"pubkey"`
	Account accountValue `json:"account"`
}
