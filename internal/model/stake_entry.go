package model

import "github.com/gagliardetto/solana-go"

// StakeEntryRecord is one decoded StakeEntry account. The pool it belongs to
// is selected by the query filter and is not kept on the record.
type StakeEntryRecord struct {
	Nonce     uint32
	Payer     solana.PublicKey
	Authority solana.PublicKey
	Amount    uint64
	Duration  uint64
	CreatedTs int64
	ClosedTs  int64
}

// IsOpen reports whether the entry has not been closed.
func (e StakeEntryRecord) IsOpen() bool {
	return e.ClosedTs == 0
}
