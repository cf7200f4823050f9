package model

import "github.com/gagliardetto/solana-go"

// PoolRecord is the decoded StakePool account. The zero value is the
// default used when the account is missing or cannot be decoded.
type PoolRecord struct {
	Discriminator  [8]byte
	Bump           uint8
	Nonce          uint8
	Mint           solana.PublicKey
	Creator        solana.PublicKey
	Authority      solana.PublicKey
	MinWeight      uint64
	MaxWeight      uint64
	MinDuration    uint64
	MaxDuration    uint64
	Permissionless bool
	Vault          solana.PublicKey
	StakeMint      solana.PublicKey
	TotalStake     uint64
}

// IsZero reports whether the record is the zero default.
func (p PoolRecord) IsZero() bool {
	return p == PoolRecord{}
}
