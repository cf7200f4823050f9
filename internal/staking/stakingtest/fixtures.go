// Package stakingtest builds StakePool and StakeEntry account buffers for tests.
package stakingtest

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"stakeScope/internal/chain"
	"stakeScope/internal/model"
	"stakeScope/internal/staking"
)

// PoolBytes encodes rec with the v1 StakePool layout. The discriminator is
// always the StakePool one, whatever rec.Discriminator holds.
func PoolBytes(rec model.PoolRecord) []byte {
	l := staking.PoolLayoutV1
	buf := make([]byte, l.MinLength())

	copy(buf[l.Offset(staking.FieldDiscriminator):], staking.PoolDiscriminator[:])
	buf[l.Offset(staking.FieldBump)] = rec.Bump
	buf[l.Offset(staking.FieldNonce)] = rec.Nonce
	copy(buf[l.Offset(staking.FieldMint):], rec.Mint[:])
	copy(buf[l.Offset(staking.FieldCreator):], rec.Creator[:])
	copy(buf[l.Offset(staking.FieldAuthority):], rec.Authority[:])
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldMinWeight):], rec.MinWeight)
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldMaxWeight):], rec.MaxWeight)
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldMinDuration):], rec.MinDuration)
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldMaxDuration):], rec.MaxDuration)
	if rec.Permissionless {
		buf[l.Offset(staking.FieldPermissionless)] = 1
	}
	copy(buf[l.Offset(staking.FieldVault):], rec.Vault[:])
	copy(buf[l.Offset(staking.FieldStakeMint):], rec.StakeMint[:])
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldTotalStake):], rec.TotalStake)
	return buf
}

// EntryBytes encodes rec as a v1 StakeEntry account of pool.
func EntryBytes(rec model.StakeEntryRecord, pool solana.PublicKey) []byte {
	l := staking.EntryLayoutV1
	buf := make([]byte, l.MinLength())

	copy(buf[l.Offset(staking.FieldDiscriminator):], staking.EntryDiscriminator[:])
	binary.LittleEndian.PutUint32(buf[l.Offset(staking.FieldNonce):], rec.Nonce)
	copy(buf[l.Offset(staking.FieldStakePool):], pool[:])
	copy(buf[l.Offset(staking.FieldPayer):], rec.Payer[:])
	copy(buf[l.Offset(staking.FieldAuthority):], rec.Authority[:])
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldAmount):], rec.Amount)
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldDuration):], rec.Duration)
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldCreatedTs):], uint64(rec.CreatedTs))
	binary.LittleEndian.PutUint64(buf[l.Offset(staking.FieldClosedTs):], uint64(rec.ClosedTs))
	return buf
}

// Account wraps raw bytes the way the RPC client returns them.
func Account(pubkey string, data []byte) chain.Account {
	return chain.Account{
		Pubkey: pubkey,
		Data:   chain.AccountData{base64.StdEncoding.EncodeToString(data), chain.EncodingBase64},
	}
}

// Key returns a deterministic, distinct public key for seed.
func Key(seed byte) solana.PublicKey {
	var key solana.PublicKey
	for i := range key {
		key[i] = seed
	}
	return key
}
