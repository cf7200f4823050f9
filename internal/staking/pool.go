package staking

import (
	"errors"
	"fmt"

	"stakeScope/internal/model"
)

// ErrAccountNotFound is returned when the ledger has no account at the address.
var ErrAccountNotFound = errors.New("account not found")

// DecodePool decodes a StakePool account. found is false when the account
// does not exist.
//
// It never fails the caller: on any problem it returns the zero record and an
// error that describes why, for logging.
func DecodePool(data []byte, found bool) (model.PoolRecord, error) {
	if !found {
		return model.PoolRecord{}, ErrAccountNotFound
	}

	r := PoolLayoutV1.NewReader(data)
	r.Expect(FieldDiscriminator, PoolDiscriminator[:])

	var rec model.PoolRecord
	copy(rec.Discriminator[:], r.Bytes(FieldDiscriminator))
	rec.Bump = r.Uint8(FieldBump)
	rec.Nonce = r.Uint8(FieldNonce)
	rec.Mint = r.PublicKey(FieldMint)
	rec.Creator = r.PublicKey(FieldCreator)
	rec.Authority = r.PublicKey(FieldAuthority)
	rec.MinWeight = r.Uint64(FieldMinWeight)
	rec.MaxWeight = r.Uint64(FieldMaxWeight)
	rec.MinDuration = r.Uint64(FieldMinDuration)
	rec.MaxDuration = r.Uint64(FieldMaxDuration)
	rec.Permissionless = r.Bool(FieldPermissionless)
	rec.Vault = r.PublicKey(FieldVault)
	rec.StakeMint = r.PublicKey(FieldStakeMint)
	rec.TotalStake = r.Uint64(FieldTotalStake)

	if err := r.Err(); err != nil {
		return model.PoolRecord{}, fmt.Errorf("decode stake pool: %w", err)
	}
	return rec, nil
}
