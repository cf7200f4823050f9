// Package staking decodes StakePool and StakeEntry accounts of the staking program.
package staking

import (
	"github.com/gagliardetto/solana-go"

	"stakeScope/internal/chain"
	"stakeScope/internal/layout"
)

// Account names as declared by the program; they seed the discriminators.
const (
	PoolAccountName  = "StakePool"
	EntryAccountName = "StakeEntry"
)

// SchemaVersion is the account layout version decoded by this package.
const SchemaVersion = 1

// Field names shared by the layouts.
const (
	FieldDiscriminator   = "discriminator"
	FieldBump            = "bump"
	FieldNonce           = "nonce"
	FieldMint            = "mint"
	FieldCreator         = "creator"
	FieldAuthority       = "authority"
	FieldMinWeight       = "minWeight"
	FieldMaxWeight       = "maxWeight"
	FieldMinDuration     = "minDuration"
	FieldMaxDuration     = "maxDuration"
	FieldPermissionless  = "permissionless"
	FieldVault           = "vault"
	FieldStakeMint       = "stakeMint"
	FieldTotalStake      = "totalStake"
	FieldStakePool       = "stakePool"
	FieldPayer           = "payer"
	FieldAmount          = "amount"
	FieldDuration        = "duration"
	FieldEffectiveAmount = "effectiveAmount"
	FieldCreatedTs       = "createdTs"
	FieldClosedTs        = "closedTs"
)

var (
	PoolDiscriminator  = layout.AnchorDiscriminator(PoolAccountName)
	EntryDiscriminator = layout.AnchorDiscriminator(EntryAccountName)
)

// PoolLayoutV1 is the StakePool account table. Minimum length 211.
var PoolLayoutV1 = layout.MustNew(PoolAccountName, SchemaVersion,
	layout.Field{Name: FieldDiscriminator, Offset: 0, Width: layout.DiscriminatorLength, Kind: layout.KindBytes},
	layout.Field{Name: FieldBump, Offset: 8, Width: 1, Kind: layout.KindUint8},
	layout.Field{Name: FieldNonce, Offset: 9, Width: 1, Kind: layout.KindUint8},
	layout.Field{Name: FieldMint, Offset: 10, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldCreator, Offset: 42, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldAuthority, Offset: 74, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldMinWeight, Offset: 106, Width: 8, Kind: layout.KindUint64},
	layout.Field{Name: FieldMaxWeight, Offset: 114, Width: 8, Kind: layout.KindUint64},
	layout.Field{Name: FieldMinDuration, Offset: 122, Width: 8, Kind: layout.KindUint64},
	layout.Field{Name: FieldMaxDuration, Offset: 130, Width: 8, Kind: layout.KindUint64},
	layout.Field{Name: FieldPermissionless, Offset: 138, Width: 1, Kind: layout.KindBool},
	layout.Field{Name: FieldVault, Offset: 139, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldStakeMint, Offset: 171, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldTotalStake, Offset: 203, Width: 8, Kind: layout.KindUint64},
)

// EntryLayoutV1 is the StakeEntry account table. Minimum length 156.
// effectiveAmount is a u128 that is reserved but not decoded.
var EntryLayoutV1 = layout.MustNew(EntryAccountName, SchemaVersion,
	layout.Field{Name: FieldDiscriminator, Offset: 0, Width: layout.DiscriminatorLength, Kind: layout.KindBytes},
	layout.Field{Name: FieldNonce, Offset: 8, Width: 4, Kind: layout.KindUint32},
	layout.Field{Name: FieldStakePool, Offset: 12, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldPayer, Offset: 44, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldAuthority, Offset: 76, Width: layout.AddressLength, Kind: layout.KindPublicKey},
	layout.Field{Name: FieldAmount, Offset: 108, Width: 8, Kind: layout.KindUint64},
	layout.Field{Name: FieldDuration, Offset: 116, Width: 8, Kind: layout.KindUint64},
	layout.Field{Name: FieldEffectiveAmount, Offset: 124, Width: 16, Kind: layout.KindSkip},
	layout.Field{Name: FieldCreatedTs, Offset: 140, Width: 8, Kind: layout.KindInt64},
	layout.Field{Name: FieldClosedTs, Offset: 148, Width: 8, Kind: layout.KindInt64},
)

// EntryFilters returns the server-side filters that select the StakeEntry
// accounts of pool: the discriminator at offset 0 and the pool address at
// the stakePool offset.
func EntryFilters(pool solana.PublicKey) []chain.Memcmp {
	return []chain.Memcmp{
		chain.NewMemcmp(EntryLayoutV1.Offset(FieldDiscriminator), EntryDiscriminator[:]),
		chain.NewMemcmp(EntryLayoutV1.Offset(FieldStakePool), pool[:]),
	}
}
