package staking_test

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakeScope/internal/chain"
	"stakeScope/internal/layout"
	"stakeScope/internal/model"
	"stakeScope/internal/staking"
	"stakeScope/internal/staking/stakingtest"
)

var (
	poolKey      = stakingtest.Key(7)
	otherPoolKey = stakingtest.Key(8)
)

func samplePool() model.PoolRecord {
	return model.PoolRecord{
		Discriminator:  staking.PoolDiscriminator,
		Bump:           254,
		Nonce:          1,
		Mint:           stakingtest.Key(1),
		Creator:        stakingtest.Key(2),
		Authority:      stakingtest.Key(3),
		MinWeight:      1_000_000_000,
		MaxWeight:      4_000_000_000,
		MinDuration:    864000,
		MaxDuration:    31_536_000,
		Permissionless: true,
		Vault:          stakingtest.Key(4),
		StakeMint:      stakingtest.Key(5),
		TotalStake:     8589934591,
	}
}

func TestSchemaMinLengths(t *testing.T) {
	assert.Equal(t, 211, staking.PoolLayoutV1.MinLength())
	assert.Equal(t, 156, staking.EntryLayoutV1.MinLength())
}

func TestEntryFilters(t *testing.T) {
	pool := chainKey(t, "2uBHsavcfVQAgs8nMuMwogaap9BV1MwQuADearz1e6Kg")

	filters := staking.EntryFilters(pool)
	assert.Equal(t, []chain.Memcmp{
		{Offset: 0, Bytes: "YMx1BScecEs"},
		{Offset: 12, Bytes: "2uBHsavcfVQAgs8nMuMwogaap9BV1MwQuADearz1e6Kg"},
	}, filters)
}

func TestDecodePool(t *testing.T) {
	want := samplePool()

	got, err := staking.DecodePool(stakingtest.PoolBytes(want), true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodePoolIgnoresTrailingBytes(t *testing.T) {
	want := samplePool()
	data := append(stakingtest.PoolBytes(want), make([]byte, 45)...)

	got, err := staking.DecodePool(data, true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodePoolFallsBackToZero(t *testing.T) {
	valid := stakingtest.PoolBytes(samplePool())

	badDisc := append([]byte(nil), valid...)
	badDisc[0] ^= 0xff

	badBool := append([]byte(nil), valid...)
	badBool[staking.PoolLayoutV1.Offset(staking.FieldPermissionless)] = 2

	tests := []struct {
		name    string
		data    []byte
		found   bool
		wantErr error
	}{
		{name: "missing account", data: nil, found: false, wantErr: staking.ErrAccountNotFound},
		{name: "empty buffer", data: []byte{}, found: true, wantErr: layout.ErrTooShort},
		{name: "one byte short", data: valid[:210], found: true, wantErr: layout.ErrTooShort},
		{name: "wrong discriminator", data: badDisc, found: true, wantErr: layout.ErrMismatch},
		{name: "invalid bool", data: badBool, found: true, wantErr: layout.ErrInvalidBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := staking.DecodePool(tt.data, tt.found)
			assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
			assert.True(t, got.IsZero())
			assert.Equal(t, uint64(0), got.TotalStake)
		})
	}
}

func TestDecodeEntry(t *testing.T) {
	want := model.StakeEntryRecord{
		Nonce:     3,
		Payer:     stakingtest.Key(10),
		Authority: stakingtest.Key(11),
		Amount:    1_500_000_000,
		Duration:  864000,
		CreatedTs: 1_700_000_000,
	}

	got, err := staking.DecodeEntry(stakingtest.EntryBytes(want, poolKey), poolKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsOpen())
}

func TestDecodeEntryIgnoresEffectiveAmount(t *testing.T) {
	rec := model.StakeEntryRecord{Authority: stakingtest.Key(11), Amount: 5}
	data := stakingtest.EntryBytes(rec, poolKey)
	off := staking.EntryLayoutV1.Offset(staking.FieldEffectiveAmount)
	for i := off; i < off+16; i++ {
		data[i] = 0xee
	}

	got, err := staking.DecodeEntry(data, poolKey)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeEntryRejectsOtherPool(t *testing.T) {
	data := stakingtest.EntryBytes(model.StakeEntryRecord{Amount: 1}, otherPoolKey)

	_, err := staking.DecodeEntry(data, poolKey)
	assert.Error(t, err)
}

func TestDecodeEntriesSkipsTruncatedAccount(t *testing.T) {
	good := stakingtest.EntryBytes(model.StakeEntryRecord{Authority: stakingtest.Key(20), Amount: 1000}, poolKey)
	truncated := stakingtest.EntryBytes(model.StakeEntryRecord{Authority: stakingtest.Key(21), Amount: 500}, poolKey)[:155]

	batch := staking.DecodeEntries([]chain.Account{
		stakingtest.Account("good", good),
		stakingtest.Account("short", truncated),
	}, poolKey)

	require.Len(t, batch.Open, 1)
	assert.Equal(t, uint64(1000), batch.Open[0].Amount)
	assert.Equal(t, 2, batch.Total)
	assert.Equal(t, 1, batch.Decoded())
	assert.Equal(t, 1, batch.Skipped())

	require.Len(t, batch.Errors, 1)
	assert.Equal(t, model.DecodeError{
		Kind:    staking.KindEntry,
		Account: "short",
		Index:   1,
		Length:  155,
		Error:   batch.Errors[0].Error,
	}, batch.Errors[0])
	assert.Contains(t, batch.Errors[0].Error, "too short")
}

func TestDecodeEntriesDropsClosed(t *testing.T) {
	open := stakingtest.EntryBytes(model.StakeEntryRecord{Authority: stakingtest.Key(30), Amount: 1}, poolKey)
	closed := stakingtest.EntryBytes(model.StakeEntryRecord{Authority: stakingtest.Key(31), Amount: 1 << 40, ClosedTs: 1_700_000_100}, poolKey)

	batch := staking.DecodeEntries([]chain.Account{
		stakingtest.Account("closed", closed),
		stakingtest.Account("open", open),
	}, poolKey)

	require.Len(t, batch.Open, 1)
	assert.Equal(t, stakingtest.Key(30), batch.Open[0].Authority)
	assert.Equal(t, 1, batch.Closed)
	assert.Equal(t, 2, batch.Decoded())
	assert.Equal(t, 0, batch.Skipped())
}

func TestDecodeEntriesSkipsMalformedAccounts(t *testing.T) {
	good := stakingtest.EntryBytes(model.StakeEntryRecord{Authority: stakingtest.Key(40), Amount: 7}, poolKey)
	badDisc := append([]byte(nil), good...)
	badDisc[3] ^= 0x01
	foreign := stakingtest.EntryBytes(model.StakeEntryRecord{Amount: 9}, otherPoolKey)

	batch := staking.DecodeEntries([]chain.Account{
		{Pubkey: "garbage", Data: chain.AccountData{"%%%", "base64"}},
		stakingtest.Account("bad-disc", badDisc),
		stakingtest.Account("foreign", foreign),
		stakingtest.Account("good", good),
	}, poolKey)

	require.Len(t, batch.Open, 1)
	assert.Equal(t, uint64(7), batch.Open[0].Amount)
	require.Len(t, batch.Errors, 3)
	assert.Equal(t, []string{"garbage", "bad-disc", "foreign"}, []string{
		batch.Errors[0].Account, batch.Errors[1].Account, batch.Errors[2].Account,
	})
	assert.Equal(t, []int{0, 1, 2}, []int{
		batch.Errors[0].Index, batch.Errors[1].Index, batch.Errors[2].Index,
	})
}

func TestDecodeEntriesEmpty(t *testing.T) {
	batch := staking.DecodeEntries(nil, poolKey)

	assert.NotNil(t, batch.Open)
	assert.Empty(t, batch.Open)
	assert.Equal(t, 0, batch.Total)
}

func chainKey(t *testing.T, s string) solana.PublicKey {
	t.Helper()
	key, err := chain.ParsePublicKey(s)
	require.NoError(t, err)
	return key
}
