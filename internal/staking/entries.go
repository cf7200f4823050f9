package staking

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"stakeScope/internal/chain"
	"stakeScope/internal/model"
)

// Decode error kinds.
const (
	KindPool  = "pool"
	KindEntry = "entry"
)

// EntryBatch is the result of decoding one getProgramAccounts response.
type EntryBatch struct {
	// Open holds the decoded entries with ClosedTs == 0, in response order.
	Open   []model.StakeEntryRecord
	Errors []model.DecodeError
	Total  int
	Closed int
}

// Decoded is the number of accounts that decoded, open or closed.
func (b EntryBatch) Decoded() int {
	return len(b.Open) + b.Closed
}

// Skipped is the number of accounts dropped because they did not decode.
func (b EntryBatch) Skipped() int {
	return len(b.Errors)
}

// DecodeEntry decodes one StakeEntry account and checks that it belongs to pool.
func DecodeEntry(data []byte, pool solana.PublicKey) (model.StakeEntryRecord, error) {
	r := EntryLayoutV1.NewReader(data)
	r.Expect(FieldDiscriminator, EntryDiscriminator[:])

	stakePool := r.PublicKey(FieldStakePool)
	rec := model.StakeEntryRecord{
		Nonce:     r.Uint32(FieldNonce),
		Payer:     r.PublicKey(FieldPayer),
		Authority: r.PublicKey(FieldAuthority),
		Amount:    r.Uint64(FieldAmount),
		Duration:  r.Uint64(FieldDuration),
		CreatedTs: r.Int64(FieldCreatedTs),
		ClosedTs:  r.Int64(FieldClosedTs),
	}
	if err := r.Err(); err != nil {
		return model.StakeEntryRecord{}, fmt.Errorf("decode stake entry: %w", err)
	}
	if !bytes.Equal(stakePool[:], pool[:]) {
		return model.StakeEntryRecord{}, fmt.Errorf("decode stake entry: stake pool %s, want %s", stakePool, pool)
	}
	return rec, nil
}

// DecodeEntries decodes every account, skipping the ones that fail. A bad
// account never stops the batch.
func DecodeEntries(accounts []chain.Account, pool solana.PublicKey) EntryBatch {
	batch := EntryBatch{
		Open:  make([]model.StakeEntryRecord, 0, len(accounts)),
		Total: len(accounts),
	}

	for i, account := range accounts {
		data, err := account.Data.Bytes()
		if err != nil {
			batch.Errors = append(batch.Errors, entryError(account, i, 0, err))
			continue
		}

		rec, err := DecodeEntry(data, pool)
		if err != nil {
			batch.Errors = append(batch.Errors, entryError(account, i, len(data), err))
			continue
		}

		if !rec.IsOpen() {
			batch.Closed++
			continue
		}
		batch.Open = append(batch.Open, rec)
	}

	return batch
}

func entryError(account chain.Account, index, length int, err error) model.DecodeError {
	return model.DecodeError{
		Kind:    KindEntry,
		Account: account.Pubkey,
		Index:   index,
		Length:  length,
		Error:   err.Error(),
	}
}
