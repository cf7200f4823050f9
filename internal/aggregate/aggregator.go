package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/gagliardetto/solana-go"

	"stakeScope/internal/model"
)

// Config controls how records are turned into a snapshot.
type Config struct {
	PoolAddress solana.PublicKey
	Decimals    uint8
	Expiry      time.Time
}

// Aggregator turns decoded records into a Snapshot. It holds no state
// between calls.
type Aggregator struct {
	cfg Config
}

func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate builds the snapshot for pool and its open entries. Closed entries
// passed in are ignored. Stakers are ordered by raw amount descending, then
// by address and creation time ascending.
func (a *Aggregator) Aggregate(pool model.PoolRecord, entries []model.StakeEntryRecord, fetchedAt time.Time) model.Snapshot {
	type staker struct {
		raw uint64
		out model.Staker
	}

	open := make([]staker, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsOpen() {
			continue
		}
		open = append(open, staker{
			raw: entry.Amount,
			out: model.Staker{
				Address:   entry.Authority.String(),
				Amount:    ToDisplayUnits(entry.Amount, a.cfg.Decimals),
				Duration:  SecondsToDays(entry.Duration),
				CreatedTs: entry.CreatedTs,
			},
		})
	}

	slices.SortStableFunc(open, func(x, y staker) int {
		if c := cmp.Compare(y.raw, x.raw); c != 0 {
			return c
		}
		if c := cmp.Compare(x.out.Address, y.out.Address); c != 0 {
			return c
		}
		return cmp.Compare(x.out.CreatedTs, y.out.CreatedTs)
	})

	stakers := make([]model.Staker, 0, len(open))
	for _, s := range open {
		stakers = append(stakers, s.out)
	}

	return model.Snapshot{
		Pool:      a.poolView(pool, len(stakers)),
		Stakers:   stakers,
		FetchedAt: fetchedAt.UTC(),
	}
}

func (a *Aggregator) poolView(pool model.PoolRecord, stakerCount int) model.PoolView {
	return model.PoolView{
		Address:        a.cfg.PoolAddress.String(),
		Mint:           pool.Mint.String(),
		StakeMint:      pool.StakeMint.String(),
		Vault:          pool.Vault.String(),
		Authority:      pool.Authority.String(),
		Creator:        pool.Creator.String(),
		MinWeight:      pool.MinWeight,
		MaxWeight:      pool.MaxWeight,
		Permissionless: pool.Permissionless,
		TotalStaked:    ToDisplayUnits(pool.TotalStake, a.cfg.Decimals),
		MinDuration:    SecondsToDays(pool.MinDuration),
		MaxDuration:    SecondsToDays(pool.MaxDuration),
		StakerCount:    stakerCount,
		Expiry:         a.cfg.Expiry.UTC(),
	}
}
