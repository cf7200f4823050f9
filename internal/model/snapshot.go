package model

import "time"

// Snapshot is the aggregated view of one pool and its open stakers.
type Snapshot struct {
	Pool      PoolView  `json:"pool"`
	Stakers   []Staker  `json:"stakers"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// PoolView is PoolRecord in display units, durations in whole days.
type PoolView struct {
	Address        string    `json:"address"`
	Mint           string    `json:"mint"`
	StakeMint      string    `json:"stakeMint"`
	Vault          string    `json:"vault"`
	Authority      string    `json:"authority"`
	Creator        string    `json:"creator"`
	MinWeight      uint64    `json:"minWeight"`
	MaxWeight      uint64    `json:"maxWeight"`
	Permissionless bool      `json:"permissionless"`
	TotalStaked    float64   `json:"totalStaked"`
	MinDuration    int64     `json:"minDuration"`
	MaxDuration    int64     `json:"maxDuration"`
	StakerCount    int       `json:"stakerCount"`
	Expiry         time.Time `json:"expiry"`
}

// Staker is one open stake entry in display units.
type Staker struct {
	Address   string  `json:"address"`
	Amount    float64 `json:"amount"`
	Duration  int64   `json:"duration"`
	CreatedTs int64   `json:"createdTs"`
}
