package aggregate

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// SecondsPerDay converts on-chain durations to days.
const SecondsPerDay = 86400

// ToDisplayUnits scales a raw token amount by 10^decimals.
//
// The scaling is exact; the float64 result is exact only while raw stays
// below 2^53 (about 9.007e6 whole tokens at 9 decimals). Larger amounts are
// rounded to the nearest representable value.
func ToDisplayUnits(raw uint64, decimals uint8) float64 {
	value := decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
	return value.InexactFloat64()
}

// SecondsToDays rounds a duration in seconds to the nearest whole day,
// halves rounding up.
func SecondsToDays(seconds uint64) int64 {
	days := seconds / SecondsPerDay
	if seconds%SecondsPerDay >= SecondsPerDay/2 {
		days++
	}
	return int64(days)
}
