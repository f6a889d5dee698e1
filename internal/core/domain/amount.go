package domain

import "math"

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

// BTCToSat converts a BTC amount to satoshis, rounding to the nearest
// whole satoshi.
func BTCToSat(btc float64) int64 {
	return int64(math.Round(btc * SatsPerBTC))
}
