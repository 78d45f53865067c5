package pricecodec

import "github.com/holiman/uint256"

type FeeAmount int

const (
	FeeAmountLow    FeeAmount = 500
	FeeAmountMedium FeeAmount = 3000
	FeeAmountHigh   FeeAmount = 10000
)

const (
	// MIN_TICK and MAX_TICK are the settlement layer's tick bounds. Both are inclusive.
	MIN_TICK int = -322517
	MAX_TICK int = 443636

	// MAX_ABS_TICK bounds the ticks for which the magic ratio table and the
	// log2 bias constants are exact.
	MAX_ABS_TICK int = 887272

	WAD_DECIMALS = 18
)

var (
	MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	MaxUint160 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 160), uint256.NewInt(1))
	MaxUint256 = new(uint256.Int).SetAllOne()
	MaxInt128  = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 127), uint256.NewInt(1))

	Q32  = new(uint256.Int).Lsh(uint256.NewInt(1), 32)
	Q96  = new(uint256.Int).Lsh(uint256.NewInt(1), 96)
	Q128 = new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	Q192 = new(uint256.Int).Lsh(uint256.NewInt(1), 192)

	WAD = uint256.NewInt(1e18)

	// MIN_SQRT_RATIO is the sqrt price at MIN_TICK. MAX_SQRT_RATIO is one above the
	// sqrt price at MAX_TICK, so valid sqrt prices form the range [MIN, MAX).
	// Both follow MIN_TICK and MAX_TICK through Default.
	MIN_SQRT_RATIO = Default.MinSqrtRatio()
	MAX_SQRT_RATIO = Default.MaxSqrtRatio()

	TICK_SPACINGS = map[FeeAmount]int{
		FeeAmountLow:    10,
		FeeAmountMedium: 60,
		FeeAmountHigh:   200,
	}
)
