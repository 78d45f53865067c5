package pricecodec

import (
	"math/big"

	"github.com/holiman/uint256"
)

// LiquidityAddDelta applies a signed int128 delta to a uint128 liquidity.
func LiquidityAddDelta(x *uint256.Int, y *big.Int) (*uint256.Int, error) {
	if x.Gt(MaxUint128) {
		return nil, newError(OVERFLOW, "LiquidityAddDelta", x)
	}
	// int128 admits one more negative value than positive
	limit := MaxInt128
	if y.Sign() < 0 {
		limit = new(uint256.Int).AddUint64(MaxInt128, 1)
	}
	abs, overflow := uint256.FromBig(new(big.Int).Abs(y))
	if overflow || abs.Gt(limit) {
		return nil, &CodecError{Kind: OVERFLOW, Op: "LiquidityAddDelta", Values: []string{dec(x), y.String()}}
	}
	if y.Sign() < 0 {
		if abs.Gt(x) {
			return nil, &CodecError{Kind: UNDERFLOW, Op: "LiquidityAddDelta", Values: []string{dec(x), y.String()}}
		}
		return new(uint256.Int).Sub(x, abs), nil
	}
	z := new(uint256.Int).Add(x, abs)
	if z.Gt(MaxUint128) {
		return nil, &CodecError{Kind: OVERFLOW, Op: "LiquidityAddDelta", Values: []string{dec(x), y.String()}}
	}
	return z, nil
}

// GetLiquidityForAmount0 returns amount0 * sqrtA * sqrtB / 2^96 / (sqrtB - sqrtA).
func GetLiquidityForAmount0(sqrtRatioAX96, sqrtRatioBX96, amount0 *uint256.Int) (*uint256.Int, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	intermediate, err := MulDiv(sqrtRatioAX96, sqrtRatioBX96, Q96)
	if err != nil {
		return nil, err
	}
	return toUint128("GetLiquidityForAmount0")(MulDiv(amount0, intermediate, new(uint256.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)))
}

// GetLiquidityForAmount1 returns amount1 * 2^96 / (sqrtB - sqrtA).
func GetLiquidityForAmount1(sqrtRatioAX96, sqrtRatioBX96, amount1 *uint256.Int) (*uint256.Int, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	return toUint128("GetLiquidityForAmount1")(MulDiv(amount1, Q96, new(uint256.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)))
}

// GetLiquidityForAmounts returns the largest liquidity the two amounts can
// fund on [sqrtA, sqrtB] at the current sqrt price.
func GetLiquidityForAmounts(sqrtRatioX96, sqrtRatioAX96, sqrtRatioBX96, amount0, amount1 *uint256.Int) (*uint256.Int, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	switch {
	case !sqrtRatioX96.Gt(sqrtRatioAX96):
		return GetLiquidityForAmount0(sqrtRatioAX96, sqrtRatioBX96, amount0)
	case sqrtRatioX96.Lt(sqrtRatioBX96):
		liquidity0, err := GetLiquidityForAmount0(sqrtRatioX96, sqrtRatioBX96, amount0)
		if err != nil {
			return nil, err
		}
		liquidity1, err := GetLiquidityForAmount1(sqrtRatioAX96, sqrtRatioX96, amount1)
		if err != nil {
			return nil, err
		}
		if liquidity0.Lt(liquidity1) {
			return liquidity0, nil
		}
		return liquidity1, nil
	default:
		return GetLiquidityForAmount1(sqrtRatioAX96, sqrtRatioBX96, amount1)
	}
}

func toUint128(op string) func(*uint256.Int, error) (*uint256.Int, error) {
	return func(z *uint256.Int, err error) (*uint256.Int, error) {
		if err != nil {
			return nil, err
		}
		if z.Gt(MaxUint128) {
			return nil, newError(OVERFLOW, op, z)
		}
		return z, nil
	}
}
