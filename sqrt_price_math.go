package pricecodec

import (
	"math/big"

	"github.com/holiman/uint256"
)

func sortRatios(a, b *uint256.Int) (*uint256.Int, *uint256.Int) {
	if a.Gt(b) {
		return b, a
	}
	return a, b
}

func checkLiquidity(op string, liquidity *uint256.Int) error {
	if liquidity.Gt(MaxUint128) {
		return newError(OVERFLOW, op, liquidity)
	}
	return nil
}

// GetAmount0DeltaWithRoundUp returns the token0 amount between two sqrt
// prices for the given liquidity:
//
//	L * 2^96 * (sqrtB - sqrtA) / sqrtB / sqrtA
func GetAmount0DeltaWithRoundUp(
	sqrtRatioAX96 *uint256.Int,
	sqrtRatioBX96 *uint256.Int,
	liquidity *uint256.Int,
	roundUp bool,
) (*uint256.Int, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	if err := checkLiquidity("GetAmount0Delta", liquidity); err != nil {
		return nil, err
	}
	if sqrtRatioAX96.IsZero() {
		return nil, newError(DIVISION_BY_ZERO, "GetAmount0Delta", sqrtRatioAX96, sqrtRatioBX96)
	}

	numerator1 := new(uint256.Int).Lsh(liquidity, 96)
	numerator2 := new(uint256.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)

	if !roundUp {
		tmp, err := MulDiv(numerator1, numerator2, sqrtRatioBX96)
		if err != nil {
			return nil, err
		}
		return tmp.Div(tmp, sqrtRatioAX96), nil
	}
	tmp, err := MulDivRoundingUp(numerator1, numerator2, sqrtRatioBX96)
	if err != nil {
		return nil, err
	}
	return divRoundingUp(tmp, sqrtRatioAX96), nil
}

// GetAmount1DeltaWithRoundUp returns L * (sqrtB - sqrtA) / 2^96.
func GetAmount1DeltaWithRoundUp(
	sqrtRatioAX96 *uint256.Int,
	sqrtRatioBX96 *uint256.Int,
	liquidity *uint256.Int,
	roundUp bool,
) (*uint256.Int, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	if err := checkLiquidity("GetAmount1Delta", liquidity); err != nil {
		return nil, err
	}
	diff := new(uint256.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)
	if roundUp {
		return MulDivRoundingUp(liquidity, diff, Q96)
	}
	return MulDiv(liquidity, diff, Q96)
}

// GetAmount0Delta takes a signed liquidity delta. Adding liquidity rounds the
// owed amount up, removing it rounds the returned amount down and negates it.
func GetAmount0Delta(sqrtRatioAX96, sqrtRatioBX96 *uint256.Int, liquidity *big.Int) (*big.Int, error) {
	return signedAmountDelta(GetAmount0DeltaWithRoundUp, sqrtRatioAX96, sqrtRatioBX96, liquidity)
}

func GetAmount1Delta(sqrtRatioAX96, sqrtRatioBX96 *uint256.Int, liquidity *big.Int) (*big.Int, error) {
	return signedAmountDelta(GetAmount1DeltaWithRoundUp, sqrtRatioAX96, sqrtRatioBX96, liquidity)
}

type amountDeltaFunc func(a, b, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error)

func signedAmountDelta(f amountDeltaFunc, a, b *uint256.Int, liquidity *big.Int) (*big.Int, error) {
	abs, overflow := uint256.FromBig(new(big.Int).Abs(liquidity))
	if overflow {
		return nil, &CodecError{Kind: OVERFLOW, Op: "GetAmountDelta", Values: []string{liquidity.String()}}
	}
	if liquidity.Sign() < 0 {
		amount, err := f(a, b, abs, false)
		if err != nil {
			return nil, err
		}
		return new(big.Int).Neg(amount.ToBig()), nil
	}
	amount, err := f(a, b, abs, true)
	if err != nil {
		return nil, err
	}
	return amount.ToBig(), nil
}

func divRoundingUp(x, y *uint256.Int) *uint256.Int {
	q, r := new(uint256.Int).DivMod(x, y, new(uint256.Int))
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	return q
}
