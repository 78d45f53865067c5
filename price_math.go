package pricecodec

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// SqrtX96ToWad returns (sqrtPriceX96 / 2^96)^2 scaled by 1e18, flooring at
// each step.
func (c *Codec) SqrtX96ToWad(sqrtPriceX96 *uint256.Int) (*uint256.Int, error) {
	if err := c.ValidateSqrtRatio(sqrtPriceX96); err != nil {
		return nil, err
	}
	priceX96, err := MulDiv(sqrtPriceX96, sqrtPriceX96, Q96)
	if err != nil {
		return nil, err
	}
	return MulDiv(priceX96, WAD, Q96)
}

// WadToSqrtX96 returns isqrt(floor(priceWad * 2^96 / 1e18) * 2^96). The
// result must be a valid sqrt price for the codec.
func (c *Codec) WadToSqrtX96(priceWad *uint256.Int) (*uint256.Int, error) {
	priceX96, err := MulDiv(priceWad, Q96, WAD)
	if err != nil {
		return nil, err
	}
	priceX192, overflow := new(uint256.Int).MulOverflow(priceX96, Q96)
	if overflow {
		return nil, newError(OVERFLOW, "WadToSqrtX96", priceWad)
	}
	sqrtPriceX96 := Isqrt(priceX192)
	if err := c.ValidateSqrtRatio(sqrtPriceX96); err != nil {
		return nil, newError(INVALID_SQRT_RATIO, "WadToSqrtX96", priceWad, sqrtPriceX96)
	}
	return sqrtPriceX96, nil
}

func (c *Codec) TickToWad(tick int) (*uint256.Int, error) {
	sqrtPriceX96, err := c.TickToSqrtX96(tick)
	if err != nil {
		return nil, err
	}
	return c.SqrtX96ToWad(sqrtPriceX96)
}

// WadToTick returns the floor tick of a WAD price.
func (c *Codec) WadToTick(priceWad *uint256.Int) (int, error) {
	sqrtPriceX96, err := c.WadToSqrtX96(priceWad)
	if err != nil {
		return 0, err
	}
	return c.SqrtX96ToTick(sqrtPriceX96)
}

func SqrtX96ToWad(sqrtPriceX96 *uint256.Int) (*uint256.Int, error) {
	return Default.SqrtX96ToWad(sqrtPriceX96)
}

func WadToSqrtX96(priceWad *uint256.Int) (*uint256.Int, error) {
	return Default.WadToSqrtX96(priceWad)
}

func TickToWad(tick int) (*uint256.Int, error) {
	return Default.TickToWad(tick)
}

func WadToTick(priceWad *uint256.Int) (int, error) {
	return Default.WadToTick(priceWad)
}

// WadToDecimal renders a WAD value as an exact decimal, e.g. 1.5e18 -> 1.5.
func WadToDecimal(x *uint256.Int) decimal.Decimal {
	return decimal.NewFromBigInt(x.ToBig(), -WAD_DECIMALS)
}

// DecimalToWad scales d by 1e18, truncating digits past the 18th decimal.
func DecimalToWad(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, &CodecError{Kind: UNDERFLOW, Op: "DecimalToWad", Values: []string{d.String()}}
	}
	z, overflow := uint256.FromBig(d.Shift(WAD_DECIMALS).BigInt())
	if overflow {
		return nil, &CodecError{Kind: OVERFLOW, Op: "DecimalToWad", Values: []string{d.String()}}
	}
	return z, nil
}
