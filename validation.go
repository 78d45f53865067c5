package pricecodec

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// ValidateTick fails with INVALID_TICK unless MinTick <= tick <= MaxTick.
func (c *Codec) ValidateTick(tick int) error {
	if tick < c.minTick || tick > c.maxTick {
		return tickError("ValidateTick", tick)
	}
	return nil
}

// ValidateSqrtRatio fails with INVALID_SQRT_RATIO unless
// MinSqrtRatio <= sqrtPriceX96 < MaxSqrtRatio.
func (c *Codec) ValidateSqrtRatio(sqrtPriceX96 *uint256.Int) error {
	if sqrtPriceX96 == nil || sqrtPriceX96.Lt(c.minSqrtRatio) || !sqrtPriceX96.Lt(c.maxSqrtRatio) {
		return newError(INVALID_SQRT_RATIO, "ValidateSqrtRatio", sqrtPriceX96)
	}
	return nil
}

// ParseTick reads a base-10 tick. Fractional or out-of-range values are
// rejected with INVALID_TICK; "12.0" is accepted as 12.
func (c *Codec) ParseTick(s string) (int, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, &CodecError{Kind: INVALID_TICK, Op: "ParseTick", Values: []string{s}}
	}
	if d.LessThan(decimal.NewFromInt(int64(c.minTick))) || d.GreaterThan(decimal.NewFromInt(int64(c.maxTick))) {
		return 0, &CodecError{Kind: INVALID_TICK, Op: "ParseTick", Values: []string{d.String()}}
	}
	return int(d.IntPart()), nil
}

func ValidateTick(tick int) error {
	return Default.ValidateTick(tick)
}

func ValidateSqrtRatio(sqrtPriceX96 *uint256.Int) error {
	return Default.ValidateSqrtRatio(sqrtPriceX96)
}

func ParseTick(s string) (int, error) {
	return Default.ParseTick(s)
}

// ParseUint256 reads a base-10 or 0x-prefixed hexadecimal unsigned integer
// that fits in 256 bits.
func ParseUint256(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	var (
		z   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		z, err = uint256.FromHex("0x" + s[2:])
	} else {
		z, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("parse uint256 %q: %w", s, err)
	}
	return z, nil
}
