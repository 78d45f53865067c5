package pricecodec

import (
	"github.com/holiman/uint256"
)

// MulDiv returns floor(a*b/denominator). The product is held in 512 bits, so
// it is exact even when a*b does not fit in 256 bits; only a quotient wider
// than 256 bits is reported as OVERFLOW.
func MulDiv(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, newError(DIVISION_BY_ZERO, "MulDiv", a, b, denominator)
	}
	z, overflow := new(uint256.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, newError(OVERFLOW, "MulDiv", a, b, denominator)
	}
	return z, nil
}

// MulDivRoundingUp returns ceil(a*b/denominator).
func MulDivRoundingUp(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	z, err := MulDiv(a, b, denominator)
	if err != nil {
		return nil, err
	}
	if new(uint256.Int).MulMod(a, b, denominator).IsZero() {
		return z, nil
	}
	if z.Eq(MaxUint256) {
		return nil, newError(OVERFLOW, "MulDivRoundingUp", a, b, denominator)
	}
	return z.AddUint64(z, 1), nil
}

// Wmul multiplies two WAD values, rounding down.
func Wmul(a, b *uint256.Int) (*uint256.Int, error) {
	return MulDiv(a, b, WAD)
}

// Isqrt returns floor(sqrt(x)).
func Isqrt(x *uint256.Int) *uint256.Int {
	return new(uint256.Int).Sqrt(x)
}

// Msb returns the index of the most significant set bit of x.
func Msb(x *uint256.Int) (int, error) {
	if x.IsZero() {
		return 0, newError(OVERFLOW, "Msb", x)
	}
	return x.BitLen() - 1, nil
}

// MulShift returns floor(ratio*magic / 2^128).
func MulShift(ratio, magic *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulDivOverflow(ratio, magic, Q128)
	if overflow {
		return nil, newError(OVERFLOW, "MulShift", ratio, magic)
	}
	return z, nil
}
