package pricecodec

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	// RATIO_DECIMALS is the scale of basis-point style ratios (1e4 == 100%).
	RATIO_DECIMALS = 4
	// PERCENT_DECIMALS is the scale of whole percentages (1e2 == 100%).
	PERCENT_DECIMALS = 2
)

var powersOfTen = func() [WAD_DECIMALS + 1]uint256.Int {
	var p [WAD_DECIMALS + 1]uint256.Int
	p[0].SetOne()
	for i := 1; i < len(p); i++ {
		p[i].Mul(&p[i-1], uint256.NewInt(10))
	}
	return p
}()

func pow10(n int) *uint256.Int {
	return &powersOfTen[n]
}

func checkDecimals(op string, decimals uint8) error {
	if decimals > WAD_DECIMALS {
		return &CodecError{Kind: INVALID_DECIMALS, Op: op, Values: []string{fmt.Sprint(decimals)}}
	}
	return nil
}

func scaleUp(op string, value *uint256.Int, decimals int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(value, pow10(decimals))
	if overflow {
		return nil, newError(OVERFLOW, op, value)
	}
	return z, nil
}

// DecimalsToWad rescales an amount with the given token decimals to 18
// decimals: value * 10^(18-decimals).
func DecimalsToWad(value *uint256.Int, decimals uint8) (*uint256.Int, error) {
	if err := checkDecimals("DecimalsToWad", decimals); err != nil {
		return nil, err
	}
	return scaleUp("DecimalsToWad", value, WAD_DECIMALS-int(decimals))
}

// WadToDecimals rescales a WAD amount to the given token decimals, rounding
// down.
func WadToDecimals(value *uint256.Int, decimals uint8) (*uint256.Int, error) {
	if err := checkDecimals("WadToDecimals", decimals); err != nil {
		return nil, err
	}
	return Wmul(value, pow10(int(decimals)))
}

// RatioToWad maps a 1e4-scaled ratio to WAD, e.g. 2500 (25%) -> 0.25e18.
func RatioToWad(value *uint256.Int) (*uint256.Int, error) {
	return scaleUp("RatioToWad", value, WAD_DECIMALS-RATIO_DECIMALS)
}

// PercentToWad maps a 1e2-scaled percentage to WAD, e.g. 25 -> 0.25e18.
func PercentToWad(value *uint256.Int) (*uint256.Int, error) {
	return scaleUp("PercentToWad", value, WAD_DECIMALS-PERCENT_DECIMALS)
}

func WadToRatio(value *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(value, pow10(WAD_DECIMALS-RATIO_DECIMALS))
}

func WadToPercent(value *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(value, pow10(WAD_DECIMALS-PERCENT_DECIMALS))
}
