package pricecodec

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// magicRatios[i] is sqrt(1.0001)^-(2^i) as a Q128.128 value. The table is
// read-only; callers take the address of an entry as an operand and never
// write through it.
var magicRatios = [20]uint256.Int{
	*uint256.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001"),
	*uint256.MustFromHex("0xfff97272373d413259a46990580e213a"),
	*uint256.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	*uint256.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	*uint256.MustFromHex("0xffcb9843d60f6159c9db58835c926644"),
	*uint256.MustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
	*uint256.MustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
	*uint256.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
	*uint256.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	*uint256.MustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
	*uint256.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
	*uint256.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
	*uint256.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
	*uint256.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
	*uint256.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
	*uint256.MustFromHex("0x31be135f97d08fd981231505542fcfa6"),
	*uint256.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	*uint256.MustFromHex("0x5d6af8dedb81196699c329225ee604"),
	*uint256.MustFromHex("0x2216e584f5fa1ea926041bedfe98"),
	*uint256.MustFromHex("0x48a170391f7dc42444e8fa2"),
}

var (
	// 2^64 / log2(sqrt(1.0001)), turns a Q64.64 log2 into a Q128.128 log_sqrt(1.0001)
	log2ToLogSqrtBase = mustBig("255738958999603826347141")

	// error bounds of the log approximation, in Q128.128
	tickLowBias  = mustBig("3402992956809132418596140100660247210")
	tickHighBias = mustBig("291339464771989622907027621153398088495")

	q32Mask = new(uint256.Int).Sub(Q32, uint256.NewInt(1))
)

// getSqrtRatioAtTick computes sqrt(1.0001^tick) * 2^96 rounded up. The tick
// must satisfy |tick| <= MAX_ABS_TICK.
func getSqrtRatioAtTick(tick int) (*uint256.Int, error) {
	absTick := tick
	if tick < 0 {
		absTick = -tick
	}

	ratio := new(uint256.Int)
	if absTick&0x1 != 0 {
		ratio.Set(&magicRatios[0])
	} else {
		ratio.Set(Q128)
	}
	var err error
	for i := 1; i < len(magicRatios); i++ {
		if absTick&(1<<i) == 0 {
			continue
		}
		ratio, err = MulShift(ratio, &magicRatios[i])
		if err != nil {
			return nil, err
		}
	}

	if tick > 0 {
		ratio.Div(MaxUint256, ratio)
	}

	// Q128.128 -> Q64.96, rounding up so the inverse stays a floor
	roundUp := !new(uint256.Int).And(ratio, q32Mask).IsZero()
	ratio.Rsh(ratio, 32)
	if roundUp {
		ratio.AddUint64(ratio, 1)
	}
	return ratio, nil
}

// getTickAtSqrtRatio returns the greatest tick whose sqrt ratio is <= sqrtPriceX96.
func getTickAtSqrtRatio(sqrtPriceX96 *uint256.Int) (int, error) {
	ratio := new(uint256.Int).Lsh(sqrtPriceX96, 32)
	msb, err := Msb(ratio)
	if err != nil {
		return 0, err
	}

	r := new(uint256.Int)
	if msb >= 128 {
		r.Rsh(ratio, uint(msb-127))
	} else {
		r.Lsh(ratio, uint(127-msb))
	}

	// signed Q64.64 held in two's complement
	log2 := new(uint256.Int).Sub(uint256.NewInt(uint64(msb)), uint256.NewInt(128))
	log2.Lsh(log2, 64)

	f := new(uint256.Int)
	for shift := uint(63); shift >= 50; shift-- {
		r.Mul(r, r).Rsh(r, 127)
		f.Rsh(r, 128)
		log2.Or(log2, new(uint256.Int).Lsh(f, shift))
		r.Rsh(r, uint(f.Uint64()))
	}

	logSqrt := new(big.Int).Mul(AsInt256(log2), log2ToLogSqrtBase)

	low := new(big.Int).Sub(logSqrt, tickLowBias)
	tickLow := int(ForceAsInt24(AsUint256(low.Rsh(low, 128))))
	high := new(big.Int).Add(logSqrt, tickHighBias)
	tickHigh := int(ForceAsInt24(AsUint256(high.Rsh(high, 128))))

	if tickLow == tickHigh {
		return tickLow, nil
	}
	sqrtHigh, err := getSqrtRatioAtTick(tickHigh)
	if err != nil {
		return 0, err
	}
	if sqrtHigh.Cmp(sqrtPriceX96) <= 0 {
		return tickHigh, nil
	}
	return tickLow, nil
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid integer constant " + s)
	}
	return n
}

// TickSpacingToMaxLiquidityPerTick spreads MaxUint128 evenly over every
// usable tick of the codec's range for the given spacing.
func (c *Codec) TickSpacingToMaxLiquidityPerTick(tickSpacing int) (*uint256.Int, error) {
	if tickSpacing <= 0 {
		return nil, tickError("TickSpacingToMaxLiquidityPerTick", tickSpacing)
	}
	minTick := (c.minTick / tickSpacing) * tickSpacing
	maxTick := (c.maxTick / tickSpacing) * tickSpacing
	numTicks := uint64((maxTick-minTick)/tickSpacing) + 1
	return new(uint256.Int).Div(MaxUint128, uint256.NewInt(numTicks)), nil
}

// NearestUsableTick rounds tick to the closest multiple of tickSpacing
// (halves away from zero) that lies inside the codec's range. It fails with
// INVALID_TICK when the range holds no such multiple.
func (c *Codec) NearestUsableTick(tick, tickSpacing int) (int, error) {
	if tickSpacing <= 0 {
		return 0, tickError("NearestUsableTick", tickSpacing)
	}
	if err := c.ValidateTick(tick); err != nil {
		return 0, err
	}
	q, r := tick/tickSpacing, tick%tickSpacing
	if 2*r >= tickSpacing {
		q++
	} else if 2*r <= -tickSpacing {
		q--
	}
	rounded := q * tickSpacing
	if rounded < c.minTick {
		rounded += tickSpacing
	} else if rounded > c.maxTick {
		rounded -= tickSpacing
	}
	// no multiple of tickSpacing inside the range
	if c.ValidateTick(rounded) != nil {
		return 0, &CodecError{
			Kind:   INVALID_TICK,
			Op:     "NearestUsableTick",
			Values: []string{fmt.Sprint(tick), fmt.Sprint(tickSpacing)},
		}
	}
	return rounded, nil
}

func TickSpacingToMaxLiquidityPerTick(tickSpacing int) (*uint256.Int, error) {
	return Default.TickSpacingToMaxLiquidityPerTick(tickSpacing)
}

func NearestUsableTick(tick, tickSpacing int) (int, error) {
	return Default.NearestUsableTick(tick, tickSpacing)
}
