package pricecodec

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Bounds are the inclusive tick limits of a settlement layer. They must be
// kept in lockstep with the on-chain configuration.
type Bounds struct {
	MinTick int `yaml:"min_tick"`
	MaxTick int `yaml:"max_tick"`
}

// DefaultBounds returns the protocol tick limits.
func DefaultBounds() Bounds {
	return Bounds{MinTick: MIN_TICK, MaxTick: MAX_TICK}
}

// Codec converts between ticks, Q64.96 sqrt prices and WAD prices within a
// fixed tick range. A Codec is immutable and safe for concurrent use.
type Codec struct {
	minTick      int
	maxTick      int
	minSqrtRatio *uint256.Int
	maxSqrtRatio *uint256.Int
}

// Default is the codec for the protocol bounds. The package-level
// conversion functions use it.
var Default = MustNewCodec(DefaultBounds())

// NewCodec derives the sqrt-price range for b. The valid sqrt prices are
// [sqrt(MinTick), sqrt(MaxTick)+1).
func NewCodec(b Bounds) (*Codec, error) {
	if b.MinTick < -MAX_ABS_TICK || b.MaxTick > MAX_ABS_TICK || b.MinTick >= b.MaxTick {
		return nil, &CodecError{
			Kind:   INVALID_BOUNDS,
			Op:     "NewCodec",
			Values: []string{fmt.Sprint(b.MinTick), fmt.Sprint(b.MaxTick)},
		}
	}
	minSqrt, err := getSqrtRatioAtTick(b.MinTick)
	if err != nil {
		return nil, err
	}
	maxSqrt, err := getSqrtRatioAtTick(b.MaxTick)
	if err != nil {
		return nil, err
	}
	return &Codec{
		minTick:      b.MinTick,
		maxTick:      b.MaxTick,
		minSqrtRatio: minSqrt,
		maxSqrtRatio: maxSqrt.AddUint64(maxSqrt, 1),
	}, nil
}

func MustNewCodec(b Bounds) *Codec {
	c, err := NewCodec(b)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec) Bounds() Bounds {
	return Bounds{MinTick: c.minTick, MaxTick: c.maxTick}
}

func (c *Codec) MinTick() int { return c.minTick }
func (c *Codec) MaxTick() int { return c.maxTick }

// MinSqrtRatio returns a copy of the smallest valid sqrt price.
func (c *Codec) MinSqrtRatio() *uint256.Int { return c.minSqrtRatio.Clone() }

// MaxSqrtRatio returns a copy of the exclusive upper sqrt-price limit.
func (c *Codec) MaxSqrtRatio() *uint256.Int { return c.maxSqrtRatio.Clone() }

// TickToSqrtX96 returns sqrt(1.0001^tick) * 2^96, rounded up.
func (c *Codec) TickToSqrtX96(tick int) (*uint256.Int, error) {
	if err := c.ValidateTick(tick); err != nil {
		return nil, err
	}
	return getSqrtRatioAtTick(tick)
}

// SqrtX96ToTick returns the greatest tick whose sqrt price does not exceed
// sqrtPriceX96.
func (c *Codec) SqrtX96ToTick(sqrtPriceX96 *uint256.Int) (int, error) {
	if err := c.ValidateSqrtRatio(sqrtPriceX96); err != nil {
		return 0, err
	}
	return getTickAtSqrtRatio(sqrtPriceX96)
}

func TickToSqrtX96(tick int) (*uint256.Int, error) {
	return Default.TickToSqrtX96(tick)
}

func SqrtX96ToTick(sqrtPriceX96 *uint256.Int) (int, error) {
	return Default.SqrtX96ToTick(sqrtPriceX96)
}
