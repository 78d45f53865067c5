package pricecodec

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

// AsInt256 reads the 256-bit pattern of x as a two's-complement signed value.
func AsInt256(x *uint256.Int) *big.Int {
	return math.S256(x.ToBig())
}

// AsUint256 wraps x into 256 bits the way a fixed-width register does: bits
// above 255 are dropped and negative values become their two's complement.
func AsUint256(x *big.Int) *uint256.Int {
	z, _ := uint256.FromBig(math.U256(new(big.Int).Set(x)))
	return z
}

// ForceAsInt24 keeps the low 24 bits of x and sign-extends bit 23.
func ForceAsInt24(x *uint256.Int) int32 {
	return int32(uint32(x.Uint64()&0xffffff)<<8) >> 8
}
