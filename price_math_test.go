package pricecodec

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickToWad(t *testing.T) {
	tests := []struct {
		tick int
		want string
	}{
		{0, "1000000000000000000"},
		{1, "1000100000000000000"},
		{-1, "999900009999000099"},
		{50, "1005012269623051203"},
		{-50, "995012727929250903"},
		{100000, "22015456048552198645701"},
		{-200000, "2063215669"},
		{MAX_TICK, "18446050711097703529776342895654370894"},
		{MAX_TICK - 1, "18444206290468656664109931902460735027"},
		{MIN_TICK, "9861"},
		{MIN_TICK + 1, "9862"},
	}
	for _, tt := range tests {
		got, err := TickToWad(tt.tick)
		require.NoError(t, err, "tick %d", tt.tick)
		assert.Equal(t, tt.want, got.Dec(), "tick %d", tt.tick)
	}

	_, err := TickToWad(MAX_TICK + 1)
	assert.ErrorIs(t, err, INVALID_TICK)
	_, err = TickToWad(MIN_TICK - 1)
	assert.ErrorIs(t, err, INVALID_TICK)
}

func TestSqrtX96ToWad(t *testing.T) {
	got, err := SqrtX96ToWad(Q96)
	require.NoError(t, err)
	assert.Equal(t, WAD, got)

	got, err = SqrtX96ToWad(u("79232123823359799118286999568"))
	require.NoError(t, err)
	assert.Equal(t, "1000100000000000000", got.Dec())

	_, err = SqrtX96ToWad(MAX_SQRT_RATIO)
	assert.ErrorIs(t, err, INVALID_SQRT_RATIO)
	_, err = SqrtX96ToWad(new(uint256.Int).SubUint64(MIN_SQRT_RATIO, 1))
	assert.ErrorIs(t, err, INVALID_SQRT_RATIO)
}

func TestWadToSqrtX96(t *testing.T) {
	tests := []struct {
		wad  string
		sqrt string
		tick int
	}{
		{"1000000000000000000", Q96.Dec(), 0},
		{"2000000000000000000", "112045541949572279837463876454", 6931},
		{"500000000000000000", "56022770974786139918731938227", -6932},
		{"3000000000000000000000", "4339505179874779489431521786241", 80067},
		{"18446050711097703529776342895654370894", "340275971719517849884101479065584693827", 443635},
	}
	for _, tt := range tests {
		sqrt, err := WadToSqrtX96(u(tt.wad))
		require.NoError(t, err, "wad %s", tt.wad)
		assert.Equal(t, tt.sqrt, sqrt.Dec(), "wad %s", tt.wad)

		tick, err := WadToTick(u(tt.wad))
		require.NoError(t, err, "wad %s", tt.wad)
		assert.Equal(t, tt.tick, tick, "wad %s", tt.wad)
	}

	t.Run("below the minimum price", func(t *testing.T) {
		for _, wad := range []uint64{0, 1, 9861} {
			_, err := WadToSqrtX96(uint256.NewInt(wad))
			assert.ErrorIs(t, err, INVALID_SQRT_RATIO, "wad %d", wad)
		}
		var codecErr *CodecError
		_, err := WadToTick(uint256.NewInt(1))
		require.True(t, errors.As(err, &codecErr))
		assert.Equal(t, []string{"1", "79228162514132168796"}, codecErr.Values)
	})

	t.Run("overflow", func(t *testing.T) {
		huge := new(uint256.Int).Mul(WAD, u("10000000000000000000000"))
		_, err := WadToSqrtX96(huge)
		assert.ErrorIs(t, err, OVERFLOW)
		_, err = WadToSqrtX96(MaxUint256)
		assert.ErrorIs(t, err, OVERFLOW)
	})
}

func TestWadRoundTrip(t *testing.T) {
	for _, tick := range []int{MIN_TICK + 1, -200000, -50, -1, 0, 1, 50, 100000, MAX_TICK - 1} {
		wad, err := TickToWad(tick)
		require.NoError(t, err)
		got, err := WadToTick(wad)
		require.NoError(t, err)
		// flooring the WAD can only move the price down
		assert.True(t, got == tick || got == tick-1, "tick %d -> %s -> %d", tick, wad.Dec(), got)
	}
}

func TestWadDecimal(t *testing.T) {
	assert.Equal(t, "1.5", WadToDecimal(u("1500000000000000000")).String())
	assert.Equal(t, "0.000000000000000001", WadToDecimal(uint256.NewInt(1)).String())

	wad, err := DecimalToWad(decimal.RequireFromString("3000.25"))
	require.NoError(t, err)
	assert.Equal(t, "3000250000000000000000", wad.Dec())

	wad, err = DecimalToWad(decimal.RequireFromString("0.0000000000000000019"))
	require.NoError(t, err)
	assert.Equal(t, "1", wad.Dec())

	_, err = DecimalToWad(decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, UNDERFLOW)

	_, err = DecimalToWad(decimal.RequireFromString("1e60"))
	assert.ErrorIs(t, err, OVERFLOW)
}
