package pricecodec

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(s string) *uint256.Int {
	return uint256.MustFromDecimal(s)
}

func randUint256(rng *rand.Rand, bits int) *uint256.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return uint256.MustFromBig(new(big.Int).Rand(rng, limit))
}

func TestMulDiv(t *testing.T) {
	t.Run("reverts if denominator is 0", func(t *testing.T) {
		_, err := MulDiv(Q128, uint256.NewInt(5), new(uint256.Int))
		assert.ErrorIs(t, err, DIVISION_BY_ZERO)
		var codecErr *CodecError
		require.True(t, errors.As(err, &codecErr))
		assert.Equal(t, []string{Q128.Dec(), "5", "0"}, codecErr.Values)
	})

	t.Run("reverts if output overflows uint256", func(t *testing.T) {
		_, err := MulDiv(Q128, Q128, uint256.NewInt(1))
		assert.ErrorIs(t, err, OVERFLOW)
		_, err = MulDiv(MaxUint256, MaxUint256, new(uint256.Int).SubUint64(MaxUint256, 1))
		assert.ErrorIs(t, err, OVERFLOW)
	})

	t.Run("all max inputs", func(t *testing.T) {
		got, err := MulDiv(MaxUint256, MaxUint256, MaxUint256)
		require.NoError(t, err)
		assert.Equal(t, MaxUint256, got)
	})

	t.Run("accurate without phantom overflow", func(t *testing.T) {
		half := new(uint256.Int).Rsh(Q128, 1)
		threeHalves := new(uint256.Int).Mul(half, uint256.NewInt(3))
		got, err := MulDiv(Q128, half, threeHalves)
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Div(Q128, uint256.NewInt(3)), got)
	})

	t.Run("accurate with phantom overflow", func(t *testing.T) {
		got, err := MulDiv(Q128, new(uint256.Int).Mul(uint256.NewInt(35), Q128), new(uint256.Int).Mul(uint256.NewInt(8), Q128))
		require.NoError(t, err)
		assert.Equal(t, "1488735355279105777652263907513985925120", got.Dec())
	})

	t.Run("accurate with phantom overflow and repeating decimal", func(t *testing.T) {
		got, err := MulDiv(Q128, new(uint256.Int).Mul(uint256.NewInt(1000), Q128), new(uint256.Int).Mul(uint256.NewInt(3000), Q128))
		require.NoError(t, err)
		assert.Equal(t, "113427455640312821154458202477256070485", got.Dec())
	})

	t.Run("matches big.Int when the product exceeds 256 bits", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 2000; i++ {
			a := randUint256(rng, 129+rng.Intn(127))
			b := randUint256(rng, 129+rng.Intn(127))
			d := randUint256(rng, 1+rng.Intn(256))
			if d.IsZero() {
				continue
			}
			want := new(big.Int).Mul(a.ToBig(), b.ToBig())
			if want.BitLen() <= 256 {
				continue
			}
			want.Div(want, d.ToBig())

			got, err := MulDiv(a, b, d)
			if want.BitLen() > 256 {
				assert.ErrorIs(t, err, OVERFLOW)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, 0, got.ToBig().Cmp(want), "%s * %s / %s", a.Dec(), b.Dec(), d.Dec())
		}
	})
}

func TestMulDivRoundingUp(t *testing.T) {
	_, err := MulDivRoundingUp(Q128, uint256.NewInt(5), new(uint256.Int))
	assert.ErrorIs(t, err, DIVISION_BY_ZERO)

	got, err := MulDivRoundingUp(MaxUint256, MaxUint256, MaxUint256)
	require.NoError(t, err)
	assert.Equal(t, MaxUint256, got)

	got, err = MulDivRoundingUp(Q128, new(uint256.Int).Mul(uint256.NewInt(1000), Q128), new(uint256.Int).Mul(uint256.NewInt(3000), Q128))
	require.NoError(t, err)
	assert.Equal(t, "113427455640312821154458202477256070486", got.Dec())

	got, err = MulDivRoundingUp(Q128, new(uint256.Int).Mul(uint256.NewInt(35), Q128), new(uint256.Int).Mul(uint256.NewInt(8), Q128))
	require.NoError(t, err)
	assert.Equal(t, "1488735355279105777652263907513985925120", got.Dec())

	// floor(a*b/d) == MaxUint256 with a nonzero remainder
	_, err = MulDivRoundingUp(u("535006138814359"), u("432862656469423142931042426214547535783388063929571229938474969"), uint256.NewInt(2))
	assert.ErrorIs(t, err, OVERFLOW)
}

func TestWmul(t *testing.T) {
	got, err := Wmul(u("1500000000000000000"), u("2000000000000000000"))
	require.NoError(t, err)
	assert.Equal(t, "3000000000000000000", got.Dec())

	got, err = Wmul(uint256.NewInt(1), uint256.NewInt(1))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestIsqrt(t *testing.T) {
	assert.True(t, Isqrt(new(uint256.Int)).IsZero())
	assert.Equal(t, uint256.NewInt(1), Isqrt(uint256.NewInt(3)))
	assert.Equal(t, uint256.NewInt(2), Isqrt(uint256.NewInt(4)))
	assert.Equal(t, Q96, Isqrt(Q192))
	assert.Equal(t, MaxUint128, Isqrt(MaxUint256))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := randUint256(rng, 1+rng.Intn(256))
		want := new(big.Int).Sqrt(x.ToBig())
		assert.Equal(t, 0, Isqrt(x).ToBig().Cmp(want), "isqrt(%s)", x.Dec())
	}
}

func TestMsb(t *testing.T) {
	_, err := Msb(new(uint256.Int))
	assert.ErrorIs(t, err, OVERFLOW)

	tests := []struct {
		x    *uint256.Int
		want int
	}{
		{uint256.NewInt(1), 0},
		{uint256.NewInt(2), 1},
		{uint256.NewInt(3), 1},
		{Q96, 96},
		{MaxUint128, 127},
		{MaxUint256, 255},
	}
	for _, tt := range tests {
		got, err := Msb(tt.x)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "msb(%s)", tt.x.Dec())
	}
}

func TestMulShift(t *testing.T) {
	got, err := MulShift(Q128, &magicRatios[3])
	require.NoError(t, err)
	assert.Equal(t, &magicRatios[3], got)

	_, err = MulShift(MaxUint256, MaxUint256)
	assert.ErrorIs(t, err, OVERFLOW)
}

func FuzzMulDiv(f *testing.F) {
	f.Add([]byte{1}, []byte{2}, []byte{3})
	f.Add(MaxUint256.Bytes(), MaxUint256.Bytes(), MaxUint256.Bytes())
	f.Add(Q128.Bytes(), Q128.Bytes(), []byte{0})
	f.Add(Q192.Bytes(), Q96.Bytes(), Q128.Bytes())

	f.Fuzz(func(t *testing.T, ab, bb, db []byte) {
		if len(ab) > 32 || len(bb) > 32 || len(db) > 32 {
			t.Skip()
		}
		a := new(uint256.Int).SetBytes(ab)
		b := new(uint256.Int).SetBytes(bb)
		d := new(uint256.Int).SetBytes(db)

		got, err := MulDiv(a, b, d)
		if d.IsZero() {
			if !errors.Is(err, DIVISION_BY_ZERO) {
				t.Fatalf("expected DIVISION_BY_ZERO, got %v", err)
			}
			return
		}
		want := new(big.Int).Mul(a.ToBig(), b.ToBig())
		want.Div(want, d.ToBig())
		if want.BitLen() > 256 {
			if !errors.Is(err, OVERFLOW) {
				t.Fatalf("expected OVERFLOW, got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		if got.ToBig().Cmp(want) != 0 {
			t.Fatalf("%s * %s / %s = %s, want %s", a.Dec(), b.Dec(), d.Dec(), got.Dec(), want)
		}
	})
}
