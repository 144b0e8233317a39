package rational

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func frac(n, d int64) *big.Rat {
	return big.NewRat(n, d)
}

func TestPow(t *testing.T) {
	cases := []struct {
		a, b   *big.Rat
		want   *big.Rat
		defind bool
	}{
		{frac(0, 1), frac(0, 1), frac(1, 1), true},
		{frac(1, 1), frac(0, 1), frac(1, 1), true},
		{frac(1, 1), frac(1, 1), frac(1, 1), true},
		{frac(2, 1), frac(1, 1), frac(2, 1), true},
		{frac(2, 1), frac(2, 1), frac(4, 1), true},
		{frac(1, 1), frac(1, 2), frac(1, 1), true},
		{frac(2, 1), frac(1, 2), nil, false},
		{frac(4, 1), frac(1, 2), frac(2, 1), true},
		{frac(2, 1), frac(3, 1), frac(8, 1), true},
		{frac(8, 1), frac(1, 3), frac(2, 1), true},
		{frac(8, 1), frac(1, 2), nil, false},
		{frac(27, 1), frac(1, 3), frac(3, 1), true},
		{frac(27, 1), frac(2, 3), frac(9, 1), true},
		{frac(9, 1), frac(3, 2), frac(27, 1), true},
		{frac(27, 1), frac(1, 2), nil, false},
		{frac(1, 4), frac(1, 2), frac(1, 2), true},
		{frac(1, 4), frac(1, 3), nil, false},
		{frac(1, 2), frac(2, 1), frac(1, 4), true},
		{frac(1, 4), frac(3, 2), frac(1, 8), true},
		{frac(10000, 1), frac(1, 4), frac(10, 1), true},
		{frac(1024, 1), frac(7, 5), frac(16384, 1), true},
		{frac(-1, 1), frac(2, 1), frac(1, 1), true},
		{frac(-1, 1), frac(3, 1), frac(-1, 1), true},
		{frac(-1, 1), frac(100, 1), frac(1, 1), true},
		{frac(-7, 1), frac(2, 1), frac(49, 1), true},
		{frac(-5, 3), frac(4, 1), frac(625, 81), true},
		{frac(-8, 1), frac(1, 3), frac(-2, 1), true},
		{frac(-8, 27), frac(1, 3), frac(-2, 3), true},
		{frac(-1, 27), frac(2, 6), frac(-1, 3), true},
		{frac(-27, 1), frac(2, 3), frac(9, 1), true},
		{frac(-1, 1), frac(1, 2), nil, false},
		{frac(1, 1), frac(-1, 1), frac(1, 1), true},
		{frac(7, 8), frac(-1, 1), frac(8, 7), true},
		{frac(2, 1), frac(-2, 1), frac(1, 4), true},
		{frac(3, 7), frac(-1, 2), nil, false},
		{frac(4, 49), frac(-1, 2), frac(7, 2), true},
		{frac(27, 125), frac(-4, 3), frac(625, 81), true},
		{frac(-1, 1), frac(-1, 1), frac(-1, 1), true},
		{frac(-2, 1), frac(-2, 1), frac(1, 4), true},
		{frac(-2, 1), frac(-1, 2), nil, false},
		{frac(-1, 1), frac(-7, 3), frac(-1, 1), true},
		{frac(-1, 1), frac(-8, 3), frac(1, 1), true},
		{frac(-125, 1), frac(-1, 3), frac(-1, 5), true},
		{frac(-1024, 243), frac(-2, 5), frac(9, 16), true},
		{frac(9, 16), frac(-5, 2), frac(1024, 243), true},
		{frac(-9, 16), frac(-5, 2), nil, false},
		{frac(-9, 16), frac(-5, 3), nil, false},
	}
	for _, c := range cases {
		got, ok := Pow(c.a, c.b)
		if c.defind {
			if assert.True(t, ok, "Pow(%v, %v) should be defined", c.a, c.b) {
				assert.Equal(t, 0, got.Cmp(c.want), "Pow(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		} else {
			assert.False(t, ok, "Pow(%v, %v) should be irrational", c.a, c.b)
		}
	}
}

func TestPowRootCorrectness(t *testing.T) {
	for _, r := range []*big.Rat{frac(2, 1), frac(3, 5), frac(-7, 2), frac(11, 1)} {
		for n := int64(1); n <= 5; n++ {
			rn, ok := Pow(r, frac(n, 1))
			if !ok {
				continue
			}
			s, ok := Pow(rn, frac(1, n))
			if !ok {
				continue
			}
			sn, ok := Pow(s, frac(n, 1))
			if assert.True(t, ok) {
				assert.Equal(t, 0, sn.Cmp(rn))
			}
		}
	}
}
