package rational

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func num(n, d int64) Value {
	return Num(frac(n, d))
}

func TestMulZeroAbsorbsUndefined(t *testing.T) {
	assert.True(t, num(0, 1).Mul(Undef(Infinity)).IsZero())
	assert.True(t, Undef(Infinity).Mul(num(0, 1)).IsZero())
}

func TestAddDoesNotAbsorbZero(t *testing.T) {
	v := Undef(Infinity).Add(num(0, 1))
	assert.True(t, v.IsUndefined())
	assert.Equal(t, Infinity, v.Kind())
}

func TestDivByZero(t *testing.T) {
	assert.Equal(t, ZeroOverZero, num(0, 1).Div(num(0, 1)).Kind())
	assert.Equal(t, Infinity, num(3, 1).Div(num(0, 1)).Kind())
}

func TestPowSpecialCases(t *testing.T) {
	assert.True(t, num(0, 1).Pow(num(0, 1)).IsOne())
	assert.Equal(t, Infinity, num(0, 1).Pow(num(-1, 1)).Kind())
	assert.True(t, num(0, 1).Pow(num(3, 1)).IsZero())
	assert.True(t, num(1, 1).Pow(Undef(Irrational)).IsOne())
	assert.True(t, Undef(Irrational).Pow(num(0, 1)).IsOne())
	v := num(2, 1).Pow(num(1, 2))
	assert.Equal(t, Irrational, v.Kind())
}

func TestStringFormat(t *testing.T) {
	assert.Equal(t, "2", num(4, 2).String())
	assert.Equal(t, "1/3", num(1, 3).String())
	assert.Equal(t, ZeroOverZero.String(), Undef(ZeroOverZero).String())
}
