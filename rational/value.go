// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rational implements the exact-rational value algebra: a
// total, two-sorted lattice of ordinary rational numbers and a small
// set of "undefined" poison values (zero-over-zero, infinity,
// irrational, infinite loop). Every operation here is total - there
// is no error return, because an undefined result is a value, not a
// failure.
//
// The absorbing rules are deliberately asymmetric in one place: Mul
// treats a zero operand as absorbing even when the other operand is
// Undefined (0 * undefined = 0), while Add/Sub/Div let Undefined win
// over a zero operand. Both choices keep common algebraic identities
// (x*0 = 0, x^0 = 1) total; only the first lets 0 "see through" an
// Undefined operand. This is surprising enough to call out to users,
// not just future maintainers.
package rational

import (
	"fmt"
	"math/big"
)

// Kind distinguishes the flavors of undefined result.
type Kind int

const (
	// ZeroOverZero is the result of dividing zero by zero.
	ZeroOverZero Kind = iota
	// Infinity is the result of dividing a nonzero number by zero,
	// or raising zero to a negative power.
	Infinity
	// Irrational is the result of a power whose exact root does not exist.
	Irrational
	// InfiniteLoop is the result of a constant that depends on itself.
	InfiniteLoop
)

func (k Kind) String() string {
	switch k {
	case ZeroOverZero:
		return "Undefined result: zero divided by zero"
	case Infinity:
		return "Undefined result: possibly infinite"
	case Irrational:
		return "Undefined result: possibly irrational"
	case InfiniteLoop:
		return "Undefined result: infinite loop detected"
	default:
		panic(fmt.Sprintf("rational: unknown undefined kind %d", k))
	}
}

// Value is either a Number or an Undefined poison value. The zero
// Value is not meaningful; always construct one with Num or Undef.
type Value struct {
	undef  Kind
	isUdef bool
	num    *big.Rat
}

// Num wraps a *big.Rat as a Value. r is retained, not copied; callers
// must not mutate r afterward.
func Num(r *big.Rat) Value {
	if r == nil {
		panic("rational: Num called with nil *big.Rat")
	}
	return Value{num: r}
}

// NumInt64 is a convenience constructor for a Value representing n.
func NumInt64(n int64) Value {
	return Num(big.NewRat(n, 1))
}

// Undef constructs an Undefined Value of the given kind.
func Undef(k Kind) Value {
	return Value{isUdef: true, undef: k}
}

// IsUndefined reports whether v is a poison value.
func (v Value) IsUndefined() bool {
	return v.isUdef
}

// IsNumber reports whether v is an ordinary rational number.
func (v Value) IsNumber() bool {
	return !v.isUdef
}

// Kind returns the undefined kind of v. It panics if v is a number.
func (v Value) Kind() Kind {
	if !v.isUdef {
		panic("rational: Kind called on a Number Value")
	}
	return v.undef
}

// Rat returns the underlying rational. It panics if v is Undefined.
func (v Value) Rat() *big.Rat {
	if v.isUdef {
		panic("rational: Rat called on an Undefined Value")
	}
	return v.num
}

// IsZero reports whether v is the number zero.
func (v Value) IsZero() bool {
	return !v.isUdef && v.num.Sign() == 0
}

// IsOne reports whether v is the number one.
func (v Value) IsOne() bool {
	return !v.isUdef && v.num.Cmp(bigRatOne) == 0
}

var bigRatOne = big.NewRat(1, 1)

func (v Value) String() string {
	if v.isUdef {
		return v.undef.String()
	}
	if v.num.IsInt() {
		return v.num.Num().String()
	}
	return v.num.RatString()
}

// Neg returns -v. Undefined values are passed through unchanged.
func (v Value) Neg() Value {
	if v.isUdef {
		return v
	}
	return Num(new(big.Rat).Neg(v.num))
}

// Add returns v + w.
func (v Value) Add(w Value) Value {
	if v.isUdef {
		return v
	}
	if w.isUdef {
		return w
	}
	return Num(new(big.Rat).Add(v.num, w.num))
}

// Sub returns v - w.
func (v Value) Sub(w Value) Value {
	if v.isUdef {
		return v
	}
	if w.isUdef {
		return w
	}
	return Num(new(big.Rat).Sub(v.num, w.num))
}

// Mul returns v * w. A zero operand absorbs even an Undefined
// partner: Mul(0, Undefined) == 0. See the package comment.
func (v Value) Mul(w Value) Value {
	if v.IsZero() || w.IsZero() {
		return NumInt64(0)
	}
	if v.isUdef {
		return v
	}
	if w.isUdef {
		return w
	}
	return Num(new(big.Rat).Mul(v.num, w.num))
}

// Div returns v / w. Dividing by zero yields ZeroOverZero when v is
// also zero, else Infinity.
func (v Value) Div(w Value) Value {
	if v.isUdef {
		return v
	}
	if w.isUdef {
		return w
	}
	if w.IsZero() {
		if v.IsZero() {
			return Undef(ZeroOverZero)
		}
		return Undef(Infinity)
	}
	return Num(new(big.Rat).Quo(v.num, w.num))
}

// Pow returns v raised to the w-th power, following the special
// cases in order before falling back to exact rational power (see
// Pow in pow.go):
//
//	0^0 = 1
//	0^n, n<0 -> Infinity
//	0^n, n>0 -> 0
//	1^anything = 1
//	anything^0 = 1 (including Undefined^0)
func (v Value) Pow(w Value) Value {
	if v.IsZero() {
		if w.isUdef {
			return w
		}
		switch w.num.Sign() {
		case 0:
			return NumInt64(1)
		case -1:
			return Undef(Infinity)
		default:
			return NumInt64(0)
		}
	}
	if v.IsOne() {
		return NumInt64(1)
	}
	if w.IsZero() {
		return NumInt64(1)
	}
	if v.isUdef {
		return v
	}
	if w.isUdef {
		return w
	}
	result, ok := Pow(v.num, w.num)
	if !ok {
		return Undef(Irrational)
	}
	return Num(result)
}
