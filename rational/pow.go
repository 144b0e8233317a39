package rational

import "math/big"

// natPow returns b^e for non-negative integers. For a base other than
// 0 or 1, exponents larger than maxExponent panic with "out of memory"
// as an intentional capacity cap: this calculator evaluates user-supplied recursive programs,
// and an exponent that large is certainly a mistake rather than a
// legitimate computation.
func natPow(b, e *big.Int) *big.Int {
	switch {
	case b.Sign() == 0:
		if e.Sign() == 0 {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case b.Cmp(bigIntOne) == 0:
		return big.NewInt(1)
	}
	if !e.IsUint64() {
		panic("out of memory")
	}
	n := e.Uint64()
	if n > maxExponent {
		panic("out of memory")
	}
	return new(big.Int).Exp(b, e, nil)
}

var bigIntOne = big.NewInt(1)

// maxExponent bounds the exponents this calculator will compute
// directly; far beyond what any exact-rational arithmetic problem
// needs, but finite, so a runaway recursive program fails loudly
// instead of allocating forever.
const maxExponent = 1 << 24

// ratNatPow raises the rational b to the non-negative integer power
// e, keeping the sign of b correct when e is even and b is negative.
func ratNatPow(b *big.Rat, e *big.Int) *big.Rat {
	numer := b.Num()
	denom := b.Denom()
	if numer.Sign() < 0 && e.Bit(0) == 0 {
		numer = new(big.Int).Neg(numer)
	}
	return new(big.Rat).SetFrac(natPow(numer, e), natPow(denom, e))
}

// ratIntPow raises b to the (possibly negative) integer power e.
// It returns (nil, false) only when e is negative and b is zero,
// which the caller must turn into Infinity.
func ratIntPow(b *big.Rat, e *big.Int) (*big.Rat, bool) {
	abs := new(big.Int).Abs(e)
	result := ratNatPow(b, abs)
	if e.Sign() >= 0 {
		return result, true
	}
	if result.Sign() == 0 {
		return nil, false
	}
	return new(big.Rat).Inv(result), true
}

// natRoot returns the exact n-th root of the non-negative integer x,
// or (nil, false) if no exact root exists. It uses integer
// bisection: halve the search interval until it stabilizes, then
// check both endpoints for an exact match.
func natRoot(n uint64, x *big.Int) (*big.Int, bool) {
	lower := big.NewInt(0)
	upper := new(big.Int).Set(x)
	nBig := new(big.Int).SetUint64(n)
	for {
		avg := new(big.Int).Add(lower, upper)
		avg.Rsh(avg, 1)
		if avg.Cmp(lower) == 0 {
			break
		}
		switch natPow(avg, nBig).Cmp(x) {
		case -1:
			lower = avg
		case 0:
			return avg, true
		case 1:
			upper = avg
		}
	}
	if natPow(lower, nBig).Cmp(x) == 0 {
		return lower, true
	}
	if natPow(upper, nBig).Cmp(x) == 0 {
		return upper, true
	}
	return nil, false
}

// nthRoot returns the exact n-th root of x (which may be negative),
// or (nil, false) if none exists. A negative x only has a real n-th
// root when n is odd.
func nthRoot(n uint64, x *big.Int) (*big.Int, bool) {
	switch x.Sign() {
	case 0:
		return big.NewInt(0), true
	case 1:
		return natRoot(n, x)
	default:
		if n%2 == 0 {
			return nil, false
		}
		abs := new(big.Int).Neg(x)
		root, ok := natRoot(n, abs)
		if !ok {
			return nil, false
		}
		return new(big.Int).Neg(root), true
	}
}

// Pow computes the exact rational power a^b, for nonzero a and
// nonzero b (the zero cases are handled one level up, in Value.Pow).
// It returns (nil, false) when the result is irrational, i.e. the
// exponent's denominator does not divide evenly.
//
// Given b = p/q in lowest terms (q > 0), it first extracts the exact
// q-th root of a's numerator and denominator, then raises the result
// to the integer power p.
func Pow(a, b *big.Rat) (*big.Rat, bool) {
	root := b.Denom()
	pow := new(big.Int).Set(b.Num())
	if root.Cmp(bigIntOne) != 0 {
		if !root.IsUint64() || root.Uint64() > maxExponent {
			panic("out of memory")
		}
		n := root.Uint64()
		numerRoot, ok := nthRoot(n, a.Num())
		if !ok {
			return nil, false
		}
		denomRoot, ok := nthRoot(n, a.Denom())
		if !ok {
			return nil, false
		}
		a = new(big.Rat).SetFrac(numerRoot, denomRoot)
	}
	return ratIntPow(a, pow)
}
