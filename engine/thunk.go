package engine

import "github.com/LordHavelockVetinari/recursive-calculator/rational"

// Thunk is a shared, at-most-once-evaluated expression cell: the
// source's LazyExpression. Every reference to the same named constant
// or the same call argument shares one Thunk, so reducing it once
// reduces it for every referrer (call-by-need).
type Thunk struct {
	expr  Expression
	value *rational.Value
	busy  bool
}

// NewThunk wraps e in a fresh, unevaluated thunk.
func NewThunk(e Expression) *Thunk {
	return &Thunk{expr: e}
}

// ValueIfFound returns the cached value, if this thunk has already
// been reduced to one.
func (t *Thunk) ValueIfFound() (rational.Value, bool) {
	if t.value == nil {
		return rational.Value{}, false
	}
	return *t.value, true
}

// Evaluate reduces the thunk to a Value, reusing a cached result if
// present. Re-entering a thunk that is already mid-reduction (a
// direct or indirect self-reference) is treated as an infinite loop:
// the thunk is immediately resolved to Undefined(InfiniteLoop) rather
// than left to recurse forever or silently report "not found".
func (t *Thunk) Evaluate(env *Environment) (rational.Value, error) {
	if t.value != nil {
		return *t.value, nil
	}
	if t.busy {
		v := rational.Undef(rational.InfiniteLoop)
		t.value = &v
		return v, nil
	}
	t.busy = true
	defer func() { t.busy = false }()

	if err := t.expr.Simplify(env); err != nil {
		return rational.Value{}, err
	}
	v, ok := t.expr.valueIfFound()
	if !ok {
		panic("engine: thunk simplified without reaching a value")
	}
	t.value = &v
	return v, nil
}
