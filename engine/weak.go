package engine

import "github.com/LordHavelockVetinari/recursive-calculator/rational"

// WeakConstant is a handle to a named constant binding that does not
// by itself keep anything alive: it is just a program pointer plus a
// stable id into that program's binding slab. Go's garbage collector
// already keeps the underlying Thunk alive for as long as any
// Expression references it through this id, so "weak" here describes
// intent (observe a binding, never resurrect or redefine it) rather
// than a GC-level distinction. This is the Go rendition this
// repository's design notes settle on in place of Rust's Weak<T>: a
// central map keyed by a monotonic id plus a back-pointer to the
// owning Program.
type WeakConstant struct {
	program *Program
	id      int
}

// ValueIfFound returns the bound constant's cached value, if it has
// already been reduced.
func (w WeakConstant) ValueIfFound() (rational.Value, bool) {
	t, ok := w.program.constantByID(w.id)
	if !ok {
		return rational.Value{}, false
	}
	return t.ValueIfFound()
}

// Simplify fully reduces the referenced constant's thunk.
func (w WeakConstant) Simplify(env *Environment) error {
	t, ok := w.program.constantByID(w.id)
	if !ok {
		panic("engine: constant id missing from its own program")
	}
	_, err := t.Evaluate(env)
	return err
}

// WeakFunction is the function-binding counterpart of WeakConstant.
type WeakFunction struct {
	program *Program
	id      int
}

// Resolve returns the function's compiled binding (parameter count
// and body template), if the function has a slot for this id at all.
func (w WeakFunction) Resolve() (*functionEntry, bool) {
	return w.program.functionByID(w.id)
}
