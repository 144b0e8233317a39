package engine

import "github.com/LordHavelockVetinari/recursive-calculator/rational"

type definitionKind int

const (
	constantDef definitionKind = iota
	functionDef
)

type definition struct {
	kind definitionKind
	id   int
}

// functionEntry is a function binding's write-once slot: nParams is
// fixed at declaration time, body is filled in once compilation
// finishes resolving every forward reference in the program.
type functionEntry struct {
	nParams     int
	initialized bool
	body        Expression
}

type graveyardEntry struct {
	name string
	def  definition
}

// EvalResult is the outcome of reducing one top-level expression
// queued with EvaluateLater: either a Value or the error (typically
// evalctx.ErrCancelled) that interrupted reduction.
type EvalResult struct {
	Value rational.Value
	Err   error
}

// Program is the live registry of constant and function bindings:
// the source's Program struct, restructured around a single
// append-only slab of bindings keyed by id (constants, functions) so
// that WeakConstant/WeakFunction handles never dangle, plus a
// name->binding map that redefinition is free to overwrite. Bindings
// displaced by redefinition or :delete are moved to a graveyard
// record rather than dropped, mirroring the source's old_definitions
// list; expressions that still reference a displaced binding's id
// keep working exactly as before, since the slab entry itself is
// never removed.
type Program struct {
	nextID     int
	constants  map[int]*Thunk
	functions  map[int]*functionEntry
	names      map[string]definition
	graveyard  []graveyardEntry
	toEvaluate []Expression
}

// NewProgram returns an empty program registry.
func NewProgram() *Program {
	return &Program{
		constants: make(map[int]*Thunk),
		functions: make(map[int]*functionEntry),
		names:     make(map[string]definition),
	}
}

func (p *Program) allocID() int {
	id := p.nextID
	p.nextID++
	return id
}

func (p *Program) constantByID(id int) (*Thunk, bool) {
	t, ok := p.constants[id]
	return t, ok
}

func (p *Program) functionByID(id int) (*functionEntry, bool) {
	f, ok := p.functions[id]
	return f, ok
}

// moveToGraveyard displaces an existing name binding, if any, keeping
// its slab entry reachable by id but no longer resolvable by name.
func (p *Program) moveToGraveyard(name string) {
	if old, ok := p.names[name]; ok {
		p.graveyard = append(p.graveyard, graveyardEntry{name, old})
		delete(p.names, name)
	}
}

// DefineConstant allocates a fresh, uninitialized constant binding
// for name, displacing any prior binding under the same name.
func (p *Program) DefineConstant(name string) WeakConstant {
	p.moveToGraveyard(name)
	id := p.allocID()
	p.constants[id] = NewThunk(defaultExpression())
	p.names[name] = definition{constantDef, id}
	return WeakConstant{program: p, id: id}
}

// DefineFunction allocates a fresh, uninitialized function binding
// with the given parameter count, displacing any prior binding under
// the same name.
func (p *Program) DefineFunction(name string, nParams int) WeakFunction {
	p.moveToGraveyard(name)
	id := p.allocID()
	p.functions[id] = &functionEntry{nParams: nParams}
	p.names[name] = definition{functionDef, id}
	return WeakFunction{program: p, id: id}
}

// SetConstantBody fills in a constant binding's defining expression.
// Called once per binding, by the compiler's second pass.
func (p *Program) SetConstantBody(ref WeakConstant, body Expression) {
	t, ok := p.constantByID(ref.id)
	if !ok {
		panic("engine: SetConstantBody on an id outside this program")
	}
	t.expr = body
}

// SetFunctionBody fills in a function binding's body template.
// Called once per binding, by the compiler's second pass.
func (p *Program) SetFunctionBody(ref WeakFunction, body Expression) {
	f, ok := p.functionByID(ref.id)
	if !ok {
		panic("engine: SetFunctionBody on an id outside this program")
	}
	f.body = body
	f.initialized = true
}

// LookupConstant resolves a currently live name to a constant handle.
func (p *Program) LookupConstant(name string) (WeakConstant, bool) {
	def, ok := p.names[name]
	if !ok || def.kind != constantDef {
		return WeakConstant{}, false
	}
	return WeakConstant{program: p, id: def.id}, true
}

// LookupFunction resolves a currently live name to a function handle
// plus its declared parameter count.
func (p *Program) LookupFunction(name string) (WeakFunction, int, bool) {
	def, ok := p.names[name]
	if !ok || def.kind != functionDef {
		return WeakFunction{}, 0, false
	}
	f, ok := p.functionByID(def.id)
	if !ok {
		panic("engine: live function definition missing its slab entry")
	}
	return WeakFunction{program: p, id: def.id}, f.nParams, true
}

// IsConstant and IsFunction report how name currently resolves, for
// the compiler's duplicate/shadowing diagnostics.
func (p *Program) IsConstant(name string) bool {
	def, ok := p.names[name]
	return ok && def.kind == constantDef
}

func (p *Program) IsFunction(name string) bool {
	def, ok := p.names[name]
	return ok && def.kind == functionDef
}

// Defined reports whether name currently resolves to anything.
func (p *Program) Defined(name string) bool {
	_, ok := p.names[name]
	return ok
}

// Undefine removes name's current binding, moving it to the
// graveyard. It reports whether a binding existed.
func (p *Program) Undefine(name string) bool {
	if _, ok := p.names[name]; !ok {
		return false
	}
	p.moveToGraveyard(name)
	return true
}

// EvaluateLater queues a top-level expression to be reduced the next
// time Run is called.
func (p *Program) EvaluateLater(e Expression) {
	p.toEvaluate = append(p.toEvaluate, e)
}

// Run reduces every queued expression in submission order, against a
// shared Environment, and returns one result per expression. A
// cancelled or otherwise failed expression does not stop the rest
// from running: each top-level statement is independent.
func (p *Program) Run(env *Environment) []EvalResult {
	pending := p.toEvaluate
	p.toEvaluate = nil
	results := make([]EvalResult, 0, len(pending))
	for i := range pending {
		if err := pending[i].Simplify(env); err != nil {
			results = append(results, EvalResult{Err: err})
			continue
		}
		v, ok := pending[i].valueIfFound()
		if !ok {
			panic("engine: expression finished simplifying without a value")
		}
		results = append(results, EvalResult{Value: v})
	}
	return results
}

// Snapshot captures enough of the program's current state to support
// Restore: a failed compilation unit should leave no trace. The
// binding slabs (constants, functions) are shared by reference with
// the snapshot rather than deep-copied, since they are append-only
// and ids are never reused; any binding allocated after the snapshot
// and later discarded by Restore simply becomes unreachable by name,
// which is harmless bookkeeping rather than a correctness issue.
func (p *Program) Snapshot() *Program {
	names := make(map[string]definition, len(p.names))
	for k, v := range p.names {
		names[k] = v
	}
	return &Program{
		nextID:     p.nextID,
		constants:  p.constants,
		functions:  p.functions,
		names:      names,
		graveyard:  append([]graveyardEntry(nil), p.graveyard...),
		toEvaluate: append([]Expression(nil), p.toEvaluate...),
	}
}

// Restore replaces p's name bindings, graveyard and evaluation queue
// with those captured by an earlier Snapshot, discarding anything
// declared since.
func (p *Program) Restore(snap *Program) {
	nextID := p.nextID
	*p = *snap
	p.nextID = nextID
}
