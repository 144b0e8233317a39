package compile

import (
	"github.com/LordHavelockVetinari/recursive-calculator/engine"
	"github.com/LordHavelockVetinari/recursive-calculator/parse"
	"github.com/LordHavelockVetinari/recursive-calculator/rational"
)

// localEnv maps a function's parameter names to their ArgIndex
// position. A nil localEnv means "no parameters in scope", used when
// compiling a constant's right-hand side or a top-level Evaluate
// statement.
type localEnv map[string]uint

// Compile lowers every statement of prog against ep, in two passes:
// first every assignment target is declared (so forward references
// resolve), then every right-hand side is lowered into ep's
// expression graph. On the first error, compilation stops; ep may be
// left with extra uninitialized bindings from the declaration pass,
// so callers that want atomicity should snapshot ep first and Restore
// on error (see engine.Program.Snapshot).
func Compile(ep *engine.Program, prog *parse.Program) error {
	if err := declareAll(ep, prog); err != nil {
		return err
	}
	for _, stmt := range prog.Statements {
		if stmt.IsEvaluate() {
			expr, err := compileExpr(stmt.RHS, ep, nil)
			if err != nil {
				return err
			}
			ep.EvaluateLater(expr)
			continue
		}
		if err := compileAssignment(ep, stmt); err != nil {
			return err
		}
	}
	return nil
}

// declareAll is compilation's first pass: every assignment target in
// the unit gets a fresh, uninitialized binding before any right-hand
// side is lowered, so mutually- and forward-referencing definitions
// resolve regardless of source order.
func declareAll(ep *engine.Program, prog *parse.Program) error {
	declaredThisUnit := make(map[string]bool)
	for _, stmt := range prog.Statements {
		if stmt.IsEvaluate() {
			continue
		}
		for _, target := range stmt.Targets {
			name, arity, ok := targetShape(target)
			if !ok {
				return &Error{Kind: BadEquation}
			}
			if declaredThisUnit[name] {
				return &Error{Kind: DuplicateDeclaration, Name: name}
			}
			declaredThisUnit[name] = true
			if arity < 0 {
				ep.DefineConstant(name)
			} else {
				ep.DefineFunction(name, arity)
			}
		}
	}
	return nil
}

// targetShape reports the name an assignment target declares, and its
// arity: -1 for a constant (a bare Ident), or len(Args) for a
// function (a Call). ok is false for any other LHS shape.
func targetShape(target parse.Expr) (name string, arity int, ok bool) {
	switch t := target.(type) {
	case *parse.Ident:
		return t.Name, -1, true
	case *parse.Call:
		return t.Name, len(t.Args), true
	default:
		return "", 0, false
	}
}

// compileAssignment lowers stmt's right-hand side once per target,
// since a constant target and a function target require different
// local environments (a function target's parameters are in scope
// for the right-hand side; a constant target has none).
func compileAssignment(ep *engine.Program, stmt parse.Statement) error {
	for _, target := range stmt.Targets {
		switch t := target.(type) {
		case *parse.Ident:
			ref, ok := ep.LookupConstant(t.Name)
			if !ok {
				panic("compile: constant target missing its pass-1 declaration")
			}
			body, err := compileExpr(stmt.RHS, ep, nil)
			if err != nil {
				return err
			}
			ep.SetConstantBody(ref, body)

		case *parse.Call:
			ref, nParams, ok := ep.LookupFunction(t.Name)
			if !ok {
				panic("compile: function target missing its pass-1 declaration")
			}
			locals, err := paramEnv(ep, t)
			if err != nil {
				return err
			}
			body, err := compileExpr(stmt.RHS, ep, locals)
			if err != nil {
				return err
			}
			if nParams != len(locals) {
				panic("compile: declared arity does not match parameter count")
			}
			ep.SetFunctionBody(ref, body)

		default:
			panic("compile: unreachable target shape after pass 1")
		}
	}
	return nil
}

// paramEnv validates a function target's parameter list: each must be
// a plain identifier, none may shadow a global binding (other than
// the function's own name, which is already declared by pass 1), and
// none may repeat.
func paramEnv(ep *engine.Program, call *parse.Call) (localEnv, error) {
	env := make(localEnv, len(call.Args))
	for i, arg := range call.Args {
		ident, ok := arg.(*parse.Ident)
		if !ok {
			return nil, &Error{Kind: BadParameter, Context: call.Name}
		}
		if _, dup := env[ident.Name]; dup {
			return nil, &Error{Kind: DuplicateParameter, Name: ident.Name, Context: call.Name}
		}
		if ident.Name != call.Name && ep.Defined(ident.Name) {
			return nil, &Error{Kind: ParamShadowsGlobal, Name: ident.Name, Context: call.Name}
		}
		env[ident.Name] = uint(i)
	}
	return env, nil
}

// compileExpr lowers a parsed expression into the engine's expression
// graph, resolving identifiers against locals first and the global
// program registry second.
func compileExpr(e parse.Expr, ep *engine.Program, locals localEnv) (engine.Expression, error) {
	switch n := e.(type) {
	case *parse.NumberLit:
		return engine.Val(rational.Num(n.Value)), nil

	case *parse.Ident:
		if idx, ok := locals[n.Name]; ok {
			return engine.ArgIndex(idx), nil
		}
		if ref, ok := ep.LookupConstant(n.Name); ok {
			return engine.Const(ref), nil
		}
		if ep.IsFunction(n.Name) {
			return engine.Expression{}, &Error{Kind: FunctionNotConstant, Name: n.Name}
		}
		return engine.Expression{}, &Error{Kind: ConstantNotFound, Name: n.Name}

	case *parse.Neg:
		x, err := compileExpr(n.X, ep, locals)
		if err != nil {
			return engine.Expression{}, err
		}
		return engine.Neg(x), nil

	case *parse.BinOp:
		l, err := compileExpr(n.L, ep, locals)
		if err != nil {
			return engine.Expression{}, err
		}
		r, err := compileExpr(n.R, ep, locals)
		if err != nil {
			return engine.Expression{}, err
		}
		switch n.Op {
		case '+':
			return engine.Add(l, r), nil
		case '-':
			return engine.Sub(l, r), nil
		case '*':
			return engine.Mul(l, r), nil
		case '/':
			return engine.Div(l, r), nil
		case '^':
			return engine.Pow(l, r), nil
		default:
			panic("compile: unreachable binary operator")
		}

	case *parse.Call:
		// Parameters are values, never callable, so call resolution
		// never consults locals: it resolves only against the global
		// function/constant namespace.
		if ref, nParams, ok := ep.LookupFunction(n.Name); ok {
			if len(n.Args) != nParams {
				return engine.Expression{}, &Error{Kind: WrongNArgs, Name: n.Name, Got: len(n.Args), Want: nParams}
			}
			args := make([]engine.Expression, len(n.Args))
			for i, a := range n.Args {
				ae, err := compileExpr(a, ep, locals)
				if err != nil {
					return engine.Expression{}, err
				}
				args[i] = ae
			}
			return engine.Call(ref, args), nil
		}
		if ep.IsConstant(n.Name) {
			return engine.Expression{}, &Error{Kind: ConstantNotFunction, Name: n.Name}
		}
		return engine.Expression{}, &Error{Kind: FunctionNotFound, Name: n.Name}

	default:
		panic("compile: unreachable expression node")
	}
}
