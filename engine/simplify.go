package engine

import "github.com/LordHavelockVetinari/recursive-calculator/rational"

// stepResult is the outcome of reducing a single expression node one
// level. It mirrors the source's SimplifyStepResult enum.
type stepResult interface{ isStepResult() }

// alreadyDone means the node is already a Val; nothing left to do.
type alreadyDone struct{}

// replaceWith overwrites the current node with a new one, typically
// the computed result of a binary op or a function body with its
// arguments bound.
type replaceWith struct{ expr Expression }

// simplifyPart asks the driver to descend into a specific child next.
type simplifyPart struct{ sub *Expression }

// needConstant asks the driver to fully reduce a referenced constant
// before retrying the current node.
type needConstant struct{ ref WeakConstant }

func (alreadyDone) isStepResult()   {}
func (replaceWith) isStepResult()   {}
func (simplifyPart) isStepResult()  {}
func (needConstant) isStepResult()  {}

// Simplify drives e to a Val in place, walking into the tree with an
// explicit, heap-allocated stack of ancestors rather than recursive
// descent: reducing a chain of Add/Sub/Mul/Div/Pow/Call nodes of
// arbitrary depth costs one Go stack frame, not one per level, since
// "returning" to a resolved parent is a pop off this stack rather
// than a return from a nested call. A node is pushed when simplifyPart
// asks the driver to descend into it, and popped once it becomes a
// Val, at which point its parent (now back on top) is retried and
// typically folds it into a replaceWith. Recursion remains in two
// places: reducing a referenced constant (needConstant) and reducing
// an argument thunk (argNode) each run a nested Simplify through
// Thunk.Evaluate. The first is bounded by the number of named bindings
// chained together; the second is not bounded by the program text, so
// a chain of still-unevaluated argument thunks, each defined in terms
// of the previous call's argument, costs one nested Simplify per link.
func (e *Expression) Simplify(env *Environment) error {
	stack := []*Expression{e}
	for {
		if err := env.Tick(); err != nil {
			return err
		}
		p := stack[len(stack)-1]
		step, err := p.simplifyStep(env)
		if err != nil {
			return err
		}
		switch s := step.(type) {
		case alreadyDone:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil
			}
		case replaceWith:
			old := p.node
			p.node = s.expr.node
			env.dispose(old)
			// leave p on top of the stack: the next iteration retries
			// it (an expanded call body still needs reducing) and pops
			// it once it is a Val, which is what lets the parent one
			// frame down retry with this side resolved.
		case simplifyPart:
			stack = append(stack, s.sub)
		case needConstant:
			if err := s.ref.Simplify(env); err != nil {
				return err
			}
			// retry the same node; its constant should now resolve.
		}
	}
}

func applyBinOp(op binOp, l, r rational.Value) rational.Value {
	switch op {
	case opAdd:
		return l.Add(r)
	case opSub:
		return l.Sub(r)
	case opMul:
		return l.Mul(r)
	case opDiv:
		return l.Div(r)
	case opPow:
		return l.Pow(r)
	default:
		panic("engine: unreachable binary operator")
	}
}

// pickUnreducedSide chooses which child to descend into when neither
// operand-specific shortcut applies: the one still-unreduced side if
// only one qualifies, otherwise a coin flip between both.
func (n *binNode) pickUnreducedSide(env *Environment, lok, rok bool) stepResult {
	switch {
	case lok && !rok:
		return simplifyPart{n.right}
	case rok && !lok:
		return simplifyPart{n.left}
	default:
		if env.coin.Flip() {
			return simplifyPart{n.left}
		}
		return simplifyPart{n.right}
	}
}

// simplifyBinary implements the per-operator short-circuit table:
// absorbing values win before either side is forced, so that e.g.
// Mul(Val(0), E) never requires E to terminate.
func (n *binNode) simplifyBinary(env *Environment) (stepResult, error) {
	lv, lok := n.left.valueIfFound()
	rv, rok := n.right.valueIfFound()

	switch n.op {
	case opMul:
		if lok && lv.IsZero() {
			return replaceWith{Val(lv)}, nil
		}
		if rok && rv.IsZero() {
			return replaceWith{Val(rv)}, nil
		}
		if lok && rok {
			return replaceWith{Val(lv.Mul(rv))}, nil
		}
		return n.pickUnreducedSide(env, lok, rok), nil

	case opAdd, opSub, opDiv:
		if lok && !rok && lv.IsUndefined() {
			return replaceWith{Val(lv)}, nil
		}
		if rok && !lok && rv.IsUndefined() {
			return replaceWith{Val(rv)}, nil
		}
		if lok && rok {
			return replaceWith{Val(applyBinOp(n.op, lv, rv))}, nil
		}
		return n.pickUnreducedSide(env, lok, rok), nil

	case opPow:
		if lok && rok {
			return replaceWith{Val(lv.Pow(rv))}, nil
		}
		if lok && lv.IsOne() {
			return replaceWith{Val(lv)}, nil
		}
		if rok && rv.IsZero() {
			return replaceWith{Val(rational.NumInt64(1))}, nil
		}
		return n.pickUnreducedSide(env, lok, rok), nil

	default:
		panic("engine: unreachable binary operator")
	}
}

// simplifyStep reduces e by exactly one step, per node shape.
func (e *Expression) simplifyStep(env *Environment) (stepResult, error) {
	switch n := e.node.(type) {
	case valNode:
		return alreadyDone{}, nil

	case argNode:
		if v, ok := n.thunk.ValueIfFound(); ok {
			return replaceWith{Val(v)}, nil
		}
		v, err := n.thunk.Evaluate(env)
		if err != nil {
			return nil, err
		}
		return replaceWith{Val(v)}, nil

	case constNode:
		if v, ok := n.ref.ValueIfFound(); ok {
			return replaceWith{Val(v)}, nil
		}
		return needConstant{n.ref}, nil

	case *negNode:
		if v, ok := n.operand.valueIfFound(); ok {
			return replaceWith{Val(v.Neg())}, nil
		}
		return simplifyPart{n.operand}, nil

	case *binNode:
		return n.simplifyBinary(env)

	case *callNode:
		return e.expandCall(n)

	case argIndexNode:
		panic("engine: unsubstituted argument index reached evaluation")

	default:
		panic("engine: unreachable expression node")
	}
}

// expandCall wraps each argument in a fresh, unevaluated thunk,
// clones the callee's body template, binds the thunks in for every
// ArgIndex, and asks the driver to replace the call with that body.
// The clone is bounded by the function's static source size, not by
// how many times it is called or how deep the resulting recursion
// goes.
func (e *Expression) expandCall(n *callNode) (stepResult, error) {
	fn, ok := n.fn.Resolve()
	if !ok || !fn.initialized {
		panic("engine: call to a function whose body was never compiled")
	}
	if len(n.args) != fn.nParams {
		panic("engine: call arity does not match compiled function")
	}
	thunks := make([]*Thunk, len(n.args))
	for i, a := range n.args {
		thunks[i] = NewThunk(*a)
	}
	// The thunks now own the argument subtrees; detach them so that
	// releasing the replaced call node does not tear them down.
	n.args = nil
	body := fn.body.Clone()
	body.SubstituteArgs(thunks)
	return replaceWith{body}, nil
}
