// Package engine implements the referenced expression graph and the
// non-recursive, memoizing lazy evaluator described by this
// repository's language: a single mutable Expression box rewrites
// itself in place as it is reduced, constants and call arguments are
// shared thunks so repeated references are reduced at most once, and
// a small cooperative "environment" (evalctx.Canceller plus a
// deterministic coin) is threaded through every step instead of
// living in package-level globals, in the spirit of this lineage's
// habit of passing a small context/config value through the
// evaluator rather than reaching for ambient state.
package engine

import (
	"fmt"

	"github.com/LordHavelockVetinari/recursive-calculator/rational"
)

// argIndexSentinel marks an uninitialized constant binding's
// expression before it has been assigned a defining expression.
const argIndexSentinel = ^uint(0) >> 1

// binOp identifies a binary arithmetic operator.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
	opPow
)

// exprNode is the sealed set of expression tree node shapes. It
// plays the role the source's `Expression` enum variants play; Go has
// no sum types, so each variant becomes its own node type behind this
// marker interface.
type exprNode interface {
	isExprNode()
}

type valNode struct{ v rational.Value }

type argNode struct{ thunk *Thunk }

type constNode struct{ ref WeakConstant }

type negNode struct{ operand *Expression }

type binNode struct {
	op          binOp
	left, right *Expression
}

type callNode struct {
	fn   WeakFunction
	args []*Expression
}

type argIndexNode struct{ i uint }

func (valNode) isExprNode()      {}
func (argNode) isExprNode()      {}
func (constNode) isExprNode()    {}
func (*negNode) isExprNode()     {}
func (*binNode) isExprNode()     {}
func (*callNode) isExprNode()    {}
func (argIndexNode) isExprNode() {}

// Expression is a single node of the expression graph. It is a
// mutable box: simplification overwrites its node in place rather
// than allocating a new Expression, which is what lets the evaluator
// walk and rewrite a tree using one pointer instead of recursive
// calls (see Simplify in simplify.go).
type Expression struct {
	node exprNode
}

// Val wraps an already-reduced value as a leaf expression.
func Val(v rational.Value) Expression { return Expression{node: valNode{v}} }

// Arg references a shared argument thunk.
func Arg(t *Thunk) Expression { return Expression{node: argNode{t}} }

// Const references a named constant by weak handle.
func Const(ref WeakConstant) Expression { return Expression{node: constNode{ref}} }

// Neg negates an expression.
func Neg(e Expression) Expression { return Expression{node: &negNode{&e}} }

func binary(op binOp, l, r Expression) Expression {
	return Expression{node: &binNode{op: op, left: &l, right: &r}}
}

// Add, Sub, Mul, Div and Pow build the corresponding binary operator node.
func Add(l, r Expression) Expression { return binary(opAdd, l, r) }
func Sub(l, r Expression) Expression { return binary(opSub, l, r) }
func Mul(l, r Expression) Expression { return binary(opMul, l, r) }
func Div(l, r Expression) Expression { return binary(opDiv, l, r) }
func Pow(l, r Expression) Expression { return binary(opPow, l, r) }

// Call invokes a named function with the given positional argument
// expressions.
func Call(fn WeakFunction, args []Expression) Expression {
	ptrs := make([]*Expression, len(args))
	for i := range args {
		ptrs[i] = &args[i]
	}
	return Expression{node: &callNode{fn: fn, args: ptrs}}
}

// ArgIndex is a placeholder that appears only inside a function's
// body template, before SubstituteArgs replaces it with a reference
// to the caller's argument thunk.
func ArgIndex(i uint) Expression { return Expression{node: argIndexNode{i}} }

// defaultExpression is the sentinel used for an uninitialized
// constant binding (mirrors Expression::default() in the source:
// ArgumentIndex(usize::MAX)).
func defaultExpression() Expression { return ArgIndex(argIndexSentinel) }

// isDefault reports whether e is still the uninitialized sentinel.
func (e *Expression) isDefault() bool {
	n, ok := e.node.(argIndexNode)
	return ok && n.i == argIndexSentinel
}

// valueIfFound returns the Value stored at e's root, if e is already
// a reduced leaf.
func (e *Expression) valueIfFound() (rational.Value, bool) {
	if n, ok := e.node.(valNode); ok {
		return n.v, true
	}
	return rational.Value{}, false
}

// SubstituteArgs walks a (typically function-body) expression tree
// and replaces every ArgIndex(i) with a reference to args[i]. It and
// Clone are the places this package recurses proportionally to
// expression size rather than evaluation depth: it only ever walks a function's
// static body template, whose size is fixed by the program's source
// text, never by how many times the function is later called.
func (e *Expression) SubstituteArgs(args []*Thunk) {
	switch n := e.node.(type) {
	case valNode, argNode, constNode:
		// no children to substitute into
	case *negNode:
		n.operand.SubstituteArgs(args)
	case *binNode:
		n.left.SubstituteArgs(args)
		n.right.SubstituteArgs(args)
	case *callNode:
		for _, a := range n.args {
			a.SubstituteArgs(args)
		}
	case argIndexNode:
		if int(n.i) >= len(args) {
			panic(fmt.Sprintf("engine: argument index %d out of range (%d args)", n.i, len(args)))
		}
		e.node = argNode{args[n.i]}
	default:
		panic("engine: unreachable expression node")
	}
}

// Clone makes a structural copy of e, duplicating every interior
// node but sharing leaves (values, thunks, weak references) by
// identity. Like SubstituteArgs, this only ever walks a function
// body template, so its recursion is bounded by source size.
func (e *Expression) Clone() Expression {
	switch n := e.node.(type) {
	case valNode:
		return Expression{node: n}
	case argNode:
		return Expression{node: n}
	case constNode:
		return Expression{node: n}
	case argIndexNode:
		return Expression{node: n}
	case *negNode:
		operand := n.operand.Clone()
		return Expression{node: &negNode{&operand}}
	case *binNode:
		l := n.left.Clone()
		r := n.right.Clone()
		return Expression{node: &binNode{op: n.op, left: &l, right: &r}}
	case *callNode:
		args := make([]*Expression, len(n.args))
		for i, a := range n.args {
			c := a.Clone()
			args[i] = &c
		}
		return Expression{node: &callNode{fn: n.fn, args: args}}
	default:
		panic("engine: unreachable expression node")
	}
}
