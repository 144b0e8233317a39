package engine

import "github.com/LordHavelockVetinari/recursive-calculator/evalctx"

// garbageBudget bounds how many discarded subtrees Tick disposes of
// per call, so a single Tick stays cheap and release work is spread
// across many steps instead of stalling one of them.
const garbageBudget = 256

// Environment is the small bundle of mutable state threaded through
// every simplification step: the cooperative cancellation flag, the
// tie-breaking coin, and a worklist of subtrees discarded by
// ReplaceWith. Keeping it here (rather than as package-level globals)
// lets a program and a REPL each own an independent Environment.
type Environment struct {
	Canceller *evalctx.Canceller
	coin      evalctx.Coin
	garbage   []exprNode
}

// NewEnvironment returns an Environment backed by its own canceller.
func NewEnvironment() *Environment {
	return &Environment{Canceller: &evalctx.Canceller{}}
}

// Tick is called once per simplification step. It reports
// cancellation and, on the way, drains a bounded amount of pending
// releases from subtrees that ReplaceWith discarded.
func (env *Environment) Tick() error {
	env.drainGarbage(garbageBudget)
	if env.Canceller.CheckAndClear() {
		return evalctx.ErrCancelled{}
	}
	return nil
}

// dispose queues a discarded subtree for iterative, stack-safe
// release: rather than let it fall out of scope and rely on Go's GC
// to eventually trace a possibly deep tree, its children are walked
// with an explicit worklist a few at a time.
func (env *Environment) dispose(n exprNode) {
	env.garbage = append(env.garbage, n)
}

// drainGarbage pops up to budget nodes off the worklist, queuing each
// node's children rather than recursing into them. Stack usage is
// O(1) regardless of how deep the discarded subtree was.
func (env *Environment) drainGarbage(budget int) {
	for budget > 0 && len(env.garbage) > 0 {
		last := len(env.garbage) - 1
		n := env.garbage[last]
		env.garbage[last] = nil
		env.garbage = env.garbage[:last]
		budget--
		switch t := n.(type) {
		case *negNode:
			if t.operand != nil {
				env.garbage = append(env.garbage, t.operand.node)
				t.operand = nil
			}
		case *binNode:
			if t.left != nil {
				env.garbage = append(env.garbage, t.left.node)
				t.left = nil
			}
			if t.right != nil {
				env.garbage = append(env.garbage, t.right.node)
				t.right = nil
			}
		case *callNode:
			for _, a := range t.args {
				if a != nil {
					env.garbage = append(env.garbage, a.node)
				}
			}
			t.args = nil
		}
	}
}

// CollectGarbage drains every pending release. It is not needed for
// correctness (Go's GC reclaims unreachable memory regardless) but is
// useful in tests that want to observe the worklist fully drained.
func (env *Environment) CollectGarbage() {
	for len(env.garbage) > 0 {
		env.drainGarbage(len(env.garbage))
	}
}
