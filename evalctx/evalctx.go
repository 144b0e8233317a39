// Package evalctx provides the small pieces of mutable state the lazy
// evaluator threads through every reduction step: the cooperative
// cancellation flag and the tie-breaking "coin" used when a binary
// operator has two equally-unreduced operands. Neither piece needs
// the expression graph itself, so it lives in its own package and is
// embedded into the engine package's evaluation environment, the way
// this repository's ancestor threads a small config/state value
// through its evaluator instead of relying on globals.
package evalctx

import "sync/atomic"

// ErrCancelled is returned by engine.Environment.Tick when the
// cancellation flag was set.
type ErrCancelled struct{}

func (ErrCancelled) Error() string { return "evaluation cancelled" }

// Canceller is a process-wide, signal-handler-friendly interrupt
// flag. The zero value is ready to use.
type Canceller struct {
	requested atomic.Bool
}

// Request marks the flag as set. Safe to call from a signal handler.
func (c *Canceller) Request() {
	c.requested.Store(true)
}

// CheckAndClear reports whether the flag was set, clearing it in the
// same operation so a single Ctrl-C only cancels one evaluation.
func (c *Canceller) CheckAndClear() bool {
	return c.requested.Swap(false)
}

// Coin is a deterministic alternating tie-breaker. It exists purely
// as a termination heuristic for symmetrical mutual recursion (see
// the engine package); it does not need to be random, and a
// deterministic flip-flop keeps evaluation traces reproducible for
// tests, which matters more here than genuine unpredictability.
type Coin struct {
	next bool
}

// Flip returns alternating true/false values on successive calls.
func (c *Coin) Flip() bool {
	c.next = !c.next
	return c.next
}
