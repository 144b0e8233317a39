// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the small set of settings that shape how a
// session prints results and prompts the user, kept separate from the
// evaluator itself so run, diagnostics and cmd/recalc can share one
// mutable settings object without the engine needing to know it
// exists.
package config

import "fmt"

// Format selects how a rational.Value is rendered.
type Format int

const (
	// Scientific prints a decimal with an exponent; the default.
	Scientific Format = iota
	// Fraction prints p/q, or p alone when q is 1.
	Fraction
	// Mixed prints a truncated integer part plus a fractional
	// remainder, or a bare integer when the value is exact.
	Mixed
)

func (f Format) String() string {
	switch f {
	case Scientific:
		return "scientific"
	case Fraction:
		return "fraction"
	case Mixed:
		return "mixed"
	default:
		return "scientific"
	}
}

// ParseFormat maps a user-supplied format name (from -format or
// :format) to a Format. It accepts the names Format.String() returns.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "scientific":
		return Scientific, nil
	case "fraction":
		return Fraction, nil
	case "mixed":
		return Mixed, nil
	default:
		return Scientific, fmt.Errorf("config: unknown format %q (want fraction, mixed or scientific)", s)
	}
}

// A Config holds information about the configuration of a session.
// The zero value holds the default settings, and every getter is
// nil-safe, so a *Config that was never explicitly constructed
// behaves exactly like one set to the defaults.
type Config struct {
	format Format
	prompt string
	debug  map[string]bool
}

// Format returns the currently configured output format.
func (c *Config) Format() Format {
	if c == nil {
		return Scientific
	}
	return c.format
}

// SetFormat changes the output format.
func (c *Config) SetFormat(f Format) {
	c.format = f
}

// Prompt returns the REPL's prompt string, empty by default (no
// prompt, matching non-interactive use).
func (c *Config) Prompt() string {
	if c == nil {
		return ""
	}
	return c.prompt
}

// SetPrompt changes the REPL's prompt string.
func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

// Debug reports whether the named internal debug flag is set. Debug
// flags are consulted by internal diagnostics only; no exported
// component changes user-visible behavior based on them.
func (c *Config) Debug(name string) bool {
	if c == nil {
		return false
	}
	return c.debug[name]
}

// SetDebug sets or clears the named internal debug flag.
func (c *Config) SetDebug(name string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[name] = state
}
