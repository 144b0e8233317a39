// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command recalc is a non-strict, exact-rational calculator: it reads
// a program of named constant and recursive function definitions plus
// expressions to evaluate, either from a file or interactively.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/LordHavelockVetinari/recursive-calculator/config"
	"github.com/LordHavelockVetinari/recursive-calculator/run"
)

var (
	format = flag.String("format", "scientific", "output format: fraction, mixed or scientific")
)

func init() {
	flag.Var(&loadFlag, "load", "library file to load before the main input; can be set multiple times")
}

// multiFlag allows setting a value multiple times to collect a list,
// as in -load=a.recalc -load=b.recalc.
type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint(*m) }

func (m *multiFlag) Set(val string) error {
	*m = append(*m, val)
	return nil
}

var loadFlag multiFlag

func main() {
	flag.Usage = usage
	flag.Parse()

	f, err := config.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "recalc: %s\n", err)
		os.Exit(1)
	}
	var cfg config.Config
	cfg.SetFormat(f)
	cfg.SetPrompt("recalc> ")

	sess := run.NewSession(&cfg, os.Stdout, os.Stderr)

	installSignalHandler(sess)

	for _, path := range loadFlag {
		if err := sess.LoadLibrary(path); err != nil {
			fmt.Fprintf(os.Stderr, "recalc: %s\n", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		if err := sess.RunFile(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "recalc: %s\n", err)
			os.Exit(1)
		}
		return
	}

	if err := sess.Repl(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "recalc: %s\n", err)
		os.Exit(1)
	}
}

// installSignalHandler arranges for SIGINT to mark the session's
// cancellation flag rather than terminate the process, so a
// runaway (but not provably infinite) reduction can be interrupted
// from the keyboard and the REPL resumes at its next prompt.
func installSignalHandler(sess *run.Session) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	slog.Info("signal handler installed", "signal", "SIGINT")
	go func() {
		for range sig {
			sess.Env.Canceller.Request()
		}
	}()
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: recalc [options] [file]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
