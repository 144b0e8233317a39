// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for this calculator: a
// Session bundles the live program registry with its evaluation
// environment and output configuration, and exposes both a one-shot
// "run this source" entry point and an interactive REPL loop built on
// top of it, factored out of main so it can also drive tests.
package run

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LordHavelockVetinari/recursive-calculator/compile"
	"github.com/LordHavelockVetinari/recursive-calculator/config"
	"github.com/LordHavelockVetinari/recursive-calculator/diagnostics"
	"github.com/LordHavelockVetinari/recursive-calculator/engine"
	"github.com/LordHavelockVetinari/recursive-calculator/parse"
)

// Session is the live state one REPL or batch run shares.
type Session struct {
	Program *engine.Program
	Env     *engine.Environment
	Config  *config.Config

	Output      io.Writer
	ErrorOutput io.Writer

	// ErrorsFatal makes RunString return the first parse/compile
	// error instead of printing it and rolling the program back,
	// matching this language's "errors in a library are fatal" rule
	// for non-interactive library preloading.
	ErrorsFatal bool

	suggestHelp bool
}

// NewSession builds a Session around a fresh, empty program.
func NewSession(cfg *config.Config, stdout, stderr io.Writer) *Session {
	return &Session{
		Program:     engine.NewProgram(),
		Env:         engine.NewEnvironment(),
		Config:      cfg,
		Output:      stdout,
		ErrorOutput: stderr,
	}
}

func (s *Session) maybeSuggestHelp() {
	if s.suggestHelp {
		fmt.Fprintln(s.ErrorOutput, "(For more information, type :help and press enter.)")
	}
}

// RunString parses, compiles and evaluates one compilation unit of
// source text — a single REPL line, or a whole loaded file — against
// the session's program, printing every evaluated result.
//
// A parse or compile failure is printed to ErrorOutput and the
// program is rolled back to its state before this call, exactly as if
// the offending unit had never been seen, unless ErrorsFatal is set,
// in which case the error is returned unprinted and unrolled-back:
// the caller is expected to abort.
func (s *Session) RunString(name, src string) error {
	reporter := diagnostics.NewReporter(name, src)

	prog, err := parse.Parse(src)
	if err != nil {
		if s.ErrorsFatal {
			return err
		}
		diagnostics.Fprint(s.ErrorOutput, reporter, err)
		s.maybeSuggestHelp()
		return nil
	}

	var backup *engine.Program
	if !s.ErrorsFatal {
		backup = s.Program.Snapshot()
	}
	if err := compile.Compile(s.Program, prog); err != nil {
		if s.ErrorsFatal {
			return err
		}
		diagnostics.Fprint(s.ErrorOutput, reporter, err)
		s.maybeSuggestHelp()
		s.Program.Restore(backup)
		return nil
	}

	for _, result := range s.Program.Run(s.Env) {
		if result.Err != nil {
			diagnostics.Fprint(s.ErrorOutput, reporter, result.Err)
			continue
		}
		fmt.Fprintln(s.Output, diagnostics.RenderValue(result.Value, s.Config.Format()))
	}
	return nil
}

// RunFile reads path whole and runs it as a single compilation unit.
func (s *Session) RunFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.RunString(path, string(code))
}

// LoadLibrary runs path as a single compilation unit with errors
// treated as fatal, regardless of the session's normal ErrorsFatal
// setting, matching the CLI's "-load" preload semantics.
func (s *Session) LoadLibrary(path string) error {
	slog.Info("loading library", "path", path)
	prior := s.ErrorsFatal
	s.ErrorsFatal = true
	defer func() { s.ErrorsFatal = prior }()
	err := s.RunFile(path)
	if err != nil {
		slog.Warn("library load failed", "path", path, "error", err)
		return err
	}
	slog.Info("library loaded", "path", path)
	return nil
}

// Repl runs an interactive read-compile-evaluate-print loop, reading
// one line at a time from r and writing a prompt before each. It
// returns when r reaches EOF or a ":quit" command is seen.
func (s *Session) Repl(r io.Reader) error {
	s.suggestHelp = true
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.Output, s.Config.Prompt())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			stop, err := s.runCommand(line)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
			continue
		}
		if err := s.RunString("<stdin>", line); err != nil {
			return err
		}
	}
}

// runCommand dispatches a single ":"-prefixed REPL command.
func (s *Session) runCommand(line string) (stop bool, err error) {
	cmd := strings.TrimLeft(strings.TrimSpace(line), ":")
	name, args, _ := strings.Cut(cmd, " ")
	name = strings.ToLower(name)
	args = strings.TrimSpace(args)

	switch name {
	case "q", "quit":
		return true, nil
	case "f", "format":
		s.cmdFormat(args)
	case "d", "delete":
		s.cmdDelete(args)
	case "l", "load":
		s.cmdLoad(args)
	case "h", "help":
		fmt.Fprint(s.Output, helpText)
	default:
		fmt.Fprintf(s.ErrorOutput, "unknown command: %q\n", ":"+name)
		s.maybeSuggestHelp()
	}
	return false, nil
}

func (s *Session) cmdFormat(args string) {
	if args == "" {
		fmt.Fprintf(s.Output, "The current format is: %s.\n", s.Config.Format())
		fmt.Fprintln(s.Output, "Type :format fraction, :format mixed or :format scientific to change it.")
		return
	}
	f, err := config.ParseFormat(args)
	if err != nil {
		fmt.Fprintln(s.ErrorOutput, err)
		return
	}
	s.Config.SetFormat(f)
}

func (s *Session) cmdDelete(name string) {
	if !s.Program.Undefine(name) {
		fmt.Fprintf(s.ErrorOutput, "no constant or function named %q\n", name)
	}
}

func (s *Session) cmdLoad(path string) {
	if err := s.RunFile(path); err != nil {
		fmt.Fprintln(s.ErrorOutput, err)
	}
}

const helpText = `Commands:
  :quit, :q           exit the REPL
  :format, :f [name]  show or set the output format (fraction, mixed, scientific)
  :delete, :d name    remove a constant or function binding
  :load, :l path      load and run a file's definitions
  :help, :h           show this message
`
