// Package repl provides the interactive mode of the fittrack CLI.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs one parsed command line.
type Executor func(args []string) error

// REPL is the read-eval-print loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	completer *Completer
	history   *History
	execute   Executor
}

// Option configures the REPL.
type Option func(*REPL)

// WithIO overrides the input and output streams (used in tests).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistoryFile sets where command history is persisted.
func WithHistoryFile(path string) Option {
	return func(r *REPL) {
		r.history = NewHistory(path)
	}
}

// New creates a REPL that dispatches lines through execute.
func New(execute Executor, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    "fittrack> ",
		completer: NewCompleter(),
		history:   NewHistory(""),
		execute:   execute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until EOF or exit. Command failures are printed, not
// fatal; the loop keeps going.
func (r *REPL) Run() error {
	r.history.Load()
	defer r.history.Save()

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp()
			continue
		}

		if err := r.execute(strings.Fields(line)); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
	fmt.Fprintln(r.output, "  help")
	fmt.Fprintln(r.output, "  exit")
}
