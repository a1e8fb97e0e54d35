// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop. Connects a line-editing input stream to the
//          reader/evaluator/printer pipeline and keeps a persistent top-level environment
//          across the session (spec.md §6). Line editing and colorized output are reached
//          through a real line-editor and a real color library, never hand-rolled ANSI codes.
// ==============================================================================================

package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/amoghasbhardwaj/mal-go/env"
	"github.com/amoghasbhardwaj/mal-go/eval"
	"github.com/amoghasbhardwaj/mal-go/reader"
	"github.com/amoghasbhardwaj/mal-go/types"
)

const prompt = "user> "

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	resultColor = color.New(color.FgYellow)
)

// Start launches the REPL. in/out let tests drive the loop without a real
// terminal; env is the persistent top-level environment for the session.
func Start(in io.ReadCloser, out io.Writer, environment *env.Environment) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		Stdin:       in,
		Stdout:      out,
		HistoryFile: historyPath(),
	})
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer rl.Close()

	// Ctrl-C interrupts the current read and returns to the prompt without
	// killing the process (spec.md §5); readline.Readline already reports
	// this as readline.ErrInterrupt, so no signal plumbing is required for
	// the common case — the handler below only guards a raw SIGINT delivered
	// while we are not inside Readline (e.g. during a long-running eval).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
		}
	}()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result, evalErr := Rep(line, environment)
		if evalErr != nil {
			errorColor.Fprintln(out, evalErr.Error())
			continue
		}
		resultColor.Fprintln(out, result)
	}
}

// Rep reads, evaluates, and pretty-prints one line of input (spec.md §2's
// "source text → Reader → Expression → Evaluator → Expression → printer").
func Rep(line string, environment *env.Environment) (string, error) {
	expr, err := reader.Read(line)
	if err != nil {
		return "", err
	}
	result, err := eval.Eval(expr, environment)
	if err != nil {
		return "", err
	}
	return types.PrStr(result, true), nil
}

func historyPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.mal_history"
	}
	return ""
}
