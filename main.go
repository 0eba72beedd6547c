// ./main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/xkilldash9x/wallet-e2e/cmd"
	"github.com/xkilldash9x/wallet-e2e/internal/observability"
)

const panicLogFile = "panic.log"

var (
	osWriteFile = os.WriteFile
	// Allows mocking os.Exit in tests.
	osExit = os.Exit
)

// main runs a single command when arguments are given, otherwise an
// interactive shell that resolves one selector per line.
func main() {
	defer handlePanic()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if err := cmd.Execute(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				osExit(0)
			} else {
				osExit(1)
			}
		}
		return
	}

	if err := runShell(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading from stdin:", err)
		osExit(1)
	}
}

// runShell reads selectors from in and prints their resolution to out until
// EOF, "exit" or "quit".
func runShell(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "wallet-e2e selector shell. Type a selector, or \"exit\" to quit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "wallet-e2e > ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		// A fresh command tree per line keeps flags from leaking between runs.
		root := cmd.NewRootCommand()
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs([]string{"resolve", "--", line})
		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Fprintln(out, "Exiting wallet-e2e.")
	return scanner.Err()
}

// handlePanic records a panic's stack trace in panic.log before exiting.
func handlePanic() {
	if r := recover(); r != nil {
		observability.Sync()

		panicMessage := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
		if err := osWriteFile(panicLogFile, []byte(panicMessage), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL: Failed to write panic log: %v\n", err)
			fmt.Fprintf(os.Stderr, "Panic details:\n%s\n", panicMessage)
			osExit(1)
			return
		}
		fmt.Fprintf(os.Stderr, "CRASH DETECTED. Details logged to %s\n", panicLogFile)
		osExit(2)
	}
}
