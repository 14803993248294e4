/*
Vpagen compiles visibly pushdown language grammars and runs recognize,
parse, and translate operations against them, either one-shot from the
command line, interactively in a REPL, or as an HTTP service.

Usage:

	vpagen <command> [flags]

The commands are:

	run
		Compile a grammar and run a single operation against a single input.
		See "vpagen run -h" for its flags.

	repl
		Start an interactive session: compile a grammar once, then read
		input lines from stdin and run an operation against each.
		See "vpagen repl -h" for its flags.

	serve
		Start an HTTP server exposing the generator as a service.
		See "vpagen serve -h" for its flags.

	version
		Print the current version and exit.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/vpagen/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or arguments.
	ExitUsageError

	// ExitRuntimeError indicates a failure while running the requested
	// command (a bad grammar, a server that could not start, and so on).
	ExitRuntimeError
)

func main() {
	returnCode := ExitSuccess
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	if len(os.Args) < 2 {
		printTopUsage()
		returnCode = ExitUsageError
		return
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "repl":
		err = replCommand(os.Args[2:])
	case "serve":
		err = serveCommand(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Println(version.Current)
		return
	case "-h", "--help", "help":
		printTopUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "vpagen: unknown command %q\n", os.Args[1])
		printTopUsage()
		returnCode = ExitUsageError
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRuntimeError
	}
}

func printTopUsage() {
	fmt.Fprintln(os.Stderr, "Usage: vpagen <run|repl|serve|version> [flags]")
	fmt.Fprintln(os.Stderr, "Do 'vpagen <command> -h' for a command's flags.")
}
