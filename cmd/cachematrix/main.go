// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jmgilman/go/errors"

	"github.com/AlexOcculate/ProgrammingAssignment2/internal/command"
	mylog "github.com/AlexOcculate/ProgrammingAssignment2/internal/log"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	mylog.InitLogger(stderr)

	if len(args) < 2 {
		fmt.Fprintln(stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(stdout, version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		report(stderr, err)
		return exitCode(err)
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		report(stderr, err)
		return exitCode(err)
	}

	return 0
}

// exitCode maps an error classification to the process status.
func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return 2
	case errors.CodeInvalidConfig:
		return 3
	case errors.CodeExecutionFailed:
		return 4
	default:
		return 1
	}
}

// report prints err followed by any attached context fields.
func report(w io.Writer, err error) {
	msg := err.Error()

	var pe errors.PlatformError
	if errors.As(err, &pe) {
		fields := pe.Context()
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg += fmt.Sprintf(" %s=%v", k, fields[k])
		}
	}

	fmt.Fprintln(w, msg)
}
