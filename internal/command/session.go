// SPDX-License-Identifier: MIT

package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/jmgilman/go/errors"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/cachematrix"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/matrixio"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/output"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// Session drives one cell from a line-oriented script:
//
//	set <matrix literal>   replace the held matrix
//	get                    print the held matrix
//	inverse                print the inverse, cached after the first call
//	cached                 print whether an inverse is cached
//	stats                  print hit and miss counters
//
// Blank lines and lines starting with # are skipped.
type Session struct {
	Cell     *cachematrix.Cell
	Resolver *cachematrix.Resolver
	Output   output.Options
	Matrix   []matrix.Option
	Out      io.Writer
}

// NewSession returns a session around an empty cell.
func NewSession(w io.Writer, res *cachematrix.Resolver, oo output.Options, mo ...matrix.Option) *Session {
	return &Session{
		Cell:     cachematrix.New(nil),
		Resolver: res,
		Output:   oo,
		Matrix:   mo,
		Out:      w,
	}
}

// Run executes the script in r and stops at the first failing line.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := s.Exec(text); err != nil {
			return errors.WithContext(err, "line", line)
		}
	}

	if err := sc.Err(); err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "read script")
	}
	return nil
}

// Exec runs a single script line.
func (s *Session) Exec(text string) error {
	verb, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	log.Debugf("session: %s", verb)

	switch verb {
	case "set":
		m, err := matrixio.ParseLiteral(rest)
		if err != nil {
			return errors.Wrapf(err, errors.CodeInvalidInput, "set %s", rest)
		}
		s.Cell.Set(m)
		return nil

	case "get":
		if s.Cell.Get() == nil {
			return errors.New(errors.CodeInvalidInput, "get: no matrix set")
		}
		return output.Matrix(s.Out, s.Cell.Get(), s.Output)

	case "inverse":
		if s.Cell.Get() == nil {
			return errors.New(errors.CodeInvalidInput, "inverse: no matrix set")
		}
		inv, err := s.Resolver.Resolve(s.Cell, s.Matrix...)
		if err != nil {
			return errors.Wrap(err, errors.CodeExecutionFailed, "inverse")
		}
		return output.Matrix(s.Out, inv, s.Output)

	case "cached":
		_, err := fmt.Fprintln(s.Out, s.Cell.Cached())
		return err

	case "stats":
		return output.Stats(s.Out, s.Resolver.Stats(), s.Output)

	default:
		return errors.Newf(errors.CodeInvalidInput, "unknown command %q", verb)
	}
}

// SessionCommandAction runs the script named by the first argument, or
// stdin when the argument is absent or "-".
func SessionCommandAction(ctx context.Context, cmd *cli.Command) error {
	r := stdin(cmd)
	if name := cmd.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, errors.CodeInvalidInput, "open %s", name)
		}
		defer f.Close()
		r = f
	}

	return NewSession(stdout(cmd), NewResolver(), OutputOptions(cmd), MatrixOptions(cmd)...).Run(ctx, r)
}

// SessionCommandBuilder constructs the "session" command.
func SessionCommandBuilder(meta Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "session",
		Usage:     "drive a cached matrix from a script of set/get/inverse/cached/stats lines",
		UsageText: `cachematrix session [SCRIPT] [options]`,
		ArgsUsage: "[SCRIPT]",
		Action:    SessionCommandAction,
		Meta:      meta,
	}).Build()
}
