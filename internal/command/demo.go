// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"io"

	"github.com/jmgilman/go/errors"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/cachematrix"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/output"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// RunDemo walks a cell through compute, cache hit and invalidation on the
// doubled 2x2 identity, printing each inverse to w.
func RunDemo(ctx context.Context, w io.Writer, res *cachematrix.Resolver, oo output.Options, mo ...matrix.Option) error {
	two, err := matrix.NewDenseFrom([][]float64{{2, 0}, {0, 2}})
	if err != nil {
		return err
	}
	id, err := matrix.NewIdentity(2)
	if err != nil {
		return err
	}

	cell := cachematrix.New(two)
	steps := []struct {
		title  string
		before func()
	}{
		{title: "inverse of [[2, 0], [0, 2]] (computed)"},
		{title: "inverse again (cached)"},
		{title: "after set([[1, 0], [0, 1]]) (recomputed)", before: func() { cell.Set(id) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step.before != nil {
			step.before()
		}

		inv, err := res.Resolve(cell, mo...)
		if err != nil {
			return errors.Wrap(err, errors.CodeExecutionFailed, step.title)
		}

		oo.Title = step.title
		if err := output.Matrix(w, inv, oo); err != nil {
			return err
		}
	}

	oo.Title = ""
	return output.Stats(w, res.Stats(), oo)
}

// DemoCommandAction runs the built-in caching walkthrough.
func DemoCommandAction(ctx context.Context, cmd *cli.Command) error {
	return RunDemo(ctx, stdout(cmd), NewResolver(), OutputOptions(cmd), MatrixOptions(cmd)...)
}

// DemoCommandBuilder constructs the "demo" command.
func DemoCommandBuilder(meta Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "demo",
		Usage:     "show a matrix inverse being computed, served from cache and recomputed",
		UsageText: `cachematrix demo [options]`,
		Action:    DemoCommandAction,
		Meta:      meta,
	}).Build()
}
