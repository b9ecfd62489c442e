// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/jmgilman/go/errors"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/cachematrix"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/output"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// InvertCommandAction reads one matrix, resolves its inverse through a
// cell --repeat times and prints it. Every resolve after the first is a
// cache hit.
func InvertCommandAction(ctx context.Context, cmd *cli.Command) error {
	m, err := ReadMatrix(cmd)
	if err != nil {
		return err
	}

	var (
		cell  = cachematrix.New(m)
		res   = NewResolver()
		mopts = MatrixOptions(cmd)
		inv   matrix.Matrix
	)
	repeat := cmd.Int("repeat")
	for i := 0; i < repeat; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if inv, err = res.Resolve(cell, mopts...); err != nil {
			return errors.Wrapf(err, errors.CodeExecutionFailed, "invert %dx%d matrix", m.Rows(), m.Cols())
		}
	}
	log.WithFields(log.Fields{"repeat": repeat, "hits": res.Stats().Hits}).Debug("invert done")

	oo := OutputOptions(cmd)
	if err := output.Matrix(stdout(cmd), inv, oo); err != nil {
		return err
	}
	if cmd.Bool("stats") {
		return output.Stats(stdout(cmd), res.Stats(), oo)
	}

	return nil
}

// InvertCommandBuilder constructs the "invert" command.
func InvertCommandBuilder(meta Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "invert",
		Usage:     "invert a matrix read from a file or stdin",
		UsageText: `cachematrix invert [FILE] [options]`,
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			newPathFlag(),
			newInputFormatFlag(),
			&cli.IntFlag{
				Name:    "repeat",
				Aliases: []string{"n"},
				Usage:   "number of times to resolve the inverse",
				Value:   1,
				Validator: func(value int) error {
					return FlagValidators(value, PositiveValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "print cache hit and miss counters",
				HideDefault: true,
			},
		},
		Action: InvertCommandAction,
		Meta:   meta,
	}).Build()
}
