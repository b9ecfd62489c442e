// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"sort"

	"github.com/jmgilman/go/errors"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/internal/config"
)

// InitApp loads the config file and builds the root command. A missing
// config file is fine; an unreadable or malformed one is not.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "load config")
	}

	meta := Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:      "cachematrix",
		Usage:     "invert matrices and cache the result until the matrix changes",
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		// Usage errors are reported once, by the caller.
		OnUsageError: usageError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cachematrix version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		InvertCommandBuilder(meta),
		SessionCommandBuilder(meta),
		DemoCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
