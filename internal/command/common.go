// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/jmgilman/go/errors"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/cachematrix"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/config"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/matrixio"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/output"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// Meta carries startup state into command actions.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}

// GetMeta returns the Meta stored in the command's Metadata. If missing or
// of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) Meta {
	if cmd == nil || cmd.Metadata == nil {
		return Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(Meta); ok {
		return m
	}
	return Meta{}
}

// CommandBuilder assembles a subcommand with the global flags, its own
// flags and Meta attached.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		ArgsUsage: b.ArgsUsage,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: append(b.Flags, NewGlobalFlags(b.Name, b.Meta.Config.Source)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action:       b.Action,
		OnUsageError: usageError,
	}
}

// stdout returns the writer configured on the root command.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// OutputOptions collects rendering flags. Color follows --color when given,
// otherwise whether stdout is a terminal.
func OutputOptions(cmd *cli.Command) output.Options {
	cfg := GetMeta(cmd).Config
	opts := output.Options{
		Format:  output.Format(cmd.String("format")),
		Digits:  cmd.Int("digits"),
		Colors:  paletteFrom(cfg),
		Padding: paddingFrom(cfg, cmd.Name),
	}

	if cmd.IsSet("color") {
		opts.Color = cmd.Bool("color")
	} else if f, ok := stdout(cmd).(*os.File); ok {
		opts.Color = output.IsTerminal(f)
	}

	return opts
}

func paletteFrom(cfg config.Type) output.Colors {
	d := output.DefaultColors
	colors := cfg.WithNamespace("colors")

	pick := func(key, def string) string {
		s, err := colors.GetString(key, def)
		if err != nil {
			log.WithError(err).Warnf("ignoring colors.%s", key)
			return def
		}
		return s
	}

	return output.Colors{Title: pick("title", d.Title), Even: pick("even", d.Even), Odd: pick("odd", d.Odd)}
}

// paddingFrom reads "<command>.padding", then "padding".
func paddingFrom(cfg config.Type, name string) int {
	pad, err := cfg.WithNamespace(name).GetInt("padding", output.DefaultPadding)
	if err != nil || pad < 0 {
		log.WithError(err).WithField("padding", pad).Warn("ignoring padding")
		return output.DefaultPadding
	}
	return pad
}

// MatrixOptions turns --tolerance into inversion options.
func MatrixOptions(cmd *cli.Command) []matrix.Option {
	return []matrix.Option{matrix.WithEpsilon(cmd.Float("tolerance"))}
}

// NewResolver returns a resolver logging through the process logger.
func NewResolver() *cachematrix.Resolver {
	return cachematrix.NewResolver(cachematrix.WithLogger(log.Log))
}

// ReadMatrix loads the matrix named by the first argument, or stdin when
// the argument is absent or "-".
func ReadMatrix(cmd *cli.Command) (*matrix.Dense, error) {
	opts := matrixio.Options{
		Format: matrixio.Format(cmd.String("input")),
		Path:   cmd.String("path"),
	}

	name := cmd.Args().First()
	r := stdin(cmd)
	if name == "" || name == "-" {
		name = "stdin"
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeInvalidInput, "read %s", name)
		}
		defer f.Close()

		if opts.Format == matrixio.FormatAuto {
			opts.Format = matrixio.FormatForFile(name)
		}
		r = f
	}

	log.WithField("source", name).Debug("decoding matrix")
	m, err := matrixio.Read(r, opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidInput, "read %s", name)
	}

	return m, nil
}
