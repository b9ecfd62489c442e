// SPDX-License-Identifier: MIT

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/internal/output"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// EnvPrefix prefixes the environment variable behind each global flag.
const EnvPrefix = "CACHEMATRIX_"

// NewGlobalFlags builds the flags every command shares. ns is the command
// name used as the config namespace; src is the config file path. Values
// resolve from flag, env, "<ns>.<name>" in the file, then "<name>", and
// are checked by GlobalFlagsValidator before the action runs.
func NewGlobalFlags(ns string, src string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"o"},
			Usage:   "output format: table, json or yaml",
			Sources: sources(ns, "format", src),
			Value:   string(output.FormatTable),
		},
		&cli.IntFlag{
			Name:    "digits",
			Aliases: []string{"d"},
			Usage:   "decimal places kept when printing numbers",
			Sources: sources(ns, "digits", src),
			Value:   output.DefaultDigits,
		},
		&cli.FloatFlag{
			Name:    "tolerance",
			Aliases: []string{"t"},
			Usage:   "relative pivot tolerance below which a matrix is singular",
			Sources: sources(ns, "tolerance", src),
			Value:   matrix.DefaultEpsilon,
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored table output (default: on for terminals)",
			Sources: sources(ns, "color", src),
			Value:   false,
		},
	}
}

// sources chains the env var and the namespaced and global config keys.
func sources(ns, name, src string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(cli.EnvVar(EnvPrefix + strings.ToUpper(name)))
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(src)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(src)))

	return chain
}

func newPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "path",
		Aliases: []string{"p"},
		Usage:   "location of the rows inside the document (gjson path for JSON, dotted keys for YAML)",
	}
}

func newInputFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "input format: json or yaml (default: from file extension, else detected)",
		Validator: func(value string) error {
			return FlagValidators(value, InputValidator)
		},
	}
}
