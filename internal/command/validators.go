// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"math"

	"github.com/jmgilman/go/errors"
	"github.com/urfave/cli/v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/internal/matrixio"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/output"
)

// MaxDigits bounds --digits to what a float64 can meaningfully print.
const MaxDigits = 17

// globalChecks validates the shared flags once every source has been
// applied, so env and config values are held to the same rules as the
// command line.
var globalChecks = []struct {
	name       string
	validators []FlagValidatorType
}{
	{"format", []FlagValidatorType{OutputValidator}},
	{"digits", []FlagValidatorType{DigitsValidator}},
	{"tolerance", []FlagValidatorType{ToleranceValidator}},
}

// GlobalFlagsValidator checks the resolved values of the shared flags.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	for _, check := range globalChecks {
		value := c.Value(check.name)
		if value == nil {
			continue
		}
		if err := FlagValidators(value, check.validators...); err != nil {
			return errors.Wrapf(err, errors.CodeInvalidInput, "invalid --%s", check.name)
		}
	}
	return nil
}

// usageError classifies command line parse failures, including those
// raised by a flag's Validator, as invalid input. The error is reported
// by the caller, not by the cli package.
func usageError(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
	return errors.Wrapf(err, errors.CodeInvalidInput, "%s: invalid usage", cmd.FullName())
}

type FlagValidatorType func(any) error

// FlagValidators runs each validator against value and stops at the first
// failure.
func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	_, err := output.ParseFormat(value.(string))
	return err
}

func InputValidator(value any) error {
	switch matrixio.Format(value.(string)) {
	case matrixio.FormatAuto, matrixio.FormatJSON, matrixio.FormatYAML:
		return nil
	}
	return fmt.Errorf("%q must be json or yaml", value)
}

func DigitsValidator(value any) error {
	if d := value.(int); d < 1 || d > MaxDigits {
		return fmt.Errorf("%d is outside [1,%d]", d, MaxDigits)
	}
	return nil
}

// ToleranceValidator accepts finite non-negative numbers; zero means an
// exact-zero pivot test.
func ToleranceValidator(value any) error {
	t := value.(float64)
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%v must be finite and >= 0", t)
	}
	return nil
}

func PositiveValidator(value any) error {
	if n := value.(int); n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}
