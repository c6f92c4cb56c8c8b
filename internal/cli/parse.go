package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hightemp/telin/internal/apperr"
	"github.com/hightemp/telin/internal/batch"
	"github.com/hightemp/telin/internal/output"
)

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	processor := batch.NewProcessor(e.catalog, e.cfg.Options, e.lib, e.log.WithComponent("batch"))
	processor.SetCountry(e.initialCountry(cmd))

	// Check if we have a number argument or should read from stdin
	if len(args) == 1 {
		return parseSingle(cmd, processor, args[0], e.cfg.JSONOutput, e.cfg.StrictValidation)
	}

	if isTerminal(cmd) {
		return cmd.Help()
	}

	// Batch mode from stdin
	processor.SetConcurrency(e.cfg.Concurrency)
	return processor.ProcessInputConcurrent(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), e.cfg.JSONOutput)
}

func parseSingle(cmd *cobra.Command, processor *batch.Processor, number string, jsonOut, strictMode bool) error {
	result := processor.ProcessLine(number)
	if result.Error != "" {
		return apperr.Validation(result.Error).WithOp("parse")
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, jsonStr)
	} else {
		fmt.Fprintln(out, result.FormatText())
	}

	if strictMode && !result.Valid {
		return &exitError{
			code: apperr.ExitInvalidPhone,
			err:  fmt.Errorf("%q is not a valid number for %s", number, orUnknown(result)),
		}
	}
	return nil
}

// isTerminal reports whether the command reads from an interactive stdin.
func isTerminal(cmd *cobra.Command) bool {
	if cmd.InOrStdin() != os.Stdin {
		return false
	}
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func orUnknown(result *output.Result) string {
	if result.CountryCode == "" {
		return "unknown country"
	}
	return result.CountryCode
}

// exitError carries a specific process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
