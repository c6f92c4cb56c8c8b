package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hightemp/telin/internal/apperr"
	"github.com/hightemp/telin/internal/output"
)

var detectCmd = &cobra.Command{
	Use:   "detect <+number>",
	Short: "Detect the country from an international number",
	Long: `Detect the country whose dial code (and area code, where the table has one)
starts the given number. The number must begin with '+'.

Example:
  telin detect +44 20 7946 0958`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	country := e.catalog.DetectCountry(args[0])
	if country == nil {
		return apperr.NotFound(fmt.Sprintf("no country matches %q", args[0])).WithOp("detect")
	}

	out := cmd.OutOrStdout()
	if e.cfg.JSONOutput {
		data, err := json.MarshalIndent(country, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintln(out, output.FormatCountry(country))
	return nil
}
