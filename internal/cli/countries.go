package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hightemp/telin/internal/eventloop"
	"github.com/hightemp/telin/internal/output"
	"github.com/hightemp/telin/internal/telinput"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries in dropdown order",
	Long: `List the countries the input control offers: preferred countries first,
then a divider, then every country in table order.

Columns: code, dial code, name, priority, area code, placeholder.`,
	Args: cobra.NoArgs,
	RunE: runCountries,
}

func runCountries(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	loop := eventloop.New()
	defer loop.Close()

	control := telinput.New(e.catalog, loop, e.cfg.Options,
		telinput.WithLibrary(e.lib),
		telinput.WithLogger(e.log.WithComponent("telinput")),
	)
	control.Init()
	defer control.Destroy()

	list := &output.CountryList{
		Preferred: control.Preferred(),
		Countries: e.catalog.Countries(),
	}

	out := cmd.OutOrStdout()
	if e.cfg.JSONOutput {
		jsonStr, err := list.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, jsonStr)
		return nil
	}
	fmt.Fprintln(out, list.FormatText())
	return nil
}
