// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hightemp/telin/internal/apperr"
	"github.com/hightemp/telin/internal/catalog"
	"github.com/hightemp/telin/internal/config"
	"github.com/hightemp/telin/internal/countries"
	"github.com/hightemp/telin/internal/logger"
	"github.com/hightemp/telin/internal/phonelib"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	countryFlag       string
	preferredFlag     string
	noPlaceholder     bool
	errorPlaceholders bool
	autoDetect        bool
	strict            bool
	jsonOutput        bool
	logLevel          string
	logFormat         string
	countriesFile     string
	concurrency       int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "telin [number]",
	Short: "International telephone input - reconcile phone numbers with a country",
	Long: `telin runs phone numbers through the international telephone input
control: the number is parsed for the selected country and reported with its
international and national formats.

For a single number:
  telin --country us 2025550123

For batch processing (read from stdin, optionally "<iso2><TAB><number>"):
  cat numbers.txt | telin --country gb

Options can also be set with TELIN_* environment variables or a .env file.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runParse,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithCode(exitCode(err), fmt.Sprintf("Error: %v", err))
	}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return apperr.ExitCode(err)
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&countryFlag, "country", "", "selected country ISO2 code (default from TELIN_DEFAULT_COUNTRY or us)")
	pf.StringVar(&preferredFlag, "preferred", "", "comma-separated preferred country codes")
	pf.BoolVar(&noPlaceholder, "no-placeholder", false, "do not compute example-number placeholders")
	pf.BoolVar(&errorPlaceholders, "error-placeholders", false, "show the library error as placeholder when no example exists")
	pf.BoolVar(&autoDetect, "auto-detect", false, "select the country from a typed +<dial code>")
	pf.BoolVar(&strict, "strict", false, "require numbers to be valid for the selected region")
	pf.BoolVar(&jsonOutput, "json", false, "output in JSON format")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&countriesFile, "countries-file", "", "CSV country table replacing the built-in one")

	// Parse-specific flags
	rootCmd.Flags().IntVar(&concurrency, "concurrency", config.DefaultConcurrency, "batch worker count")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Wrap(apperr.KindValidation, "invalid flags", err)
	})

	// Add subcommands
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(versionCmd)
}

// env bundles what every command needs.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	lib     phonelib.Library
	catalog *catalog.Catalog
}

// loadConfig merges environment configuration with flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("country") {
		cfg.DefaultCountry = strings.ToLower(countryFlag)
	}
	if flags.Changed("preferred") {
		cfg.PreferredCountries = config.SplitCodes(preferredFlag)
	}
	if flags.Changed("no-placeholder") {
		cfg.EnablePlaceholder = !noPlaceholder
	}
	if flags.Changed("error-placeholders") {
		cfg.ErrorTextPlaceholders = errorPlaceholders
	}
	if flags.Changed("auto-detect") {
		cfg.AutoDetect = autoDetect
	}
	if flags.Changed("strict") {
		cfg.StrictValidation = strict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(logLevel)
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = strings.ToLower(logFormat)
	}
	if flags.Changed("countries-file") {
		cfg.CountriesFile = countriesFile
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = config.ClampConcurrency(concurrency)
	}
	cfg.JSONOutput = jsonOutput

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration and builds the catalog.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	lib := phonelib.New()

	rows := countries.Rows()
	if cfg.CountriesFile != "" {
		content, err := os.ReadFile(cfg.CountriesFile)
		if err != nil {
			return nil, fmt.Errorf("read countries file: %w", err)
		}
		rows, err = countries.LoadFromFile(string(content))
		if err != nil {
			return nil, apperr.Wrap(apperr.KindValidation, "parse countries file", err)
		}
	}

	cat := catalog.Build(rows, catalog.Options{
		Placeholders:          cfg.EnablePlaceholder,
		ErrorTextPlaceholders: cfg.ErrorTextPlaceholders,
		Library:               lib,
		Logger:                log.WithComponent("catalog"),
	})

	return &env{cfg: cfg, log: log, lib: lib, catalog: cat}, nil
}

// initialCountry is the country a command selects after the control's own
// initialization: an explicit --country, or the default when no preferred
// countries are configured. Empty leaves the first preferred country selected.
func (e *env) initialCountry(cmd *cobra.Command) string {
	if cmd.Flags().Changed("country") || len(e.cfg.PreferredCountries) == 0 {
		return e.cfg.DefaultCountry
	}
	return ""
}

func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}
