package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hightemp/telin/internal/apperr"
)

// run executes the root command with args and stdin, resetting flag state
// left behind by earlier runs.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseSingle(t *testing.T) {
	out, err := run(t, "", "--country", "us", "--no-placeholder", "2025550123")
	require.NoError(t, err)
	assert.Equal(t, "2025550123\tUS\t+1 202-555-0123\t(202) 555-0123\tvalid\n", out)
}

func TestParseSingleJSON(t *testing.T) {
	out, err := run(t, "", "--country", "gb", "--no-placeholder", "--json", "020 7946 0958")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "GB", parsed["countryCode"])
	assert.Equal(t, "United Kingdom", parsed["countryName"])
	assert.Equal(t, "020 7946 0958", parsed["number"])
}

func TestParseSingleUnknownCountry(t *testing.T) {
	_, err := run(t, "", "--country", "zz", "--no-placeholder", "123")
	require.Error(t, err)
	assert.Equal(t, apperr.ExitInvalidInput, exitCode(err))
}

func TestParseSingleStrictInvalid(t *testing.T) {
	out, err := run(t, "", "--country", "us", "--no-placeholder", "--strict", "+44 20 7946 0958")
	require.Error(t, err)
	assert.Equal(t, apperr.ExitInvalidPhone, exitCode(err))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "invalid"), out)
}

func TestParsePreferredSelectsFirst(t *testing.T) {
	out, err := run(t, "", "--preferred", "de,gb", "--no-placeholder", "030 123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "030 123456\tDE\t+49"), out)
}

func TestParseBatch(t *testing.T) {
	stdin := "2025550123\n\ngb\t020 7946 0958\n"
	out, err := run(t, stdin, "--country", "us", "--no-placeholder", "--concurrency", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2025550123\tUS\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "020 7946 0958\tGB\t"), lines[1])
}

func TestInvalidOption(t *testing.T) {
	_, err := run(t, "", "--log-format", "xml", "2025550123")
	require.Error(t, err)
	assert.Equal(t, apperr.ExitInvalidInput, exitCode(err))

	_, err = run(t, "", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, apperr.ExitInvalidInput, exitCode(err))
}

func TestCountries(t *testing.T) {
	out, err := run(t, "", "countries", "--preferred", "gb", "--no-placeholder")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 3)
	assert.Equal(t, "GB\t+44\tUnited Kingdom\t0\t-\t-", lines[0])
	assert.Equal(t, "--", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "AF\t+93\tAfghanistan"), lines[2])
}

func TestCountriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.csv")
	require.NoError(t, os.WriteFile(path, []byte("Alpha,aa,1\nBeta,bb,2\n"), 0o600))

	out, err := run(t, "", "countries", "--countries-file", path, "--no-placeholder", "--json")
	require.NoError(t, err)

	var parsed struct {
		Preferred []map[string]interface{} `json:"preferred"`
		Countries []map[string]interface{} `json:"countries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Empty(t, parsed.Preferred)
	require.Len(t, parsed.Countries, 2)
	assert.Equal(t, "aa", parsed.Countries[0]["iso2"])
}

func TestDetect(t *testing.T) {
	out, err := run(t, "", "detect", "--no-placeholder", "+1 809 555 0100")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "DO\t+1\t"), out)

	_, err = run(t, "", "detect", "--no-placeholder", "2025550123")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, apperr.ExitInvalidInput, exitCode(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "telin dev (commit unknown, built unknown)\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, apperr.ExitFailure, exitCode(errors.New("boom")))
	assert.Equal(t, 4, exitCode(&exitError{code: 4, err: errors.New("bad")}))
	assert.Equal(t, apperr.ExitInvalidInput, exitCode(apperr.Validation("bad")))
}
