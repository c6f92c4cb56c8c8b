// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hightemp/telin/internal/catalog"
	"github.com/hightemp/telin/internal/telinput"
)

// Result is one reconciled number as printed by the CLI.
type Result struct {
	telinput.ChangeEvent
	CountryName string `json:"countryName,omitempty"`
	Valid       bool   `json:"valid"`
	Error       string `json:"error,omitempty"`
}

// FormatText formats result as tab-separated text.
func (r *Result) FormatText() string {
	if r.Error != "" {
		return FormatError(r.Number, r.Error)
	}

	validity := "invalid"
	if r.Valid {
		validity = "valid"
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
		r.Number,
		orDash(r.CountryCode),
		orDash(r.InternationalNumber),
		orDash(r.NationalNumber),
		validity,
	)
}

// FormatJSON formats result as JSON.
func (r *Result) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*Result
}

// FormatText formats batch results as text (one line per result).
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	results := b.Results
	if results == nil {
		results = []*Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatError formats an error line for batch output.
func FormatError(input string, msg string) string {
	return fmt.Sprintf("%s\t-\t-\t-\tERROR: %s", input, msg)
}

// CountryList is the dropdown listing: preferred countries, then all.
type CountryList struct {
	Preferred []*catalog.Country `json:"preferred"`
	Countries []*catalog.Country `json:"countries"`
}

// FormatText formats the listing with a divider after the preferred block.
func (l *CountryList) FormatText() string {
	var lines []string
	for _, c := range l.Preferred {
		lines = append(lines, FormatCountry(c))
	}
	if len(l.Preferred) > 0 {
		lines = append(lines, "--")
	}
	for _, c := range l.Countries {
		lines = append(lines, FormatCountry(c))
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats the listing as JSON.
func (l *CountryList) FormatJSON() (string, error) {
	out := CountryList{Preferred: l.Preferred, Countries: l.Countries}
	if out.Preferred == nil {
		out.Preferred = []*catalog.Country{}
	}
	if out.Countries == nil {
		out.Countries = []*catalog.Country{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatCountry formats one country as a tab-separated line:
// code, dial code, name, priority, area code, placeholder.
func FormatCountry(c *catalog.Country) string {
	area := "-"
	if c.AreaCode != nil {
		area = strconv.Itoa(*c.AreaCode)
	}

	return fmt.Sprintf("%s\t+%s\t%s\t%d\t%s\t%s",
		c.Region(),
		c.DialCode,
		c.Name,
		c.Priority,
		area,
		orDash(c.Placeholder),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
