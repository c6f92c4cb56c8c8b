// Package catalog turns the raw country table into typed Country records.
package catalog

import (
	"strconv"
	"strings"

	"github.com/hightemp/telin/internal/countries"
	"github.com/hightemp/telin/internal/index"
	"github.com/hightemp/telin/internal/logger"
	"github.com/hightemp/telin/internal/phonelib"
)

// Country is one selectable region.
type Country struct {
	Name        string   `json:"name"`
	ISO2        string   `json:"iso2"`
	DialCode    string   `json:"dialCode"`
	Priority    int      `json:"priority"`
	AreaCode    *int     `json:"areaCode,omitempty"`
	AreaCodes   []string `json:"areaCodes,omitempty"`
	FlagClass   string   `json:"flagClass"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// Region returns the upper-cased ISO2 code passed to the phone library.
func (c *Country) Region() string {
	return strings.ToUpper(c.ISO2)
}

// Options controls how a catalog is built.
type Options struct {
	// Placeholders precomputes an example number per country.
	Placeholders bool
	// ErrorTextPlaceholders stores the library error text as the placeholder
	// when no example number is available. Otherwise the placeholder is left empty.
	ErrorTextPlaceholders bool
	Library               phonelib.Library
	Logger                *logger.Logger
}

// Catalog is an ordered, immutable list of countries.
// Returned *Country values are shared and must not be modified.
type Catalog struct {
	countries []*Country
	dialCodes *index.Trie
}

// Build converts raw rows into a catalog, preserving row order.
// Malformed columns degrade to their defaults; no row is rejected.
func Build(rows [][]string, opts Options) *Catalog {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	lib := opts.Library
	if lib == nil {
		lib = phonelib.New()
	}

	cat := &Catalog{
		countries: make([]*Country, 0, len(rows)),
		dialCodes: index.NewTrie(),
	}

	for _, row := range rows {
		country := parseRow(row)

		if opts.Placeholders {
			country.Placeholder = placeholder(lib, log, country.Region(), opts.ErrorTextPlaceholders)
		}

		cat.addToIndex(country, len(cat.countries))
		cat.countries = append(cat.countries, country)
	}

	return cat
}

// BuildDefault builds the catalog from the embedded country table.
func BuildDefault(opts Options) *Catalog {
	return Build(countries.Rows(), opts)
}

func parseRow(row []string) *Country {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	country := &Country{
		Name:     col(countries.ColName),
		ISO2:     col(countries.ColISO2),
		DialCode: col(countries.ColDialCode),
	}

	if p, err := strconv.Atoi(col(countries.ColPriority)); err == nil && p > 0 {
		country.Priority = p
	}

	area := col(countries.ColAreaCode)
	if a, err := strconv.Atoi(area); err == nil && a != 0 {
		country.AreaCode = &a
	}
	for _, code := range strings.Fields(area) {
		if index.Digits(code) == code {
			country.AreaCodes = append(country.AreaCodes, code)
		}
	}

	country.FlagClass = strings.ToLower(country.ISO2)
	return country
}

func placeholder(lib phonelib.Library, log *logger.Logger, region string, errorText bool) string {
	number, err := lib.ExampleNumber(region)
	if err != nil {
		log.PlaceholderFailed(region, err)
		if errorText {
			return err.Error()
		}
		return ""
	}
	return lib.Format(number, phonelib.International)
}

func (c *Catalog) addToIndex(country *Country, order int) {
	entry := index.Entry{
		ISO2:     country.ISO2,
		Priority: country.Priority,
		Order:    order,
	}

	// Rows without a numeric dial code are simply not detectable.
	if err := c.dialCodes.Insert(country.DialCode, entry); err != nil {
		return
	}
	for _, area := range country.AreaCodes {
		c.dialCodes.Insert(country.DialCode+area, entry)
	}
}

// Countries returns the countries in source order.
func (c *Catalog) Countries() []*Country {
	return append([]*Country(nil), c.countries...)
}

// Len returns the number of countries.
func (c *Catalog) Len() int {
	return len(c.countries)
}

// At returns the i-th country.
func (c *Catalog) At(i int) *Country {
	return c.countries[i]
}

// First returns the first country, or nil for an empty catalog.
func (c *Catalog) First() *Country {
	if len(c.countries) == 0 {
		return nil
	}
	return c.countries[0]
}

// Find returns the first country whose ISO2 equals code exactly.
func (c *Catalog) Find(code string) (*Country, bool) {
	for _, country := range c.countries {
		if country.ISO2 == code {
			return country, true
		}
	}
	return nil, false
}

// Lookup is Find with case-insensitive matching.
func (c *Catalog) Lookup(code string) (*Country, bool) {
	for _, country := range c.countries {
		if strings.EqualFold(country.ISO2, code) {
			return country, true
		}
	}
	return nil, false
}

// DetectCountry picks a country from a number typed with a leading '+'.
// The longest matching dial code (or dial code plus area code) wins; among
// countries sharing it, the lowest priority then earliest catalog entry is chosen.
func (c *Catalog) DetectCountry(text string) *Country {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "+") {
		return nil
	}

	best, ok := c.dialCodes.Lookup(index.Digits(trimmed)).Best()
	if !ok {
		return nil
	}
	return c.countries[best.Order]
}
