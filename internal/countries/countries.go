// Package countries provides the static country table used to build the phone catalog.
package countries

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed all_countries.csv
var allCountriesData string

// Column positions in a raw row.
const (
	ColName = iota
	ColISO2
	ColDialCode
	ColPriority
	ColAreaCode
)

var (
	rows [][]string
	once sync.Once
)

func init() {
	loadData()
}

func loadData() {
	once.Do(func() {
		parsed, err := Parse(strings.NewReader(allCountriesData))
		if err != nil {
			panic(fmt.Sprintf("countries: embedded table: %v", err))
		}
		rows = parsed
	})
}

// Parse reads a country table in CSV form.
// Lines starting with '#' are comments. Rows may have between three and five
// columns: name, iso2, dial code, priority, area code.
func Parse(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 3 {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected at least 3 columns, got %d", line, len(record))
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		result = append(result, record)
	}
	return result, nil
}

// LoadFromFile parses a replacement table from file content.
func LoadFromFile(content string) ([][]string, error) {
	return Parse(strings.NewReader(content))
}

// Rows returns a copy of the embedded table in source order.
func Rows() [][]string {
	result := make([][]string, len(rows))
	for i, row := range rows {
		result[i] = append([]string(nil), row...)
	}
	return result
}
