// Package selection tracks the preferred and currently selected country.
package selection

import (
	"fmt"

	"github.com/hightemp/telin/internal/apperr"
	"github.com/hightemp/telin/internal/catalog"
	"github.com/hightemp/telin/internal/logger"
)

// State holds the selection for one control.
type State struct {
	catalog        *catalog.Catalog
	preferredCodes []string
	preferred      []*catalog.Country
	selected       *catalog.Country
}

// Initialize resolves preferred codes against the catalog and picks the
// initial selection: the first preferred country, else the first catalog entry.
//
// Codes match ISO2 exactly as stored. Unknown codes are skipped with a warning.
// With an empty catalog the selection is nil.
func Initialize(cat *catalog.Catalog, preferredCodes []string, log *logger.Logger) *State {
	if log == nil {
		log = logger.Nop()
	}

	s := &State{
		catalog:        cat,
		preferredCodes: append([]string(nil), preferredCodes...),
	}

	for _, code := range preferredCodes {
		country, ok := cat.Find(code)
		if !ok {
			log.PreferredCountryMissing(code)
			continue
		}
		s.preferred = append(s.preferred, country)
	}

	if len(s.preferred) > 0 {
		s.selected = s.preferred[0]
	} else {
		s.selected = cat.First()
	}

	return s
}

// Selected returns the current country, nil only for an empty catalog.
func (s *State) Selected() *catalog.Country {
	return s.selected
}

// Preferred returns the resolved preferred countries in configuration order.
func (s *State) Preferred() []*catalog.Country {
	return append([]*catalog.Country(nil), s.preferred...)
}

// PreferredCodes returns the codes the state was initialized with.
func (s *State) PreferredCodes() []string {
	return append([]string(nil), s.preferredCodes...)
}

// Ordered returns the dropdown order: preferred countries, then the full catalog.
func (s *State) Ordered() []*catalog.Country {
	result := make([]*catalog.Country, 0, len(s.preferred)+s.catalog.Len())
	result = append(result, s.preferred...)
	result = append(result, s.catalog.Countries()...)
	return result
}

// Select switches to the country with the given ISO2 code (case-insensitive).
func (s *State) Select(code string) (*catalog.Country, error) {
	country, ok := s.catalog.Lookup(code)
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("country %q not in catalog", code)).WithOp("select")
	}
	s.selected = country
	return country, nil
}

// SelectCountry switches to country. A nil country is ignored.
func (s *State) SelectCountry(country *catalog.Country) {
	if country == nil {
		return
	}
	s.selected = country
}
