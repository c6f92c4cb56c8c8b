// Package telinput implements the international telephone input control: it
// reconciles typed text with the selected country and reports a normalized
// ChangeEvent to the host form.
package telinput

import (
	"fmt"

	"github.com/hightemp/telin/internal/apperr"
	"github.com/hightemp/telin/internal/catalog"
	"github.com/hightemp/telin/internal/phonelib"
)

// ChangeEvent is the value reported to the host on every change.
// The formatted fields are empty when Number does not parse for CountryCode.
type ChangeEvent struct {
	Number              string `json:"number"`
	InternationalNumber string `json:"internationalNumber"`
	NationalNumber      string `json:"nationalNumber"`
	CountryCode         string `json:"countryCode"`
}

// Parsed reports whether the number parsed for its region.
func (e ChangeEvent) Parsed() bool {
	return e.InternationalNumber != ""
}

// Reconcile parses text against country and builds the resulting event.
// It never fails: parse errors yield empty formatted fields, and a nil
// country yields an event carrying only the raw text.
func Reconcile(lib phonelib.Library, text string, country *catalog.Country) ChangeEvent {
	ev := ChangeEvent{Number: text}
	if country == nil {
		return ev
	}
	ev.CountryCode = country.Region()

	number, err := lib.Parse(text, ev.CountryCode)
	if err != nil {
		return ev
	}

	ev.InternationalNumber = lib.Format(number, phonelib.International)
	ev.NationalNumber = lib.Format(number, phonelib.National)
	return ev
}

// ValidateEvent checks an event the way a host form validator does.
// An empty number is valid. Otherwise it must parse for CountryCode and,
// when strict, be a valid number for that region.
func ValidateEvent(lib phonelib.Library, ev ChangeEvent, strict bool) error {
	if ev.Number == "" {
		return nil
	}
	if ev.CountryCode == "" {
		return apperr.Validation("no country selected").WithOp("validate")
	}

	number, err := lib.Parse(ev.Number, ev.CountryCode)
	if err != nil {
		return apperr.Wrap(apperr.KindValidation,
			fmt.Sprintf("%q is not a phone number for %s", ev.Number, ev.CountryCode), err).WithOp("validate")
	}

	if strict && !lib.IsValidForRegion(number, ev.CountryCode) {
		return apperr.Validation(
			fmt.Sprintf("%q is not a valid number in %s", ev.Number, ev.CountryCode)).WithOp("validate")
	}
	return nil
}

// AllowKey reports whether a typed character passes the input mask:
// ASCII digits, '+', '-' and space.
func AllowKey(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '+', r == '-', r == ' ':
		return true
	default:
		return false
	}
}
